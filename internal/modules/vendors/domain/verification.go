package domain

import (
	"errors"
	"fmt"
	"strings"

	"stuDealsWs/internal/shared/normalization"
)

// VerificationStatus represents the review lifecycle of a student verification request.
type VerificationStatus string

const (
	VerificationStatusUnknown  VerificationStatus = ""
	VerificationStatusPending  VerificationStatus = "PENDING"
	VerificationStatusApproved VerificationStatus = "APPROVED"
	VerificationStatusRejected VerificationStatus = "REJECTED"
	VerificationStatusExpired  VerificationStatus = "EXPIRED"
)

var allowedVerificationStatuses = map[string]VerificationStatus{
	string(VerificationStatusPending):  VerificationStatusPending,
	string(VerificationStatusApproved): VerificationStatusApproved,
	string(VerificationStatusRejected): VerificationStatusRejected,
	string(VerificationStatusExpired):  VerificationStatusExpired,
}

// Pending requests may be decided; approvals may only expire afterwards.
var verificationTransitions = map[VerificationStatus][]VerificationStatus{
	VerificationStatusPending:  {VerificationStatusApproved, VerificationStatusRejected, VerificationStatusExpired},
	VerificationStatusApproved: {VerificationStatusExpired},
}

// ErrInvalidTransition is returned when a verification status change is not allowed.
var ErrInvalidTransition = errors.New("invalid verification status transition")

// NormalizeVerificationStatus returns the canonical VerificationStatus for the given input.
// Unknown statuses are uppercased and returned as-is to avoid data loss.
func NormalizeVerificationStatus(value any) VerificationStatus {
	s, ok := value.(string)
	if !ok {
		return VerificationStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return VerificationStatusUnknown
	}
	if status, ok := allowedVerificationStatuses[trimmed]; ok {
		return status
	}
	return VerificationStatus(trimmed)
}

// VerificationRequest is one student identity check pending a vendor decision.
type VerificationRequest struct {
	ID          string
	VendorID    string
	StudentID   string
	StudentName string
	DocumentURL string
	Status      VerificationStatus
	SubmittedAt string
}

// Transition moves the request to the next status if the change is allowed.
func (v *VerificationRequest) Transition(next VerificationStatus) error {
	for _, allowed := range verificationTransitions[v.Status] {
		if allowed == next {
			v.Status = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, v.Status, next)
}

// NormalizeVerification constructs a VerificationRequest from a loosely typed map.
func NormalizeVerification(raw map[string]any) (VerificationRequest, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return VerificationRequest{}, false
	}

	request := VerificationRequest{
		ID:          id,
		VendorID:    normalization.AsString(raw["vendorId"]),
		StudentID:   normalization.AsString(raw["studentId"]),
		StudentName: normalization.AsString(raw["studentName"]),
		DocumentURL: normalization.AsString(raw["documentUrl"]),
		SubmittedAt: normalization.AsString(raw["submittedAt"]),
	}

	status := NormalizeVerificationStatus(raw["status"])
	if status == VerificationStatusUnknown {
		status = NormalizeVerificationStatus(raw["state"])
	}
	request.Status = status

	return request, true
}

// BuildVerificationList projects payloads into a slice of verification requests.
func BuildVerificationList(payload any) ([]VerificationRequest, bool) {
	container := normalization.MapFromPayload(payload)

	rawItems := normalization.AsInterfaceSlice(payload)
	if len(rawItems) == 0 && len(container) > 0 {
		rawItems = normalization.AsInterfaceSlice(container["items"])
		if len(rawItems) == 0 {
			rawItems = normalization.AsInterfaceSlice(container["verifications"])
		}
	}
	if len(rawItems) == 0 {
		return nil, false
	}

	requests := make([]VerificationRequest, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if request, ok := NormalizeVerification(rawMap); ok {
				requests = append(requests, request)
			}
		}
	}
	if len(requests) == 0 {
		return nil, false
	}
	return requests, true
}
