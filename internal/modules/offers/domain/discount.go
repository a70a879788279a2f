package domain

import (
	"errors"
	"strings"

	"stuDealsWs/internal/shared/normalization"
)

// DiscountStatus represents the lifecycle of an offer as exposed by the REST API.
type DiscountStatus string

const (
	DiscountStatusUnknown  DiscountStatus = ""
	DiscountStatusDraft    DiscountStatus = "DRAFT"
	DiscountStatusPending  DiscountStatus = "PENDING"
	DiscountStatusApproved DiscountStatus = "APPROVED"
	DiscountStatusRejected DiscountStatus = "REJECTED"
	DiscountStatusExpired  DiscountStatus = "EXPIRED"
)

var allowedDiscountStatuses = map[string]DiscountStatus{
	string(DiscountStatusDraft):    DiscountStatusDraft,
	string(DiscountStatusPending):  DiscountStatusPending,
	string(DiscountStatusApproved): DiscountStatusApproved,
	string(DiscountStatusRejected): DiscountStatusRejected,
	string(DiscountStatusExpired):  DiscountStatusExpired,
}

// NormalizeDiscountStatus returns the canonical DiscountStatus for the given input.
// Unknown statuses are uppercased and returned as-is to avoid data loss.
func NormalizeDiscountStatus(value any) DiscountStatus {
	s, ok := value.(string)
	if !ok {
		return DiscountStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return DiscountStatusUnknown
	}
	if status, ok := allowedDiscountStatuses[trimmed]; ok {
		return status
	}
	return DiscountStatus(trimmed)
}

// ErrInvalidPercentage is returned for discount percentages outside (0, 100].
var ErrInvalidPercentage = errors.New("discount percentage must be greater than 0 and at most 100")

// Discount represents a student discount offer attached to a product.
type Discount struct {
	ID         string
	ProductID  string
	VendorID   string
	Title      string
	Percentage float64
	Status     DiscountStatus
	StartsAt   string
	EndsAt     string
}

// ValidatePercentage checks the discount rate is a usable fraction of the price.
func (d Discount) ValidatePercentage() error {
	if d.Percentage <= 0 || d.Percentage > 100 {
		return ErrInvalidPercentage
	}
	return nil
}

// NormalizeDiscount constructs a Discount from a loosely typed map.
func NormalizeDiscount(raw map[string]any) (Discount, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Discount{}, false
	}

	discount := Discount{
		ID:         id,
		ProductID:  normalization.AsString(raw["productId"]),
		VendorID:   normalization.AsString(raw["vendorId"]),
		Title:      normalization.AsString(raw["title"]),
		Percentage: normalization.AsFloat64(raw["percentage"]),
		StartsAt:   normalization.AsString(raw["startsAt"]),
		EndsAt:     normalization.AsString(raw["endsAt"]),
	}

	status := NormalizeDiscountStatus(raw["status"])
	if status == DiscountStatusUnknown {
		status = NormalizeDiscountStatus(raw["state"])
	}
	discount.Status = status

	return discount, true
}

// BuildDiscountList projects payloads into a slice of discounts.
func BuildDiscountList(payload any) ([]Discount, bool) {
	container := normalization.MapFromPayload(payload)

	rawItems := normalization.AsInterfaceSlice(payload)
	if len(rawItems) == 0 && len(container) > 0 {
		rawItems = normalization.AsInterfaceSlice(container["items"])
		if len(rawItems) == 0 {
			rawItems = normalization.AsInterfaceSlice(container["discounts"])
		}
	}
	if len(rawItems) == 0 {
		return nil, false
	}

	discounts := make([]Discount, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if discount, ok := NormalizeDiscount(rawMap); ok {
				discounts = append(discounts, discount)
			}
		}
	}
	if len(discounts) == 0 {
		return nil, false
	}
	return discounts, true
}
