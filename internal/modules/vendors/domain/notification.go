package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stuDealsWs/internal/shared/normalization"
)

// Notification is a caller-visible item on the notifications feed. Broadcast
// notices are ephemeral on the wire, so each one gets a locally assigned
// identity here; the feed is the only holder of this history.
type Notification struct {
	ID         string
	Kind       string
	Title      string
	Message    string
	SubjectID  string
	Read       bool
	ReceivedAt time.Time
}

var broadcastTitles = map[string]string{
	"offer-approved":  "Offer approved",
	"offer-rejected":  "Offer rejected",
	"new-redemption":  "New redemption",
	"product-updated": "Product updated",
	"coupon-claimed":  "Coupon claimed",
}

// NewBroadcastNotification converts a received broadcast notice into an unread
// feed item with a fresh local identity.
func NewBroadcastNotification(kind string, payload any, receivedAt time.Time) Notification {
	title, ok := broadcastTitles[kind]
	if !ok {
		title = "Update"
	}

	n := Notification{
		ID:         uuid.NewString(),
		Kind:       kind,
		Title:      title,
		ReceivedAt: receivedAt,
	}

	if raw := normalization.MapFromPayload(payload); len(raw) > 0 {
		n.SubjectID = normalization.AsString(raw["subjectId"])
		n.Message = normalization.AsString(raw["message"])
	}
	if n.Message == "" {
		if n.SubjectID != "" {
			n.Message = fmt.Sprintf("%s (%s)", title, n.SubjectID)
		} else {
			n.Message = title
		}
	}
	return n
}

// NormalizeNotification constructs a Notification from a server-pushed feed item.
// Items without their own id get a local one.
func NormalizeNotification(raw map[string]any, receivedAt time.Time) (Notification, bool) {
	if len(raw) == 0 {
		return Notification{}, false
	}
	n := Notification{
		ID:         normalization.AsString(raw["id"]),
		Kind:       normalization.AsString(raw["kind"]),
		Title:      normalization.AsString(raw["title"]),
		Message:    normalization.AsString(raw["message"]),
		SubjectID:  normalization.AsString(raw["subjectId"]),
		Read:       normalization.AsBool(raw["read"]),
		ReceivedAt: receivedAt,
	}
	if stamped := normalization.AsTime(raw["createdAt"]); !stamped.IsZero() {
		n.ReceivedAt = stamped
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Title == "" && n.Message == "" {
		return Notification{}, false
	}
	if n.Title == "" {
		n.Title = "Notification"
	}
	return n, true
}
