package domain

import (
	"testing"
	"time"
)

func TestNewBroadcastNotificationAssignsLocalIdentity(t *testing.T) {
	t.Parallel()

	now := time.Now()
	first := NewBroadcastNotification("offer-approved", map[string]any{"subjectId": "offer-7"}, now)
	second := NewBroadcastNotification("offer-approved", map[string]any{"subjectId": "offer-7"}, now)

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct local ids, got %q and %q", first.ID, second.ID)
	}
	if first.Read {
		t.Fatal("expected notification to start unread")
	}
	if first.Title != "Offer approved" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Message != "Offer approved (offer-7)" {
		t.Fatalf("unexpected message: %q", first.Message)
	}
}

func TestNewBroadcastNotificationUnknownKind(t *testing.T) {
	t.Parallel()

	n := NewBroadcastNotification("something-else", nil, time.Now())
	if n.Title != "Update" {
		t.Fatalf("unexpected title: %q", n.Title)
	}
	if n.Message != "Update" {
		t.Fatalf("unexpected message: %q", n.Message)
	}
}

func TestNormalizeNotification(t *testing.T) {
	t.Parallel()

	now := time.Now()
	n, ok := NormalizeNotification(map[string]any{
		"title":     "New redemption",
		"message":   "Order o5 redeemed",
		"createdAt": "2026-08-30T09:00:00Z",
	}, now)
	if !ok {
		t.Fatal("expected notification to normalize")
	}
	if n.ID == "" {
		t.Fatal("expected a local id to be assigned")
	}
	if n.ReceivedAt.Equal(now) {
		t.Fatal("expected createdAt to win over receive time")
	}

	if _, ok := NormalizeNotification(map[string]any{"read": true}, now); ok {
		t.Fatal("expected empty notification to be rejected")
	}
}
