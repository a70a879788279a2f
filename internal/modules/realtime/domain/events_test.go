package domain

import (
	"testing"
	"time"
)

func TestEventNamesFollowWireContract(t *testing.T) {
	t.Parallel()

	if got := LoadedEvent(DomainProducts); got != "products:loaded" {
		t.Fatalf("unexpected loaded event: %s", got)
	}
	if got := UpdatedEvent(DomainCouponsAnalytics); got != "coupons-analytics:updated" {
		t.Fatalf("unexpected updated event: %s", got)
	}
	if got := RequestEvent(DomainOrders); got != "orders:request" {
		t.Fatalf("unexpected request event: %s", got)
	}
	if got := LoadedEvent("  "); got != "" {
		t.Fatalf("expected empty event for blank domain, got %s", got)
	}
}

func TestRequestableExcludesPushOnlyDomains(t *testing.T) {
	t.Parallel()

	for _, domain := range []string{DomainProfile, DomainOverview} {
		if Requestable(domain) {
			t.Fatalf("%s must be push-only", domain)
		}
	}
	for _, domain := range []string{DomainProducts, DomainOrders, DomainAnalytics, DomainDiscounts, DomainNotifications, DomainVerifications, DomainCouponsAnalytics} {
		if !Requestable(domain) {
			t.Fatalf("%s must be requestable", domain)
		}
	}
	if Requestable("unknown") {
		t.Fatal("unknown domains must not be requestable")
	}
}

func TestItemEventsOnlyForStreamingDomains(t *testing.T) {
	t.Parallel()

	event, ok := ItemEvent(DomainNotifications)
	if !ok || event != "notifications:item" {
		t.Fatalf("unexpected notifications item event: %s ok=%v", event, ok)
	}
	event, ok = ItemEvent(DomainCoupons)
	if !ok || event != "coupons:claimed" {
		t.Fatalf("unexpected coupons item event: %s ok=%v", event, ok)
	}
	if _, ok := ItemEvent(DomainProducts); ok {
		t.Fatal("products must not stream items")
	}
}

func TestParseBroadcastTrigger(t *testing.T) {
	t.Parallel()

	kind, ok := ParseBroadcastTrigger("broadcast:offer-approved")
	if !ok || kind != BroadcastOfferApproved {
		t.Fatalf("unexpected kind: %s ok=%v", kind, ok)
	}
	if _, ok := ParseBroadcastTrigger("broadcast:unknown-kind"); ok {
		t.Fatal("unknown kinds must not parse")
	}
	if _, ok := ParseBroadcastTrigger("offer-approved"); ok {
		t.Fatal("bare kind is not a trigger")
	}
	if got := BroadcastTriggerEvent(BroadcastCouponClaimed); got != "broadcast:coupon-claimed" {
		t.Fatalf("unexpected trigger event: %s", got)
	}
}

func TestParseEvent(t *testing.T) {
	t.Parallel()

	domain, action, ok := ParseEvent("products:loaded")
	if !ok || domain != "products" || action != "loaded" {
		t.Fatalf("unexpected parse result: %s %s %v", domain, action, ok)
	}
	if _, _, ok := ParseEvent("no-separator"); ok {
		t.Fatal("events without separator must not parse")
	}
	if _, _, ok := ParseEvent(":loaded"); ok {
		t.Fatal("empty domain must not parse")
	}
}

func TestNewBroadcastRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	if msg := NewBroadcast("mystery", "vendor-1", nil, time.Now()); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
	msg := NewBroadcast(BroadcastNewRedemption, " vendor-1 ", map[string]string{"orderId": "o-1"}, time.Now())
	if msg == nil {
		t.Fatal("expected message")
	}
	if msg.Event != BroadcastNewRedemption {
		t.Fatalf("unexpected event: %s", msg.Event)
	}
	if msg.ScopeID != "vendor-1" {
		t.Fatalf("unexpected scope: %s", msg.ScopeID)
	}
}
