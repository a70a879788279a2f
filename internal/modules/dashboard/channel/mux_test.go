package channel

import (
	"errors"
	"testing"
	"time"

	"stuDealsWs/internal/modules/realtime/domain"
)

func TestMuxFansOutToEverySubscriber(t *testing.T) {
	t.Parallel()

	m := NewMux()
	var first, second int
	m.Subscribe(domain.DomainProducts, func(any, time.Time) { first++ }, func(any, time.Time) { first++ })
	m.Subscribe(domain.DomainProducts, func(any, time.Time) { second++ }, func(any, time.Time) { second++ })

	m.Dispatch(&domain.Message{Event: "products:loaded", Data: "a"})
	m.Dispatch(&domain.Message{Event: "products:updated", Data: "b"})

	if first != 2 || second != 2 {
		t.Fatalf("expected both subscribers to see both events, got %d and %d", first, second)
	}
}

func TestMuxUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	m := NewMux()
	var calls int
	record := func(any, time.Time) { calls++ }
	off := m.Subscribe(domain.DomainOrders, record, record)

	m.Dispatch(&domain.Message{Event: "orders:updated"})
	off()
	m.Dispatch(&domain.Message{Event: "orders:updated"})
	m.Dispatch(&domain.Message{Event: "orders:loaded"})

	if calls != 1 {
		t.Fatalf("expected 1 delivery before unsubscribe, got %d", calls)
	}
}

func TestMuxSubscribeItemOnlyForStreamingDomains(t *testing.T) {
	t.Parallel()

	m := NewMux()
	if _, err := m.SubscribeItem(domain.DomainProducts, func(any, time.Time) {}); !errors.Is(err, ErrNotStreaming) {
		t.Fatalf("expected ErrNotStreaming, got %v", err)
	}

	var items int
	off, err := m.SubscribeItem(domain.DomainNotifications, func(any, time.Time) { items++ })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Dispatch(&domain.Message{Event: domain.EventNotificationItem})
	off()
	m.Dispatch(&domain.Message{Event: domain.EventNotificationItem})

	if items != 1 {
		t.Fatalf("expected 1 item delivery, got %d", items)
	}
}

func TestMuxIgnoresUnknownBroadcastKind(t *testing.T) {
	t.Parallel()

	m := NewMux()
	var calls int
	m.SubscribeBroadcast("not-a-kind", func(any, time.Time) { calls++ })
	m.SubscribeBroadcast(domain.BroadcastNewRedemption, func(any, time.Time) { calls++ })

	m.Dispatch(&domain.Message{Event: "not-a-kind"})
	m.Dispatch(&domain.Message{Event: domain.BroadcastNewRedemption})

	if calls != 1 {
		t.Fatalf("expected only the known kind to deliver, got %d", calls)
	}
}
