package handler

import (
	"context"
	"testing"
	"time"

	"stuDealsWs/internal/modules/realtime/application/port"
	"stuDealsWs/internal/modules/realtime/application/usecase"
	"stuDealsWs/internal/modules/realtime/domain"
)

type fakeFetcher struct {
	payloads map[string]interface{}
}

func (f *fakeFetcher) FetchDomain(_ context.Context, _, _, domainName string) (interface{}, error) {
	payload, ok := f.payloads[domainName]
	if !ok {
		return nil, port.ErrSnapshotNotFound
	}
	return payload, nil
}

type captureBroadcaster struct {
	messages []*domain.Message
}

func (b *captureBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.messages = append(b.messages, msg)
}

func newHandlerFixture(domainName string, payloads map[string]interface{}) (*DomainStreamHandler, *captureBroadcaster, *usecase.SnapshotUseCase) {
	broadcaster := &captureBroadcaster{}
	snapshotUC := usecase.NewSnapshotUseCase(&fakeFetcher{payloads: payloads})
	relayUC := usecase.NewRelayUseCase(broadcaster)
	h := NewDomainStreamHandler(domainName, "studeals."+domainName, relayUC, snapshotUC)
	return h, broadcaster, snapshotUC
}

func TestHandleUpdatedEventWithPayloadPushesUpdatedEnvelope(t *testing.T) {
	t.Parallel()

	h, broadcaster, _ := newHandlerFixture(domain.DomainProducts, nil)
	err := h.Handle(context.Background(), &domain.ChangeEvent{
		Domain:    domain.DomainProducts,
		Action:    "updated",
		ScopeID:   "vendor-1",
		Data:      []string{"p1", "p2"},
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(broadcaster.messages) != 1 {
		t.Fatalf("expected 1 push, got %d", len(broadcaster.messages))
	}
	if broadcaster.messages[0].Event != "products:updated" {
		t.Fatalf("unexpected event: %s", broadcaster.messages[0].Event)
	}
}

func TestHandleEventWithoutScopeIsDropped(t *testing.T) {
	t.Parallel()

	h, broadcaster, _ := newHandlerFixture(domain.DomainProducts, nil)
	err := h.Handle(context.Background(), &domain.ChangeEvent{
		Domain: domain.DomainProducts,
		Action: "updated",
		Data:   []string{"p1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(broadcaster.messages) != 0 {
		t.Fatalf("expected no pushes, got %d", len(broadcaster.messages))
	}
}

func TestHandleEventWithoutPayloadRefreshesSnapshot(t *testing.T) {
	t.Parallel()

	payloads := map[string]interface{}{domain.DomainDiscounts: []string{"d1"}}
	h, broadcaster, snapshotUC := newHandlerFixture(domain.DomainDiscounts, payloads)

	// Simulate an earlier join so the cache holds a token for the vendor.
	if _, err := snapshotUC.Load(context.Background(), "tok", "vendor-1", domain.DomainDiscounts); err != nil {
		t.Fatalf("warm-up load failed: %v", err)
	}

	payloads[domain.DomainDiscounts] = []string{"d1", "d2"}
	err := h.Handle(context.Background(), &domain.ChangeEvent{
		Domain:  domain.DomainDiscounts,
		Action:  "updated",
		ScopeID: "vendor-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(broadcaster.messages) != 1 {
		t.Fatalf("expected 1 refresh push, got %d", len(broadcaster.messages))
	}
	if broadcaster.messages[0].Event != "discounts:updated" {
		t.Fatalf("unexpected event: %s", broadcaster.messages[0].Event)
	}
}

func TestHandleBroadcastKindRelaysNotice(t *testing.T) {
	t.Parallel()

	h, broadcaster, _ := newHandlerFixture(domain.DomainProducts, nil)
	err := h.Handle(context.Background(), &domain.ChangeEvent{
		Domain:    domain.DomainProducts,
		Action:    "updated",
		ScopeID:   "vendor-1",
		Kind:      domain.BroadcastOfferApproved,
		SubjectID: "offer-7",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(broadcaster.messages) != 1 {
		t.Fatalf("expected 1 relayed notice, got %d", len(broadcaster.messages))
	}
	msg := broadcaster.messages[0]
	if msg.Event != domain.BroadcastOfferApproved {
		t.Fatalf("unexpected event: %s", msg.Event)
	}
	data, ok := msg.Data.(map[string]string)
	if !ok || data["subjectId"] != "offer-7" {
		t.Fatalf("unexpected data: %#v", msg.Data)
	}
}

func TestHandleCouponClaimPushesItemAndRefreshesAnalytics(t *testing.T) {
	t.Parallel()

	payloads := map[string]interface{}{domain.DomainCouponsAnalytics: map[string]int{"claims": 4}}
	h, broadcaster, snapshotUC := newHandlerFixture(domain.DomainCoupons, payloads)

	if _, err := snapshotUC.Load(context.Background(), "tok", "vendor-1", domain.DomainCouponsAnalytics); err != nil {
		t.Fatalf("warm-up load failed: %v", err)
	}

	err := h.Handle(context.Background(), &domain.ChangeEvent{
		Domain:    domain.DomainCoupons,
		Action:    "item",
		ScopeID:   "vendor-1",
		Data:      map[string]string{"couponId": "c-1", "studentId": "stu-1"},
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(broadcaster.messages) != 2 {
		t.Fatalf("expected item push and analytics refresh, got %d", len(broadcaster.messages))
	}
	if broadcaster.messages[0].Event != domain.EventCouponClaimed {
		t.Fatalf("unexpected first event: %s", broadcaster.messages[0].Event)
	}
	if broadcaster.messages[1].Event != "coupons-analytics:updated" {
		t.Fatalf("unexpected second event: %s", broadcaster.messages[1].Event)
	}
}
