package handler

import (
	"context"
	"log/slog"
	"strings"

	"stuDealsWs/internal/modules/realtime/application/port"
	"stuDealsWs/internal/modules/realtime/application/usecase"
	"stuDealsWs/internal/modules/realtime/domain"
)

// DomainStreamHandler folds change events from one Kafka topic into room
// pushes: full-replacement updates for snapshot domains, appended items for
// the streaming ones, and relayed notices for broadcast kinds.
type DomainStreamHandler struct {
	domainName string
	kafkaTopic string
	relayUC    *usecase.RelayUseCase
	snapshotUC *usecase.SnapshotUseCase
}

func NewDomainStreamHandler(domainName, kafkaTopic string, relayUC *usecase.RelayUseCase, snapshotUC *usecase.SnapshotUseCase) *DomainStreamHandler {
	return &DomainStreamHandler{
		domainName: strings.TrimSpace(domainName),
		kafkaTopic: kafkaTopic,
		relayUC:    relayUC,
		snapshotUC: snapshotUC,
	}
}

func (h *DomainStreamHandler) Topic() string { return h.kafkaTopic }

func (h *DomainStreamHandler) Handle(ctx context.Context, event *domain.ChangeEvent) error {
	if event == nil {
		return nil
	}
	scopeID := strings.TrimSpace(event.ScopeID)
	if scopeID == "" {
		slog.Debug("change event without scope dropped", slog.String("topic", h.kafkaTopic), slog.String("domain", event.Domain))
		return nil
	}

	if event.IsBroadcast() {
		data := broadcastData(event)
		if err := h.relayUC.Relay(ctx, event.Kind, scopeID, data); err != nil {
			slog.Warn("change event relay failed", slog.String("kind", event.Kind), slog.Any("error", err))
		}
		// A broadcast usually means the underlying snapshot moved too.
		h.refresh(ctx, scopeID)
		return nil
	}

	domainName := h.domainName
	if domainName == "" {
		domainName = event.Domain
	}

	if itemEvent, ok := domain.ItemEvent(domainName); ok && event.Action == "item" {
		h.relayUC.Push(ctx, domain.NewItem(itemEvent, scopeID, event.Data, event.Timestamp))
		if domainName == domain.DomainCoupons {
			// Each claim moves the aggregate; keep coupons-analytics fresh.
			h.snapshotUC.Refresh(ctx, scopeID, domain.DomainCouponsAnalytics, broadcasterFunc(h.relayUC.Push))
		}
		return nil
	}

	if event.Data != nil {
		h.relayUC.Push(ctx, domain.NewUpdated(domainName, scopeID, event.Data, event.Timestamp))
		return nil
	}

	// Change notification without payload: re-fetch and push the snapshot.
	h.refresh(ctx, scopeID)
	return nil
}

func (h *DomainStreamHandler) refresh(ctx context.Context, scopeID string) {
	domainName := h.domainName
	if !domain.KnownDomain(domainName) {
		return
	}
	h.snapshotUC.Refresh(ctx, scopeID, domainName, broadcasterFunc(h.relayUC.Push))
}

func broadcastData(event *domain.ChangeEvent) interface{} {
	if event.Data != nil {
		return event.Data
	}
	if event.SubjectID == "" {
		return nil
	}
	return map[string]string{"subjectId": event.SubjectID}
}

// broadcasterFunc adapts a push function to the Broadcaster port.
type broadcasterFunc func(ctx context.Context, msg *domain.Message)

func (f broadcasterFunc) Broadcast(ctx context.Context, msg *domain.Message) { f(ctx, msg) }

var _ port.TopicHandler = (*DomainStreamHandler)(nil)
