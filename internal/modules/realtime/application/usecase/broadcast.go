package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stuDealsWs/internal/modules/realtime/application/port"
	"stuDealsWs/internal/modules/realtime/domain"
)

var ErrUnknownBroadcastKind = errors.New("unknown broadcast kind")

// RelayUseCase fans out cross-entity notices to the owning vendor's room.
// Delivery is at-most-once per emission; nothing is retained for clients that
// are offline when the notice fires.
type RelayUseCase struct {
	broadcaster port.Broadcaster
	now         func() time.Time
}

func NewRelayUseCase(b port.Broadcaster) *RelayUseCase {
	return &RelayUseCase{broadcaster: b, now: time.Now}
}

// Relay delivers one notice of the given kind to the target vendor room.
func (uc *RelayUseCase) Relay(ctx context.Context, kind, targetScope string, data interface{}) error {
	msg := domain.NewBroadcast(strings.TrimSpace(kind), targetScope, data, uc.now())
	if msg == nil {
		return ErrUnknownBroadcastKind
	}
	if msg.ScopeID == "" {
		return ErrScopeForbidden
	}
	uc.broadcaster.Broadcast(ctx, msg)
	slog.Info("broadcast relayed", slog.String("kind", msg.Event), slog.String("scopeId", msg.ScopeID))
	return nil
}

// Push forwards an already-built envelope (updated snapshots, streaming
// items) to its scope room.
func (uc *RelayUseCase) Push(ctx context.Context, msg *domain.Message) {
	if msg == nil || strings.TrimSpace(msg.ScopeID) == "" {
		return
	}
	uc.broadcaster.Broadcast(ctx, msg)
}
