package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stuDealsWs/internal/modules/realtime/application/port"
	"stuDealsWs/internal/modules/realtime/domain"
)

// SnapshotUseCase answers room joins and explicit snapshot requests by
// fetching domain state from the REST API, caching the last good payload per
// vendor and domain so a flaky backend does not blank out connected dashboards.
type SnapshotUseCase struct {
	fetcher port.SnapshotFetcher
	cache   *snapshotCache
	now     func() time.Time
}

func NewSnapshotUseCase(fetcher port.SnapshotFetcher) *SnapshotUseCase {
	return &SnapshotUseCase{
		fetcher: fetcher,
		cache:   newSnapshotCache(),
		now:     time.Now,
	}
}

// Load fetches one domain snapshot and wraps it in a loaded envelope.
// On fetch failure the last cached payload is served when available.
func (uc *SnapshotUseCase) Load(ctx context.Context, token, scopeID, domainName string) (*domain.Message, error) {
	if !domain.KnownDomain(domainName) {
		return nil, port.ErrSnapshotUnsupported
	}

	payload, err := uc.fetcher.FetchDomain(ctx, token, scopeID, domainName)
	switch {
	case errors.Is(err, port.ErrSnapshotNotFound):
		uc.cache.delete(scopeID, domainName)
		return nil, err
	case err != nil:
		if cached, ok := uc.cache.get(scopeID, domainName); ok {
			slog.Info("snapshot serving cached payload",
				slog.String("scopeId", scopeID),
				slog.String("domain", domainName),
				slog.Time("fetchedAt", cached.fetchedAt))
			return domain.NewLoaded(domainName, scopeID, cached.payload, uc.now()), nil
		}
		return nil, err
	}

	uc.cache.set(scopeID, domainName, token, payload, uc.now())
	return domain.NewLoaded(domainName, scopeID, payload, uc.now()), nil
}

// LoadAll produces the initial loaded envelopes pushed right after a room
// join, one per dashboard domain. Domains that fail to fetch are skipped; the
// client reconciles them through an explicit request later.
func (uc *SnapshotUseCase) LoadAll(ctx context.Context, token, scopeID string) []*domain.Message {
	messages := make([]*domain.Message, 0, len(domain.Domains()))
	for _, name := range domain.Domains() {
		msg, err := uc.Load(ctx, token, scopeID, name)
		if err != nil {
			slog.Warn("snapshot load skipped",
				slog.String("scopeId", scopeID),
				slog.String("domain", name),
				slog.Any("error", err))
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}

// Refresh re-fetches a domain after a change event and pushes the result to
// the vendor room as an updated envelope. It reuses the token captured on the
// last join or request for that vendor; without one there is nobody listening.
func (uc *SnapshotUseCase) Refresh(ctx context.Context, scopeID, domainName string, broadcaster port.Broadcaster) {
	token, ok := uc.cache.tokenFor(scopeID)
	if !ok {
		slog.Debug("snapshot refresh skipped, no cached token", slog.String("scopeId", scopeID), slog.String("domain", domainName))
		return
	}

	payload, err := uc.fetcher.FetchDomain(ctx, token, scopeID, domainName)
	switch {
	case errors.Is(err, port.ErrSnapshotNotFound):
		uc.cache.delete(scopeID, domainName)
		return
	case err != nil:
		slog.Error("snapshot refresh failed",
			slog.String("scopeId", scopeID),
			slog.String("domain", domainName),
			slog.Any("error", err))
		return
	}

	uc.cache.set(scopeID, domainName, token, payload, uc.now())
	broadcaster.Broadcast(ctx, domain.NewUpdated(domainName, scopeID, payload, uc.now()))
	slog.Info("snapshot refreshed", slog.String("scopeId", scopeID), slog.String("domain", domainName))
}
