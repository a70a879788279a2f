package port

import (
	"context"
	"errors"

	"stuDealsWs/internal/modules/realtime/domain"
)

var (
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrSnapshotForbidden   = errors.New("snapshot forbidden")
	ErrSnapshotUnsupported = errors.New("snapshot unsupported for domain")
)

// SnapshotFetcher loads the current full state of one dashboard domain for a
// vendor from the REST API. The payload stays untyped; the gateway forwards it
// as-is inside the loaded/updated envelope.
type SnapshotFetcher interface {
	FetchDomain(ctx context.Context, token, vendorID, domain string) (interface{}, error)
}

// Broadcaster delivers a message to every connection joined to the message's
// scope room. An empty scope reaches nobody.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler reacts to change-stream events consumed from one Kafka topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, event *domain.ChangeEvent) error
}
