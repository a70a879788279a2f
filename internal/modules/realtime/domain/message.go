package domain

import (
	"strings"
	"time"
)

// Message is the wire envelope shared by both directions of the channel.
// The event name is the stable interface; Data stays untyped so the gateway
// can forward whatever the REST API or the change stream produced.
type Message struct {
	Event     string      `json:"event"`
	ScopeID   string      `json:"scopeId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewLoaded builds a full snapshot envelope for a domain.
func NewLoaded(domain, scopeID string, data interface{}, at time.Time) *Message {
	return newEnvelope(LoadedEvent(domain), scopeID, data, at)
}

// NewUpdated builds a full-replacement update envelope for a domain.
func NewUpdated(domain, scopeID string, data interface{}, at time.Time) *Message {
	return newEnvelope(UpdatedEvent(domain), scopeID, data, at)
}

// NewItem builds a streaming item event. The event name must be one of the
// item events (notifications:item, coupons:claimed).
func NewItem(event, scopeID string, data interface{}, at time.Time) *Message {
	return newEnvelope(event, scopeID, data, at)
}

// NewBroadcast builds the relayed notice delivered to the target vendor room.
// The event name on the wire equals the broadcast kind.
func NewBroadcast(kind, scopeID string, data interface{}, at time.Time) *Message {
	if !KnownBroadcastKind(kind) {
		return nil
	}
	return newEnvelope(kind, scopeID, data, at)
}

// NewStatus builds an informational connection:status message. It carries no
// contract obligation for the client.
func NewStatus(scopeID string, data interface{}, at time.Time) *Message {
	return newEnvelope(EventConnectionStatus, scopeID, data, at)
}

func newEnvelope(event, scopeID string, data interface{}, at time.Time) *Message {
	event = strings.TrimSpace(event)
	if event == "" {
		return nil
	}
	return &Message{
		Event:     event,
		ScopeID:   strings.TrimSpace(scopeID),
		Data:      data,
		Timestamp: at.UTC(),
	}
}
