package channel

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"stuDealsWs/internal/modules/realtime/domain"
)

// ErrNotStreaming is returned when an item subscription targets a domain that
// only pushes full snapshots.
var ErrNotStreaming = errors.New("domain does not stream item events")

// Handler consumes one inbound envelope payload.
type Handler func(payload any, at time.Time)

type handlerEntry struct {
	id int
	fn Handler
}

// Mux routes inbound named events to their subscribed handlers over the one
// connection. Every handler registered for an event receives every delivery;
// events nobody subscribed to are dropped, so an unknown event can never break
// the channel.
type Mux struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string][]handlerEntry
}

func NewMux() *Mux {
	return &Mux{handlers: make(map[string][]handlerEntry)}
}

// Subscribe registers handlers for a dashboard domain's snapshot and
// full-replacement update events. The returned function unsubscribes both.
func (m *Mux) Subscribe(domainName string, onLoaded, onUpdated Handler) func() {
	offLoaded := m.on(domain.LoadedEvent(domainName), onLoaded)
	offUpdated := m.on(domain.UpdatedEvent(domainName), onUpdated)
	return func() {
		offLoaded()
		offUpdated()
	}
}

// SubscribeItem registers a handler for a streaming domain's discrete item
// events. Items arrive in order and are never replayed.
func (m *Mux) SubscribeItem(domainName string, fn Handler) (func(), error) {
	event, ok := domain.ItemEvent(domainName)
	if !ok {
		return func() {}, ErrNotStreaming
	}
	return m.on(event, fn), nil
}

// SubscribeBroadcast registers a handler for one relayed broadcast kind.
func (m *Mux) SubscribeBroadcast(kind string, fn Handler) func() {
	if !domain.KnownBroadcastKind(kind) {
		return func() {}
	}
	return m.on(kind, fn)
}

func (m *Mux) on(event string, fn Handler) func() {
	if event == "" || fn == nil {
		return func() {}
	}
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.handlers[event] = append(m.handlers[event], handlerEntry{id: id, fn: fn})
	m.mu.Unlock()
	return func() { m.off(event, id) }
}

func (m *Mux) off(event string, id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.handlers[event]
	for i, entry := range entries {
		if entry.id == id {
			m.handlers[event] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Dispatch fans one inbound envelope out to every handler registered for its
// event name.
func (m *Mux) Dispatch(msg *domain.Message) {
	if msg == nil || msg.Event == "" {
		return
	}
	m.mu.RLock()
	handlers := make([]Handler, 0, len(m.handlers[msg.Event]))
	for _, entry := range m.handlers[msg.Event] {
		handlers = append(handlers, entry.fn)
	}
	m.mu.RUnlock()

	if len(handlers) == 0 {
		slog.Debug("unhandled channel event dropped", slog.String("event", msg.Event))
		return
	}
	for _, fn := range handlers {
		fn(msg.Data, msg.Timestamp)
	}
}
