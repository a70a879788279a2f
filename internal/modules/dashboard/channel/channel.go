package channel

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"stuDealsWs/internal/modules/realtime/domain"
)

// State is the lifecycle of the vendor channel connection.
type State string

const (
	StateIdle         State = "idle"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateDisconnected State = "disconnected"
	StateFailed       State = "failed"
)

var (
	ErrMissingCredentials = errors.New("channel requires a token and a user id")
	ErrNotConnected       = errors.New("channel is not connected")
	ErrNotRequestable     = errors.New("domain does not accept snapshot requests")
	ErrUnknownKind        = errors.New("unknown broadcast kind")
)

// Identity carries the vendor credentials presented on connect.
type Identity struct {
	Token  string
	UserID string
	Role   string
}

// Options configures a Channel. Zero values fall back to the production
// defaults; tests shrink the delays and inject a fake dialer.
type Options struct {
	URL        string
	Dialer     Dialer
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxRetries int
	OnStatus   func(connected bool)
}

// Channel is the shared vendor connection: one websocket multiplexing every
// dashboard domain, with automatic rejoin on reconnect and a bounded retry
// policy. Consumers share it through Acquire/Release.
type Channel struct {
	mu             sync.Mutex
	opts           Options
	identity       Identity
	state          State
	conn           Conn
	mux            *Mux
	refs           int
	generation     int
	nextHookID     int
	connectedHooks map[int]func()
}

func NewChannel(opts Options) *Channel {
	if opts.Dialer == nil {
		opts.Dialer = NewDialer(0)
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 5 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 5
	}
	return &Channel{
		opts:           opts,
		state:          StateIdle,
		mux:            NewMux(),
		connectedHooks: make(map[int]func()),
	}
}

// Mux exposes the event router for consumer subscriptions.
func (c *Channel) Mux() *Mux { return c.mux }

func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// NotifyConnected registers a hook invoked on every Connected edge, including
// immediately when the channel is already connected. The returned closure
// removes the hook.
func (c *Channel) NotifyConnected(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	c.nextHookID++
	id := c.nextHookID
	c.connectedHooks[id] = fn
	connected := c.state == StateConnected
	c.mu.Unlock()
	if connected {
		fn()
	}
	return func() {
		c.mu.Lock()
		delete(c.connectedHooks, id)
		c.mu.Unlock()
	}
}

// Connect starts the channel and returns immediately; progress is observed
// through State, OnStatus and NotifyConnected. Only the local credential
// refusal is reported synchronously, leaving the channel Disconnected. While
// an attempt or session is already active Connect is a no-op; on transport
// failure the bounded retry schedule runs in the background.
func (c *Channel) Connect(ctx context.Context, id Identity) error {
	id.Token = strings.TrimSpace(id.Token)
	id.UserID = strings.TrimSpace(id.UserID)
	if id.Token == "" || id.UserID == "" {
		c.mu.Lock()
		switch c.state {
		case StateConnecting, StateConnected, StateReconnecting:
		default:
			c.state = StateDisconnected
		}
		c.mu.Unlock()
		return ErrMissingCredentials
	}

	c.mu.Lock()
	switch c.state {
	case StateConnecting, StateConnected, StateReconnecting:
		c.mu.Unlock()
		return nil
	}
	c.identity = id
	c.state = StateConnecting
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	go func() {
		conn, err := c.dial(ctx)
		if err != nil {
			slog.Warn("channel dial failed", slog.Any("error", err))
			c.reconnect(ctx, gen)
			return
		}
		c.attach(gen, conn)
	}()
	return nil
}

// Disconnect tears the session down. No automatic reconnect follows; a fresh
// Connect is required.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	wasConnected := c.state == StateConnected
	c.generation++
	c.state = StateDisconnected
	conn := c.conn
	c.conn = nil
	onStatus := c.opts.OnStatus
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	if wasConnected && onStatus != nil {
		onStatus(false)
	}
}

// Acquire takes a consumer reference, connecting on demand. Connect is
// idempotent, so late acquirers on a live channel are free.
func (c *Channel) Acquire(ctx context.Context, id Identity) error {
	c.mu.Lock()
	c.refs++
	c.mu.Unlock()

	if err := c.Connect(ctx, id); err != nil {
		c.mu.Lock()
		c.refs--
		c.mu.Unlock()
		return err
	}
	return nil
}

// Release drops a consumer reference; the last one out disconnects.
func (c *Channel) Release() {
	c.mu.Lock()
	if c.refs == 0 {
		c.mu.Unlock()
		return
	}
	c.refs--
	last := c.refs == 0
	c.mu.Unlock()
	if last {
		c.Disconnect()
	}
}

// Join emits the room join directive. The channel already joins automatically
// on every Connected transition, so callers only need this to re-assert
// membership; while not connected it is a no-op, the next Connected transition
// covers it.
func (c *Channel) Join(vendorID string) {
	conn, scope, ok := c.session()
	if !ok {
		return
	}
	if strings.TrimSpace(vendorID) == "" {
		vendorID = scope
	}
	if err := conn.WriteJSON(domain.Message{
		Event:     domain.EventRoomJoin,
		ScopeID:   vendorID,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		slog.Warn("channel room join write failed", slog.Any("error", err))
	}
}

// Request asks the gateway for a fresh snapshot of one requestable domain.
func (c *Channel) Request(domainName string) error {
	if !domain.Requestable(domainName) {
		return ErrNotRequestable
	}
	conn, scope, ok := c.session()
	if !ok {
		return ErrNotConnected
	}
	return conn.WriteJSON(domain.Message{
		Event:     domain.RequestEvent(domainName),
		ScopeID:   scope,
		Timestamp: time.Now().UTC(),
	})
}

// Trigger emits an outbound broadcast trigger toward the target vendor room.
func (c *Channel) Trigger(kind, targetScope string, data any) error {
	if !domain.KnownBroadcastKind(kind) {
		return ErrUnknownKind
	}
	conn, scope, ok := c.session()
	if !ok {
		return ErrNotConnected
	}
	if strings.TrimSpace(targetScope) == "" {
		targetScope = scope
	}
	return conn.WriteJSON(domain.Message{
		Event:     domain.BroadcastTriggerEvent(kind),
		ScopeID:   targetScope,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func (c *Channel) session() (Conn, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected || c.conn == nil {
		return nil, "", false
	}
	return c.conn, c.identity.UserID, true
}

func (c *Channel) dial(ctx context.Context) (Conn, error) {
	c.mu.Lock()
	token := c.identity.Token
	c.mu.Unlock()
	return c.opts.Dialer.Dial(ctx, endpointURL(c.opts.URL, token))
}

func (c *Channel) attach(gen int, conn Conn) {
	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		_ = conn.Close()
		return
	}
	c.conn = conn
	c.state = StateConnected
	scope := c.identity.UserID
	hooks := make([]func(), 0, len(c.connectedHooks))
	for _, hook := range c.connectedHooks {
		hooks = append(hooks, hook)
	}
	onStatus := c.opts.OnStatus
	c.mu.Unlock()

	// No subscription survives a reconnect implicitly; rejoin every time.
	if err := conn.WriteJSON(domain.Message{
		Event:     domain.EventRoomJoin,
		ScopeID:   scope,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		slog.Warn("channel room join write failed", slog.Any("error", err))
	}

	if onStatus != nil {
		onStatus(true)
	}
	for _, hook := range hooks {
		hook()
	}
	go c.readLoop(gen, conn)
}

func (c *Channel) readLoop(gen int, conn Conn) {
	for {
		var msg domain.Message
		if err := conn.ReadJSON(&msg); err != nil {
			c.mu.Lock()
			if c.generation != gen {
				c.mu.Unlock()
				return
			}
			c.conn = nil
			onStatus := c.opts.OnStatus
			c.mu.Unlock()

			_ = conn.Close()
			if onStatus != nil {
				onStatus(false)
			}
			slog.Warn("channel transport lost", slog.Any("error", err))
			c.reconnect(context.Background(), gen)
			return
		}
		c.mux.Dispatch(&msg)
	}
}

// reconnect runs the bounded retry schedule: base delay, capped escalation,
// hard attempt ceiling, then Failed.
func (c *Channel) reconnect(ctx context.Context, gen int) {
	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		return
	}
	c.state = StateReconnecting
	c.mu.Unlock()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.opts.BaseDelay
	policy.MaxInterval = c.opts.MaxDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0
	policy.Reset()

	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		select {
		case <-time.After(policy.NextBackOff()):
		case <-ctx.Done():
			return
		}
		if c.stale(gen) {
			return
		}
		conn, err := c.dial(ctx)
		if err != nil {
			lastErr = err
			slog.Warn("channel reconnect attempt failed", slog.Int("attempt", attempt), slog.Any("error", err))
			continue
		}
		c.attach(gen, conn)
		return
	}

	c.mu.Lock()
	if c.generation == gen {
		c.state = StateFailed
	}
	c.mu.Unlock()
	slog.Error("channel retries exhausted", slog.Int("attempts", c.opts.MaxRetries), slog.Any("error", lastErr))
}

func (c *Channel) stale(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation != gen
}
