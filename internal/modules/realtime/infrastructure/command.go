package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"stuDealsWs/internal/modules/realtime/domain"
)

// Command is the inbound frame clients write on the socket. It mirrors the
// outbound envelope but keeps the payload raw until a handler owns it.
type Command struct {
	Event   string          `json:"event"`
	ScopeID string          `json:"scopeId,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c Command) eventKey() string {
	return strings.ToLower(strings.TrimSpace(c.Event))
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

// CommandProcessor routes inbound frames by event name. Unknown events are
// dropped silently; commands beyond the client's rate budget are dropped too,
// without closing the connection.
type CommandProcessor struct {
	handlers map[string]CommandHandler
	timeout  time.Duration
}

func NewCommandProcessor() *CommandProcessor {
	processor := &CommandProcessor{
		handlers: make(map[string]CommandHandler),
		timeout:  10 * time.Second,
	}
	processor.Register("ping", handlePing)
	return processor
}

func (p *CommandProcessor) Register(event string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(event))
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}

	event := cmd.eventKey()
	if event == "" {
		return
	}

	if !client.limiter.Allow() {
		slog.Warn("ws command dropped by rate limit", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("event", event))
		return
	}

	handler, ok := p.handlers[event]
	if !ok {
		slog.Debug("ws command ignored", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("event", event))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	handler(ctx, client, cmd)
}

func handlePing(_ context.Context, client *Client, _ Command) {
	client.SendMessage(domain.NewStatus(client.Scope(), map[string]string{"state": "alive"}, time.Now()))
}
