package infrastructure

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"stuDealsWs/internal/modules/realtime/domain"
	"stuDealsWs/internal/shared/auth"
)

// wsConn is the slice of *websocket.Conn the client relies on; narrowed so
// hub and command tests can run without a network socket.
type wsConn interface {
	ReadJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client is one authenticated websocket connection. Outbound messages go
// through a buffered channel drained by WritePump; inbound commands are read
// by ReadPump and handed to the command processor.
type Client struct {
	hub       *Hub
	conn      wsConn
	send      chan []byte
	closed    chan struct{}
	userID    string
	sessionID string
	token     string
	scopeID   string
	claims    *auth.Claims
	limiter   *rate.Limiter
	commands  *CommandProcessor
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn wsConn, claims *auth.Claims, token string, buf int, commandRate float64, commandBurst int, commands *CommandProcessor) *Client {
	if buf <= 0 {
		buf = 8
	}
	if commandRate <= 0 {
		commandRate = 10
	}
	if commandBurst <= 0 {
		commandBurst = 20
	}
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, buf),
		closed:    make(chan struct{}),
		userID:    claims.Subject,
		sessionID: claims.SessionID,
		token:     token,
		claims:    claims,
		limiter:   rate.NewLimiter(rate.Limit(commandRate), commandBurst),
		commands:  commands,
	}
}

func (c *Client) key() string {
	return c.userID + ":" + c.sessionID
}

// Claims returns the validated identity the connection was opened with.
func (c *Client) Claims() *auth.Claims { return c.claims }

// Token returns the opaque credential forwarded to the REST API on fetches.
func (c *Client) Token() string { return c.token }

// Scope returns the vendor room the client is joined to, empty before join.
func (c *Client) Scope() string {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	return c.scopeID
}

// close marks the client dead and closes the transport. The send channel is
// never closed; senders racing a detach observe the closed signal instead of
// panicking on a closed channel.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}

// enqueue hands one frame to the write pump. Frames for a closed client are
// dropped; enqueue reports false only when the buffer is full.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.closed:
		return true
	default:
	}
	select {
	case c.send <- data:
		return true
	case <-c.closed:
		return true
	default:
		return false
	}
}

// SendMessage queues one envelope for delivery; a full buffer detaches the
// client instead of blocking.
func (c *Client) SendMessage(msg *domain.Message) {
	if msg == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("ws marshal error", slog.Any("error", err))
		return
	}
	if !c.enqueue(data) {
		slog.Warn("ws send buffer full", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
		go c.hub.Detach(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("ws write error", slog.Any("error", err))
				return
			}
		case <-c.closed:
			return
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				slog.Warn("ws ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(1 << 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	defer c.hub.Detach(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("ws read error", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.Any("error", err))
			}
			return
		}
		if c.commands != nil {
			c.commands.Process(c, cmd)
		}
	}
}
