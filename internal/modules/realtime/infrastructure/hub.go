package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"stuDealsWs/internal/modules/realtime/domain"
)

// Hub keeps the set of live websocket clients and the vendor rooms they are
// joined to. A client belongs to at most one room; the server targets pushes
// by the envelope's scope id.
type Hub struct {
	rooms   map[string]map[*Client]struct{}
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]struct{}),
		clients: make(map[string]*Client),
	}
}

// Attach registers the client under its user+session key, displacing any
// previous connection for the same session.
func (h *Hub) Attach(c *Client) {
	h.mu.Lock()
	if existing, ok := h.clients[c.key()]; ok && existing != c {
		h.detachLocked(existing)
	}
	h.clients[c.key()] = c
	h.mu.Unlock()
	slog.Info("ws client attached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}

// JoinRoom binds the client to a vendor scope. Re-joining the same scope is
// idempotent; joining a different scope moves the client out of its previous
// room first.
func (h *Hub) JoinRoom(c *Client, scopeID string) {
	scopeID = strings.TrimSpace(scopeID)
	if scopeID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.scopeID == scopeID {
		return
	}
	h.leaveRoomLocked(c)
	if h.rooms[scopeID] == nil {
		h.rooms[scopeID] = make(map[*Client]struct{})
	}
	h.rooms[scopeID][c] = struct{}{}
	c.scopeID = scopeID
	slog.Info("ws client joined room", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("scopeId", scopeID))
}

// Detach removes the client from its room and the registry and closes it.
func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	h.detachLocked(c)
	h.mu.Unlock()
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	h.leaveRoomLocked(c)
	delete(h.clients, c.key())
	c.close()
	slog.Info("ws client detached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}

func (h *Hub) leaveRoomLocked(c *Client) {
	if c.scopeID == "" {
		return
	}
	if members, ok := h.rooms[c.scopeID]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, c.scopeID)
		}
	}
	c.scopeID = ""
}

// Broadcast delivers the message to every client joined to its scope room.
// Clients whose send buffer is full are detached rather than blocking the
// fan-out.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	if msg == nil || strings.TrimSpace(msg.ScopeID) == "" {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	members := h.rooms[msg.ScopeID]
	clients := make([]*Client, 0, len(members))
	for c := range members {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(data) {
			slog.Warn("ws send buffer full, detaching", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
			go h.Detach(c)
		}
	}
}

// RoomSize reports how many clients a scope room currently holds.
func (h *Hub) RoomSize(scopeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[strings.TrimSpace(scopeID)])
}
