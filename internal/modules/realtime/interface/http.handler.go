package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"stuDealsWs/internal/config"
	"stuDealsWs/internal/modules/realtime/application/usecase"
	"stuDealsWs/internal/modules/realtime/domain"
	"stuDealsWs/internal/modules/realtime/infrastructure"
	"stuDealsWs/internal/shared/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewVendorWebsocketHandler exposes /ws/vendor. The token travels in the
// query string (browsers cannot set headers on websocket dials) or in the
// Authorization header for non-browser clients.
func NewVendorWebsocketHandler(
	hub *infrastructure.Hub,
	connectUC *usecase.ConnectVendorUseCase,
	snapshotUC *usecase.SnapshotUseCase,
	relayUC *usecase.RelayUseCase,
	wsCfg config.WebsocketConfig,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		peerIP := c.RealIP()
		token := auth.ExtractToken(c.Request(), "token")

		claims, err := connectUC.Execute(token)
		if err != nil {
			status := http.StatusInternalServerError
			message := "unable to connect"
			switch {
			case errors.Is(err, usecase.ErrMissingToken), errors.Is(err, auth.ErrMissingToken):
				status = http.StatusBadRequest
				message = "missing token"
			case errors.Is(err, auth.ErrInvalidToken):
				status = http.StatusUnauthorized
				message = "invalid token"
			case errors.Is(err, usecase.ErrRoleRejected):
				status = http.StatusForbidden
				message = "forbidden"
			}
			slog.Warn("ws connect rejected", slog.String("ip", peerIP), slog.Int("status", status), slog.Any("error", err))
			return echo.NewHTTPError(status, message)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws upgrade failed", slog.String("ip", peerIP), slog.Any("error", err))
			return err
		}

		processor := newVendorCommandProcessor(hub, connectUC, snapshotUC, relayUC)
		client := infrastructure.NewClient(hub, conn, claims, token, wsCfg.SendBuffer, wsCfg.CommandRate, wsCfg.CommandBurst, processor)
		hub.Attach(client)

		go client.WritePump()
		go client.ReadPump()

		client.SendMessage(domain.NewStatus("", map[string]interface{}{
			"state":   "connected",
			"userId":  claims.Subject,
			"role":    claims.Role,
			"domains": domain.Domains(),
		}, time.Now()))

		slog.Info("ws connected", slog.String("userId", claims.Subject), slog.String("sessionId", claims.SessionID), slog.String("role", claims.Role), slog.String("ip", peerIP))
		return nil
	}
}

// newVendorCommandProcessor wires every inbound event the gateway honours:
// the room join, one snapshot request per requestable domain, and the
// broadcast triggers.
func newVendorCommandProcessor(
	hub *infrastructure.Hub,
	connectUC *usecase.ConnectVendorUseCase,
	snapshotUC *usecase.SnapshotUseCase,
	relayUC *usecase.RelayUseCase,
) *infrastructure.CommandProcessor {
	processor := infrastructure.NewCommandProcessor()

	processor.Register(domain.EventRoomJoin, func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		scopeID := strings.TrimSpace(cmd.ScopeID)
		if scopeID == "" {
			scopeID = client.Claims().Subject
		}
		if err := connectUC.AuthorizeJoin(client.Claims(), scopeID); err != nil {
			slog.Warn("room join rejected", slog.String("userId", client.Claims().Subject), slog.String("scopeId", scopeID), slog.Any("error", err))
			return
		}
		hub.JoinRoom(client, scopeID)

		// Initial snapshots: one loaded envelope per domain, pushed on the
		// joining connection only.
		for _, msg := range snapshotUC.LoadAll(ctx, client.Token(), scopeID) {
			client.SendMessage(msg)
		}
		client.SendMessage(domain.NewStatus(scopeID, map[string]string{"state": "joined"}, time.Now()))
	})

	for _, name := range domain.Domains() {
		if !domain.Requestable(name) {
			continue
		}
		domainName := name
		processor.Register(domain.RequestEvent(domainName), func(ctx context.Context, client *infrastructure.Client, _ infrastructure.Command) {
			scopeID := client.Scope()
			if scopeID == "" {
				slog.Debug("snapshot request before join ignored", slog.String("userId", client.Claims().Subject), slog.String("domain", domainName))
				return
			}
			msg, err := snapshotUC.Load(ctx, client.Token(), scopeID, domainName)
			if err != nil {
				slog.Warn("snapshot request failed", slog.String("scopeId", scopeID), slog.String("domain", domainName), slog.Any("error", err))
				return
			}
			client.SendMessage(msg)
		})
	}

	for _, kind := range domain.BroadcastKinds() {
		broadcastKind := kind
		processor.Register(domain.BroadcastTriggerEvent(broadcastKind), func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
			target := strings.TrimSpace(cmd.ScopeID)
			claims := client.Claims()
			// Vendors may only notify their own room; admins target anyone.
			if !claims.IsAdmin() && target != claims.Subject {
				slog.Warn("broadcast trigger rejected", slog.String("userId", claims.Subject), slog.String("kind", broadcastKind), slog.String("target", target))
				return
			}
			var data interface{}
			if len(cmd.Data) > 0 {
				var decoded interface{}
				if err := json.Unmarshal(cmd.Data, &decoded); err != nil {
					slog.Warn("broadcast trigger payload decode failed", slog.String("kind", broadcastKind), slog.Any("error", err))
					return
				}
				data = decoded
			}
			if err := relayUC.Relay(ctx, broadcastKind, target, data); err != nil {
				slog.Warn("broadcast trigger failed", slog.String("kind", broadcastKind), slog.Any("error", err))
			}
		})
	}

	return processor
}
