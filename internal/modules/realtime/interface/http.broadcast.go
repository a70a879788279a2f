package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"stuDealsWs/internal/modules/realtime/application/usecase"
	"stuDealsWs/internal/shared/auth"
)

// BroadcastRequest is the REST trigger payload. Internal services (the offer
// review backend, the redemption pipeline) use this instead of holding a
// websocket open.
type BroadcastRequest struct {
	Kind      string                 `json:"kind"`
	ScopeID   string                 `json:"scopeId"`
	SubjectID string                 `json:"subjectId,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type BroadcastResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
}

// NewBroadcastHTTPHandler exposes POST /broadcast, admin-token protected.
func NewBroadcastHTTPHandler(connectUC *usecase.ConnectVendorUseCase, relayUC *usecase.RelayUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := connectUC.Execute(auth.ExtractToken(c.Request(), "token"))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
		}
		if !claims.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin token required")
		}

		var req BroadcastRequest
		if err := c.Bind(&req); err != nil {
			slog.Warn("broadcast http: invalid request body", slog.Any("error", err))
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		if strings.TrimSpace(req.Kind) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "kind field is required")
		}

		data := make(map[string]interface{}, len(req.Data)+1)
		for k, v := range req.Data {
			data[k] = v
		}
		if strings.TrimSpace(req.SubjectID) != "" {
			data["subjectId"] = strings.TrimSpace(req.SubjectID)
		}

		if err := relayUC.Relay(c.Request().Context(), req.Kind, req.ScopeID, data); err != nil {
			switch {
			case errors.Is(err, usecase.ErrUnknownBroadcastKind):
				return echo.NewHTTPError(http.StatusBadRequest, "unknown broadcast kind")
			case errors.Is(err, usecase.ErrScopeForbidden):
				return echo.NewHTTPError(http.StatusBadRequest, "scopeId field is required")
			default:
				return echo.NewHTTPError(http.StatusInternalServerError, "broadcast failed")
			}
		}

		slog.Info("broadcast http: notice relayed", slog.String("kind", req.Kind), slog.String("scopeId", req.ScopeID), slog.String("by", claims.Subject))
		return c.JSON(http.StatusOK, BroadcastResponse{Success: true, Kind: req.Kind})
	}
}
