package usecase

import (
	"errors"
	"log/slog"
	"strings"

	"stuDealsWs/internal/shared/auth"
)

var (
	ErrMissingToken   = errors.New("missing token")
	ErrScopeForbidden = errors.New("scope forbidden")
	ErrRoleRejected   = errors.New("role not allowed on channel")
)

// ConnectVendorUseCase validates the credential presented at connect time.
// The channel never authenticates by itself; it only forwards the token to
// the validator configured against the auth service's secret.
type ConnectVendorUseCase struct {
	Validator auth.TokenValidator
}

func NewConnectVendorUseCase(validator auth.TokenValidator) *ConnectVendorUseCase {
	return &ConnectVendorUseCase{Validator: validator}
}

// Execute validates the token and returns its claims. Vendors and admins are
// both accepted; admins connect only to fire broadcast triggers.
func (uc *ConnectVendorUseCase) Execute(token string) (*auth.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	claims, err := uc.Validator.Validate(token)
	if err != nil {
		slog.Warn("connect token validation failed", slog.Any("error", err))
		return nil, err
	}
	if !claims.IsVendor() && !claims.IsAdmin() {
		slog.Warn("connect role rejected", slog.String("userId", claims.Subject), slog.String("role", claims.Role))
		return nil, ErrRoleRejected
	}

	slog.Info("connect token valid", slog.String("userId", claims.Subject), slog.String("sessionId", claims.SessionID), slog.String("role", claims.Role))
	return claims, nil
}

// AuthorizeJoin decides whether the connection may bind to the requested room
// scope. A vendor serves a single identity for its whole lifetime, so the
// scope must equal the token subject; admins never join vendor rooms.
func (uc *ConnectVendorUseCase) AuthorizeJoin(claims *auth.Claims, scopeID string) error {
	scopeID = strings.TrimSpace(scopeID)
	if claims == nil || scopeID == "" {
		return ErrScopeForbidden
	}
	if !claims.IsVendor() || claims.Subject != scopeID {
		return ErrScopeForbidden
	}
	return nil
}
