package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTValidatorAcceptsVendorToken(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator("channel-secret")
	raw := signToken(t, "channel-secret", &Claims{
		SessionID: "sess-1",
		Role:      "vendor",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "vendor-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := validator.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "vendor-42" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.SessionID != "sess-1" {
		t.Fatalf("unexpected session id: %s", claims.SessionID)
	}
	if !claims.IsVendor() {
		t.Fatal("expected vendor role")
	}
	if claims.IsAdmin() {
		t.Fatal("did not expect admin role")
	}
}

func TestJWTValidatorRejectsMissingToken(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator("channel-secret")
	if _, err := validator.Validate("   "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestJWTValidatorRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator("channel-secret")
	raw := signToken(t, "other-secret", &Claims{
		Role: "vendor",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "vendor-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := validator.Validate(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTValidatorRejectsMissingSubject(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator("channel-secret")
	raw := signToken(t, "channel-secret", &Claims{
		Role: "vendor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := validator.Validate(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTValidatorDerivesSessionID(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator("channel-secret")
	exp := time.Now().Add(time.Hour)
	raw := signToken(t, "channel-secret", &Claims{
		Role: "vendor",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "vendor-7",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := validator.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.SessionID == "" {
		t.Fatal("expected derived session id")
	}
}

func TestExtractTokenPrefersAuthorizationHeader(t *testing.T) {
	t.Parallel()

	if got := ExtractBearerTokenFromHeader("Bearer abc.def.ghi"); got != "abc.def.ghi" {
		t.Fatalf("unexpected token: %s", got)
	}
	if got := ExtractBearerTokenFromHeader("bearer abc"); got != "abc" {
		t.Fatalf("lowercase prefix not handled: %s", got)
	}
	if got := ExtractBearerTokenFromHeader("Basic abc"); got != "" {
		t.Fatalf("expected empty token for basic auth, got %s", got)
	}
}
