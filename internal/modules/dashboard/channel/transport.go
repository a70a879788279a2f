package channel

import (
	"context"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the slice of a websocket connection the channel uses. JSON framing
// matches the gateway envelope.
type Conn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	Close() error
}

// Dialer opens channel connections. The production implementation wraps
// gorilla; tests substitute an in-memory transport.
type Dialer interface {
	Dial(ctx context.Context, rawURL string) (Conn, error)
}

type wsDialer struct {
	dialer *websocket.Dialer
}

// NewDialer returns the gorilla-backed dialer used outside of tests.
func NewDialer(handshakeTimeout time.Duration) Dialer {
	if handshakeTimeout <= 0 {
		handshakeTimeout = 10 * time.Second
	}
	return &wsDialer{dialer: &websocket.Dialer{HandshakeTimeout: handshakeTimeout}}
}

func (d *wsDialer) Dial(ctx context.Context, rawURL string) (Conn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, nil
}

// endpointURL appends the bearer token as a query parameter, the form the
// gateway accepts for browser-originated connections.
func endpointURL(base, token string) string {
	parsed, err := url.Parse(base)
	if err != nil {
		return base
	}
	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
