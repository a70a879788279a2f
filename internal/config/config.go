package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Security  SecurityConfig
	REST      RESTConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

type SecurityConfig struct {
	JWTSecret string
}

// RESTConfig points at the marketplace REST API that owns the actual data.
// The channel only fetches snapshots from it; it never writes.
type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	// Topics maps a dashboard domain (products, orders, ...) to the Kafka
	// topic carrying its change events.
	Topics map[string]string
}

type WebsocketConfig struct {
	// SendBuffer is the per-client outbound queue length.
	SendBuffer int
	// CommandRate and CommandBurst bound how fast one client may issue
	// commands before the gateway starts dropping them.
	CommandRate  float64
	CommandBurst int
}

// Load resolves the configuration from environment variables, applying the
// defaults a local run expects.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "8081"),
		},
		Logging: LoggingConfig{
			Level:     envOr("LOG_LEVEL", "info"),
			Format:    envOr("LOG_FORMAT", "text"),
			Directory: envOr("LOG_DIR", "./logs"),
		},
		Security: SecurityConfig{
			JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		},
		REST: RESTConfig{
			BaseURL: envOr("REST_BASE_URL", "http://localhost:3000"),
			Timeout: envDurationOr("REST_TIMEOUT", 10*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(envOr("KAFKA_BROKERS", os.Getenv("KAFKA_BROKER"))),
			GroupID: envOr("KAFKA_GROUP_ID", "studeals-ws"),
			Topics:  parseTopicMap(os.Getenv("KAFKA_DOMAIN_TOPICS")),
		},
		Websocket: WebsocketConfig{
			SendBuffer:   envIntOr("WS_SEND_BUFFER", 8),
			CommandRate:  envFloatOr("WS_COMMAND_RATE", 10),
			CommandBurst: envIntOr("WS_COMMAND_BURST", 20),
		},
	}

	if cfg.Security.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envFloatOr(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseTopicMap understands "products=studeals.products,orders=studeals.orders".
// An empty value falls back to one topic per domain named studeals.<domain>.
func parseTopicMap(raw string) map[string]string {
	topics := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		topics[key] = value
	}
	return topics
}
