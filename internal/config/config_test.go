package config

import (
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("REST_TIMEOUT", "")
	t.Setenv("KAFKA_BROKERS", " broker-1:9092 , broker-2:9092 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8081" {
		t.Fatalf("unexpected port: %s", cfg.Server.Port)
	}
	if cfg.REST.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.REST.Timeout)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %#v", cfg.Kafka.Brokers)
	}
	if cfg.Websocket.SendBuffer != 8 {
		t.Fatalf("unexpected send buffer: %d", cfg.Websocket.SendBuffer)
	}
}

func TestParseTopicMap(t *testing.T) {
	t.Parallel()

	topics := parseTopicMap(" products=studeals.products, orders=studeals.orders ,broken,=x,y= ")
	if len(topics) != 2 {
		t.Fatalf("unexpected topic count: %d", len(topics))
	}
	if topics["products"] != "studeals.products" {
		t.Fatalf("unexpected products topic: %s", topics["products"])
	}
	if topics["orders"] != "studeals.orders" {
		t.Fatalf("unexpected orders topic: %s", topics["orders"])
	}
}
