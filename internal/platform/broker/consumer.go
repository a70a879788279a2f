package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"stuDealsWs/internal/modules/realtime/domain"
)

// KafkaConsumer reads change events published by the marketplace backend for
// one topic and hands them to the registered handler.
type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

func (c *KafkaConsumer) Consume(ctx context.Context, handler func(*domain.ChangeEvent) error) error {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			continue
		}
		event := decodeChangeEvent(m)
		slog.Info("kafka change event consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("domain", event.Domain),
			slog.String("action", event.Action),
			slog.String("scopeId", event.ScopeID),
			slog.String("kind", event.Kind),
		)
		if err := handler(event); err != nil {
			slog.Warn("kafka handler error", slog.String("topic", m.Topic), slog.Any("error", err))
		}
	}
}

// decodeChangeEvent tolerates producers that publish bare payloads instead of
// the full event document; those fall back to a domain inferred from the
// topic name with the raw value as data.
func decodeChangeEvent(m kafka.Message) *domain.ChangeEvent {
	event := &domain.ChangeEvent{}
	if err := json.Unmarshal(m.Value, event); err != nil || event.Domain == "" {
		event = &domain.ChangeEvent{
			Domain: inferDomainFromTopic(m.Topic),
			Action: domain.ActionUpdated,
			Data:   string(m.Value),
		}
	}
	event.Normalize(time.Now())
	return event
}

func inferDomainFromTopic(topic string) string {
	if idx := strings.LastIndex(topic, "."); idx >= 0 {
		topic = topic[idx+1:]
	}
	return strings.ToLower(strings.TrimSpace(topic))
}
