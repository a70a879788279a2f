package broker

import (
	"context"
	"log/slog"

	"stuDealsWs/internal/modules/realtime/application/port"
	"stuDealsWs/internal/modules/realtime/domain"
)

// HandlerRegistry maps Kafka topics to their change-event handlers.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, topic string, event *domain.ChangeEvent) error {
	if handler, ok := r.handlers[topic]; ok {
		return handler.Handle(ctx, event)
	}
	return nil
}

// Topics returns every registered topic name.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// StartKafkaConsumers spawns one consumer goroutine per registered topic.
// They run until the context is cancelled.
func StartKafkaConsumers(ctx context.Context, registry *HandlerRegistry, brokers []string, groupID string) {
	if len(brokers) == 0 {
		slog.Warn("no kafka brokers configured, change stream disabled")
		return
	}
	for _, topic := range registry.Topics() {
		consumer := NewKafkaConsumer(brokers, groupID, topic)
		go func(topic string, consumer *KafkaConsumer) {
			defer consumer.Close()
			err := consumer.Consume(ctx, func(event *domain.ChangeEvent) error {
				return registry.Dispatch(ctx, topic, event)
			})
			slog.Info("kafka consumer stopped", slog.String("topic", topic), slog.Any("error", err))
		}(topic, consumer)
		slog.Info("kafka consumer started", slog.String("topic", topic), slog.String("group", groupID))
	}
}
