package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	// PublishEvent sends an already-built envelope as-is. Outbox relays
	// go through here so the stored event ID survives retries and
	// consumers can dedup on it.
	PublishEvent(ctx context.Context, event *Event) error
	Close() error
}

// KafkaEventPublisher publishes events to Kafka through watermill.
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	saramaConfig := kafka.DefaultSaramaSyncPublisherConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll

	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:               brokers,
			Marshaler:             kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaConfig,
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	return p.PublishEvent(ctx, NewEvent(eventType, data))
}

func (p *KafkaEventPublisher) PublishEvent(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)

	if err := p.publisher.Publish(event.Type, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("event published",
		"event_id", event.ID,
		"event_type", event.Type)

	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// NoopEventPublisher drops events. Used when no broker is configured.
type NoopEventPublisher struct {
	logger *slog.Logger
}

func NewNoopEventPublisher(logger *slog.Logger) *NoopEventPublisher {
	return &NoopEventPublisher{logger: logger}
}

func (p *NoopEventPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	p.logger.Debug("event dropped, no broker configured", "event_type", eventType)
	return nil
}

func (p *NoopEventPublisher) PublishEvent(_ context.Context, event *Event) error {
	p.logger.Debug("event dropped, no broker configured", "event_type", event.Type)
	return nil
}

func (p *NoopEventPublisher) Close() error { return nil }
