package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/event"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/events"
	pkgkafka "github.com/Hec-S/Supplement-Guard-sub003/pkg/kafka"
)

// HeaderEventType carries the event type on every published message.
const HeaderEventType = "event_type"

// MessageProducer is satisfied by *pkgkafka.Producer.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// KafkaPublisher implements port.EventPublisher using Kafka.
type KafkaPublisher struct {
	producer MessageProducer
	logger   *slog.Logger
	now      func() time.Time
	topic    string
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer MessageProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
		now:      time.Now,
	}
}

// Publish sends domain events to Kafka in one batch, keyed by claim so a
// claim's events stay ordered on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, domainEvents ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		env, err := events.Wrap(evt, p.now())
		if err != nil {
			return err
		}
		payload, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("failed to marshal envelope for %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.PartitionKey()),
			Value: payload,
			Headers: map[string]string{
				HeaderEventType: eventType,
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
