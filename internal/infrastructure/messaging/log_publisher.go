package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/event"
)

// LogPublisher implements port.EventPublisher by logging events. It is used
// when no Kafka broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new logging event publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogPublisher{logger: logger}
}

// Publish logs each event with its payload.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...event.DomainEvent) error {
	for _, evt := range domainEvents {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.InfoContext(ctx, "domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.String("partition_key", evt.PartitionKey()),
			slog.String("payload", string(payload)),
		)
	}
	return nil
}
