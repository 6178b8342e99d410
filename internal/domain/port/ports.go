package port

import (
	"context"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/event"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
)

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// MetricsRecorder defines the port for assessment telemetry.
type MetricsRecorder interface {
	// RecordAssessment counts a finished assessment, its level, method and anomalies.
	RecordAssessment(ctx context.Context, assessment *model.Assessment)

	// RecordFallback counts a claim that had to be scored by the baseline scorer.
	RecordFallback(ctx context.Context)
}
