// Package events defines the wire envelope every published domain event
// travels in.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is the minimal contract an event needs to be enveloped.
type Event interface {
	EventType() string
	AggregateID() uuid.UUID
}

// Envelope wraps an event payload with delivery metadata. Consumers
// deduplicate on EventID.
type Envelope struct {
	OccurredAt  time.Time       `json:"occurred_at"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
	EventID     uuid.UUID       `json:"event_id"`
	AggregateID uuid.UUID       `json:"aggregate_id"`
}

// Wrap marshals evt into a new envelope stamped with a fresh id and occurredAt.
func Wrap(evt Event, occurredAt time.Time) (Envelope, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
	}
	return Envelope{
		EventID:     uuid.New(),
		EventType:   evt.EventType(),
		AggregateID: evt.AggregateID(),
		OccurredAt:  occurredAt.UTC(),
		Payload:     payload,
	}, nil
}

// Decode unmarshals the envelope payload into v after checking the event type.
func (e Envelope) Decode(eventType string, v any) error {
	if e.EventType != eventType {
		return fmt.Errorf("unexpected event type %q, want %q", e.EventType, eventType)
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", eventType, err)
	}
	return nil
}
