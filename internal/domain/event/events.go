package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeAssessmentCompleted is emitted for every scored supplement.
	EventTypeAssessmentCompleted = "risk.assessment.completed"

	// EventTypeHighRiskDetected is emitted when a supplement scores high or critical.
	EventTypeHighRiskDetected = "risk.high_risk.detected"
)

// DomainEvent is implemented by every event the assessment aggregate emits.
type DomainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
	PartitionKey() string
}

// AssessmentCompleted is published when a supplement has been scored.
type AssessmentCompleted struct {
	AssessedAt   time.Time `json:"assessed_at"`
	ClaimID      string    `json:"claim_id"`
	RiskLevel    string    `json:"risk_level"`
	Method       string    `json:"method"`
	AnomalyTypes []string  `json:"anomaly_types"`
	RiskScore    int       `json:"risk_score"`
	LowerBound   int       `json:"lower_bound"`
	UpperBound   int       `json:"upper_bound"`
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// EventType returns the event type identifier.
func (e AssessmentCompleted) EventType() string {
	return EventTypeAssessmentCompleted
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e AssessmentCompleted) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// PartitionKey keeps every event for a claim on the same partition.
func (e AssessmentCompleted) PartitionKey() string {
	return e.ClaimID
}

// HighRiskDetected is published when a supplement is assessed at high or
// critical risk, routing the claim to the investigations queue.
type HighRiskDetected struct {
	DetectedAt   time.Time `json:"detected_at"`
	ClaimID      string    `json:"claim_id"`
	RiskLevel    string    `json:"risk_level"`
	TopFactors   []string  `json:"top_factors"`
	RiskScore    int       `json:"risk_score"`
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// EventType returns the event type identifier.
func (e HighRiskDetected) EventType() string {
	return EventTypeHighRiskDetected
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e HighRiskDetected) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// PartitionKey keeps every event for a claim on the same partition.
func (e HighRiskDetected) PartitionKey() string {
	return e.ClaimID
}
