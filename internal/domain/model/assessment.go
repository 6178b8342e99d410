package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/event"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

// topFactorCount caps how many factors a HighRiskDetected event carries.
const topFactorCount = 3

// Assessment is the aggregate root tying a claim's anomalies to its risk score.
// It is fully built by NewAssessment and never changes afterwards, apart from
// draining its pending domain events.
type Assessment struct {
	assessedAt   time.Time
	claimID      string
	anomalies    []StatisticalAnomaly
	domainEvents []event.DomainEvent
	score        RiskScore
	id           uuid.UUID
}

// NewAssessment creates an assessment for a scored claim and records the
// events that describe it.
func NewAssessment(claimID string, anomalies []StatisticalAnomaly, score RiskScore, assessedAt time.Time) (*Assessment, error) {
	if claimID == "" {
		return nil, fmt.Errorf("claim ID is required")
	}
	if score.Overall < 0 || score.Overall > 100 {
		return nil, fmt.Errorf("risk score must be between 0 and 100, got %d", score.Overall)
	}
	if score.Level.IsZero() {
		return nil, fmt.Errorf("risk level is required")
	}

	a := &Assessment{
		id:         uuid.New(),
		claimID:    claimID,
		anomalies:  anomalies,
		score:      score,
		assessedAt: assessedAt.UTC(),
	}

	anomalyTypes := make([]string, 0, len(anomalies))
	for _, an := range anomalies {
		anomalyTypes = append(anomalyTypes, an.Type.String())
	}

	a.domainEvents = append(a.domainEvents, event.AssessmentCompleted{
		AssessmentID: a.id,
		ClaimID:      a.claimID,
		RiskScore:    score.Overall,
		LowerBound:   score.ConfidenceInterval.Lower,
		UpperBound:   score.ConfidenceInterval.Upper,
		RiskLevel:    score.Level.String(),
		Method:       string(score.Method),
		AnomalyTypes: anomalyTypes,
		AssessedAt:   a.assessedAt,
	})

	if score.Level.AtLeast(valueobject.RiskLevelHigh) {
		top := make([]string, 0, topFactorCount)
		for i := 0; i < len(score.Factors) && i < topFactorCount; i++ {
			top = append(top, score.Factors[i].Description)
		}
		a.domainEvents = append(a.domainEvents, event.HighRiskDetected{
			AssessmentID: a.id,
			ClaimID:      a.claimID,
			RiskScore:    score.Overall,
			RiskLevel:    score.Level.String(),
			TopFactors:   top,
			DetectedAt:   a.assessedAt,
		})
	}

	return a, nil
}

// --- Accessors ---

func (a *Assessment) ID() uuid.UUID                   { return a.id }
func (a *Assessment) ClaimID() string                 { return a.claimID }
func (a *Assessment) Anomalies() []StatisticalAnomaly { return a.anomalies }
func (a *Assessment) Score() RiskScore                { return a.score }
func (a *Assessment) AssessedAt() time.Time           { return a.assessedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *Assessment) DomainEvents() []event.DomainEvent {
	evts := a.domainEvents
	a.domainEvents = make([]event.DomainEvent, 0)
	return evts
}
