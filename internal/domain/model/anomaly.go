package model

import (
	"fmt"
	"math"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

// AnomalyEvidence is one observation supporting an anomaly.
type AnomalyEvidence struct {
	Type          valueobject.EvidenceType
	Description   string
	Value         float64
	ExpectedValue float64
	Deviation     float64
	Significance  float64
}

// NewEvidence builds an evidence entry. Deviation is always |value - expected|
// and significance must be finite and non-negative.
func NewEvidence(t valueobject.EvidenceType, description string, value, expected, significance float64) (AnomalyEvidence, error) {
	if t.IsZero() {
		return AnomalyEvidence{}, fmt.Errorf("evidence type is required")
	}
	if math.IsNaN(significance) || math.IsInf(significance, 0) || significance < 0 {
		return AnomalyEvidence{}, fmt.Errorf("evidence significance must be finite and non-negative, got %v", significance)
	}
	return AnomalyEvidence{
		Type:          t,
		Description:   description,
		Value:         value,
		ExpectedValue: expected,
		Deviation:     math.Abs(value - expected),
		Significance:  significance,
	}, nil
}

// StatisticalAnomaly is a pattern flagged by one of the detector's checks.
type StatisticalAnomaly struct {
	Type               valueobject.AnomalyType
	Severity           valueobject.Severity
	Description        string
	AffectedItems      []string
	Evidence           []AnomalyEvidence
	Confidence         float64
	StatisticalMeasure float64
	Threshold          float64
}

// Validate checks the invariants every emitted anomaly must satisfy.
func (a StatisticalAnomaly) Validate() error {
	if a.Type.IsZero() {
		return fmt.Errorf("anomaly type is required")
	}
	if a.Severity.IsZero() {
		return fmt.Errorf("anomaly %s: severity is required", a.Type)
	}
	if math.IsNaN(a.Confidence) || a.Confidence < 0 || a.Confidence > 1 {
		return fmt.Errorf("anomaly %s: confidence must be within [0,1], got %v", a.Type, a.Confidence)
	}
	if len(a.Evidence) == 0 {
		return fmt.Errorf("anomaly %s: at least one evidence entry is required", a.Type)
	}
	return nil
}
