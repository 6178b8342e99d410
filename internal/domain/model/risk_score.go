package model

import "github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"

// ScoringMethod records which scorer produced a RiskScore.
type ScoringMethod string

const (
	MethodProfessional ScoringMethod = "professional"
	MethodBaseline     ScoringMethod = "baseline"
)

// RiskFactor is one weighted contributor to the overall risk.
type RiskFactor struct {
	Category    valueobject.RiskCategory
	Severity    valueobject.Severity
	ID          string
	Description string
	Mitigation  string
	Evidence    []string
	Impact      float64
	Likelihood  float64
	Confidence  float64
	Weight      float64
}

// Exposure is impact × likelihood, the key factors are ordered by.
func (f RiskFactor) Exposure() float64 {
	return f.Impact * f.Likelihood
}

// Recommendation is a follow-up action for the claim handler.
type Recommendation struct {
	Priority          valueobject.Priority
	Category          valueobject.RecommendationCategory
	ID                string
	Action            string
	Rationale         string
	ExpectedOutcome   string
	Timeframe         string
	RequiredResources []string
}

// ConfidenceInterval bounds the overall score.
type ConfidenceInterval struct {
	Lower      int
	Upper      int
	Confidence int
}

// ComponentScores holds the four weighted inputs to the overall score, each 0-100.
type ComponentScores struct {
	Statistical   int
	Behavioral    int
	Documentation int
	Compliance    int
}

// Values returns the components in a fixed order.
func (c ComponentScores) Values() [4]int {
	return [4]int{c.Statistical, c.Behavioral, c.Documentation, c.Compliance}
}

// RiskScore is the composite, confidence-bounded fraud-risk assessment.
type RiskScore struct {
	Level              valueobject.RiskLevel
	Method             ScoringMethod
	Factors            []RiskFactor
	Recommendations    []Recommendation
	Components         ComponentScores
	ConfidenceInterval ConfidenceInterval
	Overall            int
}

// HasRecommendation reports whether any recommendation carries priority p.
func (s RiskScore) HasRecommendation(p valueobject.Priority) bool {
	for _, r := range s.Recommendations {
		if r.Priority.Equal(p) {
			return true
		}
	}
	return false
}
