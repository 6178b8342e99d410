package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
)

// Evidence is one observation supporting an anomaly.
type Evidence struct {
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Value         float64 `json:"value"`
	ExpectedValue float64 `json:"expected_value"`
	Deviation     float64 `json:"deviation"`
	Significance  float64 `json:"significance"`
}

// Anomaly is a flagged statistical pattern.
type Anomaly struct {
	Type               string     `json:"type"`
	Severity           string     `json:"severity"`
	Description        string     `json:"description"`
	AffectedItems      []string   `json:"affected_items"`
	Evidence           []Evidence `json:"evidence"`
	Confidence         float64    `json:"confidence"`
	StatisticalMeasure float64    `json:"statistical_measure"`
	Threshold          float64    `json:"threshold"`
}

// RiskFactor is one weighted contributor to the overall risk.
type RiskFactor struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Mitigation  string   `json:"mitigation"`
	Evidence    []string `json:"evidence"`
	Impact      float64  `json:"impact"`
	Likelihood  float64  `json:"likelihood"`
	Confidence  float64  `json:"confidence"`
	Weight      float64  `json:"weight"`
}

// Recommendation is a follow-up action for the claim handler.
type Recommendation struct {
	ID                string   `json:"id"`
	Priority          string   `json:"priority"`
	Category          string   `json:"category"`
	Action            string   `json:"action"`
	Rationale         string   `json:"rationale"`
	ExpectedOutcome   string   `json:"expected_outcome"`
	Timeframe         string   `json:"timeframe"`
	RequiredResources []string `json:"required_resources"`
}

// ConfidenceInterval bounds the overall score.
type ConfidenceInterval struct {
	Lower      int `json:"lower"`
	Upper      int `json:"upper"`
	Confidence int `json:"confidence"`
}

// Components holds the four component scores.
type Components struct {
	Statistical   int `json:"statistical"`
	Behavioral    int `json:"behavioral"`
	Documentation int `json:"documentation"`
	Compliance    int `json:"compliance"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	AssessedAt         time.Time          `json:"assessed_at"`
	ClaimID            string             `json:"claim_id"`
	RiskLevel          string             `json:"risk_level"`
	Method             string             `json:"method"`
	Anomalies          []Anomaly          `json:"anomalies"`
	RiskFactors        []RiskFactor       `json:"risk_factors"`
	Recommendations    []Recommendation   `json:"recommendations"`
	Components         Components         `json:"components"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	RiskScore          int                `json:"risk_score"`
	ID                 uuid.UUID          `json:"id"`
}

// BatchItemResult is the outcome for one comparison of a batch. Exactly one
// of Assessment and Error is set.
type BatchItemResult struct {
	Assessment *AssessmentResponse `json:"assessment,omitempty"`
	ClaimID    string              `json:"claim_id"`
	Error      string              `json:"error,omitempty"`
}

// BatchResponse lists batch results in request order.
type BatchResponse struct {
	Results []BatchItemResult `json:"results"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.Assessment) AssessmentResponse {
	score := a.Score()
	resp := AssessmentResponse{
		ID:        a.ID(),
		ClaimID:   a.ClaimID(),
		RiskScore: score.Overall,
		RiskLevel: score.Level.String(),
		Method:    string(score.Method),
		ConfidenceInterval: ConfidenceInterval{
			Lower:      score.ConfidenceInterval.Lower,
			Upper:      score.ConfidenceInterval.Upper,
			Confidence: score.ConfidenceInterval.Confidence,
		},
		Components: Components{
			Statistical:   score.Components.Statistical,
			Behavioral:    score.Components.Behavioral,
			Documentation: score.Components.Documentation,
			Compliance:    score.Components.Compliance,
		},
		AssessedAt:      a.AssessedAt(),
		Anomalies:       make([]Anomaly, 0, len(a.Anomalies())),
		RiskFactors:     make([]RiskFactor, 0, len(score.Factors)),
		Recommendations: make([]Recommendation, 0, len(score.Recommendations)),
	}

	for _, an := range a.Anomalies() {
		evidence := make([]Evidence, 0, len(an.Evidence))
		for _, ev := range an.Evidence {
			evidence = append(evidence, Evidence{
				Type:          ev.Type.String(),
				Description:   ev.Description,
				Value:         ev.Value,
				ExpectedValue: ev.ExpectedValue,
				Deviation:     ev.Deviation,
				Significance:  ev.Significance,
			})
		}
		resp.Anomalies = append(resp.Anomalies, Anomaly{
			Type:               an.Type.String(),
			Severity:           an.Severity.String(),
			Description:        an.Description,
			AffectedItems:      nonNil(an.AffectedItems),
			Evidence:           evidence,
			Confidence:         an.Confidence,
			StatisticalMeasure: an.StatisticalMeasure,
			Threshold:          an.Threshold,
		})
	}

	for _, f := range score.Factors {
		resp.RiskFactors = append(resp.RiskFactors, RiskFactor{
			ID:          f.ID,
			Category:    f.Category.String(),
			Severity:    f.Severity.String(),
			Description: f.Description,
			Mitigation:  f.Mitigation,
			Evidence:    nonNil(f.Evidence),
			Impact:      f.Impact,
			Likelihood:  f.Likelihood,
			Confidence:  f.Confidence,
			Weight:      f.Weight,
		})
	}

	for _, r := range score.Recommendations {
		resp.Recommendations = append(resp.Recommendations, Recommendation{
			ID:                r.ID,
			Priority:          r.Priority.String(),
			Category:          r.Category.String(),
			Action:            r.Action,
			Rationale:         r.Rationale,
			ExpectedOutcome:   r.ExpectedOutcome,
			Timeframe:         r.Timeframe,
			RequiredResources: nonNil(r.RequiredResources),
		})
	}

	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
