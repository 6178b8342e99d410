package service

import "github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"

// Scorer turns a comparison and its anomalies into a risk score.
// Both RiskScorer (component-weighted) and BaselineScorer (rules only) implement this.
type Scorer interface {
	Score(c *model.Comparison, anomalies []model.StatisticalAnomaly) (model.RiskScore, error)
}

// Detector finds statistical anomalies in a comparison.
type Detector interface {
	Detect(c *model.Comparison) ([]model.StatisticalAnomaly, error)
}

var (
	_ Scorer   = (*RiskScorer)(nil)
	_ Scorer   = (*BaselineScorer)(nil)
	_ Detector = (*AnomalyDetector)(nil)
)
