package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

// Component names, as reported in ComponentError.
const (
	ComponentStatistical   = "statistical"
	ComponentBehavioral    = "behavioral"
	ComponentDocumentation = "documentation"
	ComponentCompliance    = "compliance"
	ComponentFactors       = "factors"
)

// IntervalConfidence is the nominal confidence of RiskScore.ConfidenceInterval, in percent.
const IntervalConfidence = 95

// RiskScorer combines four weighted component scores into an overall,
// confidence-bounded risk score with supporting factors and recommendations.
// It is stateless and safe for concurrent use.
type RiskScorer struct {
	logger     *slog.Logger
	thresholds Thresholds
}

// NewRiskScorer creates a scorer with the given tuning. A nil logger discards output.
func NewRiskScorer(thresholds Thresholds, logger *slog.Logger) *RiskScorer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RiskScorer{thresholds: thresholds, logger: logger}
}

// Score computes the risk score. Any component failure aborts the whole
// score; the returned error joins one *ComponentError per failed component.
func (s *RiskScorer) Score(c *model.Comparison, anomalies []model.StatisticalAnomaly) (model.RiskScore, error) {
	if c == nil {
		return model.RiskScore{}, model.ErrNilComparison
	}

	var errs []error
	component := func(name string, fn func() (float64, error)) int {
		v, err := fn()
		if err != nil {
			errs = append(errs, &ComponentError{Component: name, Err: err})
			return 0
		}
		return clampScore(v)
	}

	components := model.ComponentScores{
		Statistical:   component(ComponentStatistical, func() (float64, error) { return s.statistical(anomalies) }),
		Behavioral:    component(ComponentBehavioral, func() (float64, error) { return s.behavioral(c) }),
		Documentation: component(ComponentDocumentation, func() (float64, error) { return s.documentation(c) }),
		Compliance:    component(ComponentCompliance, func() (float64, error) { return s.compliance(c), nil }),
	}
	if len(errs) > 0 {
		return model.RiskScore{}, errors.Join(errs...)
	}

	w := s.thresholds.Weights
	overall := clampScore(w.Statistical*float64(components.Statistical) +
		w.Behavioral*float64(components.Behavioral) +
		w.Documentation*float64(components.Documentation) +
		w.Compliance*float64(components.Compliance))

	factors, err := s.riskFactors(c, anomalies, components)
	if err != nil {
		return model.RiskScore{}, &ComponentError{Component: ComponentFactors, Err: err}
	}

	score := model.RiskScore{
		Overall:            overall,
		Components:         components,
		ConfidenceInterval: s.confidenceInterval(overall, components),
		Level:              valueobject.RiskLevelFromScore(overall),
		Method:             model.MethodProfessional,
		Factors:            factors,
	}
	score.Recommendations = s.recommendations(score, anomalies)

	s.logger.Debug("risk score computed",
		slog.String("claim_id", c.ClaimID),
		slog.Int("overall", overall),
		slog.String("level", score.Level.String()),
		slog.Int("factors", len(factors)),
	)

	return score, nil
}

// statistical is the confidence-weighted mean of the anomalies' severity base scores.
func (s *RiskScorer) statistical(anomalies []model.StatisticalAnomaly) (float64, error) {
	var weighted, confidence float64
	for i, a := range anomalies {
		if err := a.Validate(); err != nil {
			return 0, fmt.Errorf("anomaly %d: %w", i, err)
		}
		weighted += a.Severity.BaseScore() * a.Confidence
		confidence += a.Confidence
	}
	if confidence == 0 {
		return 0, nil
	}
	return weighted / confidence, nil
}

func (s *RiskScorer) behavioral(c *model.Comparison) (float64, error) {
	if c.DataQuality == nil {
		return 0, ErrMissingDataQuality
	}
	items := c.ItemCount()
	if items == 0 {
		return 0, nil
	}
	k := s.thresholds.Behavioral
	return k.HighVarianceShare*ratio(c.HighVarianceCount(), items) +
		k.PerPattern*float64(c.SuspiciousPatternCount) +
		k.DataQuality*(1-c.DataQuality.Product()), nil
}

func (s *RiskScorer) documentation(c *model.Comparison) (float64, error) {
	if c.DataQuality == nil {
		return 0, ErrMissingDataQuality
	}
	k := s.thresholds.Documentation
	return k.MatchingAccuracy*(1-c.MatchingAccuracy) +
		k.UnmatchedShare*ratio(len(c.UnmatchedOriginals), c.TotalReconciledCount()) +
		k.PerIssue*float64(c.DataQuality.IssueCount), nil
}

func (s *RiskScorer) compliance(c *model.Comparison) float64 {
	items := c.ItemCount()
	if items == 0 {
		return 0
	}
	critical, high := c.DiscrepancyCounts()
	k := s.thresholds.Compliance
	return k.PerCritical*float64(critical) +
		k.PerHigh*float64(high) +
		k.DiscrepancyRate*ratio(len(c.Discrepancies), items)
}

// confidenceInterval treats the four components as a sample and bounds the
// overall score by IntervalZ standard errors.
func (s *RiskScorer) confidenceInterval(overall int, components model.ComponentScores) model.ConfidenceInterval {
	values := components.Values()
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	_, sd := meanStdDev(xs)
	margin := s.thresholds.IntervalZ * sd / math.Sqrt(float64(len(xs)))

	return model.ConfidenceInterval{
		Lower:      max(0, int(math.Round(float64(overall)-margin))),
		Upper:      min(100, int(math.Round(float64(overall)+margin))),
		Confidence: IntervalConfidence,
	}
}
