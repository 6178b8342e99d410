package service

import (
	"fmt"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

// BaselineScorer is the rule-based fallback used when the component scorer
// cannot produce a score. It reads only the comparison totals and counts and
// never fails.
type BaselineScorer struct {
	thresholds Thresholds
}

// NewBaselineScorer creates a BaselineScorer. Only the variance factor cutoffs
// and the investigation threshold are read from thresholds.
func NewBaselineScorer(thresholds Thresholds) *BaselineScorer {
	return &BaselineScorer{thresholds: thresholds}
}

const maxCriticalDiscrepancyRules = 3

// Score evaluates the comparison with fixed rules. The base score is 10 and
// each rule that fires adds points and a factor. Anomalies are ignored.
func (s *BaselineScorer) Score(c *model.Comparison, _ []model.StatisticalAnomaly) (model.RiskScore, error) {
	if c == nil {
		c = &model.Comparison{}
	}
	t := s.thresholds.Factors

	score := 10
	var factors []model.RiskFactor
	fire := func(points int, id string, category valueobject.RiskCategory, severity valueobject.Severity, description string) {
		score += points
		factors = append(factors, model.RiskFactor{
			ID:          "baseline-" + id,
			Category:    category,
			Description: description,
			Impact:      severity.Impact(),
			Likelihood:  1,
			Confidence:  1,
			Severity:    severity,
			Weight:      severity.Weight(),
		})
	}

	// Rule: supplement well away from the original estimate.
	variance := c.VarianceRatio()
	if variance > t.VarianceMedium {
		fire(20, "variance", valueobject.CategoryVariance, valueobject.SeverityMedium,
			fmt.Sprintf("supplement %s the original estimate by %.1f%%", varianceDirection(c), variance*100))
	}

	// Rule: supplement far from the original estimate.
	if variance > t.VarianceHigh {
		fire(15, "high-variance", valueobject.CategoryVariance, valueobject.SeverityHigh,
			fmt.Sprintf("supplement %s the original estimate by more than half", varianceDirection(c)))
	}

	// Rule: critical discrepancies, capped.
	critical, _ := c.DiscrepancyCounts()
	for i := 0; i < min(critical, maxCriticalDiscrepancyRules); i++ {
		fire(15, fmt.Sprintf("critical-discrepancy-%d", i+1), valueobject.CategoryCompliance, valueobject.SeverityCritical,
			"critical discrepancy reported by reconciliation")
	}

	// Rule: original items missing from the supplement.
	if len(c.UnmatchedOriginals) > 0 {
		fire(10, "unmatched-originals", valueobject.CategoryDocumentation, valueobject.SeverityMedium,
			fmt.Sprintf("%d original item(s) have no supplement counterpart", len(c.UnmatchedOriginals)))
	}

	// Rule: many new items added by the supplement.
	if items := c.ItemCount(); items > 0 && 4*len(c.AddedItems) > items {
		fire(10, "added-items", valueobject.CategoryVariance, valueobject.SeverityMedium,
			fmt.Sprintf("%d of %d supplement item(s) are new", len(c.AddedItems), items))
	}

	if score > 100 {
		score = 100
	}

	result := model.RiskScore{
		Overall:            score,
		Level:              valueobject.RiskLevelFromScore(score),
		Method:             model.MethodBaseline,
		ConfidenceInterval: model.ConfidenceInterval{Lower: score, Upper: score, Confidence: IntervalConfidence},
		Factors:            factors,
		Recommendations:    []model.Recommendation{},
	}
	if score >= s.thresholds.Recommendations.InvestigationScore {
		result.Recommendations = append(result.Recommendations, cloneRecommendation(investigationRecommendation))
	}
	return result, nil
}
