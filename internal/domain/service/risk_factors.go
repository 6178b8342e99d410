package service

import (
	"fmt"
	"sort"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

var mitigations = map[valueobject.AnomalyType]string{
	valueobject.AnomalyOutlier:                  "Verify outlying line items against market rates and the original estimate",
	valueobject.AnomalyArtificialDigitPattern:   "Request source invoices and check for fabricated or rounded amounts",
	valueobject.AnomalyCalculationInconsistency: "Recompute line totals and request corrected documentation",
	valueobject.AnomalyTemporal:                 "Review processing logs and resubmit the comparison",
	valueobject.AnomalyGeographic:               "Confirm the repair location against the claim record",
}

const (
	documentationMitigation = "Request missing documentation and re-run reconciliation"
	complianceMitigation    = "Escalate the discrepancy to compliance for review"
	varianceMitigation      = "Obtain itemised justification for the supplement increase"

	documentationFactorConfidence = 0.8
	complianceFactorLikelihood    = 1.0
	complianceFactorConfidence    = 0.9
	documentationHighScore        = 80
)

// riskFactors expands anomalies and a few rule-based signals into factors
// ordered by exposure, largest first.
func (s *RiskScorer) riskFactors(c *model.Comparison, anomalies []model.StatisticalAnomaly, components model.ComponentScores) ([]model.RiskFactor, error) {
	factors := make([]model.RiskFactor, 0, len(anomalies)+2)

	for i, a := range anomalies {
		category, err := valueobject.RiskCategoryFromAnomalyType(a.Type)
		if err != nil {
			return nil, err
		}
		evidence := make([]string, len(a.Evidence))
		for j, ev := range a.Evidence {
			evidence[j] = ev.Description
		}
		factors = append(factors, model.RiskFactor{
			ID:          fmt.Sprintf("%s-%d", a.Type, i+1),
			Category:    category,
			Description: a.Description,
			Impact:      a.Severity.Impact(),
			Likelihood:  a.Confidence,
			Confidence:  a.Confidence,
			Evidence:    evidence,
			Mitigation:  mitigations[a.Type],
			Severity:    a.Severity,
			Weight:      a.Severity.Weight() * a.Confidence,
		})
	}

	if f, ok := s.varianceFactor(c); ok {
		factors = append(factors, f)
	}
	if f, ok := s.documentationFactor(c, components.Documentation); ok {
		factors = append(factors, f)
	}
	factors = append(factors, complianceFactors(c)...)

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Exposure() > factors[j].Exposure()
	})
	return factors, nil
}

func (s *RiskScorer) varianceFactor(c *model.Comparison) (model.RiskFactor, bool) {
	t := s.thresholds.Factors
	r := c.VarianceRatio()
	if r <= t.VarianceMedium {
		return model.RiskFactor{}, false
	}
	severity := valueobject.SeverityMedium
	if r > t.VarianceHigh {
		severity = valueobject.SeverityHigh
	}
	return model.RiskFactor{
		ID:          "variance",
		Category:    valueobject.CategoryVariance,
		Description: fmt.Sprintf("supplement %s the original estimate by %.1f%%", varianceDirection(c), r*100),
		Impact:      t.VarianceImpact,
		Likelihood:  t.VarianceLikelihood,
		Confidence:  t.VarianceConfidence,
		Evidence: []string{
			fmt.Sprintf("total variance %s on original total %s", c.TotalVariance.StringFixed(2), c.OriginalTotal.StringFixed(2)),
		},
		Mitigation: varianceMitigation,
		Severity:   severity,
		Weight:     severity.Weight() * t.VarianceConfidence,
	}, true
}

// varianceDirection words the sign of the total variance. Revisions in
// either direction count toward the variance factor.
func varianceDirection(c *model.Comparison) string {
	if c.TotalVariance.IsNegative() {
		return "falls short of"
	}
	return "exceeds"
}

func (s *RiskScorer) documentationFactor(c *model.Comparison, score int) (model.RiskFactor, bool) {
	if score < s.thresholds.Factors.DocumentationScore {
		return model.RiskFactor{}, false
	}
	severity := valueobject.SeverityMedium
	if score >= documentationHighScore {
		severity = valueobject.SeverityHigh
	}
	evidence := []string{fmt.Sprintf("matching accuracy %.0f%%", c.MatchingAccuracy*100)}
	if n := len(c.UnmatchedOriginals); n > 0 {
		evidence = append(evidence, fmt.Sprintf("%d original item(s) have no supplement counterpart", n))
	}
	if c.DataQuality != nil && c.DataQuality.IssueCount > 0 {
		evidence = append(evidence, fmt.Sprintf("%d data-quality issue(s) reported", c.DataQuality.IssueCount))
	}
	return model.RiskFactor{
		ID:          "documentation",
		Category:    valueobject.CategoryDocumentation,
		Description: fmt.Sprintf("documentation score %d indicates incomplete or unreliable paperwork", score),
		Impact:      float64(score),
		Likelihood:  float64(score) / 100,
		Confidence:  documentationFactorConfidence,
		Evidence:    evidence,
		Mitigation:  documentationMitigation,
		Severity:    severity,
		Weight:      severity.Weight() * documentationFactorConfidence,
	}, true
}

// complianceFactors raises one factor per critical discrepancy.
func complianceFactors(c *model.Comparison) []model.RiskFactor {
	var factors []model.RiskFactor
	for i, d := range c.Discrepancies {
		if !d.Severity.Equal(valueobject.SeverityCritical) {
			continue
		}
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		var evidence []string
		if d.ItemID != "" {
			evidence = append(evidence, "affects item "+d.ItemID)
		}
		factors = append(factors, model.RiskFactor{
			ID:          "compliance-" + id,
			Category:    valueobject.CategoryCompliance,
			Description: d.Description,
			Impact:      d.Severity.Impact(),
			Likelihood:  complianceFactorLikelihood,
			Confidence:  complianceFactorConfidence,
			Evidence:    evidence,
			Mitigation:  complianceMitigation,
			Severity:    d.Severity,
			Weight:      d.Severity.Weight() * complianceFactorConfidence,
		})
	}
	return factors
}
