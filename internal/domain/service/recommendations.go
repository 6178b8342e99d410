package service

import (
	"sort"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

var (
	investigationRecommendation = model.Recommendation{
		ID:                "initiate-investigation",
		Priority:          valueobject.PriorityImmediate,
		Category:          valueobject.RecommendInvestigation,
		Action:            "Initiate a fraud investigation before approving the supplement",
		Rationale:         "Overall risk score is above the investigation threshold",
		ExpectedOutcome:   "Confirmed or cleared fraud suspicion",
		Timeframe:         "within 24 hours",
		RequiredResources: []string{"fraud investigator", "claim file"},
	}
	digitPatternRecommendation = model.Recommendation{
		ID:                "number-pattern-analysis",
		Priority:          valueobject.PriorityHigh,
		Category:          valueobject.RecommendVerification,
		Action:            "Perform number-pattern analysis on the supplement amounts",
		Rationale:         "Leading digits of the amounts deviate from the expected distribution",
		ExpectedOutcome:   "Identification of fabricated or manipulated amounts",
		Timeframe:         "within 3 days",
		RequiredResources: []string{"forensic accountant"},
	}
	documentationRecommendation = model.Recommendation{
		ID:                "documentation-review",
		Priority:          valueobject.PriorityHigh,
		Category:          valueobject.RecommendDocumentation,
		Action:            "Review supporting documentation for unmatched and low-quality items",
		Rationale:         "Documentation quality is too low to rely on the reconciliation",
		ExpectedOutcome:   "Complete and verifiable claim documentation",
		Timeframe:         "within 5 days",
		RequiredResources: []string{"claims adjuster"},
	}
	recalculationRecommendation = model.Recommendation{
		ID:                "recalculate-line-totals",
		Priority:          valueobject.PriorityMedium,
		Category:          valueobject.RecommendVerification,
		Action:            "Recalculate line totals from quantity and unit price",
		Rationale:         "Some line totals do not match quantity × unit price",
		ExpectedOutcome:   "Corrected supplement totals",
		Timeframe:         "within 5 days",
		RequiredResources: []string{"claims adjuster"},
	}
	complianceRecommendation = model.Recommendation{
		ID:                "compliance-review",
		Priority:          valueobject.PriorityHigh,
		Category:          valueobject.RecommendCompliance,
		Action:            "Escalate critical discrepancies for compliance review",
		Rationale:         "The reconciler reported critical discrepancies between the documents",
		ExpectedOutcome:   "Compliance sign-off or rejection of the supplement",
		Timeframe:         "within 2 days",
		RequiredResources: []string{"compliance officer"},
	}
)

// recommendations derives follow-up actions from the score, ordered by
// priority with ties kept in rule order.
func (s *RiskScorer) recommendations(score model.RiskScore, anomalies []model.StatisticalAnomaly) []model.Recommendation {
	recs := make([]model.Recommendation, 0, 4)

	if score.Overall >= s.thresholds.Recommendations.InvestigationScore {
		recs = append(recs, cloneRecommendation(investigationRecommendation))
	}
	if hasAnomaly(anomalies, valueobject.AnomalyArtificialDigitPattern) {
		recs = append(recs, cloneRecommendation(digitPatternRecommendation))
	}
	if hasFactor(score.Factors, valueobject.CategoryDocumentation, valueobject.Severity{}) {
		recs = append(recs, cloneRecommendation(documentationRecommendation))
	}
	if hasAnomaly(anomalies, valueobject.AnomalyCalculationInconsistency) {
		recs = append(recs, cloneRecommendation(recalculationRecommendation))
	}
	if hasFactor(score.Factors, valueobject.CategoryCompliance, valueobject.SeverityCritical) {
		recs = append(recs, cloneRecommendation(complianceRecommendation))
	}

	sortRecommendations(recs)
	return recs
}

func sortRecommendations(recs []model.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
}

// cloneRecommendation copies r so callers never share the template's resource slice.
func cloneRecommendation(r model.Recommendation) model.Recommendation {
	r.RequiredResources = append([]string(nil), r.RequiredResources...)
	return r
}

func hasAnomaly(anomalies []model.StatisticalAnomaly, t valueobject.AnomalyType) bool {
	for _, a := range anomalies {
		if a.Type.Equal(t) {
			return true
		}
	}
	return false
}

// hasFactor reports whether a factor of the category exists. A zero severity matches any.
func hasFactor(factors []model.RiskFactor, category valueobject.RiskCategory, severity valueobject.Severity) bool {
	for _, f := range factors {
		if f.Category.Equal(category) && (severity.IsZero() || f.Severity.Equal(severity)) {
			return true
		}
	}
	return false
}
