package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/money"
)

// detectCalculationErrors flags items whose total disagrees with
// quantity × unit price by more than Calculation.Tolerance. All arithmetic is
// exact decimal.
func (d *AnomalyDetector) detectCalculationErrors(_ *model.Comparison, items []model.LineItem) ([]model.StatisticalAnomaly, error) {
	t := d.thresholds.Calculation
	if len(items) < t.MinItems {
		d.skip(CheckCalculation, "too few items", len(items))
		return nil, nil
	}

	tolerance := decimal.NewFromFloat(t.Tolerance)

	var (
		affected     []string
		evidence     []model.AnomalyEvidence
		maxDeviation = decimal.Zero
		maxRelative  = decimal.Zero
	)
	for _, item := range items {
		expected := money.Extend(item.Quantity, item.UnitPrice)
		relative := money.RelativeDeviation(item.Total, expected)
		if !relative.GreaterThan(tolerance) {
			continue
		}

		deviation := money.AbsDiff(item.Total, expected)
		if deviation.GreaterThan(maxDeviation) {
			maxDeviation = deviation
		}
		if relative.GreaterThan(maxRelative) {
			maxRelative = relative
		}

		ev, err := model.NewEvidence(valueobject.EvidenceComparison,
			fmt.Sprintf("item %s total %s differs from quantity × unit price %s by %s%%",
				item.ID, item.Total.String(), expected.String(), relative.Mul(decimal.NewFromInt(100)).StringFixed(1)),
			item.Total.InexactFloat64(), expected.InexactFloat64(), relative.InexactFloat64())
		if err != nil {
			return nil, fmt.Errorf("evidence for item %s: %w", item.ID, err)
		}
		affected = append(affected, item.ID)
		evidence = append(evidence, ev)
	}

	if len(affected) == 0 {
		return nil, nil
	}

	severity := valueobject.SeverityMedium
	if maxDeviation.GreaterThan(decimal.NewFromFloat(t.HighDeviation)) {
		severity = valueobject.SeverityHigh
	}

	return []model.StatisticalAnomaly{{
		Type:               valueobject.AnomalyCalculationInconsistency,
		Severity:           severity,
		Confidence:         math.Min(maxDeviation.InexactFloat64()/t.ConfidenceScale, 1),
		Description:        fmt.Sprintf("%d line item(s) have totals inconsistent with quantity × unit price", len(affected)),
		AffectedItems:      affected,
		StatisticalMeasure: maxRelative.InexactFloat64(),
		Threshold:          t.Tolerance,
		Evidence:           evidence,
	}}, nil
}
