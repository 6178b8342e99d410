package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

// zTolerance absorbs float rounding so that a z-score landing exactly on a
// cutoff counts as reaching it.
const zTolerance = 1e-9

type lineMetric struct {
	value func(model.LineItem) decimal.Decimal
	name  string
}

var outlierMetrics = []lineMetric{
	{name: "unit price", value: func(i model.LineItem) decimal.Decimal { return i.UnitPrice }},
	{name: "quantity", value: func(i model.LineItem) decimal.Decimal { return i.Quantity }},
	{name: "total", value: func(i model.LineItem) decimal.Decimal { return i.Total }},
}

// detectOutliers flags items whose unit price, quantity or total lies at least
// Outlier.Flag population standard deviations from the mean. One anomaly is
// emitted per metric with flagged items.
func (d *AnomalyDetector) detectOutliers(_ *model.Comparison, items []model.LineItem) ([]model.StatisticalAnomaly, error) {
	t := d.thresholds.Outlier
	if len(items) < t.MinItems {
		d.skip(CheckOutlier, "too few items", len(items))
		return nil, nil
	}

	var anomalies []model.StatisticalAnomaly
	for _, m := range outlierMetrics {
		if allEqual(items, m.value) {
			d.skip(CheckOutlier, "no variation in "+m.name, len(items))
			continue
		}

		values := make([]float64, len(items))
		for i, item := range items {
			values[i] = m.value(item).InexactFloat64()
		}
		mean, sd := meanStdDev(values)
		if sd == 0 {
			d.skip(CheckOutlier, "no variation in "+m.name, len(items))
			continue
		}

		var (
			affected []string
			evidence []model.AnomalyEvidence
			severity valueobject.Severity
			maxZ     float64
		)
		for i, v := range values {
			z := math.Abs(v-mean) / sd
			if z < t.Flag-zTolerance {
				continue
			}
			ev, err := model.NewEvidence(valueobject.EvidenceStatistical,
				fmt.Sprintf("%s of item %s is %.2f standard deviations from the mean of %.2f", m.name, items[i].ID, z, mean),
				v, mean, z)
			if err != nil {
				return nil, fmt.Errorf("%s evidence for item %s: %w", m.name, items[i].ID, err)
			}
			affected = append(affected, items[i].ID)
			evidence = append(evidence, ev)
			severity = severity.Max(d.zSeverity(z))
			maxZ = math.Max(maxZ, z)
		}

		if len(affected) == 0 {
			continue
		}

		anomalies = append(anomalies, model.StatisticalAnomaly{
			Type:               valueobject.AnomalyOutlier,
			Severity:           severity,
			Confidence:         math.Min(maxZ/t.ConfidenceScale, 1),
			Description:        fmt.Sprintf("%d line item(s) have an outlying %s (max z-score %.2f)", len(affected), m.name, maxZ),
			AffectedItems:      affected,
			StatisticalMeasure: maxZ,
			Threshold:          t.Flag,
			Evidence:           evidence,
		})
	}

	return anomalies, nil
}

// zSeverity maps a flagged z-score to a severity.
func (d *AnomalyDetector) zSeverity(z float64) valueobject.Severity {
	t := d.thresholds.Outlier
	switch {
	case z >= t.Critical-zTolerance:
		return valueobject.SeverityCritical
	case z >= t.High-zTolerance:
		return valueobject.SeverityHigh
	default:
		return valueobject.SeverityMedium
	}
}

// allEqual reports whether value is identical for every item, compared exactly.
func allEqual(items []model.LineItem, value func(model.LineItem) decimal.Decimal) bool {
	for i := 1; i < len(items); i++ {
		if !value(items[i]).Equal(value(items[0])) {
			return false
		}
	}
	return true
}
