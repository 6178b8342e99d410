package service

import (
	"fmt"
	"math"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/money"
)

var digitStreams = []lineMetric{
	outlierMetrics[0], // unit price
	outlierMetrics[2], // total
}

// digitDistribution is the leading-digit tally of one amount stream.
type digitDistribution struct {
	itemDigits map[string]int
	counts     [10]int
	n          int
}

func tallyLeadingDigits(items []model.LineItem, m lineMetric) digitDistribution {
	dist := digitDistribution{itemDigits: make(map[string]int, len(items))}
	for _, item := range items {
		digit, ok := money.LeadingDigit(m.value(item))
		if !ok {
			continue
		}
		dist.counts[digit]++
		dist.itemDigits[item.ID] = digit
		dist.n++
	}
	return dist
}

// detectDigitPatterns compares the leading digits of unit prices and totals
// with the reference distribution using a chi-square goodness-of-fit test.
func (d *AnomalyDetector) detectDigitPatterns(_ *model.Comparison, items []model.LineItem) ([]model.StatisticalAnomaly, error) {
	t := d.thresholds.Digits
	if len(items) < t.MinItems {
		d.skip(CheckDigitPattern, "too few items", len(items))
		return nil, nil
	}
	if len(t.Expected) != 9 {
		return nil, fmt.Errorf("reference distribution has %d digits, want 9", len(t.Expected))
	}

	var anomalies []model.StatisticalAnomaly
	for _, m := range digitStreams {
		dist := tallyLeadingDigits(items, m)
		if dist.n == 0 {
			d.skip(CheckDigitPattern, "no nonzero "+m.name+" values", 0)
			continue
		}

		var chiSquare float64
		contributions := make([]float64, 10)
		for digit := 1; digit <= 9; digit++ {
			expected := float64(dist.n) * t.Expected[digit-1] / 100
			diff := float64(dist.counts[digit]) - expected
			contributions[digit] = diff * diff / expected
			chiSquare += contributions[digit]
		}

		p, cutoff := t.pValue(chiSquare)
		if p >= t.SignificanceLevel {
			continue
		}

		severity := valueobject.SeverityMedium
		if p < t.StrongSignificance {
			severity = valueobject.SeverityHigh
		}

		suspicious := make(map[int]bool)
		var evidence []model.AnomalyEvidence
		for digit := 1; digit <= 9; digit++ {
			observedPct := 100 * float64(dist.counts[digit]) / float64(dist.n)
			expectedPct := t.Expected[digit-1]
			if math.Abs(observedPct-expectedPct) <= t.SuspiciousPoints {
				continue
			}
			suspicious[digit] = true
			ev, err := model.NewEvidence(valueobject.EvidencePattern,
				fmt.Sprintf("leading digit %d appears in %.1f%% of %s values, expected %.1f%%", digit, observedPct, m.name, expectedPct),
				observedPct, expectedPct, contributions[digit])
			if err != nil {
				return nil, fmt.Errorf("digit %d evidence: %w", digit, err)
			}
			evidence = append(evidence, ev)
		}
		if len(evidence) == 0 {
			// Significant overall without any single digit standing out.
			ev, err := model.NewEvidence(valueobject.EvidenceStatistical,
				fmt.Sprintf("chi-square statistic %.2f for %s leading digits exceeds %.2f", chiSquare, m.name, cutoff),
				chiSquare, cutoff, chiSquare)
			if err != nil {
				return nil, fmt.Errorf("chi-square evidence: %w", err)
			}
			evidence = append(evidence, ev)
		}

		var affected []string
		for _, item := range items {
			if digit, ok := dist.itemDigits[item.ID]; ok && suspicious[digit] {
				affected = append(affected, item.ID)
			}
		}

		anomalies = append(anomalies, model.StatisticalAnomaly{
			Type:               valueobject.AnomalyArtificialDigitPattern,
			Severity:           severity,
			Confidence:         1 - p,
			Description:        fmt.Sprintf("leading digits of %s values deviate from the expected distribution (chi-square %.2f, p≈%.2f)", m.name, chiSquare, p),
			AffectedItems:      affected,
			StatisticalMeasure: chiSquare,
			Threshold:          cutoff,
			Evidence:           evidence,
		})
	}

	return anomalies, nil
}
