package service

import (
	"fmt"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

// detectSlowProcessing flags comparisons whose upstream reconciliation took
// longer than Temporal.Limit.
func (d *AnomalyDetector) detectSlowProcessing(c *model.Comparison, _ []model.LineItem) ([]model.StatisticalAnomaly, error) {
	t := d.thresholds.Temporal
	if c.ProcessingTime < 0 {
		return nil, fmt.Errorf("processing time must not be negative, got %s", c.ProcessingTime)
	}
	if c.ProcessingTime <= t.Limit {
		return nil, nil
	}

	elapsed := float64(c.ProcessingTime.Milliseconds())
	baseline := float64(t.Baseline.Milliseconds())
	var slowdown float64
	if baseline > 0 {
		slowdown = elapsed / baseline
	}

	ev, err := model.NewEvidence(valueobject.EvidenceHistorical,
		fmt.Sprintf("comparison took %.0f ms against a %.0f ms baseline", elapsed, baseline),
		elapsed, baseline, slowdown)
	if err != nil {
		return nil, err
	}

	return []model.StatisticalAnomaly{{
		Type:               valueobject.AnomalyTemporal,
		Severity:           valueobject.SeverityMedium,
		Confidence:         t.Confidence,
		Description:        fmt.Sprintf("processing took %.0f ms, over the %d ms limit", elapsed, t.Limit.Milliseconds()),
		AffectedItems:      []string{},
		StatisticalMeasure: elapsed,
		Threshold:          float64(t.Limit.Milliseconds()),
		Evidence:           []model.AnomalyEvidence{ev},
	}}, nil
}
