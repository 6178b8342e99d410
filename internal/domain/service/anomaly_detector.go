package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
)

// Check names, as reported in CheckError.
const (
	CheckInput        = "input"
	CheckOutlier      = "outlier"
	CheckDigitPattern = "artificial-digit-pattern"
	CheckCalculation  = "calculation-inconsistency"
	CheckTemporal     = "temporal"
)

// checkFunc inspects the reconciled items of a comparison. A nil result with a
// nil error means the check found nothing or had too little data to run.
type checkFunc func(c *model.Comparison, items []model.LineItem) ([]model.StatisticalAnomaly, error)

type check struct {
	run  checkFunc
	name string
}

// AnomalyDetector runs the statistical checks over a reconciled comparison.
// It holds no mutable state and is safe for concurrent use.
type AnomalyDetector struct {
	logger     *slog.Logger
	checks     []check
	thresholds Thresholds
}

// NewAnomalyDetector creates a detector with the given tuning. A nil logger discards output.
func NewAnomalyDetector(thresholds Thresholds, logger *slog.Logger) *AnomalyDetector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &AnomalyDetector{
		thresholds: thresholds,
		logger:     logger,
	}
	d.checks = []check{
		{name: CheckOutlier, run: d.detectOutliers},
		{name: CheckDigitPattern, run: d.detectDigitPatterns},
		{name: CheckCalculation, run: d.detectCalculationErrors},
		{name: CheckTemporal, run: d.detectSlowProcessing},
	}
	return d
}

// Detect runs every check and returns the anomalies found, most confident first.
//
// Checks are isolated from each other: every check runs even if an earlier
// one failed. If any check fails, Detect returns no anomalies and an error
// joining one *CheckError per failed check.
func (d *AnomalyDetector) Detect(c *model.Comparison) ([]model.StatisticalAnomaly, error) {
	if err := c.Validate(); err != nil {
		return nil, &CheckError{Check: CheckInput, Err: err}
	}

	items := c.ReconciledItems()
	anomalies := make([]model.StatisticalAnomaly, 0)
	var errs []error

	for _, ch := range d.checks {
		found, err := d.runCheck(ch, c, items)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		anomalies = append(anomalies, found...)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].Confidence > anomalies[j].Confidence
	})

	d.logger.Debug("anomaly detection finished",
		slog.String("claim_id", c.ClaimID),
		slog.Int("items", len(items)),
		slog.Int("anomalies", len(anomalies)),
	)

	return anomalies, nil
}

// runCheck executes one check, converting returned errors, invalid results
// and panics into a *CheckError naming the check.
func (d *AnomalyDetector) runCheck(ch check, c *model.Comparison, items []model.LineItem) (found []model.StatisticalAnomaly, err error) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			err = &CheckError{Check: ch.name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	found, err = ch.run(c, items)
	if err != nil {
		return nil, &CheckError{Check: ch.name, Err: err}
	}
	for _, a := range found {
		if err := a.Validate(); err != nil {
			return nil, &CheckError{Check: ch.name, Err: err}
		}
	}
	return found, nil
}

func (d *AnomalyDetector) skip(check, reason string, items int) {
	d.logger.Debug("anomaly check skipped",
		slog.String("check", check),
		slog.String("reason", reason),
		slog.Int("items", items),
	)
}
