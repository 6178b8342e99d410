package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
)

// RiskMetrics implements port.MetricsRecorder with OpenTelemetry instruments.
type RiskMetrics struct {
	assessments metric.Int64Counter
	anomalies   metric.Int64Counter
	fallbacks   metric.Int64Counter
	score       metric.Int64Histogram
}

// NewRiskMetrics registers the risk instruments on meter.
func NewRiskMetrics(meter metric.Meter) (*RiskMetrics, error) {
	assessments, err := meter.Int64Counter("risk_assessments",
		metric.WithDescription("Supplements assessed, by risk level and scoring method."))
	if err != nil {
		return nil, fmt.Errorf("failed to create assessments counter: %w", err)
	}
	anomalies, err := meter.Int64Counter("risk_anomalies",
		metric.WithDescription("Statistical anomalies detected, by anomaly type."))
	if err != nil {
		return nil, fmt.Errorf("failed to create anomalies counter: %w", err)
	}
	fallbacks, err := meter.Int64Counter("risk_scoring_fallbacks",
		metric.WithDescription("Claims scored by the baseline scorer after the component scorer failed."))
	if err != nil {
		return nil, fmt.Errorf("failed to create fallbacks counter: %w", err)
	}
	score, err := meter.Int64Histogram("risk_overall_score",
		metric.WithDescription("Distribution of overall risk scores."),
		metric.WithExplicitBucketBoundaries(25, 50, 70, 85, 100))
	if err != nil {
		return nil, fmt.Errorf("failed to create score histogram: %w", err)
	}

	return &RiskMetrics{
		assessments: assessments,
		anomalies:   anomalies,
		fallbacks:   fallbacks,
		score:       score,
	}, nil
}

// RecordAssessment counts a finished assessment and its anomalies.
func (m *RiskMetrics) RecordAssessment(ctx context.Context, a *model.Assessment) {
	score := a.Score()
	m.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("level", score.Level.String()),
		attribute.String("method", string(score.Method)),
	))
	m.score.Record(ctx, int64(score.Overall))
	for _, an := range a.Anomalies() {
		m.anomalies.Add(ctx, 1, metric.WithAttributes(attribute.String("type", an.Type.String())))
	}
}

// RecordFallback counts a baseline scoring fallback.
func (m *RiskMetrics) RecordFallback(ctx context.Context) {
	m.fallbacks.Add(ctx, 1)
}
