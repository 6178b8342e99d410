package telemetry_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/infrastructure/telemetry"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/observability"
)

func TestRiskMetrics(t *testing.T) {
	provider, handler, err := observability.InitMetrics(observability.MetricsConfig{Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := telemetry.NewRiskMetrics(provider.Meter("riskd"))
	require.NoError(t, err)

	anomaly := model.StatisticalAnomaly{Type: valueobject.AnomalyOutlier, Severity: valueobject.SeverityHigh}
	score := model.RiskScore{Overall: 72, Level: valueobject.RiskLevelHigh, Method: model.MethodProfessional}
	assessment, err := model.NewAssessment("CLM-1", []model.StatisticalAnomaly{anomaly}, score, time.Now())
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordAssessment(ctx, assessment)
	metrics.RecordFallback(ctx)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, "risk_assessments_total")
	assert.Contains(t, out, `level="high"`)
	assert.Contains(t, out, `method="professional"`)
	assert.Contains(t, out, "risk_anomalies_total")
	assert.Contains(t, out, `type="outlier"`)
	assert.Contains(t, out, "risk_scoring_fallbacks_total")
	assert.Contains(t, out, "risk_overall_score_bucket")
}
