package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

func TestSeverity_Tables(t *testing.T) {
	tests := []struct {
		name      string
		severity  valueobject.Severity
		baseScore float64
		impact    float64
		weight    float64
	}{
		{"low", valueobject.SeverityLow, 25, 25, 0.4},
		{"medium", valueobject.SeverityMedium, 50, 50, 0.6},
		{"high", valueobject.SeverityHigh, 75, 75, 0.8},
		{"critical", valueobject.SeverityCritical, 100, 95, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.baseScore, tt.severity.BaseScore())
			assert.Equal(t, tt.impact, tt.severity.Impact())
			assert.Equal(t, tt.weight, tt.severity.Weight())
		})
	}
}

func TestSeverity_FromString(t *testing.T) {
	s, err := valueobject.SeverityFromString("high")
	require.NoError(t, err)
	assert.True(t, valueobject.SeverityHigh.Equal(s))

	_, err = valueobject.SeverityFromString("severe")
	require.Error(t, err)
}

func TestSeverity_Max(t *testing.T) {
	assert.Equal(t, valueobject.SeverityCritical, valueobject.SeverityMedium.Max(valueobject.SeverityCritical))
	assert.Equal(t, valueobject.SeverityHigh, valueobject.SeverityHigh.Max(valueobject.SeverityLow))
	assert.Equal(t, valueobject.SeverityLow, valueobject.Severity{}.Max(valueobject.SeverityLow))
}

func TestRiskCategoryFromAnomalyType(t *testing.T) {
	tests := []struct {
		anomaly  valueobject.AnomalyType
		expected valueobject.RiskCategory
	}{
		{valueobject.AnomalyOutlier, valueobject.CategoryOutlier},
		{valueobject.AnomalyArtificialDigitPattern, valueobject.CategoryArtificialDigitPattern},
		{valueobject.AnomalyCalculationInconsistency, valueobject.CategoryCalculationInconsistency},
		{valueobject.AnomalyTemporal, valueobject.CategoryTemporal},
		{valueobject.AnomalyGeographic, valueobject.CategoryGeographic},
	}

	for _, tt := range tests {
		t.Run(tt.anomaly.String(), func(t *testing.T) {
			c, err := valueobject.RiskCategoryFromAnomalyType(tt.anomaly)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(c))
			assert.Equal(t, tt.anomaly.String(), c.String())
		})
	}

	_, err := valueobject.RiskCategoryFromAnomalyType(valueobject.AnomalyType{})
	require.Error(t, err)
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, valueobject.PriorityImmediate.Rank(), valueobject.PriorityHigh.Rank())
	assert.Less(t, valueobject.PriorityHigh.Rank(), valueobject.PriorityMedium.Rank())
	assert.Less(t, valueobject.PriorityMedium.Rank(), valueobject.PriorityLow.Rank())

	p, err := valueobject.PriorityFromString("immediate")
	require.NoError(t, err)
	assert.True(t, valueobject.PriorityImmediate.Equal(p))
}
