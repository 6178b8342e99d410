package service_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/service"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

func newDetector() *service.AnomalyDetector {
	return service.NewAnomalyDetector(service.DefaultThresholds(), nil)
}

// digitSkewedItems returns 40 items, 35 of which have a total with leading digit 1.
func digitSkewedItems() []model.LineItem {
	prices := make([]string, 0, 40)
	for i := 0; i < 35; i++ {
		prices = append(prices, fmt.Sprintf("%d", 100+i))
	}
	prices = append(prices, "200", "300", "400", "500", "600")
	return pricedItems(prices...)
}

func TestAnomalyDetector_NoVarianceProducesNoAnomalies(t *testing.T) {
	c := matchedComparison(pricedItems("100", "110", "120", "130", "140")...)

	anomalies, err := newDetector().Detect(c)

	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestAnomalyDetector_OutlierFlagged(t *testing.T) {
	c := addedComparison(pricedItems("100", "100", "100", "100", "100", "100", "100", "100", "100", "1000")...)

	anomalies, err := newDetector().Detect(c)
	require.NoError(t, err)

	// Unit price and total are flagged; quantity has no variation.
	require.Equal(t, 2, countAnomalies(anomalies, valueobject.AnomalyOutlier))
	for _, a := range anomalies {
		assert.Equal(t, valueobject.AnomalyOutlier, a.Type)
		assert.Equal(t, valueobject.SeverityCritical, a.Severity)
		assert.InDelta(t, 1.0, a.Confidence, 1e-9)
		assert.InDelta(t, 3.0, a.StatisticalMeasure, 1e-9)
		assert.Equal(t, 2.0, a.Threshold)
		assert.Equal(t, []string{"item-10"}, a.AffectedItems)
		require.Len(t, a.Evidence, 1)
		assert.InDelta(t, 190.0, a.Evidence[0].ExpectedValue, 1e-9)
		assert.InDelta(t, 810.0, a.Evidence[0].Deviation, 1e-9)
		assert.InDelta(t, 3.0, a.Evidence[0].Significance, 1e-9)
	}
}

func TestAnomalyDetector_OutlierAtFlagCutoff(t *testing.T) {
	// Four equal values and one outlier put the outlier at exactly two
	// standard deviations; fractional amounts must not round it below.
	c := addedComparison(pricedItems("0.1", "0.1", "0.1", "0.1", "0.6")...)

	anomalies, err := newDetector().Detect(c)
	require.NoError(t, err)

	require.Equal(t, 2, countAnomalies(anomalies, valueobject.AnomalyOutlier))
	for _, a := range anomalies {
		assert.Equal(t, valueobject.SeverityMedium, a.Severity)
		assert.InDelta(t, 2.0, a.StatisticalMeasure, 1e-9)
		assert.Equal(t, []string{"item-05"}, a.AffectedItems)
	}
}

func TestAnomalyDetector_OutlierSkipped(t *testing.T) {
	tests := []struct {
		name  string
		items []model.LineItem
	}{
		{name: "fewer than three items", items: pricedItems("1", "1000")},
		{name: "no variation", items: pricedItems("250", "250", "250", "250")},
		{name: "empty comparison", items: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anomalies, err := newDetector().Detect(addedComparison(tt.items...))

			require.NoError(t, err)
			assert.Zero(t, countAnomalies(anomalies, valueobject.AnomalyOutlier))
		})
	}
}

func TestAnomalyDetector_DigitPattern(t *testing.T) {
	anomalies, err := newDetector().Detect(addedComparison(digitSkewedItems()...))
	require.NoError(t, err)

	// Unit prices equal totals, so both digit streams are flagged.
	assert.Equal(t, 2, countAnomalies(anomalies, valueobject.AnomalyArtificialDigitPattern))

	a, ok := findAnomaly(anomalies, valueobject.AnomalyArtificialDigitPattern)
	require.True(t, ok, "expected an artificial-digit-pattern anomaly")
	assert.Greater(t, a.Confidence, 0.5)
	// The strongest band reports p = 0.01, which is not below the strong cutoff.
	assert.Equal(t, valueobject.SeverityMedium, a.Severity)
	assert.InDelta(t, 0.99, a.Confidence, 1e-9)
	assert.Greater(t, a.StatisticalMeasure, 20.0)
	assert.Equal(t, 20.0, a.Threshold)
	// Digits 1-5 are over- or under-represented by more than five points; 6 is not.
	assert.Len(t, a.AffectedItems, 39)
	assert.NotContains(t, a.AffectedItems, "item-40")

	var digitOne bool
	for _, ev := range a.Evidence {
		assert.Equal(t, valueobject.EvidencePattern, ev.Type)
		if ev.ExpectedValue == 30.1 {
			digitOne = true
			assert.InDelta(t, 87.5, ev.Value, 1e-9)
		}
	}
	assert.True(t, digitOne, "leading digit 1 should be reported as suspicious")
}

func TestAnomalyDetector_DigitPatternIgnoresZeroValues(t *testing.T) {
	prices := make([]string, 0, 30)
	for i := range 29 {
		prices = append(prices, fmt.Sprintf("%d", 100+i))
	}
	prices = append(prices, "0")

	anomalies, err := newDetector().Detect(addedComparison(pricedItems(prices...)...))
	require.NoError(t, err)

	// 29 nonzero values still make up a stream; the zero item is simply not tallied.
	assert.Equal(t, 2, countAnomalies(anomalies, valueobject.AnomalyArtificialDigitPattern))
	for _, a := range anomalies {
		if a.Type.Equal(valueobject.AnomalyArtificialDigitPattern) {
			assert.Len(t, a.AffectedItems, 29)
			assert.NotContains(t, a.AffectedItems, "item-30")
		}
	}
}

func TestAnomalyDetector_DigitPatternNeedsThirtyItems(t *testing.T) {
	prices := make([]string, 29)
	for i := range prices {
		prices[i] = fmt.Sprintf("1%d", i+10)
	}

	anomalies, err := newDetector().Detect(addedComparison(pricedItems(prices...)...))

	require.NoError(t, err)
	assert.Zero(t, countAnomalies(anomalies, valueobject.AnomalyArtificialDigitPattern))
}

func TestAnomalyDetector_CalculationInconsistency(t *testing.T) {
	c := addedComparison(
		lineItem("a", "1", "100", "101"),
		lineItem("b", "1", "100", "101.01"),
		lineItem("c", "2", "110", "250"),
		lineItem("d", "3", "10", "30"),
		lineItem("e", "4", "25.25", "101.00"),
		lineItem("f", "3", "0.10", "0.30"),
	)

	anomalies, err := newDetector().Detect(c)
	require.NoError(t, err)

	a, ok := findAnomaly(anomalies, valueobject.AnomalyCalculationInconsistency)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, a.AffectedItems)
	assert.Equal(t, valueobject.SeverityMedium, a.Severity)
	assert.InDelta(t, 0.3, a.Confidence, 1e-9)
	assert.Equal(t, 0.01, a.Threshold)
	assert.InDelta(t, 30.0/220.0, a.StatisticalMeasure, 1e-9)

	require.Len(t, a.Evidence, 2)
	assert.Equal(t, valueobject.EvidenceComparison, a.Evidence[1].Type)
	assert.Equal(t, 250.0, a.Evidence[1].Value)
	assert.Equal(t, 220.0, a.Evidence[1].ExpectedValue)
	assert.Equal(t, 30.0, a.Evidence[1].Deviation)
}

func TestAnomalyDetector_CalculationScenario(t *testing.T) {
	c := addedComparison(
		lineItem("item-01", "1", "45", "45"),
		lineItem("item-02", "2", "110", "250"),
		lineItem("item-03", "1", "60", "60"),
		lineItem("item-04", "3", "15", "45"),
		lineItem("item-05", "1", "80", "80"),
	)

	anomalies, err := newDetector().Detect(c)
	require.NoError(t, err)

	a, ok := findAnomaly(anomalies, valueobject.AnomalyCalculationInconsistency)
	require.True(t, ok)
	assert.Equal(t, []string{"item-02"}, a.AffectedItems)
	assert.InDelta(t, 0.136, a.Evidence[0].Significance, 0.001)
}

func TestAnomalyDetector_CalculationHighSeverity(t *testing.T) {
	c := addedComparison(
		lineItem("a", "10", "100", "1200"),
		lineItem("b", "1", "5", "5"),
		lineItem("c", "1", "6", "6"),
		lineItem("d", "1", "7", "7"),
		lineItem("e", "1", "8", "8"),
	)

	anomalies, err := newDetector().Detect(c)
	require.NoError(t, err)

	a, ok := findAnomaly(anomalies, valueobject.AnomalyCalculationInconsistency)
	require.True(t, ok)
	assert.Equal(t, valueobject.SeverityHigh, a.Severity)
	assert.Equal(t, 1.0, a.Confidence)
}

func TestAnomalyDetector_CalculationNeedsFiveItems(t *testing.T) {
	c := addedComparison(
		lineItem("a", "2", "110", "250"),
		lineItem("b", "1", "5", "9"),
		lineItem("c", "1", "6", "6"),
		lineItem("d", "1", "7", "7"),
	)

	anomalies, err := newDetector().Detect(c)

	require.NoError(t, err)
	assert.Zero(t, countAnomalies(anomalies, valueobject.AnomalyCalculationInconsistency))
}

func TestAnomalyDetector_Temporal(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{name: "under limit", elapsed: 12 * time.Second, want: false},
		{name: "at limit", elapsed: 30 * time.Second, want: false},
		{name: "over limit", elapsed: 31 * time.Second, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := addedComparison(pricedItems("10", "20")...)
			c.ProcessingTime = tt.elapsed

			anomalies, err := newDetector().Detect(c)
			require.NoError(t, err)

			a, ok := findAnomaly(anomalies, valueobject.AnomalyTemporal)
			require.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, valueobject.SeverityMedium, a.Severity)
				assert.Equal(t, 0.7, a.Confidence)
				assert.Equal(t, 5000.0, a.Evidence[0].ExpectedValue)
				assert.Empty(t, a.AffectedItems)
			}
		})
	}
}

func TestAnomalyDetector_MalformedInput(t *testing.T) {
	tests := []struct {
		name       string
		comparison *model.Comparison
		check      string
		cause      error
	}{
		{
			name:       "nil comparison",
			comparison: nil,
			check:      service.CheckInput,
			cause:      model.ErrNilComparison,
		},
		{
			name:       "duplicate item id",
			comparison: addedComparison(lineItem("a", "1", "1", "1"), lineItem("a", "1", "2", "2")),
			check:      service.CheckInput,
			cause:      model.ErrDuplicateItemID,
		},
		{
			name:       "negative quantity",
			comparison: addedComparison(lineItem("a", "-1", "1", "-1")),
			check:      service.CheckInput,
			cause:      model.ErrNegativeQuantity,
		},
		{
			name: "negative processing time",
			comparison: func() *model.Comparison {
				c := addedComparison(pricedItems("10", "20")...)
				c.ProcessingTime = -time.Second
				return c
			}(),
			check: service.CheckTemporal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anomalies, err := newDetector().Detect(tt.comparison)

			require.Error(t, err)
			assert.Nil(t, anomalies)

			var checkErr *service.CheckError
			require.ErrorAs(t, err, &checkErr)
			assert.Equal(t, tt.check, checkErr.Check)
			if tt.cause != nil {
				assert.True(t, errors.Is(err, tt.cause))
			}
		})
	}
}

func TestAnomalyDetector_SortedByConfidence(t *testing.T) {
	items := digitSkewedItems()
	items[0] = lineItem(items[0].ID, "2", "110", "250")
	c := addedComparison(items...)
	c.ProcessingTime = time.Minute

	anomalies, err := newDetector().Detect(c)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(anomalies), 3)

	for i := 1; i < len(anomalies); i++ {
		assert.GreaterOrEqual(t, anomalies[i-1].Confidence, anomalies[i].Confidence)
	}
}

func TestAnomalyDetector_Deterministic(t *testing.T) {
	c := addedComparison(digitSkewedItems()...)
	c.ProcessingTime = 45 * time.Second
	detector := newDetector()

	first, err := detector.Detect(c)
	require.NoError(t, err)
	second, err := detector.Detect(c)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnomalyDetector_ResultInvariants(t *testing.T) {
	items := digitSkewedItems()
	items[3] = lineItem(items[3].ID, "3", "103", "500")
	c := addedComparison(items...)

	ids := make(map[string]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}

	anomalies, err := newDetector().Detect(c)
	require.NoError(t, err)
	require.NotEmpty(t, anomalies)

	for _, a := range anomalies {
		assert.GreaterOrEqual(t, a.Confidence, 0.0)
		assert.LessOrEqual(t, a.Confidence, 1.0)
		assert.NotEmpty(t, a.Evidence)
		for _, id := range a.AffectedItems {
			assert.True(t, ids[id], "affected item %q is not in the input", id)
		}
		for _, ev := range a.Evidence {
			assert.GreaterOrEqual(t, ev.Deviation, 0.0)
			assert.GreaterOrEqual(t, ev.Significance, 0.0)
		}
	}
}
