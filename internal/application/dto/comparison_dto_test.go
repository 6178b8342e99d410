package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

const sampleRequest = `{
  "claim_id": "CLM-2024-0042",
  "original_total": "1000.00",
  "supplement_total": "1450.00",
  "total_variance": "450.00",
  "matched_items": [{
    "original":   {"id": "o-1", "description": "Front bumper", "quantity": "1", "unit_price": "400", "total": "400"},
    "supplement": {"id": "s-1", "description": "Front bumper", "quantity": "1", "unit_price": "550", "total": "550"},
    "variance":   {"amount": "150", "percentage": 37.5, "high_variance": true}
  }],
  "added_items": [{"id": "s-2", "description": "Headlamp", "quantity": 2, "unit_price": 125.5, "total": "251"}],
  "data_quality": {"completeness": 0.9, "consistency": 1, "accuracy": 0.95, "precision": 1, "issue_count": 1},
  "discrepancies": [{"id": "d-1", "severity": "critical", "description": "part number changed", "item_id": "s-1"}],
  "matching_accuracy": 0.85,
  "suspicious_pattern_count": 1,
  "processing_time_ms": 1500
}`

func TestComparisonRequest_ToModel(t *testing.T) {
	var req dto.ComparisonRequest
	require.NoError(t, json.Unmarshal([]byte(sampleRequest), &req))

	c, err := req.ToModel()
	require.NoError(t, err)

	assert.Equal(t, "CLM-2024-0042", c.ClaimID)
	assert.True(t, c.TotalVariance.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, 1500*time.Millisecond, c.ProcessingTime)
	require.Len(t, c.MatchedItems, 1)
	assert.True(t, c.MatchedItems[0].Variance.HighVariance)
	assert.Equal(t, "s-1", c.MatchedItems[0].Supplement.ID)
	require.Len(t, c.AddedItems, 1)
	assert.True(t, c.AddedItems[0].UnitPrice.Equal(decimal.RequireFromString("125.5")))
	require.NotNil(t, c.DataQuality)
	assert.Equal(t, 1, c.DataQuality.IssueCount)
	require.Len(t, c.Discrepancies, 1)
	assert.Equal(t, valueobject.SeverityCritical, c.Discrepancies[0].Severity)
	assert.Equal(t, 2, c.ItemCount())
}

func TestComparisonRequest_ToModelErrors(t *testing.T) {
	tests := []struct {
		name string
		req  dto.ComparisonRequest
	}{
		{name: "missing claim id", req: dto.ComparisonRequest{}},
		{name: "matching accuracy out of range", req: dto.ComparisonRequest{ClaimID: "c", MatchingAccuracy: 1.2}},
		{name: "negative pattern count", req: dto.ComparisonRequest{ClaimID: "c", SuspiciousPatternCount: -1}},
		{
			name: "unknown discrepancy severity",
			req:  dto.ComparisonRequest{ClaimID: "c", Discrepancies: []dto.Discrepancy{{Severity: "urgent"}}},
		},
		{
			name: "completeness out of range",
			req:  dto.ComparisonRequest{ClaimID: "c", DataQuality: &dto.DataQuality{Completeness: 7, Consistency: 1, Accuracy: 1, Precision: 1}},
		},
		{
			name: "negative accuracy",
			req:  dto.ComparisonRequest{ClaimID: "c", DataQuality: &dto.DataQuality{Completeness: 1, Consistency: 1, Accuracy: -0.1, Precision: 1}},
		},
		{
			name: "negative issue count",
			req:  dto.ComparisonRequest{ClaimID: "c", DataQuality: &dto.DataQuality{Completeness: 1, Consistency: 1, Accuracy: 1, Precision: 1, IssueCount: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.req.ToModel()

			assert.Nil(t, c)
			assert.ErrorIs(t, err, dto.ErrInvalidRequest)
		})
	}
}

func TestComparisonRequest_MissingDataQualityStaysNil(t *testing.T) {
	c, err := dto.ComparisonRequest{ClaimID: "c"}.ToModel()

	require.NoError(t, err)
	assert.Nil(t, c.DataQuality)
	assert.Empty(t, c.ReconciledItems())
}

func TestComparisonRequest_MissingLineAmounts(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "added item without total",
			body:    `{"claim_id": "c", "added_items": [{"id": "a", "quantity": "1", "unit_price": "10"}]}`,
			wantMsg: "added_items[0].total is required",
		},
		{
			name:    "null unit price",
			body:    `{"claim_id": "c", "unmatched_originals": [{"id": "o", "quantity": "1", "unit_price": null, "total": "10"}]}`,
			wantMsg: "unmatched_originals[0].unit_price is required",
		},
		{
			name: "matched supplement without quantity",
			body: `{"claim_id": "c", "matched_items": [{
				"original":   {"id": "o", "quantity": "1", "unit_price": "10", "total": "10"},
				"supplement": {"id": "s", "unit_price": "10", "total": "10"}}]}`,
			wantMsg: "matched_items[0].supplement.quantity is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.ComparisonRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			c, err := req.ToModel()

			assert.Nil(t, c)
			assert.ErrorIs(t, err, dto.ErrInvalidRequest)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestComparisonRequest_ZeroAmountsAreValid(t *testing.T) {
	body := `{"claim_id": "c", "added_items": [{"id": "a", "quantity": "0", "unit_price": "0", "total": "0"}]}`
	var req dto.ComparisonRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	c, err := req.ToModel()

	require.NoError(t, err)
	require.Len(t, c.AddedItems, 1)
	assert.True(t, c.AddedItems[0].Total.IsZero())
}
