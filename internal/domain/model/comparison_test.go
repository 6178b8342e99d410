package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

func item(id string, qty, price, total int64) model.LineItem {
	return model.LineItem{
		ID:        id,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(price),
		Total:     decimal.NewFromInt(total),
	}
}

func TestComparison_ReconciledItemsOrder(t *testing.T) {
	c := &model.Comparison{
		MatchedItems: []model.MatchedItem{
			{Original: item("o1", 1, 10, 10), Supplement: item("s1", 1, 12, 12)},
			{Original: item("o2", 2, 10, 20), Supplement: item("s2", 2, 10, 20)},
		},
		AddedItems:         []model.LineItem{item("a1", 1, 99, 99)},
		UnmatchedOriginals: []model.LineItem{item("o3", 1, 5, 5)},
	}

	items := c.ReconciledItems()
	require.Len(t, items, 3)
	assert.Equal(t, "s1", items[0].ID)
	assert.Equal(t, "s2", items[1].ID)
	assert.Equal(t, "a1", items[2].ID)
	assert.Equal(t, 3, c.ItemCount())
	assert.Equal(t, 4, c.TotalReconciledCount())
}

func TestComparison_Counts(t *testing.T) {
	c := &model.Comparison{
		MatchedItems: []model.MatchedItem{
			{Supplement: item("s1", 1, 1, 1), Variance: model.ItemVariance{HighVariance: true}},
			{Supplement: item("s2", 1, 1, 1)},
		},
		Discrepancies: []model.Discrepancy{
			{ID: "d1", Severity: valueobject.SeverityCritical},
			{ID: "d2", Severity: valueobject.SeverityHigh},
			{ID: "d3", Severity: valueobject.SeverityHigh},
			{ID: "d4", Severity: valueobject.SeverityLow},
		},
	}

	assert.Equal(t, 1, c.HighVarianceCount())
	critical, high := c.DiscrepancyCounts()
	assert.Equal(t, 1, critical)
	assert.Equal(t, 2, high)
}

func TestComparison_VarianceRatio(t *testing.T) {
	c := &model.Comparison{
		OriginalTotal: decimal.NewFromInt(1000),
		TotalVariance: decimal.NewFromInt(-600),
	}
	assert.InDelta(t, 0.6, c.VarianceRatio(), 1e-9)

	c.OriginalTotal = decimal.Zero
	assert.Equal(t, 0.0, c.VarianceRatio())
}

func TestComparison_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmp     *model.Comparison
		wantErr error
	}{
		{
			name:    "nil comparison",
			cmp:     nil,
			wantErr: model.ErrNilComparison,
		},
		{
			name:    "missing item id",
			cmp:     &model.Comparison{AddedItems: []model.LineItem{item("", 1, 1, 1)}},
			wantErr: model.ErrMissingItemID,
		},
		{
			name: "duplicate item id",
			cmp: &model.Comparison{
				MatchedItems: []model.MatchedItem{{Supplement: item("x", 1, 1, 1)}},
				AddedItems:   []model.LineItem{item("x", 1, 1, 1)},
			},
			wantErr: model.ErrDuplicateItemID,
		},
		{
			name:    "negative quantity",
			cmp:     &model.Comparison{AddedItems: []model.LineItem{item("n", -1, 1, -1)}},
			wantErr: model.ErrNegativeQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmp.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	valid := &model.Comparison{AddedItems: []model.LineItem{item("a", 1, 1, 1), item("b", 0, 1, 0)}}
	assert.NoError(t, valid.Validate())
}
