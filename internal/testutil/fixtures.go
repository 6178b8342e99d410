package testutil

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
)

// LineItem builds a line item from decimal strings.
func LineItem(id, quantity, unitPrice, total string) dto.LineItem {
	return dto.LineItem{
		ID:        id,
		Quantity:  decimal.NewNullDecimal(decimal.RequireFromString(quantity)),
		UnitPrice: decimal.NewNullDecimal(decimal.RequireFromString(unitPrice)),
		Total:     decimal.NewNullDecimal(decimal.RequireFromString(total)),
	}
}

// CleanComparison is a fully matched three-line comparison with perfect data
// quality. It assesses as minimal risk.
func CleanComparison(claimID string) dto.ComparisonRequest {
	req := dto.ComparisonRequest{
		ClaimID:          claimID,
		OriginalTotal:    decimal.NewFromInt(330),
		SupplementTotal:  decimal.NewFromInt(330),
		MatchingAccuracy: 1,
		DataQuality:      &dto.DataQuality{Completeness: 1, Consistency: 1, Accuracy: 1, Precision: 1},
	}
	for i, price := range []string{"100", "110", "120"} {
		req.MatchedItems = append(req.MatchedItems, dto.MatchedItem{
			Original:   LineItem(fmt.Sprintf("o-%d", i+1), "1", price, price),
			Supplement: LineItem(fmt.Sprintf("s-%d", i+1), "1", price, price),
		})
	}
	return req
}
