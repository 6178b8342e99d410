package service_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

func lineItem(id, quantity, unitPrice, total string) model.LineItem {
	return model.LineItem{
		ID:          id,
		Description: "part " + id,
		Category:    "parts",
		Quantity:    decimal.RequireFromString(quantity),
		UnitPrice:   decimal.RequireFromString(unitPrice),
		Total:       decimal.RequireFromString(total),
	}
}

// pricedItems returns one item per price with quantity 1 and a consistent total.
func pricedItems(prices ...string) []model.LineItem {
	items := make([]model.LineItem, len(prices))
	for i, p := range prices {
		items[i] = lineItem(fmt.Sprintf("item-%02d", i+1), "1", p, p)
	}
	return items
}

func perfectQuality() *model.DataQuality {
	return &model.DataQuality{Completeness: 1, Consistency: 1, Accuracy: 1, Precision: 1}
}

// addedComparison treats every item as newly added by the supplement.
func addedComparison(items ...model.LineItem) *model.Comparison {
	return &model.Comparison{
		ClaimID:          "CLM-1001",
		AddedItems:       items,
		DataQuality:      perfectQuality(),
		MatchingAccuracy: 1,
	}
}

// matchedComparison pairs every item with an identical original.
func matchedComparison(items ...model.LineItem) *model.Comparison {
	c := &model.Comparison{
		ClaimID:          "CLM-1002",
		DataQuality:      perfectQuality(),
		MatchingAccuracy: 1,
	}
	for _, item := range items {
		c.MatchedItems = append(c.MatchedItems, model.MatchedItem{Original: item, Supplement: item})
		c.OriginalTotal = c.OriginalTotal.Add(item.Total)
		c.SupplementTotal = c.SupplementTotal.Add(item.Total)
	}
	return c
}

func anomalyOf(t valueobject.AnomalyType, severity valueobject.Severity, confidence float64) model.StatisticalAnomaly {
	return model.StatisticalAnomaly{
		Type:          t,
		Severity:      severity,
		Confidence:    confidence,
		Description:   t.String() + " anomaly",
		AffectedItems: []string{"item-01"},
		Evidence: []model.AnomalyEvidence{{
			Type:        valueobject.EvidenceStatistical,
			Description: "observed",
		}},
	}
}

func findAnomaly(anomalies []model.StatisticalAnomaly, t valueobject.AnomalyType) (model.StatisticalAnomaly, bool) {
	for _, a := range anomalies {
		if a.Type.Equal(t) {
			return a, true
		}
	}
	return model.StatisticalAnomaly{}, false
}

func countAnomalies(anomalies []model.StatisticalAnomaly, t valueobject.AnomalyType) int {
	n := 0
	for _, a := range anomalies {
		if a.Type.Equal(t) {
			n++
		}
	}
	return n
}
