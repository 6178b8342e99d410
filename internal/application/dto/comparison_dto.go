package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
)

// ErrInvalidRequest is wrapped by every request mapping failure.
var ErrInvalidRequest = errors.New("invalid request")

// LineItem is one invoice line as sent by the reconciliation engine.
type LineItem struct {
	QuantityVariance *decimal.Decimal    `json:"quantity_variance,omitempty"`
	PriceVariance    *decimal.Decimal    `json:"price_variance,omitempty"`
	TotalVariance    *decimal.Decimal    `json:"total_variance,omitempty"`
	Quantity         decimal.NullDecimal `json:"quantity"`
	UnitPrice        decimal.NullDecimal `json:"unit_price"`
	Total            decimal.NullDecimal `json:"total"`
	ID               string              `json:"id"`
	Description      string              `json:"description"`
	Category         string              `json:"category"`
}

// ItemVariance is the computed difference of a matched pair.
type ItemVariance struct {
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
	HighVariance bool            `json:"high_variance"`
}

// MatchedItem pairs an original line with its supplement counterpart.
type MatchedItem struct {
	Original   LineItem     `json:"original"`
	Supplement LineItem     `json:"supplement"`
	Variance   ItemVariance `json:"variance"`
}

// CategoryVariance summarises variance for one category tag.
type CategoryVariance struct {
	OriginalTotal   decimal.Decimal `json:"original_total"`
	SupplementTotal decimal.Decimal `json:"supplement_total"`
	Variance        decimal.Decimal `json:"variance"`
	Category        string          `json:"category"`
	Percentage      float64         `json:"percentage"`
	ItemCount       int             `json:"item_count"`
}

// DataQuality carries the reconciler's data-quality metrics.
type DataQuality struct {
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
	Accuracy     float64 `json:"accuracy"`
	Precision    float64 `json:"precision"`
	IssueCount   int     `json:"issue_count"`
}

// Discrepancy is a reconciler-reported mismatch.
type Discrepancy struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	ItemID      string `json:"item_id,omitempty"`
}

// ComparisonRequest is the input DTO for the AssessSupplement use case.
type ComparisonRequest struct {
	OriginalTotal          decimal.Decimal    `json:"original_total"`
	SupplementTotal        decimal.Decimal    `json:"supplement_total"`
	TotalVariance          decimal.Decimal    `json:"total_variance"`
	DataQuality            *DataQuality       `json:"data_quality"`
	ClaimID                string             `json:"claim_id"`
	MatchedItems           []MatchedItem      `json:"matched_items"`
	AddedItems             []LineItem         `json:"added_items"`
	UnmatchedOriginals     []LineItem         `json:"unmatched_originals"`
	CategoryVariances      []CategoryVariance `json:"category_variances"`
	Discrepancies          []Discrepancy      `json:"discrepancies"`
	MatchingAccuracy       float64            `json:"matching_accuracy"`
	SuspiciousPatternCount int                `json:"suspicious_pattern_count"`
	ProcessingTimeMs       int64              `json:"processing_time_ms"`
}

// BatchRequest is the input DTO for the AssessBatch use case.
type BatchRequest struct {
	Comparisons []ComparisonRequest `json:"comparisons"`
}

// ToModel maps the request to a domain comparison. Missing line amounts and
// out-of-range ratios are rejected here; other structural checks on the line
// items are left to the detector.
func (r ComparisonRequest) ToModel() (*model.Comparison, error) {
	if r.ClaimID == "" {
		return nil, fmt.Errorf("%w: claim_id is required", ErrInvalidRequest)
	}
	if r.MatchingAccuracy < 0 || r.MatchingAccuracy > 1 {
		return nil, fmt.Errorf("%w: matching_accuracy must be within [0,1], got %v", ErrInvalidRequest, r.MatchingAccuracy)
	}
	if r.SuspiciousPatternCount < 0 {
		return nil, fmt.Errorf("%w: suspicious_pattern_count must not be negative", ErrInvalidRequest)
	}

	if err := r.DataQuality.validate(); err != nil {
		return nil, err
	}

	added, err := toLineItems("added_items", r.AddedItems)
	if err != nil {
		return nil, err
	}
	unmatched, err := toLineItems("unmatched_originals", r.UnmatchedOriginals)
	if err != nil {
		return nil, err
	}

	c := &model.Comparison{
		ClaimID:                r.ClaimID,
		OriginalTotal:          r.OriginalTotal,
		SupplementTotal:        r.SupplementTotal,
		TotalVariance:          r.TotalVariance,
		MatchingAccuracy:       r.MatchingAccuracy,
		SuspiciousPatternCount: r.SuspiciousPatternCount,
		ProcessingTime:         time.Duration(r.ProcessingTimeMs) * time.Millisecond,
		AddedItems:             added,
		UnmatchedOriginals:     unmatched,
	}

	for i, m := range r.MatchedItems {
		original, err := m.Original.toModel(fmt.Sprintf("matched_items[%d].original", i))
		if err != nil {
			return nil, err
		}
		supplement, err := m.Supplement.toModel(fmt.Sprintf("matched_items[%d].supplement", i))
		if err != nil {
			return nil, err
		}
		c.MatchedItems = append(c.MatchedItems, model.MatchedItem{
			Original:   original,
			Supplement: supplement,
			Variance: model.ItemVariance{
				Amount:       m.Variance.Amount,
				Percentage:   m.Variance.Percentage,
				HighVariance: m.Variance.HighVariance,
			},
		})
	}

	for _, cv := range r.CategoryVariances {
		c.CategoryVariances = append(c.CategoryVariances, model.CategoryVariance{
			Category:        cv.Category,
			OriginalTotal:   cv.OriginalTotal,
			SupplementTotal: cv.SupplementTotal,
			Variance:        cv.Variance,
			Percentage:      cv.Percentage,
			ItemCount:       cv.ItemCount,
		})
	}

	if q := r.DataQuality; q != nil {
		c.DataQuality = &model.DataQuality{
			Completeness: q.Completeness,
			Consistency:  q.Consistency,
			Accuracy:     q.Accuracy,
			Precision:    q.Precision,
			IssueCount:   q.IssueCount,
		}
	}

	for i, d := range r.Discrepancies {
		severity, err := valueobject.SeverityFromString(d.Severity)
		if err != nil {
			return nil, fmt.Errorf("%w: discrepancy %d: %w", ErrInvalidRequest, i, err)
		}
		c.Discrepancies = append(c.Discrepancies, model.Discrepancy{
			ID:          d.ID,
			Severity:    severity,
			Description: d.Description,
			ItemID:      d.ItemID,
		})
	}

	return c, nil
}

func (q *DataQuality) validate() error {
	if q == nil {
		return nil
	}
	ratios := []struct {
		name  string
		value float64
	}{
		{"completeness", q.Completeness},
		{"consistency", q.Consistency},
		{"accuracy", q.Accuracy},
		{"precision", q.Precision},
	}
	for _, r := range ratios {
		if r.value < 0 || r.value > 1 {
			return fmt.Errorf("%w: data_quality.%s must be within [0,1], got %v", ErrInvalidRequest, r.name, r.value)
		}
	}
	if q.IssueCount < 0 {
		return fmt.Errorf("%w: data_quality.issue_count must not be negative", ErrInvalidRequest)
	}
	return nil
}

// toModel maps one line item; path names it in errors.
func (li LineItem) toModel(path string) (model.LineItem, error) {
	for _, f := range []struct {
		name  string
		value decimal.NullDecimal
	}{
		{"quantity", li.Quantity},
		{"unit_price", li.UnitPrice},
		{"total", li.Total},
	} {
		if !f.value.Valid {
			return model.LineItem{}, fmt.Errorf("%w: %s.%s is required", ErrInvalidRequest, path, f.name)
		}
	}
	return model.LineItem{
		ID:               li.ID,
		Description:      li.Description,
		Category:         li.Category,
		Quantity:         li.Quantity.Decimal,
		UnitPrice:        li.UnitPrice.Decimal,
		Total:            li.Total.Decimal,
		QuantityVariance: li.QuantityVariance,
		PriceVariance:    li.PriceVariance,
		TotalVariance:    li.TotalVariance,
	}, nil
}

func toLineItems(field string, items []LineItem) ([]model.LineItem, error) {
	out := make([]model.LineItem, len(items))
	for i, item := range items {
		li, err := item.toModel(fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		out[i] = li
	}
	return out, nil
}
