package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/valueobject"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/money"
)

var (
	// ErrNilComparison is returned when no comparison snapshot was supplied.
	ErrNilComparison = errors.New("comparison is required")
	// ErrMissingItemID is returned when a reconciled line item has no identifier.
	ErrMissingItemID = errors.New("line item ID is required")
	// ErrDuplicateItemID is returned when two reconciled line items share an identifier.
	ErrDuplicateItemID = errors.New("duplicate line item ID")
	// ErrNegativeQuantity is returned when a reconciled line item has a negative quantity.
	ErrNegativeQuantity = errors.New("line item quantity must not be negative")
)

// LineItem is a single invoice line as produced by the extraction layer.
// The variance fields are set only for supplement items matched to an original.
type LineItem struct {
	QuantityVariance *decimal.Decimal
	PriceVariance    *decimal.Decimal
	TotalVariance    *decimal.Decimal
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	Total            decimal.Decimal
	ID               string
	Description      string
	Category         string
}

// ItemVariance is the reconciler's computed difference between a matched pair.
type ItemVariance struct {
	Amount       decimal.Decimal
	Percentage   float64
	HighVariance bool
}

// MatchedItem pairs an original line with the supplement line it was reconciled to.
type MatchedItem struct {
	Original   LineItem
	Supplement LineItem
	Variance   ItemVariance
}

// CategoryVariance summarises variance for one category tag.
type CategoryVariance struct {
	OriginalTotal   decimal.Decimal
	SupplementTotal decimal.Decimal
	Variance        decimal.Decimal
	Category        string
	Percentage      float64
	ItemCount       int
}

// DataQuality holds the reconciler's data-quality metrics, each in [0,1].
type DataQuality struct {
	Completeness float64
	Consistency  float64
	Accuracy     float64
	Precision    float64
	IssueCount   int
}

// Product returns completeness × consistency × accuracy.
func (q DataQuality) Product() float64 {
	return q.Completeness * q.Consistency * q.Accuracy
}

// Discrepancy is a reconciler-reported mismatch between the two documents.
type Discrepancy struct {
	Severity    valueobject.Severity
	ID          string
	Description string
	ItemID      string
}

// Comparison is the reconciled snapshot of an original invoice against its
// supplement. It is read-only input to the anomaly detector and the risk scorer.
type Comparison struct {
	OriginalTotal          decimal.Decimal
	SupplementTotal        decimal.Decimal
	TotalVariance          decimal.Decimal
	DataQuality            *DataQuality
	ClaimID                string
	MatchedItems           []MatchedItem
	AddedItems             []LineItem
	UnmatchedOriginals     []LineItem
	CategoryVariances      []CategoryVariance
	Discrepancies          []Discrepancy
	MatchingAccuracy       float64
	SuspiciousPatternCount int
	ProcessingTime         time.Duration
}

// ReconciledItems returns the supplement side of every matched pair followed by
// every newly added supplement item, in input order.
func (c *Comparison) ReconciledItems() []LineItem {
	items := make([]LineItem, 0, len(c.MatchedItems)+len(c.AddedItems))
	for _, m := range c.MatchedItems {
		items = append(items, m.Supplement)
	}
	return append(items, c.AddedItems...)
}

// ItemCount returns the number of reconciled supplement items.
func (c *Comparison) ItemCount() int {
	return len(c.MatchedItems) + len(c.AddedItems)
}

// TotalReconciledCount counts every line the reconciler looked at: matched
// pairs, added supplement items and originals left unmatched.
func (c *Comparison) TotalReconciledCount() int {
	return len(c.MatchedItems) + len(c.AddedItems) + len(c.UnmatchedOriginals)
}

// HighVarianceCount returns how many matched pairs the reconciler flagged as high variance.
func (c *Comparison) HighVarianceCount() int {
	n := 0
	for _, m := range c.MatchedItems {
		if m.Variance.HighVariance {
			n++
		}
	}
	return n
}

// VarianceRatio returns |TotalVariance| / OriginalTotal, or 0 when the
// original total is not positive. Increases and decreases count alike.
func (c *Comparison) VarianceRatio() float64 {
	if !c.OriginalTotal.IsPositive() {
		return 0
	}
	return money.Ratio(c.TotalVariance.Abs(), c.OriginalTotal)
}

// DiscrepancyCounts returns the number of critical and high discrepancies.
func (c *Comparison) DiscrepancyCounts() (critical, high int) {
	for _, d := range c.Discrepancies {
		switch d.Severity {
		case valueobject.SeverityCritical:
			critical++
		case valueobject.SeverityHigh:
			high++
		}
	}
	return critical, high
}

// Validate checks the structural requirements shared by every check: item
// identifiers must be present and unique and quantities must not be negative.
func (c *Comparison) Validate() error {
	if c == nil {
		return ErrNilComparison
	}
	seen := make(map[string]struct{}, c.ItemCount())
	for i, item := range c.ReconciledItems() {
		if item.ID == "" {
			return fmt.Errorf("reconciled item %d: %w", i, ErrMissingItemID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("reconciled item %q: %w", item.ID, ErrDuplicateItemID)
		}
		seen[item.ID] = struct{}{}
		if item.Quantity.IsNegative() {
			return fmt.Errorf("reconciled item %q: %w", item.ID, ErrNegativeQuantity)
		}
	}
	return nil
}
