package valueobject

import "fmt"

// RiskCategory groups risk factors. It covers every AnomalyType plus the
// synthetic categories raised directly by the scorer.
type RiskCategory struct {
	value string
}

var (
	CategoryOutlier                  = RiskCategory{value: "outlier"}
	CategoryArtificialDigitPattern   = RiskCategory{value: "artificial-digit-pattern"}
	CategoryCalculationInconsistency = RiskCategory{value: "calculation-inconsistency"}
	CategoryTemporal                 = RiskCategory{value: "temporal"}
	CategoryGeographic               = RiskCategory{value: "geographic"}

	CategoryVariance      = RiskCategory{value: "variance"}
	CategoryDocumentation = RiskCategory{value: "documentation"}
	CategoryCompliance    = RiskCategory{value: "compliance"}
)

// RiskCategoryFromAnomalyType returns the category that factors derived from
// an anomaly of type t are filed under.
func RiskCategoryFromAnomalyType(t AnomalyType) (RiskCategory, error) {
	switch t {
	case AnomalyOutlier:
		return CategoryOutlier, nil
	case AnomalyArtificialDigitPattern:
		return CategoryArtificialDigitPattern, nil
	case AnomalyCalculationInconsistency:
		return CategoryCalculationInconsistency, nil
	case AnomalyTemporal:
		return CategoryTemporal, nil
	case AnomalyGeographic:
		return CategoryGeographic, nil
	default:
		return RiskCategory{}, fmt.Errorf("no risk category for anomaly type %q", t.String())
	}
}

// RiskCategoryFromString reconstructs a RiskCategory from its string representation.
func RiskCategoryFromString(s string) (RiskCategory, error) {
	for _, c := range []RiskCategory{
		CategoryOutlier, CategoryArtificialDigitPattern, CategoryCalculationInconsistency,
		CategoryTemporal, CategoryGeographic, CategoryVariance, CategoryDocumentation, CategoryCompliance,
	} {
		if c.value == s {
			return c, nil
		}
	}
	return RiskCategory{}, fmt.Errorf("invalid risk category: %s", s)
}

// String returns the string representation.
func (c RiskCategory) String() string {
	return c.value
}

// IsZero returns true if the RiskCategory has not been set.
func (c RiskCategory) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another RiskCategory.
func (c RiskCategory) Equal(other RiskCategory) bool {
	return c.value == other.value
}
