package valueobject

import "fmt"

// AnomalyType is the closed set of statistical anomaly kinds the detector can report.
type AnomalyType struct {
	value string
}

var (
	AnomalyOutlier                  = AnomalyType{value: "outlier"}
	AnomalyArtificialDigitPattern   = AnomalyType{value: "artificial-digit-pattern"}
	AnomalyCalculationInconsistency = AnomalyType{value: "calculation-inconsistency"}
	AnomalyTemporal                 = AnomalyType{value: "temporal"}

	// AnomalyGeographic is reserved. No check produces it yet.
	AnomalyGeographic = AnomalyType{value: "geographic"}
)

// AnomalyTypeFromString reconstructs an AnomalyType from its string representation.
func AnomalyTypeFromString(s string) (AnomalyType, error) {
	switch s {
	case "outlier":
		return AnomalyOutlier, nil
	case "artificial-digit-pattern":
		return AnomalyArtificialDigitPattern, nil
	case "calculation-inconsistency":
		return AnomalyCalculationInconsistency, nil
	case "temporal":
		return AnomalyTemporal, nil
	case "geographic":
		return AnomalyGeographic, nil
	default:
		return AnomalyType{}, fmt.Errorf("invalid anomaly type: %s", s)
	}
}

// String returns the string representation.
func (a AnomalyType) String() string {
	return a.value
}

// IsZero returns true if the AnomalyType has not been set.
func (a AnomalyType) IsZero() bool {
	return a.value == ""
}

// Equal checks equality with another AnomalyType.
func (a AnomalyType) Equal(other AnomalyType) bool {
	return a.value == other.value
}

// EvidenceType classifies the kind of support behind an anomaly.
type EvidenceType struct {
	value string
}

var (
	EvidenceStatistical = EvidenceType{value: "statistical"}
	EvidencePattern     = EvidenceType{value: "pattern"}
	EvidenceComparison  = EvidenceType{value: "comparison"}
	EvidenceHistorical  = EvidenceType{value: "historical"}
)

// String returns the string representation.
func (e EvidenceType) String() string {
	return e.value
}

// IsZero returns true if the EvidenceType has not been set.
func (e EvidenceType) IsZero() bool {
	return e.value == ""
}
