package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the five-tier risk classification.
type RiskLevel struct {
	value string
}

var (
	RiskLevelMinimal  = RiskLevel{value: "minimal"}
	RiskLevelLow      = RiskLevel{value: "low"}
	RiskLevelModerate = RiskLevel{value: "moderate"}
	RiskLevelHigh     = RiskLevel{value: "high"}
	RiskLevelCritical = RiskLevel{value: "critical"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "minimal":
		return RiskLevelMinimal, nil
	case "low":
		return RiskLevelLow, nil
	case "moderate":
		return RiskLevelModerate, nil
	case "high":
		return RiskLevelHigh, nil
	case "critical":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel from an overall score (0-100).
// Lower bounds are inclusive.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 85:
		return RiskLevelCritical
	case score >= 70:
		return RiskLevelHigh
	case score >= 50:
		return RiskLevelModerate
	case score >= 25:
		return RiskLevelLow
	default:
		return RiskLevelMinimal
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// AtLeast reports whether r is as severe as other or more.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.rank() >= other.rank()
}

func (r RiskLevel) rank() int {
	switch r.value {
	case "minimal":
		return 1
	case "low":
		return 2
	case "moderate":
		return 3
	case "high":
		return 4
	case "critical":
		return 5
	default:
		return 0
	}
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
