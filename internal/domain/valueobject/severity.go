package valueobject

import "fmt"

// Severity is an immutable value object classifying how serious a finding is.
type Severity struct {
	value string
}

var (
	SeverityLow      = Severity{value: "low"}
	SeverityMedium   = Severity{value: "medium"}
	SeverityHigh     = Severity{value: "high"}
	SeverityCritical = Severity{value: "critical"}
)

// SeverityFromString reconstructs a Severity from its string representation.
func SeverityFromString(s string) (Severity, error) {
	switch s {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return Severity{}, fmt.Errorf("invalid severity: %s", s)
	}
}

// String returns the string representation.
func (s Severity) String() string {
	return s.value
}

// Rank orders severities from low (1) to critical (4). The zero value ranks 0.
func (s Severity) Rank() int {
	switch s.value {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	case "critical":
		return 4
	default:
		return 0
	}
}

// BaseScore is the statistical component contribution of a finding at this severity.
// LOW=25, MEDIUM=50, HIGH=75, CRITICAL=100.
func (s Severity) BaseScore() float64 {
	return float64(s.Rank()) * 25
}

// Impact is the risk factor impact for this severity.
// LOW=25, MEDIUM=50, HIGH=75, CRITICAL=95.
func (s Severity) Impact() float64 {
	switch s.value {
	case "low":
		return 25
	case "medium":
		return 50
	case "high":
		return 75
	case "critical":
		return 95
	default:
		return 0
	}
}

// Weight is the risk factor weight multiplier for this severity.
func (s Severity) Weight() float64 {
	switch s.value {
	case "low":
		return 0.4
	case "medium":
		return 0.6
	case "high":
		return 0.8
	case "critical":
		return 1.0
	default:
		return 0
	}
}

// Max returns the more severe of s and other.
func (s Severity) Max(other Severity) Severity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// IsZero returns true if the Severity has not been set.
func (s Severity) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another Severity.
func (s Severity) Equal(other Severity) bool {
	return s.value == other.value
}
