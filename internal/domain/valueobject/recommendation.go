package valueobject

import "fmt"

// Priority orders recommendations by urgency.
type Priority struct {
	value string
}

var (
	PriorityImmediate = Priority{value: "immediate"}
	PriorityHigh      = Priority{value: "high"}
	PriorityMedium    = Priority{value: "medium"}
	PriorityLow       = Priority{value: "low"}
)

// PriorityFromString reconstructs a Priority from its string representation.
func PriorityFromString(s string) (Priority, error) {
	switch s {
	case "immediate":
		return PriorityImmediate, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return Priority{}, fmt.Errorf("invalid priority: %s", s)
	}
}

// Rank returns 1 for immediate through 4 for low. Lower ranks sort first.
func (p Priority) Rank() int {
	switch p.value {
	case "immediate":
		return 1
	case "high":
		return 2
	case "medium":
		return 3
	case "low":
		return 4
	default:
		return 5
	}
}

// String returns the string representation.
func (p Priority) String() string {
	return p.value
}

// Equal checks equality with another Priority.
func (p Priority) Equal(other Priority) bool {
	return p.value == other.value
}

// RecommendationCategory names the kind of follow-up a recommendation asks for.
type RecommendationCategory struct {
	value string
}

var (
	RecommendInvestigation = RecommendationCategory{value: "investigation"}
	RecommendVerification  = RecommendationCategory{value: "verification"}
	RecommendDocumentation = RecommendationCategory{value: "documentation"}
	RecommendCompliance    = RecommendationCategory{value: "compliance"}
)

// String returns the string representation.
func (c RecommendationCategory) String() string {
	return c.value
}

// Equal checks equality with another RecommendationCategory.
func (c RecommendationCategory) Equal(other RecommendationCategory) bool {
	return c.value == other.value
}
