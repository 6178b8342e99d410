package service

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// PValueBand maps chi-square statistics above Above to the p-value P.
type PValueBand struct {
	Above float64 `yaml:"above"`
	P     float64 `yaml:"p"`
}

// OutlierThresholds tunes the per-metric z-score check.
type OutlierThresholds struct {
	MinItems        int     `yaml:"min_items"`
	Flag            float64 `yaml:"flag"`
	High            float64 `yaml:"high"`
	Critical        float64 `yaml:"critical"`
	ConfidenceScale float64 `yaml:"confidence_scale"`
}

// DigitThresholds tunes the leading-digit check.
type DigitThresholds struct {
	// Expected is the reference leading-digit distribution for digits 1-9, in percent.
	Expected           []float64    `yaml:"expected"`
	PValueBands        []PValueBand `yaml:"p_value_bands"`
	MinItems           int          `yaml:"min_items"`
	DefaultPValue      float64      `yaml:"default_p_value"`
	SignificanceLevel  float64      `yaml:"significance_level"`
	StrongSignificance float64      `yaml:"strong_significance"`
	SuspiciousPoints   float64      `yaml:"suspicious_points"`
}

// CalculationThresholds tunes the quantity × unit price consistency check.
type CalculationThresholds struct {
	MinItems        int     `yaml:"min_items"`
	Tolerance       float64 `yaml:"tolerance"`
	HighDeviation   float64 `yaml:"high_deviation"`
	ConfidenceScale float64 `yaml:"confidence_scale"`
}

// TemporalThresholds tunes the processing-time check.
type TemporalThresholds struct {
	Limit      time.Duration `yaml:"limit"`
	Baseline   time.Duration `yaml:"baseline"`
	Confidence float64       `yaml:"confidence"`
}

// ComponentWeights combine the four component scores into the overall score.
type ComponentWeights struct {
	Statistical   float64 `yaml:"statistical"`
	Behavioral    float64 `yaml:"behavioral"`
	Documentation float64 `yaml:"documentation"`
	Compliance    float64 `yaml:"compliance"`
}

// Sum returns the total of all weights.
func (w ComponentWeights) Sum() float64 {
	return w.Statistical + w.Behavioral + w.Documentation + w.Compliance
}

// BehavioralCoefficients drive the behavioral component.
type BehavioralCoefficients struct {
	HighVarianceShare float64 `yaml:"high_variance_share"`
	PerPattern        float64 `yaml:"per_pattern"`
	DataQuality       float64 `yaml:"data_quality"`
}

// DocumentationCoefficients drive the documentation component.
type DocumentationCoefficients struct {
	MatchingAccuracy float64 `yaml:"matching_accuracy"`
	UnmatchedShare   float64 `yaml:"unmatched_share"`
	PerIssue         float64 `yaml:"per_issue"`
}

// ComplianceCoefficients drive the compliance component.
type ComplianceCoefficients struct {
	PerCritical     float64 `yaml:"per_critical"`
	PerHigh         float64 `yaml:"per_high"`
	DiscrepancyRate float64 `yaml:"discrepancy_rate"`
}

// FactorThresholds control the synthetic risk factors.
type FactorThresholds struct {
	VarianceMedium     float64 `yaml:"variance_medium"`
	VarianceHigh       float64 `yaml:"variance_high"`
	VarianceImpact     float64 `yaml:"variance_impact"`
	VarianceLikelihood float64 `yaml:"variance_likelihood"`
	VarianceConfidence float64 `yaml:"variance_confidence"`
	DocumentationScore int     `yaml:"documentation_score"`
}

// RecommendationThresholds control rule-based recommendations.
type RecommendationThresholds struct {
	InvestigationScore int `yaml:"investigation_score"`
}

// Thresholds is every tunable constant used by the detector and the scorers.
type Thresholds struct {
	Outlier         OutlierThresholds         `yaml:"outlier"`
	Digits          DigitThresholds           `yaml:"digits"`
	Calculation     CalculationThresholds     `yaml:"calculation"`
	Temporal        TemporalThresholds        `yaml:"temporal"`
	Weights         ComponentWeights          `yaml:"weights"`
	Behavioral      BehavioralCoefficients    `yaml:"behavioral"`
	Documentation   DocumentationCoefficients `yaml:"documentation"`
	Compliance      ComplianceCoefficients    `yaml:"compliance"`
	Factors         FactorThresholds          `yaml:"factors"`
	Recommendations RecommendationThresholds  `yaml:"recommendations"`
	// IntervalZ is the normal critical value for the confidence interval.
	IntervalZ float64 `yaml:"interval_z"`
}

// DefaultThresholds returns the production tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Outlier: OutlierThresholds{
			MinItems:        3,
			Flag:            2.0,
			High:            2.5,
			Critical:        3.0,
			ConfidenceScale: 3.0,
		},
		Digits: DigitThresholds{
			MinItems: 30,
			Expected: []float64{30.1, 17.6, 12.5, 9.7, 7.9, 6.7, 5.8, 5.1, 4.6},
			PValueBands: []PValueBand{
				{Above: 20, P: 0.01},
				{Above: 15, P: 0.05},
				{Above: 10, P: 0.1},
			},
			DefaultPValue:      0.5,
			SignificanceLevel:  0.05,
			StrongSignificance: 0.01,
			SuspiciousPoints:   5,
		},
		Calculation: CalculationThresholds{
			MinItems:        5,
			Tolerance:       0.01,
			HighDeviation:   100,
			ConfidenceScale: 100,
		},
		Temporal: TemporalThresholds{
			Limit:      30 * time.Second,
			Baseline:   5 * time.Second,
			Confidence: 0.7,
		},
		Weights: ComponentWeights{
			Statistical:   0.35,
			Behavioral:    0.25,
			Documentation: 0.25,
			Compliance:    0.15,
		},
		Behavioral: BehavioralCoefficients{
			HighVarianceShare: 40,
			PerPattern:        15,
			DataQuality:       30,
		},
		Documentation: DocumentationCoefficients{
			MatchingAccuracy: 50,
			UnmatchedShare:   30,
			PerIssue:         5,
		},
		Compliance: ComplianceCoefficients{
			PerCritical:     25,
			PerHigh:         15,
			DiscrepancyRate: 20,
		},
		Factors: FactorThresholds{
			VarianceMedium:     0.2,
			VarianceHigh:       0.5,
			VarianceImpact:     75,
			VarianceLikelihood: 0.8,
			VarianceConfidence: 0.9,
			DocumentationScore: 60,
		},
		Recommendations: RecommendationThresholds{
			InvestigationScore: 75,
		},
		IntervalZ: 1.96,
	}
}

// Validate rejects tunings that would make the algorithms meaningless.
func (t Thresholds) Validate() error {
	var errs []error

	if t.Outlier.MinItems < 2 {
		errs = append(errs, fmt.Errorf("outlier.min_items must be at least 2, got %d", t.Outlier.MinItems))
	}
	if !(t.Outlier.Flag > 0 && t.Outlier.Flag <= t.Outlier.High && t.Outlier.High <= t.Outlier.Critical) {
		errs = append(errs, fmt.Errorf("outlier cutoffs must satisfy 0 < flag <= high <= critical, got %v/%v/%v",
			t.Outlier.Flag, t.Outlier.High, t.Outlier.Critical))
	}
	if t.Outlier.ConfidenceScale <= 0 {
		errs = append(errs, fmt.Errorf("outlier.confidence_scale must be positive"))
	}

	if len(t.Digits.Expected) != 9 {
		errs = append(errs, fmt.Errorf("digits.expected must list 9 percentages, got %d", len(t.Digits.Expected)))
	}
	for i, e := range t.Digits.Expected {
		if e <= 0 {
			errs = append(errs, fmt.Errorf("digits.expected[%d] must be positive, got %v", i, e))
		}
	}
	if len(t.Digits.PValueBands) == 0 {
		errs = append(errs, fmt.Errorf("digits.p_value_bands must not be empty"))
	}
	for i := 1; i < len(t.Digits.PValueBands); i++ {
		if t.Digits.PValueBands[i].Above >= t.Digits.PValueBands[i-1].Above {
			errs = append(errs, fmt.Errorf("digits.p_value_bands must be ordered by descending chi-square cutoff"))
			break
		}
	}
	if t.Digits.MinItems < 1 {
		errs = append(errs, fmt.Errorf("digits.min_items must be positive"))
	}

	if t.Calculation.MinItems < 1 || t.Calculation.Tolerance < 0 || t.Calculation.ConfidenceScale <= 0 {
		errs = append(errs, fmt.Errorf("calculation thresholds must have positive min_items and confidence_scale and non-negative tolerance"))
	}

	if t.Temporal.Limit <= 0 || t.Temporal.Confidence < 0 || t.Temporal.Confidence > 1 {
		errs = append(errs, fmt.Errorf("temporal.limit must be positive and temporal.confidence within [0,1]"))
	}

	if math.Abs(t.Weights.Sum()-1) > 1e-9 {
		errs = append(errs, fmt.Errorf("component weights must sum to 1, got %v", t.Weights.Sum()))
	}

	if t.IntervalZ <= 0 {
		errs = append(errs, fmt.Errorf("interval_z must be positive"))
	}

	return errors.Join(errs...)
}

// pValue maps a chi-square statistic to the banded p-value approximation and
// reports the band cutoff it crossed (0 when no band matched).
func (d DigitThresholds) pValue(chiSquare float64) (p, cutoff float64) {
	for _, band := range d.PValueBands {
		if chiSquare > band.Above {
			return band.P, band.Above
		}
	}
	return d.DefaultPValue, 0
}
