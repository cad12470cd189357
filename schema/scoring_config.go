package schema

import (
	"fmt"
	"math"
)

// ScoringConfig is the validated, read-only scoring configuration.
// It is built once at startup and shared by every scoring call.
type ScoringConfig struct {
	weights    CategoryWeights
	thresholds ComplexityThresholds
	clampAll   bool
}

// NewScoringConfig validates the weights and thresholds and returns a config.
// A negative weight, an all-zero weight vector, thresholds outside [0,1] or
// thresholds that are not strictly ascending are rejected.
func NewScoringConfig(weights CategoryWeights, thresholds ComplexityThresholds, clampAll bool) (ScoringConfig, error) {
	if err := ValidateWeights(weights); err != nil {
		return ScoringConfig{}, err
	}
	if err := ValidateThresholds(thresholds); err != nil {
		return ScoringConfig{}, err
	}
	return ScoringConfig{weights: weights, thresholds: thresholds, clampAll: clampAll}, nil
}

// DefaultScoringConfig returns the default weights (0.3/0.4/0.3) and thresholds (0.25/0.45/0.65).
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{weights: DefaultWeights, thresholds: DefaultThresholds}
}

// ValidateWeights checks that all weights are finite, non-negative, and not all zero.
func ValidateWeights(w CategoryWeights) error {
	for _, c := range AllCategories {
		v := w.For(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight for %s must be a finite number", ErrInvalidConfig, c)
		}
		if v < 0 {
			return fmt.Errorf("%w: weight for %s must not be negative (received %.3f)", ErrInvalidConfig, c, v)
		}
	}
	if w.Total() <= 0 {
		return fmt.Errorf("%w: at least one category weight must be greater than 0", ErrInvalidConfig)
	}
	return nil
}

// ValidateThresholds checks that 0 <= low < medium < high <= 1.
func ValidateThresholds(t ComplexityThresholds) error {
	for name, v := range map[string]float64{"low": t.Low, "medium": t.Medium, "high": t.High} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s threshold must be between 0.0 and 1.0 (received %.3f)", ErrInvalidConfig, name, v)
		}
	}
	if t.Low >= t.Medium || t.Medium >= t.High {
		return fmt.Errorf("%w: thresholds must be strictly ascending (low=%.3f, medium=%.3f, high=%.3f)",
			ErrInvalidConfig, t.Low, t.Medium, t.High)
	}
	return nil
}

// GetMetricWeights returns the category weights.
func (c ScoringConfig) GetMetricWeights() CategoryWeights {
	return c.weights
}

// GetThresholds returns the complexity band thresholds.
func (c ScoringConfig) GetThresholds() ComplexityThresholds {
	return c.thresholds
}

// ClampAll reports whether every normalized metric is clamped to [0,1].
func (c ScoringConfig) ClampAll() bool {
	return c.clampAll
}

// GetComplexityLevel maps an overall score onto the half-open bands
// [0,low) low, [low,medium) medium, [medium,high) high and [high,∞) very_high.
func (c ScoringConfig) GetComplexityLevel(score float64) ComplexityLevel {
	switch {
	case score < c.thresholds.Low:
		return LowLevel
	case score < c.thresholds.Medium:
		return MediumLevel
	case score < c.thresholds.High:
		return HighLevel
	default:
		return VeryHighLevel
	}
}

// Fingerprint identifies the parameters that change scoring output.
// It is part of every cache key so results from another configuration are never reused.
func (c ScoringConfig) Fingerprint() string {
	return fmt.Sprintf("w=%g/%g/%g;t=%g/%g/%g;clamp=%t",
		c.weights.Readability, c.weights.Linguistic, c.weights.Translation,
		c.thresholds.Low, c.thresholds.Medium, c.thresholds.High, c.clampAll)
}
