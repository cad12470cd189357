package core

import (
	"fmt"

	"github.com/huangsam/tcscore/schema"
)

// CategoryScore returns the unweighted mean of a normalized set.
func CategoryScore(set schema.NormalizedMetricSet) (float64, error) {
	if len(set.Values) == 0 {
		return 0, fmt.Errorf("%s: %w", set.Category, schema.ErrEmptyMetricSet)
	}
	// Sum in a fixed order so repeated calls agree to the last bit.
	var sum float64
	for _, name := range set.Names() {
		sum += set.Values[name]
	}
	return sum / float64(len(set.Values)), nil
}

// OverallScore returns the weighted average of the category scores clamped to [0,1].
// Validated configs never carry a zero total weight; 0 is returned if one does.
func OverallScore(scores map[schema.Category]float64, weights schema.CategoryWeights) float64 {
	total := weights.Total()
	if total <= 0 {
		return 0
	}
	var weighted float64
	for _, c := range schema.AllCategories {
		weighted += weights.For(c) * scores[c]
	}
	return clamp01(weighted / total)
}

// clamp01 clamps a value to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
