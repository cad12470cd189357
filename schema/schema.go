// Package schema holds the shared data model for translation complexity scoring.
package schema

import (
	"maps"
	"slices"
)

// RawMetricSet is the output of one provider for one text, before normalization.
// Every call produces a fresh set owned by the caller.
type RawMetricSet struct {
	Category Category
	Values   map[MetricName]float64
}

// NormalizedMetricSet has the same keys as its source RawMetricSet after the
// per-metric normalization rules were applied.
type NormalizedMetricSet struct {
	Category Category
	Values   map[MetricName]float64
}

// NewRawMetricSet returns an empty raw set for the category.
func NewRawMetricSet(category Category) RawMetricSet {
	return RawMetricSet{Category: category, Values: make(map[MetricName]float64)}
}

// ZeroRawMetricSet returns a raw set with every metric of the category set to 0.
func ZeroRawMetricSet(category Category) RawMetricSet {
	set := NewRawMetricSet(category)
	for _, name := range CategoryMetrics[category] {
		set.Values[name] = 0
	}
	return set
}

// ZeroNormalizedMetricSet returns the degraded default for a failed category:
// every metric of the category set to 0.
func ZeroNormalizedMetricSet(category Category) NormalizedMetricSet {
	set := NormalizedMetricSet{Category: category, Values: make(map[MetricName]float64)}
	for _, name := range CategoryMetrics[category] {
		set.Values[name] = 0
	}
	return set
}

// Names returns the metric names of the set in a stable order.
func (s NormalizedMetricSet) Names() []MetricName {
	return sortedNames(s.Values)
}

// Names returns the metric names of the set in a stable order.
func (s RawMetricSet) Names() []MetricName {
	return sortedNames(s.Values)
}

// Clone returns a deep copy of the set.
func (s RawMetricSet) Clone() RawMetricSet {
	return RawMetricSet{Category: s.Category, Values: maps.Clone(s.Values)}
}

// sortedNames orders known metrics by display order and unknown ones alphabetically after them.
func sortedNames(values map[MetricName]float64) []MetricName {
	var known, unknown []MetricName
	for _, name := range AllMetricNames() {
		if _, ok := values[name]; ok {
			known = append(known, name)
		}
	}
	for name := range values {
		if _, ok := CategoryOf(name); !ok {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	return append(known, unknown...)
}

// CategoryWeights holds the relative importance of each category.
// Weights are non-negative and need not sum to 1.
type CategoryWeights struct {
	Readability float64 `json:"readability" yaml:"readability"`
	Linguistic  float64 `json:"linguistic" yaml:"linguistic"`
	Translation float64 `json:"translation" yaml:"translation"`
}

// For returns the weight of a category.
func (w CategoryWeights) For(c Category) float64 {
	switch c {
	case ReadabilityCategory:
		return w.Readability
	case LinguisticCategory:
		return w.Linguistic
	case TranslationCategory:
		return w.Translation
	default:
		return 0
	}
}

// Total returns the sum of all weights.
func (w CategoryWeights) Total() float64 {
	return w.Readability + w.Linguistic + w.Translation
}

// AsMap returns the weights keyed by category name.
func (w CategoryWeights) AsMap() map[string]float64 {
	return map[string]float64{
		string(ReadabilityCategory): w.Readability,
		string(LinguisticCategory):  w.Linguistic,
		string(TranslationCategory): w.Translation,
	}
}

// ComplexityThresholds holds the lower bounds of the medium, high and very_high bands.
type ComplexityThresholds struct {
	Low    float64 `json:"low" yaml:"low"`
	Medium float64 `json:"medium" yaml:"medium"`
	High   float64 `json:"high" yaml:"high"`
}

// Default scoring parameters.
var (
	DefaultWeights = CategoryWeights{
		Readability: 0.3,
		Linguistic:  0.4,
		Translation: 0.3,
	}
	DefaultThresholds = ComplexityThresholds{
		Low:    0.25,
		Medium: 0.45,
		High:   0.65,
	}
)
