package schema

import (
	"encoding/json"
	"fmt"
	"maps"
)

// ScoreBundle is the immutable result of scoring one text. It carries every
// normalized metric, the per-category scores and the overall complexity.
type ScoreBundle struct {
	metrics    map[MetricName]float64
	categories map[Category]float64
	overall    float64
	degraded   []Category
}

// NewScoreBundle copies its inputs so later changes by the caller cannot leak in.
func NewScoreBundle(metrics map[MetricName]float64, categories map[Category]float64, overall float64, degraded []Category) ScoreBundle {
	var deg []Category
	if len(degraded) > 0 {
		deg = append(deg, degraded...)
	}
	return ScoreBundle{
		metrics:    maps.Clone(metrics),
		categories: maps.Clone(categories),
		overall:    overall,
		degraded:   deg,
	}
}

// Overall returns the overall complexity in [0,1].
func (b ScoreBundle) Overall() float64 {
	return b.overall
}

// Metric returns a normalized metric by name.
func (b ScoreBundle) Metric(name MetricName) (float64, bool) {
	v, ok := b.metrics[name]
	return v, ok
}

// Metrics returns a copy of every normalized metric.
func (b ScoreBundle) Metrics() map[MetricName]float64 {
	return maps.Clone(b.metrics)
}

// CategoryScore returns the mean normalized score of a category.
func (b ScoreBundle) CategoryScore(c Category) float64 {
	return b.categories[c]
}

// CategoryScores returns a copy of the per-category scores.
func (b ScoreBundle) CategoryScores() map[Category]float64 {
	return maps.Clone(b.categories)
}

// Degraded lists the categories that were replaced by their zero-valued default.
func (b ScoreBundle) Degraded() []Category {
	return append([]Category(nil), b.degraded...)
}

// IsDegraded reports whether any provider fell back to its default.
func (b ScoreBundle) IsDegraded() bool {
	return len(b.degraded) > 0
}

// Flatten returns every normalized metric plus the overall_complexity key.
func (b ScoreBundle) Flatten() map[string]float64 {
	out := make(map[string]float64, len(b.metrics)+1)
	for k, v := range b.metrics {
		out[string(k)] = v
	}
	out[OverallComplexityKey] = b.overall
	return out
}

// bundleJSON is the persisted form of a ScoreBundle.
type bundleJSON struct {
	Metrics    map[MetricName]float64 `json:"metrics"`
	Categories map[Category]float64   `json:"categories"`
	Overall    float64                `json:"overall_complexity"`
	Degraded   []Category             `json:"degraded,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (b ScoreBundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(bundleJSON{
		Metrics:    b.metrics,
		Categories: b.categories,
		Overall:    b.overall,
		Degraded:   b.degraded,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *ScoreBundle) UnmarshalJSON(data []byte) error {
	var raw bundleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode score bundle: %w", err)
	}
	*b = NewScoreBundle(raw.Metrics, raw.Categories, raw.Overall, raw.Degraded)
	return nil
}
