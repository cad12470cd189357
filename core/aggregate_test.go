package core

import (
	"errors"
	"math"
	"testing"

	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryScore(t *testing.T) {
	set := schema.NormalizedMetricSet{
		Category: schema.LinguisticCategory,
		Values:   map[schema.MetricName]float64{"a": 0.2, "b": 0.4, "c": 0.6},
	}
	got, err := CategoryScore(set)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, got, 1e-12)

	single := schema.NormalizedMetricSet{Values: map[schema.MetricName]float64{schema.Smog: 1.3}}
	got, err = CategoryScore(single)
	require.NoError(t, err)
	assert.Equal(t, 1.3, got)
}

func TestCategoryScoreEmpty(t *testing.T) {
	_, err := CategoryScore(schema.NormalizedMetricSet{Category: schema.TranslationCategory})
	assert.True(t, errors.Is(err, schema.ErrEmptyMetricSet))
	assert.Contains(t, err.Error(), "translation")
}

func TestCategoryScoreStable(t *testing.T) {
	set := schema.NormalizedMetricSet{Values: map[schema.MetricName]float64{}}
	for i, name := range schema.AllMetricNames() {
		set.Values[name] = 0.1 * float64(i+1) / 3
	}
	first, err := CategoryScore(set)
	require.NoError(t, err)
	for range 50 {
		got, _ := CategoryScore(set)
		assert.Equal(t, math.Float64bits(first), math.Float64bits(got))
	}
}

func TestOverallScore(t *testing.T) {
	w := schema.DefaultWeights
	tests := []struct {
		name   string
		scores map[schema.Category]float64
		want   float64
	}{
		{"weighted", map[schema.Category]float64{
			schema.ReadabilityCategory: 0.5,
			schema.LinguisticCategory:  0.375,
			schema.TranslationCategory: 0.4,
		}, 0.42},
		{"all zero", map[schema.Category]float64{}, 0},
		{"above one", map[schema.Category]float64{
			schema.ReadabilityCategory: 1.6,
			schema.LinguisticCategory:  1.2,
			schema.TranslationCategory: 1,
		}, 1},
		{"below zero", map[schema.Category]float64{
			schema.ReadabilityCategory: -0.8,
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OverallScore(tt.scores, w), 1e-12)
		})
	}
}

func TestOverallScoreWeights(t *testing.T) {
	scores := map[schema.Category]float64{
		schema.ReadabilityCategory: 0.9,
		schema.LinguisticCategory:  0.1,
		schema.TranslationCategory: 0.1,
	}
	onlyReadability := schema.CategoryWeights{Readability: 2}
	assert.InDelta(t, 0.9, OverallScore(scores, onlyReadability), 1e-12)

	// Weights need not sum to one.
	scaled := schema.CategoryWeights{Readability: 3, Linguistic: 4, Translation: 3}
	assert.InDelta(t, OverallScore(scores, schema.DefaultWeights), OverallScore(scores, scaled), 1e-12)

	assert.Zero(t, OverallScore(scores, schema.CategoryWeights{}))
}
