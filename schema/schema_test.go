package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryOf(t *testing.T) {
	for _, c := range AllCategories {
		for _, name := range CategoryMetrics[c] {
			got, ok := CategoryOf(name)
			assert.True(t, ok, name)
			assert.Equal(t, c, got)
		}
	}
	_, ok := CategoryOf("made_up")
	assert.False(t, ok)
	assert.Len(t, AllMetricNames(), 12)
}

func TestMetricSetNamesOrder(t *testing.T) {
	set := RawMetricSet{Category: ReadabilityCategory, Values: map[MetricName]float64{
		"zeta":            1,
		Smog:              2,
		FleschKincaid:     3,
		"alpha":           4,
		FleschReadingEase: 5,
	}}
	assert.Equal(t, []MetricName{FleschKincaid, Smog, FleschReadingEase, "alpha", "zeta"}, set.Names())
}

func TestZeroNormalizedMetricSet(t *testing.T) {
	set := ZeroNormalizedMetricSet(TranslationCategory)
	assert.Equal(t, TranslationCategory, set.Category)
	assert.Len(t, set.Values, 3)
	for _, v := range set.Values {
		assert.Zero(t, v)
	}
}

func TestRawMetricSetClone(t *testing.T) {
	orig := ZeroRawMetricSet(LinguisticCategory)
	clone := orig.Clone()
	clone.Values[AvgSentenceLength] = 9
	assert.Zero(t, orig.Values[AvgSentenceLength])
}

func TestCategoryWeights(t *testing.T) {
	w := DefaultWeights
	assert.InDelta(t, 1.0, w.Total(), 1e-9)
	assert.Equal(t, 0.4, w.For(LinguisticCategory))
	assert.Zero(t, w.For("other"))
	assert.Equal(t, 0.3, w.AsMap()["translation"])
}

func TestNewScoringConfig(t *testing.T) {
	tests := []struct {
		name       string
		weights    CategoryWeights
		thresholds ComplexityThresholds
		wantErr    bool
	}{
		{"defaults", DefaultWeights, DefaultThresholds, false},
		{"unnormalized weights", CategoryWeights{3, 4, 3}, DefaultThresholds, false},
		{"single category", CategoryWeights{0, 1, 0}, DefaultThresholds, false},
		{"negative weight", CategoryWeights{-0.1, 0.6, 0.5}, DefaultThresholds, true},
		{"zero total", CategoryWeights{}, DefaultThresholds, true},
		{"equal thresholds", DefaultWeights, ComplexityThresholds{0.3, 0.3, 0.6}, true},
		{"descending thresholds", DefaultWeights, ComplexityThresholds{0.6, 0.4, 0.2}, true},
		{"threshold above one", DefaultWeights, ComplexityThresholds{0.2, 0.5, 1.2}, true},
		{"negative threshold", DefaultWeights, ComplexityThresholds{-0.1, 0.5, 0.9}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewScoringConfig(tt.weights, tt.thresholds, false)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.weights, cfg.GetMetricWeights())
			assert.Equal(t, tt.thresholds, cfg.GetThresholds())
		})
	}
}

func TestGetComplexityLevel(t *testing.T) {
	cfg := DefaultScoringConfig()
	tests := []struct {
		score float64
		want  ComplexityLevel
	}{
		{-0.5, LowLevel},
		{0, LowLevel},
		{0.2499, LowLevel},
		{0.25, MediumLevel},
		{0.4499, MediumLevel},
		{0.45, HighLevel},
		{0.6499, HighLevel},
		{0.65, VeryHighLevel},
		{1, VeryHighLevel},
		{3, VeryHighLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.GetComplexityLevel(tt.score), "score %v", tt.score)
	}
}

func TestFingerprintChangesWithConfig(t *testing.T) {
	a := DefaultScoringConfig()
	b, err := NewScoringConfig(DefaultWeights, DefaultThresholds, true)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Fingerprint(), DefaultScoringConfig().Fingerprint())
}

func TestScoreBundleIsolation(t *testing.T) {
	metrics := map[MetricName]float64{Smog: 0.4}
	b := NewScoreBundle(metrics, map[Category]float64{ReadabilityCategory: 0.4}, 0.4, nil)
	metrics[Smog] = 9

	v, ok := b.Metric(Smog)
	assert.True(t, ok)
	assert.Equal(t, 0.4, v)

	copied := b.Metrics()
	copied[Smog] = 7
	v, _ = b.Metric(Smog)
	assert.Equal(t, 0.4, v)
	assert.False(t, b.IsDegraded())
}

func TestScoreBundleFlattenAndJSON(t *testing.T) {
	b := NewScoreBundle(
		map[MetricName]float64{IdiomaticDensity: 0.5, Smog: 0.2},
		map[Category]float64{ReadabilityCategory: 0.2, TranslationCategory: 0.5},
		0.35,
		[]Category{LinguisticCategory},
	)
	flat := b.Flatten()
	assert.Equal(t, 0.35, flat[OverallComplexityKey])
	assert.Equal(t, 0.5, flat["idiomatic_density"])
	assert.Len(t, flat, 3)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"overall_complexity":0.35`)

	var back ScoreBundle
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, b, back)
	assert.Equal(t, []Category{LinguisticCategory}, back.Degraded())
}

func TestProviderError(t *testing.T) {
	inner := errors.New("connection refused")
	err := error(NewProviderError(TranslationCategory, ModelUnavailable, inner))
	wrapped := errors.Join(errors.New("outer"), err)

	pe, ok := AsProviderError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ModelUnavailable, pe.Reason)
	assert.ErrorIs(t, wrapped, inner)
	assert.Equal(t, "translation provider failed (model_unavailable): connection refused", err.Error())

	_, ok = AsProviderError(errors.New("plain"))
	assert.False(t, ok)
}
