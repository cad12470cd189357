package core

import (
	"testing"

	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMetricsModel(t *testing.T) {
	model := BuildMetricsModel(schema.DefaultScoringConfig())
	assert.Equal(t, "Translation Complexity Metrics", model.Title)
	assert.Len(t, model.Rules, 12)
	assert.Equal(t, schema.DefaultWeights, model.Weights)
	assert.Equal(t, schema.DefaultThresholds, model.Thresholds)
	assert.Equal(t, "clamp01((0.30*readability + 0.40*linguistic + 0.30*translation) / 1.00)", model.Formula)
	assert.False(t, model.ClampAll)
}

func TestBuildMetricsModelClampAll(t *testing.T) {
	sc, err := schema.NewScoringConfig(schema.CategoryWeights{Readability: 1, Linguistic: 1, Translation: 2}, schema.DefaultThresholds, true)
	require.NoError(t, err)

	model := BuildMetricsModel(sc)
	assert.True(t, model.ClampAll)
	assert.Contains(t, model.Formula, "/ 4.00)")
	for _, r := range model.Rules {
		assert.True(t, r.Clamped, r.Name)
	}
}
