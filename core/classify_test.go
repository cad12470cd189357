package core

import (
	"testing"

	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cfg := schema.DefaultScoringConfig()
	tests := []struct {
		overall float64
		want    schema.ComplexityLevel
	}{
		{-0.1, schema.LowLevel},
		{0.0, schema.LowLevel},
		{0.249, schema.LowLevel},
		{0.25, schema.MediumLevel},
		{0.449, schema.MediumLevel},
		{0.45, schema.HighLevel},
		{0.649, schema.HighLevel},
		{0.65, schema.VeryHighLevel},
		{1.0, schema.VeryHighLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(cfg, tt.overall), "overall=%v", tt.overall)
	}
}

func TestExceedsLevel(t *testing.T) {
	assert.True(t, ExceedsLevel(schema.VeryHighLevel, schema.HighLevel))
	assert.False(t, ExceedsLevel(schema.HighLevel, schema.HighLevel))
	assert.False(t, ExceedsLevel(schema.LowLevel, schema.MediumLevel))
}
