package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vec []float32
	err error
}

func (s stubEmbedder) Name() string { return "stub" }

func (s stubEmbedder) Embed(ctx context.Context, _ string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, ctx.Err()
}

type failingDetector struct{}

func (failingDetector) CountIdioms(context.Context, string) (int, error) {
	return 0, errors.New("detector down")
}

func TestTranslationProviderScore(t *testing.T) {
	p := NewTranslationProvider(stubEmbedder{vec: []float32{3, 4}}, nil)
	assert.Equal(t, schema.TranslationCategory, p.Category())

	set, err := p.Score(context.Background(), "It was a piece of cake.")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, set.Values[schema.SemanticComplexity], 1e-6)
	assert.Equal(t, 0.5, set.Values[schema.IdiomaticDensity])
	assert.Equal(t, 0.5, set.Values[schema.DomainSpecificity])
}

func TestTranslationProviderEmpty(t *testing.T) {
	set, err := NewTranslationProvider(stubEmbedder{vec: []float32{0}}, nil).Score(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, set.Values, 3)
	for name, v := range set.Values {
		assert.Zero(t, v, name)
	}
}

func TestTranslationProviderEmbedderFailure(t *testing.T) {
	p := NewTranslationProvider(stubEmbedder{err: errors.New("model not loaded")}, nil)
	_, err := p.Score(context.Background(), "Hello world")
	pe, ok := schema.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, schema.ModelUnavailable, pe.Reason)

	_, err = NewTranslationProvider(nil, nil).Score(context.Background(), "Hello")
	pe, ok = schema.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, schema.ModelUnavailable, pe.Reason)
}

func TestTranslationProviderTimeout(t *testing.T) {
	p := NewTranslationProvider(stubEmbedder{err: context.DeadlineExceeded}, nil)
	_, err := p.Score(context.Background(), "Hello world")
	pe, ok := schema.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, schema.ProviderTimeout, pe.Reason)
}

func TestTranslationProviderDetectorFailure(t *testing.T) {
	p := NewTranslationProvider(stubEmbedder{vec: []float32{1}}, failingDetector{})
	_, err := p.Score(context.Background(), "Hello world")
	pe, ok := schema.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, schema.UpstreamFailure, pe.Reason)
}

func TestIdiomDensity(t *testing.T) {
	assert.Zero(t, IdiomDensity(0, 0))
	assert.Zero(t, IdiomDensity(0, 9))
	assert.InDelta(t, 1.0/3.0, IdiomDensity(1, 9), 1e-9)
	assert.Equal(t, 1.0, IdiomDensity(5, 3))
}

func TestL2Norm(t *testing.T) {
	assert.Zero(t, L2Norm(nil))
	assert.InDelta(t, 13.0, L2Norm([]float32{5, 12}), 1e-9)
}
