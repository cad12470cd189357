package core

import (
	"context"
	"testing"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/iocache"
	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Scoring:  schema.DefaultScoringConfig(),
		Fallback: schema.DegradeFallback,
		Workers:  2,
		Embedder: schema.HashingEmbedder,
	}
}

func TestNewScorerFromConfigWithoutCache(t *testing.T) {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetScoreStore").Return(nil)

	scorer, err := NewScorerFromConfig(testConfig(), mgr)
	require.NoError(t, err)
	s, ok := scorer.(*Scorer)
	require.True(t, ok)
	assert.Equal(t, 2, s.Workers())

	bundle, err := s.ScoreText(context.Background(), "It was a piece of cake.")
	require.NoError(t, err)
	v, _ := bundle.Metric(schema.IdiomaticDensity)
	assert.Positive(t, v)
	mgr.AssertExpectations(t)
}

func TestNewScorerFromConfigWithCache(t *testing.T) {
	store := &iocache.MockCacheStore{}
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetScoreStore").Return(store)

	scorer, err := NewScorerFromConfig(testConfig(), mgr)
	require.NoError(t, err)
	_, ok := scorer.(*CachedScorer)
	assert.True(t, ok)
}

func TestNewScorerFromConfigExtraIdioms(t *testing.T) {
	cfg := testConfig()
	cfg.Idioms = []string{"break the ice"}

	scorer, err := NewScorerFromConfig(cfg, nil)
	require.NoError(t, err)
	bundle, err := scorer.ScoreText(context.Background(), "Jokes break the ice.")
	require.NoError(t, err)
	v, _ := bundle.Metric(schema.IdiomaticDensity)
	assert.Positive(t, v)
}

func TestNewEmbedder(t *testing.T) {
	cfg := testConfig()
	e, err := NewEmbedder(cfg)
	require.NoError(t, err)
	assert.Equal(t, "hashing-384", e.Name())

	cfg.Embedder = schema.HTTPEmbedder
	cfg.EmbedURL = "http://localhost:9999"
	cfg.EmbedModel = "bge-small"
	e, err = NewEmbedder(cfg)
	require.NoError(t, err)
	assert.Equal(t, "bge-small", e.Name())

	cfg.Embedder = "word2vec"
	_, err = NewEmbedder(cfg)
	assert.ErrorIs(t, err, schema.ErrInvalidConfig)
}

func TestNewEmbedderHTTPRequiresURL(t *testing.T) {
	t.Setenv("TCSCORE_EMBED_URL", "")
	cfg := testConfig()
	cfg.Embedder = schema.HTTPEmbedder
	_, err := NewEmbedder(cfg)
	assert.Error(t, err)
}
