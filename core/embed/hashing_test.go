package embed

import (
	"context"
	"testing"

	"github.com/huangsam/tcscore/core/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingEmbedderDeterministic(t *testing.T) {
	e := NewHashingEmbedder(0)
	assert.Equal(t, "hashing-384", e.Name())

	a, err := e.Embed(context.Background(), "Translation memory reduces cost.")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "translation MEMORY reduces cost")
	require.NoError(t, err)
	assert.Len(t, a, DefaultDimension)
	assert.Equal(t, a, b, "case and punctuation do not change the embedding")
}

func TestHashingEmbedderEmpty(t *testing.T) {
	vec, err := NewHashingEmbedder(16).Embed(context.Background(), "  ")
	require.NoError(t, err)
	assert.Len(t, vec, 16)
	assert.Zero(t, metrics.L2Norm(vec))
}

func TestHashingEmbedderNormRange(t *testing.T) {
	e := NewHashingEmbedder(DefaultDimension)
	short, err := e.Embed(context.Background(), "The cat sat.")
	require.NoError(t, err)
	long, err := e.Embed(context.Background(), "Notwithstanding jurisdictional indemnification provisions, counterparties acknowledge subrogation.")
	require.NoError(t, err)

	ns, nl := metrics.L2Norm(short), metrics.L2Norm(long)
	assert.Greater(t, ns, 0.5)
	assert.Less(t, nl, 10.0)
	assert.Greater(t, nl, ns, "longer words weigh more")
}

func TestHashingEmbedderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHashingEmbedder(8).Embed(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenWeight(t *testing.T) {
	assert.Equal(t, 2.0, TokenWeight("cat"))
	assert.Equal(t, 2.0, TokenWeight("word"))
	assert.Equal(t, 2.75, TokenWeight("words"))
	assert.Equal(t, 8.0, TokenWeight("internationalization"))
}
