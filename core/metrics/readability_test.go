package metrics

import (
	"context"
	"strings"
	"testing"

	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadabilityProviderSimpleSentence(t *testing.T) {
	p := NewReadabilityProvider()
	assert.Equal(t, schema.ReadabilityCategory, p.Category())

	set, err := p.Score(context.Background(), "The cat sat on the mat.")
	require.NoError(t, err)
	assert.Equal(t, schema.ReadabilityCategory, set.Category)
	assert.Len(t, set.Values, 5)

	// 6 words, 1 sentence, 6 syllables, 17 letters.
	assert.Zero(t, set.Values[schema.FleschKincaid])
	assert.Zero(t, set.Values[schema.ColemanLiau])
	assert.InDelta(t, 2.4, set.Values[schema.GunningFog], 1e-9)
	assert.Zero(t, set.Values[schema.Smog])
	assert.Equal(t, 100.0, set.Values[schema.FleschReadingEase])
}

func TestReadabilityProviderEmpty(t *testing.T) {
	set, err := NewReadabilityProvider().Score(context.Background(), "")
	require.NoError(t, err)
	for _, name := range []schema.MetricName{schema.FleschKincaid, schema.ColemanLiau, schema.GunningFog, schema.Smog} {
		assert.Zero(t, set.Values[name], name)
	}
	assert.Equal(t, 100.0, set.Values[schema.FleschReadingEase])
}

func TestReadabilityProviderBounds(t *testing.T) {
	dense := strings.Repeat("Notwithstanding institutionalized internationalization, interdisciplinary considerations necessitate reconceptualization ", 8) + "."
	set, err := NewReadabilityProvider().Score(context.Background(), dense)
	require.NoError(t, err)
	for _, name := range []schema.MetricName{schema.FleschKincaid, schema.ColemanLiau, schema.GunningFog, schema.Smog} {
		assert.GreaterOrEqual(t, set.Values[name], 0.0)
		assert.LessOrEqual(t, set.Values[name], 20.0)
	}
	assert.Equal(t, 20.0, set.Values[schema.FleschKincaid])
	assert.Zero(t, set.Values[schema.FleschReadingEase])
}

func TestReadabilityStatsSmog(t *testing.T) {
	st := ReadabilityStats{Sentences: 3, Words: 30, Syllables: 45, Polysyllables: 3}
	assert.InDelta(t, 1.043*5.477225575+3.1291, st.Smog(), 1e-6)

	st.Sentences = 2
	assert.Zero(t, st.Smog())
}

func TestReadabilityStatsFormulas(t *testing.T) {
	st := ReadabilityStats{Sentences: 2, Words: 20, Syllables: 30, Letters: 100, Polysyllables: 2}
	assert.InDelta(t, 0.39*10+11.8*1.5-15.59, st.FleschKincaidGrade(), 1e-9)
	assert.InDelta(t, 206.835-1.015*10-84.6*1.5, st.FleschReadingEase(), 1e-9)
	assert.InDelta(t, 0.0588*500-0.296*10-15.8, st.ColemanLiau(), 1e-9)
	assert.InDelta(t, 0.4*(10+10), st.GunningFog(), 1e-9)
}

func TestReadabilityProviderMalformed(t *testing.T) {
	_, err := NewReadabilityProvider().Score(context.Background(), "bad \xff bytes")
	pe, ok := schema.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, schema.MalformedInput, pe.Reason)
	assert.Equal(t, schema.ReadabilityCategory, pe.Category)
}

func TestReadabilityProviderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReadabilityProvider().Score(ctx, "Text.")
	assert.ErrorIs(t, err, context.Canceled)
}
