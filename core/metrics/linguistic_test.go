package metrics

import (
	"context"
	"testing"

	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedDepth int

func (d fixedDepth) Depth(Sentence) int { return int(d) }

func TestLinguisticProviderSimpleSentence(t *testing.T) {
	p := NewLinguisticProvider(nil)
	assert.Equal(t, schema.LinguisticCategory, p.Category())

	set, err := p.Score(context.Background(), "The cat sat on the mat.")
	require.NoError(t, err)
	assert.Equal(t, 7.0, set.Values[schema.AvgSentenceLength])
	assert.InDelta(t, 5.0/6.0, set.Values[schema.LexicalDiversity], 1e-9)
	assert.Equal(t, 3.0, set.Values[schema.SyntacticComplexity])
	assert.Equal(t, 0.5, set.Values[schema.VocabularyRarity])
}

func TestLinguisticProviderEmpty(t *testing.T) {
	for _, text := range []string{"", "   "} {
		set, err := NewLinguisticProvider(nil).Score(context.Background(), text)
		require.NoError(t, err)
		assert.Len(t, set.Values, 4)
		for name, v := range set.Values {
			assert.Zero(t, v, name)
		}
	}
}

func TestLinguisticProviderPunctuationOnly(t *testing.T) {
	set, err := NewLinguisticProvider(nil).Score(context.Background(), "...")
	require.NoError(t, err)
	assert.Positive(t, set.Values[schema.AvgSentenceLength])
	assert.Zero(t, set.Values[schema.LexicalDiversity])
	assert.Zero(t, set.Values[schema.VocabularyRarity])
}

func TestLinguisticProviderCustomDepth(t *testing.T) {
	set, err := NewLinguisticProvider(fixedDepth(7)).Score(context.Background(), "One. Two.")
	require.NoError(t, err)
	assert.Equal(t, 7.0, set.Values[schema.SyntacticComplexity])
}

func TestHeuristicDepth(t *testing.T) {
	simple := NewDocument("Dogs bark.").Sentences[0]
	nested := NewDocument("The report that the committee approved because the budget, which had grown, was late is gone.").Sentences[0]

	var h HeuristicDepth
	assert.Equal(t, 2, h.Depth(simple))
	assert.Greater(t, h.Depth(nested), h.Depth(simple))
	assert.Zero(t, h.Depth(Sentence{}))
}
