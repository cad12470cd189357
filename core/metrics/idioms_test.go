package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconDetectorCountIdioms(t *testing.T) {
	d := NewLexiconDetector()
	tests := []struct {
		name string
		text string
		want int
	}{
		{"none", "The weather is fine today.", 0},
		{"three words", "That exam was a piece of cake.", 1},
		{"upper case", "PIECE OF CAKE", 1},
		{"seven words", "Don't let the cat out of the bag!", 1},
		{"punctuation inside", "He hit the nail, on the head.", 1},
		{"several", "It is raining cats and dogs, and he might kick the bucket.", 2},
		{"repeated", "piece of cake, piece of cake", 2},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.CountIdioms(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexiconDetectorExtraIdioms(t *testing.T) {
	d := NewLexiconDetector("Break the ice", "piece of cake", "  ")
	assert.Len(t, d.Idioms(), len(DefaultIdioms)+1)

	got, err := d.CountIdioms(context.Background(), "Jokes help break the ice.")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestNewLLMDetectorWithoutKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	fallback := NewLexiconDetector()
	assert.Same(t, fallback, NewLLMDetector(fallback))
}

func TestParseIdiomResponse(t *testing.T) {
	n, err := parseIdiomResponse(`{"idioms": ["piece of cake", "kick the bucket"]}`)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = parseIdiomResponse("```json\n{\"idioms\": [\"\", \"break a leg\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = parseIdiomResponse("no idioms here")
	assert.Error(t, err)

	_, err = parseIdiomResponse(`{"idioms": 3}`)
	assert.Error(t, err)
}
