package metrics

import (
	"context"
	"slices"
	"strings"
)

// LexiconDetector counts idioms from a fixed phrase list. Matching is case
// and punctuation insensitive and works for phrases of any length.
type LexiconDetector struct {
	idioms [][]string
}

// NewLexiconDetector returns a detector for DefaultIdioms plus any extra phrases.
func NewLexiconDetector(extra ...string) *LexiconDetector {
	d := &LexiconDetector{}
	seen := make(map[string]struct{})
	for _, phrase := range slices.Concat(DefaultIdioms, extra) {
		words := phraseWords(phrase)
		if len(words) == 0 {
			continue
		}
		key := strings.Join(words, " ")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		d.idioms = append(d.idioms, words)
	}
	return d
}

// Idioms returns the phrases known to the detector.
func (d *LexiconDetector) Idioms() []string {
	out := make([]string, len(d.idioms))
	for i, words := range d.idioms {
		out[i] = strings.Join(words, " ")
	}
	return out
}

// CountIdioms implements contract.IdiomDetector.
func (d *LexiconDetector) CountIdioms(_ context.Context, text string) (int, error) {
	words := phraseWords(text)
	count := 0
	for i := range words {
		for _, idiom := range d.idioms {
			if i+len(idiom) <= len(words) && slices.Equal(words[i:i+len(idiom)], idiom) {
				count++
			}
		}
	}
	return count, nil
}

// phraseWords returns the case-folded words of a phrase without punctuation.
func phraseWords(text string) []string {
	tokens := NewDocument(text).Words()
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Folded
	}
	return out
}
