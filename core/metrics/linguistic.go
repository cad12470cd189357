package metrics

import (
	"context"
	"math"

	"github.com/huangsam/tcscore/schema"
)

// DepthEstimator estimates the dependency-tree depth of a sentence.
type DepthEstimator interface {
	Depth(s Sentence) int
}

// HeuristicDepth approximates parse depth from sentence length and clause
// markers: a balanced tree over n words is about log2(n+1) deep, and every
// subordinating word opens one more level.
type HeuristicDepth struct{}

// Depth implements DepthEstimator.
func (HeuristicDepth) Depth(s Sentence) int {
	words := s.Words()
	if len(words) == 0 {
		return 0
	}
	depth := int(math.Ceil(math.Log2(float64(len(words) + 1))))
	for _, w := range words {
		if _, ok := subordinators[w.Folded]; ok {
			depth++
		}
	}
	return depth
}

// LinguisticProvider scores sentence length, lexical diversity, syntactic
// depth and vocabulary rarity.
type LinguisticProvider struct {
	depth DepthEstimator
}

// NewLinguisticProvider returns a linguistic provider. A nil estimator selects HeuristicDepth.
func NewLinguisticProvider(depth DepthEstimator) *LinguisticProvider {
	if depth == nil {
		depth = HeuristicDepth{}
	}
	return &LinguisticProvider{depth: depth}
}

// Category implements contract.MetricProvider.
func (p *LinguisticProvider) Category() schema.Category {
	return schema.LinguisticCategory
}

// Score implements contract.MetricProvider.
func (p *LinguisticProvider) Score(ctx context.Context, text string) (schema.RawMetricSet, error) {
	if err := checkInput(schema.LinguisticCategory, text); err != nil {
		return schema.RawMetricSet{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.RawMetricSet{}, classify(ctx, schema.LinguisticCategory, schema.UpstreamFailure, err)
	}

	doc := NewDocument(text)
	set := schema.ZeroRawMetricSet(schema.LinguisticCategory)
	if len(doc.Sentences) == 0 {
		return set, nil
	}

	set.Values[schema.AvgSentenceLength] = avgSentenceLength(doc)
	set.Values[schema.SyntacticComplexity] = p.avgDepth(doc)

	words := doc.Words()
	if len(words) == 0 {
		return set, nil
	}
	types := make(map[string]struct{}, len(words))
	rare := 0
	for _, w := range words {
		types[w.Folded] = struct{}{}
		if !IsCommonWord(w.Folded) {
			rare++
		}
	}
	set.Values[schema.LexicalDiversity] = float64(len(types)) / float64(len(words))
	set.Values[schema.VocabularyRarity] = float64(rare) / float64(len(words))
	return set, nil
}

// avgSentenceLength counts punctuation as tokens.
func avgSentenceLength(doc *Document) float64 {
	total := 0
	for _, s := range doc.Sentences {
		total += len(s.Tokens)
	}
	return float64(total) / float64(len(doc.Sentences))
}

func (p *LinguisticProvider) avgDepth(doc *Document) float64 {
	total := 0
	for _, s := range doc.Sentences {
		total += p.depth.Depth(s)
	}
	return float64(total) / float64(len(doc.Sentences))
}
