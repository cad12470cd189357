package metrics

import (
	"context"
	"errors"
	"math"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
)

// errNoEmbedder is reported when the provider was built without a model.
var errNoEmbedder = errors.New("no embedding model configured")

// TranslationProvider scores semantic complexity, idiomatic density and domain specificity.
type TranslationProvider struct {
	embedder contract.Embedder
	idioms   contract.IdiomDetector
}

// NewTranslationProvider returns a translation provider. A nil detector selects
// the default lexicon.
func NewTranslationProvider(embedder contract.Embedder, idioms contract.IdiomDetector) *TranslationProvider {
	if idioms == nil {
		idioms = NewLexiconDetector()
	}
	return &TranslationProvider{embedder: embedder, idioms: idioms}
}

// Category implements contract.MetricProvider.
func (p *TranslationProvider) Category() schema.Category {
	return schema.TranslationCategory
}

// Score implements contract.MetricProvider. An embedding failure is reported
// as model_unavailable.
func (p *TranslationProvider) Score(ctx context.Context, text string) (schema.RawMetricSet, error) {
	if err := checkInput(schema.TranslationCategory, text); err != nil {
		return schema.RawMetricSet{}, err
	}
	if p.embedder == nil {
		return schema.RawMetricSet{}, schema.NewProviderError(schema.TranslationCategory, schema.ModelUnavailable, errNoEmbedder)
	}

	set := schema.NewRawMetricSet(schema.TranslationCategory)

	vec, err := p.embedder.Embed(ctx, text)
	if err != nil {
		return schema.RawMetricSet{}, classify(ctx, schema.TranslationCategory, schema.ModelUnavailable, err)
	}
	set.Values[schema.SemanticComplexity] = L2Norm(vec)

	fields := NewDocument(text).Fields()
	if len(fields) == 0 {
		set.Values[schema.IdiomaticDensity] = 0
		set.Values[schema.DomainSpecificity] = 0
		return set, nil
	}

	count, err := p.idioms.CountIdioms(ctx, text)
	if err != nil {
		return schema.RawMetricSet{}, classify(ctx, schema.TranslationCategory, schema.UpstreamFailure, err)
	}
	set.Values[schema.IdiomaticDensity] = IdiomDensity(count, len(fields))
	set.Values[schema.DomainSpecificity] = domainSpecificity(fields)
	return set, nil
}

// IdiomDensity returns idioms per three words, capped at 1.
func IdiomDensity(idioms, words int) float64 {
	if words == 0 {
		return 0
	}
	return math.Min(float64(idioms)/(float64(words)/3), 1)
}

// L2Norm returns the Euclidean length of a vector.
func L2Norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func domainSpecificity(fields []string) float64 {
	specific := 0
	for _, f := range fields {
		if !IsGeneralTerm(f) {
			specific++
		}
	}
	return float64(specific) / float64(len(fields))
}
