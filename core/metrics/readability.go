package metrics

import (
	"context"
	"math"

	"github.com/huangsam/tcscore/schema"
)

// Score bounds applied before normalization.
const (
	maxGradeLevel   = 20.0
	maxReadingEase  = 100.0
	minSmogSentence = 3
	polysyllableMin = 3
)

// ReadabilityStats holds the surface counts behind the readability formulas.
type ReadabilityStats struct {
	Sentences     int
	Words         int
	Syllables     int
	Letters       int
	Polysyllables int
}

// CollectReadabilityStats counts sentences, words, syllables and letters.
func CollectReadabilityStats(doc *Document) ReadabilityStats {
	var st ReadabilityStats
	for _, w := range doc.Words() {
		st.Words++
		syl := CountSyllables(w.Text)
		st.Syllables += syl
		if syl >= polysyllableMin {
			st.Polysyllables++
		}
		st.Letters += countLetters(w.Text)
	}
	st.Sentences = doc.WordSentenceCount()
	if st.Words > 0 && st.Sentences == 0 {
		st.Sentences = 1
	}
	return st
}

// FleschKincaidGrade returns 0.39*(words/sentence) + 11.8*(syllables/word) - 15.59.
func (s ReadabilityStats) FleschKincaidGrade() float64 {
	if s.Words == 0 {
		return 0
	}
	return 0.39*s.wordsPerSentence() + 11.8*s.syllablesPerWord() - 15.59
}

// FleschReadingEase returns 206.835 - 1.015*(words/sentence) - 84.6*(syllables/word).
func (s ReadabilityStats) FleschReadingEase() float64 {
	if s.Words == 0 {
		return maxReadingEase
	}
	return 206.835 - 1.015*s.wordsPerSentence() - 84.6*s.syllablesPerWord()
}

// ColemanLiau returns 0.0588*L - 0.296*S - 15.8 with L letters and S sentences per 100 words.
func (s ReadabilityStats) ColemanLiau() float64 {
	if s.Words == 0 {
		return 0
	}
	l := float64(s.Letters) / float64(s.Words) * 100
	st := float64(s.Sentences) / float64(s.Words) * 100
	return 0.0588*l - 0.296*st - 15.8
}

// GunningFog returns 0.4*((words/sentence) + 100*(complex words/words)).
func (s ReadabilityStats) GunningFog() float64 {
	if s.Words == 0 {
		return 0
	}
	return 0.4 * (s.wordsPerSentence() + 100*float64(s.Polysyllables)/float64(s.Words))
}

// Smog returns 1.043*sqrt(polysyllables*30/sentences) + 3.1291, or 0 below three sentences.
func (s ReadabilityStats) Smog() float64 {
	if s.Sentences < minSmogSentence {
		return 0
	}
	return 1.043*math.Sqrt(float64(s.Polysyllables)*30/float64(s.Sentences)) + 3.1291
}

func (s ReadabilityStats) wordsPerSentence() float64 {
	return float64(s.Words) / float64(s.Sentences)
}

func (s ReadabilityStats) syllablesPerWord() float64 {
	return float64(s.Syllables) / float64(s.Words)
}

// ReadabilityProvider scores the classic grade-level formulas.
type ReadabilityProvider struct{}

// NewReadabilityProvider returns a readability provider.
func NewReadabilityProvider() *ReadabilityProvider {
	return &ReadabilityProvider{}
}

// Category implements contract.MetricProvider.
func (p *ReadabilityProvider) Category() schema.Category {
	return schema.ReadabilityCategory
}

// Score implements contract.MetricProvider. Grades are clamped to [0,20] and
// reading ease to [0,100].
func (p *ReadabilityProvider) Score(ctx context.Context, text string) (schema.RawMetricSet, error) {
	if err := checkInput(schema.ReadabilityCategory, text); err != nil {
		return schema.RawMetricSet{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.RawMetricSet{}, classify(ctx, schema.ReadabilityCategory, schema.UpstreamFailure, err)
	}

	st := CollectReadabilityStats(NewDocument(text))
	set := schema.NewRawMetricSet(schema.ReadabilityCategory)
	set.Values[schema.FleschKincaid] = clamp(st.FleschKincaidGrade(), 0, maxGradeLevel)
	set.Values[schema.ColemanLiau] = clamp(st.ColemanLiau(), 0, maxGradeLevel)
	set.Values[schema.GunningFog] = clamp(st.GunningFog(), 0, maxGradeLevel)
	set.Values[schema.Smog] = clamp(st.Smog(), 0, maxGradeLevel)
	set.Values[schema.FleschReadingEase] = clamp(st.FleschReadingEase(), 0, maxReadingEase)
	return set, nil
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if isAlnum(r) {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
