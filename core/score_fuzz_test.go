package core

import (
	"context"
	"math"
	"testing"

	"github.com/huangsam/tcscore/schema"
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func bounded(limit float64, vs ...float64) bool {
	for _, v := range vs {
		if math.Abs(v) > limit {
			return false
		}
	}
	return true
}

// FuzzNormalizeClampAll checks that clamp-all keeps every rule inside [0,1].
func FuzzNormalizeClampAll(f *testing.F) {
	for _, seed := range []float64{0, 1, 20, 100, -5, 1e9} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw float64) {
		if !finite(raw) {
			t.Skip()
		}
		set := schema.NewRawMetricSet(schema.ReadabilityCategory)
		for name := range NormalizationRules {
			set.Values[name] = raw
		}
		for name, v := range NormalizeSet(set, true).Values {
			if v < 0 || v > 1 {
				t.Fatalf("%s(%v) = %v, want [0,1]", name, raw, v)
			}
		}
	})
}

// FuzzOverallScore checks the overall score stays in [0,1] for any valid weights.
func FuzzOverallScore(f *testing.F) {
	f.Add(0.2, 0.5, 0.9, 0.3, 0.4, 0.3)
	f.Add(2.0, -1.0, 0.5, 1.0, 0.0, 0.0)
	f.Add(0.0, 0.0, 0.0, 0.0, 0.0, 1.0)

	f.Fuzz(func(t *testing.T, r, l, tr, wr, wl, wt float64) {
		if !finite(r, l, tr, wr, wl, wt) || !bounded(1e6, r, l, tr, wr, wl, wt) {
			t.Skip()
		}
		weights := schema.CategoryWeights{Readability: wr, Linguistic: wl, Translation: wt}
		if schema.ValidateWeights(weights) != nil {
			t.Skip()
		}
		scores := map[schema.Category]float64{
			schema.ReadabilityCategory: r,
			schema.LinguisticCategory:  l,
			schema.TranslationCategory: tr,
		}

		got := OverallScore(scores, weights)
		if got < 0 || got > 1 || math.IsNaN(got) {
			t.Fatalf("OverallScore(%v, %+v) = %v, want [0,1]", scores, weights, got)
		}
	})
}

// FuzzScoreText scores arbitrary input and checks the bundle invariants.
func FuzzScoreText(f *testing.F) {
	for _, seed := range []string{
		"",
		"The cat sat on the mat.",
		"Break a leg!!! ... ???",
		"日本語のテキストです。",
		"\xff\xfe",
	} {
		f.Add(seed)
	}

	scorer, err := NewScorerFromConfig(testConfig(), nil)
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, text string) {
		bundle, err := scorer.ScoreText(context.Background(), text)
		if err != nil {
			t.Fatalf("degrade policy returned an error: %v", err)
		}
		overall := bundle.Overall()
		if overall < 0 || overall > 1 || math.IsNaN(overall) {
			t.Fatalf("overall %v out of [0,1] for %q", overall, text)
		}
		for _, c := range schema.AllCategories {
			if math.IsNaN(bundle.CategoryScore(c)) {
				t.Fatalf("category %s is NaN for %q", c, text)
			}
		}
	})
}
