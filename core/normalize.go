package core

import (
	"math"

	"github.com/huangsam/tcscore/schema"
)

// Scaling constants of the normalization rules.
const (
	gradeCeiling          = 25.0  // grade levels are pre-clamped to [0,20]
	readingEaseCeiling    = 120.0 // reading ease is pre-clamped to [0,100]
	sentenceLengthCeiling = 30.0
	lexicalDamping        = 0.6
	depthCeiling          = 10.0
	rarityDamping         = 0.5
	semanticCeiling       = 10.0
)

// NormalizationRule maps one raw metric onto a complexity value where 0 is
// the simplest text. Clamped rules never leave [0,1]; the others rely on
// their provider's pre-clamping.
type NormalizationRule struct {
	Formula string
	Clamped bool
	Apply   func(raw float64) float64
}

var (
	gradeRule = NormalizationRule{
		Formula: "raw / 25",
		Apply:   func(raw float64) float64 { return raw / gradeCeiling },
	}
	identityRule = NormalizationRule{
		Formula: "raw",
		Apply:   func(raw float64) float64 { return raw },
	}
)

// NormalizationRules holds the rule of every known metric. Unknown metrics
// pass through unchanged.
var NormalizationRules = map[schema.MetricName]NormalizationRule{
	schema.FleschKincaid: gradeRule,
	schema.ColemanLiau:   gradeRule,
	schema.GunningFog:    gradeRule,
	schema.Smog:          gradeRule,
	schema.FleschReadingEase: {
		Formula: "1 - raw / 120",
		Apply:   func(raw float64) float64 { return 1 - raw/readingEaseCeiling },
	},
	schema.AvgSentenceLength: {
		Formula: "min(raw / 30, 1)",
		Clamped: true,
		Apply:   func(raw float64) float64 { return math.Min(raw/sentenceLengthCeiling, 1) },
	},
	schema.LexicalDiversity: {
		Formula: "raw * 0.6",
		Apply:   func(raw float64) float64 { return raw * lexicalDamping },
	},
	schema.SyntacticComplexity: {
		Formula: "min(raw / 10, 1)",
		Clamped: true,
		Apply:   func(raw float64) float64 { return math.Min(raw/depthCeiling, 1) },
	},
	schema.VocabularyRarity: {
		Formula: "raw * 0.5",
		Apply:   func(raw float64) float64 { return raw * rarityDamping },
	},
	schema.SemanticComplexity: {
		Formula: "min(raw / 10, 1)",
		Clamped: true,
		Apply:   func(raw float64) float64 { return math.Min(raw/semanticCeiling, 1) },
	},
	schema.IdiomaticDensity:  identityRule,
	schema.DomainSpecificity: identityRule,
}

// Normalize applies the rule of the named metric to a raw value.
func Normalize(name schema.MetricName, raw float64) float64 {
	rule, ok := NormalizationRules[name]
	if !ok {
		return raw
	}
	return rule.Apply(raw)
}

// NormalizeSet normalizes every value of a raw set, keeping its keys.
// With clampAll every result is also clamped to [0,1].
func NormalizeSet(raw schema.RawMetricSet, clampAll bool) schema.NormalizedMetricSet {
	out := schema.NormalizedMetricSet{
		Category: raw.Category,
		Values:   make(map[schema.MetricName]float64, len(raw.Values)),
	}
	for name, v := range raw.Values {
		n := Normalize(name, v)
		if clampAll {
			n = clamp01(n)
		}
		out.Values[name] = n
	}
	return out
}

// DescribeRules lists the normalization rules in display order.
func DescribeRules(clampAll bool) []schema.MetricRule {
	var rules []schema.MetricRule
	for _, c := range schema.AllCategories {
		for _, name := range schema.CategoryMetrics[c] {
			rule := NormalizationRules[name]
			rules = append(rules, schema.MetricRule{
				Name:     name,
				Category: c,
				Rule:     rule.Formula,
				Clamped:  rule.Clamped || clampAll,
			})
		}
	}
	return rules
}
