package core

import "github.com/huangsam/tcscore/schema"

// Classify maps an overall score to its complexity level under cfg.
func Classify(cfg schema.ScoringConfig, overall float64) schema.ComplexityLevel {
	return cfg.GetComplexityLevel(overall)
}

// ExceedsLevel reports whether level is strictly above limit.
func ExceedsLevel(level, limit schema.ComplexityLevel) bool {
	return schema.LevelRank(level) > schema.LevelRank(limit)
}
