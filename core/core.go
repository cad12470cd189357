package core

import (
	"context"
	"fmt"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/outwriter"
	"github.com/huangsam/tcscore/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteMetrics displays the normalization rules and scoring parameters.
// This is a static display that does not score any text.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter().WriteMetrics(BuildMetricsModel(cfg.Scoring), cfg)
}

// BuildMetricsModel describes how a scoring config turns raw metrics into a level.
func BuildMetricsModel(sc schema.ScoringConfig) *schema.MetricsRenderModel {
	w := sc.GetMetricWeights()
	return &schema.MetricsRenderModel{
		Title:       "Translation Complexity Metrics",
		Description: "Each metric is normalized so 0 is the simplest text; a category scores the mean of its metrics and the overall score is their weighted mean clamped to [0,1].",
		Rules:       DescribeRules(sc.ClampAll()),
		Weights:     w,
		Thresholds:  sc.GetThresholds(),
		Formula: fmt.Sprintf("clamp01((%.2f*readability + %.2f*linguistic + %.2f*translation) / %.2f)",
			w.Readability, w.Linguistic, w.Translation, w.Total()),
		ClampAll: sc.ClampAll(),
	}
}
