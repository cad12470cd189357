package core

import (
	"context"
	"fmt"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/textsrc"
	"github.com/huangsam/tcscore/schema"
)

// CheckResultBuilder builds the check result using a builder pattern.
type CheckResultBuilder struct {
	cfg    *contract.Config
	mgr    contract.CacheManager
	ctx    context.Context
	texts  []textsrc.Text
	output *ScoringOutput
	failed []schema.CheckFailedText
	result *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for check results.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) *CheckResultBuilder {
	return &CheckResultBuilder{cfg: cfg, mgr: mgr, ctx: ctx}
}

// WithTexts sets the texts to check instead of loading them from the config.
func (b *CheckResultBuilder) WithTexts(texts []textsrc.Text) *CheckResultBuilder {
	b.texts = texts
	return b
}

// LoadTexts gathers the inputs named by the config unless texts were given.
func (b *CheckResultBuilder) LoadTexts() (*CheckResultBuilder, error) {
	if len(b.texts) > 0 {
		return b, nil
	}
	texts, err := loadTexts(b.cfg)
	if err != nil {
		return nil, err
	}
	b.texts = texts
	return b, nil
}

// RunScoring scores every text once.
func (b *CheckResultBuilder) RunScoring() (*CheckResultBuilder, error) {
	output, err := ScoreTexts(b.ctx, b.cfg, b.mgr, b.texts)
	if err != nil {
		return nil, fmt.Errorf("failed to score texts for check: %w", err)
	}
	b.output = output
	return b, nil
}

// ComputeViolations finds the texts above the allowed level or overall score.
func (b *CheckResultBuilder) ComputeViolations() *CheckResultBuilder {
	b.failed = []schema.CheckFailedText{}
	for _, r := range b.output.Results {
		overall := r.Bundle.Overall()
		if ExceedsLevel(r.Level, b.cfg.MaxLevel) || overall > b.cfg.MaxOverall {
			b.failed = append(b.failed, schema.CheckFailedText{
				Index:   r.Index,
				Source:  r.Source,
				Preview: r.Preview(60),
				Overall: overall,
				Level:   r.Level,
			})
		}
	}
	return b
}

// BuildResult constructs the final CheckResult. Texts that could not be
// scored fail the check as well.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	result := &schema.CheckResult{
		MaxLevel:   b.cfg.MaxLevel,
		MaxOverall: b.cfg.MaxOverall,
		TotalTexts: len(b.texts),
		Failed:     b.failed,
		Errored:    len(b.output.Failures),
	}

	var sum float64
	for i, r := range b.output.Results {
		overall := r.Bundle.Overall()
		sum += overall
		if i == 0 || overall > result.PeakOverall {
			result.PeakOverall = overall
			result.PeakSource = fmt.Sprintf("%s #%d", r.Source, r.Index)
		}
	}
	if n := len(b.output.Results); n > 0 {
		result.AvgOverall = sum / float64(n)
	}
	result.Passed = len(result.Failed) == 0 && result.Errored == 0

	b.result = result
	return b
}

// GetResult returns the built CheckResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}
