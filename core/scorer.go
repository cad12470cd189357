// Package core has the scoring pipeline: providers feed the normalizer, the
// category and overall aggregators and the complexity classifier.
package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
	"golang.org/x/sync/errgroup"
)

// TextScorer is the public scoring surface shared by Scorer and CachedScorer.
type TextScorer interface {
	ScoreText(ctx context.Context, text string) (schema.ScoreBundle, error)
	BatchScore(ctx context.Context, texts []string) []schema.BatchResult
	Config() schema.ScoringConfig
}

// Scorer runs one provider per category and turns their raw metrics into a
// ScoreBundle. A Scorer is read-only after construction and safe for
// concurrent use.
type Scorer struct {
	cfg       schema.ScoringConfig
	providers []contract.MetricProvider // in schema.AllCategories order
	fallback  schema.FallbackPolicy
	timeout   time.Duration
	workers   int
}

// Option customizes a Scorer.
type Option func(*Scorer)

// WithFallback sets how provider failures are handled.
func WithFallback(policy schema.FallbackPolicy) Option {
	return func(s *Scorer) { s.fallback = policy }
}

// WithTimeout bounds every provider call. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Scorer) { s.timeout = d }
}

// WithWorkers bounds the number of texts scored at once by BatchScore.
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewScorer returns a scorer for a validated config. Exactly one provider per
// category is required.
func NewScorer(cfg schema.ScoringConfig, providers ...contract.MetricProvider) (*Scorer, error) {
	if err := schema.ValidateWeights(cfg.GetMetricWeights()); err != nil {
		return nil, err
	}
	if err := schema.ValidateThresholds(cfg.GetThresholds()); err != nil {
		return nil, err
	}

	byCategory := make(map[schema.Category]contract.MetricProvider, len(providers))
	for _, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("%w: nil provider", schema.ErrInvalidConfig)
		}
		c := p.Category()
		if _, ok := byCategory[c]; ok {
			return nil, fmt.Errorf("%w: duplicate provider for %s", schema.ErrInvalidConfig, c)
		}
		byCategory[c] = p
	}

	s := &Scorer{
		cfg:      cfg,
		fallback: schema.DegradeFallback,
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, c := range schema.AllCategories {
		p, ok := byCategory[c]
		if !ok {
			return nil, fmt.Errorf("%w: %s", schema.ErrMissingProvider, c)
		}
		s.providers = append(s.providers, p)
	}
	if len(byCategory) != len(schema.AllCategories) {
		return nil, fmt.Errorf("%w: unknown provider category", schema.ErrInvalidConfig)
	}
	return s, nil
}

// With returns a copy of the scorer with the options applied.
func (s *Scorer) With(opts ...Option) *Scorer {
	clone := *s
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// Config returns the scoring configuration.
func (s *Scorer) Config() schema.ScoringConfig {
	return s.cfg
}

// Fallback returns the provider failure policy.
func (s *Scorer) Fallback() schema.FallbackPolicy {
	return s.fallback
}

// Workers returns the batch concurrency limit.
func (s *Scorer) Workers() int {
	return s.workers
}

// ScoreText scores one text. Providers run concurrently; their results are
// merged in category order so the bundle never depends on scheduling.
//
// Under the degrade policy a failing provider is replaced by its category's
// zero-valued set and listed in ScoreBundle.Degraded. Under the strict policy
// the first *schema.ProviderError is returned.
func (s *Scorer) ScoreText(ctx context.Context, text string) (schema.ScoreBundle, error) {
	sets := make([]schema.NormalizedMetricSet, len(s.providers))
	failed := make([]bool, len(s.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range s.providers {
		g.Go(func() error {
			set, err := s.runProvider(gctx, p, text)
			if err == nil {
				sets[i] = set
				return nil
			}
			if s.fallback == schema.StrictFallback {
				return err
			}
			sets[i] = schema.ZeroNormalizedMetricSet(p.Category())
			failed[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return schema.ScoreBundle{}, ctxErr
		}
		return schema.ScoreBundle{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.ScoreBundle{}, err
	}

	return s.assemble(sets, failed)
}

// runProvider calls one provider and normalizes its output. Every failure is
// returned as a *schema.ProviderError.
func (s *Scorer) runProvider(ctx context.Context, p contract.MetricProvider, text string) (schema.NormalizedMetricSet, error) {
	category := p.Category()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := p.Score(ctx, text)
	if err != nil {
		return schema.NormalizedMetricSet{}, asProviderError(ctx, category, err)
	}
	if raw.Category != category {
		return schema.NormalizedMetricSet{}, schema.NewProviderError(category, schema.UpstreamFailure,
			fmt.Errorf("provider returned %q metrics", raw.Category))
	}
	for name, v := range raw.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return schema.NormalizedMetricSet{}, schema.NewProviderError(category, schema.UpstreamFailure,
				fmt.Errorf("metric %s is not a finite number", name))
		}
	}

	set := NormalizeSet(raw, s.cfg.ClampAll())
	if len(set.Values) == 0 {
		return schema.NormalizedMetricSet{}, schema.NewProviderError(category, schema.UpstreamFailure, schema.ErrEmptyMetricSet)
	}
	return set, nil
}

// asProviderError classifies a provider failure that is not already typed.
func asProviderError(ctx context.Context, category schema.Category, err error) *schema.ProviderError {
	if pe, ok := schema.AsProviderError(err); ok {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return schema.NewProviderError(category, schema.ProviderTimeout, err)
	}
	return schema.NewProviderError(category, schema.UpstreamFailure, err)
}

// assemble aggregates the normalized sets into the final bundle.
func (s *Scorer) assemble(sets []schema.NormalizedMetricSet, failed []bool) (schema.ScoreBundle, error) {
	metrics := make(map[schema.MetricName]float64)
	categories := make(map[schema.Category]float64, len(sets))
	var degraded []schema.Category

	for i, set := range sets {
		score, err := CategoryScore(set)
		if err != nil {
			return schema.ScoreBundle{}, err
		}
		categories[set.Category] = score
		for name, v := range set.Values {
			metrics[name] = v
		}
		if failed[i] {
			degraded = append(degraded, set.Category)
		}
	}

	overall := OverallScore(categories, s.cfg.GetMetricWeights())
	return schema.NewScoreBundle(metrics, categories, overall, degraded), nil
}
