package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/tcscore/core/embed"
	"github.com/huangsam/tcscore/core/metrics"
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
)

// NewEmbedder builds the embedding model selected by the config, wrapped in
// an in-memory cache.
func NewEmbedder(cfg *contract.Config) (contract.Embedder, error) {
	switch cfg.Embedder {
	case schema.HTTPEmbedder:
		httpCfg, err := embed.LoadHTTPConfig()
		if err != nil {
			return nil, err
		}
		if cfg.EmbedURL != "" {
			httpCfg.URL = cfg.EmbedURL
		}
		if cfg.EmbedModel != "" {
			httpCfg.Model = cfg.EmbedModel
		}
		e, err := embed.NewHTTPEmbedder(httpCfg)
		if err != nil {
			return nil, err
		}
		return embed.NewCachedEmbedder(e, embed.DefaultCacheSize), nil
	case schema.HashingEmbedder, "":
		return embed.NewCachedEmbedder(embed.NewHashingEmbedder(embed.DefaultDimension), embed.DefaultCacheSize), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedder %q", schema.ErrInvalidConfig, cfg.Embedder)
	}
}

// NewScorerFromConfig wires the three providers described by the config into
// a scorer. When mgr has a score store, results are cached there.
func NewScorerFromConfig(cfg *contract.Config, mgr contract.CacheManager) (TextScorer, error) {
	embedder, err := NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	lexicon := metrics.NewLexiconDetector(cfg.Idioms...)
	var idioms contract.IdiomDetector = lexicon
	if cfg.Deep {
		idioms = metrics.NewLLMDetector(lexicon)
	}

	scorer, err := NewScorer(cfg.Scoring,
		metrics.NewReadabilityProvider(),
		metrics.NewLinguisticProvider(nil),
		metrics.NewTranslationProvider(embedder, idioms),
	)
	if err != nil {
		return nil, err
	}
	scorer = scorer.With(
		WithFallback(cfg.Fallback),
		WithTimeout(cfg.Timeout),
		WithWorkers(cfg.Workers),
	)

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetScoreStore()
	}
	if store == nil {
		return scorer, nil
	}

	// Deep mode answers vary between runs, so they share no cache entries with lexicon runs.
	salt := fmt.Sprintf("embed=%s;deep=%t;idioms=%s",
		embedder.Name(), cfg.Deep, strings.Join(lexicon.Idioms(), "|"))
	return NewCachedScorer(scorer, store, salt), nil
}
