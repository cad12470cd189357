package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL bounds how long a cached bundle is trusted.
const cacheTTL = 30 * 24 * time.Hour

// CachedScorer memoizes a Scorer in a persistent CacheStore. Keys cover the
// scoring config, the provider setup (salt) and the text itself.
type CachedScorer struct {
	inner *Scorer
	store contract.CacheStore
	salt  string
}

// NewCachedScorer wraps a scorer. A nil store disables caching.
func NewCachedScorer(inner *Scorer, store contract.CacheStore, salt string) *CachedScorer {
	return &CachedScorer{inner: inner, store: store, salt: salt}
}

// Config implements TextScorer.
func (c *CachedScorer) Config() schema.ScoringConfig {
	return c.inner.Config()
}

// ScoreText implements TextScorer.
func (c *CachedScorer) ScoreText(ctx context.Context, text string) (schema.ScoreBundle, error) {
	if c.store == nil {
		return c.inner.ScoreText(ctx, text)
	}

	key := c.generateCacheKey(text)

	// Check for cache hit
	if bundle, ok := checkCacheHit(c.store, key); ok {
		return bundle, nil
	}

	// Cache miss: compute and store
	return c.computeAndStore(ctx, text, key)
}

// BatchScore implements TextScorer.
func (c *CachedScorer) BatchScore(ctx context.Context, texts []string) []schema.BatchResult {
	return runBatch(ctx, c.ScoreText, texts, c.inner.Workers())
}

// checkCacheHit attempts to retrieve and validate a cached bundle
func checkCacheHit(store contract.CacheStore, key string) (schema.ScoreBundle, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil || data == nil {
		return schema.ScoreBundle{}, false
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return schema.ScoreBundle{}, false
	}

	var bundle schema.ScoreBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return schema.ScoreBundle{}, false
	}
	return bundle, true
}

// computeAndStore scores the text and caches complete bundles. Degraded
// bundles are not stored so a recovered provider gets another chance.
func (c *CachedScorer) computeAndStore(ctx context.Context, text, key string) (schema.ScoreBundle, error) {
	bundle, err := c.inner.ScoreText(ctx, text)
	if err != nil {
		return schema.ScoreBundle{}, err
	}
	if bundle.IsDegraded() {
		return bundle, nil
	}

	if data, err := json.Marshal(bundle); err == nil {
		if err := c.store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to cache score", err)
		}
	}
	return bundle, nil
}

// generateCacheKey creates a unique key based on the scoring parameters and text
func (c *CachedScorer) generateCacheKey(text string) string {
	key := fmt.Sprintf("%s\x00%s\x00%s", c.inner.Config().Fingerprint(), c.salt, text)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
