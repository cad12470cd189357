package embed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sync"

	"github.com/huangsam/tcscore/internal/contract"
)

// DefaultCacheSize bounds the number of cached embeddings.
const DefaultCacheSize = 10000

// CachedEmbedder memoizes another embedder with an in-memory LRU keyed by text hash.
type CachedEmbedder struct {
	inner contract.Embedder

	mu      sync.Mutex
	cache   map[string][]float32
	order   []string // LRU order, oldest first
	maxSize int
	hits    int
	misses  int
}

// NewCachedEmbedder wraps an embedder. Non-positive sizes use DefaultCacheSize.
func NewCachedEmbedder(inner contract.Embedder, maxSize int) *CachedEmbedder {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &CachedEmbedder{
		inner:   inner,
		cache:   make(map[string][]float32),
		order:   make([]string, 0, min(maxSize, 1024)),
		maxSize: maxSize,
	}
}

// Name implements contract.Embedder.
func (c *CachedEmbedder) Name() string {
	return c.inner.Name()
}

// Embed implements contract.Embedder. Returned slices are copies.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.key(text)

	c.mu.Lock()
	if emb, ok := c.cache[key]; ok {
		c.hits++
		c.moveToEnd(key)
		out := slices.Clone(emb)
		c.mu.Unlock()
		return out, nil
	}
	c.misses++
	c.mu.Unlock()

	emb, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.set(key, emb)
	return slices.Clone(emb), nil
}

// Stats returns the cache size, hits and misses.
func (c *CachedEmbedder) Stats() (size, hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache), c.hits, c.misses
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(c.inner.Name() + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (c *CachedEmbedder) set(key string, emb []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[key]; exists {
		c.cache[key] = slices.Clone(emb)
		c.moveToEnd(key)
		return
	}

	for len(c.cache) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
	}
	c.cache[key] = slices.Clone(emb)
	c.order = append(c.order, key)
}

// moveToEnd marks a key as most recently used (must hold lock).
func (c *CachedEmbedder) moveToEnd(key string) {
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = append(c.order[:i], c.order[i+1:]...)
		c.order = append(c.order, key)
	}
}
