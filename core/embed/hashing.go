// Package embed provides the sentence embedding models behind semantic complexity.
package embed

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/huangsam/tcscore/core/metrics"
)

// DefaultDimension matches the output size of all-MiniLM-L6-v2.
const DefaultDimension = 384

// Token weight parameters. Longer words carry more meaning and push the
// embedding further from the origin.
const (
	baseWeight    = 2.0
	weightPerRune = 0.75
	shortWordLen  = 4
	maxWeight     = 8.0
)

// HashingEmbedder is a deterministic local embedding model. Every token maps
// to a pseudo-random signed unit vector seeded by its hash, scaled by a
// length-based weight; the sentence vector is the sum divided by sqrt(N).
// Its norm lands in the same range as a mean-pooled transformer embedding.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder returns a hashing embedder. Non-positive dimensions use DefaultDimension.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingEmbedder{dim: dim}
}

// Name implements contract.Embedder.
func (e *HashingEmbedder) Name() string {
	return fmt.Sprintf("hashing-%d", e.dim)
}

// Embed implements contract.Embedder.
func (e *HashingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	words := metrics.NewDocument(text).Words()
	out := make([]float32, e.dim)
	if len(words) == 0 {
		return out, nil
	}

	acc := make([]float64, e.dim)
	unit := 1 / math.Sqrt(float64(e.dim))
	for _, w := range words {
		weight := TokenWeight(w.Folded) * unit
		seed := xxhash.Sum64String(w.Folded)
		for j := range acc {
			if splitmix64(seed+uint64(j))&1 == 1 {
				acc[j] += weight
			} else {
				acc[j] -= weight
			}
		}
	}

	scale := 1 / math.Sqrt(float64(len(words)))
	for j, v := range acc {
		out[j] = float32(v * scale)
	}
	return out, nil
}

// TokenWeight returns 2 + 0.75 per rune beyond four, capped at 8.
func TokenWeight(token string) float64 {
	extra := max(0, utf8.RuneCountInString(token)-shortWordLen)
	return math.Min(baseWeight+weightPerRune*float64(extra), maxWeight)
}

// splitmix64 is a fast bijective mixer used to derive vector components.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
