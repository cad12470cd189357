package core

import (
	"context"

	"github.com/huangsam/tcscore/schema"
	"golang.org/x/sync/errgroup"
)

// scoreFunc scores a single text.
type scoreFunc func(ctx context.Context, text string) (schema.ScoreBundle, error)

// BatchScore scores every text independently and returns one result per
// input, in input order. A failing text never affects the others.
func (s *Scorer) BatchScore(ctx context.Context, texts []string) []schema.BatchResult {
	return runBatch(ctx, s.ScoreText, texts, s.workers)
}

// runBatch fans texts out to at most workers goroutines. Each goroutine
// writes only its own slot, so order is preserved without locking.
func runBatch(ctx context.Context, score scoreFunc, texts []string, workers int) []schema.BatchResult {
	results := make([]schema.BatchResult, len(texts))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, text := range texts {
		g.Go(func() error {
			bundle, err := score(ctx, text)
			results[i] = schema.BatchResult{Index: i, Bundle: bundle, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
