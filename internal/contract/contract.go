// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/tcscore/schema"
)

// MetricProvider computes the raw metrics of one category for a text.
// Implementations must be safe for concurrent use and return a fresh set per call.
type MetricProvider interface {
	// Category returns the category this provider fills.
	Category() schema.Category

	// Score returns raw metric values or a *schema.ProviderError.
	Score(ctx context.Context, text string) (schema.RawMetricSet, error)
}

// Embedder turns a text into a dense sentence embedding.
type Embedder interface {
	// Name identifies the model, used in cache keys and status output.
	Name() string

	// Embed returns the embedding vector of the text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// IdiomDetector counts idiomatic expressions in a text.
type IdiomDetector interface {
	CountIdioms(ctx context.Context, text string) (int, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetScoreStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking scoring runs and per-text results.
type HistoryStore interface {
	// BeginRun creates a new scoring run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalTexts int) error

	// RecordTextScore stores the scores of one text for a run
	RecordTextScore(runID int64, record schema.TextScoreRecord) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.HistoryRunRecord, error)

	// GetAllTextScores returns every recorded text score
	GetAllTextScores() ([]schema.TextScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// ResultSink publishes scored texts to an external system.
type ResultSink interface {
	Publish(ctx context.Context, results []schema.ScoredText) error
	Close() error
}
