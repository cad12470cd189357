// Package outwriter renders scored texts and metric definitions as tables,
// JSON, CSV, YAML or Parquet.
package outwriter

import (
	"time"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints scored texts using the configured output format.
// failed counts the texts that could not be scored.
func (ow *OutWriter) WriteScores(results []schema.ScoredText, failed int, cfg *contract.Config, duration time.Duration) error {
	return WriteScoredTexts(results, failed, cfg, duration)
}

// WriteMetrics prints the normalization rules and scoring parameters.
func (ow *OutWriter) WriteMetrics(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	return WriteMetricsDefinitions(model, cfg)
}
