// Package parquet converts scoring history and scored texts into Parquet rows
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/tcscore/schema"
	"github.com/parquet-go/parquet-go"
)

// Run maps to the tcscore_runs table.
type Run struct {
	RunID         int64      `parquet:"run_id,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	TotalTexts    int32      `parquet:"total_texts,snappy"`

	// ConfigParams is the JSON-encoded scoring configuration
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// TextScore maps to the tcscore_text_scores table.
type TextScore struct {
	RunID              int64     `parquet:"run_id,snappy"`
	TextIndex          int32     `parquet:"text_index,snappy"`
	TextHash           string    `parquet:"text_hash,dict,snappy"`
	Source             string    `parquet:"source,dict,snappy"`
	ScoredAt           time.Time `parquet:"scored_at,snappy"`
	Readability        float64   `parquet:"readability,snappy"`
	Linguistic         float64   `parquet:"linguistic,snappy"`
	Translation        float64   `parquet:"translation,snappy"`
	OverallComplexity  float64   `parquet:"overall_complexity,snappy"`
	ComplexityLevel    string    `parquet:"complexity_level,dict,snappy"`
	DegradedCategories *string   `parquet:"degraded_categories,optional,snappy"`
}

// ScoredTextRow is one scored text with every normalized metric as a column.
type ScoredTextRow struct {
	Index    int32  `parquet:"index,snappy"`
	Source   string `parquet:"source,dict,snappy"`
	TextHash string `parquet:"text_hash,snappy"`
	Preview  string `parquet:"preview,snappy"`

	FleschKincaid       float64 `parquet:"flesch_kincaid,snappy"`
	ColemanLiau         float64 `parquet:"coleman_liau,snappy"`
	GunningFog          float64 `parquet:"gunning_fog,snappy"`
	Smog                float64 `parquet:"smog,snappy"`
	FleschReadingEase   float64 `parquet:"flesch_reading_ease,snappy"`
	AvgSentenceLength   float64 `parquet:"avg_sentence_length,snappy"`
	LexicalDiversity    float64 `parquet:"lexical_diversity,snappy"`
	SyntacticComplexity float64 `parquet:"syntactic_complexity,snappy"`
	VocabularyRarity    float64 `parquet:"vocabulary_rarity,snappy"`
	SemanticComplexity  float64 `parquet:"semantic_complexity,snappy"`
	IdiomaticDensity    float64 `parquet:"idiomatic_density,snappy"`
	DomainSpecificity   float64 `parquet:"domain_specificity,snappy"`

	Readability       float64 `parquet:"readability,snappy"`
	Linguistic        float64 `parquet:"linguistic,snappy"`
	Translation       float64 `parquet:"translation,snappy"`
	OverallComplexity float64 `parquet:"overall_complexity,snappy"`
	ComplexityLevel   string  `parquet:"complexity_level,dict,snappy"`
	Degraded          *string `parquet:"degraded_categories,optional,snappy"`
}

// writeRows writes every row to w and closes the Parquet writer.
func writeRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes every row to it.
func writeFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteRunsParquet writes run rows to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteTextScoresParquet writes text score rows to a Parquet file.
func WriteTextScoresParquet(data []TextScore, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteScoredTexts writes scored text rows to w.
func WriteScoredTexts(w io.Writer, data []ScoredTextRow) error {
	return writeRows(w, data)
}

// ConvertRunRecords converts history run records to Parquet rows.
func ConvertRunRecords(records []schema.HistoryRunRecord) []Run {
	out := make([]Run, len(records))
	for i, r := range records {
		out[i] = Run{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalTexts:    r.TotalTexts,
			ConfigParams:  r.ConfigParams,
		}
	}
	return out
}

// ConvertTextScoreRecords converts history text score records to Parquet rows.
func ConvertTextScoreRecords(records []schema.TextScoreRecord) []TextScore {
	out := make([]TextScore, len(records))
	for i, r := range records {
		out[i] = TextScore{
			RunID:              r.RunID,
			TextIndex:          r.TextIndex,
			TextHash:           r.TextHash,
			Source:             r.Source,
			ScoredAt:           r.ScoredAt,
			Readability:        r.Readability,
			Linguistic:         r.Linguistic,
			Translation:        r.Translation,
			OverallComplexity:  r.OverallComplexity,
			ComplexityLevel:    r.ComplexityLevel,
			DegradedCategories: r.DegradedCategories,
		}
	}
	return out
}

// ConvertScoredTexts flattens scored texts into Parquet rows.
func ConvertScoredTexts(results []schema.ScoredText, previewWidth int) []ScoredTextRow {
	out := make([]ScoredTextRow, len(results))
	for i, r := range results {
		b := r.Bundle
		m := func(name schema.MetricName) float64 {
			v, _ := b.Metric(name)
			return v
		}
		row := ScoredTextRow{
			Index:    int32(r.Index),
			Source:   r.Source,
			TextHash: r.Hash,
			Preview:  r.Preview(previewWidth),

			FleschKincaid:       m(schema.FleschKincaid),
			ColemanLiau:         m(schema.ColemanLiau),
			GunningFog:          m(schema.GunningFog),
			Smog:                m(schema.Smog),
			FleschReadingEase:   m(schema.FleschReadingEase),
			AvgSentenceLength:   m(schema.AvgSentenceLength),
			LexicalDiversity:    m(schema.LexicalDiversity),
			SyntacticComplexity: m(schema.SyntacticComplexity),
			VocabularyRarity:    m(schema.VocabularyRarity),
			SemanticComplexity:  m(schema.SemanticComplexity),
			IdiomaticDensity:    m(schema.IdiomaticDensity),
			DomainSpecificity:   m(schema.DomainSpecificity),

			Readability:       b.CategoryScore(schema.ReadabilityCategory),
			Linguistic:        b.CategoryScore(schema.LinguisticCategory),
			Translation:       b.CategoryScore(schema.TranslationCategory),
			OverallComplexity: b.Overall(),
			ComplexityLevel:   string(r.Level),
		}
		if deg := b.Degraded(); len(deg) > 0 {
			names := make([]string, len(deg))
			for j, c := range deg {
				names[j] = string(c)
			}
			joined := strings.Join(names, ",")
			row.Degraded = &joined
		}
		out[i] = row
	}
	return out
}
