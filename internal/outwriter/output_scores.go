package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/parquet"
	"github.com/huangsam/tcscore/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// exportPreviewWidth bounds the text preview in machine-readable outputs.
const exportPreviewWidth = 120

// metricColumns are the short table headers of the --detail columns.
var metricColumns = []struct {
	name  schema.MetricName
	label string
}{
	{schema.FleschKincaid, "FK"},
	{schema.ColemanLiau, "CLI"},
	{schema.GunningFog, "Fog"},
	{schema.Smog, "SMOG"},
	{schema.FleschReadingEase, "FRE"},
	{schema.AvgSentenceLength, "SentLen"},
	{schema.LexicalDiversity, "TTR"},
	{schema.SyntacticComplexity, "Depth"},
	{schema.VocabularyRarity, "Rare"},
	{schema.SemanticComplexity, "Sem"},
	{schema.IdiomaticDensity, "Idiom"},
	{schema.DomainSpecificity, "Domain"},
}

// scoredRecord is the JSON and YAML shape of a scored text.
type scoredRecord struct {
	Index      int                `json:"index" yaml:"index"`
	Source     string             `json:"source" yaml:"source"`
	TextHash   string             `json:"text_hash" yaml:"text_hash"`
	Preview    string             `json:"preview" yaml:"preview"`
	Overall    float64            `json:"overall_complexity" yaml:"overall_complexity"`
	Level      string             `json:"complexity_level" yaml:"complexity_level"`
	Label      string             `json:"label" yaml:"label"`
	Categories map[string]float64 `json:"categories" yaml:"categories"`
	Metrics    map[string]float64 `json:"metrics" yaml:"metrics"`
	Degraded   []string           `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

func newScoredRecord(r schema.ScoredText) scoredRecord {
	categories := make(map[string]float64, len(schema.AllCategories))
	for c, v := range r.Bundle.CategoryScores() {
		categories[string(c)] = v
	}
	metrics := make(map[string]float64)
	for name, v := range r.Bundle.Metrics() {
		metrics[string(name)] = v
	}
	var degraded []string
	for _, c := range r.Bundle.Degraded() {
		degraded = append(degraded, string(c))
	}
	return scoredRecord{
		Index:      r.Index,
		Source:     r.Source,
		TextHash:   r.Hash,
		Preview:    r.Preview(exportPreviewWidth),
		Overall:    r.Bundle.Overall(),
		Level:      string(r.Level),
		Label:      contract.GetPlainLabel(r.Level),
		Categories: categories,
		Metrics:    metrics,
		Degraded:   degraded,
	}
}

// WriteScoredTexts outputs scored texts, dispatching on the configured format.
func WriteScoredTexts(results []schema.ScoredText, failed int, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresJSON(w, results)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresYAML(w, results)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresCSV(w, results, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteScoredTexts(w, parquet.ConvertScoredTexts(results, exportPreviewWidth))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresTable(w, results, failed, cfg, duration)
		}, "Wrote table")
	}
}

func writeScoresJSON(w io.Writer, results []schema.ScoredText) error {
	records := make([]scoredRecord, len(results))
	for i, r := range results {
		records[i] = newScoredRecord(r)
	}
	return writeJSON(w, records)
}

func writeScoresYAML(w io.Writer, results []schema.ScoredText) error {
	records := make([]scoredRecord, len(results))
	for i, r := range results {
		records[i] = newScoredRecord(r)
	}
	return writeYAML(w, map[string]any{"results": records})
}

func writeScoresCSV(w io.Writer, results []schema.ScoredText, precision int) error {
	fmtFloat := createFormatter(precision)

	headerRow := []string{"index", "source", "text_hash", "preview"}
	for _, col := range metricColumns {
		headerRow = append(headerRow, string(col.name))
	}
	for _, c := range schema.AllCategories {
		headerRow = append(headerRow, string(c))
	}
	headerRow = append(headerRow, schema.OverallComplexityKey, "complexity_level", "label", "degraded")

	return writeCSVWithHeader(w, headerRow, func(cw *csv.Writer) error {
		for _, r := range results {
			rec := []string{strconv.Itoa(r.Index), r.Source, r.Hash, r.Preview(exportPreviewWidth)}
			for _, col := range metricColumns {
				v, _ := r.Bundle.Metric(col.name)
				rec = append(rec, fmtFloat(v))
			}
			for _, c := range schema.AllCategories {
				rec = append(rec, fmtFloat(r.Bundle.CategoryScore(c)))
			}
			rec = append(rec,
				fmtFloat(r.Bundle.Overall()),
				string(r.Level),
				contract.GetPlainLabel(r.Level),
				degradedList(r.Bundle, "|"),
			)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeScoresTable(w io.Writer, results []schema.ScoredText, failed int, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	previewWidth := GetMaxTablePreviewWidth(cfg)

	headers := []string{"#", "Source", "Text", "Overall", "Level"}
	if cfg.Explain {
		headers = append(headers, "Read", "Ling", "Trans")
	}
	if cfg.Detail {
		for _, col := range metricColumns {
			headers = append(headers, col.label)
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	degradedCount := 0
	data := make([][]string, 0, len(results))
	for _, r := range results {
		label := contract.GetPlainLabel(r.Level)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Level)
		}
		overall := fmtFloat(r.Bundle.Overall())
		if r.Bundle.IsDegraded() {
			overall += "*"
			degradedCount++
		}
		row := []string{
			strconv.Itoa(r.Index + 1),
			contract.TruncateText(r.Source, 24),
			r.Preview(previewWidth),
			overall,
			label,
		}
		if cfg.Explain {
			for _, c := range schema.AllCategories {
				row = append(row, fmtFloat(r.Bundle.CategoryScore(c)))
			}
		}
		if cfg.Detail {
			for _, col := range metricColumns {
				v, _ := r.Bundle.Metric(col.name)
				row = append(row, fmtFloat(v))
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if degradedCount > 0 {
		if _, err := fmt.Fprintf(w, "* %d text(s) scored with a degraded category (provider fell back to zeros)\n", degradedCount); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Scored %d texts (%d failed) in %v with %d workers. Cache backend: %s\n",
		len(results), failed, duration.Round(time.Millisecond), cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// degradedList joins the degraded categories of a bundle.
func degradedList(b schema.ScoreBundle, sep string) string {
	deg := b.Degraded()
	names := make([]string, len(deg))
	for i, c := range deg {
		names[i] = string(c)
	}
	return strings.Join(names, sep)
}
