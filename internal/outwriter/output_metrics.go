package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteMetricsDefinitions displays the normalization rules, category weights
// and complexity bands. It does not score anything.
func WriteMetricsDefinitions(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, model)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, model)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, model, cfg)
		}, "Wrote text")
	}
}

func writeMetricsText(w io.Writer, model *schema.MetricsRenderModel, cfg *contract.Config) error {
	title := header(cfg, "🧮", model.Title)
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n\n", title, underline(title), model.Description); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Category", "Normalization", "Clamped"})
	rows := make([][]string, len(model.Rules))
	for i, r := range model.Rules {
		clamped := "no"
		if r.Clamped {
			clamped = "yes"
		}
		rows[i] = []string{string(r.Name), string(r.Category), r.Rule, clamped}
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	weights := model.Weights
	t := model.Thresholds
	lines := []string{
		"",
		header(cfg, "⚖️ ", "Category Weights"),
		fmt.Sprintf("   readability=%.2f linguistic=%.2f translation=%.2f", weights.Readability, weights.Linguistic, weights.Translation),
		fmt.Sprintf("   Formula: %s", model.Formula),
		"",
		header(cfg, "📊", "Complexity Bands"),
		fmt.Sprintf("   low       [0.00, %.2f)", t.Low),
		fmt.Sprintf("   medium    [%.2f, %.2f)", t.Low, t.Medium),
		fmt.Sprintf("   high      [%.2f, %.2f)", t.Medium, t.High),
		fmt.Sprintf("   very_high [%.2f, 1.00]", t.High),
	}
	if model.ClampAll {
		lines = append(lines, "", "Every normalized metric is clamped to [0,1] (--clamp-all).")
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeMetricsCSV(w io.Writer, model *schema.MetricsRenderModel) error {
	return writeCSVWithHeader(w, []string{"metric", "category", "rule", "clamped", "category_weight"}, func(cw *csv.Writer) error {
		for _, r := range model.Rules {
			rec := []string{
				string(r.Name),
				string(r.Category),
				r.Rule,
				strconv.FormatBool(r.Clamped),
				strconv.FormatFloat(model.Weights.For(r.Category), 'f', -1, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func underline(s string) string {
	return strings.Repeat("=", len([]rune(s)))
}
