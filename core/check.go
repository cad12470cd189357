package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
)

// maxViolationsShown caps the failures listed in the report.
const maxViolationsShown = 10

// ExecuteCheck runs the check command for CI/CD gating. It scores the
// configured inputs and returns an error when any text exceeds the allowed
// complexity, so the caller exits non-zero.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	builder := NewCheckResultBuilder(ctx, cfg, mgr)
	if _, err := builder.LoadTexts(); err != nil {
		return err
	}
	if _, err := builder.RunScoring(); err != nil {
		return err
	}
	result := builder.ComputeViolations().BuildResult().GetResult()

	printCheckResult(os.Stdout, result, time.Since(start))
	if !result.Passed {
		return fmt.Errorf("%d violation(s) and %d unscored text(s) found", len(result.Failed), result.Errored)
	}
	return nil
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, result *schema.CheckResult, duration time.Duration) {
	printCheckHeader(w, result, duration)

	if result.Passed {
		printCheckSuccess(w, result)
	} else {
		printCheckFailure(w, result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(w io.Writer, result *schema.CheckResult, duration time.Duration) {
	_, _ = fmt.Fprintln(w, "Complexity Check Results:")

	maxOverall := "disabled"
	if result.MaxOverall < 1 {
		maxOverall = fmt.Sprintf("%.2f", result.MaxOverall)
	}
	labels := []string{"Max level:", "Max overall:"}
	values := []string{string(result.MaxLevel), maxOverall}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		_, _ = fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Checked %d texts in %v\n\n", result.TotalTexts, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "✅ All texts passed the complexity check\n\n")
	_, _ = fmt.Fprintln(w, "Scores observed:")
	_, _ = fmt.Fprintf(w, "  overall: max=%.2f (%s), avg=%.2f\n", result.PeakOverall, result.PeakSource, result.AvgOverall)
}

// printCheckFailure prints the failure case output.
func printCheckFailure(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "❌ Complexity check failed: %d violation(s) found across %d texts\n\n", len(result.Failed), result.TotalTexts)

	failed := append([]schema.CheckFailedText(nil), result.Failed...)
	sort.SliceStable(failed, func(i, j int) bool {
		return failed[i].Overall > failed[j].Overall
	})

	for i, f := range failed {
		if i == maxViolationsShown {
			_, _ = fmt.Fprintf(w, "  ... and %d more\n", len(failed)-i)
			break
		}
		_, _ = fmt.Fprintf(w, "  - %s #%d %q (overall: %.2f, level: %s)\n", f.Source, f.Index, f.Preview, f.Overall, f.Level)
	}
	if result.Errored > 0 {
		_, _ = fmt.Fprintf(w, "  %d text(s) could not be scored\n", result.Errored)
	}
	_, _ = fmt.Fprintln(w)
}
