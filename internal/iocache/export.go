package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/parquet"
)

// ExportHistory writes every run and text score of the store to
// <outputFile>.runs.parquet and <outputFile>.text_scores.parquet.
func ExportHistory(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total text records: %d\n", status.TotalTextsScored)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	scores, err := store.GetAllTextScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve text scores: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + ".text_scores.parquet"
	if err := parquet.WriteTextScoresParquet(parquet.ConvertTextScoreRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write text scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d text score records to: %s\n", len(scores), scoresFile)
	return nil
}
