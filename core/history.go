package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
)

// runTracker records one scoring run in the history store. A tracker without
// a store, or whose run could not be started, records nothing.
type runTracker struct {
	store contract.HistoryStore
	runID int64
}

// beginRun starts a run when history tracking is enabled. Tracking problems
// are logged and never fail the scoring itself.
func beginRun(cfg *contract.Config, mgr contract.CacheManager, start time.Time) *runTracker {
	if mgr == nil {
		return &runTracker{}
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return &runTracker{}
	}

	runID, err := store.BeginRun(start, cfg.ConfigParams())
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return &runTracker{}
	}
	return &runTracker{store: store, runID: runID}
}

// record stores the scores of one text.
func (t *runTracker) record(st schema.ScoredText, at time.Time) {
	if t.store == nil {
		return
	}
	if err := t.store.RecordTextScore(t.runID, newTextScoreRecord(t.runID, st, at)); err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to record text %d in history", st.Index), err)
	}
}

// finish closes the run with the number of texts it processed.
func (t *runTracker) finish(end time.Time, totalTexts int) {
	if t.store == nil {
		return
	}
	if err := t.store.EndRun(t.runID, end, totalTexts); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}

// newTextScoreRecord flattens a scored text into a history row.
func newTextScoreRecord(runID int64, st schema.ScoredText, at time.Time) schema.TextScoreRecord {
	rec := schema.TextScoreRecord{
		RunID:             runID,
		TextIndex:         int32(st.Index),
		TextHash:          st.Hash,
		Source:            st.Source,
		ScoredAt:          at.UTC(),
		Readability:       st.Bundle.CategoryScore(schema.ReadabilityCategory),
		Linguistic:        st.Bundle.CategoryScore(schema.LinguisticCategory),
		Translation:       st.Bundle.CategoryScore(schema.TranslationCategory),
		OverallComplexity: st.Bundle.Overall(),
		ComplexityLevel:   string(st.Level),
	}
	if degraded := st.Bundle.Degraded(); len(degraded) > 0 {
		names := make([]string, len(degraded))
		for i, c := range degraded {
			names[i] = string(c)
		}
		joined := strings.Join(names, ",")
		rec.DegradedCategories = &joined
	}
	return rec
}
