package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
	"github.com/jmoiron/sqlx"
)

// HistoryStoreImpl records scoring runs and per-text scores in SQL tables
// managed by the embedded migrations.
type HistoryStoreImpl struct {
	db      *sqlx.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore migrates the history schema to the latest version and opens
// the store. The none backend yields a store that records nothing.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (*HistoryStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}
	if err := migrateHistory(backend, connStr, -1, io.Discard); err != nil {
		return nil, fmt.Errorf("failed to prepare history tables: %w", err)
	}
	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}
	return &HistoryStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

func (hs *HistoryStoreImpl) table(name string) string {
	return quoteTableName(name, hs.backend)
}

// BeginRun inserts a run row and returns its ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to encode config params: %w", err)
	}

	insert := fmt.Sprintf(`INSERT INTO %s (start_time, total_texts, config_params) VALUES (?, 0, ?)`, hs.table(runsTable))
	if hs.backend == schema.PostgreSQLBackend {
		var runID int64
		if err := hs.db.Get(&runID, hs.db.Rebind(insert+" RETURNING run_id"), startTime.UTC(), string(configJSON)); err != nil {
			return 0, fmt.Errorf("failed to begin run: %w", err)
		}
		return runID, nil
	}

	result, err := hs.db.Exec(insert, startTime.UTC(), string(configJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run ID: %w", err)
	}
	return runID, nil
}

// EndRun stores the end time, the text count and the duration since start.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalTexts int) error {
	if hs.db == nil {
		return nil
	}

	var startTime time.Time
	query := hs.db.Rebind(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, hs.table(runsTable)))
	if err := hs.db.Get(&startTime, query, runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("run %d not found", runID)
		}
		return fmt.Errorf("failed to read run %d: %w", runID, err)
	}

	duration := int32(endTime.Sub(startTime).Milliseconds())
	update := hs.db.Rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_texts = ? WHERE run_id = ?`, hs.table(runsTable)))
	if _, err := hs.db.Exec(update, endTime.UTC(), duration, totalTexts, runID); err != nil {
		return fmt.Errorf("failed to end run %d: %w", runID, err)
	}
	return nil
}

// RecordTextScore stores the category scores of one text under runID.
func (hs *HistoryStoreImpl) RecordTextScore(runID int64, record schema.TextScoreRecord) error {
	if hs.db == nil {
		return nil
	}
	record.RunID = runID
	record.ScoredAt = record.ScoredAt.UTC()

	insert := fmt.Sprintf(`INSERT INTO %s (run_id, text_index, text_hash, source, scored_at, readability, linguistic,
			translation, overall_complexity, complexity_level, degraded_categories)
		VALUES (:run_id, :text_index, :text_hash, :source, :scored_at, :readability, :linguistic,
			:translation, :overall_complexity, :complexity_level, :degraded_categories)`, hs.table(textScoresTable))
	if _, err := hs.db.NamedExec(insert, record); err != nil {
		return fmt.Errorf("failed to record text %d of run %d: %w", record.TextIndex, runID, err)
	}
	return nil
}

// GetStatus returns run counts and row counts of both tables.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: map[string]int64{},
	}
	if hs.db == nil {
		return status, nil
	}

	for _, name := range []string{runsTable, textScoresTable} {
		var count int64
		if err := hs.db.Get(&count, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, hs.table(name))); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", name, err)
		}
		status.TableSizes[name] = count
	}
	status.TotalRuns = int(status.TableSizes[runsTable])
	status.TotalTextsScored = int(status.TableSizes[textScoresTable])
	if status.TotalRuns == 0 {
		return status, nil
	}

	// Plain column reads keep the declared type, so SQLite hands back time.Time.
	var last, oldest struct {
		RunID     int64     `db:"run_id"`
		StartTime time.Time `db:"start_time"`
	}
	lastQuery := fmt.Sprintf(`SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1`, hs.table(runsTable))
	if err := hs.db.Get(&last, lastQuery); err != nil {
		return status, fmt.Errorf("failed to get last run: %w", err)
	}
	oldestQuery := fmt.Sprintf(`SELECT run_id, start_time FROM %s ORDER BY start_time ASC LIMIT 1`, hs.table(runsTable))
	if err := hs.db.Get(&oldest, oldestQuery); err != nil {
		return status, fmt.Errorf("failed to get oldest run: %w", err)
	}
	status.LastRunID = last.RunID
	status.LastRunTime = last.StartTime
	status.OldestRunTime = oldest.StartTime
	return status, nil
}

// GetAllRuns returns every run ordered by ID.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.HistoryRunRecord, error) {
	if hs.db == nil {
		return nil, nil
	}
	var runs []schema.HistoryRunRecord
	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, total_texts, config_params
		FROM %s ORDER BY run_id`, hs.table(runsTable))
	if err := hs.db.Select(&runs, query); err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	return runs, nil
}

// GetAllTextScores returns every text score ordered by run and position.
func (hs *HistoryStoreImpl) GetAllTextScores() ([]schema.TextScoreRecord, error) {
	if hs.db == nil {
		return nil, nil
	}
	var records []schema.TextScoreRecord
	query := fmt.Sprintf(`SELECT run_id, text_index, text_hash, source, scored_at, readability, linguistic,
			translation, overall_complexity, complexity_level, degraded_categories
		FROM %s ORDER BY run_id, text_index`, hs.table(textScoresTable))
	if err := hs.db.Select(&records, query); err != nil {
		return nil, fmt.Errorf("failed to query text scores: %w", err)
	}
	return records, nil
}

// Close closes the underlying DB connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
