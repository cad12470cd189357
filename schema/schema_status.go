package schema

import "time"

// CacheStatus represents the status of the score cache.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalRuns        int              `json:"total_runs"`
	LastRunID        int64            `json:"last_run_id"`
	LastRunTime      time.Time        `json:"last_run_time"`
	OldestRunTime    time.Time        `json:"oldest_run_time"`
	TotalTextsScored int              `json:"total_texts_scored"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}

// HistoryRunRecord represents a row from the tcscore_runs table.
type HistoryRunRecord struct {
	RunID         int64      `db:"run_id"`
	StartTime     time.Time  `db:"start_time"`
	EndTime       *time.Time `db:"end_time"`
	RunDurationMs *int32     `db:"run_duration_ms"`
	TotalTexts    int32      `db:"total_texts"`
	ConfigParams  *string    `db:"config_params"`
}

// TextScoreRecord represents a row from the tcscore_text_scores table.
type TextScoreRecord struct {
	RunID              int64     `db:"run_id"`
	TextIndex          int32     `db:"text_index"`
	TextHash           string    `db:"text_hash"`
	Source             string    `db:"source"`
	ScoredAt           time.Time `db:"scored_at"`
	Readability        float64   `db:"readability"`
	Linguistic         float64   `db:"linguistic"`
	Translation        float64   `db:"translation"`
	OverallComplexity  float64   `db:"overall_complexity"`
	ComplexityLevel    string    `db:"complexity_level"`
	DegradedCategories *string   `db:"degraded_categories"`
}
