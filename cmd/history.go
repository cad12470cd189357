package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/iocache"
	"github.com/huangsam/tcscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromViper reads the history settings. An empty backend
// disables history tracking.
func historyBackendFromViper() (schema.DatabaseBackend, string, error) {
	backend := schema.NoneBackend
	if s := viper.GetString("history-backend"); s != "" {
		backend = schema.DatabaseBackend(s)
	}
	connStr := viper.GetString("history-db-connect")

	if backend == schema.RedisBackend {
		return "", "", fmt.Errorf("redis is not supported for history tracking")
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads only the history settings and opens the history store.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}

	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads the history settings without opening the store,
// so migrations can run against a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on scoring history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage scoring history tracking and exports",
	Long: `Manage the record of past scoring runs.

When --history-backend is set, every score, check and feed run stores:
- Run metadata (start and end time, configuration, text count)
- Category scores, overall complexity and level of every text

Supported backends: SQLite, MySQL, PostgreSQL, or None (default)

Subcommands:
  status  - Show history statistics
  export  - Export runs and scores to Parquet
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Track runs in the default SQLite file
  tcscore score --file docs/intro.md --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  tcscore history export --history-backend sqlite --output-file history`,
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded scoring runs",
	Long: `Delete every recorded run and text score.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Rolls back every migration

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  tcscore history export --history-backend sqlite --output-file backup
  tcscore history clear --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseStores()
		if err := iocache.ClearHistory(cfg.HistoryBackend, sqlitePath(cfg.HistoryDBConnect, contract.GetHistoryDBFilePath()), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the backend, the number of runs and scored texts, the newest and
oldest runs and the table sizes.

Examples:
  tcscore history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			fmt.Println("History tracking is disabled. Set --history-backend to enable it.")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports the history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export runs and text scores to Parquet",
	Long: `Export the history as two Parquet files:
- <output-file>.runs.parquet with one row per run
- <output-file>.text_scores.parquet with one row per scored text

Requires: --output-file parameter

Examples:
  tcscore history export --history-backend sqlite --output-file history
  duckdb -c "SELECT complexity_level, count(*) FROM 'history.text_scores.parquet' GROUP BY complexity_level"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExportHistory(os.Stdout, iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  tcscore history migrate --history-backend postgresql

  # Roll back every migration
  tcscore history migrate --history-backend postgresql --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.HistoryBackend == schema.NoneBackend {
			contract.LogFatal("Cannot migrate history", fmt.Errorf("no history backend configured"))
		}
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate history", err)
		}
	},
}
