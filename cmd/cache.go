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

// cacheSetup loads only the cache settings and opens the cache store.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr, schema.NoneBackend, ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on score cache management.
//
// Cache subcommands skip sharedSetup since they never score anything.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the score cache (skips re-scoring unchanged texts)",
	Long: `Manage the cache of score bundles keyed by text hash and scoring parameters.

Repeated runs over the same corpus only score texts that changed or whose
weights, thresholds or embedder changed.

Supported backends: SQLite (default), MySQL, PostgreSQL, Redis, or None

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached scores

Examples:
  # Check cache status
  tcscore cache status

  # Use a shared Redis cache
  TCSCORE_CACHE_BACKEND=redis TCSCORE_CACHE_DB_CONNECT="redis://localhost:6379/0" tcscore cache status`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached scores",
	Long: `Delete every cached score bundle from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table
For Redis: Deletes the tcscore keys

Examples:
  # Clear SQLite cache (default)
  tcscore cache clear

  # Clear MySQL cache (set connection string via env variable)
  TCSCORE_CACHE_BACKEND=mysql TCSCORE_CACHE_DB_CONNECT="..." tcscore cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// The open store would keep the SQLite file busy
		iocache.CloseStores()
		if err := iocache.ClearCache(cfg.CacheBackend, sqlitePath(cfg.CacheDBConnect, contract.GetCacheDBFilePath()), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, the number of cached scores, the newest and oldest
entries and the storage size.

Examples:
  # Check cache status
  tcscore cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetScoreStore()
		if store == nil {
			fmt.Println("Score caching is disabled (cache-backend: none).")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

// sqlitePath returns the SQLite file behind a connection string.
func sqlitePath(connStr, defaultPath string) string {
	if connStr == "" {
		return defaultPath
	}
	return connStr
}
