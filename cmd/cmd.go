// Package cmd defines the command-line interface for tcscore.
package cmd

import (
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	flags := rootCmd.PersistentFlags()
	flags.StringSliceP("file", "f", nil, "Documents to score (.md, .html, .jsonl, .yaml, .csv or plain text); '-' reads stdin")
	flags.String("split", string(schema.SplitNone), "Split documents into texts: none or paragraphs or lines")
	flags.String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet")
	flags.String("output-file", "", "Optional path to write output to")
	flags.Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	flags.Int("workers", contract.DefaultWorkers, "Number of texts scored concurrently")
	flags.Int("width", 0, "Terminal width override (0 = auto-detect)")
	flags.String("fallback", string(schema.DegradeFallback), "Provider failure policy: degrade or strict")
	flags.Bool("clamp-all", false, "Clamp every normalized metric to [0,1]")
	flags.String("timeout", contract.DefaultProviderTimeout.String(), "Deadline for each metric provider (0 = none)")
	flags.String("embedder", string(schema.HashingEmbedder), "Sentence embedding model: hashing or http")
	flags.String("embed-url", "", "Embedding service URL for the http embedder")
	flags.String("embed-model", contract.DefaultEmbedModel, "Embedding model name for the http embedder")
	flags.StringSlice("idioms", nil, "Extra idioms for the idiom detector")
	flags.Bool("deep", false, "Detect idioms with Claude (requires ANTHROPIC_API_KEY)")
	flags.String("cache-backend", string(schema.SQLiteBackend), "Score cache backend: sqlite or mysql or postgresql or redis or none")
	flags.String("cache-db-connect", "", "Cache connection string for mysql/postgresql/redis (e.g., redis://localhost:6379/0)")
	flags.String("history-backend", "", "History tracking backend: sqlite or mysql or postgresql or none")
	flags.String("history-db-connect", "", "History connection string (must differ from cache-db-connect)")
	flags.String("kafka-brokers", "", "Comma-separated Kafka brokers to publish scored texts to")
	flags.String("kafka-topic", "", "Kafka topic for scored texts (default "+contract.DefaultKafkaTopic+")")
	flags.String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	flags.String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	flags.String("profile", "", "Enable profiling and write profiles to files with this prefix")
	flags.String("config", "", "Path to config file")
	if err := viper.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("detail", false, "Print per-metric columns")
	scoreCmd.Flags().Bool("explain", false, "Print per-category columns")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of feedCmd to Viper
	feedCmd.Flags().Int("limit", 0, "Maximum number of feed items to score (0 = all)")
	if err := viper.BindPFlags(feedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding feed flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("max-level", string(schema.VeryHighLevel), "Highest allowed complexity level: low or medium or high or very_high")
	checkCmd.Flags().Float64("max-overall", 0, "Highest allowed overall score in (0,1] (0 = disabled)")
	checkCmd.Flags().String("thresholds-override", "", "Level thresholds (format: 'low:0.25,medium:0.45,high:0.65')")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
