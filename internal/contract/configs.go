package contract

import (
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/tcscore/schema"
)

// Default values for configuration.
const (
	DefaultPrecision       = 2
	DefaultProviderTimeout = 30 * time.Second
	DefaultEmbedModel      = "sentence-transformers/all-MiniLM-L6-v2"
	DefaultKafkaTopic      = "tcscore.scores"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// WeightsRawInput holds the custom category weights from the YAML config file.
// Pointer fields distinguish an explicit zero from an omitted key.
type WeightsRawInput struct {
	Readability *float64 `mapstructure:"readability"`
	Linguistic  *float64 `mapstructure:"linguistic"`
	Translation *float64 `mapstructure:"translation"`
}

// ThresholdsRawInput holds the complexity band thresholds from the YAML config file.
type ThresholdsRawInput struct {
	Low    *float64 `mapstructure:"low"`
	Medium *float64 `mapstructure:"medium"`
	High   *float64 `mapstructure:"high"`
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	Scoring  schema.ScoringConfig
	Fallback schema.FallbackPolicy
	Timeout  time.Duration // Per-provider deadline (0 = none)

	Texts     []string // Positional text arguments
	Files     []string // Input documents ("-" reads stdin)
	Split     schema.SplitMode
	FeedLimit int // Max feed items to score (0 = all)

	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Detail     bool
	Explain    bool
	Width      int // Terminal width override (0 = auto-detect)

	Embedder   schema.EmbedderKind
	EmbedURL   string
	EmbedModel string
	Idioms     []string // Extra lexicon entries for the idiom detector
	Deep       bool     // Enable the LLM idiom detector

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	KafkaBrokers []string
	KafkaTopic   string

	MaxLevel   schema.ComplexityLevel // Gate for the check command
	MaxOverall float64                // Gate for the check command (1 = disabled)

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Args []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Files            []string `mapstructure:"file"`
	Split            string   `mapstructure:"split"`
	Workers          int      `mapstructure:"workers"`
	Precision        int      `mapstructure:"precision"`
	Output           string   `mapstructure:"output"`
	OutputFile       string   `mapstructure:"output-file"`
	Width            int      `mapstructure:"width"`
	Fallback         string   `mapstructure:"fallback"`
	ClampAll         bool     `mapstructure:"clamp-all"`
	Timeout          string   `mapstructure:"timeout"`
	Embedder         string   `mapstructure:"embedder"`
	EmbedURL         string   `mapstructure:"embed-url"`
	EmbedModel       string   `mapstructure:"embed-model"`
	Idioms           []string `mapstructure:"idioms"`
	Deep             bool     `mapstructure:"deep"`
	CacheBackend     string   `mapstructure:"cache-backend"`
	CacheDBConnect   string   `mapstructure:"cache-db-connect"`
	HistoryBackend   string   `mapstructure:"history-backend"`
	HistoryDBConnect string   `mapstructure:"history-db-connect"`
	KafkaBrokers     string   `mapstructure:"kafka-brokers"`
	KafkaTopic       string   `mapstructure:"kafka-topic"`
	Emoji            string   `mapstructure:"emoji"`
	Color            string   `mapstructure:"color"`

	// --- Fields from scoreCmd.Flags() ---
	Detail  bool `mapstructure:"detail"`
	Explain bool `mapstructure:"explain"`

	// --- Fields from feedCmd.Flags() ---
	Limit int `mapstructure:"limit"`

	// --- Fields from checkCmd.Flags() ---
	MaxLevel      string  `mapstructure:"max-level"`
	MaxOverall    float64 `mapstructure:"max-overall"`
	ThresholdsStr string  `mapstructure:"thresholds-override"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Complexity thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Texts = slices.Clone(c.Texts)
	clone.Files = slices.Clone(c.Files)
	clone.Idioms = slices.Clone(c.Idioms)
	clone.KafkaBrokers = slices.Clone(c.KafkaBrokers)
	return &clone
}

// KafkaEnabled reports whether scored results are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaTopic != ""
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processScoringConfig(cfg, input); err != nil {
		return err
	}
	if err := processCheckGate(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of connection strings
// for the MySQL, PostgreSQL and Redis backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must start with 'redis://' or 'rediss://'")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// Both stores create their own tables, so a shared SQLite file would collide on clear
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the presentation and runtime fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Texts = slices.Clone(input.Args)
	cfg.Files = slices.Clone(input.Files)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.Deep = input.Deep
	cfg.EmbedURL = strings.TrimSpace(input.EmbedURL)
	cfg.EmbedModel = strings.TrimSpace(input.EmbedModel)
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = DefaultEmbedModel
	}

	cfg.Idioms = nil
	for _, idiom := range input.Idioms {
		if trimmed := strings.TrimSpace(idiom); trimmed != "" {
			cfg.Idioms = append(cfg.Idioms, trimmed)
		}
	}

	cfg.KafkaBrokers = SplitCSV(input.KafkaBrokers)
	cfg.KafkaTopic = strings.TrimSpace(input.KafkaTopic)
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		cfg.KafkaTopic = DefaultKafkaTopic
	}

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit < 0 {
		return fmt.Errorf("limit must be 0 or greater (received %d)", input.Limit)
	}
	cfg.FeedLimit = input.Limit

	// --- 1. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Split, Fallback and Embedder Validation ---
	cfg.Split = schema.SplitMode(strings.ToLower(input.Split))
	if _, ok := schema.ValidSplitModes[cfg.Split]; !ok {
		return fmt.Errorf("invalid split mode '%s'. must be none, paragraphs, lines", input.Split)
	}

	cfg.Fallback = schema.FallbackPolicy(strings.ToLower(input.Fallback))
	if _, ok := schema.ValidFallbackPolicies[cfg.Fallback]; !ok {
		return fmt.Errorf("invalid fallback policy '%s'. must be degrade, strict", input.Fallback)
	}

	cfg.Embedder = schema.EmbedderKind(strings.ToLower(input.Embedder))
	if _, ok := schema.ValidEmbedders[cfg.Embedder]; !ok {
		return fmt.Errorf("invalid embedder '%s'. must be hashing, http", input.Embedder)
	}
	if cfg.Embedder == schema.HTTPEmbedder && cfg.EmbedURL == "" {
		return fmt.Errorf("embed-url is required when using the %s embedder", cfg.Embedder)
	}

	// --- 4. Timeout Validation ---
	cfg.Timeout = DefaultProviderTimeout
	if input.Timeout != "" {
		timeout, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", input.Timeout, err)
		}
		if timeout < 0 {
			return fmt.Errorf("timeout must not be negative (received %s)", input.Timeout)
		}
		cfg.Timeout = timeout
	}

	return nil
}

// processScoringConfig merges custom weights and thresholds over the defaults
// and validates the result. Command-line --thresholds-override takes precedence
// over config file settings.
func processScoringConfig(cfg *Config, input *ConfigRawInput) error {
	weights := schema.DefaultWeights
	if input.Weights.Readability != nil {
		weights.Readability = *input.Weights.Readability
	}
	if input.Weights.Linguistic != nil {
		weights.Linguistic = *input.Weights.Linguistic
	}
	if input.Weights.Translation != nil {
		weights.Translation = *input.Weights.Translation
	}

	thresholds := schema.DefaultThresholds
	if input.Thresholds.Low != nil {
		thresholds.Low = *input.Thresholds.Low
	}
	if input.Thresholds.Medium != nil {
		thresholds.Medium = *input.Thresholds.Medium
	}
	if input.Thresholds.High != nil {
		thresholds.High = *input.Thresholds.High
	}

	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		if v, ok := parsed[schema.LowLevel]; ok {
			thresholds.Low = v
		}
		if v, ok := parsed[schema.MediumLevel]; ok {
			thresholds.Medium = v
		}
		if v, ok := parsed[schema.HighLevel]; ok {
			thresholds.High = v
		}
	}

	scoring, err := schema.NewScoringConfig(weights, thresholds, input.ClampAll)
	if err != nil {
		return err
	}
	cfg.Scoring = scoring
	return nil
}

// processCheckGate validates the check command's gate.
func processCheckGate(cfg *Config, input *ConfigRawInput) error {
	cfg.MaxLevel = schema.VeryHighLevel
	if input.MaxLevel != "" {
		level := schema.ComplexityLevel(strings.ToLower(strings.ReplaceAll(input.MaxLevel, "-", "_")))
		if schema.LevelRank(level) < 0 {
			return fmt.Errorf("invalid max level '%s'. must be low, medium, high, very_high", input.MaxLevel)
		}
		cfg.MaxLevel = level
	}

	cfg.MaxOverall = 1
	if input.MaxOverall != 0 {
		if input.MaxOverall < 0 || input.MaxOverall > 1 {
			return fmt.Errorf("max overall must be between 0.0 and 1.0 (received %.3f)", input.MaxOverall)
		}
		cfg.MaxOverall = input.MaxOverall
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseThresholdsString parses a string like "low:0.2,medium:0.4,high:0.6"
// into a map of ComplexityLevel to float64.
func parseThresholdsString(s string) (map[schema.ComplexityLevel]float64, error) {
	thresholds := make(map[schema.ComplexityLevel]float64)

	for _, part := range SplitCSV(s) {
		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'level:value'", part)
		}

		levelStr := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		level := schema.ComplexityLevel(levelStr)
		switch level {
		case schema.LowLevel, schema.MediumLevel, schema.HighLevel:
		default:
			return nil, fmt.Errorf("invalid level '%s', must be low, medium, or high", levelStr)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for level %s: %w", valueStr, level, err)
		}
		thresholds[level] = value
	}

	return thresholds, nil
}

// ConfigParams summarizes the config for history records.
func (c *Config) ConfigParams() map[string]any {
	params := map[string]any{
		"weights":     c.Scoring.GetMetricWeights().AsMap(),
		"thresholds":  c.Scoring.GetThresholds(),
		"clamp_all":   c.Scoring.ClampAll(),
		"fallback":    string(c.Fallback),
		"embedder":    string(c.Embedder),
		"embed_model": c.EmbedModel,
		"workers":     c.Workers,
		"deep":        c.Deep,
	}
	if len(c.Idioms) > 0 {
		params["idioms"] = slices.Clone(c.Idioms)
	}
	return params
}
