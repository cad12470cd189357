package outwriter

import (
	"io"
	"strings"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/schema"
)

// maskedValue replaces connection strings in printed configs.
const maskedValue = "<set>"

// configFile mirrors the keys accepted by .tcscore.yaml, so the output can be
// saved and loaded again.
type configFile struct {
	Weights    schema.CategoryWeights      `yaml:"weights"`
	Thresholds schema.ComplexityThresholds `yaml:"thresholds"`
	ClampAll   bool                        `yaml:"clamp-all"`
	Fallback   string                      `yaml:"fallback"`
	Timeout    string                      `yaml:"timeout"`

	Split     string `yaml:"split"`
	Workers   int    `yaml:"workers"`
	Precision int    `yaml:"precision"`
	Output    string `yaml:"output"`

	Embedder   string   `yaml:"embedder"`
	EmbedURL   string   `yaml:"embed-url,omitempty"`
	EmbedModel string   `yaml:"embed-model"`
	Idioms     []string `yaml:"idioms,omitempty"`
	Deep       bool     `yaml:"deep"`

	CacheBackend     string `yaml:"cache-backend"`
	CacheDBConnect   string `yaml:"cache-db-connect,omitempty"`
	HistoryBackend   string `yaml:"history-backend,omitempty"`
	HistoryDBConnect string `yaml:"history-db-connect,omitempty"`
	KafkaBrokers     string `yaml:"kafka-brokers,omitempty"`
	KafkaTopic       string `yaml:"kafka-topic,omitempty"`

	Emoji string `yaml:"emoji"`
	Color string `yaml:"color"`
}

// WriteConfig prints the effective configuration as YAML with connection
// strings masked.
func WriteConfig(w io.Writer, cfg *contract.Config) error {
	return writeYAML(w, newConfigFile(cfg))
}

func newConfigFile(cfg *contract.Config) configFile {
	out := configFile{
		Weights:    cfg.Scoring.GetMetricWeights(),
		Thresholds: cfg.Scoring.GetThresholds(),
		ClampAll:   cfg.Scoring.ClampAll(),
		Fallback:   string(cfg.Fallback),
		Timeout:    cfg.Timeout.String(),
		Split:      string(cfg.Split),
		Workers:    cfg.Workers,
		Precision:  cfg.Precision,
		Output:     string(cfg.Output),
		Embedder:   string(cfg.Embedder),
		EmbedURL:   cfg.EmbedURL,
		EmbedModel: cfg.EmbedModel,
		Idioms:     cfg.Idioms,
		Deep:       cfg.Deep,

		CacheBackend:     string(cfg.CacheBackend),
		CacheDBConnect:   mask(cfg.CacheDBConnect),
		HistoryBackend:   string(cfg.HistoryBackend),
		HistoryDBConnect: mask(cfg.HistoryDBConnect),
		KafkaBrokers:     strings.Join(cfg.KafkaBrokers, ","),
		Emoji:            yesNo(cfg.UseEmojis),
		Color:            yesNo(cfg.UseColors),
	}
	if cfg.KafkaEnabled() {
		out.KafkaTopic = cfg.KafkaTopic
	}
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return maskedValue
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
