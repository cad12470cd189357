package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/outwriter"
	"github.com/huangsam/tcscore/internal/sink"
	"github.com/huangsam/tcscore/internal/textsrc"
	"github.com/huangsam/tcscore/schema"
	"golang.org/x/term"
)

// ErrNoTexts is returned when a run has nothing to score.
var ErrNoTexts = errors.New("no texts to score. Pass text arguments, --file paths or pipe text on stdin")

// TextFailure is a text that could not be scored.
type TextFailure struct {
	Index  int
	Source string
	Err    error
}

// ScoringOutput holds the outcome of one scoring run.
type ScoringOutput struct {
	Results  []schema.ScoredText // successfully scored texts, in input order
	Failures []TextFailure
	Duration time.Duration
}

// stdin is where "-" and piped input are read from.
var stdin io.Reader = os.Stdin

// newResultSink creates the Kafka sink for a config.
var newResultSink = func(cfg *contract.Config) (contract.ResultSink, error) {
	return sink.NewKafkaSink(sink.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		Timeout: cfg.Timeout,
	})
}

// ScoreTexts scores texts as one run: batch scoring, labeling and history
// tracking. Failed texts are logged and reported in Failures; they never
// abort the run.
func ScoreTexts(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, texts []textsrc.Text) (*ScoringOutput, error) {
	start := time.Now()
	if len(texts) == 0 {
		return nil, ErrNoTexts
	}
	if !shouldSuppressHeader(ctx) {
		logScoringHeader(os.Stderr, cfg, len(texts))
	}

	scorer, err := NewScorerFromConfig(cfg, mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to create scorer: %w", err)
	}
	scoringCfg := scorer.Config()

	tracker := beginRun(cfg, mgr, start)
	batch := scorer.BatchScore(ctx, textsrc.Bodies(texts))
	scoredAt := time.Now()

	out := &ScoringOutput{Results: make([]schema.ScoredText, 0, len(batch))}
	for i, r := range batch {
		src := texts[i]
		if r.Err != nil {
			out.Failures = append(out.Failures, TextFailure{Index: i, Source: src.Source, Err: r.Err})
			contract.LogWarn(fmt.Sprintf("Failed to score text %d (%s)", i, src.Source), r.Err)
			continue
		}
		scored := schema.ScoredText{
			Index:  i,
			Source: src.Source,
			Text:   src.Body,
			Hash:   contract.HashText(src.Body),
			Level:  Classify(scoringCfg, r.Bundle.Overall()),
			Bundle: r.Bundle,
		}
		out.Results = append(out.Results, scored)
		tracker.record(scored, scoredAt)
	}
	tracker.finish(time.Now(), len(texts))

	out.Duration = time.Since(start)
	return out, nil
}

// ExecuteScore loads the configured inputs, scores them and writes the
// results. It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	texts, err := loadTexts(cfg)
	if err != nil {
		return err
	}
	return scoreAndWrite(ctx, cfg, mgr, texts)
}

// ExecuteFeed scores the items of an RSS or Atom feed. Item bodies are split
// by the configured mode like documents.
func ExecuteFeed(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, url string) error {
	items, err := textsrc.NewFeedReader().Fetch(ctx, url, cfg.FeedLimit)
	if err != nil {
		return err
	}
	var texts []textsrc.Text
	for _, item := range items {
		for _, piece := range textsrc.Split(item.Body, cfg.Split) {
			texts = append(texts, textsrc.Text{Source: item.Source, Body: piece})
		}
	}
	if len(texts) == 0 {
		return fmt.Errorf("feed %s has no items with text", url)
	}
	return scoreAndWrite(ctx, cfg, mgr, texts)
}

func scoreAndWrite(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, texts []textsrc.Text) error {
	out, err := ScoreTexts(ctx, cfg, mgr, texts)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteScores(out.Results, len(out.Failures), cfg, out.Duration); err != nil {
		return err
	}
	return publishResults(ctx, cfg, out.Results)
}

// publishResults sends results to Kafka when a broker list is configured.
func publishResults(ctx context.Context, cfg *contract.Config, results []schema.ScoredText) error {
	if !cfg.KafkaEnabled() || len(results) == 0 {
		return nil
	}
	rs, err := newResultSink(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to kafka: %w", err)
	}
	defer func() { _ = rs.Close() }()

	if err := rs.Publish(ctx, results); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "📤 Published %d result(s) to kafka topic %s\n", len(results), cfg.KafkaTopic)
	return nil
}

// loadTexts gathers the texts named by the config. Piped stdin is read when
// no other input is given.
func loadTexts(cfg *contract.Config) ([]textsrc.Text, error) {
	files := cfg.Files
	if len(cfg.Texts) == 0 && len(files) == 0 && stdinIsPiped() {
		files = []string{"-"}
	}
	texts, err := textsrc.Load(cfg.Texts, files, cfg.Split, stdin)
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, ErrNoTexts
	}
	return texts, nil
}

func stdinIsPiped() bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return stdin != nil
	}
	return !term.IsTerminal(int(f.Fd()))
}

// logScoringHeader prints a concise, 2-line header for a scoring run.
func logScoringHeader(w io.Writer, cfg *contract.Config, n int) {
	weights := cfg.Scoring.GetMetricWeights()
	_, _ = fmt.Fprintf(w, "🔎 Scoring %d text(s) with %d worker(s) (fallback: %s)\n", n, cfg.Workers, cfg.Fallback)
	_, _ = fmt.Fprintf(w, "⚖️  Weights: readability=%.2f linguistic=%.2f translation=%.2f\n",
		weights.Readability, weights.Linguistic, weights.Translation)
}
