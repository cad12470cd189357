// Package main benchmarks the tcscore CLI on generated corpora of growing size.
// Each corpus is scored without a cache, then several times with a SQLite
// cache: the first cached run is cold and the rest are averaged as warm.
// Results are written to a timestamped CSV file.
//
// Prerequisites:
// - tcscore binary installed and available in PATH
//
// Usage: go run benchmark/main.go [paragraphs...]
//
//	paragraphs: corpus sizes to generate (default: 100 1000 5000)
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the timings of one corpus and command.
type BenchmarkResult struct {
	Corpus      string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Sizes       []int
}

// seedParagraphs are mixed to build corpora with varied difficulty.
var seedParagraphs = []string{
	"Click Save to keep your changes.",
	"Your session has expired. Please sign in again to continue where you left off.",
	"Notwithstanding the aforementioned contractual obligations, the indemnifying party shall, at its own expense, defend the indemnified party against all claims.",
	"Don't beat around the bush: the quarterly figures fell short of every projection we made, and we need to circle back with the board.",
	"The asynchronous replication pipeline guarantees eventual consistency across geographically distributed clusters.",
}

func main() {
	sizes := []int{100, 1000, 5000}
	if len(os.Args) > 1 {
		sizes = sizes[:0]
		for _, arg := range os.Args[1:] {
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				fmt.Printf("Usage: %s [paragraphs...]\n", os.Args[0])
				os.Exit(1)
			}
			sizes = append(sizes, n)
		}
	}

	workDir, err := os.MkdirTemp("", "tcscore-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sizes:       sizes,
	}

	if _, err := exec.LookPath("tcscore"); err != nil {
		fmt.Printf("Prerequisites check failed: tcscore binary not found in PATH\n")
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// writeCorpus writes a Markdown document with n paragraphs. Every paragraph
// carries its number so no two paragraphs share a cache key.
func writeCorpus(dir string, n int) (string, error) {
	var b strings.Builder
	b.WriteString("# Benchmark corpus\n\n")
	for i := range n {
		fmt.Fprintf(&b, "%s (item %d)\n\n", seedParagraphs[i%len(seedParagraphs)], i)
	}
	path := filepath.Join(dir, fmt.Sprintf("corpus_%d.md", n))
	return path, os.WriteFile(path, []byte(b.String()), 0o644)
}

// runBenchmarks executes every command against every corpus size.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d corpora, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Sizes), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, n := range config.Sizes {
		corpus, err := writeCorpus(config.WorkDir, n)
		if err != nil {
			return nil, fmt.Errorf("failed to write corpus: %w", err)
		}
		name := fmt.Sprintf("%d paragraphs", n)
		fmt.Printf("Benchmarking %s\n", name)

		for _, command := range []string{"score", "check"} {
			results = append(results, runBenchmarkSuite(config, name, corpus, command))
		}
	}
	return results, nil
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, name, corpus, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, name)

	// Each suite starts from an empty cache in its own HOME
	home, err := os.MkdirTemp(config.WorkDir, "home-*")
	if err != nil {
		return BenchmarkResult{Corpus: name, Command: command, NoCacheTime: "ERROR", ColdTime: "ERROR", WarmTime: "ERROR"}
	}

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, home, corpus, command, cacheBackend, numRuns)
		avgTime = "TIMEOUT"
		if len(times) > 0 {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Corpus:      name,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark runs a command numRuns times and returns the first successful
// time as cold and the remaining ones as warm.
func runBenchmark(config BenchmarkConfig, home, corpus, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command, "--file", corpus, "--split", "paragraphs",
		"--cache-backend", cacheBackend,
		"--workers", strconv.Itoa(config.Workers),
	}
	if command == "score" {
		args = append(args, "--output", "json", "--output-file", filepath.Join(home, "scores.json"))
	}

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		cmd := exec.CommandContext(ctx, "tcscore", args...)
		cmd.Env = append(os.Environ(), "HOME="+home)

		start := time.Now()
		output, err := cmd.CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return coldTime, warmTimes
}

// isSuccess checks that the scoring header was printed.
func isSuccess(output []byte) bool {
	out := string(output)
	return strings.Contains(out, "Scoring") && strings.Contains(out, "worker(s)")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/tcscore_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"corpus", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Corpus, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"score", "check"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-16s: No-cache: %s, Cold: %s, Warm: %s\n", result.Corpus, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
