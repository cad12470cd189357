package cmd

import (
	"github.com/huangsam/tcscore/core"
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores texts from arguments, files and stdin.
var scoreCmd = &cobra.Command{
	Use:   "score [text...]",
	Short: "Score how difficult texts are to translate.",
	Long: `Score each text on readability, linguistic and translation metrics and
combine them into an overall complexity in [0,1] with a level.

Texts come from positional arguments, --file documents and piped stdin.
Documents are read by extension: Markdown and HTML keep only the prose,
JSON Lines, YAML and CSV yield one text per record. Use --split to score
each paragraph or line on its own.

Examples:
  # Score a single sentence
  tcscore score "The early bird catches the worm."

  # Score every paragraph of a Markdown guide with category columns
  tcscore score --file guide.md --split paragraphs --explain

  # Score a JSON Lines corpus and export the results
  tcscore score --file strings.jsonl --output parquet --output-file scores.parquet

  # Pipe text in and print every metric
  cat release-notes.txt | tcscore score --detail`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot score texts", err)
		}
	},
}
