package cmd

import (
	"github.com/huangsam/tcscore/core"
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD complexity gating.
var checkCmd = &cobra.Command{
	Use:   "check [text...]",
	Short: "Fail when texts are too complex to translate (for CI/CD pipelines)",
	Long: `Score texts and enforce a complexity gate, exiting non-zero on violations.

A text violates the gate when its level is above --max-level or its overall
score is above --max-overall. Texts that cannot be scored fail the check too.

Use cases:
- Block UI strings or docs that will be expensive to localize
- Keep release notes within a readability budget
- Validate thresholds before rolling them out

Examples:
  # Reject any string above medium complexity
  tcscore check --file strings.jsonl --max-level medium

  # Gate on the raw score with custom level thresholds
  tcscore check --file docs/intro.md --split paragraphs --max-overall 0.6 \
    --thresholds-override "low:0.2,medium:0.4,high:0.6"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Complexity check failed", err)
		}
	},
}
