package cmd

import (
	"github.com/huangsam/tcscore/core"
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the normalization rules and scoring parameters.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the metric normalization rules, weights and thresholds",
	Long: `Show how raw metrics become a complexity level:
- The normalization rule of each metric and whether it is clamped
- The category weights and the overall formula
- The level thresholds

No text is scored - this is purely informational.

Examples:
  # Show the default scoring parameters
  tcscore metrics

  # View with custom weights from a config file
  tcscore metrics --config .tcscore.yaml --output json`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadAndValidate(args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
