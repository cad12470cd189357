package cmd

import (
	"os"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/outwriter"
	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration that results from defaults, .tcscore.yaml,
TCSCORE_* environment variables and flags. Connection strings are masked.

Examples:
  # Check which weights a config file produces
  tcscore config --config team.yaml

  # Start a config file from the defaults
  tcscore config > .tcscore.yaml`,
	PreRunE: func(_ *cobra.Command, args []string) error {
		return loadAndValidate(args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteConfig(os.Stdout, cfg); err != nil {
			contract.LogFatal("Cannot print config", err)
		}
	},
}
