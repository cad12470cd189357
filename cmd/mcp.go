package cmd

import (
	"github.com/huangsam/tcscore/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the tcscore MCP server",
	Long: `Launch an MCP server on stdio so AI agents can score texts with the
score_text, batch_score, get_complexity_level and get_metric_weights tools.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
