package cmd

import (
	"github.com/huangsam/tcscore/core"
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/spf13/cobra"
)

// feedCmd scores the items of an RSS or Atom feed.
var feedCmd = &cobra.Command{
	Use:   "feed <url>",
	Short: "Score the items of an RSS or Atom feed.",
	Long: `Fetch an RSS or Atom feed and score each item's title and body, with the
markup stripped.

Examples:
  # Score the latest 10 posts of a blog
  tcscore feed https://go.dev/blog/feed.atom --limit 10

  # Score every paragraph of every item
  tcscore feed https://example.com/rss.xml --split paragraphs --output csv`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The URL is not a text to score
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteFeed(rootCtx, cfg, cacheManager, args[0]); err != nil {
			contract.LogFatal("Cannot score feed", err)
		}
	},
}
