package outwriter

import (
	"os"

	"github.com/huangsam/tcscore/internal/contract"
	"golang.org/x/term"
)

// GetMaxTablePreviewWidth calculates the maximum width of the text preview
// column based on terminal width and the enabled columns.
func GetMaxTablePreviewWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detected, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detected <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detected
		}
	}

	baseWidth := 40 // Index + Source + Overall + Level with borders/padding
	if cfg.Explain {
		baseWidth += 30 // Category columns
	}
	if cfg.Detail {
		baseWidth += 96 // Metric columns
	}

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}
