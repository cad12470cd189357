package textsrc

import (
	"regexp"
	"strings"

	"github.com/huangsam/tcscore/schema"
)

var blankLine = regexp.MustCompile(`\n[ \t\r]*\n`)

// Split cuts a text into pieces by mode, trimming each piece and dropping
// blank ones. SplitNone yields the trimmed text as a single piece.
func Split(text string, mode schema.SplitMode) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var parts []string
	switch mode {
	case schema.SplitParagraphs:
		parts = blankLine.Split(text, -1)
	case schema.SplitLines:
		parts = strings.Split(text, "\n")
	default:
		parts = []string{text}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
