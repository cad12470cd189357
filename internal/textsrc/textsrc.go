// Package textsrc loads the texts to score from arguments, documents, stdin
// and RSS/Atom feeds.
package textsrc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/tcscore/schema"
)

// Source names for texts that do not come from a file.
const (
	ArgsSource  = "args"
	StdinSource = "stdin"
)

// Text is one unit of text to score and where it came from.
type Text struct {
	Source string
	Body   string
}

// Extractor pulls the prose out of a document. Record-oriented formats
// return one entry per record.
type Extractor func(content []byte) ([]string, error)

// extractors maps a lowercase file extension to its extractor.
var extractors = map[string]Extractor{
	".md":       ExtractMarkdown,
	".markdown": ExtractMarkdown,
	".html":     ExtractHTML,
	".htm":      ExtractHTML,
	".jsonl":    ExtractJSONL,
	".ndjson":   ExtractJSONL,
	".yaml":     ExtractYAML,
	".yml":      ExtractYAML,
	".csv":      ExtractCSV,
}

// ExtractorFor returns the extractor for a path, falling back to plain text.
func ExtractorFor(path string) Extractor {
	if ex, ok := extractors[strings.ToLower(filepath.Ext(path))]; ok {
		return ex
	}
	return ExtractPlain
}

// ExtractPlain returns the content unchanged.
func ExtractPlain(content []byte) ([]string, error) {
	return []string{string(content)}, nil
}

// Load gathers texts from positional args, then from every file in order.
// The file "-" reads stdin as plain text. Each extracted text is split by mode
// and blank pieces are dropped; args are kept verbatim when mode is none.
func Load(args, files []string, mode schema.SplitMode, stdin io.Reader) ([]Text, error) {
	var out []Text
	for _, arg := range args {
		if mode == schema.SplitNone || mode == "" {
			out = append(out, Text{Source: ArgsSource, Body: arg})
			continue
		}
		for _, piece := range Split(arg, mode) {
			out = append(out, Text{Source: ArgsSource, Body: piece})
		}
	}

	for _, path := range files {
		var (
			source  = path
			content []byte
			err     error
			extract = ExtractorFor(path)
		)
		if path == "-" {
			source = StdinSource
			extract = ExtractPlain
			content, err = io.ReadAll(stdin)
		} else {
			content, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}

		texts, err := extract(content)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from %s: %w", source, err)
		}
		for _, text := range texts {
			for _, piece := range Split(text, mode) {
				out = append(out, Text{Source: source, Body: piece})
			}
		}
	}
	return out, nil
}

// Bodies returns the body of every text.
func Bodies(texts []Text) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = t.Body
	}
	return out
}
