package textsrc

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
)

// JSONLTextField is the field read from each JSON Lines record.
const JSONLTextField = "text"

const maxJSONLLine = 16 << 20

// ExtractJSONL returns the text field of every JSON Lines record. Blank lines
// are skipped; a line that is not valid JSON or lacks a string text field
// fails the whole document.
func ExtractJSONL(content []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLLine)

	var out []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return nil, fmt.Errorf("line %d: invalid JSON", lineNo)
		}
		field := gjson.GetBytes(line, JSONLTextField)
		if field.Type != gjson.String {
			return nil, fmt.Errorf("line %d: missing string %q field", lineNo, JSONLTextField)
		}
		out = append(out, field.String())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read JSON Lines: %w", err)
	}
	return out, nil
}
