package textsrc

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVTextColumn is the header of the column holding the texts.
const CSVTextColumn = "text"

// ExtractCSV returns the text column of every CSV record.
func ExtractCSV(content []byte) ([]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), CSVTextColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("CSV header has no %q column", CSVTextColumn)
	}

	var out []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if col < len(record) {
			out = append(out, record[col])
		}
	}
}
