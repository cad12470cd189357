package schema

// BatchResult is the outcome of scoring one text inside a batch.
// Exactly one of Bundle or Err is meaningful.
type BatchResult struct {
	Index  int
	Bundle ScoreBundle
	Err    error
}

// ScoredText pairs a scored bundle with where the text came from.
type ScoredText struct {
	Index  int             `json:"index"`
	Source string          `json:"source"`
	Text   string          `json:"-"`
	Hash   string          `json:"text_hash"`
	Level  ComplexityLevel `json:"complexity_level"`
	Bundle ScoreBundle     `json:"scores"`
}

// Preview returns the first n runes of the text on a single line.
func (s ScoredText) Preview(n int) string {
	runes := []rune(s.Text)
	for i, r := range runes {
		if r == '\n' || r == '\r' || r == '\t' {
			runes[i] = ' '
		}
	}
	if n <= 3 || len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n-3]) + "..."
}

// LevelRank returns the ordinal of a complexity level, or -1 when unknown.
func LevelRank(level ComplexityLevel) int {
	for i, l := range AllLevels {
		if l == level {
			return i
		}
	}
	return -1
}
