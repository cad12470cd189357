package schema

// CheckResult holds the results of a complexity gate over a set of texts.
type CheckResult struct {
	Passed      bool
	MaxLevel    ComplexityLevel
	MaxOverall  float64
	TotalTexts  int
	Failed      []CheckFailedText
	Errored     int
	AvgOverall  float64
	PeakOverall float64
	PeakSource  string
}

// CheckFailedText represents a text that exceeded the allowed level or score.
type CheckFailedText struct {
	Index   int
	Source  string
	Preview string
	Overall float64
	Level   ComplexityLevel
}
