package core

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/huangsam/tcscore/internal/textsrc"
	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCheck(t *testing.T, maxLevel schema.ComplexityLevel, maxOverall float64, texts []textsrc.Text) *schema.CheckResult {
	t.Helper()
	cfg := testConfig()
	cfg.MaxLevel = maxLevel
	cfg.MaxOverall = maxOverall

	b := NewCheckResultBuilder(WithSuppressHeader(context.Background()), cfg, nil).WithTexts(texts)
	_, err := b.LoadTexts()
	require.NoError(t, err)
	_, err = b.RunScoring()
	require.NoError(t, err)
	return b.ComputeViolations().BuildResult().GetResult()
}

func TestCheckPassesWithDefaults(t *testing.T) {
	result := runCheck(t, schema.VeryHighLevel, 1, sampleTexts)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 2, result.TotalTexts)
	assert.Equal(t, "doc.md #1", result.PeakSource)
	assert.GreaterOrEqual(t, result.PeakOverall, result.AvgOverall)
}

func TestCheckFailsOnOverall(t *testing.T) {
	result := runCheck(t, schema.VeryHighLevel, 0.0001, sampleTexts)
	assert.False(t, result.Passed)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, "args", result.Failed[0].Source)
	assert.NotEmpty(t, result.Failed[1].Preview)
}

func TestCheckFailsOnLevel(t *testing.T) {
	// "low" admits nothing above low, and the legal sentence is harder than that.
	result := runCheck(t, schema.LowLevel, 1, sampleTexts[1:])
	for _, f := range result.Failed {
		assert.True(t, ExceedsLevel(f.Level, schema.LowLevel))
	}
	assert.Equal(t, len(result.Failed) == 0, result.Passed)
}

func TestCheckFailsOnUnscoredText(t *testing.T) {
	cfg := testConfig()
	cfg.Fallback = schema.StrictFallback
	cfg.MaxLevel = schema.VeryHighLevel
	cfg.MaxOverall = 1

	b := NewCheckResultBuilder(WithSuppressHeader(context.Background()), cfg, nil).
		WithTexts([]textsrc.Text{{Source: "bad", Body: "\xff"}})
	_, err := b.RunScoring()
	require.NoError(t, err)
	result := b.ComputeViolations().BuildResult().GetResult()
	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.Errored)
	assert.Empty(t, result.Failed)
}

func TestPrintCheckResult(t *testing.T) {
	passed := &schema.CheckResult{
		Passed:      true,
		MaxLevel:    schema.HighLevel,
		MaxOverall:  1,
		TotalTexts:  2,
		AvgOverall:  0.3,
		PeakOverall: 0.4,
		PeakSource:  "doc.md #1",
	}
	var buf bytes.Buffer
	printCheckResult(&buf, passed, time.Second)
	out := buf.String()
	assert.Contains(t, out, "Complexity Check Results:")
	assert.Contains(t, out, "Max overall:  disabled")
	assert.Contains(t, out, "Checked 2 texts in 1s")
	assert.Contains(t, out, "✅ All texts passed")
	assert.Contains(t, out, "max=0.40 (doc.md #1), avg=0.30")

	failed := &schema.CheckResult{
		MaxLevel:   schema.MediumLevel,
		MaxOverall: 0.5,
		TotalTexts: 3,
		Errored:    1,
		Failed: []schema.CheckFailedText{
			{Index: 0, Source: "a", Preview: "low one", Overall: 0.55, Level: schema.HighLevel},
			{Index: 2, Source: "b", Preview: "top one", Overall: 0.9, Level: schema.VeryHighLevel},
		},
	}
	buf.Reset()
	printCheckResult(&buf, failed, time.Second)
	out = buf.String()
	assert.Contains(t, out, "Max overall:  0.50")
	assert.Contains(t, out, "❌ Complexity check failed: 2 violation(s) found across 3 texts")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("top one")), bytes.Index(buf.Bytes(), []byte("low one")))
	assert.Contains(t, out, "1 text(s) could not be scored")
}

func TestPrintCheckFailureTruncates(t *testing.T) {
	result := &schema.CheckResult{TotalTexts: 12}
	for i := range 12 {
		result.Failed = append(result.Failed, schema.CheckFailedText{Index: i, Source: "s", Overall: 0.9})
	}
	var buf bytes.Buffer
	printCheckFailure(&buf, result)
	assert.Contains(t, buf.String(), "... and 2 more")
}
