package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/tcscore/internal/contract"
	mcp_internal "github.com/huangsam/tcscore/internal/mcp"
	"github.com/huangsam/tcscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.MCPServer {
	baseCfg := &contract.Config{
		Scoring:  schema.DefaultScoringConfig(),
		Fallback: schema.StrictFallback,
		Workers:  2,
		Embedder: schema.HashingEmbedder,
	}
	var mgr contract.CacheManager
	return mcp_internal.NewMCPServer(baseCfg, mgr)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestScoreText(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "score_text", map[string]any{"text": "It was a piece of cake.", "source": "chat"})
	require.False(t, res.IsError, resultText(t, res))

	var scored map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &scored))
	assert.Equal(t, "chat", scored["source"])
	assert.NotEmpty(t, scored["text_hash"])
	assert.Contains(t, []any{"low", "medium", "high", "very_high"}, scored["complexity_level"])

	scores, ok := scored["scores"].(map[string]any)
	require.True(t, ok)
	overall, ok := scores["overall_complexity"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, overall, 0.0)
	assert.LessOrEqual(t, overall, 1.0)
	assert.Len(t, scores["metrics"], 12)
}

func TestScoreTextValidation(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "score_text", map[string]any{})
	assert.True(t, res.IsError)

	res = callTool(t, s, "score_text", map[string]any{"text": "broken \xff"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "scoring failed")
}

func TestBatchScore(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "batch_score", map[string]any{
		"texts": []any{"First text.", "bad \xff", "Third text is here."},
	})
	require.False(t, res.IsError, resultText(t, res))

	var resp struct {
		Results []struct {
			Index int `json:"index"`
		} `json:"results"`
		Failures []struct {
			Index  int    `json:"index"`
			Reason string `json:"reason"`
		} `json:"failures"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 0, resp.Results[0].Index)
	assert.Equal(t, 2, resp.Results[1].Index)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, 1, resp.Failures[0].Index)
	assert.Equal(t, string(schema.MalformedInput), resp.Failures[0].Reason)
}

func TestBatchScoreValidation(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "batch_score", map[string]any{})
	assert.True(t, res.IsError)

	res = callTool(t, s, "batch_score", map[string]any{"texts": []any{}})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "at least one text")

	many := make([]any, 501)
	for i := range many {
		many[i] = "x"
	}
	res = callTool(t, s, "batch_score", map[string]any{"texts": many})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "at most 500 texts")
}

func TestGetComplexityLevel(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		score float64
		level string
		label string
	}{
		{0.0, "low", contract.LowValue},
		{0.25, "medium", contract.MediumValue},
		{0.5, "high", contract.HighValue},
		{0.65, "very_high", contract.VeryHighValue},
		{1.0, "very_high", contract.VeryHighValue},
	}
	for _, tt := range tests {
		res := callTool(t, s, "get_complexity_level", map[string]any{"score": tt.score})
		require.False(t, res.IsError)

		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
		assert.Equal(t, tt.level, resp["complexity_level"], "score %v", tt.score)
		assert.Equal(t, tt.label, resp["label"])
	}

	res := callTool(t, s, "get_complexity_level", map[string]any{"score": 1.5})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "between 0.0 and 1.0")

	res = callTool(t, s, "get_complexity_level", map[string]any{})
	assert.True(t, res.IsError)
}

func TestGetMetricWeights(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "get_metric_weights", nil)
	require.False(t, res.IsError)

	var model map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &model))
	assert.Equal(t, "Translation Complexity Metrics", model["title"])
	assert.Len(t, model["rules"], 12)

	weights, ok := model["weights"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.4, weights["linguistic"], 1e-9)
}
