package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/tcscore/core"
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/textsrc"
	"github.com/huangsam/tcscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// batchFailure is the JSON form of a text that could not be scored.
type batchFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error"`
}

type batchResponse struct {
	Results  []schema.ScoredText `json:"results"`
	Failures []batchFailure      `json:"failures"`
}

type levelResponse struct {
	Score float64                `json:"score"`
	Level schema.ComplexityLevel `json:"complexity_level"`
	Label string                 `json:"label"`
}

func (h *toolHandler) handleScoreText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source := request.GetString("source", "mcp")

	out, err := core.ScoreTexts(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), h.mgr, []textsrc.Text{{Source: source, Body: text}})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	if len(out.Failures) > 0 {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", out.Failures[0].Err)), nil
	}
	return jsonResult(out.Results[0])
}

func (h *toolHandler) handleBatchScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bodies, err := request.RequireStringSlice("texts")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(bodies) == 0 {
		return mcp.NewToolResultError("texts must contain at least one text"), nil
	}
	if len(bodies) > maxBatchTexts {
		return mcp.NewToolResultError(fmt.Sprintf("at most %d texts can be scored per call (received %d)", maxBatchTexts, len(bodies))), nil
	}

	texts := make([]textsrc.Text, len(bodies))
	for i, body := range bodies {
		texts[i] = textsrc.Text{Source: "mcp", Body: body}
	}
	out, err := core.ScoreTexts(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), h.mgr, texts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch scoring failed: %v", err)), nil
	}

	resp := batchResponse{Results: out.Results, Failures: []batchFailure{}}
	for _, f := range out.Failures {
		bf := batchFailure{Index: f.Index, Error: f.Err.Error()}
		if pe, ok := schema.AsProviderError(f.Err); ok {
			bf.Reason = string(pe.Reason)
		}
		resp.Failures = append(resp.Failures, bf)
	}
	return jsonResult(resp)
}

func (h *toolHandler) handleGetComplexityLevel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if score < 0 || score > 1 {
		return mcp.NewToolResultError(fmt.Sprintf("score must be between 0.0 and 1.0 (received %.3f)", score)), nil
	}

	level := core.Classify(h.baseCfg.Scoring, score)
	return jsonResult(levelResponse{Score: score, Level: level, Label: contract.GetPlainLabel(level)})
}

func (h *toolHandler) handleGetMetricWeights(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(core.BuildMetricsModel(h.baseCfg.Scoring))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
