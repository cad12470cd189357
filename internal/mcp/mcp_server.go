// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxBatchTexts bounds a single batch_score call.
const maxBatchTexts = 500

// NewMCPServer initializes and configures the tcscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Translation Complexity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_text ---
	s.AddTool(mcp.NewTool("score_text",
		mcp.WithDescription("Score how difficult a text is to translate. Returns every normalized metric, the category scores, the overall complexity in [0,1] and its level."),
		mcp.WithString("text", mcp.Description("The text to score."), mcp.Required()),
		mcp.WithString("source", mcp.Description("Optional label for where the text came from.")),
	), h.handleScoreText)

	// --- 2. Tool: batch_score ---
	s.AddTool(mcp.NewTool("batch_score",
		mcp.WithDescription("Score many texts at once. Results keep the input order; a text that fails is reported without affecting the others."),
		mcp.WithArray("texts", mcp.Description("The texts to score."), mcp.Required(), mcp.WithStringItems()),
	), h.handleBatchScore)

	// --- 3. Tool: get_complexity_level ---
	s.AddTool(mcp.NewTool("get_complexity_level",
		mcp.WithDescription("Map an overall complexity score in [0,1] to its level (low, medium, high, very_high) under the configured thresholds."),
		mcp.WithNumber("score", mcp.Description("Overall complexity score between 0 and 1."), mcp.Required()),
	), h.handleGetComplexityLevel)

	// --- 4. Tool: get_metric_weights ---
	s.AddTool(mcp.NewTool("get_metric_weights",
		mcp.WithDescription("Return the category weights, complexity thresholds and normalization rules used for scoring."),
	), h.handleGetMetricWeights)

	return s
}

// StartMCPServer starts the tcscore MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
