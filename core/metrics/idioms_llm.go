package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/huangsam/tcscore/internal/contract"
)

const maxPromptRunes = 8000

// LLMDetector asks Claude to find idioms and falls back to another detector
// when the API call or its answer fails.
type LLMDetector struct {
	client   anthropic.Client
	fallback contract.IdiomDetector
}

// NewLLMDetector returns an LLM-backed detector, or the fallback itself when
// ANTHROPIC_API_KEY is unset.
func NewLLMDetector(fallback contract.IdiomDetector) contract.IdiomDetector {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return fallback
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &LLMDetector{client: client, fallback: fallback}
}

// CountIdioms implements contract.IdiomDetector.
func (d *LLMDetector) CountIdioms(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	n, err := d.countWithClaude(ctx, text)
	if err == nil {
		return n, nil
	}
	if d.fallback == nil {
		return 0, err
	}
	contract.LogWarn("LLM idiom detection failed, using lexicon", err)
	return d.fallback.CountIdioms(ctx, text)
}

func (d *LLMDetector) countWithClaude(ctx context.Context, text string) (int, error) {
	prompt := fmt.Sprintf(`List every idiomatic expression in the text below. An idiom is a
phrase whose meaning cannot be derived from its individual words, such as
"piece of cake" or "kick the bucket". Do not list literal phrases.

Text:
%s

Provide a JSON response with the following structure:
{"idioms": ["idiom as it appears in the text"]}

Return ONLY the JSON, no other text.`, truncateRunes(text, maxPromptRunes))

	resp, err := d.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude3_5Haiku20241022,
		MaxTokens: 1000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("Claude API error: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	return parseIdiomResponse(responseText)
}

// parseIdiomResponse extracts the idiom count from a JSON answer, tolerating
// surrounding prose or code fences.
func parseIdiomResponse(response string) (int, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end < start {
		return 0, fmt.Errorf("no JSON object in Claude response")
	}

	var result struct {
		Idioms []string `json:"idioms"`
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return 0, fmt.Errorf("failed to parse Claude response: %w", err)
	}
	n := 0
	for _, idiom := range result.Idioms {
		if strings.TrimSpace(idiom) != "" {
			n++
		}
	}
	return n, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
