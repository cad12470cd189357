package textsrc

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedReader turns RSS and Atom feed items into texts.
type FeedReader struct {
	client *http.Client
	parser *gofeed.Parser
}

// NewFeedReader creates a feed reader with a bounded HTTP timeout.
func NewFeedReader() *FeedReader {
	return &FeedReader{
		client: &http.Client{Timeout: 30 * time.Second},
		parser: gofeed.NewParser(),
	}
}

// Fetch downloads a feed and returns up to limit items (all when limit <= 0).
// Each text is the item title followed by its content or description with
// the markup stripped. The source is the item link, or the feed URL.
func (fr *FeedReader) Fetch(ctx context.Context, url string, limit int) ([]Text, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "tcscore/1.0")

	resp, err := fr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s status %d", url, resp.StatusCode)
	}

	parsed, err := fr.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	var out []Text
	for _, item := range parsed.Items {
		if limit > 0 && len(out) >= limit {
			break
		}
		body := item.Content
		if body == "" {
			body = item.Description
		}
		plain, err := HTMLToText(body)
		if err != nil {
			return nil, fmt.Errorf("feed item %q: %w", item.Title, err)
		}

		parts := make([]string, 0, 2)
		if title := strings.TrimSpace(item.Title); title != "" {
			parts = append(parts, title)
		}
		if plain != "" {
			parts = append(parts, plain)
		}
		if len(parts) == 0 {
			continue
		}

		source := item.Link
		if source == "" {
			source = url
		}
		out = append(out, Text{Source: source, Body: strings.Join(parts, "\n\n")})
	}
	return out, nil
}
