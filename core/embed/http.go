package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/time/rate"
)

// HTTPConfig holds the settings of an OpenAI-compatible embeddings endpoint.
type HTTPConfig struct {
	URL     string        `envconfig:"EMBED_URL"`
	Model   string        `envconfig:"EMBED_MODEL" default:"sentence-transformers/all-MiniLM-L6-v2"`
	APIKey  string        `envconfig:"EMBED_API_KEY"`
	Timeout time.Duration `envconfig:"EMBED_TIMEOUT" default:"30s"`
	RPS     float64       `envconfig:"EMBED_RPS" default:"10"`
	Burst   int           `envconfig:"EMBED_BURST" default:"5"`
}

// LoadHTTPConfig reads TCSCORE_EMBED_* environment variables.
func LoadHTTPConfig() (HTTPConfig, error) {
	var cfg HTTPConfig
	if err := envconfig.Process("tcscore", &cfg); err != nil {
		return HTTPConfig{}, fmt.Errorf("failed to load embedder config: %w", err)
	}
	return cfg, nil
}

// HTTPEmbedder calls a remote embeddings API with client-side rate limiting.
type HTTPEmbedder struct {
	cfg      HTTPConfig
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewHTTPEmbedder validates the config and returns an embedder.
func NewHTTPEmbedder(cfg HTTPConfig) (*HTTPEmbedder, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("embedding endpoint URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	return &HTTPEmbedder{
		cfg:      cfg,
		endpoint: endpointURL(cfg.URL),
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(limit, max(cfg.Burst, 1)),
	}, nil
}

// Name implements contract.Embedder.
func (e *HTTPEmbedder) Name() string {
	return e.cfg.Model
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed implements contract.Embedder.
func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(embeddingRequest{Model: e.cfg.Model, Input: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("embedding endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if len(decoded.Data) == 0 || len(decoded.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedding response has no vectors")
	}
	return decoded.Data[0].Embedding, nil
}

// endpointURL accepts either a base URL or the full embeddings path.
func endpointURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/embeddings") {
		return base
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/embeddings"
	}
	return base + "/v1/embeddings"
}
