package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEmbedderEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mini", req.Model)
		assert.Equal(t, "hello", req.Input)

		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.5,-0.25]}]}`))
	}))
	defer srv.Close()

	e, err := NewHTTPEmbedder(HTTPConfig{URL: srv.URL, Model: "mini", APIKey: "secret", RPS: 100, Burst: 1})
	require.NoError(t, err)
	assert.Equal(t, "mini", e.Name())

	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.25}, vec)
}

func TestHTTPEmbedderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "boom", "returned 500: boom"},
		{"bad json", http.StatusOK, "{", "failed to decode"},
		{"no vectors", http.StatusOK, `{"data":[]}`, "no vectors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			e, err := NewHTTPEmbedder(HTTPConfig{URL: srv.URL})
			require.NoError(t, err)
			_, err = e.Embed(context.Background(), "hello")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewHTTPEmbedderRequiresURL(t *testing.T) {
	_, err := NewHTTPEmbedder(HTTPConfig{})
	assert.Error(t, err)
}

func TestLoadHTTPConfig(t *testing.T) {
	t.Setenv("TCSCORE_EMBED_URL", "http://localhost:8080")
	t.Setenv("TCSCORE_EMBED_TIMEOUT", "5s")

	cfg, err := LoadHTTPConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.URL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "sentence-transformers/all-MiniLM-L6-v2", cfg.Model)
	assert.Equal(t, 5, cfg.Burst)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://h/v1/embeddings", endpointURL("http://h"))
	assert.Equal(t, "http://h/v1/embeddings", endpointURL("http://h/v1/"))
	assert.Equal(t, "http://h/api/embeddings", endpointURL("http://h/api/embeddings"))
}
