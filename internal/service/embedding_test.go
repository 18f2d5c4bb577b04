package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clipbook/clipbook/internal/config"
)

func TestRestEmbeddingProvider_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	defer srv.Close()

	p, err := NewEmbeddingProvider(&config.EmbeddingConfig{
		Provider:   "jina",
		Model:      "test-model",
		BaseURL:    srv.URL,
		Dimensions: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vec, err := p.Embed(context.Background(), "go concurrency")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Errorf("vector = %v", vec)
	}
	if p.Dimensions() != 3 {
		t.Errorf("Dimensions() = %d, want 3", p.Dimensions())
	}
}

func TestRestEmbeddingProvider_ErrorPaths(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "empty data",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"data":[]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p, err := NewEmbeddingProvider(&config.EmbeddingConfig{Provider: "jina", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := p.Embed(context.Background(), "text"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestEmbeddingProvider_UnknownProviderNeedsBaseURL(t *testing.T) {
	if _, err := NewEmbeddingProvider(&config.EmbeddingConfig{Provider: "custom"}); err == nil {
		t.Error("unknown provider without base_url should fail")
	}
}
