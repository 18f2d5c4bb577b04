package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/clipbook/clipbook/internal/config"
)

// EmbeddingProvider turns text into a vector for semantic library search.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// RestEmbeddingProvider calls an OpenAI-compatible embeddings endpoint
// (Jina, OpenAI, or any proxy exposing the same shape).
type RestEmbeddingProvider struct {
	client     *resty.Client
	model      string
	dimensions int
}

func NewEmbeddingProvider(cfg *config.EmbeddingConfig) (*RestEmbeddingProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		switch cfg.Provider {
		case "jina":
			baseURL = "https://api.jina.ai/v1"
		case "openai":
			baseURL = "https://api.openai.com/v1"
		default:
			return nil, fmt.Errorf("embedding provider %q requires base_url", cfg.Provider)
		}
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	dimensions := cfg.Dimensions
	if dimensions <= 0 {
		dimensions = 1024
	}

	return &RestEmbeddingProvider{
		client:     client,
		model:      cfg.Model,
		dimensions: dimensions,
	}, nil
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the vector for a single text.
func (p *RestEmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	var out embeddingResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(embeddingRequest{
			Model: p.model,
			Input: []string{text},
		}).
		SetResult(&out).
		Post("/embeddings")
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("embedding provider returned status %d: %s", resp.StatusCode(), snippetOf(resp.String(), 200))
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedding provider returned no vector")
	}
	return out.Data[0].Embedding, nil
}

func (p *RestEmbeddingProvider) Dimensions() int {
	return p.dimensions
}

// embeddingText is the canonical text embedded per clip: title plus
// description plus tags, matching what the payload indexes.
func embeddingText(title, description string, tags []string) string {
	parts := []string{title}
	if description != "" {
		parts = append(parts, description)
	}
	if len(tags) > 0 {
		parts = append(parts, strings.Join(tags, " "))
	}
	return strings.Join(parts, "\n")
}
