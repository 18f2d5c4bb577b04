package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/clipbook/clipbook/internal/source"
	"github.com/go-resty/resty/v2"
)

const (
	ProviderID = "youtube"

	searchEndpoint = "https://www.googleapis.com/youtube/v3/search"
)

// Adapter implements source.Source against the YouTube Data API v3.
type Adapter struct {
	client *resty.Client
	apiKey string
}

// NewAdapter creates a new YouTube search adapter.
func NewAdapter(apiKey string) *Adapter {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	return &Adapter{
		client: client,
		apiKey: apiKey,
	}
}

// ProviderID returns the stable identifier for this provider.
func (a *Adapter) ProviderID() string {
	return ProviderID
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Thumbnails  struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Search queries the YouTube Data API and normalizes the results.
func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]source.VideoResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var resp searchResponse
	httpResp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"type":       "video",
			"q":          query,
			"maxResults": fmt.Sprintf("%d", limit),
			"key":        a.apiKey,
		}).
		SetResult(&resp).
		Get(searchEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to call YouTube search API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return nil, fmt.Errorf("YouTube search API returned HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return nil, fmt.Errorf("YouTube search API returned HTTP %d", httpResp.StatusCode())
	}

	results := make([]source.VideoResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		thumb := item.Snippet.Thumbnails.Medium.URL
		if thumb == "" {
			thumb = item.Snippet.Thumbnails.Default.URL
		}
		results = append(results, source.VideoResult{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   thumb,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}

	return results, nil
}
