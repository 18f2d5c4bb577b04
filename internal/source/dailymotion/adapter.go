package dailymotion

import (
	"context"
	"fmt"
	"time"

	"github.com/clipbook/clipbook/internal/source"
	"github.com/go-resty/resty/v2"
)

const (
	ProviderID = "dailymotion"

	searchEndpoint = "https://api.dailymotion.com/videos"
)

// Adapter implements source.Source against the public Dailymotion REST API.
// No API key is required for search.
type Adapter struct {
	client *resty.Client
}

// NewAdapter creates a new Dailymotion search adapter.
func NewAdapter() *Adapter {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	return &Adapter{client: client}
}

// ProviderID returns the stable identifier for this provider.
func (a *Adapter) ProviderID() string {
	return ProviderID
}

type searchResponse struct {
	List []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Thumbnail   string `json:"thumbnail_240_url"`
		URL         string `json:"url"`
		Duration    int    `json:"duration"`
	} `json:"list"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Search queries the Dailymotion API and normalizes the results.
func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]source.VideoResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var resp searchResponse
	httpResp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"search": query,
			"fields": "id,title,description,thumbnail_240_url,url,duration",
			"limit":  fmt.Sprintf("%d", limit),
		}).
		SetResult(&resp).
		Get(searchEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to call Dailymotion API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return nil, fmt.Errorf("Dailymotion API returned HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return nil, fmt.Errorf("Dailymotion API returned HTTP %d", httpResp.StatusCode())
	}

	results := make([]source.VideoResult, 0, len(resp.List))
	for _, item := range resp.List {
		results = append(results, source.VideoResult{
			ID:              item.ID,
			Title:           item.Title,
			Description:     item.Description,
			Thumbnail:       item.Thumbnail,
			URL:             item.URL,
			DurationSeconds: item.Duration,
		})
	}

	return results, nil
}
