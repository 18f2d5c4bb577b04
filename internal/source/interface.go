package source

import "context"

// VideoResult is a normalized search hit from an external video search API.
type VideoResult struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Thumbnail       string `json:"thumbnail"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// Source defines the interface for external video search providers.
type Source interface {
	// ProviderID returns the stable identifier for this provider.
	ProviderID() string

	// Search queries the provider and returns up to limit normalized results.
	Search(ctx context.Context, query string, limit int) ([]VideoResult, error)
}
