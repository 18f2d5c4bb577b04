package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/source"
)

const videoSearchDefaultLimit = 10

// VideoSearchService fans a query out to the configured external video
// search providers and merges the results. A failing provider is logged and
// skipped so one flaky upstream never empties the whole result set.
type VideoSearchService struct {
	sources []source.Source
}

func NewVideoSearchService(sources []source.Source) *VideoSearchService {
	return &VideoSearchService{sources: sources}
}

// ProviderResults groups one provider's hits.
type ProviderResults struct {
	Provider string               `json:"provider"`
	Results  []source.VideoResult `json:"results"`
}

// Search queries every provider concurrently. A non-empty provider restricts
// the search to that provider alone. Provider order in the output matches
// registration order regardless of completion order.
func (s *VideoSearchService) Search(ctx context.Context, provider, query string, limit int) ([]ProviderResults, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	sources := s.sources
	if provider != "" {
		sources = nil
		for _, src := range s.sources {
			if src.ProviderID() == provider {
				sources = append(sources, src)
			}
		}
		if len(sources) == 0 {
			return nil, fmt.Errorf("unknown video search provider %q", provider)
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no video search providers configured")
	}
	if limit <= 0 || limit > 25 {
		limit = videoSearchDefaultLimit
	}

	start := time.Now()
	out := make([]ProviderResults, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			results, err := src.Search(ctx, query, limit)
			if err != nil {
				logger.CtxWarn(ctx, "video search provider %s failed: %v", src.ProviderID(), err)
				results = []source.VideoResult{}
			}
			out[i] = ProviderResults{
				Provider: src.ProviderID(),
				Results:  results,
			}
		}(i, src)
	}
	wg.Wait()

	total := 0
	for _, pr := range out {
		total += len(pr.Results)
	}
	logger.With(logger.Fields{logger.FieldCount: total}).
		WithDuration(time.Since(start).Milliseconds()).
		Info(ctx, "video search completed across %d providers", len(sources))
	return out, nil
}
