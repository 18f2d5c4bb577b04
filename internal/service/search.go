package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/repository"
)

const searchDefaultTopK = 10

// SearchService answers semantic queries over a user's saved clips: the
// query is embedded, matched against the vector index, and the hits are
// hydrated from the database in score order.
type SearchService struct {
	clips    *repository.ClipRepository
	vectors  *repository.ClipVectorRepository
	embedder EmbeddingProvider
}

func NewSearchService(clips *repository.ClipRepository, vectors *repository.ClipVectorRepository, embedder EmbeddingProvider) *SearchService {
	return &SearchService{
		clips:    clips,
		vectors:  vectors,
		embedder: embedder,
	}
}

// ScoredClip pairs a clip with its similarity score.
type ScoredClip struct {
	domain.Clip
	Score float32 `json:"score"`
}

// Enabled reports whether semantic search is wired up. The handler falls
// back to a 503 when it is not.
func (s *SearchService) Enabled() bool {
	return s != nil && s.vectors != nil && s.embedder != nil
}

// Search finds the user's clips most similar to the query. Vector hits whose
// clip no longer exists (deleted since indexing) are dropped silently.
func (s *SearchService) Search(ctx context.Context, userID, query string, topK int) ([]ScoredClip, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("semantic search is not configured")
	}
	if topK <= 0 || topK > 50 {
		topK = searchDefaultTopK
	}

	start := time.Now()
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.vectors.Search(ctx, userID, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	if len(hits) == 0 {
		return []ScoredClip{}, nil
	}

	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.ClipID
	}
	clips, err := s.clips.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Clip, len(clips))
	for _, clip := range clips {
		byID[clip.ID] = clip
	}

	results := make([]ScoredClip, 0, len(hits))
	for _, hit := range hits {
		clip, ok := byID[hit.ClipID]
		if !ok {
			continue
		}
		results = append(results, ScoredClip{Clip: clip, Score: hit.Score})
	}

	logger.With(logger.Fields{logger.FieldCount: len(results)}).
		WithDuration(time.Since(start).Milliseconds()).
		Info(ctx, "semantic search completed")
	return results, nil
}
