package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/repository"
)

// ReindexStats summarizes a reindex run.
type ReindexStats struct {
	Indexed int64
	Failed  int64
}

// Reindexer rebuilds the vector index from the clip database. It walks all
// clips in batches and re-embeds them with a worker pool, so a collection
// can be recreated after an embedding model change.
type Reindexer struct {
	clips    *repository.ClipRepository
	vectors  *repository.ClipVectorRepository
	embedder EmbeddingProvider

	Workers   int
	BatchSize int
}

func NewReindexer(clips *repository.ClipRepository, vectors *repository.ClipVectorRepository, embedder EmbeddingProvider) *Reindexer {
	return &Reindexer{
		clips:     clips,
		vectors:   vectors,
		embedder:  embedder,
		Workers:   4,
		BatchSize: 100,
	}
}

// Run re-embeds every clip and upserts it into the vector store. Per-clip
// failures are counted, logged, and skipped; only the database walk itself
// aborts the run.
func (r *Reindexer) Run(ctx context.Context) (ReindexStats, error) {
	var stats ReindexStats
	start := time.Now()

	jobs := make(chan domain.Clip, r.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < r.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for clip := range jobs {
				if err := r.indexOne(ctx, &clip); err != nil {
					atomic.AddInt64(&stats.Failed, 1)
					logger.CtxWarn(ctx, "reindex failed for clip %s: %v", clip.ID, err)
					continue
				}
				atomic.AddInt64(&stats.Indexed, 1)
			}
		}()
	}

	walkErr := r.clips.WalkAll(ctx, r.BatchSize, func(clips []domain.Clip) error {
		for _, clip := range clips {
			select {
			case jobs <- clip:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	close(jobs)
	wg.Wait()

	logger.With(logger.Fields{logger.FieldCount: stats.Indexed}).
		WithDuration(time.Since(start).Milliseconds()).
		Info(ctx, "reindex finished: %d indexed, %d failed", stats.Indexed, stats.Failed)
	return stats, walkErr
}

func (r *Reindexer) indexOne(ctx context.Context, clip *domain.Clip) error {
	vector, err := r.embedder.Embed(ctx, embeddingText(clip.Title(), clip.Description, clip.Tags))
	if err != nil {
		return err
	}
	return r.vectors.Upsert(ctx, clip.ID, vector, &repository.ClipPayload{
		ClipID:    clip.ID,
		UserID:    clip.UserID,
		VideoSite: string(clip.VideoSite),
		Title:     clip.Title(),
		Tags:      clip.Tags,
	})
}
