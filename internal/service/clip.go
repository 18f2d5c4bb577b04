package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/repository"
	"github.com/clipbook/clipbook/internal/storage"
)

const (
	thumbnailMaxBytes = 5 << 20 // refuse to cache anything larger
	thumbnailMinEdge  = 32      // reject tracking pixels and placeholder icons
)

// ClipService implements the save/edit/organize operations on clips.
// Vector indexing and thumbnail caching are optional; a nil vectors repo,
// embedder, or store disables the corresponding behavior.
type ClipService struct {
	clips    *repository.ClipRepository
	vectors  *repository.ClipVectorRepository
	embedder EmbeddingProvider
	store    storage.ObjectStorage
	http     *resty.Client
}

func NewClipService(clips *repository.ClipRepository, vectors *repository.ClipVectorRepository, embedder EmbeddingProvider, store storage.ObjectStorage) *ClipService {
	return &ClipService{
		clips:    clips,
		vectors:  vectors,
		embedder: embedder,
		store:    store,
		http: resty.New().
			SetTimeout(15 * time.Second).
			SetRedirectPolicy(resty.FlexibleRedirectPolicy(3)),
	}
}

// SaveClipInput is the user-supplied part of a new clip.
type SaveClipInput struct {
	URL             string   `json:"url" binding:"required"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ThumbnailURL    string   `json:"thumbnail_url"`
	Tags            []string `json:"tags"`
	PlaylistIDs     []string `json:"playlist_ids"`
	DurationSeconds int      `json:"duration_seconds"`
}

// Save resolves the pasted URL, normalizes tags, caches the thumbnail when
// storage is configured, persists the clip, and indexes it for semantic
// search. Thumbnail and vector failures degrade; only the database write is
// load-bearing.
func (s *ClipService) Save(ctx context.Context, userID string, in SaveClipInput) (*domain.Clip, error) {
	if strings.TrimSpace(in.URL) == "" {
		return nil, fmt.Errorf("url must not be empty")
	}

	ref := domain.ResolveVideoURL(in.URL)

	clip := &domain.Clip{
		ID:              uuid.New().String(),
		UserID:          userID,
		OriginalURL:     in.URL,
		VideoSite:       ref.Site,
		EmbedURL:        ref.EmbedURL,
		Embedable:       ref.Embedable,
		WatchURL:        ref.WatchURL,
		CustomTitle:     strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		ThumbnailURL:    in.ThumbnailURL,
		PlaylistIDs:     domain.StringArray(in.PlaylistIDs),
		Tags:            domain.NormalizeTags(in.Tags),
		DurationSeconds: in.DurationSeconds,
	}
	if clip.PlaylistIDs == nil {
		clip.PlaylistIDs = domain.StringArray{}
	}

	if s.store != nil && in.ThumbnailURL != "" {
		if cached, err := s.cacheThumbnail(ctx, clip.ID, in.ThumbnailURL); err != nil {
			logger.CtxWarn(ctx, "thumbnail cache skipped for clip %s: %v", clip.ID, err)
		} else {
			clip.ThumbnailURL = cached
		}
	}

	if err := s.clips.Create(ctx, clip); err != nil {
		return nil, fmt.Errorf("failed to save clip: %w", err)
	}

	s.indexClip(ctx, clip)

	logger.CtxInfo(ctx, "clip saved: %s (%s)", clip.ID, clip.VideoSite)
	return clip, nil
}

// UpdateClipInput carries a partial clip edit; nil fields stay unchanged.
type UpdateClipInput struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Tags            *[]string `json:"tags"`
	PlaylistIDs     *[]string `json:"playlist_ids"`
	Watched         *bool     `json:"watched"`
	DurationSeconds *int      `json:"duration_seconds"`
}

// Update applies a partial edit to an owned clip and reindexes it.
func (s *ClipService) Update(ctx context.Context, userID, id string, in UpdateClipInput) (*domain.Clip, error) {
	clip, err := s.clips.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		clip.CustomTitle = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		clip.Description = strings.TrimSpace(*in.Description)
	}
	if in.Tags != nil {
		clip.Tags = domain.NormalizeTags(*in.Tags)
	}
	if in.PlaylistIDs != nil {
		clip.PlaylistIDs = domain.StringArray(*in.PlaylistIDs)
	}
	if in.Watched != nil {
		clip.Watched = *in.Watched
	}
	if in.DurationSeconds != nil {
		clip.DurationSeconds = *in.DurationSeconds
	}

	if err := s.clips.Update(ctx, clip); err != nil {
		return nil, fmt.Errorf("failed to update clip: %w", err)
	}

	s.indexClip(ctx, clip)
	return clip, nil
}

// Get retrieves a single owned clip.
func (s *ClipService) Get(ctx context.Context, userID, id string) (*domain.Clip, error) {
	return s.clips.GetByID(ctx, userID, id)
}

// List returns the user's most recent clips, optionally scoped to one
// playlist.
func (s *ClipService) List(ctx context.Context, userID, playlistID string, limit, offset int) ([]domain.Clip, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if playlistID != "" {
		return s.clips.ListByPlaylist(ctx, userID, playlistID, limit, offset)
	}
	return s.clips.ListRecent(ctx, userID, limit, offset)
}

// Delete removes an owned clip. The vector point and cached thumbnail are
// cleaned up best effort.
func (s *ClipService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.clips.GetByID(ctx, userID, id); err != nil {
		return err
	}
	if err := s.clips.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete clip: %w", err)
	}

	if s.vectors != nil {
		if err := s.vectors.Delete(ctx, id); err != nil {
			logger.CtxWarn(ctx, "vector cleanup failed for clip %s: %v", id, err)
		}
	}
	if s.store != nil {
		if err := s.store.Delete(ctx, thumbnailKey(id)); err != nil {
			logger.CtxWarn(ctx, "thumbnail cleanup failed for clip %s: %v", id, err)
		}
	}
	return nil
}

// AddToPlaylist attaches an owned clip to a playlist. Attaching twice is a
// no-op.
func (s *ClipService) AddToPlaylist(ctx context.Context, userID, clipID, playlistID string) (*domain.Clip, error) {
	clip, err := s.clips.GetByID(ctx, userID, clipID)
	if err != nil {
		return nil, err
	}
	if clip.PlaylistIDs.Contains(playlistID) {
		return clip, nil
	}
	clip.PlaylistIDs = append(clip.PlaylistIDs, playlistID)
	if err := s.clips.Update(ctx, clip); err != nil {
		return nil, fmt.Errorf("failed to attach clip to playlist: %w", err)
	}
	return clip, nil
}

// RemoveFromPlaylist detaches an owned clip from a playlist. The clip itself
// is never deleted here.
func (s *ClipService) RemoveFromPlaylist(ctx context.Context, userID, clipID, playlistID string) (*domain.Clip, error) {
	clip, err := s.clips.GetByID(ctx, userID, clipID)
	if err != nil {
		return nil, err
	}
	clip.PlaylistIDs = clip.PlaylistIDs.Remove(playlistID)
	if err := s.clips.Update(ctx, clip); err != nil {
		return nil, fmt.Errorf("failed to detach clip from playlist: %w", err)
	}
	return clip, nil
}

// indexClip upserts the clip's embedding into the vector store. Failures are
// logged and swallowed; keyword search still covers the clip.
func (s *ClipService) indexClip(ctx context.Context, clip *domain.Clip) {
	if s.vectors == nil || s.embedder == nil {
		return
	}

	vector, err := s.embedder.Embed(ctx, embeddingText(clip.Title(), clip.Description, clip.Tags))
	if err != nil {
		logger.CtxWarn(ctx, "embedding failed for clip %s: %v", clip.ID, err)
		return
	}

	err = s.vectors.Upsert(ctx, clip.ID, vector, &repository.ClipPayload{
		ClipID:    clip.ID,
		UserID:    clip.UserID,
		VideoSite: string(clip.VideoSite),
		Title:     clip.Title(),
		Tags:      clip.Tags,
	})
	if err != nil {
		logger.CtxWarn(ctx, "vector upsert failed for clip %s: %v", clip.ID, err)
	}
}

// cacheThumbnail downloads the remote thumbnail, validates that it decodes
// as a real image of reasonable size, and re-hosts it in object storage.
func (s *ClipService) cacheThumbnail(ctx context.Context, clipID, rawURL string) (string, error) {
	resp, err := s.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("thumbnail fetch failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", fmt.Errorf("thumbnail fetch returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 || len(body) > thumbnailMaxBytes {
		return "", fmt.Errorf("thumbnail size %d out of bounds", len(body))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("thumbnail is not a decodable image: %w", err)
	}
	if cfg.Width < thumbnailMinEdge || cfg.Height < thumbnailMinEdge {
		return "", fmt.Errorf("thumbnail too small: %dx%d", cfg.Width, cfg.Height)
	}

	key := thumbnailKey(clipID)
	contentType := "image/" + format
	if err := s.store.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), contentType); err != nil {
		return "", fmt.Errorf("thumbnail upload failed: %w", err)
	}

	logger.With(logger.Fields{logger.FieldSize: len(body)}).
		Debug(ctx, "thumbnail cached: %s (%s %dx%d)", key, format, cfg.Width, cfg.Height)
	return s.store.GetURL(key), nil
}

func thumbnailKey(clipID string) string {
	return "thumbs/" + clipID
}
