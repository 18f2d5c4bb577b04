package repository

import (
	"context"
	"fmt"

	"github.com/clipbook/clipbook/internal/domain"
	"gorm.io/gorm"
)

// ClipRepository handles clip data operations. All queries are scoped to the
// owning user.
type ClipRepository struct {
	db *gorm.DB
}

// NewClipRepository creates a new ClipRepository.
func NewClipRepository(db *gorm.DB) *ClipRepository {
	return &ClipRepository{db: db}
}

// Create inserts a new clip record.
func (r *ClipRepository) Create(ctx context.Context, clip *domain.Clip) error {
	return r.db.WithContext(ctx).Create(clip).Error
}

// Update saves an existing clip record.
func (r *ClipRepository) Update(ctx context.Context, clip *domain.Clip) error {
	return r.db.WithContext(ctx).Save(clip).Error
}

// GetByID retrieves a clip owned by the user.
func (r *ClipRepository) GetByID(ctx context.Context, userID, id string) (*domain.Clip, error) {
	var clip domain.Clip
	if err := r.db.WithContext(ctx).
		First(&clip, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &clip, nil
}

// GetByIDs retrieves the user's clips matching the given ids. Order is not
// guaranteed to follow the input.
func (r *ClipRepository) GetByIDs(ctx context.Context, userID string, ids []string) ([]domain.Clip, error) {
	if len(ids) == 0 {
		return []domain.Clip{}, nil
	}
	var clips []domain.Clip
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&clips).Error; err != nil {
		return nil, fmt.Errorf("failed to get clips by ids: %w", err)
	}
	return clips, nil
}

// ListRecent retrieves the user's most recently saved clips.
func (r *ClipRepository) ListRecent(ctx context.Context, userID string, limit, offset int) ([]domain.Clip, error) {
	var clips []domain.Clip
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&clips).Error; err != nil {
		return nil, err
	}
	return clips, nil
}

// ListByPlaylist retrieves the user's most recent clips belonging to the
// given playlist. Membership is stored as a JSON array on the clip, so the
// filter matches on the serialized id.
func (r *ClipRepository) ListByPlaylist(ctx context.Context, userID, playlistID string, limit, offset int) ([]domain.Clip, error) {
	var clips []domain.Clip
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND playlist_ids LIKE ?", userID, `%"`+playlistID+`"%`).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&clips).Error; err != nil {
		return nil, err
	}
	return clips, nil
}

// CountByUser counts the user's clips.
func (r *ClipRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Clip{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a clip owned by the user.
func (r *ClipRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Clip{}, "id = ? AND user_id = ?", id, userID).Error
}

// RemovePlaylistFromClips strips the playlist id from every clip of the user
// that references it. Clips themselves are never deleted here.
func (r *ClipRepository) RemovePlaylistFromClips(ctx context.Context, userID, playlistID string) error {
	clips, err := r.ListByPlaylist(ctx, userID, playlistID, -1, 0)
	if err != nil {
		return err
	}
	for i := range clips {
		clip := &clips[i]
		if !clip.PlaylistIDs.Contains(playlistID) {
			continue
		}
		clip.PlaylistIDs = clip.PlaylistIDs.Remove(playlistID)
		if err := r.db.WithContext(ctx).
			Model(clip).
			Update("playlist_ids", clip.PlaylistIDs).Error; err != nil {
			return fmt.Errorf("failed to detach playlist from clip %s: %w", clip.ID, err)
		}
	}
	return nil
}

// WalkAll iterates over every clip in batches, invoking fn per batch. Used by
// the reindex command.
func (r *ClipRepository) WalkAll(ctx context.Context, batchSize int, fn func(clips []domain.Clip) error) error {
	var batch []domain.Clip
	return r.db.WithContext(ctx).
		Order("created_at ASC").
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}
