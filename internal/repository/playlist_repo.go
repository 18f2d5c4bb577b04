package repository

import (
	"context"

	"github.com/clipbook/clipbook/internal/domain"
	"gorm.io/gorm"
)

// PlaylistRepository handles playlist data operations.
type PlaylistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a new PlaylistRepository.
func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist record.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

// GetByID retrieves a playlist owned by the user.
func (r *PlaylistRepository) GetByID(ctx context.Context, userID, id string) (*domain.Playlist, error) {
	var playlist domain.Playlist
	if err := r.db.WithContext(ctx).
		First(&playlist, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByUser retrieves all playlists of the user ordered by creation time.
func (r *PlaylistRepository) ListByUser(ctx context.Context, userID string) ([]domain.Playlist, error) {
	var playlists []domain.Playlist
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&playlists).Error; err != nil {
		return nil, err
	}
	return playlists, nil
}

// Delete removes a playlist owned by the user.
func (r *PlaylistRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Playlist{}, "id = ? AND user_id = ?", id, userID).Error
}
