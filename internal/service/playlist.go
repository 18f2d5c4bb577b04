package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/repository"
)

// PlaylistService manages user playlists. Membership lives on the clip side,
// so deleting a playlist cascades into detaching it from every clip.
type PlaylistService struct {
	playlists *repository.PlaylistRepository
	clips     *repository.ClipRepository
}

func NewPlaylistService(playlists *repository.PlaylistRepository, clips *repository.ClipRepository) *PlaylistService {
	return &PlaylistService{
		playlists: playlists,
		clips:     clips,
	}
}

// Create makes a new named playlist for the user.
func (s *PlaylistService) Create(ctx context.Context, userID, name string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("playlist name must not be empty")
	}

	playlist := &domain.Playlist{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return playlist, nil
}

// Get retrieves a single owned playlist.
func (s *PlaylistService) Get(ctx context.Context, userID, id string) (*domain.Playlist, error) {
	return s.playlists.GetByID(ctx, userID, id)
}

// List returns all of the user's playlists.
func (s *PlaylistService) List(ctx context.Context, userID string) ([]domain.Playlist, error) {
	return s.playlists.ListByUser(ctx, userID)
}

// Delete removes a playlist and detaches it from every clip that referenced
// it. The clips themselves survive.
func (s *PlaylistService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.playlists.GetByID(ctx, userID, id); err != nil {
		return err
	}
	if err := s.clips.RemovePlaylistFromClips(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to detach playlist from clips: %w", err)
	}
	if err := s.playlists.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	logger.CtxInfo(ctx, "playlist deleted: %s", id)
	return nil
}
