package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clipbook/clipbook/internal/api/middleware"
	"github.com/clipbook/clipbook/internal/service"
)

// PlaylistHandler handles playlist endpoints.
type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

// NewPlaylistHandler creates a new playlist handler.
func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

type createPlaylistRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /api/v1/playlists.
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create playlist: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

// List handles GET /api/v1/playlists.
func (h *PlaylistHandler) List(c *gin.Context) {
	playlists, err := h.playlistService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list playlists: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playlists": playlists,
		"total":     len(playlists),
	})
}

// Get handles GET /api/v1/playlists/:id.
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlist, err := h.playlistService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get playlist: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// Delete handles DELETE /api/v1/playlists/:id. Clips in the playlist are
// detached, never deleted.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	err := h.playlistService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete playlist: " + err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
