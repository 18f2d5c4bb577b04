package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clipbook/clipbook/internal/api/middleware"
	"github.com/clipbook/clipbook/internal/service"
)

// ClipHandler handles clip CRUD and playlist membership endpoints.
type ClipHandler struct {
	clipService   *service.ClipService
	searchService *service.SearchService
}

// NewClipHandler creates a new clip handler.
func NewClipHandler(clipService *service.ClipService, searchService *service.SearchService) *ClipHandler {
	return &ClipHandler{
		clipService:   clipService,
		searchService: searchService,
	}
}

// Save handles POST /api/v1/clips.
func (h *ClipHandler) Save(c *gin.Context) {
	var req service.SaveClipInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	clip, err := h.clipService.Save(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save clip: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, clip)
}

// List handles GET /api/v1/clips. An optional playlist_id query scopes the
// listing to one playlist.
func (h *ClipHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	clips, err := h.clipService.List(c.Request.Context(), middleware.UserID(c), c.Query("playlist_id"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list clips: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clips": clips,
		"total": len(clips),
	})
}

// Get handles GET /api/v1/clips/:id.
func (h *ClipHandler) Get(c *gin.Context) {
	clip, err := h.clipService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get clip: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, clip)
}

// Update handles PATCH /api/v1/clips/:id.
func (h *ClipHandler) Update(c *gin.Context) {
	var req service.UpdateClipInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	clip, err := h.clipService.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update clip: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, clip)
}

// Delete handles DELETE /api/v1/clips/:id.
func (h *ClipHandler) Delete(c *gin.Context) {
	err := h.clipService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete clip: " + err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// AttachPlaylist handles POST /api/v1/clips/:id/playlists/:playlistId.
func (h *ClipHandler) AttachPlaylist(c *gin.Context) {
	clip, err := h.clipService.AddToPlaylist(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("playlistId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to attach clip: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, clip)
}

// DetachPlaylist handles DELETE /api/v1/clips/:id/playlists/:playlistId.
func (h *ClipHandler) DetachPlaylist(c *gin.Context) {
	clip, err := h.clipService.RemoveFromPlaylist(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("playlistId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to detach clip: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, clip)
}

// SemanticSearch handles GET /api/v1/clips/search.
func (h *ClipHandler) SemanticSearch(c *gin.Context) {
	if !h.searchService.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Semantic search is not configured",
		})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'q' is required",
		})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := h.searchService.Search(c.Request.Context(), middleware.UserID(c), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Search failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}
