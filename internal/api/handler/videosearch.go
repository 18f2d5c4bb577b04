package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clipbook/clipbook/internal/service"
)

// VideoSearchHandler handles external video discovery endpoints.
type VideoSearchHandler struct {
	videoSearch *service.VideoSearchService
}

// NewVideoSearchHandler creates a new video search handler.
func NewVideoSearchHandler(videoSearch *service.VideoSearchService) *VideoSearchHandler {
	return &VideoSearchHandler{videoSearch: videoSearch}
}

// Search handles GET /api/v1/videos/search.
func (h *VideoSearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'q' is required",
		})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := h.videoSearch.Search(c.Request.Context(), c.Query("provider"), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Video search failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providers": results,
	})
}
