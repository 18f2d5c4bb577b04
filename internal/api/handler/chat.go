package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clipbook/clipbook/internal/api/middleware"
	"github.com/clipbook/clipbook/internal/service"
)

// ChatHandler handles the assistant chat endpoints.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Message    string `json:"message"`
	Prompt     string `json:"prompt"` // accepted alias for message
	PlaylistID string `json:"playlist_id"`
}

// Send handles POST /api/v1/chat.
func (h *ChatHandler) Send(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	message := req.Message
	if message == "" {
		message = req.Prompt
	}

	result, err := h.chatService.Send(c.Request.Context(), middleware.UserID(c), req.PlaylistID, message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Chat failed: " + err.Error(),
		})
		return
	}

	if result.RateLimited {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many messages, slow down a little.",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// History handles GET /api/v1/chat/history. An optional limit query caps the
// number of returned messages.
func (h *ChatHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	messages, err := h.chatService.History(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load history: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}
