package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clipbook/clipbook/internal/logger"
)

// UserIDKey is the gin context key holding the acting user's id.
const UserIDKey = "user_id"

// userIDHeader identifies the acting user. ClipBook is a personal app
// behind a trusted frontend, so the header is taken at face value.
const userIDHeader = "X-User-ID"

// RequireUser rejects requests without a user id and propagates the id into
// both the gin context and the request-scoped logger.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + userIDHeader + " header",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(logger.SetUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// UserID returns the acting user's id set by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
