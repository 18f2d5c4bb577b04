package api

import (
	"github.com/gin-gonic/gin"

	"github.com/clipbook/clipbook/internal/api/handler"
	"github.com/clipbook/clipbook/internal/api/middleware"
	"github.com/clipbook/clipbook/internal/config"
	"github.com/clipbook/clipbook/internal/service"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Chat        *service.ChatService
	Clips       *service.ClipService
	Playlists   *service.PlaylistService
	Search      *service.SearchService
	VideoSearch *service.VideoSearchService
}

// SetupRouter configures the Gin router with all routes.
func SetupRouter(cfg *config.ServerConfig, svcs Services) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))

	healthHandler := handler.NewHealthHandler()
	chatHandler := handler.NewChatHandler(svcs.Chat)
	clipHandler := handler.NewClipHandler(svcs.Clips, svcs.Search)
	playlistHandler := handler.NewPlaylistHandler(svcs.Playlists)
	videoSearchHandler := handler.NewVideoSearchHandler(svcs.VideoSearch)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes, all scoped to the acting user
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequireUser())
	{
		// Assistant chat
		v1.POST("/chat", chatHandler.Send)
		v1.GET("/chat/history", chatHandler.History)

		// Clips
		v1.POST("/clips", clipHandler.Save)
		v1.GET("/clips", clipHandler.List)
		v1.GET("/clips/search", clipHandler.SemanticSearch)
		v1.GET("/clips/:id", clipHandler.Get)
		v1.PATCH("/clips/:id", clipHandler.Update)
		v1.DELETE("/clips/:id", clipHandler.Delete)
		v1.POST("/clips/:id/playlists/:playlistId", clipHandler.AttachPlaylist)
		v1.DELETE("/clips/:id/playlists/:playlistId", clipHandler.DetachPlaylist)

		// Playlists
		v1.POST("/playlists", playlistHandler.Create)
		v1.GET("/playlists", playlistHandler.List)
		v1.GET("/playlists/:id", playlistHandler.Get)
		v1.DELETE("/playlists/:id", playlistHandler.Delete)

		// External video discovery
		v1.GET("/videos/search", videoSearchHandler.Search)
	}

	return r
}
