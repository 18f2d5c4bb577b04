package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipbook/clipbook/internal/api"
	"github.com/clipbook/clipbook/internal/config"
	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/ratelimit"
	"github.com/clipbook/clipbook/internal/repository"
	"github.com/clipbook/clipbook/internal/service"
	"github.com/clipbook/clipbook/internal/source"
	"github.com/clipbook/clipbook/internal/source/dailymotion"
	"github.com/clipbook/clipbook/internal/source/youtube"
	"github.com/clipbook/clipbook/internal/storage"
)

func main() {
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Support CONFIG_PATH environment variable for production deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	clipRepo := repository.NewClipRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	conversationRepo := repository.NewConversationRepository(db)

	ctx := context.Background()

	// Optional: vector index for semantic library search
	var vectorRepo *repository.ClipVectorRepository
	var embedder service.EmbeddingProvider
	if cfg.Qdrant.Enabled {
		vectorRepo, err = repository.NewClipVectorRepository(&repository.QdrantConnectionConfig{
			Host:            cfg.Qdrant.Host,
			Port:            cfg.Qdrant.Port,
			Collection:      cfg.Qdrant.Collection,
			APIKey:          cfg.Qdrant.APIKey,
			UseTLS:          cfg.Qdrant.UseTLS,
			VectorDimension: cfg.Embedding.Dimensions,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize vector repository")
		}
		defer vectorRepo.Close()

		if err := vectorRepo.EnsureCollection(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure vector collection")
		}

		embedder, err = service.NewEmbeddingProvider(&cfg.Embedding)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize embedding provider")
		}
	}

	// Optional: object storage for thumbnail caching
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewStorage(&storage.S3Config{
			Type:      storage.StorageType(cfg.Storage.Type),
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize storage")
		}
		if s3, ok := s3Storage.(*storage.S3Storage); ok {
			if err := s3.EnsureBucket(ctx); err != nil {
				appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
			}
		}
		objectStorage = s3Storage
	}

	var limiter ratelimit.Limiter
	switch cfg.RateLimit.Backend {
	case "database":
		limiter = ratelimit.NewStoreLimiter(repository.NewRateBucketRepository(db), cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	default:
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	}

	responder, err := service.NewResponder(cfg)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize responder")
	}
	appLogger.WithField("responder", cfg.Assistant.Responder).Info("Assistant responder selected")

	contextBuilder := service.NewContextBuilder(clipRepo, playlistRepo, service.ContextBuilderConfig{
		MaxClips:        cfg.Assistant.ContextMaxClips,
		MaxChars:        cfg.Assistant.ContextMaxChars,
		SnippetMaxChars: cfg.Assistant.SnippetMaxChars,
	})

	var sources []source.Source
	if cfg.Sources.YouTube.Enabled && cfg.Sources.YouTube.APIKey != "" {
		sources = append(sources, youtube.NewAdapter(cfg.Sources.YouTube.APIKey))
	}
	if cfg.Sources.Dailymotion.Enabled {
		sources = append(sources, dailymotion.NewAdapter())
	}

	router := api.SetupRouter(&cfg.Server, api.Services{
		Chat:        service.NewChatService(conversationRepo, limiter, contextBuilder, responder, cfg.Assistant.HistoryPageSize),
		Clips:       service.NewClipService(clipRepo, vectorRepo, embedder, objectStorage),
		Playlists:   service.NewPlaylistService(playlistRepo, clipRepo),
		Search:      service.NewSearchService(clipRepo, vectorRepo, embedder),
		VideoSearch: service.NewVideoSearchService(sources),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
