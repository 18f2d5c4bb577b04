// Command reindex rebuilds the Qdrant vector index from the clip database.
// Run it after changing the embedding model or recreating the collection.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/clipbook/clipbook/internal/config"
	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/repository"
	"github.com/clipbook/clipbook/internal/service"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "clipbook-reindex",
	})
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	workers := flag.Int("workers", 4, "Number of concurrent embedding workers")
	batchSize := flag.Int("batch", 100, "Clips loaded from the database per batch")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	vectorRepo, err := repository.NewClipVectorRepository(&repository.QdrantConnectionConfig{
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := vectorRepo.EnsureCollection(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure vector collection")
	}

	embedder, err := service.NewEmbeddingProvider(&cfg.Embedding)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize embedding provider")
	}

	reindexer := service.NewReindexer(repository.NewClipRepository(db), vectorRepo, embedder)
	reindexer.Workers = *workers
	reindexer.BatchSize = *batchSize

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	stats, err := reindexer.Run(ctx)
	if err != nil {
		appLogger.WithError(err).Fatal("Reindex aborted")
	}
	appLogger.WithFields(logger.Fields{
		"indexed": stats.Indexed,
		"failed":  stats.Failed,
	}).Info("Reindex completed")
}
