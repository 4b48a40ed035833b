package main

import (
	"context"
	"log"

	"github.com/alkime/storyform/internal/config"
	"github.com/alkime/storyform/internal/content"
	"github.com/alkime/storyform/internal/logger"
	"github.com/alkime/storyform/internal/pipeline"
	"github.com/alkime/storyform/internal/server"
	"github.com/alkime/storyform/internal/session"
	"github.com/alkime/storyform/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger := logger.SetupLogger(cfg)

	// Log startup information
	logger.Info("Starting storyform server",
		"env", cfg.Env,
		"port", cfg.Port,
		"ai_provider", cfg.AIProvider,
		"storage_driver", cfg.StorageDriver,
	)

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		logger.Error("Failed to load site profile", "error", err)
		log.Fatalf("Fatal: %v", err)
	}

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to set up storage", "error", err)
		log.Fatalf("Fatal: %v", err)
	}

	completer, err := content.NewCompleter(cfg)
	if err != nil {
		// Metadata drafting degrades to a warning; publishing still works
		logger.Warn("Text generation unavailable", "error", err)
		completer = content.Unavailable{Err: err}
	}

	srv := server.New(cfg, logger, server.Deps{
		Publisher: pipeline.New(cfg, store, profile),
		Metadata:  content.NewWriter(completer),
		Sessions:  session.NewRegistry(server.SessionMaxAge),
	})

	// Start server
	if err := server.Run(srv); err != nil {
		logger.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
