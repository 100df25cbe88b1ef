package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/PizzaHomicide/hotaru/internal/catalog"
	"github.com/PizzaHomicide/hotaru/internal/config"
	"github.com/PizzaHomicide/hotaru/internal/log"
	"github.com/PizzaHomicide/hotaru/internal/player"
	"github.com/PizzaHomicide/hotaru/internal/remote"
	"github.com/PizzaHomicide/hotaru/internal/storage"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/models"
	"github.com/PizzaHomicide/hotaru/internal/version"
	"github.com/PizzaHomicide/hotaru/internal/wishlist"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// It is unrecoverable if we cannot produce an application config
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialise logger
	logger, err := log.New(log.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// Set the default global logger
	log.SetDefaultLogger(logger)

	log.Info("Starting up Hotaru", "version", version.GetVersion(), "build_time", version.GetBuildTime())

	// Local durable storage backs the wishlist and remembered selections
	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("Failed to open local storage", "error", err, "path", cfg.Storage.Path)
		_, _ = fmt.Fprintf(os.Stderr, "failed to open local storage: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	client, err := remote.NewClient(cfg.Service.URL, cfg.Service.APIKey)
	if err != nil {
		log.Error("Failed to create service client", "error", err)
		_, _ = fmt.Fprintf(os.Stderr, "failed to create service client: %v\n", err)
		os.Exit(1)
	}

	// New tokens are written back to the config file so sessions survive restarts
	auth := remote.NewAuth(client, func(token string) {
		if err := config.UpdateConfig(func(c *config.Config) { c.Auth.Token = token }); err != nil {
			log.Warn("Failed to persist auth token", "error", err)
		}
	})

	if cfg.Auth.Token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := auth.Resume(ctx, cfg.Auth.Token); err != nil {
			log.Info("Stored token is no longer valid, sign in required", "error", err)
		}
		cancel()
	}

	manager := player.NewManager(player.NewBackendFactory(cfg), remote.NewHistoryRepository(client))

	deps := models.Deps{
		Config:   cfg,
		Auth:     auth,
		Catalog:  catalog.NewService(remote.NewCatalogRepository(client)),
		Wishlist: wishlist.NewStore(db),
		Profiles: remote.NewProfileRepository(client),
		Manager:  manager,
		KV:       db,
	}

	if err := tui.Run(deps); err != nil {
		log.Error("Unhandled error while running TUI", "error", err)
		os.Exit(1)
	}

	// A session left open would orphan the player process
	manager.CloseActive()

	log.Info("Hotaru shutting down.  Goodbye!")
}
