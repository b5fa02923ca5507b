package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/vidtube/internal/api"
	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/logging"
	"github.com/dom/vidtube/internal/media"
	"github.com/dom/vidtube/internal/repository/mongodb"
	"github.com/dom/vidtube/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Environment)
	slog.SetDefault(logger)

	ctx := context.Background()

	// Initialize database
	db, err := mongodb.NewConnection(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()

	// Initialize repositories
	repos := mongodb.NewRepositories(db)

	// Initialize media store
	store, err := media.NewS3Store(ctx, cfg.ObjectStore, media.NewFFProbe(cfg.FFProbePath))
	if err != nil {
		logger.Error("failed to configure media store", "error", err)
		os.Exit(1)
	}

	// Initialize services
	services := service.NewServices(repos, store, cfg)

	// Initialize router
	router := api.NewRouter(services, cfg, logger)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server stopped")
}
