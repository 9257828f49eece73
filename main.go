package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"reelist/api"
	"reelist/config"
	"reelist/handlers"
	"reelist/internal/database"
	"reelist/services/artwork"
	"reelist/services/metadata"
	"reelist/services/similar"
	"reelist/services/tmdb"
	"reelist/services/watchlist"
	"reelist/utils"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	db, err := database.NewDB(database.Config{
		DatabasePath: filepath.Join(cfg.DataDir, "watchlist.db"),
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBImageBaseURL, nil)
	metadataSvc := metadata.NewService(cfg.OMDBAPIKey, cfg.OMDBBaseURL, nil)
	artworkSvc := artwork.NewService(tmdbClient, afero.NewOsFs(), filepath.Join(cfg.DataDir, "images"))
	similarSvc := similar.NewService(tmdbClient)

	repo := database.NewMovieRepository(db.Connection())
	watchlistSvc := watchlist.NewService(repo, metadataSvc, artworkSvc, similarSvc)

	router := utils.NewRouter()
	router.Use(api.RequestIDMiddleware(), api.LoggingMiddleware())
	handlers.NewMoviesHandler(watchlistSvc).Register(router)

	srv := &http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// Adds wait on two provider calls plus image downloads.
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

// setupLogging routes both the standard logger and slog to stderr, and to a
// rotating file when LOG_FILE is set.
func setupLogging(cfg config.Config) {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: 3,
		})
	}
	log.SetOutput(out)
	slog.SetDefault(slog.New(slog.NewTextHandler(out, nil)))
}
