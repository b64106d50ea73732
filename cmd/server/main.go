package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gracechapel/site-api/internal/calendar"
	"github.com/gracechapel/site-api/internal/config"
	"github.com/gracechapel/site-api/internal/feed"
	"github.com/gracechapel/site-api/internal/fetcher"
	"github.com/gracechapel/site-api/internal/handler"
	"github.com/gracechapel/site-api/internal/repository"
	"github.com/gracechapel/site-api/internal/youtube"
	"github.com/gracechapel/site-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	var pool *pgxpool.Pool
	if cfg.Database.URL != "" {
		pool, err = initDatabase(ctx, &cfg.Database)
		if err != nil {
			logger.Log.Fatal("failed to initialize database", zap.Error(err))
		}
		defer pool.Close()
		logger.Log.Info("database connection established")
	} else {
		logger.Log.Info("no database configured, announcements routes disabled")
	}

	fetch := fetcher.New(
		cfg.Fetch.MaxAttempts,
		fetcher.Backoff{Base: cfg.Fetch.BaseDelay, Max: cfg.Fetch.MaxDelay},
		cfg.Fetch.AttemptTimeout,
	)

	ytClient := youtube.NewClient(
		fetch,
		cfg.YouTube.APIKey,
		cfg.YouTube.ChannelID,
		cfg.YouTube.PlaylistID,
		cfg.YouTube.MaxUploads,
		cfg.YouTube.MaxPastLive,
		cfg.YouTube.MaxPlaylistItems,
	)
	if !ytClient.Configured() {
		logger.Log.Warn("YouTube credentials not configured, sermons feed will serve mock data")
	}

	calClient := calendar.NewClient(
		fetch,
		cfg.Calendar.APIKey,
		cfg.Calendar.CalendarID,
		cfg.Calendar.WindowDays,
		cfg.Calendar.MaxResults,
	)

	feedService := feed.NewService(ytClient, logger.Log)

	deps := handler.RouterDeps{
		Feed:          handler.NewFeedHandler(feedService),
		Calendar:      handler.NewCalendarHandler(calClient),
		Health:        handler.NewHealthHandler(pool),
		AllowedOrigin: cfg.CORS.AllowedOrigin,
		AdminAPIKeys:  cfg.Admin.APIKeys,
	}
	if pool != nil {
		deps.Announcements = handler.NewAnnouncementHandler(repository.NewAnnouncementRepository(pool))
	}

	router := handler.NewRouter(deps)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		logger.Log.Info("server stopped gracefully")
	}
}

// initDatabase initializes the database connection pool.
func initDatabase(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnIdleTime = cfg.MaxIdleTime
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
