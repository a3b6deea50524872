package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planet-designer/internal/auth"
	"planet-designer/internal/middleware"
	"planet-designer/internal/planet"
	"planet-designer/internal/preset"
	"planet-designer/internal/server"
	"planet-designer/internal/shared/config"
	"planet-designer/internal/shared/database"
	"planet-designer/internal/shared/logger"
	"planet-designer/internal/shared/metrics"
	"planet-designer/internal/shared/redis"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := redis.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis", "error", err)
		}
	}()

	var cache planet.ReportCache
	if redisClient != nil {
		cache = planet.NewRedisCache(redisClient, cfg.Redis.ReportTTL, slog.Default())
	} else {
		cache = planet.NewMemoryCache(cfg.Live.ReportCacheSize)
	}

	catalog := preset.Builtin()
	if cfg.Presets.CatalogPath != "" {
		defs, err := preset.LoadFile(cfg.Presets.CatalogPath)
		if err != nil {
			return fmt.Errorf("failed to load presets: %w", err)
		}
		if err := catalog.Merge(defs); err != nil {
			return fmt.Errorf("failed to load presets: %w", err)
		}
		log.Info("Preset catalog loaded", "path", cfg.Presets.CatalogPath, "definitions", len(defs))
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		return err
	}

	m := metrics.New()
	repo := planet.NewRepository(db, slog.Default())
	planetService := planet.NewService(repo, cache, tokens, m, slog.Default())

	routes := server.NewRoutes(cfg, db, planetService, catalog, tokens, m)
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Close()
	cors := middleware.NewCORS(cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      cors.Middleware(rateLimiter.Middleware(mux)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Planet designer server starting", "addr", srv.Addr, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
