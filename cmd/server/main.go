package main

import (
	"context"

	"simtrack-svr/internal/config"
	"simtrack-svr/internal/dispatcher"
	"simtrack-svr/internal/identity"
	"simtrack-svr/internal/link"
	"simtrack-svr/internal/observability"
	"simtrack-svr/internal/pipeline"
	"simtrack-svr/internal/server"
	"simtrack-svr/internal/store"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	logger.Info("Starting simtrack-svr...", "port", cfg.HTTPPort)

	ctx := context.Background()

	pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Postgres init failed", "error", err)
		return
	}
	defer pg.Close()

	// The latest-position cache is optional; the service degrades to
	// history-head lookups without it.
	var cache *store.Cache
	if cfg.RedisAddr != "" {
		cache, err = store.NewCache(cfg.RedisAddr, cfg.RedisDB, cfg.LatestTTL)
		if err != nil {
			logger.Warn("Redis init failed, running without latest cache", "error", err)
			cache = nil
		}
	}

	link.Init(cfg.FeedAddr, logger)

	go observability.StartMetricsServer(cfg.MetricsPort)

	asm := pipeline.NewAssembler(identity.NewULID())
	svc := dispatcher.New(pg, cache, asm, logger)

	if err := server.Start(":"+cfg.HTTPPort, svc, logger); err != nil {
		logger.Error("HTTP server failed", "error", err)
	}
}
