package main

import (
	"context"
	"time"

	"github.com/stafflow-io/staffing-backend/config"
	"github.com/stafflow-io/staffing-backend/internal/bootstrap"
	"github.com/stafflow-io/staffing-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	sqlDB, err := bootstrap.OpenSQLDB(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open sql connection")
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		// redis only backs the name cache; lookups fall through to postgres
		logger.Warn().Err(err).Msg("redis unavailable, name cache disabled")
		rdb = nil
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "staffing-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       rdb,
		RateLimit:   cfg.RateLimit,
	})

	logger.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("starting api server")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
