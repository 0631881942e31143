package main

import (
	"context"
	"time"

	"github.com/stafflow-io/staffing-backend/config"
	"github.com/stafflow-io/staffing-backend/internal/bootstrap"
	"github.com/stafflow-io/staffing-backend/internal/staffing/cache"
	cronjob "github.com/stafflow-io/staffing-backend/internal/staffing/cron"
	"github.com/stafflow-io/staffing-backend/internal/staffing/repository"
	"github.com/stafflow-io/staffing-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, name cache disabled")
		rdb = nil
	}

	names := cache.NewNameCache(rdb,
		repository.NewConsultantRepo(pool),
		repository.NewRoleRepo(pool),
		repository.NewProjectRepo(pool),
	)

	cronjob.NewScheduler(pool, names).Start()

	logger.Info().Msg("worker running")
	select {}
}
