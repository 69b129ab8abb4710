package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/partsfinder-backend/internal/backfill"
	"github.com/angelmondragon/partsfinder-backend/internal/cron"
	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/internal/vehicles"
	"github.com/angelmondragon/partsfinder-backend/pkg/config"
	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/instance"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/angelmondragon/partsfinder-backend/pkg/metrics"
	"github.com/angelmondragon/partsfinder-backend/pkg/migrate"
	"github.com/angelmondragon/partsfinder-backend/pkg/redis"
)

const lockName = "cron-worker"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	matcher, err := matching.NewFromCatalog(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to build matcher", err)
		os.Exit(1)
	}

	vehicleType, err := enums.ParseVehicleType(cfg.Backfill.VehicleType)
	if err != nil {
		logg.Error(context.Background(), "invalid backfill vehicle type", err)
		os.Exit(1)
	}

	backfiller, err := backfill.New(backfill.Params{
		Logger:      logg,
		Store:       vehicles.NewRepository(dbClient.DB()),
		Matcher:     matcher,
		Metrics:     metrics.NewMatchMetrics(prometheus.DefaultRegisterer),
		VehicleType: vehicleType,
		ApplyFuzzy:  cfg.Backfill.ApplyFuzzy,
		DryRun:      cfg.Backfill.DryRun,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create backfiller", err)
		os.Exit(1)
	}

	backfillJob, err := cron.NewBackfillJob(cron.BackfillJobParams{Logger: logg, Runner: backfiller})
	if err != nil {
		logg.Error(context.Background(), "failed to create backfill job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, lockKey(redisClient, cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(backfillJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Backfill.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"instance":    instance.GetID(),
		"interval":    cfg.Backfill.Interval.String(),
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(client *redis.Client, env string) string {
	if env == "" {
		env = "local"
	}
	return client.LockKey(lockName, env)
}

