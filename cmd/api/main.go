package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/partsfinder-backend/api"
	"github.com/angelmondragon/partsfinder-backend/api/routes"
	"github.com/angelmondragon/partsfinder-backend/internal/compatibility"
	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/internal/vehicles"
	"github.com/angelmondragon/partsfinder-backend/pkg/config"
	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/instance"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/angelmondragon/partsfinder-backend/pkg/metrics"
	"github.com/angelmondragon/partsfinder-backend/pkg/migrate"
	"github.com/angelmondragon/partsfinder-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	vehiclesRepo := vehicles.NewRepository(dbClient.DB())

	if cfg.FeatureFlags.SeedBrands {
		seeder, err := vehicles.NewSeeder(vehiclesRepo, dbClient, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create brand seeder", err)
			os.Exit(1)
		}
		if _, err := seeder.SeedBrandsFile(context.Background(), cfg.Catalog.BrandsFile); err != nil {
			logg.Error(context.Background(), "failed to seed brands", err)
			os.Exit(1)
		}
	}

	matcher, err := matching.NewFromCatalog(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to build matcher", err)
		os.Exit(1)
	}

	compatRepo := compatibility.NewRepository(dbClient.DB())
	resolvers, err := compatibility.NewResolvers(compatRepo, matcher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build resolvers", err)
		os.Exit(1)
	}

	compatService, err := compatibility.NewService(compatibility.ServiceParams{
		Vehicles:  vehiclesRepo,
		Resolvers: resolvers,
		Logger:    logg,
		Metrics:   metrics.NewResolverMetrics(prometheus.DefaultRegisterer),
		Cache:     redisClient,
		CacheTTL:  cfg.Catalog.CacheTTL,
		Timeout:   cfg.Catalog.ResolverTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create compatibility service", err)
		os.Exit(1)
	}

	vehiclesService, err := vehicles.NewService(vehiclesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicles service", err)
		os.Exit(1)
	}

	filterService, err := compatibility.NewFilterCompatibilityService(compatRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create filter compatibility service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: api.NewHandler(routes.Params{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Compatibility: compatService,
			Vehicles:      vehiclesService,
			Filters:       filterService,
			Gatherer:      prometheus.DefaultGatherer,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}

	logg.Info(ctx, "api server stopped")
}
