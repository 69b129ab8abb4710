package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/partsfinder-backend/internal/backfill"
	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/internal/vehicles"
	"github.com/angelmondragon/partsfinder-backend/pkg/config"
	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/angelmondragon/partsfinder-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "backfill"})

	_ = godotenv.Load()

	vehicleTypeFlag := flag.String("vehicle-type", "", "vehicle type to backfill: car|moto (defaults to config)")
	dryRun := flag.Bool("dry-run", false, "report decisions without writing")
	applyFuzzy := flag.Bool("apply-fuzzy", false, "also link models matched by the fuzzy strategy")
	reportPath := flag.String("report", "", "write the JSON report to this path ('-' for stdout)")

	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "backfill",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	rawType := *vehicleTypeFlag
	if rawType == "" {
		rawType = cfg.Backfill.VehicleType
	}
	vehicleType, err := enums.ParseVehicleType(rawType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -vehicle-type %q\n", rawType)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"vehicle_type": vehicleType.String(),
		"dry_run":      *dryRun || cfg.Backfill.DryRun,
		"apply_fuzzy":  *applyFuzzy || cfg.Backfill.ApplyFuzzy,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	matcher, err := matching.NewFromCatalog(cfg.Catalog)
	requireResource(ctx, logg, "matcher", err)

	backfiller, err := backfill.New(backfill.Params{
		Logger:      logg,
		Store:       vehicles.NewRepository(dbClient.DB()),
		Matcher:     matcher,
		Metrics:     metrics.NewMatchMetrics(prometheus.NewRegistry()),
		VehicleType: vehicleType,
		ApplyFuzzy:  *applyFuzzy || cfg.Backfill.ApplyFuzzy,
		DryRun:      *dryRun || cfg.Backfill.DryRun,
	})
	requireResource(ctx, logg, "backfiller", err)

	report, runErr := backfiller.Run(ctx)
	if report != nil {
		if err := writeReport(*reportPath, report); err != nil {
			logg.Error(ctx, "failed to write backfill report", err)
		}
	}
	if runErr != nil {
		logg.Error(ctx, "backfill finished with errors", runErr)
		os.Exit(1)
	}
}

func writeReport(path string, report *backfill.Report) error {
	switch path {
	case "":
		return nil
	case "-":
		return report.WriteJSON(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := report.WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
