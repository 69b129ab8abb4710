package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/partsfinder-backend/pkg/config"
	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

// MaybeRun migrates the schema at startup when the AutoMigrate flag is on.
// SQLite databases are built from the gorm models; postgres runs the goose
// migrations, and only in dev.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate || client == nil {
		return nil
	}

	if client.IsSQLite() {
		ctx = logg.WithField(ctx, "driver", config.DBDriverSQLite)
		if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migrating sqlite: %w", err)
		}
		logg.Info(ctx, "migrate.sqlite_complete")
		return nil
	}

	if !cfg.App.IsDev() {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "migrate.goose_start")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "migrate.goose_complete")
	return nil
}
