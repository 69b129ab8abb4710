package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/partsfinder-backend/api/responses"
	"github.com/angelmondragon/partsfinder-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is satisfied by the db and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PartsFinder-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis. Either failing yields 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PartsFinder-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{"db": "ok", "redis": "ok"}
		failed := false
		for name, p := range map[string]Pinger{"db": dbP, "redis": redisP} {
			if p == nil {
				checks[name] = "unconfigured"
				failed = true
				continue
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "unavailable"
				failed = true
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"check": name, "error": err.Error()}), "health.ready_check_failed")
				}
			}
		}

		if failed {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
