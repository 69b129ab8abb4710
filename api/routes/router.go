package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/partsfinder-backend/api/controllers"
	"github.com/angelmondragon/partsfinder-backend/api/middleware"
	"github.com/angelmondragon/partsfinder-backend/internal/compatibility"
	"github.com/angelmondragon/partsfinder-backend/internal/vehicles"
	"github.com/angelmondragon/partsfinder-backend/pkg/config"
	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

// rateLimitStore is satisfied by *redis.Client.
type rateLimitStore interface {
	Ping(ctx context.Context) error
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Params collects everything the router mounts. Gatherer defaults to the
// prometheus default registry.
type Params struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         rateLimitStore
	Compatibility compatibility.Service
	Vehicles      vehicles.Service
	Filters       compatibility.FilterCompatibilityService
	Gatherer      prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger
	gatherer := p.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	var redisPinger controllers.Pinger
	var limiter middleware.RateLimitStore
	if p.Redis != nil {
		redisPinger = p.Redis
		limiter = p.Redis
	}
	var dbPinger controllers.Pinger
	if p.DB != nil {
		dbPinger = p.DB
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	policy := middleware.NewRateLimitPolicy("public", cfg.RateLimit.Window, cfg.RateLimit.Limit)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(policy, limiter, logg))

		// legacy path kept for existing storefront clients
		r.Get("/vehicle-products/all", controllers.VehicleProducts(p.Compatibility, logg))

		r.Route("/v1", func(r chi.Router) {
			r.Get("/vehicle-products/all", controllers.VehicleProducts(p.Compatibility, logg))

			r.Route("/brands", func(r chi.Router) {
				r.Get("/", controllers.ListBrands(p.Vehicles, logg))
				r.Get("/{brandSlug}/models", controllers.ListModels(p.Vehicles, logg))
			})

			r.Route("/filter-compatibility", func(r chi.Router) {
				r.Get("/variants", controllers.FilterVariants(p.Filters, logg))
				r.Post("/match-product", controllers.FilterMatchProduct(p.Filters, logg))
			})
		})
	})

	return r
}
