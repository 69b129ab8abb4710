package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Catalog      CatalogConfig
	RateLimit    RateLimitConfig
	Backfill     BackfillConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PARTSFINDER_APP_ENV" required:"true"`
	Port         string `envconfig:"PARTSFINDER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PARTSFINDER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PARTSFINDER_LOG_WARN_STACK" default:"false"`

	// CORSOrigins is a comma separated allow-list for browser clients.
	CORSOrigins []string `envconfig:"PARTSFINDER_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PARTSFINDER_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"PARTSFINDER_DB_DSN"`
	Driver string `envconfig:"PARTSFINDER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PARTSFINDER_DB_HOST"`
	LegacyPort     int    `envconfig:"PARTSFINDER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PARTSFINDER_DB_USER"`
	LegacyPassword string `envconfig:"PARTSFINDER_DB_PASSWORD"`
	LegacyName     string `envconfig:"PARTSFINDER_DB_NAME"`
	LegacySSLMode  string `envconfig:"PARTSFINDER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PARTSFINDER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PARTSFINDER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PARTSFINDER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PARTSFINDER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"PARTSFINDER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PARTSFINDER_REDIS_ADDR"`
	Password     string        `envconfig:"PARTSFINDER_REDIS_PASSWORD"`
	DB           int           `envconfig:"PARTSFINDER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PARTSFINDER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PARTSFINDER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PARTSFINDER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PARTSFINDER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PARTSFINDER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PARTSFINDER_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PARTSFINDER_AUTO_MIGRATE" default:"false"`
	SeedBrands  bool `envconfig:"PARTSFINDER_SEED_BRANDS" default:"false"`
}

// CatalogConfig tunes the compatibility engine.
type CatalogConfig struct {
	BrandsFile          string        `envconfig:"PARTSFINDER_CATALOG_BRANDS_FILE" default:"data/brands.json"`
	ReferenceModelsFile string        `envconfig:"PARTSFINDER_CATALOG_REFERENCE_MODELS_FILE"`
	ResolverTimeout     time.Duration `envconfig:"PARTSFINDER_CATALOG_RESOLVER_TIMEOUT" default:"3s"`
	FuzzyThreshold      float64       `envconfig:"PARTSFINDER_CATALOG_FUZZY_THRESHOLD" default:"0.7"`
	CacheTTL            time.Duration `envconfig:"PARTSFINDER_CATALOG_CACHE_TTL" default:"0s"`
}

func (c CatalogConfig) validate() error {
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %v", EnvCatalogFuzzyThreshold, c.FuzzyThreshold)
	}
	if c.ResolverTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvCatalogResolverTimeout)
	}
	return nil
}

// RateLimitConfig bounds public API traffic per client IP.
type RateLimitConfig struct {
	Window time.Duration `envconfig:"PARTSFINDER_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"PARTSFINDER_RATE_LIMIT_LIMIT" default:"120"`
}

// BackfillConfig drives the model to brand backfill job.
type BackfillConfig struct {
	Interval    time.Duration `envconfig:"PARTSFINDER_BACKFILL_INTERVAL" default:"24h"`
	VehicleType string        `envconfig:"PARTSFINDER_BACKFILL_VEHICLE_TYPE" default:"car"`
	ApplyFuzzy  bool          `envconfig:"PARTSFINDER_BACKFILL_APPLY_FUZZY" default:"false"`
	DryRun      bool          `envconfig:"PARTSFINDER_BACKFILL_DRY_RUN" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = defaultSQLiteDSN
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
