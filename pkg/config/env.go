package config

// EnvPrefix is handed to envconfig; every field carries its full name.
const EnvPrefix = "PARTSFINDER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:partsfinder.db?cache=shared&_fk=1"
)

const (
	EnvAppEnv   = "PARTSFINDER_APP_ENV"
	EnvPort     = "PARTSFINDER_APP_PORT"
	EnvLogLvl   = "PARTSFINDER_LOG_LEVEL"
	EnvUseSQL   = "PARTSFINDER_USE_SQLITE"
	EnvDBDSN    = "PARTSFINDER_DB_DSN"
	EnvDBHost   = "PARTSFINDER_DB_HOST"
	EnvDBPort   = "PARTSFINDER_DB_PORT"
	EnvDBUser   = "PARTSFINDER_DB_USER"
	EnvDBPass   = "PARTSFINDER_DB_PASSWORD"
	EnvDBName   = "PARTSFINDER_DB_NAME"
	EnvDBSSL    = "PARTSFINDER_DB_SSLMODE"
	EnvRedisURL = "PARTSFINDER_REDIS_URL"

	EnvCatalogBrandsFile      = "PARTSFINDER_CATALOG_BRANDS_FILE"
	EnvCatalogResolverTimeout = "PARTSFINDER_CATALOG_RESOLVER_TIMEOUT"
	EnvCatalogFuzzyThreshold  = "PARTSFINDER_CATALOG_FUZZY_THRESHOLD"
	EnvCatalogCacheTTL        = "PARTSFINDER_CATALOG_CACHE_TTL"

	EnvBackfillVehicleType = "PARTSFINDER_BACKFILL_VEHICLE_TYPE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
