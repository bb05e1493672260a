package config

// EnvPrefix is applied to every envconfig lookup.
const EnvPrefix = "ambcrm"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error text).
const (
	EnvAppEnv = "AMBCRM_APP_ENV"
	EnvPort   = "AMBCRM_APP_PORT"

	EnvDBDSN  = "AMBCRM_DB_DSN"
	EnvDBHost = "AMBCRM_DB_HOST"
	EnvDBUser = "AMBCRM_DB_USER"
	EnvDBName = "AMBCRM_DB_NAME"

	EnvRedisURL = "AMBCRM_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
