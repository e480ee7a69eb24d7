package config

const (
	EnvPrefix = "VIANDAS"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "VIANDAS_APP_ENV"
	EnvPort       = "VIANDAS_APP_PORT"
	EnvDBDSN      = "VIANDAS_DB_DSN"
	EnvDBHost     = "VIANDAS_DB_HOST"
	EnvDBUser     = "VIANDAS_DB_USER"
	EnvDBName     = "VIANDAS_DB_NAME"
	EnvRedisURL   = "VIANDAS_REDIS_URL"
	EnvJWTSecret  = "VIANDAS_JWT_SECRET"
	EnvJWTIssuer  = "VIANDAS_JWT_ISSUER"
	EnvJWTExpMins = "VIANDAS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
