package config

const (
	// EnvPrefix scopes every envconfig lookup.
	EnvPrefix = "CATALOGO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "CATALOGO_APP_ENV"
	EnvPort     = "CATALOGO_APP_PORT"
	EnvRedisURL = "CATALOGO_REDIS_URL"

	EnvDBDSN  = "CATALOGO_DB_DSN"
	EnvDBHost = "CATALOGO_DB_HOST"
	EnvDBUser = "CATALOGO_DB_USER"
	EnvDBName = "CATALOGO_DB_NAME"
)
