package config

// EnvPrefix is the envconfig prefix applied when processing Config.
// Every variable below already carries it explicitly so the names here
// stay usable in error messages and tests.
const EnvPrefix = "ESHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "ESHOP_APP_ENV"
	EnvPort         = "ESHOP_APP_PORT"
	EnvLogLevel     = "ESHOP_LOG_LEVEL"
	EnvLogWarnStack = "ESHOP_LOG_WARN_STACK"

	EnvDBDSN      = "ESHOP_DB_DSN"
	EnvDBHost     = "ESHOP_DB_HOST"
	EnvDBPort     = "ESHOP_DB_PORT"
	EnvDBUser     = "ESHOP_DB_USER"
	EnvDBPassword = "ESHOP_DB_PASSWORD"
	EnvDBName     = "ESHOP_DB_NAME"
	EnvDBSSLMode  = "ESHOP_DB_SSLMODE"

	EnvRedisURL = "ESHOP_REDIS_URL"

	EnvJWTSecret              = "ESHOP_JWT_SECRET"
	EnvJWTIssuer              = "ESHOP_JWT_ISSUER"
	EnvJWTExpMins             = "ESHOP_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "ESHOP_REFRESH_TOKEN_TTL_MINUTES"

	EnvUploadDir = "ESHOP_UPLOAD_DIR"
)
