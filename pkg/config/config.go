package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Storage  StorageConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ESHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"ESHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ESHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ESHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ESHOP_DB_DSN"`

	Host     string `envconfig:"ESHOP_DB_HOST"`
	Port     int    `envconfig:"ESHOP_DB_PORT" default:"5432"`
	User     string `envconfig:"ESHOP_DB_USER"`
	Password string `envconfig:"ESHOP_DB_PASSWORD"`
	Name     string `envconfig:"ESHOP_DB_NAME"`
	SSLMode  string `envconfig:"ESHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"ESHOP_DB_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, val := range map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	} {
		if val == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("database config incomplete: set %s or %s", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     db.Name,
		RawQuery: "sslmode=" + db.SSLMode,
	}
	db.DSN = dsn.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"ESHOP_REDIS_URL" required:"true"`
	Password     string        `envconfig:"ESHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ESHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ESHOP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ESHOP_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ESHOP_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ESHOP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ESHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ESHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ESHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ESHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ESHOP_ARGON_KEY_LEN" default:"32"`
}

type StorageConfig struct {
	UploadDir    string `envconfig:"ESHOP_UPLOAD_DIR" default:"uploads"`
	MaxUploadMB  int64  `envconfig:"ESHOP_MAX_UPLOAD_MB" default:"10"`
	PublicPrefix string `envconfig:"ESHOP_UPLOAD_PUBLIC_PREFIX" default:"/media"`
}
