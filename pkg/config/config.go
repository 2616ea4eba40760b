package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cache        CacheConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"CATALOGO_APP_ENV" required:"true"`
	Port         string `envconfig:"CATALOGO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CATALOGO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOGO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CATALOGO_DB_DSN"`
	Driver string `envconfig:"CATALOGO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CATALOGO_DB_HOST"`
	LegacyPort     int    `envconfig:"CATALOGO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CATALOGO_DB_USER"`
	LegacyPassword string `envconfig:"CATALOGO_DB_PASSWORD"`
	LegacyName     string `envconfig:"CATALOGO_DB_NAME"`
	LegacySSLMode  string `envconfig:"CATALOGO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CATALOGO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CATALOGO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOGO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CATALOGO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CATALOGO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CATALOGO_REDIS_ADDR"`
	Password     string        `envconfig:"CATALOGO_REDIS_PASSWORD"`
	DB           int           `envconfig:"CATALOGO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CATALOGO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CATALOGO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CATALOGO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CATALOGO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CATALOGO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CacheConfig struct {
	PricingSettingsTTL time.Duration `envconfig:"CATALOGO_CACHE_PRICING_SETTINGS_TTL" default:"5m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CATALOGO_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CATALOGO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CATALOGO_AUTO_MIGRATE" default:"false"`
}

// ensureDSN builds a postgres URL from the legacy host/user/name variables
// when no full DSN was provided.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	var missing []string
	for env, value := range map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.User(db.LegacyUser),
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}
	if db.LegacyPassword != "" {
		dsn.User = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}
	if db.LegacySSLMode != "" {
		query := dsn.Query()
		query.Set("sslmode", db.LegacySSLMode)
		dsn.RawQuery = query.Encode()
	}

	db.DSN = dsn.String()
	return nil
}
