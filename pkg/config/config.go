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
	DB           DBConfig
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
	if err := cfg.App.validateTenants(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"SHOPLEDGER_APP_ENV" required:"true"`
	Port         string   `envconfig:"SHOPLEDGER_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"SHOPLEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"SHOPLEDGER_LOG_WARN_STACK" default:"false"`
	Tenants      []string `envconfig:"SHOPLEDGER_TENANTS" default:"kevin,aya"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// IsTenant reports whether owner belongs to the configured tenant set.
func (a AppConfig) IsTenant(owner string) bool {
	for _, tenant := range a.Tenants {
		if strings.EqualFold(tenant, owner) {
			return true
		}
	}
	return false
}

func (a AppConfig) validateTenants() error {
	if len(a.Tenants) == 0 {
		return fmt.Errorf("at least one tenant is required")
	}
	for _, tenant := range a.Tenants {
		if strings.TrimSpace(tenant) == "" {
			return fmt.Errorf("tenant names cannot be blank")
		}
	}
	return nil
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPLEDGER_DB_DSN"`
	Driver string `envconfig:"SHOPLEDGER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPLEDGER_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPLEDGER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPLEDGER_DB_USER"`
	LegacyPassword string `envconfig:"SHOPLEDGER_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPLEDGER_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPLEDGER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPLEDGER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPLEDGER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPLEDGER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPLEDGER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPLEDGER_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPLEDGER_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.Driver == DriverSQLite {
		if db.DSN == "" {
			return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
		}
		return nil
	}

	if db.DSN != "" {
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
