package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BACKOFFICE_APP_ENV" default:"development"`
	Port         string `envconfig:"BACKOFFICE_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"BACKOFFICE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BACKOFFICE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"BACKOFFICE_DB_DSN"`

	MaxOpenConns    int           `envconfig:"BACKOFFICE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BACKOFFICE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BACKOFFICE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BACKOFFICE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BACKOFFICE_AUTO_MIGRATE" default:"false"`
}
