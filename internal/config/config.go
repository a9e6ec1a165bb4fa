// Package config loads server and CLI settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmynk/motoledger/pkg/logging"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const devSessionSecret = "dev-secret-change-in-production"

// Config holds application configuration (env + Viper).
type Config struct {
	Env      string
	Port     string
	LogLevel slog.Level

	DBDriver    string
	DBPath      string
	DatabaseURL string

	// RedisURL selects the Redis session store; empty keeps sessions in memory.
	RedisURL      string
	SessionSecret string
	SessionTTL    time.Duration
	MaxSessions   int

	SeedExampleData bool
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads ./.env if present, then the environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom reads envFile if present, then the environment. Environment
// variables win over the file.
func LoadFrom(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !missingConfig(err) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "./data/motoledger.db")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("MAX_SESSIONS", 1024)
	v.SetDefault("SEED_EXAMPLE_DATA", false)

	cfg := &Config{
		Env:             strings.ToLower(v.GetString("APP_ENV")),
		Port:            v.GetString("PORT"),
		LogLevel:        logging.ParseLevel(v.GetString("LOG_LEVEL")),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBPath:          v.GetString("DB_PATH"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		RedisURL:        v.GetString("REDIS_URL"),
		SessionSecret:   v.GetString("SESSION_SECRET"),
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		MaxSessions:     v.GetInt("MAX_SESSIONS"),
		SeedExampleData: v.GetBool("SEED_EXAMPLE_DATA"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// missingConfig reports whether err only means there is no .env file.
func missingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}

	if c.SessionSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("SESSION_SECRET is required in production")
		}
		slog.Warn("SESSION_SECRET not set, using development secret")
		c.SessionSecret = devSessionSecret
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("MAX_SESSIONS must be positive, got %d", c.MaxSessions)
	}
	return nil
}
