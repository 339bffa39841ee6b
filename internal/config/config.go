// Package config loads the server configuration from config/server.yaml with
// environment-variable overrides for deployment secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nemesis-app/nemesis-server/internal/insight"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	AuditLogPath    string        `yaml:"audit_log_path"`
}

// DatabaseConfig holds the Postgres connection settings. An empty DSN runs
// the server on in-memory stores.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// AuthConfig holds the token-signing settings.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	Issuer   string        `yaml:"issuer"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// RateLimitConfig bounds per-client request rates.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LoggingConfig selects the log output format and verbosity.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Insights  insight.Config  `yaml:"insights"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Auth: AuthConfig{
			Issuer:   "nemesis-server",
			TokenTTL: 7 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads config/server.yaml relative to the working directory. A missing
// file is not an error; defaults plus environment overrides apply.
func Load() (Config, error) {
	return LoadFromPath(filepath.Join("config", "server.yaml"))
}

// LoadFromPath reads the configuration from a specific file and applies
// environment overrides on top.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays NEMESIS_* environment variables. Secrets are expected to
// arrive this way in deployments rather than living in the YAML file.
func (c *Config) applyEnv() {
	overrideString(&c.Server.Addr, "NEMESIS_ADDR")
	overrideString(&c.Server.AuditLogPath, "NEMESIS_AUDIT_LOG")
	overrideString(&c.Database.DSN, "DATABASE_URL")
	overrideString(&c.Auth.Secret, "NEMESIS_AUTH_SECRET")
	overrideString(&c.Auth.Issuer, "NEMESIS_AUTH_ISSUER")
	overrideString(&c.Logging.Level, "NEMESIS_LOG_LEVEL")
	overrideString(&c.Logging.Format, "NEMESIS_LOG_FORMAT")
	overrideString(&c.Insights.APIKey, "GEMINI_API_KEY")
	overrideString(&c.Insights.Model, "GEMINI_MODEL")
	overrideString(&c.Insights.BaseURL, "GEMINI_BASE_URL")
	overrideFloat(&c.RateLimit.RequestsPerSecond, "NEMESIS_RATE_LIMIT_RPS")
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func (c *Config) validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required (set auth.secret or NEMESIS_AUTH_SECRET)")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = int(c.RateLimit.RequestsPerSecond * 2)
	}
	return nil
}
