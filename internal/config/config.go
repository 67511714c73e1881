// Package config loads the YAML application configuration with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment mode names.
const (
	// EnvProduction suppresses detailed error output.
	EnvProduction = "production"
	// EnvDevelopment surfaces detailed errors in logs.
	EnvDevelopment = "development"
)

// DefaultSessionLifetime applies when no lifetime is configured.
const DefaultSessionLifetime = 24 * time.Hour

// Duration accepts "24h"-style strings in YAML.
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, errParse := time.ParseDuration(strings.TrimSpace(value.Value))
	if errParse != nil {
		return fmt.Errorf("config: invalid duration %q: %w", value.Value, errParse)
	}
	*d = Duration(parsed)
	return nil
}

// LogConfig controls file logging and rotation.
type LogConfig struct {
	File       string `yaml:"file"`        // Log file path; empty logs to stderr only.
	Level      string `yaml:"level"`       // logrus level name; defaults to "info".
	MaxSizeMB  int    `yaml:"max-size"`    // Rotate after this many megabytes.
	MaxBackups int    `yaml:"max-backups"` // Rotated files to retain.
	MaxAgeDays int    `yaml:"max-age"`     // Days to retain rotated files.
}

// RedisConfig locates the session store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`     // host:port; empty selects the in-memory store.
	Password string `yaml:"password"` // Optional password.
	DB       int    `yaml:"db"`       // Logical database index.
}

// Config is the full application configuration.
type Config struct {
	Listen          string        `yaml:"listen"`           // HTTP listen address.
	DatabaseDSN     string        `yaml:"database-dsn"`     // PostgreSQL or SQLite DSN.
	Environment     string        `yaml:"environment"`      // production or development.
	SessionSecret   string        `yaml:"session-secret"`   // HMAC secret for provider tokens.
	SessionLifetime Duration      `yaml:"session-lifetime"` // Session validity window.
	Redis           RedisConfig   `yaml:"redis"`            // Session store location.
	Log             LogConfig     `yaml:"log"`              // Logging setup.
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, errRead)
	}

	cfg := &Config{}
	if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return nil, fmt.Errorf("config: database-dsn is required")
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, fmt.Errorf("config: session-secret is required")
	}
	return cfg, nil
}

// SessionTTL returns the session lifetime as a time.Duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionLifetime)
}

// IsProduction reports whether detailed errors must stay out of logs.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), EnvProduction)
}

// ResolveConfigPath returns the effective config file path. An explicit path
// wins; otherwise WRITABLE_PATH is probed before falling back to the working
// directory.
func ResolveConfigPath(path string) string {
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		return trimmed
	}
	if base := writablePath(); base != "" {
		return filepath.Join(base, "config.yaml")
	}
	return "config.yaml"
}

// applyEnvOverrides lets deployment environments override file values.
func applyEnvOverrides(cfg *Config) {
	overrides := map[string]*string{
		"TRAVEL_ADMIN_LISTEN":         &cfg.Listen,
		"TRAVEL_ADMIN_DSN":            &cfg.DatabaseDSN,
		"TRAVEL_ADMIN_ENV":            &cfg.Environment,
		"TRAVEL_ADMIN_SESSION_SECRET": &cfg.SessionSecret,
		"TRAVEL_ADMIN_REDIS_ADDR":     &cfg.Redis.Addr,
	}
	for key, target := range overrides {
		if value, ok := os.LookupEnv(key); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				*target = trimmed
			}
		}
	}
}

// applyDefaults fills unset fields with safe defaults.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = ":8317"
	}
	if strings.TrimSpace(cfg.Environment) == "" {
		cfg.Environment = EnvProduction
	}
	if cfg.SessionLifetime <= 0 {
		cfg.SessionLifetime = Duration(DefaultSessionLifetime)
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 100
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 5
	}
	if cfg.Log.MaxAgeDays <= 0 {
		cfg.Log.MaxAgeDays = 30
	}
}

// writablePath returns the cleaned WRITABLE_PATH environment variable when set.
// It accepts both uppercase and lowercase variants for compatibility with
// existing conventions.
func writablePath() string {
	for _, key := range []string{"WRITABLE_PATH", "writable_path"} {
		if value, ok := os.LookupEnv(key); ok {
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				return filepath.Clean(trimmed)
			}
		}
	}
	return ""
}
