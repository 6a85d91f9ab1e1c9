// Package config loads the zonewarden service configuration from YAML,
// overlaying a file onto built-in defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	HTTP     HTTPConfig     `yaml:"http"`
	Zone     ZoneConfig     `yaml:"zone"`
	Watch    WatchConfig    `yaml:"watch"`
	Log      LogConfig      `yaml:"log"`
}

// RegistryConfig describes the registration corpus.
type RegistryConfig struct {
	// Domain is the shared apex every document registers under.
	Domain string `yaml:"domain"`
	// Dir is the directory of per-registrant JSON documents.
	Dir string `yaml:"dir"`
}

type HTTPConfig struct {
	Enabled bool       `yaml:"enabled"`
	Listen  string     `yaml:"listen"`
	Auth    AuthConfig `yaml:"auth"`
}

type AuthConfig struct {
	Enabled  bool   `yaml:"enabled"`
	TokenEnv string `yaml:"token_env"`
}

type ZoneConfig struct {
	TTL uint32 `yaml:"ttl"`
}

type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			Domain: "example.dev",
			Dir:    "domains",
		},
		HTTP: HTTPConfig{
			Enabled: false,
			Listen:  ":8080",
			Auth: AuthConfig{
				Enabled:  false,
				TokenEnv: "ZONEWARDEN_API_TOKEN",
			},
		},
		Zone:  ZoneConfig{TTL: 3600},
		Watch: WatchConfig{DebounceMs: 300},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path on top of the defaults and validates the
// result. A missing file is not an error: the defaults apply unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the configuration and any required environment variables.
func (c *Config) validate() error {
	if c.Registry.Dir == "" {
		return fmt.Errorf("registry.dir must not be empty")
	}
	if c.Registry.Domain == "" {
		return fmt.Errorf("registry.domain must not be empty")
	}
	if c.Zone.TTL == 0 {
		return fmt.Errorf("zone.ttl must be positive")
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}

	if c.HTTP.Enabled && c.HTTP.Auth.Enabled {
		if c.HTTP.Auth.TokenEnv == "" {
			return fmt.Errorf("HTTP authentication is enabled but token_env is not configured")
		}
		if os.Getenv(c.HTTP.Auth.TokenEnv) == "" {
			return fmt.Errorf("HTTP authentication is enabled but environment variable %s is not set or empty", c.HTTP.Auth.TokenEnv)
		}
	}
	return nil
}

// LogLevel maps the configured level name onto a slog.Level.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debounce returns the watch debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// AuthToken resolves the API token from the configured environment
// variable. Empty when authentication is disabled.
func (c *Config) AuthToken() string {
	if !c.HTTP.Auth.Enabled || c.HTTP.Auth.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.HTTP.Auth.TokenEnv)
}
