// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// StorageConfig selects where session gig collections live.
type StorageConfig struct {
	Backend       string `toml:"backend"`        // "sqlite", "redis" or "memory"
	DBPath        string `toml:"db_path"`        // sqlite file
	RedisAddr     string `toml:"redis_addr"`     // e.g., "localhost:6379"
	RedisPassword string `toml:"redis_password"` // optional
	RedisDB       int    `toml:"redis_db"`
	SessionTTL    string `toml:"session_ttl"` // e.g., "720h"; empty keeps sessions forever
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen        string `toml:"listen"`         // e.g., "127.0.0.1:4567"
	SweepSchedule string `toml:"sweep_schedule"` // cron spec, empty disables the sweep
	Metrics       bool   `toml:"metrics"`        // expose /metrics
	CookieName    string `toml:"cookie_name"`
}

// SessionConfig holds the session used by the CLI and TUI.
type SessionConfig struct {
	CLIID string `toml:"cli_id"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text" or "json"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte", "frappe"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			DBPath:     defaultDBPath(),
			RedisAddr:  "localhost:6379",
			SessionTTL: "",
		},
		Server: ServerConfig{
			Listen:        "127.0.0.1:4567",
			SweepSchedule: "@daily",
			Metrics:       true,
			CookieName:    "gigbook_session",
		},
		Session: SessionConfig{
			CLIID: "local",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gigbook.db"
	}
	return filepath.Join(home, ".local", "share", "gigbook", "gigbook.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "gigbook", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GIGBOOK_STORAGE"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("GIGBOOK_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("GIGBOOK_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("GIGBOOK_REDIS_PASSWORD"); v != "" {
		cfg.Storage.RedisPassword = v
	}
	if v := os.Getenv("GIGBOOK_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GIGBOOK_REDIS_DB: %w", err)
		}
		cfg.Storage.RedisDB = n
	}
	if v := os.Getenv("GIGBOOK_SESSION_TTL"); v != "" {
		cfg.Storage.SessionTTL = v
	}

	if v := os.Getenv("GIGBOOK_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v, ok := os.LookupEnv("GIGBOOK_SWEEP_SCHEDULE"); ok {
		cfg.Server.SweepSchedule = v
	}
	if v := os.Getenv("GIGBOOK_METRICS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GIGBOOK_METRICS: %w", err)
		}
		cfg.Server.Metrics = b
	}

	if v := os.Getenv("GIGBOOK_SESSION"); v != "" {
		cfg.Session.CLIID = v
	}

	if v := os.Getenv("GIGBOOK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GIGBOOK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("GIGBOOK_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set for the sqlite backend")
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("redis_addr must be set for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %q", c.Storage.Backend)
	}

	if _, err := c.SessionTTL(); err != nil {
		return err
	}

	if c.Server.Listen == "" {
		return errors.New("listen must be set")
	}
	if c.Server.CookieName == "" {
		return errors.New("cookie_name must be set")
	}
	if c.Server.SweepSchedule != "" {
		if _, err := cron.ParseStandard(c.Server.SweepSchedule); err != nil {
			return fmt.Errorf("invalid sweep_schedule %q: %w", c.Server.SweepSchedule, err)
		}
	}

	if c.Session.CLIID == "" {
		return errors.New("cli_id must be set")
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	return nil
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// SessionTTL returns the configured session lifetime; zero means no expiry.
func (c *Config) SessionTTL() (time.Duration, error) {
	if c.Storage.SessionTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Storage.SessionTTL)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid session_ttl %q", c.Storage.SessionTTL)
	}
	return d, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
