package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/claude/musclemap/internal/soreness"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Plan      PlanConfig      `yaml:"plan"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// PlanConfig controls plan classification. Threshold is the first level
// at which a group must rest.
type PlanConfig struct {
	Threshold soreness.Level `yaml:"threshold"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
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

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix MUSCLEMAP_ and underscore-separated paths:
//
//	MUSCLEMAP_SERVER_HOST, MUSCLEMAP_SERVER_PORT,
//	MUSCLEMAP_DB_DRIVER, MUSCLEMAP_DB_HOST, MUSCLEMAP_DB_PORT, MUSCLEMAP_DB_NAME,
//	MUSCLEMAP_DB_USER, MUSCLEMAP_DB_PASSWORD, MUSCLEMAP_DB_SSLMODE, MUSCLEMAP_DB_PATH,
//	MUSCLEMAP_AUTH_API_KEY, MUSCLEMAP_PLAN_THRESHOLD, MUSCLEMAP_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("MUSCLEMAP_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("MUSCLEMAP_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MUSCLEMAP_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("MUSCLEMAP_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("MUSCLEMAP_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("MUSCLEMAP_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("MUSCLEMAP_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("MUSCLEMAP_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("MUSCLEMAP_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("MUSCLEMAP_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("MUSCLEMAP_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("MUSCLEMAP_PLAN_THRESHOLD"); v != "" {
		level, err := soreness.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("MUSCLEMAP_PLAN_THRESHOLD: %w", err)
		}
		cfg.Plan.Threshold = level
	}
	if v := os.Getenv("MUSCLEMAP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Plan.Threshold == 0 {
		c.Plan.Threshold = soreness.DeadSore
	}
	if c.Tailscale.Hostname == "" {
		c.Tailscale.Hostname = "musclemap"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}
