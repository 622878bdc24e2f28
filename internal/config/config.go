package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Sim holds all configuration for the enchantment simulator.
type Sim struct {
	LogLevel string `yaml:"log_level" env:"MONENCH_LOG_LEVEL"`

	// Seed of the master random stream; 0 picks one from the clock.
	Seed uint64 `yaml:"seed" env:"MONENCH_SEED"`

	// Storage
	Database DatabaseConfig `yaml:"database"`

	// Snapshots
	SnapshotDir      string `yaml:"snapshot_dir" env:"MONENCH_SNAPSHOT_DIR"`
	CompressionLevel int    `yaml:"compression_level" env:"MONENCH_COMPRESSION_LEVEL"` // zstd, 1..4

	// Simulation sizes
	Levels      int `yaml:"levels" env:"MONENCH_LEVELS"`
	Monsters    int `yaml:"monsters" env:"MONENCH_MONSTERS"` // per level
	Turns       int `yaml:"turns" env:"MONENCH_TURNS"`
	LevelWidth  int `yaml:"level_width" env:"MONENCH_LEVEL_WIDTH"`
	LevelHeight int `yaml:"level_height" env:"MONENCH_LEVEL_HEIGHT"`
}

// DatabaseConfig selects the enchantment store.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"MONENCH_DB_DRIVER"` // postgres | sqlite

	// SQLite
	Path string `yaml:"path" env:"MONENCH_DB_PATH"`

	// PostgreSQL
	Host     string `yaml:"host" env:"MONENCH_DB_HOST"`
	Port     int    `yaml:"port" env:"MONENCH_DB_PORT"`
	User     string `yaml:"user" env:"MONENCH_DB_USER"`
	Password string `yaml:"password" env:"MONENCH_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"MONENCH_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"MONENCH_DB_SSLMODE"`
}

// DSN returns the connection string for the configured driver.
// For SQLite it is the database file path.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSim returns Sim config with sensible defaults.
func DefaultSim() Sim {
	return Sim{
		LogLevel:         "info",
		SnapshotDir:      "snapshots",
		CompressionLevel: 2,
		Levels:           4,
		Monsters:         40,
		Turns:            200,
		LevelWidth:       40,
		LevelHeight:      20,
		Database: DatabaseConfig{
			Driver:  "sqlite",
			Path:    "monench.db",
			Host:    "127.0.0.1",
			Port:    5432,
			User:    "monench",
			DBName:  "monench",
			SSLMode: "disable",
		},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// MONENCH_* environment overrides. A missing file yields the defaults.
func Load(path string) (Sim, error) {
	cfg := DefaultSim()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulator cannot run with.
func (c Sim) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.CompressionLevel < 1 || c.CompressionLevel > 4 {
		return fmt.Errorf("compression level %d out of range 1..4", c.CompressionLevel)
	}
	if c.Levels < 1 || c.Monsters < 0 || c.Turns < 0 {
		return fmt.Errorf("invalid simulation sizes: levels=%d monsters=%d turns=%d", c.Levels, c.Monsters, c.Turns)
	}
	if c.LevelWidth < 3 || c.LevelHeight < 3 {
		return fmt.Errorf("level %dx%d is too small", c.LevelWidth, c.LevelHeight)
	}
	return nil
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
