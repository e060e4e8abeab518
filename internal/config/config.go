// Package config loads hourtrack's configuration from defaults, an optional
// YAML file and HOURTRACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/hourtrack/internal/tracker"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendYAML   = "yaml"

	KeyWorkingHoursPerDay = "working_hours_per_day"
)

var ErrSettingNotFound = errors.New("setting not found")

type Config struct {
	Backend                string `mapstructure:"backend"` // "sqlite" or "yaml"
	DatabasePath           string `mapstructure:"database_path"`
	StateDir               string `mapstructure:"state_dir"`
	WorkingHoursPerDay     int    `mapstructure:"working_hours_per_day"`
	RefreshIntervalSeconds int    `mapstructure:"refresh_interval_seconds"`
	LogLevel               string `mapstructure:"log_level"`
	LogFile                string `mapstructure:"log_file"`
}

// SettingsStore holds preferences edited from the UI. A missing key is
// reported with ErrSettingNotFound.
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "hourtrack")
}

// Load reads the configuration. An empty configPath searches the working
// directory and ~/.config/hourtrack for config.yaml; a missing file there is
// not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultDir())
	}

	v.SetEnvPrefix("HOURTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dir := defaultDir()
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("database_path", filepath.Join(dir, "hourtrack.db"))
	v.SetDefault("state_dir", dir)
	v.SetDefault(KeyWorkingHoursPerDay, tracker.DefaultWorkingHoursPerDay)
	v.SetDefault("refresh_interval_seconds", 1)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.RefreshIntervalSeconds < 1 {
		cfg.RefreshIntervalSeconds = 1
	}
	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendYAML:
	default:
		return fmt.Errorf("invalid backend %q, expected %q or %q", c.Backend, BackendSQLite, BackendYAML)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return c.Tracker().Validate()
}

// Tracker returns the engine configuration.
func (c *Config) Tracker() tracker.Config {
	return tracker.Config{WorkingHoursPerDay: c.WorkingHoursPerDay}
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("invalid log_level %q", s)
}

// ApplySettings overrides cfg with the preferences saved from the UI.
func ApplySettings(cfg *Config, s SettingsStore) error {
	raw, err := s.GetSetting(KeyWorkingHoursPerDay)
	if errors.Is(err, ErrSettingNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	hours, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("stored %s %q is not a number", KeyWorkingHoursPerDay, raw)
	}
	if err := (tracker.Config{WorkingHoursPerDay: hours}).Validate(); err != nil {
		return fmt.Errorf("stored %s: %w", KeyWorkingHoursPerDay, err)
	}
	cfg.WorkingHoursPerDay = hours
	return nil
}

// SaveWorkingHours validates and stores the daily quota.
func SaveWorkingHours(s SettingsStore, hours int) error {
	if err := (tracker.Config{WorkingHoursPerDay: hours}).Validate(); err != nil {
		return err
	}
	return s.SetSetting(KeyWorkingHoursPerDay, strconv.Itoa(hours))
}
