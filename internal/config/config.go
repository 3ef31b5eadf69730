package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all Math Quest configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Quests  QuestsConfig  `yaml:"quests"`
	Game    GameConfig    `yaml:"game"`
	Clock   ClockConfig   `yaml:"clock"`
	Audio   AudioConfig   `yaml:"audio"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

type QuestsConfig struct {
	PageSize int `yaml:"page_size"`
	// PersistCompletion keeps completed quest ids across sessions.
	// Off by default: completion is per-session unless someone decides otherwise.
	PersistCompletion bool `yaml:"persist_completion"`
}

type GameConfig struct {
	RoundSeconds int   `yaml:"round_seconds"`
	Seed         int64 `yaml:"seed"` // 0 means seed from the clock
}

type ClockConfig struct {
	Timezone string `yaml:"timezone"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Dir returns the per-user Math Quest directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mathquest"
	}
	return filepath.Join(home, ".mathquest")
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Storage: StorageConfig{Path: filepath.Join(dir, "mathquest.db")},
		Logging: LoggingConfig{Level: "info", File: filepath.Join(dir, "mathquest.log")},
		Quests:  QuestsConfig{PageSize: 8},
		Game:    GameConfig{RoundSeconds: 30},
		Clock:   ClockConfig{Timezone: "UTC"},
		Audio:   AudioConfig{Enabled: true},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// A .env file in the working directory is read first so its variables can
// take part in the environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.normalize()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("MATHQUEST_DB"); path != "" {
		c.Storage.Path = path
	}
	if lvl := os.Getenv("MATHQUEST_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if file := os.Getenv("MATHQUEST_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if tz := os.Getenv("MATHQUEST_TZ"); tz != "" {
		c.Clock.Timezone = tz
	}
	if audio := os.Getenv("MATHQUEST_AUDIO"); audio != "" {
		switch strings.ToLower(strings.TrimSpace(audio)) {
		case "off", "false", "0", "no":
			c.Audio.Enabled = false
		case "on", "true", "1", "yes":
			c.Audio.Enabled = true
		}
	}
}

func (c *Config) normalize() {
	if c.Quests.PageSize <= 0 {
		c.Quests.PageSize = 8
	}
	if c.Game.RoundSeconds <= 0 {
		c.Game.RoundSeconds = 30
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c.Clock.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Clock.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RoundLength is the Orb Catcher round duration.
func (c *Config) RoundLength() time.Duration {
	return time.Duration(c.Game.RoundSeconds) * time.Second
}
