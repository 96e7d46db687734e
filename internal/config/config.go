// Package config handles loading and saving application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "integral"

// Config represents the application configuration.
type Config struct {
	AI      AIConfig      `yaml:"ai"`
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
	Notify  NotifyConfig  `yaml:"notify"`
	Log     LogConfig     `yaml:"log"`
}

// AIConfig configures the text-generation endpoint.
type AIConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// APIKey is the last resort; OPENAI_API_KEY and the keyring win.
	APIKey      string        `yaml:"api_key,omitempty"`
	MinInterval time.Duration `yaml:"min_interval"`
}

// StorageConfig locates the workspace database.
type StorageConfig struct {
	Path string `yaml:"path,omitempty"` // defaults to <data dir>/integral.db
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	DefaultView string `yaml:"default_view"` // "day", "week" or "month"
	NarrowWidth int    `yaml:"narrow_width"`
	ShowTasks   bool   `yaml:"show_tasks"`
}

// NotifyConfig drives upcoming-event desktop notifications.
type NotifyConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Schedule    string `yaml:"schedule"` // cron spec
	LeadMinutes int    `yaml:"lead_minutes"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // "json" or "console"
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-3.5-turbo",
			MinInterval: 2 * time.Second,
		},
		UI: UIConfig{
			DefaultView: "week",
			NarrowWidth: 100,
			ShowTasks:   true,
		},
		Notify: NotifyConfig{
			Enabled:     true,
			Schedule:    "@every 1m",
			LeadMinutes: 10,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Normalize fills zero values with defaults and validates enumerations.
func (c *Config) Normalize() error {
	def := DefaultConfig()

	c.AI.BaseURL = strings.TrimRight(strings.TrimSpace(c.AI.BaseURL), "/")
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = def.AI.BaseURL
	}
	if c.AI.Model == "" {
		c.AI.Model = def.AI.Model
	}
	if c.AI.MinInterval < 0 {
		return fmt.Errorf("ai.min_interval must not be negative")
	}

	c.UI.DefaultView = strings.ToLower(strings.TrimSpace(c.UI.DefaultView))
	switch c.UI.DefaultView {
	case "":
		c.UI.DefaultView = def.UI.DefaultView
	case "day", "week", "month":
	default:
		return fmt.Errorf("ui.default_view must be day, week or month, got %q", c.UI.DefaultView)
	}
	if c.UI.NarrowWidth <= 0 {
		c.UI.NarrowWidth = def.UI.NarrowWidth
	}

	if c.Notify.Schedule == "" {
		c.Notify.Schedule = def.Notify.Schedule
	}
	if c.Notify.LeadMinutes <= 0 {
		c.Notify.LeadMinutes = def.Notify.LeadMinutes
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	switch c.Log.Encoding {
	case "":
		c.Log.Encoding = def.Log.Encoding
	case "json", "console":
	default:
		return fmt.Errorf("log.encoding must be json or console, got %q", c.Log.Encoding)
	}

	return nil
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the default config file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path.
// If the file doesn't exist, returns a default configuration.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(cfg, path)
}

// SaveFile writes the configuration to path.
func SaveFile(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Owner read/write only: the file may hold an API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// StoragePath returns the database file, defaulting into DataDir.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "integral.db"), nil
}

// LogPath returns the log file inside DataDir.
func LogPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "integral.log"), nil
}
