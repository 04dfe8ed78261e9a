package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIConfig holds connection settings for the project backend.
type APIConfig struct {
	// BaseURL is the root URL of the REST backend. The environment
	// variable GENIUSBOARD_API_BASE overrides it when set.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds each request round-trip.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// UserConfig identifies the local user for comment authorship.
type UserConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme        string `mapstructure:"theme" yaml:"theme"`
	DefaultBoard string `mapstructure:"default_board" yaml:"default_board"`
}

// CacheConfig controls the local read-cache database.
type CacheConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	User    UserConfig    `mapstructure:"user" yaml:"user"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/geniusboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "geniusboard", "config.yaml")
}

// defaultCachePath returns ~/.config/geniusboard/cache.db.
func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cache.db")
	}
	return filepath.Join(home, ".config", "geniusboard", "cache.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    "http://localhost:8080/api",
			TimeoutSec: 30,
		},
		User: UserConfig{Name: "You"},
		Display: DisplayConfig{
			Theme:        "default",
			DefaultBoard: AllProjectsBoard,
		},
		Cache: CacheConfig{Path: defaultCachePath()},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration. The
// GENIUSBOARD_API_BASE environment variable always wins for the base URL.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout_sec", 30)
	v.SetDefault("user.name", "You")
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.default_board", AllProjectsBoard)
	v.SetDefault("cache.path", defaultCachePath())

	cfg := defaultAppConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnv(cfg), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnv(cfg), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = 30
	}

	return applyEnv(cfg), nil
}

// applyEnv overlays environment overrides on a loaded configuration.
func applyEnv(cfg *AppConfig) *AppConfig {
	if base := os.Getenv("GENIUSBOARD_API_BASE"); base != "" {
		cfg.API.BaseURL = base
	}
	return cfg
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("user", cfg.User)
	v.Set("display", cfg.Display)
	v.Set("cache", cfg.Cache)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
