package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// SortOrder controls how the browser lists songs
type SortOrder string

const (
	SortRecent SortOrder = "recent"
	SortName   SortOrder = "name"
)

// Config holds all application configuration
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StoreConfig holds catalog persistence configuration
type StoreConfig struct {
	Dir string `mapstructure:"dir"` // empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	Sort SortOrder `mapstructure:"sort"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Dir: defaultDataPath(),
		},
		UI: UIConfig{
			Sort: SortRecent,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "beatlib.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "beatlib")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "beatlib")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "beatlib")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "beatlib")
	}
}

// LoadConfig loads configuration from file and environment.
// A non-empty path overrides the default search locations.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (BEATLIB_STORE_DIR, ...)
	v.SetEnvPrefix("BEATLIB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	switch cfg.UI.Sort {
	case SortRecent, SortName:
	default:
		return nil, fmt.Errorf("invalid ui.sort %q (want %q or %q)", cfg.UI.Sort, SortRecent, SortName)
	}

	return cfg, nil
}

// setDefaults registers every key so env overrides apply without a file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("store.dir", cfg.Store.Dir)
	v.SetDefault("ui.sort", string(cfg.UI.Sort))
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveConfig writes cfg to path, or to the default location when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("store.dir", cfg.Store.Dir)
	v.Set("ui.sort", string(cfg.UI.Sort))
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
