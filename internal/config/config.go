package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for a conductor session. Values come
// from .conductor.yaml, CONDUCTOR_* env vars, and CLI flags, in rising
// precedence.
type Config struct {
	ConductorDir string `mapstructure:"conductor_dir"`
	Watch        bool   `mapstructure:"watch"`
	DebounceMS   int    `mapstructure:"debounce_ms"`
	StateDir     string `mapstructure:"state_dir"`
	Filter       string `mapstructure:"filter"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("conductor_dir", "./conductor")
	viper.SetDefault("watch", true)
	viper.SetDefault("debounce_ms", 300)
	viper.SetDefault("state_dir", defaultStateDir())
	viper.SetDefault("filter", "all")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// defaultStateDir is where the history database, UI prefs, and log files
// live when unconfigured.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "conductor")
	}
	return filepath.Join(home, ".conductor")
}
