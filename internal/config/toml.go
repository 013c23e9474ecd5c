// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game     GameConfig     `toml:"game"`
	Simulate SimulateConfig `toml:"simulate"`
	Stats    StatsConfig    `toml:"stats"`
}

// GameConfig maps play-related settings.
type GameConfig struct {
	Doors       *int    `toml:"doors"`
	Player      *string `toml:"player"`
	AutoAdvance *bool   `toml:"auto-advance"`
}

// SimulateConfig maps simulation settings.
type SimulateConfig struct {
	Games    *int    `toml:"games"`
	Strategy *string `toml:"strategy"`
}

// StatsConfig maps stats settings.
type StatsConfig struct {
	CurveWindow *int    `toml:"curve-window"`
	Simulated   *string `toml:"simulated"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
