package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Game.Doors != nil || cfg.Simulate.Games != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[game]
doors = 4
player = "alice"
auto-advance = true

[simulate]
games = 500
strategy = "swap"

[stats]
curve-window = 25
simulated = "none"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Doors == nil || *cfg.Game.Doors != 4 {
		t.Fatalf("unexpected doors: %v", cfg.Game.Doors)
	}
	if cfg.Game.Player == nil || *cfg.Game.Player != "alice" {
		t.Fatalf("unexpected player: %v", cfg.Game.Player)
	}
	if cfg.Game.AutoAdvance == nil || !*cfg.Game.AutoAdvance {
		t.Fatalf("expected auto-advance to be set")
	}
	if cfg.Simulate.Games == nil || *cfg.Simulate.Games != 500 {
		t.Fatalf("unexpected games: %v", cfg.Simulate.Games)
	}
	if cfg.Simulate.Strategy == nil || *cfg.Simulate.Strategy != "swap" {
		t.Fatalf("unexpected strategy: %v", cfg.Simulate.Strategy)
	}
	if cfg.Stats.CurveWindow == nil || *cfg.Stats.CurveWindow != 25 {
		t.Fatalf("unexpected curve window: %v", cfg.Stats.CurveWindow)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\ndoorz = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.doorz") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "mohall", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "mohall", "statistics.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
