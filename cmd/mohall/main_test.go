package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/mohall/internal/config"
	"github.com/verte-zerg/mohall/internal/model"
	"github.com/verte-zerg/mohall/internal/store"
)

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Game.Doors != nil || cfg.Simulate.Strategy != nil {
		t.Fatalf("expected all values commented out: %+v", cfg)
	}
	for _, key := range []string{"# doors = 3", "# strategy = \"swap\"", "# simulated = \"all\""} {
		if !strings.Contains(defaultConfigTemplate(), key) {
			t.Fatalf("template missing %q", key)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.Config{Doors: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateConfig(model.Config{Doors: 2}); err == nil {
		t.Fatalf("expected error for 2 doors")
	}
	if err := validateConfig(model.Config{Doors: 10}); err == nil {
		t.Fatalf("expected error for 10 doors")
	}
}

func TestValidateSimulateConfig(t *testing.T) {
	good := model.SimulateConfig{Games: 10, Doors: 3, Strategy: "stay"}
	if err := validateSimulateConfig(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []model.SimulateConfig{
		{Games: 0, Doors: 3, Strategy: "stay"},
		{Games: 1, Doors: 2, Strategy: "stay"},
		{Games: 1, Doors: 3, Strategy: "flip"},
		{Games: 1, Doors: model.MaxDoors + 1, Strategy: "swap"},
	}
	for _, cfg := range bad {
		if err := validateSimulateConfig(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestBuildStatsConfig(t *testing.T) {
	cfg, err := buildStatsConfig("bob", "2026-02-03", store.SimulatedOnly, 5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Player != "bob" || cfg.Simulated != "only" || cfg.Last != 5 || cfg.CurveWindow != 10 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Since == nil || cfg.Since.Month() != 2 {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}
	if _, err := buildStatsConfig("", "yesterday", store.SimulatedAll, 0, 10); err == nil {
		t.Fatalf("expected since error")
	}
	if _, err := buildStatsConfig("", "", "some", 0, 10); err == nil {
		t.Fatalf("expected simulated error")
	}
	if _, err := buildStatsConfig("", "", store.SimulatedAll, 0, 0); err == nil {
		t.Fatalf("expected curve window error")
	}
}

func TestSimulateCommandDryRun(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dbFile := filepath.Join(t.TempDir(), "games.db")
	root := newRootCmd()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"simulate", "--games", "30", "--seed", "7", "--dry-run", "--db", dbFile})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Total games played: 30") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if _, err := os.Stat(dbFile); !os.IsNotExist(err) {
		t.Fatalf("dry run should not create the db, stat err=%v", err)
	}
}

func TestSimulateThenPlainStats(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dbFile := filepath.Join(t.TempDir(), "games.db")

	root := newRootCmd()
	root.SetOut(&strings.Builder{})
	root.SetArgs([]string{"simulate", "--games", "12", "--seed", "3", "--db", dbFile})
	if err := root.Execute(); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	root = newRootCmd()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"stats", "--format", "json", "--simulated", "only", "--db", dbFile})
	if err := root.Execute(); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out.String(), `"total_games_played": 12`) {
		t.Fatalf("unexpected export:\n%s", out.String())
	}

	root = newRootCmd()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"players", "--db", dbFile})
	if err := root.Execute(); err != nil {
		t.Fatalf("players: %v", err)
	}
	if strings.TrimSpace(out.String()) != "simulator" {
		t.Fatalf("unexpected players output: %q", out.String())
	}
}
