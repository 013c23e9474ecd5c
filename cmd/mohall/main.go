// Package main provides the CLI entrypoint for mohall.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/mohall/internal/config"
	"github.com/verte-zerg/mohall/internal/game"
	"github.com/verte-zerg/mohall/internal/model"
	"github.com/verte-zerg/mohall/internal/simulate"
	"github.com/verte-zerg/mohall/internal/stats"
	"github.com/verte-zerg/mohall/internal/statsui"
	"github.com/verte-zerg/mohall/internal/store"
	"github.com/verte-zerg/mohall/internal/tui"
)

const (
	defaultDoors       = 3
	defaultGames       = 1000
	defaultStrategy    = simulate.StrategySwap
	defaultCurveWindow = 20
	defaultSimulated   = store.SimulatedAll
)

var (
	dbPath string

	playDoors       int
	playPlayer      string
	playAutoAdvance bool

	statsPlayer      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsSimulated   string
	statsPlain       bool
	statsFormat      string

	simGames    int
	simStrategy string
	simDoors    int
	simSeed     int64
	simDryRun   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mohall",
		Short:         "Monty Hall game in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "statistics database path (default: XDG data dir)")
	rootCmd.Flags().IntVar(&playDoors, "doors", defaultDoors, "number of doors (minimum 3)")
	rootCmd.Flags().StringVar(&playPlayer, "player", "", "player name recorded with each game")
	rootCmd.Flags().BoolVar(&playAutoAdvance, "auto-advance", false, "lock the first pick as soon as a door is chosen")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newSimulateCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "doors", &playDoors, fileCfg.Game.Doors)
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Game.Player)
	applyBoolConfig(cmd, "auto-advance", &playAutoAdvance, fileCfg.Game.AutoAdvance)

	cfg := model.Config{
		Doors:       playDoors,
		Player:      playPlayer,
		AutoAdvance: playAutoAdvance,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, err := store.Open(resolveDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	statsCfg := model.StatsConfig{Simulated: store.SimulatedNone}
	tracker, err := stats.NewTracker(ctx, st, statsCfg)
	if err != nil {
		return err
	}

	engine := game.NewEngine(game.Options{
		Doors:     cfg.Doors,
		Player:    cfg.Player,
		SessionID: uuid.NewString(),
		Sink:      tracker,
	})
	model := tui.NewModel(cfg, engine, tracker)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List players with recorded games",
		Args:  cobra.NoArgs,
		RunE:  runPlayersCmd,
	}
}

func runPlayersCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(resolveDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	players, err := st.ListPlayers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	if len(players) == 0 {
		logErrln("No games recorded yet. Play with: mohall")
		return nil
	}
	for _, player := range players {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), player); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPlayer, "player", "", "player filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window for win trends")
	cmd.Flags().StringVar(&statsSimulated, "simulated", defaultSimulated, "simulated games: all, only or none")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain text report instead of the TUI")
	cmd.Flags().StringVar(&statsFormat, "format", "", "export format: text, json or yaml")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)
	applyStringConfig(cmd, "simulated", &statsSimulated, fileCfg.Stats.Simulated)

	cfg, err := buildStatsConfig(statsPlayer, statsSince, statsSimulated, statsLast, statsCurveWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(resolveDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	out := cmd.OutOrStdout()
	switch {
	case statsFormat != "":
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.Export(out, report, statsFormat)
	case statsPlain:
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.RenderReport(out, report, stats.DefaultRenderOptions(out))
	}

	model := statsui.NewModel(st, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func buildStatsConfig(player, since, simulated string, last, curveWindow int) (model.StatsConfig, error) {
	var sinceTime *time.Time
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	switch simulated {
	case store.SimulatedAll, store.SimulatedOnly, store.SimulatedNone:
	default:
		return model.StatsConfig{}, fmt.Errorf("--simulated must be all, only or none")
	}
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if curveWindow < 1 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be >= 1")
	}
	return model.StatsConfig{
		Player:      player,
		Simulated:   simulated,
		Since:       sinceTime,
		Last:        last,
		CurveWindow: curveWindow,
	}, nil
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a batch of simulated games",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	cmd.Flags().IntVar(&simGames, "games", defaultGames, "number of games to play")
	cmd.Flags().StringVar(&simStrategy, "strategy", defaultStrategy, "final choice: swap, stay or random")
	cmd.Flags().IntVar(&simDoors, "doors", defaultDoors, "number of doors (minimum 3)")
	cmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&simDryRun, "dry-run", false, "print results without saving them")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "games", &simGames, fileCfg.Simulate.Games)
	applyStringConfig(cmd, "strategy", &simStrategy, fileCfg.Simulate.Strategy)
	applyIntConfig(cmd, "doors", &simDoors, fileCfg.Game.Doors)

	cfg := model.SimulateConfig{
		Games:    simGames,
		Doors:    simDoors,
		Strategy: strings.ToLower(strings.TrimSpace(simStrategy)),
		Seed:     simSeed,
		DryRun:   simDryRun,
	}
	if err := validateSimulateConfig(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logErrf("Simulating %d games (%s, %d doors)...\n", cfg.Games, cfg.Strategy, cfg.Doors)
	entries, err := simulate.Run(ctx, cfg, uuid.NewString())
	if err != nil {
		return fmt.Errorf("simulation stopped after %d games: %w", len(entries), err)
	}

	if !cfg.DryRun {
		st, err := store.Open(resolveDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		if err := st.InsertGames(ctx, entries); err != nil {
			return fmt.Errorf("failed to save games: %w", err)
		}
		logErrf("Saved %d games\n", len(entries))
	}

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), stats.Summarize(entries).Text()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func resolveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return config.DefaultDBPath()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# mohall configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# doors = %d               # Number of doors (minimum %d)
# player = "name"         # Player name recorded with each game
# auto-advance = false    # Lock the first pick as soon as a door is chosen

[simulate]
# games = %d            # Games per simulate run
# strategy = %q       # swap, stay or random

[stats]
# curve-window = %d       # Moving average window for win trends
# simulated = %q         # Include simulated games: all, only or none
`,
		defaultDoors,
		game.MinDoors,
		defaultGames,
		defaultStrategy,
		defaultCurveWindow,
		defaultSimulated,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Doors < game.MinDoors {
		return fmt.Errorf("--doors must be >= %d", game.MinDoors)
	}
	if cfg.Doors > 9 {
		return fmt.Errorf("--doors must be <= 9 to fit the number keys")
	}
	return nil
}

func validateSimulateConfig(cfg model.SimulateConfig) error {
	if cfg.Games <= 0 {
		return fmt.Errorf("--games must be > 0")
	}
	if cfg.Doors < game.MinDoors {
		return fmt.Errorf("--doors must be >= %d", game.MinDoors)
	}
	if cfg.Doors > model.MaxDoors {
		return fmt.Errorf("--doors must be <= %d", model.MaxDoors)
	}
	if !simulate.ValidStrategy(cfg.Strategy) {
		return fmt.Errorf("--strategy must be one of %s", strings.Join(simulate.Strategies, ", "))
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
