package stats

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/verte-zerg/mohall/internal/model"
)

const (
	colorReset          = "\x1b[0m"
	colorGreen          = "\x1b[32m"
	colorYellow         = "\x1b[33m"
	terminalWidthBackup = 80
)

// RenderOptions control plain-text output.
type RenderOptions struct {
	Width    int
	UseColor bool
	Now      time.Time
	History  int
}

// DefaultRenderOptions sizes and colors output for w.
func DefaultRenderOptions(w io.Writer) RenderOptions {
	return RenderOptions{
		Width:    terminalWidth(w),
		UseColor: shouldUseColor(w),
		Now:      time.Now(),
		History:  10,
	}
}

// RenderReport prints the summary, the door distribution, win trends and recent games.
func RenderReport(w io.Writer, report Report, opts RenderOptions) error {
	if len(report.Games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	steps := []func() error{
		func() error { return RenderSummary(w, report.Summary, opts) },
		func() error { return RenderDoorTable(w, report.Summary) },
		func() error { return RenderTrends(w, report, opts) },
		func() error { return RenderHistory(w, report.Games, opts) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints the aggregate block.
func RenderSummary(w io.Writer, s Summary, opts RenderOptions) error {
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	text := s.Text()
	if opts.UseColor {
		text = strings.Replace(text, "Swap win ratio: "+s.SwapWinRatio, "Swap win ratio: "+colorGreen+s.SwapWinRatio+colorReset, 1)
		text = strings.Replace(text, "No swap win ratio: "+s.NoSwapWinRatio, "No swap win ratio: "+colorYellow+s.NoSwapWinRatio+colorReset, 1)
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Win rate: swap %.1f%%, stay %.1f%%\n", s.SwapWinRate()*100, s.NoSwapWinRate()*100); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderDoorTable prints how often the reward was behind each door.
func RenderDoorTable(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, "Reward Location"); err != nil {
		return err
	}
	headers := []string{"Door", "Rewards", "Share"}
	rows := make([][]string, 0, len(s.RewardsByDoor))
	for i, count := range s.RewardsByDoor {
		share := 0.0
		if s.TotalGamesPlayed > 0 {
			share = float64(count) / float64(s.TotalGamesPlayed)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", count),
			fmt.Sprintf("%.1f%%", share*100),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrends charts the rolling win rates of swapped and kept choices.
func RenderTrends(w io.Writer, report Report, opts RenderOptions) error {
	if err := RenderTrendChart(w, report, opts.Width, defaultPlotHeight, opts.UseColor); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistory prints the most recent games, newest first.
func RenderHistory(w io.Writer, games []model.GameEntry, opts RenderOptions) error {
	if _, err := fmt.Fprintln(w, "Recent Games"); err != nil {
		return err
	}
	headers := []string{"When", "Player", "Doors", "First", "Final", "Reward", "Swap", "Result"}
	rows := HistoryRows(games, opts.History, opts.Now)
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryRows formats up to limit games, newest first. limit <= 0 means all.
func HistoryRows(games []model.GameEntry, limit int, now time.Time) [][]string {
	count := len(games)
	if limit > 0 && count > limit {
		count = limit
	}
	rows := make([][]string, 0, count)
	for i := len(games) - 1; i >= len(games)-count; i-- {
		g := games[i]
		player := g.PlayerName
		if g.SimulatedGame {
			player += " (sim)"
		}
		rows = append(rows, []string{
			humanize.RelTime(g.PlayedAt, now, "ago", "from now"),
			player,
			fmt.Sprintf("%d", g.DoorCount),
			doorLabel(g.FirstChosenDoorNumber),
			doorLabel(g.FinalChosenDoorNumber),
			doorLabel(g.RewardDoorNumber),
			yesNo(g.PlayerSwapped),
			resultLabel(g.PlayerWon),
		})
	}
	return rows
}

func doorLabel(n int) string {
	if n == model.UnsetDoor {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func resultLabel(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
