// Package stats aggregates recorded games and renders reports.
package stats

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/mohall/internal/model"
)

const (
	minReportDoors = 3
	emptyRatio     = "0:0"
	percentScale   = 100.0
)

// Summary holds aggregates derived from a collection of games. It is never stored.
type Summary struct {
	TotalGamesPlayed           int    `json:"total_games_played" yaml:"total_games_played"`
	TotalGamesPlayedWithSwap   int    `json:"total_games_played_with_swap" yaml:"total_games_played_with_swap"`
	TotalGamesPlayedWithNoSwap int    `json:"total_games_played_with_no_swap" yaml:"total_games_played_with_no_swap"`
	TotalWins                  int    `json:"total_wins" yaml:"total_wins"`
	TotalWinsAfterSwap         int    `json:"total_wins_after_swap" yaml:"total_wins_after_swap"`
	TotalWinsWithoutSwap       int    `json:"total_wins_without_swap" yaml:"total_wins_without_swap"`
	SwapWinRatio               string `json:"swap_win_ratio" yaml:"swap_win_ratio"`
	NoSwapWinRatio             string `json:"no_swap_win_ratio" yaml:"no_swap_win_ratio"`
	// RewardsByDoor[i] counts games with the reward behind door i+1.
	RewardsByDoor []int `json:"rewards_by_door" yaml:"rewards_by_door"`
}

// Summarize computes every aggregate from the full list of games.
func Summarize(games []model.GameEntry) Summary {
	s := Summary{
		SwapWinRatio:   emptyRatio,
		NoSwapWinRatio: emptyRatio,
		RewardsByDoor:  make([]int, minReportDoors),
	}
	for _, g := range games {
		s.TotalGamesPlayed++
		if g.PlayerSwapped {
			s.TotalGamesPlayedWithSwap++
		}
		if g.PlayerWon {
			s.TotalWins++
			if g.PlayerSwapped {
				s.TotalWinsAfterSwap++
			}
		}
		if validRewardDoor(g) {
			for len(s.RewardsByDoor) < g.RewardDoorNumber {
				s.RewardsByDoor = append(s.RewardsByDoor, 0)
			}
			s.RewardsByDoor[g.RewardDoorNumber-1]++
		}
	}
	if s.TotalGamesPlayed == 0 {
		return s
	}
	s.TotalGamesPlayedWithNoSwap = s.TotalGamesPlayed - s.TotalGamesPlayedWithSwap
	s.TotalWinsWithoutSwap = s.TotalWins - s.TotalWinsAfterSwap
	s.SwapWinRatio = Ratio(s.TotalWinsAfterSwap, s.TotalGamesPlayedWithSwap)
	s.NoSwapWinRatio = Ratio(s.TotalWinsWithoutSwap, s.TotalGamesPlayedWithNoSwap)
	return s
}

// validRewardDoor reports whether the reward door lies within the game's doors.
func validRewardDoor(g model.GameEntry) bool {
	doors := g.DoorCount
	if doors <= 0 {
		doors = minReportDoors
	}
	if doors > model.MaxDoors {
		return false
	}
	return g.RewardDoorNumber >= 1 && g.RewardDoorNumber <= doors
}

// RewardsBehindDoor returns how often the reward was behind door n (1-based).
func (s Summary) RewardsBehindDoor(n int) int {
	if n < 1 || n > len(s.RewardsByDoor) {
		return 0
	}
	return s.RewardsByDoor[n-1]
}

// SwapWinRate returns the share of swapped games that were won, in [0, 1].
func (s Summary) SwapWinRate() float64 {
	return rate(s.TotalWinsAfterSwap, s.TotalGamesPlayedWithSwap)
}

// NoSwapWinRate returns the share of non-swapped games that were won, in [0, 1].
func (s Summary) NoSwapWinRate() float64 {
	return rate(s.TotalWinsWithoutSwap, s.TotalGamesPlayedWithNoSwap)
}

func rate(wins, games int) float64 {
	if games <= 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

// Text renders the summary as a plain multi-line block.
func (s Summary) Text() string {
	doors := make([]string, 0, len(s.RewardsByDoor))
	labels := make([]string, 0, len(s.RewardsByDoor))
	for i, count := range s.RewardsByDoor {
		labels = append(labels, fmt.Sprintf("%d", i+1))
		doors = append(doors, fmt.Sprintf("%d", count))
	}
	lines := []string{
		fmt.Sprintf("Total games played: %d", s.TotalGamesPlayed),
		fmt.Sprintf("Total games won: %d", s.TotalWins),
		fmt.Sprintf("Total games won after swap: %d", s.TotalWinsAfterSwap),
		fmt.Sprintf("Swap win ratio: %s", s.SwapWinRatio),
		fmt.Sprintf("No swap win ratio: %s", s.NoSwapWinRatio),
		fmt.Sprintf("Rewards behind door %s: %s", strings.Join(labels, "/"), strings.Join(doors, "/")),
	}
	return strings.Join(lines, "\n")
}

// GCD returns the greatest common divisor of a and b; GCD(a, 0) == a.
func GCD(a, b int) int {
	if b == 0 {
		return a
	}
	return GCD(b, a%b)
}

// Ratio formats a:b reduced by their greatest common divisor. Ratio(0, 0) is "0:0".
func Ratio(a, b int) string {
	g := GCD(a, b)
	if g == 0 {
		g = 1
	}
	return fmt.Sprintf("%d:%d", a/g, b/g)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := range values {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// WinTrend returns the rolling win percentage of the games matching swapped.
func WinTrend(games []model.GameEntry, swapped bool, window int) []float64 {
	var values []float64
	for _, g := range games {
		if g.PlayerSwapped != swapped {
			continue
		}
		v := 0.0
		if g.PlayerWon {
			v = percentScale
		}
		values = append(values, v)
	}
	return MovingAverage(values, window)
}
