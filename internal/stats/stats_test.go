package stats

import (
	"strings"
	"testing"

	"github.com/verte-zerg/mohall/internal/model"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		a, b int
		want string
	}{
		{2, 4, "1:2"},
		{0, 0, "0:0"},
		{3, 0, "1:0"},
		{0, 5, "0:1"},
		{4, 6, "2:3"},
		{7, 7, "1:1"},
	}
	for _, tc := range cases {
		if got := Ratio(tc.a, tc.b); got != tc.want {
			t.Fatalf("Ratio(%d, %d) = %q, want %q", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestGCD(t *testing.T) {
	if got := GCD(12, 0); got != 12 {
		t.Fatalf("GCD(12, 0) = %d", got)
	}
	if got := GCD(0, 0); got != 0 {
		t.Fatalf("GCD(0, 0) = %d", got)
	}
	if got := GCD(18, 24); got != 6 {
		t.Fatalf("GCD(18, 24) = %d", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalGamesPlayed != 0 || s.TotalWins != 0 || s.TotalGamesPlayedWithSwap != 0 {
		t.Fatalf("expected zero counters, got %+v", s)
	}
	if s.SwapWinRatio != "0:0" || s.NoSwapWinRatio != "0:0" {
		t.Fatalf("expected 0:0 ratios, got %q and %q", s.SwapWinRatio, s.NoSwapWinRatio)
	}
	for door := 1; door <= 3; door++ {
		if s.RewardsBehindDoor(door) != 0 {
			t.Fatalf("expected no rewards behind door %d", door)
		}
	}
}

func scenarioGames() []model.GameEntry {
	games := make([]model.GameEntry, 0, 10)
	for i := 0; i < 10; i++ {
		g := model.NewGameEntry("p")
		g.DoorCount = 3
		g.RewardDoorNumber = i%3 + 1
		g.PlayerSwapped = i < 6
		g.PlayerWon = i < 4 || i == 9
		games = append(games, g)
	}
	return games
}

func TestSummarizeSwapCounts(t *testing.T) {
	s := Summarize(scenarioGames())
	if s.TotalGamesPlayed != 10 {
		t.Fatalf("expected 10 games, got %d", s.TotalGamesPlayed)
	}
	if s.TotalGamesPlayedWithSwap != 6 || s.TotalGamesPlayedWithNoSwap != 4 {
		t.Fatalf("unexpected swap split: %d/%d", s.TotalGamesPlayedWithSwap, s.TotalGamesPlayedWithNoSwap)
	}
	if s.TotalWinsAfterSwap != 4 || s.TotalWinsWithoutSwap != 1 || s.TotalWins != 5 {
		t.Fatalf("unexpected wins: %+v", s)
	}
	if s.SwapWinRatio != "2:3" {
		t.Fatalf("expected swap ratio 2:3, got %q", s.SwapWinRatio)
	}
	if s.NoSwapWinRatio != "1:4" {
		t.Fatalf("expected no-swap ratio 1:4, got %q", s.NoSwapWinRatio)
	}
	if s.RewardsBehindDoor(1) != 4 || s.RewardsBehindDoor(2) != 3 || s.RewardsBehindDoor(3) != 3 {
		t.Fatalf("unexpected reward distribution: %v", s.RewardsByDoor)
	}
	if s.SwapWinRate() < 0.66 || s.SwapWinRate() > 0.67 {
		t.Fatalf("unexpected swap win rate %.3f", s.SwapWinRate())
	}
}

func TestSummarizeGrowsDoorDistribution(t *testing.T) {
	g := model.NewGameEntry("p")
	g.DoorCount = 5
	g.RewardDoorNumber = 5
	s := Summarize([]model.GameEntry{g})
	if len(s.RewardsByDoor) != 5 || s.RewardsBehindDoor(5) != 1 {
		t.Fatalf("unexpected distribution: %v", s.RewardsByDoor)
	}
	if s.RewardsBehindDoor(9) != 0 {
		t.Fatalf("expected 0 for a door never seen")
	}
}

func TestSummaryText(t *testing.T) {
	text := Summarize(scenarioGames()).Text()
	for _, want := range []string{
		"Total games played: 10",
		"Total games won: 5",
		"Total games won after swap: 4",
		"Swap win ratio: 2:3",
		"No swap win ratio: 1:4",
		"Rewards behind door 1/2/3: 4/3/3",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary text missing %q:\n%s", want, text)
		}
	}
}

func TestWinTrend(t *testing.T) {
	trend := WinTrend(scenarioGames(), true, 2)
	if len(trend) != 6 {
		t.Fatalf("expected 6 swap points, got %d", len(trend))
	}
	if trend[0] != 100 || trend[3] != 100 || trend[4] != 50 || trend[5] != 0 {
		t.Fatalf("unexpected trend: %v", trend)
	}
	stay := WinTrend(scenarioGames(), false, 10)
	if len(stay) != 4 || stay[3] != 25 {
		t.Fatalf("unexpected stay trend: %v", stay)
	}
}

func TestSummarizeSkipsRewardDoorOutsideGame(t *testing.T) {
	damaged := model.NewGameEntry("p")
	damaged.DoorCount = 3
	damaged.RewardDoorNumber = 50000000
	huge := model.NewGameEntry("p")
	huge.DoorCount = 50000000
	huge.RewardDoorNumber = 50000000
	ok := model.NewGameEntry("p")
	ok.DoorCount = 4
	ok.RewardDoorNumber = 4

	s := Summarize([]model.GameEntry{damaged, huge, ok})
	if s.TotalGamesPlayed != 3 {
		t.Fatalf("expected every game counted, got %d", s.TotalGamesPlayed)
	}
	if len(s.RewardsByDoor) != 4 || s.RewardsBehindDoor(4) != 1 {
		t.Fatalf("unexpected distribution: len=%d %v", len(s.RewardsByDoor), s.RewardsByDoor)
	}
}
