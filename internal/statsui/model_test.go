package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/mohall/internal/model"
)

type memoryStore struct {
	games   []model.GameEntry
	lastCfg model.StatsConfig
	err     error
}

func (s *memoryStore) InsertGame(_ context.Context, entry model.GameEntry) (int64, error) {
	s.games = append(s.games, entry)
	return int64(len(s.games)), nil
}

func (s *memoryStore) ListGames(_ context.Context, cfg model.StatsConfig) ([]model.GameEntry, error) {
	s.lastCfg = cfg
	if s.err != nil {
		return nil, s.err
	}
	return s.games, nil
}

func sampleGames() []model.GameEntry {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	games := []model.GameEntry{}
	for i := 0; i < 4; i++ {
		g := model.NewGameEntry("alice")
		g.PlayedAt = base.Add(time.Duration(i) * time.Minute)
		g.DoorCount = 3
		g.RewardDoorNumber = i%3 + 1
		g.FirstChosenDoorNumber = 1
		g.FinalChosenDoorNumber = 2
		g.PlayerSwapped = true
		g.PlayerWon = g.RewardDoorNumber == 2
		games = append(games, g)
	}
	return games
}

func sized(m *Model) *Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(*Model)
}

func TestOverviewShowsRatios(t *testing.T) {
	st := &memoryStore{games: sampleGames()}
	m := sized(NewModel(st, model.StatsConfig{CurveWindow: 5}))
	view := m.View()
	for _, want := range []string{"Overview", "Swap ratio", "1:4", "Games played with swap: 4, won 1", "Win Trend (0-100%)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestEmptyStore(t *testing.T) {
	m := sized(NewModel(&memoryStore{}, model.StatsConfig{CurveWindow: 5}))
	if !strings.Contains(m.View(), "No games found.") {
		t.Fatalf("expected empty message, got:\n%s", m.View())
	}
}

func TestLoadErrorShown(t *testing.T) {
	m := sized(NewModel(&memoryStore{err: errors.New("disk gone")}, model.StatsConfig{}))
	if !strings.Contains(m.View(), "disk gone") {
		t.Fatalf("expected error in view, got:\n%s", m.View())
	}
}

func TestTabNavigation(t *testing.T) {
	m := sized(NewModel(&memoryStore{games: sampleGames()}, model.StatsConfig{CurveWindow: 5}))
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabDoors {
		t.Fatalf("expected doors tab, got %d", m.activeTab)
	}
	if rows := m.doorTable.Rows(); len(rows) != 3 || rows[1][1] != "1" {
		t.Fatalf("unexpected door rows: %v", rows)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabHistory {
		t.Fatalf("expected history tab, got %d", m.activeTab)
	}
	if rows := m.history.Rows(); len(rows) != 4 {
		t.Fatalf("expected 4 history rows, got %d", len(rows))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected wrap to overview, got %d", m.activeTab)
	}
}

func TestFilterAppliesToQuery(t *testing.T) {
	st := &memoryStore{games: sampleGames()}
	m := sized(NewModel(st, model.StatsConfig{CurveWindow: 5}))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	m.filterInputs[filterPlayer].SetValue("alice")
	m.filterInputs[filterSimulated].SetValue("none")
	m.filterInputs[filterLast].SetValue("2")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter mode to close")
	}
	if st.lastCfg.Player != "alice" || st.lastCfg.Simulated != "none" || st.lastCfg.Last != 2 {
		t.Fatalf("unexpected query config: %+v", st.lastCfg)
	}
}

func TestFilterRejectsBadInput(t *testing.T) {
	m := sized(NewModel(&memoryStore{}, model.StatsConfig{CurveWindow: 5}))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m.filterInputs[filterSimulated].SetValue("maybe")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode || m.filterError == "" {
		t.Fatalf("expected filter error, mode=%v err=%q", m.filterMode, m.filterError)
	}
}

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter(" bob ", "ONLY", "2026-01-02", "", "7")
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}
	if cfg.Player != "bob" || cfg.Simulated != "only" || cfg.CurveWindow != 7 || cfg.Last != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Since == nil || cfg.Since.Day() != 2 {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}
	if _, err := parseFilter("", "", "02/01/2026", "", ""); err == nil {
		t.Fatalf("expected date error")
	}
	if _, err := parseFilter("", "", "", "-1", ""); err == nil {
		t.Fatalf("expected last error")
	}
	if _, err := parseFilter("", "", "", "", "0"); err == nil {
		t.Fatalf("expected window error")
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 5); got != "ab..." {
		t.Fatalf("got %q", got)
	}
	if got := truncateLine("abc", 5); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
