// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/mohall/internal/game"
	"github.com/verte-zerg/mohall/internal/model"
	"github.com/verte-zerg/mohall/internal/stats"
)

const doorHeight = 5

// Model implements the Bubble Tea game UI.
type Model struct {
	config  model.Config
	engine  *game.Engine
	tracker *stats.Tracker

	width  int
	height int

	changed map[int]bool
	errMsg  string
}

var (
	directionsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	doorStyle       = lipgloss.NewStyle().
			Width(7).
			Height(doorHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#8C8C8C")).
			Foreground(lipgloss.Color("#F0F0F0"))
	selectedDoorStyle = doorStyle.Copy().BorderForeground(lipgloss.Color("#C89A3A")).Bold(true)
	disabledDoorStyle = doorStyle.Copy().BorderForeground(lipgloss.Color("#4A4A4A")).Foreground(lipgloss.Color("#6E6E6E"))
	openDoorStyle     = doorStyle.Copy().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#4A4A4A"))
	changedMarkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	rewardStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	emptyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// NewModel constructs a game TUI model around an engine whose results go to tracker.
func NewModel(cfg model.Config, engine *game.Engine, tracker *stats.Tracker) *Model {
	m := &Model{
		config:  cfg,
		engine:  engine,
		tracker: tracker,
		changed: map[int]bool{},
	}
	engine.Doors().Subscribe(func(ev game.DoorEvent) {
		m.changed[ev.Number] = true
	})
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter", " ", "c":
			m.beginAction()
			m.advance()
			return m, nil
		case "n":
			m.beginAction()
			m.engine.NewGame()
			return m, nil
		}
		if door, ok := doorKey(msg.String(), m.engine.DoorCount()); ok {
			m.beginAction()
			m.selectDoor(door)
		}
		return m, nil
	default:
		return m, nil
	}
}

func doorKey(key string, doorCount int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	n := int(key[0] - '0')
	if n > doorCount {
		return 0, false
	}
	return n, true
}

func (m *Model) beginAction() {
	m.errMsg = ""
	for k := range m.changed {
		delete(m.changed, k)
	}
}

// selectDoor only forwards picks the door can accept, so a click on an open
// door never clears the current choice.
func (m *Model) selectDoor(n int) {
	st := m.engine.Doors().Door(n)
	if st.Open || !st.Enabled {
		return
	}
	m.engine.SelectDoor(n)
	if m.config.AutoAdvance && m.engine.Stage() == game.StagePick {
		m.advance()
	}
}

func (m *Model) advance() {
	if err := m.engine.AdvanceStage(context.Background()); err != nil {
		m.errMsg = err.Error()
		logErrf("%v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	contentWidth := int(float64(width) * 0.70)
	if contentWidth < 20 {
		contentWidth = width
	}
	parts := []string{
		directionsStyle.Render(strings.Join(wrapWords(m.engine.Directions(), contentWidth), "\n")),
		"",
		m.renderDoors(),
		"",
		m.renderHelp(),
	}
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderDoors() string {
	doors := m.engine.Doors().States()
	rendered := make([]string, 0, len(doors))
	for i, st := range doors {
		rendered = append(rendered, m.renderDoor(i+1, st))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderDoor(number int, st game.DoorState) string {
	label := fmt.Sprintf("%d", number)
	style := doorStyle
	switch {
	case st.Open:
		style = openDoorStyle
		if st.Reward {
			label += "\n" + rewardStyle.Render("$$$")
		} else {
			label += "\n" + emptyStyle.Render("empty")
		}
	case st.Selected:
		style = selectedDoorStyle
	case !st.Enabled:
		style = disabledDoorStyle
	}
	if st.Selected {
		label += "\n" + "[you]"
	}
	mark := " "
	if m.changed[number] {
		mark = changedMarkStyle.Render("*")
	}
	return lipgloss.JoinVertical(lipgloss.Center, style.Render(label), mark)
}

func (m *Model) renderHelp() string {
	keys := fmt.Sprintf("Pick: 1-%d  Continue: enter  New game: n  Quit: q", m.engine.DoorCount())
	return footerStyle.Render(keys)
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Round %d", m.engine.Round()),
		fmt.Sprintf("Player %s", m.engine.Entry().PlayerName),
	}
	if m.tracker != nil {
		s := m.tracker.Summary()
		segments = append(segments,
			fmt.Sprintf("Games %d", s.TotalGamesPlayed),
			fmt.Sprintf("Wins %d", s.TotalWins),
			fmt.Sprintf("Swap %s", s.SwapWinRatio),
			fmt.Sprintf("Stay %s", s.NoSwapWinRatio),
		)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
