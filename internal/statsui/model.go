// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/mohall/internal/model"
	"github.com/verte-zerg/mohall/internal/stats"
	"github.com/verte-zerg/mohall/internal/store"
)

const plotHeight = 10

const (
	tabOverview = iota
	tabDoors
	tabHistory
)

const (
	filterPlayer = iota
	filterSimulated
	filterSince
	filterLast
	filterWindow
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store stats.GameStore
	cfg   model.StatsConfig
	now   func() time.Time

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	doorTable table.Model
	history   table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model.
func NewModel(st stats.GameStore, cfg model.StatsConfig) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		now:      time.Now,
		tabs:     []string{"Overview", "Doors", "History"},
		overview: viewport.New(0, 0),
	}
	m.doorTable = newTable(doorColumns())
	m.history = newTable(historyColumns())
	m.initInputs()
	m.refreshReport()
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
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "r":
			m.refreshReport()
			return m, nil
		case "g", "home":
			m.gotoEdge(true)
			return m, nil
		case "G", "end":
			m.gotoEdge(false)
			return m, nil
		default:
			var cmd tea.Cmd
			switch m.activeTab {
			case tabDoors:
				m.doorTable, cmd = m.doorTable.Update(msg)
			case tabHistory:
				m.history, cmd = m.history.Update(msg)
			default:
				m.overview, cmd = m.overview.Update(msg)
			}
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func newTable(columns []table.Column) table.Model {
	t := table.New(table.WithColumns(columns), table.WithHeight(1))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A"))
	t.SetStyles(styles)
	return t
}

func doorColumns() []table.Column {
	return []table.Column{
		{Title: "Door", Width: 6},
		{Title: "Rewards", Width: 9},
		{Title: "Share", Width: 8},
	}
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 16},
		{Title: "Player", Width: 18},
		{Title: "Doors", Width: 5},
		{Title: "First", Width: 5},
		{Title: "Final", Width: 5},
		{Title: "Reward", Width: 6},
		{Title: "Swap", Width: 4},
		{Title: "Result", Width: 6},
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Player: "),
		newFilterInput("Simulated (all/only/none): "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Trend window: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[filterPlayer].SetValue(m.cfg.Player)
	m.filterInputs[filterSimulated].SetValue(m.cfg.Simulated)
	if m.cfg.Since != nil {
		m.filterInputs[filterSince].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[filterSince].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[filterLast].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[filterLast].SetValue("")
	}
	m.filterInputs[filterWindow].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.doorTable.SetWidth(m.width)
	m.doorTable.SetHeight(maxInt(2, bodyHeight-1))
	m.history.SetWidth(m.width)
	m.history.SetHeight(maxInt(2, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	m.doorTable.Blur()
	m.history.Blur()
	switch m.activeTab {
	case tabDoors:
		m.doorTable.Focus()
	case tabHistory:
		m.history.Focus()
	}
}

func (m *Model) gotoEdge(top bool) {
	switch {
	case m.activeTab == tabDoors && top:
		m.doorTable.GotoTop()
	case m.activeTab == tabDoors:
		m.doorTable.GotoBottom()
	case m.activeTab == tabHistory && top:
		m.history.GotoTop()
	case m.activeTab == tabHistory:
		m.history.GotoBottom()
	case top:
		m.overview.GotoTop()
	default:
		m.overview.GotoBottom()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	player := m.cfg.Player
	if player == "" {
		player = "any"
	}
	simulated := m.cfg.Simulated
	if simulated == "" {
		simulated = store.SimulatedAll
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: player=%s  simulated=%s  since=%s  last=%s  window=%d", player, simulated, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Settings: /  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return m.renderFilterForm()
	}
	if len(m.report.Games) == 0 && m.errMsg == "" {
		return "No games found."
	}
	switch m.activeTab {
	case tabDoors:
		return tableMutedStyle.Render(m.doorTable.View())
	case tabHistory:
		return tableMutedStyle.Render(m.history.View())
	default:
		return fitLines(m.overview.View(), m.width, height)
	}
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.doorTable.SetRows(doorRows(report.Summary))
	m.history.SetRows(historyRows(report.Games, m.now()))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, width))
}

func renderOverview(report stats.Report, width int) string {
	if len(report.Games) == 0 {
		return "No games found."
	}
	s := report.Summary
	cards := []string{
		metricCard("Games", strconv.Itoa(s.TotalGamesPlayed)),
		metricCard("Wins", strconv.Itoa(s.TotalWins)),
		metricCard("Swap ratio", s.SwapWinRatio),
		metricCard("Stay ratio", s.NoSwapWinRatio),
		metricCard("Swap win %", fmt.Sprintf("%.1f%%", s.SwapWinRate()*100)),
		metricCard("Stay win %", fmt.Sprintf("%.1f%%", s.NoSwapWinRate()*100)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2], cards[3])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4], cards[5])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	counts := []string{
		fmt.Sprintf("Games played with swap: %d, won %d", s.TotalGamesPlayedWithSwap, s.TotalWinsAfterSwap),
		fmt.Sprintf("Games played without swap: %d, won %d", s.TotalGamesPlayedWithNoSwap, s.TotalWinsWithoutSwap),
	}
	var buf bytes.Buffer
	if err := stats.RenderTrendChart(&buf, report, width, plotHeight, true); err != nil {
		return summary + "\n\n" + strings.Join(counts, "\n") + "\n\nFailed to render trends: " + err.Error()
	}
	return summary + "\n\n" + strings.Join(counts, "\n") + "\n\n" + strings.TrimRight(buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func doorRows(s stats.Summary) []table.Row {
	rows := make([]table.Row, 0, len(s.RewardsByDoor))
	for i, count := range s.RewardsByDoor {
		share := 0.0
		if s.TotalGamesPlayed > 0 {
			share = float64(count) / float64(s.TotalGamesPlayed) * 100
		}
		rows = append(rows, table.Row{strconv.Itoa(i + 1), strconv.Itoa(count), fmt.Sprintf("%.1f%%", share)})
	}
	return rows
}

func historyRows(games []model.GameEntry, now time.Time) []table.Row {
	formatted := stats.HistoryRows(games, 0, now)
	rows := make([]table.Row, 0, len(formatted))
	for _, r := range formatted {
		rows = append(rows, table.Row(r))
	}
	return rows
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case "enter":
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.refreshReport()
		return m, nil
	case "tab", "down":
		return m, m.setFilterIndex(m.filterIndex + 1)
	case "shift+tab", "up":
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	idx = (idx + count) % count
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == idx {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	cfg, err := parseFilter(
		m.filterInputs[filterPlayer].Value(),
		m.filterInputs[filterSimulated].Value(),
		m.filterInputs[filterSince].Value(),
		m.filterInputs[filterLast].Value(),
		m.filterInputs[filterWindow].Value(),
	)
	if err != nil {
		return err
	}
	m.cfg = cfg
	return nil
}

func parseFilter(player, simulated, since, last, window string) (model.StatsConfig, error) {
	cfg := model.StatsConfig{
		Player:    strings.TrimSpace(player),
		Simulated: strings.ToLower(strings.TrimSpace(simulated)),
	}
	switch cfg.Simulated {
	case "", store.SimulatedAll, store.SimulatedOnly, store.SimulatedNone:
	default:
		return model.StatsConfig{}, fmt.Errorf("simulated must be all, only or none")
	}
	if v := strings.TrimSpace(since); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid since date: %w", err)
		}
		cfg.Since = &parsed
	}
	if v := strings.TrimSpace(last); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return model.StatsConfig{}, fmt.Errorf("last must be a non-negative number")
		}
		cfg.Last = n
	}
	if v := strings.TrimSpace(window); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return model.StatsConfig{}, fmt.Errorf("trend window must be >= 1")
		}
		cfg.CurveWindow = n
	}
	return cfg, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
