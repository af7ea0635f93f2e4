package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/screamy-ball/internal/core"
	"github.com/vovakirdan/screamy-ball/internal/storage"
)

// Leaderboard layout constants
const (
	minWidthSideBySide = 84 // Minimum width to show both tables side by side
	leaderboardRows    = 10
)

// LeaderboardKeyMap defines the key bindings for the leaderboard views.
type LeaderboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Restart, k.Back, k.Quit},
	}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch table"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel shows the overall top runs next to the current player's
// own best runs.
type LeaderboardModel struct {
	store     *storage.Store
	player    string
	top       []storage.Player
	mine      []storage.Player
	stats     *storage.Stats
	best      time.Duration
	err       error
	topTable  table.Model
	mineTable table.Model
	focusMine bool
	help      help.Model
	keys      LeaderboardKeyMap
	width     int
	height    int
}

// NewLeaderboardModel creates a leaderboard for the given player.
func NewLeaderboardModel(store *storage.Store, player string, width, height int) LeaderboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := LeaderboardModel{
		store:  store,
		player: player,
		help:   h,
		keys:   DefaultLeaderboardKeyMap(),
		width:  width,
		height: height,
	}
	m.rebuildTables()
	return m
}

// Load refreshes both tables from the store.
func (m *LeaderboardModel) Load() {
	m.top, m.mine, m.stats, m.best, m.err = nil, nil, nil, 0, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	if m.top, m.err = m.store.TopPlayers(leaderboardRows); m.err == nil && m.player != "" {
		m.mine, m.err = m.store.PlayerTopScores(m.player, leaderboardRows)
		if m.err == nil {
			m.best, m.err = m.store.BestTime(m.player)
		}
	}
	if m.err == nil {
		m.stats, m.err = m.store.Stats()
	}
	m.updateTableRows()
}

// Resize adapts the tables to a new terminal size.
func (m *LeaderboardModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.rebuildTables()
	m.updateTableRows()
}

// rebuildTables creates both tables with columns fitted to the width.
func (m *LeaderboardModel) rebuildTables() {
	tableWidth := m.width - 6
	if m.width >= minWidthSideBySide {
		tableWidth = m.width/2 - 6
	}
	nameWidth := tableWidth - 6 - 10 - 14
	if nameWidth < 8 {
		nameWidth = 8
	}
	if nameWidth > 20 {
		nameWidth = 20
	}

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: nameWidth},
		{Title: "Time", Width: 10},
		{Title: "Date", Width: 14},
	}

	height := leaderboardRows + 1
	if m.width < minWidthSideBySide {
		height = (m.height - 12) / 2
	}
	if height < 3 {
		height = 3
	}

	m.topTable = newLeaderboardTable(columns, height, !m.focusMine)
	m.mineTable = newLeaderboardTable(columns, height, m.focusMine)
}

func newLeaderboardTable(columns []table.Column, height int, focused bool) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(focused),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows updates the tables with the loaded runs.
func (m *LeaderboardModel) updateTableRows() {
	m.topTable.SetRows(playerRows(m.top))
	m.mineTable.SetRows(playerRows(m.mine))
	m.topTable.GotoTop()
	m.mineTable.GotoTop()
}

func playerRows(players []storage.Player) []table.Row {
	rows := make([]table.Row, len(players))
	for i, p := range players {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			p.Name,
			core.FormatElapsed(p.Elapsed),
			p.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Update handles scrolling and focus keys. Navigation away from the
// leaderboard is left to the caller.
func (m LeaderboardModel) Update(msg tea.Msg) (LeaderboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Switch):
			m.focusMine = !m.focusMine
			if m.focusMine {
				m.topTable.Blur()
				m.mineTable.Focus()
			} else {
				m.mineTable.Blur()
				m.topTable.Focus()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			if m.focusMine {
				m.mineTable, cmd = m.mineTable.Update(msg)
			} else {
				m.topTable, cmd = m.topTable.Update(msg)
			}
			return m, cmd
		}
	}

	return m, nil
}

// View renders both tables under the given heading.
func (m LeaderboardModel) View(heading string) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(heading), m.width, lipgloss.Width(heading)))
	b.WriteString("\n\n")

	if m.store == nil {
		return b.String() + m.renderEmpty("Leaderboard unavailable: no score database.") + "\n"
	}
	if m.err != nil {
		return b.String() + m.renderEmpty("Could not load scores: "+m.err.Error()) + "\n"
	}

	top := m.renderTable("Top players", m.topTable, len(m.top) == 0, !m.focusMine)
	mineTitle := "Your best"
	if m.player != "" {
		mineTitle = fmt.Sprintf("%s's best", m.player)
	}
	mine := m.renderTable(mineTitle, m.mineTable, len(m.mine) == 0, m.focusMine)

	var body string
	if m.width >= minWidthSideBySide {
		body = lipgloss.JoinHorizontal(lipgloss.Top, top, "  ", mine)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, top, mine)
	}
	b.WriteString(body)
	b.WriteString("\n")

	if m.stats != nil && m.stats.Runs > 0 {
		summary := fmt.Sprintf("%d runs by %d players  |  best %s  |  average %s",
			m.stats.Runs, m.stats.Players,
			core.FormatElapsed(m.stats.Best), core.FormatElapsed(m.stats.Average))
		if m.best > 0 {
			summary += fmt.Sprintf("  |  your best %s", core.FormatElapsed(m.best))
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(summary))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m LeaderboardModel) renderTable(title string, t table.Model, empty, focused bool) string {
	border := lipgloss.Color("240")
	if focused {
		border = lipgloss.Color("57")
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	content := t.View()
	if empty {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No runs recorded yet.")
	}

	return style.Render(lipgloss.NewStyle().Bold(true).Render(title) + "\n" + content)
}

func (m LeaderboardModel) renderEmpty(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4).
		Render(text)
}
