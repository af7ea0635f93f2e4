package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is an entry on the main menu.
type MenuChoice int

const (
	ChoicePlay MenuChoice = iota
	ChoiceHelp
	ChoiceScores
	ChoiceResetScores
	ChoiceQuit
)

// String returns the label shown in the menu.
func (c MenuChoice) String() string {
	switch c {
	case ChoicePlay:
		return "Play"
	case ChoiceHelp:
		return "Help"
	case ChoiceScores:
		return "High Scores"
	case ChoiceResetScores:
		return "Reset Scores"
	case ChoiceQuit:
		return "Quit"
	default:
		return "?"
	}
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

const banner = `
 ___  ___ ___ ___   _   __  __ __   __
/ __|/ __| _ \ __| /_\ |  \/  |\ \ / /
\__ \ (__|   / _| / _ \| |\/| | \ V /
|___/\___|_|_\___/_/ \_\_|  |_|  |_|
            B  A  L  L`

// MenuModel is the main menu: a cursor over a fixed list of choices.
type MenuModel struct {
	items  []MenuChoice
	cursor int
}

// NewMenuModel creates the main menu. Without a leaderboard the score
// entries are hidden.
func NewMenuModel(withScores bool) MenuModel {
	items := []MenuChoice{ChoicePlay, ChoiceHelp}
	if withScores {
		items = append(items, ChoiceScores, ChoiceResetScores)
	}
	items = append(items, ChoiceQuit)
	return MenuModel{items: items}
}

// Up moves the cursor up, stopping at the first entry.
func (m *MenuModel) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Down moves the cursor down, stopping at the last entry.
func (m *MenuModel) Down() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// Current returns the highlighted choice.
func (m MenuModel) Current() MenuChoice {
	return m.items[m.cursor]
}

// View renders the menu centered in width.
func (m MenuModel) View(width int, player, status string) string {
	var b strings.Builder

	for _, line := range strings.Split(strings.TrimPrefix(banner, "\n"), "\n") {
		b.WriteString(centerText(menuTitleStyle.Render(line), width, lipgloss.Width(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if player != "" {
		greeting := fmt.Sprintf("Playing as %s", player)
		b.WriteString(centerText(menuHintStyle.Render(greeting), width, len(greeting)))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		label := fmt.Sprintf("  %s  ", item)
		style := menuItemStyle
		if i == m.cursor {
			style = menuCurStyle
		}
		b.WriteString(centerText(style.Render(label), width, len(label)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), width, len(controls)))
	b.WriteString("\n")

	if status != "" {
		b.WriteString("\n")
		b.WriteString(centerText(statusStyle.Render(status), width, lipgloss.Width(status)))
		b.WriteString("\n")
	}

	return b.String()
}

// centerText pads an already-styled string of the given visible width so it
// sits centered within width.
func centerText(text string, width, visible int) string {
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}
