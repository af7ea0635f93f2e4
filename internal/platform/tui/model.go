package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/screamy-ball/internal/core"
	"github.com/vovakirdan/screamy-ball/internal/registry"
	"github.com/vovakirdan/screamy-ball/internal/storage"
	"github.com/vovakirdan/screamy-ball/internal/voice"
)

// AppState is the screen the application is showing.
type AppState int

const (
	StateMenu AppState = iota
	StateHelp
	StatePlaying
	StateGameOver
	StateConfirmReset
	StateScores
)

// String returns a human-readable name for the state.
func (s AppState) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StateHelp:
		return "Help"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	case StateConfirmReset:
		return "ConfirmingReset"
	case StateScores:
		return "Scores"
	default:
		return "Unknown"
	}
}

// Sound is the subset of the sound manager the UI triggers.
type Sound interface {
	Scream()
	Hop()
	ToggleMute() bool
	Muted() bool
}

// Options configures an AppModel.
type Options struct {
	Store       *storage.Store       // nil disables the leaderboard
	Sound       Sound                // nil disables sound
	Voice       <-chan voice.Command // nil disables voice input
	Player      string               // leaderboard name
	StartInGame bool                 // skip the menu
	Logger      *log.Logger
}

// AppModel is the top-level Bubble Tea model: menu, help, the running game,
// the game-over leaderboard and the reset confirmation.
type AppModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keyMapper  *KeyMapper
	state      AppState
	menu       MenuModel
	board      LeaderboardModel
	inputFrame core.InputFrame
	gameState  core.GameState
	tickGen    int
	scoreSaved bool
	status     string
	quitting   bool
}

// NewAppModel creates the application model around game.
func NewAppModel(game registry.Game, cfg core.RuntimeConfig, opts Options) AppModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := AppModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		state:      StateMenu,
		menu:       NewMenuModel(opts.Store != nil),
		board:      NewLeaderboardModel(opts.Store, opts.Player, cfg.ScreenW, cfg.ScreenH),
		inputFrame: core.NewInputFrame(),
	}

	if opts.StartInGame {
		m.state = StatePlaying
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m
}

// Init starts the tick loop when launched straight into a game and
// subscribes to voice input.
func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.state == StatePlaying {
		cmds = append(cmds, tickCmd(registry.TickInterval(m.game), m.tickGen))
	}
	if m.opts.Voice != nil {
		cmds = append(cmds, waitForVoice(m.opts.Voice))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.gen != m.tickGen || m.state != StatePlaying {
			return m, nil
		}
		return m.handleTick()

	case VoiceMsg:
		return m.handleVoice(msg)
	}

	return m, nil
}

// handleKey dispatches keyboard input by state.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StatePlaying:
		return m.handlePlayingKey(msg)
	case StateGameOver, StateScores:
		return m.handleBoardKey(msg)
	case StateConfirmReset:
		return m.handleConfirmKey(msg)
	case StateHelp:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect:
			m.state = StateMenu
		}
		return m, nil
	default:
		return m.handleMenuKey(msg)
	}
}

func (m AppModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.menu.Up()
	case MenuActionDown:
		m.menu.Down()
	case MenuActionSelect:
		m.status = ""
		switch m.menu.Current() {
		case ChoicePlay:
			return m.startGame()
		case ChoiceHelp:
			m.state = StateHelp
		case ChoiceScores:
			m.board.Load()
			m.state = StateScores
		case ChoiceResetScores:
			m.state = StateConfirmReset
		case ChoiceQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m AppModel) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionMute:
		if m.opts.Sound != nil {
			m.opts.Sound.ToggleMute()
		}
		return m, nil
	case core.ActionBack:
		// Leaving mid-run is only allowed from the pause screen
		if m.gameState.Paused {
			m.state = StateMenu
			m.tickGen++
		}
		return m, nil
	case core.ActionNone:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

func (m AppModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.board.keys
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.state = StateMenu
		return m, nil
	case key.Matches(msg, keys.Restart) && m.state == StateGameOver:
		return m.startGame()
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m AppModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionYes:
		m.status = "Leaderboard cleared."
		if m.opts.Store == nil {
			m.status = "No leaderboard to clear."
		} else if err := m.opts.Store.Reset(); err != nil {
			m.logger.Error("Failed to reset leaderboard", "error", err)
			m.status = "Could not clear the leaderboard: " + err.Error()
		}
		m.state = StateMenu
	case MenuActionNo, MenuActionBack:
		m.state = StateMenu
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleVoice feeds a voice command into the game and re-arms the
// subscription.
func (m AppModel) handleVoice(msg VoiceMsg) (tea.Model, tea.Cmd) {
	next := waitForVoice(m.opts.Voice)

	switch m.state {
	case StatePlaying:
		if a := msg.Command.Action(); a != core.ActionNone {
			m.inputFrame.Set(a)
		}
	case StateGameOver:
		if msg.Command == voice.CommandRestart || msg.Command == voice.CommandJump {
			model, cmd := m.startGame()
			return model, tea.Batch(cmd, next)
		}
	}
	return m, next
}

// handleResize processes window resize events.
func (m AppModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.board.Resize(msg.Width, msg.Height)

	// The playfield is laid out from the terminal size, so a live run restarts
	if m.state == StatePlaying && !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}

	return m, nil
}

// startGame resets the game and starts a fresh tick loop.
func (m AppModel) startGame() (tea.Model, tea.Cmd) {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.inputFrame.Clear()
	m.state = StatePlaying
	m.tickGen++
	return m, tickCmd(registry.TickInterval(m.game), m.tickGen)
}

// handleTick processes simulation ticks.
func (m AppModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.opts.Sound != nil && result.Has(core.EventJumped) {
		m.opts.Sound.Hop()
	}

	if m.gameState.GameOver {
		if m.opts.Sound != nil && result.Has(core.EventCollided) {
			m.opts.Sound.Scream()
		}
		m.saveScore()
		m.board.Load()
		m.state = StateGameOver
		return m, nil
	}

	// Continue ticking
	return m, tickCmd(registry.TickInterval(m.game), m.tickGen)
}

// saveScore records the finished run once. A missing store or name skips it.
func (m *AppModel) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	if m.opts.Store == nil || strings.TrimSpace(m.opts.Player) == "" {
		return
	}

	_, err := m.opts.Store.AddScore(storage.Player{
		Name:    m.opts.Player,
		Elapsed: m.gameState.Elapsed,
	})
	if err != nil {
		m.logger.Error("Failed to save score", "player", m.opts.Player, "error", err)
		m.status = "Score not saved: " + err.Error()
		return
	}
	m.logger.Info("Score saved", "player", m.opts.Player, "elapsed", m.gameState.Elapsed)
}

// saveScreenshot saves the current screen to a file.
func (m *AppModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".screamy", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StatePlaying:
		m.game.Render(m.screen)
		if m.opts.Sound != nil && m.opts.Sound.Muted() {
			m.screen.DrawTextColored(m.screen.Width()-8, m.screen.Height()-1, "[muted]", core.ColorGray)
		}
		return RenderScreen(m.screen)
	case StateGameOver:
		heading := fmt.Sprintf("SPLAT! You survived %s", core.FormatElapsed(m.gameState.Elapsed))
		return m.board.View(heading) + m.statusLine()
	case StateScores:
		return m.board.View("HIGH SCORES")
	case StateHelp:
		return m.helpView()
	case StateConfirmReset:
		return m.confirmView()
	default:
		return m.menu.View(m.config.ScreenW, m.opts.Player, m.status)
	}
}

func (m AppModel) statusLine() string {
	if m.status == "" {
		return ""
	}
	return "\n" + statusStyle.Render(m.status)
}

func (m AppModel) helpView() string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	section := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(heading.Render("HOW TO PLAY"))
	b.WriteString("\n\n")
	b.WriteString("Obstacles scroll toward the ball. Jump over the low ones,\n")
	b.WriteString("duck under the high ones. The longer you last, the faster it gets.\n\n")

	b.WriteString(section.Render("Keys"))
	b.WriteString("\n")
	for _, line := range []string{
		"space / w / up   jump",
		"s / down         duck",
		"p / esc          pause",
		"m                mute",
		"b                back to menu (while paused)",
		"r                play again (after a crash)",
		"q                quit",
	} {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(section.Render("Voice"))
	b.WriteString("\n")
	for _, line := range []string{
		`"jump", "hop", or just scream   jump`,
		`"duck", "down", "crouch"        duck`,
		`"stand", "roll"                 stop ducking`,
		`"pause", "stop", "wait"         pause`,
		`"restart", "again", "retry"     play again`,
	} {
		b.WriteString("  " + line + "\n")
	}
	if m.opts.Voice == nil {
		b.WriteString(dim.Render("  (start with --voice to enable)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("esc/b: back"))
	return b.String()
}

func (m AppModel) confirmView() string {
	warn := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("9")).
		Padding(1, 3)

	text := warn.Render("Reset the leaderboard?") + "\n\n" +
		"Every recorded run will be deleted.\n\n" +
		"y: yes   n/esc: no"

	rendered := box.Render(text)
	return "\n\n" + lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, rendered)
}

// State returns the current application state.
func (m AppModel) State() AppState {
	return m.state
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewAppModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
