package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/screamy-ball/internal/core"
	"github.com/vovakirdan/screamy-ball/internal/storage"
	"github.com/vovakirdan/screamy-ball/internal/voice"
)

// fakeGame ends the run after endAfter steps and remembers what it saw.
type fakeGame struct {
	endAfter int
	steps    int
	resets   int
	jumps    int
	state    core.GameState
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	res := core.StepResult{}
	if g.state.GameOver {
		res.State = g.state
		return res
	}
	g.steps++
	g.state.Elapsed += 100 * time.Millisecond
	if in.Has(core.ActionJump) {
		g.jumps++
		res.Events = append(res.Events, core.EventJumped)
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if g.endAfter > 0 && g.steps >= g.endAfter {
		g.state.GameOver = true
		res.Events = append(res.Events, core.EventCollided)
	}
	res.State = g.state
	return res
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "FAKE FIELD") }
func (g *fakeGame) State() core.GameState { return g.state }

type fakeSound struct {
	screams, hops int
	muted         bool
}

func (s *fakeSound) Scream() { s.screams++ }
func (s *fakeSound) Hop() { s.hops++ }
func (s *fakeSound) Muted() bool { return s.muted }

func (s *fakeSound) ToggleMute() bool {
	s.muted = !s.muted
	return s.muted
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return app, cmd
}

func tick(t *testing.T, m AppModel) (AppModel, tea.Cmd) {
	t.Helper()
	return send(t, m, TickMsg{Time: time.Now(), gen: m.tickGen})
}

func TestAppStartsAtMenu(t *testing.T) {
	m := NewAppModel(&fakeGame{}, testConfig(), Options{})
	if m.State() != StateMenu {
		t.Errorf("initial state = %v", m.State())
	}
	if m.Init() != nil {
		t.Error("menu without voice should not schedule anything")
	}
	if !strings.Contains(m.View(), "Play") {
		t.Error("menu view missing Play")
	}
}

func TestAppStartInGame(t *testing.T) {
	game := &fakeGame{}
	m := NewAppModel(game, testConfig(), Options{StartInGame: true})
	if m.State() != StatePlaying {
		t.Fatalf("state = %v, expected Playing", m.State())
	}
	if game.resets != 1 {
		t.Errorf("game reset %d times", game.resets)
	}
	if m.Init() == nil {
		t.Error("expected the first tick to be scheduled")
	}
}

func TestAppPlayUntilGameOver(t *testing.T) {
	game := &fakeGame{endAfter: 3}
	sound := &fakeSound{}
	store := openTestStore(t)
	m := NewAppModel(game, testConfig(), Options{Store: store, Sound: sound, Player: "ada"})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StatePlaying || cmd == nil {
		t.Fatalf("enter on Play: state %v, cmd %v", m.State(), cmd)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, cmd = tick(t, m)
	if game.jumps != 1 || sound.hops != 1 {
		t.Errorf("jumps=%d hops=%d, expected 1 each", game.jumps, sound.hops)
	}
	if cmd == nil {
		t.Error("a live run should schedule the next tick")
	}

	m, _ = tick(t, m)
	m, cmd = tick(t, m)
	if m.State() != StateGameOver {
		t.Fatalf("state = %v, expected GameOver", m.State())
	}
	if cmd != nil {
		t.Error("tick loop should stop at game over")
	}
	if sound.screams != 1 {
		t.Errorf("screams = %d, expected 1", sound.screams)
	}

	best, err := store.BestTime("ada")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if best != 300*time.Millisecond {
		t.Errorf("saved %v, expected 300ms", best)
	}
	if !strings.Contains(m.View(), "00:00.30") {
		t.Error("game over view should show the survived time")
	}

	// A late tick must not record the run twice
	m, _ = send(t, m, TickMsg{gen: m.tickGen})
	if runs, _ := store.TopPlayers(10); len(runs) != 1 {
		t.Errorf("%d runs stored, expected 1", len(runs))
	}

	m, cmd = send(t, m, runeKey('r'))
	if m.State() != StatePlaying || cmd == nil {
		t.Errorf("r after game over: state %v", m.State())
	}
	if game.resets != 2 {
		t.Errorf("game reset %d times, expected 2", game.resets)
	}
}

func TestAppAnonymousRunNotSaved(t *testing.T) {
	store := openTestStore(t)
	m := NewAppModel(&fakeGame{endAfter: 1}, testConfig(), Options{Store: store, Player: "  "})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)
	if m.State() != StateGameOver {
		t.Fatalf("state = %v", m.State())
	}
	if runs, _ := store.TopPlayers(10); len(runs) != 0 {
		t.Errorf("anonymous run stored: %+v", runs)
	}
}

func TestAppStaleTickIgnored(t *testing.T) {
	game := &fakeGame{}
	m := NewAppModel(game, testConfig(), Options{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := m.tickGen - 1

	m, cmd := send(t, m, TickMsg{gen: stale})
	if game.steps != 0 || cmd != nil {
		t.Error("a tick from an earlier run should be dropped")
	}

	m, _ = tick(t, m)
	if game.steps != 1 {
		t.Errorf("steps = %d, expected 1", game.steps)
	}
}

func TestAppBackOnlyWhilePaused(t *testing.T) {
	m := NewAppModel(&fakeGame{}, testConfig(), Options{StartInGame: true})

	m, _ = send(t, m, runeKey('b'))
	if m.State() != StatePlaying {
		t.Fatal("b should not leave a running game")
	}

	m, _ = send(t, m, runeKey('p'))
	m, _ = tick(t, m)
	if !m.gameState.Paused {
		t.Fatal("expected the game to be paused")
	}

	gen := m.tickGen
	m, _ = send(t, m, runeKey('b'))
	if m.State() != StateMenu {
		t.Errorf("state = %v, expected Menu", m.State())
	}
	if m.tickGen == gen {
		t.Error("leaving should invalidate pending ticks")
	}
}

func TestAppMuteToggle(t *testing.T) {
	sound := &fakeSound{}
	m := NewAppModel(&fakeGame{}, testConfig(), Options{Sound: sound, StartInGame: true})

	m, _ = send(t, m, runeKey('m'))
	if !sound.muted {
		t.Fatal("m should mute")
	}
	if !strings.Contains(m.View(), "[muted]") {
		t.Error("muted indicator missing")
	}
}

func TestAppHelpScreen(t *testing.T) {
	m := NewAppModel(&fakeGame{}, testConfig(), Options{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateHelp {
		t.Fatalf("state = %v, expected Help", m.State())
	}
	if !strings.Contains(m.View(), "--voice") {
		t.Error("help should mention how to enable voice")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != StateMenu {
		t.Errorf("state = %v, expected Menu", m.State())
	}
}

func TestAppConfirmReset(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.AddScore(storage.Player{Name: "ada", Elapsed: time.Second}); err != nil {
		t.Fatal(err)
	}
	m := NewAppModel(&fakeGame{}, testConfig(), Options{Store: store})

	// Play, Help, High Scores, Reset Scores
	for range 3 {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateConfirmReset {
		t.Fatalf("state = %v, expected ConfirmingReset", m.State())
	}

	m, _ = send(t, m, runeKey('n'))
	if m.State() != StateMenu {
		t.Fatalf("n should cancel, state = %v", m.State())
	}
	if runs, _ := store.TopPlayers(10); len(runs) != 1 {
		t.Fatal("cancel should keep the leaderboard")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runeKey('y'))
	if m.State() != StateMenu {
		t.Errorf("state = %v, expected Menu", m.State())
	}
	if runs, _ := store.TopPlayers(10); len(runs) != 0 {
		t.Errorf("%d runs left after reset", len(runs))
	}
	if !strings.Contains(m.View(), "Leaderboard cleared.") {
		t.Error("menu should confirm the reset")
	}
}

func TestAppScoresScreen(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.AddScore(storage.Player{Name: "ada", Elapsed: 2 * time.Second}); err != nil {
		t.Fatal(err)
	}
	m := NewAppModel(&fakeGame{}, testConfig(), Options{Store: store, Player: "ada"})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateScores {
		t.Fatalf("state = %v, expected Scores", m.State())
	}
	if !strings.Contains(m.View(), "00:02.00") {
		t.Error("scores view should list the stored run")
	}

	m, _ = send(t, m, runeKey('r'))
	if m.State() != StateScores {
		t.Error("r should only restart from the game over screen")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != StateMenu {
		t.Errorf("state = %v, expected Menu", m.State())
	}
}

func TestAppVoiceCommands(t *testing.T) {
	game := &fakeGame{endAfter: 2}
	ch := make(chan voice.Command, 1)
	m := NewAppModel(game, testConfig(), Options{Voice: ch, StartInGame: true})

	if m.Init() == nil {
		t.Fatal("expected tick and voice subscriptions")
	}

	m, cmd := send(t, m, VoiceMsg{Command: voice.CommandJump})
	if cmd == nil {
		t.Error("voice subscription should be re-armed")
	}
	if !m.inputFrame.Has(core.ActionJump) {
		t.Error("voice jump should reach the input frame")
	}

	m, _ = tick(t, m)
	m, _ = tick(t, m)
	if m.State() != StateGameOver {
		t.Fatalf("state = %v, expected GameOver", m.State())
	}

	m, _ = send(t, m, VoiceMsg{Command: voice.CommandDuck})
	if m.State() != StateGameOver {
		t.Error("duck should not restart a finished run")
	}

	m, cmd = send(t, m, VoiceMsg{Command: voice.CommandRestart})
	if m.State() != StatePlaying || cmd == nil {
		t.Errorf("voice restart: state %v", m.State())
	}
}

func TestAppResizeRestartsLiveRun(t *testing.T) {
	game := &fakeGame{}
	m := NewAppModel(game, testConfig(), Options{StartInGame: true})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resets != 2 {
		t.Errorf("resets = %d, expected 2", game.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "FAKE FIELD") {
		t.Error("playing view should render the game")
	}
}

func TestAppQuit(t *testing.T) {
	m := NewAppModel(&fakeGame{}, testConfig(), Options{StartInGame: true})
	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil || !m.quitting {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestAppStateString(t *testing.T) {
	if StateConfirmReset.String() != "ConfirmingReset" || AppState(99).String() != "Unknown" {
		t.Error("unexpected state names")
	}
}

func TestAppGameOverShowsPersonalBest(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.AddScore(storage.Player{Name: "ada", Elapsed: 2 * time.Second}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddScore(storage.Player{Name: "bob", Elapsed: 5 * time.Second}); err != nil {
		t.Fatal(err)
	}
	m := NewAppModel(&fakeGame{endAfter: 1}, testConfig(), Options{Store: store, Player: "ada"})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)
	if m.State() != StateGameOver {
		t.Fatalf("state = %v, expected GameOver", m.State())
	}

	view := m.View()
	if !strings.Contains(view, "your best 00:02.00") {
		t.Error("game over view should show the player's best run")
	}
	if !strings.Contains(view, "best 00:05.00") {
		t.Error("game over view should show the overall best run")
	}
}
