package screamyball

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/screamy-ball/internal/config"
	"github.com/vovakirdan/screamy-ball/internal/core"
	"github.com/vovakirdan/screamy-ball/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 12345}
}

// newTestGame pins the config to the embedded defaults so a user config in
// the home directory cannot leak into the test.
func newTestGame(t *testing.T) *Game {
	t.Helper()

	path := filepath.Join(t.TempDir(), "screamy.yaml")
	if err := os.WriteFile(path, config.DefaultYAML(), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	g := New()
	g.Reset(testRuntime())
	return g
}

// parkObstacle moves the obstacle far away so nothing collides.
func parkObstacle(g *Game) {
	g.engine.obstacle.Location = core.NewLocation(1000, g.engine.MinHeight())
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("%q not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", ID, err)
	}
	if g.Title() != "Screamy Ball" {
		t.Errorf("Title() = %q", g.Title())
	}
	if _, ok := g.(registry.Paced); !ok {
		t.Error("screamyball should set its own tick pace")
	}
}

func TestGameResetLayout(t *testing.T) {
	g := newTestGame(t)
	e := g.Engine()

	// 80 columns at two characters per tile, 24 rows minus a two-row HUD
	if e.Width() != 40 || e.Height() != 22 {
		t.Errorf("field = %dx%d, expected 40x22", e.Width(), e.Height())
	}
	if e.Ball().Location != core.NewLocation(4, 19) {
		t.Errorf("ball at %v, expected {row=4, col=19}", e.Ball().Location)
	}
	if e.MaxHeight() != 19-5 {
		t.Errorf("MaxHeight() = %d, expected 14", e.MaxHeight())
	}

	state := g.State()
	if state.GameOver || state.Paused || state.Score != 0 || state.Elapsed != 0 {
		t.Errorf("fresh state = %+v", state)
	}
}

func TestGameResetTinyTerminal(t *testing.T) {
	g := newTestGame(t)
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, Seed: 1})

	e := g.Engine()
	if e.Width() < minFieldWidth {
		t.Errorf("width %d below minimum %d", e.Width(), minFieldWidth)
	}
	if e.MaxHeight() < 0 {
		t.Errorf("jump apex %d leaves the field", e.MaxHeight())
	}
}

func TestGameStepAdvancesObstacleAndTime(t *testing.T) {
	g := newTestGame(t)
	start := g.Engine().Obstacle().Location

	var res core.StepResult
	for i := 0; i < 3; i++ {
		res = g.Step(core.NewInputFrame())
	}

	if got := g.Engine().Obstacle().Location; got != start.Add(core.NewLocation(-3, 0)) {
		t.Errorf("obstacle at %v after 3 ticks, started at %v", got, start)
	}
	if res.State.Elapsed != 360*time.Millisecond {
		t.Errorf("elapsed = %v, expected 360ms", res.State.Elapsed)
	}
}

func TestGameJump(t *testing.T) {
	g := newTestGame(t)
	parkObstacle(g)

	res := g.Step(frame(core.ActionJump))
	if !res.Has(core.EventJumped) {
		t.Error("expected jump event")
	}
	if g.Engine().MotionState() != Jumping {
		t.Fatalf("state = %v, expected Jumping", g.Engine().MotionState())
	}
	if g.Engine().Ball().Location.Col() != g.Engine().MinHeight()-1 {
		t.Error("ball should rise on the same tick the jump starts")
	}

	res = g.Step(frame(core.ActionJump))
	if res.Has(core.EventJumped) {
		t.Error("a second jump mid-air should be ignored")
	}
}

func TestGameDuckExpires(t *testing.T) {
	g := newTestGame(t)
	parkObstacle(g)
	duckTicks := g.cfg.Input.DuckTicks

	res := g.Step(frame(core.ActionDuck))
	if !res.Has(core.EventDucked) {
		t.Error("expected duck event")
	}

	for i := 1; i < duckTicks; i++ {
		if g.Engine().MotionState() != Ducking {
			t.Fatalf("duck ended after %d ticks, expected %d", i, duckTicks)
		}
		g.Step(core.NewInputFrame())
	}

	if g.Engine().MotionState() != Rolling {
		t.Errorf("state after %d ticks = %v, expected Rolling", duckTicks, g.Engine().MotionState())
	}
}

func TestGameStandEndsDuck(t *testing.T) {
	g := newTestGame(t)
	parkObstacle(g)

	g.Step(frame(core.ActionDuck))
	g.Step(frame(core.ActionStand))

	if g.Engine().MotionState() != Rolling {
		t.Errorf("state = %v, expected Rolling", g.Engine().MotionState())
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t)
	before := g.Engine().Obstacle()

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	g.Step(core.NewInputFrame())
	if g.Engine().Obstacle() != before || g.State().Elapsed != 0 {
		t.Error("paused game should not advance")
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("second pause should resume")
	}
	if g.Engine().Obstacle() == before {
		t.Error("resumed game should advance on the same step")
	}
}

func TestGameCollisionEndsRun(t *testing.T) {
	g := newTestGame(t)
	e := g.Engine()

	g.Step(core.NewInputFrame())
	elapsed := g.State().Elapsed

	e.obstacle = Obstacle{
		Location: core.NewLocation(e.Ball().Location.Row()+1, e.MinHeight()),
		Type:     Low,
		Length:   2,
		Height:   2,
	}

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver || !res.Has(core.EventCollided) {
		t.Fatalf("expected game over with a collision event, got %+v", res)
	}
	if res.State.Elapsed != elapsed {
		t.Errorf("elapsed moved on the collision tick: %v -> %v", elapsed, res.State.Elapsed)
	}

	again := g.Step(frame(core.ActionJump))
	if len(again.Events) != 0 || again.State != res.State {
		t.Error("a finished run should ignore further steps")
	}
}

func TestGameClearedScores(t *testing.T) {
	g := newTestGame(t)
	e := g.Engine()
	e.obstacle.Location = core.NewLocation(-e.obstacle.Length, e.MinHeight())

	res := g.Step(core.NewInputFrame())
	if !res.Has(core.EventCleared) {
		t.Error("expected cleared event on respawn")
	}
	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}
}

func TestGameResetReusesEngine(t *testing.T) {
	g := newTestGame(t)
	e := g.Engine()
	e.ball.State = Collided
	g.gameOver = true
	g.elapsed = time.Second

	g.Reset(testRuntime())
	if g.Engine() != e {
		t.Error("same dimensions should reuse the engine")
	}
	if e.MotionState() != Rolling || g.State().GameOver || g.State().Elapsed != 0 {
		t.Errorf("reset left state behind: %v %+v", e.MotionState(), g.State())
	}

	g.Reset(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: 1})
	if g.Engine() == e {
		t.Error("new dimensions should rebuild the engine")
	}
}

func TestGameTickIntervalShrinks(t *testing.T) {
	g := newTestGame(t)
	if got := g.TickInterval(); got != g.cfg.Timing.StartDelay {
		t.Errorf("initial interval = %v, expected %v", got, g.cfg.Timing.StartDelay)
	}

	g.engine.cleared = g.cfg.Difficulty.Progression.MaxAt
	if got := g.TickInterval(); got != g.cfg.Timing.MinDelay {
		t.Errorf("max-difficulty interval = %v, expected %v", got, g.cfg.Timing.MinDelay)
	}
}

func TestGameFixedPreset(t *testing.T) {
	g := newTestGame(t)
	SetDifficultyPreset("fixed")
	g.Reset(testRuntime())

	g.engine.cleared = 1000
	if got := g.TickInterval(); got != g.cfg.Timing.StartDelay {
		t.Errorf("fixed preset interval = %v, expected %v", got, g.cfg.Timing.StartDelay)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	e := g.Engine()
	groundRow := screen.Row(g.screenY(e.MinHeight() + 1))
	if strings.Count(groundRow, string(GroundChar)) != 80 {
		t.Errorf("ground row = %q", groundRow)
	}

	ballX := e.Ball().Location.Row() * g.cfg.Board.TileWidth
	if got := screen.Get(ballX, g.screenY(e.MinHeight())); got != ballBottom[0] {
		t.Errorf("ball glyph = %q, expected %q", got, ballBottom[0])
	}
	if !strings.Contains(screen.Row(0), "Time 00:00.00") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}

	e.obstacle.Location = core.NewLocation(10, e.MinHeight())
	e.obstacle.Length = 2
	g.Render(screen)
	cell := screen.GetCell(9*g.cfg.Board.TileWidth, g.screenY(e.MinHeight()))
	if cell.Rune != LowChar || cell.Color != core.ColorGreen {
		t.Errorf("obstacle cell = %+v", cell)
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
}

func TestGameRenderedObstacleMatchesCollision(t *testing.T) {
	g := newTestGame(t)
	e := g.Engine()
	tw := g.cfg.Board.TileWidth
	screen := core.NewScreen(80, 24)

	// A ducking ball is one tile tall, so a low obstacle's top tile over the
	// ball's row stays visible.
	e.ball.State = Ducking
	ballRow := e.Ball().Location.Row()
	aboveBall := g.screenY(e.MinHeight() - 1)

	for length := 2; length <= 4; length++ {
		for row := ballRow - length - 1; row <= ballRow+length+1; row++ {
			e.obstacle = Obstacle{
				Location: core.NewLocation(row, e.MinHeight()),
				Type:     Low,
				Length:   length,
				Height:   2,
			}
			g.Render(screen)

			drawn := screen.Get(ballRow*tw, aboveBall) == LowChar
			if hit := e.HasCollided(); drawn != hit {
				t.Errorf("row=%d len=%d: obstacle drawn over ball=%v, HasCollided()=%v",
					row, length, drawn, hit)
			}
		}
	}
}

func TestGameRebuiltEngineDoesNotReplayObstacles(t *testing.T) {
	draw := func(e *Engine) []Obstacle {
		var out []Obstacle
		for i := 0; i < 12; i++ {
			e.obstacle.Location = core.NewLocation(-e.obstacle.Length, e.MinHeight())
			e.advanceObstacle()
			out = append(out, e.Obstacle())
		}
		return out
	}

	big := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: testRuntime().Seed}

	resized := newTestGame(t)
	resized.Reset(big)
	fresh := New()
	fresh.Reset(big)

	a, b := draw(resized.Engine()), draw(fresh.Engine())
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("an engine rebuilt on resize replayed the opening obstacle sequence")
	}
}
