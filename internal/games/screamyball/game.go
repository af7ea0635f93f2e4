// Package screamyball implements Screamy Ball, a side-scrolling reflex game.
// A ball rolls along the ground while obstacles scroll toward it; low
// obstacles must be jumped over and high ones ducked under.
package screamyball

import (
	"time"

	"github.com/vovakirdan/screamy-ball/internal/config"
	"github.com/vovakirdan/screamy-ball/internal/core"
	"github.com/vovakirdan/screamy-ball/internal/registry"
)

// ID is the registry identifier and the leaderboard key.
const ID = "screamyball"

// Smallest playfield the game lays itself out on, in tiles.
const minFieldWidth = 12

// Game adapts Engine to the platform: input mapping, pacing, elapsed time
// and rendering.
type Game struct {
	engine     *Engine
	runtime    core.RuntimeConfig
	cfg        config.ScreamyConfig
	difficulty *config.DifficultyManager

	elapsed   time.Duration
	ticks     int
	duckLeft  int // ticks until an unrenewed duck ends
	gameOver  bool
	paused    bool
	originRow int // screen y of field column 0
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values fall back
// to the config file's settings.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// New creates a new Screamy Ball game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Screamy Ball"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadScreamy(configPath)
	if err != nil {
		cfg = config.DefaultScreamyConfig()
	}
	config.ApplyPreset(&cfg, difficultyPreset)

	width, height := fieldSize(runtime, cfg)
	ballStart := core.NewLocation(cfg.Board.BallRow, height-1-cfg.Board.GroundOffset)

	if g.engine != nil && g.cfg.Engine == cfg.Engine &&
		g.engine.Width() == width && g.engine.Height() == height &&
		g.engine.ballStart == ballStart {
		g.engine.Reset()
	} else {
		// A rebuilt engine continues the old one's random stream so a resized
		// run does not replay the opening obstacles.
		seed := runtime.Seed
		if g.engine != nil {
			seed = g.engine.rng.Int63()
		}
		g.engine = NewEngine(ballStart, width, height,
			WithJumpHeight(cfg.Engine.JumpHeight),
			WithObstacleLength(cfg.Engine.MinObstacleLength, cfg.Engine.MaxObstacleLength),
			WithObstacleHeight(cfg.Engine.ObstacleHeight),
			WithSeed(seed),
		)
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.originRow = cfg.Board.HUDRows
	g.elapsed = 0
	g.ticks = 0
	g.duckLeft = 0
	g.gameOver = false
	g.paused = false
}

// fieldSize converts the terminal size to playfield tiles, growing the field
// to fit a full jump above two stacked obstacles when the terminal is small.
func fieldSize(runtime core.RuntimeConfig, cfg config.ScreamyConfig) (width, height int) {
	width = runtime.ScreenW / cfg.Board.TileWidth
	height = runtime.ScreenH - cfg.Board.HUDRows

	minHeight := cfg.Board.GroundOffset + 1 + cfg.Engine.JumpHeight + 2*cfg.Engine.ObstacleHeight + 2
	if height < minHeight {
		height = minHeight
	}
	if width < minFieldWidth {
		width = minFieldWidth
	}
	if width <= cfg.Board.BallRow+1 {
		width = cfg.Board.BallRow + minFieldWidth
	}
	return width, height
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event

	switch {
	case in.Has(core.ActionJump):
		if g.engine.SetMotionState(Jumping) {
			g.duckLeft = 0
			events = append(events, core.EventJumped)
		}
	case in.Has(core.ActionDuck):
		if g.engine.SetMotionState(Ducking) {
			g.duckLeft = g.cfg.Input.DuckTicks
			events = append(events, core.EventDucked)
		}
	case in.Has(core.ActionStand):
		if g.engine.SetMotionState(Rolling) {
			g.duckLeft = 0
		}
	}

	delay := g.TickInterval()
	cleared := g.engine.Cleared()

	g.engine.Tick()

	if g.engine.MotionState() == Collided {
		g.gameOver = true
		events = append(events, core.EventCollided)
		return core.StepResult{State: g.State(), Events: events}
	}

	g.ticks++
	g.elapsed += delay

	if g.engine.Cleared() > cleared {
		events = append(events, core.EventCleared)
	}

	if g.engine.MotionState() == Ducking {
		g.duckLeft--
		if g.duckLeft <= 0 {
			g.engine.SetMotionState(Rolling)
			g.duckLeft = 0
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// TickInterval returns the delay before the next tick. It shrinks from the
// configured start delay toward the minimum as difficulty rises.
func (g *Game) TickInterval() time.Duration {
	if g.difficulty == nil {
		return config.DefaultScreamyConfig().Timing.StartDelay
	}
	return g.difficulty.Delay(g.cfg.Timing.StartDelay, g.cfg.Timing.MinDelay, g.engine.Cleared(), g.ticks)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.engine != nil {
		score = g.engine.Cleared()
	}
	return core.GameState{
		Score:    score,
		Elapsed:  g.elapsed,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Engine exposes the underlying simulation, read-only by convention.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
