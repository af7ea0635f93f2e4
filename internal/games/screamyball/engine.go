package screamyball

import (
	"math/rand"

	"github.com/vovakirdan/screamy-ball/internal/core"
)

// Engine defaults, in tile units.
const (
	DefaultJumpHeight     = 5
	DefaultMinLength      = 2
	DefaultMaxLength      = 4
	DefaultObstacleHeight = 2
)

// Engine owns the ball and the obstacle and advances them one tick at a time.
// It is not safe for concurrent use; the host loop owns it exclusively.
type Engine struct {
	ball      Ball
	obstacle  Obstacle
	ballStart core.Location

	minHeight int // resting column
	maxHeight int // jump apex column
	width     int
	height    int

	minLength      int
	maxLength      int
	obstacleHeight int

	reachedMaxHeight bool
	cleared          int
	rng              *rand.Rand
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithJumpHeight sets how many tiles above the resting column the jump apex is.
func WithJumpHeight(tiles int) Option {
	return func(e *Engine) {
		if tiles > 0 {
			e.maxHeight = e.minHeight - tiles
		}
	}
}

// WithObstacleLength sets the bounds respawned obstacle lengths are drawn from.
func WithObstacleLength(min, max int) Option {
	return func(e *Engine) {
		if min > 0 && max >= min {
			e.minLength, e.maxLength = min, max
		}
	}
}

// WithObstacleHeight sets the obstacle height in tiles.
func WithObstacleHeight(tiles int) Option {
	return func(e *Engine) {
		if tiles > 0 {
			e.obstacleHeight = tiles
		}
	}
}

// WithSeed seeds the engine's random source. The source is seeded once and
// advanced across respawns.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// NewEngine creates an engine for a width x height playfield with the ball
// resting at ballStart.
func NewEngine(ballStart core.Location, width, height int, opts ...Option) *Engine {
	e := &Engine{
		ballStart:      ballStart,
		minHeight:      ballStart.Col(),
		maxHeight:      ballStart.Col() - DefaultJumpHeight,
		width:          width,
		height:         height,
		minLength:      DefaultMinLength,
		maxLength:      DefaultMaxLength,
		obstacleHeight: DefaultObstacleHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}

	e.ball = Ball{Location: ballStart, State: Rolling}
	e.obstacle = Obstacle{
		Location: core.NewLocation(width, e.minHeight),
		Type:     Low,
		Length:   1,
		Height:   e.obstacleHeight,
	}
	return e
}

// Tick advances the simulation by one step. A collision against the
// pre-tick configuration freezes everything in place.
func (e *Engine) Tick() {
	if e.ball.State == Collided {
		return
	}
	if e.HasCollided() {
		e.ball.State = Collided
		return
	}

	e.advanceObstacle()

	if e.ball.State == Jumping {
		e.advanceJump()
	}
}

// advanceObstacle moves the obstacle one tile toward the ball, or respawns it
// at the right edge once its trailing edge has left the playfield.
func (e *Engine) advanceObstacle() {
	if e.obstacle.Location.Row() > -e.obstacle.Length {
		e.obstacle.Location = e.obstacle.Location.Add(core.NewLocation(-1, 0))
		return
	}

	e.obstacle.Type = Low
	if e.rng.Intn(2) == 0 {
		e.obstacle.Type = High
	}
	e.obstacle.Length = e.minLength + e.rng.Intn(e.maxLength-e.minLength+1)

	col := e.minHeight
	if e.obstacle.Type == High {
		col = e.minHeight - e.obstacle.Height - 1
	}
	e.obstacle.Location = core.NewLocation(e.width, col)
	e.cleared++
}

// advanceJump moves the ball one tile along its triangular jump arc.
func (e *Engine) advanceJump() {
	loc := e.ball.Location
	if e.reachedMaxHeight {
		e.ball.Location = loc.WithCol(loc.Col() + 1)
		if e.ball.Location.Col() >= e.minHeight {
			e.ball.Location = loc.WithCol(e.minHeight)
			e.reachedMaxHeight = false
			e.ball.State = Rolling
		}
		return
	}

	e.ball.Location = loc.WithCol(loc.Col() - 1)
	if e.ball.Location.Col() <= e.maxHeight {
		e.reachedMaxHeight = true
	}
}

// HasCollided reports whether the ball and the obstacle currently overlap.
func (e *Engine) HasCollided() bool {
	lead := e.obstacle.Location.Row() - 1
	ballRow := e.ball.Location.Row()
	if lead <= ballRow-e.obstacle.Length || lead > ballRow {
		return false
	}

	switch e.obstacle.Type {
	case High:
		return e.ball.State != Ducking
	case Low:
		return e.ball.Location.Col() >= e.minHeight-e.obstacle.Height
	}
	return false
}

// SetMotionState requests a posture change from the input layer and reports
// whether it was honored. Collided is terminal until Reset, and only a tick
// can produce it.
func (e *Engine) SetMotionState(s MotionState) bool {
	current := e.ball.State
	if current == Collided {
		return false
	}

	switch s {
	case Jumping:
		if current == Jumping {
			return false
		}
	case Ducking:
		if current == Jumping {
			return false
		}
	case Rolling:
		// A jump lands on its own.
		if current == Jumping {
			return false
		}
	case Collided:
		return false
	default:
		return false
	}

	e.ball.State = s
	return true
}

// Reset returns the engine to its initial state without reallocating.
func (e *Engine) Reset() {
	e.ball.State = Rolling
	e.ball.Location = e.ballStart.WithCol(e.minHeight)
	e.reachedMaxHeight = false
	e.obstacle.Location = core.NewLocation(e.width, e.minHeight)
	e.obstacle.Type = Low
	e.obstacle.Length = 1
	e.cleared = 0
}

// Ball returns a copy of the ball.
func (e *Engine) Ball() Ball { return e.ball }

// Obstacle returns a copy of the obstacle.
func (e *Engine) Obstacle() Obstacle { return e.obstacle }

// MotionState returns the ball's motion state.
func (e *Engine) MotionState() MotionState { return e.ball.State }

// MinHeight returns the resting column.
func (e *Engine) MinHeight() int { return e.minHeight }

// MaxHeight returns the jump apex column.
func (e *Engine) MaxHeight() int { return e.maxHeight }

// Width returns the playfield width in tiles.
func (e *Engine) Width() int { return e.width }

// Height returns the playfield height in tiles.
func (e *Engine) Height() int { return e.height }

// Cleared returns how many obstacles have scrolled past since the last reset.
func (e *Engine) Cleared() int { return e.cleared }
