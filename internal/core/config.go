package core

import (
	"fmt"
	"time"
)

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int           // Obstacles cleared
	Elapsed  time.Duration // Survival time, the leaderboard value
	GameOver bool
	Paused   bool
}

// Event is something notable that happened during a tick.
type Event int

const (
	EventNone Event = iota
	EventJumped
	EventDucked
	EventCollided
	EventCleared
)

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the result carries the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}

// FormatElapsed renders a duration as mm:ss.cc for HUDs and leaderboards.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	centis := int64(d / (10 * time.Millisecond))
	minutes := centis / 6000
	seconds := (centis / 100) % 60
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis%100)
}
