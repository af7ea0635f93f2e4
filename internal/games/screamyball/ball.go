package screamyball

import "github.com/vovakirdan/screamy-ball/internal/core"

// MotionState is the ball's current posture or activity.
type MotionState int

const (
	Rolling MotionState = iota
	Ducking
	Jumping
	Collided
)

// String returns a human-readable name for the motion state.
func (s MotionState) String() string {
	switch s {
	case Rolling:
		return "Rolling"
	case Ducking:
		return "Ducking"
	case Jumping:
		return "Jumping"
	case Collided:
		return "Collided"
	default:
		return "Unknown"
	}
}

// Ball is the player-controlled entity.
type Ball struct {
	Location core.Location
	State    MotionState
}
