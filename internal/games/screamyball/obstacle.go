package screamyball

import "github.com/vovakirdan/screamy-ball/internal/core"

// ObstacleType tells the player how to get past an obstacle.
type ObstacleType int

const (
	// High obstacles hang above the ground and must be ducked under.
	High ObstacleType = iota
	// Low obstacles sit on the ground and must be jumped over.
	Low
)

// String returns a human-readable name for the obstacle type.
func (t ObstacleType) String() string {
	switch t {
	case High:
		return "High"
	case Low:
		return "Low"
	default:
		return "Unknown"
	}
}

// Obstacle is the single hazard on the playfield. Its leading edge is
// Location.Row()-1 and its body trails Length tiles behind the leading edge,
// opposite the direction of travel. It is Height tiles tall.
type Obstacle struct {
	Location core.Location
	Type     ObstacleType
	Length   int
	Height   int
}

// Rows returns the first and last horizontal tile covered by the body,
// leading edge first.
func (o Obstacle) Rows() (first, last int) {
	return o.Location.Row() - 1, o.Location.Row() + o.Length - 2
}
