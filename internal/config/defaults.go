package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/screamy.yaml
var defaultScreamyYAML []byte

// DefaultScreamyConfig returns the built-in Screamy Ball configuration.
func DefaultScreamyConfig() ScreamyConfig {
	return ScreamyConfig{
		Engine: EngineConfig{
			JumpHeight:        5,
			MinObstacleLength: 2,
			MaxObstacleLength: 4,
			ObstacleHeight:    2,
		},
		Board: BoardConfig{
			TileWidth:    2,
			BallRow:      4,
			GroundOffset: 2,
			HUDRows:      2,
		},
		Timing: TimingConfig{
			StartDelay: 120 * time.Millisecond,
			MinDelay:   45 * time.Millisecond,
		},
		Input: InputConfig{
			DuckTicks: 6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, for `screamy config` style dumps.
func DefaultYAML() []byte {
	return defaultScreamyYAML
}
