// Package config provides YAML-based game configuration loading and
// difficulty management for Screamy Ball.
package config

import (
	"fmt"
	"time"
)

// ScreamyConfig contains all configuration for the Screamy Ball game.
type ScreamyConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// EngineConfig defines the simulation constants, all in tile units.
type EngineConfig struct {
	JumpHeight        int `yaml:"jump_height"`
	MinObstacleLength int `yaml:"min_obstacle_length"`
	MaxObstacleLength int `yaml:"max_obstacle_length"`
	ObstacleHeight    int `yaml:"obstacle_height"`
}

// BoardConfig defines how the playfield maps onto the terminal.
type BoardConfig struct {
	TileWidth    int `yaml:"tile_width"`
	BallRow      int `yaml:"ball_row"`
	GroundOffset int `yaml:"ground_offset"`
	HUDRows      int `yaml:"hud_rows"`
}

// TimingConfig defines the tick cadence. The delay shrinks from StartDelay
// toward MinDelay as difficulty rises.
type TimingConfig struct {
	StartDelay time.Duration `yaml:"start_delay"`
	MinDelay   time.Duration `yaml:"min_delay"`
}

// InputConfig defines input handling parameters.
type InputConfig struct {
	DuckTicks int `yaml:"duck_ticks"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// Validate reports the first inconsistent setting.
func (c ScreamyConfig) Validate() error {
	e := c.Engine
	switch {
	case e.JumpHeight < 1:
		return fmt.Errorf("engine.jump_height must be at least 1, got %d", e.JumpHeight)
	case e.ObstacleHeight < 1:
		return fmt.Errorf("engine.obstacle_height must be at least 1, got %d", e.ObstacleHeight)
	case e.MinObstacleLength < 1:
		return fmt.Errorf("engine.min_obstacle_length must be at least 1, got %d", e.MinObstacleLength)
	case e.MaxObstacleLength < e.MinObstacleLength:
		return fmt.Errorf("engine.max_obstacle_length (%d) is below min_obstacle_length (%d)",
			e.MaxObstacleLength, e.MinObstacleLength)
	}

	b := c.Board
	switch {
	case b.TileWidth < 1:
		return fmt.Errorf("board.tile_width must be at least 1, got %d", b.TileWidth)
	case b.BallRow < 0:
		return fmt.Errorf("board.ball_row must not be negative, got %d", b.BallRow)
	case b.GroundOffset < 1:
		return fmt.Errorf("board.ground_offset must be at least 1, got %d", b.GroundOffset)
	case b.HUDRows < 0:
		return fmt.Errorf("board.hud_rows must not be negative, got %d", b.HUDRows)
	}

	if c.Timing.StartDelay <= 0 || c.Timing.MinDelay <= 0 {
		return fmt.Errorf("timing delays must be positive (start %v, min %v)",
			c.Timing.StartDelay, c.Timing.MinDelay)
	}
	if c.Timing.MinDelay > c.Timing.StartDelay {
		return fmt.Errorf("timing.min_delay (%v) exceeds start_delay (%v)",
			c.Timing.MinDelay, c.Timing.StartDelay)
	}
	if c.Input.DuckTicks < 1 {
		return fmt.Errorf("input.duck_ticks must be at least 1, got %d", c.Input.DuckTicks)
	}

	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		return fmt.Errorf("difficulty.progression.type %q is not one of score, time, none",
			c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. The empty string means
// "use the config file's settings".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ScreamyConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
