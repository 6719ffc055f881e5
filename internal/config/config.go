// Package config provides YAML-based game configuration loading and
// difficulty presets for the match-3 platform.
package config

import "github.com/vovakirdan/match3/internal/match3"

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Timer      TimerConfig      `yaml:"timer"`
	Engine     EngineConfig     `yaml:"engine"`
	Animation  AnimationConfig  `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines board generation parameters.
type BoardConfig struct {
	TileTypes int `yaml:"tile_types"`
	ViewportW int `yaml:"viewport_w"` // Virtual viewport width the cell size divides
	ViewportH int `yaml:"viewport_h"` // Virtual viewport height the cell size divides
}

// TimerConfig defines the countdown and hint delay, both in seconds.
type TimerConfig struct {
	TimeLimit int `yaml:"time_limit"`
	HintIdle  int `yaml:"hint_idle"`
}

// EngineConfig bounds the resolution and rescue loops.
type EngineConfig struct {
	MaxCascades    int `yaml:"max_cascades"`
	SeedAttempts   int `yaml:"seed_attempts"`
	ShuffleRetries int `yaml:"shuffle_retries"`
}

// AnimationConfig controls how resolution steps are replayed on screen.
type AnimationConfig struct {
	FrameTicks int `yaml:"frame_ticks"` // Frames per resolution step
}

// DifficultyConfig selects a named preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// Settings converts the configuration into engine settings.
func (c Match3Config) Settings() match3.Settings {
	return match3.Settings{
		TileTypes:      c.Board.TileTypes,
		TimeLimit:      c.Timer.TimeLimit,
		HintIdleTicks:  c.Timer.HintIdle,
		MaxCascades:    c.Engine.MaxCascades,
		SeedAttempts:   c.Engine.SeedAttempts,
		ShuffleRetries: c.Engine.ShuffleRetries,
	}
}
