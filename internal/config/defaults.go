package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			TileTypes: 6,
			ViewportW: 360,
			ViewportH: 600,
		},
		Timer: TimerConfig{
			TimeLimit: 90,
			HintIdle:  5,
		},
		Engine: EngineConfig{
			MaxCascades:    64,
			SeedAttempts:   8,
			ShuffleRetries: 5,
		},
		Animation: AnimationConfig{
			FrameTicks: 8,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_heart":
		return defaultMatch3YAML
	default:
		return nil
	}
}
