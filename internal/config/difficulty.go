package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// presetValues are the board and timer values a preset imposes.
type presetValues struct {
	TileTypes int
	TimeLimit int
	HintIdle  int
}

// More colors make runs rarer; less time leaves fewer moves.
var presets = map[DifficultyPreset]presetValues{
	DifficultyEasy:   {TileTypes: 5, TimeLimit: 120, HintIdle: 3},
	DifficultyNormal: {TileTypes: 6, TimeLimit: 90, HintIdle: 5},
	DifficultyHard:   {TileTypes: 7, TimeLimit: 60, HintIdle: 10},
}

// ParseDifficulty validates a preset name. Empty means fixed.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", name)
	}
}

// IsFixedPreset returns true if the preset leaves the file values untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	_, ok := presets[preset]
	return !ok
}

// Presets lists the selectable presets in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}
