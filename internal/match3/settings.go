package match3

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings tune one engine instance.
type Settings struct {
	TileTypes      int // distinct tile colors, drawn from [1, TileTypes]
	TimeLimit      int // ticks until game over; 0 disables the countdown
	HintIdleTicks  int // idle ticks before the hint becomes visible
	MaxCascades    int // cascade cycles cleared per chain before settling
	SeedAttempts   int // near-match seeds tried per hint search
	ShuffleRetries int // shuffles tried before regenerating the board
}

// DefaultSettings returns the standard tuning.
func DefaultSettings() Settings {
	return Settings{
		TileTypes:      6,
		TimeLimit:      90,
		HintIdleTicks:  5,
		MaxCascades:    64,
		SeedAttempts:   8,
		ShuffleRetries: 5,
	}
}

// Validate checks the settings for values the engine cannot work with.
func (s Settings) Validate() error {
	switch {
	case s.TileTypes < 2:
		return fmt.Errorf("match3: tile types %d below 2: %w", s.TileTypes, ErrInvalidSettings)
	case s.TileTypes > 30:
		return fmt.Errorf("match3: tile types %d above 30: %w", s.TileTypes, ErrInvalidSettings)
	case s.TimeLimit < 0:
		return fmt.Errorf("match3: negative time limit: %w", ErrInvalidSettings)
	case s.HintIdleTicks < 0:
		return fmt.Errorf("match3: negative hint idle ticks: %w", ErrInvalidSettings)
	case s.MaxCascades < 1:
		return fmt.Errorf("match3: max cascades must be positive: %w", ErrInvalidSettings)
	case s.SeedAttempts < 0 || s.ShuffleRetries < 0:
		return fmt.Errorf("match3: negative rescue bound: %w", ErrInvalidSettings)
	}
	return nil
}
