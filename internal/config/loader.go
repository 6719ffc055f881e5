package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.arcade/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadMatch3(customPath string) (Match3Config, error) {
	cfg := DefaultMatch3Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("match3.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "match3.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMatch3YAML, &cfg); err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (Match3Config, bool) {
	cfg := DefaultMatch3Config()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyMatch3Preset overrides tile variety and timing with a preset's values.
// The fixed preset keeps the values from the file.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	values, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Board.TileTypes = values.TileTypes
	cfg.Timer.TimeLimit = values.TimeLimit
	cfg.Timer.HintIdle = values.HintIdle
}

// Validate checks the configuration against what the engine accepts.
func (c Match3Config) Validate() error {
	if c.Board.ViewportW <= 0 || c.Board.ViewportH <= 0 {
		return fmt.Errorf("config: viewport must be positive, got %dx%d", c.Board.ViewportW, c.Board.ViewportH)
	}
	if c.Animation.FrameTicks < 0 {
		return fmt.Errorf("config: negative frame_ticks %d", c.Animation.FrameTicks)
	}
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
