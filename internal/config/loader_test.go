package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/match3/internal/match3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(GetDefaultYAML("match3"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultMatch3Config() {
		t.Errorf("embedded = %+v, want %+v", cfg, DefaultMatch3Config())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("board:\n  tile_types: 4\ntimer:\n  time_limit: 30\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() error = %v", err)
	}
	if cfg.Board.TileTypes != 4 || cfg.Timer.TimeLimit != 30 {
		t.Errorf("loaded board=%+v timer=%+v", cfg.Board, cfg.Timer)
	}
	// untouched keys keep defaults
	if cfg.Board.ViewportH != 600 || cfg.Engine.MaxCascades != 64 {
		t.Errorf("defaults lost: board=%+v engine=%+v", cfg.Board, cfg.Engine)
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("board: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(broken); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  tile_types: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadMatch3(invalid)
	if !errors.Is(err, match3.ErrInvalidSettings) {
		t.Errorf("LoadMatch3(invalid) = %v, want ErrInvalidSettings", err)
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		tileTypes int
		timeLimit int
	}{
		{DifficultyEasy, 5, 120},
		{DifficultyNormal, 6, 90},
		{DifficultyHard, 7, 60},
		{DifficultyFixed, 9, 45},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultMatch3Config()
			cfg.Board.TileTypes = 9
			cfg.Timer.TimeLimit = 45
			ApplyMatch3Preset(&cfg, tt.preset)
			if cfg.Board.TileTypes != tt.tileTypes || cfg.Timer.TimeLimit != tt.timeLimit {
				t.Errorf("got types=%d time=%d, want %d/%d", cfg.Board.TileTypes, cfg.Timer.TimeLimit, tt.tileTypes, tt.timeLimit)
			}
			if cfg.Difficulty.Preset != tt.preset {
				t.Errorf("preset = %q, want %q", cfg.Difficulty.Preset, tt.preset)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, err := ParseDifficulty(""); err != nil || p != DifficultyFixed {
		t.Errorf("ParseDifficulty(\"\") = %q, %v", p, err)
	}
	if p, err := ParseDifficulty("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %q, %v", p, err)
	}
	if _, err := ParseDifficulty("brutal"); err == nil {
		t.Error("unknown preset should fail")
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyEasy) {
		t.Error("IsFixedPreset mismatch")
	}
}

func TestSettingsConversion(t *testing.T) {
	s := DefaultMatch3Config().Settings()
	want := match3.DefaultSettings()
	if s != want {
		t.Errorf("Settings() = %+v, want %+v", s, want)
	}
}
