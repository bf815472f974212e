package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	var cfg EngineConfig
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultEngineConfig() {
		t.Errorf("embedded defaults drifted from DefaultEngineConfig:\n%+v\n%+v", cfg, DefaultEngineConfig())
	}
}

func TestDefaultRulesMatchGrid(t *testing.T) {
	if got := DefaultEngineConfig().GridRules(); got != grid.DefaultRules() {
		t.Errorf("expected the default config to produce grid.DefaultRules:\n%+v\n%+v", got, grid.DefaultRules())
	}
}

func TestLoadEngineCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := []byte("grid:\n  layout: boss02\n  preview_lines: 2\nspawn:\n  rock_chance: 40\nrules:\n  square: false\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadEngine(path)
	if err != nil {
		t.Fatalf("LoadEngine failed: %v", err)
	}
	if cfg.Grid.PreviewLines != 2 {
		t.Errorf("expected preview_lines 2, got %d", cfg.Grid.PreviewLines)
	}
	if cfg.Grid.MinimalMatches != 3 {
		t.Errorf("expected unset keys to keep defaults, got minimal_matches %d", cfg.Grid.MinimalMatches)
	}
	rules := cfg.GridRules()
	if rules.Square {
		t.Error("expected square matches disabled")
	}
	if rules.RockChance != 40 {
		t.Errorf("expected rock chance 40, got %d", rules.RockChance)
	}
	if l, err := cfg.Layout(); err != nil || l != grid.LayoutBoss02 {
		t.Errorf("expected boss02, got %v (%v)", l, err)
	}
}

func TestLoadEngineErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "grid: [unclosed"},
		{"bad preview", "grid:\n  preview_lines: 3\n"},
		{"bad chance", "spawn:\n  power_chance: 120\n"},
		{"bad layout", "grid:\n  layout: hexagon\n"},
		{"bad bounds", "grid:\n  min_dimension: 10\n  max_dimension: 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			if _, err := LoadEngine(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := LoadEngine(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom file")
	}
}

func TestLoadEngineFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := LoadEngine("")
	if err != nil {
		t.Fatalf("LoadEngine failed: %v", err)
	}
	if cfg != DefaultEngineConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadEngineLocalDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	body := []byte("grid:\n  dimension: 6\n")
	if err := os.WriteFile(filepath.Join(dir, "configs", "engine.yaml"), body, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := LoadEngine("")
	if err != nil {
		t.Fatalf("LoadEngine failed: %v", err)
	}
	if cfg.Grid.Dimension != 6 {
		t.Errorf("expected dimension 6 from ./configs, got %d", cfg.Grid.Dimension)
	}
}

func TestDifficultyScaling(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Spawn.WallChance = 10
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Scaling.PowerReduction = 1

	start := cfg.RulesAt(0)
	mid := cfg.RulesAt(10)
	end := cfg.RulesAt(1000)

	if start.RockChance != 5 || start.WallChance != 10 {
		t.Errorf("expected base chances at the start, got rock %d wall %d", start.RockChance, start.WallChance)
	}
	if mid.RockChance != 10 || mid.WallChance != 20 {
		t.Errorf("expected half scaling at 10/20, got rock %d wall %d", mid.RockChance, mid.WallChance)
	}
	if end.RockChance != 15 || end.WallChance != 30 || end.PowerChance != 0 {
		t.Errorf("expected full scaling past max_at, got %+v", end)
	}
}

func TestDifficultyDisabledKeepsWallsOff(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Difficulty.Enabled = true
	if got := cfg.RulesAt(20).WallChance; got != 0 {
		t.Errorf("expected walls to stay off with a zero base, got %d", got)
	}

	d := NewDifficultyManager(DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "none"}})
	d.SetInitialLevel(2)
	if d.IsEnabled() {
		t.Error("expected progression type none to disable scaling")
	}
	if got := d.Level(50); got != 1.0 {
		t.Errorf("expected the initial level clamped to 1, got %f", got)
	}
}

func TestApplyEnginePreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
		rock    int
	}{
		{DifficultyEasy, true, 0.0, 2},
		{DifficultyNormal, true, 0.3, 5},
		{DifficultyHard, true, 0.7, 10},
		{DifficultyFixed, false, 0.0, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultEngineConfig()
			ApplyEnginePreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("expected enabled %v, got %v", tt.enabled, cfg.Difficulty.Enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("expected initial level %f, got %f", tt.level, cfg.Difficulty.InitialLevel)
			}
			if cfg.Spawn.RockChance != tt.rock {
				t.Errorf("expected rock chance %d, got %d", tt.rock, cfg.Spawn.RockChance)
			}
		})
	}
}
