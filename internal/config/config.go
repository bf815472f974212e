// Package config provides YAML-based engine configuration loading and
// difficulty scaling for the match-3 engine.
package config

import (
	"fmt"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

// EngineConfig contains all configuration for the grid engine and the turn controller.
type EngineConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Rules      RulesConfig      `yaml:"rules"`
	Turn       TurnConfig       `yaml:"turn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the grid shape parameters.
type GridConfig struct {
	Layout         string `yaml:"layout"`
	Dimension      int    `yaml:"dimension"`
	MinimalMatches int    `yaml:"minimal_matches"`
	MinDimension   int    `yaml:"min_dimension"`
	MaxDimension   int    `yaml:"max_dimension"`
	PreviewLines   int    `yaml:"preview_lines"`
}

// SpawnConfig defines the percent chances used when pieces and walls are generated.
type SpawnConfig struct {
	PowerChance int `yaml:"power_chance"`
	RockChance  int `yaml:"rock_chance"`
	WallChance  int `yaml:"wall_chance"`
	ItemChance  int `yaml:"item_chance"` // Chance a broken rock leaves a moves item
}

// RulesConfig toggles the match rules.
type RulesConfig struct {
	Horizontal    bool `yaml:"horizontal"`
	Vertical      bool `yaml:"vertical"`
	Square        bool `yaml:"square"`
	LineBomb      bool `yaml:"line_bomb"`
	SpreadBomb    bool `yaml:"spread_bomb"`
	RockBomb      bool `yaml:"rock_bomb"`
	WallBomb      bool `yaml:"wall_bomb"`
	FreeDirection bool `yaml:"free_direction"`
	Tutorial      bool `yaml:"tutorial"`
}

// TurnConfig defines turn controller parameters.
type TurnConfig struct {
	MaxCascades    int `yaml:"max_cascades"`
	BonusThreshold int `yaml:"bonus_threshold"` // Scored cells that earn a power bonus
	MaxTurns       int `yaml:"max_turns"`       // Autoplay turn limit
}

// DifficultyConfig defines how spawn chances grow along a campaign.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Level index or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at max difficulty.
type ScalingConfig struct {
	RockChance     int `yaml:"rock_chance"`     // Percent added to the rock chance
	WallChance     int `yaml:"wall_chance"`     // Percent added to the wall chance
	PowerReduction int `yaml:"power_reduction"` // Percent removed from the power chance
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// GridRules converts the configuration into a grid rule set at the initial difficulty.
func (c EngineConfig) GridRules() grid.Rules {
	return c.RulesAt(0)
}

// RulesAt converts the configuration into a grid rule set, with spawn
// chances scaled for the given progress (level index or score).
func (c EngineConfig) RulesAt(progress int) grid.Rules {
	d := NewDifficultyManager(c.Difficulty)
	return grid.Rules{
		MinimalMatches: c.Grid.MinimalMatches,
		MinDimension:   c.Grid.MinDimension,
		MaxDimension:   c.Grid.MaxDimension,
		PreviewLines:   c.Grid.PreviewLines,
		PowerChance:    d.PowerChance(c.Spawn.PowerChance, progress),
		RockChance:     d.RockChance(c.Spawn.RockChance, progress),
		WallChance:     d.WallChance(c.Spawn.WallChance, progress),
		FreeDirection:  c.Rules.FreeDirection,
		Tutorial:       c.Rules.Tutorial,
		Horizontal:     c.Rules.Horizontal,
		Vertical:       c.Rules.Vertical,
		Square:         c.Rules.Square,
		LineBomb:       c.Rules.LineBomb,
		SpreadBomb:     c.Rules.SpreadBomb,
		RockBomb:       c.Rules.RockBomb,
		WallBomb:       c.Rules.WallBomb,
	}
}

// Layout resolves the configured default layout.
func (c EngineConfig) Layout() (grid.Layout, error) {
	if c.Grid.Layout == "" {
		return grid.LayoutSquare, nil
	}
	return grid.ParseLayout(c.Grid.Layout)
}

// Validate checks the ranges the engine relies on.
func (c EngineConfig) Validate() error {
	g := c.Grid
	switch {
	case g.MinimalMatches < 2:
		return fmt.Errorf("config: minimal_matches must be at least 2, got %d", g.MinimalMatches)
	case g.MinDimension < 2 || g.MinDimension > g.MaxDimension:
		return fmt.Errorf("config: dimension bounds %d..%d are invalid", g.MinDimension, g.MaxDimension)
	case g.MaxDimension > 255:
		return fmt.Errorf("config: max_dimension %d does not fit the save format", g.MaxDimension)
	case g.PreviewLines < 0 || g.PreviewLines > 2:
		return fmt.Errorf("config: preview_lines must be 0..2, got %d", g.PreviewLines)
	}
	for name, v := range map[string]int{
		"power_chance": c.Spawn.PowerChance,
		"rock_chance":  c.Spawn.RockChance,
		"wall_chance":  c.Spawn.WallChance,
		"item_chance":  c.Spawn.ItemChance,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("config: %s must be a percentage, got %d", name, v)
		}
	}
	if _, err := c.Layout(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
