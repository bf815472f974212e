package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Grid: GridConfig{
			Layout:         "square",
			Dimension:      8,
			MinimalMatches: 3,
			MinDimension:   4,
			MaxDimension:   12,
			PreviewLines:   0,
		},
		Spawn: SpawnConfig{
			PowerChance: 1,
			RockChance:  5,
			WallChance:  0,
			ItemChance:  25,
		},
		Rules: RulesConfig{
			Horizontal: true,
			Vertical:   true,
			Square:     true,
			LineBomb:   true,
			SpreadBomb: true,
			RockBomb:   true,
			WallBomb:   true,
		},
		Turn: TurnConfig{
			MaxCascades:    32,
			BonusThreshold: 4,
			MaxTurns:       50,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				RockChance:     10,
				WallChance:     20,
				PowerReduction: 0,
			},
		},
	}
}
