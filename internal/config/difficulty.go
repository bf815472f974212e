package config

import "math"

// DifficultyManager calculates spawn chances based on campaign progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for a progress
// value, which is a level index or a score depending on the progression type.
func (d *DifficultyManager) Level(progress int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	switch d.cfg.Progression.Type {
	case "level", "score":
	default:
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	p := clampF(float64(progress)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + p*(1.0-d.initialLevel)
}

// RockChance returns the rock spawn chance for a progress value.
func (d *DifficultyManager) RockChance(base, progress int) int {
	return clampPercent(base + int(d.Level(progress)*float64(d.cfg.Scaling.RockChance)))
}

// WallChance returns the random wall chance for a progress value.
// A zero base keeps walls disabled.
func (d *DifficultyManager) WallChance(base, progress int) int {
	if base == 0 {
		return 0
	}
	return clampPercent(base + int(d.Level(progress)*float64(d.cfg.Scaling.WallChance)))
}

// PowerChance returns the power spawn chance for a progress value.
func (d *DifficultyManager) PowerChance(base, progress int) int {
	return clampPercent(base - int(d.Level(progress)*float64(d.cfg.Scaling.PowerReduction)))
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
