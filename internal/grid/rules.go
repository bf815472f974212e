package grid

// Rules is the per-grid rule set. It replaces process-wide toggles so two
// grids can run with different rules side by side.
type Rules struct {
	MinimalMatches int // Run length needed for a line match
	MinDimension   int
	MaxDimension   int
	PreviewLines   int // Preview rows above the grid, 0..2

	PowerChance int // Percent chance a spawn is a power
	RockChance  int // Percent chance a spawn is a rock
	WallChance  int // Percent threshold for random walls, 0 disables them

	FreeDirection bool // Line bombs fire both axes instead of the dominant one
	Tutorial      bool // Emit first-power hint notifications

	Horizontal bool
	Vertical   bool
	Square     bool
	LineBomb   bool
	SpreadBomb bool
	RockBomb   bool
	WallBomb   bool
}

// DefaultRules returns the stock rule set with every match rule enabled.
func DefaultRules() Rules {
	return Rules{
		MinimalMatches: 3,
		MinDimension:   4,
		MaxDimension:   12,
		PreviewLines:   0,
		PowerChance:    1,
		RockChance:     5,
		WallChance:     0,
		Horizontal:     true,
		Vertical:       true,
		Square:         true,
		LineBomb:       true,
		SpreadBomb:     true,
		RockBomb:       true,
		WallBomb:       true,
	}
}

// DirectionPolicy decides which axes the line bombs caught in a run fire.
type DirectionPolicy interface {
	// RunFires returns, for each bomb of a run along axis, the axes to scan through it.
	RunFires(axis Effect, bombs []Effect) []Effect
}

// exclusivePolicy lets the first bomb aligned with the run clear the run's
// line; every other aligned bomb clears the crossing line instead.
type exclusivePolicy struct{}

func (exclusivePolicy) RunFires(axis Effect, bombs []Effect) []Effect {
	fires := make([]Effect, len(bombs))
	first := -1
	for i, b := range bombs {
		if b.Fires(axis) {
			first = i
			break
		}
	}
	if first < 0 {
		return fires
	}
	cross := EffectCross &^ axis
	for i, b := range bombs {
		switch {
		case i == first:
			fires[i] = axis
		case b.Fires(axis):
			fires[i] = cross
		}
	}
	return fires
}

// freePolicy fires every axis a bomb carries.
type freePolicy struct{}

func (freePolicy) RunFires(_ Effect, bombs []Effect) []Effect {
	fires := make([]Effect, len(bombs))
	for i, b := range bombs {
		if b.IsLine() {
			fires[i] = b & EffectCross
		}
	}
	return fires
}

func (r Rules) policy() DirectionPolicy {
	if r.FreeDirection {
		return freePolicy{}
	}
	return exclusivePolicy{}
}
