package grid

import "fmt"

// Ramp is one straight directional path. Cells are ordered from the start of
// the path to its far end.
type Ramp struct {
	Kind  Ground
	Dir   Dir
	Cells []Coord
}

type rampSpec struct {
	kind             Ground
	from, to         Coord
	entrance, isExit bool
}

// bossRamps holds the hand-authored ramp paths, in registration order.
var bossRamps = map[Layout][]rampSpec{
	LayoutBoss01: boss01Ramps,
	LayoutBoss04: boss01Ramps,
	LayoutBoss02: {
		{GroundRampDown, C(3, 0), C(3, 0), true, false},
		{GroundRampLeft, C(3, 1), C(1, 1), false, false},
		{GroundRampDown, C(0, 1), C(0, 7), false, false},
		{GroundRampRight, C(0, 8), C(2, 8), false, false},
		{GroundRampDown, C(3, 8), C(3, 9), false, true},

		{GroundRampDown, C(4, 0), C(4, 0), true, false},
		{GroundRampRight, C(4, 1), C(6, 1), false, false},
		{GroundRampDown, C(7, 1), C(7, 7), false, false},
		{GroundRampLeft, C(7, 8), C(5, 8), false, false},
		{GroundRampDown, C(4, 8), C(4, 9), false, true},
	},
}

var boss01Ramps = []rampSpec{
	{GroundRampUp, C(4, 8), C(4, 6), false, false},
	{GroundRampRight, C(1, 8), C(3, 8), false, false},
	{GroundRampLeft, C(7, 8), C(5, 8), false, false},
	{GroundRampRight, C(0, 5), C(8, 5), true, true},
}

// bossGravityColumns lists the columns that must be collapsed on every ramp
// tick because ramps feed them from below.
var bossGravityColumns = map[Layout][]int{
	LayoutBoss01: {1, 7},
	LayoutBoss04: {1, 7},
}

// buildRamps registers the ramp paths of a layout. With stamp the ramp
// ground is written into the tiles; Load passes false because the tiles
// already carry it.
func (g *Grid) buildRamps(layout Layout, stamp bool) {
	g.ramps = nil
	g.entrances = nil
	g.exits = nil
	g.gravityColumns = bossGravityColumns[layout]
	for _, r := range bossRamps[layout] {
		var err error
		if stamp {
			err = g.AddDirectionalRamp(r.kind, r.from, r.to, r.entrance, r.isExit)
		} else {
			err = g.registerRamp(r.kind, r.from, r.to, r.entrance, r.isExit)
		}
		if err != nil {
			panic(fmt.Sprintf("grid: layout %s: %v", layout, err))
		}
	}
	g.rampMarks = make([]int, g.w*g.h)
}

// AddDirectionalRamp stamps a straight ramp from one cell to another,
// inclusive, and registers it. from is registered as an entrance and to as
// an exit when requested.
func (g *Grid) AddDirectionalRamp(kind Ground, from, to Coord, isEntrance, isExit bool) error {
	if err := g.registerRamp(kind, from, to, isEntrance, isExit); err != nil {
		return err
	}
	for _, c := range g.ramps[len(g.ramps)-1].Cells {
		g.tiles[g.index(c)] = Tile{Ground: kind}
	}
	if len(g.rampMarks) != g.w*g.h {
		g.rampMarks = make([]int, g.w*g.h)
	}
	return nil
}

func (g *Grid) registerRamp(kind Ground, from, to Coord, isEntrance, isExit bool) error {
	dir, ok := kind.Dir()
	if !ok {
		return fmt.Errorf("ground %s is not a ramp", kind)
	}
	if !g.InBounds(from) || !g.InBounds(to) {
		return fmt.Errorf("ramp %s->%s outside %dx%d", from, to, g.w, g.h)
	}
	dx, dy := dir.Delta()
	n := 0
	switch {
	case dx != 0 && from.Y == to.Y && (to.X-from.X)*dx >= 0:
		n = (to.X-from.X)*dx + 1
	case dy != 0 && from.X == to.X && (to.Y-from.Y)*dy >= 0:
		n = (to.Y-from.Y)*dy + 1
	default:
		return fmt.Errorf("ramp %s->%s is not a straight %s path", from, to, dir)
	}

	r := Ramp{Kind: kind, Dir: dir, Cells: make([]Coord, 0, n)}
	for c, i := from, 0; i < n; c, i = c.Step(dir), i+1 {
		r.Cells = append(r.Cells, c)
	}
	g.ramps = append(g.ramps, r)
	if isEntrance {
		g.entrances = append(g.entrances, from)
	}
	if isExit {
		g.exits = append(g.exits, to)
	}
	return nil
}

// Ramps returns the registered ramp paths.
func (g *Grid) Ramps() []Ramp { return g.ramps }

// Entrances returns the cells where new pieces enter the ramps.
func (g *Grid) Entrances() []Coord { return g.entrances }

// Exits returns the cells where ramp riders are removed.
func (g *Grid) Exits() []Coord { return g.exits }
