package grid

import (
	"fmt"
	"strings"
)

// Layout names a level shape.
type Layout int32

const (
	LayoutSquare Layout = iota
	LayoutPlus
	LayoutHRect
	LayoutVRect
	LayoutLTop
	LayoutLBottom
	LayoutTTop
	LayoutTBottom
	LayoutUTop
	LayoutUBottom
	layoutMaxStandard
	LayoutBoss01
	LayoutBoss02
	LayoutBoss03
	LayoutBoss04
	LayoutBoss05
	LayoutCustom
)

var layoutNames = map[Layout]string{
	LayoutSquare:  "square",
	LayoutPlus:    "plus",
	LayoutHRect:   "hrect",
	LayoutVRect:   "vrect",
	LayoutLTop:    "l-top",
	LayoutLBottom: "l-bottom",
	LayoutTTop:    "t-top",
	LayoutTBottom: "t-bottom",
	LayoutUTop:    "u-top",
	LayoutUBottom: "u-bottom",
	LayoutBoss01:  "boss01",
	LayoutBoss02:  "boss02",
	LayoutBoss03:  "boss03",
	LayoutBoss04:  "boss04",
	LayoutBoss05:  "boss05",
	LayoutCustom:  "custom",
}

// String returns the layout name.
func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("layout(%d)", int32(l))
}

// Standard returns true for the generated shapes that accept random walls.
func (l Layout) Standard() bool {
	return l >= LayoutSquare && l < layoutMaxStandard
}

// Layouts lists every named layout in declaration order.
func Layouts() []Layout {
	out := make([]Layout, 0, len(layoutNames))
	for l := LayoutSquare; l <= LayoutCustom; l++ {
		if _, ok := layoutNames[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// ParseLayout resolves a layout by name.
func ParseLayout(name string) (Layout, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l, n := range layoutNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown layout %q", name)
}

// Align positions the grid along one axis inside the MaxDimension square.
type Align uint8

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

func (a Align) offset(free float64) float64 {
	if free < 0 {
		free = 0
	}
	switch a {
	case AlignStart:
		return 0
	case AlignEnd:
		return free
	default:
		return free / 2
	}
}

// Alignment is the horizontal and vertical placement of the grid.
type Alignment struct {
	H Align
	V Align
}

const thickness = 3

// SetLayout builds the topology for a named shape. The dimension is clamped
// to the configured bounds; hand-authored boss shapes use fixed sizes.
// Random walls are only seeded on standard shapes.
func (g *Grid) SetLayout(dimension int, layout Layout, align Alignment, randomizeWalls bool) {
	dimension = clamp(dimension, g.rules.MinDimension, g.rules.MaxDimension)

	g.layout = layout
	g.align = align
	g.dimension = dimension
	g.previewLines = clamp(g.rules.PreviewLines, 0, 2)

	short := g.rules.MinDimension + 1

	switch layout {
	case LayoutSquare:
		g.resize(dimension, dimension, GroundNormal)
	case LayoutPlus:
		g.resize(dimension, dimension, GroundVoid)
		g.fill(0, thickness, g.w, min(2*thickness, g.h), GroundNormal)
		g.fill(thickness, 0, min(2*thickness, g.w), g.h, GroundNormal)
	case LayoutHRect:
		g.resize(dimension, short, GroundNormal)
	case LayoutVRect:
		g.resize(short, dimension, GroundNormal)
	case LayoutLTop:
		g.resize(short, dimension, GroundVoid)
		g.fill(0, 0, thickness, g.h, GroundNormal)
		g.fill(thickness, g.h-thickness, g.w, g.h, GroundNormal)
	case LayoutLBottom:
		g.resize(dimension, short, GroundVoid)
		g.fill(g.w-thickness, 0, g.w, g.h, GroundNormal)
		g.fill(0, g.h-thickness, g.w-thickness, g.h, GroundNormal)
	case LayoutTTop:
		g.resize(dimension, dimension, GroundVoid)
		g.fill(0, 0, g.w, thickness, GroundNormal)
		g.fill(thickness, thickness, min(2*thickness, g.w), g.h, GroundNormal)
	case LayoutTBottom:
		g.resize(dimension, dimension, GroundVoid)
		g.fill(0, g.h-thickness, g.w, g.h, GroundNormal)
		g.fill(thickness, 0, min(2*thickness, g.w), g.h-thickness, GroundNormal)
	case LayoutUTop:
		g.resize(dimension, dimension, GroundVoid)
		g.fill(0, 0, thickness, g.h, GroundNormal)
		g.fill(g.w-thickness, 0, g.w, g.h, GroundNormal)
		g.fill(thickness, 0, g.w-thickness, thickness, GroundNormal)
	case LayoutUBottom:
		g.resize(dimension, dimension, GroundVoid)
		g.fill(0, 0, thickness, g.h, GroundNormal)
		g.fill(g.w-thickness, 0, g.w, g.h, GroundNormal)
		g.fill(thickness, g.h-thickness, g.w-thickness, g.h, GroundNormal)
	case LayoutBoss01, LayoutBoss04:
		g.resize(9, 9, GroundVoid)
		g.fill(1, 6, 2, g.h-1, GroundNormal)
		g.fill(7, 6, 8, g.h-1, GroundNormal)
	case LayoutBoss02:
		g.resize(8, 10, GroundVoid)
		for _, c := range []Coord{C(1, 2), C(6, 2), C(1, 7), C(6, 7)} {
			g.tiles[g.index(c)].Ground = GroundFixed
		}
	case LayoutBoss03:
		g.resize(10, 10, GroundNormal)
		g.fill(thickness, thickness, min(2*thickness+1, g.w), min(2*thickness+1, g.h), GroundVoid)
	case LayoutBoss05:
		g.resize(11, 11, GroundNormal)
		g.fill(0, 0, g.w, 4, GroundVoid)
	default:
		g.resize(dimension, dimension, GroundNormal)
	}

	if !layout.Standard() {
		g.dimension = max(g.w, g.h)
	}
	g.buildRamps(layout, true)

	g.resetRecords()

	if randomizeWalls && g.rules.WallChance > 0 && layout.Standard() {
		g.RandomizeWalls()
	}

	g.logger.Info("layout set", "layout", layout, "w", g.w, "h", g.h, "ramps", len(g.ramps))
}

func (g *Grid) resize(w, h int, ground Ground) {
	g.w, g.h = w, h
	g.tiles = make([]Tile, w*h)
	for i := range g.tiles {
		g.tiles[i] = Tile{Ground: ground}
	}
}

// fill stamps ground over the half-open rectangle [x0,x1)×[y0,y1).
func (g *Grid) fill(x0, y0, x1, y1 int, ground Ground) {
	for y := max(y0, 0); y < min(y1, g.h); y++ {
		for x := max(x0, 0); x < min(x1, g.w); x++ {
			g.tiles[y*g.w+x] = Tile{Ground: ground}
		}
	}
}

// wall patterns per category, drawn by RandomizeWalls.
var wallPatterns = [4][]Wall{
	{WallAll},
	{WallNorth, WallWest, WallEast, WallSouth},
	{WallNorth | WallWest, WallNorth | WallEast, WallNorth | WallSouth, WallSouth | WallWest, WallSouth | WallEast, WallWest | WallEast},
	{WallNorth | WallWest | WallEast, WallNorth | WallSouth | WallWest, WallNorth | WallSouth | WallEast, WallSouth | WallWest | WallEast},
}

// RandomizeWalls seeds walls on playable cells that have none, using the
// topology stream. The draw margin over the wall chance picks the pattern
// category: all sides, single side, pair or three sides.
func (g *Grid) RandomizeWalls() {
	placed := 0
	for i := range g.tiles {
		t := &g.tiles[i]
		if !t.Ground.Playable() || t.WallType != 0 {
			continue
		}
		d := g.rules.WallChance - g.random.Topology(100)
		if d <= 0 {
			continue
		}
		patterns := wallPatterns[d%4]
		t.WallType = 1
		t.WallOrientation = patterns[g.random.Topology(len(patterns))]
		placed++
	}
	g.logger.Debug("walls randomized", "placed", placed)
}

// SetWall places a hand-authored wall mask on a playable cell.
func (g *Grid) SetWall(c Coord, mask Wall) error {
	t := &g.tiles[g.index(c)]
	if !t.Ground.Playable() {
		return fmt.Errorf("grid: wall on void cell %s", c)
	}
	t.WallOrientation = mask & WallAll
	if t.WallOrientation != WallNone {
		t.WallType = 1
	} else {
		t.WallType = 0
	}
	return nil
}

// SetGround overrides the ground of one cell; used by custom level files.
// Pieces left on a cell turned void are dropped.
func (g *Grid) SetGround(c Coord, ground Ground) error {
	if !ground.Valid() || ground.IsRamp() {
		return fmt.Errorf("grid: ground %s cannot be set directly", ground)
	}
	i := g.index(c)
	g.tiles[i].Ground = ground
	if ground == GroundVoid {
		g.tiles[i].WallOrientation = WallNone
		g.tiles[i].WallType = 0
		if g.matches != nil {
			g.matches[i].Clear()
			g.types[i] = NoType
		}
	}
	return nil
}

// GravityColumns returns the columns a controller collapses on every ramp tick.
func (g *Grid) GravityColumns() []int {
	return g.gravityColumns
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
