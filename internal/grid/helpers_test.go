package grid_test

import (
	"testing"

	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/rng"
)

// Catalog ids used across the tests.
const (
	idBlue grid.TypeID = iota + 1
	idRed
	idGreen
	idPurple
	idBlack
	idYellow

	idRowBomb grid.TypeID = iota + 10
	idColumnBomb
	idSpread
	idWallBreaker
	idRockBomb

	idRock  grid.TypeID = 30
	idMoves grid.TypeID = 40
)

type testCatalog struct {
	ids    map[grid.Category][]grid.TypeID
	traits map[grid.TypeID]grid.Traits
}

func newTestCatalog() *testCatalog {
	c := &testCatalog{
		ids:    make(map[grid.Category][]grid.TypeID),
		traits: make(map[grid.TypeID]grid.Traits),
	}
	enemies := []grid.Color{grid.ColorBlue, grid.ColorRed, grid.ColorGreen, grid.ColorPurple, grid.ColorBlack, grid.ColorYellow}
	for i, color := range enemies {
		c.add(idBlue+grid.TypeID(i), grid.Traits{Color: color, Category: grid.CategoryEnemy})
	}
	c.add(idRowBomb, grid.Traits{Effect: grid.EffectRow, Category: grid.CategoryPower})
	c.add(idColumnBomb, grid.Traits{Effect: grid.EffectColumn, Category: grid.CategoryPower})
	c.add(idSpread, grid.Traits{Effect: grid.EffectSpread, Category: grid.CategoryPower})
	c.add(idWallBreaker, grid.Traits{Effect: grid.EffectWallBreaker, Category: grid.CategoryPower})
	c.add(idRockBomb, grid.Traits{Effect: grid.EffectRockBomb, Category: grid.CategoryPower})
	c.add(idRock, grid.Traits{Color: grid.ColorRock, Category: grid.CategoryRock})
	c.add(idMoves, grid.Traits{Color: grid.ColorMoves, Category: grid.CategoryItem})
	return c
}

func (c *testCatalog) add(id grid.TypeID, t grid.Traits) {
	c.ids[t.Category] = append(c.ids[t.Category], id)
	c.traits[id] = t
}

func (c *testCatalog) ListIDs(cat grid.Category) []grid.TypeID { return c.ids[cat] }

func (c *testCatalog) Traits(id grid.TypeID) (grid.Traits, bool) {
	t, ok := c.traits[id]
	return t, ok
}

// recorder captures presenter and tutorial notifications.
type recorder struct {
	created   []grid.Coord
	moved     [][2]grid.Coord
	destroyed []grid.Coord
	swapped   [][2]grid.Coord
	walls     []grid.WallHit

	shown      map[grid.TypeID]bool
	powerHints []grid.TypeID
	rocks      int
}

func (r *recorder) PieceCreated(at grid.Coord, _ grid.Match, _ grid.TypeID) {
	r.created = append(r.created, at)
}
func (r *recorder) PieceMoved(from, to grid.Coord) { r.moved = append(r.moved, [2]grid.Coord{from, to}) }
func (r *recorder) PieceDestroyed(at grid.Coord)   { r.destroyed = append(r.destroyed, at) }
func (r *recorder) PiecesSwapped(a, b grid.Coord)  { r.swapped = append(r.swapped, [2]grid.Coord{a, b}) }
func (r *recorder) WallBroken(at grid.Coord, side grid.Wall) {
	r.walls = append(r.walls, grid.WallHit{At: at, Sides: side})
}

func (r *recorder) PowerShown(id grid.TypeID) bool         { return r.shown[id] }
func (r *recorder) PowerHint(id grid.TypeID, _ grid.Coord) { r.powerHints = append(r.powerHints, id) }
func (r *recorder) RockSpawned(grid.Coord)                 { r.rocks++ }

// newGrid builds an empty grid of the given layout with default rules.
func newGrid(t *testing.T, dim int, layout grid.Layout) (*grid.Grid, *recorder) {
	t.Helper()
	return newGridWithRules(t, dim, layout, grid.DefaultRules())
}

func newGridWithRules(t *testing.T, dim int, layout grid.Layout, rules grid.Rules) (*grid.Grid, *recorder) {
	t.Helper()
	rec := &recorder{shown: make(map[grid.TypeID]bool)}
	g := grid.New(grid.Options{
		Rules:     rules,
		Catalog:   newTestCatalog(),
		Random:    rng.NewStreams(7),
		Presenter: rec,
		Tutorial:  rec,
	})
	g.SetLayout(dim, layout, grid.Alignment{}, false)
	return g, rec
}

// place puts a piece on the grid, failing the test on error.
func place(t *testing.T, g *grid.Grid, x, y int, color grid.Color, effect grid.Effect) {
	t.Helper()
	id := idBlue + grid.TypeID(color-grid.ColorBlue)
	switch {
	case color == grid.ColorRock:
		id = idRock
	case color.IsItem():
		id = idMoves
	case effect == grid.EffectRow:
		id = idRowBomb
	case effect == grid.EffectColumn:
		id = idColumnBomb
	case effect.IsRockBomb():
		id = idRockBomb
	case effect.IsSpread():
		id = idSpread
	case effect == grid.EffectWallBreaker:
		id = idWallBreaker
	}
	if err := g.SetMatch(grid.C(x, y), grid.Match{Color: color, Effect: effect}, id); err != nil {
		t.Fatalf("SetMatch(%d,%d) failed: %v", x, y, err)
	}
}

func wall(t *testing.T, g *grid.Grid, x, y int, mask grid.Wall) {
	t.Helper()
	if err := g.SetWall(grid.C(x, y), mask); err != nil {
		t.Fatalf("SetWall(%d,%d) failed: %v", x, y, err)
	}
}

func containsCoord(list []grid.Coord, c grid.Coord) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}
