package grid_test

import (
	"testing"

	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/rng"
)

// checkContained fails when two axis-adjacent cells of cells share a walled edge.
func checkContained(t *testing.T, g *grid.Grid, label string, cells []grid.Coord) {
	t.Helper()
	for i, a := range cells {
		for _, b := range cells[i+1:] {
			if a.Adjacent(b) && !g.HaveNoAdjacentWalls(a, b) {
				t.Errorf("%s: %v and %v are separated by a wall but share a result", label, a, b)
			}
		}
	}
}

func TestResolveSpreadBombPartialWall(t *testing.T) {
	g, _ := newGrid(t, 6, grid.LayoutSquare)
	place(t, g, 1, 1, grid.ColorBlue, grid.EffectSpread)
	place(t, g, 2, 1, grid.ColorBlue, grid.EffectNone)
	place(t, g, 2, 2, grid.ColorBlue, grid.EffectNone)
	place(t, g, 1, 2, grid.ColorRed, grid.EffectNone)
	wall(t, g, 1, 1, grid.WallEast)
	wall(t, g, 2, 1, grid.WallWest)

	res := g.Resolve(grid.C(1, 1))
	if containsCoord(res.Destroyed, grid.C(2, 1)) || containsCoord(res.Activated, grid.C(2, 1)) {
		t.Errorf("flood went around the wall to (2,1): destroyed %v", res.Destroyed)
	}
	if res.Success() {
		t.Errorf("expected two cells to fall short of a match, got %v", res.Destroyed)
	}

	// A larger region still goes off without taking the walled cell.
	place(t, g, 3, 1, grid.ColorBlue, grid.EffectNone)
	place(t, g, 3, 2, grid.ColorBlue, grid.EffectNone)
	res = g.Resolve(grid.C(1, 1))
	if len(res.Destroyed) != 4 {
		t.Fatalf("expected 4 destroyed, got %v", res.Destroyed)
	}
	for _, c := range []grid.Coord{grid.C(1, 1), grid.C(2, 2), grid.C(3, 2), grid.C(3, 1)} {
		if !containsCoord(res.Destroyed, c) {
			t.Errorf("expected %v destroyed", c)
		}
	}
	if containsCoord(res.Destroyed, grid.C(2, 1)) {
		t.Errorf("expected (2,1) kept, got %v", res.Destroyed)
	}
	checkContained(t, g, "destroyed", res.Destroyed)
}

func TestResolveChainedSweepsRespectWalls(t *testing.T) {
	g, _ := newGrid(t, 6, grid.LayoutSquare)
	for x := 0; x < 6; x++ {
		place(t, g, x, 1, grid.ColorRed, grid.EffectNone)
		place(t, g, x, 2, grid.ColorRed, grid.EffectNone)
	}
	place(t, g, 2, 0, grid.ColorBlue, grid.EffectColumn)
	place(t, g, 2, 1, grid.ColorBlue, grid.EffectRow)
	place(t, g, 2, 2, grid.ColorBlue, grid.EffectRow)
	wall(t, g, 0, 1, grid.WallSouth)
	wall(t, g, 0, 2, grid.WallNorth)

	res := g.Resolve(grid.C(2, 0))
	if len(res.Destroyed) != 12 {
		t.Fatalf("expected 12 destroyed, got %d: %v", len(res.Destroyed), res.Destroyed)
	}
	upper := containsCoord(res.Destroyed, grid.C(0, 1))
	lower := containsCoord(res.Destroyed, grid.C(0, 2))
	if upper == lower {
		t.Errorf("expected exactly one side of the wall cleared, got upper %v lower %v", upper, lower)
	}
	checkContained(t, g, "destroyed", res.Destroyed)
	checkContained(t, g, "scored", res.Scored)
	checkContained(t, g, "activated", res.Activated)
}

func TestWallContainmentOnRandomGrids(t *testing.T) {
	rules := grid.DefaultRules()
	rules.WallChance = 60
	rules.PowerChance = 25
	rules.RockChance = 10

	for seed := int64(1); seed <= 12; seed++ {
		g := grid.New(grid.Options{Rules: rules, Catalog: newTestCatalog(), Random: rng.NewStreams(seed)})
		g.SetLayout(8, grid.LayoutSquare, grid.Alignment{}, true)
		g.Create()

		for i := 0; i < g.Len(); i++ {
			c := g.MatchAt(i).Coord()
			for _, res := range []grid.Result{g.Resolve(c), g.ResolveMatches(c)} {
				checkContained(t, g, "removals", res.Removals())
				checkContained(t, g, "scored", res.Scored)
			}
		}
		for _, h := range g.AllHints() {
			checkContained(t, g, h.Kind.String()+" hint", h.Cells)
			if h.Kind == grid.HintLine || h.Kind == grid.HintSquare {
				// The pattern once the mover lands on To.
				landed := append([]grid.Coord{h.To}, h.Cells[:len(h.Cells)-1]...)
				checkContained(t, g, h.Kind.String()+" pattern", landed)
			}
		}
	}
}
