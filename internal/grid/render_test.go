package grid_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

func TestRenderASCII(t *testing.T) {
	g, _ := newGrid(t, 4, grid.LayoutSquare)
	place(t, g, 0, 0, grid.ColorBlue, grid.EffectNone)
	place(t, g, 1, 0, grid.ColorRed, grid.EffectRow)
	place(t, g, 3, 3, grid.ColorRock, grid.EffectNone)
	wall(t, g, 0, 0, grid.WallEast|grid.WallSouth)

	want := strings.Join([]string{
		"Layout: square | 4x4 | Preview: 0 | Ramps: 0",
		"  B|r . .",
		"  -      ",
		"  . . . .",
		"  . . . .",
		"  . . . #",
		"",
	}, "\n")
	if got := grid.RenderASCII(g); got != want {
		t.Errorf("unexpected dump:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderASCIIRampsAndVoid(t *testing.T) {
	g, _ := newGrid(t, 6, grid.LayoutBoss01)
	out := grid.RenderASCII(g)

	if !strings.HasPrefix(out, "Layout: boss01 | 9x9 | Preview: 0 | Ramps: 4\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	for _, r := range []string{">", "<", "^"} {
		if !strings.Contains(out, r) {
			t.Errorf("expected ramp %q in the dump", r)
		}
	}
	if g.CellRune(grid.C(0, 0)) != ' ' {
		t.Errorf("expected void rendered blank, got %q", g.CellRune(grid.C(0, 0)))
	}
}

func TestRenderASCIIPreview(t *testing.T) {
	rules := grid.DefaultRules()
	rules.PreviewLines = 2
	g, _ := newGridWithRules(t, 4, grid.LayoutSquare, rules)
	g.Create()

	lines := strings.Split(grid.RenderASCII(g), "\n")
	if !strings.HasPrefix(lines[1], "~ ") || !strings.HasPrefix(lines[2], "~ ") {
		t.Errorf("expected two preview rows, got %q %q", lines[1], lines[2])
	}
	if strings.HasPrefix(lines[3], "~") {
		t.Errorf("expected the grid after the preview, got %q", lines[3])
	}
}
