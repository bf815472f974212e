package grid_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/rng"
)

func buildSaved(t *testing.T, layout grid.Layout, preview int) (*grid.Grid, []byte) {
	t.Helper()
	rules := grid.DefaultRules()
	rules.PreviewLines = preview
	rules.PowerChance = 20
	rules.WallChance = 30
	g := grid.New(grid.Options{Rules: rules, Catalog: newTestCatalog(), Random: rng.NewStreams(11)})
	g.SetLayout(7, layout, grid.Alignment{}, true)
	g.Create()
	return g, g.Save()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, layout := range []grid.Layout{grid.LayoutSquare, grid.LayoutTTop, grid.LayoutBoss01, grid.LayoutBoss02} {
		t.Run(layout.String(), func(t *testing.T) {
			src, buf := buildSaved(t, layout, 2)

			dst := grid.New(grid.Options{Catalog: newTestCatalog()})
			if err := dst.Load(buf); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if dst.Width() != src.Width() || dst.Height() != src.Height() {
				t.Errorf("expected %dx%d, got %dx%d", src.Width(), src.Height(), dst.Width(), dst.Height())
			}
			if dst.Layout() != layout {
				t.Errorf("expected layout %s, got %s", layout, dst.Layout())
			}
			if dst.PreviewLines() != src.PreviewLines() {
				t.Errorf("expected %d preview lines, got %d", src.PreviewLines(), dst.PreviewLines())
			}
			if len(dst.Ramps()) != len(src.Ramps()) {
				t.Errorf("expected %d ramps rebuilt, got %d", len(src.Ramps()), len(dst.Ramps()))
			}
			if string(dst.Save()) != string(buf) {
				t.Error("expected the reloaded grid to save identically")
			}
			for i := 0; i < src.Len(); i++ {
				if src.MatchAt(i) != dst.MatchAt(i) {
					t.Fatalf("cell %d: expected %v, got %v", i, src.MatchAt(i), dst.MatchAt(i))
				}
			}
		})
	}
}

func TestLoadShortBufferKeepsGrid(t *testing.T) {
	g, before := buildSaved(t, grid.LayoutSquare, 1)

	err := g.Load([]byte{0, 0, 0, 0, 6})
	if err == nil {
		t.Fatal("expected an error for a 5-byte buffer")
	}
	var fe grid.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected a FormatError, got %T", err)
	}
	if fe.Code != "SHORT_BUFFER" {
		t.Errorf("expected SHORT_BUFFER, got %s", fe.Code)
	}
	if string(g.Save()) != string(before) {
		t.Error("expected the grid unchanged after a rejected load")
	}
}

func TestLoadRejects(t *testing.T) {
	_, good := buildSaved(t, grid.LayoutSquare, 1)
	w, h := int(good[4]), int(good[5])
	tiles := 8
	matches := tiles + w*h*4

	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}

	tests := []struct {
		name string
		buf  []byte
		code string
	}{
		{"short header", good[:7], "SHORT_HEADER"},
		{"dimension mismatch", mutate(func(b []byte) []byte { b[6] = 3; return b }), "BAD_DIMENSION"},
		{"too many preview lines", mutate(func(b []byte) []byte { b[7] = 3; return b }), "BAD_PREVIEW"},
		{"unknown layout", mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[0:4], 99)
			return b
		}), "BAD_LAYOUT"},
		{"boss size mismatch", mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[0:4], uint32(grid.LayoutBoss01))
			return b
		}), "BAD_LAYOUT"},
		{"truncated body", good[:len(good)-1], "TRUNCATED"},
		{"bad ground", mutate(func(b []byte) []byte { b[tiles] = 42; return b }), "BAD_GROUND"},
		{"bad wall mask", mutate(func(b []byte) []byte { b[tiles+2] = 0xF0; return b }), "BAD_WALL"},
		{"bad color", mutate(func(b []byte) []byte { b[matches] = 200; return b }), "BAD_COLOR"},
		{"effect out of range", mutate(func(b []byte) []byte { b[matches+2] = byte(grid.EffectRockBomb4) + 1; return b }), "BAD_EFFECT"},
		{"effect on empty cell", mutate(func(b []byte) []byte {
			b[matches] = 0
			b[matches+2] = 1
			return b
		}), "BAD_MATCH"},
		{"piece on void", mutate(func(b []byte) []byte { b[tiles] = 0; return b }), "BAD_MATCH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.New(grid.Options{})
			err := g.Load(tt.buf)
			var fe grid.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected a FormatError, got %v", err)
			}
			if fe.Code != tt.code {
				t.Errorf("expected %s, got %s (%s)", tt.code, fe.Code, fe.Message)
			}
			if g.Width() != 0 {
				t.Error("expected the grid left empty")
			}
		})
	}
}

func TestSaveSize(t *testing.T) {
	g, buf := buildSaved(t, grid.LayoutSquare, 2)
	n := g.Width() * g.Height()
	np := g.Width() * g.PreviewLines()
	want := 8 + n*(4+8+4) + np*(8+4)
	if len(buf) != want {
		t.Errorf("expected %d bytes, got %d", want, len(buf))
	}
}
