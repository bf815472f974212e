package grid

import (
	"fmt"
	"strings"
	"unicode"
)

// CellRune returns the dump character of one cell.
//
// Format:
//   - void=' ', empty='.', empty fixed='_', empty ramps='<' '>' '^' 'v'
//   - colors B/R/G/P/K/Y, lowercase when the piece is a power
//   - rocks '#', items '$'
func (g *Grid) CellRune(c Coord) rune {
	t := g.tiles[g.index(c)]
	m := g.matches[g.index(c)]
	if !t.Ground.Playable() {
		return ' '
	}
	if m.Empty() {
		switch t.Ground {
		case GroundFixed:
			return '_'
		case GroundRampLeft:
			return '<'
		case GroundRampRight:
			return '>'
		case GroundRampUp:
			return '^'
		case GroundRampDown:
			return 'v'
		default:
			return '.'
		}
	}
	r := m.Color.Char()
	if m.IsPower() {
		r = unicode.ToLower(r)
	}
	return r
}

// RenderASCII dumps the grid for debugging and golden tests. Cells are
// separated by a space, or '|' where a wall splits the pair; a row of '-'
// marks walls between two rows and is only printed when one exists.
// Preview rows come first, prefixed with '~'.
func RenderASCII(g *Grid) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Layout: %s | %dx%d | Preview: %d | Ramps: %d\n",
		g.layout, g.w, g.h, g.previewLines, len(g.ramps)))

	for y := g.previewLines - 1; y >= 0; y-- {
		sb.WriteString("~ ")
		for x := 0; x < g.w; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(g.preview[g.previewIndex(C(x, y))].Color.Char())
		}
		sb.WriteString("\n")
	}

	for y := 0; y < g.h; y++ {
		sb.WriteString("  ")
		for x := 0; x < g.w; x++ {
			c := C(x, y)
			if x > 0 {
				if g.HaveNoAdjacentWalls(C(x-1, y), c) {
					sb.WriteByte(' ')
				} else {
					sb.WriteByte('|')
				}
			}
			sb.WriteRune(g.CellRune(c))
		}
		sb.WriteString("\n")

		if y+1 < g.h {
			gap := make([]byte, 2*g.w-1)
			walled := false
			for i := range gap {
				gap[i] = ' '
			}
			for x := 0; x < g.w; x++ {
				if !g.HaveNoAdjacentWalls(C(x, y), C(x, y+1)) {
					gap[2*x] = '-'
					walled = true
				}
			}
			if walled {
				sb.WriteString("  ")
				sb.Write(gap)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
