package grid

// HintKind names the pattern a hint was found with.
type HintKind uint8

const (
	HintItem HintKind = iota
	HintExplosion
	HintLine
	HintSquare
)

// String returns the string representation of a hint kind.
func (k HintKind) String() string {
	switch k {
	case HintItem:
		return "item"
	case HintExplosion:
		return "explosion"
	case HintLine:
		return "line"
	case HintSquare:
		return "square"
	default:
		return "unknown"
	}
}

// Hint is one available move. Swapping From and To completes the pattern;
// an item hint has From == To and is collected by selecting it.
// Cells lists every participant, the moving piece last.
type Hint struct {
	Kind  HintKind
	From  Coord
	To    Coord
	Cells []Coord
}

// GetHints appends every move found for the cell at flat index i to out.
// The grid is not modified.
func (g *Grid) GetHints(i int, out []Hint) []Hint {
	x := g.coordOf(i)
	m := g.matches[i]

	if m.Color.IsItem() {
		return append(out, Hint{Kind: HintItem, From: x, To: x, Cells: []Coord{x}})
	}
	if !m.Color.Playable() {
		return out
	}

	found := len(out)
	out = g.explosionHints(x, out)
	out = g.squareHints(x, out)
	out = g.lineHints(x, EffectRow, out)
	out = g.lineHints(x, EffectColumn, out)
	out = dedupeHints(out, found)

	if g.rules.Tutorial && m.IsPower() && len(out) > found {
		id := g.types[i]
		if id != NoType && !g.hinted[id] && !g.tutorial.PowerShown(id) {
			g.hinted[id] = true
			g.tutorial.PowerHint(id, x)
			g.logger.Debug("power hint", "id", id, "at", x)
		}
	}
	return out
}

// Hints returns the moves found for c.
func (g *Grid) Hints(c Coord) []Hint {
	return g.GetHints(g.index(c), nil)
}

// AllHints returns the moves of every cell in row-major order.
func (g *Grid) AllHints() []Hint {
	var out []Hint
	for i := range g.matches {
		out = g.GetHints(i, out)
	}
	return out
}

// IsPowerActivable returns true if any pattern exists for c.
func (g *Grid) IsPowerActivable(c Coord) bool {
	m := g.Match(c)
	if !m.Color.Playable() {
		return false
	}
	return len(g.explosionHints(c, nil)) > 0 ||
		len(g.squareHints(c, nil)) > 0 ||
		len(g.lineHints(c, EffectRow, nil)) > 0 ||
		len(g.lineHints(c, EffectColumn, nil)) > 0
}

// HasMoves returns true if at least one cell has a hint.
func (g *Grid) HasMoves() bool {
	for i, m := range g.matches {
		if m.Color.IsItem() {
			return true
		}
		if m.Color.Playable() && g.IsPowerActivable(g.coordOf(i)) {
			return true
		}
	}
	return false
}

func dedupeHints(hints []Hint, from int) []Hint {
	type move struct{ a, b Coord }
	seen := make(map[move]bool)
	out := hints[:from]
	for _, h := range hints[from:] {
		k := move{h.From, h.To}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, h)
	}
	return out
}

// same returns true if c is on the grid and holds color.
func (g *Grid) same(c Coord, color Color) bool {
	return g.InBounds(c) && g.matches[g.index(c)].Color == color
}

func (g *Grid) selectable(c Coord) bool {
	return g.InBounds(c) && g.ground(c).Playable() && g.matches[g.index(c)].Selectable()
}

// explosionHints finds a line bomb that can be moved next to a power of its
// own color: either directly beside it, or one swap away across a diagonal.
func (g *Grid) explosionHints(x Coord, out []Hint) []Hint {
	m := g.matches[g.index(x)]
	if !g.rules.LineBomb || !m.Effect.IsLine() {
		return out
	}
	for _, d := range []Dir{DirUp, DirRight, DirDown, DirLeft} {
		v := x.Step(d)
		if !g.selectable(v) || !g.HaveNoAdjacentWalls(x, v) {
			continue
		}
		if vm := g.matches[g.index(v)]; vm.Color == m.Color && vm.IsPower() {
			out = append(out, Hint{Kind: HintExplosion, From: x, To: v, Cells: []Coord{v, x}})
		}
		for _, side := range perpendicular(d) {
			w := v.Step(side)
			if !g.same(w, m.Color) || !g.matches[g.index(w)].IsPower() || !g.HaveNoAdjacentWalls(v, w) {
				continue
			}
			out = append(out, Hint{Kind: HintExplosion, From: x, To: v, Cells: []Coord{w, x}})
		}
	}
	return out
}

func perpendicular(d Dir) [2]Dir {
	if d == DirUp || d == DirDown {
		return [2]Dir{DirLeft, DirRight}
	}
	return [2]Dir{DirUp, DirDown}
}

// lineHints finds every one-swap completion of a three-cell window along
// axis that contains x. The empty slot of the window is filled by a piece of
// x's color from outside the window.
func (g *Grid) lineHints(x Coord, axis Effect, out []Hint) []Hint {
	if (axis == EffectRow && !g.rules.Horizontal) || (axis == EffectColumn && !g.rules.Vertical) {
		return out
	}
	color := g.matches[g.index(x)].Color
	back, fwd := axisDirs(axis)
	bdx, bdy := back.Delta()
	fdx, fdy := fwd.Delta()
	size := g.rules.MinimalMatches

	for offset := 0; offset < size; offset++ {
		start := x.Add(bdx*offset, bdy*offset)
		window := make([]Coord, size)
		for k := range window {
			window[k] = start.Add(fdx*k, fdy*k)
		}
		if !g.InBounds(window[0]) || !g.InBounds(window[size-1]) {
			continue
		}
		if !g.windowOpen(window) {
			continue
		}
		for s, slot := range window {
			if slot == x || !g.selectable(slot) || g.same(slot, color) {
				continue
			}
			if !g.windowFilled(window, s, color) {
				continue
			}
			movers := []Coord{}
			for _, p := range perpendicular(back) {
				movers = append(movers, slot.Step(p))
			}
			if s == 0 {
				movers = append(movers, slot.Step(back))
			}
			if s == size-1 {
				movers = append(movers, slot.Step(fwd))
			}
			for _, mv := range movers {
				if !g.same(mv, color) || !g.selectable(mv) || !g.HaveNoAdjacentWalls(mv, slot) {
					continue
				}
				cells := make([]Coord, 0, size)
				for k, c := range window {
					if k != s {
						cells = append(cells, c)
					}
				}
				out = append(out, Hint{Kind: HintLine, From: mv, To: slot, Cells: append(cells, mv)})
			}
		}
	}
	return out
}

// windowOpen returns true if no wall separates consecutive window cells.
func (g *Grid) windowOpen(window []Coord) bool {
	for k := 1; k < len(window); k++ {
		if !g.HaveNoAdjacentWalls(window[k-1], window[k]) {
			return false
		}
	}
	return true
}

// windowFilled returns true if every window cell but the slot holds color.
func (g *Grid) windowFilled(window []Coord, slot int, color Color) bool {
	for k, c := range window {
		if k != slot && !g.same(c, color) {
			return false
		}
	}
	return true
}

// squareHints finds every one-swap completion of a 2x2 block containing x.
func (g *Grid) squareHints(x Coord, out []Hint) []Hint {
	if !g.rules.Square {
		return out
	}
	color := g.matches[g.index(x)].Color
	for _, d := range squareCorners {
		block := [4]Coord{x, x.Add(d[0], 0), x.Add(0, d[1]), x.Add(d[0], d[1])}
		if !g.InBounds(block[3]) {
			continue
		}
		if !g.HaveNoAdjacentWalls(block[0], block[1]) || !g.HaveNoAdjacentWalls(block[0], block[2]) ||
			!g.HaveNoAdjacentWalls(block[1], block[3]) || !g.HaveNoAdjacentWalls(block[2], block[3]) {
			continue
		}
		for s := 1; s < 4; s++ {
			slot := block[s]
			if !g.selectable(slot) || g.same(slot, color) {
				continue
			}
			filled := true
			for k := 1; k < 4; k++ {
				if k != s && !g.same(block[k], color) {
					filled = false
				}
			}
			if !filled {
				continue
			}
			for _, mv := range outward(slot, block) {
				if !g.same(mv, color) || !g.selectable(mv) || !g.HaveNoAdjacentWalls(mv, slot) {
					continue
				}
				cells := make([]Coord, 0, 4)
				for k, c := range block {
					if k != s {
						cells = append(cells, c)
					}
				}
				out = append(out, Hint{Kind: HintSquare, From: mv, To: slot, Cells: append(cells, mv)})
			}
		}
	}
	return out
}

// outward returns the neighbours of a block corner that lie outside the block.
func outward(c Coord, block [4]Coord) []Coord {
	var out []Coord
	for _, d := range []Dir{DirUp, DirRight, DirDown, DirLeft} {
		n := c.Step(d)
		inside := false
		for _, b := range block {
			if b == n {
				inside = true
			}
		}
		if !inside {
			out = append(out, n)
		}
	}
	return out
}
