package grid

// UpdateDirectionalTiles advances the ramps by one tick: pieces on exits are
// removed, every ramp rider steps once along its ramp, and empty entrances
// receive a new piece. Ramps are walked last to first and each path from its
// far end, so a piece moves at most once per tick. It returns true if
// anything changed.
func (g *Grid) UpdateDirectionalTiles() bool {
	changed := false

	for _, c := range g.exits {
		if !g.matches[g.index(c)].Empty() {
			g.Remove(c)
			changed = true
		}
	}

	if len(g.ramps) > 0 {
		if len(g.rampMarks) != g.w*g.h {
			g.rampMarks = make([]int, g.w*g.h)
		}
		for i := range g.rampMarks {
			g.rampMarks[i] = -1
		}

		for ri := len(g.ramps) - 1; ri >= 0; ri-- {
			r := g.ramps[ri]
			for j := len(r.Cells) - 1; j >= 0; j-- {
				from := r.Cells[j]
				to := from.Step(r.Dir)
				if !g.InBounds(to) {
					continue
				}
				fi, ti := g.index(from), g.index(to)
				if mark := g.rampMarks[fi]; mark != -1 && mark != ri {
					continue
				}
				if g.matches[fi].Empty() || !g.matches[ti].Empty() || !g.tiles[ti].Ground.Playable() {
					continue
				}
				if !g.HaveNoAdjacentWalls(from, to) {
					continue
				}
				g.move(from, to)
				g.rampMarks[fi] = ri
				g.rampMarks[ti] = ri
				changed = true
			}
		}
	}

	for _, c := range g.entrances {
		if g.matches[g.index(c)].Empty() && g.AddObject(c) {
			changed = true
		}
	}

	return changed
}
