package grid

// Sweep is the outcome of a full row or column clear.
type Sweep struct {
	Cells []Coord   // Pieces cleared, rocks excluded
	Rocks []Coord   // Rocks broken on the way
	Walls []WallHit // Walls that stopped the sweep
}

func axisDirs(axis Effect) (Dir, Dir) {
	if axis == EffectColumn {
		return DirUp, DirDown
	}
	return DirLeft, DirRight
}

// HorizontalRun returns the wall-stopped run of the color at c along its row,
// c first. Cells without a playable color have no run.
func (g *Grid) HorizontalRun(c Coord) []Coord {
	return g.run(c, EffectRow, false)
}

// VerticalRun returns the wall-stopped run of the color at c along its column.
func (g *Grid) VerticalRun(c Coord) []Coord {
	return g.run(c, EffectColumn, false)
}

// run walks both ways from c while the color matches and no wall separates
// consecutive cells. With powers only power pieces extend the run.
func (g *Grid) run(c Coord, axis Effect, powers bool) []Coord {
	origin := g.matches[g.index(c)]
	if !origin.Color.Playable() || (powers && !origin.IsPower()) {
		return nil
	}
	out := []Coord{c}
	back, fwd := axisDirs(axis)
	for _, d := range []Dir{back, fwd} {
		cur := c
		for {
			next := cur.Step(d)
			if !g.InBounds(next) {
				break
			}
			m := g.matches[g.index(next)]
			if m.Color != origin.Color || (powers && !m.IsPower()) {
				break
			}
			if !g.HaveNoAdjacentWalls(cur, next) {
				break
			}
			out = append(out, next)
			cur = next
		}
	}
	return out
}

// SweepRow clears the row through c in both directions until a wall or the
// grid edge. Rocks are broken rather than cleared; void and empty cells are
// crossed.
func (g *Grid) SweepRow(c Coord) Sweep {
	return g.sweep(c, EffectRow)
}

// SweepColumn clears the column through c.
func (g *Grid) SweepColumn(c Coord) Sweep {
	return g.sweep(c, EffectColumn)
}

func (g *Grid) sweep(c Coord, axis Effect) Sweep {
	var s Sweep
	take := func(at Coord) {
		m := g.matches[g.index(at)]
		switch {
		case m.Empty():
		case m.Color.IsRock():
			s.Rocks = append(s.Rocks, at)
		default:
			s.Cells = append(s.Cells, at)
		}
	}

	take(c)
	back, fwd := axisDirs(axis)
	for _, d := range []Dir{back, fwd} {
		cur := c
		for {
			next := cur.Step(d)
			if !g.InBounds(next) {
				break
			}
			if hits := g.edgeWalls(cur, next); len(hits) > 0 {
				s.Walls = append(s.Walls, hits...)
				break
			}
			take(next)
			cur = next
		}
	}
	return s
}
