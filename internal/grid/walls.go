package grid

// WallHit names wall sides struck on one cell.
type WallHit struct {
	At    Coord
	Sides Wall
}

// HaveNoAdjacentWalls returns true unless a wall separates two axis-adjacent
// cells. The shared edge is checked from both sides. Pairs that are not
// adjacent pass; pairs with a cell outside the grid do not.
func (g *Grid) HaveNoAdjacentWalls(a, b Coord) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	d, ok := a.DirTo(b)
	if !ok {
		return true
	}
	return !g.walls(a).Has(d.Side()) && !g.walls(b).Has(d.Opposite().Side())
}

// edgeWalls returns the wall bits that block the edge from a to its neighbour b,
// split per cell.
func (g *Grid) edgeWalls(a, b Coord) []WallHit {
	d, ok := a.DirTo(b)
	if !ok {
		return nil
	}
	var hits []WallHit
	if s := g.walls(a) & d.Side(); s != WallNone {
		hits = append(hits, WallHit{At: a, Sides: s})
	}
	if s := g.walls(b) & d.Opposite().Side(); s != WallNone {
		hits = append(hits, WallHit{At: b, Sides: s})
	}
	return hits
}

// AreMatched returns true if two adjacent cells hold the same playable color
// with no wall between them.
func (g *Grid) AreMatched(a, b Coord) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	ca := g.matches[g.index(a)].Color
	return ca.Playable() && ca == g.matches[g.index(b)].Color && g.HaveNoAdjacentWalls(a, b)
}

// WallsAround collects every wall mask within a square window around c.
func (g *Grid) WallsAround(c Coord, radius int) []WallHit {
	var hits []WallHit
	for y := max(c.Y-radius, 0); y <= min(c.Y+radius, g.h-1); y++ {
		for x := max(c.X-radius, 0); x <= min(c.X+radius, g.w-1); x++ {
			if w := g.tiles[y*g.w+x].WallOrientation; w != WallNone {
				hits = append(hits, WallHit{At: C(x, y), Sides: w})
			}
		}
	}
	return hits
}

// SetHittedWalls clears the struck sides that are still present and emits one
// WallBroken per side cleared. A cell left without walls loses its wall type.
func (g *Grid) SetHittedWalls(hits []WallHit) {
	for _, hit := range hits {
		if !g.InBounds(hit.At) {
			continue
		}
		t := &g.tiles[g.index(hit.At)]
		present := t.WallOrientation & hit.Sides
		if present == WallNone {
			continue
		}
		t.WallOrientation &^= present
		if t.WallOrientation == WallNone {
			t.WallType = 0
		}
		for _, side := range present.Sides() {
			g.present.WallBroken(hit.At, side)
		}
		g.logger.Debug("wall broken", "at", hit.At, "sides", present)
	}
}
