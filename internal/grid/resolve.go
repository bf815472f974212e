package grid

// Result lists what a resolution touched. Destroyed is either empty or holds
// at least MinimalMatches cells.
type Result struct {
	Destroyed   []Coord   // Cells to clear
	Scored      []Coord   // Cells counted as matched
	Activated   []Coord   // Powers that went off
	BrokenRocks []Coord   // Rocks struck by a bomb
	HitWalls    []WallHit // Wall sides struck by a bomb
}

// Success returns true if the resolution consumes a move: a match reached
// the threshold or a bomb went off.
func (r Result) Success() bool {
	return len(r.Destroyed) > 0 || len(r.Activated) > 0 || len(r.BrokenRocks) > 0 || len(r.HitWalls) > 0
}

// Removals returns every cell the caller must clear, without duplicates.
func (r Result) Removals() []Coord {
	seen := make(map[Coord]bool)
	var out []Coord
	for _, list := range [][]Coord{r.Destroyed, r.Activated, r.BrokenRocks} {
		for _, c := range list {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// Merge folds another result into r without duplicating cells.
func (r *Result) Merge(o Result) {
	r.Destroyed = mergeCoords(r.Destroyed, o.Destroyed)
	r.Scored = mergeCoords(r.Scored, o.Scored)
	r.Activated = mergeCoords(r.Activated, o.Activated)
	r.BrokenRocks = mergeCoords(r.BrokenRocks, o.BrokenRocks)
	r.HitWalls = append(r.HitWalls, o.HitWalls...)
}

func mergeCoords(a, b []Coord) []Coord {
	seen := make(map[Coord]bool, len(a))
	for _, c := range a {
		seen[c] = true
	}
	for _, c := range b {
		if !seen[c] {
			seen[c] = true
			a = append(a, c)
		}
	}
	return a
}

// resolution accumulates one Resolve call.
type resolution struct {
	g         *Grid
	destroyed *cellSet
	scored    *cellSet
	activated *cellSet
	rocks     *cellSet
	walls     []WallHit
	claimed   *cellSet // Union of destroyed, activated and rocks
	fired     *cellSet // flat index*2+axis keyed through a 2w-wide set
}

func (g *Grid) newResolution() *resolution {
	n := g.w * g.h
	return &resolution{
		g:         g,
		destroyed: newCellSet(g.w, n),
		scored:    newCellSet(g.w, n),
		activated: newCellSet(g.w, 8),
		rocks:     newCellSet(g.w, 8),
		claimed:   newCellSet(g.w, n),
		fired:     newCellSet(2*g.w, 8),
	}
}

// take adds cells to set, skipping any cell that a wall separates from a
// cell the resolution already claimed. It returns the cells kept.
func (r *resolution) take(set *cellSet, cells ...Coord) []Coord {
	kept := make([]Coord, 0, len(cells))
	for _, c := range cells {
		if !r.claimed.has(c) {
			if r.g.walledFrom(r.claimed, c) {
				continue
			}
			r.claimed.add(c)
		}
		set.add(c)
		kept = append(kept, c)
	}
	return kept
}

func (r *resolution) result() Result {
	var scored []Coord
	for _, c := range r.scored.cells() {
		if r.claimed.has(c) {
			scored = append(scored, c)
		}
	}
	res := Result{
		Destroyed:   r.destroyed.cells(),
		Scored:      scored,
		Activated:   r.activated.cells(),
		BrokenRocks: r.rocks.cells(),
		HitWalls:    r.walls,
	}
	if len(res.Destroyed) < r.g.rules.MinimalMatches {
		res.Destroyed = nil
		res.Scored = nil
	}
	return res
}

// fire clears the line through c along axis, then chains through every
// line power the sweep reaches. Each (cell, axis) pair fires at most once.
func (r *resolution) fire(c Coord, axis Effect) {
	type shot struct {
		at   Coord
		axis Effect
	}
	queue := []shot{{c, axis}}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		slot := C(s.at.X*2, s.at.Y)
		if s.axis == EffectColumn {
			slot.X++
		}
		if !r.fired.add(slot) {
			continue
		}
		if len(r.take(r.activated, s.at)) == 0 {
			continue
		}

		var sw Sweep
		if s.axis == EffectColumn {
			sw = r.g.SweepColumn(s.at)
		} else {
			sw = r.g.SweepRow(s.at)
		}
		hits := r.take(r.destroyed, sw.Cells...)
		r.take(r.rocks, sw.Rocks...)
		r.walls = append(r.walls, sw.Walls...)

		for _, hit := range hits {
			if hit == s.at {
				continue
			}
			e := r.g.matches[r.g.index(hit)].Effect
			for _, a := range []Effect{EffectRow, EffectColumn} {
				if e.Fires(a) {
					queue = append(queue, shot{hit, a})
				}
			}
		}
	}
}

// Resolve computes what a player move at origin clears. The grid is not
// modified; the caller removes cells and applies wall hits.
// Rules are tried in priority order: neighbourhood bomb, wall bomb, line bomb
// chain, square, then line runs. A line bomb moved by the player always goes
// off along its own axes.
func (g *Grid) Resolve(origin Coord) Result {
	return g.resolve(origin, true)
}

// ResolveMatches is Resolve for cells that settled on their own during a
// cascade: a lone line bomb only goes off when it belongs to a run or chain.
func (g *Grid) ResolveMatches(origin Coord) Result {
	return g.resolve(origin, false)
}

func (g *Grid) resolve(origin Coord, triggered bool) Result {
	if !g.InBounds(origin) || !g.ground(origin).Playable() {
		return Result{}
	}
	entry := g.matches[g.index(origin)]
	if entry.Empty() || entry.Color.IsItem() || entry.Color.IsRock() {
		return Result{}
	}

	r := g.newResolution()

	if g.rules.SpreadBomb && entry.Effect.IsSpread() && (g.rules.RockBomb || !entry.Effect.IsRockBomb()) {
		cells := g.flood(origin)
		if entry.Effect.IsRockBomb() {
			if len(cells) > 1 {
				r.take(r.activated, origin)
				r.take(r.rocks, cells[1:]...)
				return r.result()
			}
		} else if len(cells) >= g.rules.MinimalMatches {
			r.scored.addAll(cells)
			r.take(r.activated, cells...)
			r.take(r.destroyed, cells...)
			return r.result()
		}
	}

	if g.rules.WallBomb && entry.Effect.IsWallBreaker() {
		if hits := g.WallsAround(origin, 1); len(hits) > 0 {
			r.take(r.activated, origin)
			r.walls = hits
			return r.result()
		}
	}

	if g.rules.LineBomb && entry.Effect.IsLine() {
		hp := g.run(origin, EffectRow, true)
		vp := g.run(origin, EffectColumn, true)
		chained := len(hp) > 1 || len(vp) > 1
		if chained || triggered {
			chain := newCellSet(g.w, len(hp)+len(vp))
			chain.addAll(hp)
			chain.addAll(vp)
			r.scored.addAll(chain.cells())
			for _, c := range chain.cells() {
				e := g.matches[g.index(c)].Effect
				for _, a := range []Effect{EffectRow, EffectColumn} {
					if e.Fires(a) {
						r.fire(c, a)
					}
				}
				r.take(r.activated, c)
			}
			if chained {
				return r.result()
			}
		}
	}

	if g.rules.Square {
		if sq := g.square(origin); sq != nil {
			r.scored.addAll(sq)
			r.take(r.destroyed, sq...)
		}
	}

	policy := g.rules.policy()
	for _, axis := range []Effect{EffectRow, EffectColumn} {
		if (axis == EffectRow && !g.rules.Horizontal) || (axis == EffectColumn && !g.rules.Vertical) {
			continue
		}
		run := g.run(origin, axis, false)
		if len(run) < g.rules.MinimalMatches {
			continue
		}
		r.scored.addAll(run)
		r.take(r.destroyed, run...)
		if !g.rules.LineBomb {
			continue
		}

		var bombs []Coord
		var effects []Effect
		for _, c := range run {
			if e := g.matches[g.index(c)].Effect; e.IsLine() {
				bombs = append(bombs, c)
				effects = append(effects, e)
			}
		}
		if len(bombs) == 0 {
			continue
		}
		for i, fires := range policy.RunFires(axis, effects) {
			for _, a := range []Effect{EffectRow, EffectColumn} {
				if fires&a != 0 {
					r.fire(bombs[i], a)
				}
			}
		}
	}

	return r.result()
}

var squareCorners = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}

// square returns the first 2x2 block around c whose four inner edges match,
// c first, or nil.
func (g *Grid) square(c Coord) []Coord {
	for _, d := range squareCorners {
		h := c.Add(d[0], 0)
		v := c.Add(0, d[1])
		diag := c.Add(d[0], d[1])
		if !g.InBounds(diag) {
			continue
		}
		if g.AreMatched(c, h) && g.AreMatched(c, v) && g.AreMatched(v, diag) && g.AreMatched(h, diag) {
			return []Coord{c, h, v, diag}
		}
	}
	return nil
}

// flood collects the region a neighbourhood bomb at origin reaches inside a
// square window of its radius, origin first. Plain bombs gather their own
// color; rock bombs gather rocks. Diagonal steps need an open orthogonal
// detour, and a cell walled off from any gathered neighbour is left out.
func (g *Grid) flood(origin Coord) []Coord {
	entry := g.matches[g.index(origin)]
	target := entry.Color
	if entry.Effect.IsRockBomb() {
		target = ColorRock
	}
	radius := entry.Effect.Radius()
	x0, x1 := max(origin.X-radius, 0), min(origin.X+radius, g.w-1)
	y0, y1 := max(origin.Y-radius, 0), min(origin.Y+radius, g.h-1)

	visited := newCellSet(g.w, (x1-x0+1)*(y1-y0+1))
	out := []Coord{origin}
	visited.add(origin)
	stack := []Coord{origin}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := cur.Add(dx, dy)
				if (dx == 0 && dy == 0) || n.X < x0 || n.X > x1 || n.Y < y0 || n.Y > y1 {
					continue
				}
				if visited.has(n) || g.matches[g.index(n)].Color != target || !g.stepOpen(cur, n) {
					continue
				}
				if g.walledFrom(visited, n) {
					continue
				}
				visited.add(n)
				out = append(out, n)
				stack = append(stack, n)
			}
		}
	}
	return out
}

// stepOpen returns true if a flood may step from a to a neighbour b,
// diagonals included.
func (g *Grid) stepOpen(a, b Coord) bool {
	if a.Adjacent(b) {
		return g.HaveNoAdjacentWalls(a, b)
	}
	p, q := C(b.X, a.Y), C(a.X, b.Y)
	return (g.HaveNoAdjacentWalls(a, p) && g.HaveNoAdjacentWalls(p, b)) ||
		(g.HaveNoAdjacentWalls(a, q) && g.HaveNoAdjacentWalls(q, b))
}

// walledFrom returns true if a wall separates c from an axis neighbour in set.
func (g *Grid) walledFrom(set *cellSet, c Coord) bool {
	for _, d := range []Dir{DirUp, DirRight, DirDown, DirLeft} {
		n := c.Step(d)
		if g.InBounds(n) && set.has(n) && !g.HaveNoAdjacentWalls(c, n) {
			return true
		}
	}
	return false
}
