package grid

// move transfers the piece at from to the empty cell to.
func (g *Grid) move(from, to Coord) {
	fi, ti := g.index(from), g.index(to)
	g.matches[ti].SetProperty(g.matches[fi].Property())
	g.types[ti] = g.types[fi]
	g.matches[fi].Clear()
	g.types[fi] = NoType
	g.present.PieceMoved(from, to)
}

// CollapseColumn lets pieces of column x fall into the empty cells below
// them, bottom to top. A fall stops at a walled edge or at a piece resting
// on fixed or ramp ground; void cells are fallen through. It returns the
// longest fall distance.
func (g *Grid) CollapseColumn(x int) int {
	distance := 0
	for y := g.h - 1; y >= 0; y-- {
		dst := C(x, y)
		if !g.ground(dst).Playable() || !g.matches[g.index(dst)].Empty() {
			continue
		}
		cur := dst
		for y2 := y - 1; y2 >= 0; y2-- {
			src := C(x, y2)
			if !g.HaveNoAdjacentWalls(src, cur) {
				break
			}
			cur = src
			if g.matches[g.index(src)].Empty() {
				continue
			}
			if g.ground(src).Anchored() {
				break
			}
			g.move(src, dst)
			distance = max(distance, y-y2)
			break
		}
	}
	return distance
}

// AddColumn fills the empty cells of column x, bottom to top, from the
// preview strip or with new pieces. It returns the longest entry distance.
func (g *Grid) AddColumn(x int) int {
	distance := 0
	for y := g.h - 1; y >= 0; y-- {
		c := C(x, y)
		if !g.ground(c).Playable() || !g.matches[g.index(c)].Empty() {
			continue
		}
		if !g.GetPreviewMatch(c) && !g.AddObject(c) {
			g.logger.Warn("no piece to add", "at", c)
			continue
		}
		distance = max(distance, y+1)
	}
	return distance
}

// GetPreviewMatch moves the bottom preview piece of c's column into c, then
// shifts the strip down and rolls a new piece at its top. It returns false
// when the grid has no preview or the column has no ground on row 0.
func (g *Grid) GetPreviewMatch(c Coord) bool {
	if g.previewLines == 0 || !g.ground(C(c.X, 0)).Playable() {
		return false
	}
	for y := 0; y < g.previewLines; y++ {
		if g.preview[g.previewIndex(C(c.X, y))].Empty() {
			g.rollPreview(C(c.X, y))
		}
	}

	bottom := g.previewIndex(C(c.X, 0))
	if g.preview[bottom].Empty() {
		return false
	}
	i := g.index(c)
	g.matches[i].SetProperty(g.preview[bottom].Property())
	g.types[i] = g.previewTypes[bottom]

	for y := 0; y+1 < g.previewLines; y++ {
		lo, hi := g.previewIndex(C(c.X, y)), g.previewIndex(C(c.X, y+1))
		g.preview[lo].SetProperty(g.preview[hi].Property())
		g.previewTypes[lo] = g.previewTypes[hi]
	}
	top := g.previewIndex(C(c.X, g.previewLines-1))
	g.preview[top].Clear()
	g.previewTypes[top] = NoType
	g.rollPreview(C(c.X, g.previewLines-1))

	g.present.PieceCreated(c, g.matches[i], g.types[i])
	return true
}

func (g *Grid) rollPreview(p Coord) {
	i := g.previewIndex(p)
	m, id, ok := g.spawn()
	if !ok {
		return
	}
	m.X, m.Y = p.X, p.Y
	g.preview[i] = m
	g.previewTypes[i] = id
	if m.Color.IsRock() {
		g.tutorial.RockSpawned(p)
	}
}

// AddObject spawns a new piece at c: a power, a rock or an enemy, by weighted
// draw on the spawn stream. It returns false when the chosen category has no
// authorized type.
func (g *Grid) AddObject(c Coord) bool {
	m, id, ok := g.spawn()
	if !ok {
		return false
	}
	i := g.index(c)
	m.X, m.Y = c.X, c.Y
	g.matches[i] = m
	g.types[i] = id
	if m.Color.IsRock() {
		g.tutorial.RockSpawned(c)
	}
	g.present.PieceCreated(c, m, id)
	return true
}

// spawn draws a piece. Both chance draws are always taken so the stream
// advances the same way whatever the outcome.
func (g *Grid) spawn() (Match, TypeID, bool) {
	powers := g.authorized[CategoryPower]
	rocks := g.authorized[CategoryRock]
	enemies := g.authorized[CategoryEnemy]

	addPower := g.random.Spawn(100) < g.rules.PowerChance && len(powers) > 0
	addRock := g.random.Spawn(100) < g.rules.RockChance && len(rocks) > 0

	switch {
	case addPower && len(g.colors) > 0:
		id := powers[g.random.Spawn(len(powers))]
		t, _ := g.catalog.Traits(id)
		return Match{
			Color:   g.colors[g.random.Spawn(len(g.colors))],
			Subtype: g.Subtype(id),
			Effect:  t.Effect,
		}, id, true
	case addRock:
		id := rocks[g.random.Spawn(len(rocks))]
		return Match{Color: ColorRock, Subtype: -1}, id, true
	default:
		if len(enemies) == 0 {
			return Match{}, NoType, false
		}
		id := enemies[g.random.Spawn(len(enemies))]
		t, _ := g.catalog.Traits(id)
		return Match{Color: t.Color, Subtype: g.Subtype(id)}, id, true
	}
}

// AddPowerBonus turns the piece at c into a power of its own color. A
// negative index picks a random authorized power on the feature stream.
func (g *Grid) AddPowerBonus(c Coord, index int) bool {
	powers := g.authorized[CategoryPower]
	if len(powers) == 0 {
		g.logger.Warn("no power types authorized")
		return false
	}
	if index < 0 || index >= len(powers) {
		index = g.random.Feature(len(powers))
	}
	i := g.index(c)
	if !g.matches[i].Color.Playable() {
		return false
	}
	id := powers[index]
	t, ok := g.catalog.Traits(id)
	if !ok {
		return false
	}
	g.matches[i].Subtype = g.Subtype(id)
	g.matches[i].Effect = t.Effect
	g.types[i] = id
	g.present.PieceCreated(c, g.matches[i], id)
	g.logger.Debug("power bonus", "at", c, "id", id, "effect", t.Effect)
	return true
}

// AddItemBonus places a collectible of the given item color at c, replacing
// whatever was there. The item type is drawn on the feature stream.
func (g *Grid) AddItemBonus(c Coord, color Color) bool {
	if !color.IsItem() || !g.ground(c).Playable() {
		return false
	}
	var ids []TypeID
	for _, id := range g.authorized[CategoryItem] {
		if t, ok := g.catalog.Traits(id); ok && t.Color == color {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return false
	}
	k := g.random.Feature(len(ids))
	i := g.index(c)
	g.matches[i] = Match{X: c.X, Y: c.Y, Color: color, Subtype: g.Subtype(ids[k]), Qty: 1}
	g.types[i] = ids[k]
	g.present.PieceCreated(c, g.matches[i], ids[k])
	return true
}
