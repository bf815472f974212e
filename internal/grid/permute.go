package grid

// permutation is the single staged swap: snapshots of both cells taken
// before their records were exchanged.
type permutation struct {
	a, b Match
}

// PermuteMatchType stages a swap of the records at a and b. Piece
// identities stay put until ConfirmPermute. A second call before confirm or
// undo replaces the staged snapshot.
func (g *Grid) PermuteMatchType(a, b Coord) {
	ia, ib := g.index(a), g.index(b)
	if g.staged != nil {
		g.logger.Debug("permutation overwritten", "a", g.staged.a.Coord(), "b", g.staged.b.Coord())
	}
	g.staged = &permutation{a: g.matches[ia], b: g.matches[ib]}
	pa := g.matches[ia].Property()
	g.matches[ia].SetProperty(g.matches[ib].Property())
	g.matches[ib].SetProperty(pa)
}

// Staged returns the cells of the staged permutation.
func (g *Grid) Staged() (a, b Coord, ok bool) {
	if g.staged == nil {
		return Coord{}, Coord{}, false
	}
	return g.staged.a.Coord(), g.staged.b.Coord(), true
}

// UndoPermute restores both staged cells to their snapshots.
func (g *Grid) UndoPermute() {
	if g.staged == nil {
		return
	}
	s := g.staged
	g.staged = nil
	g.matches[g.index(s.a.Coord())] = s.a
	g.matches[g.index(s.b.Coord())] = s.b
}

// ConfirmPermute commits the staged swap: the piece identities follow their
// records and the presenter is told.
func (g *Grid) ConfirmPermute() {
	if g.staged == nil {
		return
	}
	a, b := g.staged.a.Coord(), g.staged.b.Coord()
	g.staged = nil
	ia, ib := g.index(a), g.index(b)
	g.types[ia], g.types[ib] = g.types[ib], g.types[ia]
	g.present.PiecesSwapped(a, b)
}
