package grid

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matchgrid/internal/rng"
)

// Options configures a Grid. Zero values select defaults.
type Options struct {
	Rules     Rules
	Catalog   Catalog
	Random    Randomizer
	Presenter Presenter
	Tutorial  Tutorial
	Logger    *log.Logger
	Frame     Frame
}

// Grid owns the topology and piece records of one level.
// A Grid is not safe for concurrent use.
type Grid struct {
	rules    Rules
	catalog  Catalog
	random   Randomizer
	present  Presenter
	tutorial Tutorial
	logger   *log.Logger
	frame    Frame

	layout       Layout
	align        Alignment
	w, h         int
	dimension    int
	previewLines int

	tiles        []Tile   // Topology, row-major
	matches      []Match  // Piece records, row-major
	types        []TypeID // Piece identities, parallel to matches
	preview      []Match  // Preview strip, previewLines rows above row 0
	previewTypes []TypeID

	ramps     []Ramp
	entrances []Coord
	exits     []Coord
	rampMarks []int // Per-tick move markers, reset on every UpdateDirectionalTiles

	gravityColumns []int

	authorized map[Category][]TypeID
	subtypes   map[TypeID]int8 // Index of each type in its color's sub-catalog
	colors     []Color
	hinted     map[TypeID]bool

	staged *permutation
}

// New creates an empty grid. Call SetLayout then Create, or Load.
func New(opts Options) *Grid {
	if opts.Rules == (Rules{}) {
		opts.Rules = DefaultRules()
	}
	if opts.Random == nil {
		opts.Random = rng.NewStreams(0)
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}
	if opts.Tutorial == nil {
		opts.Tutorial = nopTutorial{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Frame.CellSize <= 0 {
		opts.Frame.CellSize = 1
	}

	return &Grid{
		rules:      opts.Rules,
		catalog:    opts.Catalog,
		random:     opts.Random,
		present:    opts.Presenter,
		tutorial:   opts.Tutorial,
		logger:     opts.Logger,
		frame:      opts.Frame,
		authorized: make(map[Category][]TypeID),
		subtypes:   make(map[TypeID]int8),
		hinted:     make(map[TypeID]bool),
	}
}

// Rules returns the rule set owned by the grid.
func (g *Grid) Rules() Rules { return g.rules }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Dimension returns the clamped dimension the layout was built from.
func (g *Grid) Dimension() int { return g.dimension }

// PreviewLines returns the number of preview rows.
func (g *Grid) PreviewLines() int { return g.previewLines }

// Layout returns the current layout.
func (g *Grid) Layout() Layout { return g.layout }

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

// index converts a coordinate to a flat array index.
// Out-of-range coordinates are a caller bug.
func (g *Grid) index(c Coord) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("grid: coordinate %s outside %dx%d", c, g.w, g.h))
	}
	return c.Y*g.w + c.X
}

func (g *Grid) coordOf(i int) Coord {
	return C(i%g.w, i/g.w)
}

func (g *Grid) previewIndex(c Coord) int {
	if c.X < 0 || c.X >= g.w || c.Y < 0 || c.Y >= g.previewLines {
		panic(fmt.Sprintf("grid: preview coordinate %s outside %dx%d", c, g.w, g.previewLines))
	}
	return c.Y*g.w + c.X
}

// Tile returns the topology record at c.
func (g *Grid) Tile(c Coord) Tile {
	return g.tiles[g.index(c)]
}

// Match returns the piece record at c.
func (g *Grid) Match(c Coord) Match {
	return g.matches[g.index(c)]
}

// MatchAt returns the piece record at a flat index.
func (g *Grid) MatchAt(i int) Match {
	return g.matches[i]
}

// TypeAt returns the piece identity at c.
func (g *Grid) TypeAt(c Coord) TypeID {
	return g.types[g.index(c)]
}

// PreviewMatch returns the preview record at column c.X, preview row c.Y.
func (g *Grid) PreviewMatch(c Coord) Match {
	return g.preview[g.previewIndex(c)]
}

// PreviewType returns the preview identity at column c.X, preview row c.Y.
func (g *Grid) PreviewType(c Coord) TypeID {
	return g.previewTypes[g.previewIndex(c)]
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.matches) }

func (g *Grid) ground(c Coord) Ground {
	return g.tiles[g.index(c)].Ground
}

func (g *Grid) walls(c Coord) Wall {
	return g.tiles[g.index(c)].WallOrientation
}

// SetMatch places a piece at c. Pieces on void cells are rejected.
// An empty color clears the cell and drops any effect.
func (g *Grid) SetMatch(c Coord, m Match, id TypeID) error {
	i := g.index(c)
	if !g.tiles[i].Ground.Playable() && !m.Empty() {
		return fmt.Errorf("grid: cannot place a piece on void cell %s", c)
	}
	m.X, m.Y = c.X, c.Y
	if m.Empty() {
		m.Clear()
		id = NoType
	}
	g.matches[i] = m
	g.types[i] = id
	return nil
}

// Remove destroys the piece at c and notifies the presenter.
// Removing a cell of a staged permutation confirms the permutation first so
// identities follow the pieces.
func (g *Grid) Remove(c Coord) {
	i := g.index(c)
	if g.staged != nil && (g.staged.a.Coord() == c || g.staged.b.Coord() == c) {
		g.ConfirmPermute()
	}
	if g.matches[i].Empty() {
		return
	}
	g.matches[i].Clear()
	g.types[i] = NoType
	g.present.PieceDestroyed(c)
}

// ClearObjects removes piece identities. With purge the records are cleared
// entirely, otherwise only the color is reset.
func (g *Grid) ClearObjects(purge bool) {
	for i := range g.matches {
		if purge {
			g.matches[i].Clear()
		} else {
			g.matches[i].Color = ColorNone
			g.matches[i].Effect = EffectNone
		}
		g.types[i] = NoType
	}
	for i := range g.preview {
		if purge {
			g.preview[i].Clear()
		} else {
			g.preview[i].Color = ColorNone
			g.preview[i].Effect = EffectNone
		}
		g.previewTypes[i] = NoType
	}
	g.staged = nil
	g.logger.Debug("objects cleared", "purge", purge)
}

// ClearAll tears the grid down: topology, ramps and pieces.
func (g *Grid) ClearAll() {
	g.staged = nil
	g.tiles = nil
	g.matches = nil
	g.types = nil
	g.preview = nil
	g.previewTypes = nil
	g.ramps = nil
	g.entrances = nil
	g.exits = nil
	g.rampMarks = nil
	g.gravityColumns = nil
	g.w, g.h, g.dimension, g.previewLines = 0, 0, 0, 0
	g.hinted = make(map[TypeID]bool)
	g.logger.Info("grid cleared")
}

// Create resets every record, rebuilds the authorized-type cache and fills
// the grid column by column.
func (g *Grid) Create() {
	g.resetRecords()
	g.initializeTypes()
	for x := 0; x < g.w; x++ {
		g.AddColumn(x)
	}
	g.logger.Info("grid created", "layout", g.layout, "w", g.w, "h", g.h, "preview", g.previewLines)
}

func (g *Grid) resetRecords() {
	g.staged = nil
	g.matches = make([]Match, g.w*g.h)
	g.types = make([]TypeID, g.w*g.h)
	for i := range g.matches {
		c := g.coordOf(i)
		g.matches[i] = Match{X: c.X, Y: c.Y}
	}
	g.preview = make([]Match, g.w*g.previewLines)
	g.previewTypes = make([]TypeID, g.w*g.previewLines)
	for i := range g.preview {
		g.preview[i] = Match{X: i % g.w, Y: i / g.w}
	}
}

// initializeTypes caches the catalog ids per category, the colors enemies can
// take and the sub-catalog index of every type. Enemies and items are indexed
// per color; powers share one sub-catalog since their color is rolled.
func (g *Grid) initializeTypes() {
	g.authorized = make(map[Category][]TypeID)
	g.subtypes = make(map[TypeID]int8)
	g.colors = g.colors[:0]
	if g.catalog == nil {
		g.logger.Warn("no catalog, grid will stay empty")
		return
	}

	perColor := make(map[Color]int)
	for _, id := range g.catalog.ListIDs(CategoryEnemy) {
		t, ok := g.catalog.Traits(id)
		if !ok || !t.Color.Playable() {
			continue
		}
		g.authorized[CategoryEnemy] = append(g.authorized[CategoryEnemy], id)
		if _, seen := perColor[t.Color]; !seen {
			g.colors = append(g.colors, t.Color)
		}
		g.subtypes[id] = g.subtypeIndex(id, perColor[t.Color])
		perColor[t.Color]++
	}
	for _, cat := range []Category{CategoryPower, CategoryRock, CategoryItem} {
		for _, id := range g.catalog.ListIDs(cat) {
			t, ok := g.catalog.Traits(id)
			if !ok {
				continue
			}
			switch cat {
			case CategoryPower:
				g.subtypes[id] = g.subtypeIndex(id, len(g.authorized[cat]))
			case CategoryItem:
				g.subtypes[id] = g.subtypeIndex(id, perColor[t.Color])
				perColor[t.Color]++
			default:
				g.subtypes[id] = -1
			}
			g.authorized[cat] = append(g.authorized[cat], id)
		}
	}
}

// subtypeIndex converts a sub-catalog position to the stored subtype. A
// position past the int8 range is stored as -1.
func (g *Grid) subtypeIndex(id TypeID, k int) int8 {
	if k > math.MaxInt8 {
		g.logger.Warn("sub-catalog too large, subtype dropped", "id", id, "index", k)
		return -1
	}
	return int8(k)
}

// Subtype returns the stored sub-catalog index of a type, or -1 when the
// type is not authorized.
func (g *Grid) Subtype(id TypeID) int8 {
	if k, ok := g.subtypes[id]; ok {
		return k
	}
	return -1
}

// ContainsItems returns true if a collectible is on the grid.
func (g *Grid) ContainsItems() bool {
	for _, m := range g.matches {
		if m.Color.IsItem() {
			return true
		}
	}
	return false
}

// Items returns every collectible on the grid.
func (g *Grid) Items() []Match {
	var items []Match
	for _, m := range g.matches {
		if m.Color.IsItem() {
			items = append(items, m)
		}
	}
	return items
}

// Powers returns every power piece on the grid.
func (g *Grid) Powers() []Match {
	var powers []Match
	for _, m := range g.matches {
		if m.IsPower() {
			powers = append(powers, m)
		}
	}
	return powers
}

// SetFrame places the grid in world space.
func (g *Grid) SetFrame(f Frame) {
	if f.CellSize <= 0 {
		f.CellSize = 1
	}
	g.frame = f
}

// Bounds returns the world rectangle covered by the grid, honoring the
// layout alignment inside a MaxDimension square.
func (g *Grid) Bounds() (lo, hi Vec2) {
	span := float64(g.rules.MaxDimension)
	ox := g.align.H.offset(span - float64(g.w))
	oy := g.align.V.offset(span - float64(g.h))
	lo = Vec2{
		X: g.frame.Origin.X + ox*g.frame.CellSize,
		Y: g.frame.Origin.Y + oy*g.frame.CellSize,
	}
	hi = Vec2{
		X: lo.X + float64(g.w)*g.frame.CellSize,
		Y: lo.Y + float64(g.h)*g.frame.CellSize,
	}
	return lo, hi
}

// IsInside returns true if a world position falls inside the grid rectangle.
func (g *Grid) IsInside(p Vec2) bool {
	lo, hi := g.Bounds()
	return p.X >= lo.X && p.X < hi.X && p.Y >= lo.Y && p.Y < hi.Y
}

// CellAt maps a world position to the cell under it.
func (g *Grid) CellAt(p Vec2) (Coord, bool) {
	if !g.IsInside(p) {
		return Coord{}, false
	}
	lo, _ := g.Bounds()
	c := C(int((p.X-lo.X)/g.frame.CellSize), int((p.Y-lo.Y)/g.frame.CellSize))
	return c, g.InBounds(c)
}
