// Package turn drives a grid through player moves: swap, resolve, clear,
// collapse and refill, then cascade until the grid is stable.
package turn

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matchgrid/internal/config"
	"github.com/vovakirdan/matchgrid/internal/grid"
)

// Points awarded per cell and per high-success cell.
const (
	PointsByDestroy      = 50
	PointsBySuccess      = 100
	PointsForHighSuccess = 200
)

var (
	ErrOutOfBounds   = errors.New("turn: cell outside the grid")
	ErrNotAdjacent   = errors.New("turn: cells are not adjacent")
	ErrBlocked       = errors.New("turn: a wall separates the cells")
	ErrNotSelectable = errors.New("turn: piece cannot be moved")
	ErrNoMatch       = errors.New("turn: swap makes no match")
	ErrNotItem       = errors.New("turn: cell holds no item")
)

// Config holds the controller parameters.
type Config struct {
	MaxCascades    int // Resolution rounds after a move, 0 only refills
	BonusThreshold int // Scored cells that earn a power and the high-success bonus
	BonusStreak    int // Successful steps in one turn that earn a power
	MoveStreak     int // Every this many successful steps a move is credited
	ItemChance     int // Percent chance a broken rock leaves a moves item
	Logger         *log.Logger
}

// DefaultConfig returns the stock controller parameters.
func DefaultConfig() Config {
	return Config{
		MaxCascades:    32,
		BonusThreshold: 4,
		BonusStreak:    3,
		MoveStreak:     4,
		ItemChance:     25,
	}
}

// ConfigFrom builds a controller configuration from the engine configuration.
func ConfigFrom(cfg config.EngineConfig) Config {
	c := DefaultConfig()
	c.MaxCascades = cfg.Turn.MaxCascades
	c.BonusThreshold = cfg.Turn.BonusThreshold
	c.ItemChance = cfg.Spawn.ItemChance
	return c
}

// Outcome reports what one player action did.
type Outcome struct {
	Result   grid.Result // Resolution of the move itself
	Points   int
	Cascades int // Extra resolution rounds after the move
	Bonus    bool
	Items    int // Items left by broken rocks
}

// Controller applies player moves to a grid and keeps the score.
// A Controller is not safe for concurrent use.
type Controller struct {
	g      *grid.Grid
	random grid.Randomizer
	cfg    Config
	logger *log.Logger

	score     int
	turns     int
	moves     int
	collected map[grid.Color]int
}

// New creates a controller for g. random must be the randomizer the grid
// draws from so a seed replays the whole game.
func New(g *grid.Grid, random grid.Randomizer, cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.BonusStreak <= 0 {
		cfg.BonusStreak = DefaultConfig().BonusStreak
	}
	if cfg.MoveStreak <= 0 {
		cfg.MoveStreak = DefaultConfig().MoveStreak
	}
	return &Controller{
		g:         g,
		random:    random,
		cfg:       cfg,
		logger:    cfg.Logger,
		collected: make(map[grid.Color]int),
	}
}

// Grid returns the driven grid.
func (c *Controller) Grid() *grid.Grid { return c.g }

// Score returns the points earned so far.
func (c *Controller) Score() int { return c.score }

// Turns returns the number of successful swaps.
func (c *Controller) Turns() int { return c.turns }

// Moves returns the moves credited by items and streaks.
func (c *Controller) Moves() int { return c.moves }

// Collected returns the quantity collected for an item color.
func (c *Controller) Collected(color grid.Color) int { return c.collected[color] }

// Swap exchanges the pieces at a and b. The swap stands only if either cell
// resolves; otherwise the grid is restored and ErrNoMatch is returned.
func (c *Controller) Swap(a, b grid.Coord) (Outcome, error) {
	g := c.g
	if !g.InBounds(a) || !g.InBounds(b) {
		return Outcome{}, ErrOutOfBounds
	}
	if !a.Adjacent(b) {
		return Outcome{}, ErrNotAdjacent
	}
	if !g.HaveNoAdjacentWalls(a, b) {
		return Outcome{}, ErrBlocked
	}
	if !g.Match(a).Selectable() || !g.Match(b).Selectable() {
		return Outcome{}, ErrNotSelectable
	}

	g.PermuteMatchType(a, b)
	res := g.Resolve(a)
	res.Merge(g.Resolve(b))
	if !res.Success() {
		g.UndoPermute()
		return Outcome{}, ErrNoMatch
	}
	g.ConfirmPermute()

	c.turns++
	out := Outcome{Result: res}
	// The piece that started at a now sits at b.
	out.Points, out.Bonus, out.Items = c.apply(res, 1, []grid.Coord{b, a})

	settled := c.Settle(2)
	out.Points += settled.Points
	out.Cascades = settled.Cascades
	out.Items += settled.Items
	out.Bonus = out.Bonus || settled.Bonus

	c.score += out.Points
	c.logger.Debug("swap", "a", a, "b", b, "points", out.Points, "cascades", out.Cascades)
	return out, nil
}

// Collect acquires the item at at: its quantity is credited, the cell is
// cleared and the grid settles.
func (c *Controller) Collect(at grid.Coord) (Outcome, error) {
	if !c.g.InBounds(at) {
		return Outcome{}, ErrOutOfBounds
	}
	m := c.g.Match(at)
	if !m.Color.IsItem() {
		return Outcome{}, ErrNotItem
	}
	qty := max(int(m.Qty), 1)
	c.collected[m.Color] += qty
	if m.Color == grid.ColorMoves {
		c.moves += qty
	}
	c.g.Remove(at)

	out := c.Settle(1)
	c.score += out.Points
	c.logger.Debug("collect", "at", at, "color", m.Color, "qty", qty)
	return out, nil
}

// Settle lets pieces fall and refills the grid, then resolves the cells
// that lined up on their own, until nothing matches or MaxCascades rounds
// ran. step numbers the first round for the streak multiplier. Settle does
// not add to the score; the points are returned.
func (c *Controller) Settle(step int) Outcome {
	var out Outcome
	c.fall()
	for out.Cascades < c.cfg.MaxCascades {
		res := c.scan()
		if !res.Success() {
			return out
		}
		points, bonus, items := c.apply(res, step+out.Cascades, nil)
		out.Points += points
		out.Bonus = out.Bonus || bonus
		out.Items += items
		out.Cascades++
		c.fall()
	}
	if out.Cascades > 0 && c.scan().Success() {
		c.logger.Warn("cascade limit reached", "max", c.cfg.MaxCascades)
	}
	return out
}

// Shuffle regenerates every piece, keeping the topology.
func (c *Controller) Shuffle() {
	c.g.Create()
	c.logger.Info("grid reshuffled")
}

// scan resolves every cell as a settled cell and merges the results.
func (c *Controller) scan() grid.Result {
	var res grid.Result
	seen := make(map[grid.Coord]bool)
	for y := 0; y < c.g.Height(); y++ {
		for x := 0; x < c.g.Width(); x++ {
			at := grid.C(x, y)
			if seen[at] {
				continue
			}
			r := c.g.ResolveMatches(at)
			for _, d := range r.Destroyed {
				seen[d] = true
			}
			res.Merge(r)
		}
	}
	return res
}

// fall collapses and refills the grid. On ramp layouts only the gravity
// columns are refilled; the rest is fed by the ramp entrances.
func (c *Controller) fall() {
	g := c.g
	if len(g.Ramps()) == 0 {
		for x := 0; x < g.Width(); x++ {
			g.CollapseColumn(x)
		}
		for x := 0; x < g.Width(); x++ {
			g.AddColumn(x)
		}
		return
	}
	g.UpdateDirectionalTiles()
	for _, x := range g.GravityColumns() {
		g.CollapseColumn(x)
		g.AddColumn(x)
	}
}

// apply clears what a resolution step touched and returns the points it is
// worth. movers lists the cells the player moved, preferred for the bonus.
func (c *Controller) apply(res grid.Result, step int, movers []grid.Coord) (points int, bonus bool, items int) {
	g := c.g
	scored := len(res.Scored)

	var bonusAt grid.Coord
	if scored > 0 && (step >= c.cfg.BonusStreak || (c.cfg.BonusThreshold > 0 && scored >= c.cfg.BonusThreshold)) {
		bonusAt, bonus = c.bonusCell(res, movers)
	}

	destroyed := 0
	for _, at := range res.Removals() {
		if bonus && at == bonusAt {
			continue
		}
		g.Remove(at)
		destroyed++
	}
	g.SetHittedWalls(res.HitWalls)

	if bonus && !g.AddPowerBonus(bonusAt, -1) {
		bonus = false
	}

	for _, at := range res.BrokenRocks {
		if c.random.Feature(100) < c.cfg.ItemChance && g.AddItemBonus(at, grid.ColorMoves) {
			items++
		}
	}

	if step%c.cfg.MoveStreak == 0 {
		c.moves++
	}

	points = Points(destroyed, scored, step, c.cfg.BonusThreshold)
	c.logger.Debug("step applied", "step", step, "destroyed", destroyed, "scored", scored, "bonus", bonus, "points", points)
	return points, bonus, items
}

// bonusCell picks the cell that becomes a power: the first mover that was
// matched, else the first scored plain piece.
func (c *Controller) bonusCell(res grid.Result, movers []grid.Coord) (grid.Coord, bool) {
	inDestroyed := make(map[grid.Coord]bool, len(res.Destroyed))
	for _, d := range res.Destroyed {
		inDestroyed[d] = true
	}
	for _, at := range append(movers, res.Scored...) {
		m := c.g.Match(at)
		if inDestroyed[at] && m.Color.Playable() && !m.IsPower() {
			return at, true
		}
	}
	return grid.Coord{}, false
}

// Points scores one resolution step. Later steps of a turn are multiplied,
// and every scored cell past the threshold earns a high-success bonus.
func Points(destroyed, scored, step, threshold int) int {
	multiplier := step/5 + 1
	high := 0
	if threshold > 0 {
		high = max(0, scored+1-threshold)
	}
	return (destroyed*PointsByDestroy+scored*PointsBySuccess)*multiplier + high*PointsForHighSuccess
}
