// Package grid provides the match-3 grid engine: tile topology, piece records,
// match detection and power resolution, hints, gravity and refill, directional
// ramps and the binary save format.
// This package is UI-agnostic and deterministic.
package grid

import "fmt"

// Dir represents a direction of travel on the grid.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// Side returns the wall bit guarding the edge crossed when leaving a cell in this direction.
func (d Dir) Side() Wall {
	switch d {
	case DirUp:
		return WallNorth
	case DirRight:
		return WallEast
	case DirDown:
		return WallSouth
	case DirLeft:
		return WallWest
	default:
		return WallNone
	}
}

// Ground describes whether and how a cell is traversable by pieces.
type Ground uint8

const (
	GroundVoid      Ground = iota // No cell, never holds a piece
	GroundNormal                  // Regular cell under gravity
	GroundFixed                   // Holds pieces but is exempt from gravity
	GroundRampLeft                // Ramp carrying pieces to the left
	GroundRampRight               // Ramp carrying pieces to the right
	GroundRampUp                  // Ramp carrying pieces upward
	GroundRampDown                // Ramp carrying pieces downward
	groundCount
)

// Playable returns true if the cell can hold a piece.
func (g Ground) Playable() bool {
	return g != GroundVoid && g < groundCount
}

// IsRamp returns true for the four directional ramp kinds.
func (g Ground) IsRamp() bool {
	return g >= GroundRampLeft && g < groundCount
}

// Anchored returns true if pieces resting on this ground do not fall.
func (g Ground) Anchored() bool {
	return g == GroundFixed || g.IsRamp()
}

// Dir returns the travel direction of a ramp.
func (g Ground) Dir() (Dir, bool) {
	switch g {
	case GroundRampLeft:
		return DirLeft, true
	case GroundRampRight:
		return DirRight, true
	case GroundRampUp:
		return DirUp, true
	case GroundRampDown:
		return DirDown, true
	default:
		return 0, false
	}
}

// Valid reports whether g is a known ground value.
func (g Ground) Valid() bool {
	return g < groundCount
}

// String returns the string representation of a ground kind.
func (g Ground) String() string {
	switch g {
	case GroundVoid:
		return "void"
	case GroundNormal:
		return "normal"
	case GroundFixed:
		return "fixed"
	case GroundRampLeft:
		return "ramp-left"
	case GroundRampRight:
		return "ramp-right"
	case GroundRampUp:
		return "ramp-up"
	case GroundRampDown:
		return "ramp-down"
	default:
		return "unknown"
	}
}

// Wall is a 4-bit mask of blocked edges around a cell.
type Wall uint8

const (
	WallNorth Wall = 1 << iota
	WallWest
	WallEast
	WallSouth

	WallNone Wall = 0
	WallAll       = WallNorth | WallWest | WallEast | WallSouth
)

// Has returns true if any bit of side is set.
func (w Wall) Has(side Wall) bool {
	return w&side != 0
}

// Sides splits the mask into its individual side bits, in bit order.
func (w Wall) Sides() []Wall {
	var sides []Wall
	for _, s := range []Wall{WallNorth, WallWest, WallEast, WallSouth} {
		if w&s != 0 {
			sides = append(sides, s)
		}
	}
	return sides
}

// String returns a compact representation such as "N|E".
func (w Wall) String() string {
	if w == WallNone {
		return "-"
	}
	s := ""
	for _, side := range w.Sides() {
		if s != "" {
			s += "|"
		}
		switch side {
		case WallNorth:
			s += "N"
		case WallWest:
			s += "W"
		case WallEast:
			s += "E"
		case WallSouth:
			s += "S"
		}
	}
	return s
}

// Tile is the topology record of one cell.
type Tile struct {
	Ground          Ground
	WallType        uint8 // 0 = none, else index into the wall piece catalog
	WallOrientation Wall
}

// Color is the match type of a piece.
type Color uint8

const (
	ColorNone Color = iota
	ColorBlue
	ColorRed
	ColorGreen
	ColorPurple
	ColorBlack
	ColorYellow
	ColorRock
	ColorItems
	ColorMoves
	ColorStars
	ColorCoins
	colorCount
)

// NumColors is the number of playable colors.
const NumColors = int(ColorYellow)

// Playable returns true for colors that form runs.
func (c Color) Playable() bool {
	return c >= ColorBlue && c <= ColorYellow
}

// IsRock returns true for rock obstacles.
func (c Color) IsRock() bool {
	return c == ColorRock
}

// IsItem returns true for collectibles.
func (c Color) IsItem() bool {
	return c >= ColorItems && c < colorCount
}

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorBlue:
		return "blue"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorBlack:
		return "black"
	case ColorYellow:
		return "yellow"
	case ColorRock:
		return "rock"
	case ColorItems:
		return "items"
	case ColorMoves:
		return "moves"
	case ColorStars:
		return "stars"
	case ColorCoins:
		return "coins"
	default:
		return "unknown"
	}
}

// ParseColor resolves a color name.
func ParseColor(name string) (Color, error) {
	for c := ColorNone; c < colorCount; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", name)
}

// Char returns a single character for ASCII dumps.
func (c Color) Char() rune {
	switch c {
	case ColorBlue:
		return 'B'
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorPurple:
		return 'P'
	case ColorBlack:
		return 'K'
	case ColorYellow:
		return 'Y'
	case ColorRock:
		return '#'
	case ColorItems, ColorMoves, ColorStars, ColorCoins:
		return '$'
	default:
		return '.'
	}
}

// Effect is the power code of a piece.
type Effect uint8

const (
	EffectNone        Effect = 0
	EffectRow         Effect = 1 // Clears the piece's row
	EffectColumn      Effect = 2 // Clears the piece's column
	EffectCross       Effect = EffectRow | EffectColumn
	EffectSquare      Effect = 4
	EffectSquare2     Effect = 5
	EffectSquare3     Effect = 6
	EffectWallBreaker Effect = 7
	EffectSpread      Effect = 8 // Tiers 8..11
	EffectSpread4     Effect = 11
	EffectRockBomb    Effect = 12 // Tiers 12..15
	EffectRockBomb4   Effect = 15
)

// IsPower returns true for any non-zero effect.
func (e Effect) IsPower() bool {
	return e != EffectNone
}

// IsLine returns true for row, column and cross bombs.
func (e Effect) IsLine() bool {
	return e >= EffectRow && e <= EffectCross
}

// IsSquare returns true for square bombs.
func (e Effect) IsSquare() bool {
	return e >= EffectSquare && e <= EffectSquare3
}

// IsWallBreaker returns true for the wall bomb.
func (e Effect) IsWallBreaker() bool {
	return e == EffectWallBreaker
}

// IsSpread returns true for neighbourhood bombs, including rock bombs.
func (e Effect) IsSpread() bool {
	return e >= EffectSpread && e <= EffectRockBomb4
}

// IsRockBomb returns true for the rock-breaking neighbourhood bombs.
func (e Effect) IsRockBomb() bool {
	return e >= EffectRockBomb && e <= EffectRockBomb4
}

// Tier returns the strength of a neighbourhood bomb, 0..3.
func (e Effect) Tier() int {
	switch {
	case e.IsRockBomb():
		return int(e - EffectRockBomb)
	case e.IsSpread():
		return int(e - EffectSpread)
	default:
		return 0
	}
}

// Radius returns the flood window of a neighbourhood bomb.
func (e Effect) Radius() int {
	return 2 + e.Tier()
}

// Fires returns true if a line bomb clears along the given axis bit.
func (e Effect) Fires(axis Effect) bool {
	return e.IsLine() && e&axis != 0
}

// TypeID identifies a piece type in the catalog.
type TypeID uint32

// NoType marks a cell without a piece identity.
const NoType TypeID = 0

// Match is the logical piece record of one cell.
type Match struct {
	X, Y    int
	Color   Color
	Subtype int8   // Index in the active sub-catalog for the color, or -1
	Effect  Effect // Power code, EffectNone for plain pieces
	Qty     uint8  // Item quantity
}

// Coord returns the cell coordinate of the record.
func (m Match) Coord() Coord {
	return C(m.X, m.Y)
}

// Empty returns true if the cell holds no piece.
func (m Match) Empty() bool {
	return m.Color == ColorNone
}

// IsPower returns true if the piece carries an effect.
func (m Match) IsPower() bool {
	return m.Effect.IsPower()
}

// Selectable returns true if a player can swap the piece. Rocks cannot be
// moved and items are collected rather than swapped.
func (m Match) Selectable() bool {
	return m.Color.Playable()
}

// Property packs color, subtype, effect and quantity into one word.
func (m Match) Property() uint32 {
	return uint32(m.Color) | uint32(uint8(m.Subtype))<<8 | uint32(m.Effect)<<16 | uint32(m.Qty)<<24
}

// SetProperty unpacks a word produced by Property, keeping the coordinates.
func (m *Match) SetProperty(p uint32) {
	m.Color = Color(p)
	m.Subtype = int8(uint8(p >> 8))
	m.Effect = Effect(p >> 16)
	m.Qty = uint8(p >> 24)
}

// Clear empties the record, keeping the coordinates.
func (m *Match) Clear() {
	m.SetProperty(0)
}

// String returns a debug representation.
func (m Match) String() string {
	return fmt.Sprintf("(%d,%d) %s/%d e=%d", m.X, m.Y, m.Color, m.Subtype, m.Effect)
}

// Category groups catalog entries.
type Category uint8

const (
	CategoryEnemy Category = iota
	CategoryPower
	CategoryRock
	CategoryItem
)

// String returns the string representation of a category.
func (c Category) String() string {
	switch c {
	case CategoryEnemy:
		return "enemy"
	case CategoryPower:
		return "power"
	case CategoryRock:
		return "rock"
	case CategoryItem:
		return "item"
	default:
		return "unknown"
	}
}

// Traits is what the catalog knows about a piece type.
type Traits struct {
	Color    Color
	Effect   Effect
	Category Category
}
