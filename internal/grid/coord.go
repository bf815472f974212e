package grid

import "fmt"

// Coord represents a cell on the grid.
// X increases to the right, Y increases downward, so gravity pulls toward larger Y.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent returns true if the two cells share an edge.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// DirTo returns the direction of an adjacent cell.
func (c Coord) DirTo(other Coord) (Dir, bool) {
	switch {
	case other.X == c.X && other.Y == c.Y-1:
		return DirUp, true
	case other.X == c.X+1 && other.Y == c.Y:
		return DirRight, true
	case other.X == c.X && other.Y == c.Y+1:
		return DirDown, true
	case other.X == c.X-1 && other.Y == c.Y:
		return DirLeft, true
	default:
		return 0, false
	}
}

// Vec2 is a world-space position.
type Vec2 struct {
	X float64
	Y float64
}

// Frame places the grid in world space: Origin is the corner of the
// MaxDimension square the grid is aligned in.
type Frame struct {
	Origin   Vec2
	CellSize float64
}
