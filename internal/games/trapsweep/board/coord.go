package board

import "fmt"

// Coord is a cell position. X increases to the right, Y increases downward.
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

// Chebyshev returns the king-move distance to another coordinate.
func (c Coord) Chebyshev(other Coord) int {
	dx, dy := abs(c.X-other.X), abs(c.Y-other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Adjacent reports whether other is one of the 8 cells around c.
func (c Coord) Adjacent(other Coord) bool {
	return c != other && c.Chebyshev(other) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var (
	offsets8 = [8][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	offsets4 = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
)
