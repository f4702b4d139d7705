// Package board holds the trap grid: cell storage, deferred trap
// generation around a safe starting cell, and neighbour-count numbering.
package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDimension is returned when a grid is created with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("board: invalid dimension")
	// ErrInvalidTrapCount marks a generation request that could not be
	// honoured exactly. It is reported as a warning, never as a failure.
	ErrInvalidTrapCount = errors.New("board: invalid trap count")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("board: coordinate out of bounds")
	// ErrAlreadyGenerated is returned when the layout is edited after
	// traps were placed.
	ErrAlreadyGenerated = errors.New("board: grid already generated")
	// ErrNotSpecial is returned when PlaceSpecial gets a non-special kind.
	ErrNotSpecial = errors.New("board: kind is not special")
)

// Grid is a W*H board stored row-major: index = y*W + x.
type Grid struct {
	w, h      int
	cells     []Cell
	generated bool
	numbered  bool
	report    GenerationReport
}

// New creates a grid of unrevealed, unflagged empty cells.
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, w, h)
	}
	g := &Grid{
		w:     w,
		h:     h,
		cells: make([]Cell, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.cells[y*w+x].Pos = C(x, y)
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// Generated reports whether traps have been placed.
func (g *Grid) Generated() bool { return g.generated }

// TrapCount returns the number of traps actually placed, 0 before generation.
func (g *Grid) TrapCount() int { return g.report.Placed }

// Report returns the result of trap generation.
func (g *Grid) Report() GenerationReport { return g.report }

// InBounds reports whether the coordinate lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

// TryGet returns the cell at (x, y) and whether it exists.
func (g *Grid) TryGet(x, y int) (Cell, bool) {
	c := C(x, y)
	if !g.InBounds(c) {
		return Cell{}, false
	}
	return g.cells[g.index(c)], true
}

// Cell returns the cell at c, or the zero Cell when out of bounds.
func (g *Grid) Cell(c Coord) Cell {
	cell, _ := g.TryGet(c.X, c.Y)
	return cell
}

// At returns a pointer to the cell at c. The caller must ensure c is in
// bounds; it exists for the reveal engine, which mutates visibility flags.
func (g *Grid) At(c Coord) *Cell {
	return &g.cells[g.index(c)]
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.w + c.X
}

// Neighbors8 returns the in-bounds cells around c, diagonals included.
func (g *Grid) Neighbors8(c Coord) []Coord {
	out := make([]Coord, 0, 8)
	for _, d := range offsets8 {
		n := c.Add(d[0], d[1])
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors4 returns the in-bounds orthogonal neighbours of c.
func (g *Grid) Neighbors4(c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range offsets4 {
		n := c.Add(d[0], d[1])
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// SafeZone returns c and its in-bounds 8-neighbours.
func (g *Grid) SafeZone(c Coord) []Coord {
	zone := g.Neighbors8(c)
	if g.InBounds(c) {
		zone = append(zone, c)
	}
	return zone
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Cell)) {
	for _, c := range g.cells {
		fn(c)
	}
}

// Count returns how many cells satisfy pred.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, c := range g.cells {
		if pred(c) {
			n++
		}
	}
	return n
}

// Find returns the positions of all cells satisfying pred, row-major.
func (g *Grid) Find(pred func(Cell) bool) []Coord {
	var out []Coord
	for _, c := range g.cells {
		if pred(c) {
			out = append(out, c.Pos)
		}
	}
	return out
}

// PlaceSpecial puts a pillar, shrine or curse on the grid. Specials must
// be placed before generation so trap placement can avoid them.
func (g *Grid) PlaceSpecial(c Coord, k Kind) error {
	if !k.Special() {
		return fmt.Errorf("%w: %s", ErrNotSpecial, k)
	}
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if g.generated {
		return ErrAlreadyGenerated
	}
	cell := g.At(c)
	cell.Kind = k
	cell.Number = 0
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	clone := *g
	clone.cells = cells
	return &clone
}

// Layout renders the cell contents as one string per row, using the same
// glyphs FromLayout accepts.
func (g *Grid) Layout() []string {
	rows := make([]string, g.h)
	var sb strings.Builder
	for y := 0; y < g.h; y++ {
		sb.Reset()
		for x := 0; x < g.w; x++ {
			sb.WriteRune(g.cells[y*g.w+x].Glyph())
		}
		rows[y] = sb.String()
	}
	return rows
}

// FromLayout builds an already-generated grid from rows of glyphs:
// '*' trap, '#' pillar, 'S' shrine, 'C' curse, anything else a safe cell.
// Numbers are derived from the traps, so digits in the input are ignored.
func FromLayout(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidDimension)
	}
	w := len([]rune(rows[0]))
	g, err := New(w, len(rows))
	if err != nil {
		return nil, err
	}

	traps := 0
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrInvalidDimension, y, len(runes), w)
		}
		for x, r := range runes {
			cell := g.At(C(x, y))
			switch r {
			case '*':
				cell.Kind = KindTrap
				traps++
			case '#':
				cell.Kind = KindPillar
			case 'S':
				cell.Kind = KindShrine
			case 'C':
				cell.Kind = KindCurse
			}
		}
	}

	g.generated = true
	g.report = GenerationReport{Requested: traps, Placed: traps}
	g.GenerateNumbers()
	return g, nil
}
