package board

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerationReport describes what GenerateTraps did.
type GenerationReport struct {
	Safe      Coord
	Requested int
	Placed    int
	Capacity  int
	// Warning wraps ErrInvalidTrapCount when the request was clamped.
	Warning error
}

// Clamped reports whether the requested trap count was adjusted.
func (r GenerationReport) Clamped() bool {
	return r.Warning != nil
}

// GenerateTraps places traps at random, never on a special cell and never
// on safe or any of its neighbours. The placed count is the request clamped
// to [0, capacity]; a clamped request is reported through the Warning field
// and does not stop generation. A grid is generated at most once; later
// calls return the original report.
func (g *Grid) GenerateTraps(safe Coord, trapCount int, rng *rand.Rand) GenerationReport {
	if g.generated {
		return g.report
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	excluded := make(map[Coord]bool, 9)
	for _, c := range g.SafeZone(safe) {
		excluded[c] = true
	}

	candidates := make([]Coord, 0, len(g.cells))
	for _, cell := range g.cells {
		if cell.IsSpecial() || excluded[cell.Pos] {
			continue
		}
		candidates = append(candidates, cell.Pos)
	}

	report := GenerationReport{
		Safe:      safe,
		Requested: trapCount,
		Capacity:  len(candidates),
	}
	placed := trapCount
	if placed < 0 {
		placed = 0
	}
	if placed > len(candidates) {
		placed = len(candidates)
	}
	if placed != trapCount {
		report.Warning = fmt.Errorf("%w: requested %d, placed %d (capacity %d)",
			ErrInvalidTrapCount, trapCount, placed, len(candidates))
	}

	// Partial Fisher-Yates: the first `placed` slots become traps.
	for i := 0; i < placed; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		g.At(candidates[i]).Kind = KindTrap
	}

	report.Placed = placed
	g.report = report
	g.generated = true
	return report
}

// GenerateNumbers labels every non-trap, non-special cell with its count of
// trap neighbours. Cells with no trap neighbours stay KindEmpty. It only
// runs once per grid, after GenerateTraps.
func (g *Grid) GenerateNumbers() {
	if !g.generated || g.numbered {
		return
	}
	for i := range g.cells {
		cell := &g.cells[i]
		if cell.IsTrap() || cell.IsSpecial() {
			continue
		}
		n := g.TrapNeighbors(cell.Pos)
		if n > 0 {
			cell.Kind = KindNumber
			cell.Number = n
		} else {
			cell.Kind = KindEmpty
			cell.Number = 0
		}
	}
	g.numbered = true
}

// TrapNeighbors counts the traps among the 8 cells around c.
func (g *Grid) TrapNeighbors(c Coord) int {
	n := 0
	for _, d := range offsets8 {
		nb := c.Add(d[0], d[1])
		if g.InBounds(nb) && g.cells[g.index(nb)].IsTrap() {
			n++
		}
	}
	return n
}
