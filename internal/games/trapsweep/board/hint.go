package board

// Hint is a move that follows logically from the revealed numbers.
type Hint struct {
	Pos  Coord
	Safe bool  // true: Pos can be revealed; false: Pos is a trap
	From Coord // the number cell the deduction came from
}

// FindHint looks for a certain move. A revealed number whose uncovered
// traps already match it makes every hidden neighbour safe; a number whose
// hidden neighbours plus uncovered traps match it makes them all traps.
// Flags are guesses and count as hidden, so a wrong flag never turns a trap
// into a safe hint. Safe moves are preferred. ok is false when no
// deduction exists.
func FindHint(g *Grid) (h Hint, ok bool) {
	if h, ok = scanNumbers(g, true); ok {
		return h, true
	}
	return scanNumbers(g, false)
}

func scanNumbers(g *Grid, wantSafe bool) (Hint, bool) {
	for _, cell := range g.cells {
		if !cell.Revealed || cell.Kind != KindNumber {
			continue
		}
		known, hidden := g.neighborInfo(cell.Pos)
		if len(hidden) == 0 {
			continue
		}
		if wantSafe && known == cell.Number {
			return Hint{Pos: hidden[0], Safe: true, From: cell.Pos}, true
		}
		if !wantSafe && known+len(hidden) == cell.Number {
			for _, n := range hidden {
				if !g.cells[g.index(n)].Flagged {
					return Hint{Pos: n, Safe: false, From: cell.Pos}, true
				}
			}
		}
	}
	return Hint{}, false
}

// neighborInfo counts the uncovered trap neighbours and lists the ones
// still hidden, flagged or not.
func (g *Grid) neighborInfo(c Coord) (known int, hidden []Coord) {
	for _, n := range g.Neighbors8(c) {
		nb := g.cells[g.index(n)]
		switch {
		case nb.IsSpecial():
		case nb.Revealed && nb.IsTrap():
			known++
		case !nb.Revealed:
			hidden = append(hidden, n)
		}
	}
	return known, hidden
}
