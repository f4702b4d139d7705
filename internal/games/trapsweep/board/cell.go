package board

// Kind is what a cell contains once the board has been generated.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindTrap
	KindNumber
	KindPillar
	KindShrine
	KindCurse
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindTrap:
		return "trap"
	case KindNumber:
		return "number"
	case KindPillar:
		return "pillar"
	case KindShrine:
		return "shrine"
	case KindCurse:
		return "curse"
	default:
		return "unknown"
	}
}

// Special reports whether the kind is placed by the map layer rather than
// by trap generation. Special cells never hold traps or numbers and are
// ignored by reveal, flagging and the win check.
func (k Kind) Special() bool {
	return k == KindPillar || k == KindShrine || k == KindCurse
}

// Cell is one square of the board.
//
// Exploded implies Revealed and KindTrap. A trap may be both Revealed and
// Flagged when it was uncovered without exploding.
type Cell struct {
	Pos      Coord
	Kind     Kind
	Number   int // 1..8 for KindNumber, 0 otherwise
	Revealed bool
	Flagged  bool
	Exploded bool
}

// IsTrap reports whether the cell holds a trap.
func (c Cell) IsTrap() bool { return c.Kind == KindTrap }

// IsSpecial reports whether the cell is a pillar, shrine or curse.
func (c Cell) IsSpecial() bool { return c.Kind.Special() }

// Hidden reports whether the cell can still be revealed or flagged.
func (c Cell) Hidden() bool {
	return !c.Revealed && !c.Flagged && !c.IsSpecial()
}

// Glyph returns the single-character layout form of the cell contents,
// ignoring visibility. See FromLayout.
func (c Cell) Glyph() rune {
	switch c.Kind {
	case KindTrap:
		return '*'
	case KindNumber:
		return rune('0' + c.Number)
	case KindPillar:
		return '#'
	case KindShrine:
		return 'S'
	case KindCurse:
		return 'C'
	default:
		return '.'
	}
}
