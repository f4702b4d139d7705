package board

import "testing"

func reveal(g *Grid, cs ...Coord) {
	for _, c := range cs {
		g.At(c).Revealed = true
	}
}

func TestFindHintSafe(t *testing.T) {
	g, _ := FromLayout(
		"*..",
		"...",
		"...",
	)
	// (1,0) shows 1 and its only trap is uncovered: the rest of its
	// hidden neighbours are safe.
	reveal(g, C(1, 0), C(0, 0))

	h, ok := FindHint(g)
	if !ok {
		t.Fatal("expected a hint")
	}
	if !h.Safe || h.From != C(1, 0) {
		t.Errorf("hint = %+v, expected a safe move from (1,0)", h)
	}
	if g.Cell(h.Pos).IsTrap() {
		t.Errorf("hint pointed at trap %s", h.Pos)
	}
}

func TestFindHintTrap(t *testing.T) {
	g, _ := FromLayout(
		"*.",
		"..",
	)
	// Every safe cell revealed: the only hidden neighbour must be the trap.
	reveal(g, C(1, 0), C(0, 1), C(1, 1))

	h, ok := FindHint(g)
	if !ok {
		t.Fatal("expected a hint")
	}
	if h.Safe || h.Pos != C(0, 0) {
		t.Errorf("hint = %+v, expected trap at (0,0)", h)
	}
}

func TestFindHintIgnoresFlags(t *testing.T) {
	tests := []struct {
		name string
		flag Coord
	}{
		{"wrong flag", C(2, 1)},
		{"right flag", C(2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := FromLayout(
				"..*",
				"...",
			)
			reveal(g, C(0, 0), C(1, 0), C(0, 1), C(1, 1))
			g.At(tt.flag).Flagged = true

			h, ok := FindHint(g)
			if !ok {
				return
			}
			if h.Safe == g.Cell(h.Pos).IsTrap() {
				t.Errorf("hint = %+v contradicts the board", h)
			}
		})
	}
}

func TestFindHintSkipsFlaggedTrap(t *testing.T) {
	g, _ := FromLayout(
		"*.",
		"..",
	)
	reveal(g, C(1, 0), C(0, 1), C(1, 1))
	g.At(C(0, 0)).Flagged = true

	if h, ok := FindHint(g); ok {
		t.Errorf("hint = %+v, the only trap is already flagged", h)
	}
}

func TestFindHintNone(t *testing.T) {
	g, _ := FromLayout(
		"*..",
		"...",
		"..*",
	)
	if _, ok := FindHint(g); ok {
		t.Error("nothing revealed, expected no hint")
	}
}
