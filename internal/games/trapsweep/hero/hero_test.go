package hero

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/engine"
)

// A 6x4 board: traps in the top-left and bottom-right corners, a pillar
// in the middle. (1,1) is a numbered cell, handy for starting a round
// without flooding.
var testLayout = []string{
	"*.....",
	"......",
	"...#..",
	".....*",
}

func newRound(t *testing.T, h *Hero) *engine.Engine {
	t.Helper()
	e, err := engine.New(0, 0, 0,
		engine.WithLayout(testLayout...),
		engine.WithTrapHandler(h.OnTrapStepped),
	)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	e.Reveal(board.C(1, 1))
	if e.State() != engine.StatePlaying {
		t.Fatalf("State() = %s, expected playing", e.State())
	}
	return e
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"sage", KindSage},
		{"Violet", KindViolet},
		{" GALE ", KindGale},
		{"wanderer", KindBlank},
		{"mystic", KindMystic},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseKind(%q) = %s, %v; expected %s", tc.in, got, err, tc.want)
		}
	}

	if _, err := ParseKind("wizard"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(wizard) error = %v, expected ErrUnknownKind", err)
	}
}

func TestProfilesAreComplete(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range Kinds() {
		p := k.Profile()
		if p.Kind != k {
			t.Errorf("profile for %d has kind %d", k, p.Kind)
		}
		if p.ID == "" || p.Name == "" {
			t.Errorf("profile for %d is missing a name", k)
		}
		if seen[p.ID] {
			t.Errorf("duplicate hero id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestGoblinDisarm(t *testing.T) {
	tests := []struct {
		name   string
		chance float64
		want   engine.State
	}{
		{"always disarms", 1, engine.StatePlaying},
		{"never disarms", 0, engine.StateLost},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig(KindGoblin)
			cfg.DisarmChance = tc.chance
			h := New(KindGoblin, cfg, rand.New(rand.NewSource(1)))
			e := newRound(t, h)

			e.Reveal(board.C(0, 0))
			if e.State() != tc.want {
				t.Errorf("State() = %s, expected %s", e.State(), tc.want)
			}
			cell, _ := e.Cell(board.C(0, 0))
			if tc.want == engine.StatePlaying && (!cell.Flagged || cell.Exploded) {
				t.Errorf("disarmed trap = %+v, expected flagged", cell)
			}
		})
	}
}

func TestGoblinDisarmIsRoughlyEven(t *testing.T) {
	h := New(KindGoblin, DefaultConfig(KindGoblin), rand.New(rand.NewSource(99)))
	disarms := 0
	for i := 0; i < 1000; i++ {
		if h.OnTrapStepped(board.Cell{Kind: board.KindTrap}) == engine.TrapDisarm {
			disarms++
		}
	}
	if disarms < 400 || disarms > 600 {
		t.Errorf("disarmed %d of 1000, expected about half", disarms)
	}
}

func TestMysticInvincibility(t *testing.T) {
	h := New(KindMystic, DefaultConfig(KindMystic), nil)
	e := newRound(t, h)

	if h.OnTrapStepped(board.Cell{}) != engine.TrapExplode {
		t.Fatal("mystic without ward should explode")
	}
	res, err := h.Cast(e, board.Coord{})
	if err != nil {
		t.Fatalf("Cast() failed: %v", err)
	}
	if res.Steps != 7 || h.InvincibleSteps() != 7 {
		t.Errorf("invincible steps = %d/%d, expected 7", res.Steps, h.InvincibleSteps())
	}

	for i := 0; i < 6; i++ {
		h.Moved()
	}
	e.Reveal(board.C(0, 0))
	if e.State() != engine.StatePlaying {
		t.Fatalf("warded step on a trap lost the round")
	}
	h.Moved()
	if h.InvincibleSteps() != 0 {
		t.Errorf("ward should have worn off, %d steps left", h.InvincibleSteps())
	}
	e.Reveal(board.C(5, 3))
	if e.State() != engine.StateLost {
		t.Errorf("State() = %s, expected lost once the ward is gone", e.State())
	}
}

func TestSageRevealSurroundings(t *testing.T) {
	h := New(KindSage, DefaultConfig(KindSage), nil)
	e := newRound(t, h)
	h.MoveTo(board.C(1, 1))

	res, err := h.Cast(e, board.Coord{})
	if err != nil {
		t.Fatalf("Cast() failed: %v", err)
	}
	// 3x3 around (1,1), minus (1,1) itself which is already revealed.
	if len(res.Revealed) != 8 {
		t.Errorf("revealed %d cells, expected 8", len(res.Revealed))
	}
	trap, _ := e.Cell(board.C(0, 0))
	if !trap.Revealed || trap.Exploded {
		t.Errorf("trap in range should be uncovered safely, got %+v", trap)
	}
	if e.State() == engine.StateLost {
		t.Error("sage spell must never explode")
	}
	if h.Casts() != 2 {
		t.Errorf("Casts() = %d, expected 2", h.Casts())
	}
}

func TestVioletTeleport(t *testing.T) {
	h := New(KindViolet, DefaultConfig(KindViolet), nil)
	e := newRound(t, h)

	if _, err := h.Cast(e, board.C(3, 2)); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("teleport onto a pillar error = %v, expected ErrInvalidTarget", err)
	}
	if _, err := h.Cast(e, board.C(9, 9)); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("teleport off the board error = %v, expected ErrInvalidTarget", err)
	}

	res, err := h.Cast(e, board.C(4, 0))
	if err != nil {
		t.Fatalf("Cast() failed: %v", err)
	}
	if h.Pos() != board.C(4, 0) || res.MovedTo == nil {
		t.Errorf("hero at %s, expected (4,0)", h.Pos())
	}
	if cell, _ := e.Cell(board.C(4, 0)); !cell.Revealed {
		t.Error("teleport destination should be revealed")
	}
}

func TestGaleTrapSense(t *testing.T) {
	h := New(KindGale, DefaultConfig(KindGale), rand.New(rand.NewSource(2)))
	e := newRound(t, h)

	if _, err := h.Cast(e, board.Coord{}); !errors.Is(err, ErrNotEnoughShards) {
		t.Fatalf("Cast() without shards error = %v, expected ErrNotEnoughShards", err)
	}
	for i := 0; i < 3; i++ {
		if !h.CollectShard() {
			t.Fatal("gale should collect shards")
		}
	}

	res, err := h.Cast(e, board.Coord{})
	if err != nil {
		t.Fatalf("Cast() failed: %v", err)
	}
	if len(res.Revealed) != 1 {
		t.Fatalf("trap sense revealed %v, expected one trap", res.Revealed)
	}
	cell, _ := e.Cell(res.Revealed[0])
	if !cell.IsTrap() || !cell.Revealed || cell.Exploded {
		t.Errorf("sensed cell = %+v, expected an uncovered trap", cell)
	}
	if h.Shards() != 0 {
		t.Errorf("Shards() = %d, expected 0", h.Shards())
	}
}

func TestGaleTrapSenseOutOfRange(t *testing.T) {
	cfg := DefaultConfig(KindGale)
	cfg.SenseRange = 1
	h := New(KindGale, cfg, nil)
	e := newRound(t, h)
	h.MoveTo(board.C(3, 1))
	for i := 0; i < 3; i++ {
		h.CollectShard()
	}

	res, err := h.Cast(e, board.Coord{})
	if err != nil {
		t.Fatalf("Cast() failed: %v", err)
	}
	if len(res.Revealed) != 0 || h.Shards() != 3 {
		t.Errorf("no trap in range: revealed %v, shards %d", res.Revealed, h.Shards())
	}
}

func TestOtherHeroesIgnoreShards(t *testing.T) {
	h := New(KindSage, DefaultConfig(KindSage), nil)
	if h.CollectShard() || h.Shards() != 0 {
		t.Error("sage should not collect shards")
	}
}

func TestCastGating(t *testing.T) {
	idle, _ := engine.New(4, 4, 2)

	blank := New(KindBlank, DefaultConfig(KindBlank), nil)
	if err := blank.CanCast(idle); !errors.Is(err, ErrNoSpell) {
		t.Errorf("blank CanCast() = %v, expected ErrNoSpell", err)
	}

	sage := New(KindSage, DefaultConfig(KindSage), nil)
	if err := sage.CanCast(idle); !errors.Is(err, ErrSpellUnavailable) {
		t.Errorf("CanCast() before generation = %v, expected ErrSpellUnavailable", err)
	}

	cfg := DefaultConfig(KindSage)
	cfg.Casts = 1
	limited := New(KindSage, cfg, nil)
	e := newRound(t, limited)
	if _, err := limited.Cast(e, board.Coord{}); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	if _, err := limited.Cast(e, board.Coord{}); !errors.Is(err, ErrNoCastsLeft) {
		t.Errorf("second cast error = %v, expected ErrNoCastsLeft", err)
	}

	limited.Reset(board.C(0, 0))
	if limited.Casts() != 1 {
		t.Errorf("Reset should restore casts, got %d", limited.Casts())
	}
}

func TestCastAfterLoss(t *testing.T) {
	h := New(KindMystic, DefaultConfig(KindMystic), nil)
	e := newRound(t, h)
	e.Reveal(board.C(0, 0))
	if _, err := h.Cast(e, board.Coord{}); !errors.Is(err, ErrSpellUnavailable) {
		t.Errorf("Cast() after loss = %v, expected ErrSpellUnavailable", err)
	}
}
