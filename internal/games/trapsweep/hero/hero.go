package hero

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/engine"
)

// Config holds the tunable stats of a hero.
type Config struct {
	LightRadius     int     // cells visible around the hero
	DensityBonus    float64 // added to the board's trap density
	Casts           int     // signature spell casts per round, -1 unlimited
	InvincibleSteps int     // Mystic ward duration
	DisarmChance    float64 // Goblin disarm probability
	ShardCost       int     // Gale shards per Trap Sense
	SenseRange      int     // Gale search radius
}

// DefaultConfig returns the stock stats for k.
func DefaultConfig(k Kind) Config {
	cfg := Config{
		LightRadius:     5,
		Casts:           0,
		InvincibleSteps: 7,
		DisarmChance:    0.5,
		ShardCost:       3,
		SenseRange:      10,
	}
	switch k {
	case KindSage:
		cfg.Casts = 3
		cfg.DensityBonus = 0.02
	case KindViolet:
		cfg.Casts = 3
		cfg.LightRadius = 4
	case KindGale:
		cfg.Casts = -1
		cfg.LightRadius = 6
	case KindGoblin:
		cfg.DensityBonus = 0.03
		cfg.LightRadius = 3
	case KindMystic:
		cfg.Casts = 2
		cfg.DensityBonus = 0.01
	}
	return cfg
}

// Board is the part of the reveal engine heroes act on.
type Board interface {
	State() engine.State
	Snapshot() *board.Grid
	Reveal(c board.Coord) bool
	RevealSafe(c board.Coord) bool
	RevealTrap(c board.Coord) bool
}

// Hero is a playable character in crawl mode.
type Hero struct {
	kind Kind
	cfg  Config
	rng  *rand.Rand

	pos        board.Coord
	casts      int
	shards     int
	invincible int
}

// New creates a hero of kind k.
func New(k Kind, cfg Config, rng *rand.Rand) *Hero {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	h := &Hero{kind: k, cfg: cfg, rng: rng}
	h.Reset(board.Coord{})
	return h
}

// Reset puts the hero at start with a fresh spell budget.
func (h *Hero) Reset(start board.Coord) {
	h.pos = start
	h.casts = h.cfg.Casts
	h.shards = 0
	h.invincible = 0
}

func (h *Hero) Kind() Kind           { return h.kind }
func (h *Hero) Profile() Profile     { return h.kind.Profile() }
func (h *Hero) Config() Config       { return h.cfg }
func (h *Hero) Pos() board.Coord     { return h.pos }
func (h *Hero) Shards() int          { return h.shards }
func (h *Hero) InvincibleSteps() int { return h.invincible }

// Casts returns the remaining signature spell casts, -1 for unlimited.
func (h *Hero) Casts() int { return h.casts }

// MoveTo places the hero on c.
func (h *Hero) MoveTo(c board.Coord) {
	h.pos = c
}

// Moved is called after every step; it wears down invincibility.
func (h *Hero) Moved() {
	if h.invincible > 0 {
		h.invincible--
	}
}

// CollectShard adds a shard. Heroes that do not use shards ignore it.
func (h *Hero) CollectShard() bool {
	if !h.Profile().UsesShards {
		return false
	}
	h.shards++
	return true
}

// OnTrapStepped decides the fate of a trap the hero walked onto. It is
// meant to be installed with engine.WithTrapHandler.
func (h *Hero) OnTrapStepped(board.Cell) engine.TrapOutcome {
	switch h.Profile().Trait {
	case TraitNimble:
		if h.rng.Float64() < h.cfg.DisarmChance {
			return engine.TrapDisarm
		}
	case TraitWarded:
		if h.invincible > 0 {
			return engine.TrapDisarm
		}
	}
	return engine.TrapExplode
}

// CastResult describes what a spell did.
type CastResult struct {
	Spell    SpellKind
	Revealed []board.Coord
	MovedTo  *board.Coord
	Steps    int // invincibility granted
}

// CanCast reports why the signature spell cannot be cast right now, or nil.
func (h *Hero) CanCast(b Board) error {
	spell := h.Profile().Spell
	if spell == SpellNone {
		return ErrNoSpell
	}
	if b.State() != engine.StatePlaying {
		return ErrSpellUnavailable
	}
	if h.casts == 0 {
		return ErrNoCastsLeft
	}
	if spell == SpellRevealClosestTrap && h.shards < h.cfg.ShardCost {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughShards, h.shards, h.cfg.ShardCost)
	}
	return nil
}

// Cast uses the signature spell. target is the aimed cell; only Teleport
// uses it. A cast that finds nothing to do still uses up a charge, except
// Trap Sense, which costs nothing when no trap is in range.
func (h *Hero) Cast(b Board, target board.Coord) (CastResult, error) {
	if err := h.CanCast(b); err != nil {
		return CastResult{}, err
	}

	spell := h.Profile().Spell
	res := CastResult{Spell: spell}
	switch spell {
	case SpellRevealSurroundings:
		res.Revealed = h.revealSurroundings(b)
	case SpellTeleport:
		snap := b.Snapshot()
		if !snap.InBounds(target) || snap.Cell(target).IsSpecial() {
			return CastResult{}, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
		}
		h.pos = target
		res.MovedTo = &target
		if b.Reveal(target) {
			res.Revealed = []board.Coord{target}
		}
	case SpellRevealClosestTrap:
		c, ok := h.senseTrap(b)
		if !ok {
			return res, nil
		}
		if b.RevealTrap(c) {
			res.Revealed = []board.Coord{c}
			h.shards -= h.cfg.ShardCost
		}
	case SpellInvincibility:
		h.invincible = h.cfg.InvincibleSteps
		res.Steps = h.invincible
	}

	if h.casts > 0 {
		h.casts--
	}
	return res, nil
}

func (h *Hero) revealSurroundings(b Board) []board.Coord {
	snap := b.Snapshot()
	var out []board.Coord
	for _, c := range snap.SafeZone(h.pos) {
		if b.RevealSafe(c) {
			out = append(out, c)
		}
	}
	return out
}

// senseTrap picks a random hidden trap within the square sense range.
func (h *Hero) senseTrap(b Board) (board.Coord, bool) {
	snap := b.Snapshot()
	r := h.cfg.SenseRange
	var found []board.Coord
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			cell, ok := snap.TryGet(h.pos.X+dx, h.pos.Y+dy)
			if ok && cell.IsTrap() && !cell.Revealed {
				found = append(found, cell.Pos)
			}
		}
	}
	if len(found) == 0 {
		return board.Coord{}, false
	}
	return found[h.rng.Intn(len(found))], true
}
