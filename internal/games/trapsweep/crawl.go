package trapsweep

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/engine"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
)

// setupCrawl places the hero in the middle of the board and scatters
// pillars and the shrine outside the start's 3x3 zone.
func (g *Game) setupCrawl() {
	w, h := g.eng.Size()
	g.start = board.C(w/2, h/2)
	g.hero.Reset(g.start)
	g.cursor = g.start

	if g.eng.Generated() {
		// Hand-made maps bring their own pillars and shrine.
		for _, c := range g.eng.Snapshot().Find(func(c board.Cell) bool { return c.Kind == board.KindShrine }) {
			g.shrine = shrine{pos: c, placed: true, orbs: g.cfg.Shrine.Orbs}
		}
		return
	}

	var free []board.Coord
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c := board.C(x, y); c.Chebyshev(g.start) > 1 {
				free = append(free, c)
			}
		}
	}

	// Keep at least three quarters of the free cells open.
	pillars := min(g.board.Pillars, len(free)/4)
	wantShrine := g.cfg.Shrine.Enabled && g.cfg.Shrine.Orbs > 0
	picks := pillars
	if wantShrine {
		picks++
	}
	picks = min(picks, len(free))

	for i := 0; i < picks; i++ {
		j := i + g.rng.Intn(len(free)-i)
		free[i], free[j] = free[j], free[i]
	}

	for i, c := range free[:picks] {
		if wantShrine && i == picks-1 {
			if err := g.eng.PlaceSpecial(c, board.KindShrine); err == nil {
				g.shrine = shrine{pos: c, placed: true, orbs: g.cfg.Shrine.Orbs}
			}
			continue
		}
		if err := g.eng.PlaceSpecial(c, board.KindPillar); err != nil {
			g.logger.Warn("Cannot place pillar", "pos", c, "err", err)
		}
	}
}

func (g *Game) stepCrawl(in core.InputFrame) {
	if ax, ay := aimDelta(in); ax != 0 || ay != 0 {
		g.moveCursor(ax, ay)
	}

	switch dx, dy := moveDelta(in); {
	case dx != 0 && dy != 0:
		// One axis per step.
		g.moveHero(dx, 0)
	case dx != 0 || dy != 0:
		g.moveHero(dx, dy)
	}
	if g.eng.State().Terminal() {
		return
	}

	switch {
	case in.Has(core.ActionBack) && g.shrine.active:
		g.shrine.active = false
		g.fx.say("You step away from the shrine", core.ColorGray)
	case in.Has(core.ActionInteract):
		g.interact()
	case in.Any(core.ActionReveal, core.ActionConfirm) && g.shrine.active:
		g.useShrine()
	}

	if in.Has(core.ActionFlag) {
		g.flag()
	}
	if in.Has(core.ActionCast) {
		g.cast()
	}
}

// moveHero walks one cell. Stepping onto a hidden cell reveals it; the
// first step of a round generates the board around the destination.
func (g *Game) moveHero(dx, dy int) {
	if g.eng.State().Terminal() {
		return
	}
	to := g.hero.Pos().Add(dx, dy)
	cell, ok := g.eng.Cell(to)
	if !ok {
		return
	}
	if cell.IsSpecial() {
		if cell.Kind == board.KindShrine {
			g.fx.say("A shrine. Press E to commune.", core.ColorBrightMagenta)
		}
		return
	}

	g.hero.MoveTo(to)
	g.moveCursor(dx, dy)

	changed := false
	if cell.Hidden() {
		changed = g.eng.Reveal(to)
	}
	if !g.stepped {
		g.stepped = true
		g.eng.RevealSafe(g.start)
	}
	g.hero.Moved()

	g.collectShard(to)
	if changed && g.eng.State() == engine.StatePlaying {
		g.maybeSpawnShard()
	}
}

func (g *Game) collectShard(c board.Coord) {
	if !g.shards[c] {
		return
	}
	delete(g.shards, c)
	if g.hero.CollectShard() {
		g.fx.say(fmt.Sprintf("Shard collected (%d)", g.hero.Shards()), core.ColorBrightCyan)
	}
}

// maybeSpawnShard drops a shard on a random hidden cell, for heroes that
// spend shards.
func (g *Game) maybeSpawnShard() {
	if !g.cfg.Shards.Enabled || !g.hero.Profile().UsesShards {
		return
	}
	if g.rng.Float64() >= g.cfg.Shards.Chance {
		return
	}
	pos := g.hero.Pos()
	spots := g.eng.Snapshot().Find(func(c board.Cell) bool {
		return c.Hidden() && c.Pos != pos && !g.shards[c.Pos]
	})
	if len(spots) == 0 {
		return
	}
	g.shards[spots[g.rng.Intn(len(spots))]] = true
}

// interact toggles shrine selection when the hero stands next to it.
func (g *Game) interact() {
	switch {
	case !g.shrine.placed:
		g.fx.say("Nothing here to use", core.ColorGray)
	case !g.hero.Pos().Adjacent(g.shrine.pos):
		g.fx.say("Move next to the shrine first", core.ColorGray)
	case g.shrine.orbs == 0:
		g.fx.say("The shrine is spent", core.ColorGray)
	case g.eng.State() != engine.StatePlaying:
		g.fx.say("The shrine is silent until you take a step", core.ColorGray)
	case g.shrine.active:
		g.shrine.active = false
		g.fx.say("You step away from the shrine", core.ColorGray)
	default:
		g.shrine.active = true
		g.fx.say(fmt.Sprintf("Shrine: aim and press space (%d orbs)", g.shrine.orbs), core.ColorBrightMagenta)
	}
}

// useShrine spends an orb to reveal the aimed cell safely.
func (g *Game) useShrine() {
	if !g.eng.RevealSafe(g.cursor) {
		g.fx.say("Nothing to reveal there", core.ColorGray)
		return
	}
	g.shrine.orbs--
	if g.shrine.orbs <= 0 {
		g.shrine.active = false
		g.fx.say("The last orb fades", core.ColorBrightMagenta)
		return
	}
	g.fx.say(fmt.Sprintf("Orb spent, %d left", g.shrine.orbs), core.ColorBrightMagenta)
}

func (g *Game) cast() {
	res, err := g.hero.Cast(g.eng, g.cursor)
	if err != nil {
		g.fx.say(castError(err), core.ColorOrange)
		return
	}
	if g.eng.State() == engine.StateLost {
		return
	}

	switch res.Spell {
	case hero.SpellRevealSurroundings:
		g.fx.say(fmt.Sprintf("Surroundings revealed: %d cells", len(res.Revealed)), core.ColorBrightBlue)
	case hero.SpellTeleport:
		g.collectShard(*res.MovedTo)
		g.fx.say(fmt.Sprintf("Teleported to %s", *res.MovedTo), core.ColorBrightBlue)
	case hero.SpellRevealClosestTrap:
		if len(res.Revealed) == 0 {
			g.fx.say("No trap within reach", core.ColorGray)
		} else {
			g.fx.say(fmt.Sprintf("Trap sensed at %s", res.Revealed[0]), core.ColorBrightBlue)
		}
	case hero.SpellInvincibility:
		g.fx.say(fmt.Sprintf("Invincible for %d steps", res.Steps), core.ColorBrightBlue)
	}
}

func castError(err error) string {
	switch {
	case errors.Is(err, hero.ErrNoSpell):
		return "This hero has no spell"
	case errors.Is(err, hero.ErrSpellUnavailable):
		return "Spells wake after the first step"
	case errors.Is(err, hero.ErrNoCastsLeft):
		return "No casts left"
	case errors.Is(err, hero.ErrNotEnoughShards):
		return "Not enough shards"
	case errors.Is(err, hero.ErrInvalidTarget):
		return "Cannot teleport there"
	default:
		return err.Error()
	}
}
