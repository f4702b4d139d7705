package engine

import "github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"

// Reveal uncovers the cell at c. It does nothing when the round is over,
// when c is off the board, special, already revealed or flagged. The first
// reveal of a round places the traps with c as the safe cell. It reports
// whether anything changed.
func (e *Engine) Reveal(c board.Coord) bool {
	return e.do(func() bool { return e.reveal(c) })
}

func (e *Engine) reveal(c board.Coord) bool {
	if e.state.Terminal() || !e.grid.InBounds(c) {
		return false
	}
	drained := false
	if len(e.queue) > 0 {
		drained = e.advance(-1) > 0
		if e.state.Terminal() {
			return drained
		}
	}

	cell := e.grid.At(c)
	if cell.IsSpecial() || cell.Revealed || cell.Flagged {
		return drained
	}
	if e.state == StateIdle {
		e.generate(c)
	}

	switch cell.Kind {
	case board.KindTrap:
		if e.onTrap(*cell) == TrapDisarm {
			e.logger.Debug("trap disarmed", "pos", c)
			e.uncoverTrap(cell)
			e.emitBoard()
			e.checkWin()
		} else {
			e.explode(cell)
		}
	case board.KindEmpty:
		e.flood(c)
	default:
		e.revealCell(cell)
		e.emitBoard()
		e.checkWin()
	}
	return true
}

func (e *Engine) generate(safe board.Coord) {
	if !e.grid.Generated() {
		report := e.grid.GenerateTraps(safe, e.requested, e.rng)
		if report.Warning != nil {
			e.logger.Warn("trap count clamped",
				"requested", report.Requested,
				"placed", report.Placed,
				"capacity", report.Capacity)
		}
		e.grid.GenerateNumbers()
	}
	e.remaining = e.grid.TrapCount()
	e.state = StatePlaying
	e.logger.Debug("board generated", "safe", safe, "traps", e.grid.TrapCount())
}

func (e *Engine) revealCell(cell *board.Cell) {
	cell.Revealed = true
	if !cell.IsTrap() {
		e.stats.Revealed++
	}
	e.emitRevealed(*cell)
}

// uncoverTrap reveals a trap without setting it off, using up a flag on
// it when one is available.
func (e *Engine) uncoverTrap(cell *board.Cell) {
	cell.Revealed = true
	e.stats.TrapsFound++
	if !cell.Flagged && e.remaining > 0 {
		cell.Flagged = true
		e.remaining--
		e.stats.FlagsPlaced++
	}
	e.emitRevealed(*cell)
}

// flood seeds a breadth-first reveal from c. Synchronous engines finish it
// here; incremental engines reveal the first batch and leave the rest to Tick.
func (e *Engine) flood(c board.Coord) {
	e.queue = append(e.queue[:0], floodItem{pos: c, generation: e.generation})
	e.advance(e.stepsPerTick)
}

// advance pops up to n queued cells, all of them when n <= 0, and reports
// how many were revealed.
func (e *Engine) advance(n int) int {
	revealed := 0
	popped := 0
	for len(e.queue) > 0 && (n <= 0 || popped < n) {
		item := e.queue[0]
		e.queue = e.queue[1:]
		popped++

		if item.generation != e.generation || e.state.Terminal() {
			e.queue = e.queue[:0]
			break
		}
		cell := e.grid.At(item.pos)
		if cell.Revealed || cell.Flagged || cell.IsTrap() || cell.IsSpecial() {
			continue
		}

		e.revealCell(cell)
		revealed++
		if cell.Kind != board.KindEmpty {
			continue
		}
		for _, nb := range e.grid.Neighbors4(item.pos) {
			if e.grid.At(nb).Hidden() {
				e.queue = append(e.queue, floodItem{pos: nb, generation: item.generation})
			}
		}
	}

	if revealed > 0 {
		e.emitBoard()
	}
	if len(e.queue) == 0 && popped > 0 {
		e.checkWin()
	}
	return revealed
}

// Tick advances a pending incremental flood fill by one batch and reports
// whether more work remains.
func (e *Engine) Tick() bool {
	var pending bool
	e.do(func() bool {
		changed := false
		if len(e.queue) > 0 {
			changed = e.advance(e.stepsPerTick) > 0
		}
		pending = len(e.queue) > 0
		return changed
	})
	return pending
}

// Drain finishes any pending flood fill immediately.
func (e *Engine) Drain() {
	e.do(func() bool {
		if len(e.queue) == 0 {
			return false
		}
		return e.advance(-1) > 0
	})
}

// ToggleFlag flags or unflags the hidden cell at c. Flagging takes one of
// the remaining flags and is refused when none are left; unflagging gives
// it back. Nothing happens before the first reveal, after the round ends,
// or on revealed and special cells.
func (e *Engine) ToggleFlag(c board.Coord) bool {
	return e.do(func() bool {
		if e.state != StatePlaying || !e.grid.InBounds(c) {
			return false
		}
		cell := e.grid.At(c)
		if cell.Revealed || cell.IsSpecial() {
			return false
		}

		if cell.Flagged {
			cell.Flagged = false
			e.remaining++
			e.stats.FlagsPlaced--
		} else {
			if e.remaining == 0 {
				return false
			}
			cell.Flagged = true
			e.remaining--
			e.stats.FlagsPlaced++
		}

		e.emitFlag(*cell)
		e.emitBoard()
		e.checkWin()
		return true
	})
}

// Explode sets off the trap at c, ending the round. It does nothing unless
// the round is live and c is a trap.
func (e *Engine) Explode(c board.Coord) bool {
	return e.do(func() bool {
		if e.state != StatePlaying || !e.grid.InBounds(c) {
			return false
		}
		cell := e.grid.At(c)
		if !cell.IsTrap() || cell.Exploded {
			return false
		}
		e.explode(cell)
		return true
	})
}

func (e *Engine) explode(cell *board.Cell) {
	e.state = StateLost
	e.queue = e.queue[:0]
	cell.Revealed = true
	cell.Exploded = true
	for _, pos := range e.grid.Find(board.Cell.IsTrap) {
		e.grid.At(pos).Revealed = true
	}
	e.logger.Debug("trap exploded", "pos", cell.Pos)
	e.emitExplosion(*cell)
	e.emitBoard()
}

// RevealSafe uncovers the cell at c without exploding or flooding. Traps
// found this way are flagged when a flag is left; flagged safe cells are
// left alone. Used by spells and shrines and requires a live round.
func (e *Engine) RevealSafe(c board.Coord) bool {
	return e.do(func() bool {
		if e.state != StatePlaying || !e.grid.InBounds(c) {
			return false
		}
		cell := e.grid.At(c)
		if cell.IsSpecial() || cell.Revealed {
			return false
		}
		if cell.IsTrap() {
			e.uncoverTrap(cell)
		} else {
			if cell.Flagged {
				return false
			}
			e.revealCell(cell)
		}
		e.emitBoard()
		e.checkWin()
		return true
	})
}

// RevealTrap uncovers the trap at c without setting it off. It does
// nothing when c is not a hidden trap.
func (e *Engine) RevealTrap(c board.Coord) bool {
	return e.do(func() bool {
		if e.state != StatePlaying || !e.grid.InBounds(c) {
			return false
		}
		cell := e.grid.At(c)
		if !cell.IsTrap() || cell.Revealed {
			return false
		}
		e.uncoverTrap(cell)
		e.emitBoard()
		e.checkWin()
		return true
	})
}
