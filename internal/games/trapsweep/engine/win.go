package engine

import "github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"

// CheckWinCondition evaluates the win rule and completes the level when it
// holds. It reports whether the round is won.
func (e *Engine) CheckWinCondition() bool {
	won := false
	e.do(func() bool {
		changed := e.checkWin()
		won = e.state == StateWon
		return changed
	})
	return won
}

// checkWin completes the level when either every safe cell is revealed, or
// every trap is accounted for by a flag or a harmless reveal. Special cells
// do not count. Completion happens at most once per round.
func (e *Engine) checkWin() bool {
	if e.state != StatePlaying {
		return false
	}

	allSafeRevealed, allTrapsMarked := true, true
	e.grid.Each(func(c board.Cell) {
		switch {
		case c.IsSpecial():
		case c.IsTrap():
			if !c.Flagged && !(c.Revealed && !c.Exploded) {
				allTrapsMarked = false
			}
		default:
			if !c.Revealed || c.Flagged {
				allSafeRevealed = false
			}
		}
	})
	if !allSafeRevealed && !allTrapsMarked {
		return false
	}

	e.completeLevel()
	return true
}

func (e *Engine) completeLevel() {
	e.queue = e.queue[:0]
	for _, pos := range e.grid.Find(func(c board.Cell) bool { return !c.IsSpecial() }) {
		cell := e.grid.At(pos)
		switch {
		case cell.IsTrap() && !cell.Flagged:
			cell.Flagged = true
			if e.remaining > 0 {
				e.remaining--
			}
		case !cell.IsTrap() && !cell.Revealed && !cell.Flagged:
			cell.Revealed = true
			e.stats.Revealed++
		}
	}
	e.state = StateWon
	e.logger.Debug("level complete", "revealed", e.stats.Revealed, "flags_left", e.remaining)
	e.emitComplete()
	e.emitBoard()
}
