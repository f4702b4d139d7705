package engine

import "github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"

// Renderer is told when a batch of cell changes is complete. The grid is a
// copy owned by the renderer; it may be kept and read at any time.
type Renderer interface {
	BoardChanged(g *board.Grid)
}

// Presenter receives fire-and-forget notifications for audio/visual
// feedback. Cells are passed by value and must not be fed back into the
// engine from inside a callback.
type Presenter interface {
	CellRevealed(c board.Cell)
	Explosion(c board.Cell)
	LevelComplete()
	FlagToggled(c board.Cell)
}

type nopRenderer struct{}

func (nopRenderer) BoardChanged(*board.Grid) {}

type nopPresenter struct{}

func (nopPresenter) CellRevealed(board.Cell) {}
func (nopPresenter) Explosion(board.Cell)    {}
func (nopPresenter) LevelComplete()          {}
func (nopPresenter) FlagToggled(board.Cell)  {}

// TrapOutcome decides what stepping on a trap does.
type TrapOutcome uint8

const (
	// TrapExplode ends the round.
	TrapExplode TrapOutcome = iota
	// TrapDisarm uncovers the trap harmlessly and flags it if a flag is left.
	TrapDisarm
)

// TrapHandler is consulted whenever a reveal lands on a trap.
type TrapHandler func(c board.Cell) TrapOutcome

func alwaysExplode(board.Cell) TrapOutcome { return TrapExplode }
