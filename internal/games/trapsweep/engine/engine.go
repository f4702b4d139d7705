// Package engine implements the trap-grid round state machine: deferred
// generation on the first reveal, breadth-first flood reveal, flag
// bookkeeping, explosion and win detection.
//
// An Engine is safe for concurrent use. Every public call holds a single
// mutex for its duration; observers are notified after the lock is
// released, in the order the changes happened.
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"
)

// State is the round state.
type State uint8

const (
	// StateIdle: grid allocated, nothing revealed, traps not placed yet.
	StateIdle State = iota
	// StatePlaying: the board is generated and the round is live.
	StatePlaying
	// StateWon is terminal.
	StateWon
	// StateLost is terminal.
	StateLost
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round is over.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Stats are running counters for the current round.
type Stats struct {
	Revealed    int // safe cells revealed
	FlagsPlaced int // flags currently on the board
	TrapsFound  int // traps uncovered without exploding
}

type floodItem struct {
	pos        board.Coord
	generation uint64
}

// Engine owns one board and drives a round on it.
type Engine struct {
	mu sync.Mutex

	w, h      int
	requested int
	layout    []string

	grid       *board.Grid
	state      State
	remaining  int
	generation uint64
	queue      []floodItem
	stats      Stats

	stepsPerTick int
	rng          *rand.Rand
	logger       *log.Logger
	renderer     Renderer
	presenter    Presenter
	onTrap       TrapHandler

	events []func()
}

// New creates an engine for a w*h board with trapCount traps and starts
// the first round. With WithLayout the board dimensions and trap count
// come from the layout instead.
func New(w, h, trapCount int, opts ...Option) (*Engine, error) {
	e := &Engine{
		w:         w,
		h:         h,
		requested: trapCount,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    discardLogger(),
		renderer:  nopRenderer{},
		presenter: nopPresenter{},
		onTrap:    alwaysExplode,
	}
	for _, opt := range opts {
		opt(e)
	}

	grid, err := e.freshGrid()
	if err != nil {
		return nil, err
	}
	if e.layout != nil {
		e.w, e.h = grid.Width(), grid.Height()
		e.requested = grid.TrapCount()
	}
	e.startRound(grid)
	return e, nil
}

func (e *Engine) freshGrid() (*board.Grid, error) {
	if e.layout != nil {
		g, err := board.FromLayout(e.layout...)
		if err != nil {
			return nil, fmt.Errorf("engine: layout: %w", err)
		}
		return g, nil
	}
	g, err := board.New(e.w, e.h)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return g, nil
}

func (e *Engine) startRound(g *board.Grid) {
	e.grid = g
	e.state = StateIdle
	e.generation++
	e.queue = e.queue[:0]
	e.stats = Stats{}
	e.remaining = max(e.requested, 0)
	if g.Generated() {
		e.remaining = g.TrapCount()
	}
}

// NewGame discards the board and starts a fresh round. Any flood fill
// still in progress is abandoned.
func (e *Engine) NewGame() {
	e.do(func() bool {
		grid, err := e.freshGrid()
		if err != nil {
			// New already built a grid from the same inputs.
			panic(err)
		}
		e.startRound(grid)
		e.logger.Debug("new round", "generation", e.generation, "width", e.w, "height", e.h, "traps", e.requested)
		e.emitBoard()
		return true
	})
}

// PlaceSpecial puts a pillar, shrine or curse on the board. It only works
// before the first reveal of a round.
func (e *Engine) PlaceSpecial(c board.Coord, k board.Kind) error {
	var err error
	e.do(func() bool {
		if e.state != StateIdle {
			err = board.ErrAlreadyGenerated
			return false
		}
		if err = e.grid.PlaceSpecial(c, k); err != nil {
			return false
		}
		e.emitBoard()
		return true
	})
	return err
}

// State returns the round state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// RemainingFlags returns how many flags may still be placed.
func (e *Engine) RemainingFlags() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining
}

// TrapCount returns the placed trap count once generated, otherwise the
// requested count.
func (e *Engine) TrapCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.grid.Generated() {
		return e.grid.TrapCount()
	}
	return max(e.requested, 0)
}

// Generated reports whether traps have been placed this round.
func (e *Engine) Generated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Generated()
}

// Pending reports whether an incremental flood fill still has work queued.
func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue) > 0
}

// Stats returns the running counters for the round.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Generation returns the round counter. It increases with every NewGame.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// Size returns the board dimensions.
func (e *Engine) Size() (w, h int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Width(), e.grid.Height()
}

// Cell returns a copy of the cell at c, and false when c is off the board.
func (e *Engine) Cell(c board.Coord) (board.Cell, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.TryGet(c.X, c.Y)
}

// Snapshot returns a deep copy of the board for rendering or inspection.
func (e *Engine) Snapshot() *board.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Clone()
}

// Hint returns a logically certain next move, if one exists.
func (e *Engine) Hint() (board.Hint, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePlaying {
		return board.Hint{}, false
	}
	return board.FindHint(e.grid)
}

// The emit helpers queue observer calls; they run once the lock is gone.

// emitBoard hands the renderer a copy taken now, so it never reads the
// live grid outside the lock.
func (e *Engine) emitBoard() {
	g := e.grid.Clone()
	e.events = append(e.events, func() { e.renderer.BoardChanged(g) })
}

func (e *Engine) emitRevealed(c board.Cell) {
	e.events = append(e.events, func() { e.presenter.CellRevealed(c) })
}

func (e *Engine) emitExplosion(c board.Cell) {
	e.events = append(e.events, func() { e.presenter.Explosion(c) })
}

func (e *Engine) emitFlag(c board.Cell) {
	e.events = append(e.events, func() { e.presenter.FlagToggled(c) })
}

func (e *Engine) emitComplete() {
	e.events = append(e.events, e.presenter.LevelComplete)
}

func (e *Engine) takeEvents() []func() {
	ev := e.events
	e.events = nil
	return ev
}

func dispatch(events []func()) {
	for _, fn := range events {
		fn()
	}
}

// do runs fn under the lock and then notifies observers.
func (e *Engine) do(fn func() bool) bool {
	e.mu.Lock()
	changed := fn()
	events := e.takeEvents()
	e.mu.Unlock()
	dispatch(events)
	return changed
}
