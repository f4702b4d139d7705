package engine

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for trap placement.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds a private random source for trap placement.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger. Engines log to io.Discard by default.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRenderer registers the board-changed observer.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithPresenter registers the feedback observer.
func WithPresenter(p Presenter) Option {
	return func(e *Engine) {
		if p != nil {
			e.presenter = p
		}
	}
}

// WithTrapHandler overrides what happens when a trap is revealed.
func WithTrapHandler(h TrapHandler) Option {
	return func(e *Engine) {
		if h != nil {
			e.onTrap = h
		}
	}
}

// WithIncrementalFlood spreads flood fills over Tick calls, popping at most
// steps cells per tick. steps <= 0 keeps flood fills synchronous.
func WithIncrementalFlood(steps int) Option {
	return func(e *Engine) {
		e.stepsPerTick = steps
	}
}

// WithLayout starts every round from a fixed, pre-generated board instead
// of placing traps on the first reveal. See board.FromLayout.
func WithLayout(rows ...string) Option {
	return func(e *Engine) {
		e.layout = append([]string(nil), rows...)
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
