// Package registry lets game modes register themselves from init() so the
// CLI, menus and SSH host can find them by ID.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/trapsweep/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is one playable mode. Games are pure logic and never import Bubble
// Tea: the platform maps keys to actions, ticks Step at a fixed rate and
// draws whatever Render leaves in the screen buffer.
type Game interface {
	// ID is the stable key used by the CLI and the score tables.
	ID() string
	Title() string

	// Reset starts a fresh run for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize
// without being reset.
type Resizer interface {
	Resize(w, h int)
}

// Describer is implemented by games that can explain their controls.
type Describer interface {
	Controls() []string
}

// GameInfo describes a registered game without instantiating it.
type GameInfo struct {
	ID       string
	Title    string
	Controls []string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory under id. It panics on a duplicate id.
// Metadata is read once from a throwaway instance.
func Register(id string, f Factory) {
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Controls = d.Controls()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Info returns the metadata of a registered game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
