// Package tui runs trapsweep in a terminal: the Bubble Tea loop that ticks
// a game, key mapping, the menus and scoreboard, and the SSH host.
package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/profile"
	"github.com/vovakirdan/trapsweep/internal/registry"
	"github.com/vovakirdan/trapsweep/internal/storage"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(rate, 1)), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	profiles   *profile.Manager
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	embedded   bool // runs inside a session model, never quits the program
	roundSaved bool // whether the finished round has been recorded
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithProfile records the best depth of every run in the player profile.
func WithProfile(p *profile.Manager) ModelOption {
	return func(m *Model) {
		m.profiles = p
	}
}

// WithLogger sets the logger. Models log to io.Discard by default.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Esc leaves a finished or paused game.
	if action, _ := m.keys.MapKey(msg); action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	// Games without resize support restart to fit the new size.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// R in the middle of a round throws the run away.
	if m.inputFrame.Has(core.ActionRestart) && !m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.roundSaved {
		m.recordRound()
		m.roundSaved = true
	}
	if !m.gameState.GameOver {
		m.roundSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRound stores the finished round. Failures are logged and the game
// goes on.
func (m *Model) recordRound() {
	id := m.game.ID()
	if m.store != nil {
		if m.gameState.Score > 0 {
			if _, err := m.store.SaveScore(id, m.gameState.Score); err != nil {
				m.logger.Error("Failed to save score", "game", id, "err", err)
			}
		}
		if r := m.gameState.Round; r != nil {
			if _, err := m.store.SaveRound(id, *r); err != nil {
				m.logger.Error("Failed to save round", "game", id, "err", err)
			}
		}
	}

	r := m.gameState.Round
	if m.profiles == nil || r == nil {
		return
	}
	cleared := r.Depth
	if r.Outcome == "won" {
		cleared++
	}
	best, err := m.profiles.RecordDepth(cleared)
	if err != nil {
		m.logger.Warn("Failed to update profile", "err", err)
	}
	if best {
		m.logger.Info("New best depth", "depth", cleared)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("Cannot create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("Cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("Screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game on the alternate screen until the player leaves. quit
// reports whether they asked to quit the program rather than go back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (quit bool, err error) {
	final, err := tea.NewProgram(NewModel(game, store, cfg, opts...), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.IsQuitting(), nil
}
