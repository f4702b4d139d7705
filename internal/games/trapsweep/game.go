// Package trapsweep hosts the trap-grid engine as arcade games: a classic
// cursor mode and a crawl mode where a hero walks the board.
package trapsweep

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trapsweep/internal/config"
	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/engine"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
	"github.com/vovakirdan/trapsweep/internal/registry"
)

// Mode selects how the board is played.
type Mode string

const (
	ModeClassic Mode = "trapsweep"
	ModeCrawl   Mode = "trapcrawl"
)

const (
	hudHeight    = 2
	footerHeight = 1
	minScreenW   = 24
	minScreenH   = 8
	cellWidth    = 2 // terminal columns per board cell
	hintTicks    = 120
)

// Game implements registry.Game on top of engine.Engine.
type Game struct {
	mode       Mode
	runtime    core.RuntimeConfig
	cfg        config.TrapsweepConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger
	rng        *rand.Rand
	fx         feedback
	choice     *Choice

	eng    *engine.Engine
	board  config.BoardConfig
	layout []string
	depth  int
	cursor board.Coord // classic cursor, crawl aim

	// Crawl mode
	heroKind hero.Kind
	hero     *hero.Hero
	start    board.Coord
	stepped  bool
	shards   map[board.Coord]bool
	shrine   shrine

	hint    board.Hint
	hintTTL int

	tick       uint64
	roundTick  uint64
	runScore   int
	roundEnded bool
	summary    core.RoundSummary
	paused     bool
	tooSmall   bool
}

type shrine struct {
	pos    board.Coord
	placed bool
	orbs   int
	active bool
}

// Choice is a per-game pick of hero and difficulty.
type Choice struct {
	Hero       hero.Kind
	Difficulty config.DifficultyPreset
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewCrawl creates a crawl mode game.
func NewCrawl() *Game {
	return &Game{mode: ModeCrawl}
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeCrawl), func() registry.Game {
		return NewCrawl()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeCrawl {
		return "Trapsweep: Crawl"
	}
	return "Trapsweep"
}

// Controls lists the key bindings for help screens.
func (g *Game) Controls() []string {
	if g.mode == ModeCrawl {
		return []string{
			"WASD: walk (stepping reveals)",
			"arrows/hjkl: aim",
			"f: flag aimed cell",
			"c: cast spell at aim",
			"e: use adjacent shrine, space: spend orb",
			"?: hint",
			"enter: next level, r: new run",
		}
	}
	return []string{
		"arrows/WASD/hjkl: move cursor",
		"space/enter: reveal",
		"f: flag",
		"?: hint",
		"enter: next level, r: new run",
	}
}

// Choose overrides the package-wide hero and difficulty for this game.
// It applies from the next Reset.
func (g *Game) Choose(c Choice) {
	g.choice = &c
}

// Reset starts a new run at depth 0.
func (g *Game) Reset(rt core.RuntimeConfig) {
	s := currentSettings()
	if g.choice != nil {
		s.hero = g.choice.Hero
		s.preset = g.choice.Difficulty
	}
	g.logger = s.logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = rt
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.cfg = loadConfig(s, g.logger)
	g.difficulty = config.NewDifficultyManager(g.cfg.Progression, g.cfg.Board)
	g.heroKind = s.hero
	g.layout = s.layout
	g.tick = 0
	g.depth = 0
	g.runScore = 0
	g.paused = false
	g.fx.reset()
	g.checkScreen()
	g.startRound()
}

// Resize follows a terminal resize without losing the round.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.checkScreen()
}

func (g *Game) checkScreen() {
	g.tooSmall = g.runtime.ScreenW < minScreenW || g.runtime.ScreenH < minScreenH
}

// startRound builds the engine for the current depth.
func (g *Game) startRound() {
	g.board = g.difficulty.Board(g.depth)

	var heroCfg hero.Config
	bonus := 0.0
	if g.mode == ModeCrawl {
		heroCfg = heroConfig(g.cfg, g.heroKind)
		bonus = heroCfg.DensityBonus
	}
	traps := g.board.TrapCount(bonus)

	opts := []engine.Option{
		engine.WithRand(g.rng),
		engine.WithLogger(g.logger),
		engine.WithPresenter(&g.fx),
		engine.WithRenderer(&g.fx),
	}
	if g.cfg.Flood.Animate {
		opts = append(opts, engine.WithIncrementalFlood(g.cfg.Flood.StepsPerTick))
	}
	if len(g.layout) > 0 {
		opts = append(opts, engine.WithLayout(g.layout...))
	}
	if g.mode == ModeCrawl {
		g.hero = hero.New(g.heroKind, heroCfg, g.rng)
		opts = append(opts, engine.WithTrapHandler(g.hero.OnTrapStepped))
	}

	eng, err := engine.New(g.board.Width, g.board.Height, traps, opts...)
	if err != nil {
		g.logger.Error("Cannot build board, using defaults", "err", err)
		g.layout = nil
		g.board = config.DefaultTrapsweepConfig().Board
		traps = g.board.TrapCount(bonus)
		eng, _ = engine.New(g.board.Width, g.board.Height, traps, append(opts, engine.WithLayout())...)
	}
	g.eng = eng
	g.board.Width, g.board.Height = eng.Size()
	traps = eng.TrapCount()

	g.cursor = board.C(g.board.Width/2, g.board.Height/2)
	g.roundEnded = false
	g.summary = core.RoundSummary{}
	g.hintTTL = 0
	g.roundTick = g.tick
	g.stepped = false
	g.shards = make(map[board.Coord]bool)
	g.shrine = shrine{}
	if g.mode == ModeCrawl {
		g.setupCrawl()
	}

	g.logger.Info("Round started",
		"mode", g.mode,
		"depth", g.depth,
		"size", fmt.Sprintf("%dx%d", g.board.Width, g.board.Height),
		"traps", traps)
}

// nextRound descends after a win, or starts a new run after a loss.
func (g *Game) nextRound() {
	if g.eng.State() == engine.StateWon {
		g.depth++
	} else {
		g.depth = 0
		g.runScore = 0
	}
	g.fx.reset()
	g.startRound()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.fx.step()
	if g.hintTTL > 0 {
		g.hintTTL--
	}

	if g.roundEnded {
		if in.Any(core.ActionRestart, core.ActionConfirm) {
			g.nextRound()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			// A paused board shows the whole flood.
			g.eng.Drain()
		}
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.mode == ModeCrawl {
		g.stepCrawl(in)
	} else {
		g.stepClassic(in)
	}
	if in.Has(core.ActionHint) {
		g.showHint()
	}

	if g.eng.Pending() {
		g.eng.Tick()
	}
	g.checkRoundEnd()

	return core.StepResult{State: g.State()}
}

func (g *Game) stepClassic(in core.InputFrame) {
	mx, my := moveDelta(in)
	ax, ay := aimDelta(in)
	g.moveCursor(core.Clamp(mx+ax, -1, 1), core.Clamp(my+ay, -1, 1))

	if in.Any(core.ActionReveal, core.ActionConfirm) {
		g.eng.Reveal(g.cursor)
	}
	if in.Has(core.ActionFlag) {
		g.flag()
	}
}

func moveDelta(in core.InputFrame) (dx, dy int) {
	if in.Has(core.ActionMoveLeft) {
		dx--
	}
	if in.Has(core.ActionMoveRight) {
		dx++
	}
	if in.Has(core.ActionMoveUp) {
		dy--
	}
	if in.Has(core.ActionMoveDown) {
		dy++
	}
	return dx, dy
}

func aimDelta(in core.InputFrame) (dx, dy int) {
	if in.Has(core.ActionAimLeft) {
		dx--
	}
	if in.Has(core.ActionAimRight) {
		dx++
	}
	if in.Has(core.ActionAimUp) {
		dy--
	}
	if in.Has(core.ActionAimDown) {
		dy++
	}
	return dx, dy
}

// moveCursor shifts the cursor, keeping it on the board.
func (g *Game) moveCursor(dx, dy int) {
	w, h := g.eng.Size()
	g.cursor = board.C(
		core.Clamp(g.cursor.X+dx, 0, w-1),
		core.Clamp(g.cursor.Y+dy, 0, h-1),
	)
}

// flag toggles the flag on the cursor cell and explains a refusal.
func (g *Game) flag() {
	if g.eng.ToggleFlag(g.cursor) {
		return
	}
	cell, ok := g.eng.Cell(g.cursor)
	switch {
	case !ok || !cell.Hidden():
	case g.eng.State() == engine.StateIdle:
		g.fx.say("Reveal a cell before flagging", core.ColorGray)
	case g.eng.RemainingFlags() == 0:
		g.fx.say("No flags left", core.ColorOrange)
	}
}

func (g *Game) showHint() {
	h, ok := g.eng.Hint()
	if !ok {
		g.fx.say("No certain move. Trust your luck.", core.ColorGray)
		return
	}
	g.hint = h
	g.hintTTL = hintTicks
	if h.Safe {
		g.fx.say(fmt.Sprintf("Hint: %s is safe", h.Pos), core.ColorBrightGreen)
	} else {
		g.fx.say(fmt.Sprintf("Hint: %s is a trap", h.Pos), core.ColorBrightRed)
	}
}

// checkRoundEnd records the round once the engine reaches a final state.
func (g *Game) checkRoundEnd() {
	st := g.eng.State()
	if !st.Terminal() || g.roundEnded {
		return
	}
	g.roundEnded = true
	g.hintTTL = 0
	g.shrine.active = false

	stats := g.eng.Stats()
	score := g.roundScore()
	g.runScore += score
	g.summary = core.RoundSummary{
		Mode:      string(g.mode),
		Hero:      g.heroID(),
		Width:     g.board.Width,
		Height:    g.board.Height,
		Traps:     g.eng.TrapCount(),
		Depth:     g.depth,
		Outcome:   st.String(),
		Revealed:  stats.Revealed,
		FlagsUsed: stats.FlagsPlaced,
		Duration:  g.elapsed(),
		Score:     score,
	}
	g.logger.Info("Round finished",
		"mode", g.mode,
		"outcome", st,
		"depth", g.depth,
		"score", score,
		"revealed", stats.Revealed)
}

// roundScore is PerCell for every safe cell revealed, plus PerTrapWin for
// every trap once the level is cleared.
func (g *Game) roundScore() int {
	if g.eng == nil {
		return 0
	}
	score := g.eng.Stats().Revealed * g.cfg.Scoring.PerCell
	if g.eng.State() == engine.StateWon {
		score += g.eng.TrapCount() * g.cfg.Scoring.PerTrapWin
	}
	return score
}

func (g *Game) elapsed() time.Duration {
	ticks := g.tick - g.roundTick
	return time.Duration(ticks) * time.Second / time.Duration(g.runtime.TickRate)
}

func (g *Game) heroID() string {
	if g.mode != ModeCrawl {
		return ""
	}
	return g.heroKind.String()
}

// State returns the current game state. A finished round reports
// GameOver with its summary until the next round starts.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.roundScore(),
		GameOver: g.roundEnded,
		Paused:   g.paused,
	}
	if g.roundEnded {
		summary := g.summary
		st.Round = &summary
	}
	return st
}

// Depth returns how many levels were cleared in the current run.
func (g *Game) Depth() int {
	return g.depth
}

// Engine exposes the round engine, mainly for tests and tools.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}
