package trapsweep

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/trapsweep/internal/config"
	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/engine"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
	"github.com/vovakirdan/trapsweep/internal/registry"
)

const staticFlood = `
flood:
  animate: false
`

// crawlLayout puts the hero start (3,2) between four traps so early steps
// uncover numbers instead of flooding the board.
var crawlLayout = []string{
	"*.....*",
	"..*.*..",
	"S......",
	"..*.*..",
	"*.....*",
}

func resetSettings() {
	SetConfigPath("")
	SetDifficultyPreset("")
	SetHero(hero.KindBlank)
	SetBoardSize(0, 0)
	SetLayout()
	SetLogger(nil)
}

func newTestGame(t *testing.T, g *Game, yaml string, layout ...string) *Game {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trapsweep.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetLayout(layout...)
	t.Cleanup(resetSettings)

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7})
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestGamesRegistered(t *testing.T) {
	for _, id := range []string{"trapsweep", "trapcrawl"} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
		}
		info, _ := registry.Info(id)
		if len(info.Controls) == 0 {
			t.Errorf("%s has no controls listed", id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func(g *Game) Snapshot {
		newTestGame(t, g, staticFlood)
		script := []core.Action{
			core.ActionReveal,
			core.ActionMoveLeft, core.ActionMoveLeft, core.ActionReveal,
			core.ActionAimUp, core.ActionFlag,
			core.ActionMoveDown, core.ActionMoveDown, core.ActionReveal,
		}
		for _, a := range script {
			press(g, a)
		}
		return g.Snapshot()
	}

	for _, mk := range []func() *Game{New, NewCrawl} {
		snap1 := run(mk())
		snap2 := run(mk())
		if !reflect.DeepEqual(snap1, snap2) {
			t.Errorf("%s: snapshots differ:\n%+v\n%+v", snap1.Mode, snap1, snap2)
		}
	}
}

func TestClassicFirstRevealIsSafe(t *testing.T) {
	g := newTestGame(t, New(), staticFlood)

	if g.Engine().State() != engine.StateIdle {
		t.Fatalf("new round should be idle, got %s", g.Engine().State())
	}
	press(g, core.ActionReveal)

	if st := g.Engine().State(); st == engine.StateLost || st == engine.StateIdle {
		t.Fatalf("first reveal should start the round safely, got %s", st)
	}
	cell, _ := g.Engine().Cell(g.cursor)
	if !cell.Revealed || cell.IsTrap() {
		t.Errorf("cursor cell should be revealed and safe: %+v", cell)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, New(), staticFlood+"board:\n  width: 6\n  height: 4\n")

	for i := 0; i < 10; i++ {
		press(g, core.ActionAimLeft)
		press(g, core.ActionMoveUp)
	}
	if g.cursor != board.C(0, 0) {
		t.Errorf("cursor = %s, expected (0,0)", g.cursor)
	}
	for i := 0; i < 10; i++ {
		press(g, core.ActionMoveRight, core.ActionAimDown)
	}
	if g.cursor != board.C(5, 3) {
		t.Errorf("cursor = %s, expected (5,3)", g.cursor)
	}
}

func TestClassicWinScoresAndDescends(t *testing.T) {
	g := newTestGame(t, New(), staticFlood,
		"*....",
		".....",
		".....",
		".....",
		"....*",
	)

	res := press(g, core.ActionReveal)
	if !res.State.GameOver {
		t.Fatal("flooding every safe cell should win the round")
	}
	round := res.State.Round
	if round == nil || round.Outcome != "won" {
		t.Fatalf("round summary = %+v", round)
	}
	if want := 23*10 + 2*25; round.Score != want || res.State.Score != want {
		t.Errorf("score = %d (state %d), expected %d", round.Score, res.State.Score, want)
	}
	if round.Mode != "trapsweep" || round.Width != 5 || round.Traps != 2 || round.Revealed != 23 {
		t.Errorf("summary = %+v", round)
	}

	press(g, core.ActionReveal)
	if !g.State().GameOver {
		t.Error("input other than confirm should keep the round over")
	}

	res = press(g, core.ActionConfirm)
	if res.State.GameOver {
		t.Error("confirm should start the next level")
	}
	if g.Depth() != 1 {
		t.Errorf("depth = %d, expected 1", g.Depth())
	}
	if g.runScore != 280 {
		t.Errorf("run score = %d, expected 280", g.runScore)
	}
}

func TestClassicLossResetsRun(t *testing.T) {
	g := newTestGame(t, New(), staticFlood,
		"*....",
		".....",
		".....",
		".....",
		"....*",
	)
	g.depth = 3

	press(g, core.ActionMoveUp)
	press(g, core.ActionMoveUp)
	press(g, core.ActionMoveLeft)
	res := press(g, core.ActionMoveLeft, core.ActionReveal)

	if !res.State.GameOver || res.State.Round.Outcome != "lost" {
		t.Fatalf("revealing a trap should lose, got %+v", res.State)
	}
	if res.State.Round.Depth != 3 {
		t.Errorf("summary depth = %d, expected 3", res.State.Round.Depth)
	}
	if g.fx.message == "" || !strings.Contains(g.fx.message, "BOOM") {
		t.Errorf("explosion message missing, got %q", g.fx.message)
	}

	press(g, core.ActionRestart)
	if g.Depth() != 0 || g.runScore != 0 {
		t.Errorf("a loss should start a new run, depth %d run %d", g.Depth(), g.runScore)
	}
	if g.State().GameOver {
		t.Error("new round should not be over")
	}
}

func TestFlagBeforeRevealExplains(t *testing.T) {
	g := newTestGame(t, New(), staticFlood)

	press(g, core.ActionFlag)
	if g.fx.message != "Reveal a cell before flagging" {
		t.Errorf("message = %q", g.fx.message)
	}
	if g.Engine().RemainingFlags() != g.Engine().TrapCount() {
		t.Error("refused flag should not use a flag")
	}
}

func TestHintMessage(t *testing.T) {
	g := newTestGame(t, New(), staticFlood)
	press(g, core.ActionReveal)
	press(g, core.ActionHint)

	if !strings.HasPrefix(g.fx.message, "Hint:") && !strings.HasPrefix(g.fx.message, "No certain move") {
		t.Errorf("unexpected hint message %q", g.fx.message)
	}
}

func TestFloodFeedback(t *testing.T) {
	// The corner cell is sealed off by traps, so the flood from the
	// centre stops one cell short of a win.
	g := newTestGame(t, New(), staticFlood,
		".*.....",
		"**.....",
		".......",
		".......",
		".......",
		".......",
		".......",
	)

	press(g, core.ActionReveal)
	if g.State().GameOver {
		t.Fatal("the sealed corner should keep the round going")
	}
	if g.fx.latest == nil || !g.fx.latest.Cell(board.C(3, 3)).Revealed {
		t.Fatal("the drawn board should follow the reveal")
	}

	press(g)
	if g.fx.message != "+45 cells" {
		t.Errorf("message = %q, expected +45 cells", g.fx.message)
	}
	if g.fx.shakeOffset() == 0 {
		t.Error("a big flood should nudge the board")
	}

	press(g)
	if g.fx.message != "+45 cells" {
		t.Errorf("quiet step replaced the note with %q", g.fx.message)
	}
}

func TestSingleRevealIsQuiet(t *testing.T) {
	g := newTestGame(t, New(), staticFlood,
		"*.*",
		"...",
		"*.*",
	)

	press(g, core.ActionReveal)
	press(g)
	if g.fx.message != "" || g.fx.shake != 0 {
		t.Errorf("one number cell should not report, message %q shake %d", g.fx.message, g.fx.shake)
	}
}

func TestAnimatedFloodFinishesOverTicks(t *testing.T) {
	g := newTestGame(t, New(), "flood:\n  animate: true\n  steps_per_tick: 1\n",
		"*....",
		".....",
		".....",
		".....",
		".....",
	)

	res := press(g, core.ActionReveal)
	if res.State.GameOver {
		t.Fatal("one cell per tick cannot clear 24 cells in one step")
	}
	if !g.Engine().Pending() {
		t.Fatal("flood should still be pending")
	}

	for i := 0; i < 200 && !res.State.GameOver; i++ {
		res = press(g)
	}
	if !res.State.GameOver || res.State.Round.Outcome != "won" {
		t.Fatalf("flood should finish with a win, got %+v", res.State)
	}
	if res.State.Round.Revealed != 24 {
		t.Errorf("revealed = %d, expected 24", res.State.Round.Revealed)
	}
}

func TestPauseFinishesFlood(t *testing.T) {
	g := newTestGame(t, New(), "flood:\n  animate: true\n  steps_per_tick: 1\n",
		"*....",
		".....",
		".....",
		".....",
		".....",
	)

	press(g, core.ActionReveal)
	if !g.Engine().Pending() {
		t.Fatal("flood should still be pending")
	}
	press(g, core.ActionPause)
	if g.Engine().Pending() || g.Engine().State() != engine.StateWon {
		t.Fatalf("pausing should finish the flood, state %s", g.Engine().State())
	}

	res := press(g, core.ActionPause)
	if !res.State.GameOver || res.State.Round.Outcome != "won" {
		t.Errorf("unpausing should end the won round, got %+v", res.State)
	}
}

func TestHUDShowsDepthOrFixed(t *testing.T) {
	g := newTestGame(t, New(), staticFlood)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Depth 1") {
		t.Errorf("HUD missing depth: %q", screen.Row(0))
	}

	g = newTestGame(t, New(), staticFlood+"progression:\n  enabled: false\n")
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Fixed") {
		t.Errorf("HUD should show a fixed board: %q", screen.Row(0))
	}
}

func TestPauseFreezesInput(t *testing.T) {
	g := newTestGame(t, New(), staticFlood)

	press(g, core.ActionPause)
	press(g, core.ActionReveal)
	if g.Engine().State() != engine.StateIdle {
		t.Error("input while paused should be ignored")
	}
	press(g, core.ActionPause)
	press(g, core.ActionReveal)
	if g.Engine().State() == engine.StateIdle {
		t.Error("input after unpausing should apply")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := newTestGame(t, New(), staticFlood)
	g.Resize(10, 5)

	press(g, core.ActionReveal)
	if snap := g.Snapshot(); snap.State != "paused_small_window" {
		t.Errorf("state = %s", snap.State)
	}
	if g.Engine().State() != engine.StateIdle {
		t.Error("a too small window should pause the game")
	}

	g.Resize(80, 24)
	press(g, core.ActionReveal)
	if g.Engine().State() == engine.StateIdle {
		t.Error("resizing back should resume")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, NewCrawl(), staticFlood)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Trapsweep: Crawl") {
		t.Errorf("HUD missing title: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Wanderer") {
		t.Errorf("HUD missing hero: %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.String(), GlyphHero) {
		t.Error("hero not drawn")
	}

	g.Resize(10, 5)
	small := core.NewScreen(30, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("too small overlay not drawn")
	}
}

func TestCrawlPillarsAvoidStart(t *testing.T) {
	g := newTestGame(t, NewCrawl(), staticFlood+`
board:
  width: 12
  height: 9
  trap_density: 0.15
  pillars: 6
shrine:
  enabled: true
  orbs: 2
`)

	grid := g.Engine().Snapshot()
	pillars := grid.Find(func(c board.Cell) bool { return c.Kind == board.KindPillar })
	if len(pillars) != 6 {
		t.Errorf("placed %d pillars, expected 6", len(pillars))
	}
	for _, p := range append(pillars, g.shrine.pos) {
		if p.Chebyshev(g.start) <= 1 {
			t.Errorf("special at %s inside the start zone around %s", p, g.start)
		}
	}
	if !g.shrine.placed || g.shrine.orbs != 2 {
		t.Errorf("shrine = %+v", g.shrine)
	}
	if g.hero.Pos() != board.C(6, 4) {
		t.Errorf("hero starts at %s, expected (6,4)", g.hero.Pos())
	}
}

func TestCrawlFirstStepGenerates(t *testing.T) {
	g := newTestGame(t, NewCrawl(), staticFlood+"board:\n  pillars: 0\nshrine:\n  enabled: false\n")
	start := g.hero.Pos()

	press(g, core.ActionMoveRight)

	if st := g.Engine().State(); st == engine.StateIdle || st == engine.StateLost {
		t.Fatalf("first step should generate a safe board, got %s", st)
	}
	if g.hero.Pos() != start.Add(1, 0) {
		t.Errorf("hero at %s, expected %s", g.hero.Pos(), start.Add(1, 0))
	}
	for _, c := range []board.Coord{start, start.Add(1, 0)} {
		cell, _ := g.Engine().Cell(c)
		if !cell.Revealed || cell.IsTrap() {
			t.Errorf("%s should be revealed and safe: %+v", c, cell)
		}
	}
}

func TestCrawlSpellNeedsFirstStep(t *testing.T) {
	SetHero(hero.KindSage)
	g := newTestGame(t, NewCrawl(), staticFlood)

	press(g, core.ActionCast)
	if g.fx.message != "Spells wake after the first step" {
		t.Errorf("message = %q", g.fx.message)
	}
	if g.hero.Casts() != 3 {
		t.Errorf("failed cast should not use a charge, casts = %d", g.hero.Casts())
	}
}

func TestChooseOverridesSettings(t *testing.T) {
	SetHero(hero.KindSage)
	g := NewCrawl()
	g.Choose(Choice{Hero: hero.KindGoblin, Difficulty: config.DifficultyEasy})
	newTestGame(t, g, staticFlood)

	if g.hero.Kind() != hero.KindGoblin {
		t.Errorf("hero = %s, expected goblin", g.hero.Kind())
	}
	if w, h := g.Engine().Size(); w != 10 || h != 8 {
		t.Errorf("board = %dx%d, expected the easy 10x8", w, h)
	}
	if SelectedHero() != hero.KindSage {
		t.Error("Choose should not touch the package settings")
	}
}

func TestCrawlHeroOverride(t *testing.T) {
	SetHero(hero.KindSage)
	g := newTestGame(t, NewCrawl(), staticFlood+"heroes:\n  sage:\n    casts: 5\n    light_radius: 2\n")

	if g.hero.Casts() != 5 || g.hero.Config().LightRadius != 2 {
		t.Errorf("override not applied: casts %d, light %d", g.hero.Casts(), g.hero.Config().LightRadius)
	}
	if g.heroID() != "sage" {
		t.Errorf("heroID = %q", g.heroID())
	}
}

func TestCrawlShrine(t *testing.T) {
	g := newTestGame(t, NewCrawl(), staticFlood+"shrine:\n  enabled: true\n  orbs: 2\n", crawlLayout...)

	if !g.shrine.placed || g.shrine.pos != board.C(0, 2) {
		t.Fatalf("layout shrine not found: %+v", g.shrine)
	}

	press(g, core.ActionInteract)
	if g.fx.message != "Move next to the shrine first" {
		t.Errorf("message = %q", g.fx.message)
	}

	press(g, core.ActionMoveLeft)
	press(g, core.ActionMoveLeft)
	if g.hero.Pos() != board.C(1, 2) {
		t.Fatalf("hero at %s, expected (1,2)", g.hero.Pos())
	}
	if g.Engine().State() != engine.StatePlaying {
		t.Fatalf("state = %s", g.Engine().State())
	}

	press(g, core.ActionMoveLeft)
	if g.hero.Pos() != board.C(1, 2) {
		t.Error("the shrine should block movement")
	}

	press(g, core.ActionInteract)
	if !g.shrine.active {
		t.Fatalf("shrine should be active, message %q", g.fx.message)
	}

	for i := 0; i < 5; i++ {
		press(g, core.ActionAimRight)
	}
	if g.cursor != board.C(6, 2) {
		t.Fatalf("aim at %s, expected (6,2)", g.cursor)
	}
	press(g, core.ActionReveal)
	if cell, _ := g.Engine().Cell(board.C(6, 2)); !cell.Revealed {
		t.Error("orb should reveal the aimed cell")
	}
	if g.shrine.orbs != 1 || !g.shrine.active {
		t.Errorf("shrine after one orb = %+v", g.shrine)
	}

	press(g, core.ActionAimUp)
	press(g, core.ActionAimUp)
	press(g, core.ActionReveal)
	trap, _ := g.Engine().Cell(board.C(6, 0))
	if !trap.Revealed || !trap.Flagged || trap.Exploded {
		t.Errorf("orb on a trap should uncover and flag it: %+v", trap)
	}
	if g.shrine.orbs != 0 || g.shrine.active {
		t.Errorf("spent shrine = %+v", g.shrine)
	}
	if g.Engine().State() != engine.StatePlaying {
		t.Errorf("state = %s", g.Engine().State())
	}
}

func TestCrawlMysticWalksThroughTrap(t *testing.T) {
	SetHero(hero.KindMystic)
	g := newTestGame(t, NewCrawl(), staticFlood, crawlLayout...)

	press(g, core.ActionMoveLeft)
	press(g, core.ActionCast)
	if g.hero.InvincibleSteps() != 7 {
		t.Fatalf("invincible steps = %d, message %q", g.hero.InvincibleSteps(), g.fx.message)
	}

	press(g, core.ActionMoveUp)
	if g.Engine().State() != engine.StatePlaying {
		t.Fatalf("warded hero should survive the trap, state %s", g.Engine().State())
	}
	trap, _ := g.Engine().Cell(board.C(2, 1))
	if !trap.Revealed || trap.Exploded {
		t.Errorf("trap should be disarmed: %+v", trap)
	}
	if g.hero.InvincibleSteps() != 6 {
		t.Errorf("invincible steps = %d, expected 6", g.hero.InvincibleSteps())
	}
}

func TestCrawlWandererStepsOnTrap(t *testing.T) {
	g := newTestGame(t, NewCrawl(), staticFlood, crawlLayout...)

	press(g, core.ActionMoveLeft)
	res := press(g, core.ActionMoveUp)

	if !res.State.GameOver || res.State.Round.Outcome != "lost" {
		t.Fatalf("stepping on a trap should lose, got %+v", res.State)
	}
	if res.State.Round.Hero != "blank" || res.State.Round.Mode != "trapcrawl" {
		t.Errorf("summary = %+v", res.State.Round)
	}
	press(g, core.ActionMoveDown)
	if g.hero.Pos() != board.C(2, 1) {
		t.Error("the hero should not move after the round ends")
	}
}
