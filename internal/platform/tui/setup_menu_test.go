package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trapsweep/internal/config"
	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
)

var testPresets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

func setupKeys(t *testing.T, m SetupModel, keys ...tea.KeyMsg) SetupModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(SetupModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
)

func TestSetupDefaultsToNormal(t *testing.T) {
	m := NewSetupModel(string(trapsweep.ModeClassic), testPresets, trapsweep.Choice{}, 80, 24)
	if m.Selected() != nil {
		t.Fatal("nothing is selected before enter")
	}
	m = setupKeys(t, m, keyEnter)
	sel := m.Selected()
	if sel == nil || sel.Difficulty != config.DifficultyNormal {
		t.Errorf("Selected() = %+v, expected normal", sel)
	}
}

func TestSetupDifficultyWraps(t *testing.T) {
	m := NewSetupModel(string(trapsweep.ModeClassic), testPresets, trapsweep.Choice{Difficulty: config.DifficultyEasy}, 80, 24)

	m = setupKeys(t, m, keyLeft, keyEnter)
	if got := m.Selected().Difficulty; got != config.DifficultyFixed {
		t.Errorf("left from easy = %s, expected fixed", got)
	}

	m = NewSetupModel(string(trapsweep.ModeClassic), testPresets, trapsweep.Choice{Difficulty: config.DifficultyFixed}, 80, 24)
	m = setupKeys(t, m, keyRight, keyEnter)
	if got := m.Selected().Difficulty; got != config.DifficultyEasy {
		t.Errorf("right from fixed = %s, expected easy", got)
	}
}

func TestSetupHeroRowOnlyInCrawl(t *testing.T) {
	classic := NewSetupModel(string(trapsweep.ModeClassic), testPresets, trapsweep.Choice{}, 80, 24)
	if strings.Contains(classic.View(), "Hero:") {
		t.Error("classic setup should not offer heroes")
	}

	crawl := NewSetupModel(string(trapsweep.ModeCrawl), testPresets, trapsweep.Choice{}, 80, 24)
	if !strings.Contains(crawl.View(), "Hero:") {
		t.Error("crawl setup should offer heroes")
	}

	crawl = setupKeys(t, crawl, keyDown, keyRight, keyRight, keyEnter)
	sel := crawl.Selected()
	if sel == nil || sel.Hero != hero.KindViolet {
		t.Errorf("Selected() = %+v, expected violet", sel)
	}

	crawl = NewSetupModel(string(trapsweep.ModeCrawl), testPresets, trapsweep.Choice{Hero: hero.KindBlank}, 80, 24)
	crawl = setupKeys(t, crawl, keyDown, keyLeft, keyEnter)
	if got := crawl.Selected().Hero; got != hero.KindMystic {
		t.Errorf("left from blank = %v, expected mystic", got)
	}
}

func TestSetupCursorClamps(t *testing.T) {
	m := NewSetupModel(string(trapsweep.ModeClassic), testPresets, trapsweep.Choice{}, 80, 24)
	m = setupKeys(t, m, keyUp, keyDown, keyDown, keyDown)
	// Cycling on the start row changes nothing.
	m = setupKeys(t, m, keyRight, keyEnter)
	if got := m.Selected().Difficulty; got != config.DifficultyNormal {
		t.Errorf("difficulty = %s, expected normal", got)
	}
}

func TestSetupBack(t *testing.T) {
	m := NewSetupModel(string(trapsweep.ModeClassic), testPresets, trapsweep.Choice{}, 80, 24)
	m = setupKeys(t, m, keyEsc)
	if !m.WantsBack() || m.IsQuitting() || m.Selected() != nil {
		t.Error("esc should go back without selecting")
	}
}

func TestSessionFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}, testPresets, log.New(io.Discard))
	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	// The first mode in the menu is trapcrawl.
	step(keyEnter)
	if s.screen != screenSetup || s.gameID != string(trapsweep.ModeCrawl) {
		t.Fatalf("screen %d game %q, expected crawl setup", s.screen, s.gameID)
	}

	step(keyEsc)
	if s.screen != screenMenu {
		t.Fatalf("esc in setup should return to the menu, got screen %d", s.screen)
	}

	step(keyEnter)
	step(keyDown)
	step(keyRight)
	step(keyEnter)
	if s.screen != screenGame {
		t.Fatalf("screen %d, expected game", s.screen)
	}
	if s.choice.Hero != hero.KindSage || s.choice.Difficulty != config.DifficultyNormal {
		t.Errorf("choice = %+v", s.choice)
	}
	if s.View() == "" {
		t.Error("game view should not be empty")
	}

	step(runeKey('q'))
	if !s.quitting || s.View() != "" {
		t.Error("q in game should end the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, testPresets, log.New(io.Discard))
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenScores {
		t.Fatalf("tab should open scores, got screen %d", s.screen)
	}
	next, _ = s.Update(keyEsc)
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("esc should leave scores, got screen %d", s.screen)
	}
}
