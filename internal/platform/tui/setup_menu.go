package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trapsweep/internal/config"
	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
)

const (
	setupRowDifficulty = iota
	setupRowHero
	setupRowStart
)

// SetupModel lets users pick difficulty and, in crawl mode, a hero.
type SetupModel struct {
	gameID    string
	presets   []config.DifficultyPreset
	heroes    []hero.Kind
	rows      []int
	cursor    int
	preset    int
	hero      int
	width     int
	height    int
	keyMapper *KeyMapper
	choosing  bool
	quitting  bool
	back      bool
}

// NewSetupModel creates a setup model starting from the given selection.
func NewSetupModel(gameID string, presets []config.DifficultyPreset, initial trapsweep.Choice, width, height int) SetupModel {
	m := SetupModel{
		gameID:    gameID,
		presets:   presets,
		heroes:    hero.Kinds(),
		rows:      []int{setupRowDifficulty, setupRowStart},
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	if gameID == string(trapsweep.ModeCrawl) {
		m.rows = []int{setupRowDifficulty, setupRowHero, setupRowStart}
	}
	want := initial.Difficulty
	if want == "" {
		want = config.DifficultyNormal
	}
	for i, p := range presets {
		if p == want {
			m.preset = i
		}
	}
	for i, k := range m.heroes {
		if k == initial.Hero {
			m.hero = i
		}
	}
	return m
}

// Init initializes the model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.cycle(-1)
	case MenuActionRight:
		m.cycle(1)
	case MenuActionSelect:
		m.choosing = false
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// cycle steps the option on the current row, wrapping around.
func (m *SetupModel) cycle(delta int) {
	switch m.rows[m.cursor] {
	case setupRowDifficulty:
		if n := len(m.presets); n > 0 {
			m.preset = (m.preset + delta + n) % n
		}
	case setupRowHero:
		n := len(m.heroes)
		m.hero = (m.hero + delta + n) % n
	}
}

// View renders the setup screen.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("T R A P S W E E P", m.width))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var line string
		switch row {
		case setupRowDifficulty:
			line = fmt.Sprintf("Difficulty: < %s >", m.difficultyName())
		case setupRowHero:
			line = fmt.Sprintf("Hero: < %s >", m.heroes[m.hero].Profile().Name)
		case setupRowStart:
			line = "Start"
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	if len(m.rows) == 3 {
		p := m.heroes[m.hero].Profile()
		b.WriteString("\n")
		b.WriteString(centerText(p.Blurb, m.width))
		b.WriteString("\n")
		if p.Spell != hero.SpellNone {
			b.WriteString(centerText("Spell: "+p.Spell.String(), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Enter: Start  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m SetupModel) difficultyName() string {
	if len(m.presets) == 0 {
		return "default"
	}
	return string(m.presets[m.preset])
}

// Selected returns the selection, or nil if still choosing.
func (m SetupModel) Selected() *trapsweep.Choice {
	if m.choosing {
		return nil
	}
	sel := trapsweep.Choice{Hero: m.heroes[m.hero]}
	if len(m.presets) > 0 {
		sel.Difficulty = m.presets[m.preset]
	}
	return &sel
}

// IsQuitting returns true if user wants to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SetupModel) WantsBack() bool {
	return m.back
}

// RunSetupSelector runs the setup screen and returns the selection, or
// nil when the user backs out.
func RunSetupSelector(gameID string, presets []config.DifficultyPreset, initial trapsweep.Choice, cfg core.RuntimeConfig) (*trapsweep.Choice, error) {
	model := NewSetupModel(gameID, presets, initial, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SetupModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}

// PresetChoices lists the difficulty options offered in the setup screen:
// the configured presets by density, then fixed.
func PresetChoices(cfg config.TrapsweepConfig) []config.DifficultyPreset {
	presets := cfg.PresetNames()
	return append(presets, config.DifficultyFixed)
}
