package trapsweep

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trapsweep/internal/config"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
)

// Settings chosen on the command line or in the menu. They apply to games
// reset after the change.
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	selectedHero     = hero.KindBlank
	boardOverride    struct{ w, h int }
	fixedLayout      []string
	gameLogger       *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config default.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = p
}

// DifficultyPreset returns the selected preset, empty for the default.
func DifficultyPreset() config.DifficultyPreset {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return difficultyPreset
}

// SetHero selects the hero for crawl mode.
func SetHero(k hero.Kind) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	selectedHero = k
}

// SelectedHero returns the hero used by crawl mode.
func SelectedHero() hero.Kind {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return selectedHero
}

// SetBoardSize overrides the board size of the preset. Zero keeps the
// preset's value.
func SetBoardSize(w, h int) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	boardOverride.w = max(w, 0)
	boardOverride.h = max(h, 0)
}

// SetLayout plays every round on a hand-made map instead of a generated
// one. Rows use the glyphs of board.FromLayout. No rows clears it.
func SetLayout(rows ...string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	fixedLayout = append([]string(nil), rows...)
}

// SetLogger sets the logger handed to new games. Nil discards.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameLogger = l
}

type settings struct {
	configPath string
	preset     config.DifficultyPreset
	hero       hero.Kind
	width      int
	height     int
	layout     []string
	logger     *log.Logger
}

func currentSettings() settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings{
		configPath: configPath,
		preset:     difficultyPreset,
		hero:       selectedHero,
		width:      boardOverride.w,
		height:     boardOverride.h,
		layout:     fixedLayout,
		logger:     gameLogger,
	}
}

// loadConfig resolves the YAML config, preset and size override for a
// new game.
func loadConfig(s settings, logger *log.Logger) config.TrapsweepConfig {
	cfg, err := config.LoadTrapsweep(s.configPath)
	if err != nil {
		logger.Warn("Using default config", "err", err)
	}
	if err := config.ApplyTrapsweepPreset(&cfg, s.preset); err != nil {
		logger.Warn("Ignoring difficulty preset", "preset", s.preset, "err", err)
	}
	if s.width > 0 {
		cfg.Board.Width = s.width
	}
	if s.height > 0 {
		cfg.Board.Height = s.height
	}
	return cfg
}

// heroConfig applies the YAML overrides for k onto its stock stats.
func heroConfig(cfg config.TrapsweepConfig, k hero.Kind) hero.Config {
	hc := hero.DefaultConfig(k)
	o, ok := cfg.Heroes[k.Profile().ID]
	if !ok {
		return hc
	}
	if o.LightRadius != nil {
		hc.LightRadius = *o.LightRadius
	}
	if o.DensityBonus != nil {
		hc.DensityBonus = *o.DensityBonus
	}
	if o.Casts != nil {
		hc.Casts = *o.Casts
	}
	if o.InvincibleSteps != nil {
		hc.InvincibleSteps = *o.InvincibleSteps
	}
	if o.DisarmChance != nil {
		hc.DisarmChance = *o.DisarmChance
	}
	if o.ShardCost != nil {
		hc.ShardCost = *o.ShardCost
	}
	if o.SenseRange != nil {
		hc.SenseRange = *o.SenseRange
	}
	return hc
}
