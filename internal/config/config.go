// Package config provides YAML-based game configuration, difficulty
// presets and depth progression, plus environment configuration for the
// SSH server.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid")

// TrapsweepConfig contains all configuration for the trapsweep games.
type TrapsweepConfig struct {
	Board       BoardConfig             `yaml:"board"`
	Difficulty  DifficultyConfig        `yaml:"difficulty"`
	Progression ProgressionConfig       `yaml:"progression"`
	Flood       FloodConfig             `yaml:"flood"`
	Shards      ShardConfig             `yaml:"shards"`
	Shrine      ShrineConfig            `yaml:"shrine"`
	Scoring     ScoringConfig           `yaml:"scoring"`
	Heroes      map[string]HeroOverride `yaml:"heroes"`
}

// BoardConfig describes the size and danger of a board.
type BoardConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	TrapDensity float64 `yaml:"trap_density"` // share of cells holding traps
	Pillars     int     `yaml:"pillars"`      // impassable cells in crawl mode
}

// TrapCount converts the density into a trap count for the board.
func (b BoardConfig) TrapCount(bonus float64) int {
	return TrapCount(b.Width, b.Height, b.TrapDensity+bonus)
}

// DifficultyConfig holds the named board presets. Default is the preset
// menus start on.
type DifficultyConfig struct {
	Default DifficultyPreset                 `yaml:"default"`
	Presets map[DifficultyPreset]BoardConfig `yaml:"presets"`
}

// ProgressionConfig defines how boards grow after each cleared level.
type ProgressionConfig struct {
	Enabled     bool    `yaml:"enabled"`
	DensityStep float64 `yaml:"density_step"` // density added per depth
	MaxDensity  float64 `yaml:"max_density"`
	GrowEvery   int     `yaml:"grow_every"` // depths between size increases
	GrowBy      int     `yaml:"grow_by"`    // cells added to width and height
	MaxWidth    int     `yaml:"max_width"`
	MaxHeight   int     `yaml:"max_height"`
}

// FloodConfig controls the reveal animation.
type FloodConfig struct {
	Animate      bool `yaml:"animate"`
	StepsPerTick int  `yaml:"steps_per_tick"`
}

// ShardConfig controls shard spawning in crawl mode.
type ShardConfig struct {
	Enabled bool    `yaml:"enabled"`
	Chance  float64 `yaml:"chance"` // per successful step
}

// ShrineConfig controls the shrine in crawl mode.
type ShrineConfig struct {
	Enabled bool `yaml:"enabled"`
	Orbs    int  `yaml:"orbs"`
}

// ScoringConfig defines points awarded per round.
type ScoringConfig struct {
	PerCell    int `yaml:"per_cell"`
	PerTrapWin int `yaml:"per_trap_win"`
}

// HeroOverride replaces individual hero stats. Nil fields keep the
// hero's built-in value.
type HeroOverride struct {
	LightRadius     *int     `yaml:"light_radius,omitempty"`
	DensityBonus    *float64 `yaml:"density_bonus,omitempty"`
	Casts           *int     `yaml:"casts,omitempty"`
	InvincibleSteps *int     `yaml:"invincible_steps,omitempty"`
	DisarmChance    *float64 `yaml:"disarm_chance,omitempty"`
	ShardCost       *int     `yaml:"shard_cost,omitempty"`
	SenseRange      *int     `yaml:"sense_range,omitempty"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
	// DifficultyFixed keeps the configured board and disables progression.
	DifficultyFixed DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. The empty string keeps the
// configured board.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
	}
}

// PresetNames returns the configured preset names in a stable order:
// by density, then by name.
func (c TrapsweepConfig) PresetNames() []DifficultyPreset {
	names := make([]DifficultyPreset, 0, len(c.Difficulty.Presets))
	for name := range c.Difficulty.Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := c.Difficulty.Presets[names[i]], c.Difficulty.Presets[names[j]]
		if a.TrapDensity != b.TrapDensity {
			return a.TrapDensity < b.TrapDensity
		}
		return names[i] < names[j]
	})
	return names
}

// TrapCount returns round(w*h*density) clamped to [0, w*h].
func TrapCount(w, h int, density float64) int {
	cells := w * h
	if cells <= 0 {
		return 0
	}
	n := int(math.Round(float64(cells) * density))
	return max(0, min(n, cells))
}

// Validate reports the first unusable setting.
func (c TrapsweepConfig) Validate() error {
	if err := c.Board.validate("board"); err != nil {
		return err
	}
	for name, preset := range c.Difficulty.Presets {
		if err := preset.validate("difficulty.presets." + string(name)); err != nil {
			return err
		}
	}
	if c.Flood.StepsPerTick < 0 {
		return fmt.Errorf("%w: flood.steps_per_tick must not be negative", ErrInvalidConfig)
	}
	if c.Shards.Chance < 0 || c.Shards.Chance > 1 {
		return fmt.Errorf("%w: shards.chance %v outside [0, 1]", ErrInvalidConfig, c.Shards.Chance)
	}
	if c.Shrine.Orbs < 0 {
		return fmt.Errorf("%w: shrine.orbs must not be negative", ErrInvalidConfig)
	}
	if c.Progression.Enabled && c.Progression.MaxDensity > 1 {
		return fmt.Errorf("%w: progression.max_density %v above 1", ErrInvalidConfig, c.Progression.MaxDensity)
	}
	return nil
}

func (b BoardConfig) validate(field string) error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %s size %dx%d", ErrInvalidConfig, field, b.Width, b.Height)
	}
	if b.TrapDensity < 0 || b.TrapDensity > 1 {
		return fmt.Errorf("%w: %s.trap_density %v outside [0, 1]", ErrInvalidConfig, field, b.TrapDensity)
	}
	if b.Pillars < 0 {
		return fmt.Errorf("%w: %s.pillars must not be negative", ErrInvalidConfig, field)
	}
	return nil
}
