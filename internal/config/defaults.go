package config

import (
	_ "embed"
)

//go:embed defaults/trapsweep.yaml
var defaultTrapsweepYAML []byte

// DefaultTrapsweepConfig returns the built-in configuration used when no
// YAML source can be read.
func DefaultTrapsweepConfig() TrapsweepConfig {
	normal := BoardConfig{Width: 16, Height: 12, TrapDensity: 0.15, Pillars: 4}
	return TrapsweepConfig{
		Board: normal,
		Difficulty: DifficultyConfig{
			Default: DifficultyNormal,
			Presets: map[DifficultyPreset]BoardConfig{
				DifficultyEasy:   {Width: 10, Height: 8, TrapDensity: 0.10, Pillars: 2},
				DifficultyNormal: normal,
				DifficultyHard:   {Width: 24, Height: 16, TrapDensity: 0.18, Pillars: 6},
				DifficultyExpert: {Width: 30, Height: 16, TrapDensity: 0.21, Pillars: 8},
			},
		},
		Progression: ProgressionConfig{
			Enabled:     true,
			DensityStep: 0.01,
			MaxDensity:  0.30,
			GrowEvery:   2,
			GrowBy:      2,
			MaxWidth:    40,
			MaxHeight:   24,
		},
		Flood: FloodConfig{
			Animate:      true,
			StepsPerTick: 6,
		},
		Shards: ShardConfig{
			Enabled: true,
			Chance:  0.5,
		},
		Shrine: ShrineConfig{
			Enabled: true,
			Orbs:    3,
		},
		Scoring: ScoringConfig{
			PerCell:    10,
			PerTrapWin: 25,
		},
		Heroes: map[string]HeroOverride{},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTrapsweepYAML
}
