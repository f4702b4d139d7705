package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "trapsweep.yaml"

// LoadTrapsweep loads trapsweep configuration.
// Search order: customPath -> ~/.arcade/configs/trapsweep.yaml ->
// ./configs/trapsweep.yaml -> embedded default -> DefaultTrapsweepConfig.
// Files are decoded on top of the defaults, so they may set only the keys
// they care about. Only an unreadable or invalid customPath is an error;
// broken files elsewhere are skipped.
func LoadTrapsweep(customPath string) (TrapsweepConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTrapsweepConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultTrapsweepConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(ConfigFile),
		filepath.Join("configs", ConfigFile),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultTrapsweepYAML); err == nil {
		return cfg, nil
	}
	return DefaultTrapsweepConfig(), nil
}

func parse(data []byte) (TrapsweepConfig, error) {
	cfg := DefaultTrapsweepConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyTrapsweepPreset replaces the board with the named preset. The fixed
// preset keeps the configured board and turns progression off. An empty
// preset keeps the configured board.
func ApplyTrapsweepPreset(cfg *TrapsweepConfig, preset DifficultyPreset) error {
	if preset == "" {
		return nil
	}
	if preset == DifficultyFixed {
		cfg.Progression.Enabled = false
		return nil
	}
	board, ok := cfg.Difficulty.Presets[preset]
	if !ok {
		return fmt.Errorf("%w: no preset %q", ErrInvalidConfig, preset)
	}
	cfg.Board = board
	return nil
}

// WriteDefault writes the embedded default config to path, creating parent
// directories. Existing files are left alone unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, defaultTrapsweepYAML, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns ~/.arcade/configs/trapsweep.yaml, or empty when
// the home directory is unknown.
func UserConfigPath() string {
	return userConfigPath(ConfigFile)
}
