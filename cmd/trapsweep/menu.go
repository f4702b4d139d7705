package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/trapsweep/internal/config"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
	"github.com/vovakirdan/trapsweep/internal/platform/tui"
	"github.com/vovakirdan/trapsweep/internal/profile"
	"github.com/vovakirdan/trapsweep/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode, difficulty and hero from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, then pick the
difficulty (and a hero for crawl mode) with left/right. After a game you
return to the menu with Esc; Q quits. Your last picks are remembered.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change option
  Enter/Space     - Select
  Tab             - Scoreboard
  Q               - Quit

Examples:
  trapsweep menu
  trapsweep menu --fps 60
  trapsweep menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width (overrides the preset)")
	menuCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height (overrides the preset)")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(true)
	defer closeLog()

	if err := applyBoardFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := config.LoadTrapsweep(flagConfig)
	if err != nil {
		logger.Warn("Using default game config", "err", err)
	}
	presets := tui.PresetChoices(gameCfg)

	store := openStore(logger)
	prof := openProfile(logger)
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		choice, err := tui.RunSetupSelector(gameID, presets, savedChoice(prof.Get()), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if choice == nil {
			continue // back to menu
		}
		rememberChoice(prof, gameID, *choice, logger)

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if ts, ok := game.(*trapsweep.Game); ok {
			ts.Choose(*choice)
		}

		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		quit, err := tui.Run(game, store, cfg, tui.WithProfile(prof), tui.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if quit {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}

func savedChoice(p profile.Profile) trapsweep.Choice {
	var c trapsweep.Choice
	if k, err := hero.ParseKind(p.Hero); err == nil {
		c.Hero = k
	}
	if d, err := config.ParsePreset(p.Difficulty); err == nil {
		c.Difficulty = d
	}
	return c
}

func rememberChoice(prof *profile.Manager, gameID string, c trapsweep.Choice, logger *log.Logger) {
	err := prof.Update(func(p *profile.Profile) {
		p.Mode = gameID
		p.Difficulty = string(c.Difficulty)
		if gameID == string(trapsweep.ModeCrawl) {
			p.Hero = c.Hero.String()
		}
	})
	if err != nil {
		logger.Warn("Failed to save profile", "err", err)
	}
}
