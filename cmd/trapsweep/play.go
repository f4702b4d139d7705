package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/trapsweep/internal/config"
	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
	"github.com/vovakirdan/trapsweep/internal/platform/tui"
	"github.com/vovakirdan/trapsweep/internal/profile"
	"github.com/vovakirdan/trapsweep/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagHero       string
	flagWidth      int
	flagHeight     int
	flagLayout     string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing. The mode defaults to classic trapsweep.

Controls (classic):
  Arrows/WASD/hjkl - Move cursor
  Space/Enter      - Reveal
  F                - Flag
  ?                - Hint

Controls (crawl):
  WASD             - Walk, every step reveals
  Arrows/hjkl      - Aim
  F                - Flag aimed cell
  C                - Cast the hero's spell at the aim
  E, then Space    - Use an adjacent shrine

Always:
  P                - Pause
  Enter/R          - Next level after a round
  R                - New run
  Esc              - Leave a finished or paused game
  Q/Ctrl+C         - Quit

Difficulty options:
  easy, normal, hard, expert - Starting board, grows as you descend
  fixed                      - Configured board, no progression

Heroes (crawl): blank, sage, violet, gale, goblin, mystic

Examples:
  trapsweep play
  trapsweep play --difficulty hard
  trapsweep play trapcrawl --hero gale
  trapsweep play --width 30 --height 20 --difficulty fixed
  trapsweep play --layout ./maps/cross.txt`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, expert, fixed")
	playCmd.Flags().StringVar(&flagHero, "hero", "", "Hero for crawl mode")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width (overrides the preset)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height (overrides the preset)")
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Play a hand-made map: one row per line, '*' trap, '#' pillar, 'S' shrine")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := string(trapsweep.ModeClassic)
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'trapsweep list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := mustLogger(true)
	defer closeLog()

	prof := openProfile(logger)
	choice, err := resolveChoice(cmd, prof.Get())
	if err == nil {
		err = applyBoardFlags()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	trapsweep.SetHero(choice.Hero)
	trapsweep.SetDifficultyPreset(string(choice.Difficulty))

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	_, runErr := tui.Run(game, store, runtimeConfig(), tui.WithProfile(prof), tui.WithLogger(logger))

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// resolveChoice takes hero and difficulty from the flags when given and
// from the saved profile otherwise.
func resolveChoice(cmd *cobra.Command, p profile.Profile) (trapsweep.Choice, error) {
	var c trapsweep.Choice

	heroName := p.Hero
	if cmd.Flags().Changed("hero") {
		heroName = flagHero
	}
	k, err := hero.ParseKind(heroName)
	if err != nil {
		if cmd.Flags().Changed("hero") {
			return c, err
		}
		k = hero.KindBlank
	}
	c.Hero = k

	preset := p.Difficulty
	if cmd.Flags().Changed("difficulty") {
		preset = flagDifficulty
	}
	d, err := config.ParsePreset(preset)
	if err != nil && cmd.Flags().Changed("difficulty") {
		return c, err
	}
	c.Difficulty = d
	return c, nil
}

// applyBoardFlags hands --config, --width, --height and --layout to the
// game package.
func applyBoardFlags() error {
	trapsweep.SetConfigPath(flagConfig)
	trapsweep.SetBoardSize(flagWidth, flagHeight)

	if flagLayout == "" {
		trapsweep.SetLayout()
		return nil
	}
	rows, err := readLayout(flagLayout)
	if err != nil {
		return err
	}
	trapsweep.SetLayout(rows...)
	return nil
}

// readLayout loads a map file. Blank lines and lines starting with ';'
// are skipped.
func readLayout(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";") {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read layout: %s has no rows", path)
	}
	return rows, nil
}
