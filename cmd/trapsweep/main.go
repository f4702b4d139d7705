// trapsweep is a trap-grid puzzle for the terminal, played with a cursor or
// by walking a hero across the board.
//
// Usage:
//
//	trapsweep list               - List game modes
//	trapsweep play [mode]        - Play a mode (default: trapsweep)
//	trapsweep menu               - Pick mode, difficulty and hero interactively
//	trapsweep serve              - Start SSH server for remote play
//	trapsweep scores [mode]      - Show high scores
//	trapsweep rounds [mode]      - Show recent rounds
//	trapsweep heroes             - Show heroes and their records
//	trapsweep config init        - Write the default config file
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep"
	"github.com/vovakirdan/trapsweep/internal/profile"
	"github.com/vovakirdan/trapsweep/internal/storage"
)

const defaultDBPath = "~/.arcade/scores.db"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trapsweep",
	Short: "Trapsweep - clear trap fields in your terminal",
	Long: `Trapsweep is a terminal puzzle about uncovering a board without
setting off its traps. Numbers tell how many traps touch a cell.

Modes:
  trapsweep  - Classic: move a cursor and reveal cells
  trapcrawl  - Crawl: walk a hero across the board, every step reveals

Clearing a level takes you one level deeper, to a denser board.

Examples:
  trapsweep play
  trapsweep play trapcrawl --hero mystic
  trapsweep menu
  trapsweep serve --ssh :2222
  trapsweep rounds trapcrawl`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(heroesCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger from --log-level and --log-file. Full screen
// commands pass interactive so that logs never draw over the game; they
// only log when a file is given.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "trapsweep",
		Level:           level,
	})
	return logger, closeFn, nil
}

// mustLogger is newLogger for Run functions.
func mustLogger(interactive bool) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	trapsweep.SetLogger(logger)
	return logger, closeFn
}

// openStore opens the scores database, or returns nil so that play goes on
// without records.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("Playing without records", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// openProfile loads the player profile. It falls back to memory when the
// data directory is unavailable.
func openProfile(logger *log.Logger) *profile.Manager {
	p, err := profile.Open(profile.AppName, logger)
	if err != nil {
		logger.Warn("Profile is not saved this session", "err", err)
	}
	return p
}
