package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trapsweep/internal/games/trapsweep"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
	"github.com/vovakirdan/trapsweep/internal/registry"
	"github.com/vovakirdan/trapsweep/internal/storage"
)

var (
	flagLimit    int
	flagClear    bool
	flagAllModes bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top round scores for a mode (default: trapsweep).

Examples:
  trapsweep scores
  trapsweep scores trapcrawl --limit 20
  trapsweep scores --all
  trapsweep scores trapcrawl --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var roundsCmd = &cobra.Command{
	Use:   "rounds [mode]",
	Short: "Show recent rounds",
	Long: `Display the most recent finished rounds for a mode, newest first.

Examples:
  trapsweep rounds
  trapsweep rounds trapcrawl --limit 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRounds,
}

var heroesCmd = &cobra.Command{
	Use:   "heroes",
	Short: "Show heroes and their crawl records",
	Run:   runHeroes,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and rounds of the mode")
	scoresCmd.Flags().BoolVar(&flagAllModes, "all", false, "Summarize every mode")
	roundsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
}

// modeArg resolves the optional mode argument and exits on unknown ones.
func modeArg(args []string) registry.GameInfo {
	id := string(trapsweep.ModeClassic)
	if len(args) > 0 {
		id = args[0]
	}
	info, ok := registry.Info(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'trapsweep list' to see available modes.")
		os.Exit(1)
	}
	return info
}

// mustStore opens the database for read commands, which are useless
// without it.
func mustStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runScores(_ *cobra.Command, args []string) {
	if flagAllModes {
		runScoresSummary()
		return
	}

	info := modeArg(args)
	store := mustStore()
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(info.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores and rounds of %s.\n", info.Title)
		return
	}

	scores, err := store.TopScores(info.ID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'trapsweep play %s' to set the first high score!\n", info.ID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(info.ID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Scored rounds: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

// runScoresSummary prints one line per registered mode.
func runScoresSummary() {
	store := mustStore()
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	fmt.Printf("  %-10s  %8s  %8s  %8s  %s\n", "Mode", "Best", "Rounds", "Average", "Last played")
	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok {
			fmt.Printf("  %-10s  %8s  %8s  %8s  %s\n", info.ID, "-", "0", "-", "never")
			continue
		}
		fmt.Printf("  %-10s  %8d  %8d  %8.0f  %s\n",
			info.ID, st.HighScore, st.GamesCount, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func runRounds(_ *cobra.Command, args []string) {
	info := modeArg(args)
	store := mustStore()
	defer store.Close()

	rounds, err := store.RecentRounds(info.ID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return
	}

	fmt.Printf("Recent Rounds - %s\n", info.Title)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-10s  %5s  %-6s  %6s  %6s  %s\n",
		"Date", "Hero", "Board", "Depth", "Result", "Cells", "Score", "Time")
	for _, r := range rounds {
		s := r.Summary
		h := s.Hero
		if h == "" {
			h = "-"
		}
		fmt.Printf("  %-16s  %-8s  %-10s  %5d  %-6s  %6d  %6d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			h,
			fmt.Sprintf("%dx%d/%d", s.Width, s.Height, s.Traps),
			s.Depth+1,
			s.Outcome,
			s.Revealed,
			s.Score,
			s.Duration.Round(time.Second),
		)
	}
}

func runHeroes(_ *cobra.Command, _ []string) {
	byHero := map[string]storage.HeroStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, statsErr := store.HeroStatsFor(string(trapsweep.ModeCrawl))
		if statsErr == nil {
			for _, s := range stats {
				byHero[s.Hero] = s
			}
		}
		store.Close()
	}

	fmt.Println("Heroes (crawl mode)")
	fmt.Println()
	for _, k := range hero.Kinds() {
		p := k.Profile()
		fmt.Printf("  %-8s  %s\n", p.ID, p.Name)
		fmt.Printf("  %-8s  %s\n", "", p.Blurb)
		if p.Spell != hero.SpellNone {
			casts := "unlimited"
			if c := hero.DefaultConfig(k).Casts; c >= 0 {
				casts = fmt.Sprintf("%d per level", c)
			}
			fmt.Printf("  %-8s  Spell: %s (%s)\n", "", p.Spell, casts)
		}
		if s, ok := byHero[p.ID]; ok && s.Rounds > 0 {
			fmt.Printf("  %-8s  Rounds: %d  Wins: %d (%.0f%%)  Deepest: %d  Best: %d\n",
				"", s.Rounds, s.Wins, s.WinRate()*100, s.BestDepth+1, s.BestScore)
		}
		fmt.Println()
	}
}
