package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/trapsweep/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.arcade/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".arcade", "scores.db"); got != want {
		t.Errorf("ExpandPath() = %q, expected %q", got, want)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("trapsweep", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("trapcrawl", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("trapsweep", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}

	crawl, err := store.TopScores("trapcrawl", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(crawl) != 1 {
		t.Errorf("Expected 1 trapcrawl score, got %d", len(crawl))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("trapsweep")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("trapsweep", 100)
	store.SaveScore("trapsweep", 300)
	store.SaveScore("trapsweep", 200)

	high, err = store.HighScore("trapsweep")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("trapsweep", 100)
	store.SaveRound("trapsweep", core.RoundSummary{Hero: "sage", Outcome: "won"})
	store.SaveScore("trapcrawl", 300)

	if err := store.ClearScores("trapsweep"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("trapsweep", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if rounds, _ := store.RecentRounds("trapsweep", 10); len(rounds) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(rounds))
	}
	if scores, _ := store.TopScores("trapcrawl", 10); len(scores) != 1 {
		t.Error("trapcrawl scores should not be affected by clearing trapsweep")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("trapsweep", 100)
	store.SaveScore("trapsweep", 300)
	store.SaveScore("trapcrawl", 40)

	stats, err := store.GetGameStats("trapsweep")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["trapcrawl"].HighScore != 40 {
		t.Errorf("all stats = %v", all)
	}
}

func TestRoundsHistory(t *testing.T) {
	store := openTestStore(t)

	first := core.RoundSummary{
		Mode:      "trapsweep",
		Hero:      "sage",
		Width:     9,
		Height:    9,
		Traps:     10,
		Depth:     0,
		Outcome:   "won",
		Revealed:  71,
		FlagsUsed: 10,
		Duration:  95 * time.Second,
		Score:     960,
	}
	second := first
	second.Depth = 1
	second.Outcome = "lost"
	second.Score = 120

	if _, err := store.SaveRound("trapsweep", first); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := store.SaveRound("trapsweep", second); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	store.SaveRound("trapcrawl", first)

	rounds, err := store.RecentRounds("trapsweep", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("Expected 2 rounds, got %d", len(rounds))
	}
	if rounds[0].Summary.Outcome != "lost" {
		t.Errorf("newest round should come first, got %+v", rounds[0].Summary)
	}
	if rounds[1].Summary != first {
		t.Errorf("round did not round-trip:\n got %+v\nwant %+v", rounds[1].Summary, first)
	}

	limited, _ := store.RecentRounds("trapsweep", 1)
	if len(limited) != 1 {
		t.Errorf("limit ignored, got %d rounds", len(limited))
	}
}

func TestHeroStats(t *testing.T) {
	store := openTestStore(t)

	rounds := []core.RoundSummary{
		{Hero: "gale", Outcome: "won", Depth: 0, Score: 300},
		{Hero: "gale", Outcome: "won", Depth: 1, Score: 500},
		{Hero: "gale", Outcome: "lost", Depth: 2, Score: 80},
		{Hero: "sage", Outcome: "lost", Depth: 0, Score: 10},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound("trapsweep", r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err := store.HeroStatsFor("trapsweep")
	if err != nil {
		t.Fatalf("HeroStatsFor() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 heroes, got %d", len(stats))
	}

	gale := stats[0]
	if gale.Hero != "gale" || gale.Rounds != 3 || gale.Wins != 2 || gale.BestDepth != 2 || gale.BestScore != 500 {
		t.Errorf("gale stats = %+v", gale)
	}
	if rate := gale.WinRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("gale win rate = %v", rate)
	}
	if stats[1].Wins != 0 || stats[1].WinRate() != 0 {
		t.Errorf("sage stats = %+v", stats[1])
	}
}
