package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/trapsweep/internal/core"
)

// RoundEntry is one finished round in the history table.
type RoundEntry struct {
	ID        int64
	GameID    string
	Summary   core.RoundSummary
	CreatedAt time.Time
}

// HeroStats aggregates rounds played with one hero.
type HeroStats struct {
	Hero      string
	Rounds    int
	Wins      int
	BestDepth int
	BestScore int
}

// WinRate returns wins as a share of rounds.
func (h HeroStats) WinRate() float64 {
	if h.Rounds == 0 {
		return 0
	}
	return float64(h.Wins) / float64(h.Rounds)
}

// SaveRound records a finished round for gameID.
func (s *Store) SaveRound(gameID string, r core.RoundSummary) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO rounds
		 (game_id, hero, width, height, traps, depth, outcome, revealed, flags_used, duration_ms, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID,
		r.Hero,
		r.Width,
		r.Height,
		r.Traps,
		r.Depth,
		r.Outcome,
		r.Revealed,
		r.FlagsUsed,
		r.Duration.Milliseconds(),
		r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRounds returns the newest rounds for gameID, newest first.
func (s *Store) RecentRounds(gameID string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, hero, width, height, traps, depth, outcome,
		        revealed, flags_used, duration_ms, score, created_at
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.GameID,
			&e.Summary.Hero,
			&e.Summary.Width,
			&e.Summary.Height,
			&e.Summary.Traps,
			&e.Summary.Depth,
			&e.Summary.Outcome,
			&e.Summary.Revealed,
			&e.Summary.FlagsUsed,
			&durationMs,
			&e.Summary.Score,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Summary.Mode = e.GameID
		e.Summary.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HeroStatsFor aggregates rounds of gameID per hero, ordered by hero.
func (s *Store) HeroStatsFor(gameID string) ([]HeroStats, error) {
	rows, err := s.db.Query(
		`SELECT hero, COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(depth), 0), COALESCE(MAX(score), 0)
		 FROM rounds
		 WHERE game_id = ?
		 GROUP BY hero
		 ORDER BY hero`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query hero stats: %w", err)
	}
	defer rows.Close()

	var stats []HeroStats
	for rows.Next() {
		var h HeroStats
		if err := rows.Scan(&h.Hero, &h.Rounds, &h.Wins, &h.BestDepth, &h.BestScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
