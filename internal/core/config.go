package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	// Round is set once the round has ended and describes how it went.
	Round *RoundSummary
}

// RoundSummary describes a finished round for the history table.
type RoundSummary struct {
	Mode      string
	Hero      string
	Width     int
	Height    int
	Traps     int
	Depth     int    // levels cleared before this round in the run
	Outcome   string // "won" or "lost"
	Revealed  int
	FlagsUsed int
	Duration  time.Duration
	Score     int
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
