package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	TickRate  int   // Simulation ticks per second (default 60)
	Seed      int64 // RNG seed for deterministic gameplay
	BestScore int   // Best recorded score for this game, shown in the HUD
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	RunID    string // Identifies the current run; changes on every new game
	Score    int
	MaxTile  int
	Moves    int
	Won      bool // Win reached and not yet acknowledged
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Changed bool // Board changed during this tick
}
