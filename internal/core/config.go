package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
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

// GameState represents the current state of a run.
// Returned by Game.State() to communicate status to the platform,
// including the run stats the platform persists on game over.
type GameState struct {
	Score    int     // Current score (whole distance units)
	Distance float64 // Exact distance traveled in world units
	MaxSpeed float64 // Fastest speed reached this run
	AirTicks int     // Total ticks spent airborne
	Gap      float64 // Current distance between avalanche front and player
	Caught   bool    // Whether the avalanche caught the player
	GameOver bool    // Whether the run has ended
	Paused   bool    // Whether the run is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
