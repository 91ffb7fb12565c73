package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns a RuntimeConfig sized for a classic terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0,
	}
}

// GameState is what a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Current score
	Moves    int  // Committed moves
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Busy     bool // Board is settling; clicks are being dropped
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
