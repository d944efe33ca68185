package core

// RuntimeConfig is handed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80x24 config ticking 30 times a second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	Turn     int
	GameOver bool
	Paused   bool
	Reason   string // Why the game ended, empty while running
}

// StepResult is returned by Game.Step after each platform tick.
type StepResult struct {
	State GameState

	// Advanced is true when the tick completed a game turn.
	Advanced bool
}
