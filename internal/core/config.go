package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
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

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Correct answers this session
	Level    int  // Current level (or multiplication table)
	Streak   int  // Correct answers in a row
	Started  bool // Whether a session is running (false on a start screen)
	GameOver bool // Whether the session reached its celebration screen
	Paused   bool // Whether the game is paused
}

// AnswerRecord describes one submitted answer, reported to the platform
// so it can keep a history of the visit.
type AnswerRecord struct {
	Level    int
	PromptID string
	Answer   string
	Correct  bool
	Streak   int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState

	// Cues are narration and sound requests raised during this tick,
	// in the order they were raised.
	Cues []Cue

	// Answers are the answers submitted during this tick.
	Answers []AnswerRecord
}
