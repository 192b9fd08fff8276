// Package round implements the turn-based round and level state machine
// shared by the learning games. A game supplies a Source (prompts,
// answer checking, narration lines); the Engine owns the session, the
// pacing timers and the state transitions.
package round

// State is the engine's position in a round.
type State int

const (
	StateIdle          State = iota // not started, or reset
	StateCueing                     // prompt announced, sound cue pending; answers ignored
	StateAwaitingInput              // the only state in which answers are accepted
	StateResolved                   // answer evaluated, feedback showing
	StateAdvancing                  // waiting for the next round to open
	StateTerminal                   // session complete; blocks answers until reset
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCueing:
		return "cueing"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateResolved:
		return "resolved"
	case StateAdvancing:
		return "advancing"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Feedback is the outcome shown while a round is resolved.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

// String returns a human-readable name for the feedback.
func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	default:
		return "none"
	}
}

// Event names a moment the engine narrates.
type Event int

const (
	EventIntro        Event = iota // session started
	EventAsk                       // round opened, prompt should be read out
	EventCorrect                   // correct answer
	EventIncorrect                 // wrong answer
	EventLevelUp                   // level increased
	EventComplete                  // terminal reached
	EventInstructions              // player asked for instructions
	EventGreeting                  // start screen welcome
	EventVoiceOn                   // narration switched back on
	EventRestart                   // session reset by the player
)
