package round

import "github.com/vovakirdan/learning-arcade/internal/core"

// Prompt is the stimulus of one round. It is immutable once generated.
type Prompt struct {
	ID      string     // stable identifier, e.g. "7x4" or "scenario-3"
	Target  string     // the answer Check compares against
	Text    string     // what is shown on screen
	Subject string     // what the narrator talks about (color name, animal...)
	Choices []string   // candidate answers in display order; nil for directional games
	Tone    *core.Tone // sound cue, if any
}

// HasChoice reports whether answer is one of the displayed choices.
func (p Prompt) HasChoice(answer string) bool {
	for _, c := range p.Choices {
		if c == answer {
			return true
		}
	}
	return false
}

// Round is one prompt-and-answer cycle. It is created when a round opens,
// mutated once on submission and discarded when the engine moves on.
type Round struct {
	Prompt   Prompt
	Answer   string
	Resolved bool
	Correct  *bool
}

// Session is the run of a game from start to terminal state.
type Session struct {
	Level      int // current level, or the multiplication table
	Tier       string
	Score      int // correct answers; never decreases
	Streak     int // correct answers in a row
	BestStreak int
	Misses     int // wrong answers
	RoundIndex int // prompts opened so far; retries do not count
	Cursor     int // next position in a sequential pool; reset on level change
	Order      []int
	Drawn      []string // prompt IDs already used this session
	Terminal   bool
}

func newSession(level int, tier string) Session {
	if level < 1 {
		level = 1
	}
	return Session{Level: level, Tier: tier}
}

// WasDrawn reports whether a prompt ID was already used this session.
func (s *Session) WasDrawn(id string) bool {
	for _, d := range s.Drawn {
		if d == id {
			return true
		}
	}
	return false
}

// Accuracy returns the share of answers that were correct, 0..1.
func (s Session) Accuracy() float64 {
	total := s.Score + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Score) / float64(total)
}
