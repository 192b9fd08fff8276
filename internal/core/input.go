package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionLeft                // Left arrow - guess left (Safari) or move focus
	ActionRight               // Right arrow - guess right (Safari) or move focus
	ActionUp                  // Up arrow - move focus up a row
	ActionDown                // Down arrow - move focus down a row
	ActionConfirm             // Enter, Space - start, submit focused choice, repeat/replay
	ActionRepeat              // Space - hear the prompt (or sound) again
	ActionInstructions        // I - hear the instructions
	ActionToggleVoice         // V - turn narration on or off
	ActionRestart             // R - restart the game
	ActionBack                // B, Escape - go back to menu
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionPause               // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionRepeat:
		return "Repeat"
	case ActionInstructions:
		return "Instructions"
	case ActionToggleVoice:
		return "ToggleVoice"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the player's input during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Choice is a 1-based index into the displayed choices (digit keys).
	// Zero means no choice key was pressed.
	Choice int

	// Answer is an answer picked directly, e.g. by clicking its box.
	Answer string
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether nothing was pressed or clicked this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Choice == 0 && f.Answer == ""
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Choice = 0
	f.Answer = ""
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Choice = f.Choice
	clone.Answer = f.Answer
	return clone
}
