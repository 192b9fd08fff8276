package round

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/learning-arcade/internal/config"
	"github.com/vovakirdan/learning-arcade/internal/core"
)

// Rules configure the engine for one game.
type Rules struct {
	Progression config.Progression
	Questions   int  // prompts per session; 0 means open-ended
	RetryOnMiss bool // reopen the same prompt after a wrong answer
	AutoStart   bool // start as soon as the game is shown, no start screen
	Directional bool // answers are "left"/"right" rather than displayed choices
	UsesAudio   bool // prompts carry a sound cue
	Timing      config.Timing
	Voice       core.Voice
}

// Line is a narration line. A zero Rate keeps the game's voice rate.
type Line struct {
	Text string
	Rate float64
}

// Say builds a Line at the default rate.
func Say(text string) Line {
	return Line{Text: text}
}

// Source is the game-specific half of a round: what to ask, how to judge
// an answer and what the narrator says.
type Source interface {
	Rules() Rules
	// Begin prepares per-session pools, e.g. a shuffled scenario order.
	Begin(s *Session, rng *rand.Rand)
	// Next produces the prompt for a new round and advances pool cursors.
	Next(s *Session, rng *rand.Rand) Prompt
	// Check reports whether answer is correct for p.
	Check(p Prompt, answer string) bool
	// Narrate returns the line for ev; an empty Text stays silent.
	Narrate(ev Event, s Session, p Prompt) Line
}

// StartConfig selects where a session begins.
type StartConfig struct {
	Level int    // starting level, or the multiplication table
	Tier  string // difficulty preset name, informational
}

// Snapshot is a read-only view of the engine for rendering.
type Snapshot struct {
	State    State
	Feedback Feedback
	Session  Session
	Round    *Round
	Voice    bool
	Elapsed  time.Duration
}

// Engine drives one game's rounds. It is not safe for concurrent use:
// Start, Submit, Advance and the side actions are all called from the
// update loop.
type Engine struct {
	src   Source
	rules Rules
	rng   *rand.Rand

	timers   Timers
	state    State
	feedback Feedback
	session  Session
	round    *Round
	voiceOn  bool

	askTimer   TimerID
	greetTimer TimerID

	cues    []core.Cue
	answers []core.AnswerRecord
}

// NewEngine creates an idle engine for src.
func NewEngine(src Source, seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		src:     src,
		rules:   src.Rules(),
		rng:     rand.New(rand.NewSource(seed)),
		voiceOn: true,
	}
	e.session = newSession(1, "")
	return e
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Start begins a session. It is a no-op unless the engine is idle.
func (e *Engine) Start(cfg StartConfig) bool {
	if e.state != StateIdle {
		return false
	}
	e.timers.Cancel(e.greetTimer)

	level := cfg.Level
	if e.rules.Progression.Enabled() {
		level = e.rules.Progression.ClampLevel(level)
	}
	e.session = newSession(level, cfg.Tier)
	e.src.Begin(&e.session, e.rng)
	e.feedback = FeedbackNone
	e.round = nil

	if e.rules.UsesAudio {
		e.cues = append(e.cues, core.Cue{Kind: core.CueAudioInit})
	}
	e.after(e.rules.Timing.Intro, func() { e.say(EventIntro) })

	e.state = StateAdvancing
	e.after(e.rules.Timing.FirstRound, e.openRound)
	return true
}

// Submit evaluates an answer. Answers outside StateAwaitingInput are
// ignored, as are answers to a terminal session.
func (e *Engine) Submit(answer string) bool {
	if e.state != StateAwaitingInput || e.round == nil {
		return false
	}
	e.timers.Cancel(e.askTimer)

	correct := e.src.Check(e.round.Prompt, answer)
	e.round.Answer = answer
	e.round.Resolved = true
	e.round.Correct = &correct
	e.state = StateResolved

	if !correct {
		e.session.Streak = 0
		e.session.Misses++
		e.feedback = FeedbackIncorrect
		e.record(answer, false)
		e.say(EventIncorrect)
		e.after(e.rules.Timing.Incorrect, e.afterMiss)
		return true
	}

	e.session.Score++
	e.session.Streak++
	if e.session.Streak > e.session.BestStreak {
		e.session.BestStreak = e.session.Streak
	}
	e.feedback = FeedbackCorrect
	e.record(answer, true)
	e.say(EventCorrect)

	if !e.rules.Progression.ShouldAdvance(e.session.Score, e.session.Level) {
		e.after(e.rules.Timing.Correct, e.advance)
		return true
	}

	e.session.Level++
	e.session.Cursor = 0
	e.after(e.rules.Timing.LevelUpAnnounce, func() { e.say(EventLevelUp) })
	e.after(e.rules.Timing.Correct, func() {
		if e.rules.Timing.LevelUpPause <= 0 {
			e.advance()
			return
		}
		e.state = StateAdvancing
		e.feedback = FeedbackNone
		e.after(e.rules.Timing.LevelUpPause, e.advance)
	})
	return true
}

// Advance moves the engine's clock forward, firing due transitions.
func (e *Engine) Advance(dt time.Duration) {
	e.timers.Advance(dt)
}

// Reset cancels every pending transition and narration and returns the
// session to its initial values. It reports whether the engine was doing
// anything.
func (e *Engine) Reset() bool {
	wasIdle := e.state == StateIdle
	e.timers.CancelAll()
	e.cues = append(e.cues, core.Cue{Kind: core.CueSilence})
	e.session = newSession(1, "")
	e.round = nil
	e.feedback = FeedbackNone
	e.state = StateIdle
	e.say(EventRestart)
	return !wasIdle
}

// Repeat re-narrates the current prompt.
func (e *Engine) Repeat() bool {
	if e.round == nil || e.state == StateTerminal || e.state == StateIdle {
		return false
	}
	e.say(EventAsk)
	return true
}

// Replay plays the current sound cue again.
func (e *Engine) Replay() bool {
	if e.round == nil || e.round.Prompt.Tone == nil {
		return false
	}
	if e.state != StateCueing && e.state != StateAwaitingInput {
		return false
	}
	e.cues = append(e.cues, core.PlayTone(*e.round.Prompt.Tone))
	return true
}

// Instructions narrates how to play.
func (e *Engine) Instructions() {
	e.cues = append(e.cues, core.Cue{Kind: core.CueSilence})
	e.say(EventInstructions)
}

// SetVoice turns narration on or off. Turning it off silences the narrator;
// turning it back on during a round reads the prompt again.
func (e *Engine) SetVoice(on bool) {
	if e.voiceOn == on {
		return
	}
	e.voiceOn = on
	if !on {
		e.cues = append(e.cues, core.Cue{Kind: core.CueSilence})
		return
	}
	e.say(EventVoiceOn)
	if e.round != nil && (e.state == StateAwaitingInput || e.state == StateCueing) {
		e.timers.Cancel(e.askTimer)
		e.askTimer = e.after(e.rules.Timing.Prompt, func() { e.say(EventAsk) })
	}
}

// Voice reports whether narration is on.
func (e *Engine) Voice() bool {
	return e.voiceOn
}

// Greet schedules the start screen welcome. Starting a session cancels it.
func (e *Engine) Greet() {
	if e.state != StateIdle {
		return
	}
	e.timers.Cancel(e.greetTimer)
	e.greetTimer = e.timers.After(e.rules.Timing.Greeting, func() {
		if e.state == StateIdle {
			e.say(EventGreeting)
		}
	})
}

// View returns a snapshot of the engine for rendering.
func (e *Engine) View() Snapshot {
	s := Snapshot{
		State:    e.state,
		Feedback: e.feedback,
		Session:  e.session,
		Voice:    e.voiceOn,
		Elapsed:  e.timers.Now(),
	}
	if e.round != nil {
		r := *e.round
		s.Round = &r
	}
	return s
}

// Pending returns the number of scheduled transitions.
func (e *Engine) Pending() int {
	return e.timers.Pending()
}

// Drain returns and clears the cues and answer records raised since the
// last call.
func (e *Engine) Drain() ([]core.Cue, []core.AnswerRecord) {
	cues, answers := e.cues, e.answers
	e.cues, e.answers = nil, nil
	return cues, answers
}

func (e *Engine) openRound() {
	p := e.src.Next(&e.session, e.rng)
	e.session.RoundIndex++
	if p.ID != "" {
		e.session.Drawn = append(e.session.Drawn, p.ID)
	}
	e.openPrompt(p)
}

// openPrompt shows p as a fresh round, either new or retried.
func (e *Engine) openPrompt(p Prompt) {
	e.round = &Round{Prompt: p}
	e.feedback = FeedbackNone

	if p.Tone != nil && e.rules.Timing.Cue > 0 {
		e.state = StateCueing
		e.askTimer = e.after(e.rules.Timing.Prompt, func() { e.say(EventAsk) })
		tone := *p.Tone
		e.after(e.rules.Timing.Cue, func() {
			e.cues = append(e.cues, core.PlayTone(tone))
			e.state = StateAwaitingInput
		})
		return
	}

	e.state = StateAwaitingInput
	if p.Tone != nil {
		e.cues = append(e.cues, core.PlayTone(*p.Tone))
	}
	e.askTimer = e.after(e.rules.Timing.Prompt, func() { e.say(EventAsk) })
}

func (e *Engine) afterMiss() {
	if e.rules.RetryOnMiss && e.round != nil {
		p := e.round.Prompt
		e.round = &Round{Prompt: p}
		e.feedback = FeedbackNone
		e.state = StateAwaitingInput
		return
	}
	e.advance()
}

// advance opens the next round or ends the session.
func (e *Engine) advance() {
	if e.rules.Questions > 0 && e.session.RoundIndex >= e.rules.Questions {
		e.state = StateTerminal
		e.session.Terminal = true
		e.feedback = FeedbackNone
		e.after(e.rules.Timing.Celebrate, func() { e.say(EventComplete) })
		return
	}
	e.openRound()
}

// after runs fn once d has elapsed, or right away when d is zero.
// The returned ID is zero when fn already ran.
func (e *Engine) after(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		fn()
		return 0
	}
	return e.timers.After(d, fn)
}

func (e *Engine) say(ev Event) {
	if !e.voiceOn && ev != EventVoiceOn {
		return
	}
	var p Prompt
	if e.round != nil {
		p = e.round.Prompt
	}
	line := e.src.Narrate(ev, e.session, p)
	if line.Text == "" {
		return
	}
	v := e.rules.Voice
	if line.Rate > 0 {
		v = v.WithRate(line.Rate)
	}
	e.cues = append(e.cues, core.Speak(line.Text, v))
}

func (e *Engine) record(answer string, correct bool) {
	e.answers = append(e.answers, core.AnswerRecord{
		Level:    e.session.Level,
		PromptID: e.round.Prompt.ID,
		Answer:   answer,
		Correct:  correct,
		Streak:   e.session.Streak,
	})
}
