package round

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/learning-arcade/internal/config"
	"github.com/vovakirdan/learning-arcade/internal/core"
)

// countSource asks for increasing numbers; the answer is the number itself.
type countSource struct {
	rules Rules
	tone  bool
}

func (c *countSource) Rules() Rules { return c.rules }

func (c *countSource) Begin(s *Session, _ *rand.Rand) {}

func (c *countSource) Next(s *Session, _ *rand.Rand) Prompt {
	n := s.RoundIndex + 1
	p := Prompt{
		ID:      fmt.Sprintf("n%d", n),
		Target:  fmt.Sprint(n),
		Text:    fmt.Sprintf("say %d", n),
		Choices: []string{fmt.Sprint(n), "wrong"},
	}
	if c.tone {
		p.Tone = &core.Tone{Name: "beep", Frequency: 440, Duration: time.Second}
	}
	s.Cursor++
	return p
}

func (c *countSource) Check(p Prompt, answer string) bool { return answer == p.Target }

func (c *countSource) Narrate(ev Event, s Session, p Prompt) Line {
	switch ev {
	case EventIntro:
		return Say("intro")
	case EventAsk:
		return Say("ask " + p.Target)
	case EventCorrect:
		return Line{Text: "yes", Rate: 1.5}
	case EventIncorrect:
		return Say("no")
	case EventLevelUp:
		return Say(fmt.Sprintf("level %d", s.Level))
	case EventComplete:
		return Say(fmt.Sprintf("done %d", s.Score))
	case EventGreeting:
		return Say("hello")
	case EventRestart:
		return Say("restart")
	}
	return Line{}
}

func quickRules() Rules {
	return Rules{
		Progression: config.Progression{Every: 5, MaxLevel: 3},
		Timing: config.Timing{
			Correct:         2 * time.Second,
			Incorrect:       1500 * time.Millisecond,
			LevelUpAnnounce: 2 * time.Second,
			LevelUpPause:    2 * time.Second,
		},
		Voice: core.DefaultVoice(),
	}
}

func texts(cues []core.Cue) []string {
	var out []string
	for _, c := range cues {
		if c.Kind == core.CueSpeak {
			out = append(out, c.Text)
		}
	}
	return out
}

func answerCurrent(t *testing.T, e *Engine) {
	t.Helper()
	v := e.View()
	require.NotNil(t, v.Round)
	require.True(t, e.Submit(v.Round.Prompt.Target))
}

func TestStartOpensFirstRound(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	assert.Equal(t, StateIdle, e.State())

	require.True(t, e.Start(StartConfig{Level: 1}))
	assert.Equal(t, StateAwaitingInput, e.State())
	assert.False(t, e.Start(StartConfig{Level: 1}), "start while running must be a no-op")

	v := e.View()
	require.NotNil(t, v.Round)
	assert.Equal(t, "1", v.Round.Prompt.Target)
	assert.Equal(t, 1, v.Session.RoundIndex)

	cues, _ := e.Drain()
	assert.Equal(t, []string{"intro", "ask 1"}, texts(cues))
}

func TestFirstRoundDelay(t *testing.T) {
	rules := quickRules()
	rules.Timing.FirstRound = 3 * time.Second
	rules.Timing.Prompt = 500 * time.Millisecond
	e := NewEngine(&countSource{rules: rules}, 1)
	e.Start(StartConfig{})
	assert.Equal(t, StateAdvancing, e.State())
	assert.False(t, e.Submit("1"))

	e.Advance(3 * time.Second)
	assert.Equal(t, StateAwaitingInput, e.State())
	cues, _ := e.Drain()
	assert.Equal(t, []string{"intro"}, texts(cues))

	e.Advance(500 * time.Millisecond)
	cues, _ = e.Drain()
	assert.Equal(t, []string{"ask 1"}, texts(cues))
}

func TestSubmitIgnoredOutsideAwaitingInput(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	assert.False(t, e.Submit("1"), "idle")

	e.Start(StartConfig{})
	require.True(t, e.Submit("1"))
	assert.Equal(t, StateResolved, e.State())

	assert.False(t, e.Submit("1"), "double submit during feedback")
	assert.Equal(t, 1, e.View().Session.Score)
}

func TestCorrectAnswer(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	e.Start(StartConfig{})
	e.Drain()

	require.True(t, e.Submit("1"))
	v := e.View()
	assert.Equal(t, 1, v.Session.Score)
	assert.Equal(t, 1, v.Session.Streak)
	assert.Equal(t, FeedbackCorrect, v.Feedback)
	require.NotNil(t, v.Round.Correct)
	assert.True(t, *v.Round.Correct)

	cues, answers := e.Drain()
	require.Len(t, cues, 1)
	assert.Equal(t, 1.5, cues[0].Voice.Rate)
	require.Len(t, answers, 1)
	assert.Equal(t, core.AnswerRecord{Level: 1, PromptID: "n1", Answer: "1", Correct: true, Streak: 1}, answers[0])

	e.Advance(1999 * time.Millisecond)
	assert.Equal(t, StateResolved, e.State())
	e.Advance(time.Millisecond)
	assert.Equal(t, StateAwaitingInput, e.State())
	assert.Equal(t, "2", e.View().Round.Prompt.Target)
}

func TestIncorrectAnswerResetsStreak(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	e.Start(StartConfig{})
	answerCurrent(t, e)
	e.Advance(2 * time.Second)

	require.True(t, e.Submit("wrong"))
	v := e.View()
	assert.Equal(t, 1, v.Session.Score, "score unchanged")
	assert.Equal(t, 0, v.Session.Streak)
	assert.Equal(t, 1, v.Session.BestStreak)
	assert.Equal(t, 1, v.Session.Misses)
	assert.Equal(t, FeedbackIncorrect, v.Feedback)
}

func TestRetryOnMissReopensSamePrompt(t *testing.T) {
	rules := quickRules()
	rules.RetryOnMiss = true
	e := NewEngine(&countSource{rules: rules}, 1)
	e.Start(StartConfig{})

	e.Submit("wrong")
	e.Advance(1500 * time.Millisecond)

	v := e.View()
	assert.Equal(t, StateAwaitingInput, v.State)
	assert.Equal(t, "1", v.Round.Prompt.Target)
	assert.False(t, v.Round.Resolved)
	assert.Equal(t, 1, v.Session.RoundIndex)
}

func TestMissWithoutRetryAdvances(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	e.Start(StartConfig{})

	e.Submit("wrong")
	e.Advance(1500 * time.Millisecond)

	v := e.View()
	assert.Equal(t, "2", v.Round.Prompt.Target)
	assert.Equal(t, 2, v.Session.RoundIndex)
}

func TestLevelUpEveryFiveCorrect(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	e.Start(StartConfig{Level: 1})

	for i := 0; i < 4; i++ {
		answerCurrent(t, e)
		e.Advance(2 * time.Second)
		assert.Equal(t, 1, e.View().Session.Level)
	}
	e.Drain()

	answerCurrent(t, e)
	v := e.View()
	assert.Equal(t, 2, v.Session.Level)
	assert.Equal(t, 0, v.Session.Cursor)

	e.Advance(2 * time.Second)
	assert.Equal(t, StateAdvancing, e.State())
	cues, _ := e.Drain()
	assert.Equal(t, []string{"yes", "level 2"}, texts(cues))

	e.Advance(2 * time.Second)
	assert.Equal(t, StateAwaitingInput, e.State())
	assert.Equal(t, "6", e.View().Round.Prompt.Target)
}

func TestLevelNeverExceedsMax(t *testing.T) {
	rules := quickRules()
	rules.Progression = config.Progression{Every: 1, MaxLevel: 3}
	e := NewEngine(&countSource{rules: rules}, 1)
	e.Start(StartConfig{Level: 1})

	for i := 0; i < 10; i++ {
		answerCurrent(t, e)
		e.Advance(10 * time.Second)
	}
	assert.Equal(t, 3, e.View().Session.Level)
}

func TestStartLevelClamped(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	e.Start(StartConfig{Level: 9})
	assert.Equal(t, 3, e.View().Session.Level)
}

func TestScoreMonotonic(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 7)
	e.Start(StartConfig{})
	rng := rand.New(rand.NewSource(3))

	last := 0
	for i := 0; i < 40; i++ {
		if e.State() == StateAwaitingInput {
			if rng.Intn(2) == 0 {
				e.Submit("wrong")
			} else {
				answerCurrent(t, e)
			}
		}
		e.Advance(time.Second)
		score := e.View().Session.Score
		assert.GreaterOrEqual(t, score, last)
		last = score
	}
}

func TestQuestionsReachTerminal(t *testing.T) {
	rules := quickRules()
	rules.Progression = config.Progression{}
	rules.Questions = 3
	rules.Timing.Celebrate = time.Second
	e := NewEngine(&countSource{rules: rules}, 1)
	e.Start(StartConfig{Level: 7})

	for i := 0; i < 3; i++ {
		answerCurrent(t, e)
		e.Advance(2 * time.Second)
	}
	v := e.View()
	assert.Equal(t, StateTerminal, v.State)
	assert.True(t, v.Session.Terminal)
	assert.Equal(t, 3, v.Session.Score)
	assert.Equal(t, 7, v.Session.Level)
	assert.False(t, e.Submit("4"), "terminal blocks answers")

	e.Drain()
	e.Advance(time.Second)
	cues, _ := e.Drain()
	assert.Equal(t, []string{"done 3"}, texts(cues))
}

func TestResetReturnsInitialValues(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	e.Start(StartConfig{Level: 2})
	answerCurrent(t, e)

	assert.True(t, e.Reset())
	v := e.View()
	assert.Equal(t, StateIdle, v.State)
	assert.Equal(t, 0, v.Session.Score)
	assert.Equal(t, 1, v.Session.Level)
	assert.Equal(t, 0, v.Session.RoundIndex)
	assert.False(t, v.Session.Terminal)
	assert.Nil(t, v.Round)

	cues, _ := e.Drain()
	require.NotEmpty(t, cues)
	assert.Equal(t, core.CueSilence, cues[len(cues)-2].Kind)
	assert.Equal(t, "restart", cues[len(cues)-1].Text)
}

func TestResetCancelsPendingTransitions(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	e.Start(StartConfig{})
	answerCurrent(t, e)
	require.Equal(t, 1, e.Pending(), "round advance is scheduled")

	e.Reset()
	assert.Equal(t, 0, e.Pending())
	e.Drain()

	// A stale advance would open a round on the idle engine.
	e.Advance(10 * time.Second)
	assert.Equal(t, StateIdle, e.State())
	assert.Nil(t, e.View().Round)
	cues, _ := e.Drain()
	assert.Empty(t, cues)

	require.True(t, e.Start(StartConfig{}))
	assert.Equal(t, "1", e.View().Round.Prompt.Target)
}

func TestCueingBeforeInput(t *testing.T) {
	rules := quickRules()
	rules.UsesAudio = true
	rules.Timing.Cue = 3 * time.Second
	e := NewEngine(&countSource{rules: rules, tone: true}, 1)
	e.Start(StartConfig{})

	cues, _ := e.Drain()
	require.NotEmpty(t, cues)
	assert.Equal(t, core.CueAudioInit, cues[0].Kind)
	assert.Equal(t, []string{"intro", "ask 1"}, texts(cues))

	assert.Equal(t, StateCueing, e.State())
	assert.False(t, e.Submit("1"), "answers wait for the sound")
	assert.True(t, e.Replay())

	e.Drain()
	e.Advance(3 * time.Second)
	assert.Equal(t, StateAwaitingInput, e.State())
	cues, _ = e.Drain()
	require.Len(t, cues, 1)
	assert.Equal(t, core.CueTone, cues[0].Kind)
	assert.Equal(t, 440.0, cues[0].Tone.Frequency)
}

func TestRepeatAndReplay(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	assert.False(t, e.Repeat())
	assert.False(t, e.Replay())

	e.Start(StartConfig{})
	e.Drain()
	assert.True(t, e.Repeat())
	assert.False(t, e.Replay(), "no tone on this prompt")
	cues, _ := e.Drain()
	assert.Equal(t, []string{"ask 1"}, texts(cues))
}

func TestVoiceToggle(t *testing.T) {
	e := NewEngine(&countSource{rules: quickRules()}, 1)
	e.SetVoice(false)
	e.Start(StartConfig{})
	cues, _ := e.Drain()
	assert.Empty(t, texts(cues))
	require.Len(t, cues, 1)
	assert.Equal(t, core.CueSilence, cues[0].Kind)

	e.SetVoice(true)
	assert.True(t, e.Voice())
	cues, _ = e.Drain()
	assert.Equal(t, []string{"ask 1"}, texts(cues), "the open prompt is read again")

	assert.True(t, e.Repeat())
	cues, _ = e.Drain()
	assert.Equal(t, []string{"ask 1"}, texts(cues))
}

func TestVoiceOnRereadsPromptAfterDelay(t *testing.T) {
	rules := quickRules()
	rules.Timing.Prompt = 500 * time.Millisecond
	e := NewEngine(&countSource{rules: rules}, 1)
	e.Start(StartConfig{})
	e.Advance(500 * time.Millisecond)
	e.Drain()

	e.SetVoice(false)
	e.SetVoice(true)
	cues, _ := e.Drain()
	assert.Empty(t, texts(cues))

	e.Advance(500 * time.Millisecond)
	cues, _ = e.Drain()
	assert.Equal(t, []string{"ask 1"}, texts(cues))

	// Nothing to re-read before a session starts.
	idle := NewEngine(&countSource{rules: rules}, 1)
	idle.SetVoice(false)
	idle.SetVoice(true)
	assert.Zero(t, idle.Pending())
}

func TestIntroDelay(t *testing.T) {
	rules := quickRules()
	rules.Timing.Intro = 500 * time.Millisecond
	rules.Timing.Prompt = 100 * time.Millisecond
	e := NewEngine(&countSource{rules: rules}, 1)
	e.Start(StartConfig{})
	assert.Equal(t, StateAwaitingInput, e.State())

	e.Advance(100 * time.Millisecond)
	cues, _ := e.Drain()
	assert.Equal(t, []string{"ask 1"}, texts(cues))

	e.Advance(400 * time.Millisecond)
	cues, _ = e.Drain()
	assert.Equal(t, []string{"intro"}, texts(cues))

	// A restart before the intro drops it.
	e.Reset()
	e.Start(StartConfig{})
	e.Reset()
	e.Drain()
	e.Advance(time.Second)
	cues, _ = e.Drain()
	assert.NotContains(t, texts(cues), "intro")
}

func TestGreetCancelledByStart(t *testing.T) {
	rules := quickRules()
	rules.Timing.Greeting = time.Second
	e := NewEngine(&countSource{rules: rules}, 1)

	e.Greet()
	e.Advance(time.Second)
	cues, _ := e.Drain()
	assert.Equal(t, []string{"hello"}, texts(cues))

	e.Greet()
	e.Start(StartConfig{})
	e.Drain()
	e.Advance(time.Second)
	cues, _ = e.Drain()
	assert.NotContains(t, texts(cues), "hello")
}
