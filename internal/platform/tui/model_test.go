package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/storage"
	"github.com/vovakirdan/learning-arcade/internal/voice"
)

// scripted is a game that replays queued step results and records the
// input it was given.
type scripted struct {
	inputs  []core.InputFrame
	results []core.StepResult
	state   core.GameState
}

func (g *scripted) ID() string { return "scripted" }
func (g *scripted) Title() string { return "Scripted" }
func (g *scripted) Reset(core.RuntimeConfig) {}
func (g *scripted) State() core.GameState { return g.state }
func (g *scripted) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scripted) AnswerAt(x, y int) (string, bool) { return "red", x == 5 && y == 5 }

func (g *scripted) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	if len(g.results) == 0 {
		return core.StepResult{State: g.state}
	}
	res := g.results[0]
	g.results = g.results[1:]
	g.state = res.State
	return res
}

func newTestOutputs(t *testing.T) Outputs {
	t.Helper()
	ledger, err := storage.Open()
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return CaptionsOnly(ledger, nil)
}

func newTestModel(t *testing.T, g *scripted) (GameModel, Outputs) {
	out := newTestOutputs(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	m := NewGameModel(context.Background(), g, out, cfg, 1)
	m.Init()
	return m, out
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm, cmd
}

func TestGameModelClickAnswers(t *testing.T) {
	g := &scripted{}
	m, _ := newTestModel(t, g)

	m, _ = update(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, TickMsg{Gen: 1})
	require.Len(t, g.inputs, 1)
	assert.Empty(t, g.inputs[0].Answer, "misses and releases must not answer")

	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, TickMsg{Gen: 1})
	require.Len(t, g.inputs, 2)
	assert.Equal(t, "red", g.inputs[1].Answer)
}

func TestGameModelDropsStaleTicks(t *testing.T) {
	g := &scripted{}
	m, _ := newTestModel(t, g)

	_, cmd := update(t, m, TickMsg{Gen: 7})
	assert.Nil(t, cmd)
	assert.Empty(t, g.inputs)
}

func TestGameModelPlaysCuesAsCaptions(t *testing.T) {
	g := &scripted{results: []core.StepResult{
		{Cues: []core.Cue{core.Speak("Find the red color", core.DefaultVoice())}},
	}}
	m, out := newTestModel(t, g)

	m, _ = update(t, m, TickMsg{Gen: 1})
	assert.Equal(t, "Find the red color", out.Caption())
	assert.Contains(t, m.View(), "Find the red color")

	out.Play(context.Background(), "scripted", []core.Cue{{Kind: core.CueSilence}})
	assert.Empty(t, out.Caption())
}

func TestGameModelKeepsLedger(t *testing.T) {
	started := core.GameState{Started: true, Level: 2}
	g := &scripted{results: []core.StepResult{
		{State: core.GameState{Level: 1}},
		{State: started},
		{State: core.GameState{Started: true, Level: 2, Score: 1, Streak: 1},
			Answers: []core.AnswerRecord{{Level: 2, PromptID: "red", Answer: "red", Correct: true, Streak: 1}}},
		{State: core.GameState{Started: true, Level: 2, Score: 1},
			Answers: []core.AnswerRecord{{Level: 2, PromptID: "blue", Answer: "red"}}},
		{State: core.GameState{Started: true, GameOver: true, Level: 2, Score: 1}},
	}}
	m, out := newTestModel(t, g)

	for i := 0; i < 6; i++ {
		m, _ = update(t, m, TickMsg{Gen: 1})
	}

	sessions, err := out.Ledger.Sessions("scripted")
	require.NoError(t, err)
	require.Len(t, sessions, 1, "idle ticks must not open a session")
	assert.Equal(t, 2, sessions[0].Level)
	assert.Equal(t, 1, sessions[0].Score)
	assert.True(t, sessions[0].Completed)

	sum, err := out.Ledger.SessionSummary(sessions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Attempts)
	assert.Equal(t, 1, sum.Correct)
}

func TestGameModelBack(t *testing.T) {
	g := &scripted{results: []core.StepResult{{State: core.GameState{Started: true, Level: 1}}}}
	m, out := newTestModel(t, g)
	m, _ = update(t, m, TickMsg{Gen: 1})

	m, cmd := update(t, m, runes("b"))
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
	assert.Nil(t, cmd, "inside a session Back hands control to the menu")

	sessions, err := out.Ledger.Sessions("scripted")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].Completed)
	assert.False(t, sessions[0].EndedAt.IsZero(), "leaving ends the session")

	standalone, _ := newTestModel(t, &scripted{})
	standalone.standalone = true
	_, cmd = update(t, standalone, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestGameModelQuit(t *testing.T) {
	m, _ := newTestModel(t, &scripted{})
	m, cmd := update(t, m, runes("q"))
	assert.True(t, m.IsQuitting())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestDrawCaptionFitsTheScreen(t *testing.T) {
	s := core.NewScreen(20, 5)
	drawCaption(s, strings.Repeat("long words ", 10))
	row := s.Row(3)
	assert.Contains(t, row, "…")
	assert.LessOrEqual(t, core.TextWidth(row), 20)
}

func TestCaptionsOnlyOutputs(t *testing.T) {
	out := CaptionsOnly(nil, nil)
	_, isCaptions := out.Narrator.(*voice.Captions)
	assert.True(t, isCaptions)
	assert.Nil(t, out.Audio)

	// Tones are skipped without an audio output.
	out.Play(context.Background(), "safari", []core.Cue{
		{Kind: core.CueAudioInit},
		core.PlayTone(core.Tone{Name: "Lion", Frequency: 150}),
	})
	assert.NoError(t, out.Close())
}

// failingNarrator is a narrator whose Close fails.
type failingNarrator struct {
	voice.Nop
	err    error
	closed bool
}

func (n *failingNarrator) Close() error {
	n.closed = true
	return n.err
}

func TestOutputsCloseReportsNarratorErrors(t *testing.T) {
	busy := &failingNarrator{err: errors.New("speech daemon busy")}
	gone := &failingNarrator{err: errors.New("speech daemon gone")}
	out := Outputs{Narrator: voice.Multi{busy, gone, voice.NewCaptions(0)}}

	err := out.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, busy.err)
	assert.ErrorIs(t, err, gone.err)
	assert.True(t, busy.closed)
	assert.True(t, gone.closed, "one failure must not skip the other closers")

	ok := &failingNarrator{}
	assert.NoError(t, Outputs{Narrator: ok}.Close())
	assert.True(t, ok.closed)
}

func TestNewOutputsModes(t *testing.T) {
	out, err := NewOutputs(OutputOptions{Voice: VoiceCaptions, Audio: AudioOff})
	require.NoError(t, err)
	assert.NotNil(t, out.Captions)
	assert.Nil(t, out.Audio)

	out, err = NewOutputs(OutputOptions{Voice: VoiceOff, Audio: AudioOff})
	require.NoError(t, err)
	assert.Nil(t, out.Captions)
	out.Speak("nobody hears this")
	assert.Empty(t, out.Caption())

	_, err = NewOutputs(OutputOptions{Voice: "loud"})
	assert.Error(t, err)
	_, err = NewOutputs(OutputOptions{Voice: VoiceOff, Audio: "surround"})
	assert.Error(t, err)
}
