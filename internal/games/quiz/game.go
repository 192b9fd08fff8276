// Package quiz adapts a round engine to the arcade's Game interface. The
// four learning games are quiz.Games with different round sources and
// faces; this package owns input mapping, pacing and the shared layout.
package quiz

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/round"
)

// Label is how one answer is drawn in its box.
type Label struct {
	Text  string
	Icon  string     // drawn above Text, e.g. an emoji
	Color core.Color // text color, or block color when Swatch is set
	// Swatch fills the box with the color instead of showing text.
	Swatch bool
}

// Face is the game-specific presentation of a round source.
type Face interface {
	// Label describes how to draw an answer.
	Label(answer string) Label
	// Stimulus returns the prompt lines shown above the answers.
	Stimulus(v round.Snapshot) []string
	// Status returns the HUD line, e.g. "Level 2 · Score 7".
	Status(v round.Snapshot) string
	// Welcome returns the start screen lines for a session that will
	// start as described.
	Welcome(start round.StartConfig) []string
	// Finale returns the celebration screen lines.
	Finale(v round.Snapshot) []string
	// Help returns the key hints shown at the bottom.
	Help() string
}

// Definition assembles a quiz game.
type Definition struct {
	ID          string
	Title       string
	Description string
	Theme       core.Color
	Columns     int // answers per row
	BoxWidth    int
	BoxHeight   int
	// NewSource builds the round source. Called on every Reset so that
	// setters (config path, start level) take effect.
	NewSource func() (round.Source, Face)
	// StartConfig picks the level or table a session starts on.
	StartConfig func() round.StartConfig
}

type hit struct {
	rect   core.Rect
	answer string
}

// Game runs a round engine behind the registry.Game interface.
type Game struct {
	def     Definition
	face    Face
	engine  *round.Engine
	rules   round.Rules
	cfg     core.RuntimeConfig
	tick    time.Duration
	focus   int
	paused  bool
	hits    []hit
	startAt int
}

// New creates a quiz game from def.
func New(def Definition) *Game {
	if def.Columns <= 0 {
		def.Columns = 3
	}
	if def.BoxWidth <= 0 {
		def.BoxWidth = 16
	}
	if def.BoxHeight <= 0 {
		def.BoxHeight = 5
	}
	return &Game{def: def}
}

// ID returns the route name.
func (g *Game) ID() string { return g.def.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.def.Title }

// Description returns the menu blurb.
func (g *Game) Description() string { return g.def.Description }

// Engine exposes the round engine, for tests and the summary screen.
func (g *Game) Engine() *round.Engine { return g.engine }

// Reset mounts the game on its start screen, or straight into play for
// games without one.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	if g.cfg.TickRate <= 0 {
		g.cfg.TickRate = core.DefaultConfig().TickRate
	}
	g.tick = time.Second / time.Duration(g.cfg.TickRate)

	src, face := g.def.NewSource()
	g.face = face
	g.engine = round.NewEngine(src, cfg.Seed)
	g.rules = g.engine.Rules()
	g.focus = 0
	g.paused = false
	g.hits = nil

	if g.rules.AutoStart {
		g.engine.Start(g.startConfig())
		return
	}
	g.engine.Greet()
}

// StartAt fixes the level (or table) sessions start on, overriding the
// game's own choice. Zero restores it.
func (g *Game) StartAt(level int) {
	g.startAt = level
}

func (g *Game) startConfig() round.StartConfig {
	cfg := round.StartConfig{Level: 1}
	if g.def.StartConfig != nil {
		cfg = g.def.StartConfig()
	}
	if g.startAt > 0 {
		cfg.Level = g.startAt
	}
	return cfg
}

// Step applies one tick of input and advances the engine's clock.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionToggleVoice) {
		g.engine.SetVoice(!g.engine.Voice())
	}
	if in.Has(core.ActionInstructions) {
		g.engine.Instructions()
	}
	if in.Has(core.ActionRestart) {
		g.engine.Reset()
		g.focus = 0
		if g.rules.AutoStart {
			g.engine.Start(g.startConfig())
		}
	}

	if !g.paused {
		g.handleAnswers(in)
		g.engine.Advance(g.tick)
	}

	cues, answers := g.engine.Drain()
	return core.StepResult{State: g.State(), Cues: cues, Answers: answers}
}

func (g *Game) handleAnswers(in core.InputFrame) {
	v := g.engine.View()

	if v.State == round.StateIdle {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRepeat) {
			g.engine.Start(g.startConfig())
		}
		return
	}

	var prompt round.Prompt
	if v.Round != nil {
		prompt = v.Round.Prompt
	}
	choices := prompt.Choices
	g.focus = core.Clamp(g.focus, 0, core.Max(len(choices)-1, 0))

	switch {
	case in.Answer != "":
		g.submit(in.Answer, prompt)
	case in.Choice > 0:
		if in.Choice <= len(choices) {
			g.engine.Submit(choices[in.Choice-1])
		}
	}

	if g.rules.Directional {
		if in.Has(core.ActionLeft) {
			g.engine.Submit("left")
		}
		if in.Has(core.ActionRight) {
			g.engine.Submit("right")
		}
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRepeat) {
			g.engine.Replay()
		}
		return
	}

	n := len(choices)
	if n > 0 {
		cols := core.Min(g.def.Columns, n)
		switch {
		case in.Has(core.ActionLeft):
			g.focus = (g.focus + n - 1) % n
		case in.Has(core.ActionRight):
			g.focus = (g.focus + 1) % n
		case in.Has(core.ActionUp):
			if g.focus-cols >= 0 {
				g.focus -= cols
			}
		case in.Has(core.ActionDown):
			if g.focus+cols < n {
				g.focus += cols
			}
		}
		if in.Has(core.ActionConfirm) {
			g.engine.Submit(choices[g.focus])
		}
	}
	if in.Has(core.ActionRepeat) {
		if !g.engine.Repeat() {
			g.engine.Replay()
		}
	}
}

func (g *Game) submit(answer string, prompt round.Prompt) {
	if g.rules.Directional {
		if answer == "left" || answer == "right" {
			g.engine.Submit(answer)
		}
		return
	}
	if prompt.HasChoice(answer) {
		g.engine.Submit(answer)
	}
}

// State returns the platform-facing state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	v := g.engine.View()
	return core.GameState{
		Score:    v.Session.Score,
		Level:    v.Session.Level,
		Streak:   v.Session.Streak,
		Started:  v.State != round.StateIdle,
		GameOver: v.State == round.StateTerminal,
		Paused:   g.paused,
	}
}

// AnswerAt maps a clicked cell to the answer drawn there by the last Render.
func (g *Game) AnswerAt(x, y int) (string, bool) {
	for _, h := range g.hits {
		if h.rect.Contains(x, y) {
			return h.answer, true
		}
	}
	return "", false
}

// TitleCase capitalizes a label for display ("red" -> "Red").
// A Caser keeps state, so each call gets its own.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
