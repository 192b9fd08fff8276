package quiz

import (
	"fmt"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/round"
)

const (
	headerHeight = 3
	footerHeight = 3
	boxGap       = 2
)

// Render draws the current game state into dst and remembers where each
// answer box landed for AnswerAt.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.hits = g.hits[:0]
	if g.engine == nil {
		return
	}

	v := g.engine.View()
	w, h := dst.Width(), dst.Height()

	g.renderHeader(dst, v)

	body := core.NewRect(0, headerHeight, w, h-headerHeight-footerHeight)
	switch v.State {
	case round.StateIdle:
		g.renderLines(dst, body, g.face.Welcome(g.startConfig()))
		dst.DrawTextCenteredColor(body.Bottom()-1, "Press Enter to start", core.ColorBrightYellow)
	case round.StateTerminal:
		g.renderLines(dst, body, g.face.Finale(v))
		dst.DrawTextCenteredColor(body.Bottom()-1, "R to play again · B for the menu", core.ColorBrightYellow)
	default:
		g.renderRound(dst, body, v)
	}

	g.renderFooter(dst, v)

	if g.paused {
		g.renderPaused(dst)
	}
}

func (g *Game) renderHeader(dst *core.Screen, v round.Snapshot) {
	w := dst.Width()
	dst.DrawTextCenteredColor(0, g.def.Title, g.def.Theme)
	if v.State != round.StateIdle {
		dst.DrawTextCenteredColor(1, g.face.Status(v), core.ColorWhite)
	}
	if !v.Voice {
		label := "voice off"
		dst.DrawTextColor(w-core.TextWidth(label)-1, 1, label, core.ColorGray)
	}
	dst.DrawHLine(0, 2, w, '─', core.ColorGray)
}

func (g *Game) renderLines(dst *core.Screen, body core.Rect, lines []string) {
	y := body.Y + core.Max((body.H-len(lines))/2-1, 0)
	for i, line := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = g.def.Theme
		}
		dst.DrawTextCenteredColor(y+i, line, c)
	}
}

func (g *Game) renderRound(dst *core.Screen, body core.Rect, v round.Snapshot) {
	y := body.Y + 1
	for _, line := range g.face.Stimulus(v) {
		dst.DrawTextCenteredColor(y, line, core.ColorBrightWhite)
		y++
	}
	if v.Round == nil {
		return
	}
	area := core.NewRect(body.X, y+1, body.W, body.Bottom()-y-1)

	if g.rules.Directional {
		g.renderSides(dst, area, v)
		return
	}

	choices := v.Round.Prompt.Choices
	cells := area.Grid(len(choices), g.def.Columns, g.def.BoxWidth, g.def.BoxHeight, boxGap)
	for i, r := range cells {
		answer := choices[i]
		g.renderChoice(dst, r, i, answer, v)
		g.hits = append(g.hits, hit{rect: r, answer: answer})
	}
}

func (g *Game) renderChoice(dst *core.Screen, r core.Rect, i int, answer string, v round.Snapshot) {
	label := g.face.Label(answer)

	border := core.ColorGray
	if i == g.focus && v.State == round.StateAwaitingInput {
		border = core.ColorBrightYellow
	}
	if rc := v.Round; rc != nil && rc.Resolved {
		switch {
		case answer == rc.Prompt.Target:
			border = core.ColorBrightGreen
		case answer == rc.Answer:
			border = core.ColorBrightRed
		}
	}
	dst.DrawBoxColor(r, border)
	dst.DrawTextColor(r.X+1, r.Y, fmt.Sprintf("%d", i+1), border)

	inner := core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2)
	mid := inner.H / 2
	if label.Swatch {
		dst.DrawRect(inner, '█', label.Color)
		if label.Text != "" {
			dst.DrawTextIn(inner, mid, " "+label.Text+" ", core.ColorBrightWhite)
		}
		return
	}

	if label.Icon != "" {
		dst.DrawTextIn(inner, core.Max(mid-1, 0), label.Icon, core.ColorDefault)
		dst.DrawTextIn(inner, core.Min(mid+1, inner.H-1), label.Text, label.Color)
		return
	}
	dst.DrawTextIn(inner, mid, label.Text, label.Color)
}

// renderSides draws the two answer boxes of a directional game.
func (g *Game) renderSides(dst *core.Screen, area core.Rect, v round.Snapshot) {
	sides := []string{"left", "right"}
	cells := area.Grid(2, 2, g.def.BoxWidth, g.def.BoxHeight, area.W/4)
	for i, r := range cells {
		side := sides[i]
		border := core.ColorGray
		if v.State == round.StateAwaitingInput {
			border = g.def.Theme
		}
		if rc := v.Round; rc.Resolved {
			switch {
			case side == rc.Prompt.Target:
				border = core.ColorBrightGreen
			case side == rc.Answer:
				border = core.ColorBrightRed
			}
		}
		dst.DrawBoxColor(r, border)
		label := g.face.Label(side)
		dst.DrawTextIn(r, r.H/2, label.Text, label.Color)
		g.hits = append(g.hits, hit{rect: r, answer: side})
	}
	if v.State == round.StateCueing {
		dst.DrawTextCenteredColor(area.Bottom()-1, "Listen…", core.ColorGray)
	}
}

func (g *Game) renderFooter(dst *core.Screen, v round.Snapshot) {
	h := dst.Height()
	switch v.Feedback {
	case round.FeedbackCorrect:
		dst.DrawTextCenteredColor(h-3, "✓ Correct!", core.ColorBrightGreen)
	case round.FeedbackIncorrect:
		dst.DrawTextCenteredColor(h-3, "✗ Not quite", core.ColorBrightRed)
	}
	dst.DrawTextCenteredColor(h-1, g.face.Help(), core.ColorGray)
}

func (g *Game) renderPaused(dst *core.Screen) {
	msg := " PAUSED · P to resume "
	w := core.TextWidth(msg) + 2
	r := core.NewRect((dst.Width()-w)/2, dst.Height()/2-1, w, 3)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBoxColor(r, core.ColorBrightYellow)
	dst.DrawTextIn(r, 1, msg, core.ColorBrightYellow)
}
