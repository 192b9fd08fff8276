package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/games/colors"
	"github.com/vovakirdan/learning-arcade/internal/games/maths"
	"github.com/vovakirdan/learning-arcade/internal/games/safari"
)

// SelectorOption is one entry of a pre-game picker.
type SelectorOption struct {
	Label  string
	Detail string
	Speech string // spoken when the option gets focus
	Value  int
}

// GameSetup describes the picker shown before a game starts.
type GameSetup struct {
	Title   string
	Prompt  string
	Options []SelectorOption
}

// SetupFor returns the picker for games that offer one: the times table
// for maths, the start level for colors and safari.
func SetupFor(gameID string) (GameSetup, bool) {
	switch gameID {
	case maths.ID:
		var opts []SelectorOption
		for _, t := range maths.Tables() {
			name := fmt.Sprintf("Table of %d", t)
			opts = append(opts, SelectorOption{
				Label:  name,
				Detail: fmt.Sprintf("%d × 1 … %d × 12", t, t),
				Speech: name,
				Value:  t,
			})
		}
		return GameSetup{Title: "MULTIPLICATION PRACTICE", Prompt: "Choose a table to practice:", Options: opts}, len(opts) > 0
	case colors.ID:
		return levelSetup("COLOR MATCH", colors.LevelNames()), true
	case safari.ID:
		return levelSetup("SOUND SAFARI", safari.LevelNames()), true
	}
	return GameSetup{}, false
}

func levelSetup(title string, levels []string) GameSetup {
	opts := make([]SelectorOption, len(levels))
	for i, detail := range levels {
		opts[i] = SelectorOption{
			Label:  fmt.Sprintf("Level %d", i+1),
			Detail: detail,
			Speech: fmt.Sprintf("Level %d", i+1),
			Value:  i + 1,
		}
	}
	return GameSetup{Title: title, Prompt: "Choose where to start:", Options: opts}
}

// SelectorModel lets the player pick a table or start level.
type SelectorModel struct {
	setup     GameSetup
	cursor    int
	width     int
	height    int
	out       Outputs
	keyMapper *KeyMapper
	selection SelectorOption
	choosing  bool
	quitting  bool
	back      bool
}

// NewSelectorModel creates a picker for setup.
func NewSelectorModel(setup GameSetup, out Outputs, width, height int) SelectorModel {
	return SelectorModel{
		setup:     setup,
		width:     width,
		height:    height,
		out:       out,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init announces the picker.
func (m SelectorModel) Init() tea.Cmd {
	m.out.Speak(m.setup.Prompt)
	return nil
}

// Update handles messages.
func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m SelectorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.setup.Options)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp, MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
			m.focus()
		}
	case MenuActionDown, MenuActionRight:
		if m.cursor < n-1 {
			m.cursor++
			m.focus()
		}
	case MenuActionSelect:
		if n > 0 {
			m.choosing = false
			m.selection = m.setup.Options[m.cursor]
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SelectorModel) focus() {
	if s := m.setup.Options[m.cursor].Speech; s != "" {
		m.out.Speak(s)
	}
}

// View renders the picker.
func (m SelectorModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	focusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(m.setup.Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.setup.Prompt, m.width))
	b.WriteString("\n\n")

	for i, opt := range m.setup.Options {
		line := "  " + opt.Label
		if i == m.cursor {
			line = focusStyle.Render("> " + opt.Label)
		}
		if opt.Detail != "" {
			line += "  " + detailStyle.Render(opt.Detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	if c := m.out.Caption(); c != "" {
		b.WriteString("\n\n")
		b.WriteString(centerText(captionStyle.Render("💬 "+c), m.width))
	}
	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m SelectorModel) Selected() *SelectorOption {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m SelectorModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SelectorModel) WantsBack() bool {
	return m.back
}

// RunSelector runs a picker and returns the selection, or nil when the
// player backed out or quit.
func RunSelector(setup GameSetup, out Outputs, cfg core.RuntimeConfig) (*SelectorOption, bool, error) {
	model := NewSelectorModel(setup, out, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(SelectorModel)
	if !ok {
		return nil, true, nil
	}
	if m.IsQuitting() {
		return nil, true, nil
	}
	if m.WantsBack() {
		return nil, false, nil
	}
	return m.Selected(), false, nil
}
