package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/learning-arcade/internal/registry"
)

// launchDelay is the pause between picking a game and opening it, long
// enough for "Starting X!" to be heard.
const launchDelay = 1500 * time.Millisecond

// decor is how a game is dressed up in the menu.
type decor struct {
	icon  string
	guide string // mascot emoji
	color lipgloss.Color
	pitch string // what the about narration says of the game
}

var menuDecor = map[string]decor{
	"emoji":  {icon: "😊", guide: "🦄", color: "93", pitch: "teaches about feelings with a magical unicorn"},
	"safari": {icon: "🦁", guide: "🐘", color: "34", pitch: "lets you explore animals with an elephant guide"},
	"colors": {icon: "🎨", guide: "🐦", color: "205", pitch: "helps you learn colors with a little bird"},
	"maths":  {icon: "🔢", guide: "🐒", color: "30", pitch: "helps you learn multiplication with a friendly monkey"},
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	captionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
}

// launchMsg opens the picked game once its announcement had time to play.
type launchMsg struct{}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	out         Outputs
	keyMapper   *KeyMapper
	quitting    bool
	launching   *MenuItem // picked, waiting for launchDelay
	selected    *MenuItem // set when the game should open
	openSummary bool      // True if user pressed Tab for the visit summary
}

// NewMenuModel creates a new menu model listing every registered game.
func NewMenuModel(out Outputs, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description})
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		out:       out,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case launchMsg:
		if m.launching != nil {
			m.selected = m.launching
			return m, tea.Quit // Exit menu to start game
		}
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if action == MenuActionQuit {
		m.out.Silence()
		m.quitting = true
		return m, tea.Quit
	}
	// Input is locked while the picked game is being announced.
	if m.launching != nil {
		return m, nil
	}

	switch action {
	case MenuActionUp, MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
			m.announceFocus()
		}

	case MenuActionDown, MenuActionRight:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.announceFocus()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			picked := m.items[m.cursor]
			m.launching = &picked
			m.out.Speak(fmt.Sprintf("Starting %s!", picked.Title))
			return m, tea.Tick(launchDelay, func(time.Time) tea.Msg { return launchMsg{} })
		}

	case MenuActionAbout:
		m.out.Speak(AboutGames(m.items))

	case MenuActionSummary:
		m.openSummary = true
		return m, tea.Quit // Exit menu to show the visit summary
	}

	return m, nil
}

func (m MenuModel) announceFocus() {
	item := m.items[m.cursor]
	m.out.Speak(fmt.Sprintf("%s. %s", item.Title, item.Description))
}

// AboutGames is the spoken introduction to the games on offer.
func AboutGames(items []MenuItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello! Welcome to our learning games! You can choose from %s amazing games.", countWord(len(items)))
	for _, it := range items {
		if d, ok := menuDecor[it.GameID]; ok && d.pitch != "" {
			fmt.Fprintf(&b, " %s %s.", it.Title, d.pitch)
		}
	}
	b.WriteString(" Use the arrow keys and press Enter to start playing!")
	return b.String()
}

func countWord(n int) string {
	words := []string{"no", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	if n >= 0 && n < len(words) {
		return words[n]
	}
	return fmt.Sprint(n)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("🎮  Learning Games  🌟"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a fun game to play and learn!", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		d := menuDecor[item.GameID]
		title := lipgloss.NewStyle().Bold(true).Foreground(d.color).Render(item.Title)

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, d.guide, d.icon, title)
		if m.launching != nil && m.launching.GameID == item.GameID {
			line += "  " + menuPickStyle.Render(" ✨ Selected! ✨ ")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(centerText(menuDimStyle.Render(item.Description), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  H: Hear about games  |  Tab: This visit  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	if c := m.out.Caption(); c != "" {
		b.WriteString("\n")
		b.WriteString(centerText(captionStyle.Render("💬 "+c), m.width))
		b.WriteString("\n")
	}

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsSummary returns true if user requested the visit summary.
func (m MenuModel) WantsSummary() bool {
	return m.openSummary
}

// centerText centers text within given width. Styled text is measured
// by its printed width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
