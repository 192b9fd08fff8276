package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/registry"
	"github.com/vovakirdan/learning-arcade/internal/storage"
)

// Summary layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show game list sidebar
	sidebarWidth       = 26 // Width of game list sidebar
)

// SummaryKeyMap defines the key bindings for the visit summary.
type SummaryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SummaryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SummaryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultSummaryKeyMap returns default key bindings.
func DefaultSummaryKeyMap() SummaryKeyMap {
	return SummaryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SummaryModel shows what was played during this visit: per game totals
// and one row per session, read from the in-memory ledger.
type SummaryModel struct {
	games       []registry.GameInfo
	gameCursor  int
	ledger      *storage.Store
	stats       map[string]*storage.GameStats
	sessions    []storage.SessionEntry
	table       table.Model
	help        help.Model
	keys        SummaryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewSummaryModel creates a new visit summary model.
func NewSummaryModel(ledger *storage.Store, width, height int) SummaryModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := SummaryModel{
		games:       registry.List(),
		ledger:      ledger,
		keys:        DefaultSummaryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	if ledger != nil {
		if stats, err := ledger.GetAllGamesStats(); err == nil {
			m.stats = stats
		}
	}
	if len(m.games) > 0 {
		m.loadSessions(m.games[0].ID)
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *SummaryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Answers", Width: 8},
		{Title: "Right", Width: 6},
		{Title: "Done", Width: 5},
		{Title: "Started", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-12, 3)), // Leave room for header, totals and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSessions loads the sessions of the given game.
func (m *SummaryModel) loadSessions(gameID string) {
	m.sessions = nil
	if m.ledger != nil {
		if sessions, err := m.ledger.Sessions(gameID); err == nil {
			m.sessions = sessions
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current sessions.
func (m *SummaryModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		answers, right := "-", "-"
		if sum, err := m.ledger.SessionSummary(s.ID); err == nil && sum.Attempts > 0 {
			answers = fmt.Sprintf("%d", sum.Attempts)
			right = fmt.Sprintf("%.0f%%", sum.Accuracy()*100)
		}
		done := ""
		if s.Completed {
			done = "✓"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(m.sessions)-i),
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.Score),
			answers,
			right,
			done,
			s.StartedAt.Local().Format("15:04:05"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the summary model.
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the summary.
func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadSessions(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + len(m.games) - 1) % len(m.games)
				m.loadSessions(m.games[m.gameCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the summary.
func (m SummaryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "THIS VISIT"
	if len(m.games) > 0 {
		title = fmt.Sprintf("THIS VISIT - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the summary with a sidebar of games.
func (m SummaryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + g.Title))
		sidebar.WriteString("\n")
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	panel := panelStyle.Render(m.renderTotals() + "\n\n" + m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", panel)
}

// renderNarrowLayout renders the summary with the current game between arrows.
func (m SummaryModel) renderNarrowLayout() string {
	var b strings.Builder
	if len(m.games) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderTotals())
	b.WriteString("\n\n")
	b.WriteString(m.renderTableContent())
	return b.String()
}

// renderTotals renders the per game totals line.
func (m SummaryModel) renderTotals() string {
	if len(m.games) == 0 {
		return ""
	}
	st, ok := m.stats[m.games[m.gameCursor].ID]
	if !ok {
		return menuDimStyle.Render("Not played yet")
	}
	return fmt.Sprintf("Played %d× · Finished %d · Best score %d · %d answers, %.0f%% right · Best streak %d",
		st.Sessions, st.Completed, st.BestScore, st.Attempts, st.Accuracy()*100, st.BestStreak)
}

// renderTableContent renders the table or empty message.
func (m SummaryModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		return emptyStyle.Render("Nothing here yet.\nPick a game from the menu and have fun!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SummaryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SummaryModel) IsQuitting() bool {
	return m.quitting
}
