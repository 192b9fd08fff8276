package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenSetup
	screenGame
	screenSummary
)

// SessionModel manages the full arcade flow in one program:
// menu -> (table or level picker) -> game -> menu, plus the visit summary.
// It is the top-level model for both the local menu and SSH sessions.
type SessionModel struct {
	ctx      context.Context
	out      Outputs
	config   core.RuntimeConfig
	username string
	screen   sessionScreen
	menu     MenuModel
	setup    SelectorModel
	pending  string // game waiting on its picker
	summary  SummaryModel
	game     *GameModel
	gen      int
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(ctx context.Context, out Outputs, cfg core.RuntimeConfig, username string) SessionModel {
	if ctx == nil {
		ctx = context.Background()
	}
	return SessionModel{
		ctx:      ctx,
		out:      out,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(out, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenSetup:
		return m.updateSetup(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenSummary:
		return m.updateSummary(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsSummary():
		m.summary = NewSummaryModel(m.out.Ledger, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenSummary
		return m, m.summary.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		if setup, ok := SetupFor(id); ok {
			m.pending = id
			m.setup = NewSelectorModel(setup, m.out, m.config.ScreenW, m.config.ScreenH)
			m.screen = screenSetup
			return m, m.setup.Init()
		}
		return m.startGame(id, 0)
	}

	return m, cmd
}

// updateSetup handles updates while a picker is shown.
func (m SessionModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSetup, cmd := m.setup.Update(msg)
	if setupModel, ok := newSetup.(SelectorModel); ok {
		m.setup = setupModel
	}

	switch {
	case m.setup.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.setup.WantsBack():
		return m.toMenu()
	case m.setup.Selected() != nil:
		return m.startGame(m.pending, m.setup.Selected().Value)
	}
	return m, cmd
}

// startGame mounts a game, optionally fixing its start level.
func (m SessionModel) startGame(id string, level int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		m.out.logger().Error("cannot create game", "game", id, "error", err)
		return m.toMenu()
	}
	if s, ok := game.(registry.Starter); ok && level > 0 {
		s.StartAt(level)
	}

	m.out.logger().Info("game started", "user", m.username, "game", id, "level", level)

	m.gen++
	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	gm := NewGameModel(m.ctx, game, m.out, cfg, m.gen)
	m.game = &gm
	m.screen = screenGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		st := m.game.State()
		m.out.logger().Info("game left", "user", m.username, "game", m.game.game.ID(), "score", st.Score)
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

// updateSummary handles updates while the visit summary is shown.
func (m SessionModel) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSummary, cmd := m.summary.Update(msg)
	if summaryModel, ok := newSummary.(SummaryModel); ok {
		m.summary = summaryModel
	}

	switch {
	case m.summary.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.summary.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.out, m.config.ScreenW, m.config.ScreenH)
	m.pending = ""
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenSetup:
		return m.setup.View()
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenSummary:
		return m.summary.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven arcade on the local terminal until the
// player quits.
func RunSession(ctx context.Context, out Outputs, cfg core.RuntimeConfig) error {
	model := NewSessionModel(ctx, out, cfg, "local")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
