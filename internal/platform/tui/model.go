package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/registry"
)

// GameModel is the Bubble Tea model for running one arcade game. It
// feeds keys and clicks to the game, plays the cues it raises and keeps
// the visit ledger up to date.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	out        Outputs
	ctx        context.Context
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	gen        int
	standalone bool // quit the program on Back instead of returning to a menu
	quitting   bool
	backToMenu bool

	sessionID   string
	sessionOpen bool
}

// NewGameModel creates a game model. gen tags its ticks; see TickMsg.
func NewGameModel(ctx context.Context, game registry.Game, out Outputs, cfg core.RuntimeConfig, gen int) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		out:        out,
		ctx:        ctx,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		gen:        gen,
	}
}

// Init mounts the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.leave()
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleMouse turns a left click on an answer box into an answer.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	p, ok := m.game.(registry.Pointer)
	if !ok {
		return m, nil
	}
	if answer, hit := p.AnswerAt(msg.X, msg.Y); hit {
		m.inputFrame.Answer = answer
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.closeSession(false)
		m.sessionID = ""
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.out.Play(m.ctx, m.game.ID(), result.Cues)
	m.record(result)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// record keeps the ledger in step with the game: one session per play
// through, one row per answer.
func (m *GameModel) record(result core.StepResult) {
	ledger := m.out.Ledger
	if ledger == nil {
		return
	}

	if result.State.Started && m.sessionID == "" {
		id, err := ledger.BeginSession(m.game.ID(), result.State.Level)
		if err != nil {
			m.out.logger().Warn("ledger: begin session", "game", m.game.ID(), "error", err)
			return
		}
		m.sessionID = id
		m.sessionOpen = true
	}
	if !m.sessionOpen {
		return
	}

	for _, a := range result.Answers {
		if _, err := ledger.RecordRound(m.sessionID, a); err != nil {
			m.out.logger().Warn("ledger: record round", "game", m.game.ID(), "error", err)
		}
	}
	if result.State.GameOver {
		m.closeSession(true)
	}
}

func (m *GameModel) closeSession(completed bool) {
	if !m.sessionOpen || m.out.Ledger == nil {
		return
	}
	if err := m.out.Ledger.EndSession(m.sessionID, m.gameState.Score, completed); err != nil {
		m.out.logger().Warn("ledger: end session", "game", m.game.ID(), "error", err)
	}
	m.sessionOpen = false
}

// leave ends the game's session and silences its narration.
func (m *GameModel) leave() {
	m.closeSession(false)
	m.out.Silence()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if line := m.out.Caption(); line != "" {
		drawCaption(m.screen, line)
	}
	return RenderScreen(m.screen)
}

// drawCaption writes the narration line just above the key hints.
func drawCaption(s *core.Screen, line string) {
	y := s.Height() - 2
	if y < 0 {
		return
	}
	text := "💬 " + line
	text = runewidth.Truncate(text, s.Width()-2, "…")
	s.DrawHLine(0, y, s.Width(), ' ', core.ColorDefault)
	s.DrawTextCenteredColor(y, text, core.ColorBrightCyan)
}

// BackToMenu reports whether the player asked for the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// State returns the last game state seen.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts a Bubble Tea program playing a single game.
func Run(ctx context.Context, game registry.Game, out Outputs, cfg core.RuntimeConfig) error {
	model := NewGameModel(ctx, game, out, cfg, 1)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
