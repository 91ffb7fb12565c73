package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/harvest/internal/core"
	"github.com/vovakirdan/harvest/internal/registry"
	"github.com/vovakirdan/harvest/internal/storage"
	"github.com/vovakirdan/harvest/internal/submit"
)

// noticeTicks is how long a platform notice stays on the status line.
const noticeTicks = 150

// Options wires a game model to its collaborators. All fields are optional.
type Options struct {
	Store  *storage.Store // Finished games are recorded here
	Sink   submit.Sink    // Enables the end-of-game summary form
	Logger *log.Logger
}

// resizer is implemented by games that can adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// GameModel is the Bubble Tea model that runs one game: it drives the tick
// loop, maps keys and clicks to input frames and shows the summary form
// when the game ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sink       submit.Sink
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	summary    *summaryForm
	submitting bool
	notice     string
	noticeLeft int
	scoreSaved bool
	quitting   bool
	backToMenu bool
	standalone bool // Back quits the program instead of returning to a menu
}

// NewGameModel creates a model for game. The screen is one row shorter
// than the terminal to leave room for the status line.
func NewGameModel(game registry.Game, opts Options, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.ScreenH = max(0, cfg.ScreenH-1)

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		sink:       opts.Sink,
		logger:     logger,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.summary != nil {
			return m.updateSummary(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.summary == nil && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.inputFrame.Click(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case submitResultMsg:
		return m.handleSubmitResult(msg)
	}

	if m.summary != nil {
		return m.updateSummary(msg)
	}
	return m, nil
}

// handleKey processes keyboard input during play.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize adapts the screen. Games that can resize keep their state.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(0, msg.Height-1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.decayNotice()

	if m.summary != nil {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		m.recordScore()
		if m.sink != nil {
			form := newSummaryForm(m.game.ID(), m.gameState.Score, m.gameState.Moves)
			m.summary = &form
			return m, tea.Batch(tickCmd(m.config.TickRate), textinput.Blink)
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// recordScore saves a finished game. Failures are logged and ignored.
func (m GameModel) recordScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Moves); err != nil {
		m.logger.Warn("could not save score", "mode", m.game.ID(), "err", err)
	}
}

// updateSummary routes input to the summary form.
func (m GameModel) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.submitting {
		return m, nil
	}

	form, action, cmd := m.summary.update(msg)
	m.summary = &form

	switch action {
	case summarySubmit:
		m.submitting = true
		return m, submitCmd(m.sink, form.entry())
	case summaryClose:
		m.restart()
		return m, nil
	}
	return m, cmd
}

// handleSubmitResult shows the outcome and starts a new game.
func (m GameModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.logger.Warn("score submission failed", "mode", msg.entry.Mode, "err", msg.err)
		m.setNotice(fmt.Sprintf("Submission failed: %v", msg.err))
	} else {
		m.logger.Info("score submitted", "id", msg.entry.ID, "mode", msg.entry.Mode, "score", msg.entry.Score)
		m.setNotice(fmt.Sprintf("Thanks %s! Your score of %d has been submitted.", msg.entry.Name, msg.entry.Score))
	}
	m.restart()
	return m, nil
}

// restart deals a new game with a fresh seed.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.summary = nil
	m.submitting = false
	m.scoreSaved = false
	m.inputFrame.Clear()
}

func (m *GameModel) setNotice(msg string) {
	m.notice = msg
	m.noticeLeft = noticeTicks
}

func (m *GameModel) decayNotice() {
	if m.noticeLeft > 0 {
		m.noticeLeft--
		if m.noticeLeft == 0 {
			m.notice = ""
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".harvest", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	m.setNotice("Saved " + path)
}

var (
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the game and the status line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.summary != nil {
		return m.summary.view(m.config.ScreenW, m.config.ScreenH+1, m.submitting)
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	status := helpStyle.Render(m.help.View(m.keys))
	if m.notice != "" {
		status = noticeStyle.Render(m.notice)
	}
	return RenderScreen(m.screen) + "\n" + status
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the player quits or goes
// back to the menu. It reports whether the menu was requested.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, opts, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
