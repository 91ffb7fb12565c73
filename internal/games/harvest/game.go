// Package harvest adapts the match-3 engine to the game registry: it
// maps input frames onto the board, paces the settle loop and draws the
// game into a core.Screen.
package harvest

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/harvest/internal/config"
	"github.com/vovakirdan/harvest/internal/core"
	"github.com/vovakirdan/harvest/internal/games/harvest/engine"
	"github.com/vovakirdan/harvest/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "harvest"
	ModeMoves   Mode = "harvest_moves"
	ModeTimed   Mode = "harvest_timed"
)

// Modes lists every registered mode in menu order.
var Modes = []Mode{ModeClassic, ModeMoves, ModeTimed}

// noticeTicks is how long a notice stays in the footer.
const noticeTicks = 45

// Package-level variables for config
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	themeOverride    string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects a difficulty preset applied on every Reset.
// The empty string keeps the loaded config as is.
func SetDifficultyPreset(preset string) error {
	if preset == "" {
		difficultyPreset = ""
		return nil
	}
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// SetTheme overrides render.theme with a theme name or file path.
func SetTheme(nameOrPath string) {
	themeOverride = nameOrPath
}

// SetLogger sets the logger used for game events and theme warnings.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game is one Harvest session bound to a screen.
type Game struct {
	mode Mode
	cfg  *config.HarvestConfig // Fixed config; nil means load on Reset

	session  *engine.Session
	palette  *Palette
	settings config.HarvestConfig
	tickRate int
	tick     uint64

	screenW int
	screenH int
	layout  layout

	cursor      engine.Cell
	paused      bool
	tooSmall    bool
	noMoves     bool
	notice      string
	noticeLeft  int
	endReported bool
}

// New creates a game in the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// NewWithConfig creates a game that always uses cfg instead of loading
// configuration files.
func NewWithConfig(mode Mode, cfg config.HarvestConfig) *Game {
	return &Game{mode: mode, cfg: &cfg}
}

func init() {
	for _, m := range Modes {
		registry.Register(string(m), func() registry.Game {
			return New(m)
		})
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeMoves:
		return "Harvest (Moves)"
	case ModeTimed:
		return "Harvest (Timed)"
	default:
		return "Harvest"
	}
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	switch g.mode {
	case ModeMoves:
		return "Score as much as you can with a fixed number of swaps"
	case ModeTimed:
		return "Score as much as you can before the clock runs out"
	default:
		return "Swap fruit into lines of three; vegetables next to a line are picked too"
	}
}

// loadConfig returns the config for the next game.
func (g *Game) loadConfig() config.HarvestConfig {
	if g.cfg != nil {
		return *g.cfg
	}
	cfg, err := config.LoadHarvest(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultHarvestConfig()
	}
	if difficultyPreset != "" {
		config.ApplyHarvestPreset(&cfg, difficultyPreset)
	}
	if themeOverride != "" {
		cfg.Render.Theme = themeOverride
	}
	return cfg
}

// Reset deals a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.settings = g.loadConfig()
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}

	rules, err := g.settings.Rules()
	if err == nil {
		err = rules.Validate()
	}
	if err != nil {
		logger.Error("invalid rules, using defaults", "err", err)
		g.settings = config.DefaultHarvestConfig()
		rules, _ = g.settings.Rules()
	}

	g.session, err = engine.NewSession(rules, rand.New(rand.NewSource(cfg.Seed)),
		engine.WithEndCondition(g.endCondition()),
		engine.WithStepInterval(g.settings.Gravity.StepTicks),
		engine.WithObserver(g.onEvent),
	)
	if err != nil {
		// Rules were validated above.
		panic(fmt.Sprintf("harvest: %v", err))
	}

	g.palette = NewPalette(g.themeFor(), rules)
	g.tick = 0
	g.cursor = engine.At(0, 0)
	g.paused = false
	g.noMoves = false
	g.notice = ""
	g.noticeLeft = 0
	g.endReported = false

	g.session.Start()
	g.resize(cfg.ScreenW, cfg.ScreenH)
}

// themeFor resolves the configured theme. A theme that cannot be loaded
// leaves every tile on its placeholder look.
func (g *Game) themeFor() config.Theme {
	th, err := g.settings.ResolveTheme()
	if err != nil {
		logger.Warn("theme unavailable, drawing placeholders", "theme", g.settings.Render.Theme, "err", err)
		return config.Theme{}
	}
	return th
}

// endCondition builds the game-over predicate for the mode.
func (g *Game) endCondition() engine.EndCondition {
	switch g.mode {
	case ModeMoves:
		return engine.Any(engine.MoveLimit(g.settings.Modes.MoveLimit), engine.NoMovesLeft)
	case ModeTimed:
		return engine.Any(engine.TickLimit(g.timeLimitTicks()), engine.NoMovesLeft)
	default:
		return engine.Never
	}
}

func (g *Game) timeLimitTicks() uint64 {
	return uint64(g.settings.Modes.TimeLimitSeconds) * uint64(g.tickRate)
}

// resize recomputes the layout for a new screen size.
func (g *Game) resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout = computeLayout(w, h, g.session.Rules().Size, g.settings.Render.TileWidth, g.settings.Render.TileHeight)
	g.tooSmall = !g.layout.fits
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	over := g.session.State() == engine.StateEnded

	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused || over {
		// Restart is handled by the platform via Reset.
		g.decayNotice()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionEndGame) {
		g.session.End()
		return g.result()
	}

	g.moveCursor(in)
	if in.Has(core.ActionSelect) {
		g.session.Enqueue(g.cursor)
	}
	for _, p := range in.Clicks {
		g.click(p)
	}

	g.session.Tick()
	g.decayNotice()
	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State()}
}

// moveCursor applies at most one cursor move per tick.
func (g *Game) moveCursor(in core.InputFrame) {
	size := g.session.Rules().Size
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	default:
		return
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, size-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, size-1)
}

// click maps a screen position to a board cell and queues it.
func (g *Game) click(p core.Point) {
	if !g.layout.board.Contains(p) {
		return
	}
	local := g.layout.board.Local(p)
	c, ok := g.session.CellAt(local.X, local.Y, g.layout.tileW, g.layout.tileH)
	if !ok {
		return
	}
	g.cursor = c
	g.session.Enqueue(c)
}

func (g *Game) decayNotice() {
	if g.noticeLeft > 0 {
		g.noticeLeft--
		if g.noticeLeft == 0 {
			g.notice = ""
		}
	}
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeLeft = noticeTicks
}

// onEvent logs session events and turns them into footer notices.
func (g *Game) onEvent(e engine.Event) {
	switch e.Kind {
	case engine.EventStarted:
		logger.Debug("game started", "mode", g.mode)
	case engine.EventSwapCommitted:
		logger.Debug("swap committed", "from", e.From, "to", e.To, "matches", e.Matches, "cleared", e.Cleared, "score", e.Score)
		g.setNotice(fmt.Sprintf("+%d", e.Points))
	case engine.EventSwapReverted:
		logger.Debug("swap reverted", "from", e.From, "to", e.To)
		g.setNotice("No match")
	case engine.EventCascade:
		logger.Debug("cascade", "matches", e.Matches, "cleared", e.Cleared, "score", e.Score)
		g.setNotice(fmt.Sprintf("Cascade +%d", e.Points))
	case engine.EventSettled:
		logger.Debug("board settled", "steps", e.Steps, "score", e.Score)
		g.noMoves = len(engine.PossibleMoves(g.session.Board(), g.session.Rules().MatchMin)) == 0
		if g.noMoves && g.mode == ModeClassic {
			g.setNotice("No moves left")
		}
	case engine.EventEnded:
		if !g.endReported {
			g.endReported = true
			logger.Info("game over", "mode", g.mode, "score", e.Score, "moves", g.session.Moves())
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Moves:    g.session.Moves(),
		GameOver: g.session.State() == engine.StateEnded,
		Paused:   g.paused || g.tooSmall,
		Busy:     g.session.State() == engine.StateResolving,
	}
}

// MovesLeft returns the remaining swaps in moves mode, or -1.
func (g *Game) MovesLeft() int {
	if g.mode != ModeMoves {
		return -1
	}
	return max(0, g.settings.Modes.MoveLimit-g.session.Moves())
}

// SecondsLeft returns the remaining time in timed mode, or -1.
func (g *Game) SecondsLeft() int {
	if g.mode != ModeTimed {
		return -1
	}
	limit := g.timeLimitTicks()
	ticks := g.session.Ticks()
	if ticks >= limit {
		return 0
	}
	rate := uint64(g.tickRate)
	return int((limit - ticks + rate - 1) / rate)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	if g.session == nil {
		return
	}
	g.resize(w, h)
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space/Enter/Click: Pick | P: Pause | E: End | R: Restart | Q: Quit"
}
