package harvest

import (
	"strings"
	"testing"

	"github.com/vovakirdan/harvest/internal/config"
	"github.com/vovakirdan/harvest/internal/core"
	"github.com/vovakirdan/harvest/internal/games/harvest/engine"
	"github.com/vovakirdan/harvest/internal/registry"
)

// swapBoard has no runs; swapping (0,2) and (0,3) lines up F1 F1 F1 in
// row 0, swapping (0,4) and (0,5) matches nothing.
const swapBoard = `
F1 F1 V2 F1 V1 V2 F1 V1
F2 F3 V3 F2 F3 V3 F2 F3
V1 V2 F1 V1 V2 F1 V1 V2
F3 V3 F2 F3 V3 F2 F3 V3
V2 F1 V1 V2 F1 V1 V2 F1
V3 F2 F3 V3 F2 F3 V3 F2
F1 V1 V2 F1 V1 V2 F1 V1
F2 F3 V3 F2 F3 V3 F2 F3
`

// On an 80x24 screen the 34-wide frame starts at x=23, so tiles start at
// (24, 4) and are 4x2 characters.
const (
	boardX = 24
	boardY = 4
)

func testConfig() config.HarvestConfig {
	cfg := config.DefaultHarvestConfig()
	cfg.Gravity.StepTicks = 1
	return cfg
}

func newGame(t *testing.T, mode Mode, cfg config.HarvestConfig) *Game {
	t.Helper()
	g := NewWithConfig(mode, cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1})
	return g
}

// loadSwapBoard installs swapBoard into a fresh game.
func loadSwapBoard(t *testing.T, g *Game) {
	t.Helper()
	b, err := engine.ParseBoard(swapBoard)
	if err != nil {
		t.Fatalf("parse board: %v", err)
	}
	if err := g.session.LoadBoard(b); err != nil {
		t.Fatalf("load board: %v", err)
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func clickTile(row, col int) core.InputFrame {
	in := core.NewInputFrame()
	in.Click(boardX+col*4+1, boardY+row*2)
	return in
}

// settle steps empty frames until the board is stable.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.State().Busy; i++ {
		if i > 1000 {
			t.Fatal("board never settled")
		}
		g.Step(core.NewInputFrame())
	}
}

func TestModesRegistered(t *testing.T) {
	for _, m := range Modes {
		if !registry.Exists(string(m)) {
			t.Errorf("mode %q is not registered", m)
			continue
		}
		g, err := registry.Create(string(m))
		if err != nil {
			t.Fatalf("Create(%q): %v", m, err)
		}
		if g.ID() != string(m) {
			t.Errorf("ID() = %q, want %q", g.ID(), m)
		}
	}
}

func TestResetStartsStableGame(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())

	state := g.State()
	if state.GameOver || state.Busy || state.Paused {
		t.Errorf("unexpected state after reset: %+v", state)
	}
	if state.Score != 0 || state.Moves != 0 {
		t.Errorf("expected zero score and moves, got %d/%d", state.Score, state.Moves)
	}
	if engine.HasMatch(g.session.Board(), 3) {
		t.Error("initial board should have no matches")
	}
}

func TestCursorClamped(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())

	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionUp))
	if g.cursor != engine.At(0, 0) {
		t.Errorf("cursor left the board: %v", g.cursor)
	}

	for range 10 {
		g.Step(frame(core.ActionRight))
		g.Step(frame(core.ActionDown))
	}
	if g.cursor != engine.At(7, 7) {
		t.Errorf("expected cursor at (7,7), got %v", g.cursor)
	}
}

func TestKeyboardSwapCommits(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())
	loadSwapBoard(t, g)

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionSelect))
	if sel, ok := g.session.Selection(); !ok || sel != engine.At(0, 2) {
		t.Fatalf("expected (0,2) selected, got %v %v", sel, ok)
	}

	res := g.Step(frame(core.ActionRight, core.ActionSelect))
	if g.notice != "+10" {
		t.Errorf("expected notice %q, got %q", "+10", g.notice)
	}
	if res.State.Score != 10 || res.State.Moves != 1 {
		t.Errorf("expected score 10 after 1 move, got %d after %d", res.State.Score, res.State.Moves)
	}
	if !res.State.Busy {
		t.Error("expected the board to be settling")
	}

	settle(t, g)
	if engine.HasMatch(g.session.Board(), 3) {
		t.Error("settled board still has a match")
	}
}

func TestClickSelectsCell(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())
	loadSwapBoard(t, g)

	g.Step(clickTile(0, 2))
	sel, ok := g.session.Selection()
	if !ok || sel != engine.At(0, 2) {
		t.Fatalf("expected (0,2) selected, got %v %v", sel, ok)
	}
	if g.cursor != sel {
		t.Errorf("cursor should follow the click, got %v", g.cursor)
	}

	outside := core.NewInputFrame()
	outside.Click(0, 0)
	g.Step(outside)
	if sel, _ := g.session.Selection(); sel != engine.At(0, 2) {
		t.Errorf("click outside the board changed the selection to %v", sel)
	}

	res := g.Step(clickTile(0, 3))
	if res.State.Score != 10 {
		t.Errorf("expected score 10, got %d", res.State.Score)
	}
}

func TestRevertedSwapNotice(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())
	loadSwapBoard(t, g)

	g.Step(clickTile(0, 4))
	res := g.Step(clickTile(0, 5))
	if g.notice != "No match" {
		t.Errorf("expected notice %q, got %q", "No match", g.notice)
	}
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if footer := scr.Row(g.layout.footerY); !strings.Contains(footer, "No match") {
		t.Errorf("footer should show the notice, got %q", footer)
	}
	if res.State.Moves != 0 {
		t.Errorf("reverted swap should not count, got %d moves", res.State.Moves)
	}
}

func TestClicksDroppedWhileBusy(t *testing.T) {
	cfg := testConfig()
	cfg.Gravity.StepTicks = 5
	g := newGame(t, ModeClassic, cfg)
	loadSwapBoard(t, g)

	g.Step(clickTile(0, 2))
	g.Step(clickTile(0, 3))
	if !g.State().Busy {
		t.Fatal("expected the board to be settling")
	}

	g.Step(clickTile(5, 5))
	if _, ok := g.session.Selection(); ok {
		t.Error("click during settling should be dropped")
	}

	settle(t, g)
	g.Step(clickTile(5, 5))
	if _, ok := g.session.Selection(); !ok {
		t.Error("click after settling should select")
	}
}

func TestPause(t *testing.T) {
	cfg := testConfig()
	cfg.Modes.TimeLimitSeconds = 3
	g := newGame(t, ModeTimed, cfg)
	loadSwapBoard(t, g)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	ticks := g.session.Ticks()
	for range 50 {
		g.Step(clickTile(0, 2))
	}
	if g.session.Ticks() != ticks {
		t.Error("clock should not run while paused")
	}
	if _, ok := g.session.Selection(); ok {
		t.Error("clicks should be ignored while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestEndGameAction(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())

	res := g.Step(frame(core.ActionEndGame))
	if !res.State.GameOver {
		t.Fatal("expected game over after EndGame")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("pause should be ignored after game over")
	}
	if got := g.Snapshot().State; got != StateGameOver {
		t.Errorf("snapshot state = %q, want %q", got, StateGameOver)
	}
}

func TestClassicNeverEnds(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())
	for range 2000 {
		g.Step(core.NewInputFrame())
	}
	if g.State().GameOver {
		t.Error("classic mode should only end on request")
	}
}

func TestMovesModeEnds(t *testing.T) {
	cfg := testConfig()
	cfg.Modes.MoveLimit = 1
	g := newGame(t, ModeMoves, cfg)
	loadSwapBoard(t, g)

	if got := g.MovesLeft(); got != 1 {
		t.Errorf("MovesLeft() = %d, want 1", got)
	}

	g.Step(clickTile(0, 2))
	g.Step(clickTile(0, 3))
	if g.State().GameOver {
		t.Error("game should not end while the board is settling")
	}
	settle(t, g)

	if !g.State().GameOver {
		t.Error("expected game over after the last move settled")
	}
	if got := g.MovesLeft(); got != 0 {
		t.Errorf("MovesLeft() = %d, want 0", got)
	}
}

func TestTimedModeEnds(t *testing.T) {
	cfg := testConfig()
	cfg.Modes.TimeLimitSeconds = 3
	g := newGame(t, ModeTimed, cfg)
	loadSwapBoard(t, g)

	if got := g.SecondsLeft(); got != 3 {
		t.Errorf("SecondsLeft() = %d, want 3", got)
	}
	for range 10 {
		g.Step(core.NewInputFrame())
	}
	if got := g.SecondsLeft(); got != 2 {
		t.Errorf("SecondsLeft() after 1s = %d, want 2", got)
	}
	for range 20 {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Error("expected game over when time ran out")
	}
	if got := g.SecondsLeft(); got != 0 {
		t.Errorf("SecondsLeft() = %d, want 0", got)
	}
}

func TestTooSmall(t *testing.T) {
	g := NewWithConfig(ModeClassic, testConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 10, Seed: 1})

	if !g.State().Paused {
		t.Error("expected paused on a small screen")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small message, got:\n%s", screen)
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("expected game to resume after resize")
	}
}

func TestRenderBoard(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())
	loadSwapBoard(t, g)
	g.Step(clickTile(1, 1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Harvest") {
		t.Errorf("expected title in row 0, got %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Score: 0") {
		t.Errorf("expected score in row 1, got %q", screen.Row(1))
	}

	// Tile (0,0) is an apple.
	apple := screen.GetCell(boardX+1, boardY)
	if apple.Rune != '@' || apple.Fg != core.ColorRed {
		t.Errorf("expected red '@' at (0,0), got %q fg %d", apple.Rune, apple.Fg)
	}

	// The cursor follows the click to (1,1) and draws brackets.
	if got := screen.Get(boardX+4, boardY+2); got != '[' {
		t.Errorf("expected cursor bracket, got %q", got)
	}
	if got := screen.Get(boardX+7, boardY+2); got != ']' {
		t.Errorf("expected cursor bracket, got %q", got)
	}

	// The selected tile is highlighted.
	if got := screen.GetCell(boardX+5, boardY+2).Bg; got != core.ColorHighlight {
		t.Errorf("expected highlighted selection, got bg %d", got)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newGame(t, ModeClassic, testConfig())
	screen := core.NewScreen(80, 24)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause overlay")
	}

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionEndGame))
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected game over overlay")
	}
}

func TestPalettePlaceholders(t *testing.T) {
	th := config.Theme{Tiles: map[string]config.TileStyle{
		"F1": {Name: "Apple", Glyph: "@", Color: "red"},
		"F2": {Name: "Orange", Glyph: "O", Color: "ultraviolet"},
		"F3": {Name: "Banana"},
		"V1": {Name: "Broccoli", Glyph: "#"},
	}}
	p := NewPalette(th, engine.DefaultRules())

	tests := []struct {
		tile        engine.Tile
		glyph       rune
		color       core.Color
		placeholder bool
	}{
		{engine.Fruit(1), '@', core.ColorRed, false},
		{engine.Fruit(2), 'O', core.ColorOrange, true},
		{engine.Fruit(3), 'B', core.ColorYellow, true},
		{engine.Vegetable(1), '#', core.ColorDefault, false},
		{engine.Vegetable(3), 'r', core.ColorBrown, true},
		{engine.Fruit(9), 'F', core.ColorYellow, true},
		{engine.Empty, '·', core.ColorDarkGray, false},
	}
	for _, tt := range tests {
		look := p.Look(tt.tile)
		if look.Glyph != tt.glyph || look.Color != tt.color || look.Placeholder != tt.placeholder {
			t.Errorf("Look(%v) = %+v, want glyph %q color %d placeholder %v",
				tt.tile, look, tt.glyph, tt.color, tt.placeholder)
		}
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	a := newGame(t, ModeMoves, testConfig())
	b := newGame(t, ModeMoves, testConfig())

	inputs := []core.InputFrame{
		frame(core.ActionRight),
		frame(core.ActionSelect),
		frame(core.ActionDown, core.ActionSelect),
		clickTile(3, 3),
		clickTile(3, 4),
	}
	for range 20 {
		inputs = append(inputs, core.NewInputFrame())
	}

	for _, in := range inputs {
		a.Step(in.Clone())
		b.Step(in.Clone())
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa != sb {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", sa, sb)
	}
	if sa.Mode != string(ModeMoves) || sa.Tick != uint64(len(inputs)) {
		t.Errorf("unexpected snapshot header: %+v", sa)
	}
}
