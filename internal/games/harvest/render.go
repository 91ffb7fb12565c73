package harvest

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/harvest/internal/core"
	"github.com/vovakirdan/harvest/internal/games/harvest/engine"
)

// hudHeight is the number of rows above the board frame.
const hudHeight = 3

// layout places the board on the screen.
type layout struct {
	fits    bool
	frame   core.Rect // Border around the board
	board   core.Rect // Tile area, tileW×tileH characters per cell
	tileW   int
	tileH   int
	footerY int
}

// computeLayout centres the board horizontally below the HUD.
// The screen must hold the HUD, the framed board and one footer row.
func computeLayout(screenW, screenH, size, tileW, tileH int) layout {
	boardW, boardH := size*tileW, size*tileH
	frameW, frameH := boardW+2, boardH+2
	x := max(0, (screenW-frameW)/2)

	l := layout{
		frame: core.NewRect(x, hudHeight, frameW, frameH),
		board: core.NewRect(x+1, hudHeight+1, boardW, boardH),
		tileW: tileW,
		tileH: tileH,
	}
	l.footerY = l.frame.Bottom()
	l.fits = screenW >= frameW && screenH >= l.footerY+1
	return l
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	need := fmt.Sprintf("Need %dx%d", g.layout.frame.W, g.layout.footerY+1)
	dst.DrawTextCentered(y+1, need, core.ColorGray)
}

// renderHUD draws the title, score and the mode's budget.
func (g *Game) renderHUD(dst *core.Screen) {
	f := g.layout.frame
	title := g.Title()
	dst.DrawTextColor(f.X+(f.W-utf8.RuneCountInString(title))/2, 0, title, core.ColorGreen)

	dst.DrawText(f.X, 1, fmt.Sprintf("Score: %d", g.session.Score()))

	var info string
	switch g.mode {
	case ModeMoves:
		info = fmt.Sprintf("Moves left: %d", g.MovesLeft())
	case ModeTimed:
		secs := g.SecondsLeft()
		info = fmt.Sprintf("Time: %d:%02d", secs/60, secs%60)
	default:
		info = fmt.Sprintf("Moves: %d", g.session.Moves())
	}
	dst.DrawText(max(f.X, f.Right()-utf8.RuneCountInString(info)), 1, info)
}

// renderBoard draws the frame and every tile.
func (g *Game) renderBoard(dst *core.Screen) {
	frameColor := core.ColorGray
	if g.session.State() == engine.StateResolving {
		frameColor = core.ColorDarkGray
	}
	dst.DrawBox(g.layout.frame, frameColor)

	sel, selected := g.session.Selection()
	size := g.session.Rules().Size
	for row := range size {
		for col := range size {
			c := engine.At(row, col)
			g.drawTile(dst, c, selected && c == sel, c == g.cursor)
		}
	}
}

// drawTile fills one tileW×tileH cell. The glyph sits in the middle; the
// cursor is drawn as brackets, or as a background when the tile is too
// narrow for them.
func (g *Game) drawTile(dst *core.Screen, c engine.Cell, selected, cursor bool) {
	tw, th := g.layout.tileW, g.layout.tileH
	area := core.NewRect(g.layout.board.X+c.Col*tw, g.layout.board.Y+c.Row*th, tw, th)
	look := g.palette.Look(g.session.Cell(c.Row, c.Col))

	bg := core.ColorDefault
	switch {
	case selected:
		bg = core.ColorHighlight
	case cursor && tw < 3:
		bg = core.ColorDarkGray
	}
	dst.FillRect(area, core.Cell{Rune: ' ', Bg: bg})

	midY := area.Y + (th-1)/2
	dst.SetCell(area.X+(tw-1)/2, midY, core.Cell{Rune: look.Glyph, Fg: look.Color, Bg: bg})
	if cursor && tw >= 3 {
		dst.SetCell(area.X, midY, core.Cell{Rune: '[', Fg: core.ColorWhite, Bg: bg})
		dst.SetCell(area.Right()-1, midY, core.Cell{Rune: ']', Fg: core.ColorWhite, Bg: bg})
	}
}

// renderFooter draws the latest notice, or the no-moves hint.
func (g *Game) renderFooter(dst *core.Screen) {
	msg, color := g.notice, core.ColorYellow
	if msg == "" && g.noMoves && g.mode == ModeClassic && g.session.State() == engine.StateRunning {
		msg, color = "No moves left - press E to end", core.ColorGray
	}
	if msg == "" {
		return
	}
	f := g.layout.frame
	dst.DrawTextColor(f.X+max(0, (f.W-utf8.RuneCountInString(msg))/2), g.layout.footerY, msg, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen) {
	switch {
	case g.paused:
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
	case g.session.State() == engine.StateEnded:
		g.drawOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.session.Score()), "Press R to restart")
	}
}

// drawOverlay draws a boxed message centred on the board.
func (g *Game) drawOverlay(dst *core.Screen, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	box := g.layout.frame.CenterIn(width+4, len(lines)+2)

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorWhite)
	for i, line := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
