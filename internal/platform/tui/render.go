package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/harvest/internal/core"
)

// palette maps core.Color slots to ANSI 256 colour codes.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:       lipgloss.Color("1"),
	core.ColorGreen:     lipgloss.Color("2"),
	core.ColorYellow:    lipgloss.Color("3"),
	core.ColorBlue:      lipgloss.Color("4"),
	core.ColorMagenta:   lipgloss.Color("5"),
	core.ColorCyan:      lipgloss.Color("6"),
	core.ColorWhite:     lipgloss.Color("15"),
	core.ColorOrange:    lipgloss.Color("208"),
	core.ColorPurple:    lipgloss.Color("93"),
	core.ColorBrown:     lipgloss.Color("130"),
	core.ColorLime:      lipgloss.Color("118"),
	core.ColorGray:      lipgloss.Color("245"),
	core.ColorDarkGray:  lipgloss.Color("238"),
	core.ColorHighlight: lipgloss.Color("57"),
}

// style returns the lipgloss style for a foreground/background pair.
func style(fg, bg core.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c, ok := palette[fg]; ok {
		s = s.Foreground(c)
	}
	if c, ok := palette[bg]; ok {
		s = s.Background(c)
	}
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colours share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
