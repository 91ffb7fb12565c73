package core

// Color is a terminal color slot for a screen cell.
// The platform maps slots to ANSI 256-color codes.
type Color uint8

// Color slots. ColorDefault means "terminal default" for both foreground
// and background.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPurple
	ColorBrown
	ColorLime
	ColorGray
	ColorDarkGray
	ColorHighlight // Selection / cursor background
)

// ParseColor maps a theme color name to a slot.
// Unknown names report false.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}

var colorNames = map[string]Color{
	"default":   ColorDefault,
	"red":       ColorRed,
	"green":     ColorGreen,
	"yellow":    ColorYellow,
	"blue":      ColorBlue,
	"magenta":   ColorMagenta,
	"cyan":      ColorCyan,
	"white":     ColorWhite,
	"orange":    ColorOrange,
	"purple":    ColorPurple,
	"brown":     ColorBrown,
	"lime":      ColorLime,
	"gray":      ColorGray,
	"dark_gray": ColorDarkGray,
	"highlight": ColorHighlight,
}
