package harvest

import (
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/harvest/internal/config"
	"github.com/vovakirdan/harvest/internal/core"
	"github.com/vovakirdan/harvest/internal/games/harvest/engine"
)

// Look is how one tile is drawn.
type Look struct {
	Name        string
	Glyph       rune
	Color       core.Color
	Placeholder bool // Theme had no usable entry for the tile
}

// emptyLook is drawn for cells that are mid-fall.
var emptyLook = Look{Name: "empty", Glyph: '·', Color: core.ColorDarkGray}

// Fallback names and colours by variant, used for placeholders.
var (
	fruitNames     = []string{"Apple", "Orange", "Banana", "Cherry", "Grape", "Lemon", "Plum", "Pear"}
	vegetableNames = []string{"Broccoli", "Eggplant", "Radish", "Carrot", "Pepper", "Onion", "Potato", "Leek"}
	fruitColors    = []core.Color{core.ColorRed, core.ColorOrange, core.ColorYellow, core.ColorLime, core.ColorMagenta, core.ColorWhite}
	vegColors      = []core.Color{core.ColorGreen, core.ColorPurple, core.ColorBrown, core.ColorCyan, core.ColorBlue, core.ColorGray}
)

// Palette maps every tile the rules can produce to a Look.
type Palette struct {
	looks map[engine.Tile]Look
}

// NewPalette builds the looks for all fruit and vegetable variants of
// rules. Tiles the theme does not cover, or covers with an unknown colour
// or without a glyph, get a placeholder and a logged warning.
func NewPalette(th config.Theme, rules engine.Rules) *Palette {
	p := &Palette{looks: make(map[engine.Tile]Look)}
	for n := 1; n <= rules.FruitTypes; n++ {
		p.add(th, engine.Fruit(n))
	}
	for n := 1; n <= rules.VegetableTypes; n++ {
		p.add(th, engine.Vegetable(n))
	}
	return p
}

func (p *Palette) add(th config.Theme, t engine.Tile) {
	style, ok := th.Tiles[t.Code()]
	if !ok {
		logger.Warn("tile asset unavailable, using placeholder", "tile", t.Code(), "reason", "not in theme")
		p.looks[t] = placeholder(t, "")
		return
	}

	glyph, _ := utf8.DecodeRuneInString(style.Glyph)
	color, colorOK := core.ColorDefault, true
	if style.Color != "" {
		color, colorOK = core.ParseColor(style.Color)
	}
	switch {
	case style.Glyph == "" || glyph == utf8.RuneError:
		logger.Warn("tile asset unavailable, using placeholder", "tile", t.Code(), "reason", "missing glyph")
		p.looks[t] = placeholder(t, style.Name)
	case !colorOK:
		logger.Warn("tile asset unavailable, using placeholder", "tile", t.Code(), "reason", "unknown color", "color", style.Color)
		look := placeholder(t, style.Name)
		look.Glyph = glyph
		p.looks[t] = look
	default:
		name := style.Name
		if name == "" {
			name = defaultName(t)
		}
		p.looks[t] = Look{Name: name, Glyph: glyph, Color: color}
	}
}

// placeholder returns the stand-in look: the first letter of the tile's
// name and the variant's fallback colour.
func placeholder(t engine.Tile, name string) Look {
	if name == "" {
		name = defaultName(t)
	}
	glyph, _ := utf8.DecodeRuneInString(name)
	if t.IsVegetable() {
		glyph = unicode.ToLower(glyph)
	} else {
		glyph = unicode.ToUpper(glyph)
	}
	return Look{Name: name, Glyph: glyph, Color: fallbackColor(t), Placeholder: true}
}

func defaultName(t engine.Tile) string {
	names := fruitNames
	if t.IsVegetable() {
		names = vegetableNames
	}
	if i := int(t.Variant) - 1; i >= 0 && i < len(names) {
		return names[i]
	}
	return t.Code()
}

func fallbackColor(t engine.Tile) core.Color {
	colors := fruitColors
	if t.IsVegetable() {
		colors = vegColors
	}
	return colors[(max(int(t.Variant), 1)-1)%len(colors)]
}

// Look returns the look of a tile. Tiles outside the palette, which a
// loaded fixture may contain, get a placeholder.
func (p *Palette) Look(t engine.Tile) Look {
	if t.IsEmpty() {
		return emptyLook
	}
	if look, ok := p.looks[t]; ok {
		return look
	}
	return placeholder(t, "")
}
