package config

import (
	_ "embed"
)

//go:embed defaults/harvest.yaml
var defaultHarvestYAML []byte

// DefaultHarvestConfig returns the built-in configuration. It matches
// defaults/harvest.yaml and is used when even the embedded file cannot be
// parsed.
func DefaultHarvestConfig() HarvestConfig {
	return HarvestConfig{
		Board: HarvestBoard{
			Size:           8,
			MatchMin:       3,
			FruitTypes:     3,
			VegetableTypes: 3,
			FruitBias:      0.6,
		},
		Scoring: HarvestScoring{
			PointsPerMatch: 10,
		},
		Gravity: HarvestGravity{
			Mode:      "cascade",
			StepTicks: 4,
		},
		Modes: HarvestModes{
			MoveLimit:        30,
			TimeLimitSeconds: 180,
		},
		Render: HarvestRender{
			TileWidth:  4,
			TileHeight: 2,
			Theme:      "classic",
		},
		Themes: map[string]Theme{
			"classic": ClassicTheme(),
		},
	}
}

// ClassicTheme is the default fruit and vegetable set.
func ClassicTheme() Theme {
	return Theme{Tiles: map[string]TileStyle{
		"F1": {Name: "Apple", Glyph: "@", Color: "red"},
		"F2": {Name: "Orange", Glyph: "O", Color: "orange"},
		"F3": {Name: "Banana", Glyph: ")", Color: "yellow"},
		"V1": {Name: "Broccoli", Glyph: "#", Color: "green"},
		"V2": {Name: "Eggplant", Glyph: "&", Color: "purple"},
		"V3": {Name: "Radish", Glyph: "%", Color: "magenta"},
	}}
}
