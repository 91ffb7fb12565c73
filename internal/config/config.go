// Package config provides YAML-based game configuration loading and
// difficulty presets for Harvest.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/harvest/internal/games/harvest/engine"
)

// HarvestConfig contains all configuration for the Harvest game.
type HarvestConfig struct {
	Board   HarvestBoard     `yaml:"board"`
	Scoring HarvestScoring   `yaml:"scoring"`
	Gravity HarvestGravity   `yaml:"gravity"`
	Modes   HarvestModes     `yaml:"modes"`
	Render  HarvestRender    `yaml:"render"`
	Themes  map[string]Theme `yaml:"themes"`
}

// HarvestBoard defines the grid and the tile mix.
type HarvestBoard struct {
	Size           int     `yaml:"size"`
	MatchMin       int     `yaml:"match_min"`
	FruitTypes     int     `yaml:"fruit_types"`
	VegetableTypes int     `yaml:"vegetable_types"`
	FruitBias      float64 `yaml:"fruit_bias"` // Probability a fresh tile is a fruit
}

// HarvestScoring defines how matches are scored.
type HarvestScoring struct {
	PointsPerMatch int `yaml:"points_per_match"`
}

// HarvestGravity defines how tiles fall after a clear.
type HarvestGravity struct {
	Mode      string `yaml:"mode"`       // "cascade" or "step"
	StepTicks int    `yaml:"step_ticks"` // Ticks between settle steps, 1 = every tick
}

// HarvestModes holds the budgets of the limited modes.
type HarvestModes struct {
	MoveLimit        int `yaml:"move_limit"`
	TimeLimitSeconds int `yaml:"time_limit_seconds"`
}

// HarvestRender defines the on-screen tile size and theme.
type HarvestRender struct {
	TileWidth  int    `yaml:"tile_width"`
	TileHeight int    `yaml:"tile_height"`
	Theme      string `yaml:"theme"` // Name from Themes, or a path to a theme file
}

// Theme maps tile codes ("F1", "V2") to their look.
type Theme struct {
	Tiles map[string]TileStyle `yaml:"tiles"`
}

// TileStyle is how one tile kind is drawn.
type TileStyle struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Rules converts the board, scoring and gravity sections to engine rules.
func (c HarvestConfig) Rules() (engine.Rules, error) {
	mode, err := engine.ParseGravityMode(c.Gravity.Mode)
	if err != nil {
		return engine.Rules{}, fmt.Errorf("config: %w", err)
	}
	return engine.Rules{
		Size:           c.Board.Size,
		MatchMin:       c.Board.MatchMin,
		FruitTypes:     c.Board.FruitTypes,
		VegetableTypes: c.Board.VegetableTypes,
		FruitBias:      c.Board.FruitBias,
		PointsPerMatch: c.Scoring.PointsPerMatch,
		Gravity:        mode,
	}, nil
}

// Validate rejects configurations the game cannot run with.
func (c HarvestConfig) Validate() error {
	var errs []error

	rules, err := c.Rules()
	if err != nil {
		errs = append(errs, err)
	} else if err := rules.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Gravity.StepTicks < 1 {
		errs = append(errs, fmt.Errorf("gravity.step_ticks must be at least 1, got %d", c.Gravity.StepTicks))
	}
	if c.Modes.MoveLimit < 1 {
		errs = append(errs, fmt.Errorf("modes.move_limit must be at least 1, got %d", c.Modes.MoveLimit))
	}
	if c.Modes.TimeLimitSeconds < 1 {
		errs = append(errs, fmt.Errorf("modes.time_limit_seconds must be at least 1, got %d", c.Modes.TimeLimitSeconds))
	}
	if c.Render.TileWidth < 1 || c.Render.TileHeight < 1 {
		errs = append(errs, fmt.Errorf("render tile size must be positive, got %dx%d", c.Render.TileWidth, c.Render.TileHeight))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid harvest config: %w", errors.Join(errs...))
	}
	return nil
}
