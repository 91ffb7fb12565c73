package engine

import (
	"errors"
	"fmt"
)

// Rules holds the tunable parameters of a game.
type Rules struct {
	Size           int         // Board dimension (N×N)
	MatchMin       int         // Minimum run length that counts as a match
	FruitTypes     int         // Number of fruit variants (K)
	VegetableTypes int         // Number of vegetable variants (M)
	FruitBias      float64     // Probability of drawing a fruit
	PointsPerMatch int         // Points per match run
	Gravity        GravityMode // Fall behaviour
}

// DefaultRules returns the classic 8×8 configuration.
func DefaultRules() Rules {
	return Rules{
		Size:           8,
		MatchMin:       3,
		FruitTypes:     3,
		VegetableTypes: 3,
		FruitBias:      0.6,
		PointsPerMatch: DefaultPointsPerMatch,
		Gravity:        GravityCascade,
	}
}

// Validate rejects rule sets the engine cannot play.
func (r Rules) Validate() error {
	var errs []error
	if r.MatchMin < 2 {
		errs = append(errs, fmt.Errorf("match_min must be at least 2, got %d", r.MatchMin))
	}
	if r.Size < r.MatchMin {
		errs = append(errs, fmt.Errorf("board size %d is smaller than match_min %d", r.Size, r.MatchMin))
	}
	if r.FruitTypes < 1 || r.FruitTypes > 255 {
		errs = append(errs, fmt.Errorf("fruit_types must be in [1,255], got %d", r.FruitTypes))
	}
	if r.VegetableTypes < 0 || r.VegetableTypes > 255 {
		errs = append(errs, fmt.Errorf("vegetable_types must be in [0,255], got %d", r.VegetableTypes))
	}
	if r.FruitBias < 0 || r.FruitBias > 1 {
		errs = append(errs, fmt.Errorf("fruit_bias must be in [0,1], got %g", r.FruitBias))
	}
	if !r.drawsVegetables() && r.FruitTypes < 3 {
		// With two fruits a left run and an upper run can rule out both.
		errs = append(errs, fmt.Errorf("without vegetables at least 3 fruit types are needed to deal a board without matches, got %d", r.FruitTypes))
	}
	if r.PointsPerMatch < 0 {
		errs = append(errs, fmt.Errorf("points_per_match must not be negative, got %d", r.PointsPerMatch))
	}
	if len(errs) > 0 {
		return fmt.Errorf("engine: invalid rules: %w", errors.Join(errs...))
	}
	return nil
}

// drawsVegetables reports whether a random source built from r can ever
// produce a vegetable.
func (r Rules) drawsVegetables() bool {
	return r.VegetableTypes > 0 && r.FruitBias < 1
}

// drawsFruit reports whether a random source built from r can ever
// produce a fruit.
func (r Rules) drawsFruit() bool {
	return r.VegetableTypes <= 0 || r.FruitBias > 0
}

// candidates lists every tile a random source built from r can produce,
// fruits first.
func (r Rules) candidates() []Tile {
	var tiles []Tile
	if r.drawsFruit() {
		for n := 1; n <= r.FruitTypes; n++ {
			tiles = append(tiles, Fruit(n))
		}
	}
	if r.drawsVegetables() {
		for n := 1; n <= r.VegetableTypes; n++ {
			tiles = append(tiles, Vegetable(n))
		}
	}
	return tiles
}
