package engine

import "fmt"

// GravityMode selects how far tiles fall per gravity pass.
type GravityMode int

const (
	// GravityCascade lets every gap pull the nearest tile above it, which
	// compacts a column completely in one bottom-up sweep, then refills
	// every remaining gap.
	GravityCascade GravityMode = iota

	// GravityStep moves tiles at most one row per pass and only refills
	// the top row, so tiles visibly drop one row per tick.
	GravityStep
)

// String returns the config name of the mode.
func (m GravityMode) String() string {
	if m == GravityStep {
		return "step"
	}
	return "cascade"
}

// ParseGravityMode parses "cascade" (or "") and "step".
func ParseGravityMode(s string) (GravityMode, error) {
	switch s {
	case "", "cascade":
		return GravityCascade, nil
	case "step":
		return GravityStep, nil
	}
	return GravityCascade, fmt.Errorf("engine: unknown gravity mode %q", s)
}

// Settle runs one gravity pass: compaction followed by refill.
// Returns true if any cell changed value.
func Settle(b *Board, src Source, mode GravityMode) bool {
	moved := Compact(b, mode)
	filled := Refill(b, src, mode)
	return moved || filled
}

// Compact moves tiles down into Empty cells column by column.
// Tiles only change row; none are created or destroyed.
func Compact(b *Board, mode GravityMode) bool {
	n := b.Size()
	moved := false

	for col := range n {
		for row := n - 1; row > 0; row-- {
			if !b.Get(row, col).IsEmpty() {
				continue
			}
			if mode == GravityStep {
				if above := b.Get(row-1, col); !above.IsEmpty() {
					b.Set(row, col, above)
					b.Set(row-1, col, Empty)
					moved = true
				}
				continue
			}
			for above := row - 1; above >= 0; above-- {
				if t := b.Get(above, col); !t.IsEmpty() {
					b.Set(row, col, t)
					b.Set(above, col, Empty)
					moved = true
					break
				}
			}
		}
	}

	return moved
}

// Refill replaces Empty cells with fresh tiles from src. In GravityStep
// mode only the top row is refilled.
func Refill(b *Board, src Source, mode GravityMode) bool {
	n := b.Size()
	rows := n
	if mode == GravityStep {
		rows = 1
	}

	filled := false
	for col := range n {
		for row := range rows {
			if b.Get(row, col).IsEmpty() {
				b.Set(row, col, src.Next())
				filled = true
			}
		}
	}
	return filled
}
