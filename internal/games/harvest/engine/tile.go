// Package engine implements the Harvest match/cascade rules: the board,
// run detection, cascading removal, gravity refill and the session that
// sequences them. It has no dependencies on the platform layer so it can be
// driven from tests, the TUI or an SSH session alike.
package engine

import "fmt"

// Kind is the category a tile belongs to.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindFruit
	KindVegetable
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindFruit:
		return "Fruit"
	case KindVegetable:
		return "Vegetable"
	default:
		return "Unknown"
	}
}

// Tile is the value held by a board cell.
// Variant is 1-based within its kind and is zero for Empty.
type Tile struct {
	Kind    Kind
	Variant uint8
}

// Empty is the transient value of a cleared cell.
var Empty = Tile{}

// Fruit returns the n-th fruit tile (1-based).
func Fruit(n int) Tile {
	return Tile{Kind: KindFruit, Variant: uint8(n)}
}

// Vegetable returns the n-th vegetable tile (1-based).
func Vegetable(n int) Tile {
	return Tile{Kind: KindVegetable, Variant: uint8(n)}
}

// IsEmpty reports whether the tile is Empty.
func (t Tile) IsEmpty() bool { return t.Kind == KindEmpty }

// IsFruit reports whether the tile is a fruit.
func (t Tile) IsFruit() bool { return t.Kind == KindFruit }

// IsVegetable reports whether the tile is a vegetable.
func (t Tile) IsVegetable() bool { return t.Kind == KindVegetable }

// Code returns a compact two-character code: ".." for Empty, F1, V2, etc.
// Used by Board.String and ParseBoard.
func (t Tile) Code() string {
	switch t.Kind {
	case KindFruit:
		return fmt.Sprintf("F%d", t.Variant)
	case KindVegetable:
		return fmt.Sprintf("V%d", t.Variant)
	default:
		return ".."
	}
}

// String implements fmt.Stringer.
func (t Tile) String() string {
	if t.IsEmpty() {
		return "Empty"
	}
	return t.Code()
}

// ParseTile parses a code produced by Tile.Code.
func ParseTile(code string) (Tile, error) {
	if code == ".." || code == "." {
		return Empty, nil
	}
	var prefix rune
	var n int
	if _, err := fmt.Sscanf(code, "%c%d", &prefix, &n); err != nil || n <= 0 || n > 255 {
		return Empty, fmt.Errorf("engine: invalid tile code %q", code)
	}
	switch prefix {
	case 'F', 'f':
		return Fruit(n), nil
	case 'V', 'v':
		return Vegetable(n), nil
	}
	return Empty, fmt.Errorf("engine: invalid tile code %q", code)
}
