package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// Cell addresses a board position. Row 0 is the top row.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Adjacent reports whether c and other share an edge (4-neighbourhood).
func (c Cell) Adjacent(other Cell) bool {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	return (dr == 1 || dr == -1) && dc == 0 || (dc == 1 || dc == -1) && dr == 0
}

// String returns "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// neighbours lists the 4-directional offsets: up, down, left, right.
var neighbours = [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Span is a half-open index range [From, To).
type Span struct {
	From int
	To   int
}

// Source produces fresh tiles for generation and refill.
type Source interface {
	Next() Tile
}

// RandomSource draws tiles with a fruit/vegetable category bias and a
// uniform choice within the chosen category.
type RandomSource struct {
	rng        *rand.Rand
	fruitTypes int
	vegTypes   int
	fruitBias  float64
}

// NewRandomSource creates a tile source. fruitBias is the probability of
// drawing a fruit (0.6 in the classic game).
func NewRandomSource(rng *rand.Rand, fruitTypes, vegTypes int, fruitBias float64) *RandomSource {
	return &RandomSource{
		rng:        rng,
		fruitTypes: fruitTypes,
		vegTypes:   vegTypes,
		fruitBias:  fruitBias,
	}
}

// Next returns a random tile.
func (s *RandomSource) Next() Tile {
	if s.vegTypes <= 0 || s.rng.Float64() < s.fruitBias {
		return Fruit(s.rng.Intn(s.fruitTypes) + 1)
	}
	return Vegetable(s.rng.Intn(s.vegTypes) + 1)
}

// Board is a square grid of tiles stored in row-major order.
type Board struct {
	size  int
	cells []Tile
}

// NewBoard creates a size×size board with every cell Empty.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]Tile, size*size),
	}
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (row, col) is on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b *Board) index(row, col int) int {
	if !b.InBounds(row, col) {
		panic(&OutOfBoundsError{Row: row, Col: col, Size: b.size})
	}
	return row*b.size + col
}

// Get returns the tile at (row, col).
// Panics with *OutOfBoundsError when the cell is outside the board.
func (b *Board) Get(row, col int) Tile {
	return b.cells[b.index(row, col)]
}

// Set stores a tile at (row, col).
// Panics with *OutOfBoundsError when the cell is outside the board.
func (b *Board) Set(row, col int, t Tile) {
	b.cells[b.index(row, col)] = t
}

// Swap exchanges two cells unconditionally. Adjacency is the caller's concern.
func (b *Board) Swap(r1, c1, r2, c2 int) {
	i, j := b.index(r1, c1), b.index(r2, c2)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// Generate fills the cells in rows × cols with tiles drawn from src.
func (b *Board) Generate(src Source, rows, cols Span) {
	for row := rows.From; row < rows.To; row++ {
		for col := cols.From; col < cols.To; col++ {
			b.Set(row, col, src.Next())
		}
	}
}

// Fill fills the whole board from src.
func (b *Board) Fill(src Source) {
	all := Span{From: 0, To: b.size}
	b.Generate(src, all, all)
}

// EmptyCount returns the number of Empty cells.
func (b *Board) EmptyCount() int {
	n := 0
	for _, t := range b.cells {
		if t.IsEmpty() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Tile, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether two boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, t := range b.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// Column returns a copy of column col, top to bottom.
func (b *Board) Column(col int) []Tile {
	out := make([]Tile, b.size)
	for row := range b.size {
		out[row] = b.Get(row, col)
	}
	return out
}

// String renders the board as rows of tile codes, e.g. "F1 V2 ..".
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range b.size {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.Get(row, col).Code())
		}
	}
	return sb.String()
}

// ParseBoard builds a board from the format produced by Board.String.
// Blank lines are ignored; every row must have as many tiles as there are rows.
func ParseBoard(s string) (*Board, error) {
	var rows [][]string
	for _, line := range strings.Split(s, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("engine: empty board")
	}

	b := NewBoard(len(rows))
	for row, fields := range rows {
		if len(fields) != len(rows) {
			return nil, fmt.Errorf("engine: row %d has %d tiles, want %d", row, len(fields), len(rows))
		}
		for col, code := range fields {
			t, err := ParseTile(code)
			if err != nil {
				return nil, fmt.Errorf("engine: row %d col %d: %w", row, col, err)
			}
			b.Set(row, col, t)
		}
	}
	return b, nil
}
