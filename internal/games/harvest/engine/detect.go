package engine

// Orientation is the axis of a match run.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Match is one maximal run of equal fruit tiles.
// (Row, Col) is the leftmost or topmost cell of the run.
type Match struct {
	Orientation Orientation
	Row         int
	Col         int
	Length      int
	Tile        Tile
}

// Cells returns the cells covered by the run.
func (m Match) Cells() []Cell {
	cells := make([]Cell, m.Length)
	for i := range m.Length {
		if m.Orientation == Horizontal {
			cells[i] = At(m.Row, m.Col+i)
		} else {
			cells[i] = At(m.Row+i, m.Col)
		}
	}
	return cells
}

// FindMatches scans the board for runs of at least matchMin equal fruits.
// Rows are scanned left to right, then columns top to bottom. A run is
// reported once at full length and the scan resumes after it. Horizontal
// and vertical runs are independent, so a tile may appear in one of each.
// The board is not modified.
func FindMatches(b *Board, matchMin int) []Match {
	var matches []Match
	n := b.Size()

	for row := range n {
		for col := 0; col+matchMin <= n; col++ {
			length := runLength(b, row, col, 0, 1)
			if length < matchMin {
				continue
			}
			matches = append(matches, Match{
				Orientation: Horizontal,
				Row:         row,
				Col:         col,
				Length:      length,
				Tile:        b.Get(row, col),
			})
			col += length - 1
		}
	}

	for col := range n {
		for row := 0; row+matchMin <= n; row++ {
			length := runLength(b, row, col, 1, 0)
			if length < matchMin {
				continue
			}
			matches = append(matches, Match{
				Orientation: Vertical,
				Row:         row,
				Col:         col,
				Length:      length,
				Tile:        b.Get(row, col),
			})
			row += length - 1
		}
	}

	return matches
}

// runLength counts equal fruit tiles starting at (row, col) along (dr, dc).
// Non-fruit starting cells have length 0.
func runLength(b *Board, row, col, dr, dc int) int {
	start := b.Get(row, col)
	if !start.IsFruit() {
		return 0
	}
	length := 1
	for r, c := row+dr, col+dc; b.InBounds(r, c) && b.Get(r, c) == start; r, c = r+dr, c+dc {
		length++
	}
	return length
}

// HasMatch reports whether the board contains at least one run.
func HasMatch(b *Board, matchMin int) bool {
	return len(FindMatches(b, matchMin)) > 0
}

// PossibleMoves returns every adjacent swap that would produce a match.
// Each pair is reported once, with the first cell above or left of the second.
func PossibleMoves(b *Board, matchMin int) [][2]Cell {
	var moves [][2]Cell
	trial := b.Clone()
	n := b.Size()
	for row := range n {
		for col := range n {
			for _, d := range [2]Cell{{0, 1}, {1, 0}} {
				r2, c2 := row+d.Row, col+d.Col
				if !trial.InBounds(r2, c2) || trial.Get(row, col) == trial.Get(r2, c2) {
					continue
				}
				trial.Swap(row, col, r2, c2)
				if HasMatch(trial, matchMin) {
					moves = append(moves, [2]Cell{At(row, col), At(r2, c2)})
				}
				trial.Swap(row, col, r2, c2)
			}
		}
	}
	return moves
}
