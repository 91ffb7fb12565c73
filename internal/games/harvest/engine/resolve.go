package engine

// DefaultPointsPerMatch is the classic award for one match run.
const DefaultPointsPerMatch = 10

// Resolution is the outcome of clearing a set of matches.
type Resolution struct {
	Cleared    int    // Number of distinct cells set to Empty
	ScoreDelta int    // Points awarded
	Cells      []Cell // Cleared cells in row-major order
}

// Resolve clears every matched cell together with every vegetable
// 4-adjacent to a matched cell. Neighbours are examined before anything is
// cleared and each cell is cleared once. Points are awarded per match run,
// not per tile: ScoreDelta is len(matches) * pointsPerMatch.
func Resolve(b *Board, matches []Match, pointsPerMatch int) Resolution {
	n := b.Size()
	marked := make([]bool, n*n)

	for _, m := range matches {
		for _, c := range m.Cells() {
			marked[c.Row*n+c.Col] = true
			for _, d := range neighbours {
				r, col := c.Row+d.Row, c.Col+d.Col
				if b.InBounds(r, col) && b.Get(r, col).IsVegetable() {
					marked[r*n+col] = true
				}
			}
		}
	}

	res := Resolution{ScoreDelta: len(matches) * pointsPerMatch}
	for i, hit := range marked {
		if !hit {
			continue
		}
		c := At(i/n, i%n)
		b.Set(c.Row, c.Col, Empty)
		res.Cells = append(res.Cells, c)
	}
	res.Cleared = len(res.Cells)
	return res
}
