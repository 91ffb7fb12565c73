package engine_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/harvest/internal/games/harvest/engine"
)

// cleanBoard is an 8×8 board with no runs at all, built from the cycle
// F1 F2 V1 F3 V2 V3 indexed by (row + 2*col) mod 6.
const cleanBoard = `
F1 V1 V2 F1 V1 V2 F1 V1
F2 F3 V3 F2 F3 V3 F2 F3
V1 V2 F1 V1 V2 F1 V1 V2
F3 V3 F2 F3 V3 F2 F3 V3
V2 F1 V1 V2 F1 V1 V2 F1
V3 F2 F3 V3 F2 F3 V3 F2
F1 V1 V2 F1 V1 V2 F1 V1
F2 F3 V3 F2 F3 V3 F2 F3
`

func mustParse(t *testing.T, s string) *engine.Board {
	t.Helper()
	b, err := engine.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func randomBoard(seed int64) *engine.Board {
	rules := engine.DefaultRules()
	src := engine.NewRandomSource(rand.New(rand.NewSource(seed)), rules.FruitTypes, rules.VegetableTypes, rules.FruitBias)
	b := engine.NewBoard(rules.Size)
	b.Fill(src)
	return b
}

func TestBoardGetSet(t *testing.T) {
	b := engine.NewBoard(8)
	assert.Equal(t, 64, b.EmptyCount())

	b.Set(3, 5, engine.Fruit(2))
	assert.Equal(t, engine.Fruit(2), b.Get(3, 5))
	assert.Equal(t, engine.Empty, b.Get(5, 3))
	assert.Equal(t, 63, b.EmptyCount())
}

func TestBoardOutOfBounds(t *testing.T) {
	b := engine.NewBoard(8)

	tests := []struct {
		name string
		fn   func()
	}{
		{"get negative row", func() { b.Get(-1, 0) }},
		{"get col past edge", func() { b.Get(0, 8) }},
		{"set row past edge", func() { b.Set(8, 0, engine.Fruit(1)) }},
		{"swap with off-board cell", func() { b.Swap(0, 0, 0, -1) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected a panic")
				err, ok := r.(error)
				require.True(t, ok, "panic value should be an error, got %T", r)
				assert.True(t, errors.Is(err, engine.ErrOutOfBounds))

				var oob *engine.OutOfBoundsError
				require.ErrorAs(t, err, &oob)
				assert.Equal(t, 8, oob.Size)
			}()
			tc.fn()
		})
	}
}

func TestSwapTwiceRestoresBoard(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := randomBoard(seed)
		orig := b.Clone()
		rng := rand.New(rand.NewSource(seed))

		r1, c1 := rng.Intn(8), rng.Intn(8)
		r2, c2 := rng.Intn(8), rng.Intn(8)
		b.Swap(r1, c1, r2, c2)
		b.Swap(r1, c1, r2, c2)

		require.True(t, b.Equal(orig), "seed %d: swap (%d,%d)<->(%d,%d) twice changed the board", seed, r1, c1, r2, c2)
	}
}

func TestGenerateSpan(t *testing.T) {
	b := engine.NewBoard(8)
	src := engine.NewRandomSource(rand.New(rand.NewSource(7)), 3, 3, 0.6)

	b.Generate(src, engine.Span{From: 2, To: 4}, engine.Span{From: 0, To: 8})

	for row := range 8 {
		for col := range 8 {
			filled := !b.Get(row, col).IsEmpty()
			assert.Equal(t, row >= 2 && row < 4, filled, "cell (%d,%d)", row, col)
		}
	}
}

func TestRandomSourceRanges(t *testing.T) {
	src := engine.NewRandomSource(rand.New(rand.NewSource(99)), 4, 2, 0.6)

	fruits := 0
	const draws = 5000
	for range draws {
		tile := src.Next()
		switch tile.Kind {
		case engine.KindFruit:
			fruits++
			assert.True(t, tile.Variant >= 1 && tile.Variant <= 4, "fruit variant %d", tile.Variant)
		case engine.KindVegetable:
			assert.True(t, tile.Variant >= 1 && tile.Variant <= 2, "vegetable variant %d", tile.Variant)
		default:
			t.Fatalf("source produced %v", tile)
		}
	}

	ratio := float64(fruits) / draws
	assert.InDelta(t, 0.6, ratio, 0.05)
}

func TestRandomSourceWithoutVegetables(t *testing.T) {
	src := engine.NewRandomSource(rand.New(rand.NewSource(3)), 3, 0, 0.2)
	for range 100 {
		assert.True(t, src.Next().IsFruit())
	}
}

func TestCellAdjacent(t *testing.T) {
	tests := []struct {
		a, b engine.Cell
		want bool
	}{
		{engine.At(3, 3), engine.At(2, 3), true},
		{engine.At(3, 3), engine.At(4, 3), true},
		{engine.At(3, 3), engine.At(3, 2), true},
		{engine.At(3, 3), engine.At(3, 4), true},
		{engine.At(3, 3), engine.At(3, 3), false},
		{engine.At(3, 3), engine.At(4, 4), false},
		{engine.At(3, 3), engine.At(3, 5), false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.a.Adjacent(tc.b), "%v adjacent to %v", tc.a, tc.b)
	}
}

func TestParseBoard(t *testing.T) {
	b := mustParse(t, cleanBoard)
	assert.Equal(t, 8, b.Size())
	assert.Equal(t, engine.Fruit(1), b.Get(0, 0))
	assert.Equal(t, engine.Vegetable(3), b.Get(1, 2))

	again := mustParse(t, b.String())
	assert.True(t, b.Equal(again))

	_, err := engine.ParseBoard("F1 F2\nF3")
	assert.Error(t, err)

	_, err = engine.ParseBoard("F1 X2\nF3 F1")
	assert.Error(t, err)
}
