package engine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/harvest/internal/games/harvest/engine"
)

// swapBoard is cleanBoard with (0,1) set to F1: swapping (0,2) and (0,3)
// lines up F1 F1 F1 in row 0, with V3 below and V2 beside the run.
const swapBoard = `
F1 F1 V2 F1 V1 V2 F1 V1
F2 F3 V3 F2 F3 V3 F2 F3
V1 V2 F1 V1 V2 F1 V1 V2
F3 V3 F2 F3 V3 F2 F3 V3
V2 F1 V1 V2 F1 V1 V2 F1
V3 F2 F3 V3 F2 F3 V3 F2
F1 V1 V2 F1 V1 V2 F1 V1
F2 F3 V3 F2 F3 V3 F2 F3
`

func newSession(t *testing.T, seed int64, opts ...engine.Option) *engine.Session {
	t.Helper()
	return newSessionWithRules(t, engine.DefaultRules(), seed, opts...)
}

func newSessionWithRules(t *testing.T, rules engine.Rules, seed int64, opts ...engine.Option) *engine.Session {
	t.Helper()
	s, err := engine.NewSession(rules, rand.New(rand.NewSource(seed)), opts...)
	require.NoError(t, err)
	s.Start()
	return s
}

// loaded returns a running session whose board is the given fixture.
func loaded(t *testing.T, board string, opts ...engine.Option) *engine.Session {
	t.Helper()
	s := newSession(t, 1, opts...)
	require.NoError(t, s.LoadBoard(mustParse(t, board)))
	return s
}

func TestNewSessionRejectsBadRules(t *testing.T) {
	rules := engine.DefaultRules()
	rules.MatchMin = 1
	_, err := engine.NewSession(rules, rand.New(rand.NewSource(1)))
	assert.Error(t, err)

	_, err = engine.NewSession(engine.DefaultRules(), nil)
	assert.Error(t, err, "a session without rng or source cannot deal tiles")

	s, err := engine.NewSession(engine.DefaultRules(), nil, engine.WithSource(&constSource{tile: engine.Fruit(1)}))
	require.NoError(t, err)
	assert.Equal(t, engine.StateIdle, s.State())
}

func TestRestartDealsCleanBoard(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		s := newSession(t, seed)

		b := s.Board()
		assert.Equal(t, engine.StateRunning, s.State())
		assert.Zero(t, b.EmptyCount(), "seed %d", seed)
		assert.False(t, engine.HasMatch(b, 3), "seed %d: initial board has a match\n%s", seed, b)
		assert.Zero(t, s.Score())
	}
}

func TestValidateDealableRules(t *testing.T) {
	tests := []struct {
		name     string
		fruits   int
		vegs     int
		bias     float64
		matchMin int
		ok       bool
	}{
		{"two fruits no vegetables", 2, 0, 0.6, 2, false},
		{"two fruits no vegetables long runs", 2, 0, 0.6, 3, false},
		{"vegetables never drawn", 2, 3, 1, 3, false},
		{"three fruits no vegetables", 3, 0, 0.6, 2, true},
		{"one fruit with vegetables", 1, 1, 0.5, 2, true},
		{"defaults", 3, 3, 0.6, 3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules := engine.DefaultRules()
			rules.FruitTypes = tc.fruits
			rules.VegetableTypes = tc.vegs
			rules.FruitBias = tc.bias
			rules.MatchMin = tc.matchMin

			err := rules.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRestartDealsCleanBoardWithTightRules(t *testing.T) {
	tests := []struct {
		name   string
		fruits int
		vegs   int
		bias   float64
	}{
		{"three fruits only", 3, 0, 0.6},
		{"fruit heavy", 1, 1, 0.9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules := engine.DefaultRules()
			rules.MatchMin = 2
			rules.FruitTypes = tc.fruits
			rules.VegetableTypes = tc.vegs
			rules.FruitBias = tc.bias

			for seed := int64(1); seed <= 5; seed++ {
				s := newSessionWithRules(t, rules, seed)
				b := s.Board()
				require.Equal(t, engine.StateRunning, s.State())
				assert.Zero(t, b.EmptyCount(), "seed %d", seed)
				assert.False(t, engine.HasMatch(b, rules.MatchMin), "seed %d: dealt board has a match\n%s", seed, b)

				s.Restart()
				assert.False(t, engine.HasMatch(s.Board(), rules.MatchMin), "seed %d: restarted board has a match", seed)
			}
		})
	}
}

func TestRestartWithConstantSource(t *testing.T) {
	s, err := engine.NewSession(engine.DefaultRules(), nil, engine.WithSource(&constSource{tile: engine.Fruit(1)}))
	require.NoError(t, err)

	s.Start()

	assert.Equal(t, engine.StateRunning, s.State())
	assert.False(t, engine.HasMatch(s.Board(), 3), "board:\n%s", s.Board())
}

func TestRestartResetsScore(t *testing.T) {
	s := loaded(t, swapBoard)
	s.SelectOrSwap(0, 2)
	require.Equal(t, engine.OutcomeCommitted, s.SelectOrSwap(0, 3))
	s.SettleLoop()
	require.Positive(t, s.Score())

	s.Restart()

	assert.Zero(t, s.Score())
	assert.Zero(t, s.Moves())
	assert.Zero(t, s.Ticks())
	assert.Equal(t, engine.StateRunning, s.State())
	_, selected := s.Selection()
	assert.False(t, selected)
}

func TestSelectOrSwapCommit(t *testing.T) {
	s := loaded(t, swapBoard)

	assert.Equal(t, engine.OutcomeSelected, s.SelectOrSwap(0, 2))
	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, engine.At(0, 2), sel)

	assert.Equal(t, engine.OutcomeCommitted, s.SelectOrSwap(0, 3))

	assert.Equal(t, 10, s.Score())
	assert.Equal(t, 1, s.Moves())
	assert.Equal(t, engine.StateResolving, s.State())
	_, ok = s.Selection()
	assert.False(t, ok)

	b := s.Board()
	for _, c := range []engine.Cell{engine.At(0, 0), engine.At(0, 1), engine.At(0, 2), engine.At(0, 3), engine.At(1, 2)} {
		assert.True(t, b.Get(c.Row, c.Col).IsEmpty(), "%v should be cleared", c)
	}
	assert.Equal(t, 5, b.EmptyCount())

	s.SettleLoop()

	assert.Equal(t, engine.StateRunning, s.State())
	assert.GreaterOrEqual(t, s.Score(), 10)
	assert.Zero(t, s.Board().EmptyCount())
	assert.False(t, engine.HasMatch(s.Board(), 3))
}

func TestSelectOrSwapRevert(t *testing.T) {
	s := loaded(t, swapBoard)
	before := s.Board()

	s.SelectOrSwap(0, 4)
	assert.Equal(t, engine.OutcomeReverted, s.SelectOrSwap(0, 5))

	assert.True(t, s.Board().Equal(before), "reverted swap must restore the board")
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Moves())
	assert.Equal(t, engine.StateRunning, s.State())
	_, ok := s.Selection()
	assert.False(t, ok)
}

func TestSelectOrSwapReselect(t *testing.T) {
	s := loaded(t, swapBoard)

	s.SelectOrSwap(0, 0)
	assert.Equal(t, engine.OutcomeReselected, s.SelectOrSwap(2, 2))
	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, engine.At(2, 2), sel)

	assert.Equal(t, engine.OutcomeReselected, s.SelectOrSwap(2, 2), "clicking the selection again keeps it selected")
	assert.Equal(t, engine.OutcomeReselected, s.SelectOrSwap(3, 3), "diagonal is not adjacent")
	sel, _ = s.Selection()
	assert.Equal(t, engine.At(3, 3), sel)

	assert.Equal(t, engine.OutcomeIgnored, s.SelectOrSwap(8, 0))
	sel, _ = s.Selection()
	assert.Equal(t, engine.At(3, 3), sel)
}

func TestInputIgnoredWhileResolving(t *testing.T) {
	s := loaded(t, swapBoard)
	s.SelectOrSwap(0, 2)
	s.SelectOrSwap(0, 3)
	require.Equal(t, engine.StateResolving, s.State())

	snapshot := s.Board()
	assert.Equal(t, engine.OutcomeIgnored, s.SelectOrSwap(5, 5))
	assert.False(t, s.Enqueue(engine.At(5, 5)))
	assert.True(t, s.Board().Equal(snapshot))
	_, ok := s.Selection()
	assert.False(t, ok)
}

// TestSettleLoopTerminates checks the settle bounds: at most Size*Size
// cascades per loop; in cascade gravity at most Size*Size steps; in step
// gravity at most Size steps per cascade round plus the final check.
func TestSettleLoopTerminates(t *testing.T) {
	for _, mode := range []engine.GravityMode{engine.GravityCascade, engine.GravityStep} {
		t.Run(mode.String(), func(t *testing.T) {
			rules := engine.DefaultRules()
			rules.Gravity = mode
			area := rules.Size * rules.Size

			for seed := int64(1); seed <= 60; seed++ {
				cascades := 0
				s := newSessionWithRules(t, rules, seed, engine.WithObserver(func(e engine.Event) {
					if e.Kind == engine.EventCascade {
						cascades++
					}
				}))
				for turn := range 10 {
					moves := engine.PossibleMoves(s.Board(), rules.MatchMin)
					if len(moves) == 0 {
						break
					}
					m := moves[0]
					s.SelectOrSwap(m[0].Row, m[0].Col)
					require.Equal(t, engine.OutcomeCommitted, s.SelectOrSwap(m[1].Row, m[1].Col),
						"seed %d turn %d: %v<->%v", seed, turn, m[0], m[1])

					cascades = 0
					steps := s.SettleLoop()

					assert.LessOrEqual(t, cascades, area, "seed %d turn %d", seed, turn)
					if mode == engine.GravityCascade {
						assert.LessOrEqual(t, steps, area, "seed %d turn %d", seed, turn)
					} else {
						assert.LessOrEqual(t, steps, (cascades+1)*rules.Size+1,
							"seed %d turn %d: %d cascades", seed, turn, cascades)
					}
					b := s.Board()
					require.Zero(t, b.EmptyCount(), "seed %d turn %d: board not full after settle", seed, turn)
					require.False(t, engine.HasMatch(b, rules.MatchMin), "seed %d turn %d: matches left after settle", seed, turn)
					require.Equal(t, engine.StateRunning, s.State())
				}
			}
		})
	}
}

// A fully cleared column needs one step-gravity pass per row.
func TestStepGravityRoundBound(t *testing.T) {
	const size = 8
	b := engine.NewBoard(size)
	src := &constSource{tile: engine.Vegetable(1)}
	b.Fill(src)
	for row := range size {
		b.Set(row, 0, engine.Empty)
	}

	passes := 0
	for engine.Settle(b, src, engine.GravityStep) {
		passes++
	}
	assert.Equal(t, size, passes)
	assert.Zero(t, b.EmptyCount())
}

func TestSettleLoopResolvesLoadedBoard(t *testing.T) {
	s := loaded(t, rowZeroRun)

	steps := s.SettleLoop()

	assert.GreaterOrEqual(t, steps, 2)
	assert.GreaterOrEqual(t, s.Score(), 10)
	assert.Zero(t, s.Moves(), "settling is not a move")
	assert.False(t, engine.HasMatch(s.Board(), 3))
}

func TestLoadBoardSizeMismatch(t *testing.T) {
	s := newSession(t, 1)
	err := s.LoadBoard(engine.NewBoard(4))
	assert.Error(t, err)
	assert.Error(t, s.LoadBoard(nil))
}

func TestEnd(t *testing.T) {
	var ended int
	s := newSession(t, 3, engine.WithObserver(func(e engine.Event) {
		if e.Kind == engine.EventEnded {
			ended++
		}
	}))

	s.End()
	assert.Equal(t, engine.StateEnded, s.State())
	assert.Equal(t, engine.OutcomeIgnored, s.SelectOrSwap(0, 0))
	assert.False(t, s.Enqueue(engine.At(0, 0)))

	s.End()
	assert.Equal(t, 1, ended, "ending twice emits once")

	s.Restart()
	assert.Equal(t, engine.StateRunning, s.State())
}

func TestNeverEndsWithoutSignal(t *testing.T) {
	s := newSession(t, 5)
	for range 500 {
		s.Tick()
	}
	assert.Equal(t, engine.StateRunning, s.State())
	assert.Equal(t, uint64(500), s.Ticks())
}

func TestMoveLimitEndsAfterSettle(t *testing.T) {
	s := loaded(t, swapBoard, engine.WithEndCondition(engine.MoveLimit(1)))

	s.SelectOrSwap(0, 2)
	s.SelectOrSwap(0, 3)
	assert.Equal(t, engine.StateResolving, s.State(), "end is not checked mid-cascade")

	s.SettleLoop()
	assert.Equal(t, engine.StateEnded, s.State())
}

func TestTickLimit(t *testing.T) {
	s := newSession(t, 9, engine.WithEndCondition(engine.TickLimit(3)))

	s.Tick()
	s.Tick()
	assert.Equal(t, engine.StateRunning, s.State())
	s.Tick()
	assert.Equal(t, engine.StateEnded, s.State())
}

func TestNoMovesLeft(t *testing.T) {
	assert.True(t, engine.NoMovesLeft(engine.Status{MatchMin: 3, Board: mustParse(t, cleanBoard)}))
	assert.False(t, engine.NoMovesLeft(engine.Status{MatchMin: 3, Board: mustParse(t, swapBoard)}))

	cond := engine.Any(engine.Never, engine.MoveLimit(2))
	assert.False(t, cond(engine.Status{Moves: 1}))
	assert.True(t, cond(engine.Status{Moves: 2}))
}

func TestTickConsumesQueue(t *testing.T) {
	s := loaded(t, swapBoard)

	require.True(t, s.Enqueue(engine.At(0, 2)))
	require.True(t, s.Enqueue(engine.At(0, 3)))
	require.True(t, s.Enqueue(engine.At(5, 5)))
	assert.False(t, s.Enqueue(engine.At(-1, 0)))

	s.Tick()

	assert.Equal(t, 1, s.Moves())
	_, ok := s.Selection()
	assert.False(t, ok, "clicks queued behind a committed swap are dropped")

	for i := 0; s.State() == engine.StateResolving; i++ {
		require.Less(t, i, 1000)
		s.Tick()
	}
	assert.Equal(t, engine.StateRunning, s.State())
	assert.True(t, s.Enqueue(engine.At(0, 0)))
}

func TestDeterministicWithSeed(t *testing.T) {
	a := newSession(t, 42)
	b := newSession(t, 42)
	require.True(t, a.Board().Equal(b.Board()))

	moves := engine.PossibleMoves(a.Board(), 3)
	if len(moves) == 0 {
		t.Skip("seed deals a board without moves")
	}
	for _, s := range []*engine.Session{a, b} {
		s.SelectOrSwap(moves[0][0].Row, moves[0][0].Col)
		s.SelectOrSwap(moves[0][1].Row, moves[0][1].Col)
		s.SettleLoop()
	}
	assert.Equal(t, a.Score(), b.Score())
	assert.True(t, a.Board().Equal(b.Board()))
}

func TestObserverEvents(t *testing.T) {
	var kinds []engine.EventKind
	s := loaded(t, swapBoard, engine.WithObserver(func(e engine.Event) {
		kinds = append(kinds, e.Kind)
	}))

	s.SelectOrSwap(0, 2)
	s.SelectOrSwap(0, 3)
	s.SettleLoop()

	require.GreaterOrEqual(t, len(kinds), 3)
	assert.Equal(t, engine.EventStarted, kinds[0])
	assert.Equal(t, engine.EventSwapCommitted, kinds[1])
	assert.Equal(t, engine.EventSettled, kinds[len(kinds)-1])
	for _, k := range kinds[2 : len(kinds)-1] {
		assert.Equal(t, engine.EventCascade, k)
	}
}

func TestCellAt(t *testing.T) {
	s := newSession(t, 1)

	tests := []struct {
		x, y   int
		want   engine.Cell
		wantOK bool
	}{
		{0, 0, engine.At(0, 0), true},
		{3, 1, engine.At(0, 0), true},
		{9, 5, engine.At(2, 2), true},
		{31, 15, engine.At(7, 7), true},
		{32, 0, engine.Cell{}, false},
		{0, 16, engine.Cell{}, false},
		{-1, 3, engine.Cell{}, false},
	}
	for _, tc := range tests {
		got, ok := s.CellAt(tc.x, tc.y, 4, 2)
		assert.Equal(t, tc.wantOK, ok, "(%d,%d)", tc.x, tc.y)
		assert.Equal(t, tc.want, got, "(%d,%d)", tc.x, tc.y)
	}
}

func TestStepInterval(t *testing.T) {
	s := loaded(t, swapBoard, engine.WithStepInterval(3))

	require.True(t, s.Enqueue(engine.At(0, 2)))
	require.True(t, s.Enqueue(engine.At(0, 3)))
	s.Tick()
	require.Equal(t, engine.StateResolving, s.State())
	assert.Equal(t, 5, s.Board().EmptyCount(), "cleared cells wait for the first step")

	s.Tick()
	assert.Equal(t, 5, s.Board().EmptyCount())

	s.Tick()
	assert.Zero(t, s.Board().EmptyCount(), "cascade gravity refills in one step")
}

func TestSnapshot(t *testing.T) {
	s := loaded(t, swapBoard)
	s.SelectOrSwap(4, 4)

	snap := s.Snapshot()
	assert.Equal(t, engine.StateRunning, snap.State)
	assert.True(t, snap.Selected)
	assert.Equal(t, engine.At(4, 4), snap.Selection)
	assert.Equal(t, mustParse(t, swapBoard).String(), snap.Board)

	s.SelectOrSwap(0, 2)
	s.SelectOrSwap(0, 3)
	s.SettleLoop()
	snap = s.Snapshot()
	assert.Equal(t, 1, snap.Moves)
	assert.Equal(t, s.Score(), snap.Score)
	assert.False(t, snap.Selected)
}
