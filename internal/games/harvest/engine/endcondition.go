package engine

// Status is the read-only view an EndCondition inspects.
type Status struct {
	Score    int
	Moves    int    // Committed swaps
	Ticks    uint64 // Ticks since start
	MatchMin int
	Board    *Board
}

// EndCondition decides whether a stable game is over.
// It is evaluated whenever the board returns to a stable state and on every
// tick while the board is stable.
type EndCondition func(Status) bool

// Never is the classic condition: the game only ends through Session.End.
func Never(Status) bool { return false }

// MoveLimit ends the game once n swaps have been committed.
func MoveLimit(n int) EndCondition {
	return func(s Status) bool {
		return s.Moves >= n
	}
}

// TickLimit ends the game after n ticks.
func TickLimit(n uint64) EndCondition {
	return func(s Status) bool {
		return s.Ticks >= n
	}
}

// NoMovesLeft ends the game when no adjacent swap would produce a match.
func NoMovesLeft(s Status) bool {
	return len(PossibleMoves(s.Board, s.MatchMin)) == 0
}

// Any ends the game as soon as one of the conditions holds.
func Any(conds ...EndCondition) EndCondition {
	return func(s Status) bool {
		for _, c := range conds {
			if c != nil && c(s) {
				return true
			}
		}
		return false
	}
}
