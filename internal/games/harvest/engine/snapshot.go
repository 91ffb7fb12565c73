package engine

// Snapshot captures a session for determinism tests and debugging.
type Snapshot struct {
	Ticks     uint64
	State     State
	Score     int
	Moves     int
	Selection Cell
	Selected  bool
	Board     string // Board.String form
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Ticks:     s.ticks,
		State:     s.state,
		Score:     s.score,
		Moves:     s.moves,
		Selection: s.selection,
		Selected:  s.selected,
		Board:     s.board.String(),
	}
}
