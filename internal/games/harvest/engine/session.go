package engine

import (
	"fmt"
	"math/rand"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle      State = iota // No game in progress
	StateRunning                // Board stable, accepting input
	StateResolving              // Settle cycle in progress, input dropped
	StateEnded                  // Terminal until Restart
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateResolving:
		return "resolving"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// SwapOutcome reports what SelectOrSwap did with an input.
type SwapOutcome int

const (
	OutcomeIgnored    SwapOutcome = iota // Not running or off-board
	OutcomeSelected                      // First cell selected
	OutcomeReselected                    // Non-adjacent cell became the selection
	OutcomeReverted                      // Swap produced no match and was undone
	OutcomeCommitted                     // Swap matched; settle cycle started
)

// String returns a human-readable outcome name.
func (o SwapOutcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeReselected:
		return "reselected"
	case OutcomeReverted:
		return "reverted"
	case OutcomeCommitted:
		return "committed"
	default:
		return "ignored"
	}
}

// EventKind identifies a session event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventSwapCommitted
	EventSwapReverted
	EventCascade
	EventSettled
	EventEnded
)

// Event is delivered to the observer registered with WithObserver.
type Event struct {
	Kind    EventKind
	From    Cell // Swap source (swap events only)
	To      Cell // Swap target (swap events only)
	Matches int
	Cleared int
	Points  int
	Score   int
	Steps   int // Settle steps taken (EventSettled only)
}

// maxCleanAttempts bounds whole-board regeneration before falling back to
// repairing the last board in place.
const maxCleanAttempts = 10000

// maxRepairDraws bounds random draws for one cell during repair.
const maxRepairDraws = 16

// Session owns one game: the board, score, selection and settle state.
// It is not safe for concurrent use; all mutation is sequenced through a
// single tick loop.
type Session struct {
	rules    Rules
	source   Source
	endCond  EndCondition
	observer func(Event)

	board     *Board
	state     State
	score     int
	moves     int
	ticks     uint64
	selection Cell
	selected  bool
	queue     []Cell
	steps     int // Steps taken in the current settle cycle
	stepEvery int // Ticks per settle step
	stepWait  int // Ticks since the last settle step
}

// Option configures a Session.
type Option func(*Session)

// WithEndCondition sets the game-over predicate (default Never).
func WithEndCondition(c EndCondition) Option {
	return func(s *Session) {
		if c != nil {
			s.endCond = c
		}
	}
}

// WithSource replaces the random tile source.
func WithSource(src Source) Option {
	return func(s *Session) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStepInterval makes Tick run one settle step every n ticks instead of
// every tick, so a front end can show tiles falling.
func WithStepInterval(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.stepEvery = n
		}
	}
}

// WithObserver registers a callback for session events.
func WithObserver(fn func(Event)) Option {
	return func(s *Session) {
		s.observer = fn
	}
}

// NewSession creates an idle session. Call Start to deal the first board.
func NewSession(rules Rules, rng *rand.Rand, opts ...Option) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		rules:     rules,
		endCond:   Never,
		board:     NewBoard(rules.Size),
		state:     StateIdle,
		stepEvery: 1,
	}
	if rng != nil {
		s.source = NewRandomSource(rng, rules.FruitTypes, rules.VegetableTypes, rules.FruitBias)
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.source == nil {
		return nil, fmt.Errorf("engine: session needs a random generator or a tile source")
	}
	return s, nil
}

// Start begins a game. It is equivalent to Restart.
func (s *Session) Start() {
	s.Restart()
}

// Restart resets the score and deals a fresh board with no matches.
func (s *Session) Restart() {
	s.score = 0
	s.moves = 0
	s.ticks = 0
	s.steps = 0
	s.stepWait = 0
	s.selected = false
	s.queue = s.queue[:0]
	s.board = s.cleanBoard()
	s.state = StateRunning
	s.emit(Event{Kind: EventStarted})
}

// cleanBoard regenerates whole boards until one has no match. If that keeps
// failing, the last board is repaired in place.
func (s *Session) cleanBoard() *Board {
	b := NewBoard(s.rules.Size)
	for range maxCleanAttempts {
		b.Fill(s.source)
		if !HasMatch(b, s.rules.MatchMin) {
			return b
		}
	}
	s.repair(b)
	return b
}

// repair sweeps b in row-major order and replaces every tile that closes a
// run with the tiles to its left or above it. Visited cells never change
// again, so a single sweep leaves no match. Validate guarantees at least one
// candidate tile is always allowed.
func (s *Session) repair(b *Board) {
	n := b.Size()
	for row := range n {
		for col := range n {
			if closesRun(b, row, col, b.Get(row, col), s.rules.MatchMin) {
				b.Set(row, col, s.allowedTile(b, row, col))
			}
		}
	}
}

// allowedTile draws from the source a few times before falling back to the
// first candidate that does not close a run at (row, col).
func (s *Session) allowedTile(b *Board, row, col int) Tile {
	for range maxRepairDraws {
		if t := s.source.Next(); !closesRun(b, row, col, t, s.rules.MatchMin) {
			return t
		}
	}
	for _, t := range s.rules.candidates() {
		if !closesRun(b, row, col, t, s.rules.MatchMin) {
			return t
		}
	}
	panic(fmt.Sprintf("engine: no tile fits cell (%d,%d) under %+v", row, col, s.rules))
}

// closesRun reports whether placing t at (row, col) completes a run of
// matchMin equal fruits ending there, looking left and up only.
func closesRun(b *Board, row, col int, t Tile, matchMin int) bool {
	if !t.IsFruit() {
		return false
	}
	left, up := col >= matchMin-1, row >= matchMin-1
	for k := 1; k < matchMin && (left || up); k++ {
		left = left && b.Get(row, col-k) == t
		up = up && b.Get(row-k, col) == t
	}
	return left || up
}

// End forces the game into the Ended state. It is the external end-game
// signal; normal play never calls it under the classic rules.
func (s *Session) End() {
	if s.state == StateIdle || s.state == StateEnded {
		return
	}
	s.state = StateEnded
	s.selected = false
	s.queue = s.queue[:0]
	s.emit(Event{Kind: EventEnded, Score: s.score})
}

// Enqueue records a cell click for the next Tick.
// Input is dropped, and false returned, unless the board is stable.
func (s *Session) Enqueue(c Cell) bool {
	if s.state != StateRunning || !s.board.InBounds(c.Row, c.Col) {
		return false
	}
	s.queue = append(s.queue, c)
	return true
}

// Tick advances the session by one frame: queued input is consumed while
// the board is stable, then at most one settle step runs (see
// WithStepInterval).
func (s *Session) Tick() {
	s.ticks++

	for _, c := range s.queue {
		if s.state != StateRunning {
			break
		}
		s.SelectOrSwap(c.Row, c.Col)
	}
	s.queue = s.queue[:0]

	switch s.state {
	case StateResolving:
		s.stepWait++
		if s.stepWait >= s.stepEvery {
			s.stepWait = 0
			s.Step()
		}
	case StateRunning:
		s.checkEnd()
	}
}

// SelectOrSwap applies one click. With no selection the cell is selected.
// A click adjacent to the selection swaps the two cells and either commits
// the move (matches found) or swaps back. Any other click moves the
// selection. Input is ignored unless the session is Running.
func (s *Session) SelectOrSwap(row, col int) SwapOutcome {
	if s.state != StateRunning || !s.board.InBounds(row, col) {
		return OutcomeIgnored
	}

	target := At(row, col)
	if !s.selected {
		s.selection = target
		s.selected = true
		return OutcomeSelected
	}

	from := s.selection
	if !from.Adjacent(target) {
		s.selection = target
		return OutcomeReselected
	}

	s.selected = false
	s.board.Swap(from.Row, from.Col, target.Row, target.Col)
	matches := FindMatches(s.board, s.rules.MatchMin)
	if len(matches) == 0 {
		s.board.Swap(from.Row, from.Col, target.Row, target.Col)
		s.emit(Event{Kind: EventSwapReverted, From: from, To: target, Score: s.score})
		return OutcomeReverted
	}

	res := Resolve(s.board, matches, s.rules.PointsPerMatch)
	s.score += res.ScoreDelta
	s.moves++
	s.steps = 0
	s.stepWait = 0
	s.state = StateResolving
	s.emit(Event{
		Kind:    EventSwapCommitted,
		From:    from,
		To:      target,
		Matches: len(matches),
		Cleared: res.Cleared,
		Points:  res.ScoreDelta,
		Score:   s.score,
	})
	return OutcomeCommitted
}

// Step runs one iteration of the settle loop: resolve any matches on a
// gap-free board, then one gravity pass. The session returns to Running
// when nothing was resolved and gravity changed no cell.
// Returns true while the settle cycle is still in progress.
func (s *Session) Step() bool {
	if s.state != StateResolving {
		return false
	}
	s.steps++

	resolved := false
	// Runs are only judged once every gap is filled; a half-fallen column
	// could otherwise line up mid-air.
	if s.board.EmptyCount() == 0 {
		if matches := FindMatches(s.board, s.rules.MatchMin); len(matches) > 0 {
			res := Resolve(s.board, matches, s.rules.PointsPerMatch)
			s.score += res.ScoreDelta
			resolved = true
			s.emit(Event{
				Kind:    EventCascade,
				Matches: len(matches),
				Cleared: res.Cleared,
				Points:  res.ScoreDelta,
				Score:   s.score,
			})
		}
	}

	changed := Settle(s.board, s.source, s.rules.Gravity)
	if changed || resolved {
		return true
	}

	s.state = StateRunning
	s.emit(Event{Kind: EventSettled, Score: s.score, Steps: s.steps})
	s.checkEnd()
	return false
}

// SettleLoop runs the settle loop to completion and returns the number of
// steps it took. A Running session is re-checked from scratch, which lets
// callers settle a board installed with LoadBoard.
func (s *Session) SettleLoop() int {
	if s.state != StateRunning && s.state != StateResolving {
		return 0
	}
	if s.state == StateRunning {
		s.state = StateResolving
		s.steps = 0
		s.selected = false
	}
	n := 0
	for s.Step() {
		n++
	}
	return n + 1
}

// checkEnd applies the end condition to a stable board.
func (s *Session) checkEnd() {
	if s.state != StateRunning || !s.endCond(s.Status()) {
		return
	}
	s.state = StateEnded
	s.selected = false
	s.emit(Event{Kind: EventEnded, Score: s.score})
}

func (s *Session) emit(e Event) {
	if s.observer != nil {
		s.observer(e)
	}
}

// LoadBoard replaces the board, e.g. with a fixture. The board must match
// the session's size. The session keeps its state; a Running session can be
// settled with SettleLoop.
func (s *Session) LoadBoard(b *Board) error {
	if b == nil || b.Size() != s.rules.Size {
		return fmt.Errorf("engine: board size mismatch, want %d", s.rules.Size)
	}
	s.board = b.Clone()
	s.selected = false
	return nil
}

// Cell returns the tile at (row, col) for drawing.
func (s *Session) Cell(row, col int) Tile {
	return s.board.Get(row, col)
}

// CellAt maps a pointer position to a board cell using floor(px / tile).
// Positions outside the grid report false.
func (s *Session) CellAt(x, y, tileW, tileH int) (Cell, bool) {
	if x < 0 || y < 0 || tileW <= 0 || tileH <= 0 {
		return Cell{}, false
	}
	c := At(y/tileH, x/tileW)
	if !s.board.InBounds(c.Row, c.Col) {
		return Cell{}, false
	}
	return c, true
}

// Selection returns the selected cell, if any.
func (s *Session) Selection() (Cell, bool) {
	return s.selection, s.selected
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Moves returns the number of committed swaps.
func (s *Session) Moves() int { return s.moves }

// Ticks returns the number of ticks since the game started.
func (s *Session) Ticks() uint64 { return s.ticks }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Rules returns the session rules.
func (s *Session) Rules() Rules { return s.rules }

// Board returns a copy of the board.
func (s *Session) Board() *Board { return s.board.Clone() }

// Status returns the view used by end conditions.
func (s *Session) Status() Status {
	return Status{
		Score:    s.score,
		Moves:    s.moves,
		Ticks:    s.ticks,
		MatchMin: s.rules.MatchMin,
		Board:    s.board,
	}
}
