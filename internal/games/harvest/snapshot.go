package harvest

import "github.com/vovakirdan/harvest/internal/games/harvest/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game for determinism testing and debugging.
type Snapshot struct {
	Tick    uint64
	Mode    string
	Score   int
	Moves   int
	Cursor  engine.Cell
	State   GameStateType
	Session engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.State() == engine.StateEnded:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.session.State() == engine.StateResolving:
		state = StateResolving
	}

	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Score:   g.session.Score(),
		Moves:   g.session.Moves(),
		Cursor:  g.cursor,
		State:   state,
		Session: g.session.Snapshot(),
	}
}
