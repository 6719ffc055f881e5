package gems

import "github.com/vovakirdan/match3/internal/match3"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Shape    string
	Level    int // 1-indexed
	Cursor   int
	Selected int
	Pending  int // queued animation frames
	Board    match3.Snapshot
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.current != nil || len(g.frames) > 0:
		state = StateAnimating
	}

	return Snapshot{
		Tick:     g.tick,
		Shape:    g.shape.String(),
		Level:    g.levelIndex + 1,
		Cursor:   g.cursor,
		Selected: g.selected,
		Pending:  len(g.frames),
		Board:    g.engine.Snapshot(),
		State:    state,
	}
}
