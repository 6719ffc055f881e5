package match3

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Rows  int
	Cols  int
	Shape Shape

	Tiles   []Tile
	Valid   []bool
	Removed []bool

	Score int
	Combo int

	Hint        []int
	HintMove    Move
	HintVisible bool

	Disabled  bool
	GameOver  bool
	Remaining int // countdown ticks left, 0 once the game is over
	TimeLimit int
	Ticks     uint64
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	d := e.board.Dims()
	var hint []int
	if !e.hint.Empty() {
		hint = append(hint, e.hint.Cells...)
	}
	return Snapshot{
		Rows:        d.Rows,
		Cols:        d.Cols,
		Shape:       d.Shape,
		Tiles:       e.board.Tiles(),
		Valid:       e.board.Mask(),
		Removed:     e.board.RemovedMask(),
		Score:       e.tracker.Score(),
		Combo:       e.tracker.Combo(),
		Hint:        hint,
		HintMove:    e.hint.Move,
		HintVisible: e.hintVisible,
		Disabled:    e.disabled || e.gameOver,
		GameOver:    e.gameOver,
		Remaining:   e.remaining,
		TimeLimit:   e.settings.TimeLimit,
		Ticks:       e.ticks,
	}
}

// Index returns the tile index for (row, col), or -1 outside the grid.
func (s Snapshot) Index(row, col int) int {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return -1
	}
	return row*s.Cols + col
}

// InHint reports whether cell i is part of the current hint.
func (s Snapshot) InHint(i int) bool {
	for _, h := range s.Hint {
		if h == i {
			return true
		}
	}
	return false
}
