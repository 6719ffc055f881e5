package match3

// OutcomeKind classifies the result of a swap request.
type OutcomeKind int

const (
	OutcomeNoop     OutcomeKind = iota // rejected, board untouched
	OutcomeReverted                    // swapped, no run, swapped back
	OutcomeResolved                    // chain resolved and scored
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReverted:
		return "reverted"
	case OutcomeResolved:
		return "resolved"
	default:
		return "noop"
	}
}

// Outcome is returned by TrySwap.
type Outcome struct {
	Kind       OutcomeKind
	From       int
	To         int
	ScoreDelta int
	Combo      int
	Cascades   int
	Snapshot   Snapshot
}

// TimerOutcome is returned by Tick.
type TimerOutcome struct {
	Remaining   int
	GameOver    bool
	HintVisible bool
}

// Engine owns one game session: the board, the score, the countdown and the
// current hint. It is not safe for concurrent use; callers serialise access.
type Engine struct {
	settings Settings
	rng      Rand
	resolver *Resolver
	hinter   *Hinter
	listener Listener

	board   *Board
	tracker Tracker
	hint    Hint

	hintVisible bool
	idle        int
	disabled    bool
	gameOver    bool
	remaining   int
	ticks       uint64

	shuffles int
	rescues  HintStats
}

// New creates an engine with an empty 0×0 board. Call NewBoard or Deal to
// start playing. Settings are assumed valid.
func New(settings Settings, rng Rand) *Engine {
	resolver := &Resolver{Rand: rng, Types: settings.TileTypes, MaxCascades: settings.MaxCascades}
	return &Engine{
		settings: settings,
		rng:      rng,
		resolver: resolver,
		hinter: &Hinter{
			Resolver:       resolver,
			SeedAttempts:   settings.SeedAttempts,
			ShuffleRetries: settings.ShuffleRetries,
		},
		board:     NewBoard(ShapeNormal, 0, 0),
		remaining: settings.TimeLimit,
	}
}

// GridSize derives board dimensions from a cell size and a viewport.
func GridSize(cellSize, viewportH, viewportW int) (rows, cols int) {
	if cellSize <= 0 || viewportH <= 0 || viewportW <= 0 {
		return 0, 0
	}
	return max(1, viewportH/cellSize), max(1, viewportW/cellSize)
}

// NewBoard deals a fresh board whose dimensions come from the viewport
// divided by the cell size, adjusted for the shape.
func (e *Engine) NewBoard(shape Shape, cellSize, viewportH, viewportW int) Snapshot {
	rows, cols := GridSize(cellSize, viewportH, viewportW)
	return e.Deal(shape, rows, cols)
}

// Deal replaces the board with a freshly filled, stable one and resets score,
// combo and countdown. Ignored while a chain is resolving.
func (e *Engine) Deal(shape Shape, rows, cols int) Snapshot {
	if e.disabled {
		return e.Snapshot()
	}
	b := NewBoard(shape, rows, cols)
	b.Fill(e.rng, e.settings.TileTypes)
	e.resolver.Stabilize(b)
	return e.start(b, EventRestart)
}

// LoadBoard starts a session on an explicit board. Runs already on it are
// cleared silently; a rescue may alter it if it has no available move.
// Ignored while a chain is resolving.
func (e *Engine) LoadBoard(b *Board) Snapshot {
	if e.disabled {
		return e.Snapshot()
	}
	b = b.Clone()
	e.resolver.Stabilize(b)
	return e.start(b, EventRestart)
}

// Restart deals a new board with the current shape and dimensions. Ignored
// while a chain is resolving.
func (e *Engine) Restart() Snapshot {
	if e.disabled {
		return e.Snapshot()
	}
	d := e.board.Dims()
	b := NewBoard(d.Shape, d.Rows, d.Cols)
	b.Fill(e.rng, e.settings.TileTypes)
	e.resolver.Stabilize(b)
	return e.start(b, EventRestart)
}

func (e *Engine) start(b *Board, kind EventKind) Snapshot {
	e.board = b
	e.tracker.Reset()
	e.disabled = false
	e.gameOver = false
	e.remaining = e.settings.TimeLimit
	e.ticks = 0
	e.idle = 0
	e.hintVisible = false
	e.shuffles = 0
	e.rescues = HintStats{}
	e.refreshHint()
	snap := e.Snapshot()
	e.emit(Event{Kind: kind, Snapshot: snap})
	return snap
}

// SetListener installs the callback invoked after each resolution step.
// Pass nil to remove it.
func (e *Engine) SetListener(l Listener) { e.listener = l }

func (e *Engine) emit(ev Event) {
	if e.listener != nil {
		e.listener(ev)
	}
}

// TrySwap attempts to swap the tile at idx with the neighbour the drag vector
// (dx, dy) points at. Requests that are out of the playable area, not
// adjacent, or arrive while the board is disabled are ignored. A swap that
// forms no run is reverted; otherwise the chain is resolved to a fixed point,
// scored once and a new hint computed.
func (e *Engine) TrySwap(idx int, dx, dy float64) Outcome {
	if e.disabled || e.gameOver || !e.board.Valid(idx) {
		return Outcome{Kind: OutcomeNoop, From: idx, To: -1, Snapshot: e.Snapshot()}
	}
	target := e.board.ResolveSwapDirection(idx, dx, dy)
	if !e.board.IsAdjacent(idx, target) {
		return Outcome{Kind: OutcomeNoop, From: idx, To: target, Snapshot: e.Snapshot()}
	}
	return e.swap(idx, target)
}

// Apply plays a move directly, e.g. the current hint move.
func (e *Engine) Apply(m Move) Outcome {
	if e.disabled || e.gameOver || !e.board.Valid(m.From) || !e.board.IsAdjacent(m.From, m.To) {
		return Outcome{Kind: OutcomeNoop, From: m.From, To: m.To, Snapshot: e.Snapshot()}
	}
	return e.swap(m.From, m.To)
}

func (e *Engine) swap(from, to int) Outcome {
	e.disabled = true
	e.idle = 0
	e.hintVisible = false

	e.board.Swap(from, to)
	e.emit(Event{Kind: EventSwap, Snapshot: e.Snapshot()})

	if !HasRuns(e.board) {
		e.board.Swap(from, to)
		e.disabled = false
		snap := e.Snapshot()
		e.emit(Event{Kind: EventRevert, Snapshot: snap})
		return Outcome{Kind: OutcomeReverted, From: from, To: to, Snapshot: snap}
	}

	e.tracker.Begin()
	chain := e.resolver.Resolve(e.board, func(phase Phase, step Step) {
		switch phase {
		case PhaseMatched:
			e.tracker.Add(len(step.Runs))
			e.emit(Event{Kind: EventMatch, Snapshot: e.Snapshot(), Runs: step.Runs})
		case PhaseDropped:
			e.emit(Event{Kind: EventDrop, Snapshot: e.Snapshot(), Falls: step.Falls})
		}
	})
	delta := e.tracker.Commit()

	e.refreshHint()
	e.disabled = false

	snap := e.Snapshot()
	e.emit(Event{Kind: EventResolved, Snapshot: snap, Delta: delta})
	return Outcome{
		Kind:       OutcomeResolved,
		From:       from,
		To:         to,
		ScoreDelta: delta,
		Combo:      e.tracker.Combo(),
		Cascades:   chain.Cascades,
		Snapshot:   snap,
	}
}

// Tick advances the countdown by one unit. When it reaches zero the game is
// over and the board stays disabled until Restart. Idle ticks reveal the hint.
func (e *Engine) Tick() TimerOutcome {
	if e.gameOver {
		return TimerOutcome{GameOver: true, HintVisible: e.hintVisible}
	}
	e.ticks++

	if e.settings.TimeLimit > 0 {
		e.remaining--
		if e.remaining <= 0 {
			e.remaining = 0
			e.gameOver = true
			e.hintVisible = false
			e.emit(Event{Kind: EventGameOver, Snapshot: e.Snapshot()})
			return TimerOutcome{GameOver: true}
		}
	}

	if !e.disabled {
		e.idle++
		if e.idle >= e.settings.HintIdleTicks && !e.hint.Empty() {
			e.hintVisible = true
		}
	}
	return TimerOutcome{Remaining: e.remaining, HintVisible: e.hintVisible}
}

// ShowHint reveals the current hint without waiting for the idle timeout.
func (e *Engine) ShowHint() bool {
	if e.gameOver || e.hint.Empty() {
		return false
	}
	e.hintVisible = true
	return true
}

// RequestShuffle permutes the playable tiles, clears any runs this creates
// without scoring them and recomputes the hint. Rejected while disabled.
func (e *Engine) RequestShuffle() bool {
	if e.disabled || e.gameOver {
		return false
	}
	e.board.Shuffle(e.rng)
	e.resolver.Stabilize(e.board)
	e.shuffles++
	e.idle = 0
	e.hintVisible = false
	e.refreshHint()
	e.emit(Event{Kind: EventShuffle, Snapshot: e.Snapshot()})
	return true
}

func (e *Engine) refreshHint() {
	hint, stats := e.hinter.Compute(e.board)
	e.hint = hint
	e.rescues.Seeds += stats.Seeds
	e.rescues.Shuffles += stats.Shuffles
	e.rescues.Regenerated = e.rescues.Regenerated || stats.Regenerated
	e.emit(Event{Kind: EventHint, Snapshot: e.Snapshot(), Stats: stats})
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board { return e.board.Clone() }

// Hint returns the current hint.
func (e *Engine) Hint() Hint {
	h := Hint{Move: e.hint.Move}
	h.Cells = append(h.Cells, e.hint.Cells...)
	return h
}

// Settings returns the engine tuning.
func (e *Engine) Settings() Settings { return e.settings }

// Score returns the running score.
func (e *Engine) Score() int { return e.tracker.Score() }

// GameOver reports whether the countdown expired.
func (e *Engine) GameOver() bool { return e.gameOver }

// Disabled reports whether swaps are currently rejected.
func (e *Engine) Disabled() bool { return e.disabled || e.gameOver }

// Shuffles returns the number of player-requested shuffles this session.
func (e *Engine) Shuffles() int { return e.shuffles }

// Rescues returns the cumulative hint rescue counters for this session.
func (e *Engine) Rescues() HintStats { return e.rescues }
