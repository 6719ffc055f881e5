package gems

import (
	"math/rand"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/match3"
	"github.com/vovakirdan/match3/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// selectedStartLevel is the level picked in the menu, 1-based. 0 means default.
var selectedStartLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel sets the level (1-3) new games start on. 0 means default.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

func startLevelIndex() int {
	if selectedStartLevel > 0 && selectedStartLevel <= LevelCount() {
		return selectedStartLevel - 1
	}
	return 0
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// Game implements the match-3 puzzle for the arcade platform.
type Game struct {
	shape  match3.Shape
	cfg    config.Match3Config
	engine *match3.Engine
	rng    *rand.Rand
	tick   uint64

	levelIndex int
	tickRate   int
	subTicks   int // frames since the last engine tick

	cursor   int
	selected int // -1 when nothing is grabbed

	// Animation playback of resolution steps
	recording  bool
	frames     []match3.Snapshot
	current    *match3.Snapshot
	frameTicks int

	lastDelta  int
	deltaTicks int // frames the score popup stays visible
	lastCombo  int

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
	layout   layout
}

// New creates a match-3 game on the full rectangular board.
func New() *Game {
	return &Game{shape: match3.ShapeNormal, levelIndex: startLevelIndex()}
}

// NewHeart creates a match-3 game on the heart-shaped board.
func NewHeart() *Game {
	return &Game{shape: match3.ShapeHeart, levelIndex: startLevelIndex()}
}

// SetLevel picks the level (1-based) used from the next Reset on.
// Out-of-range values are ignored.
func (g *Game) SetLevel(level int) {
	if level >= 1 && level <= LevelCount() {
		g.levelIndex = level - 1
	}
}

// Level returns the current level, 1-based.
func (g *Game) Level() int {
	return g.levelIndex + 1
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_heart", func() registry.Game {
		return NewHeart()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.shape == match3.ShapeHeart {
		return "match3_heart"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.shape == match3.ShapeHeart {
		return "Match-3 (Heart)"
	}
	return "Match-3"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	// Load game config
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyMatch3Preset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.engine = match3.New(cfg.Settings(), g.rng)
	g.engine.SetListener(g.onEvent)

	level := GetLevel(g.levelIndex)
	g.engine.NewBoard(g.shape, level.CellSize, cfg.Board.ViewportH, cfg.Board.ViewportW)

	g.tick = 0
	g.tickRate = max(runtime.TickRate, 1)
	g.subTicks = 0
	g.selected = -1
	g.frames = nil
	g.current = nil
	g.frameTicks = 0
	g.lastDelta = 0
	g.deltaTicks = 0
	g.lastCombo = 0
	g.paused = false
	g.Resize(runtime.ScreenW, runtime.ScreenH)
	g.cursor = g.firstValidCell(g.engine.Snapshot())
}

// Resize fits the board to a new screen size. The board, score and countdown
// are kept.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.engine == nil {
		return
	}
	snap := g.engine.Snapshot()
	g.layout = computeLayout(snap.Rows, snap.Cols, g.screenW, g.screenH)
	g.tooSmall = !g.layout.fits
}

// onEvent collects the intermediate boards of a swap for playback.
func (g *Game) onEvent(ev match3.Event) {
	if !g.recording || g.cfg.Animation.FrameTicks <= 0 {
		return
	}
	switch ev.Kind {
	case match3.EventSwap, match3.EventMatch, match3.EventDrop:
		g.frames = append(g.frames, ev.Snapshot)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.engine.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.engine.GameOver() {
		return core.StepResult{State: g.State()}
	}

	// Engine countdown runs in seconds
	g.subTicks++
	if g.subTicks >= g.tickRate {
		g.subTicks = 0
		g.engine.Tick()
	}

	if g.deltaTicks > 0 {
		g.deltaTicks--
	}

	// Input is ignored while a chain is being played back
	if g.advanceAnimation() {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State()}
}

// advanceAnimation shows queued frames one after another. Returns true while
// playback is in progress.
func (g *Game) advanceAnimation() bool {
	if g.current != nil {
		g.frameTicks--
		if g.frameTicks > 0 {
			return true
		}
		g.current = nil
	}
	if len(g.frames) == 0 {
		return false
	}
	next := g.frames[0]
	g.frames = g.frames[1:]
	g.current = &next
	g.frameTicks = g.cfg.Animation.FrameTicks
	return true
}

func (g *Game) handleInput(in core.InputFrame) {
	snap := g.engine.Snapshot()

	if in.Drag != nil {
		g.handleDrag(*in.Drag, snap)
		return
	}

	switch {
	case in.Has(core.ActionShuffle):
		g.selected = -1
		g.engine.RequestShuffle()
		return
	case in.Has(core.ActionHint):
		g.engine.ShowHint()
		return
	case in.Has(core.ActionSelect):
		g.toggleSelect(snap)
		return
	}

	dx, dy := 0, 0
	switch {
	case in.Has(core.ActionUp):
		dy = -1
	case in.Has(core.ActionDown):
		dy = 1
	case in.Has(core.ActionLeft):
		dx = -1
	case in.Has(core.ActionRight):
		dx = 1
	default:
		return
	}

	if g.selected >= 0 {
		from := g.selected
		g.selected = -1
		out := g.swap(from, float64(dx), float64(dy))
		if out.Kind != match3.OutcomeNoop {
			g.cursor = out.To
		}
		return
	}
	g.moveCursor(snap, dx, dy)
}

// toggleSelect grabs the tile under the cursor, releases it, or swaps it with
// an adjacent grabbed tile.
func (g *Game) toggleSelect(snap match3.Snapshot) {
	switch {
	case g.selected == g.cursor:
		g.selected = -1
	case g.selected >= 0 && isNeighbour(snap, g.selected, g.cursor):
		from := g.selected
		g.selected = -1
		dx := g.cursor%snap.Cols - from%snap.Cols
		dy := g.cursor/snap.Cols - from/snap.Cols
		g.swap(from, float64(dx), float64(dy))
	case snap.Valid[g.cursor]:
		g.selected = g.cursor
	}
}

// handleDrag turns a pointer gesture into a swap, or a click into selection.
func (g *Game) handleDrag(d core.Drag, snap match3.Snapshot) {
	col, row, ok := g.layout.board.CellAt(d.FromX, d.FromY, cellW, cellH)
	if !ok {
		return
	}
	idx := snap.Index(row, col)
	if idx < 0 {
		return
	}

	dx, dy := d.Delta()
	if dx == 0 && dy == 0 {
		g.cursor = idx
		g.toggleSelect(snap)
		return
	}

	g.selected = -1
	g.cursor = idx
	// tiles are cellW characters wide but cellH lines tall
	if out := g.swap(idx, float64(dx)/cellW, float64(dy)/cellH); out.Kind != match3.OutcomeNoop {
		g.cursor = out.To
	}
}

func (g *Game) swap(idx int, dx, dy float64) match3.Outcome {
	g.recording = true
	out := g.engine.TrySwap(idx, dx, dy)
	g.recording = false

	if out.Kind == match3.OutcomeReverted && g.cfg.Animation.FrameTicks > 0 {
		// hold the swapped board, then show it snapping back
		g.frames = append(g.frames, out.Snapshot)
	}
	if out.Kind == match3.OutcomeResolved {
		g.lastDelta = out.ScoreDelta
		g.lastCombo = out.Combo
		g.deltaTicks = g.tickRate
	}
	return out
}

// moveCursor moves to the nearest valid cell in the direction, skipping
// inert cells. The cursor stays put at the edge.
func (g *Game) moveCursor(snap match3.Snapshot, dx, dy int) {
	row, col := g.cursor/snap.Cols, g.cursor%snap.Cols
	for {
		row += dy
		col += dx
		idx := snap.Index(row, col)
		if idx < 0 {
			return
		}
		if snap.Valid[idx] {
			g.cursor = idx
			return
		}
	}
}

func (g *Game) firstValidCell(snap match3.Snapshot) int {
	// start near the centre
	center := snap.Index(snap.Rows/2, snap.Cols/2)
	if center >= 0 && snap.Valid[center] {
		return center
	}
	for i, ok := range snap.Valid {
		if ok {
			return i
		}
	}
	return 0
}

func isNeighbour(snap match3.Snapshot, a, b int) bool {
	ra, ca := a/snap.Cols, a%snap.Cols
	rb, cb := b/snap.Cols, b%snap.Cols
	dr, dc := ra-rb, ca-cb
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	over := g.engine != nil && g.engine.GameOver()
	score := 0
	if g.engine != nil {
		score = g.engine.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: over,
		Paused:   g.paused || g.tooSmall,
	}
}

// Engine exposes the underlying engine for tests and tools.
func (g *Game) Engine() *match3.Engine {
	return g.engine
}

// view returns the board to draw: the animation frame if one is playing.
func (g *Game) view() match3.Snapshot {
	if g.current != nil {
		return *g.current
	}
	return g.engine.Snapshot()
}
