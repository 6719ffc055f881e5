package gems

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/match3"
	"github.com/vovakirdan/match3/internal/registry"
)

func newTestGame(t *testing.T, g *Game, level int) *Game {
	t.Helper()
	// a missing custom file makes Reset fall back to the built-in defaults
	SetConfigPath(filepath.Join(t.TempDir(), "none.yaml"))
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})
	g.SetLevel(level)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 42})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"match3", "match3_heart"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestResetDimensions(t *testing.T) {
	tests := []struct {
		name  string
		game  func() *Game
		level int
		rows  int
		cols  int
	}{
		{"normal small", New, 1, 10, 6},
		{"normal large", New, 3, 15, 9},
		{"heart small", NewHeart, 1, 5, 5},
		{"heart medium", NewHeart, 2, 7, 7},
		{"heart large", NewHeart, 3, 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, tt.game(), tt.level)
			snap := g.Snapshot()
			if snap.Board.Rows != tt.rows || snap.Board.Cols != tt.cols {
				t.Errorf("board = %dx%d, want %dx%d", snap.Board.Rows, snap.Board.Cols, tt.rows, tt.cols)
			}
			if snap.Level != tt.level {
				t.Errorf("level = %d, want %d", snap.Level, tt.level)
			}
			if snap.State != StatePlaying {
				t.Errorf("state = %q, want playing", snap.State)
			}
			if !snap.Board.Valid[snap.Cursor] {
				t.Errorf("cursor %d starts on an inert cell", snap.Cursor)
			}
			lvl := GetLevel(tt.level - 1)
			rows, cols := lvl.Dimensions(g.shape, 360, 600)
			if rows != tt.rows || cols != tt.cols {
				t.Errorf("Dimensions() = %dx%d, want %dx%d", rows, cols, tt.rows, tt.cols)
			}
		})
	}
}

func TestTooSmallWindow(t *testing.T) {
	g := newTestGame(t, New(), 1)
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60, Seed: 1})

	g.Step(input(core.ActionRight))
	if s := g.Snapshot(); s.State != StatePausedSmall {
		t.Errorf("state = %q, want %q", s.State, StatePausedSmall)
	}
	if !g.State().Paused {
		t.Error("too small window should report paused")
	}

	screen := core.NewScreen(10, 5)
	g.Render(screen)
}

func TestCursorMovement(t *testing.T) {
	g := newTestGame(t, New(), 1) // 10x6, cursor at (5,3)
	start := g.cursor
	if start != 5*6+3 {
		t.Fatalf("cursor = %d, want centre 33", start)
	}

	g.Step(input(core.ActionRight))
	if g.cursor != start+1 {
		t.Errorf("after Right cursor = %d, want %d", g.cursor, start+1)
	}
	g.Step(input(core.ActionDown))
	if g.cursor != start+1+6 {
		t.Errorf("after Down cursor = %d, want %d", g.cursor, start+7)
	}

	// pushing against the edge keeps the cursor in place
	for range 10 {
		g.Step(input(core.ActionRight))
	}
	if g.cursor%6 != 5 {
		t.Errorf("cursor column = %d, want 5", g.cursor%6)
	}
}

func TestCursorSkipsInertCells(t *testing.T) {
	g := newTestGame(t, NewHeart(), 3) // 9x9 heart
	snap := g.engine.Snapshot()

	// (1,4) is carved by the dip between the lobes
	if snap.Valid[snap.Index(1, 4)] || !snap.Valid[snap.Index(1, 3)] {
		t.Fatal("unexpected heart mask on row 1")
	}
	g.cursor = snap.Index(1, 3)
	g.Step(input(core.ActionRight))
	if want := snap.Index(1, 5); g.cursor != want {
		t.Errorf("cursor = %d, want %d", g.cursor, want)
	}

	// nothing valid above (2,0): the cursor stays
	g.cursor = snap.Index(2, 0)
	g.Step(input(core.ActionUp))
	if want := snap.Index(2, 0); g.cursor != want {
		t.Errorf("cursor = %d, want %d", g.cursor, want)
	}
}

func TestSelectToggle(t *testing.T) {
	g := newTestGame(t, New(), 1)
	cursor := g.cursor

	g.Step(input(core.ActionSelect))
	if g.selected != cursor {
		t.Fatalf("selected = %d, want %d", g.selected, cursor)
	}
	g.Step(input(core.ActionSelect))
	if g.selected != -1 {
		t.Errorf("second select should release, selected = %d", g.selected)
	}
}

// playHint grabs the hinted tile and pushes it towards its partner.
func playHint(t *testing.T, g *Game) match3.Move {
	t.Helper()
	hint := g.engine.Hint()
	if hint.Empty() {
		t.Fatal("no hint on a fresh board")
	}
	move := hint.Move
	cols := g.engine.Snapshot().Cols

	g.cursor = move.From
	g.Step(input(core.ActionSelect))

	var dir core.Action
	switch move.To - move.From {
	case 1:
		dir = core.ActionRight
	case -1:
		dir = core.ActionLeft
	case cols:
		dir = core.ActionDown
	default:
		dir = core.ActionUp
	}
	g.Step(input(dir))
	return move
}

func TestHintMoveScoresAndAnimates(t *testing.T) {
	g := newTestGame(t, New(), 2)

	move := playHint(t, g)
	if g.State().Score <= 0 {
		t.Fatalf("hint move %+v did not score", move)
	}
	if g.cursor != move.To {
		t.Errorf("cursor = %d, want %d after swap", g.cursor, move.To)
	}
	if len(g.frames) < 3 {
		t.Fatalf("queued %d frames, want swap, match and drop", len(g.frames))
	}

	g.Step(core.NewInputFrame())
	if s := g.Snapshot(); s.State != StateAnimating {
		t.Fatalf("state = %q, want animating", s.State)
	}

	// input is ignored until playback ends
	before := g.cursor
	g.Step(input(core.ActionLeft))
	if g.cursor != before {
		t.Error("cursor moved during animation")
	}

	for range 1000 {
		if g.Snapshot().State != StateAnimating {
			break
		}
		g.Step(core.NewInputFrame())
	}
	if s := g.Snapshot(); s.State != StatePlaying {
		t.Errorf("state = %q after playback, want playing", s.State)
	}
}

func TestDragSwap(t *testing.T) {
	g := newTestGame(t, New(), 2)
	move := g.engine.Hint().Move
	cols := g.engine.Snapshot().Cols

	area := g.layout.board
	fx := area.X + (move.From%cols)*cellW + 1
	fy := area.Y + (move.From/cols)*cellH
	tx := area.X + (move.To%cols)*cellW + 1
	ty := area.Y + (move.To/cols)*cellH

	in := core.NewInputFrame()
	in.SetDrag(core.Drag{FromX: fx, FromY: fy, ToX: tx, ToY: ty})
	g.Step(in)

	if g.State().Score <= 0 {
		t.Errorf("drag from %d to %d did not score", move.From, move.To)
	}
}

func TestClickSelects(t *testing.T) {
	g := newTestGame(t, New(), 1)
	area := g.layout.board

	in := core.NewInputFrame()
	in.SetDrag(core.Drag{FromX: area.X + 1, FromY: area.Y, ToX: area.X + 1, ToY: area.Y})
	g.Step(in)
	if g.cursor != 0 || g.selected != 0 {
		t.Errorf("click: cursor=%d selected=%d, want 0/0", g.cursor, g.selected)
	}

	// clicks outside the board are ignored
	in.SetDrag(core.Drag{FromX: 0, FromY: 0, ToX: 0, ToY: 0})
	g.Step(in)
	if g.selected != 0 {
		t.Errorf("outside click changed selection to %d", g.selected)
	}
}

func TestPauseFreezesTimer(t *testing.T) {
	g := newTestGame(t, New(), 1)
	g.tickRate = 1

	g.Step(input(core.ActionPause))
	remaining := g.engine.Snapshot().Remaining
	for range 5 {
		g.Step(core.NewInputFrame())
	}
	if got := g.engine.Snapshot().Remaining; got != remaining {
		t.Errorf("remaining changed while paused: %d -> %d", remaining, got)
	}
	if !g.State().Paused {
		t.Error("state should be paused")
	}

	g.Step(input(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestTimerRunsOut(t *testing.T) {
	g := newTestGame(t, New(), 1)
	g.tickRate = 1

	limit := g.engine.Settings().TimeLimit
	for range limit + 5 {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("game should be over after the time limit")
	}
	if s := g.Snapshot(); s.State != StateGameOver {
		t.Errorf("state = %q, want game_over", s.State)
	}

	screen := core.NewScreen(80, 30)
	g.Render(screen)
}

func TestDifficultyPreset(t *testing.T) {
	g := New()
	newTestGame(t, g, 1)
	SetDifficultyPreset("hard")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1})

	s := g.engine.Settings()
	if s.TileTypes != 7 || s.TimeLimit != 60 {
		t.Errorf("hard preset settings = %+v", s)
	}
}

func TestDeterminism(t *testing.T) {
	script := []core.Action{
		core.ActionRight, core.ActionSelect, core.ActionDown, core.ActionNone,
		core.ActionLeft, core.ActionSelect, core.ActionUp, core.ActionShuffle,
		core.ActionHint, core.ActionDown, core.ActionSelect, core.ActionRight,
	}

	run := func() []Snapshot {
		g := newTestGame(t, New(), 2)
		var out []Snapshot
		for i := range 300 {
			in := core.NewInputFrame()
			if i%5 == 0 {
				in.Set(script[(i/5)%len(script)])
			}
			g.Step(in)
			out = append(out, g.Snapshot())
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and input produced different snapshots")
	}
}

func TestRenderMarkers(t *testing.T) {
	g := newTestGame(t, New(), 1)
	screen := core.NewScreen(80, 30)
	g.Render(screen)

	area := g.layout.board
	cols := g.engine.Snapshot().Cols
	x := area.X + (g.cursor%cols)*cellW
	y := area.Y + g.cursor/cols
	if screen.Get(x, y) != '[' || screen.Get(x+2, y) != ']' {
		t.Errorf("cursor markers missing at (%d,%d): %q", x, y, screen.Row(y))
	}

	g.Step(input(core.ActionSelect))
	g.Render(screen)
	if screen.Get(x, y) != '<' {
		t.Errorf("selection marker missing: %q", screen.Row(y))
	}

	// top border of the board frame
	frame := g.layout.frame
	if screen.Get(frame.X, frame.Y) != '┌' {
		t.Errorf("board frame missing at (%d,%d)", frame.X, frame.Y)
	}
}

func TestStartLevel(t *testing.T) {
	SetStartLevel(3)
	defer SetStartLevel(0)

	g := New()
	if g.Level() != 3 {
		t.Errorf("Level() = %d, want 3", g.Level())
	}
	g.SetLevel(9)
	if g.Level() != 3 {
		t.Errorf("out-of-range SetLevel changed level to %d", g.Level())
	}
	if GetStartLevel() != 3 {
		t.Errorf("GetStartLevel() = %d", GetStartLevel())
	}
}

func TestTimerColor(t *testing.T) {
	tests := []struct {
		remaining, limit int
		want             core.Color
	}{
		{90, 90, core.ColorBlue},
		{46, 90, core.ColorBlue},
		{45, 90, core.ColorYellow},
		{23, 90, core.ColorYellow},
		{22, 90, core.ColorRed},
		{0, 90, core.ColorRed},
		{0, 0, core.ColorBlue},
	}
	for _, tt := range tests {
		if got := timerColor(tt.remaining, tt.limit); got != tt.want {
			t.Errorf("timerColor(%d, %d) = %v, want %v", tt.remaining, tt.limit, got, tt.want)
		}
	}
}
