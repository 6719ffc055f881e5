package match3

import (
	"math/rand"
	"testing"
)

func newHinter(rng Rand, types int) *Hinter {
	return &Hinter{
		Resolver:       &Resolver{Rand: rng, Types: types, MaxCascades: 64},
		SeedAttempts:   8,
		ShuffleRetries: 3,
	}
}

func TestHintReadyMove(t *testing.T) {
	b := NewBoardFromTiles(3, 3, tiles(1, 1, 2, 3, 2, 2, 1, 3, 3), nil)
	before := b.Clone()

	hint, stats := newHinter(rand.New(rand.NewSource(1)), 3).Compute(b)

	want := []int{7, 8, 3}
	if len(hint.Cells) != 3 {
		t.Fatalf("hint = %v, want 3 cells", hint.Cells)
	}
	for i := range want {
		if hint.Cells[i] != want[i] {
			t.Errorf("hint cells = %v, want %v", hint.Cells, want)
			break
		}
	}
	if hint.Move != (Move{From: 6, To: 3}) {
		t.Errorf("hint move = %+v, want 6->3", hint.Move)
	}
	if stats.Seeds != 0 || stats.Shuffles != 0 || stats.Regenerated {
		t.Errorf("stats = %+v, want no rescue", stats)
	}
	if !b.Equal(before) {
		t.Error("a ready hint should not modify the board")
	}
}

func TestHintSeedsNearMatch(t *testing.T) {
	b := NewBoardFromTiles(3, 3, tiles(
		1, 1, 2,
		3, 4, 5,
		6, 7, 8,
	), nil)

	hint, stats := newHinter(rand.New(rand.NewSource(2)), 8).Compute(b)

	if stats.Seeds != 1 {
		t.Errorf("seeds = %d, want 1", stats.Seeds)
	}
	if b.Tile(5) != 1 {
		t.Errorf("seeded cell 5 = %d, want 1", b.Tile(5))
	}
	want := []int{0, 1, 5}
	for i := range want {
		if hint.Cells[i] != want[i] {
			t.Fatalf("hint cells = %v, want %v", hint.Cells, want)
		}
	}
	if hint.Move != (Move{From: 2, To: 5}) {
		t.Errorf("hint move = %+v, want 2->5", hint.Move)
	}
}

func TestHintWithoutWindowsIsEmpty(t *testing.T) {
	b := NewBoardFromTiles(1, 2, tiles(1, 2), nil)

	hint, stats := newHinter(rand.New(rand.NewSource(3)), 4).Compute(b)

	if !hint.Empty() {
		t.Errorf("hint = %v, want empty", hint.Cells)
	}
	if stats.Shuffles != 3 {
		t.Errorf("shuffles = %d, want 3", stats.Shuffles)
	}
	if !stats.Regenerated {
		t.Error("board should have been regenerated after the shuffle bound")
	}
}

func TestHintMoveCompletesRun(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		shape := ShapeNormal
		if seed%2 == 1 {
			shape = ShapeHeart
		}
		b := NewBoard(shape, 9, 8)
		b.Fill(rng, 6)
		h := newHinter(rng, 6)
		h.Resolver.Stabilize(b)

		hint, _ := h.Compute(b)
		if len(hint.Cells) != 3 {
			t.Fatalf("seed %d: hint = %v, want 3 cells", seed, hint.Cells)
		}
		if HasRuns(b) {
			t.Fatalf("seed %d: board not stable after hint\n%s", seed, b)
		}
		a0, a1, other := hint.Cells[0], hint.Cells[1], hint.Cells[2]
		if b.Tile(a0) != b.Tile(a1) {
			t.Errorf("seed %d: anchors %d and %d differ", seed, a0, a1)
		}
		if b.Tile(other) != b.Tile(a0) {
			t.Errorf("seed %d: swapped-in cell has type %d, want %d", seed, b.Tile(other), b.Tile(a0))
		}
		if !b.Valid(hint.Move.From) || !b.IsAdjacent(hint.Move.From, hint.Move.To) {
			t.Errorf("seed %d: move %+v is not a legal swap", seed, hint.Move)
		}

		b.Swap(hint.Move.From, hint.Move.To)
		if !HasRuns(b) {
			t.Errorf("seed %d: hint move %+v does not form a run", seed, hint.Move)
		}
	}
}

func TestCandidatesSkipWindowCells(t *testing.T) {
	// 1 1 2 1 : the odd cell's right neighbour completes the run, the left
	// neighbour is inside the window and must not be offered.
	b := NewBoardFromTiles(1, 4, tiles(1, 1, 2, 1), nil)
	ready, _ := candidates(b)
	if len(ready) != 1 {
		t.Fatalf("ready = %+v, want exactly one candidate", ready)
	}
	if ready[0].odd != 2 || ready[0].other != 3 {
		t.Errorf("candidate = %+v, want odd 2 other 3", ready[0])
	}
}
