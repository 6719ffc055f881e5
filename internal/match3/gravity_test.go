package match3

import (
	"math/rand"
	"testing"
)

func TestDropDownCompactsColumn(t *testing.T) {
	// single column, top to bottom: 1 2 3 4
	b := NewBoardFromTiles(4, 1, tiles(1, 2, 3, 4), nil)
	b.removed[2] = true

	falls := DropDown(b, fixedRand{v: 4}, 6)

	want := tiles(5, 1, 2, 4)
	for i, w := range want {
		if b.Tile(i) != w {
			t.Errorf("tile %d = %d, want %d (board %v)", i, b.Tile(i), w, b.Tiles())
		}
	}
	if len(falls) != 3 {
		t.Fatalf("falls = %v, want 3 moves", falls)
	}
	if falls[2].From != -1 || falls[2].To != 0 {
		t.Errorf("last fall = %+v, want refill into 0", falls[2])
	}
	for i := 0; i < b.Size(); i++ {
		if b.Removed(i) {
			t.Errorf("cell %d still marked removed", i)
		}
	}
}

func TestDropDownPassesInertCells(t *testing.T) {
	// column: 1, 2, inert, 3; bottom tile removed
	mask := []bool{true, true, false, true}
	b := NewBoardFromTiles(4, 1, tiles(1, 2, 0, 3), mask)
	b.removed[3] = true

	DropDown(b, fixedRand{v: 0}, 6)

	want := tiles(1, 1, 0, 2)
	for i, w := range want {
		if b.Tile(i) != w {
			t.Errorf("tile %d = %d, want %d (board %v)", i, b.Tile(i), w, b.Tiles())
		}
	}
}

func TestDropDownKeepsColumns(t *testing.T) {
	b := NewBoardFromTiles(2, 3, tiles(
		1, 2, 3,
		4, 5, 6,
	), nil)
	b.removed[4] = true

	DropDown(b, fixedRand{v: 6}, 9)

	want := tiles(1, 7, 3, 4, 2, 6)
	for i, w := range want {
		if b.Tile(i) != w {
			t.Errorf("tile %d = %d, want %d", i, b.Tile(i), w)
		}
	}
}

func TestDropDownNeverLeavesEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := NewBoard(ShapeHeart, 9, 9)
	b.Fill(rng, 5)
	for _, i := range b.ValidCells() {
		if i%3 == 0 {
			b.removed[i] = true
		}
	}

	DropDown(b, rng, 5)

	for _, i := range b.ValidCells() {
		if b.Tile(i) == Empty {
			t.Errorf("valid cell %d left empty", i)
		}
	}
	for i := 0; i < b.Size(); i++ {
		if !b.Valid(i) && b.Tile(i) != Empty {
			t.Errorf("inert cell %d filled with %d", i, b.Tile(i))
		}
	}
}

func TestDropDownDeterministic(t *testing.T) {
	run := func() []Tile {
		rng := rand.New(rand.NewSource(77))
		b := NewBoard(ShapeNormal, 6, 6)
		b.Fill(rng, 6)
		Scan(b)
		for _, i := range []int{0, 7, 14, 21} {
			b.removed[i] = true
		}
		DropDown(b, rng, 6)
		return b.Tiles()
	}

	a, c := run(), run()
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("runs diverged at %d: %d vs %d", i, a[i], c[i])
		}
	}
}

func TestResolverSettlesAtCap(t *testing.T) {
	b := NewBoardFromTiles(3, 3, tiles(
		1, 1, 1,
		2, 3, 2,
		3, 2, 3,
	), nil)

	r := &Resolver{Rand: rand.New(rand.NewSource(1)), Types: 3, MaxCascades: 1}
	b2 := b.Clone()
	chain := r.Resolve(b2, nil)
	if chain.Cascades < 1 || chain.Runs < 1 {
		t.Errorf("chain = %+v, want at least one cascade", chain)
	}
	if HasRuns(b2) {
		t.Errorf("board still has runs after settling\n%s", b2)
	}
}

func TestResolverReportsPhases(t *testing.T) {
	b := NewBoardFromTiles(3, 3, tiles(
		4, 4, 4,
		1, 2, 3,
		2, 3, 1,
	), nil)
	r := &Resolver{Rand: rand.New(rand.NewSource(5)), Types: 6, MaxCascades: 64}

	var phases []Phase
	r.Resolve(b, func(p Phase, s Step) {
		phases = append(phases, p)
		if p == PhaseMatched && len(s.Runs) == 0 {
			t.Error("matched step without runs")
		}
		if p == PhaseDropped && len(s.Falls) == 0 {
			t.Error("dropped step without falls")
		}
	})

	if len(phases) < 2 || phases[0] != PhaseMatched || phases[1] != PhaseDropped {
		t.Errorf("phases = %v, want matched then dropped", phases)
	}
	if len(phases)%2 != 0 {
		t.Errorf("phases = %v, want matched/dropped pairs", phases)
	}
}
