package match3

// Move is a swap between two adjacent cells.
type Move struct {
	From int
	To   int
}

// Hint points at a move that completes a run. Cells holds the two matching
// anchors followed by the cell that has to be swapped in; it is nil when no
// move could be found or forced.
type Hint struct {
	Cells []int
	Move  Move
}

// Empty reports whether the hint carries no move.
func (h Hint) Empty() bool { return len(h.Cells) == 0 }

// HintStats counts the rescue measures taken while computing a hint.
type HintStats struct {
	Seeds       int // near-matches turned into guaranteed moves
	Shuffles    int
	Regenerated bool
}

// candidate is a 3-cell window holding two tiles of type want and an odd cell,
// paired with a neighbour of the odd cell that could be swapped in.
type candidate struct {
	anchors [2]int
	odd     int
	other   int
	want    Tile
}

func (c candidate) hint() Hint {
	return Hint{
		Cells: []int{c.anchors[0], c.anchors[1], c.other},
		Move:  Move{From: c.odd, To: c.other},
	}
}

// Hinter finds a move on a stable board and, when there is none, rescues the
// board: first by seeding a near-match, then by shuffling, finally by
// regenerating it.
type Hinter struct {
	Resolver       *Resolver
	SeedAttempts   int
	ShuffleRetries int
}

// Compute returns a hint for b, mutating b when a rescue is needed. The
// returned board is always stable.
func (h *Hinter) Compute(b *Board) (Hint, HintStats) {
	var stats HintStats
	rng := h.Resolver.Rand

	if hint, ok := h.search(b, &stats); ok {
		return hint, stats
	}
	for stats.Shuffles < h.ShuffleRetries {
		stats.Shuffles++
		b.Shuffle(rng)
		h.Resolver.Stabilize(b)
		if hint, ok := h.search(b, &stats); ok {
			return hint, stats
		}
	}

	stats.Regenerated = true
	b.FillStable(rng, h.Resolver.Types)
	h.Resolver.Stabilize(b)
	if hint, ok := h.search(b, &stats); ok {
		return hint, stats
	}
	return Hint{}, stats
}

// search tries a ready move, seeding near-matches up to SeedAttempts times.
func (h *Hinter) search(b *Board, stats *HintStats) (Hint, bool) {
	rng := h.Resolver.Rand
	for attempt := 0; ; attempt++ {
		ready, near := candidates(b)
		if len(ready) > 0 {
			return ready[rng.Intn(len(ready))].hint(), true
		}
		if len(near) == 0 || attempt >= h.SeedAttempts {
			return Hint{}, false
		}

		seed := near[rng.Intn(len(near))]
		b.SetTile(seed.other, seed.want)
		stats.Seeds++
		h.Resolver.Stabilize(b)
	}
}

// candidates scans every in-line window of three valid cells where two tiles
// match and the third differs. For each neighbour of the odd cell outside the
// window it yields a ready candidate when the neighbour already has the
// anchors' type and a near candidate otherwise. Order is deterministic:
// windows row-major, horizontal before vertical, neighbours up, down, left,
// right.
func candidates(b *Board) (ready, near []candidate) {
	cols := b.Cols()
	for _, i := range b.cells {
		if b.Col(i)+2 < cols {
			ready, near = windowCandidates(b, [3]int{i, i + 1, i + 2}, ready, near)
		}
		ready, near = windowCandidates(b, [3]int{i, i + cols, i + 2*cols}, ready, near)
	}
	return ready, near
}

func windowCandidates(b *Board, w [3]int, ready, near []candidate) ([]candidate, []candidate) {
	for _, i := range w {
		if !b.Valid(i) || b.tiles[i] == Empty {
			return ready, near
		}
	}

	t0, t1, t2 := b.tiles[w[0]], b.tiles[w[1]], b.tiles[w[2]]
	var c candidate
	switch {
	case t0 == t1 && t1 == t2:
		return ready, near
	case t0 == t1:
		c = candidate{anchors: [2]int{w[0], w[1]}, odd: w[2], want: t0}
	case t0 == t2:
		c = candidate{anchors: [2]int{w[0], w[2]}, odd: w[1], want: t0}
	case t1 == t2:
		c = candidate{anchors: [2]int{w[1], w[2]}, odd: w[0], want: t1}
	default:
		return ready, near
	}

	cols := b.Cols()
	for _, q := range [4]int{c.odd - cols, c.odd + cols, c.odd - 1, c.odd + 1} {
		if q == w[0] || q == w[1] || q == w[2] || !b.IsAdjacent(c.odd, q) {
			continue
		}
		c.other = q
		if b.tiles[q] == c.want {
			ready = append(ready, c)
		} else {
			near = append(near, c)
		}
	}
	return ready, near
}
