package match3

// Phase identifies the point inside a cascade cycle a step callback sees.
type Phase int

const (
	PhaseMatched Phase = iota // runs found and marked removed, tiles still in place
	PhaseDropped              // gravity and refill applied
)

// Step describes one cascade cycle.
type Step struct {
	Cascade int // 1-based cycle number within the chain
	Runs    []Run
	Falls   []Fall // set for PhaseDropped only
}

// Chain summarises a full resolution.
type Chain struct {
	Runs     int  // runs removed, one per run even when runs cross
	Cascades int  // detector passes that found runs
	Settled  bool // cascade cap hit and leftovers re-rolled
}

// Resolver repeats detect, remove, drop and refill until the board holds no
// run. Cascades beyond MaxCascades are not cleared: their cells are re-rolled
// with run-free types instead so the chain always terminates.
type Resolver struct {
	Rand        Rand
	Types       int
	MaxCascades int
}

// Resolve runs the chain to a fixed point. onStep may be nil.
func (r *Resolver) Resolve(b *Board, onStep func(Phase, Step)) Chain {
	var chain Chain
	for {
		runs := FindRuns(b)
		if len(runs) == 0 {
			return chain
		}
		if r.MaxCascades > 0 && chain.Cascades >= r.MaxCascades {
			r.settle(b, runs)
			chain.Settled = true
			return chain
		}

		Scan(b)
		chain.Cascades++
		chain.Runs += len(runs)
		step := Step{Cascade: chain.Cascades, Runs: runs}
		if onStep != nil {
			onStep(PhaseMatched, step)
		}

		step.Falls = DropDown(b, r.Rand, r.Types)
		if onStep != nil {
			onStep(PhaseDropped, step)
		}
	}
}

// Stabilize resolves the board without reporting steps. Used after board
// creation, shuffles and hint seeding where nothing is scored.
func (r *Resolver) Stabilize(b *Board) Chain {
	return r.Resolve(b, nil)
}

// settle re-rolls every cell of the given runs so none of them completes a
// line. The last re-rolled cell of any would-be run was checked against the
// final values of the others, so no run survives with three or more types.
func (r *Resolver) settle(b *Board, runs []Run) {
	var cells []int
	seen := make(map[int]bool)
	for _, run := range runs {
		for _, i := range run.Cells {
			if !seen[i] {
				seen[i] = true
				cells = append(cells, i)
				b.tiles[i] = Empty
			}
		}
	}
	for _, i := range cells {
		b.tiles[i] = b.safeTile(r.Rand, i, r.Types)
	}
	b.clearRemoved()
}
