package match3

// Orientation of a run.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MinRun is the shortest line of equal tiles that clears.
const MinRun = 3

// Run is a maximal line of three or more equal tiles.
type Run struct {
	Orientation Orientation
	Type        Tile
	Cells       []int // in scan order
}

// Len returns the number of cells in the run.
func (r Run) Len() int { return len(r.Cells) }

// ScanResult is the outcome of one detector pass.
type ScanResult struct {
	Runs    []Run
	Matched []bool // per cell, true if part of any run
}

// DidMatch reports whether the pass found at least one run.
func (s ScanResult) DidMatch() bool { return len(s.Runs) > 0 }

// FindRuns returns every horizontal run (row-major) followed by every vertical
// run (column-major). Runs never extend across an inert cell, an empty cell or
// a row edge. The board is not modified.
func FindRuns(b *Board) []Run {
	var runs []Run
	rows, cols := b.Rows(), b.Cols()

	for r := 0; r < rows; r++ {
		runs = appendRuns(runs, b, r*cols, 1, cols, Horizontal)
	}
	for c := 0; c < cols; c++ {
		runs = appendRuns(runs, b, c, cols, rows, Vertical)
	}
	return runs
}

// appendRuns scans n cells starting at start with the given stride.
func appendRuns(runs []Run, b *Board, start, stride, n int, o Orientation) []Run {
	runStart := 0
	for k := 1; k <= n; k++ {
		prev := start + (k-1)*stride
		if k < n {
			cur := start + k*stride
			if matchable(b, prev) && matchable(b, cur) && b.tiles[cur] == b.tiles[prev] {
				continue
			}
		}

		// line [runStart, k) ended
		if k-runStart >= MinRun && matchable(b, start+runStart*stride) {
			cells := make([]int, 0, k-runStart)
			for j := runStart; j < k; j++ {
				cells = append(cells, start+j*stride)
			}
			runs = append(runs, Run{Orientation: o, Type: b.tiles[cells[0]], Cells: cells})
		}
		runStart = k
	}
	return runs
}

func matchable(b *Board, i int) bool {
	return b.valid[i] && b.tiles[i] != Empty
}

// Scan finds every run and marks its cells removed on the board. Tiles stay in
// place until gravity runs. A cell shared by a horizontal and a vertical run
// is marked once but both runs are reported.
func Scan(b *Board) ScanResult {
	res := ScanResult{
		Runs:    FindRuns(b),
		Matched: make([]bool, b.Size()),
	}
	for _, run := range res.Runs {
		for _, i := range run.Cells {
			res.Matched[i] = true
			b.removed[i] = true
		}
	}
	return res
}

// HasRuns reports whether the board holds at least one run.
func HasRuns(b *Board) bool {
	return len(FindRuns(b)) > 0
}
