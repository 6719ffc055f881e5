package match3

import (
	"math"
	"strings"
)

// Tile is a cell's color type. Empty marks a removed cell during resolution.
type Tile int8

// Empty is the placeholder type of a cleared cell.
const Empty Tile = 0

// Rand is the randomness the engine consumes. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Dims are the immutable dimensions of one board.
type Dims struct {
	Rows  int
	Cols  int
	Size  int
	Shape Shape
}

// Board holds tiles in row-major order together with the playable mask and
// per-cell removal markers used while a resolution step is in flight.
type Board struct {
	dims    Dims
	tiles   []Tile
	valid   []bool
	removed []bool
	cells   []int // valid indices, ascending
}

// NewBoard creates an empty board for the shape. Dimensions are adjusted by
// ComputeValidArea; all tiles start Empty.
func NewBoard(shape Shape, rows, cols int) *Board {
	rows, cols, mask := ComputeValidArea(shape, rows, cols)
	return newBoardWithMask(Dims{Rows: rows, Cols: cols, Size: rows * cols, Shape: shape}, mask)
}

// NewBoardFromTiles builds a board from explicit tiles. A nil mask means every
// cell is valid. Used by tests and tools that need exact layouts.
func NewBoardFromTiles(rows, cols int, tiles []Tile, mask []bool) *Board {
	if mask == nil {
		mask = make([]bool, rows*cols)
		for i := range mask {
			mask[i] = true
		}
	}
	b := newBoardWithMask(Dims{Rows: rows, Cols: cols, Size: rows * cols, Shape: ShapeNormal}, mask)
	copy(b.tiles, tiles)
	return b
}

func newBoardWithMask(d Dims, mask []bool) *Board {
	b := &Board{
		dims:    d,
		tiles:   make([]Tile, d.Size),
		valid:   make([]bool, d.Size),
		removed: make([]bool, d.Size),
	}
	copy(b.valid, mask)
	for i, ok := range b.valid {
		if ok {
			b.cells = append(b.cells, i)
		}
	}
	return b
}

// Dims returns the board dimensions.
func (b *Board) Dims() Dims { return b.dims }

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.dims.Rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.dims.Cols }

// Size returns rows*cols.
func (b *Board) Size() int { return b.dims.Size }

// Row returns the row of index i.
func (b *Board) Row(i int) int { return i / b.dims.Cols }

// Col returns the column of index i.
func (b *Board) Col(i int) int { return i % b.dims.Cols }

// Index converts (row, col) into a cell index, or -1 when out of range.
func (b *Board) Index(row, col int) int {
	if row < 0 || row >= b.dims.Rows || col < 0 || col >= b.dims.Cols {
		return -1
	}
	return row*b.dims.Cols + col
}

// InRange reports whether i addresses a cell of the grid.
func (b *Board) InRange(i int) bool { return i >= 0 && i < b.dims.Size }

// Valid reports whether i is a playable cell.
func (b *Board) Valid(i int) bool { return b.InRange(i) && b.valid[i] }

// Tile returns the tile at i, or Empty outside the grid.
func (b *Board) Tile(i int) Tile {
	if !b.InRange(i) {
		return Empty
	}
	return b.tiles[i]
}

// SetTile overwrites the tile at a valid cell.
func (b *Board) SetTile(i int, t Tile) {
	if b.Valid(i) {
		b.tiles[i] = t
	}
}

// Removed reports whether i is marked for removal.
func (b *Board) Removed(i int) bool { return b.InRange(i) && b.removed[i] }

// ValidCells returns the playable indices in ascending order.
func (b *Board) ValidCells() []int {
	out := make([]int, len(b.cells))
	copy(out, b.cells)
	return out
}

// Tiles returns a copy of all tiles.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Mask returns a copy of the playable mask.
func (b *Board) Mask() []bool {
	out := make([]bool, len(b.valid))
	copy(out, b.valid)
	return out
}

// RemovedMask returns a copy of the removal markers.
func (b *Board) RemovedMask() []bool {
	out := make([]bool, len(b.removed))
	copy(out, b.removed)
	return out
}

// IsAdjacent reports whether b is a valid orthogonal neighbour of a: left or
// right within the same row, or directly above or below.
func (b *Board) IsAdjacent(a, c int) bool {
	if !b.InRange(a) || !b.Valid(c) {
		return false
	}
	cols := b.dims.Cols
	switch c - a {
	case 1, -1:
		return b.Row(a) == b.Row(c)
	case cols, -cols:
		return true
	}
	return false
}

// Swap exchanges two tiles without validation.
func (b *Board) Swap(a, c int) {
	b.tiles[a], b.tiles[c] = b.tiles[c], b.tiles[a]
}

// ResolveSwapDirection maps a drag vector to the neighbour index it points
// at. The dominant axis wins; ties go vertical. The result may be off the
// board or wrap a row edge, which IsAdjacent rejects.
func (b *Board) ResolveSwapDirection(idx int, dx, dy float64) int {
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return idx + 1
		}
		return idx - 1
	}
	if dy > 0 {
		return idx + b.dims.Cols
	}
	return idx - b.dims.Cols
}

// Fill assigns every valid cell a random type in [1, types].
func (b *Board) Fill(rng Rand, types int) {
	for _, i := range b.cells {
		b.tiles[i] = randomTile(rng, types)
	}
	b.clearRemoved()
}

// FillStable assigns every valid cell a random type that does not complete a
// run, so the result has no runs when three or more types are available.
func (b *Board) FillStable(rng Rand, types int) {
	for _, i := range b.cells {
		b.tiles[i] = Empty
	}
	for _, i := range b.cells {
		b.tiles[i] = b.safeTile(rng, i, types)
	}
	b.clearRemoved()
}

// Shuffle permutes the tiles of the valid cells. Inert cells keep their place.
func (b *Board) Shuffle(rng Rand) {
	cells := b.cells
	rng.Shuffle(len(cells), func(i, j int) {
		b.tiles[cells[i]], b.tiles[cells[j]] = b.tiles[cells[j]], b.tiles[cells[i]]
	})
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := &Board{
		dims:    b.dims,
		tiles:   make([]Tile, len(b.tiles)),
		valid:   make([]bool, len(b.valid)),
		removed: make([]bool, len(b.removed)),
		cells:   make([]int, len(b.cells)),
	}
	copy(c.tiles, b.tiles)
	copy(c.valid, b.valid)
	copy(c.removed, b.removed)
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether two boards have the same dimensions, mask and tiles.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.dims != other.dims {
		return false
	}
	for i := range b.tiles {
		if b.tiles[i] != other.tiles[i] || b.valid[i] != other.valid[i] {
			return false
		}
	}
	return true
}

// String dumps the board one row per line: digits for tiles, '.' for inert
// cells and '*' for cells marked removed.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.dims.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.dims.Cols; c++ {
			i := r*b.dims.Cols + c
			switch {
			case !b.valid[i]:
				sb.WriteByte('.')
			case b.removed[i]:
				sb.WriteByte('*')
			default:
				sb.WriteString(tileGlyph(b.tiles[i]))
			}
		}
	}
	return sb.String()
}

func (b *Board) clearRemoved() {
	for i := range b.removed {
		b.removed[i] = false
	}
}

// safeTile picks a type for i that would not complete a run of three through
// i in either direction. Falls back to a random type when every choice is
// blocked, which needs fewer than three types.
func (b *Board) safeTile(rng Rand, i, types int) Tile {
	types = max(types, 1)
	start := rng.Intn(types)
	for k := 0; k < types; k++ {
		t := Tile(1 + (start+k)%types)
		if b.lineLength(i, t, 1) < 3 && b.lineLength(i, t, b.dims.Cols) < 3 {
			return t
		}
	}
	return Tile(1 + start)
}

// lineLength counts the run through i along step (1 or Cols) if i held t.
func (b *Board) lineLength(i int, t Tile, step int) int {
	n := 1
	for j := i - step; b.sameLine(i, j, step) && b.tiles[j] == t; j -= step {
		n++
	}
	for j := i + step; b.sameLine(i, j, step) && b.tiles[j] == t; j += step {
		n++
	}
	return n
}

// sameLine reports whether j is a valid cell on i's row (step 1) or column.
func (b *Board) sameLine(i, j, step int) bool {
	if !b.Valid(j) {
		return false
	}
	if step == 1 {
		return b.Row(i) == b.Row(j)
	}
	return true
}

func randomTile(rng Rand, types int) Tile {
	return Tile(1 + rng.Intn(max(types, 1)))
}

func tileGlyph(t Tile) string {
	if t >= 0 && t <= 9 {
		return string(rune('0' + t))
	}
	return string(rune('a' + t - 10))
}
