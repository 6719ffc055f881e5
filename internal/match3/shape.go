// Package match3 implements the rules of a tile-matching puzzle: a masked grid
// of typed tiles, swap validation, run detection, gravity with refill, cascade
// resolution, combo scoring and hint computation.
// It has no UI, timer or storage dependencies; callers deliver input and ticks
// and read state back through snapshots.
package match3

import "fmt"

// Shape selects which cells of the grid are playable.
type Shape int

const (
	ShapeNormal Shape = iota // Full rectangle
	ShapeHeart               // Odd square carved into a heart
)

// String returns the lowercase shape name.
func (s Shape) String() string {
	switch s {
	case ShapeNormal:
		return "normal"
	case ShapeHeart:
		return "heart"
	default:
		return "unknown"
	}
}

// ParseShape converts a shape name into a Shape.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "normal", "":
		return ShapeNormal, nil
	case "heart":
		return ShapeHeart, nil
	default:
		return ShapeNormal, fmt.Errorf("match3: unknown shape %q", name)
	}
}

// Shapes lists every supported shape.
func Shapes() []Shape {
	return []Shape{ShapeNormal, ShapeHeart}
}

// ComputeValidArea returns the adjusted grid dimensions and the playable mask
// (row-major, length rows*cols) for the given shape.
// It never fails: tiny or degenerate grids produce whatever mask the carving
// rules leave, possibly with no valid cells at all.
func ComputeValidArea(shape Shape, rows, cols int) (int, int, []bool) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}

	if shape != ShapeHeart {
		mask := make([]bool, rows*cols)
		for i := range mask {
			mask[i] = true
		}
		return rows, cols, mask
	}

	m := min(rows, cols)
	if m%2 == 0 && m > 0 {
		m--
	}
	mask := make([]bool, m*m)
	for r := 0; r < m; r++ {
		for c := 0; c < m; c++ {
			mask[r*m+c] = !heartCarved(m, r, c)
		}
	}
	return m, m, mask
}

// heartCarved reports whether (r, c) is cut away from an m×m heart.
// Every rule depends on c only through its distance to the nearer edge or the
// centre column, so the result is mirror-symmetric.
func heartCarved(m, r, c int) bool {
	center := m / 2
	lobe := max(1, m/4)
	mirror := m - 1 - c

	// Bottom point: rows below the centre lose one more cell per side each row.
	if r > center {
		depth := r - center
		if c < depth || mirror < depth {
			return true
		}
	}

	// Rounded top corners.
	if r+c < lobe || r+mirror < lobe {
		return true
	}

	// Dip between the two lobes.
	dist := c - center
	if dist < 0 {
		dist = -dist
	}
	return r < lobe && dist < lobe-r
}
