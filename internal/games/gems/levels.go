// Package gems implements the match-3 puzzle as an arcade game: a cursor-driven
// terminal front end over the match3 engine with a countdown, hints, shuffles
// and animated cascades.
package gems

import "github.com/vovakirdan/match3/internal/match3"

// Level defines a board layout: the shape and the cell size that, together
// with the virtual viewport, determines the board dimensions.
type Level struct {
	ID       int
	Name     string
	CellSize int
}

// Levels are shared by both shapes. Smaller cells mean bigger boards.
var Levels = []Level{
	{ID: 1, Name: "Small", CellSize: 60},
	{ID: 2, Name: "Medium", CellSize: 50},
	{ID: 3, Name: "Large", CellSize: 40},
}

// LevelCount returns the number of levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// Dimensions returns the board size a level produces for a shape and viewport.
func (l Level) Dimensions(shape match3.Shape, viewportW, viewportH int) (rows, cols int) {
	rows, cols = match3.GridSize(l.CellSize, viewportH, viewportW)
	rows, cols, _ = match3.ComputeValidArea(shape, rows, cols)
	return rows, cols
}

// ShapeFor returns the board shape used by a game ID.
func ShapeFor(gameID string) match3.Shape {
	if gameID == "match3_heart" {
		return match3.ShapeHeart
	}
	return match3.ShapeNormal
}
