package match3

// Fall records one tile movement produced by gravity. From is -1 for tiles
// spawned by refill.
type Fall struct {
	From int
	To   int
	Tile Tile
}

// DropDown compacts every column so surviving tiles sink below the removed
// ones, then refills the vacated top cells with random types in [1, types].
// Tiles keep their column and relative order and pass over inert cells.
// Removal markers are cleared. The result depends only on the board and rng.
func DropDown(b *Board, rng Rand, types int) []Fall {
	var falls []Fall
	rows, cols := b.Rows(), b.Cols()
	column := make([]int, 0, rows)

	for c := 0; c < cols; c++ {
		// valid cells of this column, bottom-up
		column = column[:0]
		for r := rows - 1; r >= 0; r-- {
			if i := r*cols + c; b.valid[i] {
				column = append(column, i)
			}
		}

		write := 0
		for _, read := range column {
			if b.removed[read] {
				continue
			}
			dst := column[write]
			if dst != read {
				b.tiles[dst] = b.tiles[read]
				falls = append(falls, Fall{From: read, To: dst, Tile: b.tiles[dst]})
			}
			write++
		}

		for ; write < len(column); write++ {
			dst := column[write]
			b.tiles[dst] = randomTile(rng, types)
			falls = append(falls, Fall{From: -1, To: dst, Tile: b.tiles[dst]})
		}
	}

	b.clearRemoved()
	return falls
}
