package match3

// ScoreDelta converts a chain's combo into points:
// ceil((0.1*(combo-1) + 1) * combo), evaluated exactly in integers.
// 0 -> 0, 1 -> 1, 2 -> 3, 3 -> 4, 4 -> 6.
func ScoreDelta(combo int) int {
	if combo <= 0 {
		return 0
	}
	// (combo+9)*combo / 10, rounded up
	return ((combo+9)*combo + 9) / 10
}

// Tracker accumulates the score across chains and the combo within one.
type Tracker struct {
	score int
	combo int
}

// Score returns the running total.
func (t *Tracker) Score() int { return t.score }

// Combo returns the combo of the current or most recent chain.
func (t *Tracker) Combo() int { return t.combo }

// Begin starts a new chain.
func (t *Tracker) Begin() { t.combo = 0 }

// Add counts removed runs toward the current chain.
func (t *Tracker) Add(runs int) { t.combo += runs }

// Commit applies the chain's delta to the score once and returns it.
func (t *Tracker) Commit() int {
	delta := ScoreDelta(t.combo)
	t.score += delta
	return delta
}

// Reset clears score and combo.
func (t *Tracker) Reset() {
	t.score = 0
	t.combo = 0
}
