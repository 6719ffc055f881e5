package match3

import (
	"math"
	"testing"
)

func TestScoreDelta(t *testing.T) {
	tests := []struct {
		combo int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 4},
		{4, 6},
		{5, 7},
		{10, 19},
	}
	for _, tt := range tests {
		if got := ScoreDelta(tt.combo); got != tt.want {
			t.Errorf("ScoreDelta(%d) = %d, want %d", tt.combo, got, tt.want)
		}
	}
}

func TestScoreDeltaMatchesFormula(t *testing.T) {
	for combo := 1; combo <= 40; combo++ {
		// exact decimal value is (combo+9)*combo/10
		exact := float64((combo+9)*combo) / 10
		want := int(math.Ceil(exact))
		if got := ScoreDelta(combo); got != want {
			t.Errorf("ScoreDelta(%d) = %d, want %d", combo, got, want)
		}
	}
}

func TestTracker(t *testing.T) {
	var tr Tracker

	tr.Begin()
	tr.Add(1)
	tr.Add(1)
	if d := tr.Commit(); d != 3 {
		t.Errorf("first chain delta = %d, want 3", d)
	}

	tr.Begin()
	if tr.Combo() != 0 {
		t.Errorf("Begin should reset combo, got %d", tr.Combo())
	}
	tr.Add(1)
	tr.Commit()
	if tr.Score() != 4 {
		t.Errorf("Score() = %d, want 4", tr.Score())
	}

	tr.Reset()
	if tr.Score() != 0 || tr.Combo() != 0 {
		t.Errorf("after Reset score=%d combo=%d", tr.Score(), tr.Combo())
	}
}
