package storage

import (
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("match3", score, "alice"); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different game
	if _, err := store.SaveScore("match3_heart", 500, "bob"); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, s := range scores {
		if s.Score != want[i] {
			t.Errorf("scores[%d] = %d, want %d", i, s.Score, want[i])
		}
		if s.SessionID != "alice" {
			t.Errorf("scores[%d].SessionID = %q, want alice", i, s.SessionID)
		}
		if s.GameID != "match3" {
			t.Errorf("scores[%d].GameID = %q", i, s.GameID)
		}
	}

	heart, err := store.TopScores("match3_heart", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(heart) != 1 {
		t.Errorf("Expected 1 heart score, got %d", len(heart))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("match3", (i+1)*100, "")
	}

	// Request only top 3
	scores, err := store.TopScores("match3", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("match3", 100, "")
	store.SaveScore("match3", 300, "")
	store.SaveScore("match3", 200, "")

	high, err = store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("match3", 100, "")
	store.SaveScore("match3", 200, "")
	store.SaveScore("match3_heart", 300, "")

	if err := store.ClearScores("match3"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	normal, _ := store.TopScores("match3", 10)
	if len(normal) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(normal))
	}

	heart, _ := store.TopScores("match3_heart", 10)
	if len(heart) != 1 {
		t.Errorf("heart scores should not be affected by clearing match3")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("match3", i*10, "")
	}

	scores, err := store.AllScores("match3")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreSessionScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("match3", 10, "alice")
	store.SaveScore("match3_heart", 20, "bob")
	store.SaveScore("match3_heart", 30, "alice")

	scores, err := store.SessionScores("alice", 0)
	if err != nil {
		t.Fatalf("SessionScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores for alice, got %d", len(scores))
	}
	// newest first
	if scores[0].Score != 30 || scores[1].Score != 10 {
		t.Errorf("SessionScores order = %v", scores)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.StdDev != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("match3", 100, "")
	store.SaveScore("match3", 200, "")
	store.SaveScore("match3", 300, "")
	store.SaveScore("match3_heart", 42, "")

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 300 || stats.TotalScore != 600 {
		t.Errorf("stats = %+v", stats)
	}
	if math.Abs(stats.AvgScore-200) > 1e-9 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if math.Abs(stats.StdDev-100) > 1e-9 {
		t.Errorf("StdDev = %v, want 100", stats.StdDev)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["match3_heart"].GamesCount != 1 || all["match3_heart"].StdDev != 0 {
		t.Errorf("heart stats = %+v", all["match3_heart"])
	}
	if math.Abs(all["match3"].StdDev-100) > 1e-9 {
		t.Errorf("match3 StdDev = %v, want 100", all["match3"].StdDev)
	}
}

func TestStoreMigratesSessionColumn(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	// Schema written by releases without session tracking
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
		CREATE TABLE scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO scores (game_id, score) VALUES ('match3', 77);
	`)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("match3", 88, "carol"); err != nil {
		t.Fatalf("SaveScore() after migration failed: %v", err)
	}
	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].SessionID != "carol" || scores[1].SessionID != "" {
		t.Errorf("scores after migration = %+v", scores)
	}

	// a second open is a no-op
	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	store2.Close()
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
