package storage

import (
	"errors"
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

func save(t *testing.T, store *Store, rec ScoreRecord) {
	t.Helper()
	if _, err := store.SaveScore(rec); err != nil {
		t.Fatalf("SaveScore(%+v) failed: %v", rec, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, ScoreRecord{GameID: "2048", Score: 1200})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1200 {
		t.Errorf("HighScore after reopen = %d, want 1200", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, ScoreRecord{GameID: "2048", RunID: "a", Score: 100, MaxTile: 16, Moves: 20})
	save(t, store, ScoreRecord{GameID: "2048", RunID: "b", Score: 50, MaxTile: 8, Moves: 12})
	save(t, store, ScoreRecord{GameID: "2048", RunID: "c", Score: 200, MaxTile: 32, Moves: 41})
	save(t, store, ScoreRecord{GameID: "2048-5x5", RunID: "d", Score: 500, MaxTile: 64, Moves: 90})

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, s := range scores {
		if s.Score != want[i] {
			t.Errorf("scores[%d] = %d, want %d", i, s.Score, want[i])
		}
	}

	top := scores[0]
	if top.RunID != "c" || top.MaxTile != 32 || top.Moves != 41 {
		t.Errorf("top entry = %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}

	other, err := store.TopScores("2048-5x5", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 score for 2048-5x5, got %d", len(other))
	}
}

func TestStoreDuplicateRun(t *testing.T) {
	store := openTestStore(t)

	save(t, store, ScoreRecord{GameID: "2048", RunID: "run-1", Score: 300})

	_, err := store.SaveScore(ScoreRecord{GameID: "2048", RunID: "run-1", Score: 300})
	if !errors.Is(err, ErrDuplicateRun) {
		t.Errorf("second save err = %v, want ErrDuplicateRun", err)
	}

	// Records without a run ID are never treated as duplicates
	save(t, store, ScoreRecord{GameID: "2048", Score: 10})
	save(t, store, ScoreRecord{GameID: "2048", Score: 10})

	scores, _ := store.TopScores("2048", 10)
	if len(scores) != 3 {
		t.Errorf("Expected 3 stored scores, got %d", len(scores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		save(t, store, ScoreRecord{GameID: "test", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	all, err := store.TopScores("test", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, ScoreRecord{GameID: "2048", Score: 100})
	save(t, store, ScoreRecord{GameID: "2048", Score: 300})
	save(t, store, ScoreRecord{GameID: "2048", Score: 200})

	high, err = store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, ScoreRecord{GameID: "2048", Score: 100})
	save(t, store, ScoreRecord{GameID: "2048", Score: 200})
	save(t, store, ScoreRecord{GameID: "2048-3x3", Score: 300})

	if err := store.ClearScores("2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores("2048", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(cleared))
	}

	kept, _ := store.TopScores("2048-3x3", 10)
	if len(kept) != 1 {
		t.Errorf("Other variants should not be affected by clearing 2048")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for unplayed game = %+v", empty)
	}

	save(t, store, ScoreRecord{GameID: "2048", Score: 100, MaxTile: 16, Moves: 10})
	save(t, store, ScoreRecord{GameID: "2048", Score: 300, MaxTile: 64, Moves: 30})
	save(t, store, ScoreRecord{GameID: "2048-6x6", Score: 50, MaxTile: 8, Moves: 5})

	stats, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestTile != 64 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 || stats.TotalScore != 400 || stats.TotalMoves != 40 {
		t.Errorf("aggregates = avg %g total %d moves %d", stats.AvgScore, stats.TotalScore, stats.TotalMoves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not populated")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["2048-6x6"].HighScore != 50 || all["2048"].BestTile != 64 {
		t.Errorf("all stats mismatch: %+v %+v", all["2048"], all["2048-6x6"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
