package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/progress"
	"github.com/vovakirdan/tiletwist/internal/stages"
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

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}

	if err := store.Set("pb-easy-e01", "12000"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("pb-easy-e01", "9000"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := store.Get("pb-easy-e01")
	if err != nil || !ok || v != "9000" {
		t.Errorf("Get() = %q, %v, %v; want 9000", v, ok, err)
	}
}

func TestStoreBacksTracker(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "progress.db")
	s := stages.New("e02", "Rings", config.ModeEasy, "pattern:rings", config.Default())

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := progress.NewTracker(store).RecordSolve(s, 7*time.Second); err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}
	store.Close()

	// Reopen: progress must survive.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	tr := progress.NewTracker(store)
	best, ok, err := tr.BestTime(s)
	if err != nil || !ok || best != 7*time.Second {
		t.Errorf("BestTime() after reopen = %v, %v, %v", best, ok, err)
	}
	if done, _ := tr.Completed(s); !done {
		t.Error("stage should be completed after reopen")
	}
}

func TestStoreTopTimes(t *testing.T) {
	store := openTestStore(t)

	attempts := []Attempt{
		{StageID: "e01", Mode: "easy", Elapsed: 20 * time.Second, Moves: 9, Solved: true, EndReason: "solved"},
		{StageID: "e01", Mode: "easy", Elapsed: 8 * time.Second, Moves: 6, Solved: true, EndReason: "solved"},
		{StageID: "e01", Mode: "easy", Elapsed: 3 * time.Second, Moves: 2, Solved: false, EndReason: "abandoned"},
		{StageID: "e01", Mode: "easy", Elapsed: 14 * time.Second, Moves: 7, Solved: true, EndReason: "solved"},
		{Player: "alice", StageID: "h01", Mode: "hard", Elapsed: 5 * time.Second, Moves: 12, Solved: true, EndReason: "solved"},
	}
	for _, a := range attempts {
		if _, err := store.SaveAttempt(a); err != nil {
			t.Fatalf("SaveAttempt() failed: %v", err)
		}
	}

	top, err := store.TopTimes("e01", 10)
	if err != nil {
		t.Fatalf("TopTimes() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 solved attempts, got %d", len(top))
	}
	want := []time.Duration{8 * time.Second, 14 * time.Second, 20 * time.Second}
	for i, w := range want {
		if top[i].Elapsed != w {
			t.Errorf("top[%d].Elapsed = %v, want %v", i, top[i].Elapsed, w)
		}
	}

	all, err := store.TopTimes("", 2)
	if err != nil {
		t.Fatalf("TopTimes(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].StageID != "h01" || all[0].Player != "alice" {
		t.Errorf("TopTimes(all, 2) = %+v", all)
	}
}

func TestStoreBestTimeAndClear(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestTime("e01"); ok || err != nil {
		t.Fatalf("BestTime() on empty = %v, %v", ok, err)
	}

	store.SaveAttempt(Attempt{StageID: "e01", Mode: "easy", Elapsed: 11 * time.Second, Solved: true, EndReason: "solved"})
	store.SaveAttempt(Attempt{StageID: "e01", Mode: "easy", Elapsed: 2 * time.Second, Solved: false, EndReason: "time"})
	store.SaveAttempt(Attempt{StageID: "e02", Mode: "easy", Elapsed: 4 * time.Second, Solved: true, EndReason: "solved"})

	best, ok, err := store.BestTime("e01")
	if err != nil || !ok || best != 11*time.Second {
		t.Errorf("BestTime() = %v, %v, %v; unsolved attempts must not count", best, ok, err)
	}

	if err := store.ClearAttempts("e01"); err != nil {
		t.Fatalf("ClearAttempts() failed: %v", err)
	}
	if top, _ := store.TopTimes("e01", 10); len(top) != 0 {
		t.Errorf("Expected 0 attempts after clear, got %d", len(top))
	}
	if top, _ := store.TopTimes("e02", 10); len(top) != 1 {
		t.Error("e02 attempts should not be affected by clearing e01")
	}
}

func TestStoreStageStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveAttempt(Attempt{StageID: "h01", Mode: "hard", Elapsed: 30 * time.Second, Moves: 10, Solved: true, EndReason: "solved"})
	store.SaveAttempt(Attempt{StageID: "h01", Mode: "hard", Elapsed: 20 * time.Second, Moves: 20, Solved: true, EndReason: "solved"})
	store.SaveAttempt(Attempt{StageID: "h01", Mode: "hard", Elapsed: 60 * time.Second, Moves: 40, Solved: false, EndReason: "time"})

	stats, err := store.AllStageStats()
	if err != nil {
		t.Fatalf("AllStageStats() failed: %v", err)
	}
	st := stats["h01"]
	if st == nil {
		t.Fatal("missing stats for h01")
	}
	if st.Attempts != 3 || st.Solves != 2 {
		t.Errorf("attempts/solves = %d/%d, want 3/2", st.Attempts, st.Solves)
	}
	if st.BestTime != 20*time.Second {
		t.Errorf("BestTime = %v, want 20s", st.BestTime)
	}
	if st.AvgMoves != 15 {
		t.Errorf("AvgMoves = %v, want 15", st.AvgMoves)
	}
	if r := st.SolveRate(); r < 0.66 || r > 0.67 {
		t.Errorf("SolveRate() = %v", r)
	}
}

func TestStoreCustomStages(t *testing.T) {
	store := openTestStore(t)

	if err := store.AddCustomStage(CustomStage{ID: "c-cat-easy", Name: "Cat", Mode: "easy", Source: "/tmp/cat.png"}); err != nil {
		t.Fatalf("AddCustomStage() failed: %v", err)
	}
	if err := store.AddCustomStage(CustomStage{ID: "c-cat-hard", Name: "Cat", Mode: "hard", Source: "/tmp/cat.png"}); err != nil {
		t.Fatalf("AddCustomStage() failed: %v", err)
	}
	if err := store.AddCustomStage(CustomStage{ID: "c-cat-easy", Name: "Dup", Mode: "easy", Source: "x"}); err == nil {
		t.Error("duplicate id should fail")
	}

	list, err := store.CustomStages()
	if err != nil {
		t.Fatalf("CustomStages() failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 custom stages, got %d", len(list))
	}

	removed, err := store.DeleteCustomStage("c-cat-easy")
	if err != nil || !removed {
		t.Errorf("DeleteCustomStage() = %v, %v", removed, err)
	}
	removed, err = store.DeleteCustomStage("c-cat-easy")
	if err != nil || removed {
		t.Errorf("second DeleteCustomStage() = %v, %v", removed, err)
	}

	list, _ = store.CustomStages()
	if len(list) != 1 || list[0].ID != "c-cat-hard" {
		t.Errorf("remaining stages = %+v", list)
	}
}

func TestMergeCustomStages(t *testing.T) {
	store := openTestStore(t)
	cfg := config.Default()

	store.AddCustomStage(CustomStage{ID: "custom-cat-hard", Name: "Cat", Mode: "hard", Source: "/tmp/cat.png"})

	c := stages.NewCatalog()
	if err := store.MergeCustomStages(c, cfg); err != nil {
		t.Fatalf("MergeCustomStages() failed: %v", err)
	}
	st, ok := c.ByID("custom-cat-hard")
	if !ok {
		t.Fatal("custom stage missing from catalog")
	}
	if !st.Custom || st.Grid != 3 || st.TimeLimit != 60*time.Second {
		t.Errorf("merged stage = %+v", st)
	}

	// Merging twice collides on the id.
	if err := store.MergeCustomStages(c, cfg); err == nil {
		t.Error("expected duplicate id error")
	}
}
