package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/matchgrid/internal/catalog"
	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/rng"
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

func newTestGrid(seed int64, layout grid.Layout) *grid.Grid {
	g := grid.New(grid.Options{Catalog: catalog.Default(), Random: rng.NewStreams(seed)})
	g.SetLayout(7, layout, grid.Alignment{}, false)
	g.Create()
	return g
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestStoreSaveAndRestore(t *testing.T) {
	store := openTestStore(t)
	g := newTestGrid(5, grid.LayoutTTop)

	if _, err := store.SaveGrid("slot1", g, 5); err != nil {
		t.Fatalf("SaveGrid() failed: %v", err)
	}

	sg, err := store.LoadGrid("slot1")
	if err != nil {
		t.Fatalf("LoadGrid() failed: %v", err)
	}
	if sg == nil {
		t.Fatal("Expected a save, got nil")
	}
	if sg.Layout != "t-top" || sg.Seed != 5 {
		t.Errorf("Expected t-top seed 5, got %s seed %d", sg.Layout, sg.Seed)
	}
	if sg.Size != len(g.Save()) {
		t.Errorf("Expected size %d, got %d", len(g.Save()), sg.Size)
	}

	restored := grid.New(grid.Options{Catalog: catalog.Default()})
	if _, err := store.Restore("slot1", restored); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if string(restored.Save()) != string(g.Save()) {
		t.Error("Restored grid differs from the saved grid")
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := openTestStore(t)

	id1, err := store.SaveGrid("slot", newTestGrid(1, grid.LayoutSquare), 1)
	if err != nil {
		t.Fatalf("SaveGrid() failed: %v", err)
	}
	id2, err := store.SaveGrid("slot", newTestGrid(2, grid.LayoutPlus), 2)
	if err != nil {
		t.Fatalf("SaveGrid() failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("Expected the same row, got %d and %d", id1, id2)
	}

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 1 {
		t.Fatalf("Expected 1 save, got %d", len(saves))
	}
	if saves[0].Layout != "plus" || saves[0].Seed != 2 {
		t.Errorf("Expected the second save to win, got %+v", saves[0])
	}
	if len(saves[0].Blob) != 0 || saves[0].Size == 0 {
		t.Errorf("Expected a size without blob, got size %d blob %d", saves[0].Size, len(saves[0].Blob))
	}
}

func TestStoreMissingAndCorruptSaves(t *testing.T) {
	store := openTestStore(t)

	sg, err := store.LoadGrid("nothing")
	if err != nil {
		t.Fatalf("LoadGrid() failed: %v", err)
	}
	if sg != nil {
		t.Errorf("Expected nil for a missing save, got %+v", sg)
	}

	g := newTestGrid(3, grid.LayoutSquare)
	before := g.Save()
	if _, err := store.Restore("nothing", g); err == nil {
		t.Error("Expected an error restoring a missing save")
	}

	if _, err := store.db.Exec(`INSERT INTO saves (name, layout, blob) VALUES ('bad', 'square', x'0102')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := store.Restore("bad", g); err == nil {
		t.Error("Expected an error restoring a corrupt save")
	}
	if string(g.Save()) != string(before) {
		t.Error("Grid changed after a failed restore")
	}

	if err := store.DeleteSave("bad"); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if err := store.DeleteSave("bad"); err != nil {
		t.Errorf("DeleteSave() of a missing save failed: %v", err)
	}
	if _, err := store.SaveGrid("", g, 0); err == nil {
		t.Error("Expected an error for an empty name")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{Seed: 1, Layout: "square", Turns: 10, Score: 4000},
		{Seed: 2, Layout: "square", Turns: 12, Score: 9000, Cascades: 3},
		{Seed: 3, Layout: "plus", Turns: 4, Score: 12000, Stuck: true},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("square", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 square runs, got %d", len(top))
	}
	if top[0].Score != 9000 || top[0].Cascades != 3 || top[1].Score != 4000 {
		t.Errorf("Unexpected order: %+v", top)
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 2 || all[0].Layout != "plus" || !all[0].Stuck {
		t.Errorf("Expected the plus run first and the limit applied, got %+v", all)
	}

	best, err := store.BestScore("square")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 9000 {
		t.Errorf("Expected best score 9000, got %d", best)
	}

	overall, err := store.BestScore("")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if overall != 12000 {
		t.Errorf("Expected best overall score 12000, got %d", overall)
	}

	none, err := store.BestScore("boss01")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if none != 0 {
		t.Errorf("Expected 0 for no runs, got %d", none)
	}
}

func TestStoreTutorial(t *testing.T) {
	store := openTestStore(t)

	if err := store.MarkTutorial([]grid.TypeID{24, 20}); err != nil {
		t.Fatalf("MarkTutorial() failed: %v", err)
	}
	if err := store.MarkTutorial([]grid.TypeID{20, 21}); err != nil {
		t.Fatalf("MarkTutorial() failed: %v", err)
	}

	ids, err := store.TutorialShown()
	if err != nil {
		t.Fatalf("TutorialShown() failed: %v", err)
	}
	want := []grid.TypeID{20, 21, 24}
	if len(ids) != len(want) {
		t.Fatalf("Expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, ids)
		}
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store1.RecordRun(RunEntry{Seed: 9, Layout: "square", Score: 777}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store2.Close()

	best, err := store2.BestScore("square")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 777 {
		t.Errorf("Expected persisted score 777, got %d", best)
	}
}
