package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/mitosis/components"
)

func TestSnapshotSave(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    42,
		Tick:       1000,
		SimTimeSec: 16.5,
		Cells: []CellState{
			{X: 0.25, Y: -0.5, VelX: 0.05, VelY: -0.03, Speed: 1.1, Elapsed: 0.4, Phase: components.PhaseS, Radius: 0.04},
			{X: -0.9, Y: 0.9, VelX: -0.01, VelY: 0.02, Speed: 0.8, Elapsed: 0.05, Phase: components.PhaseTelophase, Radius: 0.03},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkPopulationDoubled,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_1000_population_doubled.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	if got.Version != SnapshotVersion || got.RNGSeed != 42 || got.Tick != 1000 {
		t.Errorf("header mismatch: %+v", got)
	}
	if len(got.Cells) != len(snapshot.Cells) {
		t.Fatalf("cell count mismatch: got %d, want %d", len(got.Cells), len(snapshot.Cells))
	}
	for i := range snapshot.Cells {
		if got.Cells[i] != snapshot.Cells[i] {
			t.Errorf("cell %d mismatch: got %+v, want %+v", i, got.Cells[i], snapshot.Cells[i])
		}
	}
	if got.Bookmark == nil || got.Bookmark.Type != BookmarkPopulationDoubled {
		t.Errorf("bookmark not preserved: %+v", got.Bookmark)
	}
}

func TestSnapshotFilenameWithoutBookmark(t *testing.T) {
	path, err := SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 7}, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_7.json" {
		t.Errorf("unexpected filename %s", filepath.Base(path))
	}
}

func TestSnapshotBadDir(t *testing.T) {
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := SaveSnapshot(&Snapshot{}, blocker); err == nil {
		t.Error("expected an error when the directory cannot be created")
	}
}
