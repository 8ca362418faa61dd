package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/mitosis/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a JSON dump of the population at one tick, written for
// offline inspection. Nothing reads it back into a run.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Tick       int32   `json:"tick"`
	SimTimeSec float64 `json:"sim_time"`

	Cells []CellState `json:"cells"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// CellState holds one cell's complete state.
type CellState struct {
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	VelX float32 `json:"vel_x"`
	VelY float32 `json:"vel_y"`

	Speed   float32          `json:"speed"`
	Elapsed float32          `json:"elapsed"`
	Phase   components.Phase `json:"phase"`
	Radius  float32          `json:"radius"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}
