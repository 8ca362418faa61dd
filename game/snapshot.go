package game

import (
	"github.com/pthm-cable/mitosis/telemetry"
)

// Snapshot captures the current population. bookmark may be nil.
func (s *Simulation) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    s.seed,
		Tick:       s.tick,
		SimTimeSec: s.simTime,
		Cells:      make([]telemetry.CellState, s.store.Len()),
		Bookmark:   bookmark,
	}
	for i := range s.store.Len() {
		c := s.store.Cell(i)
		snap.Cells[i] = telemetry.CellState{
			X:       c.Pos.X(),
			Y:       c.Pos.Y(),
			VelX:    c.Vel.X(),
			VelY:    c.Vel.Y(),
			Speed:   c.Speed,
			Elapsed: c.Elapsed,
			Phase:   c.Phase,
			Radius:  c.Radius,
		}
	}
	return snap
}

// SaveSnapshot writes the current population to dir and returns the path.
func (s *Simulation) SaveSnapshot(dir string, bookmark *telemetry.Bookmark) (string, error) {
	return telemetry.SaveSnapshot(s.Snapshot(bookmark), dir)
}
