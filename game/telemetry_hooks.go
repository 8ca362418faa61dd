package game

import (
	"log/slog"

	"github.com/pthm-cable/mitosis/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.simTime) {
		return
	}

	stats := s.collector.Flush(s.tick, s.simTime, s.populationSample())
	perfStats := s.perf.Stats()
	s.lastStats = stats

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if s.snapshotDir != "" {
			s.saveSnapshot(&bm)
		}
	}
}

// populationSample exposes the store columns to the collector without
// copying; Flush only reads them.
func (s *Simulation) populationSample() telemetry.PopulationSample {
	return telemetry.PopulationSample{
		Phases: s.store.Phase,
		Speeds: s.store.Speed,
		Radii:  s.store.Radius,
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (s *Simulation) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := s.SaveSnapshot(s.snapshotDir, bookmark)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", s.tick)
}
