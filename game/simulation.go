package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/systems"
	"github.com/pthm-cable/mitosis/telemetry"
)

// SimOptions configures a Simulation.
type SimOptions struct {
	Seed      int64
	LogStats  bool
	OutputDir string

	// SnapshotDir receives a population snapshot on every bookmark
	// (empty = off).
	SnapshotDir string
}

// Simulation owns the cell population, its stepper and the telemetry around
// it. It never touches the window, so the headless runner, the terminal
// viewer and the graphical game all drive the same core.
type Simulation struct {
	cfg  *config.Config
	seed int64
	rng  *rand.Rand

	sampler    *systems.Sampler
	seedParams systems.SeedParams
	store      *systems.CellStore
	geom       *systems.Geometry
	cycle      *systems.CycleSystem

	tick        int32
	simTime     float64
	totalBirths int
	last        systems.StepResult

	perf        *telemetry.PerfCollector
	collector   *telemetry.Collector
	bookmarks   *telemetry.BookmarkDetector
	output      *telemetry.OutputManager
	snapshotDir string
	logStats    bool
	lastStats   telemetry.WindowStats

	statsCallback func(telemetry.WindowStats)
}

// NewSimulation seeds the initial population from cfg.
func NewSimulation(cfg *config.Config, opts SimOptions) (*Simulation, error) {
	phases, err := systems.NewPhaseSampler(cfg.Seeding.PhaseWeights)
	if err != nil {
		return nil, fmt.Errorf("phase weights: %w", err)
	}
	mode, err := systems.ParseGeometryMode(cfg.Simulation.GeometryUpdate)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:         cfg,
		seed:        opts.Seed,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:   telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		bookmarks:   telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize),
		snapshotDir: opts.SnapshotDir,
		logStats:    opts.LogStats,
	}
	s.sampler = systems.NewSampler(s.rng)
	s.seedParams = systems.SeedParams{
		PositionRange:   float32(cfg.Seeding.PositionRange),
		VelocityDivisor: float32(cfg.Seeding.VelocityDivisor),
		SpeedJitter:     float32(cfg.Seeding.SpeedJitter),
		BaseRadius:      cfg.Derived.BaseRadius32,
		RadiusSpeedCap:  float32(cfg.Simulation.RadiusSpeedCap),
		Phases:          phases,
	}

	n := cfg.Simulation.InitialCells
	s.store = systems.NewCellStore(n)
	s.store.Seed(n, s.sampler, s.seedParams)
	s.geom = systems.NewGeometry(n)
	s.cycle = systems.NewCycleSystem(s.store, s.geom, s.sampler, systems.CycleParams{
		BaseRadius:     cfg.Derived.BaseRadius32,
		RadiusSpeedCap: float32(cfg.Simulation.RadiusSpeedCap),
		Drift: systems.DriftParams{
			Min:   float32(cfg.Duplication.DriftMin),
			Max:   float32(cfg.Duplication.DriftMax),
			Scale: float32(cfg.Duplication.DriftScale),
		},
		Mode: mode,
	})
	s.cycle.SetTimer(s.perf)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		s.output = om
	}

	slog.Info("population seeded",
		"cells", n,
		"seed", opts.Seed,
		"geometry_update", string(mode),
	)
	return s, nil
}

// Step runs one stepper pass of dt seconds and then telemetry. Callers
// bracket frames with Perf().StartTick and Perf().EndTick.
func (s *Simulation) Step(dt float32) systems.StepResult {
	s.last = s.cycle.Step(dt)
	s.tick++
	s.simTime += float64(max(dt, 0))

	if n := len(s.last.Births); n > 0 {
		s.totalBirths += n
		s.collector.RecordBirths(n)
	}

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()
	return s.last
}

// Reseed replaces the population with a freshly seeded one. Telemetry
// windows carry on.
func (s *Simulation) Reseed() {
	s.cycle.Reseed(s.cfg.Simulation.InitialCells, s.seedParams)
	s.last = systems.StepResult{Grew: true, Cells: s.store.Len()}
	slog.Info("population reseeded", "cells", s.store.Len(), "tick", s.tick)
}

// SetStatsCallback installs fn to receive every flushed window.
func (s *Simulation) SetStatsCallback(fn func(telemetry.WindowStats)) {
	s.statsCallback = fn
}

// Store returns the cell store.
func (s *Simulation) Store() *systems.CellStore { return s.store }

// Geometry returns the CPU geometry buffer.
func (s *Simulation) Geometry() *systems.Geometry { return s.geom }

// Perf returns the frame timing collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// Tick returns the number of passes run.
func (s *Simulation) Tick() int32 { return s.tick }

// SimTime returns the simulated seconds elapsed.
func (s *Simulation) SimTime() float64 { return s.simTime }

// TotalBirths returns the number of duplications since start.
func (s *Simulation) TotalBirths() int { return s.totalBirths }

// LastStep returns the result of the most recent pass.
func (s *Simulation) LastStep() systems.StepResult { return s.last }

// LastStats returns the most recently flushed window.
func (s *Simulation) LastStats() telemetry.WindowStats { return s.lastStats }

// PhaseCounts returns the current population per phase.
func (s *Simulation) PhaseCounts() [components.PhaseCount]int {
	return s.store.PhaseCounts()
}

// Close flushes and closes the output files.
func (s *Simulation) Close() {
	if s.output == nil {
		return
	}
	if err := s.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	s.output = nil
}
