package systems

import (
	"fmt"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/telemetry"
)

// GeometryMode selects how the geometry buffer grows after duplications.
type GeometryMode string

const (
	// GeometryRebuild regenerates the whole buffer from the store.
	GeometryRebuild GeometryMode = "rebuild"
	// GeometryIncremental appends one quad per birth.
	GeometryIncremental GeometryMode = "incremental"
)

// ParseGeometryMode validates a mode name. Empty means rebuild.
func ParseGeometryMode(s string) (GeometryMode, error) {
	switch GeometryMode(s) {
	case "", GeometryRebuild:
		return GeometryRebuild, nil
	case GeometryIncremental:
		return GeometryIncremental, nil
	}
	return "", fmt.Errorf("unknown geometry update mode %q", s)
}

// PhaseTimer receives sub-phase boundaries of a pass.
// *telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartPhase(name string)
}

// CycleParams are the tunables of a pass.
type CycleParams struct {
	BaseRadius     float32
	RadiusSpeedCap float32
	Drift          DriftParams
	Mode           GeometryMode
}

// DefaultCycleParams returns the stock pass parameters.
func DefaultCycleParams() CycleParams {
	return CycleParams{
		BaseRadius:     0.1,
		RadiusSpeedCap: 3,
		Drift:          DefaultDriftParams(),
		Mode:           GeometryRebuild,
	}
}

// StepResult summarizes one pass.
type StepResult struct {
	// Grew is set when at least one cell duplicated; the GPU buffers must
	// be reallocated rather than patched.
	Grew   bool
	Births []Birth
	Cells  int
}

// CycleSystem advances the cell cycle, duplicates cells and moves them.
type CycleSystem struct {
	store   *CellStore
	geom    *Geometry
	sampler *Sampler
	params  CycleParams
	timer   PhaseTimer

	births []Birth
}

// NewCycleSystem creates a stepper over store and geom. The geometry is
// rebuilt so it matches the store before the first pass.
func NewCycleSystem(store *CellStore, geom *Geometry, sampler *Sampler, params CycleParams) *CycleSystem {
	if params.Mode == "" {
		params.Mode = GeometryRebuild
	}
	geom.RebuildFull(store)
	return &CycleSystem{
		store:   store,
		geom:    geom,
		sampler: sampler,
		params:  params,
	}
}

// SetTimer installs a phase timer. nil disables timing.
func (s *CycleSystem) SetTimer(t PhaseTimer) { s.timer = t }

// Params returns the pass parameters.
func (s *CycleSystem) Params() CycleParams { return s.params }

// Store returns the cell store.
func (s *CycleSystem) Store() *CellStore { return s.store }

// Geometry returns the geometry buffer.
func (s *CycleSystem) Geometry() *Geometry { return s.geom }

// Reseed replaces the population with n fresh cells and rebuilds the
// geometry to match.
func (s *CycleSystem) Reseed(n int, p SeedParams) {
	s.store.Seed(n, s.sampler, p)
	s.geom.RebuildFull(s.store)
}

func (s *CycleSystem) phase(name string) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
}

// Step runs one pass of dt seconds. Negative dt is treated as zero.
//
// Order: cycle advance and duplication, geometry growth, radius, boundary
// reflection, integration, geometry sync. Cells born in this pass are not
// advanced through the cycle until the next pass, but they are moved and
// drawn.
func (s *CycleSystem) Step(dt float32) StepResult {
	if dt < 0 {
		dt = 0
	}
	st := s.store
	s.births = s.births[:0]

	s.phase(telemetry.PhaseCycle)
	n0 := st.Len()
	for i := range n0 {
		st.Elapsed[i] += dt * st.Speed[i]
		if st.Elapsed[i] < components.DurationOf(st.Phase[i]) {
			continue
		}
		next, wrapped := st.Phase[i].Next()
		st.Phase[i] = next
		st.Elapsed[i] = 0
		if wrapped {
			child := st.Duplicate(i, s.sampler, s.params.Drift)
			s.births = append(s.births, Birth{Parent: i, Child: child})
		}
	}

	s.phase(telemetry.PhaseGeometryGrow)
	if len(s.births) > 0 {
		if s.params.Mode == GeometryIncremental {
			s.geom.GrowIncrementally(s.births)
		} else {
			s.geom.RebuildFull(st)
		}
	}

	s.phase(telemetry.PhaseRadius)
	n := st.Len()
	for i := range n {
		st.Radius[i] = CellRadius(st.Phase[i], st.Elapsed[i], st.Speed[i], s.params.BaseRadius, s.params.RadiusSpeedCap)
	}

	s.phase(telemetry.PhaseBounds)
	for i := range n {
		st.Pos[i][0], st.Vel[i][0] = reflect(st.Pos[i][0], st.Vel[i][0])
		st.Pos[i][1], st.Vel[i][1] = reflect(st.Pos[i][1], st.Vel[i][1])
	}

	s.phase(telemetry.PhaseIntegrate)
	for i := range n {
		st.Pos[i] = st.Pos[i].Add(st.Vel[i].Mul(dt))
	}

	s.phase(telemetry.PhaseGeometrySync)
	s.geom.SyncPositions(st)

	if err := s.geom.Validate(n); err != nil {
		violate("CycleSystem.Step", "%v", err)
	}

	res := StepResult{Grew: len(s.births) > 0, Cells: n}
	if res.Grew {
		res.Births = append([]Birth(nil), s.births...)
	}
	return res
}

// reflect bounces one axis off the [-1,1] walls, pulling the position back
// by the pre-update overshoot.
func reflect(p, v float32) (float32, float32) {
	if p >= 1 {
		v = -v
		p -= p - 1
	} else if p <= -1 {
		v = -v
		p -= p + 1
	}
	return p, v
}
