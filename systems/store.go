// Package systems holds the cell population and the per-frame passes that
// advance it.
package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/mitosis/components"
)

// Cell is a by-value view of one row of the store.
type Cell struct {
	Pos     mgl32.Vec2
	Vel     mgl32.Vec2
	Speed   float32
	Elapsed float32
	Phase   components.Phase
	Radius  float32
}

// Birth records a duplication: Child was appended as a copy of Parent.
type Birth struct {
	Parent int
	Child  int
}

// SeedParams controls initial population generation.
type SeedParams struct {
	PositionRange   float32 // positions drawn from U(-range, range)
	VelocityDivisor float32 // velocities drawn from U(-1,1)/divisor
	SpeedJitter     float32 // speed = 1 + U(-1,1)*jitter
	BaseRadius      float32
	RadiusSpeedCap  float32
	Phases          *PhaseSampler
}

// DefaultSeedParams returns the stock seeding parameters.
func DefaultSeedParams() SeedParams {
	ps, _ := NewPhaseSampler(DefaultPhaseWeights)
	return SeedParams{
		PositionRange:   1,
		VelocityDivisor: 14,
		SpeedJitter:     0.2,
		BaseRadius:      0.1,
		RadiusSpeedCap:  3,
		Phases:          ps,
	}
}

// DriftParams controls the speed drift applied to both cells on duplication:
// factor = 1 + U(Min, Max)*Scale.
type DriftParams struct {
	Min, Max, Scale float32
}

// DefaultDriftParams returns the stock drift parameters.
func DefaultDriftParams() DriftParams {
	return DriftParams{Min: -0.5, Max: 1, Scale: 0.5}
}

// CellStore is the cell population laid out as parallel columns. Row i of
// every column describes cell i; the geometry buffer relies on that index
// staying stable for the lifetime of the cell.
type CellStore struct {
	Pos     []mgl32.Vec2
	Vel     []mgl32.Vec2
	Speed   []float32
	Elapsed []float32
	Phase   []components.Phase
	Radius  []float32
}

// NewCellStore returns an empty store with room for capacity cells.
func NewCellStore(capacity int) *CellStore {
	return &CellStore{
		Pos:     make([]mgl32.Vec2, 0, capacity),
		Vel:     make([]mgl32.Vec2, 0, capacity),
		Speed:   make([]float32, 0, capacity),
		Elapsed: make([]float32, 0, capacity),
		Phase:   make([]components.Phase, 0, capacity),
		Radius:  make([]float32, 0, capacity),
	}
}

// Len returns the number of cells.
func (s *CellStore) Len() int { return len(s.Pos) }

// Reset drops every cell, keeping capacity.
func (s *CellStore) Reset() {
	s.Pos = s.Pos[:0]
	s.Vel = s.Vel[:0]
	s.Speed = s.Speed[:0]
	s.Elapsed = s.Elapsed[:0]
	s.Phase = s.Phase[:0]
	s.Radius = s.Radius[:0]
}

// Add appends c and returns its index.
func (s *CellStore) Add(c Cell) int {
	i := len(s.Pos)
	s.Pos = append(s.Pos, c.Pos)
	s.Vel = append(s.Vel, c.Vel)
	s.Speed = append(s.Speed, c.Speed)
	s.Elapsed = append(s.Elapsed, c.Elapsed)
	s.Phase = append(s.Phase, c.Phase)
	s.Radius = append(s.Radius, c.Radius)
	return i
}

// Cell returns a copy of cell i.
func (s *CellStore) Cell(i int) Cell {
	s.check("Cell", i)
	return Cell{
		Pos:     s.Pos[i],
		Vel:     s.Vel[i],
		Speed:   s.Speed[i],
		Elapsed: s.Elapsed[i],
		Phase:   s.Phase[i],
		Radius:  s.Radius[i],
	}
}

// Set overwrites cell i.
func (s *CellStore) Set(i int, c Cell) {
	s.check("Set", i)
	s.Pos[i] = c.Pos
	s.Vel[i] = c.Vel
	s.Speed[i] = c.Speed
	s.Elapsed[i] = c.Elapsed
	s.Phase[i] = c.Phase
	s.Radius[i] = c.Radius
}

// Seed replaces the population with n freshly drawn cells. Each cell draws,
// in order: posX, posY, velX, velY, speed, phase, elapsed.
func (s *CellStore) Seed(n int, sm *Sampler, p SeedParams) {
	s.Reset()
	phases := p.Phases
	if phases == nil {
		phases, _ = NewPhaseSampler(DefaultPhaseWeights)
	}
	r := float64(p.PositionRange)
	for range n {
		var c Cell
		c.Pos = mgl32.Vec2{sm.Uniform(-r, r), sm.Uniform(-r, r)}
		c.Vel = mgl32.Vec2{
			sm.Uniform(-1, 1) / p.VelocityDivisor,
			sm.Uniform(-1, 1) / p.VelocityDivisor,
		}
		c.Speed = 1 + sm.Uniform(-1, 1)*p.SpeedJitter
		c.Phase = phases.Sample(sm)
		c.Elapsed = sm.Uniform(0, 1) * components.DurationOf(c.Phase)
		c.Radius = CellRadius(c.Phase, c.Elapsed, c.Speed, p.BaseRadius, p.RadiusSpeedCap)
		s.Add(c)
	}
}

// Duplicate appends a daughter of cell i and returns its index.
//
// The daughter starts at the parent's position with the velocity mirrored,
// in G1 with zero elapsed time. Both cells then get an independent speed
// drift; the daughter's factor is drawn first.
func (s *CellStore) Duplicate(i int, sm *Sampler, d DriftParams) int {
	s.check("Duplicate", i)
	child := s.Add(Cell{
		Pos:    s.Pos[i],
		Vel:    s.Vel[i].Mul(-1),
		Speed:  s.Speed[i],
		Phase:  components.PhaseG1,
		Radius: s.Radius[i],
	})
	s.Speed[child] = s.Speed[i] * (1 + sm.Uniform(float64(d.Min), float64(d.Max))*d.Scale)
	s.Speed[i] *= 1 + sm.Uniform(float64(d.Min), float64(d.Max))*d.Scale
	return child
}

// PhaseCounts returns how many cells are in each phase.
func (s *CellStore) PhaseCounts() [components.PhaseCount]int {
	var counts [components.PhaseCount]int
	for _, p := range s.Phase {
		counts[p]++
	}
	return counts
}

func (s *CellStore) check(op string, i int) {
	if i < 0 || i >= len(s.Pos) {
		violate("CellStore."+op, "index %d out of range [0,%d)", i, len(s.Pos))
	}
}
