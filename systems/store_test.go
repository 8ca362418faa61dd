package systems

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/mitosis/components"
)

func TestSeedDrawOrder(t *testing.T) {
	src := &scriptedSource{vals: []int64{
		150000, // posX -> 0.5
		50000,  // posY -> -0.5
		200000, // velX -> 1/14
		0,      // velY -> -1/14
		100000, // speed jitter 0 -> 1
		30,     // percent 31 -> S
		50000,  // elapsed fraction 0.5
	}}
	s := NewCellStore(1)
	s.Seed(1, NewSampler(src), DefaultSeedParams())

	require.Equal(t, 1, s.Len())
	c := s.Cell(0)
	assert.InDelta(t, 0.5, c.Pos.X(), 1e-6)
	assert.InDelta(t, -0.5, c.Pos.Y(), 1e-6)
	assert.InDelta(t, 1.0/14, c.Vel.X(), 1e-6)
	assert.InDelta(t, -1.0/14, c.Vel.Y(), 1e-6)
	assert.InDelta(t, 1.0, c.Speed, 1e-6)
	assert.Equal(t, components.PhaseS, c.Phase)
	assert.InDelta(t, 1.05, c.Elapsed, 1e-5)
	assert.InDelta(t, 0.09, c.Radius, 1e-6)
	assert.Equal(t, 7, src.next)
}

func TestSeedRanges(t *testing.T) {
	s := NewCellStore(0)
	s.Seed(500, NewSampler(rand.New(rand.NewSource(1))), DefaultSeedParams())

	require.Equal(t, 500, s.Len())
	for i := range s.Len() {
		c := s.Cell(i)
		assert.True(t, c.Pos.X() >= -1 && c.Pos.X() <= 1)
		assert.True(t, c.Pos.Y() >= -1 && c.Pos.Y() <= 1)
		assert.LessOrEqual(t, abs32(c.Vel.X()), float32(1.0/14)+1e-6)
		assert.True(t, c.Speed >= 0.8-1e-6 && c.Speed <= 1.2+1e-6, "speed %v", c.Speed)
		assert.GreaterOrEqual(t, c.Elapsed, float32(0))
		assert.LessOrEqual(t, c.Elapsed, components.DurationOf(c.Phase))
		assert.Greater(t, c.Radius, float32(0))
	}
}

func TestSeedReplacesPopulation(t *testing.T) {
	s := NewCellStore(0)
	sm := NewSampler(rand.New(rand.NewSource(2)))
	s.Seed(10, sm, DefaultSeedParams())
	s.Seed(3, sm, DefaultSeedParams())
	assert.Equal(t, 3, s.Len())
	assert.Len(t, s.Radius, 3)
}

func TestDuplicate(t *testing.T) {
	s := NewCellStore(2)
	s.Add(Cell{
		Pos:     mgl32.Vec2{0.3, -0.2},
		Vel:     mgl32.Vec2{0.05, -0.01},
		Speed:   1.2,
		Elapsed: 0,
		Phase:   components.PhaseG1,
		Radius:  0.04,
	})

	src := &scriptedSource{vals: []int64{
		150000, // child drift U = 1.0 -> factor 1.5
		50000,  // parent drift U = 0 -> factor 1
	}}
	child := s.Duplicate(0, NewSampler(src), DefaultDriftParams())

	require.Equal(t, 1, child)
	require.Equal(t, 2, s.Len())
	c := s.Cell(child)
	assert.Equal(t, mgl32.Vec2{0.3, -0.2}, c.Pos)
	assert.Equal(t, mgl32.Vec2{-0.05, 0.01}, c.Vel)
	assert.Equal(t, components.PhaseG1, c.Phase)
	assert.Zero(t, c.Elapsed)
	assert.Equal(t, float32(0.04), c.Radius)
	assert.InDelta(t, 1.8, c.Speed, 1e-5)
	assert.InDelta(t, 1.2, s.Speed[0], 1e-5)
}

func TestStoreBoundsPanics(t *testing.T) {
	s := NewCellStore(0)
	s.Add(Cell{Speed: 1})

	tests := []struct {
		name string
		fn   func()
	}{
		{"cell", func() { s.Cell(1) }},
		{"set", func() { s.Set(-1, Cell{}) }},
		{"duplicate", func() { s.Duplicate(5, NewSampler(maxSource{}), DefaultDriftParams()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireInvariantPanic(t, tt.fn)
		})
	}
}

func TestPhaseCounts(t *testing.T) {
	s := NewCellStore(0)
	s.Add(Cell{Phase: components.PhaseG1})
	s.Add(Cell{Phase: components.PhaseG1})
	s.Add(Cell{Phase: components.PhaseAnaphase})

	counts := s.PhaseCounts()
	assert.Equal(t, 2, counts[components.PhaseG1])
	assert.Equal(t, 1, counts[components.PhaseAnaphase])
	assert.Equal(t, 0, counts[components.PhaseS])
}

func requireInvariantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		_, ok := r.(*InvariantError)
		require.True(t, ok, "panic value %T is not *InvariantError", r)
	}()
	fn()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
