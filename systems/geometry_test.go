package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/mitosis/components"
)

func twoCellStore() *CellStore {
	s := NewCellStore(2)
	s.Add(Cell{Pos: mgl32.Vec2{0.1, 0.2}, Speed: 1, Phase: components.PhaseS, Radius: 0.09})
	s.Add(Cell{Pos: mgl32.Vec2{-0.5, 0.5}, Speed: 1, Phase: components.PhaseTelophase, Radius: 0.1})
	return s
}

func TestRebuildFullLayout(t *testing.T) {
	g := NewGeometry(0)
	g.RebuildFull(twoCellStore())

	require.NoError(t, g.Validate(2))
	assert.Equal(t, 2, g.Cells())
	assert.Equal(t, 8, g.VertexCount())
	assert.Equal(t, 12, g.IndexCount())
	assert.Equal(t, 8*VertexStride, g.VertexBytes())
	assert.Equal(t, 48, g.IndexBytes())

	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, g.Indices)

	// Second cell, third corner: (1,-1).
	v := g.Verts[(4+2)*FloatsPerVertex : (4+3)*FloatsPerVertex]
	assert.Equal(t, []float32{1, -1, -0.5, 0.5, 0.1, components.PhaseTelophase.Tag()}, v)
}

func TestRebuildFullReusesCapacity(t *testing.T) {
	g := NewGeometry(4)
	before := cap(g.Verts)
	g.RebuildFull(twoCellStore())
	g.RebuildFull(twoCellStore())
	assert.Equal(t, before, cap(g.Verts))
	assert.Equal(t, 2, g.Cells())
}

func TestGrowIncrementallyCopiesParent(t *testing.T) {
	s := twoCellStore()
	g := NewGeometry(0)
	g.RebuildFull(s)

	child := s.Duplicate(1, NewSampler(maxSource{}), DefaultDriftParams())
	g.GrowIncrementally([]Birth{{Parent: 1, Child: child}})

	require.NoError(t, g.Validate(3))
	parent := g.Verts[1*VerticesPerCell*FloatsPerVertex : 2*VerticesPerCell*FloatsPerVertex]
	added := g.Verts[2*VerticesPerCell*FloatsPerVertex:]
	assert.Equal(t, parent, added)
	assert.Equal(t, []uint32{8, 9, 10, 8, 10, 11}, g.Indices[12:])
}

func TestGrowIncrementallyRejectsGaps(t *testing.T) {
	g := NewGeometry(0)
	g.RebuildFull(twoCellStore())
	requireInvariantPanic(t, func() {
		g.GrowIncrementally([]Birth{{Parent: 0, Child: 3}})
	})
}

func TestSyncPositions(t *testing.T) {
	s := twoCellStore()
	g := NewGeometry(0)
	g.RebuildFull(s)

	s.Pos[0] = mgl32.Vec2{0.7, -0.7}
	s.Radius[0] = 0.05
	s.Phase[0] = components.PhaseG2
	g.SyncPositions(s)

	for c := range VerticesPerCell {
		v := g.Verts[c*FloatsPerVertex : (c+1)*FloatsPerVertex]
		assert.Equal(t, quadCorners[c][0], v[0])
		assert.Equal(t, quadCorners[c][1], v[1])
		assert.Equal(t, []float32{0.7, -0.7, 0.05, components.PhaseG2.Tag()}, v[2:])
	}
}

func TestSyncPositionsShortBufferPanics(t *testing.T) {
	s := twoCellStore()
	g := NewGeometry(0)
	requireInvariantPanic(t, func() { g.SyncPositions(s) })
}

func TestValidate(t *testing.T) {
	g := NewGeometry(0)
	g.RebuildFull(twoCellStore())

	assert.Error(t, g.Validate(3), "wrong cell count")

	g.Indices[5] = 99
	assert.Error(t, g.Validate(2), "index out of range")

	g.RebuildFull(twoCellStore())
	g.Verts[5] = 2.5
	assert.Error(t, g.Validate(2), "bad phase tag")
}
