package systems

import (
	"fmt"

	"github.com/pthm-cable/mitosis/components"
)

const (
	// VerticesPerCell is the number of quad corners per cell.
	VerticesPerCell = 4
	// IndicesPerCell is two triangles.
	IndicesPerCell = 6
	// FloatsPerVertex is cornerX, cornerY, posX, posY, radius, phaseTag.
	FloatsPerVertex = 6
	// VertexStride is the byte size of one vertex.
	VertexStride = FloatsPerVertex * 4

	floatsPerCell = VerticesPerCell * FloatsPerVertex
)

// quadCorners are the billboard corners in vertex order.
var quadCorners = [VerticesPerCell][2]float32{
	{-1, 1},
	{1, 1},
	{1, -1},
	{-1, -1},
}

// quadIndices are the per-cell index offsets of the two triangles.
var quadIndices = [IndicesPerCell]uint32{0, 1, 2, 0, 2, 3}

// Geometry is the CPU-side mirror of the GPU vertex and index buffers.
// Cell i owns vertices [4i, 4i+4) and indices [6i, 6i+6).
type Geometry struct {
	Verts   []float32
	Indices []uint32
}

// NewGeometry returns an empty buffer with room for capacity cells.
func NewGeometry(capacity int) *Geometry {
	return &Geometry{
		Verts:   make([]float32, 0, capacity*floatsPerCell),
		Indices: make([]uint32, 0, capacity*IndicesPerCell),
	}
}

// Cells returns the number of cells the buffer describes.
func (g *Geometry) Cells() int { return len(g.Indices) / IndicesPerCell }

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.Verts) / FloatsPerVertex }

// IndexCount returns the number of indices.
func (g *Geometry) IndexCount() int { return len(g.Indices) }

// VertexBytes returns the byte size of the vertex data.
func (g *Geometry) VertexBytes() int { return len(g.Verts) * 4 }

// IndexBytes returns the byte size of the index data.
func (g *Geometry) IndexBytes() int { return len(g.Indices) * 4 }

// RebuildFull regenerates every vertex and index from store state.
func (g *Geometry) RebuildFull(s *CellStore) {
	n := s.Len()
	g.Verts = g.Verts[:0]
	g.Indices = g.Indices[:0]
	for i := range n {
		g.appendCell(i, s.Pos[i].X(), s.Pos[i].Y(), s.Radius[i], s.Phase[i])
	}
}

// GrowIncrementally appends one quad per birth, copied from the parent's
// current vertex block. Births must be in child order and each child must be
// the next cell after the current end of the buffer.
func (g *Geometry) GrowIncrementally(births []Birth) {
	for _, b := range births {
		if b.Child != g.Cells() {
			violate("Geometry.GrowIncrementally", "child %d appended at %d", b.Child, g.Cells())
		}
		if b.Parent < 0 || b.Parent >= b.Child {
			violate("Geometry.GrowIncrementally", "parent %d out of range for child %d", b.Parent, b.Child)
		}
		src := b.Parent * floatsPerCell
		g.Verts = append(g.Verts, g.Verts[src:src+floatsPerCell]...)
		base := uint32(VerticesPerCell * b.Child)
		for _, off := range quadIndices {
			g.Indices = append(g.Indices, base+off)
		}
	}
}

// SyncPositions copies position, radius and phase tag of every cell into all
// four of its corners. The buffer must already hold s.Len() cells.
func (g *Geometry) SyncPositions(s *CellStore) {
	n := s.Len()
	if len(g.Verts) < n*floatsPerCell {
		violate("Geometry.SyncPositions", "buffer holds %d cells, store %d", g.VertexCount()/VerticesPerCell, n)
	}
	for i := range n {
		x, y := s.Pos[i].X(), s.Pos[i].Y()
		r := s.Radius[i]
		tag := s.Phase[i].Tag()
		v := g.Verts[i*floatsPerCell : (i+1)*floatsPerCell]
		for c := range VerticesPerCell {
			o := c * FloatsPerVertex
			v[o+2] = x
			v[o+3] = y
			v[o+4] = r
			v[o+5] = tag
		}
	}
}

// Validate checks the structural invariants for a population of n cells.
func (g *Geometry) Validate(n int) error {
	if len(g.Verts) != n*floatsPerCell {
		return fmt.Errorf("vertex floats: have %d, want %d", len(g.Verts), n*floatsPerCell)
	}
	if len(g.Indices) != n*IndicesPerCell {
		return fmt.Errorf("indices: have %d, want %d", len(g.Indices), n*IndicesPerCell)
	}
	limit := uint32(n * VerticesPerCell)
	for i, idx := range g.Indices {
		if idx >= limit {
			return fmt.Errorf("index %d: value %d >= %d", i, idx, limit)
		}
	}
	for i := range n {
		if _, ok := components.PhaseFromTag(g.Verts[i*floatsPerCell+5]); !ok {
			return fmt.Errorf("cell %d: bad phase tag %v", i, g.Verts[i*floatsPerCell+5])
		}
	}
	return nil
}

func (g *Geometry) appendCell(i int, x, y, r float32, p components.Phase) {
	tag := p.Tag()
	for _, c := range quadCorners {
		g.Verts = append(g.Verts, c[0], c[1], x, y, r, tag)
	}
	base := uint32(VerticesPerCell * i)
	for _, off := range quadIndices {
		g.Indices = append(g.Indices, base+off)
	}
}
