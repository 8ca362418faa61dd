package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/pthm-cable/mitosis/camera"
	"github.com/pthm-cable/mitosis/systems"
)

// attrib describes one vertex attribute of the cell vertex layout.
type attrib struct {
	Location uint32
	Size     int32 // float components
	Offset   int   // bytes from the start of the vertex
}

// cellAttribs matches systems.Geometry's vertex layout and the locations in
// cell.vert.glsl.
var cellAttribs = []attrib{
	{Location: 0, Size: 2, Offset: 0},  // corner
	{Location: 1, Size: 2, Offset: 8},  // position
	{Location: 2, Size: 1, Offset: 16}, // radius
	{Location: 3, Size: 1, Offset: 20}, // phase tag
}

// CellRenderer owns the GPU buffers for the cell quads and draws them with
// the cell program.
type CellRenderer struct {
	vao, vbo, ebo uint32

	program  *Program
	textures *PhaseTextures
	blend    bool

	// Sizes last handed to BufferData.
	vertexBytes int
	indexBytes  int
	indexCount  int32

	initialized bool
}

// NewCellRenderer creates the vertex array and buffers. The renderer takes
// ownership of prog and textures and releases them in Unload.
func NewCellRenderer(prog *Program, textures *PhaseTextures, blend bool) (*CellRenderer, error) {
	cr := &CellRenderer{program: prog, textures: textures, blend: blend}

	gl.GenVertexArrays(1, &cr.vao)
	gl.GenBuffers(1, &cr.vbo)
	gl.GenBuffers(1, &cr.ebo)
	if cr.vao == 0 || cr.vbo == 0 || cr.ebo == 0 {
		return nil, &ResourceInitError{Resource: "cell buffers", Err: errNoBufferName}
	}

	gl.BindVertexArray(cr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, cr.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, cr.ebo)
	for _, a := range cellAttribs {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, systems.VertexStride, uintptr(a.Offset))
		gl.EnableVertexAttribArray(a.Location)
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	CheckGL("NewCellRenderer")

	cr.initialized = true
	return cr, nil
}

// Upload copies geom to the GPU. Both buffers are reallocated when the
// population grew or the size changed; otherwise only the vertex data is
// rewritten in place.
func (cr *CellRenderer) Upload(geom *systems.Geometry, grew bool) {
	if geom.IndexCount() == 0 {
		cr.indexCount = 0
		return
	}

	gl.BindVertexArray(cr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, cr.vbo)
	if grew || geom.VertexBytes() != cr.vertexBytes || geom.IndexBytes() != cr.indexBytes {
		gl.BufferData(gl.ARRAY_BUFFER, geom.VertexBytes(), gl.Ptr(geom.Verts), gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, cr.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, geom.IndexBytes(), gl.Ptr(geom.Indices), gl.DYNAMIC_DRAW)
		cr.vertexBytes = geom.VertexBytes()
		cr.indexBytes = geom.IndexBytes()
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, geom.VertexBytes(), gl.Ptr(geom.Verts))
	}
	cr.indexCount = int32(geom.IndexCount())
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	CheckGL("CellRenderer.Upload")
}

// Draw renders the last uploaded geometry through cam. raylib's pending
// batch is flushed first so 2D drawing before and after stays in order.
func (cr *CellRenderer) Draw(cam *camera.Camera) {
	if cr.indexCount == 0 {
		return
	}
	rl.DrawRenderBatchActive()

	if cr.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}

	cr.program.Activate()
	cr.textures.Bind(cr.program)
	center, scale := cam.ViewUniforms()
	cr.program.SetVec2("uCenter", center)
	cr.program.SetVec2("uScale", scale)

	gl.BindVertexArray(cr.vao)
	gl.DrawElements(gl.TRIANGLES, cr.indexCount, gl.UNSIGNED_INT, nil)
	CheckGL("CellRenderer.Draw")

	// Hand the context back the way raylib left it.
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// IndexCount returns the number of indices the next Draw submits.
func (cr *CellRenderer) IndexCount() int32 { return cr.indexCount }

// Unload frees the buffers, program and textures. Later calls do nothing.
func (cr *CellRenderer) Unload() {
	if cr == nil || !cr.initialized {
		return
	}
	gl.DeleteVertexArrays(1, &cr.vao)
	gl.DeleteBuffers(1, &cr.vbo)
	gl.DeleteBuffers(1, &cr.ebo)
	cr.program.Unload()
	cr.textures.Unload()
	cr.initialized = false
}
