package renderer

import _ "embed"

var (
	//go:embed shaders/cell.vert.glsl
	cellVertexSrc string

	//go:embed shaders/cell.frag.glsl
	cellFragmentSrc string
)
