package renderer

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked GL shader program with cached uniform locations.
type Program struct {
	ID        uint32
	uniforms  map[string]int32
	destroyed bool
}

// BuildProgram compiles both stages and links them. A stage that fails to
// compile does not stop the link; every failure is returned joined, and the
// program is returned regardless so the caller can decide to carry on.
func BuildProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	vert, vErr := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	frag, fErr := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var lErr error
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		logBuf := make([]byte, logLength+1)
		gl.GetProgramInfoLog(id, logLength, nil, &logBuf[0])
		lErr = &LinkError{Log: trimLog(logBuf)}
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	CheckGL("BuildProgram")

	return &Program{ID: id, uniforms: make(map[string]int32)}, errors.Join(vErr, fErr, lErr)
}

func compileShader(src string, shaderType uint32, stage string) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logBuf := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &logBuf[0])
		return shader, &CompileError{Stage: stage, Log: trimLog(logBuf)}
	}
	return shader, nil
}

func trimLog(buf []byte) string {
	return strings.TrimRight(string(buf), "\x00")
}

// LoadProgram builds the cell program from the given shader files, using
// the embedded source for any path that is empty or unreadable. Build
// errors are logged and do not stop the run.
func LoadProgram(vertexPath, fragmentPath string) *Program {
	vs := shaderSource(vertexPath, cellVertexSrc)
	fs := shaderSource(fragmentPath, cellFragmentSrc)
	prog, err := BuildProgram(vs, fs)
	if err != nil {
		slog.Error("cell program built with errors", "error", err)
	}
	return prog
}

func shaderSource(path, embedded string) string {
	if path == "" {
		return embedded
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("using embedded shader", "error", &AssetError{Kind: "shader", Path: path, Err: err})
		return embedded
	}
	return string(data)
}

// Activate makes p the current program.
func (p *Program) Activate() {
	gl.UseProgram(p.ID)
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetInt sets an int (or sampler) uniform on the active program.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

// SetFloat sets a float uniform on the active program.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

// SetVec2 sets a vec2 uniform on the active program.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.location(name), v.X(), v.Y())
}

// Unload deletes the program. Later calls do nothing.
func (p *Program) Unload() {
	if p == nil || p.destroyed {
		return
	}
	gl.DeleteProgram(p.ID)
	p.destroyed = true
}
