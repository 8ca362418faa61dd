// Package renderer draws the cell population with raylib's window and
// texture handling and raw GL vertex and index buffers drawn with
// DrawElements.
package renderer

import (
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
)

var glDebug bool

// Init loads the GL function pointers. It must run after the raylib window
// exists, since that is what makes a context current.
func Init() error {
	if err := gl.Init(); err != nil {
		return &ResourceInitError{Resource: "OpenGL", Err: err}
	}
	slog.Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return nil
}

// SetDebug turns GL error checking on or off.
func SetDebug(on bool) { glDebug = on }

// Debug reports whether GL error checking is on.
func Debug() bool { return glDebug }

// CheckGL drains the GL error queue. With debugging on, the first pending
// error panics with a *GLError naming op.
func CheckGL(op string) {
	if !glDebug {
		return
	}
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		panic(&GLError{Code: first, Op: op})
	}
}
