package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// ResourceInitError reports a failure to create the window, the GL context
// or a GPU object. The run cannot continue.
type ResourceInitError struct {
	Resource string
	Err      error
}

func (e *ResourceInitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Resource, e.Err)
}

func (e *ResourceInitError) Unwrap() error { return e.Err }

// AssetError reports a shader or texture that could not be loaded. The
// renderer carries on with a fallback.
type AssetError struct {
	Kind string // "texture" or "shader"
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("loading %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// CompileError carries the info log of a shader stage that failed to compile.
type CompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError carries the info log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "linking program: " + strings.TrimSpace(e.Log)
}

// GLError is raised as a panic by CheckGL when GL debugging is on.
type GLError struct {
	Code uint32
	Op   string
}

func (e *GLError) Error() string {
	return fmt.Sprintf("GL error 0x%04X (%s) after %s", e.Code, glErrorName(e.Code), e.Op)
}

func glErrorName(code uint32) string {
	switch code {
	case 0x0500:
		return "INVALID_ENUM"
	case 0x0501:
		return "INVALID_VALUE"
	case 0x0502:
		return "INVALID_OPERATION"
	case 0x0505:
		return "OUT_OF_MEMORY"
	case 0x0506:
		return "INVALID_FRAMEBUFFER_OPERATION"
	}
	return "unknown"
}

var errNoBufferName = errors.New("driver returned no object name")
