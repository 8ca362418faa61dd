package renderer

import (
	"image"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/pthm-cable/mitosis/assets"
	"github.com/pthm-cable/mitosis/components"
)

// placeholderSize is the edge length of generated fallback textures.
const placeholderSize = 64

// PhaseTextures holds one GPU texture per phase, bound to texture unit
// Phase(i) when drawing.
type PhaseTextures struct {
	textures    [components.PhaseCount]rl.Texture2D
	fallback    [components.PhaseCount]bool
	initialized bool
}

// LoadPhaseTextures loads the phase textures from dir. A texture that cannot
// be decoded is logged and replaced by a generated one.
func LoadPhaseTextures(dir string) *PhaseTextures {
	pt := &PhaseTextures{}
	for _, p := range components.AllPhases {
		path := filepath.Join(dir, p.TextureFile())
		img, err := assets.LoadTexture(path, 0)
		if err != nil {
			slog.Warn("using generated texture",
				"phase", p.String(),
				"error", &AssetError{Kind: "texture", Path: path, Err: err},
			)
			img = assets.Placeholder(p, placeholderSize)
			assets.FlipVertical(img)
			pt.fallback[p] = true
		}
		pt.textures[p] = upload(img)
	}
	pt.initialized = true
	CheckGL("LoadPhaseTextures")
	return pt
}

// upload copies img to the GPU. img is already flipped to GL row order.
func upload(img *image.NRGBA) rl.Texture2D {
	b := img.Bounds()
	rlImg := rl.NewImage(img.Pix, int32(b.Dx()), int32(b.Dy()), 1, rl.UncompressedR8g8b8a8)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterPoint)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	return tex
}

// Fallbacks returns the phases that are drawn with a generated texture.
func (pt *PhaseTextures) Fallbacks() []components.Phase {
	var out []components.Phase
	for _, p := range components.AllPhases {
		if pt.fallback[p] {
			out = append(out, p)
		}
	}
	return out
}

// Bind attaches each phase texture to its unit and points the matching
// sampler uniform of prog at it. prog must be active.
func (pt *PhaseTextures) Bind(prog *Program) {
	for _, p := range components.AllPhases {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(p))
		gl.BindTexture(gl.TEXTURE_2D, pt.textures[p].ID)
		prog.SetInt(p.UniformName(), int32(p))
	}
	CheckGL("PhaseTextures.Bind")
}

// Unload frees the textures.
func (pt *PhaseTextures) Unload() {
	if pt == nil || !pt.initialized {
		return
	}
	for _, tex := range pt.textures {
		rl.UnloadTexture(tex)
	}
	pt.initialized = false
}
