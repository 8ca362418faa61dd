package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/mitosis/components"
)

// twoRowImage is 2×2: red on top, blue on the bottom.
func twoRowImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, red)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, blue)
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, twoRowImage()))

	img, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "g1.png"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeFileTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, Placeholder(components.PhaseG1, 32)))
	path := filepath.Join(t.TempDir(), "short.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes()[:buf.Len()/2], 0644))

	_, err := DecodeFile(path)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestFlipVertical(t *testing.T) {
	img := twoRowImage()
	FlipVertical(img)

	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(1, 1))

	FlipVertical(img)
	assert.Equal(t, twoRowImage().Pix, img.Pix)
}

func TestFlipVerticalOddHeight(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 3))
	for y := 0; y < 3; y++ {
		img.SetNRGBA(0, y, color.NRGBA{uint8(y), 0, 0, 255})
	}
	FlipVertical(img)
	assert.Equal(t, uint8(2), img.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(1), img.NRGBAAt(0, 1).R)
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 2).R)
}

func TestLoadTextureFlipsAndResizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	require.NoError(t, WritePNG(path, twoRowImage()))

	img, err := LoadTexture(path, 4)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, img.NRGBAAt(0, 0), "bottom row first after flip")
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(3, 3))
}

func TestToNRGBAOffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 8))
	src.Set(5, 5, color.RGBA{10, 20, 30, 255})

	dst := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 3), dst.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, dst.NRGBAAt(0, 0))
}

func TestPlaceholder(t *testing.T) {
	for _, p := range components.AllPhases {
		t.Run(p.String(), func(t *testing.T) {
			img := Placeholder(p, 64)
			assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
			assert.Zero(t, img.NRGBAAt(0, 0).A, "corner outside membrane is transparent")
			assert.NotZero(t, img.NRGBAAt(32, 32).A, "center is inside the cell")
		})
	}
	assert.Equal(t, image.Rect(0, 0, 8, 8), Placeholder(components.PhaseG1, 1).Bounds())
}

func TestPlaceholdersDiffer(t *testing.T) {
	seen := make(map[string]components.Phase)
	for _, p := range components.AllPhases {
		key := string(Placeholder(p, 32).Pix)
		if other, dup := seen[key]; dup {
			t.Errorf("%v and %v render identically", p, other)
		}
		seen[key] = p
	}
}

func TestWritePlaceholders(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "textures")
	paths, err := WritePlaceholders(dir, 16)
	require.NoError(t, err)
	require.Len(t, paths, components.PhaseCount)

	for _, p := range components.AllPhases {
		img, err := DecodeFile(filepath.Join(dir, p.TextureFile()))
		require.NoError(t, err)
		assert.Equal(t, Placeholder(p, 16).Pix, img.Pix)
	}
}

func TestAnnotate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 120, 40))
	Annotate(img, []string{"cells 42", "tick 120"}, color.White)

	inked := func(y0, y1 int) int {
		n := 0
		for y := y0; y < y1; y++ {
			for x := 0; x < 120; x++ {
				if img.NRGBAAt(x, y).A != 0 {
					n++
				}
			}
		}
		return n
	}
	assert.Positive(t, inked(0, lineHeight+3), "first line drawn")
	assert.Positive(t, inked(lineHeight+3, 2*lineHeight+3), "second line drawn")
	assert.Zero(t, img.NRGBAAt(119, 39).A, "far corner untouched")
}
