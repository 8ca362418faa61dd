// Package assets decodes, generates and encodes the phase texture images.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode wraps every failure to turn a file into pixels: missing files,
// unknown formats and truncated data alike.
var ErrDecode = errors.New("image decode failed")

// Decode reads an image in any registered format and returns it as NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return ToNRGBA(src), nil
}

// DecodeFile opens and decodes path.
func DecodeFile(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadTexture decodes path, scales it to size×size when size > 0, and flips
// it so row 0 is the bottom of the picture, the order GL samples in.
func LoadTexture(path string, size int) (*image.NRGBA, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	if size > 0 {
		img = Resize(img, size, size)
	}
	FlipVertical(img)
	return img, nil
}

// ToNRGBA converts any image to a zero-origin NRGBA copy.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Resize scales img to w×h with nearest-neighbour sampling, which keeps the
// hard pixel edges the cell textures are drawn with.
func Resize(img *image.NRGBA, w, h int) *image.NRGBA {
	if img.Rect.Dx() == w && img.Rect.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// FlipVertical mirrors img top to bottom in place.
func FlipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		bot := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowLen]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}
