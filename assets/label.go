package assets

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// lineHeight is the advance between annotation lines for basicfont.Face7x13.
const lineHeight = 15

// Annotate draws lines of text into the top-left corner of img.
func Annotate(img *image.NRGBA, lines []string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		d.Dot = fixed.Point26_6{
			X: fixed.I(img.Rect.Min.X + 4),
			Y: fixed.I(img.Rect.Min.Y + lineHeight*(i+1)),
		}
		d.DrawString(line)
	}
}
