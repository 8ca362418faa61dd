package assets

import (
	"image"
	"image/color"
	"math"

	"github.com/pthm-cable/mitosis/components"
)

// PhaseColor is the membrane tint used for each phase, both for generated
// textures and for the terminal viewer.
func PhaseColor(p components.Phase) color.NRGBA {
	switch p {
	case components.PhaseG1:
		return color.NRGBA{120, 200, 120, 255}
	case components.PhaseS:
		return color.NRGBA{90, 170, 220, 255}
	case components.PhaseG2:
		return color.NRGBA{70, 120, 230, 255}
	case components.PhaseProphase:
		return color.NRGBA{230, 200, 80, 255}
	case components.PhaseMetaphase:
		return color.NRGBA{240, 150, 60, 255}
	case components.PhaseAnaphase:
		return color.NRGBA{230, 90, 80, 255}
	case components.PhaseTelophase:
		return color.NRGBA{200, 80, 170, 255}
	}
	return color.NRGBA{200, 200, 200, 255}
}

var (
	nucleusColor    = color.NRGBA{60, 40, 110, 255}
	chromosomeColor = color.NRGBA{150, 30, 60, 255}
)

// Placeholder draws a size×size picture of a cell in phase p: a round
// membrane filled with cytoplasm and the nuclear material arranged the way it
// looks in that phase. Pixels outside the membrane are transparent.
func Placeholder(p components.Phase, size int) *image.NRGBA {
	if size < 8 {
		size = 8
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	base := PhaseColor(p)
	cyto := color.NRGBA{base.R / 2, base.G / 2, base.B / 2, 200}

	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Normalized coordinates in [-1,1], y up.
			u := (float64(x)+0.5)/half - 1
			v := 1 - (float64(y)+0.5)/half
			r := math.Hypot(u, v)
			if p == components.PhaseTelophase {
				r = pinched(u, v)
			}
			switch {
			case r > 0.95:
				continue
			case r > 0.85:
				img.SetNRGBA(x, y, base)
			case nuclear(p, u, v):
				if p.IsMitosis() {
					img.SetNRGBA(x, y, chromosomeColor)
				} else {
					img.SetNRGBA(x, y, nucleusColor)
				}
			default:
				img.SetNRGBA(x, y, cyto)
			}
		}
	}
	return img
}

// pinched is the distance function of a membrane with a cleavage furrow
// across the vertical midline.
func pinched(u, v float64) float64 {
	return math.Hypot(u, v) + 0.35*math.Exp(-u*u*40)
}

func nuclear(p components.Phase, u, v float64) bool {
	switch p {
	case components.PhaseG1:
		return math.Hypot(u, v) < 0.3
	case components.PhaseS:
		// Nucleus with replication foci.
		if math.Hypot(u, v) >= 0.4 {
			return false
		}
		return math.Mod(math.Abs(u*10)+math.Abs(v*10), 3) > 0.6
	case components.PhaseG2:
		return math.Hypot(u, v) < 0.45
	case components.PhaseProphase:
		// Condensing strands inside the old nuclear area.
		return math.Hypot(u, v) < 0.45 && math.Abs(math.Sin(u*14+v*6)) < 0.35
	case components.PhaseMetaphase:
		// Chromosomes lined up on the equator.
		return math.Abs(u) < 0.08 && math.Abs(v) < 0.55
	case components.PhaseAnaphase:
		// Two sets pulled toward the poles.
		return math.Abs(math.Abs(u)-0.4) < 0.07 && math.Abs(v) < 0.45
	case components.PhaseTelophase:
		// Two reforming nuclei.
		return math.Hypot(math.Abs(u)-0.45, v) < 0.2
	}
	return false
}
