package systems

import "github.com/pthm-cable/mitosis/components"

// lerp interpolates between a and b. t is not clamped.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// minFloat returns the smaller of a and b.
func minFloat(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// CellRadius returns the drawn radius of a cell.
//
// The radius grows linearly across a phase from MinRadiusOf to MaxRadiusOf,
// scaled by baseRadius and divided by the speed multiplier (capped at
// speedCap) so fast cells look smaller. Progress is not clamped, so a cell
// whose elapsed overshoots its phase duration briefly extrapolates.
func CellRadius(p components.Phase, elapsed, speed, baseRadius, speedCap float32) float32 {
	progress := elapsed / components.DurationOf(p)
	r := lerp(components.MinRadiusOf(p), components.MaxRadiusOf(p), progress)
	div := speed
	if speedCap > 0 {
		div = minFloat(speed, speedCap)
	}
	if div <= 0 {
		return r * baseRadius
	}
	return r * baseRadius / div
}
