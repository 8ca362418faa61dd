package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/mitosis/assets"
	"github.com/pthm-cable/mitosis/camera"
	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/systems"
)

// glyph is one cell as it lands on the character grid.
type glyph struct {
	X, Y  int
	Rune  rune
	Phase components.Phase
}

// glyphFor picks a character by on-screen radius in columns.
func glyphFor(radiusCols float32) rune {
	switch {
	case radiusCols < 0.75:
		return '·'
	case radiusCols < 1.5:
		return 'o'
	case radiusCols < 3:
		return 'O'
	}
	return '@'
}

// project maps every visible cell of s onto the cols×rows grid seen
// through cam. Later cells overwrite earlier ones at the same spot.
func project(cam *camera.Camera, s *systems.CellStore, cols, rows int) []glyph {
	out := make([]glyph, 0, s.Len())
	for i := range s.Len() {
		p := s.Pos[i]
		r := s.Radius[i]
		if !cam.IsVisible(p.X(), p.Y(), r) {
			continue
		}
		sx, sy := cam.WorldToScreen(p.X(), p.Y())
		x, y := int(sx), int(sy)
		if x < 0 || x >= cols || y < 0 || y >= rows {
			continue
		}
		edge, _ := cam.WorldToScreen(p.X()+r, p.Y())
		out = append(out, glyph{X: x, Y: y, Rune: glyphFor(edge - sx), Phase: s.Phase[i]})
	}
	return out
}

// phaseStyles are the foreground styles per phase.
var phaseStyles = func() [components.PhaseCount]tcell.Style {
	var st [components.PhaseCount]tcell.Style
	for _, p := range components.AllPhases {
		c := assets.PhaseColor(p)
		st[p] = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return st
}()
