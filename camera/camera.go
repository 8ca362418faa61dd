// Package camera provides a 2D camera over the [-1,1]² cell arena.
package camera

import "github.com/go-gl/mathgl/mgl32"

// Camera controls the viewport into the arena. World coordinates are the
// normalized device coordinates the simulation runs in (y up); screen
// coordinates are viewport units (window pixels or terminal cells, y down).
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = arena fits the viewport, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions in screen units
	ViewportW, ViewportH float32

	// UnitAspect is the height of one screen unit relative to its width:
	// 1 for pixels, about 2 for terminal character cells.
	UnitAspect float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the arena with 1:1 zoom.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		Zoom:       1.0,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		UnitAspect: 1,
		MinZoom:    0.25,
		MaxZoom:    8.0,
	}
}

// NewTerminal creates a camera for a character grid whose cells are
// unitAspect times taller than wide.
func NewTerminal(cols, rows int, unitAspect float32) *Camera {
	c := New(float32(cols), float32(rows))
	if unitAspect > 0 {
		c.UnitAspect = unitAspect
	}
	return c
}

// unitScale returns screen units per world unit at zoom 1 along each axis.
// The arena's 2×2 extent fits the shorter side of the viewport.
func (c *Camera) unitScale() (sx, sy float32) {
	s := min(c.ViewportW/2, c.ViewportH*c.UnitAspect/2)
	return s, s / c.UnitAspect
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	kx, ky := c.unitScale()
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom*kx
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom*ky
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	kx, ky := c.unitScale()
	wx = c.X + (sx-c.ViewportW/2)/(c.Zoom*kx)
	wy = c.Y - (sy-c.ViewportH/2)/(c.Zoom*ky)
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// ViewUniforms returns the center and per-axis scale that map world
// coordinates to clip space: clip = (p - center) * scale.
func (c *Camera) ViewUniforms() (center, scale mgl32.Vec2) {
	kx, ky := c.unitScale()
	center = mgl32.Vec2{c.X, c.Y}
	scale = mgl32.Vec2{
		2 * kx * c.Zoom / c.ViewportW,
		2 * ky * c.Zoom / c.ViewportH,
	}
	return center, scale
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen units. Positive dy moves
// the view down the screen. The center stays inside the arena.
func (c *Camera) Pan(dx, dy float32) {
	kx, ky := c.unitScale()
	c.X = clamp(c.X+dx/(c.Zoom*kx), -1, 1)
	c.Y = clamp(c.Y-dy/(c.Zoom*ky), -1, 1)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the world point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = clamp(c.X+wx-nx, -1, 1)
	c.Y = clamp(c.Y+wy-ny, -1, 1)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	kx, ky := c.unitScale()
	halfW := c.ViewportW / (2 * c.Zoom * kx)
	halfH := c.ViewportH / (2 * c.Zoom * ky)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
