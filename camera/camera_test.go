package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1000, 1000)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCorners(t *testing.T) {
	cam := New(1000, 1000)

	tests := []struct {
		name           string
		wx, wy, sx, sy float32
	}{
		{"center", 0, 0, 500, 500},
		{"top-left", -1, 1, 0, 0},
		{"bottom-right", 1, -1, 1000, 1000},
		{"right edge", 1, 0, 1000, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestWideViewportFitsShortSide(t *testing.T) {
	cam := New(1600, 800)

	sx, sy := cam.WorldToScreen(1, 1)
	if !near(sx, 1200) || !near(sy, 0) {
		t.Errorf("expected (1,1) at (1200, 0), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.SetZoom(2)
	cam.Pan(40, -25)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestTerminalAspect(t *testing.T) {
	// 80x40 cells, each twice as tall as wide: the arena is 80 wide and 40 tall.
	cam := NewTerminal(80, 40, 2)

	sx, sy := cam.WorldToScreen(1, 1)
	if !near(sx, 80) || !near(sy, 0) {
		t.Errorf("expected (1,1) at (80, 0), got (%f, %f)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(-1, -1)
	if !near(sx, 0) || !near(sy, 40) {
		t.Errorf("expected (-1,-1) at (0, 40), got (%f, %f)", sx, sy)
	}
}

func TestPanClampsToArena(t *testing.T) {
	cam := New(1000, 1000)

	cam.Pan(250, 0)
	if !near(cam.X, 0.5) {
		t.Errorf("expected X 0.5 after panning 250px, got %f", cam.X)
	}
	cam.Pan(0, -250)
	if !near(cam.Y, 0.5) {
		t.Errorf("expected Y 0.5 after panning up 250px, got %f", cam.Y)
	}

	cam.Pan(10000, 0)
	if cam.X != 1 {
		t.Errorf("expected X clamped to 1, got %f", cam.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1000, 1000)

	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1000, 1000)
	wx, wy := cam.ScreenToWorld(750, 250)

	cam.ZoomAt(750, 250, 2)

	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 750) || !near(sy, 250) {
		t.Errorf("expected anchor to stay at (750, 250), got (%f, %f)", sx, sy)
	}
}

func TestViewUniforms(t *testing.T) {
	cam := New(1000, 1000)
	center, scale := cam.ViewUniforms()
	if center.X() != 0 || center.Y() != 0 || !near(scale.X(), 1) || !near(scale.Y(), 1) {
		t.Errorf("identity view expected, got center %v scale %v", center, scale)
	}

	cam = New(2000, 1000)
	cam.SetZoom(2)
	_, scale = cam.ViewUniforms()
	if !near(scale.X(), 1) || !near(scale.Y(), 2) {
		t.Errorf("expected scale (1, 2), got %v", scale)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1000, 1000)
	cam.SetZoom(4)

	if !cam.IsVisible(0, 0, 0.01) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(0.9, 0.9, 0.01) {
		t.Error("corner should be outside a 4x view")
	}
	if !cam.IsVisible(0.3, 0, 0.1) {
		t.Error("cell overlapping the edge should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1000, 1000)
	cam.X = 0.5
	cam.Y = -0.5
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 1.0 {
		t.Errorf("expected origin at zoom 1, got (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
