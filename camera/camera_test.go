package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 0.01
}

func TestNew(t *testing.T) {
	cam := New(1600, 900, 100)
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 || cam.PixelsPerUnit() != 100 {
		t.Errorf("zoom %f, ppu %f", cam.Zoom, cam.PixelsPerUnit())
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := New(1600, 900, 100)

	tests := []struct {
		wx, wy, sx, sy float32
	}{
		{0, 0, 800, 450},
		{1, 0, 900, 450},
		{0, 1, 800, 350}, // y up
		{-6, -3.5, 200, 800},
	}
	for _, tt := range tests {
		sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
		if !near(sx, tt.sx) || !near(sy, tt.sy) {
			t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1600, 900, 100)
	cam.X, cam.Y = 1.5, -0.5
	cam.SetZoom(2)

	for _, tc := range []struct{ sx, sy float32 }{{800, 450}, {100, 100}, {1500, 850}} {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1600, 900, 100)
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want max %f", cam.Zoom, cam.MaxZoom)
	}
	cam.SetZoom(0)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want min %f", cam.Zoom, cam.MinZoom)
	}
	cam.Reset()
	if cam.Zoom != 1 || cam.X != 0 || cam.Y != 0 {
		t.Errorf("reset camera = %+v", cam)
	}
}

func TestPanFollowsDrag(t *testing.T) {
	cam := New(1600, 900, 100)
	wx, wy := cam.ScreenToWorld(900, 400)

	// Dragging the content left and down by 100px.
	cam.Pan(-100, 50)
	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 800) || !near(sy, 450) {
		t.Errorf("point under cursor moved to (%f, %f), want (800, 450)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1600, 900, 100) // 16 x 9 units
	if !cam.IsVisible(7.9, 0, 0) {
		t.Error("point inside viewport reported invisible")
	}
	if cam.IsVisible(8.5, 0, 0.1) {
		t.Error("point outside viewport reported visible")
	}
	if !cam.IsVisible(8.05, 0, 0.1) {
		t.Error("circle overlapping edge should be visible")
	}
}
