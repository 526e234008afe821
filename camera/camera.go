// Package camera maps physical simulation coordinates to screen pixels.
package camera

// Camera controls the viewport onto the box. Physical coordinates are
// centred on the origin with y pointing up; screen coordinates have their
// origin at the top-left with y pointing down.
type Camera struct {
	// Position is the physical point shown at the viewport centre
	X, Y float32

	// Scale is pixels per physical unit at zoom 1
	Scale float32

	// Zoom level (1.0 = Scale pixels per unit)
	Zoom float32

	ViewportW, ViewportH float32

	MinZoom, MaxZoom float32
}

// New creates a camera centred on the origin with zoom 1.
func New(viewportW, viewportH, scale float32) *Camera {
	return &Camera{
		Scale:     scale,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// PixelsPerUnit returns the current physical-to-screen scale.
func (c *Camera) PixelsPerUnit() float32 {
	return c.Scale * c.Zoom
}

// WorldToScreen converts physical coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	k := c.PixelsPerUnit()
	sx = c.ViewportW/2 + (wx-c.X)*k
	sy = c.ViewportH/2 - (wy-c.Y)*k
	return sx, sy
}

// ScreenToWorld converts screen coordinates to physical coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	k := c.PixelsPerUnit()
	wx = c.X + (sx-c.ViewportW/2)/k
	wy = c.Y - (sy-c.ViewportH/2)/k
	return wx, wy
}

// WorldLength converts a physical length to pixels.
func (c *Camera) WorldLength(l float32) float32 {
	return l * c.PixelsPerUnit()
}

// IsVisible reports whether a circle at (wx, wy) could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the view by a screen-pixel drag delta.
func (c *Camera) Pan(dx, dy float32) {
	k := c.PixelsPerUnit()
	c.X -= dx / k
	c.Y += dy / k
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the origin at zoom 1.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the physical bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	k := c.PixelsPerUnit()
	halfW := c.ViewportW / (2 * k)
	halfH := c.ViewportH / (2 * k)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}
