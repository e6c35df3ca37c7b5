// Package camera provides the top-down viewport transform for the viewer.
package camera

// Camera maps the XZ ground plane onto the screen, +X right and +Z up.
// The view is bounded: the center never leaves the world rectangle.
type Camera struct {
	// Center of the view in world coordinates
	X, Z float32

	// Pixels per world unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World extents along X and Z
	WorldW, WorldD float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole world.
func New(viewportW, viewportH, worldW, worldD float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldD:    worldD,
	}
	c.updateZoomLimits()
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole world fits the viewport.
func (c *Camera) fitZoom() float32 {
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldD)
}

func (c *Camera) updateZoomLimits() {
	c.MinZoom = c.fitZoom()
	c.MaxZoom = c.MinZoom * 8
}

// WorldToScreen converts ground-plane coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wz float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 - (wz-c.Z)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to ground-plane coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wz float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wz = c.Z - (sy-c.ViewportH/2)/c.Zoom
	return wx, wz
}

// ScaleLength converts a world length to pixels.
func (c *Camera) ScaleLength(l float32) float32 {
	return l * c.Zoom
}

// IsVisible returns true if a circle at (wx, wz) with the given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wz, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wz-c.Z) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateZoomLimits()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels, keeping the
// center inside the world.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.WorldW)
	c.Z = clamp(c.Z-dy/c.Zoom, 0, c.WorldD)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the world at the fit zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Z = c.WorldD / 2
	c.Zoom = c.MinZoom
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(x, hi))
}
