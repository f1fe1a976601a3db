// Package camera provides the 2D follow camera.
package camera

import (
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// Camera looks at Center from above. Zoom is screen pixels per world unit.
type Camera struct {
	Center math.Vec2
	Zoom   float32

	// Viewport size in pixels.
	Width, Height int

	// World extent to stay inside; zero disables clamping on that axis.
	BoundsW, BoundsH float64
}

// New creates a camera for a viewport.
func New(width, height int, zoom float32) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{Zoom: zoom, Width: width, Height: height}
}

// Resize updates the viewport.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// SetBounds limits the camera to a world of the given size.
func (c *Camera) SetBounds(w, h float64) {
	c.BoundsW = w
	c.BoundsH = h
}

// HalfExtent returns half the visible world size.
func (c *Camera) HalfExtent() (float64, float64) {
	return float64(c.Width) / float64(c.Zoom) / 2, float64(c.Height) / float64(c.Zoom) / 2
}

// Follow centres on target, clamped so the view stays inside the bounds.
// A world smaller than the view is centred.
func (c *Camera) Follow(target math.Vec2) {
	hw, hh := c.HalfExtent()
	c.Center = math.Vec2{
		X: clampAxis(target.X, hw, c.BoundsW),
		Y: clampAxis(target.Y, hh, c.BoundsH),
	}
}

func clampAxis(v, half, extent float64) float64 {
	if extent <= 0 {
		return v
	}
	if extent <= 2*half {
		return extent / 2
	}
	if v < half {
		return half
	}
	if v > extent-half {
		return extent - half
	}
	return v
}

// View returns the visible world rectangle.
func (c *Camera) View() math.Rect {
	hw, hh := c.HalfExtent()
	return math.Rect{X: c.Center.X - hw, Y: c.Center.Y - hh, W: 2 * hw, H: 2 * hh}
}

// Projection maps the visible world rectangle to clip space.
func (c *Camera) Projection() math.Mat4 {
	v := c.View()
	return math.Ortho(float32(v.X), float32(v.X+v.W), float32(v.Y), float32(v.Y+v.H))
}

// ScreenToWorld converts window pixel coordinates (origin top-left) to
// world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) math.Vec2 {
	v := c.View()
	return math.Vec2{
		X: v.X + float64(sx)/float64(c.Zoom),
		Y: v.Y + v.H - float64(sy)/float64(c.Zoom),
	}
}
