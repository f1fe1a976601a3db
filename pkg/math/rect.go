package math

// Rect is an axis-aligned rectangle with its origin at the bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports half-open overlap: rectangles that only share an edge
// do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// Contains reports whether p lies inside r (left/bottom edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the centre point.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// InsetX shrinks the rectangle horizontally by d on each side.
func (r Rect) InsetX(d float64) Rect {
	w := r.W - 2*d
	if w < 0 {
		return Rect{X: r.X + r.W/2, Y: r.Y, W: 0, H: r.H}
	}
	return Rect{X: r.X + d, Y: r.Y, W: w, H: r.H}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
