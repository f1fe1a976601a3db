// Package math provides math types and functions for game development.
package math

import "math"

// Vec2 is a 2D world-space vector. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Snap rounds both components down to a multiple of step.
func (v Vec2) Snap(step float64) Vec2 {
	if step <= 0 {
		return v
	}
	return Vec2{math.Floor(v.X/step) * step, math.Floor(v.Y/step) * step}
}

// Approach moves v toward target by at most step per axis, never past it.
func (v Vec2) Approach(target Vec2, step float64) Vec2 {
	return Vec2{approach(v.X, target.X, step), approach(v.Y, target.Y, step)}
}

func approach(cur, target, step float64) float64 {
	switch {
	case cur < target:
		return math.Min(cur+step, target)
	case cur > target:
		return math.Max(cur-step, target)
	}
	return cur
}
