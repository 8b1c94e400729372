package core

import "math"

// Epsilon is the near-zero threshold for geometric degeneracy checks.
// Distances and vector lengths below it are treated as zero.
const Epsilon = 1e-9

// Vec2 is a 2D vector in continuous playfield coordinates.
// X grows rightward, Y grows downward (screen convention).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns v scaled to unit length.
// A vector shorter than Epsilon normalizes to the zero vector; callers
// that divide by direction must check Len first.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Reflect returns v reflected about the unit normal n: v' = v - 2(v·n)n.
// n must be normalized and non-zero.
func Reflect(v, n Vec2) Vec2 {
	d := 2 * v.Dot(n)
	return Vec2{v.X - d*n.X, v.Y - d*n.Y}
}

// CirclesOverlap reports whether two circles overlap and returns the
// center distance. A distance below Epsilon is a degenerate overlap;
// callers must skip direction-dependent resolution in that case.
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) (bool, float64) {
	d := c2.Sub(c1).Len()
	return d < r1+r2, d
}

// RectF is an axis-aligned box in continuous playfield coordinates.
type RectF struct {
	X, Y, W, H float64
}

// NewRectF creates a box from its top-left corner and dimensions.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the box center.
func (r RectF) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Overlaps is the standard AABB interval test on both axes.
func (r RectF) Overlaps(other RectF) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}
