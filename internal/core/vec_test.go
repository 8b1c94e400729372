package core

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 3, Y: -4}

	sum := a.Add(b)
	if sum.X != 4 || sum.Y != -2 {
		t.Errorf("Add: expected (4, -2), got (%v, %v)", sum.X, sum.Y)
	}

	diff := a.Sub(b)
	if diff.X != -2 || diff.Y != 6 {
		t.Errorf("Sub: expected (-2, 6), got (%v, %v)", diff.X, diff.Y)
	}

	scaled := a.Scale(2.5)
	if scaled.X != 2.5 || scaled.Y != 5 {
		t.Errorf("Scale: expected (2.5, 5), got (%v, %v)", scaled.X, scaled.Y)
	}

	if dot := a.Dot(b); dot != -5 {
		t.Errorf("Dot: expected -5, got %v", dot)
	}
}

func TestVec2Len(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	if l := v.Len(); l != 5 {
		t.Errorf("Len of (3,4): expected 5, got %v", l)
	}

	if l := (Vec2{}).Len(); l != 0 {
		t.Errorf("Len of zero vector: expected 0, got %v", l)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{X: 3, Y: 4}.Normalize()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Errorf("Normalized vector should have unit length, got %v", v.Len())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Errorf("Normalize (3,4): expected (0.6, 0.8), got (%v, %v)", v.X, v.Y)
	}
}

func TestVec2NormalizeDegenerate(t *testing.T) {
	// Vectors shorter than Epsilon collapse to zero instead of dividing by
	// a near-zero length.
	v := Vec2{X: Epsilon / 2, Y: 0}.Normalize()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("Normalizing a sub-epsilon vector should give zero, got (%v, %v)", v.X, v.Y)
	}
}

func TestReflect(t *testing.T) {
	// Reflection off a vertical wall (normal pointing left) flips X only.
	v := Reflect(Vec2{X: 2, Y: 3}, Vec2{X: -1, Y: 0})
	if v.X != -2 || v.Y != 3 {
		t.Errorf("Reflect off vertical wall: expected (-2, 3), got (%v, %v)", v.X, v.Y)
	}

	// Reflection off a 45-degree normal swaps and negates components.
	n := Vec2{X: 1, Y: 1}.Normalize()
	r := Reflect(Vec2{X: 1, Y: 0}, n)
	if math.Abs(r.X) > 1e-12 || math.Abs(r.Y+1) > 1e-12 {
		t.Errorf("Reflect off diagonal: expected (0, -1), got (%v, %v)", r.X, r.Y)
	}
}

func TestReflectPreservesSpeed(t *testing.T) {
	v := Vec2{X: -1.3, Y: 0.7}
	n := Vec2{X: 0.8, Y: -0.6}
	before := v.Len()
	after := Reflect(v, n).Len()
	if math.Abs(before-after) > 1e-12 {
		t.Errorf("Reflection should preserve speed: before=%v after=%v", before, after)
	}
}

func TestCirclesOverlap(t *testing.T) {
	hit, dist := CirclesOverlap(Vec2{X: 0, Y: 0}, 1, Vec2{X: 1.5, Y: 0}, 1)
	if !hit {
		t.Error("Circles with center distance 1.5 and radii 1+1 should overlap")
	}
	if dist != 1.5 {
		t.Errorf("Expected distance 1.5, got %v", dist)
	}

	hit, _ = CirclesOverlap(Vec2{X: 0, Y: 0}, 1, Vec2{X: 3, Y: 0}, 1)
	if hit {
		t.Error("Circles with center distance 3 and radii 1+1 should not overlap")
	}
}

func TestCirclesOverlapCoincident(t *testing.T) {
	hit, dist := CirclesOverlap(Vec2{X: 5, Y: 5}, 1, Vec2{X: 5, Y: 5}, 1)
	if !hit {
		t.Error("Coincident circles should overlap")
	}
	if dist >= Epsilon {
		t.Errorf("Coincident circles should report near-zero distance, got %v", dist)
	}
}

func TestRectFOverlaps(t *testing.T) {
	a := NewRectF(0, 0, 10, 5)

	if !a.Overlaps(NewRectF(5, 2, 10, 5)) {
		t.Error("Overlapping boxes should intersect")
	}
	if a.Overlaps(NewRectF(10, 0, 5, 5)) {
		t.Error("Edge-touching boxes should not intersect")
	}
	if a.Overlaps(NewRectF(0, 5, 10, 5)) {
		t.Error("Vertically adjacent boxes should not intersect")
	}
	if a.Overlaps(NewRectF(20, 20, 5, 5)) {
		t.Error("Distant boxes should not intersect")
	}
}

func TestRectFEdges(t *testing.T) {
	r := NewRectF(2, 3, 4, 6)

	if r.Right() != 6 {
		t.Errorf("Right: expected 6, got %v", r.Right())
	}
	if r.Bottom() != 9 {
		t.Errorf("Bottom: expected 9, got %v", r.Bottom())
	}
	c := r.Center()
	if c.X != 4 || c.Y != 6 {
		t.Errorf("Center: expected (4, 6), got (%v, %v)", c.X, c.Y)
	}
}
