package engine

import (
	"math"
	"testing"
)

func TestNormalizeSafeUnitLength(t *testing.T) {
	dirs := []Vec2{
		{3, 4}, {-1, 0}, {0.001, 0.002}, {-5, 12}, {0.7, -0.7},
	}
	for _, d := range dirs {
		n := NormalizeSafe(d)
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Errorf("normalize(%v) length = %f, want 1", d, n.Len())
		}
	}
}

func TestNormalizeSafeZero(t *testing.T) {
	n := NormalizeSafe(Vec2{})
	if n.X() != 0 || n.Y() != 0 {
		t.Errorf("normalize of zero vector should be zero, got %v", n)
	}
	tiny := NormalizeSafe(Vec2{1e-6, -1e-6})
	if tiny.X() != 0 || tiny.Y() != 0 {
		t.Errorf("normalize of near-zero vector should be zero, got %v", tiny)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	r := Rotate(Vec2{1, 0}, math.Pi/2)
	if math.Abs(r.X()) > 1e-9 || math.Abs(r.Y()-1) > 1e-9 {
		t.Errorf("rotating (1,0) by pi/2 should give (0,1), got %v", r)
	}
}

func TestLerp(t *testing.T) {
	mid := Lerp(Vec2{0, 0}, Vec2{10, -4}, 0.5)
	if math.Abs(mid.X()-5) > 1e-9 || math.Abs(mid.Y()+2) > 1e-9 {
		t.Errorf("lerp midpoint wrong: %v", mid)
	}
}

func TestAABBClosest(t *testing.T) {
	box := AABB{Min: Vec2{2, 2}, Max: Vec2{3, 3}}

	// Outside: clamps to the corner
	c := box.Closest(Vec2{5, 0})
	if c.X() != 3 || c.Y() != 2 {
		t.Errorf("closest point should be (3,2), got %v", c)
	}

	// Inside: the point itself
	c = box.Closest(Vec2{2.5, 2.5})
	if c.X() != 2.5 || c.Y() != 2.5 {
		t.Errorf("closest point inside box should be identity, got %v", c)
	}
}

func TestCircleIntersects(t *testing.T) {
	a := Circle{Center: Vec2{0, 0}, Radius: 1}
	b := Circle{Center: Vec2{1.5, 0}, Radius: 1}
	if !a.Intersects(b) {
		t.Error("overlapping circles should intersect")
	}
	c := Circle{Center: Vec2{3, 0}, Radius: 1}
	if a.Intersects(c) {
		t.Error("distant circles should not intersect")
	}
}

func TestCircleIntersectsAABB(t *testing.T) {
	box := AABB{Min: Vec2{1, 1}, Max: Vec2{2, 2}}
	near := Circle{Center: Vec2{0.5, 1.5}, Radius: 0.6}
	if !near.IntersectsAABB(box) {
		t.Error("circle touching box edge should intersect")
	}
	far := Circle{Center: Vec2{4, 4}, Radius: 0.5}
	if far.IntersectsAABB(box) {
		t.Error("distant circle should not intersect box")
	}
}
