package engine

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is the engine's 2D vector type. World units are tile-sized: one
// tile of the map is a 1x1 square.
type Vec2 = mgl64.Vec2

const normalizeEps = 0.0001

// V builds a vector from its components.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// NormalizeSafe returns the unit vector, or the zero vector for
// near-zero input instead of dividing by zero.
func NormalizeSafe(v Vec2) Vec2 {
	l := v.Len()
	if l > normalizeEps {
		return v.Mul(1 / l)
	}
	return Vec2{}
}

// Rotate rotates v counter-clockwise by angle radians.
func Rotate(v Vec2, angle float64) Vec2 {
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// Perp returns the counter-clockwise perpendicular of v.
func Perp(v Vec2) Vec2 {
	return Vec2{-v.Y(), v.X()}
}

// Lerp interpolates linearly from a to b.
func Lerp(a, b Vec2, t float64) Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// Dist returns the distance between two points.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// DistSq returns the squared distance between two points.
func DistSq(a, b Vec2) float64 {
	return a.Sub(b).LenSqr()
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec2
}

// AABBAround builds a box centered on c with the given half extents.
func AABBAround(c Vec2, halfW, halfH float64) AABB {
	return AABB{
		Min: Vec2{c.X() - halfW, c.Y() - halfH},
		Max: Vec2{c.X() + halfW, c.Y() + halfH},
	}
}

// Contains reports whether p lies inside the box (borders inclusive).
func (b AABB) Contains(p Vec2) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

// Intersects reports whether two boxes overlap.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y()
}

// Closest returns the point on the box nearest to p, clamped per axis.
func (b AABB) Closest(p Vec2) Vec2 {
	return Vec2{
		mgl64.Clamp(p.X(), b.Min.X(), b.Max.X()),
		mgl64.Clamp(p.Y(), b.Min.Y(), b.Max.Y()),
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Circle is a circular collider.
type Circle struct {
	Center Vec2
	Radius float64
}

// Intersects reports whether two circles overlap.
func (c Circle) Intersects(o Circle) bool {
	sum := c.Radius + o.Radius
	return DistSq(c.Center, o.Center) <= sum*sum
}

// IntersectsAABB reports whether the circle overlaps the box.
func (c Circle) IntersectsAABB(b AABB) bool {
	return DistSq(c.Center, b.Closest(c.Center)) <= c.Radius*c.Radius
}

// Contains reports whether p lies inside the circle.
func (c Circle) Contains(p Vec2) bool {
	return DistSq(c.Center, p) <= c.Radius*c.Radius
}

// Bounds returns the circle's bounding box.
func (c Circle) Bounds() AABB {
	return AABBAround(c.Center, c.Radius, c.Radius)
}
