package engine

import "math"

// Velocity reflected off a wall keeps half its normal component.
// Tuning constant, not a material property.
const wallBounce = 0.5

// Degenerate separations below this squared distance are ignored so
// a NaN normal can never leak into body state.
const contactEpsSq = 0.0001

// CollideCircleTile resolves a circle against the unit tile at
// (tileX, tileY): push the center out along the separating normal by
// the penetration depth and reflect the approaching part of the
// velocity, damped by wallBounce. Returns true on contact.
func CollideCircleTile(pos, vel *Vec2, radius float64, tileX, tileY int) bool {
	tile := AABB{
		Min: Vec2{float64(tileX), float64(tileY)},
		Max: Vec2{float64(tileX) + 1, float64(tileY) + 1},
	}
	closest := tile.Closest(*pos)

	distSq := DistSq(*pos, closest)
	if distSq >= radius*radius || distSq <= contactEpsSq {
		return false
	}

	dist := math.Sqrt(distSq)
	normal := pos.Sub(closest).Mul(1 / dist)
	overlap := radius - dist

	*pos = pos.Add(normal.Mul(overlap))

	if velDot := vel.Dot(normal); velDot < 0 {
		*vel = vel.Sub(normal.Mul(2 * velDot * wallBounce))
	}
	return true
}

// ResolveBodies separates two overlapping circle bodies and exchanges
// an impulse. Positional correction splits by inverse-mass ratio;
// static bodies never move. The impulse is applied only when the pair
// is approaching, using their averaged restitution.
func ResolveBodies(a, b *Body) {
	diff := b.Pos.Sub(a.Pos)
	distSq := diff.LenSqr()
	minDist := a.Radius + b.Radius
	if distSq >= minDist*minDist || distSq <= contactEpsSq {
		return
	}

	dist := math.Sqrt(distSq)
	overlap := minDist - dist
	normal := diff.Mul(1 / dist)

	totalMass := a.Mass + b.Mass
	switch {
	case !a.Static && !b.Static:
		a.Pos = a.Pos.Sub(normal.Mul(overlap * b.Mass / totalMass))
		b.Pos = b.Pos.Add(normal.Mul(overlap * a.Mass / totalMass))
	case !a.Static:
		a.Pos = a.Pos.Sub(normal.Mul(overlap))
	case !b.Static:
		b.Pos = b.Pos.Add(normal.Mul(overlap))
	}

	if a.Static || b.Static {
		return
	}

	relVel := b.Vel.Sub(a.Vel)
	alongNormal := relVel.Dot(normal)
	if alongNormal > 0 {
		return // already separating
	}

	restitution := (a.Restitution + b.Restitution) * 0.5
	j := -(1 + restitution) * alongNormal
	j /= 1/a.Mass + 1/b.Mass

	impulse := normal.Mul(j)
	a.Vel = a.Vel.Sub(impulse.Mul(1 / a.Mass))
	b.Vel = b.Vel.Add(impulse.Mul(1 / b.Mass))
}
