package engine

// Default body parameters. Friction here is a linear damping factor,
// not a physical coefficient.
const (
	BodyDefaultMass        = 1.0
	BodyDefaultFriction    = 0.1
	BodyDefaultRestitution = 0.3
)

// Body is a circular physics body moved by forces and impulses.
// Static bodies never integrate.
type Body struct {
	Pos         Vec2
	Vel         Vec2
	Accel       Vec2
	Radius      float64
	Mass        float64
	Friction    float64
	Restitution float64
	Static      bool
}

// NewBody creates a dynamic body with default mass and damping.
func NewBody(x, y, radius float64) Body {
	return Body{
		Pos:         Vec2{x, y},
		Radius:      radius,
		Mass:        BodyDefaultMass,
		Friction:    BodyDefaultFriction,
		Restitution: BodyDefaultRestitution,
	}
}

// NewStaticBody creates an immovable body.
func NewStaticBody(x, y, radius float64) Body {
	b := NewBody(x, y, radius)
	b.Static = true
	return b
}

// ApplyForce accumulates f/mass into the acceleration. No-op for
// static bodies or non-positive mass.
func (b *Body) ApplyForce(f Vec2) {
	if b.Static || b.Mass <= 0 {
		return
	}
	b.Accel = b.Accel.Add(f.Mul(1 / b.Mass))
}

// ApplyImpulse adds j/mass directly to the velocity.
func (b *Body) ApplyImpulse(j Vec2) {
	if b.Static || b.Mass <= 0 {
		return
	}
	b.Vel = b.Vel.Add(j.Mul(1 / b.Mass))
}

// Integrate advances the body one step of semi-implicit Euler:
// velocity picks up the accumulated acceleration, then decays by
// (1 - friction*dt), then moves the position. Acceleration is cleared.
// With friction*dt > 1 the damping term inverts the velocity sign;
// accepted simplification for the small dt this engine runs at.
func (b *Body) Integrate(dt float64) {
	if b.Static {
		return
	}
	b.Vel = b.Vel.Add(b.Accel.Mul(dt))
	b.Vel = b.Vel.Mul(1 - b.Friction*dt)
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	b.Accel = Vec2{}
}

// Circle returns the body's collider.
func (b *Body) Circle() Circle {
	return Circle{Center: b.Pos, Radius: b.Radius}
}
