package engine

const (
	ParticleCap  = 100
	particleDrag = 0.95 // velocity keep-fraction per tick
)

// Particle is a cosmetic spark. It never collides and fades out as
// Life approaches zero.
type Particle struct {
	Pos     Vec2
	Vel     Vec2
	Color   RGB
	Life    float64
	MaxLife float64
}

// Alpha is the remaining-life fraction used to fade the sprite.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}
