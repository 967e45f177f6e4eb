package engine

const (
	ProjectileSpeed    = 20.0
	ProjectileRadius   = 0.1
	ProjectileLifetime = 5.0
	ProjectileHitRange = 0.5 // proximity fuse against monsters
)

// Projectile is a fired shot. Lifetime <= 0 marks it for removal on
// the tick it crosses zero.
type Projectile struct {
	Body     Body
	Damage   int
	Lifetime float64
}

// NewProjectile spawns a shot at pos moving along dir at full speed.
// Projectiles fly without damping so range depends only on lifetime.
func NewProjectile(pos, dir Vec2, damage int) Projectile {
	body := NewBody(pos.X(), pos.Y(), ProjectileRadius)
	body.Vel = dir.Mul(ProjectileSpeed)
	body.Friction = 0
	return Projectile{
		Body:     body,
		Damage:   damage,
		Lifetime: ProjectileLifetime,
	}
}
