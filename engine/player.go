package engine

const (
	PlayerRadius   = 0.3
	PlayerFriction = 0.3
	PlayerMoveForce = 15.0
	playerStrafeMul = 0.7
	playerTurnStep  = 0.05  // radians per tick while a turn key is held
	pointerTurnMul  = 0.003 // radians per pointer count, inverted
	playerStartAmmo = 50
)

// Weapon slots. The pistol costs nothing so the player can never be
// fully disarmed; the launcher trades ammo for damage.
const (
	WeaponPistol   uint8 = 0
	WeaponLauncher uint8 = 1
)

type weaponSpec struct {
	Cost   int
	Damage int
	Tone   float64 // shot cue frequency, Hz
}

var weapons = [2]weaponSpec{
	WeaponPistol:   {Cost: 0, Damage: 25, Tone: 440},
	WeaponLauncher: {Cost: 2, Damage: 50, Tone: 330},
}

const shotCooldown = 0.25 // seconds between shots, any weapon

// Player is the locally simulated avatar. Dir and Plane together form
// the camera: Plane length 0.66 gives roughly a 66 degree FOV.
type Player struct {
	Body      Body
	Dir       Vec2
	Plane     Vec2
	Health    int
	MaxHealth int
	Ammo      int
	Weapon    uint8
}

func newPlayer(maxHealth int) Player {
	body := NewBody(float64(MapW)/2, float64(MapH)/2, PlayerRadius)
	body.Friction = PlayerFriction
	return Player{
		Body:      body,
		Dir:       Vec2{-1, 0},
		Plane:     Vec2{0, 0.66},
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Ammo:      playerStartAmmo,
	}
}
