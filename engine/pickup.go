package engine

const (
	PickupCap           = 6
	PickupSpawnInterval = 6.0 // seconds between spawn attempts
	PickupCollectRange  = 0.6
	PickupAmmoAmount    = 15
	PickupAmmoThreshold = 100 // no spawns while stocked above this
	AmmoMax             = 150
)

// Pickup is an ammo drop sitting at a fixed map position.
type Pickup struct {
	Pos Vec2
}
