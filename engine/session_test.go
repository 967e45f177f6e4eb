package engine

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func newTestSession(diff Difficulty) *Session {
	s := NewSession(Config{
		Difficulty: diff,
		Seed:       42,
		Logger:     zerolog.Nop(),
	})
	// Tests place their own entities in known open tiles.
	s.Monsters = s.Monsters[:0]
	s.Player.Body.Pos = Vec2{3.5, 3.5}
	return s
}

func TestInitialMonsterRing(t *testing.T) {
	s := NewSession(Config{Difficulty: Normal, Seed: 1, Logger: zerolog.Nop()})
	if len(s.Monsters) == 0 {
		t.Fatal("session should start with monsters")
	}
	for _, m := range s.Monsters {
		if s.Map.Tile(m.Body.Pos.X(), m.Body.Pos.Y()) != TileOpen {
			t.Errorf("monster spawned inside a wall at %v", m.Body.Pos)
		}
		if d := Dist(m.Body.Pos, s.Player.Body.Pos); math.Abs(d-initialMonsterRing) > 1e-6 {
			t.Errorf("monster at ring distance %f, want %f", d, initialMonsterRing)
		}
	}
}

func TestMonsterIdleBeyondAggroRange(t *testing.T) {
	s := newTestSession(Normal)
	s.Monsters = append(s.Monsters, NewMonster(23.5, 3.5, MonsterBasic, Normal))

	s.Update(1.0 / 60.0)

	m := &s.Monsters[0]
	if m.State != MonsterIdle {
		t.Errorf("monster 20 tiles away should idle, state=%v", m.State)
	}
	if m.Body.Pos.X() != 23.5 {
		t.Errorf("idle monster should not move, x=%f", m.Body.Pos.X())
	}
}

func TestMonsterChasesInsideAggroRange(t *testing.T) {
	s := newTestSession(Normal)
	s.Monsters = append(s.Monsters, NewMonster(13.5, 3.5, MonsterBasic, Normal))

	before := Dist(s.Monsters[0].Body.Pos, s.Player.Body.Pos)
	for i := 0; i < 30; i++ {
		s.Update(1.0 / 60.0)
	}

	m := &s.Monsters[0]
	if m.State != MonsterChasing {
		t.Errorf("monster 10 tiles away should chase, state=%v", m.State)
	}
	if after := Dist(m.Body.Pos, s.Player.Body.Pos); after >= before {
		t.Errorf("chasing monster should close distance: %f -> %f", before, after)
	}
}

func TestMonsterMeleeRespectsCooldown(t *testing.T) {
	s := newTestSession(Normal)
	s.Monsters = append(s.Monsters, NewMonster(4.5, 3.5, MonsterBasic, Normal))

	start := s.Player.Health // 100 on Normal
	hits := 0
	last := start
	for i := 0; i < 12; i++ { // 3.6 simulated seconds
		s.Update(0.3)
		if s.Player.Health < last {
			hits++
			if last-s.Player.Health != 10 {
				t.Errorf("melee hit should cost 10 on Normal, cost %d", last-s.Player.Health)
			}
			last = s.Player.Health
		}
	}
	// Attacks gate on a one second cooldown, so 3.6 seconds allows at
	// most three hits and the adjacent monster lands at least two.
	if hits < 2 || hits > 3 {
		t.Errorf("expected 2-3 melee hits over 3.6s, got %d", hits)
	}
}

func TestShotCooldown(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Body.Pos = Vec2{28.5, 3.5}
	s.Input.Fire = true

	s.Update(0.3) // past the initial cooldown window
	if len(s.Projectiles) != 1 {
		t.Fatalf("first shot should fire, got %d projectiles", len(s.Projectiles))
	}
	s.Update(0.1) // within cooldown
	if len(s.Projectiles) != 1 {
		t.Errorf("shot inside the 0.25s cooldown should be held, got %d", len(s.Projectiles))
	}
	s.Update(0.3) // cooldown expired
	if len(s.Projectiles) != 2 {
		t.Errorf("shot after cooldown should fire, got %d", len(s.Projectiles))
	}
	if s.Player.Ammo != playerStartAmmo {
		t.Errorf("pistol shots should cost no ammo, ammo=%d", s.Player.Ammo)
	}
}

func TestLauncherRequiresAmmo(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Ammo = 1
	s.Input.SelectLauncher = true
	s.Update(1.0 / 60.0)
	if s.Player.Weapon != WeaponPistol {
		t.Error("launcher selection with 1 ammo should be refused")
	}

	s.Player.Ammo = 10
	s.Update(1.0 / 60.0)
	if s.Player.Weapon != WeaponLauncher {
		t.Error("launcher selection with ammo should succeed")
	}
}

func TestFireNeverDrivesAmmoNegative(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Body.Pos = Vec2{28.5, 3.5}
	s.Player.Weapon = WeaponLauncher
	s.Player.Ammo = 1
	s.Input.Fire = true

	s.Update(0.3)
	if len(s.Projectiles) != 0 {
		t.Error("launcher with 1 ammo should not fire")
	}
	if s.Player.Ammo < 0 {
		t.Errorf("ammo went negative: %d", s.Player.Ammo)
	}

	s.Player.Ammo = 2
	s.Update(0.3)
	if len(s.Projectiles) != 1 {
		t.Errorf("launcher with exact ammo should fire, got %d", len(s.Projectiles))
	}
	if s.Player.Ammo != 0 {
		t.Errorf("launcher shot should cost 2, ammo=%d", s.Player.Ammo)
	}
	if s.Projectiles[0].Damage != 50 {
		t.Errorf("launcher damage = %d, want 50", s.Projectiles[0].Damage)
	}
}

func TestAmmoTrickleWhileDry(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Ammo = 0

	s.Update(0.6)
	if s.Player.Ammo != 0 {
		t.Errorf("trickle before one second, ammo=%d", s.Player.Ammo)
	}
	s.Update(0.6)
	if s.Player.Ammo != 1 {
		t.Errorf("dry player should earn 1 ammo after a second, got %d", s.Player.Ammo)
	}
}

func TestProjectileDiesInWall(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Body.Pos = Vec2{28.5, 28.5}
	s.Monsters = append(s.Monsters, NewMonster(1.2, 3.5, MonsterBasic, Normal))
	s.Projectiles = append(s.Projectiles, NewProjectile(Vec2{1.1, 3.5}, Vec2{-1, 0}, 25))

	s.Update(0.01)

	if len(s.Projectiles) != 0 {
		t.Error("projectile entering the border wall should be removed")
	}
	if len(s.Particles) != 3 {
		t.Errorf("wall impact should spark 3 particles, got %d", len(s.Particles))
	}
	if s.Monsters[0].Health != 60 {
		t.Errorf("a shot dead in the wall must not damage nearby monsters, health=%d",
			s.Monsters[0].Health)
	}
}

func TestKillScoredExactlyOnce(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Body.Pos = Vec2{28.5, 28.5}
	s.Monsters = append(s.Monsters, NewMonster(10.5, 3.5, MonsterBasic, Normal))

	s.Projectiles = append(s.Projectiles, NewProjectile(Vec2{10.5, 3.5}, Vec2{1, 0}, 60))
	s.Update(0.001)

	if s.Score != MonsterKillScore || s.Kills != 1 {
		t.Fatalf("kill should score %d once, score=%d kills=%d",
			MonsterKillScore, s.Score, s.Kills)
	}
	if s.Monsters[0].Alive() {
		t.Fatal("monster should be dead")
	}
	if len(s.Projectiles) != 0 {
		t.Error("killing shot should be spent")
	}

	// A second shot through the corpse scores nothing
	s.Projectiles = append(s.Projectiles, NewProjectile(Vec2{10.5, 3.5}, Vec2{1, 0}, 60))
	s.Update(0.001)
	if s.Score != MonsterKillScore || s.Kills != 1 {
		t.Errorf("dead monster scored again: score=%d kills=%d", s.Score, s.Kills)
	}
	if len(s.Projectiles) != 1 {
		t.Error("shot passing a corpse should keep flying")
	}
}

func TestPickupCollection(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Ammo = 40
	s.Pickups = append(s.Pickups, Pickup{Pos: Vec2{3.6, 3.5}})

	s.Update(1.0 / 60.0)

	if len(s.Pickups) != 0 {
		t.Error("adjacent pickup should be collected")
	}
	if s.Player.Ammo != 55 {
		t.Errorf("collection should add 15 ammo, got %d", s.Player.Ammo)
	}
}

func TestPickupRespectsAmmoCap(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Ammo = 145
	s.Pickups = append(s.Pickups, Pickup{Pos: Vec2{3.6, 3.5}})

	s.Update(1.0 / 60.0)

	if s.Player.Ammo != AmmoMax {
		t.Errorf("ammo should cap at %d, got %d", AmmoMax, s.Player.Ammo)
	}
}

func TestDeadMonstersPurgedOnlyPastCap(t *testing.T) {
	s := newTestSession(Normal)
	for i := 0; i < 30; i++ {
		m := NewMonster(25.5, 25.5, MonsterBasic, Normal)
		m.State = MonsterDead
		s.Monsters = append(s.Monsters, m)
	}
	s.Update(1.0 / 60.0)
	if len(s.Monsters) != 30 {
		t.Errorf("corpses under the cap should linger, got %d", len(s.Monsters))
	}

	for i := 0; i < 21; i++ {
		m := NewMonster(25.5, 25.5, MonsterBasic, Normal)
		m.State = MonsterDead
		s.Monsters = append(s.Monsters, m)
	}
	alive := NewMonster(20.5, 28.5, MonsterBasic, Normal)
	s.Monsters = append(s.Monsters, alive) // 52 total
	s.Update(1.0 / 60.0)

	if len(s.Monsters) != 1 || !s.Monsters[0].Alive() {
		t.Errorf("purge past the cap should keep only the living, got %d", len(s.Monsters))
	}
}

func TestExitEndsSession(t *testing.T) {
	s := newTestSession(Normal)
	s.Input.Exit = true

	if !s.Update(1.0 / 60.0) {
		t.Fatal("exit should end the session")
	}
	if !s.Over() {
		t.Error("session should report over")
	}

	at := s.GameTime()
	if !s.Update(1.0 / 60.0) {
		t.Error("update on a finished session should still report over")
	}
	if s.GameTime() != at {
		t.Error("finished session must not keep simulating")
	}
}

func TestPlayerDeathEndsSession(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Health = 0
	if !s.Update(1.0 / 60.0) {
		t.Error("dead player should end the session")
	}
}

func TestTimeOfDayWraps(t *testing.T) {
	s := newTestSession(Normal)
	if s.TimeOfDay() != 0.25 {
		t.Fatalf("sessions start at dawn, got %f", s.TimeOfDay())
	}
	s.Update(dayCycleSeconds * 0.8)
	if got := s.TimeOfDay(); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("time of day should wrap to 0.05, got %f", got)
	}
}

func TestParticleCapHolds(t *testing.T) {
	s := newTestSession(Normal)
	for i := 0; i < ParticleCap+50; i++ {
		s.spawnParticle(Vec2{3.5, 3.5}, Vec2{}, RGB{255, 255, 255}, 1.0)
	}
	if len(s.Particles) != ParticleCap {
		t.Errorf("particle count %d exceeds cap %d", len(s.Particles), ParticleCap)
	}
}

func TestTurnKeepsCameraOrthogonal(t *testing.T) {
	s := newTestSession(Normal)
	s.Input.TurnLeft = true
	for i := 0; i < 50; i++ {
		s.Update(1.0 / 60.0)
	}
	p := &s.Player
	if math.Abs(p.Dir.Len()-1) > 1e-9 {
		t.Errorf("dir should stay unit length, got %f", p.Dir.Len())
	}
	if math.Abs(p.Plane.Len()-0.66) > 1e-9 {
		t.Errorf("plane should stay 0.66, got %f", p.Plane.Len())
	}
	if math.Abs(p.Dir.Dot(p.Plane)) > 1e-9 {
		t.Error("dir and plane should stay orthogonal")
	}
}

func TestWallsContainPlayer(t *testing.T) {
	s := newTestSession(Normal)
	s.Player.Body.Pos = Vec2{2.0, 3.5}
	s.Input.Forward = true // dir (-1,0): straight into the west wall
	for i := 0; i < 300; i++ {
		s.Update(1.0 / 60.0)
	}
	x := s.Player.Body.Pos.X()
	if x < 1+PlayerRadius-1e-6 {
		t.Errorf("player pushed into the border wall, x=%f", x)
	}
}
