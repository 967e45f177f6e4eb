package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

const (
	dayCycleSeconds      = 120.0
	monsterCap           = 50
	monsterSpawnInterval = 8.0 // seconds between spawn attempts
	monsterSpawnMinDist  = 10.0
	monsterEliteChance   = 0.4
	ammoTrickleInterval  = 1.0 // +1 ammo per second while dry

	initialMonsterRing = 8.0 // spawn circle radius around the player
)

// Config sets up a session. Zero values are usable: Normal
// difficulty, fixed map, time-seeded rng, silent audio.
type Config struct {
	Difficulty Difficulty
	Procedural bool
	Seed       int64
	Logger     zerolog.Logger
	Audio      AudioSink
}

// Session holds all engine state for one run. It is not safe for
// concurrent use: the host drives Update and Render from a single
// goroutine (see Loop).
type Session struct {
	Difficulty Difficulty
	Map        *TileMap

	Player      Player
	Monsters    []Monster
	Projectiles []Projectile
	Particles   []Particle
	Pickups     []Pickup
	Peers       []RemotePeer

	Score int
	Kills int
	Input Input

	grid  *SpatialGrid
	rng   *rand.Rand
	log   zerolog.Logger
	audio AudioSink
	link  *PeerLink

	gameTime   float64
	timeOfDay  float64
	lastShot   float64
	lastSpawn  float64
	lastPickup float64
	lastTrickle float64
	over       bool

	queryBuf []int
}

// NewSession builds a ready-to-run session: map, player, the
// difficulty-scaled starting monster ring.
func NewSession(cfg Config) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	audio := cfg.Audio
	if audio == nil {
		audio = NopAudio{}
	}

	set := cfg.Difficulty.settings()
	s := &Session{
		Difficulty: cfg.Difficulty,
		Map:        NewArenaMap(),
		Player:     newPlayer(set.MaxHealth),
		grid:       NewSpatialGrid(1.0),
		rng:        rand.New(rand.NewSource(seed)),
		log:        cfg.Logger,
		audio:      audio,
		timeOfDay:  0.25, // start at dawn
		Monsters:   make([]Monster, 0, monsterCap),
	}
	if cfg.Procedural {
		s.Map.Generate(s.rng)
	}

	center := s.Player.Body.Pos
	for i := 0; i < set.InitialMonsters; i++ {
		angle := float64(i) / float64(set.InitialMonsters) * 2 * math.Pi
		pos := center.Add(Rotate(Vec2{initialMonsterRing, 0}, angle))
		if s.Map.Tile(pos.X(), pos.Y()) == TileOpen {
			s.Monsters = append(s.Monsters, NewMonster(pos.X(), pos.Y(), MonsterBasic, cfg.Difficulty))
		}
	}

	s.log.Info().
		Stringer("difficulty", cfg.Difficulty).
		Bool("procedural", cfg.Procedural).
		Int("monsters", len(s.Monsters)).
		Msg("session created")
	return s
}

// TimeOfDay returns the wrapping day scalar in [0,1): 0 midnight,
// 0.25 dawn, 0.5 noon, 0.75 dusk.
func (s *Session) TimeOfDay() float64 { return s.timeOfDay }

// GameTime returns seconds simulated since the session started.
func (s *Session) GameTime() float64 { return s.gameTime }

// Over reports whether the session has ended.
func (s *Session) Over() bool { return s.over }

// EnableProcedural regenerates the map procedurally, snapshotting the
// current layout on the first call.
func (s *Session) EnableProcedural() {
	s.Map.Generate(s.rng)
}

// RestoreMap swaps the pre-procedural layout back in.
func (s *Session) RestoreMap() {
	s.Map.Restore()
}

// Update advances the simulation by dt seconds and returns true when
// the session is over (exit key or player death). Calling Update on a
// finished session is a no-op.
func (s *Session) Update(dt float64) bool {
	if s.over {
		return true
	}

	if s.link != nil {
		s.link.apply(s)
	}

	s.gameTime += dt
	s.timeOfDay += dt / dayCycleSeconds
	if s.timeOfDay > 1 {
		s.timeOfDay -= 1
	}

	if s.Input.Exit {
		s.finish("exit")
		return true
	}

	s.updatePlayer(dt)
	s.updatePickups()
	s.updateMonsters(dt)
	s.updateProjectiles(dt)
	s.updateParticles(dt)

	if len(s.Monsters) > monsterCap {
		s.pruneDead()
	}
	if s.gameTime-s.lastSpawn > monsterSpawnInterval && len(s.Monsters) < monsterCap {
		s.spawnMonster()
	}

	if s.link != nil {
		s.link.setLocal(s.Player.Body.Pos)
	}

	if s.Player.Health <= 0 {
		s.finish("dead")
		return true
	}
	return false
}

func (s *Session) finish(reason string) {
	s.over = true
	s.log.Info().
		Str("reason", reason).
		Int("score", s.Score).
		Int("kills", s.Kills).
		Float64("time", s.gameTime).
		Msg("session over")
}

func (s *Session) updatePlayer(dt float64) {
	p := &s.Player
	in := &s.Input

	if in.SelectPistol {
		p.Weapon = WeaponPistol
	}
	if in.SelectLauncher && p.Ammo >= weapons[WeaponLauncher].Cost {
		p.Weapon = WeaponLauncher
	}

	var force Vec2
	left := Perp(p.Dir)
	if in.Forward {
		force = force.Add(p.Dir.Mul(PlayerMoveForce))
	}
	if in.Back {
		force = force.Sub(p.Dir.Mul(PlayerMoveForce))
	}
	if in.StrafeLeft {
		force = force.Add(left.Mul(PlayerMoveForce * playerStrafeMul))
	}
	if in.StrafeRight {
		force = force.Sub(left.Mul(PlayerMoveForce * playerStrafeMul))
	}
	// Combined input must not exceed straight-line speed
	if force.Len() > PlayerMoveForce {
		force = NormalizeSafe(force).Mul(PlayerMoveForce)
	}
	p.Body.ApplyForce(force)

	if in.TurnLeft {
		s.rotate(playerTurnStep)
	}
	if in.TurnRight {
		s.rotate(-playerTurnStep)
	}
	if dx := in.takePointerDelta(); dx != 0 {
		s.rotate(-dx * pointerTurnMul)
	}

	fire := in.Fire || in.takeClick()
	cost := weapons[p.Weapon].Cost
	if fire && s.gameTime-s.lastShot > shotCooldown && p.Ammo > 0 && p.Ammo >= cost {
		s.shoot()
	}

	// Anti-softlock: a dry player slowly earns pistol ammo back
	if p.Ammo == 0 && s.gameTime-s.lastTrickle >= ammoTrickleInterval {
		p.Ammo++
		s.lastTrickle = s.gameTime
	}

	p.Body.Integrate(dt)
	s.collideWalls(&p.Body)
}

// collideWalls resolves a body against the 3x3 tile neighborhood.
func (s *Session) collideWalls(b *Body) {
	cx, cy := int(b.Pos.X()), int(b.Pos.Y())
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			tx, ty := cx+dx, cy+dy
			if s.Map.Tile(float64(tx), float64(ty)) > TileOpen {
				CollideCircleTile(&b.Pos, &b.Vel, b.Radius, tx, ty)
			}
		}
	}
}

func (s *Session) shoot() {
	p := &s.Player
	spec := weapons[p.Weapon]
	p.Ammo -= spec.Cost
	s.lastShot = s.gameTime

	s.audio.PlayTone(spec.Tone, 50*time.Millisecond)
	s.Projectiles = append(s.Projectiles, NewProjectile(p.Body.Pos, p.Dir, spec.Damage))

	// Muzzle flash
	for i := 0; i < 5; i++ {
		s.spawnParticle(
			p.Body.Pos.Add(p.Dir.Mul(0.5)),
			p.Dir.Mul(2).Add(Vec2{s.rand1() * 1, s.rand1() * 1}),
			RGB{255, 200, 0}, 0.2)
	}
}

func (s *Session) updatePickups() {
	p := &s.Player

	if s.gameTime-s.lastPickup > PickupSpawnInterval &&
		p.Ammo < PickupAmmoThreshold && len(s.Pickups) < PickupCap {
		for try := 0; try < 20; try++ {
			x := 2 + s.rng.Float64()*(MapW-4)
			y := 2 + s.rng.Float64()*(MapH-4)
			if s.Map.Tile(x, y) == TileOpen {
				s.Pickups = append(s.Pickups, Pickup{Pos: Vec2{x, y}})
				s.lastPickup = s.gameTime
				break
			}
		}
	}

	kept := s.Pickups[:0]
	for _, pk := range s.Pickups {
		if Dist(p.Body.Pos, pk.Pos) < PickupCollectRange {
			p.Ammo += PickupAmmoAmount
			if p.Ammo > AmmoMax {
				p.Ammo = AmmoMax
			}
			continue
		}
		kept = append(kept, pk)
	}
	s.Pickups = kept
}

func (s *Session) updateMonsters(dt float64) {
	p := &s.Player
	melee := s.Difficulty.settings().MeleeDamage

	for i := range s.Monsters {
		m := &s.Monsters[i]
		if !m.Alive() {
			continue
		}

		toPlayer := p.Body.Pos.Sub(m.Body.Pos)
		dist := toPlayer.Len()

		if dist < MonsterAggroRange {
			m.State = MonsterChasing
			if dist < MonsterMeleeRange && s.gameTime-m.AttackAt > MonsterAttackDelay {
				m.State = MonsterAttacking
				m.AttackAt = s.gameTime

				p.Health -= melee
				if p.Health < 0 {
					p.Health = 0
				}
				s.audio.PlayTone(toneHit, 100*time.Millisecond)
				for j := 0; j < 5; j++ {
					s.spawnParticle(p.Body.Pos,
						Vec2{s.rand1() * 4, s.rand1() * 4},
						RGB{255, 0, 0}, 0.5)
				}
			} else if dist > MonsterMeleeRange {
				m.Body.ApplyForce(NormalizeSafe(toPlayer).Mul(m.chaseForce()))
			}
		} else {
			m.State = MonsterIdle
		}

		m.Body.Integrate(dt)
		s.collideWalls(&m.Body)
	}

	// Separation pass: monsters push each other and the player apart
	s.grid.Clear()
	for i := range s.Monsters {
		if s.Monsters[i].Alive() {
			s.grid.Insert(i, s.Monsters[i].Body.Pos, MonsterRadius)
		}
	}
	for i := range s.Monsters {
		m := &s.Monsters[i]
		if !m.Alive() {
			continue
		}
		s.queryBuf = s.grid.QueryBuf(m.Body.Pos, MonsterRadius*2, s.queryBuf[:0])
		for _, j := range s.queryBuf {
			if j > i && s.Monsters[j].Alive() {
				ResolveBodies(&m.Body, &s.Monsters[j].Body)
			}
		}
		ResolveBodies(&m.Body, &p.Body)
	}
}

func (s *Session) updateProjectiles(dt float64) {
	// Flight and wall impact first; a shot that dies in a wall never
	// reaches the proximity pass below.
	kept := s.Projectiles[:0]
	for i := range s.Projectiles {
		proj := s.Projectiles[i]
		proj.Body.Integrate(dt)
		proj.Lifetime -= dt
		if proj.Lifetime <= 0 {
			continue
		}
		if s.Map.Tile(proj.Body.Pos.X(), proj.Body.Pos.Y()) > TileOpen {
			for j := 0; j < 3; j++ {
				s.spawnParticle(proj.Body.Pos,
					Vec2{s.rand1() * 2, s.rand1() * 2},
					RGB{255, 255, 100}, 0.3)
			}
			continue
		}
		kept = append(kept, proj)
	}
	s.Projectiles = kept

	// Proximity pass against living monsters via the broad-phase grid
	s.grid.Clear()
	for i := range s.Monsters {
		if s.Monsters[i].Alive() {
			s.grid.Insert(i, s.Monsters[i].Body.Pos, MonsterRadius)
		}
	}

	for i := range s.Projectiles {
		proj := &s.Projectiles[i]
		s.queryBuf = s.grid.QueryBuf(proj.Body.Pos, ProjectileHitRange, s.queryBuf[:0])
		for _, mi := range s.queryBuf {
			m := &s.Monsters[mi]
			if !m.Alive() || Dist(proj.Body.Pos, m.Body.Pos) >= ProjectileHitRange {
				continue
			}
			if m.TakeDamage(proj.Damage) {
				s.Score += MonsterKillScore
				s.Kills++
				s.audio.PlayTone(toneDeath, 200*time.Millisecond)
				deathColor := RGB{200, 50, 50}
				if m.Kind == MonsterElite {
					deathColor = RGB{150, 100, 200}
				}
				for j := 0; j < 10; j++ {
					s.spawnParticle(m.Body.Pos,
						Vec2{s.rand1() * 5, s.rand1() * 5},
						deathColor, 1.0)
				}
			}
			proj.Lifetime = 0 // spent; dropped below, never double-counted
			break
		}
	}

	kept = s.Projectiles[:0]
	for _, proj := range s.Projectiles {
		if proj.Lifetime > 0 {
			kept = append(kept, proj)
		}
	}
	s.Projectiles = kept
}

func (s *Session) updateParticles(dt float64) {
	kept := s.Particles[:0]
	for _, pt := range s.Particles {
		pt.Life -= dt
		if pt.Life <= 0 {
			continue
		}
		pt.Vel = pt.Vel.Mul(particleDrag)
		pt.Pos = pt.Pos.Add(pt.Vel.Mul(dt))
		kept = append(kept, pt)
	}
	s.Particles = kept
}

func (s *Session) pruneDead() {
	kept := s.Monsters[:0]
	for _, m := range s.Monsters {
		if m.Alive() {
			kept = append(kept, m)
		}
	}
	s.Monsters = kept
}

func (s *Session) spawnMonster() {
	for try := 0; try < 10; try++ {
		x := 2 + s.rng.Float64()*(MapW-4)
		y := 2 + s.rng.Float64()*(MapH-4)
		if Dist(s.Player.Body.Pos, Vec2{x, y}) <= monsterSpawnMinDist ||
			s.Map.Tile(x, y) != TileOpen {
			continue
		}
		kind := MonsterBasic
		if s.rng.Float64() > 1-monsterEliteChance {
			kind = MonsterElite
		}
		s.Monsters = append(s.Monsters, NewMonster(x, y, kind, s.Difficulty))
		s.lastSpawn = s.gameTime
		return
	}
}

func (s *Session) spawnParticle(pos, vel Vec2, c RGB, life float64) {
	if len(s.Particles) >= ParticleCap {
		return
	}
	s.Particles = append(s.Particles, Particle{
		Pos: pos, Vel: vel, Color: c, Life: life, MaxLife: life,
	})
}

func (s *Session) rotate(angle float64) {
	s.Player.Dir = Rotate(s.Player.Dir, angle)
	s.Player.Plane = Rotate(s.Player.Plane, angle)
}

// rand1 returns a uniform value in [-0.5, 0.5).
func (s *Session) rand1() float64 {
	return s.rng.Float64() - 0.5
}
