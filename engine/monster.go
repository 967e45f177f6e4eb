package engine

const (
	MonsterRadius      = 0.3
	MonsterMass        = 2.0
	MonsterFriction    = 0.2
	MonsterAggroRange  = 15.0
	MonsterMeleeRange  = 1.5
	MonsterAttackDelay = 1.0 // seconds between melee hits
	MonsterKillScore   = 100

	// Chase force by kind; elites are faster
	monsterSpeedBasic = 2.0
	monsterSpeedElite = 3.0
)

// Monster kinds select texture, speed and the health row.
const (
	MonsterBasic uint8 = 0
	MonsterElite uint8 = 1
)

// MonsterState is the AI state. Dead is terminal.
type MonsterState uint8

const (
	MonsterIdle MonsterState = iota
	MonsterChasing
	MonsterAttacking
	MonsterDead
)

func (s MonsterState) String() string {
	switch s {
	case MonsterIdle:
		return "idle"
	case MonsterChasing:
		return "chasing"
	case MonsterAttacking:
		return "attacking"
	default:
		return "dead"
	}
}

// health by (kind, difficulty)
var monsterHealthTable = [2]map[Difficulty]int{
	{Easy: 40, Normal: 60, Hard: 80},
	{Easy: 60, Normal: 100, Hard: 150},
}

// Monster is a melee enemy driven by the per-tick state machine in
// Session.updateMonsters.
type Monster struct {
	Body      Body
	Health    int
	MaxHealth int
	Kind      uint8
	State     MonsterState
	AttackAt  float64 // game time of the last melee hit
}

// NewMonster creates a monster of the given kind with difficulty-
// scaled health.
func NewMonster(x, y float64, kind uint8, diff Difficulty) Monster {
	hp := monsterHealthTable[kind&1][diff]
	if hp == 0 {
		hp = monsterHealthTable[kind&1][Normal]
	}
	body := NewBody(x, y, MonsterRadius)
	body.Mass = MonsterMass
	body.Friction = MonsterFriction
	return Monster{
		Body:      body,
		Health:    hp,
		MaxHealth: hp,
		Kind:      kind,
	}
}

// Alive reports whether the monster still takes part in AI, physics
// and rendering.
func (m *Monster) Alive() bool {
	return m.State != MonsterDead
}

// chaseForce is the force magnitude applied toward the player.
func (m *Monster) chaseForce() float64 {
	if m.Kind == MonsterElite {
		return monsterSpeedElite
	}
	return monsterSpeedBasic
}

// TakeDamage reduces health and returns true exactly once, on the hit
// that kills. Further damage against a dead monster is ignored.
func (m *Monster) TakeDamage(dmg int) bool {
	if m.State == MonsterDead {
		return false
	}
	m.Health -= dmg
	if m.Health <= 0 {
		m.Health = 0
		m.State = MonsterDead
		return true
	}
	return false
}
