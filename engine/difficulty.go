package engine

// Difficulty scales player health, monster melee damage and the
// starting monster count.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "EASY"
	case Hard:
		return "HARD"
	default:
		return "NORMAL"
	}
}

// ParseDifficulty maps a config string to a difficulty, defaulting to
// Normal for anything unrecognized.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "easy", "EASY":
		return Easy
	case "hard", "HARD":
		return Hard
	default:
		return Normal
	}
}

type difficultySettings struct {
	MaxHealth       int
	MeleeDamage     int
	InitialMonsters int
}

var difficultyTable = map[Difficulty]difficultySettings{
	Easy:   {MaxHealth: 150, MeleeDamage: 5, InitialMonsters: 3},
	Normal: {MaxHealth: 100, MeleeDamage: 10, InitialMonsters: 5},
	Hard:   {MaxHealth: 75, MeleeDamage: 20, InitialMonsters: 8},
}

func (d Difficulty) settings() difficultySettings {
	if s, ok := difficultyTable[d]; ok {
		return s
	}
	return difficultyTable[Normal]
}
