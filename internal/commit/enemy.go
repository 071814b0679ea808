package commit

// EnemyStats are the encounter numbers derived from one commit.
type EnemyStats struct {
	MaxHP      int
	Attack     int
	Defense    int
	ExpReward  int
	GoldReward int
}

type classModifier struct {
	hp, atk, def, exp float64
}

var classModifiers = map[string]classModifier{
	"feat":     {hp: 1.0, atk: 1.2, def: 1.0, exp: 1.2},
	"fix":      {hp: 0.8, atk: 1.5, def: 0.8, exp: 1.5},
	"docs":     {hp: 0.5, atk: 0.3, def: 0.5, exp: 0.5},
	"refactor": {hp: 1.2, atk: 0.8, def: 1.5, exp: 1.0},
	"test":     {hp: 0.7, atk: 0.6, def: 1.2, exp: 0.8},
	"chore":    {hp: 0.6, atk: 0.5, def: 0.6, exp: 0.6},
	"merge":    {hp: 2.0, atk: 1.5, def: 1.5, exp: 2.0},
	"revert":   {hp: 1.5, atk: 1.8, def: 1.0, exp: 1.8},
}

// DeriveEnemyStats maps a commit's size and class to enemy numbers. Bigger
// commits make tougher enemies, class modifiers shape the stat spread, and
// every chapter adds 10% on top.
func DeriveEnemyStats(c Commit, chapterIndex int) EnemyStats {
	changes := c.Changes()

	baseHP := changes * 2
	if baseHP < 20 {
		baseHP = 20
	}
	baseAtk := changes / 5
	if baseAtk < 5 {
		baseAtk = 5
	}
	baseDef := changes / 10
	if baseDef < 1 {
		baseDef = 1
	}

	mod, ok := classModifiers[c.Class()]
	if !ok {
		mod = classModifiers["feat"]
	}
	chapterMult := 1 + float64(chapterIndex)*0.1

	return EnemyStats{
		MaxHP:      int(float64(baseHP) * mod.hp * chapterMult),
		Attack:     int(float64(baseAtk) * mod.atk * chapterMult),
		Defense:    int(float64(baseDef) * mod.def * chapterMult),
		ExpReward:  int(20 * mod.exp * chapterMult),
		GoldReward: int(10 * mod.exp * chapterMult),
	}
}
