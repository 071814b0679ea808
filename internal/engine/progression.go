package engine

import "math"

const (
	baseExpToLevel  = 100
	levelExpGrowth  = 1.5
	hpPerLevel      = 20
	atkPerLevel     = 2
	defPerLevel     = 1
	baseChapterGold = 50
	chapterGoldRate = 1.2
	baseChapterExp  = 200
	chapterExpRate  = 1.3
)

// levelGains are the stat deltas of one level-up.
type levelGains struct {
	HP      int
	Attack  int
	Defense int
}

// gainsForLevel computes the deltas for reaching newLevel. Attack gets an
// extra point every five levels.
func gainsForLevel(newLevel int) levelGains {
	return levelGains{
		HP:      hpPerLevel,
		Attack:  atkPerLevel + newLevel/5,
		Defense: defPerLevel,
	}
}

// gainExperience adds exp and loops level-ups until the remainder is below
// the next threshold, growing the threshold each level. Returns the levels
// reached, in order, or nil when no threshold was crossed.
func gainExperience(p *Player, amount int) []int {
	p.Experience += amount
	var levels []int
	for p.Experience >= p.ExpToNext {
		p.Experience -= p.ExpToNext
		p.ExpToNext = int(float64(p.ExpToNext) * levelExpGrowth)
		p.Level++
		levels = append(levels, p.Level)

		gains := gainsForLevel(p.Level)
		p.Stats.MaxHP += gains.HP
		p.Stats.CurrentHP += gains.HP
		p.Stats.Attack += gains.Attack
		p.Stats.Defense += gains.Defense
	}
	return levels
}

// chapterGoldReward grows geometrically with the chapter index.
func chapterGoldReward(chapterIndex int) int {
	return int(baseChapterGold * math.Pow(chapterGoldRate, float64(chapterIndex)))
}

// chapterExpReward grows geometrically with the chapter index.
func chapterExpReward(chapterIndex int) int {
	return int(baseChapterExp * math.Pow(chapterExpRate, float64(chapterIndex)))
}
