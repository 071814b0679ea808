package engine

import (
	"fmt"

	"github.com/louisbranch/gitdungeon/internal/commit"
	"github.com/louisbranch/gitdungeon/internal/content"
)

const (
	bossChapterScaleStep = 0.15
	bossBaseExpReward    = 150
	bossBaseGoldReward   = 100
)

// bossByChapterType picks which boss guards a chapter's final node.
// Chapter types without an entry fall back to infinite_loop.
var bossByChapterType = map[content.ChapterType]string{
	content.ChapterIntegration: "merge_conflict",
	content.ChapterLegacy:      "legacy_monolith",
	content.ChapterFix:         "production_bug",
	content.ChapterFeature:     "infinite_loop",
}

// EnemyFromCommit builds a combat encounter from one commit record. The
// commit's class selects a matching enemy definition for identity and
// evasion, while the numbers come from the commit itself.
func EnemyFromCommit(reg *content.Registry, c commit.Commit, chapterIndex int) *Enemy {
	stats := commit.DeriveEnemyStats(c, chapterIndex)

	def, ok := enemyDefForClass(reg, c.Class())
	if !ok {
		enemy := defaultEnemy()
		enemy.ID = fmt.Sprintf("enemy_%s", c.ShortHash)
		enemy.CurrentHP = stats.MaxHP
		enemy.MaxHP = stats.MaxHP
		enemy.Attack = stats.Attack
		enemy.Defense = stats.Defense
		enemy.ExpReward = stats.ExpReward
		enemy.GoldReward = stats.GoldReward
		return enemy
	}

	return &Enemy{
		ID:         fmt.Sprintf("%s_%s", def.ID, c.ShortHash),
		Name:       def.NameKey,
		Class:      def.Class,
		Tier:       def.Tier,
		CurrentHP:  stats.MaxHP,
		MaxHP:      stats.MaxHP,
		Attack:     stats.Attack,
		Defense:    stats.Defense,
		Evasion:    5,
		ExpReward:  scaleReward(stats.ExpReward, def.ExpMultiplier),
		GoldReward: scaleReward(stats.GoldReward, def.GoldMultiplier),
	}
}

// EnemyFromDefinition builds an encounter straight from a content
// definition, scaling HP and attack 15% per chapter index. Bosses get
// boosted base rewards.
func EnemyFromDefinition(def content.Enemy, chapterIndex int) *Enemy {
	scale := 1.0 + float64(chapterIndex)*bossChapterScaleStep
	hp := int(float64(def.BaseHP) * scale)

	baseExp, baseGold := 20.0, 10.0
	if def.Tier == content.EnemyTierBoss {
		baseExp, baseGold = bossBaseExpReward, bossBaseGoldReward
	}
	return &Enemy{
		ID:         def.ID,
		Name:       def.NameKey,
		Class:      def.Class,
		Tier:       def.Tier,
		CurrentHP:  hp,
		MaxHP:      hp,
		Attack:     int(float64(def.BaseDamage) * scale),
		Defense:    def.BaseBlock,
		Evasion:    5,
		ExpReward:  scaleReward(int(baseExp*scale), def.ExpMultiplier),
		GoldReward: scaleReward(int(baseGold*scale), def.GoldMultiplier),
	}
}

// BossForChapter builds the boss encounter for a chapter's final node.
func BossForChapter(reg *content.Registry, chapterType content.ChapterType, chapterIndex int) *Enemy {
	bossID, ok := bossByChapterType[chapterType]
	if !ok {
		bossID = "infinite_loop"
	}
	def, ok := reg.Enemy(bossID)
	if !ok {
		return nil
	}
	return EnemyFromDefinition(def, chapterIndex)
}

func enemyDefForClass(reg *content.Registry, class string) (content.Enemy, bool) {
	candidates := reg.EnemiesByClass(class)
	for _, def := range candidates {
		if def.Tier == content.EnemyTierNormal {
			return def, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return content.Enemy{}, false
}

func scaleReward(base int, multiplier float64) int {
	if multiplier <= 0 {
		return base
	}
	return int(float64(base) * multiplier)
}
