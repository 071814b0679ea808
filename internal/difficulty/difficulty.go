// Package difficulty maps (chapter index, difficulty level) to pure scaling
// parameters for enemies, rewards, and spawn probabilities.
//
// Every function here is a pure function of its inputs: the same chapter and
// level always yield the same parameters, so difficulty never perturbs the
// RNG stream.
package difficulty

import (
	"strings"

	"github.com/louisbranch/gitdungeon/internal/platform/errors"
	"github.com/louisbranch/gitdungeon/internal/random"
)

// Level selects a difficulty preset.
type Level string

const (
	// LevelNormal is the default difficulty.
	LevelNormal Level = "normal"
	// LevelHard scales enemies up and tightens spawn odds.
	LevelHard Level = "hard"
)

// ParseLevel normalizes a difficulty level string.
func ParseLevel(value string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(value))) {
	case LevelNormal, "":
		return LevelNormal, nil
	case LevelHard:
		return LevelHard, nil
	}
	return "", errors.WithMetadata(errors.CodeDifficultyUnknownLevel,
		"unknown difficulty level", map[string]string{"level": value})
}

// EnemyScaling holds multipliers applied to enemy stats.
type EnemyScaling struct {
	HPMultiplier     float64
	DamageMultiplier float64
}

// RewardScaling holds multipliers applied to run rewards.
type RewardScaling struct {
	GoldMultiplier  float64
	RelicDropChance float64
}

// EventScaling holds multipliers applied to event risk/reward magnitudes.
type EventScaling struct {
	RiskMultiplier   float64
	RewardMultiplier float64
}

// Params bundles every scaling knob for one (chapter, level) pair.
type Params struct {
	ChapterIndex int
	Level        Level

	Enemy  EnemyScaling
	Reward RewardScaling
	Event  EventScaling

	EliteChance float64
	BossChance  float64

	NodeCount int
	EliteMax  int
	BossCount int
}

// Per-level base values. The hard bases are strictly greater than the normal
// bases so Hard dominates Normal at every chapter index.
const (
	normalBaseEnemyHP     = 1.0
	normalBaseEnemyDamage = 1.0
	normalBaseEliteChance = 0.15
	normalBaseBossChance  = 0.05
	normalBaseRelicDrop   = 0.10

	hardBaseEnemyHP     = 1.3
	hardBaseEnemyDamage = 1.2
	hardBaseEliteChance = 0.25
	hardBaseBossChance  = 0.08
	hardBaseRelicDrop   = 0.15
)

// Per-chapter additive steps.
const (
	hpStep     = 0.15
	damageStep = 0.10
	goldStep   = 0.10
	relicStep  = 0.10
	eliteStep  = 0.10
	bossStep   = 0.20
	eventStep  = 0.10
)

// Get returns difficulty parameters for a chapter and level.
func Get(chapterIndex int, level Level) Params {
	if chapterIndex < 0 {
		chapterIndex = 0
	}

	baseHP := normalBaseEnemyHP
	baseDamage := normalBaseEnemyDamage
	baseElite := normalBaseEliteChance
	baseBoss := normalBaseBossChance
	baseRelic := normalBaseRelicDrop
	if level == LevelHard {
		baseHP = hardBaseEnemyHP
		baseDamage = hardBaseEnemyDamage
		baseElite = hardBaseEliteChance
		baseBoss = hardBaseBossChance
		baseRelic = hardBaseRelicDrop
	}

	chapter := float64(chapterIndex)
	bossCount := 1
	if chapterIndex >= 2 {
		bossCount = 2
	}

	return Params{
		ChapterIndex: chapterIndex,
		Level:        level,
		Enemy: EnemyScaling{
			HPMultiplier:     baseHP * (1 + chapter*hpStep),
			DamageMultiplier: baseDamage * (1 + chapter*damageStep),
		},
		Reward: RewardScaling{
			GoldMultiplier:  1 + chapter*goldStep,
			RelicDropChance: baseRelic * (1 + chapter*relicStep),
		},
		Event: EventScaling{
			RiskMultiplier:   1 + chapter*eventStep,
			RewardMultiplier: 1 + chapter*eventStep,
		},
		EliteChance: baseElite * (1 + chapter*eliteStep),
		BossChance:  baseBoss * (1 + chapter*bossStep),
		NodeCount:   10 + chapterIndex,
		EliteMax:    2 + chapterIndex/2,
		BossCount:   bossCount,
	}
}

// ApplyEnemyScaling scales base enemy stats, truncating to int.
func ApplyEnemyScaling(baseHP, baseDamage int, params Params) (hp, damage int) {
	hp = int(float64(baseHP) * params.Enemy.HPMultiplier)
	damage = int(float64(baseDamage) * params.Enemy.DamageMultiplier)
	return hp, damage
}

// ApplyRewardScaling scales a base gold amount, truncating to int.
func ApplyRewardScaling(baseGold int, params Params) int {
	return int(float64(baseGold) * params.Reward.GoldMultiplier)
}

// ShouldSpawnElite rolls the elite spawn chance on the provided RNG.
func ShouldSpawnElite(rng *random.RNG, params Params) bool {
	return rng.Float64() < params.EliteChance
}

// ShouldSpawnBoss rolls the boss spawn chance on the provided RNG.
func ShouldSpawnBoss(rng *random.RNG, params Params) bool {
	return rng.Float64() < params.BossChance
}
