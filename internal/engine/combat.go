package engine

import "github.com/louisbranch/gitdungeon/internal/random"

const (
	critMultiplier  = 1.5
	skillMultiplier = 2.0
	baseAttackDmg   = 10
	defendBlock     = 5
	escapeChance    = 70.0
	enemyAccuracy   = 95.0
)

// combatRules holds the pure combat math. Every roll draws from the run
// RNG, so the contract on call order applies here too: evade first, then
// crit, and only for attacks that were not evaded.
type combatRules struct {
	rng *random.RNG
}

// calculateDamage applies the standard formula with a floor of 1.
func (r combatRules) calculateDamage(base, attack, defense int, critical bool) int {
	damage := base + attack - defense
	if critical {
		damage = int(float64(damage) * critMultiplier)
	}
	if damage < 1 {
		damage = 1
	}
	return damage
}

func (r combatRules) rollCritical(chance float64) bool {
	return r.rng.Chance(chance)
}

// rollEvade checks the defender's dodge. Hit chance is accuracy minus
// evasion, floored at zero.
func (r combatRules) rollEvade(accuracy, evasion float64) bool {
	hitChance := accuracy - evasion
	if hitChance < 0 {
		hitChance = 0
	}
	return !r.rng.Chance(hitChance)
}

func (r combatRules) rollEscape(chance float64) bool {
	return r.rng.Chance(chance)
}

// absorb runs damage through a block pool, returning the HP loss and the
// remaining block.
func absorb(damage, block int) (hpLoss, remaining int) {
	if block >= damage {
		return 0, block - damage
	}
	return damage - block, 0
}
