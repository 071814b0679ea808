package difficulty

import (
	"sort"
	"strings"

	"github.com/louisbranch/gitdungeon/internal/platform/errors"
)

// Mutator is a tuning profile layered on top of the base difficulty params.
type Mutator struct {
	ID                 string
	EnemyHPMultiplier  float64
	EnemyAtkMultiplier float64
	ExpMultiplier      float64
	GoldMultiplier     float64
	Summary            string
}

var mutators = map[string]Mutator{
	"none": {
		ID:                 "none",
		EnemyHPMultiplier:  1.0,
		EnemyAtkMultiplier: 1.0,
		ExpMultiplier:      1.0,
		GoldMultiplier:     1.0,
		Summary:            "Standard rules",
	},
	"hard": {
		ID:                 "hard",
		EnemyHPMultiplier:  1.25,
		EnemyAtkMultiplier: 1.2,
		ExpMultiplier:      0.9,
		GoldMultiplier:     0.9,
		Summary:            "Enemies scale up, rewards scale down",
	},
}

// GetMutator looks up a mutator profile by id.
func GetMutator(id string) (Mutator, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if key == "" {
		key = "none"
	}
	m, ok := mutators[key]
	if !ok {
		supported := make([]string, 0, len(mutators))
		for name := range mutators {
			supported = append(supported, name)
		}
		sort.Strings(supported)
		return Mutator{}, errors.WithMetadata(errors.CodeDifficultyUnknownMutator,
			"unknown mutator", map[string]string{
				"mutator":   id,
				"supported": strings.Join(supported, ", "),
			})
	}
	return m, nil
}

// ApplyEnemyMutator scales enemy stats with a floor of 1.
func ApplyEnemyMutator(baseHP, baseAtk int, m Mutator) (hp, atk int) {
	hp = int(float64(baseHP) * m.EnemyHPMultiplier)
	atk = int(float64(baseAtk) * m.EnemyAtkMultiplier)
	if hp < 1 {
		hp = 1
	}
	if atk < 1 {
		atk = 1
	}
	return hp, atk
}

// ApplyRewardMutator scales rewards with a floor of 0.
func ApplyRewardMutator(baseExp, baseGold int, m Mutator) (exp, gold int) {
	exp = int(float64(baseExp) * m.ExpMultiplier)
	gold = int(float64(baseGold) * m.GoldMultiplier)
	if exp < 0 {
		exp = 0
	}
	if gold < 0 {
		gold = 0
	}
	return exp, gold
}
