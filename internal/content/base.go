package content

// NewBaseBuilder returns a builder preloaded with the built-in content set.
// Packs overlay on top of this baseline; the ids registered here are the
// ones base characters, events, and chapter generation refer to, so the
// builder is expected to Build without reference errors even when no pack
// is applied.
func NewBaseBuilder() (*Builder, error) {
	b := NewBuilder()
	for _, c := range baseCards() {
		if err := b.AddCard(c); err != nil {
			return nil, err
		}
	}
	for _, r := range baseRelics() {
		if err := b.AddRelic(r); err != nil {
			return nil, err
		}
	}
	for _, e := range baseEvents() {
		if err := b.AddEvent(e); err != nil {
			return nil, err
		}
	}
	for _, e := range baseEnemies() {
		if err := b.AddEnemy(e); err != nil {
			return nil, err
		}
	}
	for _, c := range baseCharacters() {
		if err := b.AddCharacter(c); err != nil {
			return nil, err
		}
	}
	for _, cfg := range baseChapterConfigs() {
		if err := b.SetChapterConfig(cfg); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func baseCards() []Card {
	return []Card{
		{
			ID: "strike", NameKey: "card.strike.name", DescKey: "card.strike.desc",
			Type: CardTypeAttack, Cost: 1, Rarity: RarityCommon,
			Effects: []CardEffect{{Type: "damage", Value: 6, Target: "enemy"}},
		},
		{
			ID: "defend", NameKey: "card.defend.name", DescKey: "card.defend.desc",
			Type: CardTypeSkill, Cost: 1, Rarity: RarityCommon,
			Effects: []CardEffect{{Type: "block", Value: 5, Target: "self"}},
		},
		{
			ID: "debug_strike", NameKey: "card.debug_strike.name", DescKey: "card.debug_strike.desc",
			Type: CardTypeAttack, Cost: 1, Rarity: RarityCommon,
			Effects: []CardEffect{
				{Type: "damage", Value: 8, Target: "enemy"},
				{Type: "status", Status: "vulnerable", StatusValue: 1, Target: "enemy"},
			},
			Tags: []string{"debug"},
		},
		{
			ID: "stack_trace", NameKey: "card.stack_trace.name", DescKey: "card.stack_trace.desc",
			Type: CardTypeSkill, Cost: 0, Rarity: RarityCommon,
			Effects: []CardEffect{{Type: "draw", Value: 2, Target: "self"}},
			Tags:    []string{"debug"},
		},
		{
			ID: "console_log", NameKey: "card.console_log.name", DescKey: "card.console_log.desc",
			Type: CardTypeSkill, Cost: 1, Rarity: RarityCommon,
			Effects: []CardEffect{
				{Type: "status", Status: "burn", StatusValue: 3, Target: "enemy"},
			},
			Tags: []string{"debug", "burn"},
		},
		{
			ID: "test_guard", NameKey: "card.test_guard.name", DescKey: "card.test_guard.desc",
			Type: CardTypeSkill, Cost: 1, Rarity: RarityCommon,
			Effects: []CardEffect{{Type: "block", Value: 8, Target: "self"}},
			Tags:    []string{"test"},
		},
		{
			ID: "integration_wall", NameKey: "card.integration_wall.name", DescKey: "card.integration_wall.desc",
			Type: CardTypeSkill, Cost: 2, Rarity: RarityUncommon,
			Effects: []CardEffect{
				{Type: "block", Value: 12, Target: "self"},
				{Type: "status", Status: "thorns", StatusValue: 2, Target: "self"},
			},
			Tags: []string{"test"},
		},
		{
			ID: "unit_bastion", NameKey: "card.unit_bastion.name", DescKey: "card.unit_bastion.desc",
			Type: CardTypePower, Cost: 2, Rarity: RarityUncommon,
			Effects: []CardEffect{
				{Type: "status", Status: "fortify", StatusValue: 3, Target: "self"},
			},
			Tags: []string{"test"},
		},
		{
			ID: "refactor_strike", NameKey: "card.refactor_strike.name", DescKey: "card.refactor_strike.desc",
			Type: CardTypeAttack, Cost: 2, Rarity: RarityUncommon,
			Effects: []CardEffect{{Type: "damage", Value: 14, Target: "enemy"}},
			Tags:    []string{"refactor"},
		},
		{
			ID: "spaghetti_whip", NameKey: "card.spaghetti_whip.name", DescKey: "card.spaghetti_whip.desc",
			Type: CardTypeAttack, Cost: 1, Rarity: RarityCommon,
			Effects: []CardEffect{{Type: "damage", Value: 4, Target: "all"}},
			Tags:    []string{"refactor"},
		},
		{
			ID: "quick_patch", NameKey: "card.quick_patch.name", DescKey: "card.quick_patch.desc",
			Type: CardTypeSkill, Cost: 0, Rarity: RarityCommon,
			Effects: []CardEffect{{Type: "heal", Value: 3, Target: "self"}},
			Tags:    []string{"refactor"},
		},
	}
}

func baseRelics() []Relic {
	return []Relic{
		{
			ID: "git_init", NameKey: "relic.git_init.name", DescKey: "relic.git_init.desc",
			Tier: RelicTierStarter, Effects: map[string]float64{"starting_gold": 50},
		},
		{
			ID: "debugger", NameKey: "relic.debugger.name", DescKey: "relic.debugger.desc",
			Tier: RelicTierCommon, Effects: map[string]float64{"crit_chance": 5},
		},
		{
			ID: "test_framework", NameKey: "relic.test_framework.name", DescKey: "relic.test_framework.desc",
			Tier: RelicTierCommon, Effects: map[string]float64{"block_bonus": 2},
		},
		{
			ID: "legacy_code", NameKey: "relic.legacy_code.name", DescKey: "relic.legacy_code.desc",
			Tier: RelicTierUncommon, Effects: map[string]float64{"damage_bonus": 3, "max_hp_penalty": 5},
		},
		{
			ID: "ci_pipeline", NameKey: "relic.ci_pipeline.name", DescKey: "relic.ci_pipeline.desc",
			Tier: RelicTierRare, Effects: map[string]float64{"heal_per_chapter": 10},
		},
	}
}

func baseEvents() []Event {
	return []Event{
		{
			ID: "abandoned_branch", NameKey: "event.abandoned_branch.name", DescKey: "event.abandoned_branch.desc",
			RouteTags: []string{"Greed"},
			Choices: []EventChoice{
				{
					ID: "scavenge", TextKey: "event.abandoned_branch.scavenge",
					Effects: []EventEffect{
						{Opcode: "gain_gold", Value: "25"},
						{Opcode: "take_damage", Value: "5"},
					},
				},
				{
					ID: "walk_away", TextKey: "event.abandoned_branch.walk_away",
					Effects: []EventEffect{{Opcode: "heal", Value: "3"}},
				},
			},
		},
		{
			ID: "code_review_shrine", NameKey: "event.code_review_shrine.name", DescKey: "event.code_review_shrine.desc",
			RouteTags: []string{"Safe"},
			Choices: []EventChoice{
				{
					ID: "submit", TextKey: "event.code_review_shrine.submit",
					Effects: []EventEffect{
						{Opcode: "remove_card", Value: "strike"},
						{Opcode: "add_card", Value: "refactor_strike"},
					},
				},
				{
					ID: "offer_gold", TextKey: "event.code_review_shrine.offer_gold",
					Effects: []EventEffect{
						{Opcode: "lose_gold", Value: "30"},
						{Opcode: "add_relic", Value: "debugger"},
					},
				},
			},
		},
		{
			ID: "flaky_test", NameKey: "event.flaky_test.name", DescKey: "event.flaky_test.desc",
			RouteTags: []string{"Risk"},
			Choices: []EventChoice{
				{
					ID: "rerun", TextKey: "event.flaky_test.rerun",
					Effects: []EventEffect{
						{Opcode: "modify_bias", Value: "risk:0.1"},
						{Opcode: "trigger_battle", Value: "bug_swarm"},
					},
				},
				{
					ID: "skip", TextKey: "event.flaky_test.skip",
					Effects: []EventEffect{{Opcode: "set_flag", Value: "skipped_flaky:true"}},
				},
			},
		},
	}
}

func baseEnemies() []Enemy {
	return []Enemy{
		{
			ID: "bug_swarm", NameKey: "enemy.bug_swarm.name", Class: "fix",
			BaseHP: 20, BaseDamage: 5, Tier: EnemyTierNormal,
			GoldMultiplier: 1.0, ExpMultiplier: 1.0,
		},
		{
			ID: "feature_creep", NameKey: "enemy.feature_creep.name", Class: "feat",
			BaseHP: 28, BaseDamage: 6, BaseBlock: 2, Tier: EnemyTierNormal,
			GoldMultiplier: 1.1, ExpMultiplier: 1.1,
		},
		{
			ID: "doc_rot", NameKey: "enemy.doc_rot.name", Class: "docs",
			BaseHP: 14, BaseDamage: 3, Tier: EnemyTierNormal,
			GoldMultiplier: 0.8, ExpMultiplier: 0.8,
		},
		{
			ID: "spaghetti_golem", NameKey: "enemy.spaghetti_golem.name", Class: "refactor",
			BaseHP: 35, BaseDamage: 7, BaseBlock: 4, Tier: EnemyTierElite,
			GoldMultiplier: 1.5, ExpMultiplier: 1.5,
		},
		{
			ID: "race_condition", NameKey: "enemy.race_condition.name", Class: "chore",
			BaseHP: 24, BaseDamage: 9, Tier: EnemyTierElite,
			GoldMultiplier: 1.4, ExpMultiplier: 1.6,
		},
		{
			ID: "merge_conflict", NameKey: "enemy.merge_conflict.name", Class: "merge",
			BaseHP: 500, BaseDamage: 25, BaseBlock: 10, Tier: EnemyTierBoss,
			GoldMultiplier: 2.0, ExpMultiplier: 2.5,
		},
		{
			ID: "infinite_loop", NameKey: "enemy.infinite_loop.name", Class: "feat",
			BaseHP: 400, BaseDamage: 20, BaseBlock: 5, Tier: EnemyTierBoss,
			GoldMultiplier: 2.0, ExpMultiplier: 2.5,
		},
		{
			ID: "production_bug", NameKey: "enemy.production_bug.name", Class: "fix",
			BaseHP: 450, BaseDamage: 30, Tier: EnemyTierBoss,
			GoldMultiplier: 2.2, ExpMultiplier: 2.5,
		},
		{
			ID: "legacy_monolith", NameKey: "enemy.legacy_monolith.name", Class: "legacy",
			BaseHP: 600, BaseDamage: 18, BaseBlock: 15, Tier: EnemyTierBoss,
			GoldMultiplier: 2.5, ExpMultiplier: 3.0,
		},
	}
}

func baseCharacters() []Character {
	return []Character{
		{
			ID: "debug_beatdown", NameKey: "character.debug_beatdown.name", DescKey: "character.debug_beatdown.desc",
			StarterCards:  []string{"debug_strike", "stack_trace", "console_log", "strike", "strike", "defend"},
			StarterRelics: []string{"git_init", "debugger"},
			MaxHP:         100, Energy: 3,
		},
		{
			ID: "test_shrine", NameKey: "character.test_shrine.name", DescKey: "character.test_shrine.desc",
			StarterCards:  []string{"test_guard", "integration_wall", "unit_bastion", "defend", "defend", "strike"},
			StarterRelics: []string{"git_init", "test_framework"},
			MaxHP:         110, Energy: 3,
		},
		{
			ID: "refactor_risk", NameKey: "character.refactor_risk.name", DescKey: "character.refactor_risk.desc",
			StarterCards:  []string{"refactor_strike", "spaghetti_whip", "quick_patch", "strike", "strike", "defend"},
			StarterRelics: []string{"git_init", "legacy_code"},
			MaxHP:         90, Energy: 3,
		},
	}
}

func baseChapterConfigs() []ChapterConfig {
	return []ChapterConfig{
		{
			Type: ChapterInitial, NameKey: "chapter.initial.name", DescKey: "chapter.initial.desc",
			MinCommits: 1, MaxCommits: 3, BossChance: 0, ShopEnabled: false,
			GoldBonus: 0.8, ExpBonus: 0.8, EnemyHPMultiplier: 0.6, EnemyAtkMultiplier: 0.6,
		},
		{
			Type: ChapterFeature, NameKey: "chapter.feature.name", DescKey: "chapter.feature.desc",
			MinCommits: 5, MaxCommits: 30, BossChance: 0.3, ShopEnabled: true,
			GoldBonus: 1.0, ExpBonus: 1.0, EnemyHPMultiplier: 1.0, EnemyAtkMultiplier: 1.0,
		},
		{
			Type: ChapterFix, NameKey: "chapter.fix.name", DescKey: "chapter.fix.desc",
			MinCommits: 3, MaxCommits: 25, BossChance: 0.4, ShopEnabled: true,
			GoldBonus: 1.2, ExpBonus: 1.3, EnemyHPMultiplier: 1.1, EnemyAtkMultiplier: 1.4,
		},
		{
			Type: ChapterIntegration, NameKey: "chapter.integration.name", DescKey: "chapter.integration.desc",
			MinCommits: 1, MaxCommits: 10, BossChance: 1.0, ShopEnabled: true,
			GoldBonus: 2.0, ExpBonus: 2.0, EnemyHPMultiplier: 2.0, EnemyAtkMultiplier: 1.5,
		},
		{
			Type: ChapterLegacy, NameKey: "chapter.legacy.name", DescKey: "chapter.legacy.desc",
			MinCommits: 1, MaxCommits: 15, BossChance: 0.3, ShopEnabled: true,
			GoldBonus: 1.5, ExpBonus: 1.5, EnemyHPMultiplier: 1.3, EnemyAtkMultiplier: 1.2,
		},
	}
}
