// Package engine is the deterministic simulation core. Apply drives a
// run-level state machine (exploration, combat, chapter transitions, two
// terminal states) and emits an ordered event log per call. Given the same
// state, action, and RNG cursor, Apply always produces the same result;
// its only side effects are mutating the passed state and advancing the
// RNG.
package engine

import (
	"fmt"

	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/effect"
	"github.com/louisbranch/gitdungeon/internal/random"
)

// ActionType groups actions by domain.
type ActionType string

const (
	ActionCombat  ActionType = "combat"
	ActionChapter ActionType = "chapter"
	ActionEvent   ActionType = "event"
	ActionShop    ActionType = "shop"
)

// Action is one request driving a single Apply call. Payload fields are
// read only by the handlers that need them.
type Action struct {
	Type ActionType
	Name string

	// Enemy overrides the default encounter for start_combat.
	Enemy *Enemy
	// Chapter is the payload for start_chapter.
	Chapter *Chapter
	// EventID and ChoiceID select the branch for resolve_event.
	EventID  string
	ChoiceID string
}

// Engine applies actions to game state. One engine instance serves one run;
// it is not safe for concurrent Apply calls against the same state.
type Engine struct {
	rng     *random.RNG
	content *content.Registry
	combat  combatRules
}

// New returns an engine drawing randomness from rng and definitions from reg.
func New(rng *random.RNG, reg *content.Registry) *Engine {
	return &Engine{rng: rng, content: reg, combat: combatRules{rng: rng}}
}

// Apply runs one action against state and returns the events it produced.
// Unrecognized actions never fail the run: the state comes back untouched
// alongside a single error event. Terminal states accept no actions at all.
func (e *Engine) Apply(state *GameState, action Action) []Event {
	if state.Phase.Terminal() {
		return []Event{errorEvent(fmt.Sprintf("run is over: %s", state.Phase))}
	}

	switch action.Type {
	case ActionCombat:
		return e.applyCombat(state, action)
	case ActionChapter:
		return e.applyChapter(state, action)
	case ActionEvent:
		return e.applyEvent(state, action)
	case ActionShop:
		return e.applyShop(state, action)
	default:
		return []Event{errorEvent(fmt.Sprintf("unknown action type: %s", action.Type))}
	}
}

func (e *Engine) applyCombat(state *GameState, action Action) []Event {
	switch action.Name {
	case "start_combat":
		return e.startCombat(state, action.Enemy)
	case "attack":
		return e.attack(state)
	case "defend":
		return e.defend(state)
	case "skill":
		return e.skill(state)
	case "escape":
		return e.escape(state)
	default:
		return []Event{errorEvent(fmt.Sprintf("unknown combat action: %s", action.Name))}
	}
}

// defaultEnemy is the fallback encounter when start_combat carries no
// payload.
func defaultEnemy() *Enemy {
	return &Enemy{
		ID:         "enemy",
		Name:       "Stray Bug",
		Class:      "fix",
		Tier:       content.EnemyTierNormal,
		CurrentHP:  20,
		MaxHP:      20,
		Attack:     5,
		Defense:    2,
		Evasion:    5,
		ExpReward:  25,
		GoldReward: 10,
	}
}

func (e *Engine) startCombat(state *GameState, enemy *Enemy) []Event {
	if state.Phase == PhaseCombat {
		return []Event{errorEvent("already in combat")}
	}
	if enemy == nil {
		enemy = defaultEnemy()
	}

	state.Phase = PhaseCombat
	state.Enemy = enemy
	state.Turn = 1
	state.Player.Energy = state.Player.MaxEnergy
	state.Player.Block = 0

	events := []Event{newEvent(EventBattleStarted, map[string]any{
		"enemy_id":   enemy.ID,
		"enemy_name": enemy.Name,
		"hp":         enemy.CurrentHP,
		"max_hp":     enemy.MaxHP,
	})}
	if enemy.Tier == content.EnemyTierBoss {
		events = append(events, newEvent(EventBossSpawned, map[string]any{
			"enemy_id": enemy.ID,
		}))
	}
	return events
}

func (e *Engine) attack(state *GameState) []Event {
	if state.Phase != PhaseCombat || state.Enemy == nil {
		return []Event{errorEvent("not in combat")}
	}
	events := e.playerStrike(state, baseAttackDmg, state.Player.Stats.CritChance, critMultiplier)
	if state.Enemy.Alive() {
		events = append(events, e.enemyStrike(state)...)
	}
	return events
}

func (e *Engine) skill(state *GameState) []Event {
	if state.Phase != PhaseCombat || state.Enemy == nil {
		return []Event{errorEvent("not in combat")}
	}
	if state.Player.Energy < 1 {
		return []Event{errorEvent("not enough energy")}
	}
	state.Player.Energy--
	events := e.playerStrike(state, baseAttackDmg*2, state.Player.Stats.CritChance, skillMultiplier)
	if state.Enemy.Alive() {
		events = append(events, e.enemyStrike(state)...)
	}
	return events
}

// playerStrike resolves one player-sourced hit. Evasion is rolled before
// the critical roll and the two never combine on a single attack.
func (e *Engine) playerStrike(state *GameState, base int, critChance, multiplier float64) []Event {
	player := &state.Player
	enemy := state.Enemy

	if e.combat.rollEvade(player.Stats.Accuracy, enemy.Evasion) {
		return []Event{newEvent(EventEvaded, map[string]any{
			"target": enemy.ID,
			"source": "player",
		})}
	}

	critical := e.combat.rollCritical(critChance)
	damage := base + player.Stats.Attack - enemy.Defense
	if critical {
		damage = int(float64(damage) * multiplier)
	}
	if damage < 1 {
		damage = 1
	}

	hpLoss, remaining := absorb(damage, enemy.Block)
	enemy.Block = remaining
	enemy.CurrentHP -= hpLoss
	if enemy.CurrentHP < 0 {
		enemy.CurrentHP = 0
	}

	var events []Event
	if critical {
		events = append(events, newEvent(EventCriticalHit, map[string]any{
			"source":     "player",
			"multiplier": multiplier,
		}))
	}
	events = append(events, newEvent(EventDamageDealt, map[string]any{
		"source":      "player",
		"target":      enemy.ID,
		"amount":      damage,
		"is_critical": critical,
	}))

	if !enemy.Alive() {
		events = append(events, e.enemyDefeated(state)...)
	}
	return events
}

// enemyStrike resolves the enemy's counterattack for the turn.
func (e *Engine) enemyStrike(state *GameState) []Event {
	player := &state.Player
	enemy := state.Enemy
	state.Turn++

	if e.combat.rollEvade(enemyAccuracy, player.Stats.Evasion) {
		return []Event{newEvent(EventEvaded, map[string]any{
			"target": "player",
			"source": enemy.ID,
		})}
	}

	damage := e.combat.calculateDamage(baseAttackDmg, enemy.Attack, player.Stats.Defense, false)
	hpLoss, remaining := absorb(damage, player.Block)
	player.Block = remaining
	player.Stats.CurrentHP -= hpLoss
	if player.Stats.CurrentHP < 0 {
		player.Stats.CurrentHP = 0
	}

	events := []Event{newEvent(EventDamageDealt, map[string]any{
		"source":      enemy.ID,
		"target":      "player",
		"amount":      damage,
		"is_critical": false,
	})}

	if player.Stats.CurrentHP <= 0 {
		state.Phase = PhaseGameOver
		events = append(events, newEvent(EventGameEnded, map[string]any{
			"result": "defeat",
		}))
	}
	return events
}

func (e *Engine) defend(state *GameState) []Event {
	if state.Phase != PhaseCombat {
		return []Event{errorEvent("not in combat")}
	}
	state.Player.Block += defendBlock
	events := []Event{newEvent(EventStatusApplied, map[string]any{
		"target": "player",
		"status": "block",
		"value":  defendBlock,
	})}
	if state.Enemy.Alive() {
		events = append(events, e.enemyStrike(state)...)
	}
	return events
}

func (e *Engine) escape(state *GameState) []Event {
	if state.Phase != PhaseCombat {
		return []Event{errorEvent("not in combat")}
	}
	if !e.combat.rollEscape(escapeChance) {
		return []Event{errorEvent("escape failed")}
	}
	state.Phase = PhaseExploration
	state.Enemy = nil
	return []Event{newEvent(EventBattleEnded, map[string]any{"result": "escaped"})}
}

// enemyDefeated pays out rewards and returns to exploration. Level-ups
// cascade within the same call, one event per level gained.
func (e *Engine) enemyDefeated(state *GameState) []Event {
	enemy := state.Enemy

	events := []Event{newEvent(EventEnemyDefeated, map[string]any{
		"enemy_id":    enemy.ID,
		"enemy_name":  enemy.Name,
		"exp_reward":  enemy.ExpReward,
		"gold_reward": enemy.GoldReward,
	})}
	events = append(events, e.payoutRewards(state, enemy.ExpReward, enemy.GoldReward, "enemy_defeated")...)
	events = append(events, newEvent(EventBattleEnded, map[string]any{"result": "victory"}))

	if state.Chapter != nil {
		state.Chapter.EnemiesDefeated++
	}
	state.Phase = PhaseExploration
	state.Enemy = nil
	return events
}

func (e *Engine) payoutRewards(state *GameState, exp, gold int, reason string) []Event {
	player := &state.Player

	var events []Event
	if exp > 0 {
		levels := gainExperience(player, exp)
		events = append(events, newEvent(EventExpGained, map[string]any{
			"amount":      exp,
			"reason":      reason,
			"total_exp":   player.Experience,
			"exp_to_next": player.ExpToNext,
		}))
		for _, level := range levels {
			gains := gainsForLevel(level)
			events = append(events, newEvent(EventLevelUp, map[string]any{
				"new_level": level,
				"old_level": level - 1,
				"hp_gain":   gains.HP,
				"atk_gain":  gains.Attack,
				"def_gain":  gains.Defense,
			}))
		}
	}
	if gold > 0 {
		player.Gold += gold
		events = append(events, newEvent(EventGoldGained, map[string]any{
			"amount": gold,
			"reason": reason,
		}))
	}
	return events
}

func (e *Engine) applyChapter(state *GameState, action Action) []Event {
	switch action.Name {
	case "start_chapter":
		return e.startChapter(state, action.Chapter)
	case "advance_node":
		return e.advanceNode(state)
	case "complete_chapter":
		return e.completeChapter(state)
	default:
		return []Event{errorEvent(fmt.Sprintf("unknown chapter action: %s", action.Name))}
	}
}

func (e *Engine) startChapter(state *GameState, chapter *Chapter) []Event {
	if state.Phase == PhaseCombat {
		return []Event{errorEvent("cannot start a chapter mid-combat")}
	}
	if chapter == nil {
		return []Event{errorEvent("start_chapter requires a chapter payload")}
	}
	state.Chapter = chapter
	state.Phase = PhaseExploration
	return []Event{newEvent(EventChapterStarted, map[string]any{
		"chapter_id":    chapter.ID,
		"chapter_index": chapter.Index,
		"chapter_type":  string(chapter.Type),
		"node_count":    len(chapter.Nodes),
	})}
}

func (e *Engine) advanceNode(state *GameState) []Event {
	if state.Phase != PhaseExploration {
		return []Event{errorEvent("can only advance while exploring")}
	}
	if state.Chapter == nil {
		return []Event{errorEvent("no active chapter")}
	}
	if state.Chapter.NodeIndex >= len(state.Chapter.Nodes)-1 {
		return []Event{errorEvent("no more nodes in chapter")}
	}
	state.Chapter.NodeIndex++
	return nil
}

func (e *Engine) completeChapter(state *GameState) []Event {
	if state.Phase == PhaseCombat {
		return []Event{errorEvent("cannot complete a chapter mid-combat")}
	}
	chapter := state.Chapter
	if chapter == nil {
		return []Event{errorEvent("no active chapter")}
	}

	gold := chapterGoldReward(chapter.Index)
	exp := chapterExpReward(chapter.Index)

	events := []Event{newEvent(EventChapterCompleted, map[string]any{
		"chapter_id":       chapter.ID,
		"chapter_index":    chapter.Index,
		"enemies_defeated": chapter.EnemiesDefeated,
		"gold_reward":      gold,
		"exp_reward":       exp,
	})}
	events = append(events, e.payoutRewards(state, exp, gold, "chapter_completed")...)

	state.ChaptersCompleted = append(state.ChaptersCompleted, chapter.ID)
	state.Chapter = nil

	if state.TotalChapters > 0 && len(state.ChaptersCompleted) >= state.TotalChapters {
		state.Phase = PhaseRunComplete
		events = append(events, newEvent(EventGameEnded, map[string]any{
			"result": "victory",
		}))
		return events
	}
	state.Phase = PhaseChapterComplete
	return events
}

func (e *Engine) applyEvent(state *GameState, action Action) []Event {
	if action.Name != "resolve_event" {
		return []Event{errorEvent(fmt.Sprintf("unknown event action: %s", action.Name))}
	}
	if state.Phase != PhaseExploration {
		return []Event{errorEvent("events resolve only while exploring")}
	}

	def, ok := e.content.Event(action.EventID)
	if !ok {
		return []Event{errorEvent(fmt.Sprintf("unknown event: %s", action.EventID))}
	}
	var choice *content.EventChoice
	for i := range def.Choices {
		if def.Choices[i].ID == action.ChoiceID {
			choice = &def.Choices[i]
			break
		}
	}
	if choice == nil {
		return []Event{errorEvent(fmt.Sprintf("event %s has no choice %s", action.EventID, action.ChoiceID))}
	}

	player := &state.Player
	effState := effect.State{
		Gold:      player.Gold,
		CurrentHP: player.Stats.CurrentHP,
		MaxHP:     player.Stats.MaxHP,
		Deck:      player.Deck,
		Relics:    player.Relics,
		RouteBias: player.RouteBias,
		Flags:     player.Flags,
	}
	res := effect.Apply(&effState, choice.Effects, e.rng)
	player.Gold = effState.Gold
	player.Stats.CurrentHP = effState.CurrentHP
	player.Deck = effState.Deck
	player.Relics = effState.Relics
	player.RouteBias = effState.RouteBias
	player.Flags = effState.Flags

	events := []Event{newEvent(EventResolved, map[string]any{
		"event_id":  action.EventID,
		"choice_id": action.ChoiceID,
		"applied":   res.Applied,
		"gold":      res.Gold,
		"hp":        res.HP,
	})}

	if player.Stats.CurrentHP <= 0 {
		state.Phase = PhaseGameOver
		events = append(events, newEvent(EventGameEnded, map[string]any{
			"result": "defeat",
		}))
	}
	return events
}

func (e *Engine) applyShop(state *GameState, action Action) []Event {
	if action.Name != "enter_shop" {
		return []Event{errorEvent(fmt.Sprintf("unknown shop action: %s", action.Name))}
	}
	if state.Phase != PhaseExploration {
		return []Event{errorEvent("shops open only while exploring")}
	}
	return []Event{newEvent(EventShopEntered, map[string]any{"gold": state.Player.Gold})}
}
