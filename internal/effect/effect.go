// Package effect interprets event choice instruction lists against player
// state. Instructions apply strictly in list order; an unknown opcode is
// recorded but never fails the batch, so packs shipping newer opcodes stay
// loadable on older engines.
package effect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/random"
)

// Opcode is the closed set of effect instructions.
type Opcode string

const (
	OpGainGold      Opcode = "gain_gold"
	OpLoseGold      Opcode = "lose_gold"
	OpHeal          Opcode = "heal"
	OpTakeDamage    Opcode = "take_damage"
	OpAddCard       Opcode = "add_card"
	OpRemoveCard    Opcode = "remove_card"
	OpAddRelic      Opcode = "add_relic"
	OpModifyBias    Opcode = "modify_bias"
	OpSetFlag       Opcode = "set_flag"
	OpTriggerBattle Opcode = "trigger_battle"
	// OpUnknown is the catch-all for opcodes this engine does not know.
	OpUnknown Opcode = "unknown"
)

// ParseOpcode maps a content opcode string to its variant. Unrecognized
// names parse to OpUnknown rather than erroring.
func ParseOpcode(s string) Opcode {
	switch op := Opcode(s); op {
	case OpGainGold, OpLoseGold, OpHeal, OpTakeDamage,
		OpAddCard, OpRemoveCard, OpAddRelic,
		OpModifyBias, OpSetFlag, OpTriggerBattle:
		return op
	default:
		return OpUnknown
	}
}

// FlagTriggerBattle is the flag key set by the trigger_battle opcode. The
// engine checks it after resolving an event node to queue the forced fight.
const FlagTriggerBattle = "trigger_battle"

// State is the mutable slice of player state the interpreter operates on.
// Callers copy their player fields in, apply, and copy the results back.
type State struct {
	Gold      int
	CurrentHP int
	MaxHP     int
	Deck      []string
	Relics    []string
	RouteBias map[string]float64
	Flags     map[string]string
}

// Result reports one Apply batch. Applied holds one string per instruction
// in execution order, naming the opcode and the operand as requested, not
// as clamped: losing 50 gold from a purse of 20 still records
// "lose_gold:50".
type Result struct {
	Success bool
	Applied []string
	Gold    int
	HP      int
}

// Apply executes effects against state in list order. Gold never drops
// below zero, HP clamps to [0, MaxHP], and removing an absent card is a
// no-op. The rng parameter is threaded for opcodes that roll; none of the
// current set do, but the call order contract reserves the slot.
func Apply(state *State, effects []content.EventEffect, rng *random.RNG) Result {
	_ = rng
	res := Result{Success: true}
	for _, eff := range effects {
		applyOne(state, eff)
		res.Applied = append(res.Applied, fmt.Sprintf("%s:%s", eff.Opcode, eff.Value))
	}
	res.Gold = state.Gold
	res.HP = state.CurrentHP
	return res
}

func applyOne(state *State, eff content.EventEffect) {
	switch ParseOpcode(eff.Opcode) {
	case OpGainGold:
		state.Gold = clampGold(state.Gold + intValue(eff.Value))
	case OpLoseGold:
		state.Gold = clampGold(state.Gold - intValue(eff.Value))
	case OpHeal:
		state.CurrentHP = clampHP(state.CurrentHP+intValue(eff.Value), state.MaxHP)
	case OpTakeDamage:
		state.CurrentHP = clampHP(state.CurrentHP-intValue(eff.Value), state.MaxHP)
	case OpAddCard:
		state.Deck = append(state.Deck, eff.Value)
	case OpRemoveCard:
		for i, id := range state.Deck {
			if id == eff.Value {
				state.Deck = append(state.Deck[:i], state.Deck[i+1:]...)
				break
			}
		}
	case OpAddRelic:
		for _, id := range state.Relics {
			if id == eff.Value {
				return
			}
		}
		state.Relics = append(state.Relics, eff.Value)
	case OpModifyBias:
		key, val := splitPair(eff.Value)
		delta, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return
		}
		if state.RouteBias == nil {
			state.RouteBias = make(map[string]float64)
		}
		state.RouteBias[key] += delta
	case OpSetFlag:
		key, val := splitPair(eff.Value)
		setFlag(state, key, val)
	case OpTriggerBattle:
		setFlag(state, FlagTriggerBattle, eff.Value)
	case OpUnknown:
		// Recorded in Applied, otherwise a no-op.
	}
}

// clampGold floors gold at zero. Pack-authored operands may be negative,
// so both gold opcodes clamp.
func clampGold(gold int) int {
	if gold < 0 {
		return 0
	}
	return gold
}

// clampHP keeps hit points inside [0, maxHP] regardless of operand sign.
func clampHP(hp, maxHP int) int {
	if hp < 0 {
		return 0
	}
	if hp > maxHP {
		return maxHP
	}
	return hp
}

func setFlag(state *State, key, val string) {
	if state.Flags == nil {
		state.Flags = make(map[string]string)
	}
	state.Flags[key] = val
}

func intValue(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// splitPair splits a "key:value" operand. A bare key reads as the boolean
// flag "true".
func splitPair(s string) (string, string) {
	if key, val, ok := strings.Cut(s, ":"); ok {
		return key, val
	}
	return s, "true"
}
