package effect

import (
	"reflect"
	"testing"

	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/random"
)

func testState() *State {
	return &State{
		Gold:      50,
		CurrentHP: 80,
		MaxHP:     100,
		Deck:      []string{"strike", "strike", "defend"},
		Relics:    []string{"git_init"},
	}
}

func TestApplyGainGoldHealAddCard(t *testing.T) {
	state := testState()
	deckSize := len(state.Deck)
	effects := []content.EventEffect{
		{Opcode: "gain_gold", Value: "25"},
		{Opcode: "heal", Value: "10"},
		{Opcode: "add_card", Value: "test_guard"},
	}

	res := Apply(state, effects, random.New(1))

	if !res.Success {
		t.Fatalf("Success = false, want true")
	}
	if state.Gold != 75 {
		t.Fatalf("Gold = %d, want 75", state.Gold)
	}
	if state.CurrentHP != 90 {
		t.Fatalf("CurrentHP = %d, want 90", state.CurrentHP)
	}
	if len(state.Deck) != deckSize+1 {
		t.Fatalf("deck size = %d, want %d", len(state.Deck), deckSize+1)
	}
	want := []string{"gain_gold:25", "heal:10", "add_card:test_guard"}
	if !reflect.DeepEqual(res.Applied, want) {
		t.Fatalf("Applied = %v, want %v", res.Applied, want)
	}
}

func TestApplyLoseGoldFloorsAtZero(t *testing.T) {
	state := testState()
	state.Gold = 20

	res := Apply(state, []content.EventEffect{{Opcode: "lose_gold", Value: "50"}}, random.New(1))

	if state.Gold != 0 {
		t.Fatalf("Gold = %d, want 0", state.Gold)
	}
	if res.Applied[0] != "lose_gold:50" {
		t.Fatalf("Applied[0] = %q, want full requested amount named", res.Applied[0])
	}
	if res.Gold != 0 {
		t.Fatalf("Result.Gold = %d, want 0", res.Gold)
	}
}

func TestApplyHealClampsToMaxHP(t *testing.T) {
	state := testState()
	state.CurrentHP = 90

	res := Apply(state, []content.EventEffect{{Opcode: "heal", Value: "30"}}, random.New(1))

	if state.CurrentHP != 100 {
		t.Fatalf("CurrentHP = %d, want 100", state.CurrentHP)
	}
	if res.HP != 100 {
		t.Fatalf("Result.HP = %d, want 100", res.HP)
	}
}

func TestApplyTakeDamageFloorsAtZero(t *testing.T) {
	state := testState()
	state.CurrentHP = 10

	Apply(state, []content.EventEffect{{Opcode: "take_damage", Value: "25"}}, random.New(1))

	if state.CurrentHP != 0 {
		t.Fatalf("CurrentHP = %d, want 0", state.CurrentHP)
	}
}

func TestApplyNegativeOperandsStayClamped(t *testing.T) {
	state := testState()
	state.Gold = 10
	state.CurrentHP = 5

	Apply(state, []content.EventEffect{
		{Opcode: "gain_gold", Value: "-100"},
		{Opcode: "heal", Value: "-50"},
	}, random.New(1))

	if state.Gold != 0 {
		t.Fatalf("Gold = %d, want 0", state.Gold)
	}
	if state.CurrentHP != 0 {
		t.Fatalf("CurrentHP = %d, want 0", state.CurrentHP)
	}

	state.CurrentHP = state.MaxHP - 1
	Apply(state, []content.EventEffect{
		{Opcode: "take_damage", Value: "-50"},
		{Opcode: "lose_gold", Value: "-30"},
	}, random.New(1))

	if state.CurrentHP != state.MaxHP {
		t.Fatalf("CurrentHP = %d, want clamp at max %d", state.CurrentHP, state.MaxHP)
	}
	if state.Gold != 30 {
		t.Fatalf("Gold = %d, want 30", state.Gold)
	}
}

func TestApplyRemoveCard(t *testing.T) {
	state := testState()

	Apply(state, []content.EventEffect{{Opcode: "remove_card", Value: "strike"}}, random.New(1))

	want := []string{"strike", "defend"}
	if !reflect.DeepEqual(state.Deck, want) {
		t.Fatalf("Deck = %v, want first occurrence removed", state.Deck)
	}
}

func TestApplyRemoveAbsentCardIsNoOp(t *testing.T) {
	state := testState()
	deck := append([]string(nil), state.Deck...)

	res := Apply(state, []content.EventEffect{{Opcode: "remove_card", Value: "ghost_card"}}, random.New(1))

	if !res.Success {
		t.Fatalf("Success = false, want true")
	}
	if !reflect.DeepEqual(state.Deck, deck) {
		t.Fatalf("Deck = %v, want unchanged", state.Deck)
	}
}

func TestApplyAddRelicSkipsDuplicate(t *testing.T) {
	state := testState()

	Apply(state, []content.EventEffect{
		{Opcode: "add_relic", Value: "debugger"},
		{Opcode: "add_relic", Value: "debugger"},
	}, random.New(1))

	want := []string{"git_init", "debugger"}
	if !reflect.DeepEqual(state.Relics, want) {
		t.Fatalf("Relics = %v, want %v", state.Relics, want)
	}
}

func TestApplyModifyBiasAccumulates(t *testing.T) {
	state := testState()

	Apply(state, []content.EventEffect{
		{Opcode: "modify_bias", Value: "debug_beatdown:0.2"},
		{Opcode: "modify_bias", Value: "debug_beatdown:0.1"},
	}, random.New(1))

	got := state.RouteBias["debug_beatdown"]
	if got < 0.29 || got > 0.31 {
		t.Fatalf("RouteBias[debug_beatdown] = %v, want 0.3", got)
	}
}

func TestApplySetFlag(t *testing.T) {
	state := testState()

	Apply(state, []content.EventEffect{{Opcode: "set_flag", Value: "visited_shrine:true"}}, random.New(1))

	if state.Flags["visited_shrine"] != "true" {
		t.Fatalf("Flags = %v, want visited_shrine=true", state.Flags)
	}
}

func TestApplyTriggerBattleSetsFlag(t *testing.T) {
	state := testState()

	Apply(state, []content.EventEffect{{Opcode: "trigger_battle", Value: "elite"}}, random.New(1))

	if state.Flags[FlagTriggerBattle] != "elite" {
		t.Fatalf("Flags[%s] = %q, want elite", FlagTriggerBattle, state.Flags[FlagTriggerBattle])
	}
}

func TestApplyUnknownOpcodeSucceeds(t *testing.T) {
	state := testState()
	before := *state

	res := Apply(state, []content.EventEffect{{Opcode: "summon_dragon", Value: "123"}}, random.New(1))

	if !res.Success {
		t.Fatalf("Success = false, want true")
	}
	if res.Applied[0] != "summon_dragon:123" {
		t.Fatalf("Applied = %v, want unknown opcode recorded", res.Applied)
	}
	if state.Gold != before.Gold || state.CurrentHP != before.CurrentHP {
		t.Fatalf("state changed by unknown opcode: %+v", state)
	}
}

func TestApplyRunsInListOrder(t *testing.T) {
	state := testState()
	state.Gold = 10

	// Order matters: gaining after the floored loss leaves 30, not 0.
	Apply(state, []content.EventEffect{
		{Opcode: "lose_gold", Value: "50"},
		{Opcode: "gain_gold", Value: "30"},
	}, random.New(1))

	if state.Gold != 30 {
		t.Fatalf("Gold = %d, want 30", state.Gold)
	}
}
