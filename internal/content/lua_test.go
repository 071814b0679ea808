package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	platformerrors "github.com/louisbranch/gitdungeon/internal/platform/errors"
)

func writePackScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write pack script: %v", err)
	}
	return path
}

func TestLoadPackParsesFullScript(t *testing.T) {
	path := writePackScript(t, `
return {
	pack_info = {
		id = "balance_patch",
		name_key = "pack.balance_patch.name",
		desc_key = "pack.balance_patch.desc",
		archetype = "debug",
		rarity = "rare",
		points_cost = 2,
	},
	cards = {
		{ id = "strike", cost = 2 },
		{
			id = "lint_laser",
			name_key = "card.lint_laser.name",
			desc_key = "card.lint_laser.desc",
			type = "attack",
			cost = 1,
			rarity = "uncommon",
			effects = {
				{ type = "damage", value = 9, target = "enemy" },
			},
			tags = { "debug", "lint" },
		},
	},
	relics = {
		{ id = "debugger", tier = "uncommon", effects = { crit_chance = 8 } },
	},
	events = {
		{
			id = "abandoned_branch",
			choices = {
				{
					id = "scavenge",
					text_key = "event.abandoned_branch.scavenge",
					effects = {
						{ opcode = "gain_gold", value = 40 },
						{ opcode = "set_flag", value = "greedy:true" },
					},
				},
			},
		},
	},
	chapter_overrides = {
		feature = { gold_bonus = 1.5, shop_enabled = false },
	},
}
`)

	pack, err := LoadPack(path)
	if err != nil {
		t.Fatalf("LoadPack() error = %v", err)
	}
	if pack.Info.ID != "balance_patch" || pack.Info.Rarity != RarityRare || pack.Info.PointsCost != 2 {
		t.Fatalf("Info = %+v", pack.Info)
	}
	if len(pack.Cards) != 2 {
		t.Fatalf("Cards len = %d, want 2", len(pack.Cards))
	}
	patch := pack.Cards[0]
	if patch.ID != "strike" || patch.Cost == nil || *patch.Cost != 2 {
		t.Fatalf("strike patch = %+v", patch)
	}
	if patch.NameKey != nil {
		t.Fatalf("strike patch NameKey = %q, want nil for undeclared field", *patch.NameKey)
	}
	fresh := pack.Cards[1]
	if fresh.ID != "lint_laser" || fresh.Type == nil || *fresh.Type != CardTypeAttack {
		t.Fatalf("lint_laser patch = %+v", fresh)
	}
	if len(fresh.Effects) != 1 || fresh.Effects[0].Value != 9 {
		t.Fatalf("lint_laser effects = %+v", fresh.Effects)
	}
	if len(fresh.Tags) != 2 || fresh.Tags[1] != "lint" {
		t.Fatalf("lint_laser tags = %v", fresh.Tags)
	}
	if len(pack.Relics) != 1 || pack.Relics[0].Effects["crit_chance"] != 8 {
		t.Fatalf("Relics = %+v", pack.Relics)
	}
	if len(pack.Events) != 1 {
		t.Fatalf("Events len = %d, want 1", len(pack.Events))
	}
	effects := pack.Events[0].Choices[0].Effects
	if effects[0].Opcode != "gain_gold" || effects[0].Value != "40" {
		t.Fatalf("effect[0] = %+v, want numeric value normalized to decimal string", effects[0])
	}
	if effects[1].Opcode != "set_flag" || effects[1].Value != "greedy:true" {
		t.Fatalf("effect[1] = %+v", effects[1])
	}
	override, ok := pack.ChapterOverrides[ChapterFeature]
	if !ok {
		t.Fatalf("ChapterOverrides missing feature")
	}
	if override.GoldBonus == nil || *override.GoldBonus != 1.5 {
		t.Fatalf("GoldBonus = %v, want 1.5", override.GoldBonus)
	}
	if override.ShopEnabled == nil || *override.ShopEnabled {
		t.Fatalf("ShopEnabled = %v, want false", override.ShopEnabled)
	}
	if override.MinCommits != nil {
		t.Fatalf("MinCommits = %v, want nil for undeclared field", *override.MinCommits)
	}
}

func TestLoadPackRequiresPackInfoID(t *testing.T) {
	path := writePackScript(t, `return { pack_info = { name_key = "pack.anon.name" } }`)
	_, err := LoadPack(path)
	var domainErr *platformerrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("LoadPack() error = %v, want *errors.Error", err)
	}
	if domainErr.Code != platformerrors.CodeContentPackLoad {
		t.Fatalf("Code = %v, want %v", domainErr.Code, platformerrors.CodeContentPackLoad)
	}
	if domainErr.Metadata["field"] != "id" {
		t.Fatalf("Metadata = %v, want field=id", domainErr.Metadata)
	}
}

func TestLoadPackRejectsNonTableResult(t *testing.T) {
	path := writePackScript(t, `return 42`)
	if _, err := LoadPack(path); err == nil {
		t.Fatalf("LoadPack() error = nil, want non-table error")
	}
}

func TestLoadPackReportsSyntaxError(t *testing.T) {
	path := writePackScript(t, `return {`)
	_, err := LoadPack(path)
	if !errors.Is(err, platformerrors.New(platformerrors.CodeContentPackLoad, "")) {
		t.Fatalf("LoadPack() error = %v, want pack load error", err)
	}
}

func TestLoadPackThenApply(t *testing.T) {
	path := writePackScript(t, `
return {
	pack_info = { id = "tweaks" },
	cards = { { id = "defend", cost = 0 } },
}
`)
	pack, err := LoadPack(path)
	if err != nil {
		t.Fatalf("LoadPack() error = %v", err)
	}
	b, err := NewBaseBuilder()
	if err != nil {
		t.Fatalf("NewBaseBuilder() error = %v", err)
	}
	if err := b.ApplyPack(*pack); err != nil {
		t.Fatalf("ApplyPack() error = %v", err)
	}
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	card, _ := reg.Card("defend")
	if card.Cost != 0 {
		t.Fatalf("Cost = %d, want 0", card.Cost)
	}
	if card.Effects[0].Type != "block" {
		t.Fatalf("Effects = %+v, want base effects preserved", card.Effects)
	}
}
