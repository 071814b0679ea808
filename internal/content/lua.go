package content

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/gitdungeon/internal/platform/errors"
)

// LoadPack executes a pack script and parses the table it returns into a
// Pack. Scripts run in a fresh Lua state with the standard libraries open;
// they declare content only and cannot reach back into the engine. Fields
// absent from a patch table stay nil so the overlay merge leaves the
// corresponding registry fields untouched.
func LoadPack(path string) (*Pack, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)

	if err := lua.LoadFile(l, path, ""); err != nil {
		return nil, errors.Wrap(errors.CodeContentPackLoad,
			fmt.Sprintf("load pack script %s", path), err)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return nil, errors.Wrap(errors.CodeContentPackLoad,
			fmt.Sprintf("run pack script %s", path), err)
	}
	if l.TypeOf(-1) != lua.TypeTable {
		return nil, errors.New(errors.CodeContentPackLoad,
			fmt.Sprintf("pack script %s must return a table", path))
	}
	root := l.AbsIndex(-1)

	pack := &Pack{}
	if err := parsePackInfo(l, root, pack); err != nil {
		return nil, err
	}
	if err := parseCardPatches(l, root, pack); err != nil {
		return nil, err
	}
	if err := parseRelicPatches(l, root, pack); err != nil {
		return nil, err
	}
	if err := parseEventPatches(l, root, pack); err != nil {
		return nil, err
	}
	if err := parseChapterOverrides(l, root, pack); err != nil {
		return nil, err
	}
	return pack, nil
}

func parsePackInfo(l *lua.State, root int, pack *Pack) error {
	l.Field(root, "pack_info")
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeTable {
		return errors.New(errors.CodeContentPackLoad, "pack_info table is required")
	}
	info := l.AbsIndex(-1)
	id, ok := fieldString(l, info, "id")
	if !ok || id == "" {
		return errors.WithMetadata(errors.CodeContentPackLoad,
			"pack_info.id is required",
			map[string]string{"category": "pack_info", "field": "id"})
	}
	pack.Info.ID = id
	pack.Info.NameKey, _ = fieldString(l, info, "name_key")
	pack.Info.DescKey, _ = fieldString(l, info, "desc_key")
	pack.Info.Archetype, _ = fieldString(l, info, "archetype")
	if s, ok := fieldString(l, info, "rarity"); ok {
		pack.Info.Rarity = Rarity(s)
	}
	pack.Info.PointsCost, _ = fieldInt(l, info, "points_cost")
	return nil
}

func parseCardPatches(l *lua.State, root int, pack *Pack) error {
	return eachEntry(l, root, "cards", func(entry int) error {
		var p CardPatch
		id, ok := fieldString(l, entry, "id")
		if !ok {
			return patchFieldErr(pack.Info.ID, "card", "id")
		}
		p.ID = id
		p.NameKey = fieldStringPtr(l, entry, "name_key")
		p.DescKey = fieldStringPtr(l, entry, "desc_key")
		if s, ok := fieldString(l, entry, "type"); ok {
			t := CardType(s)
			p.Type = &t
		}
		p.Cost = fieldIntPtr(l, entry, "cost")
		if s, ok := fieldString(l, entry, "rarity"); ok {
			r := Rarity(s)
			p.Rarity = &r
		}
		p.UpgradeID = fieldStringPtr(l, entry, "upgrade_id")
		if err := eachEntry(l, entry, "effects", func(eff int) error {
			var ce CardEffect
			ce.Type, _ = fieldString(l, eff, "type")
			ce.Value, _ = fieldInt(l, eff, "value")
			ce.Target, _ = fieldString(l, eff, "target")
			ce.Status, _ = fieldString(l, eff, "status")
			ce.StatusValue, _ = fieldInt(l, eff, "status_value")
			p.Effects = append(p.Effects, ce)
			return nil
		}); err != nil {
			return err
		}
		p.Tags = fieldStrings(l, entry, "tags")
		pack.Cards = append(pack.Cards, p)
		return nil
	})
}

func parseRelicPatches(l *lua.State, root int, pack *Pack) error {
	return eachEntry(l, root, "relics", func(entry int) error {
		var p RelicPatch
		id, ok := fieldString(l, entry, "id")
		if !ok {
			return patchFieldErr(pack.Info.ID, "relic", "id")
		}
		p.ID = id
		p.NameKey = fieldStringPtr(l, entry, "name_key")
		p.DescKey = fieldStringPtr(l, entry, "desc_key")
		if s, ok := fieldString(l, entry, "tier"); ok {
			t := RelicTier(s)
			p.Tier = &t
		}
		l.Field(entry, "effects")
		if l.TypeOf(-1) == lua.TypeTable {
			effects := make(map[string]float64)
			tbl := l.AbsIndex(-1)
			l.PushNil()
			for l.Next(tbl) {
				// String keys only; converting a non-string key in place
				// would corrupt the traversal.
				if l.TypeOf(-2) == lua.TypeString {
					key, _ := l.ToString(-2)
					if val, ok := l.ToNumber(-1); ok {
						effects[key] = val
					}
				}
				l.Pop(1)
			}
			p.Effects = effects
		}
		l.Pop(1)
		pack.Relics = append(pack.Relics, p)
		return nil
	})
}

func parseEventPatches(l *lua.State, root int, pack *Pack) error {
	return eachEntry(l, root, "events", func(entry int) error {
		var p EventPatch
		id, ok := fieldString(l, entry, "id")
		if !ok {
			return patchFieldErr(pack.Info.ID, "event", "id")
		}
		p.ID = id
		p.NameKey = fieldStringPtr(l, entry, "name_key")
		p.DescKey = fieldStringPtr(l, entry, "desc_key")
		p.RouteTags = fieldStrings(l, entry, "route_tags")
		if err := eachEntry(l, entry, "choices", func(choice int) error {
			var ec EventChoice
			ec.ID, _ = fieldString(l, choice, "id")
			ec.TextKey, _ = fieldString(l, choice, "text_key")
			if err := eachEntry(l, choice, "effects", func(eff int) error {
				opcode, ok := fieldString(l, eff, "opcode")
				if !ok {
					return patchFieldErr(pack.Info.ID, "event", "effects.opcode")
				}
				ec.Effects = append(ec.Effects, EventEffect{
					Opcode: opcode,
					Value:  fieldScalar(l, eff, "value"),
				})
				return nil
			}); err != nil {
				return err
			}
			p.Choices = append(p.Choices, ec)
			return nil
		}); err != nil {
			return err
		}
		pack.Events = append(pack.Events, p)
		return nil
	})
}

func parseChapterOverrides(l *lua.State, root int, pack *Pack) error {
	l.Field(root, "chapter_overrides")
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeTable {
		return nil
	}
	tbl := l.AbsIndex(-1)
	for _, chType := range ChapterTypes() {
		l.Field(tbl, string(chType))
		if l.TypeOf(-1) != lua.TypeTable {
			l.Pop(1)
			continue
		}
		entry := l.AbsIndex(-1)
		override := ChapterOverride{
			NameKey:            fieldStringPtr(l, entry, "name_key"),
			DescKey:            fieldStringPtr(l, entry, "desc_key"),
			MinCommits:         fieldIntPtr(l, entry, "min_commits"),
			MaxCommits:         fieldIntPtr(l, entry, "max_commits"),
			BossChance:         fieldFloatPtr(l, entry, "boss_chance"),
			ShopEnabled:        fieldBoolPtr(l, entry, "shop_enabled"),
			GoldBonus:          fieldFloatPtr(l, entry, "gold_bonus"),
			ExpBonus:           fieldFloatPtr(l, entry, "exp_bonus"),
			EnemyHPMultiplier:  fieldFloatPtr(l, entry, "enemy_hp_multiplier"),
			EnemyAtkMultiplier: fieldFloatPtr(l, entry, "enemy_atk_multiplier"),
		}
		l.Pop(1)
		if pack.ChapterOverrides == nil {
			pack.ChapterOverrides = make(map[ChapterType]ChapterOverride)
		}
		pack.ChapterOverrides[chType] = override
	}
	return nil
}

func patchFieldErr(packID, category, field string) error {
	return errors.WithMetadata(errors.CodeContentPackLoad,
		fmt.Sprintf("pack %q: %s patch is missing %s", packID, category, field),
		map[string]string{"pack": packID, "category": category, "field": field})
}

// eachEntry iterates the array-style table at tbl[key], calling fn with the
// absolute stack index of each element. A missing or non-table field is not
// an error.
func eachEntry(l *lua.State, tbl int, key string, fn func(entry int) error) error {
	l.Field(tbl, key)
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeTable {
		return nil
	}
	list := l.AbsIndex(-1)
	n := l.RawLength(list)
	for i := 1; i <= n; i++ {
		l.RawGetInt(list, i)
		if l.TypeOf(-1) != lua.TypeTable {
			l.Pop(1)
			continue
		}
		if err := fn(l.AbsIndex(-1)); err != nil {
			l.Pop(1)
			return err
		}
		l.Pop(1)
	}
	return nil
}

func fieldString(l *lua.State, tbl int, key string) (string, bool) {
	l.Field(tbl, key)
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeString {
		return "", false
	}
	s, ok := l.ToString(-1)
	return s, ok
}

func fieldStringPtr(l *lua.State, tbl int, key string) *string {
	if s, ok := fieldString(l, tbl, key); ok {
		return &s
	}
	return nil
}

func fieldInt(l *lua.State, tbl int, key string) (int, bool) {
	l.Field(tbl, key)
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeNumber {
		return 0, false
	}
	n, ok := l.ToNumber(-1)
	return int(n), ok
}

func fieldIntPtr(l *lua.State, tbl int, key string) *int {
	if n, ok := fieldInt(l, tbl, key); ok {
		return &n
	}
	return nil
}

func fieldFloatPtr(l *lua.State, tbl int, key string) *float64 {
	l.Field(tbl, key)
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeNumber {
		return nil
	}
	n, ok := l.ToNumber(-1)
	if !ok {
		return nil
	}
	return &n
}

func fieldBoolPtr(l *lua.State, tbl int, key string) *bool {
	l.Field(tbl, key)
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeBoolean {
		return nil
	}
	b := l.ToBoolean(-1)
	return &b
}

// fieldScalar reads a field that content may write as a number or a string,
// normalizing numbers to their decimal form.
func fieldScalar(l *lua.State, tbl int, key string) string {
	l.Field(tbl, key)
	defer l.Pop(1)
	switch l.TypeOf(-1) {
	case lua.TypeString:
		s, _ := l.ToString(-1)
		return s
	case lua.TypeNumber:
		n, _ := l.ToNumber(-1)
		if n == math.Trunc(n) {
			return strconv.Itoa(int(n))
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}

func fieldStrings(l *lua.State, tbl int, key string) []string {
	l.Field(tbl, key)
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeTable {
		return nil
	}
	list := l.AbsIndex(-1)
	n := l.RawLength(list)
	var out []string
	for i := 1; i <= n; i++ {
		l.RawGetInt(list, i)
		if s, ok := l.ToString(-1); ok {
			out = append(out, s)
		}
		l.Pop(1)
	}
	return out
}
