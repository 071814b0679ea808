package content

// Pack is a parsed content pack. Packs overlay the base registry: a patch
// whose id matches an existing definition updates only the fields it
// declares, while an unmatched id inserts a new definition and must carry
// every required field. Packs applied later win on conflicting fields.
type Pack struct {
	Info             PackInfo
	Cards            []CardPatch
	Relics           []RelicPatch
	Events           []EventPatch
	ChapterOverrides map[ChapterType]ChapterOverride
}

// CardPatch is a field-granular card overlay. Nil pointers and nil slices
// leave the existing field untouched.
type CardPatch struct {
	ID        string
	NameKey   *string
	DescKey   *string
	Type      *CardType
	Cost      *int
	Rarity    *Rarity
	Effects   []CardEffect
	Tags      []string
	UpgradeID *string
}

// RelicPatch is a field-granular relic overlay.
type RelicPatch struct {
	ID      string
	NameKey *string
	DescKey *string
	Tier    *RelicTier
	Effects map[string]float64
}

// EventPatch is a field-granular event overlay. Choices replace wholesale
// when declared; partial choice edits are not supported.
type EventPatch struct {
	ID        string
	NameKey   *string
	DescKey   *string
	Choices   []EventChoice
	RouteTags []string
}

// ChapterOverride tunes one chapter type without replacing its config.
type ChapterOverride struct {
	NameKey            *string
	DescKey            *string
	MinCommits         *int
	MaxCommits         *int
	BossChance         *float64
	ShopEnabled        *bool
	GoldBonus          *float64
	ExpBonus           *float64
	EnemyHPMultiplier  *float64
	EnemyAtkMultiplier *float64
}

func (p CardPatch) apply(c *Card) {
	if p.NameKey != nil {
		c.NameKey = *p.NameKey
	}
	if p.DescKey != nil {
		c.DescKey = *p.DescKey
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Cost != nil {
		c.Cost = *p.Cost
	}
	if p.Rarity != nil {
		c.Rarity = *p.Rarity
	}
	if p.Effects != nil {
		c.Effects = append([]CardEffect(nil), p.Effects...)
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.UpgradeID != nil {
		c.UpgradeID = *p.UpgradeID
	}
}

func (p RelicPatch) apply(r *Relic) {
	if p.NameKey != nil {
		r.NameKey = *p.NameKey
	}
	if p.DescKey != nil {
		r.DescKey = *p.DescKey
	}
	if p.Tier != nil {
		r.Tier = *p.Tier
	}
	if p.Effects != nil {
		m := make(map[string]float64, len(p.Effects))
		for k, v := range p.Effects {
			m[k] = v
		}
		r.Effects = m
	}
}

func (p EventPatch) apply(e *Event) {
	if p.NameKey != nil {
		e.NameKey = *p.NameKey
	}
	if p.DescKey != nil {
		e.DescKey = *p.DescKey
	}
	if p.Choices != nil {
		e.Choices = append([]EventChoice(nil), p.Choices...)
	}
	if p.RouteTags != nil {
		e.RouteTags = append([]string(nil), p.RouteTags...)
	}
}

func (o ChapterOverride) apply(c *ChapterConfig) {
	if o.NameKey != nil {
		c.NameKey = *o.NameKey
	}
	if o.DescKey != nil {
		c.DescKey = *o.DescKey
	}
	if o.MinCommits != nil {
		c.MinCommits = *o.MinCommits
	}
	if o.MaxCommits != nil {
		c.MaxCommits = *o.MaxCommits
	}
	if o.BossChance != nil {
		c.BossChance = *o.BossChance
	}
	if o.ShopEnabled != nil {
		c.ShopEnabled = *o.ShopEnabled
	}
	if o.GoldBonus != nil {
		c.GoldBonus = *o.GoldBonus
	}
	if o.ExpBonus != nil {
		c.ExpBonus = *o.ExpBonus
	}
	if o.EnemyHPMultiplier != nil {
		c.EnemyHPMultiplier = *o.EnemyHPMultiplier
	}
	if o.EnemyAtkMultiplier != nil {
		c.EnemyAtkMultiplier = *o.EnemyAtkMultiplier
	}
}
