// Package content defines the typed game content model and the immutable
// registry that every downstream consumer reads definitions from.
//
// The registry is built once at startup: base definitions are registered in
// Go, optional content packs are overlaid in caller order, and cross-reference
// validation runs before the registry is handed out. After Build the registry
// is read-only; a fresh run rebuilds it rather than mutating in place.
package content

// CardType identifies the play style of a card.
type CardType string

const (
	// CardTypeAttack marks damage-dealing cards.
	CardTypeAttack CardType = "attack"
	// CardTypeSkill marks utility cards.
	CardTypeSkill CardType = "skill"
	// CardTypePower marks persistent-effect cards.
	CardTypePower CardType = "power"
)

// Rarity grades cards and packs.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RelicTier grades relics.
type RelicTier string

const (
	RelicTierStarter  RelicTier = "starter"
	RelicTierCommon   RelicTier = "common"
	RelicTierUncommon RelicTier = "uncommon"
	RelicTierRare     RelicTier = "rare"
	RelicTierBoss     RelicTier = "boss"
)

// EnemyTier grades encounter difficulty.
type EnemyTier string

const (
	EnemyTierNormal EnemyTier = "normal"
	EnemyTierElite  EnemyTier = "elite"
	EnemyTierBoss   EnemyTier = "boss"
)

// ChapterType classifies chapters derived from commit history.
type ChapterType string

const (
	ChapterInitial     ChapterType = "initial"
	ChapterFeature     ChapterType = "feature"
	ChapterFix         ChapterType = "fix"
	ChapterIntegration ChapterType = "integration"
	ChapterLegacy      ChapterType = "legacy"
)

// ChapterTypes lists every chapter type in declaration order.
func ChapterTypes() []ChapterType {
	return []ChapterType{
		ChapterInitial,
		ChapterFeature,
		ChapterFix,
		ChapterIntegration,
		ChapterLegacy,
	}
}

// CardEffect is one effect line on a card.
type CardEffect struct {
	Type        string // damage, block, draw, energy, status, heal
	Value       int
	Target      string // enemy, self, all
	Status      string
	StatusValue int
}

// Card defines a playable card.
type Card struct {
	ID        string
	NameKey   string
	DescKey   string
	Type      CardType
	Cost      int
	Rarity    Rarity
	Effects   []CardEffect
	Tags      []string
	UpgradeID string
}

// Relic defines a passive item.
type Relic struct {
	ID      string
	NameKey string
	DescKey string
	Tier    RelicTier
	// Effects holds numeric tuning parameters keyed by effect name.
	Effects map[string]float64
}

// EventEffect is one opcode instruction declared on an event choice.
// Opcode names are interpreted by the effect package; Value carries the
// operand as written in content (an amount, an id, or a "key:value" pair).
type EventEffect struct {
	Opcode string
	Value  string
}

// EventChoice is one selectable option of an event.
type EventChoice struct {
	ID      string
	TextKey string
	Effects []EventEffect
}

// Event defines a branching narrative encounter.
type Event struct {
	ID        string
	NameKey   string
	DescKey   string
	Choices   []EventChoice
	RouteTags []string
}

// Enemy defines an encounter opponent template.
type Enemy struct {
	ID             string
	NameKey        string
	Class          string // commit class: feat, fix, docs, refactor, merge, ...
	BaseHP         int
	BaseDamage     int
	BaseBlock      int
	Tier           EnemyTier
	GoldMultiplier float64
	ExpMultiplier  float64
}

// Character defines a playable character.
type Character struct {
	ID            string
	NameKey       string
	DescKey       string
	StarterCards  []string
	StarterRelics []string
	MaxHP         int
	Energy        int
}

// ChapterConfig tunes one chapter type.
type ChapterConfig struct {
	Type               ChapterType
	NameKey            string
	DescKey            string
	MinCommits         int
	MaxCommits         int
	BossChance         float64
	ShopEnabled        bool
	GoldBonus          float64
	ExpBonus           float64
	EnemyHPMultiplier  float64
	EnemyAtkMultiplier float64
}

// PackInfo carries pack-level metadata.
type PackInfo struct {
	ID         string
	NameKey    string
	DescKey    string
	Archetype  string
	Rarity     Rarity
	PointsCost int
}
