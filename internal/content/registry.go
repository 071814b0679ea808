package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/gitdungeon/internal/platform/errors"
)

// Registry is the immutable view over merged content. Lookups return copies;
// list accessors return definitions sorted by id so callers iterate in a
// stable order regardless of registration order.
type Registry struct {
	cards      map[string]Card
	relics     map[string]Relic
	events     map[string]Event
	enemies    map[string]Enemy
	characters map[string]Character
	chapters   map[ChapterType]ChapterConfig
	packs      []PackInfo
}

// Builder accumulates base definitions and pack overlays, then validates and
// seals them into a Registry. A builder that has built is spent: further
// registrations fail rather than mutating the registry it handed out.
type Builder struct {
	reg    Registry
	sealed bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{reg: Registry{
		cards:      make(map[string]Card),
		relics:     make(map[string]Relic),
		events:     make(map[string]Event),
		enemies:    make(map[string]Enemy),
		characters: make(map[string]Character),
		chapters:   make(map[ChapterType]ChapterConfig),
	}}
}

func sealedErr() error {
	return errors.New(errors.CodeContentRegistrySealed, "registry already built")
}

func duplicateErr(category, id string) error {
	return errors.WithMetadata(errors.CodeContentDuplicateID,
		fmt.Sprintf("duplicate %s id %q", category, id),
		map[string]string{"category": category, "id": id})
}

// AddCard registers a base card. The id must be unique among cards.
func (b *Builder) AddCard(c Card) error {
	if b.sealed {
		return sealedErr()
	}
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return errors.New(errors.CodeContentPackLoad, "card id is required")
	}
	if _, ok := b.reg.cards[c.ID]; ok {
		return duplicateErr("card", c.ID)
	}
	b.reg.cards[c.ID] = c
	return nil
}

// AddRelic registers a base relic.
func (b *Builder) AddRelic(r Relic) error {
	if b.sealed {
		return sealedErr()
	}
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		return errors.New(errors.CodeContentPackLoad, "relic id is required")
	}
	if _, ok := b.reg.relics[r.ID]; ok {
		return duplicateErr("relic", r.ID)
	}
	b.reg.relics[r.ID] = r
	return nil
}

// AddEvent registers a base event.
func (b *Builder) AddEvent(e Event) error {
	if b.sealed {
		return sealedErr()
	}
	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		return errors.New(errors.CodeContentPackLoad, "event id is required")
	}
	if _, ok := b.reg.events[e.ID]; ok {
		return duplicateErr("event", e.ID)
	}
	b.reg.events[e.ID] = e
	return nil
}

// AddEnemy registers a base enemy template.
func (b *Builder) AddEnemy(e Enemy) error {
	if b.sealed {
		return sealedErr()
	}
	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		return errors.New(errors.CodeContentPackLoad, "enemy id is required")
	}
	if _, ok := b.reg.enemies[e.ID]; ok {
		return duplicateErr("enemy", e.ID)
	}
	b.reg.enemies[e.ID] = e
	return nil
}

// AddCharacter registers a playable character.
func (b *Builder) AddCharacter(c Character) error {
	if b.sealed {
		return sealedErr()
	}
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return errors.New(errors.CodeContentPackLoad, "character id is required")
	}
	if _, ok := b.reg.characters[c.ID]; ok {
		return duplicateErr("character", c.ID)
	}
	b.reg.characters[c.ID] = c
	return nil
}

// SetChapterConfig registers or replaces a chapter config.
func (b *Builder) SetChapterConfig(c ChapterConfig) error {
	if b.sealed {
		return sealedErr()
	}
	if c.Type == "" {
		return errors.New(errors.CodeContentPackLoad, "chapter type is required")
	}
	b.reg.chapters[c.Type] = c
	return nil
}

// ApplyPack overlays one pack onto the accumulated content. Patches matching
// an existing id update only their declared fields; unmatched ids insert new
// definitions and must carry every required field. Applying the same pack
// twice yields the same registry as applying it once.
func (b *Builder) ApplyPack(p Pack) error {
	if b.sealed {
		return sealedErr()
	}
	packID := strings.TrimSpace(p.Info.ID)
	if packID == "" {
		return errors.New(errors.CodeContentPackLoad, "pack id is required")
	}
	for _, patch := range p.Cards {
		if err := b.applyCardPatch(packID, patch); err != nil {
			return err
		}
	}
	for _, patch := range p.Relics {
		if err := b.applyRelicPatch(packID, patch); err != nil {
			return err
		}
	}
	for _, patch := range p.Events {
		if err := b.applyEventPatch(packID, patch); err != nil {
			return err
		}
	}
	for _, chType := range ChapterTypes() {
		override, ok := p.ChapterOverrides[chType]
		if !ok {
			continue
		}
		cfg, ok := b.reg.chapters[chType]
		if !ok {
			cfg = ChapterConfig{Type: chType}
		}
		override.apply(&cfg)
		b.reg.chapters[chType] = cfg
	}
	for i, info := range b.reg.packs {
		if info.ID == packID {
			b.reg.packs[i] = p.Info
			return nil
		}
	}
	b.reg.packs = append(b.reg.packs, p.Info)
	return nil
}

func missingFieldErr(packID, category, id, field string) error {
	return errors.WithMetadata(errors.CodeContentPackLoad,
		fmt.Sprintf("pack %q: new %s %q is missing required field %s", packID, category, id, field),
		map[string]string{"pack": packID, "category": category, "id": id, "field": field})
}

func (b *Builder) applyCardPatch(packID string, p CardPatch) error {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return errors.WithMetadata(errors.CodeContentPackLoad,
			fmt.Sprintf("pack %q: card patch is missing id", packID),
			map[string]string{"pack": packID, "category": "card", "field": "id"})
	}
	card, ok := b.reg.cards[id]
	if !ok {
		switch {
		case p.NameKey == nil:
			return missingFieldErr(packID, "card", id, "name_key")
		case p.Type == nil:
			return missingFieldErr(packID, "card", id, "type")
		case p.Cost == nil:
			return missingFieldErr(packID, "card", id, "cost")
		case len(p.Effects) == 0:
			return missingFieldErr(packID, "card", id, "effects")
		}
		card = Card{ID: id, Rarity: RarityCommon}
	}
	p.apply(&card)
	b.reg.cards[id] = card
	return nil
}

func (b *Builder) applyRelicPatch(packID string, p RelicPatch) error {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return errors.WithMetadata(errors.CodeContentPackLoad,
			fmt.Sprintf("pack %q: relic patch is missing id", packID),
			map[string]string{"pack": packID, "category": "relic", "field": "id"})
	}
	relic, ok := b.reg.relics[id]
	if !ok {
		if p.NameKey == nil {
			return missingFieldErr(packID, "relic", id, "name_key")
		}
		relic = Relic{ID: id, Tier: RelicTierCommon}
	}
	p.apply(&relic)
	b.reg.relics[id] = relic
	return nil
}

func (b *Builder) applyEventPatch(packID string, p EventPatch) error {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return errors.WithMetadata(errors.CodeContentPackLoad,
			fmt.Sprintf("pack %q: event patch is missing id", packID),
			map[string]string{"pack": packID, "category": "event", "field": "id"})
	}
	event, ok := b.reg.events[id]
	if !ok {
		switch {
		case p.NameKey == nil:
			return missingFieldErr(packID, "event", id, "name_key")
		case len(p.Choices) == 0:
			return missingFieldErr(packID, "event", id, "choices")
		}
		event = Event{ID: id}
	}
	p.apply(&event)
	b.reg.events[id] = event
	return nil
}

func referenceErr(ownerCategory, ownerID, refCategory, refID string) error {
	return errors.WithMetadata(errors.CodeContentReference,
		fmt.Sprintf("%s %q references unknown %s %q", ownerCategory, ownerID, refCategory, refID),
		map[string]string{
			"owner_category": ownerCategory,
			"owner_id":       ownerID,
			"ref_category":   refCategory,
			"ref_id":         refID,
		})
}

// Build validates cross-references and seals the registry. Validation covers
// card upgrade targets, character starter decks and relics, and card or relic
// ids named by event effect operands. The first broken reference aborts the
// build; a registry that builds has no dangling ids.
func (b *Builder) Build() (*Registry, error) {
	if b.sealed {
		return nil, sealedErr()
	}
	for _, id := range sortedKeys(b.reg.cards) {
		card := b.reg.cards[id]
		if card.UpgradeID != "" {
			if _, ok := b.reg.cards[card.UpgradeID]; !ok {
				return nil, referenceErr("card", id, "card", card.UpgradeID)
			}
		}
	}
	for _, id := range sortedKeys(b.reg.characters) {
		ch := b.reg.characters[id]
		for _, cardID := range ch.StarterCards {
			if _, ok := b.reg.cards[cardID]; !ok {
				return nil, referenceErr("character", id, "card", cardID)
			}
		}
		for _, relicID := range ch.StarterRelics {
			if _, ok := b.reg.relics[relicID]; !ok {
				return nil, referenceErr("character", id, "relic", relicID)
			}
		}
	}
	for _, id := range sortedKeys(b.reg.events) {
		ev := b.reg.events[id]
		for _, choice := range ev.Choices {
			for _, eff := range choice.Effects {
				switch eff.Opcode {
				case "add_card", "remove_card":
					if _, ok := b.reg.cards[eff.Value]; !ok {
						return nil, referenceErr("event", id, "card", eff.Value)
					}
				case "add_relic":
					if _, ok := b.reg.relics[eff.Value]; !ok {
						return nil, referenceErr("event", id, "relic", eff.Value)
					}
				}
			}
		}
	}
	reg := b.reg
	b.reg = Registry{}
	b.sealed = true
	return &reg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Card looks up a card by id.
func (r *Registry) Card(id string) (Card, bool) {
	c, ok := r.cards[id]
	return c, ok
}

// Relic looks up a relic by id.
func (r *Registry) Relic(id string) (Relic, bool) {
	rel, ok := r.relics[id]
	return rel, ok
}

// Event looks up an event by id.
func (r *Registry) Event(id string) (Event, bool) {
	e, ok := r.events[id]
	return e, ok
}

// Enemy looks up an enemy template by id.
func (r *Registry) Enemy(id string) (Enemy, bool) {
	e, ok := r.enemies[id]
	return e, ok
}

// Character looks up a character by id.
func (r *Registry) Character(id string) (Character, bool) {
	c, ok := r.characters[id]
	return c, ok
}

// ChapterConfig looks up the config for a chapter type.
func (r *Registry) ChapterConfig(t ChapterType) (ChapterConfig, bool) {
	c, ok := r.chapters[t]
	return c, ok
}

// Cards returns all cards sorted by id.
func (r *Registry) Cards() []Card {
	out := make([]Card, 0, len(r.cards))
	for _, id := range sortedKeys(r.cards) {
		out = append(out, r.cards[id])
	}
	return out
}

// Relics returns all relics sorted by id.
func (r *Registry) Relics() []Relic {
	out := make([]Relic, 0, len(r.relics))
	for _, id := range sortedKeys(r.relics) {
		out = append(out, r.relics[id])
	}
	return out
}

// Events returns all events sorted by id.
func (r *Registry) Events() []Event {
	out := make([]Event, 0, len(r.events))
	for _, id := range sortedKeys(r.events) {
		out = append(out, r.events[id])
	}
	return out
}

// Enemies returns all enemy templates sorted by id.
func (r *Registry) Enemies() []Enemy {
	out := make([]Enemy, 0, len(r.enemies))
	for _, id := range sortedKeys(r.enemies) {
		out = append(out, r.enemies[id])
	}
	return out
}

// EnemiesByClass returns enemy templates for one commit class, sorted by id.
func (r *Registry) EnemiesByClass(class string) []Enemy {
	var out []Enemy
	for _, id := range sortedKeys(r.enemies) {
		if e := r.enemies[id]; e.Class == class {
			out = append(out, e)
		}
	}
	return out
}

// Characters returns all characters sorted by id.
func (r *Registry) Characters() []Character {
	out := make([]Character, 0, len(r.characters))
	for _, id := range sortedKeys(r.characters) {
		out = append(out, r.characters[id])
	}
	return out
}

// Packs returns metadata for every applied pack in application order.
func (r *Registry) Packs() []PackInfo {
	return append([]PackInfo(nil), r.packs...)
}
