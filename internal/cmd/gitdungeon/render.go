package gitdungeon

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/gitdungeon/internal/engine"
	"github.com/louisbranch/gitdungeon/internal/platform/i18n/catalog"
	"github.com/louisbranch/gitdungeon/internal/route"
)

// Renderer turns the engine's event stream into localized lines. Noisy
// per-turn events (damage, evades) stay silent; the renderer narrates
// milestones only.
type Renderer struct {
	out     io.Writer
	locale  string
	bundle  *catalog.Bundle
	printer *message.Printer
}

// NewRenderer builds a renderer for the given locale, falling back to
// the base locale when the catalog does not carry it.
func NewRenderer(out io.Writer, locale string) *Renderer {
	bundle := catalog.Default()
	if !bundle.HasLocale(locale) {
		locale = catalog.BaseLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(catalog.BaseLocale)
	}
	return &Renderer{
		out:     out,
		locale:  locale,
		bundle:  bundle,
		printer: message.NewPrinter(tag),
	}
}

// resolve maps a catalog key to its localized text, or returns the key
// itself so raw ids stay debuggable.
func (r *Renderer) resolve(key string) string {
	if text, ok := r.bundle.Message(r.locale, key); ok {
		return text
	}
	return key
}

func (r *Renderer) printf(key string, args ...any) {
	r.printer.Fprintf(r.out, key, args...)
	fmt.Fprintln(r.out)
}

// RunStarted announces the run header.
func (r *Renderer) RunStarted(runID string, seed int64) {
	r.printf("game.run.started", runID, seed)
}

// RunEnded announces the terminal result.
func (r *Renderer) RunEnded(state *engine.GameState, result string) {
	if result == "victory" {
		r.printf("game.run.victory", len(state.ChaptersCompleted))
		return
	}
	chapterNumber := len(state.ChaptersCompleted) + 1
	r.printf("game.run.defeat", chapterNumber)
}

// NodeEntered narrates stepping onto a route node.
func (r *Renderer) NodeEntered(node route.Node, position, total int) {
	r.printf("game.node.entered", string(node.Kind), position, total)
}

// Events narrates the milestone events from one engine Apply call.
func (r *Renderer) Events(events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EventChapterStarted:
			index, _ := ev.Data["chapter_index"].(int)
			chapterType, _ := ev.Data["chapter_type"].(string)
			name := r.resolve(fmt.Sprintf("chapter.%s.name", chapterType))
			r.printf("game.chapter.started", index+1, name)

		case engine.EventChapterCompleted:
			index, _ := ev.Data["chapter_index"].(int)
			gold, _ := ev.Data["gold_reward"].(int)
			exp, _ := ev.Data["exp_reward"].(int)
			r.printf("game.chapter.completed", index+1, gold, exp)

		case engine.EventBattleStarted:
			name, _ := ev.Data["enemy_name"].(string)
			maxHP, _ := ev.Data["max_hp"].(int)
			r.printf("game.battle.started", r.resolve(name), maxHP)

		case engine.EventBossSpawned:
			enemyID, _ := ev.Data["enemy_id"].(string)
			r.printf("game.battle.boss", r.resolve(fmt.Sprintf("enemy.%s.name", enemyID)))

		case engine.EventEnemyDefeated:
			name, _ := ev.Data["enemy_name"].(string)
			exp, _ := ev.Data["exp_reward"].(int)
			gold, _ := ev.Data["gold_reward"].(int)
			r.printf("game.battle.victory", r.resolve(name), exp, gold)

		case engine.EventLevelUp:
			level, _ := ev.Data["new_level"].(int)
			r.printf("game.level.up", level)

		case engine.EventShopEntered:
			gold, _ := ev.Data["gold"].(int)
			r.printf("game.shop.entered", gold)

		case engine.EventResolved:
			eventID, _ := ev.Data["event_id"].(string)
			r.printf("game.event.resolved", r.resolve(fmt.Sprintf("event.%s.name", eventID)))

		case engine.EventBattleEnded:
			if result, _ := ev.Data["result"].(string); result == "escaped" {
				r.printf("game.battle.escaped")
			}

		case engine.EventError:
			msg, _ := ev.Data["message"].(string)
			fmt.Fprintf(r.out, "error: %s\n", msg)
		}
	}
}
