package gitdungeon

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/gitdungeon/internal/commit"
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/difficulty"
	"github.com/louisbranch/gitdungeon/internal/effect"
	"github.com/louisbranch/gitdungeon/internal/engine"
	"github.com/louisbranch/gitdungeon/internal/journal"
	"github.com/louisbranch/gitdungeon/internal/platform/id"
	"github.com/louisbranch/gitdungeon/internal/random"
	"github.com/louisbranch/gitdungeon/internal/route"
)

// combatTurnCap bounds a single fight so a stalemate cannot hang the run.
const combatTurnCap = 200

// Runner auto-plays one dungeon run: it segments commits into chapters,
// walks each chapter's route issuing engine actions, renders the event
// stream, and appends everything to the journal. It holds no game rules
// of its own.
type Runner struct {
	Registry    *content.Registry
	Level       difficulty.Level
	Mutator     difficulty.Mutator
	CharacterID string
	Journal     journal.Store
	Renderer    *Renderer
}

// Play runs the history to its terminal state.
func (r *Runner) Play(ctx context.Context, seed int64, commits []commit.Commit) error {
	char, ok := r.Registry.Character(r.CharacterID)
	if !ok {
		return fmt.Errorf("unknown character %q", r.CharacterID)
	}

	chapters := commit.SplitChapters(r.Registry, commits)
	if len(chapters) == 0 {
		return fmt.Errorf("commit history is empty")
	}

	runID, err := id.NewID()
	if err != nil {
		return err
	}
	if r.Journal != nil {
		err := r.Journal.CreateRun(ctx, journal.Run{
			ID:          runID,
			Seed:        seed,
			CharacterID: char.ID,
			Difficulty:  string(r.Level),
			Mutator:     r.Mutator.ID,
			StartedAt:   time.Now().UTC(),
		})
		if err != nil {
			return err
		}
	}

	rng := random.New(seed)
	eng := engine.New(rng, r.Registry)
	state := engine.NewGameState(seed, char, len(chapters))
	recorder := &recorder{runID: runID, store: r.Journal}

	r.Renderer.RunStarted(runID, seed)

	for _, ch := range chapters {
		params := difficulty.Get(ch.Index, r.Level)
		// The difficulty budget caps route length and elite slots per chapter.
		gen := route.NewGenerator(route.Config{MaxNodes: params.NodeCount})
		nodes := gen.BuildNodes(route.Params{
			Seed:         seed,
			ChapterIndex: ch.Index,
			EnemyCount:   ch.EnemyCount(),
			Difficulty:   params.Enemy.HPMultiplier,
			HasBoss:      params.BossCount > 0,
			HasEvents:    true,
			EliteMax:     params.EliteMax,
		})

		events := eng.Apply(state, engine.Action{
			Type: engine.ActionChapter,
			Name: "start_chapter",
			Chapter: &engine.Chapter{
				ID:    ch.ID,
				Index: ch.Index,
				Type:  ch.Type,
				Nodes: nodes,
			},
		})
		if err := r.emit(ctx, recorder, ch.Index, events); err != nil {
			return err
		}

		enemyCursor := 0
		eventRNG := random.NewChapter(seed, ch.Index)
		for i, node := range nodes {
			if state.Phase.Terminal() {
				break
			}
			if i > 0 {
				events = eng.Apply(state, engine.Action{Type: engine.ActionChapter, Name: "advance_node"})
				if err := r.emit(ctx, recorder, ch.Index, events); err != nil {
					return err
				}
			}
			r.Renderer.NodeEntered(node, i+1, len(nodes))

			if err := r.playNode(ctx, recorder, eng, state, ch, node, params, &enemyCursor, eventRNG); err != nil {
				return err
			}
		}

		if state.Phase.Terminal() {
			break
		}
		events = eng.Apply(state, engine.Action{Type: engine.ActionChapter, Name: "complete_chapter"})
		if err := r.emit(ctx, recorder, ch.Index, events); err != nil {
			return err
		}
	}

	result := "defeat"
	if state.Phase == engine.PhaseRunComplete {
		result = "victory"
	}
	r.Renderer.RunEnded(state, result)

	if r.Journal != nil {
		if err := r.Journal.FinishRun(ctx, runID, result); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) playNode(ctx context.Context, rec *recorder, eng *engine.Engine, state *engine.GameState,
	ch commit.Chapter, node route.Node, params difficulty.Params, enemyCursor *int, eventRNG *random.RNG) error {

	switch node.Kind {
	case route.KindBattle, route.KindElite:
		enemy := r.nextEnemy(ch, node, enemyCursor)
		return r.fight(ctx, rec, eng, state, ch.Index, enemy)

	case route.KindBoss:
		boss := engine.BossForChapter(r.Registry, ch.Type, ch.Index)
		r.scaleEnemy(boss, params)
		return r.fight(ctx, rec, eng, state, ch.Index, boss)

	case route.KindEvent:
		return r.playEvent(ctx, rec, eng, state, ch, params, eventRNG)

	case route.KindShop:
		events := eng.Apply(state, engine.Action{Type: engine.ActionShop, Name: "enter_shop"})
		return r.emit(ctx, rec, ch.Index, events)

	default:
		// Rest nodes have no engine action yet.
		return nil
	}
}

// nextEnemy maps route battle nodes onto the chapter's commits in order,
// wrapping when a chapter has more battles than commits.
func (r *Runner) nextEnemy(ch commit.Chapter, node route.Node, cursor *int) *engine.Enemy {
	if len(ch.Commits) == 0 {
		return nil
	}
	c := ch.Commits[*cursor%len(ch.Commits)]
	*cursor++

	enemy := engine.EnemyFromCommit(r.Registry, c, ch.Index)
	if node.Kind == route.KindElite {
		enemy.MaxHP = enemy.MaxHP * 3 / 2
		enemy.CurrentHP = enemy.MaxHP
		enemy.Attack = enemy.Attack * 3 / 2
		enemy.Tier = content.EnemyTierElite
	}
	return enemy
}

// scaleEnemy layers difficulty and mutator multipliers onto an enemy.
func (r *Runner) scaleEnemy(enemy *engine.Enemy, params difficulty.Params) {
	if enemy == nil {
		return
	}
	hp, dmg := difficulty.ApplyEnemyScaling(enemy.MaxHP, enemy.Attack, params)
	hp, dmg = difficulty.ApplyEnemyMutator(hp, dmg, r.Mutator)
	enemy.MaxHP = hp
	enemy.CurrentHP = hp
	enemy.Attack = dmg

	exp, gold := difficulty.ApplyRewardMutator(enemy.ExpReward, enemy.GoldReward, r.Mutator)
	enemy.ExpReward = exp
	enemy.GoldReward = difficulty.ApplyRewardScaling(gold, params)
}

func (r *Runner) fight(ctx context.Context, rec *recorder, eng *engine.Engine, state *engine.GameState,
	chapterIndex int, enemy *engine.Enemy) error {

	events := eng.Apply(state, engine.Action{Type: engine.ActionCombat, Name: "start_combat", Enemy: enemy})
	if err := r.emit(ctx, rec, chapterIndex, events); err != nil {
		return err
	}

	for turns := 0; state.Phase == engine.PhaseCombat && turns < combatTurnCap; turns++ {
		events = eng.Apply(state, engine.Action{Type: engine.ActionCombat, Name: "attack"})
		if err := r.emit(ctx, rec, chapterIndex, events); err != nil {
			return err
		}
	}
	if state.Phase == engine.PhaseCombat {
		return fmt.Errorf("combat exceeded %d turns", combatTurnCap)
	}
	return nil
}

func (r *Runner) playEvent(ctx context.Context, rec *recorder, eng *engine.Engine, state *engine.GameState,
	ch commit.Chapter, params difficulty.Params, eventRNG *random.RNG) error {

	defs := r.Registry.Events()
	if len(defs) == 0 {
		return nil
	}
	// Picks draw from the chapter's own stream so the engine's combat
	// rolls do not shift with the event table size.
	def := defs[eventRNG.Pick(len(defs))]
	choice := def.Choices[eventRNG.Pick(len(def.Choices))]

	events := eng.Apply(state, engine.Action{
		Type:     engine.ActionEvent,
		Name:     "resolve_event",
		EventID:  def.ID,
		ChoiceID: choice.ID,
	})
	if err := r.emit(ctx, rec, ch.Index, events); err != nil {
		return err
	}

	return r.resolveTriggeredBattle(ctx, rec, eng, state, ch, params)
}

// resolveTriggeredBattle starts the fight an event effect may have queued.
func (r *Runner) resolveTriggeredBattle(ctx context.Context, rec *recorder, eng *engine.Engine,
	state *engine.GameState, ch commit.Chapter, params difficulty.Params) error {

	enemyID, ok := state.Player.Flags[effect.FlagTriggerBattle]
	if !ok || state.Phase.Terminal() {
		return nil
	}
	delete(state.Player.Flags, effect.FlagTriggerBattle)

	def, ok := r.Registry.Enemy(enemyID)
	if !ok {
		return nil
	}
	enemy := engine.EnemyFromDefinition(def, ch.Index)
	r.scaleEnemy(enemy, params)
	return r.fight(ctx, rec, eng, state, ch.Index, enemy)
}

func (r *Runner) emit(ctx context.Context, rec *recorder, chapterIndex int, events []engine.Event) error {
	r.Renderer.Events(events)
	return rec.append(ctx, chapterIndex, events)
}

// recorder buffers nothing: every emit appends its batch immediately so
// a crash loses at most the in-flight batch.
type recorder struct {
	runID string
	store journal.Store
	seq   int
}

func (rec *recorder) append(ctx context.Context, chapterIndex int, events []engine.Event) error {
	if rec.store == nil || len(events) == 0 {
		return nil
	}
	records := make([]journal.Record, 0, len(events))
	for _, ev := range events {
		records = append(records, journal.Record{
			RunID:        rec.runID,
			Seq:          rec.seq,
			ChapterIndex: chapterIndex,
			Type:         string(ev.Type),
			Data:         ev.Data,
			CreatedAt:    time.Now().UTC(),
		})
		rec.seq++
	}
	return rec.store.AppendRecords(ctx, records)
}
