package gitdungeon

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/difficulty"
	"github.com/louisbranch/gitdungeon/internal/engine"
	journalsqlite "github.com/louisbranch/gitdungeon/internal/journal/sqlite"
)

func testRunnerRegistry(t *testing.T) *content.Registry {
	t.Helper()
	builder, err := content.NewBaseBuilder()
	if err != nil {
		t.Fatalf("NewBaseBuilder() error = %v", err)
	}
	reg, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return reg
}

func newTestRunner(t *testing.T, out *bytes.Buffer) *Runner {
	t.Helper()
	mut, err := difficulty.GetMutator("none")
	if err != nil {
		t.Fatalf("GetMutator() error = %v", err)
	}
	return &Runner{
		Registry:    testRunnerRegistry(t),
		Level:       difficulty.LevelNormal,
		Mutator:     mut,
		CharacterID: "debug_beatdown",
		Renderer:    NewRenderer(out, "en-US"),
	}
}

func TestRunnerPlaysSampleHistoryToTerminal(t *testing.T) {
	var out bytes.Buffer
	runner := newTestRunner(t, &out)

	store, err := journalsqlite.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()
	runner.Journal = store

	ctx := context.Background()
	if err := runner.Play(ctx, 12345, sampleHistory()); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if runs[0].Result != "victory" && runs[0].Result != "defeat" {
		t.Errorf("Result = %q, want victory or defeat", runs[0].Result)
	}
	if runs[0].FinishedAt.IsZero() {
		t.Error("FinishedAt is zero, want set")
	}

	records, err := store.RunRecords(ctx, runs[0].ID)
	if err != nil {
		t.Fatalf("RunRecords() error = %v", err)
	}
	if len(records) == 0 {
		t.Fatal("no journal records written")
	}
	for i, rec := range records {
		if rec.Seq != i {
			t.Fatalf("records[%d].Seq = %d, want %d", i, rec.Seq, i)
		}
	}
	if records[0].Type != string(engine.EventChapterStarted) {
		t.Errorf("first record type = %q, want %q", records[0].Type, engine.EventChapterStarted)
	}
	for _, rec := range records {
		if rec.Type != string(engine.EventChapterStarted) {
			continue
		}
		nodeCount, ok := rec.Data["node_count"].(float64)
		if !ok {
			t.Fatalf("chapter_started record lacks node_count: %v", rec.Data)
		}
		budget := difficulty.Get(rec.ChapterIndex, difficulty.LevelNormal).NodeCount
		if int(nodeCount) > budget {
			t.Errorf("chapter %d route has %d nodes, budget %d", rec.ChapterIndex, int(nodeCount), budget)
		}
	}

	if !strings.Contains(out.String(), "started with seed 12345") {
		t.Errorf("output missing run header, got:\n%s", out.String())
	}
}

func TestRunnerDeterministicJournal(t *testing.T) {
	ctx := context.Background()

	runRecords := func(t *testing.T) []string {
		var out bytes.Buffer
		runner := newTestRunner(t, &out)
		store, err := journalsqlite.Open(filepath.Join(t.TempDir(), "journal.db"))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer store.Close()
		runner.Journal = store

		if err := runner.Play(ctx, 424242, sampleHistory()); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		runs, err := store.ListRuns(ctx)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		records, err := store.RunRecords(ctx, runs[0].ID)
		if err != nil {
			t.Fatalf("RunRecords() error = %v", err)
		}
		types := make([]string, 0, len(records))
		for _, rec := range records {
			types = append(types, rec.Type)
		}
		return types
	}

	first := runRecords(t)
	second := runRecords(t)
	if len(first) != len(second) {
		t.Fatalf("record counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("records[%d] = %q vs %q, want identical streams", i, first[i], second[i])
		}
	}
}

func TestRunnerWithoutJournal(t *testing.T) {
	var out bytes.Buffer
	runner := newTestRunner(t, &out)

	if err := runner.Play(context.Background(), 777, sampleHistory()); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if out.Len() == 0 {
		t.Fatal("renderer produced no output")
	}
}

func TestRunnerUnknownCharacter(t *testing.T) {
	var out bytes.Buffer
	runner := newTestRunner(t, &out)
	runner.CharacterID = "nonexistent"

	if err := runner.Play(context.Background(), 1, sampleHistory()); err == nil {
		t.Fatal("Play() accepted an unknown character")
	}
}

func TestRunnerEmptyHistory(t *testing.T) {
	var out bytes.Buffer
	runner := newTestRunner(t, &out)

	if err := runner.Play(context.Background(), 1, nil); err == nil {
		t.Fatal("Play() accepted an empty history")
	}
}

func TestRendererLocaleFallback(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, "xx-YY")
	if r.locale != "en-US" {
		t.Errorf("locale = %q, want fallback en-US", r.locale)
	}

	r.RunStarted("run-1", 9)
	if !strings.Contains(out.String(), "Run run-1 started with seed 9") {
		t.Errorf("output = %q, want localized run header", out.String())
	}
}

func TestRendererResolvesContentKeys(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, "en-US")

	r.Events([]engine.Event{{
		Type: engine.EventBattleStarted,
		Data: map[string]any{"enemy_name": "enemy.bug_swarm.name", "max_hp": 20},
	}})
	if !strings.Contains(out.String(), "Bug Swarm") {
		t.Errorf("output = %q, want resolved enemy name", out.String())
	}
}
