package commit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/louisbranch/gitdungeon/internal/content"
	platformerrors "github.com/louisbranch/gitdungeon/internal/platform/errors"
)

func testRegistry(t *testing.T) *content.Registry {
	t.Helper()
	b, err := content.NewBaseBuilder()
	if err != nil {
		t.Fatalf("NewBaseBuilder() error = %v", err)
	}
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return reg
}

func TestValidateRequiresHash(t *testing.T) {
	err := Commit{Message: "feat: add parser"}.Validate()
	if !errors.Is(err, platformerrors.New(platformerrors.CodeCommitEmptyHash, "")) {
		t.Fatalf("Validate() error = %v, want empty hash error", err)
	}
	if err := (Commit{Hash: "abc123"}).Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"feat: add login", "feat"},
		{"fix: crash on empty input", "fix"},
		{"docs: update readme", "docs"},
		{"refactor: extract helpers", "refactor"},
		{"test: cover edge cases", "test"},
		{"chore: bump deps", "chore"},
		{"Merge branch 'main' into dev", "merge"},
		{"Revert \"feat: add login\"", "revert"},
		{"update stuff", "feat"},
	}
	for _, tc := range tests {
		if got := (Commit{Message: tc.message}).Class(); got != tc.want {
			t.Fatalf("Class(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestSplitChaptersEmptyHistory(t *testing.T) {
	if got := SplitChapters(testRegistry(t), nil); got != nil {
		t.Fatalf("SplitChapters(nil) = %v, want nil", got)
	}
}

func TestSplitChaptersDeterministic(t *testing.T) {
	reg := testRegistry(t)
	commits := historyFixture()

	first := SplitChapters(reg, commits)
	second := SplitChapters(reg, commits)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Type != second[i].Type {
			t.Fatalf("chapter %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSplitChaptersStartsWithInitial(t *testing.T) {
	chapters := SplitChapters(testRegistry(t), historyFixture())
	if len(chapters) == 0 {
		t.Fatalf("no chapters")
	}
	if chapters[0].Type != content.ChapterInitial {
		t.Fatalf("first chapter type = %s, want initial", chapters[0].Type)
	}
	if chapters[0].StartIndex != 0 {
		t.Fatalf("first chapter StartIndex = %d, want 0", chapters[0].StartIndex)
	}
}

func TestSplitChaptersCoversEveryCommit(t *testing.T) {
	commits := historyFixture()
	chapters := SplitChapters(testRegistry(t), commits)

	covered := 0
	prevEnd := -1
	for _, ch := range chapters {
		if ch.StartIndex != prevEnd+1 {
			t.Fatalf("chapter %d starts at %d, want %d", ch.Index, ch.StartIndex, prevEnd+1)
		}
		if got := ch.EndIndex - ch.StartIndex + 1; got != len(ch.Commits) {
			t.Fatalf("chapter %d spans %d commits but holds %d", ch.Index, got, len(ch.Commits))
		}
		covered += len(ch.Commits)
		prevEnd = ch.EndIndex
	}
	if covered != len(commits) {
		t.Fatalf("covered %d commits, want %d", covered, len(commits))
	}
	if prevEnd != len(commits)-1 {
		t.Fatalf("last chapter ends at %d, want %d", prevEnd, len(commits)-1)
	}
}

func TestSplitChaptersIndexesSequential(t *testing.T) {
	chapters := SplitChapters(testRegistry(t), historyFixture())
	for i, ch := range chapters {
		if ch.Index != i {
			t.Fatalf("chapter %d Index = %d", i, ch.Index)
		}
		if want := fmt.Sprintf("chapter_%d", i); ch.ID != want {
			t.Fatalf("chapter %d ID = %q, want %q", i, ch.ID, want)
		}
	}
}

func TestSplitChaptersRespectsMaxCommits(t *testing.T) {
	reg := testRegistry(t)
	// One long run of same-type commits must still cut at the chapter max.
	var commits []Commit
	for i := 0; i < 80; i++ {
		commits = append(commits, Commit{
			Hash:    fmt.Sprintf("%040d", i),
			Message: fmt.Sprintf("feat: step %d", i),
		})
	}
	chapters := SplitChapters(reg, commits)
	if len(chapters) < 2 {
		t.Fatalf("chapters = %d, want long history split", len(chapters))
	}
	featureCfg, _ := reg.ChapterConfig(content.ChapterFeature)
	for _, ch := range chapters {
		if len(ch.Commits) > featureCfg.MaxCommits {
			t.Fatalf("chapter %d has %d commits, max %d", ch.Index, len(ch.Commits), featureCfg.MaxCommits)
		}
	}
}

func TestDeriveEnemyStatsFloors(t *testing.T) {
	stats := DeriveEnemyStats(Commit{Hash: "a", Message: "feat: tiny", Additions: 1}, 0)
	if stats.MaxHP != 20 {
		t.Fatalf("MaxHP = %d, want floor 20", stats.MaxHP)
	}
	if stats.Attack != int(5*1.2) {
		t.Fatalf("Attack = %d, want %d", stats.Attack, int(5*1.2))
	}
	if stats.Defense != 1 {
		t.Fatalf("Defense = %d, want floor 1", stats.Defense)
	}
}

func TestDeriveEnemyStatsScalesWithChanges(t *testing.T) {
	small := DeriveEnemyStats(Commit{Hash: "a", Message: "feat: small", Additions: 30}, 0)
	large := DeriveEnemyStats(Commit{Hash: "b", Message: "feat: large", Additions: 300}, 0)
	if large.MaxHP <= small.MaxHP || large.Attack <= small.Attack {
		t.Fatalf("large commit enemy %+v not tougher than %+v", large, small)
	}
}

func TestDeriveEnemyStatsChapterScaling(t *testing.T) {
	c := Commit{Hash: "a", Message: "fix: crash", Additions: 50}
	ch0 := DeriveEnemyStats(c, 0)
	ch3 := DeriveEnemyStats(c, 3)
	if ch3.MaxHP != int(float64(100)*0.8*1.3) {
		t.Fatalf("MaxHP = %d, want %d", ch3.MaxHP, int(float64(100)*0.8*1.3))
	}
	if ch3.GoldReward <= ch0.GoldReward {
		t.Fatalf("GoldReward did not grow: %d vs %d", ch3.GoldReward, ch0.GoldReward)
	}
}

func TestDeriveEnemyStatsMergeIsToughest(t *testing.T) {
	base := Commit{Hash: "a", Additions: 100}
	docs := base
	docs.Message = "docs: notes"
	merge := base
	merge.Message = "Merge branch 'release'"
	if DeriveEnemyStats(merge, 0).MaxHP <= DeriveEnemyStats(docs, 0).MaxHP {
		t.Fatalf("merge enemy should out-tank docs enemy")
	}
}

func historyFixture() []Commit {
	return []Commit{
		{Hash: "c00", Message: "initial commit", Additions: 120},
		{Hash: "c01", Message: "chore: scaffold project", Additions: 300},
		{Hash: "c02", Message: "feat: add parser", Additions: 80},
		{Hash: "c03", Message: "feat: add routing", Additions: 150},
		{Hash: "c04", Message: "feat: add sessions", Additions: 90},
		{Hash: "c05", Message: "feat: add cache layer", Additions: 60},
		{Hash: "c06", Message: "feat: add metrics", Additions: 45},
		{Hash: "c07", Message: "fix: crash on empty body", Additions: 12, Deletions: 4},
		{Hash: "c08", Message: "fix: race in worker pool", Additions: 30},
		{Hash: "c09", Message: "fix: off-by-one in pager", Additions: 8},
		{Hash: "c10", Message: "Merge branch 'feature/cache'", Additions: 0},
		{Hash: "c11", Message: "release: v1.0.0", Additions: 5},
		{Hash: "c12", Message: "fix: hotfix for prod outage", Additions: 25},
	}
}
