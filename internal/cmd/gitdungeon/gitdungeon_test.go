package gitdungeon

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.CharacterID != "debug_beatdown" {
		t.Errorf("CharacterID = %q, want %q", cfg.CharacterID, "debug_beatdown")
	}
	if cfg.Difficulty != "normal" {
		t.Errorf("Difficulty = %q, want %q", cfg.Difficulty, "normal")
	}
	if cfg.Locale != "en-US" {
		t.Errorf("Locale = %q, want %q", cfg.Locale, "en-US")
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
}

func TestParseConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("GITDUNGEON_SEED", "111")
	t.Setenv("GITDUNGEON_CHARACTER", "test_shrine")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-seed", "222"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Seed != 222 {
		t.Errorf("Seed = %d, want flag value 222", cfg.Seed)
	}
	if cfg.CharacterID != "test_shrine" {
		t.Errorf("CharacterID = %q, want env value test_shrine", cfg.CharacterID)
	}
}

func TestParseConfigPackListFromEnv(t *testing.T) {
	t.Setenv("GITDUNGEON_PACKS", "a.lua,b.lua")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if len(cfg.PackPaths) != 2 || cfg.PackPaths[0] != "a.lua" || cfg.PackPaths[1] != "b.lua" {
		t.Errorf("PackPaths = %v, want [a.lua b.lua]", cfg.PackPaths)
	}
}

func TestReadCommitsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commits.json")
	body := `[
  {"hash": "abc1234def", "short_hash": "abc1234", "message": "feat: add parser", "additions": 120, "deletions": 10, "files_changed": 4},
  {"hash": "def5678abc", "short_hash": "def5678", "message": "fix: parser panic on empty input", "additions": 8, "deletions": 2, "files_changed": 1}
]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	commits, err := readCommitsFile(path)
	if err != nil {
		t.Fatalf("readCommitsFile() error = %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("len(commits) = %d, want 2", len(commits))
	}
	if commits[0].Message != "feat: add parser" {
		t.Errorf("Message = %q, want %q", commits[0].Message, "feat: add parser")
	}
	if commits[1].Changes() != 10 {
		t.Errorf("Changes() = %d, want 10", commits[1].Changes())
	}
}

func TestReadCommitsFileRejectsMissingHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commits.json")
	if err := os.WriteFile(path, []byte(`[{"message": "feat: no hash"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := readCommitsFile(path); err == nil {
		t.Fatal("readCommitsFile() accepted a commit without a hash")
	}
}

func TestSampleHistoryIsValid(t *testing.T) {
	commits := sampleHistory()
	if len(commits) == 0 {
		t.Fatal("sampleHistory() is empty")
	}
	for i, c := range commits {
		if err := c.Validate(); err != nil {
			t.Fatalf("sample commit %d invalid: %v", i, err)
		}
		if c.ShortHash != c.Hash[:7] {
			t.Errorf("sample commit %d short hash = %q, want %q", i, c.ShortHash, c.Hash[:7])
		}
	}
}
