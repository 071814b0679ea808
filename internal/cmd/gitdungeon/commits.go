package gitdungeon

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/louisbranch/gitdungeon/internal/commit"
)

// readCommitsFile decodes a JSON array of commit records. Every record
// must carry a hash; anything else is a malformed export.
func readCommitsFile(path string) ([]commit.Commit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read commits file: %w", err)
	}
	var commits []commit.Commit
	if err := json.Unmarshal(data, &commits); err != nil {
		return nil, fmt.Errorf("decode commits file %s: %w", path, err)
	}
	for i, c := range commits {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("commit %d in %s: %w", i, path, err)
		}
	}
	return commits, nil
}

// sampleHistory is a small fictional repository history so the command
// works out of the box without an export file.
func sampleHistory() []commit.Commit {
	base := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	records := []struct {
		hash    string
		message string
		add     int
		del     int
		files   int
	}{
		{"f3a9c1d2e4b5", "feat: initial project scaffolding", 420, 0, 18},
		{"a1b2c3d4e5f6", "docs: add readme and contributing guide", 150, 3, 4},
		{"b2c3d4e5f6a1", "feat: add request router", 260, 12, 9},
		{"c3d4e5f6a1b2", "feat: wire config loading", 140, 8, 5},
		{"d4e5f6a1b2c3", "fix: nil deref when config file missing", 25, 6, 2},
		{"e5f6a1b2c3d4", "fix: off-by-one in pagination cursor", 12, 4, 1},
		{"f6a1b2c3d4e5", "test: cover pagination edge cases", 90, 2, 3},
		{"a2b3c4d5e6f1", "refactor: split handler package", 310, 280, 14},
		{"b3c4d5e6f1a2", "feat: add retry budget to client", 110, 20, 4},
		{"c4d5e6f1a2b3", "Merge branch 'feature/retry-budget'", 0, 0, 0},
		{"d5e6f1a2b3c4", "fix: hotfix for retry storm in prod", 35, 15, 3},
		{"e6f1a2b3c4d5", "chore: bump dependencies", 60, 60, 2},
		{"f1a2b3c4d5e6", "release: version 1.2.0", 8, 2, 2},
		{"a3b4c5d6e7f2", "chore: tag maintenance window", 4, 1, 1},
	}

	commits := make([]commit.Commit, 0, len(records))
	for i, r := range records {
		commits = append(commits, commit.Commit{
			Hash:         r.hash,
			ShortHash:    r.hash[:7],
			Message:      r.message,
			AuthorName:   "Sample Dev",
			AuthorEmail:  "dev@example.com",
			CommittedAt:  base.Add(time.Duration(i) * 6 * time.Hour),
			Additions:    r.add,
			Deletions:    r.del,
			FilesChanged: r.files,
		})
	}
	return commits
}
