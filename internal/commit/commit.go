// Package commit models git history records and turns them into chapter
// segments and encounter stats. Everything here is pure: the same commit
// list always segments into the same chapters, and enemy stats derive only
// from the commit's shape and the chapter index.
package commit

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/platform/errors"
)

// Commit is one git history record, pre-parsed from a `git log` export.
type Commit struct {
	Hash         string    `json:"hash"`
	ShortHash    string    `json:"short_hash"`
	Message      string    `json:"message"`
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email"`
	CommittedAt  time.Time `json:"committed_at"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	FilesChanged int       `json:"files_changed"`
}

// Validate checks the fields a run needs.
func (c Commit) Validate() error {
	if strings.TrimSpace(c.Hash) == "" {
		return errors.New(errors.CodeCommitEmptyHash, "commit hash is required")
	}
	return nil
}

// Changes returns the total lines touched.
func (c Commit) Changes() int {
	return c.Additions + c.Deletions
}

// Class returns the conventional-commit class of the message. Merge commits
// win over prefixes; anything unrecognized classifies as feat.
func (c Commit) Class() string {
	msg := strings.ToLower(strings.TrimSpace(c.Message))
	if strings.HasPrefix(msg, "merge") {
		return "merge"
	}
	if strings.HasPrefix(msg, "revert") {
		return "revert"
	}
	for _, class := range []string{"feat", "fix", "docs", "refactor", "test", "chore"} {
		if strings.HasPrefix(msg, class) {
			return class
		}
	}
	return "feat"
}

// Chapter is one contiguous run of commits sharing a narrative type.
type Chapter struct {
	ID         string
	Index      int
	Type       content.ChapterType
	Commits    []Commit
	StartIndex int
	EndIndex   int
}

// EnemyCount returns how many encounters the chapter seeds.
func (ch Chapter) EnemyCount() int {
	return len(ch.Commits)
}

// chapterTypeFor classifies one commit's chapter affinity. The first two
// commits of a history are always the initial chapter; message patterns win
// over position, and unclassified commits fall back to a position ratio.
func chapterTypeFor(index, total int, message string) content.ChapterType {
	msg := strings.ToLower(message)

	if index < 2 {
		return content.ChapterInitial
	}
	switch {
	case strings.Contains(msg, "merge") || strings.Contains(msg, "integration"):
		return content.ChapterIntegration
	case strings.Contains(msg, "release") || strings.Contains(msg, "version") || strings.Contains(msg, "tag"):
		return content.ChapterLegacy
	case strings.HasPrefix(msg, "fix") || strings.Contains(msg, " bug") || strings.Contains(msg, "hotfix"):
		return content.ChapterFix
	case strings.HasPrefix(msg, "feat"):
		return content.ChapterFeature
	}

	ratio := float64(index) / float64(total)
	switch {
	case ratio < 0.4:
		return content.ChapterFeature
	case ratio < 0.7:
		return content.ChapterFix
	default:
		return content.ChapterLegacy
	}
}

// shouldSwitch reports whether a new chapter starts before this commit.
// Integration and legacy chapters cut on any type change; other types hold
// until their configured minimum, and every type cuts at its maximum.
func shouldSwitch(reg *content.Registry, current, next content.ChapterType, count int) bool {
	cfg, ok := reg.ChapterConfig(current)
	if !ok {
		return current != next
	}
	if current != next {
		if current == content.ChapterIntegration || current == content.ChapterLegacy {
			return count >= 1
		}
		return count >= cfg.MinCommits
	}
	return count >= cfg.MaxCommits
}

// SplitChapters segments commits into chapters using the registry's chapter
// configs for minimum and maximum lengths. An empty history yields no
// chapters.
func SplitChapters(reg *content.Registry, commits []Commit) []Chapter {
	if len(commits) == 0 {
		return nil
	}
	total := len(commits)

	var chapters []Chapter
	currentType := chapterTypeFor(0, total, commits[0].Message)
	var current []Commit
	startIndex := 0

	finalize := func(endIndex int) {
		chapters = append(chapters, newChapter(current, currentType, startIndex, endIndex, len(chapters)))
	}

	for i, c := range commits {
		nextType := chapterTypeFor(i, total, c.Message)
		if len(current) > 0 && shouldSwitch(reg, currentType, nextType, len(current)) {
			finalize(i - 1)
			currentType = nextType
			current = []Commit{c}
			startIndex = i
			continue
		}
		current = append(current, c)
	}
	if len(current) > 0 {
		finalize(total - 1)
	}
	return chapters
}

func newChapter(commits []Commit, chType content.ChapterType, start, end, num int) Chapter {
	return Chapter{
		ID:         fmt.Sprintf("chapter_%d", num),
		Index:      num,
		Type:       chType,
		Commits:    append([]Commit(nil), commits...),
		StartIndex: start,
		EndIndex:   end,
	}
}
