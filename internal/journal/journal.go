// Package journal records runs and their event streams for later replay
// and inspection. The engine stays storage-free; callers tee the events
// returned by each Apply call into a journal store.
package journal

import (
	"context"
	"time"
)

// Run is one recorded playthrough.
type Run struct {
	ID          string
	Seed        int64
	CharacterID string
	Difficulty  string
	Mutator     string
	Result      string // empty until the run finishes
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Record is one journaled event.
type Record struct {
	RunID        string
	Seq          int
	ChapterIndex int
	Type         string
	Data         map[string]any
	CreatedAt    time.Time
}

// Store persists runs and their event records.
type Store interface {
	CreateRun(ctx context.Context, run Run) error
	AppendRecords(ctx context.Context, records []Record) error
	FinishRun(ctx context.Context, runID, result string) error
	GetRun(ctx context.Context, runID string) (Run, error)
	ListRuns(ctx context.Context) ([]Run, error)
	RunRecords(ctx context.Context, runID string) ([]Record, error)
	Close() error
}
