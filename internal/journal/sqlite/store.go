// Package sqlite provides the SQLite-backed journal store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/gitdungeon/internal/journal"
	"github.com/louisbranch/gitdungeon/internal/journal/sqlite/migrations"
	"github.com/louisbranch/gitdungeon/internal/platform/errors"
	"github.com/louisbranch/gitdungeon/internal/platform/storage/sqlitemigrate"
)

const timeFormat = time.RFC3339Nano

// Store implements journal.Store on a single SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the journal database at path, creating it and applying
// migrations on first use.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(errors.CodeJournalPathRequired, "journal path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateRun inserts a new run row.
func (s *Store) CreateRun(ctx context.Context, run journal.Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("run id is required")
	}
	startedAt := run.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO runs (id, seed, character_id, difficulty, mutator, result, started_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.CharacterID, run.Difficulty, run.Mutator, run.Result,
		startedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// AppendRecords writes a batch of event records in one transaction. The
// batch is all-or-nothing so sequence numbers stay gapless.
func (s *Store) AppendRecords(ctx context.Context, records []journal.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.CodeJournalAppend, "begin append transaction", err)
	}
	for _, rec := range records {
		data, err := json.Marshal(rec.Data)
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrap(errors.CodeJournalAppend, "encode record data", err)
		}
		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO run_records (run_id, seq, chapter_index, type, data, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
			rec.RunID, rec.Seq, rec.ChapterIndex, rec.Type, string(data),
			createdAt.Format(timeFormat),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(errors.CodeJournalAppend,
				fmt.Sprintf("insert record %d for run %s", rec.Seq, rec.RunID), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.CodeJournalAppend, "commit append transaction", err)
	}
	return nil
}

// FinishRun stamps the run's result and finish time.
func (s *Store) FinishRun(ctx context.Context, runID, result string) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE runs SET result = ?, finished_at = ? WHERE id = ?`,
		result, time.Now().UTC().Format(timeFormat), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows affected: %w", err)
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, fmt.Sprintf("run %s not found", runID))
	}
	return nil
}

// GetRun loads one run by id.
func (s *Store) GetRun(ctx context.Context, runID string) (journal.Run, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, seed, character_id, difficulty, mutator, result, started_at, finished_at
FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return journal.Run{}, errors.New(errors.CodeNotFound, fmt.Sprintf("run %s not found", runID))
	}
	if err != nil {
		return journal.Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]journal.Run, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, seed, character_id, difficulty, mutator, result, started_at, finished_at
FROM runs ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []journal.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunRecords returns a run's records in sequence order.
func (s *Store) RunRecords(ctx context.Context, runID string) ([]journal.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT run_id, seq, chapter_index, type, data, created_at
FROM run_records WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []journal.Record
	for rows.Next() {
		var rec journal.Record
		var data, createdAt string
		if err := rows.Scan(&rec.RunID, &rec.Seq, &rec.ChapterIndex, &rec.Type, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if data != "" {
			if err := json.Unmarshal([]byte(data), &rec.Data); err != nil {
				return nil, fmt.Errorf("decode record %d data: %w", rec.Seq, err)
			}
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (journal.Run, error) {
	var run journal.Run
	var startedAt, finishedAt string
	if err := row.Scan(&run.ID, &run.Seed, &run.CharacterID, &run.Difficulty,
		&run.Mutator, &run.Result, &startedAt, &finishedAt); err != nil {
		return journal.Run{}, err
	}
	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseTime(finishedAt)
	return run, nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
