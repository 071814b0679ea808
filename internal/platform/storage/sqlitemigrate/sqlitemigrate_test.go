package sqlitemigrate

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func migrationFS(name, body string) fstest.MapFS {
	return fstest.MapFS{name: &fstest.MapFile{Data: []byte(body)}}
}

func TestApplyMigrationsCreatesAndRecords(t *testing.T) {
	db := openTestDB(t)

	fsys := migrationFS("001_runs.sql", "-- +migrate Up\nCREATE TABLE runs(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE runs;")
	if err := ApplyMigrations(db, fsys, ""); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}

	if got := countRows(t, db, "schema_migrations"); got != 1 {
		t.Errorf("schema_migrations rows = %d, want 1", got)
	}
	if !tableExists(t, db, "runs") {
		t.Error("runs table missing after migration")
	}
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	db := openTestDB(t)

	fsys := migrationFS("001_runs.sql", "-- +migrate Up\nCREATE TABLE runs(id TEXT PRIMARY KEY);")
	for i := 0; i < 2; i++ {
		if err := ApplyMigrations(db, fsys, ""); err != nil {
			t.Fatalf("ApplyMigrations() pass %d error = %v", i+1, err)
		}
	}

	if got := countRows(t, db, "schema_migrations"); got != 1 {
		t.Errorf("schema_migrations rows = %d, want 1 after replay", got)
	}
}

func TestApplyMigrationsFailureStaysUnrecorded(t *testing.T) {
	db := openTestDB(t)

	bad := migrationFS("001_runs.sql", "-- +migrate Up\nCREAT TABLE runs(id TEXT);")
	if err := ApplyMigrations(db, bad, ""); err == nil {
		t.Fatal("ApplyMigrations() with broken SQL succeeded, want error")
	}
	if got := countRows(t, db, "schema_migrations"); got != 0 {
		t.Fatalf("schema_migrations rows = %d, want 0 after failure", got)
	}

	fixed := migrationFS("001_runs.sql", "-- +migrate Up\nCREATE TABLE runs(id TEXT PRIMARY KEY);")
	if err := ApplyMigrations(db, fixed, ""); err != nil {
		t.Fatalf("ApplyMigrations() after fix error = %v", err)
	}
	if got := countRows(t, db, "schema_migrations"); got != 1 {
		t.Errorf("schema_migrations rows = %d, want 1 after fix", got)
	}
}

func TestApplyMigrationsUsesRootAsKey(t *testing.T) {
	db := openTestDB(t)

	fsys := migrationFS("journal/001_runs.sql", "-- +migrate Up\nCREATE TABLE runs(id TEXT PRIMARY KEY);")
	if err := ApplyMigrations(db, fsys, "journal"); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}

	var key string
	if err := db.QueryRow("SELECT name FROM schema_migrations").Scan(&key); err != nil {
		t.Fatalf("read migration key: %v", err)
	}
	if key != "journal/001_runs.sql" {
		t.Errorf("migration key = %q, want %q", key, "journal/001_runs.sql")
	}
}

func TestApplyMigrationsOrdersLexically(t *testing.T) {
	db := openTestDB(t)

	fsys := fstest.MapFS{
		"002_records.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE records(run_id TEXT REFERENCES runs(id));")},
		"001_runs.sql":    &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE runs(id TEXT PRIMARY KEY);")},
	}
	if err := ApplyMigrations(db, fsys, ""); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if !tableExists(t, db, "records") {
		t.Error("records table missing after ordered migration")
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"both markers", "-- +migrate Up\nCREATE TABLE a(x);\n-- +migrate Down\nDROP TABLE a;", "\nCREATE TABLE a(x);\n"},
		{"up only", "-- +migrate Up\nCREATE TABLE a(x);", "\nCREATE TABLE a(x);"},
		{"no markers", "CREATE TABLE a(x);", "CREATE TABLE a(x);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpSection(tt.content); got != tt.want {
				t.Errorf("UpSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s rows: %v", table, err)
	}
	return n
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("check table %s: %v", table, err)
	}
	return true
}
