package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestUpSection(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id TEXT);\n-- +migrate Down\nDROP TABLE a;\n"
	got := strings.TrimSpace(upSection(content))
	if got != "CREATE TABLE a (id TEXT);" {
		t.Fatalf("unexpected up section: %q", got)
	}

	bare := "CREATE TABLE b (id TEXT);"
	if upSection(bare) != bare {
		t.Fatalf("expected unmarked content returned whole")
	}
}

func TestApplyRunsOncePerFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer sqlDB.Close()

	migrationFS := fstest.MapFS{
		"0001_init.sql": &fstest.MapFile{Data: []byte(
			"-- +migrate Up\nCREATE TABLE things (id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE things;\n",
		)},
	}

	if err := Apply(sqlDB, migrationFS, "."); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// A second run must skip the already-applied file.
	if err := Apply(sqlDB, migrationFS, "."); err != nil {
		t.Fatalf("Apply rerun: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
	if _, err := sqlDB.Exec("INSERT INTO things (id) VALUES ('x')"); err != nil {
		t.Fatalf("migrated table unusable: %v", err)
	}
}
