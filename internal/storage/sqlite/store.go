// Package sqlite provides the SQLite-backed implementation of every
// storage interface. Nested aggregate slices are persisted as JSON
// columns; timestamps are stored as UTC millisecond integers.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/trench-tools/trenchmate/internal/platform/storage/sqlitemigrate"
	"github.com/trench-tools/trenchmate/internal/storage"
	"github.com/trench-tools/trenchmate/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed store implementing all storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ storage.CampaignStore    = (*Store)(nil)
	_ storage.RosterStore      = (*Store)(nil)
	_ storage.CatalogStore     = (*Store)(nil)
	_ storage.TableStore       = (*Store)(nil)
	_ storage.PostGameStore    = (*Store)(nil)
	_ storage.GameSessionStore = (*Store)(nil)
)

// Open opens and migrates a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
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

	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// marshalJSON encodes a nested aggregate slice for a JSON column. A nil
// slice is stored as an empty array so scans round-trip cleanly.
func marshalJSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshal json column: %w", err)
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

func unmarshalJSON(data string, target any) error {
	if strings.TrimSpace(data) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), target); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}
