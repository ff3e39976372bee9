// Package docstore provides a generic typed document collection over a
// schemaless SQLite backing store. Every concept owns one or more collections
// and expresses queries as field-equality filters over its own record shape;
// collections are never joined. Composition across concepts happens one layer
// up, in the synchronization layer.
package docstore

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/stagecall/stagecall/internal/docstore/migrations"
	sqlitemigrate "github.com/stagecall/stagecall/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// DB is a handle to the backing store shared by all collections.
type DB struct {
	sqlDB *sql.DB
}

// Open opens the document store at the provided path and applies the schema.
func Open(path string) (*DB, error) {
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

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &DB{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (db *DB) Close() error {
	if db == nil || db.sqlDB == nil {
		return nil
	}
	return db.sqlDB.Close()
}
