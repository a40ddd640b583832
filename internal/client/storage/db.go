// Package storage opens the local SQLite database and brings its schema up
// to date with the embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/pwkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/pwkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pwkeeper/internal/filex"
	"github.com/pressly/goose/v3"
	bolt "go.etcd.io/bbolt"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// boltTimeout bounds the wait for the bolt file lock held by another process.
const boltTimeout = time.Second

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the database at dsn and migrates it. For a
// file path the parent directory is created first.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn != MemoryDSN {
		if _, err := filex.EnsureDir(filepath.Dir(dsn)); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps :memory:
	// databases consistent across calls.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenStore opens the database at dsn and wraps it in a metadata.Store.
// The returned close function releases the database.
func OpenStore(ctx context.Context, dsn string) (*metadata.SQLiteStore, func() error, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return metadata.NewSQLiteStore(db), db.Close, nil
}

// OpenBoltStore opens (creating if needed) a bolt file at path.
func OpenBoltStore(path string) (*metadata.BoltStore, func() error, error) {
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltTimeout})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	s, err := metadata.NewBoltStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, db.Close, nil
}

// OpenBackend opens the metadata store for the named backend.
func OpenBackend(ctx context.Context, backend, path string) (metadata.Store, func() error, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenStore(ctx, path)
	case BackendBolt:
		return OpenBoltStore(path)
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
}
