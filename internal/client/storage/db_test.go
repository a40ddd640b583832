package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/pwkeeper/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

func TestOpen_MemoryCreatesMetadataTable(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='metadata'`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "metadata", name)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db))
}

func TestOpenStore_FilePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	s, closeFn, err := OpenStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, metadata.KeyEncryptedHistory, []byte(`{"ciphertext":[1],"nonce":[2]}`)))
	require.NoError(t, closeFn())

	_, err = os.Stat(path)
	require.NoError(t, err)

	s, closeFn, err = OpenStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	v, err := s.Get(ctx, metadata.KeyEncryptedHistory)
	require.NoError(t, err)
	require.Equal(t, `{"ciphertext":[1],"nonce":[2]}`, string(v))
}

func TestOpen_FailsWhenParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := Open(context.Background(), filepath.Join(blocker, "history.db"))
	require.Error(t, err)
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, backend := range []string{BackendSQLite, BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(dir, backend, "history.db")

			s, closeFn, err := OpenBackend(ctx, backend, path)
			require.NoError(t, err)
			require.NoError(t, s.Set(ctx, metadata.KeyDarkMode, []byte("enabled")))
			require.NoError(t, closeFn())

			s, closeFn, err = OpenBackend(ctx, backend, path)
			require.NoError(t, err)
			t.Cleanup(func() { _ = closeFn() })

			v, err := s.Get(ctx, metadata.KeyDarkMode)
			require.NoError(t, err)
			require.Equal(t, "enabled", string(v))
		})
	}
}

func TestOpenBackend_Unknown(t *testing.T) {
	_, _, err := OpenBackend(context.Background(), "leveldb", filepath.Join(t.TempDir(), "x"))
	require.ErrorContains(t, err, `unknown storage backend "leveldb"`)
}
