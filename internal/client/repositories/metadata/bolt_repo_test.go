package metadata

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openBolt(t *testing.T, path string) *bolt.DB {
	t.Helper()
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	return db
}

func newBoltStore(t *testing.T, path string) *BoltStore {
	t.Helper()
	db := openBolt(t, path)
	t.Cleanup(func() { _ = db.Close() })
	s, err := NewBoltStore(db)
	require.NoError(t, err)
	return s
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "meta.bolt")

	db := openBolt(t, path)
	s, err := NewBoltStore(db)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyDarkMode, []byte("enabled")))
	require.NoError(t, db.Close())

	s = newBoltStore(t, path)
	v, err := s.Get(ctx, KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, []byte("enabled"), v)
}

func TestBoltStore_UpdateRollsBackOnPanic(t *testing.T) {
	s := newBoltStore(t, filepath.Join(t.TempDir(), "meta.bolt"))
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.Update(ctx, func(ctx context.Context, repo Repository) error {
			require.NoError(t, repo.Set(ctx, "k", []byte("v")))
			panic("kaput")
		})
	})

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestBoltStore_ValuesOutliveTransaction(t *testing.T) {
	s := newBoltStore(t, filepath.Join(t.TempDir(), "meta.bolt"))
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'X'

	require.NoError(t, s.Set(ctx, "other", []byte("zzz")))
	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)
}

func TestBoltStore_ClosedDB(t *testing.T) {
	db := openBolt(t, filepath.Join(t.TempDir(), "meta.bolt"))
	s, err := NewBoltStore(db)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = s.Get(context.Background(), "k")
	require.Error(t, err)
	require.ErrorContains(t, s.Set(context.Background(), "k", []byte("v")), "metadata update")
}

func TestBoltStore_UpdateHonoursCancelledContext(t *testing.T) {
	s := newBoltStore(t, filepath.Join(t.TempDir(), "meta.bolt"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Update(ctx, func(context.Context, Repository) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
