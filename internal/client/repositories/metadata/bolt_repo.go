package metadata

import (
	"bytes"
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// boltBucket holds every key of the store.
var boltBucket = []byte("metadata")

// boltRepository is a Repository bound to a single bolt transaction.
// Values returned by bolt are only valid inside the transaction, so they
// are copied out.
type boltRepository struct {
	tx *bolt.Tx
}

func (r boltRepository) bucket() (*bolt.Bucket, error) {
	b := r.tx.Bucket(boltBucket)
	if b == nil {
		return nil, fmt.Errorf("bucket %q not found", boltBucket)
	}
	return b, nil
}

func (r boltRepository) Get(_ context.Context, key string) ([]byte, error) {
	b, err := r.bucket()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b.Get([]byte(key))), nil
}

func (r boltRepository) Set(_ context.Context, key string, value []byte) error {
	b, err := r.bucket()
	if err != nil {
		return err
	}
	if err := b.Put([]byte(key), bytes.Clone(value)); err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r boltRepository) Delete(_ context.Context, key string) error {
	b, err := r.bucket()
	if err != nil {
		return err
	}
	if err := b.Delete([]byte(key)); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r boltRepository) List(_ context.Context) (map[string][]byte, error) {
	b, err := r.bucket()
	if err != nil {
		return nil, err
	}
	result := make(map[string][]byte)
	err = b.ForEach(func(k, v []byte) error {
		result[string(k)] = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	return result, nil
}

func (r boltRepository) Clear(_ context.Context) error {
	if err := r.tx.DeleteBucket(boltBucket); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	if _, err := r.tx.CreateBucket(boltBucket); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

// BoltStore is a Store over a bolt database file.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates the metadata bucket if needed.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) view(fn func(repo Repository) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(boltRepository{tx: tx})
	})
}

func (s *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.view(func(repo Repository) (err error) {
		v, err = repo.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return v, nil
}

func (s *BoltStore) List(ctx context.Context) (map[string][]byte, error) {
	var m map[string][]byte
	err := s.view(func(repo Repository) (err error) {
		m, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *BoltStore) Set(ctx context.Context, key string, value []byte) error {
	return s.Update(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Set(ctx, key, value)
	})
}

func (s *BoltStore) Delete(ctx context.Context, key string) error {
	return s.Update(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Delete(ctx, key)
	})
}

func (s *BoltStore) Clear(ctx context.Context) error {
	return s.Update(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Clear(ctx)
	})
}

// Update runs fn in a read-write bolt transaction. bolt rolls the
// transaction back when fn returns an error or panics.
func (s *BoltStore) Update(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return fn(ctx, boltRepository{tx: tx})
	})
	if err != nil {
		return fmt.Errorf("metadata update: %w", err)
	}
	return nil
}
