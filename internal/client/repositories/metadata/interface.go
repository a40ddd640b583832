// Package metadata is the string-keyed persistent store behind the history
// vault and user preferences.
//
// Store adds atomic multi-key updates on top of the plain Repository
// operations: everything written inside Update becomes visible together or
// not at all. SQLiteStore works over a database/sql handle and BoltStore
// over a bolt file; MemoryStore serves tests and ephemeral sessions.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyEncryptedHistory = "encryptedHistory"
	KeyHistoryScheme    = "historyScheme"
	KeyDarkMode         = "darkMode"
)

// Repository is a flat key/value table. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Store is a Repository that can apply several writes atomically.
type Store interface {
	Repository
	Update(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
