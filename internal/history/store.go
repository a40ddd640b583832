package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/pwkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"github.com/dmitrijs2005/pwkeeper/internal/cryptox"
	"github.com/dmitrijs2005/pwkeeper/internal/logging"
)

// DefaultCapacity is the number of entries kept.
const DefaultCapacity = 10

// State of a Store.
type State int

const (
	// StateEmpty: nothing persisted and no key in memory.
	StateEmpty State = iota
	// StateLocked: a blob is persisted but no key is held.
	StateLocked
	// StateUnlocked: a key is held and the in-memory list mirrors the last
	// decrypted or written blob.
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options tune a Store. Zero values select defaults.
type Options struct {
	// Capacity caps the list length. Values <= 0 select DefaultCapacity and
	// larger values are clamped to it.
	Capacity int
	// Scheme protects a newly created history; cryptox.DefaultScheme() when
	// zero. An existing history is always reopened with the scheme it was
	// written with.
	Scheme cryptox.Scheme
	Logger logging.Logger
	Now    func() time.Time
}

// session is the key material held while unlocked.
type session struct {
	key    []byte
	scheme cryptox.Scheme
	cipher cryptox.Cipher
}

func (s *session) wipe() {
	common.WipeByteArray(s.key)
	s.key = nil
}

// Store owns the history list and the derived key for the lifetime of a
// session. All methods are safe for concurrent use; Append, Load, Delete and
// Clear are mutually exclusive, including while waiting on the prompter.
type Store struct {
	mu       sync.Mutex
	repo     metadata.Store
	prompter Prompter
	log      logging.Logger
	now      func() time.Time
	capacity int
	scheme   cryptox.Scheme

	active  *session
	entries List
}

// New builds a Store over repo. The configured scheme is validated up front.
func New(repo metadata.Store, prompter Prompter, opts Options) (*Store, error) {
	s := &Store{
		repo:     repo,
		prompter: prompter,
		log:      opts.Logger,
		now:      opts.Now,
		capacity: opts.Capacity,
		scheme:   opts.Scheme,
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.With("component", "history")
	if s.now == nil {
		s.now = time.Now
	}
	if s.capacity <= 0 || s.capacity > DefaultCapacity {
		s.capacity = DefaultCapacity
	}
	if s.scheme == (cryptox.Scheme{}) {
		s.scheme = cryptox.DefaultScheme()
	}
	if err := s.scheme.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// State reports the current lifecycle state.
func (s *Store) State(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return StateUnlocked, nil
	}
	data, err := s.repo.Get(ctx, metadata.KeyEncryptedHistory)
	if err != nil {
		return StateEmpty, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	if data == nil {
		return StateEmpty, nil
	}
	return StateLocked, nil
}

// Entries returns a copy of the in-memory list, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Capacity is the maximum number of entries kept.
func (s *Store) Capacity() int {
	return s.capacity
}

// Append records password as the newest entry and persists the whole list.
//
// Without a key in memory the user is prompted first: for a new history the
// passphrase is set, for an existing one it must open the stored blob,
// which is decrypted before anything is written so an old history is never
// overwritten by a wrong passphrase.
//
// If persisting fails the entry stays in memory and the error wraps
// common.ErrPersistence.
func (s *Store) Append(ctx context.Context, password string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		if err := s.unlockForWrite(ctx); err != nil {
			return Entry{}, err
		}
	}

	e := NewEntry(password, s.now())
	s.entries = s.entries.Insert(e, s.capacity)

	if err := s.persist(ctx); err != nil {
		return e, err
	}
	s.log.Debug(ctx, "history entry appended", "entries", len(s.entries))
	return e, nil
}

func (s *Store) unlockForWrite(ctx context.Context) error {
	data, scheme, err := s.readPersisted(ctx)
	if err != nil {
		return err
	}

	if data == nil {
		sess, err := s.unlock(ctx, IntentSet, s.scheme)
		if err != nil {
			return err
		}
		s.active = sess
		s.entries = nil
		s.log.Info(ctx, "new history created", "kdf", sess.scheme.KDF, "cipher", sess.scheme.Cipher)
		return nil
	}

	sess, err := s.unlock(ctx, IntentAccess, scheme)
	if err != nil {
		return err
	}
	entries, err := s.open(sess, data)
	if err != nil {
		sess.wipe()
		s.log.Warn(ctx, "history unlock failed")
		return err
	}
	s.active = sess
	s.entries = entries
	return nil
}

// Load replaces the in-memory list with the persisted one.
//
// With nothing persisted the list is emptied and no prompt is shown.
// Otherwise the held key is used, or the user is prompted for one. A wrong
// passphrase or corrupted blob returns common.ErrAuthenticationFailure,
// discards the key and empties the list; it is not retried. A cancelled
// prompt returns common.ErrPromptCancelled and changes nothing.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, scheme, err := s.readPersisted(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		s.entries = nil
		return nil, nil
	}

	sess := s.active
	if sess == nil {
		sess, err = s.unlock(ctx, IntentAccess, scheme)
		if err != nil {
			return nil, err
		}
	}

	entries, err := s.open(sess, data)
	if err != nil {
		sess.wipe()
		s.active = nil
		s.entries = nil
		s.log.Warn(ctx, "history load failed")
		return nil, err
	}

	s.active = sess
	s.entries = entries
	s.log.Info(ctx, "history loaded", "entries", len(entries))
	return slices.Clone(entries), nil
}

// Delete removes the entry at index (0 is the newest) and persists the
// shortened list so the deletion survives a reload.
func (s *Store) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return common.ErrLocked
	}

	entries, err := s.entries.Remove(index)
	if err != nil {
		return err
	}
	s.entries = entries

	return s.persist(ctx)
}

// Lock forgets the key and the in-memory list. The persisted blob is kept.
func (s *Store) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lock()
}

func (s *Store) lock() {
	if s.active != nil {
		s.active.wipe()
		s.active = nil
	}
	s.entries = nil
}

// Clear deletes the persisted history and locks the store.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		if err := repo.Delete(ctx, metadata.KeyEncryptedHistory); err != nil {
			return err
		}
		return repo.Delete(ctx, metadata.KeyHistoryScheme)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}

	s.lock()
	s.log.Info(ctx, "history cleared")
	return nil
}

// readPersisted returns the stored blob (nil if none) and the scheme it was
// written with.
func (s *Store) readPersisted(ctx context.Context) ([]byte, cryptox.Scheme, error) {
	data, err := s.repo.Get(ctx, metadata.KeyEncryptedHistory)
	if err != nil {
		return nil, cryptox.Scheme{}, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	if data == nil {
		return nil, cryptox.Scheme{}, nil
	}

	raw, err := s.repo.Get(ctx, metadata.KeyHistoryScheme)
	if err != nil {
		return nil, cryptox.Scheme{}, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	// An unreadable scheme record is treated like a damaged blob.
	scheme, err := cryptox.DecodeScheme(raw)
	if err != nil {
		return nil, cryptox.Scheme{}, fmt.Errorf("%w: %w", common.ErrAuthenticationFailure, err)
	}
	return data, scheme, nil
}

// unlock prompts for a passphrase and derives a key for scheme.
func (s *Store) unlock(ctx context.Context, intent Intent, scheme cryptox.Scheme) (*session, error) {
	deriver, err := scheme.NewDeriver()
	if err != nil {
		return nil, err
	}
	c, err := scheme.NewCipher()
	if err != nil {
		return nil, err
	}

	passphrase, err := s.prompter.PromptPassphrase(ctx, intent)
	if err != nil {
		if errors.Is(err, common.ErrPromptCancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.log.Debug(ctx, "passphrase prompt cancelled", "intent", string(intent))
			return nil, common.ErrPromptCancelled
		}
		return nil, fmt.Errorf("passphrase prompt: %w", err)
	}
	if passphrase == nil {
		return nil, common.ErrPromptCancelled
	}
	defer common.WipeByteArray(passphrase)

	if len(passphrase) < MinPassphraseLength {
		return nil, common.ErrWeakPassphrase
	}

	return &session{key: deriver.DeriveKey(passphrase), scheme: scheme, cipher: c}, nil
}

// open decrypts and validates a stored blob.
func (s *Store) open(sess *session, data []byte) (List, error) {
	blob, err := cryptox.DecodeBlob(data)
	if err != nil {
		return nil, err
	}

	var entries List
	if err := cryptox.DecryptJSON(sess.cipher, blob, sess.key, &entries); err != nil {
		return nil, err
	}
	if err := entries.validate(); err != nil {
		return nil, common.ErrAuthenticationFailure
	}

	entries.SortByRecency()
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	return entries, nil
}

// persist encrypts the full list with a fresh nonce and replaces the stored
// blob and scheme in one transaction.
func (s *Store) persist(ctx context.Context) error {
	payload := s.entries
	if payload == nil {
		payload = List{}
	}

	blob, err := cryptox.EncryptJSON(s.active.cipher, payload, s.active.key)
	if err != nil {
		return fmt.Errorf("encrypt history: %w", err)
	}
	data, err := cryptox.EncodeBlob(blob)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	scheme, err := json.Marshal(s.active.scheme)
	if err != nil {
		return fmt.Errorf("encode scheme: %w", err)
	}

	err = s.repo.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		if err := repo.Set(ctx, metadata.KeyEncryptedHistory, data); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyHistoryScheme, scheme)
	})
	if err != nil {
		s.log.Error(ctx, "history not saved", "error", err)
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return nil
}
