// Package history keeps the encrypted list of recently generated passwords.
//
// The list lives in memory only while the Store is unlocked; on disk it
// exists solely as an AEAD-encrypted blob under a key derived from the
// user's master passphrase. See Store for the lifecycle.
package history

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"github.com/google/uuid"
)

// DateLayout renders Entry.Date.
const DateLayout = "2006-01-02 15:04:05"

// Entry is one remembered password. Timestamp is Unix milliseconds and is
// the ordering key; Date is for display only.
type Entry struct {
	ID        string `json:"id,omitempty"`
	Password  string `json:"password"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

func NewEntry(password string, at time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Password:  password,
		Date:      at.Local().Format(DateLayout),
		Timestamp: at.UnixMilli(),
	}
}

func (e Entry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// List is ordered newest first.
type List []Entry

// Insert returns a new list with e at the front and at most capacity
// entries; the oldest entries fall off the tail.
func (l List) Insert(e Entry, capacity int) List {
	out := make(List, 0, min(len(l)+1, capacity))
	out = append(out, e)
	for _, x := range l {
		if len(out) == capacity {
			break
		}
		out = append(out, x)
	}
	return out
}

// Remove returns a new list without the entry at index i.
func (l List) Remove(i int) (List, error) {
	if i < 0 || i >= len(l) {
		return l, fmt.Errorf("%w: %d (have %d)", common.ErrIndexOutOfRange, i, len(l))
	}
	return slices.Delete(slices.Clone(l), i, i+1), nil
}

// SortByRecency orders l by Timestamp, newest first. Equal timestamps keep
// their relative order.
func (l List) SortByRecency() {
	slices.SortStableFunc(l, func(a, b Entry) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
}

func (l List) validate() error {
	for i, e := range l {
		if e.Password == "" {
			return fmt.Errorf("entry %d has no password", i)
		}
	}
	return nil
}
