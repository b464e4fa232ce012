package domain

import (
	"context"
	"time"

	"github.com/planagil/dailies/internal/services/dailies/storage"
)

// Journal records lifecycle transitions for later inspection. Entries are
// best-effort context for facilitators and do not participate in any
// invariant.
type Journal struct {
	store storage.JournalStore
	clock func() time.Time
}

// NewJournal creates a journal over the given store.
func NewJournal(store storage.JournalStore) *Journal {
	return &Journal{store: store, clock: time.Now}
}

// Record appends a journal entry. It is a no-op when the journal or its
// store is nil, so callers never guard against a disabled journal.
func (j *Journal) Record(ctx context.Context, entry storage.JournalRecord) error {
	if j == nil || j.store == nil {
		return nil
	}
	if entry.At.IsZero() {
		if j.clock == nil {
			entry.At = time.Now().UTC()
		} else {
			entry.At = j.clock().UTC()
		}
	}
	return j.store.AppendJournalEntry(ctx, entry)
}
