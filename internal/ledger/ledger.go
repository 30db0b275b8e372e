// Package ledger owns the ordered list of entries and mirrors it to a
// key-value blob after every mutation.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"budgetbook/internal/core"
	"budgetbook/internal/kv"
	"budgetbook/pkg/id"
)

// BlobKey is the fixed key the serialized ledger lives under.
const BlobKey = "budgetbook/entries"

// ErrNotFound is returned by Update when no entry matches the id.
var ErrNotFound = errors.New("entry not found")

// Ledger is the single owned mutable container for entries. It is created
// by rehydrating the persisted blob and writes the full ledger back after
// each add, update or remove.
type Ledger struct {
	mu      sync.Mutex
	entries []core.Entry
	blobs   kv.Store
}

// Open rehydrates the ledger from the blob store. An absent or malformed
// blob yields an empty ledger, never an error.
func Open(ctx context.Context, blobs kv.Store) *Ledger {
	l := &Ledger{blobs: blobs}

	data, err := blobs.Get(ctx, BlobKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		// first run
	case err != nil:
		slog.WarnContext(ctx, "Ledger load failed, starting empty", "key", BlobKey, "error", err)
	default:
		l.entries = decodeEntries(ctx, data)
	}

	slog.InfoContext(ctx, "Ledger opened", "entries", len(l.entries))
	return l
}

// Add validates the draft, assigns a time-derived ID, appends the entry and
// persists. The amount is normalized to two-decimal fixed point here.
func (l *Ledger) Add(ctx context.Context, draft core.Draft) (core.Entry, error) {
	entry, err := draft.Materialize(id.New())
	if err != nil {
		return core.Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	l.persist(ctx)

	slog.InfoContext(ctx, "Entry added",
		"id", entry.ID,
		"type", entry.Type,
		"amount", entry.Amount.String(),
		"category", entry.Category,
		"date", entry.Date.String())
	return entry, nil
}

// Update replaces the entry matching entryID in place, preserving its ID
// and slice position. Returns ErrNotFound when no entry matches.
func (l *Ledger) Update(ctx context.Context, entryID string, draft core.Draft) (core.Entry, error) {
	entry, err := draft.Materialize(entryID)
	if err != nil {
		return core.Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == entryID {
			l.entries[i] = entry
			l.persist(ctx)
			slog.InfoContext(ctx, "Entry updated", "id", entryID)
			return entry, nil
		}
	}
	return core.Entry{}, ErrNotFound
}

// Remove deletes the entry matching entryID. Removing an unknown id is a
// no-op, not an error.
func (l *Ledger) Remove(ctx context.Context, entryID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == entryID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.persist(ctx)
			slog.InfoContext(ctx, "Entry removed", "id", entryID)
			return nil
		}
	}
	return nil
}

// List returns a copy of the ledger in insertion order.
func (l *Ledger) List() []core.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// persist writes the full ledger to the blob store. Writes are best-effort:
// a failure is logged and the mutation stands; the next mutation writes
// again. Callers must hold l.mu.
func (l *Ledger) persist(ctx context.Context) {
	data, err := encodeEntries(l.entries)
	if err != nil {
		slog.WarnContext(ctx, "Ledger encode failed, skipping persist", "error", err)
		return
	}
	if err := l.blobs.Put(ctx, BlobKey, data); err != nil {
		slog.WarnContext(ctx, "Ledger persist failed", "key", BlobKey, "error", err)
	}
}
