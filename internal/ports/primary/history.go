package primary

import (
	"context"

	"github.com/example/partflow/internal/models"
)

// HistoryService is the durable audit ledger: an append-only,
// time-windowed log of named full-state snapshots.
type HistoryService interface {
	// AddCommit records a commit immediately, cancelling any pending
	// debounced commit first.
	AddCommit(actionName string)

	// DebouncedCommit coalesces rapid repeated calls into one commit
	// fired after a quiet period, carrying the last action name supplied.
	DebouncedCommit(actionName string)

	// RestoreToCommit restores local state to a commit's snapshot.
	// Remote-first: the remote store is updated before any local state
	// changes, so a remote failure leaves local state untouched. A
	// successful restore is itself recorded as a new commit.
	RestoreToCommit(ctx context.Context, commitID string) error

	// Commits returns the ledger entries, oldest first.
	Commits() []*models.Commit

	// Restoring reports whether a restore is in flight.
	Restoring() bool

	// Flush fires any pending debounced commit immediately.
	Flush()

	// Close tears down the debounce timer, dropping any pending commit.
	Close()
}
