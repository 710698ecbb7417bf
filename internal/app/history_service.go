package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/ports/secondary"
	"github.com/example/partflow/internal/store"
)

const (
	// maxCommits caps the ledger at the most recent entries.
	maxCommits = 50
	// maxCommitAge prunes entries older than the retention window.
	maxCommitAge = 48 * time.Hour
	// debounceDelay is the quiet period for coalesced commits.
	debounceDelay = 1000 * time.Millisecond
)

// HistoryServiceImpl implements the HistoryService interface: an
// append-only, time-windowed ledger of deep full-state snapshots, with a
// single owned debounce timer for UI-frequency mutations.
type HistoryServiceImpl struct {
	store  *store.Store
	remote secondary.RemoteStore

	mu        sync.Mutex
	commits   []*models.Commit
	restoring bool

	// Debounce state. The generation counter guards against a timer
	// callback that fires concurrently with a cancel: a stale generation
	// means the pending commit was superseded or cancelled.
	timer       *time.Timer
	pendingName string
	debounceGen int
	debounce    time.Duration

	now func() time.Time
}

// NewHistoryService creates a new HistoryService with injected
// dependencies.
func NewHistoryService(st *store.Store, remote secondary.RemoteStore) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		store:    st,
		remote:   remote,
		debounce: debounceDelay,
		now:      time.Now,
	}
}

// AddCommit records a commit immediately. Any pending debounced commit is
// cancelled first so a coarse move never double-commits with a trailing
// field update.
func (h *HistoryServiceImpl) AddCommit(actionName string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelDebounceLocked()
	h.appendLocked(actionName)
}

// DebouncedCommit resets the shared timer to fire a commit after the
// quiet period. Rapid repeated calls coalesce into one commit carrying
// the last action name supplied. Cancel-before-reschedule: a repeat call
// replaces the pending timer, it never stacks a second one.
func (h *HistoryServiceImpl) DebouncedCommit(actionName string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pendingName = actionName
	h.debounceGen++
	gen := h.debounceGen
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.debounce, func() { h.fireDebounce(gen) })
}

func (h *HistoryServiceImpl) fireDebounce(gen int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.debounceGen {
		return
	}
	h.timer = nil
	h.appendLocked(h.pendingName)
}

// Flush fires any pending debounced commit immediately. One-shot CLI
// invocations call this before exit so a trailing field update is not
// lost with the process.
func (h *HistoryServiceImpl) Flush() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer == nil {
		return
	}
	h.cancelDebounceLocked()
	h.appendLocked(h.pendingName)
}

// Close tears down the debounce timer, dropping any pending commit.
func (h *HistoryServiceImpl) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelDebounceLocked()
}

func (h *HistoryServiceImpl) cancelDebounceLocked() {
	h.debounceGen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// appendLocked snapshots the store, prunes the ledger to the retention
// window, and appends the new commit, keeping at most maxCommits total.
func (h *HistoryServiceImpl) appendLocked(actionName string) {
	commit := &models.Commit{
		ID:         uuid.NewString(),
		ActionName: actionName,
		Timestamp:  h.now(),
		Snapshot:   h.store.Snapshot(),
	}

	cutoff := h.now().Add(-maxCommitAge)
	kept := h.commits[:0]
	for _, c := range h.commits {
		if c.Timestamp.After(cutoff) {
			kept = append(kept, c)
		}
	}
	if len(kept) >= maxCommits {
		kept = kept[len(kept)-maxCommits+1:]
	}
	h.commits = append(kept, commit)
}

// RestoreToCommit restores local state to a commit's snapshot.
// Remote-first ordering: the remote store's snapshot restore must resolve
// before any local collection is replaced, so a remote failure can never
// leave local state desynchronized from the authoritative store.
func (h *HistoryServiceImpl) RestoreToCommit(ctx context.Context, commitID string) error {
	h.mu.Lock()
	if h.restoring {
		h.mu.Unlock()
		return fmt.Errorf("a restore is already in progress")
	}
	var target *models.Commit
	for _, c := range h.commits {
		if c.ID == commitID {
			target = c
			break
		}
	}
	if target == nil {
		h.mu.Unlock()
		return fmt.Errorf("commit %s not found", commitID)
	}
	h.restoring = true
	snap := target.Snapshot.Clone()
	actionName := target.ActionName
	h.mu.Unlock()

	if err := h.remote.RestoreSnapshot(ctx, snap); err != nil {
		h.mu.Lock()
		h.restoring = false
		h.mu.Unlock()
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	h.store.RestoreSnapshot(snap)

	// Restores are themselves auditable, not exempt from the ledger.
	h.AddCommit("Restored to: " + actionName)

	h.mu.Lock()
	h.restoring = false
	h.mu.Unlock()
	return nil
}

// Commits returns the ledger entries, oldest first.
func (h *HistoryServiceImpl) Commits() []*models.Commit {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*models.Commit, len(h.commits))
	copy(out, h.commits)
	return out
}

// Restoring reports whether a restore is in flight.
func (h *HistoryServiceImpl) Restoring() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.restoring
}
