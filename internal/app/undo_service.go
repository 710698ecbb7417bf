package app

import (
	"sync"

	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/ports/primary"
	"github.com/example/partflow/internal/store"
)

// maxUndoDepth bounds the undo stack; the oldest snapshot is evicted
// first.
const maxUndoDepth = 30

// UndoServiceImpl implements the UndoService interface: a session-only,
// linear snapshot stack over the stage collections. It captures stage
// collections only (no vocabularies, no commit metadata) and is never
// serialized anywhere.
type UndoServiceImpl struct {
	store   *store.Store
	history primary.HistoryService

	mu        sync.Mutex
	undoStack []models.StageSet
	redoStack []models.StageSet
}

// NewUndoService creates a new UndoService with injected dependencies.
func NewUndoService(st *store.Store, history primary.HistoryService) *UndoServiceImpl {
	return &UndoServiceImpl{store: st, history: history}
}

// PushUndo captures the current stage collections as a pre-image.
// Callers must push before mutating. A new push invalidates any redo
// branch: history is linear, not a tree.
func (u *UndoServiceImpl) PushUndo() {
	snap := u.store.SnapshotStages()

	u.mu.Lock()
	defer u.mu.Unlock()
	u.undoStack = append(u.undoStack, snap)
	if len(u.undoStack) > maxUndoDepth {
		u.undoStack = u.undoStack[len(u.undoStack)-maxUndoDepth:]
	}
	u.redoStack = nil
}

// Undo restores the most recent pre-image. No-op on an empty stack.
func (u *UndoServiceImpl) Undo() bool {
	u.mu.Lock()
	if len(u.undoStack) == 0 {
		u.mu.Unlock()
		return false
	}
	current := u.store.SnapshotStages()
	last := u.undoStack[len(u.undoStack)-1]
	u.undoStack = u.undoStack[:len(u.undoStack)-1]
	u.redoStack = append(u.redoStack, current)
	u.mu.Unlock()

	u.store.RestoreStages(last)
	return true
}

// Redo re-applies the most recently undone state. No-op on an empty
// stack.
func (u *UndoServiceImpl) Redo() bool {
	u.mu.Lock()
	if len(u.redoStack) == 0 {
		u.mu.Unlock()
		return false
	}
	current := u.store.SnapshotStages()
	last := u.redoStack[len(u.redoStack)-1]
	u.redoStack = u.redoStack[:len(u.redoStack)-1]
	u.undoStack = append(u.undoStack, current)
	u.mu.Unlock()

	u.store.RestoreStages(last)
	return true
}

// CommitSave records a named checkpoint in the history ledger, then
// unconditionally clears both stacks. This is a deliberate point of no
// return for session undo: recovery afterwards goes through the ledger.
func (u *UndoServiceImpl) CommitSave(actionName string) {
	u.history.AddCommit(actionName)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.undoStack = nil
	u.redoStack = nil
}

// Depth returns the current undo and redo stack depths.
func (u *UndoServiceImpl) Depth() (int, int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.undoStack), len(u.redoStack)
}
