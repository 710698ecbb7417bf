package primary

// UndoService is the session-only, bounded, linear undo/redo stack.
// Independent of the history ledger; never serialized.
//
// Contract for callers: every logical mutation must call PushUndo before
// applying its change. A batch of sequential sub-mutations must push once
// per step if each step is meant to be independently undoable; a missing
// push silently collapses that step out of the undo history.
type UndoService interface {
	// PushUndo captures the current stage collections as a pre-image.
	// Trims the stack to its bound (oldest first) and clears the redo
	// stack: a new action invalidates any redo branch.
	PushUndo()

	// Undo restores the most recent pre-image, staging the current state
	// for redo. Reports false when the undo stack is empty.
	Undo() bool

	// Redo re-applies the most recently undone state. Reports false when
	// the redo stack is empty.
	Redo() bool

	// CommitSave records a named checkpoint in the history ledger, then
	// unconditionally clears both stacks. After a checkpoint, recovery
	// goes through the ledger, not undo.
	CommitSave(actionName string)

	// Depth returns the current undo and redo stack depths.
	Depth() (undo, redo int)
}
