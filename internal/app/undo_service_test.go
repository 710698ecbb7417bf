package app

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/example/partflow/internal/models"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	ts := newTestServices(t)
	ts.store.Insert(models.StageOrders, &models.Record{ID: "o1", BaseID: "1", TrackingID: "ORD-1", PartName: "P"})
	before := ts.store.SnapshotStages()

	// push-before-mutate, then apply the mutation.
	ts.undo.PushUndo()
	ts.store.Insert(models.StageOrders, &models.Record{ID: "o2", BaseID: "2", TrackingID: "ORD-2", PartName: "Q"})
	after := ts.store.SnapshotStages()

	if !ts.undo.Undo() {
		t.Fatal("Undo returned false")
	}
	if !reflect.DeepEqual(ts.store.SnapshotStages(), before) {
		t.Error("undo did not restore the pre-mutation state exactly")
	}

	if !ts.undo.Redo() {
		t.Fatal("Redo returned false")
	}
	if !reflect.DeepEqual(ts.store.SnapshotStages(), after) {
		t.Error("redo did not restore the post-mutation state exactly")
	}
}

func TestUndoOnEmptyStackIsNoop(t *testing.T) {
	ts := newTestServices(t)
	ts.store.Insert(models.StageOrders, &models.Record{ID: "o1", BaseID: "1", TrackingID: "ORD-1", PartName: "P"})
	state := ts.store.SnapshotStages()

	if ts.undo.Undo() {
		t.Error("Undo on empty stack returned true")
	}
	if ts.undo.Redo() {
		t.Error("Redo on empty stack returned true")
	}
	if !reflect.DeepEqual(ts.store.SnapshotStages(), state) {
		t.Error("empty-stack undo/redo mutated state")
	}
}

func TestUndoStackBound(t *testing.T) {
	ts := newTestServices(t)
	for i := 0; i < 35; i++ {
		ts.store.Insert(models.StageOrders, &models.Record{
			ID: fmt.Sprintf("o%d", i), BaseID: fmt.Sprintf("%d", i), TrackingID: "ORD-x", PartName: "P",
		})
		ts.undo.PushUndo()
	}

	undoDepth, _ := ts.undo.Depth()
	if undoDepth != 30 {
		t.Fatalf("undo depth = %d, want 30", undoDepth)
	}

	// The oldest snapshots were evicted: the deepest undo lands on the
	// state captured by push #6 (5 records inserted before it... the
	// sixth push saw 6 records).
	for ts.undo.Undo() {
	}
	if got := len(ts.store.Records(models.StageOrders)); got != 6 {
		t.Errorf("deepest undo state has %d orders, want 6", got)
	}
}

func TestPushUndoClearsRedo(t *testing.T) {
	ts := newTestServices(t)
	ts.undo.PushUndo()
	ts.store.Insert(models.StageOrders, &models.Record{ID: "o1", BaseID: "1", TrackingID: "ORD-1", PartName: "P"})
	ts.undo.Undo()

	if _, redoDepth := ts.undo.Depth(); redoDepth != 1 {
		t.Fatalf("redo depth = %d, want 1", redoDepth)
	}

	// A new action invalidates the redo branch: linear history only.
	ts.undo.PushUndo()
	if _, redoDepth := ts.undo.Depth(); redoDepth != 0 {
		t.Errorf("redo depth after new push = %d, want 0", redoDepth)
	}
}

func TestCommitSaveClearsBothStacksAndWritesLedger(t *testing.T) {
	ts := newTestServices(t)
	for i := 0; i < 4; i++ {
		ts.undo.PushUndo()
	}
	ts.undo.Undo()

	ts.undo.CommitSave("Manual save")

	undoDepth, redoDepth := ts.undo.Depth()
	if undoDepth != 0 || redoDepth != 0 {
		t.Errorf("stacks after checkpoint = %d/%d, want 0/0", undoDepth, redoDepth)
	}
	commits := ts.history.Commits()
	if len(commits) != 1 || commits[0].ActionName != "Manual save" {
		t.Errorf("ledger = %v, want single Manual save commit", commits)
	}
}

func TestUndoSnapshotsExcludeVocabularies(t *testing.T) {
	ts := newTestServices(t)
	ts.store.SetBookingStatusVocab([]string{"Scheduled"})
	ts.undo.PushUndo()
	ts.store.SetBookingStatusVocab([]string{"Other"})
	ts.undo.Undo()

	// Undo captures stage collections only; reference data survives.
	vocab := ts.store.BookingStatusVocab()
	if len(vocab) != 1 || vocab[0] != "Other" {
		t.Errorf("vocab = %v, undo must not roll back reference data", vocab)
	}
}
