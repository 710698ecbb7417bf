package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/ports/primary"
	"github.com/example/partflow/internal/store"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockRemoteStore implements secondary.RemoteStore for testing. It is
// safe for concurrent use because the workflow service syncs records on
// fire-and-forget goroutines.
type mockRemoteStore struct {
	mu         sync.Mutex
	records    map[string]*models.Record
	stages     map[string]models.Stage
	snapshot   *models.Snapshot
	saveCalls  int
	saveErr    error
	deleteErr  error
	restoreErr error
}

func newMockRemoteStore() *mockRemoteStore {
	return &mockRemoteStore{
		records: make(map[string]*models.Record),
		stages:  make(map[string]models.Stage),
	}
}

func (m *mockRemoteStore) GetRecords(ctx context.Context, stage models.Stage) ([]*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Record
	for id, rec := range m.records {
		if stage == "" || m.stages[id] == stage {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (m *mockRemoteStore) SaveRecord(ctx context.Context, rec *models.Record, stage models.Stage) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.records[rec.ID] = rec.Clone()
	m.stages[rec.ID] = stage
	return rec, nil
}

func (m *mockRemoteStore) UpdateRecordStage(ctx context.Context, id string, stage models.Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stages[id] = stage
	return nil
}

func (m *mockRemoteStore) DeleteRecord(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.records, id)
	delete(m.stages, id)
	return nil
}

func (m *mockRemoteStore) RestoreSnapshot(ctx context.Context, snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.restoreErr != nil {
		return m.restoreErr
	}
	m.snapshot = snap
	return nil
}

func (m *mockRemoteStore) stageOf(id string) models.Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stages[id]
}

// ============================================================================
// Test Setup
// ============================================================================

type testServices struct {
	store    *store.Store
	remote   *mockRemoteStore
	history  *HistoryServiceImpl
	undo     *UndoServiceImpl
	workflow *WorkflowServiceImpl
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	st := store.New()
	remote := newMockRemoteStore()
	history := NewHistoryService(st, remote)
	undo := NewUndoService(st, history)
	workflow := NewWorkflowService(st, remote, history, undo)
	workflow.syncErr = func(string, error) {}
	t.Cleanup(history.Close)
	return &testServices{store: st, remote: remote, history: history, undo: undo, workflow: workflow}
}

func seedOrder(s *store.Store, id, baseID string) *models.Record {
	rec := &models.Record{
		ID:            id,
		BaseID:        baseID,
		TrackingID:    "ORD-" + baseID,
		PartName:      "Brake pads",
		CarModel:      "Golf VII",
		CustomerName:  "Jane Cooper",
		CustomerPhone: "0123 456789",
		Status:        models.StatusNew,
	}
	s.Insert(models.StageOrders, rec)
	return rec
}

// ============================================================================
// Stage Transition Tests
// ============================================================================

func TestCommitToMainSheet(t *testing.T) {
	ts := newTestServices(t)
	seedOrder(ts.store, "o1", "123")

	resp, err := ts.workflow.CommitToMainSheet(context.Background(), []string{"o1"})
	if err != nil {
		t.Fatalf("CommitToMainSheet failed: %v", err)
	}
	if len(resp.Moved) != 1 || len(resp.Rejected) != 0 {
		t.Fatalf("moved=%d rejected=%d, want 1/0", len(resp.Moved), len(resp.Rejected))
	}

	if len(ts.store.Records(models.StageOrders)) != 0 {
		t.Error("o1 still present in orders")
	}
	main := ts.store.Records(models.StageMain)
	if len(main) != 1 {
		t.Fatalf("main has %d records, want 1", len(main))
	}
	if main[0].TrackingID != "MAIN-123" {
		t.Errorf("trackingId = %s, want MAIN-123", main[0].TrackingID)
	}
	if main[0].Status != models.StatusPending {
		t.Errorf("status = %s, want Pending", main[0].Status)
	}

	// The move is synced optimistically to the remote store.
	ts.workflow.Flush()
	if ts.remote.stageOf("o1") != models.StageMain {
		t.Errorf("remote stage = %s, want main", ts.remote.stageOf("o1"))
	}

	// One ledger commit, one undo entry.
	if commits := ts.history.Commits(); len(commits) != 1 {
		t.Errorf("ledger has %d commits, want 1", len(commits))
	}
	if undoDepth, _ := ts.undo.Depth(); undoDepth != 1 {
		t.Errorf("undo depth = %d, want 1", undoDepth)
	}
}

func TestCommitToMainSheetStrictGate(t *testing.T) {
	ts := newTestServices(t)
	rec := seedOrder(ts.store, "o1", "123")
	rec.CustomerPhone = ""
	rec.CarModel = ""

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	ts.workflow.now = func() time.Time { return base }

	resp, err := ts.workflow.CommitToMainSheet(context.Background(), []string{"o1"})
	if err != nil {
		t.Fatalf("CommitToMainSheet failed: %v", err)
	}
	if len(resp.Moved) != 0 {
		t.Error("invalid record was moved")
	}
	if len(resp.Rejected) != 1 {
		t.Fatalf("rejected = %d, want 1", len(resp.Rejected))
	}
	if len(resp.Rejected[0].MissingFields) != 2 {
		t.Errorf("missing fields = %v, want customerPhone and carModel", resp.Rejected[0].MissingFields)
	}
	if resp.Rejected[0].RemainingGrace != 30 {
		t.Errorf("grace = %d, want 30", resp.Rejected[0].RemainingGrace)
	}

	// A failed gate never mutates state: no move, no undo, no commit.
	if len(ts.store.Records(models.StageOrders)) != 1 {
		t.Error("rejected record left the orders collection")
	}
	if undoDepth, _ := ts.undo.Depth(); undoDepth != 0 {
		t.Errorf("undo depth = %d, want 0", undoDepth)
	}
	if len(ts.history.Commits()) != 0 {
		t.Error("rejected commit produced a ledger entry")
	}
}

func TestBeastModeDerivation(t *testing.T) {
	ts := newTestServices(t)
	rec := seedOrder(ts.store, "o1", "123")
	rec.CustomerName = ""

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	ts.workflow.now = func() time.Time { return base }
	if _, err := ts.workflow.CommitToMainSheet(context.Background(), []string{"o1"}); err != nil {
		t.Fatalf("CommitToMainSheet failed: %v", err)
	}

	// The remaining grace is derived from the stored trigger timestamp:
	// re-reading never resets the window.
	ts.workflow.now = func() time.Time { return base.Add(10 * time.Second) }
	if remaining, ok := ts.workflow.RemainingGrace("o1"); !ok || remaining != 20 {
		t.Errorf("grace at +10s = %d/%v, want 20/true", remaining, ok)
	}
	ts.workflow.now = func() time.Time { return base.Add(10 * time.Second) }
	if remaining, ok := ts.workflow.RemainingGrace("o1"); !ok || remaining != 20 {
		t.Errorf("repeated read at +10s = %d/%v, want 20/true", remaining, ok)
	}

	ts.workflow.now = func() time.Time { return base.Add(31 * time.Second) }
	if _, ok := ts.workflow.RemainingGrace("o1"); ok {
		t.Error("trigger still active at +31s, want expired")
	}
}

func TestBeastModeClearedBySuccessfulResubmission(t *testing.T) {
	ts := newTestServices(t)
	rec := seedOrder(ts.store, "o1", "123")
	rec.CustomerName = ""

	ctx := context.Background()
	if _, err := ts.workflow.CommitToMainSheet(ctx, []string{"o1"}); err != nil {
		t.Fatalf("CommitToMainSheet failed: %v", err)
	}
	if _, ok := ts.workflow.RemainingGrace("o1"); !ok {
		t.Fatal("trigger not recorded")
	}

	rec.CustomerName = "Jane Cooper"
	if _, err := ts.workflow.CommitToMainSheet(ctx, []string{"o1"}); err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}
	if _, ok := ts.workflow.RemainingGrace("o1"); ok {
		t.Error("trigger survived a successful resubmission")
	}
}

func TestMultipleBeastModeTriggersAreIndependent(t *testing.T) {
	ts := newTestServices(t)
	r1 := seedOrder(ts.store, "o1", "1")
	r1.CustomerName = ""
	r2 := seedOrder(ts.store, "o2", "2")
	r2.CustomerName = ""

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	ts.workflow.now = func() time.Time { return base }
	ts.workflow.CommitToMainSheet(ctx, []string{"o1"})
	ts.workflow.now = func() time.Time { return base.Add(15 * time.Second) }
	ts.workflow.CommitToMainSheet(ctx, []string{"o2"})

	ts.workflow.now = func() time.Time { return base.Add(20 * time.Second) }
	if remaining, _ := ts.workflow.RemainingGrace("o1"); remaining != 10 {
		t.Errorf("o1 grace = %d, want 10", remaining)
	}
	if remaining, _ := ts.workflow.RemainingGrace("o2"); remaining != 25 {
		t.Errorf("o2 grace = %d, want 25", remaining)
	}
}

func TestSilentNoopForUnknownIDs(t *testing.T) {
	ts := newTestServices(t)
	seedOrder(ts.store, "o1", "123")

	moved, err := ts.workflow.SendToArchive(context.Background(), []string{"ghost"}, "done")
	if err != nil {
		t.Fatalf("SendToArchive failed: %v", err)
	}
	if len(moved) != 0 {
		t.Fatalf("moved = %v, want empty", moved)
	}
	// Zero effect: no undo entry, no ledger commit.
	if undoDepth, _ := ts.undo.Depth(); undoDepth != 0 {
		t.Errorf("undo depth = %d, want 0", undoDepth)
	}
	if len(ts.history.Commits()) != 0 {
		t.Error("noop produced a ledger commit")
	}
}

func TestArchiveAppendsAuditNote(t *testing.T) {
	ts := newTestServices(t)
	rec := seedOrder(ts.store, "o1", "123")
	rec.ActionNote = "foo"

	moved, err := ts.workflow.SendToArchive(context.Background(), []string{"o1"}, "Completed")
	if err != nil {
		t.Fatalf("SendToArchive failed: %v", err)
	}
	if moved[0].ActionNote != "foo\nCompleted #archive" {
		t.Errorf("actionNote = %q, want %q", moved[0].ActionNote, "foo\nCompleted #archive")
	}
	if moved[0].TrackingID != "ARCH-123" {
		t.Errorf("trackingId = %s, want ARCH-123", moved[0].TrackingID)
	}
	if moved[0].ArchiveReason != "Completed" {
		t.Errorf("archiveReason = %q", moved[0].ArchiveReason)
	}
	if moved[0].ArchivedAt == "" {
		t.Error("archivedAt not set")
	}
}

func TestArchiveEmptyReasonLeavesNoteUnchanged(t *testing.T) {
	ts := newTestServices(t)
	rec := seedOrder(ts.store, "o1", "123")
	rec.ActionNote = "foo"

	moved, err := ts.workflow.SendToArchive(context.Background(), []string{"o1"}, "")
	if err != nil {
		t.Fatalf("SendToArchive failed: %v", err)
	}
	if moved[0].ActionNote != "foo" {
		t.Errorf("actionNote = %q, want unchanged %q", moved[0].ActionNote, "foo")
	}
}

func TestReorderClearsBookingContext(t *testing.T) {
	ts := newTestServices(t)
	ts.store.Insert(models.StageArchive, &models.Record{
		ID:          "a1",
		BaseID:      "55",
		TrackingID:  "ARCH-55",
		PartName:    "Clutch kit",
		Status:      models.StatusArchived,
		BookingDate: "2025-02-10",
		BookingNote: "morning slot",
		ActionNote:  "old #archive",
	})

	moved, err := ts.workflow.SendToReorder(context.Background(), []string{"a1"}, "Wrong part delivered")
	if err != nil {
		t.Fatalf("SendToReorder failed: %v", err)
	}
	rec := moved[0]
	if rec.BookingDate != "" || rec.BookingNote != "" {
		t.Errorf("booking context not cleared: date=%q note=%q", rec.BookingDate, rec.BookingNote)
	}
	if rec.TrackingID != "ORD-55" {
		t.Errorf("trackingId = %s, want ORD-55", rec.TrackingID)
	}
	if rec.Status != models.StatusReorder {
		t.Errorf("status = %s, want Reorder", rec.Status)
	}
	if !strings.HasSuffix(rec.ActionNote, "Wrong part delivered #reorder") {
		t.Errorf("actionNote = %q, want trailing reorder audit line", rec.ActionNote)
	}
	if len(ts.store.Records(models.StageOrders)) != 1 {
		t.Error("reordered record not in orders")
	}
}

func TestSendToBooking(t *testing.T) {
	ts := newTestServices(t)
	ts.store.Insert(models.StageMain, &models.Record{
		ID: "m1", BaseID: "7", TrackingID: "MAIN-7", PartName: "Filter", Status: models.StatusPending,
	})

	moved, err := ts.workflow.SendToBooking(context.Background(), primary.BookingRequest{
		IDs: []string{"m1"}, Date: "2025-04-01", Note: "call ahead", Status: "Scheduled",
	})
	if err != nil {
		t.Fatalf("SendToBooking failed: %v", err)
	}
	rec := moved[0]
	if rec.BookingDate != "2025-04-01" || rec.BookingNote != "call ahead" || rec.BookingStatus != "Scheduled" {
		t.Errorf("booking fields = %q/%q/%q", rec.BookingDate, rec.BookingNote, rec.BookingStatus)
	}
	if rec.TrackingID != "BOOK-7" || rec.Status != models.StatusBooked {
		t.Errorf("rec = %s/%s, want BOOK-7/Booked", rec.TrackingID, rec.Status)
	}
}

func TestSendToBookingRequiresValidDate(t *testing.T) {
	ts := newTestServices(t)
	if _, err := ts.workflow.SendToBooking(context.Background(), primary.BookingRequest{IDs: []string{"m1"}}); err == nil {
		t.Error("missing date accepted")
	}
	if _, err := ts.workflow.SendToBooking(context.Background(), primary.BookingRequest{IDs: []string{"m1"}, Date: "01.04.2025"}); err == nil {
		t.Error("malformed date accepted")
	}
}

func TestStageExclusivityThroughTransitionSequence(t *testing.T) {
	ts := newTestServices(t)
	seedOrder(ts.store, "o1", "123")
	ctx := context.Background()

	ts.workflow.CommitToMainSheet(ctx, []string{"o1"})
	ts.workflow.SendToBooking(ctx, primary.BookingRequest{IDs: []string{"o1"}, Date: "2025-04-01"})
	ts.workflow.SendToCallList(ctx, []string{"o1"})
	ts.workflow.SendToArchive(ctx, []string{"o1"}, "done")
	ts.workflow.SendToReorder(ctx, []string{"o1"}, "again")

	found := 0
	ts.store.ForEach(func(stage models.Stage, rec *models.Record) {
		if rec.ID == "o1" {
			found++
			if stage != models.StageOrders {
				t.Errorf("o1 in %s after reorder, want orders", stage)
			}
		}
	})
	if found != 1 {
		t.Errorf("o1 present %d times, want exactly once", found)
	}
}

func TestUpdatePartStatusUsesDebouncedCommit(t *testing.T) {
	ts := newTestServices(t)
	ts.history.debounce = 20 * time.Millisecond
	seedOrder(ts.store, "o1", "123")

	ctx := context.Background()
	for _, status := range []string{"Ordered", "Shipped", "Arrived"} {
		if err := ts.workflow.UpdatePartStatus(ctx, "o1", status); err != nil {
			t.Fatalf("UpdatePartStatus failed: %v", err)
		}
	}

	_, rec, _ := ts.store.Find("o1")
	if rec.Status != "Arrived" {
		t.Errorf("status = %s, want Arrived", rec.Status)
	}

	time.Sleep(100 * time.Millisecond)
	commits := ts.history.Commits()
	if len(commits) != 1 {
		t.Fatalf("ledger has %d commits, want 1 coalesced", len(commits))
	}
	if commits[0].ActionName != "Updated part status" {
		t.Errorf("action = %q", commits[0].ActionName)
	}

	// Each field update is still individually undoable.
	if undoDepth, _ := ts.undo.Depth(); undoDepth != 3 {
		t.Errorf("undo depth = %d, want 3", undoDepth)
	}
}

func TestCreateOrder(t *testing.T) {
	ts := newTestServices(t)
	rec, err := ts.workflow.CreateOrder(context.Background(), primary.CreateOrderRequest{PartName: "Brake pads", CarModel: "Golf VII"})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if rec.TrackingID != "ORD-1" {
		t.Errorf("trackingId = %s, want ORD-1", rec.TrackingID)
	}
	if rec.Status != models.StatusNew {
		t.Errorf("status = %s, want New", rec.Status)
	}

	// Base ids keep counting past existing records.
	rec2, err := ts.workflow.CreateOrder(context.Background(), primary.CreateOrderRequest{PartName: "Wiper blades", CarModel: "Polo"})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if rec2.BaseID != "2" {
		t.Errorf("baseId = %s, want 2", rec2.BaseID)
	}
}

func TestCreateOrderRejectsBlankPartName(t *testing.T) {
	ts := newTestServices(t)
	if _, err := ts.workflow.CreateOrder(context.Background(), primary.CreateOrderRequest{PartName: "  ", CarModel: "Golf VII"}); err == nil {
		t.Error("blank part name accepted")
	}
	if undoDepth, _ := ts.undo.Depth(); undoDepth != 0 {
		t.Error("failed validation pushed an undo entry")
	}
}

func TestDeleteRecords(t *testing.T) {
	ts := newTestServices(t)
	seedOrder(ts.store, "o1", "123")

	removed, err := ts.workflow.DeleteRecords(context.Background(), []string{"o1"})
	if err != nil {
		t.Fatalf("DeleteRecords failed: %v", err)
	}
	if len(removed) != 1 {
		t.Fatalf("removed %d, want 1", len(removed))
	}
	if _, _, ok := ts.store.Find("o1"); ok {
		t.Error("o1 still in store")
	}
	ts.workflow.Flush()
}
