package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/example/partflow/internal/core/beastmode"
	stagecore "github.com/example/partflow/internal/core/stage"
	"github.com/example/partflow/internal/core/validation"
	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/ports/primary"
	"github.com/example/partflow/internal/ports/secondary"
	"github.com/example/partflow/internal/store"
)

// remoteSyncRetries bounds the exponential backoff for optimistic writes.
const remoteSyncRetries = 4

// WorkflowServiceImpl implements the WorkflowService interface: the
// stage transition engine plus the beast-mode trigger map.
//
// Local mutations are synchronous and complete unconditionally; the
// matching remote writes are optimistic fire-and-forget with bounded
// retry. Superseding writes to the same record from rapid sequential
// edits are not sequenced; last-write-wins. That is inherited behavior,
// an open correctness gap rather than a guarantee.
type WorkflowServiceImpl struct {
	store   *store.Store
	remote  secondary.RemoteStore
	history primary.HistoryService
	undo    primary.UndoService

	// Beast-mode trigger timestamps, keyed by record id. Entries expire
	// by derivation (elapsed >= grace window), cleaned up lazily on read.
	mu       sync.Mutex
	triggers map[string]time.Time

	syncWG sync.WaitGroup
	now    func() time.Time

	// syncErr receives failures from fire-and-forget remote writes.
	syncErr func(id string, err error)
}

// NewWorkflowService creates a new WorkflowService with injected
// dependencies.
func NewWorkflowService(
	st *store.Store,
	remote secondary.RemoteStore,
	history primary.HistoryService,
	undo primary.UndoService,
) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		store:    st,
		remote:   remote,
		history:  history,
		undo:     undo,
		triggers: make(map[string]time.Time),
		now:      time.Now,
		syncErr: func(id string, err error) {
			fmt.Fprintf(os.Stderr, "warning: remote sync for %s failed: %v\n", id, err)
		},
	}
}

// CreateOrder validates (relaxed ruleset) and creates a new order record
// in the Orders stage.
func (s *WorkflowServiceImpl) CreateOrder(ctx context.Context, req primary.CreateOrderRequest) (*models.Record, error) {
	baseID := req.BaseID
	if baseID == "" {
		baseID = s.nextBaseID()
	}

	now := s.now().Format(time.RFC3339)
	rec := &models.Record{
		ID:            uuid.NewString(),
		BaseID:        baseID,
		TrackingID:    stagecore.TrackingID(models.StageOrders, baseID),
		PartName:      req.PartName,
		CarModel:      req.CarModel,
		CarPlate:      req.CarPlate,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Status:        models.StatusNew,
		ActionNote:    req.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if res := validation.CheckRelaxed(rec); !res.Valid {
		return nil, res.Error()
	}

	s.undo.PushUndo()
	s.store.Insert(models.StageOrders, rec)
	s.history.AddCommit("Created order " + rec.TrackingID)
	s.syncSave(ctx, rec.Clone(), models.StageOrders)
	return rec, nil
}

// CommitToMainSheet moves orders onto the main sheet. Each candidate is
// gated by the strict ruleset: a failing record stays in Orders, enters
// the beast-mode grace window, and its missing fields are surfaced. A
// record that passes clears any pending trigger.
func (s *WorkflowServiceImpl) CommitToMainSheet(ctx context.Context, ids []string) (*primary.CommitResult, error) {
	kind := stagecore.KindCommitToMain
	now := s.now()

	var valid []string
	var rejected []primary.RejectedOrder
	for _, id := range ids {
		stage, rec, ok := s.store.Find(id)
		if !ok || !stageIn(stage, kind.Sources()) {
			continue // SilentNoop
		}
		res := validation.CheckStrict(rec)
		if !res.Valid {
			s.mu.Lock()
			s.triggers[id] = now
			s.mu.Unlock()
			rejected = append(rejected, primary.RejectedOrder{
				ID:             id,
				MissingFields:  res.MissingFields,
				RemainingGrace: beastmode.Remaining(now, now),
			})
			continue
		}
		valid = append(valid, id)
	}

	var moved []*models.Record
	if len(valid) > 0 {
		moved = s.move(ctx, kind, valid, "", nil)
		s.history.AddCommit("Committed to main sheet")

		s.mu.Lock()
		for _, id := range valid {
			delete(s.triggers, id)
		}
		s.mu.Unlock()
	}

	return &primary.CommitResult{Moved: moved, Rejected: rejected}, nil
}

// SendToCallList moves records onto the call list.
func (s *WorkflowServiceImpl) SendToCallList(ctx context.Context, ids []string) ([]*models.Record, error) {
	moved := s.move(ctx, stagecore.KindSendToCallList, ids, "", nil)
	if len(moved) > 0 {
		s.history.AddCommit("Sent to call list")
	}
	return moved, nil
}

// SendToArchive moves records into the archive. A non-empty reason is
// appended to each record's action note as an "#archive" audit line.
func (s *WorkflowServiceImpl) SendToArchive(ctx context.Context, ids []string, reason string) ([]*models.Record, error) {
	archivedAt := s.now().Format(time.RFC3339)
	moved := s.move(ctx, stagecore.KindSendToArchive, ids, reason, func(rec *models.Record) {
		rec.ArchiveReason = reason
		rec.ArchivedAt = archivedAt
	})
	if len(moved) > 0 {
		s.history.AddCommit("Sent to archive")
	}
	return moved, nil
}

// SendToReorder flows records back into Orders. Reorder resets booking
// context: date and note are cleared on the moved records.
func (s *WorkflowServiceImpl) SendToReorder(ctx context.Context, ids []string, reason string) ([]*models.Record, error) {
	moved := s.move(ctx, stagecore.KindSendToReorder, ids, reason, func(rec *models.Record) {
		rec.BookingDate = ""
		rec.BookingNote = ""
	})
	if len(moved) > 0 {
		s.history.AddCommit("Sent to reorder")
	}
	return moved, nil
}

// SendToBooking moves records into Booking with the given date, optional
// note and optional booking status.
func (s *WorkflowServiceImpl) SendToBooking(ctx context.Context, req primary.BookingRequest) ([]*models.Record, error) {
	if req.Date == "" {
		return nil, fmt.Errorf("booking date is required")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, fmt.Errorf("invalid booking date %q: %w", req.Date, err)
	}

	moved := s.move(ctx, stagecore.KindSendToBooking, req.IDs, "", func(rec *models.Record) {
		rec.BookingDate = req.Date
		if req.Note != "" {
			rec.BookingNote = req.Note
		}
		if req.Status != "" {
			rec.BookingStatus = req.Status
		}
	})
	if len(moved) > 0 {
		s.history.AddCommit("Sent to booking")
	}
	return moved, nil
}

// move is the uniform transition: scan the legal sources, silently skip
// unknown ids, push the pre-image undo snapshot, then rewrite and move
// the matched records in one atomic store operation, and finally fire
// the optimistic remote writes. Callers emit the ledger commit so each
// operation carries its own action name.
func (s *WorkflowServiceImpl) move(ctx context.Context, kind stagecore.Kind, ids []string, reason string, extra func(*models.Record)) []*models.Record {
	if !s.store.ContainsAny(kind.Sources(), ids) {
		return nil // SilentNoop: no undo entry, no commit
	}

	s.undo.PushUndo()

	updatedAt := s.now().Format(time.RFC3339)
	moved := s.store.Move(kind.Sources(), kind.Dest(), ids, func(rec *models.Record) {
		rec.Status = kind.Status()
		rec.TrackingID = stagecore.TrackingID(kind.Dest(), rec.BaseID)
		if tag := kind.Tag(); tag != "" {
			rec.ActionNote = stagecore.AppendAuditNote(rec.ActionNote, reason, tag)
		}
		if extra != nil {
			extra(rec)
		}
		rec.UpdatedAt = updatedAt
	})

	for _, rec := range moved {
		s.syncSave(ctx, rec.Clone(), kind.Dest())
	}
	return moved
}

// UpdatePartStatus sets a record's status. Field-level updates fire at
// UI-interaction frequency, so they take the debounced ledger path.
func (s *WorkflowServiceImpl) UpdatePartStatus(ctx context.Context, id, status string) error {
	return s.updateField(ctx, id, "Updated part status", func(rec *models.Record) {
		rec.Status = status
	})
}

// UpdateBookingStatus sets a record's booking status (debounced ledger
// path).
func (s *WorkflowServiceImpl) UpdateBookingStatus(ctx context.Context, id, status string) error {
	return s.updateField(ctx, id, "Updated booking status", func(rec *models.Record) {
		rec.BookingStatus = status
	})
}

// SetReminder attaches or replaces a record's reminder. Callers run the
// notification reconciler afterwards so the change is reflected without
// waiting for the next scheduled scan.
func (s *WorkflowServiceImpl) SetReminder(ctx context.Context, id string, reminder *models.Reminder) error {
	if reminder == nil || reminder.Date == "" {
		return fmt.Errorf("reminder date is required")
	}
	if _, err := time.Parse("2006-01-02", reminder.Date); err != nil {
		return fmt.Errorf("invalid reminder date %q: %w", reminder.Date, err)
	}
	return s.updateField(ctx, id, "Updated reminder", func(rec *models.Record) {
		rem := *reminder
		rec.Reminder = &rem
	})
}

// ClearReminder removes a record's reminder.
func (s *WorkflowServiceImpl) ClearReminder(ctx context.Context, id string) error {
	return s.updateField(ctx, id, "Cleared reminder", func(rec *models.Record) {
		rec.Reminder = nil
	})
}

// updateField applies a field-level mutation with the shared contract:
// pre-image undo push, debounced ledger commit, optimistic remote save.
// An unknown id completes with zero effect.
func (s *WorkflowServiceImpl) updateField(ctx context.Context, id, actionName string, fn func(*models.Record)) error {
	if _, _, ok := s.store.Find(id); !ok {
		return nil // SilentNoop
	}

	s.undo.PushUndo()

	var synced *models.Record
	var recStage models.Stage
	s.store.Update(id, func(stage models.Stage, rec *models.Record) {
		fn(rec)
		rec.UpdatedAt = s.now().Format(time.RFC3339)
		synced = rec.Clone()
		recStage = stage
	})

	s.history.DebouncedCommit(actionName)
	s.syncSave(ctx, synced, recStage)
	return nil
}

// DeleteRecords removes records from the workflow entirely.
func (s *WorkflowServiceImpl) DeleteRecords(ctx context.Context, ids []string) ([]*models.Record, error) {
	found := false
	for _, id := range ids {
		if _, _, ok := s.store.Find(id); ok {
			found = true
			break
		}
	}
	if !found {
		return nil, nil // SilentNoop
	}

	s.undo.PushUndo()
	removed := s.store.Remove(ids)
	s.history.AddCommit("Deleted records")

	for _, rec := range removed {
		id := rec.ID
		s.syncWG.Add(1)
		go func() {
			defer s.syncWG.Done()
			op := func() error { return s.remote.DeleteRecord(ctx, id) }
			if err := backoff.Retry(op, s.syncPolicy(ctx)); err != nil {
				s.syncErr(id, err)
			}
		}()
	}
	return removed, nil
}

// Records lists one stage's records.
func (s *WorkflowServiceImpl) Records(stage models.Stage) []*models.Record {
	return s.store.Records(stage)
}

// Find locates a record in any stage.
func (s *WorkflowServiceImpl) Find(id string) (models.Stage, *models.Record, bool) {
	return s.store.Find(id)
}

// RemainingGrace returns the seconds left in a record's beast-mode grace
// window. The remaining time is derived from the stored trigger
// timestamp, never from a running timer, so closing and reopening an
// edit surface cannot reset the deadline. Expired entries are removed.
func (s *WorkflowServiceImpl) RemainingGrace(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	triggeredAt, ok := s.triggers[id]
	if !ok {
		return 0, false
	}
	now := s.now()
	if beastmode.Expired(triggeredAt, now) {
		delete(s.triggers, id)
		return 0, false
	}
	return beastmode.Remaining(triggeredAt, now), true
}

// Flush waits for in-flight optimistic remote writes to settle.
func (s *WorkflowServiceImpl) Flush() {
	s.syncWG.Wait()
}

// syncSave fires an optimistic, fire-and-forget remote save with bounded
// exponential retry. Local state has already moved on; a final failure
// is reported, not propagated.
func (s *WorkflowServiceImpl) syncSave(ctx context.Context, rec *models.Record, stage models.Stage) {
	s.syncWG.Add(1)
	go func() {
		defer s.syncWG.Done()
		op := func() error {
			_, err := s.remote.SaveRecord(ctx, rec, stage)
			return err
		}
		if err := backoff.Retry(op, s.syncPolicy(ctx)); err != nil {
			s.syncErr(rec.ID, err)
		}
	}()
}

func (s *WorkflowServiceImpl) syncPolicy(ctx context.Context) backoff.BackOffContext {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	return backoff.WithContext(backoff.WithMaxRetries(policy, remoteSyncRetries), ctx)
}

// nextBaseID returns the next free order number: one past the highest
// numeric base id across every stage collection.
func (s *WorkflowServiceImpl) nextBaseID() string {
	max := 0
	s.store.ForEach(func(_ models.Stage, rec *models.Record) {
		if n, err := strconv.Atoi(rec.BaseID); err == nil && n > max {
			max = n
		}
	})
	return strconv.Itoa(max + 1)
}

func stageIn(stage models.Stage, stages []models.Stage) bool {
	for _, s := range stages {
		if s == stage {
			return true
		}
	}
	return false
}
