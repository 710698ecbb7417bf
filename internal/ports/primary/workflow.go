// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the CLI layer calls into, plus
// their request/response DTOs.
package primary

import (
	"context"

	"github.com/example/partflow/internal/models"
)

// WorkflowService is the stage transition engine. All move operations
// share one contract: ids absent from every legal source collection are
// silently ignored; matched records are rewritten (canonical status,
// stage-prefixed tracking id, additive audit note) and moved atomically;
// a pre-image undo snapshot is pushed before any mutation; a ledger
// commit follows (immediate for moves, debounced for field updates);
// the remote write is optimistic and fire-and-forget.
type WorkflowService interface {
	// CreateOrder validates (relaxed ruleset) and creates a new order.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Record, error)

	// CommitToMainSheet moves orders onto the main sheet. Each record is
	// gated by the strict ruleset; a failing record stays in Orders and
	// enters the beast-mode grace window.
	CommitToMainSheet(ctx context.Context, ids []string) (*CommitResult, error)

	// SendToCallList moves records onto the call list.
	SendToCallList(ctx context.Context, ids []string) ([]*models.Record, error)

	// SendToArchive moves records into the archive, appending the reason
	// as an "#archive" audit line when non-empty.
	SendToArchive(ctx context.Context, ids []string, reason string) ([]*models.Record, error)

	// SendToReorder flows records back into Orders, appending the reason
	// as a "#reorder" audit line and clearing their booking context.
	SendToReorder(ctx context.Context, ids []string, reason string) ([]*models.Record, error)

	// SendToBooking moves records into Booking with the given date,
	// optional note and optional booking status.
	SendToBooking(ctx context.Context, req BookingRequest) ([]*models.Record, error)

	// UpdatePartStatus sets a record's status (debounced ledger path).
	UpdatePartStatus(ctx context.Context, id, status string) error

	// UpdateBookingStatus sets a record's booking status (debounced
	// ledger path).
	UpdateBookingStatus(ctx context.Context, id, status string) error

	// SetReminder attaches or replaces a record's reminder.
	SetReminder(ctx context.Context, id string, reminder *models.Reminder) error

	// ClearReminder removes a record's reminder.
	ClearReminder(ctx context.Context, id string) error

	// DeleteRecords removes records from the workflow entirely.
	DeleteRecords(ctx context.Context, ids []string) ([]*models.Record, error)

	// Records lists one stage's records.
	Records(stage models.Stage) []*models.Record

	// Find locates a record in any stage.
	Find(id string) (models.Stage, *models.Record, bool)

	// RemainingGrace returns the seconds left in a record's beast-mode
	// grace window. ok is false when the record is Idle (never triggered,
	// expired, or cleared by a successful commit).
	RemainingGrace(id string) (seconds int, ok bool)

	// Flush waits for in-flight optimistic remote writes to settle.
	Flush()
}

// CreateOrderRequest contains parameters for creating an order.
type CreateOrderRequest struct {
	BaseID        string // optional; next free number when empty
	PartName      string
	CarModel      string
	CarPlate      string
	CustomerName  string
	CustomerPhone string
	Note          string
}

// BookingRequest contains parameters for SendToBooking.
type BookingRequest struct {
	IDs    []string
	Date   string // YYYY-MM-DD
	Note   string // optional
	Status string // optional booking status
}

// CommitResult reports the outcome of CommitToMainSheet per record.
type CommitResult struct {
	Moved    []*models.Record
	Rejected []RejectedOrder
}

// RejectedOrder describes an order that failed the strict commit gate.
type RejectedOrder struct {
	ID             string
	MissingFields  []string
	RemainingGrace int // seconds left in the grace window
}
