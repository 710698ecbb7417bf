// Package cli provides thin CLI adapters that translate between CLI
// concerns and application services. Adapters handle output formatting
// but delegate all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	stagecore "github.com/example/partflow/internal/core/stage"
	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/ports/primary"
)

// WorkflowAdapter translates CLI operations to WorkflowService calls.
type WorkflowAdapter struct {
	service primary.WorkflowService
	out     io.Writer
}

// NewWorkflowAdapter creates a new WorkflowAdapter with the given
// service.
func NewWorkflowAdapter(service primary.WorkflowService, out io.Writer) *WorkflowAdapter {
	return &WorkflowAdapter{service: service, out: out}
}

var stageColors = map[models.Stage]*color.Color{
	models.StageOrders:  color.New(color.FgHiBlue),
	models.StageMain:    color.New(color.FgHiGreen),
	models.StageBooking: color.New(color.FgYellow),
	models.StageCall:    color.New(color.FgCyan),
	models.StageArchive: color.New(color.FgHiBlack),
}

// CreateOrder creates an order and prints the result.
func (a *WorkflowAdapter) CreateOrder(ctx context.Context, req primary.CreateOrderRequest) error {
	rec, err := a.service.CreateOrder(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Created order %s: %s\n", rec.TrackingID, rec.PartName)
	if rec.CustomerName != "" {
		fmt.Fprintf(a.out, "  Customer: %s\n", rec.CustomerName)
	}
	return nil
}

// List prints one stage's records.
func (a *WorkflowAdapter) List(stage models.Stage) error {
	records := a.service.Records(stage)

	label := stagecore.Label(stage)
	if len(records) == 0 {
		fmt.Fprintf(a.out, "No records in %s\n", label)
		return nil
	}

	fmt.Fprintf(a.out, "\n%s — %d record(s)\n\n", stageColors[stage].Sprint(label), len(records))
	fmt.Fprintf(a.out, "%-12s %-14s %-24s %-20s %s\n", "TRACKING", "STATUS", "PART", "CUSTOMER", "NOTES")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, rec := range records {
		note := firstLine(rec.ActionNote)
		if rec.Reminder != nil {
			note = "⏰ " + rec.Reminder.Date + " " + note
		}
		fmt.Fprintf(a.out, "%-12s %-14s %-24s %-20s %s\n",
			rec.TrackingID, rec.Status, truncate(rec.PartName, 24), truncate(rec.CustomerName, 20), note)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show prints a single record in full.
func (a *WorkflowAdapter) Show(id string) error {
	stage, rec, ok := a.service.Find(id)
	if !ok {
		return fmt.Errorf("record %s not found", id)
	}

	fmt.Fprintf(a.out, "\nRecord:   %s (%s)\n", rec.TrackingID, stageColors[stage].Sprint(stagecore.Label(stage)))
	fmt.Fprintf(a.out, "Part:     %s\n", rec.PartName)
	fmt.Fprintf(a.out, "Status:   %s\n", rec.Status)
	if rec.CarModel != "" {
		fmt.Fprintf(a.out, "Vehicle:  %s %s\n", rec.CarModel, rec.CarPlate)
	}
	if rec.CustomerName != "" {
		fmt.Fprintf(a.out, "Customer: %s %s\n", rec.CustomerName, rec.CustomerPhone)
	}
	if rec.BookingDate != "" {
		fmt.Fprintf(a.out, "Booking:  %s %s (%s)\n", rec.BookingDate, rec.BookingNote, rec.BookingStatus)
	}
	if rec.Reminder != nil {
		fmt.Fprintf(a.out, "Reminder: %s %s — %s\n", rec.Reminder.Date, rec.Reminder.Time, rec.Reminder.Subject)
	}
	if rec.ArchiveReason != "" {
		fmt.Fprintf(a.out, "Archived: %s (%s)\n", rec.ArchivedAt, rec.ArchiveReason)
	}
	if rec.ActionNote != "" {
		fmt.Fprintf(a.out, "Notes:\n")
		for _, line := range strings.Split(rec.ActionNote, "\n") {
			fmt.Fprintf(a.out, "  %s\n", line)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// Commit runs the strict commit gate and prints moved and rejected
// records, including the remaining beast-mode grace for rejects.
func (a *WorkflowAdapter) Commit(ctx context.Context, ids []string) error {
	resp, err := a.service.CommitToMainSheet(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	for _, rec := range resp.Moved {
		fmt.Fprintf(a.out, "✓ Committed %s to main sheet\n", rec.TrackingID)
	}
	for _, rej := range resp.Rejected {
		color.New(color.FgRed).Fprintf(a.out, "✗ %s rejected — missing: %s\n", rej.ID, strings.Join(rej.MissingFields, ", "))
		fmt.Fprintf(a.out, "  complete the fields within %ds\n", rej.RemainingGrace)
	}
	if len(resp.Moved) == 0 && len(resp.Rejected) == 0 {
		fmt.Fprintln(a.out, "Nothing to commit")
	}
	return nil
}

// Moved prints a uniform transition result.
func (a *WorkflowAdapter) Moved(records []*models.Record, verb string) {
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No matching records")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(a.out, "✓ %s %s\n", verb, rec.TrackingID)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
