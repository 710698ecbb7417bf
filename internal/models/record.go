// Package models contains domain types for partflow entities.
// Persistence lives behind the secondary ports in internal/ports/secondary.
package models

// Stage identifies one of the workflow's record collections.
type Stage string

// Workflow stages, in flow order. Reorder is a backflow into Orders,
// not a stage of its own.
const (
	StageOrders  Stage = "orders"
	StageMain    Stage = "main"
	StageBooking Stage = "booking"
	StageCall    Stage = "call"
	StageArchive Stage = "archive"
)

// AllStages lists every stage in workflow order.
var AllStages = []Stage{StageOrders, StageMain, StageBooking, StageCall, StageArchive}

// Valid reports whether s names a known stage.
func (s Stage) Valid() bool {
	for _, stage := range AllStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Canonical record statuses. A record entering a stage always carries that
// stage's canonical status; Reorder marks records flowing back into Orders.
const (
	StatusNew      = "New"
	StatusPending  = "Pending"
	StatusBooked   = "Booked"
	StatusToCall   = "To Call"
	StatusArchived = "Archived"
	StatusReorder  = "Reorder"
)

// Reminder is an optional due-date/time/subject attached to a record.
// Date is YYYY-MM-DD; Time is HH:MM and defaults to midnight when empty.
type Reminder struct {
	Date    string `json:"date"`
	Time    string `json:"time,omitempty"`
	Subject string `json:"subject"`
}

// Record is a spare-parts order moving through the workflow stages.
//
// ID is the record's identity; BaseID is its stable human-readable number;
// TrackingID is derived from the current stage ("MAIN-123" etc.) and is
// rewritten on every transition. ActionNote accumulates newline-joined
// audit lines of the form "<text> #<tag>" and is only ever appended to.
type Record struct {
	ID            string    `json:"id"`
	BaseID        string    `json:"baseId"`
	TrackingID    string    `json:"trackingId"`
	PartName      string    `json:"partName"`
	CarModel      string    `json:"carModel,omitempty"`
	CarPlate      string    `json:"carPlate,omitempty"`
	CustomerName  string    `json:"customerName,omitempty"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Status        string    `json:"status"`
	BookingDate   string    `json:"bookingDate,omitempty"`
	BookingNote   string    `json:"bookingNote,omitempty"`
	BookingStatus string    `json:"bookingStatus,omitempty"`
	ArchiveReason string    `json:"archiveReason,omitempty"`
	ArchivedAt    string    `json:"archivedAt,omitempty"`
	ActionNote    string    `json:"actionNote,omitempty"`
	Reminder      *Reminder `json:"reminder,omitempty"`
	CreatedAt     string    `json:"createdAt,omitempty"`
	UpdatedAt     string    `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	if r.Reminder != nil {
		rem := *r.Reminder
		c.Reminder = &rem
	}
	return &c
}

// StageSet maps each stage to its record collection. It is the unit of
// capture for undo snapshots (stage collections only, no reference data).
type StageSet map[Stage][]*Record

// Clone returns a deep copy of every collection and record in the set.
func (s StageSet) Clone() StageSet {
	c := make(StageSet, len(s))
	for stage, records := range s {
		cloned := make([]*Record, len(records))
		for i, rec := range records {
			cloned[i] = rec.Clone()
		}
		c[stage] = cloned
	}
	return c
}

// Count returns the total number of records across all stages.
func (s StageSet) Count() int {
	n := 0
	for _, records := range s {
		n += len(records)
	}
	return n
}
