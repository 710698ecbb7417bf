// Package stage contains the pure business logic for stage transitions.
// Everything here is side-effect free; services in internal/app apply the
// results to the record store.
package stage

import (
	"strings"

	"github.com/example/partflow/internal/models"
)

// Kind identifies one of the workflow's record-moving transitions.
type Kind string

const (
	KindCommitToMain   Kind = "commit_to_main"
	KindSendToBooking  Kind = "send_to_booking"
	KindSendToCallList Kind = "send_to_call_list"
	KindSendToArchive  Kind = "send_to_archive"
	KindSendToReorder  Kind = "send_to_reorder"
)

// rule describes where a transition may pull records from, where they land,
// and what stage-derived fields they carry afterwards. tag is the audit
// hashtag appended to ActionNote when the caller supplies a reason; empty
// means the transition never writes audit lines.
type rule struct {
	dest    models.Stage
	status  string
	sources []models.Stage
	tag     string
}

var rules = map[Kind]rule{
	KindCommitToMain: {
		dest:    models.StageMain,
		status:  models.StatusPending,
		sources: []models.Stage{models.StageOrders},
	},
	KindSendToBooking: {
		dest:    models.StageBooking,
		status:  models.StatusBooked,
		sources: []models.Stage{models.StageMain, models.StageCall},
	},
	KindSendToCallList: {
		dest:    models.StageCall,
		status:  models.StatusToCall,
		sources: []models.Stage{models.StageMain, models.StageBooking},
	},
	KindSendToArchive: {
		dest:    models.StageArchive,
		status:  models.StatusArchived,
		sources: []models.Stage{models.StageOrders, models.StageMain, models.StageBooking, models.StageCall},
		tag:     "archive",
	},
	KindSendToReorder: {
		dest:    models.StageOrders,
		status:  models.StatusReorder,
		sources: []models.Stage{models.StageArchive, models.StageCall, models.StageBooking, models.StageMain},
		tag:     "reorder",
	},
}

// prefixes maps each stage to its tracking-id prefix. Other tools parse
// these prefixes out of tracking ids, so the mapping is fixed.
var prefixes = map[models.Stage]string{
	models.StageOrders:  "ORD",
	models.StageMain:    "MAIN",
	models.StageBooking: "BOOK",
	models.StageCall:    "CALL",
	models.StageArchive: "ARCH",
}

// Dest returns the destination stage for the transition.
func (k Kind) Dest() models.Stage { return rules[k].dest }

// Status returns the canonical status a record carries after the transition.
func (k Kind) Status() string { return rules[k].status }

// Sources returns the stages that may legally source the transition.
func (k Kind) Sources() []models.Stage { return rules[k].sources }

// Tag returns the audit hashtag for the transition, or "" if the
// transition never appends audit lines.
func (k Kind) Tag() string { return rules[k].tag }

// Prefix returns the tracking-id prefix for a stage.
func Prefix(s models.Stage) string { return prefixes[s] }

// TrackingID builds the stage-tagged tracking identifier for a record.
func TrackingID(s models.Stage, baseID string) string {
	return prefixes[s] + "-" + baseID
}

// AppendAuditNote joins an audit line onto an existing action note.
// The line format "<reason> #<tag>" is a durable textual convention:
// search and printing substring-match on the hashtag. Appends are
// additive, newline-joined, and a reason that trims to empty leaves the
// note unchanged.
func AppendAuditNote(note, reason, tag string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return note
	}
	line := reason + " #" + tag
	if note == "" {
		return line
	}
	return note + "\n" + line
}

// Labels for UI surfaces (notification descriptors, listings).
var labels = map[models.Stage]string{
	models.StageOrders:  "Orders",
	models.StageMain:    "Main Sheet",
	models.StageBooking: "Booking",
	models.StageCall:    "Call List",
	models.StageArchive: "Archive",
}

// Label returns the display name for a stage.
func Label(s models.Stage) string { return labels[s] }

// Path returns the navigation path for a stage.
func Path(s models.Stage) string { return "/" + string(s) }
