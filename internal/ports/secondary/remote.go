// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the workflow core
// drives external systems.
package secondary

import (
	"context"

	"github.com/example/partflow/internal/models"
)

// RemoteStore is the authoritative persistent record store. The workflow
// core treats it as opaque: five operations that succeed or fail, no
// awareness of its wire or storage format.
//
// Stage-transition writes through this port are optimistic (local state
// mutates first, the remote write follows); RestoreSnapshot is the one
// remote-first operation: callers must not touch local state until it
// resolves.
type RemoteStore interface {
	// GetRecords retrieves the records of one stage, or of every stage
	// when stage is empty.
	GetRecords(ctx context.Context, stage models.Stage) ([]*models.Record, error)

	// SaveRecord upserts a record under the given stage and returns the
	// stored form.
	SaveRecord(ctx context.Context, rec *models.Record, stage models.Stage) (*models.Record, error)

	// UpdateRecordStage moves a record to a different stage without
	// touching its other fields.
	UpdateRecordStage(ctx context.Context, id string, stage models.Stage) error

	// DeleteRecord removes a record entirely.
	DeleteRecord(ctx context.Context, id string) error

	// RestoreSnapshot replaces the entire remote state with the snapshot.
	RestoreSnapshot(ctx context.Context, snap *models.Snapshot) error
}
