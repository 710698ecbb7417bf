// Package sqlite contains the SQLite implementation of the RemoteStore
// port. The workflow core drives it through the five opaque operations
// and never sees the storage format below.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/partflow/internal/models"
)

// RecordStore implements secondary.RemoteStore with SQLite.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore creates a new SQLite record store.
func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

const recordSelectCols = "id, stage, base_id, tracking_id, part_name, car_model, car_plate, customer_name, customer_phone, status, booking_date, booking_note, booking_status, archive_reason, archived_at, action_note, reminder_date, reminder_time, reminder_subject, created_at, updated_at"

// scanRecord scans a record row into a models.Record plus its stage.
func scanRecord(scanner interface {
	Scan(dest ...any) error
}) (*models.Record, models.Stage, error) {
	var (
		stage           string
		carModel        sql.NullString
		carPlate        sql.NullString
		customerName    sql.NullString
		customerPhone   sql.NullString
		bookingDate     sql.NullString
		bookingNote     sql.NullString
		bookingStatus   sql.NullString
		archiveReason   sql.NullString
		archivedAt      sql.NullString
		actionNote      sql.NullString
		reminderDate    sql.NullString
		reminderTime    sql.NullString
		reminderSubject sql.NullString
		createdAt       sql.NullString
		updatedAt       sql.NullString
	)

	rec := &models.Record{}
	err := scanner.Scan(
		&rec.ID, &stage, &rec.BaseID, &rec.TrackingID, &rec.PartName,
		&carModel, &carPlate, &customerName, &customerPhone, &rec.Status,
		&bookingDate, &bookingNote, &bookingStatus,
		&archiveReason, &archivedAt, &actionNote,
		&reminderDate, &reminderTime, &reminderSubject,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, "", err
	}

	rec.CarModel = carModel.String
	rec.CarPlate = carPlate.String
	rec.CustomerName = customerName.String
	rec.CustomerPhone = customerPhone.String
	rec.BookingDate = bookingDate.String
	rec.BookingNote = bookingNote.String
	rec.BookingStatus = bookingStatus.String
	rec.ArchiveReason = archiveReason.String
	rec.ArchivedAt = archivedAt.String
	rec.ActionNote = actionNote.String
	rec.CreatedAt = createdAt.String
	rec.UpdatedAt = updatedAt.String

	if reminderDate.Valid && reminderDate.String != "" {
		rec.Reminder = &models.Reminder{
			Date:    reminderDate.String,
			Time:    reminderTime.String,
			Subject: reminderSubject.String,
		}
	}

	return rec, models.Stage(stage), nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// GetRecords retrieves the records of one stage, or of every stage when
// stage is empty.
func (r *RecordStore) GetRecords(ctx context.Context, stage models.Stage) ([]*models.Record, error) {
	query := "SELECT " + recordSelectCols + " FROM records ORDER BY created_at, id"
	args := []any{}
	if stage != "" {
		query = "SELECT " + recordSelectCols + " FROM records WHERE stage = ? ORDER BY created_at, id"
		args = append(args, string(stage))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		rec, _, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// GetRecordsByStage retrieves every record grouped by stage, for
// hydration at startup.
func (r *RecordStore) GetRecordsByStage(ctx context.Context) (models.StageSet, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+recordSelectCols+" FROM records ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	set := make(models.StageSet)
	for rows.Next() {
		rec, stage, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		set[stage] = append(set[stage], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return set, nil
}

const recordUpsert = `
INSERT INTO records (` + recordSelectCols + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    stage = excluded.stage,
    base_id = excluded.base_id,
    tracking_id = excluded.tracking_id,
    part_name = excluded.part_name,
    car_model = excluded.car_model,
    car_plate = excluded.car_plate,
    customer_name = excluded.customer_name,
    customer_phone = excluded.customer_phone,
    status = excluded.status,
    booking_date = excluded.booking_date,
    booking_note = excluded.booking_note,
    booking_status = excluded.booking_status,
    archive_reason = excluded.archive_reason,
    archived_at = excluded.archived_at,
    action_note = excluded.action_note,
    reminder_date = excluded.reminder_date,
    reminder_time = excluded.reminder_time,
    reminder_subject = excluded.reminder_subject,
    updated_at = excluded.updated_at`

// SaveRecord upserts a record under the given stage.
func (r *RecordStore) SaveRecord(ctx context.Context, rec *models.Record, stage models.Stage) (*models.Record, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
	if err := r.execUpsert(ctx, r.db, rec, stage); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	return rec.Clone(), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *RecordStore) execUpsert(ctx context.Context, ex execer, rec *models.Record, stage models.Stage) error {
	var remDate, remTime, remSubject sql.NullString
	if rec.Reminder != nil {
		remDate = nullable(rec.Reminder.Date)
		remTime = nullable(rec.Reminder.Time)
		remSubject = nullable(rec.Reminder.Subject)
	}

	_, err := ex.ExecContext(ctx, recordUpsert,
		rec.ID, string(stage), rec.BaseID, rec.TrackingID, rec.PartName,
		nullable(rec.CarModel), nullable(rec.CarPlate),
		nullable(rec.CustomerName), nullable(rec.CustomerPhone), rec.Status,
		nullable(rec.BookingDate), nullable(rec.BookingNote), nullable(rec.BookingStatus),
		nullable(rec.ArchiveReason), nullable(rec.ArchivedAt), nullable(rec.ActionNote),
		remDate, remTime, remSubject,
		nullable(rec.CreatedAt), nullable(rec.UpdatedAt),
	)
	return err
}

// UpdateRecordStage moves a record to a different stage without touching
// its other fields.
func (r *RecordStore) UpdateRecordStage(ctx context.Context, id string, stage models.Stage) error {
	if !stage.Valid() {
		return fmt.Errorf("unknown stage %q", stage)
	}
	res, err := r.db.ExecContext(ctx, "UPDATE records SET stage = ? WHERE id = ?", string(stage), id)
	if err != nil {
		return fmt.Errorf("failed to update record stage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update record stage: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s not found", id)
	}
	return nil
}

// DeleteRecord removes a record entirely. Deleting an unknown id is not
// an error.
func (r *RecordStore) DeleteRecord(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// RestoreSnapshot replaces the entire stored state with the snapshot,
// transactionally: either every collection and the booking vocabulary
// land, or nothing changes.
func (r *RecordStore) RestoreSnapshot(ctx context.Context, snap *models.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin restore: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	for stage, records := range snap.Stages {
		for _, rec := range records {
			if err := r.execUpsert(ctx, tx, rec, stage); err != nil {
				return fmt.Errorf("failed to restore record %s: %w", rec.ID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM booking_vocab"); err != nil {
		return fmt.Errorf("failed to clear booking vocabulary: %w", err)
	}
	for i, label := range snap.BookingVocab {
		if _, err := tx.ExecContext(ctx, "INSERT INTO booking_vocab (position, label) VALUES (?, ?)", i, label); err != nil {
			return fmt.Errorf("failed to restore booking vocabulary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}
