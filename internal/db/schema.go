package db

// GetSchemaSQL returns the authoritative schema. Tests run against this
// exact SQL so test schemas cannot drift from production.
func GetSchemaSQL() string {
	return schemaSQL
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    id               TEXT PRIMARY KEY,
    stage            TEXT NOT NULL,
    base_id          TEXT NOT NULL,
    tracking_id      TEXT NOT NULL,
    part_name        TEXT NOT NULL,
    car_model        TEXT,
    car_plate        TEXT,
    customer_name    TEXT,
    customer_phone   TEXT,
    status           TEXT NOT NULL,
    booking_date     TEXT,
    booking_note     TEXT,
    booking_status   TEXT,
    archive_reason   TEXT,
    archived_at      TEXT,
    action_note      TEXT,
    reminder_date    TEXT,
    reminder_time    TEXT,
    reminder_subject TEXT,
    created_at       TEXT,
    updated_at       TEXT
);

CREATE INDEX IF NOT EXISTS idx_records_stage ON records(stage);
CREATE INDEX IF NOT EXISTS idx_records_base_id ON records(base_id);

CREATE TABLE IF NOT EXISTS booking_vocab (
    position INTEGER PRIMARY KEY,
    label    TEXT NOT NULL
);
`
