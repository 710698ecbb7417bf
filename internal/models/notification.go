package models

import "time"

// NotificationTypeReminder marks notifications derived from a record's
// reminder becoming due. Reminder notifications are rebuilt by the
// reconciler, never authored directly.
const NotificationTypeReminder = "reminder"

// Notification is an entry in the notification list. For reminder-typed
// notifications the deduplication identity is (ReferenceID, Description),
// not ID.
type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ReferenceID string    `json:"referenceId"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	IsRead      bool      `json:"isRead"`
}
