package primary

import "github.com/example/partflow/internal/models"

// NotificationService owns the notification list. Only CheckNotifications
// contains reconciliation logic; the remaining methods are pass-through
// mutators for the notification consumer.
type NotificationService interface {
	// CheckNotifications rebuilds the reminder-typed subset of the list
	// to exactly match the currently-due reminders in the record store.
	// Existing notifications whose (referenceId, description) still match
	// are kept untouched, preserving read state and timestamp. Returns
	// the newly synthesized notifications and whether the list changed
	// at all (an unchanged reminder set skips the write entirely).
	CheckNotifications() (added []*models.Notification, changed bool)

	// Notifications returns the current list, reminder entries last.
	Notifications() []*models.Notification

	// AddNotification appends a non-derived notification.
	AddNotification(n *models.Notification)

	// MarkAsRead flags a notification as read.
	MarkAsRead(id string) bool

	// Remove deletes a notification by id.
	Remove(id string) bool

	// Clear empties the notification list.
	Clear()
}
