package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	stagecore "github.com/example/partflow/internal/core/stage"
	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/store"
)

// NotificationServiceImpl implements the NotificationService interface.
// Reminder notifications are derived state: each reconciliation pass
// rebuilds the reminder-typed subset of the list to exactly match the
// reminders currently due in the record store. Rebuild-and-diff, not
// append-only: a reminder rescheduled to the future or deleted must
// drop out of the list, which an append-only strategy could never do.
type NotificationServiceImpl struct {
	store *store.Store

	mu            sync.Mutex
	notifications []*models.Notification

	now func() time.Time
}

// NewNotificationService creates a new NotificationService with injected
// dependencies.
func NewNotificationService(st *store.Store) *NotificationServiceImpl {
	return &NotificationServiceImpl{store: st, now: time.Now}
}

// dueReminder describes a currently-due reminder found in the store.
type dueReminder struct {
	referenceID string
	description string
	tabName     string
	path        string
}

// CheckNotifications scans every stage collection for due reminders and
// reconciles the reminder subset of the notification list against them.
// Matching existing notifications (same referenceId and description) are
// kept untouched so read state and original timestamps survive; the rest
// of the subset is synthesized fresh. When the resulting reminder set is
// identical in membership to the previous one, the list is not written
// at all, so downstream consumers see the same slice and skip their own
// refresh work.
func (s *NotificationServiceImpl) CheckNotifications() ([]*models.Notification, bool) {
	now := s.now()

	var due []dueReminder
	s.store.ForEach(func(stage models.Stage, rec *models.Record) {
		if rec.Reminder == nil {
			return
		}
		if !reminderDue(rec.Reminder, now) {
			return
		}
		due = append(due, dueReminder{
			referenceID: rec.ID,
			description: reminderDescription(rec),
			tabName:     stagecore.Label(stage),
			path:        stagecore.Path(stage),
		})
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]*models.Notification)
	var others []*models.Notification
	for _, n := range s.notifications {
		if n.Type == models.NotificationTypeReminder {
			existing[n.ReferenceID+"\x00"+n.Description] = n
		} else {
			others = append(others, n)
		}
	}

	var added []*models.Notification
	rebuilt := make([]*models.Notification, 0, len(due))
	for _, d := range due {
		if n, ok := existing[d.referenceID+"\x00"+d.description]; ok {
			rebuilt = append(rebuilt, n)
			continue
		}
		n := &models.Notification{
			ID:          uuid.NewString(),
			Type:        models.NotificationTypeReminder,
			ReferenceID: d.referenceID,
			Description: d.description,
			Timestamp:   now,
			IsRead:      false,
		}
		rebuilt = append(rebuilt, n)
		added = append(added, n)
	}

	if len(added) == 0 && len(rebuilt) == len(existing) {
		// Same membership and size: skip the write entirely.
		return nil, false
	}

	s.notifications = append(others, rebuilt...)
	return added, true
}

// reminderDue reports whether a reminder is due at now. A missing time
// means midnight. Unparseable reminders are never due.
func reminderDue(rem *models.Reminder, now time.Time) bool {
	tm := rem.Time
	if tm == "" {
		tm = "00:00"
	}
	at, err := time.ParseInLocation("2006-01-02T15:04", rem.Date+"T"+tm, now.Location())
	if err != nil {
		return false
	}
	return !now.Before(at)
}

// reminderDescription formats the user-facing description line embedding
// date, time, customer and subject. The string doubles as half of the
// notification's deduplication identity, so editing any embedded field
// retires the old notification on the next reconciliation pass.
func reminderDescription(rec *models.Record) string {
	tm := ""
	if rec.Reminder.Time != "" {
		tm = " " + rec.Reminder.Time
	}
	customer := rec.CustomerName
	if customer == "" {
		customer = rec.TrackingID
	}
	return fmt.Sprintf("Reminder %s%s: %s — %s", rec.Reminder.Date, tm, customer, rec.Reminder.Subject)
}

// Notifications returns the current list, reminder entries last.
func (s *NotificationServiceImpl) Notifications() []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// AddNotification appends a non-derived notification. Reminder-typed
// entries belong to the reconciler and are rejected here.
func (s *NotificationServiceImpl) AddNotification(n *models.Notification) {
	if n.Type == models.NotificationTypeReminder {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now()
	}
	s.notifications = append(s.notifications, n)
}

// MarkAsRead flags a notification as read.
func (s *NotificationServiceImpl) MarkAsRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id {
			n.IsRead = true
			return true
		}
	}
	return false
}

// Remove deletes a notification by id.
func (s *NotificationServiceImpl) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the notification list.
func (s *NotificationServiceImpl) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}
