package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/partflow/internal/ports/primary"
)

// NotificationAdapter translates CLI operations to NotificationService
// calls.
type NotificationAdapter struct {
	service primary.NotificationService
	out     io.Writer
}

// NewNotificationAdapter creates a new NotificationAdapter with the
// given service.
func NewNotificationAdapter(service primary.NotificationService, out io.Writer) *NotificationAdapter {
	return &NotificationAdapter{service: service, out: out}
}

// Check runs the reminder reconciler and prints what it synthesized.
func (a *NotificationAdapter) Check() error {
	added, changed := a.service.CheckNotifications()
	if !changed {
		fmt.Fprintln(a.out, "Notifications up to date")
		return nil
	}
	for _, n := range added {
		color.New(color.FgYellow).Fprintf(a.out, "⏰ %s\n", n.Description)
	}
	if len(added) == 0 {
		fmt.Fprintln(a.out, "✓ Cleared stale reminder notifications")
	}
	return nil
}

// List prints the notification list, reminders last.
func (a *NotificationAdapter) List(unreadOnly bool) error {
	all := a.service.Notifications()

	shown := 0
	for _, n := range all {
		if unreadOnly && n.IsRead {
			continue
		}
		marker := "•"
		line := color.New(color.Bold)
		if n.IsRead {
			marker = " "
			line = color.New(color.FgHiBlack)
		}
		line.Fprintf(a.out, "%s [%-8s] %-10s %s\n",
			marker, n.Type, shortID(n.ID), n.Description)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(a.out, "No notifications")
	}
	return nil
}

// Read marks a notification as read.
func (a *NotificationAdapter) Read(id string) error {
	if !a.service.MarkAsRead(id) {
		return fmt.Errorf("notification %s not found", id)
	}
	fmt.Fprintf(a.out, "✓ Marked %s as read\n", shortID(id))
	return nil
}

// Remove deletes a notification.
func (a *NotificationAdapter) Remove(id string) error {
	if !a.service.Remove(id) {
		return fmt.Errorf("notification %s not found", id)
	}
	fmt.Fprintf(a.out, "✓ Removed %s\n", shortID(id))
	return nil
}

// Clear empties the notification list.
func (a *NotificationAdapter) Clear() {
	a.service.Clear()
	fmt.Fprintln(a.out, "✓ Cleared notifications")
}
