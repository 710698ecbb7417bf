package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/wire"
)

// NotifyCmd returns the notify command with its subcommands
func NotifyCmd() *cobra.Command {
	var unread bool

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Manage notifications",
		Long:  "List and manage notifications. Reminder notifications are derived from due record reminders on every check.",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter := wire.NotificationAdapter()
			if err := adapter.Check(); err != nil {
				return err
			}
			return adapter.List(unread)
		},
	}

	cmd.Flags().BoolVar(&unread, "unread", false, "Show unread notifications only")

	cmd.AddCommand(&cobra.Command{
		Use:   "read [notification-id]",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.NotificationAdapter().Read(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove [notification-id]",
		Short: "Remove a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.NotificationAdapter().Remove(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear all notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.NotificationAdapter().Clear()
			return nil
		},
	})

	return cmd
}
