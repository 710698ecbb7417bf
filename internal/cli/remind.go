package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/wire"
)

// RemindCmd returns the remind command with its subcommands
func RemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage record reminders",
	}

	cmd.AddCommand(remindSetCmd())
	cmd.AddCommand(remindClearCmd())
	return cmd
}

func remindSetCmd() *cobra.Command {
	var reminder models.Reminder

	cmd := &cobra.Command{
		Use:   "set [record-id]",
		Short: "Attach or replace a record's reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			if err := wire.WorkflowService().SetReminder(cmd.Context(), args[0], &reminder); err != nil {
				return fmt.Errorf("failed to set reminder: %w", err)
			}
			fmt.Printf("✓ Reminder set for %s on %s %s\n", args[0], reminder.Date, reminder.Time)
			return wire.NotificationAdapter().Check()
		},
	}

	cmd.Flags().StringVar(&reminder.Date, "date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reminder.Time, "time", "", "Due time (HH:MM, midnight when empty)")
	cmd.Flags().StringVar(&reminder.Subject, "subject", "", "Reminder subject")
	cmd.MarkFlagRequired("date")
	return cmd
}

func remindClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [record-id]",
		Short: "Remove a record's reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			if err := wire.WorkflowService().ClearReminder(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to clear reminder: %w", err)
			}
			fmt.Printf("✓ Reminder cleared for %s\n", args[0])
			return wire.NotificationAdapter().Check()
		},
	}
}
