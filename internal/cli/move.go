package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/ports/primary"
	"github.com/example/partflow/internal/wire"
)

// CommitCmd returns the commit command (orders → main sheet)
func CommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit [record-id...]",
		Short: "Commit orders to the main sheet",
		Long: `Commit orders to the main sheet. Each record must have complete
customer and vehicle details; incomplete records stay in Orders with a
30-second grace window to fix the missing fields.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			return wire.WorkflowAdapter().Commit(cmd.Context(), args)
		},
	}
}

// BookCmd returns the book command (→ booking)
func BookCmd() *cobra.Command {
	var req primary.BookingRequest

	cmd := &cobra.Command{
		Use:   "book [record-id...]",
		Short: "Send records to booking",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.IDs = args
			defer wire.Shutdown()
			moved, err := wire.WorkflowService().SendToBooking(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to book: %w", err)
			}
			wire.WorkflowAdapter().Moved(moved, "Booked")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "Booking date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Note, "note", "", "Booking note")
	cmd.Flags().StringVar(&req.Status, "status", "", "Booking status")
	cmd.MarkFlagRequired("date")
	return cmd
}

// CallCmd returns the call command (→ call list)
func CallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call [record-id...]",
		Short: "Send records to the call list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			moved, err := wire.WorkflowService().SendToCallList(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("failed to send to call list: %w", err)
			}
			wire.WorkflowAdapter().Moved(moved, "Sent to call list:")
			return nil
		},
	}
}

// ArchiveCmd returns the archive command
func ArchiveCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "archive [record-id...]",
		Short: "Archive records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			moved, err := wire.WorkflowService().SendToArchive(cmd.Context(), args, reason)
			if err != nil {
				return fmt.Errorf("failed to archive: %w", err)
			}
			wire.WorkflowAdapter().Moved(moved, "Archived")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Archive reason, appended to the record notes")
	return cmd
}

// ReorderCmd returns the reorder command (back into orders)
func ReorderCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reorder [record-id...]",
		Short: "Flow records back into orders",
		Long:  "Send records back to Orders for another round, clearing any booking context.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			moved, err := wire.WorkflowService().SendToReorder(cmd.Context(), args, reason)
			if err != nil {
				return fmt.Errorf("failed to reorder: %w", err)
			}
			wire.WorkflowAdapter().Moved(moved, "Reordered")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reorder reason, appended to the record notes")
	return cmd
}
