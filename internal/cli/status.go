package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	stagecore "github.com/example/partflow/internal/core/stage"
	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show workflow overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.WorkflowService()

			fmt.Println()
			fmt.Printf("%-12s %s\n", "STAGE", "RECORDS")
			fmt.Println("────────────────────")
			total := 0
			for _, stage := range models.AllStages {
				n := len(svc.Records(stage))
				total += n
				fmt.Printf("%-12s %d\n", stagecore.Label(stage), n)
			}
			fmt.Println("────────────────────")
			fmt.Printf("%-12s %d\n", "Total", total)
			fmt.Println()
			return nil
		},
	}

	cmd.AddCommand(statusSetCmd())
	cmd.AddCommand(statusBookingCmd())
	return cmd
}

func statusSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [record-id] [status]",
		Short: "Set a record's part status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			if err := wire.WorkflowService().UpdatePartStatus(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to set status: %w", err)
			}
			fmt.Printf("✓ Status of %s set to %s\n", args[0], args[1])
			return nil
		},
	}
}

func statusBookingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "booking [record-id] [status]",
		Short: "Set a record's booking status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			if err := wire.WorkflowService().UpdateBookingStatus(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to set booking status: %w", err)
			}
			fmt.Printf("✓ Booking status of %s set to %s\n", args[0], args[1])
			return nil
		},
	}
}
