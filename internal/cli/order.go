package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/models"
	"github.com/example/partflow/internal/ports/primary"
	"github.com/example/partflow/internal/wire"
)

// OrderCmd returns the order command with its subcommands
func OrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage part orders",
		Long:  "Create, list, and manage part orders in the workflow",
	}

	cmd.AddCommand(orderCreateCmd())
	cmd.AddCommand(orderListCmd())
	cmd.AddCommand(orderShowCmd())
	cmd.AddCommand(orderDeleteCmd())
	return cmd
}

func orderCreateCmd() *cobra.Command {
	var req primary.CreateOrderRequest

	cmd := &cobra.Command{
		Use:   "create [part-name]",
		Short: "Create a new order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.PartName = args[0]
			defer wire.Shutdown()
			return wire.WorkflowAdapter().CreateOrder(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&req.BaseID, "id", "", "Base number (next free when empty)")
	cmd.Flags().StringVar(&req.CarModel, "car", "", "Car model")
	cmd.Flags().StringVar(&req.CarPlate, "plate", "", "License plate")
	cmd.Flags().StringVar(&req.CustomerName, "customer", "", "Customer name")
	cmd.Flags().StringVar(&req.CustomerPhone, "phone", "", "Customer phone")
	cmd.Flags().StringVar(&req.Note, "note", "", "Initial note")
	return cmd
}

func orderListCmd() *cobra.Command {
	var stageName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records in a stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := parseStage(stageName)
			if err != nil {
				return err
			}
			return wire.WorkflowAdapter().List(stage)
		},
	}

	cmd.Flags().StringVar(&stageName, "stage", "orders", "Stage to list (orders, main, booking, call, archive)")
	return cmd
}

func orderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [record-id]",
		Short: "Show record details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().Show(args[0])
		},
	}
}

func orderDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [record-id...]",
		Short: "Delete records from the workflow",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			removed, err := wire.WorkflowService().DeleteRecords(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("failed to delete records: %w", err)
			}
			wire.WorkflowAdapter().Moved(removed, "Deleted")
			return nil
		},
	}
}

func parseStage(name string) (models.Stage, error) {
	stage := models.Stage(name)
	if !stage.Valid() {
		return "", fmt.Errorf("unknown stage %q (orders, main, booking, call, archive)", name)
	}
	return stage, nil
}
