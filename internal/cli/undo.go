package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/wire"
)

// UndoCmd returns the undo command
func UndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recent mutation in this session",
		Long: `Undo the most recent mutation. The undo stack lives in process memory
only; it covers mutations made in the current session (the watch loop
or a scripted sequence), not previous partflow invocations. For durable
recovery use "partflow history restore".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wire.UndoService().Undo() {
				fmt.Println("Nothing to undo")
				return nil
			}
			undo, redo := wire.UndoService().Depth()
			fmt.Printf("✓ Undone (%d undo, %d redo remaining)\n", undo, redo)
			return nil
		},
	}
}

// RedoCmd returns the redo command
func RedoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Re-apply the most recently undone mutation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wire.UndoService().Redo() {
				fmt.Println("Nothing to redo")
				return nil
			}
			undo, redo := wire.UndoService().Depth()
			fmt.Printf("✓ Redone (%d undo, %d redo remaining)\n", undo, redo)
			return nil
		},
	}
}
