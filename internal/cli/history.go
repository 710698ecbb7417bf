package cli

import (
	"os"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/partflow/internal/adapters/cli"
	"github.com/example/partflow/internal/wire"
)

// HistoryCmd returns the history command with its subcommands
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the audit ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HistoryAdapter().List()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "restore [commit-id]",
		Short: "Restore the workflow to a ledger commit",
		Long: `Restore every stage and the booking vocabulary to the state captured
by a commit. The remote store is updated first, so a remote failure
leaves local state untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			return wire.HistoryAdapter().Restore(cmd.Context(), args[0])
		},
	})

	return cmd
}

// SaveCmd returns the save command
func SaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [checkpoint-name]",
		Short: "Record a named checkpoint in the ledger",
		Long:  "Record a named checkpoint in the audit ledger. Clears the session undo and redo stacks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			cliadapter.SaveCheckpoint(wire.UndoService(), os.Stdout, args[0])
			return nil
		},
	}
}
