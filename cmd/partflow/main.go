package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/cli"
	"github.com/example/partflow/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "partflow",
		Short:   "partflow - spare parts workflow tracker",
		Version: version.String(),
		Long: `partflow tracks spare part orders through a service shop workflow:
orders, main sheet, booking, call list, and archive. Every mutation is
mirrored to a local SQLite store and recorded in an audit ledger.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.OrderCmd())
	rootCmd.AddCommand(cli.CommitCmd())
	rootCmd.AddCommand(cli.BookCmd())
	rootCmd.AddCommand(cli.CallCmd())
	rootCmd.AddCommand(cli.ArchiveCmd())
	rootCmd.AddCommand(cli.ReorderCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.RemindCmd())
	rootCmd.AddCommand(cli.NotifyCmd())
	rootCmd.AddCommand(cli.WatchCmd())

	// Ledger and session history
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.SaveCmd())
	rootCmd.AddCommand(cli.UndoCmd())
	rootCmd.AddCommand(cli.RedoCmd())

	// Reference data
	rootCmd.AddCommand(cli.VocabCmd())
	rootCmd.AddCommand(cli.TemplateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
