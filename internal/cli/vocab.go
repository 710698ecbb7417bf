package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/wire"
)

// VocabCmd returns the vocab command for managing status vocabularies
func VocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage status vocabularies",
		Long:  "Manage the free-form part status and booking status vocabularies offered by the UI surfaces.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := wire.Store()
			fmt.Println("\nPart statuses:")
			for _, s := range st.StatusVocab() {
				fmt.Printf("  - %s\n", s)
			}
			fmt.Println("\nBooking statuses:")
			for _, s := range st.BookingStatusVocab() {
				fmt.Printf("  - %s\n", s)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.AddCommand(vocabAddCmd())
	cmd.AddCommand(vocabRemoveCmd())
	return cmd
}

func vocabAddCmd() *cobra.Command {
	var booking bool

	cmd := &cobra.Command{
		Use:   "add [label]",
		Short: "Add a vocabulary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			st := wire.Store()
			if booking {
				st.SetBookingStatusVocab(append(st.BookingStatusVocab(), args[0]))
				wire.HistoryService().AddCommit("Updated booking vocabulary")
			} else {
				st.SetStatusVocab(append(st.StatusVocab(), args[0]))
			}
			if err := persistPrefs(); err != nil {
				return err
			}
			fmt.Printf("✓ Added %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&booking, "booking", false, "Target the booking status vocabulary")
	return cmd
}

func vocabRemoveCmd() *cobra.Command {
	var booking bool

	cmd := &cobra.Command{
		Use:   "remove [label]",
		Short: "Remove a vocabulary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Shutdown()
			st := wire.Store()
			var kept []string
			var removed bool
			src := st.StatusVocab()
			if booking {
				src = st.BookingStatusVocab()
			}
			for _, s := range src {
				if s == args[0] {
					removed = true
					continue
				}
				kept = append(kept, s)
			}
			if !removed {
				return fmt.Errorf("vocabulary entry %q not found", args[0])
			}
			if booking {
				st.SetBookingStatusVocab(kept)
				wire.HistoryService().AddCommit("Updated booking vocabulary")
			} else {
				st.SetStatusVocab(kept)
			}
			if err := persistPrefs(); err != nil {
				return err
			}
			fmt.Printf("✓ Removed %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&booking, "booking", false, "Target the booking status vocabulary")
	return cmd
}

// persistPrefs writes the store's current reference data back to the
// prefs blob, preserving fields the store does not own.
func persistPrefs() error {
	st := wire.Store()
	prefs, err := wire.PrefsStore().Load()
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}
	prefs.StatusVocab = st.StatusVocab()
	prefs.BookingStatusVocab = st.BookingStatusVocab()
	prefs.NoteTemplates = st.NoteTemplates()
	prefs.ReminderTemplates = st.ReminderTemplates()
	if err := wire.PrefsStore().Save(prefs); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}
