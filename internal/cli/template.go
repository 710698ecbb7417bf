package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/wire"
)

// TemplateCmd returns the template command for note and reminder templates
func TemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage note and reminder templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := wire.Store()
			fmt.Println("\nNote templates:")
			for _, t := range st.NoteTemplates() {
				fmt.Printf("  - %s\n", t)
			}
			fmt.Println("\nReminder templates:")
			for _, t := range st.ReminderTemplates() {
				fmt.Printf("  - %s\n", t)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.AddCommand(templateAddCmd())
	cmd.AddCommand(templateRemoveCmd())
	return cmd
}

func templateAddCmd() *cobra.Command {
	var reminder bool

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := wire.Store()
			if reminder {
				st.SetReminderTemplates(append(st.ReminderTemplates(), args[0]))
			} else {
				st.SetNoteTemplates(append(st.NoteTemplates(), args[0]))
			}
			if err := persistPrefs(); err != nil {
				return err
			}
			fmt.Printf("✓ Added template %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&reminder, "reminder", false, "Target the reminder templates")
	return cmd
}

func templateRemoveCmd() *cobra.Command {
	var reminder bool

	cmd := &cobra.Command{
		Use:   "remove [text]",
		Short: "Remove a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := wire.Store()
			src := st.NoteTemplates()
			if reminder {
				src = st.ReminderTemplates()
			}
			var kept []string
			var removed bool
			for _, t := range src {
				if t == args[0] {
					removed = true
					continue
				}
				kept = append(kept, t)
			}
			if !removed {
				return fmt.Errorf("template %q not found", args[0])
			}
			if reminder {
				st.SetReminderTemplates(kept)
			} else {
				st.SetNoteTemplates(kept)
			}
			if err := persistPrefs(); err != nil {
				return err
			}
			fmt.Printf("✓ Removed template %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&reminder, "reminder", false, "Target the reminder templates")
	return cmd
}
