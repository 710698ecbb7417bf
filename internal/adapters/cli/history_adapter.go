package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/partflow/internal/ports/primary"
)

// HistoryAdapter translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{service: service, out: out}
}

// List prints the ledger, newest first.
func (a *HistoryAdapter) List() error {
	commits := a.service.Commits()
	if len(commits) == 0 {
		fmt.Fprintln(a.out, "No commits in the ledger")
		return nil
	}

	fmt.Fprintf(a.out, "\n%d commit(s), newest first\n\n", len(commits))
	fmt.Fprintf(a.out, "%-10s %-20s %s\n", "ID", "TIME", "ACTION")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────")
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		fmt.Fprintf(a.out, "%-10s %-20s %s\n",
			shortID(c.ID), c.Timestamp.Local().Format("2006-01-02 15:04:05"), c.ActionName)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Restore restores the workflow to a commit's snapshot. Accepts a short
// id prefix when unambiguous.
func (a *HistoryAdapter) Restore(ctx context.Context, commitID string) error {
	full, err := a.resolve(commitID)
	if err != nil {
		return err
	}
	if err := a.service.RestoreToCommit(ctx, full); err != nil {
		return fmt.Errorf("failed to restore: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Restored to commit %s\n", shortID(full))
	return nil
}

func (a *HistoryAdapter) resolve(prefix string) (string, error) {
	var match string
	for _, c := range a.service.Commits() {
		if c.ID == prefix {
			return c.ID, nil
		}
		if len(prefix) >= 4 && len(c.ID) >= len(prefix) && c.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("ambiguous commit id %s", prefix)
			}
			match = c.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("commit %s not found", prefix)
	}
	return match, nil
}

// Save records a named checkpoint through the undo service, clearing the
// session undo stacks.
func SaveCheckpoint(undo primary.UndoService, out io.Writer, name string) {
	undo.CommitSave(name)
	color.New(color.FgGreen).Fprintf(out, "✓ Saved checkpoint: %s\n", name)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
