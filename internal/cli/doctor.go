package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/config"
	"github.com/example/partflow/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the partflow environment",
		Long: `Environment health check for partflow.

Validates:
- Settings directory (~/.partflow/)
- Config file
- Database file and schema
- Prefs blob

Examples:
  partflow doctor          # Run full health check
  partflow doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkSettingsDir(),
				checkConfigFile(),
				checkDatabase(),
				checkPrefs(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("%s: %s\n", r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Exit code only, no output")
	return cmd
}

func checkSettingsDir() CheckResult {
	dir, err := config.Dir()
	if err != nil {
		return CheckResult{"Settings dir", "✗", err.Error()}
	}
	if _, err := os.Stat(dir); err != nil {
		return CheckResult{"Settings dir", "✗", dir + " missing, run: partflow init"}
	}
	return CheckResult{"Settings dir", "✓", ""}
}

func checkConfigFile() CheckResult {
	dir, err := config.Dir()
	if err != nil {
		return CheckResult{"Config", "✗", err.Error()}
	}
	if _, err := config.LoadConfig(dir); err != nil {
		return CheckResult{"Config", "⚠", "no config.json, defaults in effect"}
	}
	return CheckResult{"Config", "✓", ""}
}

func checkDatabase() CheckResult {
	path, err := db.DefaultPath()
	if err != nil {
		return CheckResult{"Database", "✗", err.Error()}
	}
	if _, err := os.Stat(path); err != nil {
		return CheckResult{"Database", "✗", path + " missing, run: partflow init"}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return CheckResult{"Database", "✗", err.Error()}
	}
	defer conn.Close()

	var name string
	err = conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='records'").Scan(&name)
	if err != nil {
		return CheckResult{"Database", "✗", "records table missing, run: partflow init"}
	}
	return CheckResult{"Database", "✓", ""}
}

func checkPrefs() CheckResult {
	dir, err := config.Dir()
	if err != nil {
		return CheckResult{"Prefs", "✗", err.Error()}
	}
	path := filepath.Join(dir, "prefs.json")
	if _, err := os.Stat(path); err != nil {
		return CheckResult{"Prefs", "⚠", "no prefs.json, seeded defaults in effect"}
	}
	return CheckResult{"Prefs", "✓", ""}
}
