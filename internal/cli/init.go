package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/config"
	"github.com/example/partflow/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var shopName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the partflow database and config",
		Long:  `Initialize the partflow database at ~/.partflow/partflow.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.Dir()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}

			dbPath, err := db.DefaultPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing partflow database at %s\n", dbPath)

			if _, err := db.Open(dbPath); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if _, err := config.LoadConfig(dir); err != nil {
				cfg := &config.Config{Version: "1", ShopName: shopName}
				if err := config.SaveConfig(dir, cfg); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Println("✓ Config file created at ~/.partflow/config.json")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  partflow order create \"Brake pads front\" --customer \"J. Smith\"")
			fmt.Println("  partflow status")

			return nil
		},
	}

	cmd.Flags().StringVar(&shopName, "shop", "", "Shop name stored in the config")
	return cmd
}
