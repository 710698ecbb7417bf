package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/example/partflow/internal/config"
	"github.com/example/partflow/internal/wire"
)

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	var spec string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the reminder scan loop",
		Long: `Run the reminder scan loop in the foreground. On every tick the
notification list is reconciled against the currently due record
reminders and new notifications are printed. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if spec == "" {
				spec = config.DefaultScanInterval
				if dir, err := config.Dir(); err == nil {
					if cfg, err := config.LoadConfig(dir); err == nil {
						spec = cfg.ScanSpec()
					}
				}
			}

			adapter := wire.NotificationAdapterWithOutput(os.Stdout)

			scheduler := cron.New()
			_, err := scheduler.AddFunc(spec, func() {
				added, _ := wire.NotificationService().CheckNotifications()
				for _, n := range added {
					fmt.Printf("⏰ %s\n", n.Description)
				}
			})
			if err != nil {
				return fmt.Errorf("failed to schedule reminder scan: %w", err)
			}

			fmt.Printf("Watching reminders (%s), Ctrl-C to stop\n", spec)
			if err := adapter.Check(); err != nil {
				return err
			}
			scheduler.Start()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			fmt.Println("\nStopping")
			<-scheduler.Stop().Done()
			wire.Shutdown()
			return nil
		},
	}

	cmd.Flags().StringVar(&spec, "every", "", `Scan interval as a cron spec (default "@every 10s")`)
	return cmd
}
