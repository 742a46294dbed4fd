package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stockpulse/backend/internal/scheduler"
	"github.com/stockpulse/backend/internal/scheduler/jobs"
)

// schedulerCmd runs the background refresh scheduler.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the refresh scheduler",
	Long: `Run the background scheduler.

Refreshes fundamentals for the configured universe on the
MARKET_REFRESH_SCHEDULE cron expression.

Example:
  go run ./cmd/pulse scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	sched := scheduler.New(a.logger)

	refreshJob := jobs.NewRefreshJob(a.collector, a.cfg.Market.Universe, a.cfg.Market.RefreshSchedule, a.logger)
	if err := sched.AddJob(refreshJob); err != nil {
		return fmt.Errorf("add refresh job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	fmt.Printf("Scheduler running, refresh schedule: %s\n", a.cfg.Market.RefreshSchedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
