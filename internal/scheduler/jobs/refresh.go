package jobs

import (
	"context"
	"fmt"

	"github.com/stockpulse/backend/internal/marketdata/collector"
	"github.com/stockpulse/backend/pkg/logger"
)

// RefreshJob refreshes fundamentals snapshots for the configured
// universe on the market close schedule.
type RefreshJob struct {
	collector *collector.Collector
	universe  []string
	schedule  string
	logger    *logger.Logger
}

// NewRefreshJob creates a refresh job.
func NewRefreshJob(c *collector.Collector, universe []string, schedule string, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		collector: c,
		universe:  universe,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string {
	return "fundamentals_refresh"
}

// Schedule returns the cron expression.
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run refreshes the whole universe. The run fails only when every
// ticker fails, so a single flaky symbol does not trip the retry loop.
func (j *RefreshJob) Run(ctx context.Context) error {
	results, err := j.collector.RefreshAll(ctx, j.universe, collector.Config{})
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
		}
	}

	if len(results) > 0 && failed == len(results) {
		return fmt.Errorf("all %d tickers failed", failed)
	}

	if failed > 0 {
		j.logger.WithFields(map[string]interface{}{
			"failed": failed,
			"total":  len(results),
		}).Warn("Refresh completed with failures")
	}

	return nil
}
