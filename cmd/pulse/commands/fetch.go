package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockpulse/backend/internal/marketdata/collector"
)

// fetchCmd runs a one-off fundamentals refresh.
var fetchCmd = &cobra.Command{
	Use:   "fetch [tickers...]",
	Short: "Refresh fundamentals snapshots",
	Long: `Fetch fresh fundamentals for tickers and store them.

Without arguments the configured universe is refreshed.

Example:
  go run ./cmd/pulse fetch
  go run ./cmd/pulse fetch AAPL NVDA`,
	RunE: runFetch,
}

var fetchWorkers int

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().IntVar(&fetchWorkers, "workers", 4, "concurrent fetch workers")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	tickers := args
	if len(tickers) == 0 {
		tickers = a.cfg.Market.Universe
	}

	results, err := a.collector.RefreshAll(ctx, tickers, collector.Config{Workers: fetchWorkers})
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Printf("  FAIL %s: %v\n", res.Ticker, res.Error)
		}
	}
	fmt.Printf("Refreshed %d/%d tickers\n", len(results)-failed, len(results))

	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("all tickers failed")
	}
	return nil
}
