package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd reports system health and data coverage.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status",
	Long: `Check database connectivity and report data coverage.

Example:
  go run ./cmd/pulse status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	health, err := a.db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("database health check: %w", err)
	}
	fmt.Printf("Database:   ok (%s, %d/%d conns)\n",
		health.ResponseTime, health.TotalConns, health.MaxConns)

	if a.redis.Enabled() {
		fmt.Println("Redis:      enabled")
	} else {
		fmt.Println("Redis:      disabled")
	}

	stocks, err := a.fundamentalsRepo.ListLatest(ctx)
	if err != nil {
		return fmt.Errorf("list fundamentals: %w", err)
	}
	fmt.Printf("Snapshots:  %d tickers (universe: %d)\n",
		len(stocks), len(a.cfg.Market.Universe))

	docs, err := a.sentimentRepo.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list sentiment documents: %w", err)
	}
	fmt.Printf("Sentiment:  %d documents\n", len(docs))

	covered := map[string]bool{}
	for _, d := range docs {
		covered[d.Ticker()] = true
	}
	matched := 0
	for _, s := range stocks {
		if covered[s.Ticker] {
			matched++
		}
	}
	fmt.Printf("Coverage:   %d/%d snapshots have sentiment\n", matched, len(stocks))

	return nil
}
