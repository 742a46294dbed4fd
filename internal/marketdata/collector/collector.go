package collector

import (
	"context"
	"fmt"
	"sync"

	"github.com/stockpulse/backend/internal/external/yahoo"
	"github.com/stockpulse/backend/internal/marketdata"
	"github.com/stockpulse/backend/pkg/logger"
)

// Collector orchestrates fundamentals collection from the upstream
// market data source into the snapshot store.
type Collector struct {
	yahooClient *yahoo.Client
	repo        *marketdata.FundamentalsRepository
	logger      *logger.Logger
}

// Config holds collector configuration.
type Config struct {
	Workers int
}

// NewCollector creates a new Collector.
func NewCollector(yahooClient *yahoo.Client, repo *marketdata.FundamentalsRepository, log *logger.Logger) *Collector {
	return &Collector{
		yahooClient: yahooClient,
		repo:        repo,
		logger:      log.WithField("module", "collector"),
	}
}

// FetchResult is the per-ticker outcome of a refresh.
type FetchResult struct {
	Ticker string
	Error  error
}

// RefreshAll fetches and stores a fresh snapshot for every ticker in the
// universe. Failures are collected per ticker; one bad ticker never
// aborts the run.
func (c *Collector) RefreshAll(ctx context.Context, tickers []string, cfg Config) ([]FetchResult, error) {
	if len(tickers) == 0 {
		return nil, nil
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(tickers) {
		workers = len(tickers)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker_count": len(tickers),
		"workers":      workers,
	}).Info("Starting fundamentals refresh")

	tickerCh := make(chan string, len(tickers))
	resultCh := make(chan FetchResult, len(tickers))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range tickerCh {
				resultCh <- c.refreshOne(ctx, ticker)
			}
		}()
	}

	for _, ticker := range tickers {
		tickerCh <- ticker
	}
	close(tickerCh)

	wg.Wait()
	close(resultCh)

	results := make([]FetchResult, 0, len(tickers))
	failed := 0
	for res := range resultCh {
		if res.Error != nil {
			failed++
		}
		results = append(results, res)
	}

	c.logger.WithFields(map[string]interface{}{
		"succeeded": len(results) - failed,
		"failed":    failed,
	}).Info("Fundamentals refresh completed")

	return results, nil
}

// refreshOne fetches and stores one ticker's snapshot.
func (c *Collector) refreshOne(ctx context.Context, ticker string) FetchResult {
	result := FetchResult{Ticker: ticker}

	f, err := c.yahooClient.FetchFundamentals(ctx, ticker)
	if err != nil {
		result.Error = fmt.Errorf("fetch %s: %w", ticker, err)
		c.logger.WithError(err).WithField("ticker", ticker).Error("Fetch failed")
		return result
	}

	if err := c.repo.Save(ctx, f); err != nil {
		result.Error = fmt.Errorf("save %s: %w", ticker, err)
		c.logger.WithError(err).WithField("ticker", ticker).Error("Save failed")
		return result
	}

	return result
}
