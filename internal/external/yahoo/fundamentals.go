package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/stockpulse/backend/internal/contracts"
)

// FetchFundamentals assembles a full fundamentals snapshot for a ticker
// from the summary, history and profile endpoints. The summary is
// required; history and profile degrade to nil fields so one flaky
// endpoint does not lose the whole snapshot.
func (c *Client) FetchFundamentals(ctx context.Context, ticker string) (*contracts.Fundamentals, error) {
	summary, err := c.FetchSummary(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch summary for %s failed: %w", ticker, err)
	}

	f := &contracts.Fundamentals{
		Ticker:       ticker,
		Timestamp:    time.Now().UTC(),
		MarketCap:    summary.MarketCap,
		EPS:          summary.EPS,
		PERatio:      summary.PERatio,
		ROE:          summary.ROE,
		DebtToEquity: summary.DebtToEquity,
		ProfitMargin: summary.ProfitMargin,
		CurrentRatio: summary.CurrentRatio,
		TotalRevenue: summary.TotalRevenue,
	}

	history, err := c.FetchHistory(ctx, ticker)
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Price history unavailable")
	} else {
		f.LastPrice = history.LastPrice
		f.YearHigh = history.YearHigh
		f.YearLow = history.YearLow
		f.Volume = history.Volume
		f.Volatility = AnnualizedVolatility(history.Closes)
		f.Liquidity = AverageDollarVolume(history.Closes, history.Volumes)
	}

	profile, err := c.FetchProfile(ctx, ticker)
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Company profile unavailable")
	} else {
		f.Sector = profile.Sector
		f.Industry = profile.Industry
	}

	return f, nil
}
