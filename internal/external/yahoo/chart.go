package yahoo

import (
	"context"
	"fmt"

	"github.com/stockpulse/backend/pkg/redis"
)

// PriceHistory holds one year of daily closes and volumes for a ticker,
// plus the quote basics reported alongside them.
type PriceHistory struct {
	Ticker    string    `json:"ticker"`
	LastPrice *float64  `json:"last_price"`
	YearHigh  *float64  `json:"year_high"`
	YearLow   *float64  `json:"year_low"`
	Volume    *float64  `json:"volume"`
	Closes    []float64 `json:"closes"`
	Volumes   []float64 `json:"volumes"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice  *float64 `json:"regularMarketPrice"`
				FiftyTwoWeekHigh    *float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow     *float64 `json:"fiftyTwoWeekLow"`
				RegularMarketVolume *float64 `json:"regularMarketVolume"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory fetches one year of daily price history for a ticker.
func (c *Client) FetchHistory(ctx context.Context, ticker string) (*PriceHistory, error) {
	cacheKey := redis.HistoryKey(ticker)
	var cached PriceHistory
	if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=1y&interval=1d", c.quoteBaseURL, ticker)

	var resp chartResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", ticker, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", ticker)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	history := &PriceHistory{
		Ticker:    ticker,
		LastPrice: result.Meta.RegularMarketPrice,
		YearHigh:  result.Meta.FiftyTwoWeekHigh,
		YearLow:   result.Meta.FiftyTwoWeekLow,
		Volume:    result.Meta.RegularMarketVolume,
	}

	// Rows with a null close (halts, partial sessions) are dropped so
	// the return series stays contiguous.
	for i, closePrice := range quote.Close {
		if closePrice == nil {
			continue
		}
		history.Closes = append(history.Closes, *closePrice)
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			history.Volumes = append(history.Volumes, *quote.Volume[i])
		} else {
			history.Volumes = append(history.Volumes, 0)
		}
	}

	if err := c.cache.Set(ctx, cacheKey, history, redis.TTLHistory); err != nil {
		c.logger.WithError(err).Warn("Failed to cache price history")
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"days":   len(history.Closes),
	}).Debug("Fetched price history")

	return history, nil
}
