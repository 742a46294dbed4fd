package yahoo

import (
	"context"
	"fmt"

	"github.com/stockpulse/backend/pkg/redis"
)

// QuoteSummary holds the fundamental fields reported by the quote
// summary endpoint. Absent upstream values stay nil.
type QuoteSummary struct {
	Ticker       string   `json:"ticker"`
	MarketCap    *float64 `json:"market_cap"`
	EPS          *float64 `json:"eps"`
	PERatio      *float64 `json:"pe_ratio"`
	ROE          *float64 `json:"roe"`
	DebtToEquity *float64 `json:"debt_to_equity"`
	ProfitMargin *float64 `json:"profit_margin"`
	CurrentRatio *float64 `json:"current_ratio"`
	TotalRevenue *float64 `json:"total_revenue"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail *struct {
				MarketCap  *rawValue `json:"marketCap"`
				TrailingPE *rawValue `json:"trailingPE"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics *struct {
				TrailingEPS *rawValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				ReturnOnEquity *rawValue `json:"returnOnEquity"`
				DebtToEquity   *rawValue `json:"debtToEquity"`
				ProfitMargins  *rawValue `json:"profitMargins"`
				CurrentRatio   *rawValue `json:"currentRatio"`
				TotalRevenue   *rawValue `json:"totalRevenue"`
			} `json:"financialData"`
			BalanceSheetHistory          *balanceSheetModule    `json:"balanceSheetHistory"`
			BalanceSheetHistoryQuarterly *balanceSheetModule    `json:"balanceSheetHistoryQuarterly"`
			IncomeStatementHistory       *incomeStatementModule `json:"incomeStatementHistory"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type balanceSheetModule struct {
	BalanceSheetStatements []balanceSheetStatement `json:"balanceSheetStatements"`
}

type balanceSheetStatement struct {
	TotalCurrentAssets      *rawValue `json:"totalCurrentAssets"`
	TotalCurrentLiabilities *rawValue `json:"totalCurrentLiabilities"`
}

type incomeStatementModule struct {
	IncomeStatementHistory []struct {
		TotalRevenue *rawValue `json:"totalRevenue"`
	} `json:"incomeStatementHistory"`
}

// FetchSummary fetches fundamental metrics for a ticker.
func (c *Client) FetchSummary(ctx context.Context, ticker string) (*QuoteSummary, error) {
	cacheKey := redis.QuoteKey(ticker)
	var cached QuoteSummary
	if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	url := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=summaryDetail,defaultKeyStatistics,financialData,balanceSheetHistory,balanceSheetHistoryQuarterly,incomeStatementHistory",
		c.quoteBaseURL, ticker,
	)

	var resp quoteSummaryResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary error for %s: %s", ticker, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("empty quote summary for %s", ticker)
	}

	result := resp.QuoteSummary.Result[0]
	summary := &QuoteSummary{Ticker: ticker}

	if result.SummaryDetail != nil {
		summary.MarketCap = result.SummaryDetail.MarketCap.value()
		summary.PERatio = result.SummaryDetail.TrailingPE.value()
	}
	if result.DefaultKeyStatistics != nil {
		summary.EPS = result.DefaultKeyStatistics.TrailingEPS.value()
	}
	if result.FinancialData != nil {
		summary.ROE = result.FinancialData.ReturnOnEquity.value()
		summary.DebtToEquity = result.FinancialData.DebtToEquity.value()
		summary.ProfitMargin = result.FinancialData.ProfitMargins.value()
		summary.CurrentRatio = result.FinancialData.CurrentRatio.value()
		summary.TotalRevenue = result.FinancialData.TotalRevenue.value()
	}

	// Some tickers omit currentRatio from financialData. Fall back to
	// the balance sheet, annual first, then quarterly.
	if summary.CurrentRatio == nil {
		summary.CurrentRatio = currentRatioFromBalanceSheet(result.BalanceSheetHistory)
	}
	if summary.CurrentRatio == nil {
		summary.CurrentRatio = currentRatioFromBalanceSheet(result.BalanceSheetHistoryQuarterly)
	}

	// Same for totalRevenue: take the most recent income statement row
	// when financialData has no figure.
	if summary.TotalRevenue == nil && result.IncomeStatementHistory != nil {
		for _, stmt := range result.IncomeStatementHistory.IncomeStatementHistory {
			if v := stmt.TotalRevenue.value(); v != nil {
				summary.TotalRevenue = v
				break
			}
		}
	}

	if err := c.cache.Set(ctx, cacheKey, summary, redis.TTLQuote); err != nil {
		c.logger.WithError(err).Warn("Failed to cache quote summary")
	}

	return summary, nil
}

// currentRatioFromBalanceSheet derives the current ratio from the most
// recent statement that carries both current assets and liabilities.
func currentRatioFromBalanceSheet(module *balanceSheetModule) *float64 {
	if module == nil {
		return nil
	}
	for _, stmt := range module.BalanceSheetStatements {
		assets := stmt.TotalCurrentAssets.value()
		liabilities := stmt.TotalCurrentLiabilities.value()
		if assets == nil || liabilities == nil || *liabilities == 0 {
			continue
		}
		ratio := *assets / *liabilities
		return &ratio
	}
	return nil
}
