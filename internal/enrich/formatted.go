package enrich

import (
	"github.com/stockpulse/backend/internal/contracts"
)

// FormattedStock is the human-facing rendering of a fundamentals snapshot:
// every numeric leaf becomes display text, with "-" standing in for
// unknown values.
type FormattedStock struct {
	Ticker    string `json:"ticker"`
	Timestamp string `json:"timestamp"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`

	LastPrice    string `json:"last_price"`
	MarketCap    string `json:"market_cap"`
	YearHigh     string `json:"year_high"`
	YearLow      string `json:"year_low"`
	Volume       string `json:"volume"`
	EPS          string `json:"eps"`
	PERatio      string `json:"pe_ratio"`
	ROE          string `json:"roe"`
	DebtToEquity string `json:"debt_to_equity"`
	ProfitMargin string `json:"profit_margin"`
	CurrentRatio string `json:"current_ratio"`
	TotalRevenue string `json:"total_revenue"`
	Volatility   string `json:"volatility"`
	Liquidity    string `json:"liquidity"`
}

// FormattedSocial is the human-facing rendering of a qualitative record.
// Only the two revenue mappings are formatted; market_share_pct is a plain
// percentage, not a magnitude, and passes through raw along with the
// sentiment scores.
type FormattedSocial struct {
	ID      string `json:"_id"`
	Ticker  string `json:"ticker"`
	Company string `json:"company"`

	Sentiment contracts.Sentiment `json:"sentiment"`

	ReportedRevenue map[string]string  `json:"reported_revenue"`
	ForecastRevenue map[string]string  `json:"forecast_revenue"`
	YoYGrowthPct    map[string]float64 `json:"yoy_growth_pct"`

	MarketSharePct                 *float64 `json:"market_share_pct"`
	CAGR2021to2024Pct              *float64 `json:"cagr_2021_2024_pct"`
	TotalRevenue2021to2024         *float64 `json:"total_revenue_2021_2024_usd"`
	TotalForecastRevenue2025to2027 *float64 `json:"total_forecast_revenue_2025_2027_usd"`
}

// FormattedDashboard is the template context handed to the rendering
// collaborator.
type FormattedDashboard struct {
	Stocks []FormattedStock  `json:"stocks"`
	Social []FormattedSocial `json:"social"`
}

// FormatDashboard renders the dashboard contract for human consumption.
func (a *Assembler) FormatDashboard(d *contracts.Dashboard) *FormattedDashboard {
	out := &FormattedDashboard{
		Stocks: make([]FormattedStock, len(d.Stocks)),
		Social: make([]FormattedSocial, len(d.Social)),
	}
	for i, s := range d.Stocks {
		out.Stocks[i] = FormatStock(s)
	}
	for i, s := range d.Social {
		out.Social[i] = FormatSocial(s)
	}
	return out
}

// FormatStock renders one fundamentals snapshot. Prices and ratios use
// fixed 2-decimal text; market cap, revenue and liquidity are currency
// magnitudes; volume is a bare magnitude.
func FormatStock(f contracts.Fundamentals) FormattedStock {
	return FormattedStock{
		Ticker:    f.Ticker,
		Timestamp: f.Timestamp.Format("2006-01-02 15:04"),
		Sector:    strOr(f.Sector),
		Industry:  strOr(f.Industry),

		LastPrice:    FormatNumber(f.LastPrice, 2),
		MarketCap:    FormatCurrency(f.MarketCap),
		YearHigh:     FormatNumber(f.YearHigh, 2),
		YearLow:      FormatNumber(f.YearLow, 2),
		Volume:       FormatMagnitude(f.Volume),
		EPS:          FormatNumber(f.EPS, 2),
		PERatio:      FormatNumber(f.PERatio, 2),
		ROE:          FormatNumber(f.ROE, 2),
		DebtToEquity: FormatNumber(f.DebtToEquity, 2),
		ProfitMargin: FormatNumber(f.ProfitMargin, 2),
		CurrentRatio: FormatNumber(f.CurrentRatio, 2),
		TotalRevenue: FormatCurrency(f.TotalRevenue),
		Volatility:   FormatNumber(f.Volatility, 2),
		Liquidity:    FormatCurrency(f.Liquidity),
	}
}

// FormatSocial renders one normalized qualitative record.
func FormatSocial(s contracts.SentimentForecast) FormattedSocial {
	return FormattedSocial{
		ID:      strOr(s.ID),
		Ticker:  s.Ticker,
		Company: strOr(s.Company),

		Sentiment: s.Sentiment,

		ReportedRevenue: formatRevenueMap(s.Financials.ReportedRevenue),
		ForecastRevenue: formatRevenueMap(s.Financials.ForecastRevenue),
		YoYGrowthPct:    s.Financials.YoYGrowthPct,

		MarketSharePct:                 s.Financials.MarketSharePct,
		CAGR2021to2024Pct:              s.Financials.CAGR2021to2024Pct,
		TotalRevenue2021to2024:         s.Financials.TotalRevenue2021to2024,
		TotalForecastRevenue2025to2027: s.Financials.TotalForecastRevenue2025to2027,
	}
}

func formatRevenueMap(m map[string]float64) map[string]string {
	out := make(map[string]string, len(m))
	for year, amount := range m {
		v := amount
		out[year] = FormatCurrency(&v)
	}
	return out
}

func strOr(s *string) string {
	if s == nil {
		return Unknown
	}
	return *s
}
