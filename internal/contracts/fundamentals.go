package contracts

import "time"

// Fundamentals represents one quantitative snapshot for a ticker, as
// produced by the ingestion pipeline. Numeric fields are pointers because
// the upstream source routinely omits them; nil means "unknown" and must
// never be collapsed to zero by consumers.
type Fundamentals struct {
	Ticker    string    `json:"ticker"`
	Timestamp time.Time `json:"timestamp"`

	Sector   *string `json:"sector"`
	Industry *string `json:"industry"`

	LastPrice    *float64 `json:"last_price"`
	MarketCap    *float64 `json:"market_cap"`
	YearHigh     *float64 `json:"year_high"`
	YearLow      *float64 `json:"year_low"`
	Volume       *float64 `json:"volume"`
	EPS          *float64 `json:"eps"`
	PERatio      *float64 `json:"pe_ratio"`
	ROE          *float64 `json:"roe"`
	DebtToEquity *float64 `json:"debt_to_equity"`
	ProfitMargin *float64 `json:"profit_margin"`
	CurrentRatio *float64 `json:"current_ratio"`
	TotalRevenue *float64 `json:"total_revenue"`
	Volatility   *float64 `json:"volatility"`
	Liquidity    *float64 `json:"liquidity"`
}

// HasPrice reports whether the snapshot carries a usable last price.
func (f *Fundamentals) HasPrice() bool {
	return f.LastPrice != nil
}
