package contracts

// SentimentDocument is a raw qualitative/forecast record as stored by the
// upstream pipeline. The pipeline has shipped two shapes over time: fields
// nested under "sentiment"/"financials" groups, and the same fields
// flattened onto the document root. Individual documents may mix both, so
// the document is kept schemaless and resolved per field by the joiner.
type SentimentDocument map[string]interface{}

// Ticker returns the document's join key, or "" when absent.
func (d SentimentDocument) Ticker() string {
	if v, ok := d["ticker"].(string); ok {
		return v
	}
	return ""
}

// Sentiment is the normalized sentiment group of a SentimentForecast.
// Scalar leaves default to nil, list leaves to empty slices.
type Sentiment struct {
	SentimentScore        *float64 `json:"sentiment_score"`
	ConfidencePct         *float64 `json:"confidence_pct"`
	InvestabilityScore    *float64 `json:"investability_score"`
	TopPositiveSignals    []string `json:"top_positive_signals"`
	TopNegativeSignals    []string `json:"top_negative_signals"`
	RepresentativeSources []string `json:"representative_sources"`
}

// FinancialForecast is the normalized financials group of a
// SentimentForecast. Revenue maps are keyed by 4-digit year strings;
// reported years are historical, forecast years projected. The source does
// not enforce disjointness between the two.
type FinancialForecast struct {
	ReportedRevenue             map[string]float64 `json:"reported_revenue"`
	ForecastRevenue             map[string]float64 `json:"forecast_revenue"`
	YoYGrowthPct                map[string]float64 `json:"yoy_growth_pct"`
	MarketSharePct              *float64           `json:"market_share_pct"`
	CAGR2021to2024Pct           *float64           `json:"cagr_2021_2024_pct"`
	TotalRevenue2021to2024      *float64           `json:"total_revenue_2021_2024_usd"`
	TotalForecastRevenue2025to2027 *float64        `json:"total_forecast_revenue_2025_2027_usd"`
}

// SentimentForecast is the stable external shape of one qualitative record
// after joining: every declared field is present, with neutral defaults in
// place of anything the raw document omitted.
type SentimentForecast struct {
	ID         *string           `json:"_id"`
	Ticker     string            `json:"ticker"`
	Company    *string           `json:"company"`
	Sentiment  Sentiment         `json:"sentiment"`
	Financials FinancialForecast `json:"financials"`
}

// EmptySentimentForecast returns a fully-defaulted record for a ticker with
// no qualitative data. Downstream consumers never need existence checks.
func EmptySentimentForecast(ticker string) SentimentForecast {
	return SentimentForecast{
		Ticker: ticker,
		Sentiment: Sentiment{
			TopPositiveSignals:    []string{},
			TopNegativeSignals:    []string{},
			RepresentativeSources: []string{},
		},
		Financials: FinancialForecast{
			ReportedRevenue: map[string]float64{},
			ForecastRevenue: map[string]float64{},
			YoYGrowthPct:    map[string]float64{},
		},
	}
}
