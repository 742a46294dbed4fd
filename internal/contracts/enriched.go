package contracts

// Trend direction labels derived from the latest growth figure.
const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// Risk tier labels. Boundaries are inclusive on the lower end of each band.
const (
	RiskTierLow      = "Low"
	RiskTierModerate = "Moderate"
	RiskTierHigh     = "High"
)

// EnrichedSecurity combines one fundamentals snapshot with its (possibly
// absent) matched qualitative record plus all derived fields. It is built
// fresh per request, never mutates its sources, and is discarded once the
// response is produced.
type EnrichedSecurity struct {
	Fundamentals Fundamentals      `json:"fundamentals"`
	Sentiment    SentimentForecast `json:"sentiment"`

	// HasSentiment is false when no qualitative record matched the ticker;
	// all sentiment-derived fields then carry their documented fallbacks.
	HasSentiment bool `json:"has_sentiment"`

	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Trending      string  `json:"trending"`

	SentimentScore  int `json:"sentimentScore"`
	ConfidenceScore int `json:"confidenceScore"`
	VolatilityScore int `json:"volatilityScore"`
	LiquidityScore  int `json:"liquidityScore"`
	DebtScore       int `json:"debtScore"`

	OverallRisk int    `json:"overallRisk"`
	RiskTier    string `json:"riskTier"`
}

// Dashboard is the outward contract consumed by the presentation layer:
// fundamentals pass through with raw numeric types, social records have
// every declared field present with defaults applied.
type Dashboard struct {
	Stocks     []Fundamentals      `json:"stocks"`
	Social     []SentimentForecast `json:"social"`
	Securities []EnrichedSecurity  `json:"securities"`
}
