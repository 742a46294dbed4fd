package enrich

import (
	"github.com/stockpulse/backend/internal/contracts"
)

// Config tunes the assembler. Zero values fall back to the defaults the
// upstream source shipped with.
type Config struct {
	// RiskFallbacks are the scores substituted for absent risk inputs.
	RiskFallbacks RiskFallbacks
	// ScoreFallback is substituted for absent sentiment/confidence values.
	ScoreFallback int
	// RevenueHistoryYears is the width of the historical revenue window
	// ending at the most recent reported year.
	RevenueHistoryYears int
}

// DefaultScoreFallback is the mid-scale score for missing sentiment data.
const DefaultScoreFallback = 50

// DefaultRevenueHistoryYears is the fixed 3-year historical window.
const DefaultRevenueHistoryYears = 3

// Assembler shapes raw fundamentals and qualitative documents into the
// stable contract the presentation layer consumes. It holds no connections
// and no mutable state; every call allocates fresh output, so concurrent
// use is safe by construction.
type Assembler struct {
	cfg Config
}

// NewAssembler creates an assembler, applying defaults for zero config.
func NewAssembler(cfg Config) *Assembler {
	if cfg.RiskFallbacks == (RiskFallbacks{}) {
		cfg.RiskFallbacks = DefaultRiskFallbacks
	}
	if cfg.ScoreFallback == 0 {
		cfg.ScoreFallback = DefaultScoreFallback
	}
	if cfg.RevenueHistoryYears == 0 {
		cfg.RevenueHistoryYears = DefaultRevenueHistoryYears
	}
	return &Assembler{cfg: cfg}
}

// Enrich joins one fundamentals snapshot against the qualitative pool and
// computes every derived field. Inputs are read-only.
func (a *Assembler) Enrich(f contracts.Fundamentals, pool []contracts.SentimentDocument) contracts.EnrichedSecurity {
	sentiment, matched := Join(f, pool)

	change, changePercent := PriceChange(f.LastPrice, sentiment.Financials.YoYGrowthPct)

	volScore := NormalizeScore(f.Volatility, a.cfg.RiskFallbacks.Volatility)
	liqScore := NormalizeScore(f.Liquidity, a.cfg.RiskFallbacks.Liquidity)
	debtScore := NormalizeScore(f.DebtToEquity, a.cfg.RiskFallbacks.Debt)
	risk := RiskFromScores(volScore, liqScore, debtScore)

	return contracts.EnrichedSecurity{
		Fundamentals: f,
		Sentiment:    sentiment,
		HasSentiment: matched,

		Change:        change,
		ChangePercent: changePercent,
		Trending:      Trend(changePercent),

		SentimentScore:  NormalizeScore(sentiment.Sentiment.SentimentScore, a.cfg.ScoreFallback),
		ConfidenceScore: NormalizeScore(sentiment.Sentiment.ConfidencePct, a.cfg.ScoreFallback),
		VolatilityScore: volScore,
		LiquidityScore:  liqScore,
		DebtScore:       debtScore,

		OverallRisk: risk,
		RiskTier:    RiskTier(risk),
	}
}

// RevenueSeries returns the chart values for an enriched security: one
// entry per known year, historical years read from the reported series and
// the rest from the forecast series.
func (a *Assembler) RevenueSeries(s contracts.EnrichedSecurity) map[string]float64 {
	historical := HistoricalWindow(s.Sentiment.Financials.ReportedRevenue, a.cfg.RevenueHistoryYears)
	out := map[string]float64{}
	for _, year := range RevenueYears(s.Sentiment.Financials) {
		out[year] = RevenueForYear(s.Sentiment.Financials, year, historical)
	}
	return out
}

// Assemble produces the full dashboard contract from the two raw
// collections. Stocks pass through untouched; every qualitative document
// is normalized so the social list has no raw fallbacks left unresolved.
func (a *Assembler) Assemble(stocks []contracts.Fundamentals, docs []contracts.SentimentDocument) *contracts.Dashboard {
	social := make([]contracts.SentimentForecast, len(docs))
	for i, doc := range docs {
		social[i] = NormalizeDocument(doc)
	}

	securities := make([]contracts.EnrichedSecurity, len(stocks))
	for i, f := range stocks {
		securities[i] = a.Enrich(f, docs)
	}

	out := &contracts.Dashboard{
		Stocks:     make([]contracts.Fundamentals, len(stocks)),
		Social:     social,
		Securities: securities,
	}
	copy(out.Stocks, stocks)
	return out
}

// RiskFromScores aggregates already-normalized risk components.
func RiskFromScores(volScore, liqScore, debtScore int) int {
	return roundDiv3(volScore + (100 - liqScore) + debtScore)
}

func roundDiv3(sum int) int {
	// round-half-up for the fixed /3 divisor
	return (sum*2 + 3) / 6
}
