package enrich

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/internal/contracts"
)

func sampleStock() contracts.Fundamentals {
	return contracts.Fundamentals{
		Ticker:       "AAPL",
		Timestamp:    time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		LastPrice:    fp(200),
		MarketCap:    fp(3.1e12),
		Volume:       fp(48_000_000),
		Volatility:   fp(0.9),
		Liquidity:    fp(0.2),
		DebtToEquity: fp(0.5),
	}
}

func sampleDoc() contracts.SentimentDocument {
	return contracts.SentimentDocument{
		"_id":     "65aa01",
		"ticker":  "AAPL",
		"company": "Apple Inc.",
		"sentiment": map[string]interface{}{
			"sentiment_score": 0.72,
			"confidence_pct":  88.0,
		},
		"financials": map[string]interface{}{
			"reported_revenue": map[string]interface{}{
				"2022": 394.3e9, "2023": 383.3e9, "2024": 391.0e9,
			},
			"forecast_revenue": map[string]interface{}{
				"2025": 410.0e9, "2026": 428.0e9,
			},
			"yoy_growth_pct": map[string]interface{}{
				"2023": -2.8, "2024": 2.0,
			},
		},
	}
}

func TestAssembler_Enrich(t *testing.T) {
	a := NewAssembler(Config{})
	got := a.Enrich(sampleStock(), []contracts.SentimentDocument{sampleDoc()})

	assert.True(t, got.HasSentiment)
	assert.Equal(t, 2.0, got.ChangePercent)
	assert.InDelta(t, 4.0, got.Change, 1e-9)
	assert.Equal(t, contracts.TrendUp, got.Trending)

	assert.Equal(t, 72, got.SentimentScore)
	assert.Equal(t, 88, got.ConfidenceScore)
	assert.Equal(t, 90, got.VolatilityScore)
	assert.Equal(t, 20, got.LiquidityScore)
	assert.Equal(t, 50, got.DebtScore)
	assert.Equal(t, 73, got.OverallRisk)
	assert.Equal(t, contracts.RiskTierModerate, got.RiskTier)
}

func TestAssembler_Enrich_NoMatch(t *testing.T) {
	a := NewAssembler(Config{})
	stock := sampleStock()
	stock.Ticker = "ZZZZ"

	got := a.Enrich(stock, []contracts.SentimentDocument{sampleDoc()})

	assert.False(t, got.HasSentiment)

	// Sentiment-derived fields degrade to their declared fallbacks.
	assert.Equal(t, DefaultScoreFallback, got.SentimentScore)
	assert.Equal(t, DefaultScoreFallback, got.ConfidenceScore)
	assert.Zero(t, got.ChangePercent)
	assert.Zero(t, got.Change)
	assert.Equal(t, contracts.TrendNeutral, got.Trending)
	assert.Nil(t, got.Sentiment.Financials.CAGR2021to2024Pct)

	// Fundamentals-derived fields are unaffected by the missing join.
	assert.Equal(t, 90, got.VolatilityScore)
	assert.Equal(t, 73, got.OverallRisk)
}

func TestAssembler_Assemble_Contract(t *testing.T) {
	a := NewAssembler(Config{})
	d := a.Assemble(
		[]contracts.Fundamentals{sampleStock()},
		[]contracts.SentimentDocument{sampleDoc(), {"ticker": "MSFT"}},
	)

	require.Len(t, d.Stocks, 1)
	require.Len(t, d.Social, 2)
	require.Len(t, d.Securities, 1)

	// Every social record exposes every declared field, defaults applied.
	raw, err := json.Marshal(d.Social[1])
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"_id", "ticker", "company", "sentiment", "financials"} {
		assert.Contains(t, fields, key)
	}

	fin, ok := fields["financials"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{
		"reported_revenue", "forecast_revenue", "yoy_growth_pct",
		"market_share_pct", "cagr_2021_2024_pct",
		"total_revenue_2021_2024_usd", "total_forecast_revenue_2025_2027_usd",
	} {
		assert.Contains(t, fin, key)
	}
	// Mapping leaves default to {}, not null.
	assert.NotNil(t, fin["reported_revenue"])
}

func TestAssembler_Assemble_Idempotent(t *testing.T) {
	a := NewAssembler(Config{})
	stocks := []contracts.Fundamentals{sampleStock()}
	docs := []contracts.SentimentDocument{sampleDoc()}

	first, err := json.Marshal(a.Assemble(stocks, docs))
	require.NoError(t, err)
	second, err := json.Marshal(a.Assemble(stocks, docs))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssembler_RevenueSeries(t *testing.T) {
	a := NewAssembler(Config{})
	s := a.Enrich(sampleStock(), []contracts.SentimentDocument{sampleDoc()})

	series := a.RevenueSeries(s)

	// 2022-2024 come from the reported side, 2025+ from the forecast side.
	assert.Equal(t, map[string]float64{
		"2022": 394.3e9,
		"2023": 383.3e9,
		"2024": 391.0e9,
		"2025": 410.0e9,
		"2026": 428.0e9,
	}, series)
}

func TestFormatDashboard(t *testing.T) {
	a := NewAssembler(Config{})
	d := a.Assemble(
		[]contracts.Fundamentals{sampleStock()},
		[]contracts.SentimentDocument{sampleDoc()},
	)

	got := a.FormatDashboard(d)
	require.Len(t, got.Stocks, 1)
	require.Len(t, got.Social, 1)

	stock := got.Stocks[0]
	assert.Equal(t, "200.00", stock.LastPrice)
	assert.Equal(t, "$3.10T", stock.MarketCap)
	assert.Equal(t, "48.00M", stock.Volume)
	assert.Equal(t, "-", stock.EPS)
	assert.Equal(t, "-", stock.Sector)

	social := got.Social[0]
	assert.Equal(t, "$391.00B", social.ReportedRevenue["2024"])
	assert.Equal(t, "$410.00B", social.ForecastRevenue["2025"])
	// market_share_pct is a plain percentage and must not be formatted.
	assert.Nil(t, social.MarketSharePct)
	// Growth percentages stay numeric for the chart layer.
	assert.Equal(t, 2.0, social.YoYGrowthPct["2024"])
}
