package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/internal/contracts"
)

func TestJoin_FirstMatchWins(t *testing.T) {
	f := contracts.Fundamentals{Ticker: "AAPL"}
	pool := []contracts.SentimentDocument{
		{"ticker": "AAPL", "company": "Apple Inc. (first)"},
		{"ticker": "AAPL", "company": "Apple Inc. (second)"},
	}

	// Deterministic across repeated calls on the same input order.
	for i := 0; i < 5; i++ {
		got, matched := Join(f, pool)
		require.True(t, matched)
		require.NotNil(t, got.Company)
		assert.Equal(t, "Apple Inc. (first)", *got.Company)
	}
}

func TestJoin_TickerIsCaseSensitive(t *testing.T) {
	f := contracts.Fundamentals{Ticker: "AAPL"}
	pool := []contracts.SentimentDocument{{"ticker": "aapl"}}

	_, matched := Join(f, pool)
	assert.False(t, matched)
}

func TestJoin_NoMatchYieldsDefaults(t *testing.T) {
	f := contracts.Fundamentals{Ticker: "ZZZZ"}
	pool := []contracts.SentimentDocument{{"ticker": "AAPL"}}

	got, matched := Join(f, pool)
	assert.False(t, matched)
	assert.Equal(t, "ZZZZ", got.Ticker)
	assert.Nil(t, got.Company)
	assert.Nil(t, got.Sentiment.SentimentScore)
	assert.Empty(t, got.Sentiment.TopPositiveSignals)
	assert.NotNil(t, got.Financials.ReportedRevenue)
	assert.Empty(t, got.Financials.ReportedRevenue)
}

func TestNormalizeDocument_FallbackPrecedence(t *testing.T) {
	tests := []struct {
		name string
		doc  contracts.SentimentDocument
		want *float64
	}{
		{
			name: "nested wins over root",
			doc: contracts.SentimentDocument{
				"ticker":           "AAPL",
				"financials":       map[string]interface{}{"market_share_pct": 12.0},
				"market_share_pct": 99.0,
			},
			want: fp(12),
		},
		{
			name: "root used when nested absent",
			doc: contracts.SentimentDocument{
				"ticker":           "AAPL",
				"market_share_pct": 99.0,
			},
			want: fp(99),
		},
		{
			name: "root used when group exists without the field",
			doc: contracts.SentimentDocument{
				"ticker":           "AAPL",
				"financials":       map[string]interface{}{"cagr_2021_2024_pct": 8.0},
				"market_share_pct": 99.0,
			},
			want: fp(99),
		},
		{
			name: "neither resolves to nil",
			doc:  contracts.SentimentDocument{"ticker": "AAPL"},
			want: nil,
		},
		{
			name: "explicit null falls through to root",
			doc: contracts.SentimentDocument{
				"ticker":           "AAPL",
				"financials":       map[string]interface{}{"market_share_pct": nil},
				"market_share_pct": 99.0,
			},
			want: fp(99),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDocument(tt.doc)
			if tt.want == nil {
				assert.Nil(t, got.Financials.MarketSharePct)
			} else {
				require.NotNil(t, got.Financials.MarketSharePct)
				assert.Equal(t, *tt.want, *got.Financials.MarketSharePct)
			}
		})
	}
}

func TestNormalizeDocument_PrecedenceIsPerField(t *testing.T) {
	// Real documents mix shapes: one field nested, another flattened.
	doc := contracts.SentimentDocument{
		"ticker": "MSFT",
		"sentiment": map[string]interface{}{
			"sentiment_score": 0.8,
		},
		"confidence_pct": 65.0,
		"financials": map[string]interface{}{
			"reported_revenue": map[string]interface{}{"2024": 2.45e11},
		},
		"forecast_revenue": map[string]interface{}{"2026": 3.1e11},
	}

	got := NormalizeDocument(doc)

	require.NotNil(t, got.Sentiment.SentimentScore)
	assert.Equal(t, 0.8, *got.Sentiment.SentimentScore)
	require.NotNil(t, got.Sentiment.ConfidencePct)
	assert.Equal(t, 65.0, *got.Sentiment.ConfidencePct)
	assert.Equal(t, map[string]float64{"2024": 2.45e11}, got.Financials.ReportedRevenue)
	assert.Equal(t, map[string]float64{"2026": 3.1e11}, got.Financials.ForecastRevenue)
}

func TestNormalizeDocument_ScalarsAndLists(t *testing.T) {
	doc := contracts.SentimentDocument{
		"_id":     "65f0c2",
		"ticker":  "NVDA",
		"company": "NVIDIA Corporation",
		"sentiment": map[string]interface{}{
			"top_positive_signals": []interface{}{"datacenter demand", "margin expansion"},
			"top_negative_signals": []interface{}{},
		},
	}

	got := NormalizeDocument(doc)

	require.NotNil(t, got.ID)
	assert.Equal(t, "65f0c2", *got.ID)
	assert.Equal(t, "NVDA", got.Ticker)
	require.NotNil(t, got.Company)
	assert.Equal(t, "NVIDIA Corporation", *got.Company)
	assert.Equal(t, []string{"datacenter demand", "margin expansion"}, got.Sentiment.TopPositiveSignals)
	assert.Empty(t, got.Sentiment.TopNegativeSignals)
	// Undeclared lists default to empty, never nil.
	assert.NotNil(t, got.Sentiment.RepresentativeSources)
}

func TestNormalizeDocument_IgnoresWrongTypes(t *testing.T) {
	doc := contracts.SentimentDocument{
		"ticker":           "TSLA",
		"market_share_pct": "not-a-number",
		"financials": map[string]interface{}{
			"yoy_growth_pct": map[string]interface{}{
				"2024": 18.5,
				"2023": "bad",
			},
		},
	}

	got := NormalizeDocument(doc)

	assert.Nil(t, got.Financials.MarketSharePct)
	assert.Equal(t, map[string]float64{"2024": 18.5}, got.Financials.YoYGrowthPct)
}

func TestJoin_DoesNotMutateInputs(t *testing.T) {
	doc := contracts.SentimentDocument{
		"ticker":     "AAPL",
		"financials": map[string]interface{}{"market_share_pct": 12.0},
	}
	pool := []contracts.SentimentDocument{doc}
	f := contracts.Fundamentals{Ticker: "AAPL"}

	got, _ := Join(f, pool)
	*got.Financials.MarketSharePct = 77

	again, _ := Join(f, pool)
	require.NotNil(t, again.Financials.MarketSharePct)
	assert.Equal(t, 12.0, *again.Financials.MarketSharePct)
}
