package enrich

import (
	"math"

	"github.com/stockpulse/backend/internal/contracts"
)

// Join selects the first document in pool whose ticker matches the
// fundamentals record (case-sensitive, exact) and normalizes it into the
// stable SentimentForecast shape. Absence is a valid outcome, not an
// error: the second return is false and the record carries neutral
// defaults for every field. Neither input is mutated.
//
// Duplicate documents per ticker are tolerated; the first match in input
// order wins, deterministically across repeated calls.
func Join(f contracts.Fundamentals, pool []contracts.SentimentDocument) (contracts.SentimentForecast, bool) {
	for _, doc := range pool {
		if doc.Ticker() == f.Ticker {
			return NormalizeDocument(doc), true
		}
	}
	return contracts.EmptySentimentForecast(f.Ticker), false
}

// NormalizeDocument resolves a raw qualitative document into the declared
// external shape. Each field is extracted independently with the ordered
// fallback: nested group value, then flattened root value, then a neutral
// default. Per-field independence matters because real documents mix
// nested and flattened fields.
func NormalizeDocument(doc contracts.SentimentDocument) contracts.SentimentForecast {
	out := contracts.EmptySentimentForecast(doc.Ticker())

	out.ID = lookupString(doc, "", "_id")
	out.Company = lookupString(doc, "", "company")

	out.Sentiment.SentimentScore = lookupFloat(doc, "sentiment", "sentiment_score")
	out.Sentiment.ConfidencePct = lookupFloat(doc, "sentiment", "confidence_pct")
	out.Sentiment.InvestabilityScore = lookupFloat(doc, "sentiment", "investability_score")
	out.Sentiment.TopPositiveSignals = lookupStringList(doc, "sentiment", "top_positive_signals")
	out.Sentiment.TopNegativeSignals = lookupStringList(doc, "sentiment", "top_negative_signals")
	out.Sentiment.RepresentativeSources = lookupStringList(doc, "sentiment", "representative_sources")

	out.Financials.ReportedRevenue = lookupFloatMap(doc, "financials", "reported_revenue")
	out.Financials.ForecastRevenue = lookupFloatMap(doc, "financials", "forecast_revenue")
	out.Financials.YoYGrowthPct = lookupFloatMap(doc, "financials", "yoy_growth_pct")
	out.Financials.MarketSharePct = lookupFloat(doc, "financials", "market_share_pct")
	out.Financials.CAGR2021to2024Pct = lookupFloat(doc, "financials", "cagr_2021_2024_pct")
	out.Financials.TotalRevenue2021to2024 = lookupFloat(doc, "financials", "total_revenue_2021_2024_usd")
	out.Financials.TotalForecastRevenue2025to2027 = lookupFloat(doc, "financials", "total_forecast_revenue_2025_2027_usd")

	return out
}

// lookup returns the raw value for field, preferring doc[group][field] over
// doc[field]. A nil stored value counts as absent so the next strategy in
// the chain gets a chance.
func lookup(doc contracts.SentimentDocument, group, field string) interface{} {
	if group != "" {
		if g, ok := doc[group].(map[string]interface{}); ok {
			if v, ok := g[field]; ok && v != nil {
				return v
			}
		}
	}
	if v, ok := doc[field]; ok && v != nil {
		return v
	}
	return nil
}

func lookupFloat(doc contracts.SentimentDocument, group, field string) *float64 {
	f, ok := asFloat(lookup(doc, group, field))
	if !ok {
		return nil
	}
	return &f
}

func lookupString(doc contracts.SentimentDocument, group, field string) *string {
	s, ok := lookup(doc, group, field).(string)
	if !ok {
		return nil
	}
	return &s
}

func lookupStringList(doc contracts.SentimentDocument, group, field string) []string {
	out := []string{}
	items, ok := lookup(doc, group, field).([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func lookupFloatMap(doc contracts.SentimentDocument, group, field string) map[string]float64 {
	out := map[string]float64{}
	raw, ok := lookup(doc, group, field).(map[string]interface{})
	if !ok {
		return out
	}
	for k, v := range raw {
		if f, ok := asFloat(v); ok {
			out[k] = f
		}
	}
	return out
}

// asFloat accepts the numeric types a decoded JSON document can carry.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
