package enrich

import (
	"math"
	"sort"
	"strconv"

	"github.com/stockpulse/backend/internal/contracts"
)

// RiskFallbacks holds the per-metric scores used when a raw risk input is
// absent. Each metric degrades independently.
type RiskFallbacks struct {
	Volatility int
	Liquidity  int
	Debt       int
}

// DefaultRiskFallbacks treats an unknown metric as mid-scale rather than
// best- or worst-case.
var DefaultRiskFallbacks = RiskFallbacks{Volatility: 50, Liquidity: 50, Debt: 50}

// PriceChange derives the change figures from the latest available
// year-over-year growth entry: changePercent is the growth value for the
// most recent year (0 when the map is empty), change is last price scaled
// by that percentage.
func PriceChange(lastPrice *float64, yoyGrowth map[string]float64) (change, changePercent float64) {
	if year := LatestYear(yoyGrowth); year != "" {
		changePercent = yoyGrowth[year]
	}
	if valid(lastPrice) {
		change = *lastPrice * changePercent / 100
	}
	return change, changePercent
}

// LatestYear returns the most recent year key in m. Keys are parsed as
// integers and compared numerically; keys that do not parse are ignored,
// so a stray non-year key cannot silently win the comparison the way it
// would under a lexicographic max.
func LatestYear(m map[string]float64) string {
	best := ""
	bestYear := math.MinInt
	for k := range m {
		y, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		if y > bestYear {
			bestYear = y
			best = k
		}
	}
	return best
}

// Trend maps a change percentage onto a direction label.
func Trend(changePercent float64) string {
	switch {
	case changePercent > 0:
		return contracts.TrendUp
	case changePercent < 0:
		return contracts.TrendDown
	default:
		return contracts.TrendNeutral
	}
}

// RevenueForYear reads the revenue amount for a year from the reported
// series when the year is in the historical partition and from the
// forecast series otherwise. Missing entries yield 0. The partition is
// supplied by the caller, never inferred here.
func RevenueForYear(fin contracts.FinancialForecast, year string, historical map[string]bool) float64 {
	if historical[year] {
		return fin.ReportedRevenue[year]
	}
	return fin.ForecastRevenue[year]
}

// HistoricalWindow builds the historical partition: a fixed window of span
// years ending at the most recent reported year. An empty reported series
// yields an empty partition, pushing every lookup to the forecast side.
func HistoricalWindow(reported map[string]float64, span int) map[string]bool {
	window := map[string]bool{}
	latest := LatestYear(reported)
	if latest == "" || span <= 0 {
		return window
	}
	end, _ := strconv.Atoi(latest)
	for y := end - span + 1; y <= end; y++ {
		window[strconv.Itoa(y)] = true
	}
	return window
}

// RevenueYears returns the union of reported and forecast years in
// ascending order, for chart axes.
func RevenueYears(fin contracts.FinancialForecast) []string {
	seen := map[string]bool{}
	years := make([]string, 0, len(fin.ReportedRevenue)+len(fin.ForecastRevenue))
	for y := range fin.ReportedRevenue {
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	for y := range fin.ForecastRevenue {
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Strings(years)
	return years
}

// OverallRisk aggregates three risk-relevant metrics into one 0-100 score:
// risk rises with volatility and leverage and falls with liquidity. Each
// input is normalized independently with its own fallback.
func OverallRisk(volatility, liquidity, debtToEquity *float64, fb RiskFallbacks) int {
	volScore := NormalizeScore(volatility, fb.Volatility)
	liqScore := NormalizeScore(liquidity, fb.Liquidity)
	debtScore := NormalizeScore(debtToEquity, fb.Debt)

	return RiskFromScores(volScore, liqScore, debtScore)
}

// RiskTier buckets an overall risk score. Bands are inclusive on their
// lower ends: 0-35 Low, 36-65 Moderate, 66-100 High.
func RiskTier(risk int) string {
	switch {
	case risk <= 35:
		return contracts.RiskTierLow
	case risk <= 65:
		return contracts.RiskTierModerate
	default:
		return contracts.RiskTierHigh
	}
}
