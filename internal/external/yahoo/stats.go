package yahoo

import "math"

// tradingDaysPerYear annualizes the daily return deviation.
const tradingDaysPerYear = 252

// AnnualizedVolatility computes the standard deviation of daily returns
// over the close series, annualized. Returns nil when fewer than three
// closes are available, since a two-point deviation is meaningless.
func AnnualizedVolatility(closes []float64) *float64 {
	if len(closes) < 3 {
		return nil
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	if len(returns) < 2 {
		return nil
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	vol := math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
	return &vol
}

// AverageDollarVolume computes the mean of close times volume over the
// series, a liquidity proxy. Returns nil on an empty series.
func AverageDollarVolume(closes, volumes []float64) *float64 {
	n := len(closes)
	if len(volumes) < n {
		n = len(volumes)
	}
	if n == 0 {
		return nil
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		sum += closes[i] * volumes[i]
	}
	avg := sum / float64(n)
	return &avg
}
