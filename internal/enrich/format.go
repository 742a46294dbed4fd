package enrich

import (
	"math"
	"strconv"
)

// Unknown is the sentinel rendered for absent or invalid numeric values.
// The formatter never emits "NaN".
const Unknown = "-"

// Magnitude thresholds, checked in strict descending order.
const (
	trillion = 1e12
	billion  = 1e9
	million  = 1e6
)

// FormatNumber renders v fixed to the given number of decimal places.
// nil, NaN and infinities all render as Unknown.
func FormatNumber(v *float64, decimals int) string {
	if !valid(v) {
		return Unknown
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

// FormatMagnitude renders v with a T/B/M suffix, dividing by the first
// threshold the value meets or exceeds. Values below one million render as
// plain 2-decimal text.
func FormatMagnitude(v *float64) string {
	if !valid(v) {
		return Unknown
	}
	switch x := *v; {
	case x >= trillion:
		return strconv.FormatFloat(x/trillion, 'f', 2, 64) + "T"
	case x >= billion:
		return strconv.FormatFloat(x/billion, 'f', 2, 64) + "B"
	case x >= million:
		return strconv.FormatFloat(x/million, 'f', 2, 64) + "M"
	default:
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
}

// FormatCurrency is FormatMagnitude with a dollar prefix. The sentinel for
// unknown values stays bare so templates do not show "$-".
func FormatCurrency(v *float64) string {
	if !valid(v) {
		return Unknown
	}
	return "$" + FormatMagnitude(v)
}

func valid(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
