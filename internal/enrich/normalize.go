package enrich

import "math"

// Basis declares how a raw metric value maps onto the 0-100 score space.
type Basis int

const (
	// BasisAuto treats any value in [0,1] as a fraction and everything
	// else as an already-scaled percentage. This mirrors the upstream
	// convention and is ambiguous for genuine sub-1% percentages: 0.01
	// meaning "1%" is indistinguishable from the fraction 0.01 and scales
	// to 1 either way, but a true 0.5% arriving as 0.5 scales to 50.
	// Callers that know the basis should pin it explicitly.
	BasisAuto Basis = iota
	// BasisFraction always multiplies by 100.
	BasisFraction
	// BasisPercent takes the raw value as-is.
	BasisPercent
)

// NormalizeScore maps a raw metric onto an integer 0-100 score using the
// auto basis. Absent or invalid values return the caller-supplied fallback
// unchanged; fallbacks are per metric, not global.
func NormalizeScore(raw *float64, fallback int) int {
	return NormalizeWithBasis(raw, fallback, BasisAuto)
}

// NormalizeWithBasis is NormalizeScore with an explicit raw-scale basis.
// The result is clamped to [0,100] and rounded to the nearest integer.
func NormalizeWithBasis(raw *float64, fallback int, basis Basis) int {
	if !valid(raw) {
		return fallback
	}

	v := *raw
	switch basis {
	case BasisFraction:
		v *= 100
	case BasisPercent:
		// already percent-scaled
	default:
		if v >= 0 && v <= 1 {
			v *= 100
		}
	}

	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return int(math.Round(v))
}
