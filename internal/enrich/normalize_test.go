package enrich

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name     string
		raw      *float64
		fallback int
		want     int
	}{
		{"fraction mid-scale", fp(0.5), 0, 50},
		{"fraction rounds", fp(0.666), 0, 67},
		{"exactly zero is a fraction", fp(0), 99, 0},
		{"exactly one is a fraction", fp(1), 0, 100},
		{"percent passes through", fp(73), 0, 73},
		{"clamps above", fp(150), 0, 100},
		{"clamps below", fp(-5), 0, 0},
		{"nil returns fallback", nil, 42, 42},
		{"NaN returns fallback", fp(math.NaN()), 42, 42},
		{"infinity returns fallback", fp(math.Inf(1)), 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeScore(tt.raw, tt.fallback))
		})
	}
}

func TestNormalizeWithBasis(t *testing.T) {
	// The auto heuristic cannot tell 1% from the fraction 0.01; pinning
	// the basis resolves it.
	assert.Equal(t, 1, NormalizeWithBasis(fp(0.01), 0, BasisAuto))
	assert.Equal(t, 1, NormalizeWithBasis(fp(0.01), 0, BasisFraction))
	assert.Equal(t, 0, NormalizeWithBasis(fp(0.01), 0, BasisPercent))

	// Percent basis leaves sub-1 values unscaled.
	assert.Equal(t, 1, NormalizeWithBasis(fp(0.6), 0, BasisPercent))
	assert.Equal(t, 60, NormalizeWithBasis(fp(0.6), 0, BasisFraction))

	// Fraction basis still clamps.
	assert.Equal(t, 100, NormalizeWithBasis(fp(1.5), 0, BasisFraction))

	// Fallback applies regardless of basis.
	assert.Equal(t, 33, NormalizeWithBasis(nil, 33, BasisPercent))
}
