package enrich

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fp is a shorthand for building optional numeric values in tests.
func fp(v float64) *float64 {
	return &v
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		decimals int
		want     string
	}{
		{"plain value", fp(12.3456), 2, "12.35"},
		{"zero decimals", fp(12.3456), 0, "12"},
		{"negative", fp(-3.5), 2, "-3.50"},
		{"zero", fp(0), 2, "0.00"},
		{"nil", nil, 2, "-"},
		{"NaN", fp(math.NaN()), 2, "-"},
		{"positive infinity", fp(math.Inf(1)), 2, "-"},
		{"negative infinity", fp(math.Inf(-1)), 2, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.value, tt.decimals))
		})
	}
}

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		name  string
		value *float64
		want  string
	}{
		{"trillions", fp(1.5e12), "1.50T"},
		{"billions", fp(2_500_000_000), "2.50B"},
		{"millions", fp(3_250_000), "3.25M"},
		{"exactly one million", fp(1_000_000), "1.00M"},
		{"exactly one billion", fp(1e9), "1.00B"},
		{"sub-million", fp(999), "999.00"},
		{"zero", fp(0), "0.00"},
		{"nil", nil, "-"},
		{"NaN", fp(math.NaN()), "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMagnitude(tt.value))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$2.50B", FormatCurrency(fp(2_500_000_000)))
	assert.Equal(t, "$450.00", FormatCurrency(fp(450)))
	assert.Equal(t, "-", FormatCurrency(nil))
}
