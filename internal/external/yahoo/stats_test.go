package yahoo

import (
	"math"
	"testing"
)

func TestAnnualizedVolatility(t *testing.T) {
	t.Run("flat series has zero volatility", func(t *testing.T) {
		closes := []float64{100, 100, 100, 100, 100}
		got := AnnualizedVolatility(closes)
		if got == nil {
			t.Fatal("AnnualizedVolatility() = nil, want value")
		}
		if *got != 0 {
			t.Errorf("AnnualizedVolatility() = %v, want 0", *got)
		}
	})

	t.Run("alternating series", func(t *testing.T) {
		// Returns alternate +10% and roughly -9.09%, so the deviation
		// is well above zero.
		closes := []float64{100, 110, 100, 110, 100, 110}
		got := AnnualizedVolatility(closes)
		if got == nil {
			t.Fatal("AnnualizedVolatility() = nil, want value")
		}
		if *got <= 0 {
			t.Errorf("AnnualizedVolatility() = %v, want > 0", *got)
		}
	})

	t.Run("annualization factor", func(t *testing.T) {
		closes := []float64{100, 110, 100, 110, 100, 110, 100}
		got := AnnualizedVolatility(closes)
		if got == nil {
			t.Fatal("AnnualizedVolatility() = nil, want value")
		}

		// Recompute the daily deviation by hand and scale it.
		returns := make([]float64, 0, len(closes)-1)
		for i := 1; i < len(closes); i++ {
			returns = append(returns, closes[i]/closes[i-1]-1)
		}
		mean := 0.0
		for _, r := range returns {
			mean += r
		}
		mean /= float64(len(returns))
		variance := 0.0
		for _, r := range returns {
			variance += (r - mean) * (r - mean)
		}
		variance /= float64(len(returns) - 1)
		want := math.Sqrt(variance) * math.Sqrt(252)

		if math.Abs(*got-want) > 1e-12 {
			t.Errorf("AnnualizedVolatility() = %v, want %v", *got, want)
		}
	})

	t.Run("too few closes", func(t *testing.T) {
		if got := AnnualizedVolatility([]float64{100, 101}); got != nil {
			t.Errorf("AnnualizedVolatility() = %v, want nil", *got)
		}
		if got := AnnualizedVolatility(nil); got != nil {
			t.Errorf("AnnualizedVolatility() = %v, want nil", *got)
		}
	})

	t.Run("zero close skipped", func(t *testing.T) {
		closes := []float64{100, 0, 100, 110, 100}
		got := AnnualizedVolatility(closes)
		if got == nil {
			t.Fatal("AnnualizedVolatility() = nil, want value")
		}
		if math.IsInf(*got, 0) || math.IsNaN(*got) {
			t.Errorf("AnnualizedVolatility() = %v, want finite", *got)
		}
	})
}

func TestAverageDollarVolume(t *testing.T) {
	tests := []struct {
		name    string
		closes  []float64
		volumes []float64
		want    *float64
	}{
		{
			name:    "simple average",
			closes:  []float64{10, 20},
			volumes: []float64{100, 100},
			want:    ptr(1500),
		},
		{
			name:    "mismatched lengths use shorter",
			closes:  []float64{10, 20, 30},
			volumes: []float64{100, 100},
			want:    ptr(1500),
		},
		{
			name:    "empty series",
			closes:  nil,
			volumes: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageDollarVolume(tt.closes, tt.volumes)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("AverageDollarVolume() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("AverageDollarVolume() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestCurrentRatioFromBalanceSheet(t *testing.T) {
	t.Run("nil module", func(t *testing.T) {
		if got := currentRatioFromBalanceSheet(nil); got != nil {
			t.Errorf("currentRatioFromBalanceSheet() = %v, want nil", *got)
		}
	})

	t.Run("first complete statement wins", func(t *testing.T) {
		module := &balanceSheetModule{
			BalanceSheetStatements: []balanceSheetStatement{
				{TotalCurrentAssets: &rawValue{Raw: ptr(200)}, TotalCurrentLiabilities: nil},
				{TotalCurrentAssets: &rawValue{Raw: ptr(300)}, TotalCurrentLiabilities: &rawValue{Raw: ptr(150)}},
			},
		}

		got := currentRatioFromBalanceSheet(module)
		if got == nil {
			t.Fatal("currentRatioFromBalanceSheet() = nil, want value")
		}
		if *got != 2 {
			t.Errorf("currentRatioFromBalanceSheet() = %v, want 2", *got)
		}
	})

	t.Run("zero liabilities skipped", func(t *testing.T) {
		module := &balanceSheetModule{
			BalanceSheetStatements: []balanceSheetStatement{
				{TotalCurrentAssets: &rawValue{Raw: ptr(200)}, TotalCurrentLiabilities: &rawValue{Raw: ptr(0)}},
			},
		}

		if got := currentRatioFromBalanceSheet(module); got != nil {
			t.Errorf("currentRatioFromBalanceSheet() = %v, want nil", *got)
		}
	})
}

func ptr(v float64) *float64 {
	return &v
}
