package engine

import (
	"math"
	"testing"
)

func TestNPV_ZeroRateIsPlainSum(t *testing.T) {
	flows := []float64{-1000, 400, 300, 200, 250}
	want := 0.0
	for _, cf := range flows {
		want += cf
	}
	if got := NPV(0, flows); !almostEqual(got, want, 1e-12) {
		t.Fatalf("npv=%f want=%f", got, want)
	}
}

func TestIRR_RecoversSinglePeriodRate(t *testing.T) {
	for _, r := range []float64{0.005, 0.01, 0.03, 0.12} {
		flows := []float64{-1000, 1000 * (1 + r)}
		got := IRR(flows)
		if math.IsNaN(got) {
			t.Fatalf("r=%f: irr is NaN", r)
		}
		if !almostEqual(got, r, 1e-6) {
			t.Fatalf("r=%f: irr=%f", r, got)
		}
	}
}

func TestIRR_UndefinedWithoutSignChange(t *testing.T) {
	// All-negative flows never cross zero anywhere in the bracket.
	if got := IRR([]float64{-100, -10, -10}); !math.IsNaN(got) {
		t.Fatalf("irr=%f want NaN", got)
	}
}

func TestDiscountedPayback_MonotonicInDiscountRate(t *testing.T) {
	flows := []float64{-1000, 120, 120, 120, 120, 120, 120, 120, 120, 120, 120, 120, 120}
	prev := -1
	for _, rate := range []float64{0, 0.005, 0.01, 0.02, 0.04} {
		months, ok := DiscountedPayback(rate, flows)
		if !ok {
			// Heavier discounting may push recovery past the horizon, which
			// only ever happens after the payback month stopped decreasing.
			continue
		}
		if months < prev {
			t.Fatalf("rate=%f: payback=%d decreased from %d", rate, months, prev)
		}
		prev = months
	}
}

func TestDiscountedPayback_NeverRecovers(t *testing.T) {
	if _, ok := DiscountedPayback(0.01, []float64{-1000, 1, 1, 1}); ok {
		t.Fatalf("expected no recovery within horizon")
	}
}

func TestPercentile_Interpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.5, 25},
		{1, 40},
		{0.25, 17.5},
		{0.95, 38.5},
	}
	for _, tt := range tests {
		if got := Percentile(sorted, tt.p); !almostEqual(got, tt.want, 1e-9) {
			t.Fatalf("p=%f: got=%f want=%f", tt.p, got, tt.want)
		}
	}
	if got := Percentile([]float64{7}, 0.5); got != 7 {
		t.Fatalf("single element: got=%f want=7", got)
	}
	if got := Percentile(nil, 0.5); !math.IsNaN(got) {
		t.Fatalf("empty sample: got=%f want NaN", got)
	}
}
