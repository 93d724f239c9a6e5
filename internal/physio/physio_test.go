package physio

import (
	"errors"
	"math"
	"testing"
)

func TestGrowthRespiration(t *testing.T) {
	tests := []struct {
		gtw, m, want float64
	}{
		{10, 0.25, 2.5},
		{0, 0.35, 0},
		{30, 0.20, 6},
	}

	for _, tt := range tests {
		got := GrowthRespiration(tt.gtw, tt.m)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("GrowthRespiration(%g, %g) = %g, want %g", tt.gtw, tt.m, got, tt.want)
		}
	}
}

func TestGrowthRespirationSeriesShape(t *testing.T) {
	gtw := []float64{0, 1, 2, 3}
	rg := GrowthRespirationSeries(gtw, 0.3)
	if len(rg) != len(gtw) {
		t.Fatalf("expected %d values, got %d", len(gtw), len(rg))
	}
	for i := range gtw {
		if rg[i] != 0.3*gtw[i] {
			t.Errorf("index %d: expected %g, got %g", i, 0.3*gtw[i], rg[i])
		}
	}
}

func TestCompositeCoefficient(t *testing.T) {
	mj := []float64{0.17, 2.01, 1.72, 0.66, -0.01}
	leaf := []float64{0.30, 0.20, 0.10, 0.15, 0.25}

	got, err := CompositeCoefficient(leaf, mj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 0.30*0.17 + 0.20*2.01 + 0.10*1.72 + 0.15*0.66 + 0.25*-0.01
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}

	_, err = CompositeCoefficient(leaf[:2], mj)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestMaintenanceRespiration(t *testing.T) {
	got, err := MaintenanceRespiration([]float64{100, 100, 100}, []float64{0.015, 0.010, 0.012})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-3.7) > 1e-12 {
		t.Errorf("expected 3.7, got %.15f", got)
	}

	empty, err := MaintenanceRespiration(nil, nil)
	if err != nil || empty != 0 {
		t.Errorf("expected 0 for empty input, got %f (%v)", empty, err)
	}
}

func TestMaintenanceRespirationMismatch(t *testing.T) {
	_, err := MaintenanceRespiration([]float64{1, 2}, []float64{0.1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}

	var fe *FormulaError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormulaError, got %T", err)
	}
	if fe.Formula != "maintenance respiration" {
		t.Errorf("unexpected formula name %q", fe.Formula)
	}
}

func TestOrganContributionsSumToTotal(t *testing.T) {
	w := []float64{250, 120, 150, 50}
	r := []float64{0.015, 0.010, 0.012, 0.008}

	parts, err := OrganContributions(w, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total, _ := MaintenanceRespiration(w, r)

	sum := 0.0
	for _, p := range parts {
		sum += p
	}
	if math.Abs(sum-total) > 1e-12 {
		t.Errorf("contributions sum %f, total %f", sum, total)
	}
}

func TestNetPhotosynthesis(t *testing.T) {
	if got := NetPhotosynthesis(80, 40, 2); got != 58 {
		t.Errorf("expected 58, got %f", got)
	}
	if got := NetPhotosynthesis(37.5, 0, 0); got != 37.5 {
		t.Errorf("expected gross rate without losses, got %f", got)
	}
	if got := NetPhotosynthesis(5, 40, 2); got >= 0 {
		t.Errorf("expected net carbon loss, got %f", got)
	}
}

func TestNitrogenCoefficient(t *testing.T) {
	if got := NitrogenCoefficient(3.0, 0.015, 3.0); got != 0.015 {
		t.Errorf("expected identity at reference, got %f", got)
	}
	if got := NitrogenRelative(6.0, 3.0); got != 2 {
		t.Errorf("expected 2, got %f", got)
	}
}

func TestNitrogenZeroReferencePassesThrough(t *testing.T) {
	if got := NitrogenCoefficient(2, 0.015, 0); !math.IsInf(got, 1) {
		t.Errorf("expected +Inf, got %f", got)
	}
	if got := NitrogenRelative(0, 0); !math.IsNaN(got) {
		t.Errorf("expected NaN, got %f", got)
	}
}

func TestTemperatureRespiration(t *testing.T) {
	tests := []struct {
		name               string
		temp, rm0, q10, t0 float64
		want               float64
	}{
		{"reference", 25, 5, 2, 25, 5},
		{"one step", 35, 5, 2, 25, 10},
		{"one step down", 15, 5, 2, 25, 2.5},
		{"q10 of one", 40, 5, 1, 25, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TemperatureRespiration(tt.temp, tt.rm0, tt.q10, tt.t0)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %g, got %g", tt.want, got)
			}
		})
	}
}

func TestRubiscoRp(t *testing.T) {
	k := RubiscoConstants{Rpmax: 20, Ks: 2.5, Kc: 40, Ko: 25}
	o2 := O2FromPercent(21)
	if o2 != 210 {
		t.Fatalf("expected 210 mmol/mol, got %f", o2)
	}

	limit := k.Rpmax * (o2 / k.Ks) / (1 + o2/k.Ko)
	if got := RubiscoRp(1e-12, o2, k); math.Abs(got-limit) > 1e-9 {
		t.Errorf("expected limit %f near zero CO2, got %f", limit, got)
	}

	prev := math.Inf(1)
	for co2 := 1.0; co2 <= 1000; co2 += 7 {
		v := RubiscoRp(co2, o2, k)
		if v >= prev {
			t.Fatalf("not decreasing at co2=%f: %f >= %f", co2, v, prev)
		}
		prev = v
	}
}

func TestRubiscoSurfaceShape(t *testing.T) {
	k := RubiscoConstants{Rpmax: 20, Ks: 2.5, Kc: 40, Ko: 25}
	co2 := []float64{1, 500, 1000}
	o2 := []float64{5, 50}

	s := RubiscoSurface(co2, o2, k)
	c, r := s.Dims()
	if c != 3 || r != 2 {
		t.Fatalf("expected 3x2 surface, got %dx%d", c, r)
	}
	if s.Z[1][2] != RubiscoRp(1000, 500, k) {
		t.Errorf("surface point mismatch: %f", s.Z[1][2])
	}
	for row, pct := range o2 {
		want := RubiscoSeries(co2, pct, k)
		for col := range co2 {
			if s.Z[row][col] != want[col] {
				t.Errorf("row %d col %d: expected %v, got %v", row, col, want[col], s.Z[row][col])
			}
		}
	}

	lo, hi := s.Range()
	if lo >= hi {
		t.Errorf("expected lo < hi, got %f, %f", lo, hi)
	}
}

func TestSyntheticScatterReproducible(t *testing.T) {
	pg1, rp1 := SyntheticScatter(12, 0.45, 40, 42)
	pg2, rp2 := SyntheticScatter(12, 0.45, 40, 42)

	for i := range pg1 {
		if pg1[i] != pg2[i] || rp1[i] != rp2[i] {
			t.Fatalf("sample %d differs between runs", i)
		}
		if pg1[i] < 4 || pg1[i] > 38 {
			t.Errorf("pg sample %d out of range: %f", i, pg1[i])
		}
	}

	pg3, _ := SyntheticScatter(12, 0.45, 40, 7)
	if pg3[0] == pg1[0] {
		t.Error("expected different samples for a different seed")
	}
}
