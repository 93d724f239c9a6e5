package charts

import (
	"fmt"
	"math"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/sweep"
)

const (
	unitDM      = "g DM m⁻² d⁻¹"
	unitCO2     = "g CO₂ m⁻² d⁻¹"
	unitCH2O    = "g CH₂O m⁻² d⁻¹"
	unitCoeffM  = "g CO₂ g⁻¹ DM"
	unitCoeffRm = "g CH₂O g⁻¹ d⁻¹"
	unitFlux    = "μmol CO₂ m⁻² s⁻¹"
	unitFluxO2  = "μmol O₂ m⁻² s⁻¹"
)

// markMargin keeps markers clear of the curve ends.
const markMargin = 30

func samples(cfg *config.Config) int {
	if cfg.Samples < 2 {
		return config.DefaultSamples
	}
	return cfg.Samples
}

func domain(cfg *config.Config, lo, hi float64) []float64 {
	return sweep.Linspace(lo, hi, samples(cfg))
}

func marks(n, k int) []int {
	return sweep.SampleIndices(n, markMargin, k)
}

func typical(label string, v, typ float64) string {
	if v == typ {
		return label + " (typical)"
	}
	return label
}

// fills repeats a gray sequence to length n.
func fills(seq []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = seq[i%len(seq)]
	}
	return out
}

func valueLabels(xs, ys []float64, format string) *chart.Annotations {
	a := &chart.Annotations{X: xs, Y: ys, Text: make([]string, len(ys)), Below: make([]bool, len(ys))}
	for i, y := range ys {
		a.Text[i] = fmt.Sprintf(format, y)
		a.Below[i] = y < 0
	}
	return a
}

func positions(n int) []float64 {
	return sweep.Arange(0, n)
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		m = math.Max(m, x)
	}
	return m
}

func minOf(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		m = math.Min(m, x)
	}
	return m
}

// fraction maps a data coordinate to its position along [lo, hi].
func fraction(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

func refLine(at float64, gray float64, dash chart.Dash, width float64) *chart.RefLine {
	return &chart.RefLine{At: at, Style: chart.SeriesStyle{Gray: gray, Dash: dash, Width: width}}
}

func vline(at float64, gray float64, dash chart.Dash, width float64) *chart.RefLine {
	l := refLine(at, gray, dash, width)
	l.Vertical = true
	return l
}
