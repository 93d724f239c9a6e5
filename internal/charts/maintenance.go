package charts

import (
	"fmt"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
	"github.com/san-kum/cropviz/internal/sweep"
)

func registerMaintenance(r *Registry) {
	r.register(Chart{
		Name:        "maintenance_respiration_organs",
		Group:       "maintenance",
		Description: "organ contributions to Rm across growth stages",
		Build:       maintenanceOrgans,
	})
	r.register(Chart{
		Name:        "maintenance_respiration_sensitivity",
		Group:       "maintenance",
		Description: "Rm response to leaf dry weight",
		Build:       maintenanceSensitivity,
	})
	r.register(Chart{
		Name:        "maintenance_respiration_coefficients",
		Group:       "maintenance",
		Description: "maintenance coefficient ranges and Rm at a fixed weight",
		Build:       maintenanceCoefficients,
	})
}

const rmFormula = "Rm = Σᵢ rₘ,ᵢ · Wᵢ"

var stageFills = []float64{0.9, 0.7, 0.5, 0.3}

func maintenanceOrgans(cfg *config.Config) (*chart.Figure, error) {
	m := cfg.Maintenance
	coeffs := make([]float64, len(m.Organs))
	for i, o := range m.Organs {
		coeffs[i] = o.Coeff
	}

	stages := make([]string, len(m.Stages))
	contrib := make([][]float64, len(m.Stages))
	totals := make([]float64, len(m.Stages))
	for s, st := range m.Stages {
		c, err := physio.OrganContributions(st.Weights, coeffs)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.Name, err)
		}
		total, err := physio.MaintenanceRespiration(st.Weights, coeffs)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.Name, err)
		}
		stages[s], contrib[s], totals[s] = st.Name, c, total
	}

	pn := &chart.Panel{
		Title:      "Organ contributions to maintenance respiration",
		XLabel:     "Growth stage",
		YLabel:     "Rm, maintenance respiration (" + unitCH2O + ")",
		Y:          chart.Range(0, maxOf(totals)*1.15),
		Categories: stages,
		Legend:     chart.LegendTopLeft,
	}
	var below *chart.Bars
	for i, o := range m.Organs {
		values := make([]float64, len(m.Stages))
		for s := range m.Stages {
			values[s] = contrib[s][i]
		}
		b := &chart.Bars{Label: o.Name, Values: values, Fill: stageFills[i%len(stageFills)], On: below}
		pn.Add(b)
		below = b
	}
	pn.Add(
		valueLabels(positions(len(totals)), totals, "%.1f"),
		&chart.Note{Text: rmFormula, X: 0.98, Y: 0.95, Right: true, Top: true},
	)

	return chart.Single("maintenance_respiration_organs", 8, 5.5, pn), nil
}

var sensitivityStyles = []chart.SeriesStyle{
	{Gray: 0.3, Dash: chart.Solid, Width: 2, Marker: chart.Circle, MarkerSize: 6},
	{Gray: 0.5, Dash: chart.Dashed, Width: 2, Marker: chart.Square, MarkerSize: 6},
	{Gray: 0.7, Dash: chart.DashDot, Width: 2, Marker: chart.Triangle, MarkerSize: 6},
	{Gray: 0.0, Dash: chart.Solid, Width: 3, Marker: chart.Diamond, MarkerSize: 7},
}

func maintenanceSensitivity(cfg *config.Config) (*chart.Figure, error) {
	m := cfg.Maintenance
	if len(m.Organs) < 3 {
		return nil, fmt.Errorf("%w: need leaf, stem and root coefficients, got %d organs",
			physio.ErrDimensionMismatch, len(m.Organs))
	}
	coeffs := []float64{m.Organs[0].Coeff, m.Organs[1].Coeff, m.Organs[2].Coeff}

	leaf := domain(cfg, 0, m.LeafMax)
	series := make([][]float64, 4)
	for i := range series {
		series[i] = make([]float64, len(leaf))
	}
	for k, w := range leaf {
		weights := []float64{w, m.StemWeight, m.RootWeight}
		c, err := physio.OrganContributions(weights, coeffs)
		if err != nil {
			return nil, err
		}
		total, err := physio.MaintenanceRespiration(weights, coeffs)
		if err != nil {
			return nil, err
		}
		series[0][k], series[1][k], series[2][k], series[3][k] = c[0], c[1], c[2], total
	}

	pn := &chart.Panel{
		Title:  "Maintenance respiration vs. leaf dry weight",
		XLabel: "Wᵢ, leaf dry weight (g m⁻²)",
		YLabel: "Rm, maintenance respiration (" + unitCH2O + ")",
		Legend: chart.LegendTopLeft,
	}
	labels := []string{m.Organs[0].Name, m.Organs[1].Name, m.Organs[2].Name, "Total"}
	for i, ys := range series {
		k := 4
		if i == 3 {
			k = 6
		}
		pn.Add(&chart.Line{Label: labels[i], X: leaf, Y: ys, Style: sensitivityStyles[i], Marks: marks(len(leaf), k)})
	}
	pn.Add(&chart.Note{
		Text:  fmt.Sprintf("W stem = %g g m⁻²\nW root = %g g m⁻²", m.StemWeight, m.RootWeight),
		X:     0.98,
		Y:     0.35,
		Right: true,
		Top:   true,
	})

	return chart.Single("maintenance_respiration_sensitivity", 7.5, 5, pn), nil
}

var rangeFills = []float64{0.9, 0.75, 0.6, 0.45, 0.3}

func maintenanceCoefficients(cfg *config.Config) (*chart.Figure, error) {
	m := cfg.Maintenance
	n := len(m.Ranges)
	organs := make([]string, n)
	mean, lo, hi := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, r := range m.Ranges {
		organs[i] = r.Organ
		mean[i], lo[i], hi[i] = r.Mean, r.Min, r.Max
	}
	x := positions(n)

	left := &chart.Panel{
		Title:      "Maintenance coefficients by organ",
		XLabel:     "Organ",
		YLabel:     "rₘ,ᵢ (" + unitCoeffRm + ")",
		Y:          chart.Range(0, maxOf(hi)*1.15),
		Categories: organs,
		Legend:     chart.LegendTopRight,
	}
	left.Add(
		&chart.Bars{Label: "Typical", Values: mean, Fill: 0.7},
		spread(x, mean, lo, hi),
		valueLabels(x, mean, "%.3f"),
	)

	weights := sweep.Constant(m.RangeWeight, n)
	rm, err := physio.OrganContributions(weights, mean)
	if err != nil {
		return nil, err
	}
	rmLo, _ := physio.OrganContributions(weights, lo)
	rmHi, _ := physio.OrganContributions(weights, hi)

	right := &chart.Panel{
		Title:      fmt.Sprintf("Respiration at %g g m⁻² dry weight", m.RangeWeight),
		XLabel:     "Organ",
		YLabel:     "Rm (" + unitCH2O + ")",
		Y:          chart.Range(0, maxOf(rmHi)*1.15),
		Categories: organs,
		Legend:     chart.LegendHidden,
	}
	right.Add(
		&chart.Bars{Values: rm, Fills: fills(rangeFills, n)},
		spread(x, rm, rmLo, rmHi),
		valueLabels(x, rm, "%.2f"),
	)

	return &chart.Figure{
		Name:   "maintenance_respiration_coefficients",
		Width:  11,
		Height: 5,
		Rows:   1,
		Cols:   2,
		Panels: []*chart.Panel{left, right},
	}, nil
}

// spread turns min/max bounds into error bar distances around y.
func spread(x, y, lo, hi []float64) *chart.ErrorBars {
	e := &chart.ErrorBars{X: x, Y: y, Low: make([]float64, len(y)), High: make([]float64, len(y))}
	for i := range y {
		e.Low[i] = y[i] - lo[i]
		e.High[i] = hi[i] - y[i]
	}
	return e
}
