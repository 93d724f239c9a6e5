package charts

import (
	"fmt"
	"math"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
	"github.com/san-kum/cropviz/internal/sweep"
)

func registerGrowth(r *Registry) {
	r.register(Chart{
		Name:        "growth_respiration",
		Group:       "growth",
		Description: "Rg = m · GTW for several growth coefficients",
		Build:       growthLinear,
	})
	r.register(Chart{
		Name:        "growth_respiration_coefficients",
		Group:       "growth",
		Description: "growth respiration coefficient of each chemical component",
		Build:       growthCoefficients,
	})
	r.register(Chart{
		Name:        "growth_respiration_seasonal",
		Group:       "growth",
		Description: "seasonal assimilation and the growth respiration it drives",
		Build:       growthSeasonal,
	})
	r.register(Chart{
		Name:        "growth_respiration_composite",
		Group:       "growth",
		Description: "organ composition and composite coefficient m_i = Σ f_j · m_j",
		Build:       growthComposite,
	})
}

var growthStyles = []chart.SeriesStyle{
	{Gray: 0.5, Dash: chart.Dashed, Width: 2, Marker: chart.Square, MarkerSize: 6},
	{Gray: 0.0, Dash: chart.Solid, Width: 3, Marker: chart.Circle, MarkerSize: 7},
	{Gray: 0.3, Dash: chart.DashDot, Width: 2, Marker: chart.Triangle, MarkerSize: 6},
	{Gray: 0.6, Dash: chart.Dotted, Width: 2, Marker: chart.Diamond, MarkerSize: 6},
}

var componentFills = []float64{0.85, 0.4, 0.55, 0.7, 0.95}

func growthLinear(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Growth
	gtw := domain(cfg, 0, p.GTWMax)
	idx := marks(len(gtw), 5)

	pn := &chart.Panel{
		Title:  "Growth respiration vs. daily assimilation",
		XLabel: "GTW, daily gross assimilation (" + unitDM + ")",
		YLabel: "Rg, growth respiration (" + unitCO2 + ")",
		X:      chart.Range(0, p.GTWMax),
		Y:      chart.From(0),
		Legend: chart.LegendTopLeft,
	}
	for i, m := range p.M {
		pn.Add(&chart.Line{
			Label: typical(fmt.Sprintf("m = %.2f", m), m, p.Typical),
			X:     gtw,
			Y:     physio.GrowthRespirationSeries(gtw, m),
			Style: chart.Pick(growthStyles, i),
			Marks: idx,
		})
	}
	pn.Add(&chart.Note{Text: "Rg = m · GTW", X: 0.98, Y: 0.35, Right: true, Top: true})

	return chart.Single("growth_respiration", 7.5, 5.5, pn), nil
}

func growthCoefficients(cfg *config.Config) (*chart.Figure, error) {
	comps := cfg.Growth.Components
	names := make([]string, len(comps))
	values := make([]float64, len(comps))
	for i, c := range comps {
		names[i] = c.Name
		values[i] = c.M
	}

	pn := &chart.Panel{
		Title:      "Growth respiration coefficients by component",
		XLabel:     "Chemical component",
		YLabel:     "m, growth respiration coefficient (" + unitCoeffM + ")",
		Y:          chart.Range(math.Min(0, minOf(values))*1.2, maxOf(values)*1.15),
		Categories: names,
		Legend:     chart.LegendHidden,
	}
	pn.Add(
		&chart.Bars{Values: values, Fills: fills(componentFills, len(values))},
		refLine(0, 0, chart.Solid, 1),
		valueLabels(positions(len(values)), values, "%.2f"),
		&chart.Note{Text: "Source: Goudriaan & van Laar (1994)\nTable 4.3-4", X: 0.02, Y: 0.98, Top: true},
	)

	return chart.Single("growth_respiration_coefficients", 8, 5.5, pn), nil
}

func growthSeasonal(cfg *config.Config) (*chart.Figure, error) {
	s := cfg.Growth.Season
	days := sweep.Arange(0, s.Days)
	gtw := make([]float64, len(days))
	for i, d := range days {
		gtw[i] = physio.SeasonalAssimilation(d, s.PeakDay, s.MaxGTW, s.Width)
	}
	rg := physio.GrowthRespirationSeries(gtw, s.M)
	zeros := sweep.Constant(0, len(days))
	xr := chart.Range(0, float64(s.Days))
	peak := chart.SeriesStyle{Gray: 0, Marker: chart.Circle, MarkerSize: 10}
	curve := chart.SeriesStyle{Gray: 0, Width: 2.5}

	top := &chart.Panel{
		Title:  "Seasonal assimilation",
		YLabel: "GTW (" + unitDM + ")",
		X:      xr,
		Y:      chart.Range(0, s.MaxGTW*1.2),
		Legend: chart.LegendTopLeft,
	}
	top.Add(
		&chart.Band{Label: "GTW", X: days, Lower: zeros, Upper: gtw, Fill: 0.85, Edge: true},
		&chart.Line{X: days, Y: gtw, Style: curve},
		&chart.Points{X: []float64{s.PeakDay}, Y: []float64{s.MaxGTW}, Style: peak},
		&chart.Note{
			Text: fmt.Sprintf("Peak: %.0f %s", s.MaxGTW, unitDM),
			X:    fraction(s.PeakDay+15, 0, float64(s.Days)),
			Y:    fraction(s.MaxGTW-3, 0, s.MaxGTW*1.2),
		},
	)

	peakRg := physio.GrowthRespiration(s.MaxGTW, s.M)
	bottom := &chart.Panel{
		Title:  fmt.Sprintf("Growth respiration (m = %.2f)", s.M),
		XLabel: "Day of growing season (d)",
		YLabel: "Rg (" + unitCO2 + ")",
		X:      xr,
		Y:      chart.Range(0, peakRg*1.2),
		Legend: chart.LegendTopRight,
	}
	bottom.Add(
		&chart.Band{Label: "Rg", X: days, Lower: zeros, Upper: rg, Fill: 0.6, Edge: true},
		&chart.Line{X: days, Y: rg, Style: curve},
		&chart.Points{X: []float64{s.PeakDay}, Y: []float64{peakRg}, Style: peak},
		&chart.Note{
			Text: fmt.Sprintf("Peak: %.1f %s", peakRg, unitCO2),
			X:    fraction(s.PeakDay+15, 0, float64(s.Days)),
			Y:    fraction(peakRg-0.8, 0, peakRg*1.2),
		},
		&chart.Note{Text: "Rg = m · GTW", X: 0.02, Y: 0.95, Top: true},
	)

	return &chart.Figure{
		Name:   "growth_respiration_seasonal",
		Width:  9,
		Height: 7,
		Rows:   2,
		Cols:   1,
		Panels: []*chart.Panel{top, bottom},
	}, nil
}

var organFills = []float64{0.3, 0.5, 0.65, 0.8}

func growthComposite(cfg *config.Config) (*chart.Figure, error) {
	g := cfg.Growth
	coeffs := make([]float64, len(g.Components))
	for i, c := range g.Components {
		coeffs[i] = c.M
	}

	organs := make([]string, len(g.Organs))
	composite := make([]float64, len(g.Organs))
	for i, o := range g.Organs {
		m, err := physio.CompositeCoefficient(o.Fractions, coeffs)
		if err != nil {
			return nil, fmt.Errorf("organ %s: %w", o.Organ, err)
		}
		organs[i] = o.Organ
		composite[i] = m
	}

	left := &chart.Panel{
		Title:      "Component composition by organ",
		XLabel:     "Organ",
		YLabel:     "Component mass fraction fⱼ",
		Y:          chart.Range(0, 1.05),
		Categories: organs,
		Legend:     chart.LegendTopRight,
	}
	var below *chart.Bars
	for j, c := range g.Components {
		values := make([]float64, len(g.Organs))
		for i, o := range g.Organs {
			values[i] = o.Fractions[j]
		}
		b := &chart.Bars{Label: c.Name, Values: values, Fill: componentFills[j%len(componentFills)], On: below}
		left.Add(b)
		below = b
	}

	right := &chart.Panel{
		Title:      "Composite growth respiration coefficient",
		XLabel:     "Organ",
		YLabel:     "mᵢ, composite coefficient (" + unitCoeffM + ")",
		Y:          chart.Range(0, maxOf(composite)*1.15),
		Categories: organs,
		Legend:     chart.LegendHidden,
	}
	right.Add(
		&chart.Bars{Values: composite, Fills: fills(organFills, len(composite))},
		valueLabels(positions(len(composite)), composite, "%.3f"),
		&chart.Note{Text: "mᵢ = Σⱼ fⱼ · mⱼ", X: 0.98, Y: 0.95, Right: true, Top: true},
	)

	return &chart.Figure{
		Name:   "growth_respiration_composite",
		Width:  12,
		Height: 5.5,
		Rows:   1,
		Cols:   2,
		Panels: []*chart.Panel{left, right},
	}, nil
}
