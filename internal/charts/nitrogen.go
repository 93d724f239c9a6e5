package charts

import (
	"fmt"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
)

func registerNitrogen(r *Registry) {
	r.register(Chart{
		Name:        "nitrogen_respiration",
		Group:       "nitrogen",
		Description: "maintenance coefficient against nitrogen content",
		Build:       nitrogenResponse,
	})
	r.register(Chart{
		Name:        "nitrogen_respiration_organs",
		Group:       "nitrogen",
		Description: "organ coefficients with their own reference nitrogen",
		Build:       nitrogenOrgans,
	})
	r.register(Chart{
		Name:        "nitrogen_respiration_relative",
		Group:       "nitrogen",
		Description: "coefficient relative to the reference for several N_ref",
		Build:       nitrogenRelative,
	})
}

const (
	nitrogenFormula = "r'ₘ,ᵢ = r_ref × Nᵢ / N_ref"
	nitrogenYLabel  = "r'ₘ,ᵢ, maintenance coefficient (" + unitCoeffRm + ")"
)

var nitrogenStyles = []chart.SeriesStyle{
	{Gray: 0.5, Dash: chart.Dashed, Width: 2, Marker: chart.Square, MarkerSize: 6},
	{Gray: 0.0, Dash: chart.Solid, Width: 3, Marker: chart.Circle, MarkerSize: 7},
	{Gray: 0.3, Dash: chart.DashDot, Width: 2, Marker: chart.Triangle, MarkerSize: 6},
}

var referenceStar = chart.SeriesStyle{Gray: 0, Marker: chart.Star, MarkerSize: 15}

func nitrogenResponse(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Nitrogen
	ni := domain(cfg, p.NMin, p.NMax)
	idx := marks(len(ni), 5)

	pn := &chart.Panel{
		Title:  "Maintenance coefficient vs. nitrogen content",
		XLabel: "Nᵢ, nitrogen content (%)",
		YLabel: nitrogenYLabel,
		X:      chart.Range(p.NMin, p.NMax),
		Y:      chart.From(0),
		Legend: chart.LegendTopLeft,
	}
	pn.Add(
		refLine(p.Typical, 0.85, chart.Dotted, 1),
		vline(p.NRef, 0.85, chart.Dotted, 1),
	)
	for i, r := range p.RRef {
		pn.Add(&chart.Line{
			Label: typical(fmt.Sprintf("r_ref = %.3f", r), r, p.Typical),
			X:     ni,
			Y:     physio.NitrogenCoefficientSeries(ni, r, p.NRef),
			Style: chart.Pick(nitrogenStyles, i),
			Marks: idx,
		})
	}
	pn.Add(
		&chart.Points{
			Label: fmt.Sprintf("Reference point (N_ref = %.1f%%)", p.NRef),
			X:     []float64{p.NRef},
			Y:     []float64{p.Typical},
			Style: referenceStar,
		},
		&chart.Note{Text: fmt.Sprintf("%s\nN_ref = %.1f%%", nitrogenFormula, p.NRef), X: 0.98, Y: 0.35, Right: true, Top: true},
	)

	return chart.Single("nitrogen_respiration", 7.5, 5.5, pn), nil
}

var organStyles = []chart.SeriesStyle{
	{Gray: 0.0, Dash: chart.Solid, Width: 2.5, Marker: chart.Circle, MarkerSize: 6},
	{Gray: 0.4, Dash: chart.Dashed, Width: 2.5, Marker: chart.Square, MarkerSize: 6},
	{Gray: 0.6, Dash: chart.DashDot, Width: 2.5, Marker: chart.Triangle, MarkerSize: 6},
}

func nitrogenOrgans(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Nitrogen
	ni := domain(cfg, p.NMin, p.OrganNMax)
	idx := marks(len(ni), 5)

	pn := &chart.Panel{
		Title:  "Organ coefficients vs. nitrogen content",
		XLabel: "Nᵢ, nitrogen content (%)",
		YLabel: nitrogenYLabel,
		X:      chart.Range(p.NMin, p.OrganNMax),
		Y:      chart.From(0),
		Legend: chart.LegendTopLeft,
	}
	for i, o := range p.Organs {
		style := chart.Pick(organStyles, i)
		ref := style
		ref.MarkerSize = 10
		pn.Add(
			&chart.Line{
				Label: o.Name,
				X:     ni,
				Y:     physio.NitrogenCoefficientSeries(ni, o.RRef, o.NRef),
				Style: style,
				Marks: idx,
			},
			&chart.Points{X: []float64{o.NRef}, Y: []float64{o.RRef}, Style: ref},
		)
	}
	pn.Add(&chart.Note{Text: nitrogenFormula, X: 0.98, Y: 0.95, Right: true, Top: true})

	return chart.Single("nitrogen_respiration_organs", 8, 5.5, pn), nil
}

func nitrogenRelative(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Nitrogen
	ni := domain(cfg, p.NMin, p.NMax)
	idx := marks(len(ni), 5)

	pn := &chart.Panel{
		Title:  "Coefficient relative to the reference nitrogen",
		XLabel: "Nᵢ, current nitrogen content (%)",
		YLabel: "r'ₘ,ᵢ / r_ref, relative coefficient",
		X:      chart.Range(p.NMin, p.NMax),
		Y:      chart.From(0),
		Legend: chart.LegendTopLeft,
	}
	for _, mult := range p.Multipliers {
		pn.Add(refLine(mult, 0.85, chart.Dotted, 0.8))
	}
	for i, nRef := range p.NRefLevels {
		pn.Add(&chart.Line{
			Label: typical(fmt.Sprintf("N_ref = %.1f%%", nRef), nRef, p.NRef),
			X:     ni,
			Y:     physio.NitrogenRelativeSeries(ni, nRef),
			Style: chart.Pick(nitrogenStyles, i),
			Marks: idx,
		})
	}
	baseline := refLine(1, 0.5, chart.Solid, 1.5)
	baseline.Label = "Baseline ratio = 1"
	pn.Add(
		baseline,
		&chart.Note{Text: "r'ₘ,ᵢ / r_ref = Nᵢ / N_ref", X: 0.98, Y: 0.95, Right: true, Top: true},
	)

	return chart.Single("nitrogen_respiration_relative", 7.5, 5.5, pn), nil
}
