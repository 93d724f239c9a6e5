package charts

import (
	"fmt"
	"math"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
)

func registerPhotosynthesis(r *Registry) {
	r.register(Chart{
		Name:        "net_photosynthesis",
		Group:       "photosynthesis",
		Description: "An against Vc for several oxygenation rates",
		Build:       netComponents,
	})
	r.register(Chart{
		Name:        "net_photosynthesis_stacked",
		Group:       "photosynthesis",
		Description: "carboxylation and the two loss terms stacked into An",
		Build:       netStacked,
	})
	r.register(Chart{
		Name:        "net_photosynthesis_vo_response",
		Group:       "photosynthesis",
		Description: "An against Vo for several dark respiration rates",
		Build:       netVoResponse,
	})
}

const anFormula = "An = Vc − 0.5 · Vo − Rd"

var fluxStyles = []chart.SeriesStyle{
	{Gray: 0.0, Dash: chart.Solid, Width: 2.5, Marker: chart.Circle, MarkerSize: 6},
	{Gray: 0.3, Dash: chart.Dashed, Width: 2.5, Marker: chart.Square, MarkerSize: 6},
	{Gray: 0.5, Dash: chart.DashDot, Width: 2.5, Marker: chart.Triangle, MarkerSize: 6},
	{Gray: 0.7, Dash: chart.Dotted, Width: 2.5, Marker: chart.Diamond, MarkerSize: 6},
}

func netComponents(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Photosynthesis
	vc := domain(cfg, 0, p.VcMax)
	idx := marks(len(vc), 5)

	pn := &chart.Panel{
		Title:  "Components of net photosynthesis",
		XLabel: "Vc, Rubisco carboxylation rate (" + unitFlux + ")",
		YLabel: "An, net photosynthesis (" + unitFlux + ")",
		X:      chart.Range(0, p.VcMax),
		Legend: chart.LegendBottomRight,
	}
	pn.Add(refLine(0, 0.5, chart.Solid, 0.8))
	for i, vo := range p.VoLevels {
		label := fmt.Sprintf("Vo = %.0f", vo)
		if vo <= 0 {
			label = "Vo = 0 (no photorespiration)"
		}
		pn.Add(&chart.Line{
			Label: label,
			X:     vc,
			Y:     physio.NetPhotosynthesisSeries(vc, vo, p.Rd),
			Style: chart.Pick(fluxStyles, i),
			Marks: idx,
		})
	}
	pn.Add(
		&chart.Line{Label: "Theoretical maximum (Vc)", X: vc, Y: vc, Style: chart.SeriesStyle{Gray: 0.8, Dash: chart.Dotted, Width: 2}},
		&chart.Note{Text: fmt.Sprintf("%s\n(Rd = %.1f)", anFormula, p.Rd), X: 0.98, Y: 0.06, Right: true},
	)

	return chart.Single("net_photosynthesis", 7.5, 5, pn), nil
}

func netStacked(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Photosynthesis
	vc := domain(cfg, 0, p.VcMax)
	an := physio.NetPhotosynthesisSeries(vc, p.StackVo, p.Rd)

	afterPhoto := physio.NetPhotosynthesisSeries(vc, p.StackVo, 0)
	zeros := make([]float64, len(vc))

	pn := &chart.Panel{
		Title:  "Stacked components of net photosynthesis",
		XLabel: "Vc, Rubisco carboxylation rate (" + unitFlux + ")",
		YLabel: "Photosynthesis components (" + unitFlux + ")",
		X:      chart.Range(0, p.VcMax),
		Y:      chart.Range(math.Min(0, minOf(an))*1.1, p.VcMax*1.05),
		Legend: chart.LegendTopLeft,
	}
	pn.Add(
		refLine(0, 0, chart.Solid, 1),
		&chart.Band{Label: "Vc (carboxylation)", X: vc, Lower: zeros, Upper: vc, Fill: 0.85, Edge: true},
		&chart.Band{Label: "−0.5 · Vo (photorespiration loss)", X: vc, Lower: afterPhoto, Upper: vc, Fill: 0.6, Edge: true},
		&chart.Band{Label: "−Rd (dark respiration loss)", X: vc, Lower: an, Upper: afterPhoto, Fill: 0.4, Edge: true},
		&chart.Line{
			Label: "An (net photosynthesis)",
			X:     vc,
			Y:     an,
			Style: chart.SeriesStyle{Gray: 0, Width: 3, Marker: chart.Circle, MarkerSize: 7},
			Marks: marks(len(vc), 5),
		},
		&chart.Note{Text: fmt.Sprintf("Vo = %.0f, Rd = %.1f", p.StackVo, p.Rd), X: 0.98, Y: 0.95, Right: true, Top: true},
	)

	return chart.Single("net_photosynthesis_stacked", 7.5, 5.5, pn), nil
}

func netVoResponse(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Photosynthesis
	vo := domain(cfg, 0, p.VoMax)
	idx := marks(len(vo), 5)

	pn := &chart.Panel{
		Title:  "Net photosynthesis response to oxygenation",
		XLabel: "Vo, Rubisco oxygenation rate (" + unitFluxO2 + ")",
		YLabel: "An, net photosynthesis (" + unitFlux + ")",
		X:      chart.Range(0, p.VoMax),
		Legend: chart.LegendTopRight,
	}
	pn.Add(refLine(0, 0.5, chart.Solid, 0.8))
	for i, rd := range p.RdLevels {
		label := fmt.Sprintf("Rd = %.1f", rd)
		if rd <= 0 {
			label = "Rd = 0"
		}
		pn.Add(&chart.Line{
			Label: label,
			X:     vo,
			Y:     physio.NetPhotosynthesisByVo(p.Vc, vo, rd),
			Style: chart.Pick(fluxStyles, i),
			Marks: idx,
		})
	}
	pn.Add(&chart.Note{Text: fmt.Sprintf("%s\n(Vc = %.0f)", anFormula, p.Vc), X: 0.02, Y: 0.65, Top: true})

	return chart.Single("net_photosynthesis_vo_response", 7.5, 5, pn), nil
}
