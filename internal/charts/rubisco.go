package charts

import (
	"fmt"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
	"github.com/san-kum/cropviz/internal/sweep"
)

func registerRubisco(r *Registry) {
	r.register(Chart{
		Name:        "rubisco_rp",
		Group:       "rubisco",
		Description: "Rubisco respiration against CO₂ at several O₂ levels",
		Build:       rubiscoCurves,
	})
	r.register(Chart{
		Name:        "rubisco_rp_3d",
		Group:       "rubisco",
		Description: "Rubisco respiration surface over CO₂ and O₂",
		Build:       rubiscoSurface,
	})
}

const rpLabel = "Rp (" + unitFlux + ")"

func rubiscoCurves(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Rubisco
	k := p.Constants()
	// start one unit above zero so CO₂/Kc never degenerates
	co2 := domain(cfg, 1, p.CO2Max)
	idx := marks(len(co2), 5)

	pn := &chart.Panel{
		Title:  "Rubisco respiration response to CO₂",
		XLabel: "CO₂ concentration (μmol mol⁻¹)",
		YLabel: rpLabel,
		X:      chart.Range(0, p.CO2Max),
		Y:      chart.From(0),
		Legend: chart.LegendBottomLeft,
	}
	for i, pct := range p.O2Levels {
		pn.Add(&chart.Line{
			Label: fmt.Sprintf("O₂ = %g%%", pct),
			X:     co2,
			Y:     physio.RubiscoSeries(co2, pct, k),
			Style: chart.Pick(fluxStyles, i),
			Marks: idx,
		})
	}
	pn.Add(&chart.Note{
		Text:  "Rp = Rp,max · (O₂/Ks) / ((CO₂/Kc) + 1 + O₂/Ko)",
		X:     0.98,
		Y:     0.95,
		Right: true,
		Top:   true,
	})

	return chart.Single("rubisco_rp", 7, 5, pn), nil
}

func rubiscoSurface(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Rubisco
	n := p.SurfaceSamples
	if n < 2 {
		n = 100
	}
	s := physio.RubiscoSurface(sweep.Linspace(1, p.CO2Max, n), sweep.Linspace(p.O2Min, p.O2Max, n), p.Constants())

	pn := &chart.Panel{Title: "Rubisco respiration surface over CO₂ and O₂"}
	pn.Add(&chart.Surface{
		X:         s.X,
		Y:         s.Y,
		Z:         s.Z,
		XLabel:    "CO₂ (μmol mol⁻¹)",
		YLabel:    "O₂ (%)",
		ZLabel:    "Rp",
		Elevation: 25,
		Azimuth:   45,
	})

	return chart.Single("rubisco_rp_3d", 8, 6, pn), nil
}
