package charts

import (
	"fmt"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
	"github.com/san-kum/cropviz/internal/sweep"
)

func registerTemperature(r *Registry) {
	r.register(Chart{
		Name:        "temperature_respiration",
		Group:       "temperature",
		Description: "Rm(T) for several Q10 values",
		Build:       temperatureResponse,
	})
	r.register(Chart{
		Name:        "temperature_respiration_q10",
		Group:       "temperature",
		Description: "Rm sensitivity to Q10 at fixed temperatures",
		Build:       temperatureQ10,
	})
	r.register(Chart{
		Name:        "temperature_respiration_relative",
		Group:       "temperature",
		Description: "Rm(T) / Rm0 for several Q10 values",
		Build:       temperatureRelative,
	})
}

// temperatureMargin is narrower than markMargin to keep markers near 0 °C.
const temperatureMargin = 20

const rmTLabel = "Rm(T), maintenance respiration (" + unitCH2O + ")"

func q10Style(i int, q10, typ float64) chart.SeriesStyle {
	s := chart.Pick(fluxStyles, i)
	if q10 == typ {
		s = s.Emphasize()
	}
	return s
}

func temperatureParams(p config.TemperatureParams) string {
	return fmt.Sprintf("Rm0 = %.1f %s\nT0 = %g °C", p.Rm0, unitCH2O, p.T0)
}

func temperatureResponse(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Temperature
	t := domain(cfg, p.TMin, p.TMax)
	idx := sweep.SampleIndices(len(t), temperatureMargin, 5)

	pn := &chart.Panel{
		Title:  "Temperature response of maintenance respiration",
		XLabel: "T, temperature (°C)",
		YLabel: rmTLabel,
		X:      chart.Range(p.TMin, p.TMax),
		Y:      chart.From(0),
		Legend: chart.LegendTopLeft,
	}
	pn.Add(
		refLine(p.Rm0, 0.85, chart.Dashed, 1),
		vline(p.T0, 0.85, chart.Dashed, 1),
	)
	for i, q := range p.Q10 {
		pn.Add(&chart.Line{
			Label: typical(fmt.Sprintf("Q10 = %.1f", q), q, p.Typical),
			X:     t,
			Y:     physio.TemperatureSeries(t, p.Rm0, q, p.T0),
			Style: q10Style(i, q, p.Typical),
			Marks: idx,
		})
	}
	pn.Add(
		&chart.Points{
			Label: fmt.Sprintf("Reference point (T0 = %g °C)", p.T0),
			X:     []float64{p.T0},
			Y:     []float64{p.Rm0},
			Style: referenceStar,
		},
		&chart.Note{
			Text:  "Rm(T) = Rm0 · Q10^((T − T0)/10)\n\n" + temperatureParams(p),
			X:     0.98,
			Y:     0.45,
			Right: true,
			Top:   true,
		},
	)

	return chart.Single("temperature_respiration", 7.5, 5.5, pn), nil
}

var q10Styles = []chart.SeriesStyle{
	{Gray: 0.7, Dash: chart.Dotted, Width: 2, Marker: chart.Diamond, MarkerSize: 6},
	{Gray: 0.5, Dash: chart.DashDot, Width: 2, Marker: chart.Triangle, MarkerSize: 6},
	{Gray: 0.3, Dash: chart.Dashed, Width: 2, Marker: chart.Square, MarkerSize: 6},
	{Gray: 0.0, Dash: chart.Solid, Width: 2.5, Marker: chart.Circle, MarkerSize: 8},
	{Gray: 0.2, Dash: chart.Solid, Width: 3, Marker: chart.Pentagon, MarkerSize: 6},
}

func temperatureQ10(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Temperature
	q10 := domain(cfg, p.Q10Min, p.Q10Max)

	pn := &chart.Panel{
		Title:  "Sensitivity of respiration to Q10",
		XLabel: "Q10, temperature coefficient",
		YLabel: rmTLabel,
		X:      chart.Range(p.Q10Min, p.Q10Max),
		Y:      chart.From(0),
		Legend: chart.LegendTopLeft,
	}
	for i, temp := range p.Temperatures {
		style := chart.Pick(q10Styles, i)
		label := fmt.Sprintf("T = %g °C", temp)
		ys := physio.Q10Series(q10, temp, p.Rm0, p.T0)
		if temp == p.T0 {
			// flat at Rm0, so mark only the typical Q10
			pn.Add(
				&chart.Line{Label: label + " (reference)", X: q10, Y: ys, Style: style},
				&chart.Points{X: []float64{p.Typical}, Y: []float64{p.Rm0}, Style: style},
			)
			continue
		}
		pn.Add(&chart.Line{Label: label, X: q10, Y: ys, Style: style, Marks: marks(len(q10), 4)})
	}
	typ := vline(p.Typical, 0.7, chart.Dashed, 1.5)
	typ.Label = fmt.Sprintf("Typical Q10 = %.1f", p.Typical)
	pn.Add(
		typ,
		&chart.Note{Text: temperatureParams(p), X: 0.98, Y: 0.35, Right: true, Top: true},
	)

	return chart.Single("temperature_respiration_q10", 7.5, 5.5, pn), nil
}

func temperatureRelative(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Temperature
	t := domain(cfg, p.TMin, p.TMax)
	idx := sweep.SampleIndices(len(t), temperatureMargin, 5)

	pn := &chart.Panel{
		Title:  "Respiration relative to the reference temperature",
		XLabel: "T, temperature (°C)",
		YLabel: "Rm(T) / Rm0, relative respiration",
		X:      chart.Range(p.TMin, p.TMax),
		Y:      chart.From(0),
		Legend: chart.LegendTopLeft,
	}
	for _, mult := range p.Multipliers {
		pn.Add(refLine(mult, 0.85, chart.Dotted, 0.8))
	}
	pn.Add(vline(p.T0, 0.85, chart.Dashed, 1))
	for i, q := range p.Q10 {
		pn.Add(&chart.Line{
			Label: typical(fmt.Sprintf("Q10 = %.1f", q), q, p.Typical),
			X:     t,
			Y:     physio.TemperatureRelativeSeries(t, q, p.T0),
			Style: q10Style(i, q, p.Typical),
			Marks: idx,
		})
	}
	baseline := refLine(1, 0.5, chart.Solid, 1.5)
	baseline.Label = "Baseline ratio = 1"
	pn.Add(
		baseline,
		&chart.Note{Text: fmt.Sprintf("Rm(T) / Rm0 = Q10^((T − T0)/10)\nT0 = %g °C", p.T0), X: 0.98, Y: 0.95, Right: true, Top: true},
	)

	return chart.Single("temperature_respiration_relative", 7.5, 5.5, pn), nil
}
