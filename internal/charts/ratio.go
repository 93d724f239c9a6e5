package charts

import (
	"fmt"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
	"github.com/san-kum/cropviz/internal/sweep"
	"gonum.org/v1/gonum/stat"
)

func registerRatio(r *Registry) {
	r.register(Chart{
		Name:        "rp_vs_pg",
		Group:       "ratio",
		Description: "Rp = α · Pg with its admissible band and seeded sample points",
		Build:       ratioPlot,
	})
}

// FitSlope returns the least-squares slope through the origin of rp on pg.
func FitSlope(pg, rp []float64) float64 {
	_, beta := stat.LinearRegression(pg, rp, nil, true)
	return beta
}

func ratioPlot(cfg *config.Config) (*chart.Figure, error) {
	p := cfg.Ratio
	n := p.Samples
	if n < 2 {
		n = 200
	}
	x := sweep.Linspace(0, p.PgMax, n)
	pg, rp := physio.SyntheticScatter(p.Points, p.Alpha, p.PgMax, cfg.Seed)

	pn := &chart.Panel{
		Title:  "Crop respiration vs. gross photosynthesis",
		XLabel: "Pg (" + unitFlux + ")",
		YLabel: "Rp (" + unitFlux + ")",
		X:      chart.Range(0, p.PgMax),
		Y:      chart.Range(0, p.AlphaMax*p.PgMax*1.05),
		Legend: chart.LegendTopLeft,
	}
	pn.Add(
		&chart.Band{
			Label: fmt.Sprintf("α range %.2f–%.2f", p.AlphaMin, p.AlphaMax),
			X:     x,
			Lower: physio.RespirationRatioSeries(x, p.AlphaMin),
			Upper: physio.RespirationRatioSeries(x, p.AlphaMax),
			Fill:  0.875,
		},
		&chart.Line{
			Label: fmt.Sprintf("Typical α = %.2f", p.Alpha),
			X:     x,
			Y:     physio.RespirationRatioSeries(x, p.Alpha),
			Style: chart.SeriesStyle{Gray: 0, Width: 2.5},
		},
		&chart.Points{
			Label: "Example data points",
			X:     pg,
			Y:     rp,
			Style: chart.SeriesStyle{Gray: 0, Marker: chart.Circle, MarkerSize: 8},
		},
	)

	text := "Rp = α · Pg"
	if len(pg) > 1 {
		text += fmt.Sprintf("\nfitted α = %.3f (n = %d)", FitSlope(pg, rp), len(pg))
	}
	pn.Add(&chart.Note{Text: text, X: 0.98, Y: 0.06, Right: true, Plain: true})

	return chart.Single("rp_vs_pg", 6.5, 4.5, pn), nil
}
