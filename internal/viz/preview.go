package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cropviz/internal/chart"
)

const (
	DefaultWidth  = 72
	DefaultHeight = 12
	maxSeries     = 6
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.LightGreen,
	asciigraph.Gold,
	asciigraph.Aqua,
	asciigraph.Fuchsia,
	asciigraph.Orange,
	asciigraph.Silver,
}

type panelSeries struct {
	title  string
	series []chart.Series
}

// Preview draws each panel of fig as an ASCII chart followed by its legend.
func Preview(fig *chart.Figure, width, height int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var b strings.Builder
	b.WriteString(Title.Render(fig.Name) + "\n\n")
	for _, p := range groupPanels(fig.Series()) {
		picked := thin(p.series, maxSeries)

		var data [][]float64
		var labels []string
		var colors []asciigraph.AnsiColor
		for _, s := range picked {
			ys, ok := plottable(s.Y)
			if !ok {
				continue
			}
			data = append(data, ys)
			labels = append(labels, legendLabel(s.Label, len(labels)))
			colors = append(colors, seriesColors[len(colors)%len(seriesColors)])
		}
		if len(data) == 0 {
			continue
		}

		title := p.title
		if title == "" {
			title = fig.Name
		}
		b.WriteString(HeaderStyle.Render(title) + "\n")
		b.WriteString(asciigraph.PlotMany(data,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Precision(3),
			asciigraph.Caption(xCaption(picked[0].X)),
			asciigraph.SeriesColors(colors...),
			asciigraph.SeriesLegends(labels...),
		))
		b.WriteString("\n")
		if n := len(p.series) - len(picked); n > 0 {
			b.WriteString(KeyHint.Render(fmt.Sprintf("  %d more series not shown", n)) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func legendLabel(label string, i int) string {
	if label == "" {
		return fmt.Sprintf("series %d", i+1)
	}
	return label
}

// groupPanels splits series into consecutive runs sharing a panel title.
func groupPanels(series []chart.Series) []panelSeries {
	var out []panelSeries
	for i, s := range series {
		if i == 0 || s.Panel != series[i-1].Panel {
			out = append(out, panelSeries{title: s.Panel})
		}
		last := &out[len(out)-1]
		last.series = append(last.series, s)
	}
	return out
}

// thin keeps at most n series, evenly spread and including both ends.
func thin(series []chart.Series, n int) []chart.Series {
	if len(series) <= n {
		return series
	}
	out := make([]chart.Series, n)
	for i := range out {
		out[i] = series[i*(len(series)-1)/(n-1)]
	}
	return out
}

// plottable replaces infinities with NaN gaps and rejects series with fewer
// than two finite points.
func plottable(ys []float64) ([]float64, bool) {
	out := make([]float64, len(ys))
	n := 0
	for i, v := range ys {
		if finite(v) {
			out[i] = v
			n++
		} else {
			out[i] = math.NaN()
		}
	}
	return out, n >= 2
}

func xCaption(xs []float64) string {
	lo, hi, ok := bounds(xs)
	if !ok {
		return ""
	}
	return fmt.Sprintf("x from %.4g to %.4g", lo, hi)
}

func bounds(vs []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if !finite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	return lo, hi, ok
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
