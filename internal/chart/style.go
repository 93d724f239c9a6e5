package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Dash is a stroke pattern.
type Dash int

const (
	Solid Dash = iota
	Dashed
	DashDot
	Dotted
)

func (d Dash) pattern() []vg.Length {
	switch d {
	case Dashed:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case DashDot:
		return []vg.Length{vg.Points(6), vg.Points(2.5), vg.Points(1.5), vg.Points(2.5)}
	case Dotted:
		return []vg.Length{vg.Points(1.5), vg.Points(2.5)}
	}
	return nil
}

// Marker is a hollow glyph shape.
type Marker int

const (
	NoMarker Marker = iota
	Circle
	Square
	Triangle
	Diamond
	Pentagon
	Star
)

// SeriesStyle is the complete look of one series. Charts declare an ordered
// slice of these instead of parallel color/dash/marker/width lists.
type SeriesStyle struct {
	Gray       float64 // 0 is black, 1 is white
	Dash       Dash
	Width      float64 // points
	Marker     Marker
	MarkerSize float64 // points, marker diameter
}

// Gray returns the gray level g in [0, 1] as a color.
func Gray(g float64) color.Color {
	g = math.Max(0, math.Min(1, g))
	return color.Gray{Y: uint8(math.Round(g * 255))}
}

func (s SeriesStyle) color() color.Color {
	return Gray(s.Gray)
}

func (s SeriesStyle) lineStyle() draw.LineStyle {
	w := s.Width
	if w == 0 {
		w = 2
	}
	return draw.LineStyle{
		Color:  s.color(),
		Width:  vg.Points(w * 0.75),
		Dashes: s.Dash.pattern(),
	}
}

func (s SeriesStyle) glyphStyle() draw.GlyphStyle {
	size := s.MarkerSize
	if size == 0 {
		size = 6
	}
	return draw.GlyphStyle{
		Color:  s.color(),
		Radius: vg.Points(size / 2),
		Shape:  hollowGlyph{marker: s.Marker},
	}
}

// Emphasize returns a copy drawn heavier, used for a typical value.
func (s SeriesStyle) Emphasize() SeriesStyle {
	s.Width += 0.5
	s.MarkerSize += 1
	return s
}

// Pick returns the i-th style of an ordered palette, cycling when the palette
// is shorter than the number of series.
func Pick(palette []SeriesStyle, i int) SeriesStyle {
	if len(palette) == 0 {
		return SeriesStyle{Width: 2}
	}
	return palette[i%len(palette)]
}

// Mono4 is the black-to-light-gray sequence used by most sweeps.
var Mono4 = []SeriesStyle{
	{Gray: 0.0, Dash: Solid, Width: 2.5, Marker: Circle, MarkerSize: 6},
	{Gray: 0.3, Dash: Dashed, Width: 2.5, Marker: Square, MarkerSize: 6},
	{Gray: 0.5, Dash: DashDot, Width: 2.5, Marker: Triangle, MarkerSize: 6},
	{Gray: 0.7, Dash: Dotted, Width: 2.5, Marker: Diamond, MarkerSize: 6},
}

// hollowGlyph draws a white-filled outline so markers stay readable over
// lines and grids.
type hollowGlyph struct {
	marker Marker
}

func (g hollowGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	var path vg.Path
	r := sty.Radius
	switch g.marker {
	case Circle, NoMarker:
		path.Move(vg.Point{X: pt.X + r, Y: pt.Y})
		path.Arc(pt, r, 0, 2*math.Pi)
		path.Close()
	case Square:
		path = polygonPath(pt, r*1.2, 4, math.Pi/4, 0)
	case Triangle:
		path = polygonPath(pt, r*1.2, 3, math.Pi/2, 0)
	case Diamond:
		path = polygonPath(pt, r*1.2, 4, math.Pi/2, 0)
	case Pentagon:
		path = polygonPath(pt, r*1.15, 5, math.Pi/2, 0)
	case Star:
		path = polygonPath(pt, r*1.3, 5, math.Pi/2, r*0.55)
	}

	c.SetColor(color.White)
	c.Fill(path)
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1.2)})
	c.Stroke(path)
}

// polygonPath traces a regular polygon of n vertices around center. A
// non-zero inner radius alternates vertices to form a star.
func polygonPath(center vg.Point, r vg.Length, n int, phase float64, inner vg.Length) vg.Path {
	var p vg.Path
	steps := n
	if inner > 0 {
		steps = 2 * n
	}
	for i := 0; i < steps; i++ {
		rad := r
		if inner > 0 && i%2 == 1 {
			rad = inner
		}
		a := phase + 2*math.Pi*float64(i)/float64(steps)
		pt := vg.Point{
			X: center.X + vg.Length(math.Cos(a))*rad,
			Y: center.Y + vg.Length(math.Sin(a))*rad,
		}
		if i == 0 {
			p.Move(pt)
		} else {
			p.Line(pt)
		}
	}
	p.Close()
	return p
}
