package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// refLine spans the data area at a fixed x or y.
type refLine struct {
	at       float64
	vertical bool
	style    draw.LineStyle
}

func (r *refLine) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	if r.vertical {
		x := trX(r.at)
		if x >= c.Min.X && x <= c.Max.X {
			c.StrokeLine2(r.style, x, c.Min.Y, x, c.Max.Y)
		}
		return
	}
	y := trY(r.at)
	if y >= c.Min.Y && y <= c.Max.Y {
		c.StrokeLine2(r.style, c.Min.X, y, c.Max.X, y)
	}
}

func (r *refLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	if r.vertical {
		return r.at, r.at, math.Inf(1), math.Inf(-1)
	}
	return math.Inf(1), math.Inf(-1), r.at, r.at
}

func (r *refLine) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(r.style, c.Min.X, y, c.Max.X, y)
}

// noteBox draws text at axes-fraction coordinates.
type noteBox struct {
	note Note
	size float64
}

func (n *noteBox) Plot(c draw.Canvas, p *plot.Plot) {
	sty := p.Legend.TextStyle
	sty.Font.Size = vg.Points(n.size)
	sty.XAlign = text.XLeft
	if n.note.Right {
		sty.XAlign = text.XRight
	}
	sty.YAlign = text.YBottom
	if n.note.Top {
		sty.YAlign = text.YTop
	}

	pt := vg.Point{
		X: c.Min.X + vg.Length(n.note.X)*(c.Max.X-c.Min.X),
		Y: c.Min.Y + vg.Length(n.note.Y)*(c.Max.Y-c.Min.Y),
	}
	if !n.note.Plain {
		w, h := sty.Width(n.note.Text), sty.Height(n.note.Text)
		x0 := pt.X + vg.Length(sty.XAlign)*w
		y0 := pt.Y + vg.Length(sty.YAlign)*h
		pad := vg.Points(4)
		box := []vg.Point{
			{X: x0 - pad, Y: y0 - pad},
			{X: x0 + w + pad, Y: y0 - pad},
			{X: x0 + w + pad, Y: y0 + h + pad},
			{X: x0 - pad, Y: y0 + h + pad},
		}
		c.FillPolygon(color.White, box)
		c.StrokeLines(draw.LineStyle{Color: Gray(0.3), Width: vg.Points(0.6)}, append(box, box[0]))
	}
	c.FillText(sty, pt, n.note.Text)
}

// surfaceView projects a Surface orthographically and paints its quads back
// to front.
type surfaceView struct {
	s     *Surface
	theme Theme
}

// surfaceCells bounds the drawn mesh so vector output stays small.
const surfaceCells = 40

func newSurfaceView(s *Surface, th Theme) *surfaceView {
	return &surfaceView{s: s, theme: th}
}

func (v *surfaceView) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, 1, 0, 1
}

type quad struct {
	pts   []vg.Point
	depth float64
	level float64
}

func (v *surfaceView) Plot(c draw.Canvas, p *plot.Plot) {
	s := v.s
	if len(s.X) < 2 || len(s.Y) < 2 {
		return
	}
	xlo, xhi := span(s.X)
	ylo, yhi := span(s.Y)
	zlo, zhi := math.Inf(1), math.Inf(-1)
	for _, row := range s.Z {
		lo, hi := span(row)
		zlo, zhi = math.Min(zlo, lo), math.Max(zhi, hi)
	}
	norm := func(x, lo, hi float64) float64 {
		if hi == lo {
			return 0.5
		}
		return (x - lo) / (hi - lo)
	}

	el := v.s.Elevation * math.Pi / 180
	az := v.s.Azimuth * math.Pi / 180
	cw, ch := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	scale := vg.Length(math.Min(float64(cw)/1.9, float64(ch)/1.7))
	center := vg.Point{X: c.Min.X + cw*0.45, Y: c.Min.Y + ch*0.5}
	project := func(u, w, z float64) (vg.Point, float64) {
		px, py, pz := u-0.5, w-0.5, (z-0.5)*0.8
		sx := -px*math.Sin(az) + py*math.Cos(az)
		sy := -px*math.Sin(el)*math.Cos(az) - py*math.Sin(el)*math.Sin(az) + pz*math.Cos(el)
		depth := px*math.Cos(el)*math.Cos(az) + py*math.Cos(el)*math.Sin(az) + pz*math.Sin(el)
		return vg.Point{X: center.X + vg.Length(sx)*scale, Y: center.Y + vg.Length(sy)*scale}, depth
	}

	axis := draw.LineStyle{Color: Gray(0.4), Width: vg.Points(0.6)}
	corners := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	floor := make([]vg.Point, len(corners))
	for i, k := range corners {
		floor[i], _ = project(k[0], k[1], 0)
	}
	c.StrokeLines(axis, floor)
	zBottom, _ := project(1, 0, 0)
	zTop, _ := project(1, 0, 1)
	c.StrokeLine2(axis, zBottom.X, zBottom.Y, zTop.X, zTop.Y)

	rows := strideIndices(len(s.Y), surfaceCells)
	cols := strideIndices(len(s.X), surfaceCells)
	quads := make([]quad, 0, (len(rows)-1)*(len(cols)-1))
	for a := 0; a+1 < len(rows); a++ {
		for b := 0; b+1 < len(cols); b++ {
			idx := [4][2]int{{rows[a], cols[b]}, {rows[a], cols[b+1]}, {rows[a+1], cols[b+1]}, {rows[a+1], cols[b]}}
			q := quad{pts: make([]vg.Point, 4)}
			for k, ij := range idx {
				zn := norm(s.Z[ij[0]][ij[1]], zlo, zhi)
				pt, d := project(norm(s.X[ij[1]], xlo, xhi), norm(s.Y[ij[0]], ylo, yhi), zn)
				q.pts[k] = pt
				q.depth += d / 4
				q.level += zn / 4
			}
			quads = append(quads, q)
		}
	}
	sort.Slice(quads, func(i, j int) bool { return quads[i].depth < quads[j].depth })

	mesh := draw.LineStyle{Color: Gray(0.15), Width: vg.Points(0.2)}
	for _, q := range quads {
		c.FillPolygon(Gray(shade(q.level)), q.pts)
		c.StrokeLines(mesh, append(q.pts, q.pts[0]))
	}

	sty := p.X.Label.TextStyle
	sty.Font.Size = vg.Points(v.theme.TickSize)
	sty.XAlign, sty.YAlign = text.XCenter, text.YCenter
	label := func(u, w, z float64, txt string) {
		pt, _ := project(u, w, z)
		c.FillText(sty, pt, txt)
	}
	label(0, 1.12, 0, tick(xlo))
	label(1, 1.12, 0, tick(xhi))
	label(1.12, 0, 0, tick(ylo))
	label(1.12, 1, 0, tick(yhi))
	label(1, -0.1, 0, tick(zlo))
	label(1, -0.1, 1, tick(zhi))

	sty.Font.Size = vg.Points(v.theme.FontSize)
	label(0.5, 1.3, 0, s.XLabel)
	label(1.3, 0.5, 0, s.YLabel)
	label(1, -0.28, 0.5, s.ZLabel)

	v.colorbar(c, sty, zlo, zhi)
}

// colorbar draws the gray scale key at the right edge.
func (v *surfaceView) colorbar(c draw.Canvas, sty text.Style, lo, hi float64) {
	const steps = 24
	cw, ch := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	x0 := c.Max.X - cw*0.07
	x1 := x0 + cw*0.025
	y0 := c.Min.Y + ch*0.2
	dy := ch * 0.6 / steps
	for i := 0; i < steps; i++ {
		y := y0 + vg.Length(i)*dy
		c.FillPolygon(Gray(shade((float64(i)+0.5)/steps)), []vg.Point{
			{X: x0, Y: y}, {X: x1, Y: y}, {X: x1, Y: y + dy}, {X: x0, Y: y + dy},
		})
	}
	sty.Font.Size = vg.Points(v.theme.TickSize)
	sty.XAlign = text.XLeft
	c.FillText(sty, vg.Point{X: x1 + vg.Points(3), Y: y0}, tick(lo))
	c.FillText(sty, vg.Point{X: x1 + vg.Points(3), Y: y0 + dy*steps}, tick(hi))
	sty.XAlign = text.XCenter
	c.FillText(sty, vg.Point{X: (x0 + x1) / 2, Y: y0 + dy*steps + vg.Points(12)}, v.s.ZLabel)
}

// shade maps a normalized height to a gray level, dark at the bottom.
func shade(z float64) float64 {
	return 0.2 + 0.75*math.Max(0, math.Min(1, z))
}

// strideIndices picks at most cells+1 evenly spaced indices of n, always
// including both ends.
func strideIndices(n, cells int) []int {
	step := (n - 1 + cells - 1) / cells
	if step < 1 {
		step = 1
	}
	var idx []int
	for i := 0; i < n-1; i += step {
		idx = append(idx, i)
	}
	return append(idx, n-1)
}

func span(xs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if finite(x) {
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
	}
	return lo, hi
}

func tick(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
