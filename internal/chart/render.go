package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// DefaultDPI is the raster resolution used when none is configured.
const DefaultDPI = 300

// Formats written for every figure, in order.
var DefaultFormats = []string{"png", "pdf"}

// SupportedFormats lists every format Render can write.
var SupportedFormats = []string{"png", "pdf", "svg"}

// CheckFormats reports the first format Render cannot write.
func CheckFormats(formats []string) error {
	if len(formats) == 0 {
		return fmt.Errorf("%w: none given", ErrFormat)
	}
	for _, f := range formats {
		if !slices.Contains(SupportedFormats, f) {
			return fmt.Errorf("%w: %q", ErrFormat, f)
		}
	}
	return nil
}

// Renderer writes figures to an output directory.
type Renderer struct {
	Theme   Theme
	OutDir  string
	DPI     int
	Formats []string
	Log     logrus.FieldLogger
}

// NewRenderer returns a renderer writing PNG and PDF into outDir.
func NewRenderer(theme Theme, outDir string, dpi int, log logrus.FieldLogger) *Renderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Renderer{
		Theme:   theme,
		OutDir:  outDir,
		DPI:     dpi,
		Formats: DefaultFormats,
		Log:     log,
	}
}

// Output lists the files written for one figure.
type Output struct {
	Name  string
	Dir   string
	Files []string
}

// String formats the output as dir/name.[png, pdf].
func (o Output) String() string {
	exts := make([]string, len(o.Files))
	for i, f := range o.Files {
		exts[i] = strings.TrimPrefix(filepath.Ext(f), ".")
	}
	return fmt.Sprintf("%s.[%s]", filepath.Join(o.Dir, o.Name), strings.Join(exts, ", "))
}

// Render writes fig once per configured format.
func (r *Renderer) Render(fig *Figure) (Output, error) {
	out := Output{Name: fig.Name, Dir: r.OutDir}
	if err := fig.Validate(); err != nil {
		return out, fmt.Errorf("%s: %w", fig.Name, err)
	}
	if err := CheckFormats(r.Formats); err != nil {
		return out, err
	}
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return out, fmt.Errorf("creating output directory: %w", err)
	}

	plots, err := r.plots(fig)
	if err != nil {
		return out, fmt.Errorf("%s: %w", fig.Name, err)
	}

	w := vg.Length(fig.Width) * vg.Inch
	h := vg.Length(fig.Height) * vg.Inch
	for _, format := range r.Formats {
		path := filepath.Join(r.OutDir, fig.Name+"."+format)
		if err := r.write(path, format, plots, w, h); err != nil {
			return out, fmt.Errorf("writing %s: %w", path, err)
		}
		out.Files = append(out.Files, path)
	}

	r.Log.WithFields(logrus.Fields{
		"figure": fig.Name,
		"panels": len(fig.Panels),
		"theme":  r.Theme.Name,
		"dpi":    r.DPI,
	}).Debug("figure rendered")
	return out, nil
}

func (r *Renderer) write(path, format string, plots [][]*plot.Plot, w, h vg.Length) (err error) {
	var c vg.CanvasWriterTo
	switch format {
	case "png":
		c = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.DPI))}
	case "pdf":
		pdf := vgpdf.New(w, h)
		pdf.EmbedFonts(true)
		c = pdf
	case "svg":
		c = vgsvg.New(w, h)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}

	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 3,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i, p := range plots[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = c.WriteTo(f)
	return err
}

func (r *Renderer) plots(fig *Figure) ([][]*plot.Plot, error) {
	cellWidth := vg.Length(fig.Width) * vg.Inch / vg.Length(fig.Cols)
	grid := make([][]*plot.Plot, fig.Rows)
	for j := 0; j < fig.Rows; j++ {
		grid[j] = make([]*plot.Plot, fig.Cols)
		for i := 0; i < fig.Cols; i++ {
			pn := fig.Panels[j*fig.Cols+i]
			if pn == nil {
				continue
			}
			p, err := r.build(pn, cellWidth)
			if err != nil {
				return nil, err
			}
			grid[j][i] = p
		}
	}
	return grid, nil
}

// panelBuild carries per-panel state while elements are added.
type panelBuild struct {
	r    *Renderer
	pn   *Panel
	p    *plot.Plot
	slot vg.Length
	bars map[*Bars]*plotter.BarChart
}

func (r *Renderer) build(pn *Panel, cellWidth vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pn.Title
	p.X.Label.Text = pn.XLabel
	p.Y.Label.Text = pn.YLabel
	r.applyTheme(p)

	b := &panelBuild{r: r, pn: pn, p: p, bars: make(map[*Bars]*plotter.BarChart)}
	b.slot = cellWidth * 0.75 / vg.Length(max(1, categoryCount(pn)))

	surface := false
	for _, e := range pn.Elements {
		if _, ok := e.(*Surface); ok {
			surface = true
		}
	}
	if surface {
		p.HideAxes()
	} else if r.Theme.Grid {
		g := plotter.NewGrid()
		ls := draw.LineStyle{
			Color:  Gray(r.Theme.GridGray),
			Width:  vg.Points(r.Theme.GridWidth),
			Dashes: r.Theme.GridDash.pattern(),
		}
		g.Horizontal = ls
		g.Vertical = ls
		if pn.GridYOnly || len(pn.Categories) > 0 {
			g.Vertical.Color = nil
		}
		p.Add(g)
	}

	for _, e := range pn.Elements {
		if err := b.add(e); err != nil {
			return nil, err
		}
	}

	if len(pn.Categories) > 0 {
		p.NominalX(pn.Categories...)
		if longest(pn.Categories) > 10 {
			p.X.Tick.Label.Rotation = math.Pi / 12
			p.X.Tick.Label.XAlign = text.XRight
			p.X.Tick.Label.YAlign = text.YCenter
		}
	}
	applyLimits(&p.X, pn.X)
	applyLimits(&p.Y, pn.Y)
	placeLegend(&p.Legend, pn.Legend)
	return p, nil
}

func (r *Renderer) applyTheme(p *plot.Plot) {
	th := r.Theme
	sans(&p.Title.TextStyle, th.TitleSize)
	p.Title.Padding = vg.Points(8)
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		sans(&ax.Label.TextStyle, th.FontSize)
		sans(&ax.Tick.Label, th.TickSize)
		ax.LineStyle.Width = vg.Points(th.AxisWidth)
		ax.Tick.LineStyle.Width = vg.Points(th.AxisWidth * 0.8)
	}
	sans(&p.Legend.TextStyle, th.LegendSize)
}

func sans(s *text.Style, size float64) {
	s.Font.Variant = "Sans"
	s.Font.Size = vg.Points(size)
}

func (b *panelBuild) add(e Element) error {
	p := b.p
	switch e := e.(type) {
	case *Line:
		l, err := plotter.NewLine(finiteXYs(e.X, e.Y))
		if err != nil {
			return err
		}
		l.LineStyle = e.Style.lineStyle()
		p.Add(l)
		thumbs := []plot.Thumbnailer{l}
		if len(e.Marks) > 0 && e.Style.Marker != NoMarker {
			var pts plotter.XYs
			for _, i := range e.Marks {
				if i >= 0 && i < len(e.X) && finite(e.X[i], e.Y[i]) {
					pts = append(pts, plotter.XY{X: e.X[i], Y: e.Y[i]})
				}
			}
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			sc.GlyphStyle = e.Style.glyphStyle()
			p.Add(sc)
			thumbs = append(thumbs, sc)
		}
		b.legend(e.Label, thumbs...)

	case *Band:
		n := len(e.X)
		pts := make(plotter.XYs, 0, 2*n)
		for i := 0; i < n; i++ {
			pts = append(pts, plotter.XY{X: e.X[i], Y: e.Upper[i]})
		}
		for i := n - 1; i >= 0; i-- {
			pts = append(pts, plotter.XY{X: e.X[i], Y: e.Lower[i]})
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return err
		}
		poly.Color = Gray(e.Fill)
		poly.LineStyle = draw.LineStyle{Color: Gray(e.Fill), Width: 0}
		if e.Edge {
			poly.LineStyle = draw.LineStyle{Color: Gray(0), Width: vg.Points(0.6)}
		}
		p.Add(poly)
		b.legend(e.Label, poly)

	case *Bars:
		return b.addBars(e)

	case *ErrorBars:
		pts := errPoints{XYs: make(plotter.XYs, len(e.X)), YErrors: make(plotter.YErrors, len(e.X))}
		for i := range e.X {
			pts.XYs[i] = plotter.XY{X: e.X[i], Y: e.Y[i]}
			pts.YErrors[i].Low = e.Low[i]
			pts.YErrors[i].High = e.High[i]
		}
		eb, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return err
		}
		eb.LineStyle = draw.LineStyle{Color: Gray(0), Width: vg.Points(1)}
		eb.CapWidth = vg.Points(6)
		p.Add(eb)

	case *Points:
		sc, err := plotter.NewScatter(finiteXYs(e.X, e.Y))
		if err != nil {
			return err
		}
		sc.GlyphStyle = e.Style.glyphStyle()
		p.Add(sc)
		b.legend(e.Label, sc)

	case *RefLine:
		rl := &refLine{at: e.At, vertical: e.Vertical, style: e.Style.lineStyle()}
		p.Add(rl)
		b.legend(e.Label, rl)

	case *Note:
		p.Add(&noteBox{note: *e, size: b.r.Theme.NoteSize})

	case *Annotations:
		return b.addAnnotations(e)

	case *Surface:
		p.Add(newSurfaceView(e, b.r.Theme))

	default:
		return fmt.Errorf("unsupported element %T", e)
	}
	return nil
}

type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

func (b *panelBuild) addBars(e *Bars) error {
	width := e.Width
	if width == 0 {
		width = 0.6
	}
	w := b.slot * vg.Length(width)
	offset := b.slot * vg.Length(e.Offset)
	edge := draw.LineStyle{Color: Gray(0), Width: vg.Points(0.8)}

	if e.Fills != nil {
		for i, v := range e.Values {
			bc, err := plotter.NewBarChart(plotter.Values{v}, w)
			if err != nil {
				return err
			}
			bc.XMin = float64(i)
			bc.Offset = offset
			bc.Color = Gray(e.Fills[i])
			bc.LineStyle = edge
			b.p.Add(bc)
		}
		return nil
	}

	bc, err := plotter.NewBarChart(plotter.Values(e.Values), w)
	if err != nil {
		return err
	}
	bc.Offset = offset
	bc.Color = Gray(e.Fill)
	bc.LineStyle = edge
	if e.On != nil {
		base, ok := b.bars[e.On]
		if !ok {
			return fmt.Errorf("stacked bars %q added before their base", e.Label)
		}
		bc.StackOn(base)
	}
	b.bars[e] = bc
	b.p.Add(bc)
	b.legend(e.Label, bc)
	return nil
}

func (b *panelBuild) addAnnotations(e *Annotations) error {
	var above, below plotter.XYLabels
	for i := range e.X {
		pt := plotter.XY{X: e.X[i], Y: e.Y[i]}
		if i < len(e.Below) && e.Below[i] {
			below.XYs = append(below.XYs, pt)
			below.Labels = append(below.Labels, e.Text[i])
			continue
		}
		above.XYs = append(above.XYs, pt)
		above.Labels = append(above.Labels, e.Text[i])
	}

	for _, set := range []struct {
		data plotter.XYLabels
		dy   vg.Length
		y    text.YAlignment
	}{
		{above, vg.Points(3), text.YBottom},
		{below, -vg.Points(3), text.YTop},
	} {
		if len(set.data.XYs) == 0 {
			continue
		}
		l, err := plotter.NewLabels(set.data)
		if err != nil {
			return err
		}
		for i := range l.TextStyle {
			sans(&l.TextStyle[i], b.r.Theme.NoteSize-1)
			l.TextStyle[i].XAlign = text.XCenter
			l.TextStyle[i].YAlign = set.y
		}
		l.Offset = vg.Point{Y: set.dy}
		b.p.Add(l)
	}
	return nil
}

func (b *panelBuild) legend(label string, thumbs ...plot.Thumbnailer) {
	if label == "" || b.pn.Legend == LegendHidden {
		return
	}
	b.p.Legend.Add(label, thumbs...)
}

func placeLegend(l *plot.Legend, pos LegendPos) {
	l.Top = pos == LegendTopLeft || pos == LegendTopRight
	l.Left = pos == LegendTopLeft || pos == LegendBottomLeft
	inset := vg.Points(6)
	if l.Left {
		l.XOffs = inset
	} else {
		l.XOffs = -inset
	}
	if l.Top {
		l.YOffs = -inset
	} else {
		l.YOffs = inset
	}
	l.Padding = vg.Points(2)
}

func applyLimits(ax *plot.Axis, lim Limits) {
	if lim.FixMin {
		ax.Min = lim.Min
	}
	if lim.FixMax {
		ax.Max = lim.Max
	}
}

func categoryCount(pn *Panel) int {
	n := len(pn.Categories)
	for _, e := range pn.Elements {
		if b, ok := e.(*Bars); ok && len(b.Values) > n {
			n = len(b.Values)
		}
	}
	return n
}

func longest(ss []string) int {
	n := 0
	for _, s := range ss {
		n = max(n, len([]rune(s)))
	}
	return n
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// finiteXYs pairs x and y, dropping points gonum/plot cannot draw.
func finiteXYs(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if finite(x[i], y[i]) {
			pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
		}
	}
	return pts
}
