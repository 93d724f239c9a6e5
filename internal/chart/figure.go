package chart

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFigure = errors.New("chart: figure has no panels")
	ErrBadLayout   = errors.New("chart: panel count does not match layout")
	ErrSeriesShape = errors.New("chart: series lengths differ")
	ErrFormat      = errors.New("chart: unsupported output format")
)

// Figure is a grid of panels written under one base name.
type Figure struct {
	Name   string
	Width  float64 // inches
	Height float64 // inches
	Rows   int
	Cols   int
	Panels []*Panel // row-major; nil leaves a cell empty
}

// Single wraps one panel in a 1x1 figure.
func Single(name string, w, h float64, p *Panel) *Figure {
	return &Figure{Name: name, Width: w, Height: h, Rows: 1, Cols: 1, Panels: []*Panel{p}}
}

// Validate checks layout and series shapes before any file is created.
func (f *Figure) Validate() error {
	if len(f.Panels) == 0 {
		return ErrEmptyFigure
	}
	if f.Rows*f.Cols != len(f.Panels) {
		return fmt.Errorf("%w: %dx%d grid, %d panels", ErrBadLayout, f.Rows, f.Cols, len(f.Panels))
	}
	for i, p := range f.Panels {
		if p == nil {
			continue
		}
		for _, e := range p.Elements {
			if err := e.check(); err != nil {
				return fmt.Errorf("panel %d (%s): %w", i, p.Title, err)
			}
		}
	}
	return nil
}

// Series collects the data of every element in the figure, in panel order.
func (f *Figure) Series() []Series {
	var out []Series
	for _, p := range f.Panels {
		if p == nil {
			continue
		}
		for _, e := range p.Elements {
			for _, s := range e.series() {
				s.Panel = p.Title
				out = append(out, s)
			}
		}
	}
	return out
}

// Series is the raw data behind one plotted element.
type Series struct {
	Panel string
	Label string
	X     []float64
	Y     []float64
}

// LegendPos places a panel legend.
type LegendPos int

const (
	LegendTopLeft LegendPos = iota
	LegendTopRight
	LegendBottomLeft
	LegendBottomRight
	LegendHidden
)

// Limits optionally pins an axis end. Unset ends follow the data.
type Limits struct {
	Min, Max       float64
	FixMin, FixMax bool
}

// Range pins both ends.
func Range(lo, hi float64) Limits {
	return Limits{Min: lo, Max: hi, FixMin: true, FixMax: true}
}

// From pins only the lower end.
func From(lo float64) Limits {
	return Limits{Min: lo, FixMin: true}
}

// Panel is one set of axes.
type Panel struct {
	Title      string
	XLabel     string
	YLabel     string
	X, Y       Limits
	Categories []string // nominal x ticks at 0..n-1
	Legend     LegendPos
	GridYOnly  bool
	Elements   []Element
}

// Add appends elements and returns the panel for chaining.
func (p *Panel) Add(es ...Element) *Panel {
	p.Elements = append(p.Elements, es...)
	return p
}

// Element is anything a panel can draw.
type Element interface {
	check() error
	series() []Series
}

// Line is a curve, optionally marked at selected sample indices.
type Line struct {
	Label string
	X, Y  []float64
	Style SeriesStyle
	Marks []int
}

func (l *Line) check() error { return sameLen(len(l.X), len(l.Y)) }
func (l *Line) series() []Series {
	return []Series{{Label: l.Label, X: l.X, Y: l.Y}}
}

// Band fills the region between Lower and Upper over X.
type Band struct {
	Label        string
	X            []float64
	Lower, Upper []float64
	Fill         float64 // gray level
	Edge         bool
}

func (b *Band) check() error {
	if err := sameLen(len(b.X), len(b.Lower)); err != nil {
		return err
	}
	return sameLen(len(b.X), len(b.Upper))
}

func (b *Band) series() []Series {
	return []Series{
		{Label: b.Label + " (lower)", X: b.X, Y: b.Lower},
		{Label: b.Label + " (upper)", X: b.X, Y: b.Upper},
	}
}

// Bars draws one bar per category. With Fills set, each bar gets its own
// gray level; otherwise Fill applies to all. A non-nil On stacks this group
// on top of another group in the same panel.
type Bars struct {
	Label  string
	Values []float64
	Fill   float64
	Fills  []float64
	Offset float64 // fraction of a category slot, for side-by-side groups
	Width  float64 // fraction of a category slot; 0 means 0.6
	On     *Bars
}

func (b *Bars) check() error {
	if b.Fills != nil {
		return sameLen(len(b.Values), len(b.Fills))
	}
	return nil
}

func (b *Bars) series() []Series {
	x := make([]float64, len(b.Values))
	for i := range x {
		x[i] = float64(i) + b.Offset
	}
	return []Series{{Label: b.Label, X: x, Y: b.Values}}
}

// ErrorBars draws asymmetric vertical error bars. Low and High are distances
// below and above Y.
type ErrorBars struct {
	X, Y, Low, High []float64
}

func (e *ErrorBars) check() error {
	for _, n := range []int{len(e.Y), len(e.Low), len(e.High)} {
		if err := sameLen(len(e.X), n); err != nil {
			return err
		}
	}
	return nil
}

func (e *ErrorBars) series() []Series { return nil }

// Points is a scatter of hollow markers.
type Points struct {
	Label string
	X, Y  []float64
	Style SeriesStyle
}

func (p *Points) check() error { return sameLen(len(p.X), len(p.Y)) }
func (p *Points) series() []Series {
	return []Series{{Label: p.Label, X: p.X, Y: p.Y}}
}

// RefLine is a horizontal or vertical line spanning the panel.
type RefLine struct {
	Label    string
	Vertical bool
	At       float64
	Style    SeriesStyle
}

func (r *RefLine) check() error      { return nil }
func (r *RefLine) series() []Series { return nil }

// Note is a boxed text block anchored at axes-fraction coordinates.
type Note struct {
	Text  string
	X, Y  float64 // 0..1 within the data area
	Right bool    // anchor at the right edge of the box
	Top   bool    // anchor at the top edge of the box
	Plain bool    // no box
}

func (n *Note) check() error      { return nil }
func (n *Note) series() []Series { return nil }

// Annotations places short labels at data coordinates, centered horizontally.
// Labels flagged Below hang under their point.
type Annotations struct {
	X, Y  []float64
	Text  []string
	Below []bool
}

func (a *Annotations) check() error {
	if err := sameLen(len(a.X), len(a.Y)); err != nil {
		return err
	}
	return sameLen(len(a.X), len(a.Text))
}

func (a *Annotations) series() []Series { return nil }

// Surface is a two-variable function sampled on a grid, drawn as a shaded
// projected mesh. Z[i][j] is the value at (X[j], Y[i]).
type Surface struct {
	X, Y      []float64
	Z         [][]float64
	XLabel    string
	YLabel    string
	ZLabel    string
	Elevation float64 // degrees
	Azimuth   float64 // degrees
}

func (s *Surface) check() error {
	if err := sameLen(len(s.Y), len(s.Z)); err != nil {
		return err
	}
	for _, row := range s.Z {
		if err := sameLen(len(s.X), len(row)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Surface) series() []Series {
	out := make([]Series, len(s.Y))
	for i, y := range s.Y {
		out[i] = Series{Label: fmt.Sprintf("%s=%g", s.YLabel, y), X: s.X, Y: s.Z[i]}
	}
	return out
}

func sameLen(a, b int) error {
	if a != b {
		return fmt.Errorf("%w: %d vs %d", ErrSeriesShape, a, b)
	}
	return nil
}
