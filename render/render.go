// Package render draws expressions with gonum/plot. Each plot kind has
// its own constructor; Kind enumerates them for callers that dispatch
// on a request, and the set is closed on purpose so dispatchers can be
// exhaustive.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mathviz/mathviz/symbolic"
)

// Kind identifies a plot type.
type Kind int

const (
	KindLine Kind = iota
	KindMulti
	KindSurface
	KindImplicit
	KindParametric
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindMulti:
		return "multi"
	case KindSurface:
		return "surface"
	case KindImplicit:
		return "implicit"
	case KindParametric:
		return "parametric"
	case KindComplex:
		return "complex"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarkerStyle selects the glyph drawn for an annotated point.
type MarkerStyle int

const (
	// MarkCritical draws a red circle.
	MarkCritical MarkerStyle = iota
	// MarkInflection draws a green square.
	MarkInflection
)

// Marker is a point annotation overlaid on a line plot.
type Marker struct {
	X, Y  float64
	Style MarkerStyle
}

// Options carries the shared plot settings.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	// Points is the sample count per axis; defaults to 400 for curves
	// and 150 for grids when zero.
	Points int
}

func (o Options) samples(def int) int {
	if o.Points > 0 {
		return o.Points
	}
	return def
}

func newPlot(o Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	p.Add(plotter.NewGrid())
	return p
}

// sampleCurve evaluates f over [lo,hi] and splits the samples into
// finite runs, so poles and domain gaps break the line instead of
// drawing a spike through them.
func sampleCurve(f func(float64) float64, lo, hi float64, n int) []plotter.XYs {
	xs := make([]float64, n)
	floats.Span(xs, lo, hi)
	var segs []plotter.XYs
	var cur plotter.XYs
	for _, x := range xs {
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) > 1 {
				segs = append(segs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, plotter.XY{X: x, Y: y})
	}
	if len(cur) > 1 {
		segs = append(segs, cur)
	}
	return segs
}

func addCurve(p *plot.Plot, segs []plotter.XYs, c color.Color) error {
	for _, seg := range segs {
		ln, err := plotter.NewLine(seg)
		if err != nil {
			return err
		}
		ln.Color = c
		ln.Width = vg.Points(1.5)
		p.Add(ln)
	}
	return nil
}

// Line2D plots a single curve with optional point markers.
func Line2D(e symbolic.Expr, varName string, xmin, xmax float64, marks []Marker, o Options) (*plot.Plot, error) {
	if xmax <= xmin {
		return nil, fmt.Errorf("render: empty x range [%g, %g]", xmin, xmax)
	}
	p := newPlot(o)
	segs := sampleCurve(symbolic.EvalFunc(e, varName), xmin, xmax, o.samples(400))
	if len(segs) == 0 {
		return nil, fmt.Errorf("render: %s has no finite values on [%g, %g]", e, xmin, xmax)
	}
	if err := addCurve(p, segs, plotutil.Color(0)); err != nil {
		return nil, err
	}
	if err := addMarkers(p, marks); err != nil {
		return nil, err
	}
	return p, nil
}

func addMarkers(p *plot.Plot, marks []Marker) error {
	byStyle := map[MarkerStyle]plotter.XYs{}
	for _, m := range marks {
		byStyle[m.Style] = append(byStyle[m.Style], plotter.XY{X: m.X, Y: m.Y})
	}
	for style, pts := range byStyle {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Radius = vg.Points(4)
		switch style {
		case MarkCritical:
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			sc.GlyphStyle.Color = color.RGBA{R: 0xcc, A: 0xff}
		case MarkInflection:
			sc.GlyphStyle.Shape = draw.BoxGlyph{}
			sc.GlyphStyle.Color = color.RGBA{G: 0x99, A: 0xff}
		}
		p.Add(sc)
	}
	return nil
}

// Multi2D plots several curves over the same range, one legend entry
// each. labels must match exprs in length.
func Multi2D(exprs []symbolic.Expr, labels []string, varName string, xmin, xmax float64, o Options) (*plot.Plot, error) {
	if len(exprs) == 0 {
		return nil, fmt.Errorf("render: no expressions")
	}
	if len(labels) != len(exprs) {
		return nil, fmt.Errorf("render: %d labels for %d expressions", len(labels), len(exprs))
	}
	if xmax <= xmin {
		return nil, fmt.Errorf("render: empty x range [%g, %g]", xmin, xmax)
	}
	p := newPlot(o)
	n := o.samples(400)
	for i, e := range exprs {
		segs := sampleCurve(symbolic.EvalFunc(e, varName), xmin, xmax, n)
		c := plotutil.Color(i)
		if err := addCurve(p, segs, c); err != nil {
			return nil, err
		}
		if len(segs) > 0 {
			ln, err := plotter.NewLine(segs[0][:0:0])
			if err != nil {
				return nil, err
			}
			ln.Color = c
			p.Legend.Add(labels[i], ln)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// Parametric plots the curve (x(t), y(t)) for t in [tmin, tmax].
func Parametric(xe, ye symbolic.Expr, tvar string, tmin, tmax float64, o Options) (*plot.Plot, error) {
	if tmax <= tmin {
		return nil, fmt.Errorf("render: empty t range [%g, %g]", tmin, tmax)
	}
	p := newPlot(o)
	fx := symbolic.EvalFunc(xe, tvar)
	fy := symbolic.EvalFunc(ye, tvar)
	n := o.samples(400)
	ts := make([]float64, n)
	floats.Span(ts, tmin, tmax)
	var segs []plotter.XYs
	var cur plotter.XYs
	for _, t := range ts {
		x, y := fx(t), fy(t)
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) > 1 {
				segs = append(segs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, plotter.XY{X: x, Y: y})
	}
	if len(cur) > 1 {
		segs = append(segs, cur)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("render: parametric curve has no finite points on [%g, %g]", tmin, tmax)
	}
	if err := addCurve(p, segs, plotutil.Color(0)); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes the plot as a PNG sized 8x6 inches.
func Save(p *plot.Plot, path string) error {
	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
