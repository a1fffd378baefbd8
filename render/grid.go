package render

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/mathviz/mathviz/symbolic"
)

// fieldGrid samples a scalar field over a rectangle and implements
// plotter.GridXYZ for heat maps and contours.
type fieldGrid struct {
	xs, ys []float64
	zs     []float64 // row-major, len(xs)*len(ys)
}

func newFieldGrid(f func(x, y float64) float64, xmin, xmax, ymin, ymax float64, n int) *fieldGrid {
	g := &fieldGrid{
		xs: make([]float64, n),
		ys: make([]float64, n),
		zs: make([]float64, n*n),
	}
	floats.Span(g.xs, xmin, xmax)
	floats.Span(g.ys, ymin, ymax)
	for j, y := range g.ys {
		for i, x := range g.xs {
			g.zs[j*n+i] = f(x, y)
		}
	}
	return g
}

func (g *fieldGrid) Dims() (int, int) { return len(g.xs), len(g.ys) }
func (g *fieldGrid) X(c int) float64  { return g.xs[c] }
func (g *fieldGrid) Y(r int) float64  { return g.ys[r] }
func (g *fieldGrid) Z(c, r int) float64 {
	z := g.zs[r*len(g.xs)+c]
	if math.IsInf(z, 0) {
		return math.NaN()
	}
	return z
}

func (g *fieldGrid) finite() bool {
	for _, z := range g.zs {
		if !math.IsNaN(z) && !math.IsInf(z, 0) {
			return true
		}
	}
	return false
}

// Surface renders f(x, y) as a heat map.
func Surface(e symbolic.Expr, xvar, yvar string, xmin, xmax, ymin, ymax float64, o Options) (*plot.Plot, error) {
	if xmax <= xmin || ymax <= ymin {
		return nil, fmt.Errorf("render: empty surface range")
	}
	g := newFieldGrid(func(x, y float64) float64 {
		v, ok := symbolic.EvalAt(e, map[string]float64{xvar: x, yvar: y})
		if !ok {
			return math.NaN()
		}
		return v
	}, xmin, xmax, ymin, ymax, o.samples(150))
	if !g.finite() {
		return nil, fmt.Errorf("render: %s has no finite values over the region", e)
	}
	p := newPlot(o)
	pal := moreland.SmoothBlueRed().Palette(255)
	p.Add(plotter.NewHeatMap(g, pal))
	return p, nil
}

// Implicit renders the zero set of f(x, y) as a single contour line.
func Implicit(e symbolic.Expr, xvar, yvar string, xmin, xmax, ymin, ymax float64, o Options) (*plot.Plot, error) {
	if xmax <= xmin || ymax <= ymin {
		return nil, fmt.Errorf("render: empty implicit range")
	}
	g := newFieldGrid(func(x, y float64) float64 {
		v, ok := symbolic.EvalAt(e, map[string]float64{xvar: x, yvar: y})
		if !ok {
			return math.NaN()
		}
		return v
	}, xmin, xmax, ymin, ymax, o.samples(150))
	if !g.finite() {
		return nil, fmt.Errorf("render: %s has no finite values over the region", e)
	}
	p := newPlot(o)
	pal := moreland.BlackBody().Palette(1)
	p.Add(plotter.NewContour(g, []float64{0}, pal))
	return p, nil
}

// ComplexMode selects what a complex domain plot colors by.
type ComplexMode int

const (
	// ComplexMagnitude colors by |f(z)|.
	ComplexMagnitude ComplexMode = iota
	// ComplexPhase colors by arg(f(z)) in (-pi, pi].
	ComplexPhase
)

func (m ComplexMode) String() string {
	if m == ComplexPhase {
		return "phase"
	}
	return "magnitude"
}

// Complex renders f over a rectangle of the complex plane, the real
// axis horizontal and the imaginary axis vertical.
func Complex(e symbolic.Expr, varName string, remin, remax, immin, immax float64, mode ComplexMode, o Options) (*plot.Plot, error) {
	if remax <= remin || immax <= immin {
		return nil, fmt.Errorf("render: empty complex range")
	}
	g := newFieldGrid(func(re, im float64) float64 {
		w, ok := symbolic.EvalComplex(e, varName, complex(re, im))
		if !ok {
			return math.NaN()
		}
		switch mode {
		case ComplexPhase:
			return math.Atan2(imag(w), real(w))
		default:
			return math.Hypot(real(w), imag(w))
		}
	}, remin, remax, immin, immax, o.samples(150))
	if !g.finite() {
		return nil, fmt.Errorf("render: %s has no finite values over the region", e)
	}
	p := newPlot(o)
	var pal = moreland.SmoothBlueRed().Palette(255)
	if mode == ComplexPhase {
		pal = moreland.Kindlmann().Palette(255)
	}
	p.Add(plotter.NewHeatMap(g, pal))
	return p, nil
}
