// Package analysis performs symbolic analysis of single-variable
// expressions: derivative, indefinite integral, Taylor expansion, and
// classified critical and inflection points over a caller-supplied
// domain.
//
// Analyze is a pure function of its inputs. Every knob that the
// underlying engine would otherwise take from ambient state lives in
// Config, so concurrent calls never interact.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/mathviz/mathviz/parser"
	"github.com/mathviz/mathviz/symbolic"
)

// Domain is the closed interval the analysis is restricted to.
type Domain struct {
	Min float64
	Max float64
}

// Validate fails when a bound is non-finite or the interval is inverted
// or empty.
func (d Domain) Validate() error {
	if math.IsNaN(d.Min) || math.IsInf(d.Min, 0) || math.IsNaN(d.Max) || math.IsInf(d.Max, 0) {
		return &DomainError{Min: d.Min, Max: d.Max, Reason: "bounds must be finite"}
	}
	if d.Min >= d.Max {
		return &DomainError{Min: d.Min, Max: d.Max, Reason: "min must be less than max"}
	}
	return nil
}

// Contains reports whether x lies in the domain, with a small tolerance
// so roots found at the boundary are kept.
func (d Domain) Contains(x float64) bool {
	const edge = 1e-9
	return x >= d.Min-edge && x <= d.Max+edge
}

// DomainError reports invalid domain bounds. It is returned before any
// symbolic work is attempted.
type DomainError struct {
	Min, Max float64
	Reason   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid domain [%g, %g]: %s", e.Min, e.Max, e.Reason)
}

// Config carries the engine settings for one Analyze call.
type Config struct {
	// TaylorOrder is the number of series terms kept: the expansion
	// runs through degree TaylorOrder-1.
	TaylorOrder int
	// About is the expansion point of the Taylor series.
	About float64
	// NewtonTol is the residual tolerance of the root sweep.
	NewtonTol float64
	// NewtonMaxIter bounds the iterations per Newton start point.
	NewtonMaxIter int
	// ClassifyTol is the band around zero inside which a second or
	// third derivative value counts as zero.
	ClassifyTol float64
	// FilterInflection restricts inflection points to the domain, the
	// same filter critical points always get. Off reproduces the
	// unfiltered behavior some callers historically relied on; note
	// that only closed-form roots can then appear outside the domain,
	// since the Newton sweep never leaves its [Min, Max] bracket.
	FilterInflection bool
}

// DefaultConfig returns the documented defaults: six-term Maclaurin
// expansion and domain-filtered inflection points.
func DefaultConfig() Config {
	return Config{
		TaylorOrder:      6,
		About:            0,
		NewtonTol:        1e-10,
		NewtonMaxIter:    100,
		ClassifyTol:      1e-9,
		FilterInflection: true,
	}
}

// Classification labels a critical point by the second-derivative test.
type Classification string

const (
	LocalMin Classification = "local minimum"
	LocalMax Classification = "local maximum"
	// Undetermined marks a vanishing second derivative. No
	// higher-order test is attempted.
	Undetermined Classification = "undetermined"
)

// CriticalPoint is a root of f' with its classification.
type CriticalPoint struct {
	X     float64
	Exact symbolic.Expr // non-nil when the solver produced a closed form
	Class Classification
}

// InflectionPoint is a root of f'' where f'' changes sign.
type InflectionPoint struct {
	X     float64
	Exact symbolic.Expr
}

// Result is the immutable outcome of one Analyze call.
type Result struct {
	Var        string
	Expr       symbolic.Expr
	Derivative symbolic.Expr
	Second     symbolic.Expr
	// Integral is nil when no closed form was found; IntegralOK
	// distinguishes that partial failure from a zero integral.
	Integral   symbolic.Expr
	IntegralOK bool
	Taylor     symbolic.Expr

	CriticalPoints   []CriticalPoint
	InflectionPoints []InflectionPoint
}

// Analyze parses exprText over the named variable and computes the full
// analysis over the domain. It fails with *parser.Error for malformed
// text and *DomainError for bad bounds; an integral with no closed form
// and solver misses are not errors.
func Analyze(exprText, varName string, dom Domain, cfg Config) (*Result, error) {
	if err := dom.Validate(); err != nil {
		return nil, err
	}
	expr, err := parser.Parse(exprText, varName)
	if err != nil {
		return nil, err
	}

	d1 := symbolic.DeepSimplify(symbolic.Diff(expr, varName))
	d2 := symbolic.DeepSimplify(symbolic.Diff(d1, varName))
	d3 := symbolic.Diff(d2, varName)

	res := &Result{
		Var:        varName,
		Expr:       expr,
		Derivative: d1,
		Second:     d2,
		Taylor:     symbolic.TaylorSeries(expr, varName, symbolic.NFloat(cfg.About), cfg.TaylorOrder-1),
	}
	if integral, ok := symbolic.Integrate(expr, varName); ok {
		res.Integral = integral
		res.IntegralOK = true
	}

	res.CriticalPoints = criticalPoints(d1, d2, varName, dom, cfg)
	res.InflectionPoints = inflectionPoints(d2, d3, varName, dom, cfg)
	return res, nil
}

// root is a real solution of some derivative = 0.
type root struct {
	x     float64
	exact symbolic.Expr
}

// realRoots solves expr = 0 for varName. Polynomials dispatch by degree
// to the exact solvers; everything else falls to a Newton sweep over the
// domain. A solver miss yields an empty slice, never an error.
func realRoots(expr symbolic.Expr, varName string, dom Domain, cfg Config) []root {
	expr = expr.Simplify()
	if _, ok := expr.(*symbolic.Num); ok {
		// Identically constant: no isolated roots either way.
		return nil
	}

	var sr symbolic.SolveResult
	exact := false
	if coeffs, poly := numericPolyCoeffs(expr, varName); poly {
		c := func(d int) symbolic.Expr {
			if e, ok := coeffs[d]; ok {
				return e
			}
			return symbolic.N(0)
		}
		deg := maxDegree(coeffs)
		switch deg {
		case 0:
			return nil
		case 1:
			sr = symbolic.SolveLinear(c(1), c(0))
			exact = true
		case 2:
			sr = symbolic.SolveQuadratic(c(2), c(1), c(0))
			exact = sr.ExactForm
		case 3:
			sr = symbolic.SolveCubic(c(3), c(2), c(1), c(0))
		default:
			sr = symbolic.SolveNewton(expr, varName, dom.Min, dom.Max, cfg.NewtonTol, cfg.NewtonMaxIter)
		}
	} else {
		sr = symbolic.SolveNewton(expr, varName, dom.Min, dom.Max, cfg.NewtonTol, cfg.NewtonMaxIter)
	}

	var out []root
	for _, sol := range sr.Solutions {
		v, ok := sol.Eval()
		if !ok {
			// Symbolic solution that does not evaluate to a real
			// number; discard, matching the complex-root policy.
			continue
		}
		r := root{x: v.Float64()}
		if exact {
			r.exact = sol
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].x < out[j].x })
	// A zero discriminant reports its repeated root twice.
	dedup := out[:0]
	for i, r := range out {
		if i > 0 && math.Abs(r.x-dedup[len(dedup)-1].x) < 1e-12 {
			continue
		}
		dedup = append(dedup, r)
	}
	return dedup
}

// numericPolyCoeffs reports whether expr is a polynomial in varName with
// numeric coefficients, returning them by degree. Negative degrees
// (reciprocal powers like x^-2) disqualify the expression, so its roots
// go through the Newton sweep instead of the exact solvers.
func numericPolyCoeffs(expr symbolic.Expr, varName string) (symbolic.PolyCoeffsResult, bool) {
	coeffs := symbolic.PolyCoeffs(expr, varName)
	for d, c := range coeffs {
		if d < 0 {
			return nil, false
		}
		if symbolic.DependsOn(c, varName) {
			return nil, false
		}
		if _, ok := c.Eval(); !ok {
			return nil, false
		}
	}
	return coeffs, true
}

func maxDegree(coeffs symbolic.PolyCoeffsResult) int {
	deg := 0
	for d, c := range coeffs {
		if n, ok := c.(*symbolic.Num); ok && n.IsZero() {
			continue
		}
		if d > deg {
			deg = d
		}
	}
	return deg
}

func criticalPoints(d1, d2 symbolic.Expr, varName string, dom Domain, cfg Config) []CriticalPoint {
	var out []CriticalPoint
	for _, r := range realRoots(d1, varName, dom, cfg) {
		if !dom.Contains(r.x) {
			continue
		}
		cp := CriticalPoint{X: r.x, Exact: r.exact, Class: Undetermined}
		if v, ok := evalDerivAt(d2, varName, r); ok {
			switch {
			case v > cfg.ClassifyTol:
				cp.Class = LocalMin
			case v < -cfg.ClassifyTol:
				cp.Class = LocalMax
			}
		}
		out = append(out, cp)
	}
	return out
}

func inflectionPoints(d2, d3 symbolic.Expr, varName string, dom Domain, cfg Config) []InflectionPoint {
	var out []InflectionPoint
	for _, r := range realRoots(d2, varName, dom, cfg) {
		if cfg.FilterInflection && !dom.Contains(r.x) {
			continue
		}
		// The third derivative must be nonzero for f'' to change sign.
		if v, ok := evalDerivAt(d3, varName, r); !ok || math.Abs(v) <= cfg.ClassifyTol {
			continue
		}
		out = append(out, InflectionPoint{X: r.x, Exact: r.exact})
	}
	return out
}

// evalDerivAt evaluates a derivative at a root, preferring the exact
// location when the solver produced one.
func evalDerivAt(d symbolic.Expr, varName string, r root) (float64, bool) {
	at := r.exact
	if at == nil {
		at = symbolic.NFloat(r.x)
	}
	v, ok := symbolic.Sub(d, varName, at).Eval()
	if !ok {
		return 0, false
	}
	return v.Float64(), true
}
