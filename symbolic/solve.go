package symbolic

import (
	"fmt"
	"math"
	"sort"
)

// SolveResult holds the solutions of an equation set to zero.
type SolveResult struct {
	Solutions []Expr
	ExactForm bool
	Error     string
}

// SolveLinear solves a*x + b = 0.
func SolveLinear(a, b Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	if aok && bok {
		if an.IsZero() {
			if bn.IsZero() {
				return SolveResult{Error: "identity (0 = 0): infinite solutions"}
			}
			return SolveResult{Error: "no solution (inconsistent)"}
		}
		return SolveResult{Solutions: []Expr{numMul(numNeg(bn), numRecip(an))}, ExactForm: true}
	}
	return SolveResult{Solutions: []Expr{MulOf(N(-1), b, PowOf(a, N(-1))).Simplify()}, ExactForm: false}
}

// SolveQuadratic solves a*x^2 + b*x + c = 0, preferring exact rational
// roots when the discriminant is a perfect square.
func SolveQuadratic(a, b, c Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	cn, cok := c.Eval()
	if !aok || !bok || !cok {
		return SolveResult{Error: "SolveQuadratic requires numeric coefficients"}
	}
	af := an.Float64()
	bf := bn.Float64()
	cf := cn.Float64()
	if af == 0 {
		return SolveLinear(b, c)
	}
	disc := bf*bf - 4*af*cf
	if disc < 0 {
		return SolveResult{Error: fmt.Sprintf("complex roots: %g ± %gi", -bf/(2*af), math.Sqrt(-disc)/(2*af))}
	}
	sq := math.Sqrt(disc)
	sqInt := int64(math.Round(sq))
	if float64(sqInt)*float64(sqInt) == disc {
		twoA := numMul(N(2), an)
		x1 := numDiv(numAdd(numNeg(bn), N(sqInt)), twoA)
		x2 := numDiv(numSub(numNeg(bn), N(sqInt)), twoA)
		return SolveResult{Solutions: []Expr{x1, x2}, ExactForm: true}
	}
	return SolveResult{Solutions: []Expr{NFloat((-bf + sq) / (2 * af)), NFloat((-bf - sq) / (2 * af))}, ExactForm: false}
}

// SolveCubic solves a*x^3 + b*x^2 + c*x + d = 0 with Cardano's method,
// returning the real roots.
func SolveCubic(a, b, c, d Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	cn, cok := c.Eval()
	dn, dok := d.Eval()
	if !aok || !bok || !cok || !dok {
		return SolveResult{Error: "SolveCubic requires numeric coefficients"}
	}
	af := an.Float64()
	bf := bn.Float64()
	cf := cn.Float64()
	df := dn.Float64()
	if af == 0 {
		return SolveQuadratic(b, c, d)
	}
	p := (3*af*cf - bf*bf) / (3 * af * af)
	q := (2*bf*bf*bf - 9*af*bf*cf + 27*af*af*df) / (27 * af * af * af)
	offset := bf / (3 * af)
	disc := -(4*p*p*p + 27*q*q)

	var roots []Expr
	switch {
	case disc > 0:
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		for k := 0; k < 3; k++ {
			roots = append(roots, NFloat(m*math.Cos(theta-2*math.Pi*float64(k)/3)-offset))
		}
	case disc == 0:
		if q == 0 {
			roots = []Expr{NFloat(-offset)}
		} else {
			roots = []Expr{NFloat(3*q/p - offset), NFloat(-3*q/(2*p) - offset)}
		}
	default:
		A := math.Cbrt(-q/2 + math.Sqrt(q*q/4+p*p*p/27))
		B := float64(0)
		if A != 0 {
			B = -p / (3 * A)
		}
		realRoot := A + B - offset
		realImag := math.Sqrt(3) / 2 * math.Abs(A-B)
		return SolveResult{
			Solutions: []Expr{NFloat(realRoot)},
			Error:     fmt.Sprintf("1 real root (%.6g); complex pair: real=%.6g, imag=±%.6g", realRoot, -A/2-B/2-offset, realImag),
		}
	}
	return SolveResult{Solutions: roots, ExactForm: false}
}

// SolveNewton finds real roots of expr = 0 inside [lo,hi] with a Newton
// sweep from evenly spaced starting points. Roots converging outside the
// bracket are discarded; duplicates within 100*tol collapse.
func SolveNewton(expr Expr, varName string, lo, hi, tol float64, maxIter int) SolveResult {
	if hi <= lo {
		return SolveResult{Error: "SolveNewton requires lo < hi"}
	}
	if tol <= 0 {
		tol = 1e-10
	}
	if maxIter <= 0 {
		maxIter = 100
	}
	deriv := Diff(expr, varName)
	f := func(x float64) float64 {
		v := expr.Sub(varName, NFloat(x)).Simplify()
		if n, ok := v.Eval(); ok {
			return n.Float64()
		}
		return math.NaN()
	}
	df := func(x float64) float64 {
		v := deriv.Sub(varName, NFloat(x)).Simplify()
		if n, ok := v.Eval(); ok {
			return n.Float64()
		}
		return math.NaN()
	}

	const seeds = 200
	span := hi - lo
	var roots []float64
	for i := 0; i <= seeds; i++ {
		x := lo + span*float64(i)/seeds
		for iter := 0; iter < maxIter; iter++ {
			fx := f(x)
			if math.IsNaN(fx) {
				break
			}
			if math.Abs(fx) < tol {
				if x < lo-tol || x > hi+tol {
					break
				}
				dup := false
				for _, r := range roots {
					if math.Abs(r-x) < tol*100 {
						dup = true
						break
					}
				}
				if !dup {
					roots = append(roots, x)
				}
				break
			}
			dfx := df(x)
			if math.IsNaN(dfx) || math.Abs(dfx) < 1e-15 {
				break
			}
			x -= fx / dfx
			if x < lo-span || x > hi+span {
				break
			}
		}
	}
	sort.Float64s(roots)
	solutions := make([]Expr, len(roots))
	for i, r := range roots {
		solutions[i] = NFloat(r)
	}
	return SolveResult{Solutions: solutions, ExactForm: false}
}
