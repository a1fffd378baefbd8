package symbolic

import (
	"math"
	"math/cmplx"
)

// EvalAt evaluates e with the given variable bindings. The second result
// is false when an unbound symbol remains or a function is undefined at
// the point.
func EvalAt(e Expr, bindings map[string]float64) (float64, bool) {
	cur := e
	for name, v := range bindings {
		cur = cur.Sub(name, NFloat(v))
	}
	n, ok := cur.Simplify().Eval()
	if !ok {
		return 0, false
	}
	return n.Float64(), true
}

// EvalFunc compiles e into a single-variable numeric function. Points
// where evaluation fails yield NaN, which plotting treats as a gap.
func EvalFunc(e Expr, varName string) func(float64) float64 {
	return func(x float64) float64 {
		v, ok := EvalAt(e, map[string]float64{varName: x})
		if !ok {
			return math.NaN()
		}
		return v
	}
}

// EvalComplex evaluates e at a complex value of the named variable.
// Only the function table's analytic members are supported; abs maps to
// the complex modulus.
func EvalComplex(e Expr, varName string, z complex128) (complex128, bool) {
	switch v := e.(type) {
	case *Num:
		return complex(v.Float64(), 0), true
	case *Constant:
		return complex(v.approx, 0), true
	case *Sym:
		if v.name == varName {
			return z, true
		}
		return 0, false
	case *Add:
		var acc complex128
		for _, t := range v.terms {
			tv, ok := EvalComplex(t, varName, z)
			if !ok {
				return 0, false
			}
			acc += tv
		}
		return acc, true
	case *Mul:
		acc := complex(1, 0)
		for _, f := range v.factors {
			fv, ok := EvalComplex(f, varName, z)
			if !ok {
				return 0, false
			}
			acc *= fv
		}
		return acc, true
	case *Pow:
		b, ok1 := EvalComplex(v.base, varName, z)
		e2, ok2 := EvalComplex(v.exp, varName, z)
		if !ok1 || !ok2 {
			return 0, false
		}
		return cmplx.Pow(b, e2), true
	case *Func:
		arg, ok := EvalComplex(v.arg, varName, z)
		if !ok {
			return 0, false
		}
		switch v.name {
		case "sin":
			return cmplx.Sin(arg), true
		case "cos":
			return cmplx.Cos(arg), true
		case "tan":
			return cmplx.Tan(arg), true
		case "exp":
			return cmplx.Exp(arg), true
		case "ln":
			return cmplx.Log(arg), true
		case "sinh":
			return cmplx.Sinh(arg), true
		case "cosh":
			return cmplx.Cosh(arg), true
		case "tanh":
			return cmplx.Tanh(arg), true
		case "asin":
			return cmplx.Asin(arg), true
		case "acos":
			return cmplx.Acos(arg), true
		case "atan":
			return cmplx.Atan(arg), true
		case "abs":
			return complex(cmplx.Abs(arg), 0), true
		}
		return 0, false
	}
	return 0, false
}
