package symbolic

// Diff returns the simplified derivative of expr with respect to varName.
func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

// Diff2 returns the second derivative.
func Diff2(expr Expr, varName string) Expr {
	return Diff(Diff(expr, varName), varName)
}

// DiffN returns the nth derivative.
func DiffN(expr Expr, varName string, n int) Expr {
	result := expr
	for i := 0; i < n; i++ {
		result = Diff(result, varName)
	}
	return result
}

// Integrate returns the indefinite integral of expr with respect to
// varName, omitting the constant of integration. Integration is
// rule-based; the second result is false when no rule matches, which
// callers treat as "no closed form found" rather than an error.
func Integrate(expr Expr, varName string) (Expr, bool) {
	expr = expr.Simplify()
	if !DependsOn(expr, varName) {
		// Constant with respect to varName, including named constants.
		return MulOf(expr, S(varName)).Simplify(), true
	}
	switch v := expr.(type) {
	case *Sym:
		if v.name == varName {
			return MulOf(F(1, 2), PowOf(S(varName), N(2))), true
		}
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 {
				if n.IsNegOne() {
					return LnOf(AbsOf(S(varName))), true
				}
				newExp := numAdd(n, N(1))
				return MulOf(numRecip(newExp), PowOf(S(varName), newExp)), true
			}
		}
		if sym, ok := v.exp.(*Sym); ok && sym.name == varName {
			if _, ok2 := v.base.(*Num); ok2 {
				return MulOf(PowOf(v.base, S(varName)), PowOf(LnOf(v.base), N(-1))), true
			}
		}
		return nil, false
	case *Mul:
		var scale Expr = N(1)
		rest := []Expr{}
		for _, f := range v.factors {
			if !DependsOn(f, varName) {
				scale = MulOf(scale, f)
			} else {
				rest = append(rest, f)
			}
		}
		if len(rest) == len(v.factors) {
			return nil, false
		}
		var inner Expr
		if len(rest) == 1 {
			inner = rest[0]
		} else {
			inner = &Mul{factors: rest}
		}
		intInner, ok := Integrate(inner, varName)
		if !ok {
			return nil, false
		}
		return MulOf(scale, intInner).Simplify(), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			intT, ok := Integrate(t, varName)
			if !ok {
				return nil, false
			}
			terms[i] = intT
		}
		return AddOf(terms...).Simplify(), true
	case *Func:
		return integrateFunc(v, varName)
	}
	return nil, false
}

// integrateFunc handles f(x) and f(a*x) for the table functions.
func integrateFunc(v *Func, varName string) (Expr, bool) {
	// Linear inner argument a*x yields a 1/a scale.
	linearScale := func() (*Num, bool) {
		if sym, ok := v.arg.(*Sym); ok && sym.name == varName {
			return N(1), true
		}
		if m, ok := v.arg.(*Mul); ok && len(m.factors) == 2 {
			if coeff, ok2 := m.factors[0].(*Num); ok2 && !coeff.IsZero() {
				if sym, ok3 := m.factors[1].(*Sym); ok3 && sym.name == varName {
					return numRecip(coeff), true
				}
			}
		}
		return nil, false
	}

	switch v.name {
	case "sin":
		if scale, ok := linearScale(); ok {
			return MulOf(N(-1), scale, CosOf(v.arg)).Simplify(), true
		}
	case "cos":
		if scale, ok := linearScale(); ok {
			return MulOf(scale, SinOf(v.arg)).Simplify(), true
		}
	case "exp":
		if scale, ok := linearScale(); ok {
			return MulOf(scale, ExpOf(v.arg)).Simplify(), true
		}
	case "sinh":
		if scale, ok := linearScale(); ok {
			return MulOf(scale, CoshOf(v.arg)).Simplify(), true
		}
	case "cosh":
		if scale, ok := linearScale(); ok {
			return MulOf(scale, SinhOf(v.arg)).Simplify(), true
		}
	case "ln":
		if sym, ok := v.arg.(*Sym); ok && sym.name == varName {
			return AddOf(MulOf(S(varName), LnOf(S(varName))), MulOf(N(-1), S(varName))), true
		}
	case "asin":
		if sym, ok := v.arg.(*Sym); ok && sym.name == varName {
			return AddOf(
				MulOf(S(varName), AsinOf(S(varName))),
				SqrtOf(AddOf(N(1), MulOf(N(-1), PowOf(S(varName), N(2))))),
			), true
		}
	case "atan":
		if sym, ok := v.arg.(*Sym); ok && sym.name == varName {
			return AddOf(
				MulOf(S(varName), AtanOf(S(varName))),
				MulOf(N(-1), F(1, 2), LnOf(AddOf(N(1), PowOf(S(varName), N(2))))),
			), true
		}
	}
	return nil, false
}

// DefiniteIntegrate approximates the definite integral over [a,b] with a
// 10-point Gauss-Legendre rule.
func DefiniteIntegrate(expr Expr, varName string, a, b float64) float64 {
	nodes := []float64{
		-0.9739065285, -0.8650633667, -0.6794095683,
		-0.4333953941, -0.1488743390, 0.1488743390,
		0.4333953941, 0.6794095683, 0.8650633667, 0.9739065285,
	}
	weights := []float64{
		0.0666713443, 0.1494513492, 0.2190863625,
		0.2692667193, 0.2955242247, 0.2955242247,
		0.2692667193, 0.2190863625, 0.1494513492, 0.0666713443,
	}
	sum := 0.0
	mid := (a + b) / 2
	half := (b - a) / 2
	for i, t := range nodes {
		xi := mid + half*t
		subbed := expr.Sub(varName, NFloat(xi))
		if v, ok := subbed.Eval(); ok {
			sum += weights[i] * v.Float64()
		}
	}
	return half * sum
}

// TaylorSeries expands expr around the point a, keeping terms through
// (x-a)^order. The remainder term is dropped.
func TaylorSeries(expr Expr, varName string, a Expr, order int) Expr {
	terms := []Expr{}
	current := expr
	factorial := N(1)
	for k := 0; k <= order; k++ {
		if k > 0 {
			factorial = numMul(factorial, N(int64(k)))
		}
		coeff := MulOf(current.Sub(varName, a), PowOf(factorial, N(-1))).Simplify()
		if n, ok := coeff.(*Num); ok && n.IsZero() {
			current = Diff(current, varName)
			continue
		}
		var xTerm Expr
		switch k {
		case 0:
			xTerm = coeff
		case 1:
			xTerm = MulOf(coeff, AddOf(S(varName), MulOf(N(-1), a)))
		default:
			xTerm = MulOf(coeff, PowOf(AddOf(S(varName), MulOf(N(-1), a)), N(int64(k))))
		}
		terms = append(terms, xTerm)
		current = Diff(current, varName)
	}
	return AddOf(terms...).Simplify()
}

// MaclaurinSeries is the Taylor series around 0.
func MaclaurinSeries(expr Expr, varName string, order int) Expr {
	return TaylorSeries(expr, varName, N(0), order)
}
