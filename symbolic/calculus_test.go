package symbolic_test

import (
	"math"
	"testing"

	"github.com/mathviz/mathviz/symbolic"
)

var x = symbolic.S("x")

// ============================================================
// Differentiation
// ============================================================

func TestDiff_PowerRule(t *testing.T) {
	d := symbolic.Diff(symbolic.PowOf(x, symbolic.N(3)), "x")
	if symbolic.String(d) != "3*x^2" {
		t.Errorf("d/dx(x^3) should be 3*x^2, got %s", symbolic.String(d))
	}
}

func TestDiff_Sin(t *testing.T) {
	d := symbolic.Diff(symbolic.SinOf(x), "x")
	if symbolic.String(d) != "cos(x)" {
		t.Errorf("d/dx(sin(x)) should be cos(x), got %s", symbolic.String(d))
	}
}

func TestDiff_ChainRule(t *testing.T) {
	// d/dx exp(2x) = 2*exp(2x)
	d := symbolic.Diff(symbolic.ExpOf(symbolic.MulOf(symbolic.N(2), x)), "x")
	if symbolic.String(d) != "2*exp(2*x)" {
		t.Errorf("want 2*exp(2*x), got %s", symbolic.String(d))
	}
}

func TestDiff_ProductRule(t *testing.T) {
	// d/dx (x*sin(x)) = sin(x) + x*cos(x); check numerically.
	d := symbolic.Diff(symbolic.MulOf(x, symbolic.SinOf(x)), "x")
	for _, xv := range []float64{-1, 0.5, 2} {
		got, ok := symbolic.EvalAt(d, map[string]float64{"x": xv})
		if !ok {
			t.Fatalf("eval failed at %g", xv)
		}
		want := math.Sin(xv) + xv*math.Cos(xv)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("at %g: want %g, got %g", xv, want, got)
		}
	}
}

func TestDiff_GeneralPower(t *testing.T) {
	// d/dx x^x = x^x (ln x + 1); check numerically.
	d := symbolic.Diff(symbolic.PowOf(x, x), "x")
	for _, xv := range []float64{0.5, 1, 3} {
		got, ok := symbolic.EvalAt(d, map[string]float64{"x": xv})
		if !ok {
			t.Fatalf("eval failed at %g", xv)
		}
		want := math.Pow(xv, xv) * (math.Log(xv) + 1)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("at %g: want %g, got %g", xv, want, got)
		}
	}
}

func TestDiffN(t *testing.T) {
	d := symbolic.DiffN(symbolic.PowOf(x, symbolic.N(4)), "x", 3)
	if symbolic.String(d) != "24*x" {
		t.Errorf("third derivative of x^4 should be 24*x, got %s", symbolic.String(d))
	}
}

// ============================================================
// Integration
// ============================================================

func TestIntegrate_Sym(t *testing.T) {
	result, ok := symbolic.Integrate(x, "x")
	if !ok || symbolic.String(result) != "1/2*x^2" {
		t.Errorf("∫x dx should be 1/2*x^2, got %s", symbolic.String(result))
	}
}

func TestIntegrate_PowerRule(t *testing.T) {
	result, ok := symbolic.Integrate(symbolic.MulOf(symbolic.N(3), symbolic.PowOf(x, symbolic.N(2))), "x")
	if !ok || symbolic.String(result) != "x^3" {
		t.Errorf("∫3x^2 dx should be x^3, got %s", symbolic.String(result))
	}
}

func TestIntegrate_Reciprocal(t *testing.T) {
	result, ok := symbolic.Integrate(symbolic.PowOf(x, symbolic.N(-1)), "x")
	if !ok || symbolic.String(result) != "ln(abs(x))" {
		t.Errorf("∫1/x dx should be ln(abs(x)), got %s", symbolic.String(result))
	}
}

func TestIntegrate_Cos(t *testing.T) {
	result, ok := symbolic.Integrate(symbolic.CosOf(x), "x")
	if !ok || symbolic.String(result) != "sin(x)" {
		t.Errorf("∫cos(x) dx should be sin(x), got %s", symbolic.String(result))
	}
}

func TestIntegrate_LinearArgument(t *testing.T) {
	arg := symbolic.MulOf(symbolic.N(3), x)
	result, ok := symbolic.Integrate(symbolic.SinOf(arg), "x")
	if !ok || symbolic.String(result) != "-1/3*cos(3*x)" {
		t.Errorf("∫sin(3x) dx should be -1/3*cos(3*x), got %s", symbolic.String(result))
	}
}

func TestIntegrate_NamedConstant(t *testing.T) {
	result, ok := symbolic.Integrate(symbolic.Pi(), "x")
	if !ok || symbolic.String(result) != "pi*x" {
		t.Errorf("∫pi dx should be pi*x, got %s", symbolic.String(result))
	}
}

func TestIntegrate_OtherVariableIsConstant(t *testing.T) {
	result, ok := symbolic.Integrate(symbolic.S("a"), "x")
	if !ok || symbolic.String(result) != "a*x" {
		t.Errorf("∫a dx should be a*x, got %s", symbolic.String(result))
	}
}

func TestIntegrate_NoRule(t *testing.T) {
	// sin(x)*exp(-x^2) has no closed form under the rule set.
	e := symbolic.MulOf(
		symbolic.SinOf(x),
		symbolic.ExpOf(symbolic.MulOf(symbolic.N(-1), symbolic.PowOf(x, symbolic.N(2)))),
	)
	if _, ok := symbolic.Integrate(e, "x"); ok {
		t.Error("expected no closed form for sin(x)*exp(-x^2)")
	}
}

func TestIntegrate_RoundTrip(t *testing.T) {
	// d/dx(∫f dx) must equal f pointwise.
	exprs := []symbolic.Expr{
		symbolic.AddOf(symbolic.PowOf(x, symbolic.N(2)), symbolic.MulOf(symbolic.N(-4), x), symbolic.N(3)),
		symbolic.CosOf(x),
		symbolic.ExpOf(symbolic.MulOf(symbolic.N(2), x)),
	}
	for _, e := range exprs {
		integral, ok := symbolic.Integrate(e, "x")
		if !ok {
			t.Fatalf("no closed form for %s", symbolic.String(e))
		}
		back := symbolic.Diff(integral, "x")
		for _, xv := range []float64{-1, 0.3, 2} {
			want, ok1 := symbolic.EvalAt(e, map[string]float64{"x": xv})
			got, ok2 := symbolic.EvalAt(back, map[string]float64{"x": xv})
			if !ok1 || !ok2 {
				t.Fatalf("eval failed for %s at %g", symbolic.String(e), xv)
			}
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("%s at %g: want %g, got %g", symbolic.String(e), xv, want, got)
			}
		}
	}
}

func TestIntegrate_MatchesQuadrature(t *testing.T) {
	// F(b) - F(a) agrees with the numeric rule.
	e := symbolic.CosOf(x)
	integral, ok := symbolic.Integrate(e, "x")
	if !ok {
		t.Fatal("no closed form for cos(x)")
	}
	a, b := 0.25, 1.75
	fa, ok1 := symbolic.EvalAt(integral, map[string]float64{"x": a})
	fb, ok2 := symbolic.EvalAt(integral, map[string]float64{"x": b})
	if !ok1 || !ok2 {
		t.Fatal("eval failed")
	}
	numeric := symbolic.DefiniteIntegrate(e, "x", a, b)
	if math.Abs((fb-fa)-numeric) > 1e-8 {
		t.Errorf("want %g, got %g", numeric, fb-fa)
	}
}

func TestDefiniteIntegrate(t *testing.T) {
	// ∫₀^π sin(x) dx = 2
	got := symbolic.DefiniteIntegrate(symbolic.SinOf(x), "x", 0, math.Pi)
	if math.Abs(got-2) > 1e-6 {
		t.Errorf("want 2, got %g", got)
	}
}

// ============================================================
// Taylor series
// ============================================================

func TestMaclaurinSeries_Sin(t *testing.T) {
	series := symbolic.MaclaurinSeries(symbolic.SinOf(x), "x", 5)
	if symbolic.String(series) != "x + -1/6*x^3 + 1/120*x^5" {
		t.Errorf("got %s", symbolic.String(series))
	}
}

func TestMaclaurinSeries_Exp(t *testing.T) {
	series := symbolic.MaclaurinSeries(symbolic.ExpOf(x), "x", 3)
	for _, xv := range []float64{-0.5, 0, 0.5} {
		got, ok := symbolic.EvalAt(series, map[string]float64{"x": xv})
		if !ok {
			t.Fatalf("eval failed at %g", xv)
		}
		want := 1 + xv + xv*xv/2 + xv*xv*xv/6
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("at %g: want %g, got %g", xv, want, got)
		}
	}
}

func TestTaylorSeries_AboutPoint(t *testing.T) {
	// ln(x) around 1: (x-1) - (x-1)^2/2 + ...
	series := symbolic.TaylorSeries(symbolic.LnOf(x), "x", symbolic.N(1), 3)
	got, ok := symbolic.EvalAt(series, map[string]float64{"x": 1.1})
	if !ok {
		t.Fatal("eval failed")
	}
	if math.Abs(got-math.Log(1.1)) > 1e-4 {
		t.Errorf("want %g, got %g", math.Log(1.1), got)
	}
}
