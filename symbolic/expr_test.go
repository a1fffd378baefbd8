package symbolic_test

import (
	"math"
	"testing"

	"github.com/mathviz/mathviz/symbolic"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symbolic.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := symbolic.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	result := symbolic.N(5).Diff("x")
	if symbolic.String(result) != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", symbolic.String(result))
	}
}

func TestNum_ExactArithmetic(t *testing.T) {
	sum := symbolic.AddOf(symbolic.F(1, 10), symbolic.F(2, 10))
	if symbolic.String(sum) != "3/10" {
		t.Errorf("1/10 + 2/10 should be 3/10, got %s", symbolic.String(sum))
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_String(t *testing.T) {
	x := symbolic.S("x")
	if x.String() != "x" {
		t.Errorf("want x, got %s", x.String())
	}
}

func TestSym_Diff_Self(t *testing.T) {
	d := symbolic.Diff(symbolic.S("x"), "x")
	if symbolic.String(d) != "1" {
		t.Errorf("d/dx(x) should be 1, got %s", symbolic.String(d))
	}
}

func TestSym_Diff_Other(t *testing.T) {
	d := symbolic.Diff(symbolic.S("y"), "x")
	if symbolic.String(d) != "0" {
		t.Errorf("d/dx(y) should be 0, got %s", symbolic.String(d))
	}
}

func TestSym_Sub(t *testing.T) {
	e := symbolic.Sub(symbolic.S("x"), "x", symbolic.N(3))
	if symbolic.String(e) != "3" {
		t.Errorf("x[x:=3] should be 3, got %s", symbolic.String(e))
	}
}

// ============================================================
// Constant tests
// ============================================================

func TestConstant_Pi(t *testing.T) {
	pi := symbolic.Pi()
	if pi.String() != "pi" {
		t.Errorf("want pi, got %s", pi.String())
	}
	v, ok := pi.Eval()
	if !ok || math.Abs(v.Float64()-math.Pi) > 1e-12 {
		t.Errorf("pi should evaluate to %g", math.Pi)
	}
}

func TestConstant_E_Diff(t *testing.T) {
	d := symbolic.Diff(symbolic.E(), "x")
	if symbolic.String(d) != "0" {
		t.Errorf("d/dx(e) should be 0, got %s", symbolic.String(d))
	}
}

func TestConstant_SurvivesSimplify(t *testing.T) {
	e := symbolic.MulOf(symbolic.N(2), symbolic.Pi())
	if symbolic.String(e) != "2*pi" {
		t.Errorf("2*pi should stay symbolic, got %s", symbolic.String(e))
	}
}

// ============================================================
// Add / Mul / Pow simplification
// ============================================================

func TestAdd_Identity(t *testing.T) {
	e := symbolic.AddOf(symbolic.S("x"), symbolic.N(0))
	if symbolic.String(e) != "x" {
		t.Errorf("x + 0 should be x, got %s", symbolic.String(e))
	}
}

func TestAdd_LikeTerms(t *testing.T) {
	e := symbolic.AddOf(symbolic.S("x"), symbolic.S("x"))
	if symbolic.String(e) != "2*x" {
		t.Errorf("x + x should be 2*x, got %s", symbolic.String(e))
	}
}

func TestMul_Zero(t *testing.T) {
	e := symbolic.MulOf(symbolic.S("x"), symbolic.N(0))
	if symbolic.String(e) != "0" {
		t.Errorf("x * 0 should be 0, got %s", symbolic.String(e))
	}
}

func TestMul_CoefficientFold(t *testing.T) {
	e := symbolic.MulOf(symbolic.N(2), symbolic.S("x"), symbolic.N(3))
	if symbolic.String(e) != "6*x" {
		t.Errorf("2*x*3 should be 6*x, got %s", symbolic.String(e))
	}
}

func TestPow_ZeroExp(t *testing.T) {
	e := symbolic.PowOf(symbolic.S("x"), symbolic.N(0))
	if symbolic.String(e) != "1" {
		t.Errorf("x^0 should be 1, got %s", symbolic.String(e))
	}
}

func TestPow_OneExp(t *testing.T) {
	e := symbolic.PowOf(symbolic.S("x"), symbolic.N(1))
	if symbolic.String(e) != "x" {
		t.Errorf("x^1 should be x, got %s", symbolic.String(e))
	}
}

func TestPow_IntegerFold(t *testing.T) {
	e := symbolic.PowOf(symbolic.N(2), symbolic.N(10))
	if symbolic.String(e) != "1024" {
		t.Errorf("2^10 should be 1024, got %s", symbolic.String(e))
	}
}

func TestPow_Nested(t *testing.T) {
	e := symbolic.PowOf(symbolic.PowOf(symbolic.S("x"), symbolic.N(2)), symbolic.N(3))
	if symbolic.String(e) != "x^6" {
		t.Errorf("(x^2)^3 should be x^6, got %s", symbolic.String(e))
	}
}

func TestPow_String_ParenthesizedExponent(t *testing.T) {
	e := symbolic.PowOf(symbolic.S("x"), symbolic.AddOf(symbolic.S("y"), symbolic.N(1)))
	if symbolic.String(e) != "x^(y + 1)" {
		t.Errorf("want x^(y + 1), got %s", symbolic.String(e))
	}
}

// ============================================================
// LaTeX
// ============================================================

func TestLaTeX_Pow(t *testing.T) {
	e := symbolic.PowOf(symbolic.S("x"), symbolic.N(2))
	if symbolic.LaTeX(e) != "x^{2}" {
		t.Errorf("want x^{2}, got %s", symbolic.LaTeX(e))
	}
}

func TestLaTeX_Pi(t *testing.T) {
	if symbolic.LaTeX(symbolic.Pi()) != `\pi` {
		t.Errorf("want \\pi, got %s", symbolic.LaTeX(symbolic.Pi()))
	}
}
