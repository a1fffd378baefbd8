// Package symbolic is a deterministic symbolic math kernel.
//
// Expressions are immutable trees of exact rational numbers, variables,
// named constants, sums, products, powers, and known function
// applications. Simplification is rule-based and deterministic: the same
// input always produces the same printed form.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// Expr is a symbolic expression node.
type Expr interface {
	// Simplify returns a rule-simplified copy of the expression.
	Simplify() Expr
	// String returns the canonical text form.
	String() string
	// LaTeX returns the LaTeX form.
	LaTeX() string
	// Sub substitutes value for every occurrence of the named variable.
	Sub(varName string, value Expr) Expr
	// Diff returns the derivative with respect to the named variable.
	Diff(varName string) Expr
	// Eval reduces the expression to a number, reporting whether it could.
	Eval() (*Num, bool)
	// Equal reports structural equality.
	Equal(other Expr) bool
}

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func NFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

// NRat wraps an existing rational. The value is copied.
func NRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(new(big.Rat).SetInt64(1)) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(new(big.Rat).SetInt64(-1)) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

func gcdInt(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ============================================================
// Sym — symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr    { return s }
func (s *Sym) String() string    { return s.name }
func (s *Sym) LaTeX() string     { return s.name }
func (s *Sym) Eval() (*Num, bool) { return nil, false }
func (s *Sym) Name() string      { return s.name }

func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }

func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Constant — named mathematical constant (pi, e)
// ============================================================

// Constant is a named constant. It prints symbolically but evaluates
// numerically, so pi survives simplification yet samples as 3.14159...
type Constant struct {
	name   string
	approx float64
}

// Pi is the circle constant π.
func Pi() *Constant { return &Constant{name: "pi", approx: math.Pi} }

// E is Euler's number.
func E() *Constant { return &Constant{name: "e", approx: math.E} }

func (c *Constant) Simplify() Expr        { return c }
func (c *Constant) String() string        { return c.name }
func (c *Constant) Sub(string, Expr) Expr { return c }
func (c *Constant) Diff(string) Expr      { return N(0) }
func (c *Constant) Eval() (*Num, bool)    { return NFloat(c.approx), true }
func (c *Constant) Name() string          { return c.name }
func (c *Constant) Float64() float64      { return c.approx }

func (c *Constant) LaTeX() string {
	if c.name == "pi" {
		return "\\pi"
	}
	return c.name
}

func (c *Constant) Equal(other Expr) bool {
	o, ok := other.(*Constant)
	return ok && c.name == o.name
}
