package parser_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathviz/mathviz/parser"
	"github.com/mathviz/mathviz/symbolic"
)

func evalAt(t *testing.T, text string, x float64) float64 {
	t.Helper()
	e, err := parser.Parse(text, "x")
	require.NoError(t, err, "parse %q", text)
	v, ok := symbolic.EvalAt(e, map[string]float64{"x": x})
	require.True(t, ok, "eval %q at %g", text, x)
	return v
}

func TestParseArithmetic(t *testing.T) {
	cases := []struct {
		text string
		x    float64
		want float64
	}{
		{"2 + 3*4", 0, 14},
		{"(2 + 3)*4", 0, 20},
		{"x**2 - 4*x + 3", 2, -1},
		{"x^2 - 4*x + 3", 2, -1},
		{"-x**2", 3, -9},
		{"2^-3", 0, 0.125},
		{"2**3**2", 0, 512}, // right-associative
		{"1/2*x", 4, 2},
		{"7/2", 0, 3.5},
		{"1.5e2", 0, 150},
		{"3e-1", 0, 0.3},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, evalAt(t, c.text, c.x), 1e-12, "%q", c.text)
	}
}

func TestParseFunctionsAndConstants(t *testing.T) {
	assert.InDelta(t, 1, evalAt(t, "sin(pi/2)", 0), 1e-12)
	assert.InDelta(t, 1, evalAt(t, "ln(e)", 0), 1e-12)
	assert.InDelta(t, 2, evalAt(t, "sqrt(4)", 0), 1e-12)
	assert.InDelta(t, math.Log(5), evalAt(t, "log(5)", 0), 1e-12)
	assert.InDelta(t, 3, evalAt(t, "abs(-3)", 0), 1e-12)
	assert.InDelta(t, math.Exp(2), evalAt(t, "exp(x)", 2), 1e-9)
}

func TestParseExactRationals(t *testing.T) {
	e, err := parser.Parse("0.1 + 0.2")
	require.NoError(t, err)
	v, ok := e.Eval()
	require.True(t, ok)
	// Decimal literals are exact rationals, not binary floats.
	assert.Equal(t, "3/10", v.String())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		text string
		msg  string
	}{
		{"", "empty expression"},
		{"   ", "empty expression"},
		{"x +* 2", "unexpected"},
		{"(x + 1", "unbalanced parentheses"},
		{"x + ", "unexpected end"},
		{"2..5", "unexpected"},
		{"frob(x)", "unknown function"},
		{"y + 1", "unknown identifier"},
		{"sin", "needs an argument"},
		{"sin(x", "expected ')'"},
		{"x $ 2", "unexpected character"},
	}
	for _, c := range cases {
		_, err := parser.Parse(c.text, "x")
		require.Error(t, err, "%q", c.text)
		var perr *parser.Error
		require.ErrorAs(t, err, &perr, "%q", c.text)
		assert.Contains(t, perr.Msg, c.msg, "%q", c.text)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.Parse("x + frob(x)", "x")
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Pos)
}

func TestParseUndeclaredVariable(t *testing.T) {
	// The same identifier is fine once declared.
	_, err := parser.Parse("t**2", "x")
	require.Error(t, err)
	_, err = parser.Parse("t**2", "t")
	require.NoError(t, err)
}

func TestParseBound(t *testing.T) {
	v, err := parser.ParseBound("2*pi")
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi, v, 1e-12)

	v, err = parser.ParseBound("-1.5")
	require.NoError(t, err)
	assert.InDelta(t, -1.5, v, 1e-12)

	_, err = parser.ParseBound("x + 1")
	require.Error(t, err)
}
