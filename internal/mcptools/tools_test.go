package mcptools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	require.NotEmpty(t, r.Content)
	tc, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", r.Content[0])
	return tc.Text
}

func TestDiffTool(t *testing.T) {
	res, err := DiffTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "x**3",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "3*x^2", resultText(t, res))
}

func TestDiffTool_Order(t *testing.T) {
	res, err := DiffTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "x**3",
		"order":      float64(2),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "6*x", resultText(t, res))
}

func TestDiffTool_MissingExpression(t *testing.T) {
	res, err := DiffTool{}.Handle(context.Background(), makeReq(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDiffTool_ParseError(t *testing.T) {
	res, err := DiffTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "x +* 2",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestIntegrateTool(t *testing.T) {
	res, err := IntegrateTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "cos(x)",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "sin(x) + C", resultText(t, res))
}

func TestIntegrateTool_NoClosedForm(t *testing.T) {
	res, err := IntegrateTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "sin(x)*exp(-x**2)",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "no closed form found", resultText(t, res))
}

func TestTaylorTool(t *testing.T) {
	res, err := TaylorTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "exp(x)",
		"order":      float64(3),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	// Three terms: 1 + x + x^2/2, in the kernel's term order.
	assert.Equal(t, "x + 1/2*x^2 + 1", resultText(t, res))
}

func TestTaylorTool_TermCount(t *testing.T) {
	res, err := TaylorTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "exp(x)",
		"order":      float64(2),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	// Two terms stop at the linear one.
	assert.Equal(t, "x + 1", resultText(t, res))
}

func TestCriticalPointsTool(t *testing.T) {
	res, err := CriticalPointsTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "x**2 - 4*x + 3",
		"xmin":       float64(-1),
		"xmax":       float64(5),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "x = 2")
	assert.Contains(t, text, "local minimum")
}

func TestCriticalPointsTool_BadDomain(t *testing.T) {
	res, err := CriticalPointsTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "x**2",
		"xmin":       float64(3),
		"xmax":       float64(-3),
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAnalyzeTool(t *testing.T) {
	res, err := AnalyzeTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "sin(x)",
		"xmin":       float64(-6.28),
		"xmax":       float64(6.28),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "f'(x) = cos(x)")
	assert.Contains(t, text, "local maximum")
	assert.Contains(t, text, "inflection point")
}

func TestLaTeXTool(t *testing.T) {
	res, err := LaTeXTool{}.Handle(context.Background(), makeReq(map[string]interface{}{
		"expression": "x**2/2",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "x^{2}")
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer("test")
	require.NotNil(t, s)
}
