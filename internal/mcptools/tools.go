// Package mcptools exposes the analyzer over the Model Context
// Protocol. Each tool is a small struct pairing its schema with its
// handler; Serve wires them into a stdio server.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mathviz/mathviz/analysis"
	"github.com/mathviz/mathviz/parser"
	"github.com/mathviz/mathviz/symbolic"
)

// AnalyzeTool runs the full analysis over a domain.
type AnalyzeTool struct{}

func (AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("mv_analyze",
		mcp.WithDescription("Analyze an expression: derivative, integral, Taylor series, critical and inflection points over a domain."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression text, e.g. 'x**2 - 4*x + 3'")),
		mcp.WithString("variable", mcp.Description("Independent variable (default x)")),
		mcp.WithNumber("xmin", mcp.Description("Domain lower bound (default -10)")),
		mcp.WithNumber("xmax", mcp.Description("Domain upper bound (default 10)")),
		mcp.WithNumber("order", mcp.Description("Taylor order (default 6)")),
	)
}

func (AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exprText, err := req.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	varName := req.GetString("variable", "x")
	dom := analysis.Domain{
		Min: req.GetFloat("xmin", -10),
		Max: req.GetFloat("xmax", 10),
	}
	cfg := analysis.DefaultConfig()
	cfg.TaylorOrder = req.GetInt("order", cfg.TaylorOrder)

	res, err := analysis.Analyze(exprText, varName, dom, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "f(%s) = %s\n", varName, res.Expr)
	fmt.Fprintf(&b, "f'(%s) = %s\n", varName, res.Derivative)
	fmt.Fprintf(&b, "f''(%s) = %s\n", varName, res.Second)
	if res.IntegralOK {
		fmt.Fprintf(&b, "integral = %s + C\n", res.Integral)
	} else {
		b.WriteString("integral: no closed form found\n")
	}
	fmt.Fprintf(&b, "taylor = %s\n", res.Taylor)
	for _, cp := range res.CriticalPoints {
		fmt.Fprintf(&b, "critical point at %s = %.6g: %s\n", varName, cp.X, cp.Class)
	}
	for _, ip := range res.InflectionPoints {
		fmt.Fprintf(&b, "inflection point at %s = %.6g\n", varName, ip.X)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// DiffTool differentiates an expression, optionally repeatedly.
type DiffTool struct{}

func (DiffTool) Definition() mcp.Tool {
	return mcp.NewTool("mv_diff",
		mcp.WithDescription("Differentiate an expression with respect to a variable."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression text")),
		mcp.WithString("variable", mcp.Description("Variable to differentiate by (default x)")),
		mcp.WithNumber("order", mcp.Description("Derivative order (default 1)")),
	)
}

func (DiffTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, varName, errRes := parseExprArg(req)
	if errRes != nil {
		return errRes, nil
	}
	order := req.GetInt("order", 1)
	if order < 1 {
		return mcp.NewToolResultError("order must be at least 1"), nil
	}
	d := symbolic.DeepSimplify(symbolic.DiffN(e, varName, order))
	return mcp.NewToolResultText(d.String()), nil
}

// IntegrateTool computes an indefinite integral when a rule applies.
type IntegrateTool struct{}

func (IntegrateTool) Definition() mcp.Tool {
	return mcp.NewTool("mv_integrate",
		mcp.WithDescription("Integrate an expression symbolically. Reports when no closed form is found."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression text")),
		mcp.WithString("variable", mcp.Description("Integration variable (default x)")),
	)
}

func (IntegrateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, varName, errRes := parseExprArg(req)
	if errRes != nil {
		return errRes, nil
	}
	integral, ok := symbolic.Integrate(e, varName)
	if !ok {
		return mcp.NewToolResultText("no closed form found"), nil
	}
	return mcp.NewToolResultText(integral.String() + " + C"), nil
}

// TaylorTool expands an expression around a point.
type TaylorTool struct{}

func (TaylorTool) Definition() mcp.Tool {
	return mcp.NewTool("mv_taylor",
		mcp.WithDescription("Taylor expansion of an expression around a point."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression text")),
		mcp.WithString("variable", mcp.Description("Expansion variable (default x)")),
		mcp.WithNumber("about", mcp.Description("Expansion point (default 0)")),
		mcp.WithNumber("order", mcp.Description("Number of series terms (default 6)")),
	)
}

func (TaylorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, varName, errRes := parseExprArg(req)
	if errRes != nil {
		return errRes, nil
	}
	about := req.GetFloat("about", 0)
	order := req.GetInt("order", 6)
	if order < 1 {
		return mcp.NewToolResultError("order must be at least 1"), nil
	}
	series := symbolic.TaylorSeries(e, varName, symbolic.NFloat(about), order-1)
	return mcp.NewToolResultText(series.String()), nil
}

// CriticalPointsTool finds and classifies critical points.
type CriticalPointsTool struct{}

func (CriticalPointsTool) Definition() mcp.Tool {
	return mcp.NewTool("mv_critical_points",
		mcp.WithDescription("Find critical points of an expression inside a domain and classify them by the second-derivative test."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression text")),
		mcp.WithString("variable", mcp.Description("Independent variable (default x)")),
		mcp.WithNumber("xmin", mcp.Description("Domain lower bound (default -10)")),
		mcp.WithNumber("xmax", mcp.Description("Domain upper bound (default 10)")),
	)
}

func (CriticalPointsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exprText, err := req.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	varName := req.GetString("variable", "x")
	dom := analysis.Domain{
		Min: req.GetFloat("xmin", -10),
		Max: req.GetFloat("xmax", 10),
	}
	res, err := analysis.Analyze(exprText, varName, dom, analysis.DefaultConfig())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(res.CriticalPoints) == 0 {
		return mcp.NewToolResultText("no critical points in the domain"), nil
	}
	var b strings.Builder
	for _, cp := range res.CriticalPoints {
		fmt.Fprintf(&b, "%s = %.6g: %s\n", varName, cp.X, cp.Class)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// LaTeXTool renders an expression as LaTeX.
type LaTeXTool struct{}

func (LaTeXTool) Definition() mcp.Tool {
	return mcp.NewTool("mv_latex",
		mcp.WithDescription("Render an expression as LaTeX."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression text")),
		mcp.WithString("variable", mcp.Description("Free variable (default x)")),
	)
}

func (LaTeXTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, _, errRes := parseExprArg(req)
	if errRes != nil {
		return errRes, nil
	}
	return mcp.NewToolResultText(e.LaTeX()), nil
}

// parseExprArg reads the shared expression/variable arguments.
func parseExprArg(req mcp.CallToolRequest) (symbolic.Expr, string, *mcp.CallToolResult) {
	exprText, err := req.RequireString("expression")
	if err != nil {
		return nil, "", mcp.NewToolResultError(err.Error())
	}
	varName := req.GetString("variable", "x")
	e, err := parser.Parse(exprText, varName)
	if err != nil {
		return nil, "", mcp.NewToolResultError(err.Error())
	}
	return e, varName, nil
}

// NewServer builds the MCP server with every tool registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer("mathviz", version,
		server.WithToolCapabilities(false),
	)
	for _, t := range []interface {
		Definition() mcp.Tool
		Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		AnalyzeTool{},
		DiffTool{},
		IntegrateTool{},
		TaylorTool{},
		CriticalPointsTool{},
		LaTeXTool{},
	} {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(version string) error {
	return server.ServeStdio(NewServer(version))
}
