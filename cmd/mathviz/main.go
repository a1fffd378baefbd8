// Command mathviz analyzes and plots math expressions.
//
//	mathviz analyze "x**2 - 4*x + 3" --xmin -1 --xmax 5
//	mathviz plot "sin(x); cos(x)" --xmin -2*pi --xmax 2*pi --save out.png
//	mathviz implicit "x**2 + y**2 - 4"
//	mathviz parametric "cos(t)" "sin(3*t)" --tmin 0 --tmax 2*pi
//	mathviz complex "1/(z**2 + 1)" --mode phase
//	mathviz mcp
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"github.com/mathviz/mathviz/analysis"
	"github.com/mathviz/mathviz/internal/mcptools"
	"github.com/mathviz/mathviz/parser"
	"github.com/mathviz/mathviz/render"
	"github.com/mathviz/mathviz/symbolic"
)

const version = "1.0.0"

type rangeFlags struct {
	xmin, xmax string
	ymin, ymax string
}

func (r *rangeFlags) register(cmd *cobra.Command, withY bool) {
	cmd.Flags().StringVar(&r.xmin, "xmin", "-10", "lower x bound (constant expression)")
	cmd.Flags().StringVar(&r.xmax, "xmax", "10", "upper x bound (constant expression)")
	if withY {
		cmd.Flags().StringVar(&r.ymin, "ymin", "-10", "lower y bound (constant expression)")
		cmd.Flags().StringVar(&r.ymax, "ymax", "10", "upper y bound (constant expression)")
	}
}

func (r *rangeFlags) x() (lo, hi float64, err error) {
	return parseRange(r.xmin, r.xmax)
}

func (r *rangeFlags) y() (lo, hi float64, err error) {
	return parseRange(r.ymin, r.ymax)
}

func parseRange(loText, hiText string) (float64, float64, error) {
	lo, err := parser.ParseBound(loText)
	if err != nil {
		return 0, 0, err
	}
	hi, err := parser.ParseBound(hiText)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("mathviz: ")

	root := &cobra.Command{
		Use:           "mathviz",
		Short:         "Symbolic analysis and plotting of math expressions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		analyzeCmd(),
		plotCmd(),
		implicitCmd(),
		parametricCmd(),
		complexCmd(),
		mcpCmd(),
	)
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func analyzeCmd() *cobra.Command {
	var (
		ranges   rangeFlags
		varName  string
		order    int
		about    string
		noFilter bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <expression>",
		Short: "Derivative, integral, Taylor series, critical and inflection points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := ranges.x()
			if err != nil {
				return err
			}
			cfg := analysis.DefaultConfig()
			cfg.TaylorOrder = order
			cfg.FilterInflection = !noFilter
			if cfg.About, err = parser.ParseBound(about); err != nil {
				return err
			}
			res, err := analysis.Analyze(args[0], varName, analysis.Domain{Min: lo, Max: hi}, cfg)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printResult(cmd, res)
			return nil
		},
	}
	ranges.register(cmd, false)
	cmd.Flags().StringVar(&varName, "var", "x", "independent variable")
	cmd.Flags().IntVar(&order, "order", 6, "taylor series terms")
	cmd.Flags().StringVar(&about, "about", "0", "taylor expansion point (constant expression)")
	cmd.Flags().BoolVar(&noFilter, "no-filter-inflection", false, "report inflection points outside the domain too")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")
	return cmd
}

func printResult(cmd *cobra.Command, res *analysis.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "f(%s)   = %s\n", res.Var, res.Expr)
	fmt.Fprintf(out, "f'(%s)  = %s\n", res.Var, res.Derivative)
	fmt.Fprintf(out, "f''(%s) = %s\n", res.Var, res.Second)
	if res.IntegralOK {
		fmt.Fprintf(out, "∫f d%s  = %s + C\n", res.Var, res.Integral)
	} else {
		fmt.Fprintln(out, "∫f      : no closed form found")
	}
	fmt.Fprintf(out, "taylor  = %s\n", res.Taylor)

	if len(res.CriticalPoints) == 0 {
		fmt.Fprintln(out, "critical points: none")
	} else {
		fmt.Fprintln(out, "critical points:")
		for _, cp := range res.CriticalPoints {
			if cp.Exact != nil {
				fmt.Fprintf(out, "  %s = %s (%.6g): %s\n", res.Var, cp.Exact, cp.X, cp.Class)
			} else {
				fmt.Fprintf(out, "  %s ≈ %.6g: %s\n", res.Var, cp.X, cp.Class)
			}
		}
	}
	if len(res.InflectionPoints) == 0 {
		fmt.Fprintln(out, "inflection points: none")
	} else {
		fmt.Fprintln(out, "inflection points:")
		for _, ip := range res.InflectionPoints {
			if ip.Exact != nil {
				fmt.Fprintf(out, "  %s = %s (%.6g)\n", res.Var, ip.Exact, ip.X)
			} else {
				fmt.Fprintf(out, "  %s ≈ %.6g\n", res.Var, ip.X)
			}
		}
	}
}

type jsonPoint struct {
	X     float64 `json:"x"`
	Exact string  `json:"exact,omitempty"`
	Class string  `json:"class,omitempty"`
}

type jsonResult struct {
	Var              string      `json:"var"`
	Expr             string      `json:"expr"`
	Derivative       string      `json:"derivative"`
	Second           string      `json:"second_derivative"`
	Integral         string      `json:"integral,omitempty"`
	IntegralOK       bool        `json:"integral_ok"`
	Taylor           string      `json:"taylor"`
	CriticalPoints   []jsonPoint `json:"critical_points"`
	InflectionPoints []jsonPoint `json:"inflection_points"`
}

func writeJSON(w io.Writer, res *analysis.Result) error {
	jr := jsonResult{
		Var:              res.Var,
		Expr:             res.Expr.String(),
		Derivative:       res.Derivative.String(),
		Second:           res.Second.String(),
		IntegralOK:       res.IntegralOK,
		Taylor:           res.Taylor.String(),
		CriticalPoints:   []jsonPoint{},
		InflectionPoints: []jsonPoint{},
	}
	if res.IntegralOK {
		jr.Integral = res.Integral.String()
	}
	for _, cp := range res.CriticalPoints {
		p := jsonPoint{X: cp.X, Class: string(cp.Class)}
		if cp.Exact != nil {
			p.Exact = cp.Exact.String()
		}
		jr.CriticalPoints = append(jr.CriticalPoints, p)
	}
	for _, ip := range res.InflectionPoints {
		p := jsonPoint{X: ip.X}
		if ip.Exact != nil {
			p.Exact = ip.Exact.String()
		}
		jr.InflectionPoints = append(jr.InflectionPoints, p)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}

func plotCmd() *cobra.Command {
	var (
		ranges  rangeFlags
		varName string
		points  int
		save    string
		surface bool
	)
	cmd := &cobra.Command{
		Use:   "plot <expression[; expression...]>",
		Short: "Plot one or more curves, or a surface f(x, y)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xlo, xhi, err := ranges.x()
			if err != nil {
				return err
			}
			opt := render.Options{Title: args[0], XLabel: varName, YLabel: "f", Points: points}

			if surface {
				e, err := parser.Parse(args[0], "x", "y")
				if err != nil {
					return err
				}
				ylo, yhi, err := ranges.y()
				if err != nil {
					return err
				}
				opt.XLabel, opt.YLabel = "x", "y"
				p, err := render.Surface(e, "x", "y", xlo, xhi, ylo, yhi, opt)
				if err != nil {
					return err
				}
				return writePlot(cmd, p, save)
			}

			var exprs []symbolic.Expr
			var labels []string
			for _, part := range strings.Split(args[0], ";") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				e, err := parser.Parse(part, varName)
				if err != nil {
					return err
				}
				exprs = append(exprs, e)
				labels = append(labels, part)
			}

			if len(exprs) == 1 {
				// A single curve gets its critical and inflection
				// points marked.
				marks := analysisMarkers(labels[0], varName, xlo, xhi)
				p, err := render.Line2D(exprs[0], varName, xlo, xhi, marks, opt)
				if err != nil {
					return err
				}
				return writePlot(cmd, p, save)
			}
			p, err := render.Multi2D(exprs, labels, varName, xlo, xhi, opt)
			if err != nil {
				return err
			}
			return writePlot(cmd, p, save)
		},
	}
	ranges.register(cmd, true)
	cmd.Flags().StringVar(&varName, "var", "x", "independent variable")
	cmd.Flags().IntVar(&points, "points", 0, "samples per axis")
	cmd.Flags().StringVar(&save, "save", "plot.png", "output PNG path")
	cmd.Flags().BoolVar(&surface, "surface", false, "treat the expression as f(x, y) and draw a heat map")
	return cmd
}

// analysisMarkers runs the analyzer for marker overlay only. Failures
// just mean an unannotated plot.
func analysisMarkers(exprText, varName string, lo, hi float64) []render.Marker {
	res, err := analysis.Analyze(exprText, varName, analysis.Domain{Min: lo, Max: hi}, analysis.DefaultConfig())
	if err != nil {
		return nil
	}
	f := symbolic.EvalFunc(res.Expr, varName)
	var marks []render.Marker
	for _, cp := range res.CriticalPoints {
		marks = append(marks, render.Marker{X: cp.X, Y: f(cp.X), Style: render.MarkCritical})
	}
	for _, ip := range res.InflectionPoints {
		marks = append(marks, render.Marker{X: ip.X, Y: f(ip.X), Style: render.MarkInflection})
	}
	return marks
}

func writePlot(cmd *cobra.Command, p *plot.Plot, path string) error {
	if err := render.Save(p, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func implicitCmd() *cobra.Command {
	var (
		ranges rangeFlags
		points int
		save   string
	)
	cmd := &cobra.Command{
		Use:   "implicit <expression>",
		Short: "Plot the zero set of f(x, y)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parser.Parse(args[0], "x", "y")
			if err != nil {
				return err
			}
			xlo, xhi, err := ranges.x()
			if err != nil {
				return err
			}
			ylo, yhi, err := ranges.y()
			if err != nil {
				return err
			}
			opt := render.Options{Title: args[0] + " = 0", XLabel: "x", YLabel: "y", Points: points}
			p, err := render.Implicit(e, "x", "y", xlo, xhi, ylo, yhi, opt)
			if err != nil {
				return err
			}
			return writePlot(cmd, p, save)
		},
	}
	ranges.register(cmd, true)
	cmd.Flags().IntVar(&points, "points", 0, "samples per axis")
	cmd.Flags().StringVar(&save, "save", "implicit.png", "output PNG path")
	return cmd
}

func parametricCmd() *cobra.Command {
	var (
		tmin, tmax string
		points     int
		save       string
	)
	cmd := &cobra.Command{
		Use:   "parametric <x(t)> <y(t)>",
		Short: "Plot a parametric curve",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xe, err := parser.Parse(args[0], "t")
			if err != nil {
				return err
			}
			ye, err := parser.Parse(args[1], "t")
			if err != nil {
				return err
			}
			lo, hi, err := parseRange(tmin, tmax)
			if err != nil {
				return err
			}
			opt := render.Options{
				Title:  fmt.Sprintf("(%s, %s)", args[0], args[1]),
				XLabel: "x", YLabel: "y", Points: points,
			}
			p, err := render.Parametric(xe, ye, "t", lo, hi, opt)
			if err != nil {
				return err
			}
			return writePlot(cmd, p, save)
		},
	}
	cmd.Flags().StringVar(&tmin, "tmin", "0", "lower t bound (constant expression)")
	cmd.Flags().StringVar(&tmax, "tmax", "2*pi", "upper t bound (constant expression)")
	cmd.Flags().IntVar(&points, "points", 0, "samples")
	cmd.Flags().StringVar(&save, "save", "parametric.png", "output PNG path")
	return cmd
}

func complexCmd() *cobra.Command {
	var (
		ranges rangeFlags
		mode   string
		points int
		save   string
	)
	cmd := &cobra.Command{
		Use:   "complex <expression>",
		Short: "Plot |f(z)| or arg(f(z)) over a rectangle of the complex plane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parser.Parse(args[0], "z")
			if err != nil {
				return err
			}
			relo, rehi, err := ranges.x()
			if err != nil {
				return err
			}
			imlo, imhi, err := ranges.y()
			if err != nil {
				return err
			}
			var m render.ComplexMode
			switch mode {
			case "magnitude":
				m = render.ComplexMagnitude
			case "phase":
				m = render.ComplexPhase
			default:
				return fmt.Errorf("unknown mode %q (want magnitude or phase)", mode)
			}
			opt := render.Options{
				Title:  fmt.Sprintf("%s (%s)", args[0], m),
				XLabel: "Re(z)", YLabel: "Im(z)", Points: points,
			}
			p, err := render.Complex(e, "z", relo, rehi, imlo, imhi, m, opt)
			if err != nil {
				return err
			}
			return writePlot(cmd, p, save)
		},
	}
	ranges.register(cmd, true)
	cmd.Flags().StringVar(&mode, "mode", "magnitude", "magnitude or phase")
	cmd.Flags().IntVar(&points, "points", 0, "samples per axis")
	cmd.Flags().StringVar(&save, "save", "complex.png", "output PNG path")
	return cmd
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyzer over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcptools.Serve(version)
		},
	}
}
