package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boolmin/kmapmin/internal/exprparse"
	"github.com/boolmin/kmapmin/internal/qm"
	"github.com/boolmin/kmapmin/internal/telemetry"
	"github.com/boolmin/kmapmin/internal/verilog"
)

type minimizeOptions struct {
	vars        int
	minterms    []int
	dontCares   []int
	maxterms    []int
	expression  string
	names       []string
	verilogKind string
	metricsAddr string
	deadline    time.Duration
}

// newMinimizeCmd builds "kmapmin minimize", the one subcommand exercising
// the whole pipeline end to end, per SPEC_FULL.md §4.9.
func newMinimizeCmd(logger *logrus.Logger) *cobra.Command {
	o := minimizeOptions{}

	cmd := &cobra.Command{
		Use:   "minimize [problem-file]",
		Short: "Minimize a Boolean function given as minterms, maxterms, or an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(o, args)
			if err != nil {
				return err
			}

			ctx := context.Background()
			var cancel context.CancelFunc
			if o.deadline > 0 {
				ctx, cancel = context.WithTimeout(ctx, o.deadline)
				defer cancel()
			}

			var collector *telemetry.PrometheusCollector
			if o.metricsAddr != "" {
				reg := prometheus.NewRegistry()
				collector = telemetry.NewPrometheusCollector(reg)
				go serveMetrics(o.metricsAddr, reg, logger)
			}

			logger.WithFields(logrus.Fields{
				"vars":       req.NVars,
				"ones":       len(req.Ones),
				"dont_cares": len(req.DontCares),
			}).Debug("starting minimization")

			var result qm.Result
			if collector != nil {
				result, err = qm.MinimizeWith(ctx, req, collector)
			} else {
				result, err = qm.Minimize(ctx, req)
			}
			if err != nil && !result.Partial {
				return fmt.Errorf("minimize: %w", err)
			}
			if result.Partial {
				logger.Warn("minimization cancelled before an exact cover was confirmed; showing best cover found")
			}

			printResult(cmd, result)

			if o.verilogKind != "" {
				printVerilog(cmd, o, req, result)
			}

			if o.metricsAddr != "" {
				logger.WithField("addr", o.metricsAddr).Info("serving /metrics; press Ctrl-C to exit")
				select {}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&o.vars, "vars", 0, "number of Boolean variables (required unless a problem file is given)")
	cmd.Flags().IntSliceVar(&o.minterms, "minterms", nil, "comma-separated required on-minterms")
	cmd.Flags().IntSliceVar(&o.dontCares, "dont-cares", nil, "comma-separated don't-care minterms")
	cmd.Flags().IntSliceVar(&o.maxterms, "maxterms", nil, "comma-separated required off-minterms (alternative to --minterms)")
	cmd.Flags().StringVar(&o.expression, "expression", "", "infix Boolean expression to derive minterms from instead of --minterms")
	cmd.Flags().StringSliceVar(&o.names, "names", nil, "comma-separated variable names, most significant first")
	cmd.Flags().StringVar(&o.verilogKind, "verilog", "", "emit Verilog: behavioral, dataflow, gate-level, testbench, or all")
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090) and keep running")
	cmd.Flags().DurationVar(&o.deadline, "deadline", 0, "cancel minimization after this duration (0 disables)")

	return cmd
}

func buildRequest(o minimizeOptions, args []string) (qm.Request, error) {
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return qm.Request{}, fmt.Errorf("opening problem file: %w", err)
		}
		defer f.Close()
		pf, err := parseProblemFile(f)
		if err != nil {
			return qm.Request{}, err
		}
		return qm.Request{
			NVars:         pf.NVars,
			Ones:          pf.Ones,
			DontCares:     pf.DontCares,
			VariableNames: pf.Names,
			Options:       qm.Options{ComputePOS: true, EmitSteps: true},
		}, nil
	}

	if o.vars <= 0 {
		return qm.Request{}, fmt.Errorf("--vars is required when no problem file is given")
	}

	ones := o.minterms
	if o.expression != "" {
		names := resolveCLINames(o.names, o.vars)
		m, err := exprparse.Minterms(o.expression, names, o.vars)
		if err != nil {
			return qm.Request{}, fmt.Errorf("--expression: %w", err)
		}
		ones = m
	} else if len(o.maxterms) > 0 {
		universe := 1 << uint(o.vars)
		excluded := make(map[int]bool, len(o.maxterms)+len(o.dontCares))
		for _, m := range o.maxterms {
			excluded[m] = true
		}
		for _, m := range o.dontCares {
			excluded[m] = true
		}
		ones = nil
		for m := 0; m < universe; m++ {
			if !excluded[m] {
				ones = append(ones, m)
			}
		}
	}

	return qm.Request{
		NVars:         o.vars,
		Ones:          ones,
		DontCares:     o.dontCares,
		VariableNames: o.names,
		Options:       qm.Options{ComputePOS: true, EmitSteps: true},
	}, nil
}

func resolveCLINames(names []string, nVars int) []string {
	out := make([]string, nVars)
	for i := 0; i < nVars; i++ {
		if i < len(names) {
			out[i] = names[i]
			continue
		}
		out[i] = string(rune('A' + i))
	}
	return out
}

func printResult(cmd *cobra.Command, res qm.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Minimal SOP:    %s\n", res.MinimalSOP)
	fmt.Fprintf(out, "Minimal POS:    %s\n", res.MinimalPOS)
	fmt.Fprintf(out, "Canonical SOP:  %s\n", res.CanonicalSOP)
	fmt.Fprintf(out, "Canonical POS:  %s\n", res.CanonicalPOS)
	essential := 0
	for _, pi := range res.PrimeImplicants {
		if pi.Essential {
			essential++
		}
	}
	fmt.Fprintf(out, "Prime implicants: %d (%d essential), selected %d\n",
		len(res.PrimeImplicants), essential, len(res.Selected))
	for _, step := range res.Steps {
		fmt.Fprintf(out, "  - %s\n", step)
	}
}

func printVerilog(cmd *cobra.Command, o minimizeOptions, req qm.Request, res qm.Result) {
	out := cmd.OutOrStdout()
	names := resolveCLINames(req.VariableNames, req.NVars)
	kinds := []string{o.verilogKind}
	if o.verilogKind == "all" {
		kinds = []string{"behavioral", "dataflow", "gate-level", "testbench"}
	}
	for _, kind := range kinds {
		switch kind {
		case "behavioral":
			fmt.Fprintln(out, verilog.Behavioral(res, req.NVars, names))
		case "dataflow":
			fmt.Fprintln(out, verilog.Dataflow(res, req.NVars, names))
		case "gate-level":
			fmt.Fprintln(out, verilog.GateLevel(res, req.NVars, names))
		case "testbench":
			table := verilog.BuildTable(req.NVars, req.Ones, req.DontCares)
			fmt.Fprintln(out, verilog.Testbench(res, req.NVars, names, table))
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "unknown --verilog kind %q (want behavioral, dataflow, gate-level, testbench, or all)\n", kind)
		}
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.WithError(err).Error("metrics server stopped")
	}
}
