package qm

import (
	"context"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/telemetry"
)

// Minimize runs the full two-level minimization pipeline of SPEC_FULL.md
// §4 over req: prime-implicant generation, PI-chart construction,
// essential extraction, row/column dominance reduction, and, if a cyclic
// core remains, branch-and-bound search for an exact minimum cover. If
// req.Options.ComputePOS is set, the same pipeline runs a second time over
// the function's complement to produce MinimalPOS.
//
// Minimize validates req before doing any work, returning an *Error for
// every malformed input (InvalidNVars, InvalidMinterm, Overlap). Context
// cancellation is reported as ctx.Err(), wrapped by neither kind, with
// Result.Partial set and Result.Selected holding the best cover found so
// far.
//
// Minimize records its own stage timings into a plain, dependency-free
// telemetry.Collector; a caller that wants those timings mirrored into a
// backend such as Prometheus should call MinimizeWith with its own
// telemetry.StageTimer instead.
func Minimize(ctx context.Context, req Request) (Result, error) {
	return MinimizeWith(ctx, req, &telemetry.Collector{})
}

// MinimizeWith runs the same pipeline as Minimize but reports stage
// timings and counts into the caller-supplied timer as well as into
// Result.Timings/Result.Counts, so a long-running caller can feed a
// telemetry.PrometheusCollector (or any other StageTimer) and have it
// actually observe real runs instead of sitting unexercised.
func MinimizeWith(ctx context.Context, req Request, timer telemetry.StageTimer) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	collector := &telemetry.Collector{}
	combined := telemetry.Collectors{collector, timer}

	universe := 1 << uint(req.NVars)

	sopCh, sopEssential, sopSelected, steps, partial, err := runOnePolarity(ctx, req.NVars, req.Ones, req.DontCares, universe, req.Options, combined)
	if sopCh == nil {
		if !partial {
			// Chart construction itself failed (UncoverableMinterm).
			return Result{}, err
		}
		// Cancelled before PI generation produced a chart to report on:
		// there is nothing to build a Result from but the partial flag
		// and whatever ctx.Err() says.
		return Result{Steps: steps, Partial: true}, ctx.Err()
	}
	if err != nil && !partial {
		return Result{}, err
	}

	result := Result{Steps: steps, Partial: partial}

	result.PrimeImplicants = make([]PrimeImplicant, len(sopCh.pis))
	essentialSet := make(map[int]bool, len(sopEssential))
	for _, r := range sopEssential {
		essentialSet[r] = true
	}
	for i, gc := range sopCh.pis {
		result.PrimeImplicants[i] = PrimeImplicant{
			Cube:      gc.c,
			Essential: essentialSet[i],
			Covers:    sortedCopy(gc.covers.Elems()),
		}
	}

	selectedCubes := make([]cube.Cube, len(sopSelected))
	for i, r := range sopSelected {
		selectedCubes[i] = sopCh.pis[r].c
	}
	result.Selected = selectedCubes

	var zeroSelectedCubes []cube.Cube
	if req.Options.ComputePOS && err == nil {
		zeros := complementMinterms(req.Ones, req.DontCares, universe)
		zeroCh, _, zeroSelected, zeroSteps, zeroPartial, zeroErr := runOnePolarity(ctx, req.NVars, zeros, req.DontCares, universe, req.Options, combined)
		if zeroCh == nil {
			if !zeroPartial {
				return Result{}, zeroErr
			}
			result.Partial = true
			result.Steps = append(result.Steps, zeroSteps...)
			result.Timings = collector.Timings
			result.Counts = collector.Counts
			return result, ctx.Err()
		}
		if zeroErr != nil && !zeroPartial {
			return Result{}, zeroErr
		}
		zeroSelectedCubes = make([]cube.Cube, len(zeroSelected))
		for i, r := range zeroSelected {
			zeroSelectedCubes[i] = zeroCh.pis[r].c
		}
		result.Partial = result.Partial || zeroPartial
		result.Steps = append(result.Steps, zeroSteps...)
	}

	stopRender := combined.Start(telemetry.StageRender)
	minimalSOP, minimalPOS, canonicalSOP, canonicalPOS, groups := renderExpressions(req, req.NVars, universe, selectedCubes, result.PrimeImplicants, zeroSelectedCubes)
	stopRender()
	result.MinimalSOP = minimalSOP
	result.MinimalPOS = minimalPOS
	result.CanonicalSOP = canonicalSOP
	result.CanonicalPOS = canonicalPOS
	result.Groups = groups
	result.Timings = collector.Timings
	result.Counts = collector.Counts

	if result.Partial {
		return result, ctx.Err()
	}
	return result, nil
}

// runOnePolarity runs PI generation, chart construction, and cover
// solving for one set of required minterms (either the function's ones or
// its complement's). It returns the chart (so the caller can map row
// indices back to cubes), the row indices of essential and selected PIs,
// the step trace, and whether the run is partial (cancelled before an
// exact cover was confirmed).
func runOnePolarity(ctx context.Context, nVars int, ones, dcs []int, universe int, opts Options, timer telemetry.StageTimer) (ch *chart, essential, selected []int, steps []string, partial bool, err error) {
	pis, err := generatePIs(ctx, nVars, ones, dcs, universe, timer)
	if err != nil {
		return nil, nil, nil, nil, true, err
	}

	ch, err = buildChart(ctx, pis, ones, timer)
	if err != nil {
		return nil, nil, nil, nil, false, err
	}

	selected, essential, steps, partial, err = solveCover(ctx, ch, nVars, opts.OptimizationLevel, timer)
	if !opts.EmitSteps {
		steps = nil
	}
	return ch, essential, selected, steps, partial, err
}

// complementMinterms returns every point in [0, universe) that is neither
// a required one nor a don't-care, the required-ones set for the
// complement function used to derive MinimalPOS.
func complementMinterms(ones, dcs []int, universe int) []int {
	in := make(map[int]bool, len(ones)+len(dcs))
	for _, m := range ones {
		in[m] = true
	}
	for _, m := range dcs {
		in[m] = true
	}
	var out []int
	for m := 0; m < universe; m++ {
		if !in[m] {
			out = append(out, m)
		}
	}
	return out
}

// validate enforces the structural preconditions of SPEC_FULL.md §7:
// NVars in [2,15], every minterm/don't-care in [0, 2^NVars), and no value
// appearing in both Ones and DontCares.
func validate(req Request) error {
	if req.NVars < 2 || req.NVars > 15 {
		return newError(InvalidNVars, "NVars must be in [2,15], got %d", req.NVars)
	}
	universe := 1 << uint(req.NVars)

	seen := make(map[int]string, len(req.Ones)+len(req.DontCares))
	for _, m := range req.Ones {
		if m < 0 || m >= universe {
			return newError(InvalidMinterm, "minterm %d out of range [0,%d)", m, universe)
		}
		seen[m] = "Ones"
	}
	for _, m := range req.DontCares {
		if m < 0 || m >= universe {
			return newError(InvalidMinterm, "don't-care %d out of range [0,%d)", m, universe)
		}
		if prior, ok := seen[m]; ok && prior == "Ones" {
			return newError(Overlap, "minterm %d appears in both Ones and DontCares", m)
		}
		seen[m] = "DontCares"
	}
	return nil
}
