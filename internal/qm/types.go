package qm

import (
	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/telemetry"
)

// OptimizationLevel biases how aggressively the cover solver falls back
// to a greedy cover instead of exact branch-and-bound search. AUTO is the
// default and matches the threshold the reference implementation used
// (switch to greedy once the cyclic core has more than 50 remaining PIs
// or 30 remaining columns); SMALL/LARGE scale that threshold up/down.
// The code path taken is otherwise identical for all three values: there
// is no separate "small" and "large" algorithm, only a different cutoff.
type OptimizationLevel int

const (
	// AUTO uses the reference threshold (50 PIs / 30 columns).
	AUTO OptimizationLevel = iota
	// SMALL forces exact search except for pathologically large cores.
	SMALL
	// LARGE switches to greedy earlier, favoring speed over optimality
	// on large, poorly-structured inputs.
	LARGE
)

// greedyThreshold returns (maxRemainingPIs, maxUncoveredColumns) above
// which the cover solver gives up on exact search and returns a greedy
// cover instead.
func (l OptimizationLevel) greedyThreshold() (int, int) {
	switch l {
	case SMALL:
		return 200, 120
	case LARGE:
		return 24, 16
	default:
		return 50, 30
	}
}

// Options tunes a minimization run without changing its semantics (beyond
// the documented SMALL/LARGE greedy fallback).
type Options struct {
	// ComputePOS requests the product-of-sums form in addition to SOP.
	// The zero value is false, so MinimalPOS stays empty unless callers
	// set it explicitly.
	ComputePOS bool
	// EmitSteps requests a human-readable trace of what the solver did,
	// suitable for UI consumption. Loosely specified: don't parse Steps.
	EmitSteps bool
	// OptimizationLevel biases the cover solver's greedy fallback
	// threshold; see OptimizationLevel.
	OptimizationLevel OptimizationLevel
}

// Request describes one minimization problem.
type Request struct {
	NVars int
	// Ones are the required on-minterms (the function must be 1 here).
	Ones []int
	// DontCares are indifferent points: the solver may treat them as 0 or
	// 1, whichever yields a smaller cover, but they are never required
	// to be covered themselves.
	DontCares []int
	// VariableNames supplies up to NVars short identifiers, most
	// significant variable first. If shorter than NVars, or nil, missing
	// names default to A, B, C, ...
	VariableNames []string
	// OutputName names the function being minimized, used only by
	// collaborators (e.g. the Verilog emitter) that render a full module.
	OutputName string
	Options    Options
}

// PrimeImplicant is one prime implicant of the minimized function,
// annotated with whether it is essential and which required minterms it
// covers.
type PrimeImplicant struct {
	Cube      cube.Cube
	Essential bool
	Covers    []int
}

// Group is a K-map annotation: the cells (on-minterms) one selected cube
// spans, plus a stable color index for a visualizer to use consistently
// across renders of the same result.
type Group struct {
	Cells      []int
	ColorIndex uint8
}

// Result is everything Minimize computes from one Request.
type Result struct {
	PrimeImplicants []PrimeImplicant
	Selected        []cube.Cube
	MinimalSOP      string
	MinimalPOS      string
	CanonicalSOP    string
	CanonicalPOS    string
	Groups          []Group
	Steps           []string
	Timings         telemetry.Timings
	Counts          telemetry.Counts
	// Partial is true iff the context was cancelled before an exact
	// minimum cover could be confirmed; Selected then holds the best
	// cover found so far, not necessarily minimal.
	Partial bool
}
