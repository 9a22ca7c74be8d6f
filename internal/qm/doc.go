/*
Package qm implements an exact, minimum-literal two-level Boolean
minimizer: given a Boolean function of 2 to 15 variables described by its
on-minterms and, optionally, a set of don't-care points, it computes every
prime implicant of the function and an exact minimum cover of the
required minterms, in both sum-of-products and product-of-sums form.

Describing a problem

A problem is described with a Request:

    req := qm.Request{
        NVars:         3,
        Ones:          []int{0, 2, 5, 7},
        VariableNames: []string{"A", "B", "C"},
        OutputName:    "F",
        Options:       qm.Options{ComputePOS: true, EmitSteps: true},
    }

Minimizing a problem

Minimize runs the full pipeline: prime-implicant generation, PI-chart
construction, essential extraction, row/column dominance reduction to a
fixed point, and, if a cyclic core remains, branch-and-bound search for an
exact minimum cover. A cyclic core larger than the threshold of
Options.OptimizationLevel gets a greedy cover instead, which is not
necessarily minimum.

    res, err := qm.Minimize(context.Background(), req)

If err is nil, res.MinimalSOP and res.MinimalPOS hold the minimized
expressions, res.PrimeImplicants lists every prime implicant (each marked
Essential or not), and res.Selected holds the cubes chosen for the
minimum cover, annotated in res.Groups for a K-map visualizer.

Minimize is a pure, synchronous function: it performs no I/O and shares no
mutable state across calls, so a caller may invoke it from any goroutine,
and many calls may run concurrently with no coordination. Supplying a
context with a deadline causes the solver to check for cancellation before
each prime-implicant generation round and at every branch-and-bound node;
on cancellation the best cover found so far is returned with Result.Partial
set to true.
*/
package qm
