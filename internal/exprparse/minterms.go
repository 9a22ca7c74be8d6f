package exprparse

import "fmt"

// Minterms parses expr over the first nVars entries of names and evaluates
// it at every point of [0, 2^nVars), returning the minterms where it is
// true. Bit nVars-1 of a minterm corresponds to names[0], matching the
// most-significant-variable-first convention internal/qm uses, so the
// result can feed a qm.Request.Ones directly.
func Minterms(expr string, names []string, nVars int) ([]int, error) {
	if nVars < 1 {
		return nil, fmt.Errorf("nVars must be positive, got %d", nVars)
	}
	if len(names) < nVars {
		return nil, fmt.Errorf("need at least %d variable names, got %d", nVars, len(names))
	}
	p, err := newParser(expr, names[:nVars])
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", expr, err)
	}

	var ones []int
	bits := make([]bool, nVars)
	universe := 1 << uint(nVars)
	for m := 0; m < universe; m++ {
		for bit := nVars - 1; bit >= 0; bit-- {
			bits[nVars-1-bit] = (m>>uint(bit))&1 == 1
		}
		if root.eval(bits) {
			ones = append(ones, m)
		}
	}
	return ones, nil
}
