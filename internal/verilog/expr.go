package verilog

import (
	"fmt"
	"strings"

	"github.com/boolmin/kmapmin/internal/cube"
)

// literalsOf returns the Verilog literals of one product-term cube, most-
// significant-variable first (bit nVars-1 names[0]), matching the naming
// convention internal/qm's expression renderer uses so a Behavioral/
// Dataflow module and the MinimalSOP string describe the same function.
func literalsOf(c cube.Cube, nVars int, names []string) []string {
	var lits []string
	for bit := nVars - 1; bit >= 0; bit-- {
		if c.Mask&(1<<uint(bit)) != 0 {
			continue
		}
		name := names[nVars-1-bit]
		if c.Value&(1<<uint(bit)) != 0 {
			lits = append(lits, name)
		} else {
			lits = append(lits, "~"+name)
		}
	}
	return lits
}

// termExpr renders one cube as a Verilog AND-reduction of its literals.
func termExpr(c cube.Cube, nVars int, names []string) string {
	lits := literalsOf(c, nVars, names)
	switch len(lits) {
	case 0:
		return "1'b1"
	case 1:
		return lits[0]
	default:
		return "(" + strings.Join(lits, " & ") + ")"
	}
}

// boolExpr renders selected as a Verilog OR-reduction of AND terms, the
// Verilog equivalent of the rendered SOP string.
func boolExpr(selected []cube.Cube, nVars int, names []string) string {
	if len(selected) == 0 {
		return "1'b0"
	}
	terms := make([]string, len(selected))
	for i, c := range selected {
		terms[i] = termExpr(c, nVars, names)
	}
	return strings.Join(terms, " | ")
}

// wrapWide breaks a long OR-expression across lines once it exceeds width,
// matching the >80-column reflow the original emitter applies before
// embedding an expression in a module body.
func wrapWide(expr string, width int) string {
	if len(expr) <= width {
		return expr
	}
	terms := strings.Split(expr, " | ")
	return strings.Join(terms, " |\n        ")
}

// portList renders the num_vars input ports, wrapping onto additional
// `input` lines once the flat list would exceed width columns, as the
// original emitter does for wide circuits.
func portList(names []string, width int) string {
	flat := strings.Join(names, ", ")
	if len(flat) <= width {
		return flat
	}
	var lines []string
	var cur []string
	curLen := 0
	for _, n := range names {
		if curLen+len(n)+2 > width && len(cur) > 0 {
			lines = append(lines, strings.Join(cur, ", "))
			cur = []string{n}
			curLen = len(n)
			continue
		}
		cur = append(cur, n)
		curLen += len(n) + 2
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, ", "))
	}
	return strings.Join(lines, fmt.Sprintf(",\n    input "))
}
