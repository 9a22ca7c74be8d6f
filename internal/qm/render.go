package qm

import (
	"sort"
	"strconv"
	"strings"

	"github.com/boolmin/kmapmin/internal/cube"
)

// variableName returns the display name for bit position bit (0 = LSB),
// given names in most-significant-first order: bit nVars-1 is names[0],
// bit 0 is names[nVars-1].
func variableName(names []string, nVars, bit int) string {
	idx := nVars - 1 - bit
	if idx >= 0 && idx < len(names) && names[idx] != "" {
		return names[idx]
	}
	return defaultVariableName(idx)
}

// defaultVariableName falls back to A, B, C, ... Z, AA, AB, ... for
// variables beyond the 26th, for inputs that omit VariableNames.
func defaultVariableName(idx int) string {
	if idx < 0 {
		return "?"
	}
	name := ""
	for {
		name = string(rune('A'+idx%26)) + name
		idx = idx/26 - 1
		if idx < 0 {
			break
		}
	}
	return name
}

// resolveNames pads/defaults req.VariableNames out to exactly nVars
// entries, most-significant-first, for use by render and by collaborator
// packages (e.g. the Verilog emitter) that need one canonical name list.
func resolveNames(names []string, nVars int) []string {
	out := make([]string, nVars)
	for i := 0; i < nVars; i++ {
		if i < len(names) && names[i] != "" {
			out[i] = names[i]
			continue
		}
		out[i] = defaultVariableName(i)
	}
	return out
}

// termToExpression renders one cube as a product of literals, in
// most-significant-variable-first order. A cube with every variable
// masked renders as "1" (tautology).
func termToExpression(c cube.Cube, nVars int, names []string) string {
	var sb strings.Builder
	for bit := nVars - 1; bit >= 0; bit-- {
		if c.Mask&(1<<uint(bit)) != 0 {
			continue
		}
		sb.WriteString(variableName(names, nVars, bit))
		if c.Value&(1<<uint(bit)) == 0 {
			sb.WriteByte('\'')
		}
	}
	if sb.Len() == 0 {
		return "1"
	}
	return sb.String()
}

// renderSOP joins each selected cube's term_to_expression with " + ",
// rendering an empty selection as the contradiction "0" (SPEC_FULL.md
// §4.5).
func renderSOP(selected []cube.Cube, nVars int, names []string) string {
	if len(selected) == 0 {
		return "0"
	}
	terms := make([]string, len(selected))
	for i, c := range selected {
		terms[i] = termToExpression(c, nVars, names)
	}
	return strings.Join(terms, " + ")
}

// renderPOS renders a product-of-sums expression from the zero-cover
// cubes (the cover of the function's complement): each cube becomes a
// parenthesized sum of literals, De Morgan'd from its product-term
// polarity, and sums are conjoined with " * ". A single tautological
// zero-cube (the complement is the constant 1, i.e. the function itself
// is the constant 0) renders as "0"; an empty zero-cover renders "1".
func renderPOS(zeroSelected []cube.Cube, nVars int, names []string) string {
	if len(zeroSelected) == 0 {
		return "1"
	}
	sums := make([]string, len(zeroSelected))
	for i, c := range zeroSelected {
		sums[i] = sumTermFromComplementCube(c, nVars, names)
	}
	return strings.Join(sums, " * ")
}

// sumTermFromComplementCube converts one product term of the complement
// function into the corresponding maxterm sum, De Morgan's law applied
// literal by literal: a bound-0 variable in the complement's product term
// becomes an un-complemented literal in the sum, and vice versa.
func sumTermFromComplementCube(c cube.Cube, nVars int, names []string) string {
	var literals []string
	for bit := nVars - 1; bit >= 0; bit-- {
		if c.Mask&(1<<uint(bit)) != 0 {
			continue
		}
		name := variableName(names, nVars, bit)
		if c.Value&(1<<uint(bit)) != 0 {
			literals = append(literals, name+"'")
		} else {
			literals = append(literals, name)
		}
	}
	if len(literals) == 0 {
		return "0"
	}
	return "(" + strings.Join(literals, " + ") + ")"
}

// renderCanonicalSOP renders Σm(...) over the sorted required on-minterms,
// appending "+ d(...)" for don't-cares when any were supplied.
func renderCanonicalSOP(ones, dontCares []int) string {
	var sb strings.Builder
	sb.WriteString("Σm(")
	sb.WriteString(joinInts(sortedCopy(ones)))
	sb.WriteByte(')')
	if len(dontCares) > 0 {
		sb.WriteString(" + d(")
		sb.WriteString(joinInts(sortedCopy(dontCares)))
		sb.WriteByte(')')
	}
	return sb.String()
}

// renderCanonicalPOS renders ΠM(...) over the sorted zero-minterms (every
// point in [0, 2^nVars) that is neither a required one nor a don't-care),
// appending "+ d(...)" identically to renderCanonicalSOP.
func renderCanonicalPOS(ones, dontCares []int, universe int) string {
	in := make(map[int]bool, len(ones)+len(dontCares))
	for _, m := range ones {
		in[m] = true
	}
	for _, m := range dontCares {
		in[m] = true
	}
	var zeros []int
	for m := 0; m < universe; m++ {
		if !in[m] {
			zeros = append(zeros, m)
		}
	}
	var sb strings.Builder
	sb.WriteString("ΠM(")
	sb.WriteString(joinInts(zeros))
	sb.WriteByte(')')
	if len(dontCares) > 0 {
		sb.WriteString(" + d(")
		sb.WriteString(joinInts(sortedCopy(dontCares)))
		sb.WriteByte(')')
	}
	return sb.String()
}

func sortedCopy(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	return out
}

func joinInts(in []int) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// buildGroups turns the selected prime implicants into K-map annotations:
// each selected cube's covered on-minterms, plus a color index assigned
// in selection order so a visualizer renders the same group the same
// color across repeated runs on the same Result.
func buildGroups(selected []cube.Cube, pis []PrimeImplicant) []Group {
	byCube := make(map[uint32][]int, len(pis))
	for _, pi := range pis {
		byCube[cube.Key(pi.Cube)] = pi.Covers
	}
	groups := make([]Group, 0, len(selected))
	for i, c := range selected {
		groups = append(groups, Group{
			Cells:      append([]int(nil), byCube[cube.Key(c)]...),
			ColorIndex: uint8(i % 256),
		})
	}
	return groups
}

// renderExpressions fills the expression-shaped fields of a Result:
// MinimalSOP/MinimalPOS/CanonicalSOP/CanonicalPOS and the K-map Groups.
// zeroSelected is the cover of the function's complement, computed only
// when req.Options.ComputePOS is set.
func renderExpressions(req Request, nVars int, universe int, selected []cube.Cube, pis []PrimeImplicant, zeroSelected []cube.Cube) (minimalSOP, minimalPOS, canonicalSOP, canonicalPOS string, groups []Group) {
	names := resolveNames(req.VariableNames, nVars)
	minimalSOP = renderSOP(selected, nVars, names)
	canonicalSOP = renderCanonicalSOP(req.Ones, req.DontCares)
	canonicalPOS = renderCanonicalPOS(req.Ones, req.DontCares, universe)
	if req.Options.ComputePOS {
		minimalPOS = renderPOS(zeroSelected, nVars, names)
	}
	groups = buildGroups(selected, pis)
	return
}
