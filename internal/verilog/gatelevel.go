package verilog

import (
	"fmt"
	"strings"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/qm"
)

// chunk splits items into groups of size n, the same fixed chunking
// generate_verilog_gate_level uses to keep wide AND/OR/wire lists readable.
func chunk(items []string, n int) [][]string {
	var out [][]string
	for i := 0; i < len(items); i += n {
		end := i + n
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[i:end])
	}
	return out
}

func declareWires(wires []string) string {
	if len(wires) == 0 {
		return ""
	}
	lines := make([]string, 0, len(wires)/10+1)
	for _, group := range chunk(wires, 10) {
		lines = append(lines, fmt.Sprintf("    wire %s;", strings.Join(group, ", ")))
	}
	return strings.Join(lines, "\n")
}

// andInputsOf returns, for one product-term cube, the literal wire names
// ("A" or "A_n") an AND gate for that term must fan in from.
func andInputsOf(c cube.Cube, nVars int, names []string) []string {
	var ins []string
	for bit := nVars - 1; bit >= 0; bit-- {
		if c.Mask&(1<<uint(bit)) != 0 {
			continue
		}
		name := names[nVars-1-bit]
		if c.Value&(1<<uint(bit)) != 0 {
			ins = append(ins, name)
		} else {
			ins = append(ins, name+"_n")
		}
	}
	return ins
}

// GateLevel renders res as an explicit structural netlist: one `not` gate
// per input variable, one `and` gate (hierarchically chunked past 8 fan-in)
// per selected prime implicant, and a final `or` gate (likewise chunked),
// grounded on generate_verilog_gate_level.
func GateLevel(res qm.Result, nVars int, names []string) string {
	vars := names[:nVars]

	var notWires []string
	var gates []string
	for i, v := range vars {
		notWires = append(notWires, v+"_n")
		gates = append(gates, fmt.Sprintf("    not n%d(%s_n, %s);", i, v, v))
	}

	var termWires []string
	for idx, c := range res.Selected {
		wireName := fmt.Sprintf("term%d", idx)
		termWires = append(termWires, wireName)

		andInputs := andInputsOf(c, nVars, vars)
		switch len(andInputs) {
		case 0:
			gates = append(gates, fmt.Sprintf("    assign %s = 1'b1;", wireName))
		case 1:
			gates = append(gates, fmt.Sprintf("    assign %s = %s;", wireName, andInputs[0]))
		default:
			if len(andInputs) > 8 {
				var tempWires []string
				for ci, group := range chunk(andInputs, 4) {
					tempWire := fmt.Sprintf("temp%d_%d", idx, ci)
					tempWires = append(tempWires, tempWire)
					termWires = append(termWires, tempWire)
					gates = append(gates, fmt.Sprintf("    and a%d_%d(%s, %s);", idx, ci, tempWire, strings.Join(group, ", ")))
				}
				gates = append(gates, fmt.Sprintf("    and a%d_final(%s, %s);", idx, wireName, strings.Join(tempWires, ", ")))
			} else {
				gates = append(gates, fmt.Sprintf("    and a%d(%s, %s);", idx, wireName, strings.Join(andInputs, ", ")))
			}
		}
	}
	// termWires may interleave term/temp wires in declaration order; split
	// the temp wires used purely as AND-chunk intermediates back out so the
	// final OR only fans in the top-level per-PI wires.
	orInputs := make([]string, 0, len(res.Selected))
	for idx := range res.Selected {
		orInputs = append(orInputs, fmt.Sprintf("term%d", idx))
	}

	var orGate string
	switch {
	case len(orInputs) == 0:
		orGate = "    assign F = 1'b0;"
	case len(orInputs) == 1:
		orGate = fmt.Sprintf("    assign F = %s;", orInputs[0])
	case len(orInputs) > 8:
		var tempOrWires []string
		for ci, group := range chunk(orInputs, 4) {
			tempWire := fmt.Sprintf("or_temp%d", ci)
			tempOrWires = append(tempOrWires, tempWire)
			gates = append(gates, fmt.Sprintf("    wire %s;", tempWire))
			gates = append(gates, fmt.Sprintf("    or o%d(%s, %s);", ci, tempWire, strings.Join(group, ", ")))
		}
		orGate = fmt.Sprintf("    or o_final(F, %s);", strings.Join(tempOrWires, ", "))
	default:
		orGate = fmt.Sprintf("    or o1(F, %s);", strings.Join(orInputs, ", "))
	}

	notDecl := declareWires(notWires)
	wireDecl := declareWires(termWires)
	inputs := portList(vars, 60)

	return fmt.Sprintf(`module kmap_gate_level(
    input %s,
    output F
);

%s
%s

%s
%s

endmodule`, inputs, notDecl, wireDecl, strings.Join(gates, "\n"), orGate)
}
