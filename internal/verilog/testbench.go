package verilog

import (
	"fmt"
	"strings"

	"github.com/boolmin/kmapmin/internal/qm"
)

// maxTestVectors caps how many truth-table rows a testbench enumerates
// explicitly, matching the 256-row truncation generate_verilog_testbench
// applies before the vector array becomes unwieldy to read.
const maxTestVectors = 256

// Testbench renders a testbench against kmap_dataflow that drives every
// row of table (or the first maxTestVectors rows, noting the truncation)
// and displays F beside the expected output; it does not compare the two
// itself. Grounded on generate_verilog_testbench. res is accepted for
// API symmetry with Behavioral/Dataflow/GateLevel but not otherwise needed:
// the testbench only exercises the design through its dataflow port list.
func Testbench(res qm.Result, nVars int, names []string, table Table) string {
	_ = res
	vars := names[:nVars]

	testRows := table
	truncateNote := ""
	if len(testRows) > maxTestVectors {
		testRows = testRows[:maxTestVectors]
		truncateNote = fmt.Sprintf("// Note: Showing first %d of %d test vectors", maxTestVectors, len(table))
	}

	var testInit []string
	for i, row := range testRows {
		var bits strings.Builder
		for _, b := range row.Bits {
			fmt.Fprintf(&bits, "%d", b)
		}
		outBit := row.Output
		if outBit == 'X' {
			outBit = 'x'
		}
		testInit = append(testInit, fmt.Sprintf("        test_vectors[%d] = {%d'b%s, 1'b%c};", i, nVars, bits.String(), outBit))
	}

	regDecl := fmt.Sprintf("reg %s;", strings.Join(vars, ", "))
	if nVars > 10 {
		var lines []string
		for _, group := range chunk(vars, 10) {
			lines = append(lines, fmt.Sprintf("reg %s;", strings.Join(group, ", ")))
		}
		regDecl = strings.Join(lines, "\n    ")
	}

	var dutInst string
	if nVars > 8 {
		portLines := make([]string, len(vars))
		for i, v := range vars {
			portLines[i] = fmt.Sprintf(".%s(%s)", v, v)
		}
		var conns []string
		for _, group := range chunk(portLines, 4) {
			conns = append(conns, strings.Join(group, ", "))
		}
		dutInst = fmt.Sprintf("kmap_dataflow dut(\n        %s,\n        .F(F)\n    );", strings.Join(conns, ",\n        "))
	} else {
		ports := make([]string, len(vars))
		for i, v := range vars {
			ports[i] = fmt.Sprintf(".%s(%s)", v, v)
		}
		dutInst = fmt.Sprintf("kmap_dataflow dut(\n        %s,\n        .F(F)\n    );", strings.Join(ports, ", "))
	}

	formatSpecs := make([]string, len(vars))
	for i := range vars {
		formatSpecs[i] = "%b"
	}

	return fmt.Sprintf(`module kmap_tb;
    %s
    wire F;

    %s
    // Instantiate the design under test
    %s

    integer i;
    reg [%d:0] test_vectors [0:%d];

    initial begin
        $dumpfile("kmap.vcd");
        $dumpvars(0, kmap_tb);

        // Initialize test vectors
%s

        // Apply test vectors
        for (i = 0; i < %d; i = i + 1) begin
            {%s} = test_vectors[i][%d:1];
            #10;
            $display("%s | F=%%b (expected=%%b)",
                %s, F, test_vectors[i][0]);
        end

        $finish;
    end
endmodule`,
		regDecl, truncateNote, dutInst,
		nVars, len(testRows)-1,
		strings.Join(testInit, "\n"),
		len(testRows), strings.Join(vars, ", "), nVars,
		strings.Join(formatSpecs, " "),
		strings.Join(vars, ", "))
}
