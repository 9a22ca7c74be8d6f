package verilog

import (
	"fmt"

	"github.com/boolmin/kmapmin/internal/qm"
)

// Dataflow renders res as a continuous assign statement, grounded on
// generate_verilog_dataflow.
func Dataflow(res qm.Result, nVars int, names []string) string {
	expr := wrapWide(boolExpr(res.Selected, nVars, names), 80)
	inputs := portList(names[:nVars], 60)
	return fmt.Sprintf(`module kmap_dataflow(
    input %s,
    output F
);

    assign F = %s;

endmodule`, inputs, expr)
}
