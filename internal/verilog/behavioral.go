package verilog

import (
	"fmt"

	"github.com/boolmin/kmapmin/internal/qm"
)

// Behavioral renders res as an always-block module that assigns F from the
// minimal SOP expression, grounded on generate_verilog_behavioral.
func Behavioral(res qm.Result, nVars int, names []string) string {
	expr := wrapWide(boolExpr(res.Selected, nVars, names), 80)
	inputs := portList(names[:nVars], 60)
	return fmt.Sprintf(`module kmap_behavioral(
    input %s,
    output reg F
);

always @(*) begin
    F = %s;
end

endmodule`, inputs, expr)
}
