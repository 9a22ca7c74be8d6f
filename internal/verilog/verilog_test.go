package verilog

import (
	"strings"
	"testing"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/qm"
	"github.com/stretchr/testify/require"
)

func TestLiteralsOfOrdersMostSignificantFirst(t *testing.T) {
	names := []string{"A", "B", "C", "D"}
	c := cube.Cube{Value: 0b1000, Mask: 0b0011}
	require.Equal(t, []string{"A", "~B"}, literalsOf(c, 4, names))
}

func TestTermExprTautologyIsOne(t *testing.T) {
	c := cube.Cube{Mask: 0b1111}
	require.Equal(t, "1'b1", termExpr(c, 4, []string{"A", "B", "C", "D"}))
}

func TestBoolExprContradictionIsZero(t *testing.T) {
	require.Equal(t, "1'b0", boolExpr(nil, 3, []string{"A", "B", "C"}))
}

func TestBehavioralRendersAssignAndPorts(t *testing.T) {
	res := qm.Result{Selected: []cube.Cube{
		{Value: 0, Mask: 0b01}, // A'
		{Value: 0b10, Mask: 0b01},
	}}
	out := Behavioral(res, 2, []string{"A", "B"})
	require.Contains(t, out, "module kmap_behavioral(")
	require.Contains(t, out, "input A, B")
	require.Contains(t, out, "output reg F")
	require.Contains(t, out, "F = ")
}

func TestDataflowRendersAssign(t *testing.T) {
	res := qm.Result{Selected: []cube.Cube{{Value: 0, Mask: 0b01}}}
	out := Dataflow(res, 2, []string{"A", "B"})
	require.Contains(t, out, "module kmap_dataflow(")
	require.Contains(t, out, "assign F =")
}

func TestGateLevelEmitsNotAndOrGates(t *testing.T) {
	res := qm.Result{Selected: []cube.Cube{
		{Value: 0, Mask: 0}, // A'B'
		{Value: 0b11, Mask: 0}, // AB
	}}
	out := GateLevel(res, 2, []string{"A", "B"})
	require.Contains(t, out, "not n0(A_n, A);")
	require.Contains(t, out, "not n1(B_n, B);")
	require.Contains(t, out, "and a0(term0, A_n, B_n);")
	require.Contains(t, out, "and a1(term1, A, B);")
	require.Contains(t, out, "or o1(F, term0, term1);")
}

func TestGateLevelChunksWideAndGate(t *testing.T) {
	// 10 variables all fixed in one term forces the >8-input hierarchical
	// AND-chunking branch.
	names := make([]string, 10)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	res := qm.Result{Selected: []cube.Cube{{Value: 0, Mask: 0}}}
	out := GateLevel(res, 10, names)
	require.Contains(t, out, "a0_0(temp0_0")
	require.Contains(t, out, "a0_final(term0")
}

func TestBuildTableClassifiesOnesAndDontCares(t *testing.T) {
	table := BuildTable(2, []int{1}, []int{2})
	require.Len(t, table, 4)
	require.Equal(t, byte('0'), table[0].Output)
	require.Equal(t, byte('1'), table[1].Output)
	require.Equal(t, byte('X'), table[2].Output)
	require.Equal(t, byte('0'), table[3].Output)
	require.Equal(t, []int{1, 0}, table[2].Bits)
}

func TestTestbenchTruncatesLargeTables(t *testing.T) {
	nVars := 9
	names := make([]string, nVars)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	table := BuildTable(nVars, []int{0}, nil)
	out := Testbench(qm.Result{}, nVars, names, table)
	require.Contains(t, out, "Showing first 256")
	require.True(t, strings.Contains(out, "test_vectors[255]"))
	require.False(t, strings.Contains(out, "test_vectors[256]"))
}

func TestTestbenchSmallTableNotTruncated(t *testing.T) {
	table := BuildTable(2, []int{1, 3}, nil)
	out := Testbench(qm.Result{}, 2, []string{"A", "B"}, table)
	require.NotContains(t, out, "Showing first")
	require.Contains(t, out, "test_vectors[3]")
}
