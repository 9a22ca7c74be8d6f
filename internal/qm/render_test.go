package qm

import (
	"testing"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/stretchr/testify/require"
)

func TestTermToExpressionOrdersMostSignificantFirst(t *testing.T) {
	names := []string{"A", "B", "C", "D"}
	// mask bits1,0 free (C,D), bit3=1 (A), bit2=0 (B')
	c := cube.Cube{Value: 0b1000, Mask: 0b0011}
	require.Equal(t, "AB'", termToExpression(c, 4, names))
}

func TestTermToExpressionTautology(t *testing.T) {
	c := cube.Cube{Mask: 0b1111}
	require.Equal(t, "1", termToExpression(c, 4, []string{"A", "B", "C", "D"}))
}

func TestRenderSOPContradiction(t *testing.T) {
	require.Equal(t, "0", renderSOP(nil, 3, []string{"A", "B", "C"}))
}

func TestRenderCanonicalFormsWithDontCares(t *testing.T) {
	sop := renderCanonicalSOP([]int{1, 3}, []int{0, 2})
	require.Equal(t, "Σm(1,3) + d(0,2)", sop)

	pos := renderCanonicalPOS([]int{1, 3}, []int{0, 2}, 4)
	require.Equal(t, "ΠM() + d(0,2)", pos)
}

func TestDefaultVariableNameBeyondAlphabet(t *testing.T) {
	require.Equal(t, "A", defaultVariableName(0))
	require.Equal(t, "Z", defaultVariableName(25))
	require.Equal(t, "AA", defaultVariableName(26))
}

func TestResolveNamesPadsMissing(t *testing.T) {
	out := resolveNames([]string{"X"}, 3)
	require.Equal(t, []string{"X", "B", "C"}, out)
}

func TestBuildGroupsAssignsStableColorOrder(t *testing.T) {
	c0 := cube.New(0)
	c1 := cube.New(1)
	pis := []PrimeImplicant{
		{Cube: c0, Covers: []int{0}},
		{Cube: c1, Covers: []int{1}},
	}
	groups := buildGroups([]cube.Cube{c0, c1}, pis)
	require.Equal(t, []Group{
		{Cells: []int{0}, ColorIndex: 0},
		{Cells: []int{1}, ColorIndex: 1},
	}, groups)
}
