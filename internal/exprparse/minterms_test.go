package exprparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMintermsImplicitAndAndComplement(t *testing.T) {
	// A'C' + AC over A,B,C (B unused) should match minterms where A==C,
	// regardless of B: 0,2,5,7 for n=3 (MSB-first: bit2=A, bit1=B, bit0=C).
	ones, err := Minterms("A'C' + AC", []string{"A", "B", "C"}, 3)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 2, 5, 7}, ones)
}

func TestMintermsExplicitStarOperator(t *testing.T) {
	onesImplicit, err := Minterms("A*B", []string{"A", "B"}, 2)
	require.NoError(t, err)
	onesAdjacent, err := Minterms("AB", []string{"A", "B"}, 2)
	require.NoError(t, err)
	require.ElementsMatch(t, onesImplicit, onesAdjacent)
	require.ElementsMatch(t, []int{3}, onesImplicit)
}

func TestMintermsLeadingBangComplement(t *testing.T) {
	ones, err := Minterms("!A + B", []string{"A", "B"}, 2)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1, 3}, ones)
}

func TestMintermsParentheses(t *testing.T) {
	ones, err := Minterms("(A + B)C", []string{"A", "B", "C"}, 3)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{3, 5, 7}, ones)
}

func TestMintermsConstants(t *testing.T) {
	ones, err := Minterms("1", []string{"A", "B"}, 2)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1, 2, 3}, ones)

	ones, err = Minterms("0", []string{"A", "B"}, 2)
	require.NoError(t, err)
	require.Empty(t, ones)
}

func TestMintermsUnknownVariableError(t *testing.T) {
	_, err := Minterms("A + Z", []string{"A", "B"}, 2)
	require.Error(t, err)
}

func TestMintermsUnbalancedParenError(t *testing.T) {
	_, err := Minterms("(A + B", []string{"A", "B"}, 2)
	require.Error(t, err)
}
