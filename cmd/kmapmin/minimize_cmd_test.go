package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRequestFromMinterms(t *testing.T) {
	o := minimizeOptions{vars: 3, minterms: []int{0, 2, 5, 7}}
	req, err := buildRequest(o, nil)
	require.NoError(t, err)
	require.Equal(t, 3, req.NVars)
	require.ElementsMatch(t, []int{0, 2, 5, 7}, req.Ones)
}

func TestBuildRequestFromMaxterms(t *testing.T) {
	o := minimizeOptions{vars: 2, maxterms: []int{0, 1}}
	req, err := buildRequest(o, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{2, 3}, req.Ones)
}

func TestBuildRequestFromExpression(t *testing.T) {
	o := minimizeOptions{vars: 2, expression: "A*B", names: []string{"A", "B"}}
	req, err := buildRequest(o, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{3}, req.Ones)
}

func TestBuildRequestRequiresVarsWithoutFile(t *testing.T) {
	_, err := buildRequest(minimizeOptions{}, nil)
	require.Error(t, err)
}

func TestResolveCLINamesDefaultsToAlphabet(t *testing.T) {
	names := resolveCLINames([]string{"X"}, 3)
	require.Equal(t, []string{"X", "B", "C"}, names)
}
