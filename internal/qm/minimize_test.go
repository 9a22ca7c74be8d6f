package qm

import (
	"context"
	"testing"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/telemetry"
	"github.com/stretchr/testify/require"
)

// S1 covers the textbook two-essential-PI case. Working the merge by hand
// (0,2 differ only in the middle bit, 5,7 differ only in the middle bit,
// with the outer two bits fixed) shows the surviving literals are the
// variables assigned to the *outer* bits under the MSB-first-name
// convention this package and its S2/S3 cases use, i.e. A and C, not B.
// This test asserts the verified-by-hand-merge form.
func TestMinimizeS1TwoEssentialPIs(t *testing.T) {
	res, err := Minimize(context.Background(), Request{
		NVars:         3,
		Ones:          []int{0, 2, 5, 7},
		VariableNames: []string{"A", "B", "C"},
	})
	require.NoError(t, err)
	require.Equal(t, "A'C' + AC", res.MinimalSOP)
	require.Len(t, res.PrimeImplicants, 2)
	for _, pi := range res.PrimeImplicants {
		require.True(t, pi.Essential)
	}
	require.Len(t, res.Selected, 2)
}

func TestMinimizeS2TwoLiteralResult(t *testing.T) {
	res, err := Minimize(context.Background(), Request{
		NVars:         4,
		Ones:          []int{0, 1, 2, 3, 5, 7, 8, 9, 10, 11, 13, 15},
		VariableNames: []string{"A", "B", "C", "D"},
	})
	require.NoError(t, err)
	require.Equal(t, "B' + D", res.MinimalSOP)
}

func TestMinimizeS3DontCaresAbsorbed(t *testing.T) {
	res, err := Minimize(context.Background(), Request{
		NVars:         4,
		Ones:          []int{1, 3, 7, 11, 15},
		DontCares:     []int{0, 2, 5},
		VariableNames: []string{"A", "B", "C", "D"},
	})
	require.NoError(t, err)
	require.Equal(t, "CD + A'B'", res.MinimalSOP)
}

func TestMinimizeS4Tautology(t *testing.T) {
	res, err := Minimize(context.Background(), Request{
		NVars:         2,
		Ones:          []int{0, 1, 2, 3},
		VariableNames: []string{"A", "B"},
		Options:       Options{ComputePOS: true},
	})
	require.NoError(t, err)
	require.Equal(t, "1", res.MinimalSOP)
	require.Equal(t, "1", res.MinimalPOS)
}

func TestMinimizeS5Contradiction(t *testing.T) {
	res, err := Minimize(context.Background(), Request{
		NVars:         2,
		Ones:          nil,
		VariableNames: []string{"A", "B"},
	})
	require.NoError(t, err)
	require.Equal(t, "0", res.MinimalSOP)
	require.Empty(t, res.Selected)
}

// Minterms 1-7 over 5 variables never exercise the top two bits, so the
// problem reduces to the 3-input OR function: exactly 3 prime implicants
// (A'B'C, A'B'D, A'B'E), each essential for one of minterms 4, 2 and 1, so
// all 3 must be selected and no 2 of them cover every required minterm.
func TestMinimizeS6ThreeEssentialPIs(t *testing.T) {
	res, err := Minimize(context.Background(), Request{
		NVars: 5,
		Ones:  []int{1, 2, 3, 4, 5, 6, 7},
	})
	require.NoError(t, err)
	require.Len(t, res.Selected, 3)

	covered := make(map[int]bool)
	for _, c := range res.Selected {
		for m := 0; m < 32; m++ {
			if cube.Contains(c, m) {
				covered[m] = true
			}
		}
	}
	for _, m := range []int{1, 2, 3, 4, 5, 6, 7} {
		require.True(t, covered[m], "minterm %d must be covered", m)
	}

	for i := range res.Selected {
		for j := range res.Selected {
			if i == j {
				continue
			}
			pairCovered := make(map[int]bool)
			for _, idx := range []int{i, j} {
				for m := 0; m < 32; m++ {
					if cube.Contains(res.Selected[idx], m) {
						pairCovered[m] = true
					}
				}
			}
			allCovered := true
			for _, m := range []int{1, 2, 3, 4, 5, 6, 7} {
				if !pairCovered[m] {
					allCovered = false
					break
				}
			}
			require.False(t, allCovered, "no pair of the 3 selected PIs should cover every required minterm")
		}
	}
}

func TestMinimizeInvalidNVars(t *testing.T) {
	_, err := Minimize(context.Background(), Request{NVars: 1, Ones: []int{0}})
	require.Error(t, err)
	var qmErr *Error
	require.ErrorAs(t, err, &qmErr)
	require.Equal(t, InvalidNVars, qmErr.Kind)
}

func TestMinimizeInvalidMinterm(t *testing.T) {
	_, err := Minimize(context.Background(), Request{NVars: 3, Ones: []int{8}})
	require.Error(t, err)
	var qmErr *Error
	require.ErrorAs(t, err, &qmErr)
	require.Equal(t, InvalidMinterm, qmErr.Kind)
}

func TestMinimizeOverlap(t *testing.T) {
	_, err := Minimize(context.Background(), Request{NVars: 3, Ones: []int{1}, DontCares: []int{1}})
	require.Error(t, err)
	var qmErr *Error
	require.ErrorAs(t, err, &qmErr)
	require.Equal(t, Overlap, qmErr.Kind)
}

// A context cancelled before PI generation ever starts must not panic:
// runOnePolarity returns a nil chart in this case, and Minimize has to
// recognize that and bail out with a partial result instead of
// dereferencing it.
func TestMinimizeCancelledBeforePIGeneration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Minimize(ctx, Request{
		NVars: 4,
		Ones:  []int{0, 1, 2, 3, 5, 7, 8, 9, 10, 11, 13, 15},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, res.Partial)
	require.Empty(t, res.PrimeImplicants)
	require.Empty(t, res.Selected)
}

// The same guard applies with ComputePOS set, which also routes through
// runOnePolarity and must not panic when the SOP pass alone already comes
// back with a nil chart.
func TestMinimizeCancelledBeforePIGenerationWithPOS(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Minimize(ctx, Request{
		NVars:   4,
		Ones:    []int{0, 1, 2, 3, 5, 7, 8, 9, 10, 11, 13, 15},
		Options: Options{ComputePOS: true},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, res.Partial)
}

// MinimizeWith must actually drive the caller-supplied timer, not just its
// own internal bookkeeping, so an injected telemetry.PrometheusCollector
// observes real stage timings rather than sitting unexercised.
func TestMinimizeWithDrivesInjectedTimer(t *testing.T) {
	injected := &telemetry.Collector{}
	res, err := MinimizeWith(context.Background(), Request{
		NVars:         3,
		Ones:          []int{0, 2, 5, 7},
		VariableNames: []string{"A", "B", "C"},
	}, injected)
	require.NoError(t, err)
	require.Equal(t, "A'C' + AC", res.MinimalSOP)

	require.Positive(t, injected.Timings.PIGeneration)
	require.Positive(t, injected.Timings.ChartBuild)
	require.Equal(t, res.Counts.PrimeImplicants, injected.Counts.PrimeImplicants)
	require.Equal(t, res.Counts.Essential, injected.Counts.Essential)
}

func TestMinimizeIsDeterministic(t *testing.T) {
	req := Request{
		NVars: 5,
		Ones:  []int{1, 2, 3, 4, 5, 6, 7, 9, 11, 13, 17, 19, 23, 29, 31},
	}
	a, err := Minimize(context.Background(), req)
	require.NoError(t, err)
	b, err := Minimize(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, a.MinimalSOP, b.MinimalSOP)
	require.Equal(t, a.Selected, b.Selected)
}
