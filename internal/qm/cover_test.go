package qm

import (
	"context"
	"testing"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/telemetry"
	"github.com/stretchr/testify/require"
)

func chartFor(t *testing.T, pis []genCube, ones []int) *chart {
	t.Helper()
	ch, err := buildChart(context.Background(), pis, ones, &telemetry.Collector{})
	require.NoError(t, err)
	return ch
}

func bitset(n int, ms ...int) cube.Bitset {
	b := cube.NewBitset(n)
	for _, m := range ms {
		b.Set(m)
	}
	return b
}

func TestExtractEssentialsSingleCoveringRow(t *testing.T) {
	pis := []genCube{
		{c: cube.New(0), covers: bitset(4, 0)},
		{c: cube.New(1), covers: bitset(4, 1, 2)},
	}
	ch := chartFor(t, pis, []int{0, 1, 2})
	s := newCoverState(ch, 2)
	sel := s.extractEssentials()
	require.ElementsMatch(t, []int{0, 1}, sel)
	require.True(t, s.activeCols.Empty())
}

func TestReduceRowDominanceDropsDominatedRow(t *testing.T) {
	// Row 0 covers {0,1} with 1 literal, row 1 covers only {0} with 2
	// literals: row 1 is dominated and must be dropped.
	pis := []genCube{
		{c: cube.Cube{Value: 0, Mask: 0b01}, covers: bitset(4, 0, 1)},
		{c: cube.New(0), covers: bitset(4, 0)},
	}
	ch := chartFor(t, pis, []int{0, 1})
	s := newCoverState(ch, 2)
	changed := s.reduceRowDominance()
	require.True(t, changed)
	require.True(t, s.activeRows.Test(0))
	require.False(t, s.activeRows.Test(1))
}

func TestGreedyCoverCoversEveryColumn(t *testing.T) {
	pis := []genCube{
		{c: cube.New(0), covers: bitset(4, 0, 1)},
		{c: cube.New(1), covers: bitset(4, 2, 3)},
	}
	ch := chartFor(t, pis, []int{0, 1, 2, 3})
	s := newCoverState(ch, 2)
	sel := s.greedyCover()
	covered := cube.NewBitset(4)
	for _, r := range sel {
		covered.Union(ch.piCols[r])
	}
	for _, ci := range []int{0, 1, 2, 3} {
		require.True(t, covered.Test(ci))
	}
}

func TestSolveCoverEssentialsOnly(t *testing.T) {
	pis := []genCube{
		{c: cube.New(0), covers: bitset(4, 0)},
		{c: cube.New(1), covers: bitset(4, 1)},
	}
	ch := chartFor(t, pis, []int{0, 1})
	selected, essential, _, partial, err := solveCover(context.Background(), ch, 2, AUTO, &telemetry.Collector{})
	require.NoError(t, err)
	require.False(t, partial)
	require.ElementsMatch(t, []int{0, 1}, selected)
	require.ElementsMatch(t, []int{0, 1}, essential)
}
