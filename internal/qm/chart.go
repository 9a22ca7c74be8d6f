package qm

import (
	"context"
	"sort"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/telemetry"
)

// chart is the PI chart of SPEC_FULL.md §4.3: columns are the required
// on-minterms, rows are the prime implicants that cover at least one of
// them. Both directions of the bipartite incidence are precomputed since
// essential extraction and dominance reduction each need one direction.
type chart struct {
	pis     []genCube // indexed by row
	columns []int     // sorted required minterms, indexed by column
	colIdx  map[int]int
	// piCols[row] is the set of column indices that pi[row] covers.
	piCols []cube.Bitset
	// colPIs[col] lists the row indices covering that column.
	colPIs [][]int
	// colRows[col] is the set of row indices that cover column col,
	// as a bitset over rows, the reverse view of piCols used for row-
	// and column-dominance comparisons.
	colRows []cube.Bitset
}

// buildChart constructs the PI chart for pis restricted to the required
// columns ones. It fails with UncoverableMinterm if some required minterm
// has no covering PI.
func buildChart(ctx context.Context, pis []genCube, ones []int, timer telemetry.StageTimer) (*chart, error) {
	stop := timer.Start(telemetry.StageChartBuild)
	defer stop()

	columns := append([]int(nil), ones...)
	sort.Ints(columns)
	colIdx := make(map[int]int, len(columns))
	for i, m := range columns {
		colIdx[m] = i
	}

	// Only keep PIs that cover at least one required column; a PI that
	// only absorbed don't-cares is not a candidate row.
	var rows []genCube
	for _, gc := range pis {
		for _, m := range gc.covers.Elems() {
			if _, ok := colIdx[m]; ok {
				rows = append(rows, gc)
				break
			}
		}
	}

	piCols := make([]cube.Bitset, len(rows))
	colPIs := make([][]int, len(columns))
	for row, gc := range rows {
		bs := cube.NewBitset(len(columns))
		for _, m := range gc.covers.Elems() {
			if ci, ok := colIdx[m]; ok {
				bs.Set(ci)
				colPIs[ci] = append(colPIs[ci], row)
			}
		}
		piCols[row] = bs
	}

	for ci, m := range columns {
		if len(colPIs[ci]) == 0 {
			return nil, newError(UncoverableMinterm, "minterm %d has no covering prime implicant", m)
		}
	}

	colRows := make([]cube.Bitset, len(columns))
	for ci, rowsCovering := range colPIs {
		bs := cube.NewBitset(len(rows))
		for _, row := range rowsCovering {
			bs.Set(row)
		}
		colRows[ci] = bs
	}

	return &chart{
		pis:     rows,
		columns: columns,
		colIdx:  colIdx,
		piCols:  piCols,
		colPIs:  colPIs,
		colRows: colRows,
	}, nil
}
