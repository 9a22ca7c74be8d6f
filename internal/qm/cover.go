package qm

import (
	"context"
	"fmt"
	"sort"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/telemetry"
)

// coverState is a live view of a chart during reduction and search: which
// rows (prime implicants) and columns (required minterms) are still part
// of the subproblem. Rows and columns are dropped, never added, as
// essential extraction and dominance reduction proceed; branch-and-bound
// clones a coverState per branch rather than mutating a shared one.
type coverState struct {
	ch         *chart
	nVars      int
	activeRows cube.Bitset // over len(ch.pis)
	activeCols cube.Bitset // over len(ch.columns)
}

func newCoverState(ch *chart, nVars int) *coverState {
	rows := cube.NewBitset(len(ch.pis))
	for i := range ch.pis {
		rows.Set(i)
	}
	cols := cube.NewBitset(len(ch.columns))
	for i := range ch.columns {
		cols.Set(i)
	}
	return &coverState{ch: ch, nVars: nVars, activeRows: rows, activeCols: cols}
}

func (s *coverState) clone() *coverState {
	return &coverState{
		ch:         s.ch,
		nVars:      s.nVars,
		activeRows: s.activeRows.Clone(),
		activeCols: s.activeCols.Clone(),
	}
}

// deactivateRow commits row to the cover: it and every column it covers
// drop out of the live subproblem.
func (s *coverState) deactivateRow(row int) {
	for _, ci := range s.ch.piCols[row].Elems() {
		s.activeCols.Clear(ci)
	}
	s.activeRows.Clear(row)
}

// coveringRows returns the active rows covering column ci.
func (s *coverState) coveringRows(ci int) []int {
	var out []int
	for _, row := range s.ch.colPIs[ci] {
		if s.activeRows.Test(row) {
			out = append(out, row)
		}
	}
	return out
}

// extractEssentials repeatedly finds columns covered by exactly one
// active row, commits that row, and repeats until no new essential is
// found (SPEC_FULL.md §4.4).
func (s *coverState) extractEssentials() []int {
	var selected []int
	changed := true
	for changed {
		changed = false
		for _, ci := range s.activeCols.Elems() {
			if !s.activeCols.Test(ci) {
				continue // dropped earlier this pass by another essential
			}
			covering := s.coveringRows(ci)
			if len(covering) == 1 {
				row := covering[0]
				selected = append(selected, row)
				s.deactivateRow(row)
				changed = true
			}
		}
	}
	return selected
}

// reduceRowDominance drops every active row B for which some other active
// row A covers a superset of B's active columns at no greater literal
// cost (§4.4 row dominance). Ties are broken by row index so that exactly
// one of two truly equivalent rows survives.
func (s *coverState) reduceRowDominance() bool {
	rows := s.activeRows.Elems()
	cov := make(map[int]cube.Bitset, len(rows))
	lits := make(map[int]int, len(rows))
	for _, r := range rows {
		c := s.ch.piCols[r].Clone()
		c.Intersect(s.activeCols)
		cov[r] = c
		lits[r] = cube.LiteralCount(s.ch.pis[r].c, s.nVars)
	}

	dropped := make(map[int]bool)
	for _, a := range rows {
		if dropped[a] {
			continue
		}
		for _, b := range rows {
			if a == b || dropped[b] {
				continue
			}
			if lits[a] > lits[b] {
				continue
			}
			if !cov[b].SubsetOf(cov[a]) {
				continue
			}
			if lits[a] == lits[b] && cov[a].SubsetOf(cov[b]) && a > b {
				// a and b dominate each other identically; let the
				// lower-indexed row be the one that survives.
				continue
			}
			dropped[b] = true
		}
	}
	if len(dropped) == 0 {
		return false
	}
	for r := range dropped {
		s.activeRows.Clear(r)
	}
	return true
}

// reduceColumnDominance drops every active column c1 whose covering rows
// are a superset of some other active column c2's covering rows (§4.4
// column dominance: c2 is the harder column, so covering it always covers
// c1 too).
func (s *coverState) reduceColumnDominance() bool {
	cols := s.activeCols.Elems()
	covR := make(map[int]cube.Bitset, len(cols))
	for _, c := range cols {
		b := s.ch.colRows[c].Clone()
		b.Intersect(s.activeRows)
		covR[c] = b
	}

	dropped := make(map[int]bool)
	for _, c1 := range cols {
		if dropped[c1] {
			continue
		}
		for _, c2 := range cols {
			if c1 == c2 || dropped[c2] {
				continue
			}
			if !covR[c2].SubsetOf(covR[c1]) {
				continue
			}
			if covR[c1].SubsetOf(covR[c2]) && c1 > c2 {
				continue
			}
			dropped[c1] = true
			break
		}
	}
	if len(dropped) == 0 {
		return false
	}
	for c := range dropped {
		s.activeCols.Clear(c)
	}
	return true
}

// reduce alternates essential extraction and row/column dominance until
// none of them change the subproblem, returning every row committed along
// the way.
func (s *coverState) reduce() []int {
	var selected []int
	for {
		ess := s.extractEssentials()
		selected = append(selected, ess...)
		rowCh := s.reduceRowDominance()
		colCh := s.reduceColumnDominance()
		if len(ess) == 0 && !rowCh && !colCh {
			return selected
		}
	}
}

// lowerBound computes the admissible independent-set lower bound of
// §4.4: repeatedly take any uncovered column with the fewest covering
// active rows, count it, and remove it plus every other column covered by
// those same rows.
func (s *coverState) lowerBound() int {
	remaining := s.activeCols.Clone()
	count := 0
	for !remaining.Empty() {
		bestCol, bestN := -1, -1
		for _, ci := range remaining.Elems() {
			n := 0
			for _, row := range s.ch.colPIs[ci] {
				if s.activeRows.Test(row) {
					n++
				}
			}
			if bestCol == -1 || n < bestN {
				bestCol, bestN = ci, n
			}
		}
		count++
		for _, row := range s.ch.colPIs[bestCol] {
			if !s.activeRows.Test(row) {
				continue
			}
			covered := s.ch.piCols[row].Clone()
			covered.Intersect(remaining)
			for _, ci := range covered.Elems() {
				remaining.Clear(ci)
			}
		}
		remaining.Clear(bestCol)
	}
	return count
}

// greedyCover computes a (not necessarily minimum) cover of the active
// columns using a priority queue of rows scored by how many uncovered
// columns they currently cover, breaking ties by literal count. It is
// used both to seed branch-and-bound's initial best-so-far bound and as
// the direct answer when the cyclic core is too large for exact search.
func (s *coverState) greedyCover() []int {
	remaining := s.activeCols.Clone()
	if remaining.Empty() {
		return nil
	}
	rows := s.activeRows.Elems()
	score := make([]int, len(s.ch.pis))
	cov := make(map[int]cube.Bitset, len(rows))
	for _, r := range rows {
		c := s.ch.piCols[r].Clone()
		c.Intersect(remaining)
		cov[r] = c
		score[r] = scoreRow(c.PopCount(), cube.LiteralCount(s.ch.pis[r].c, s.nVars))
	}
	pq := newPQueue(score)
	for _, r := range rows {
		pq.insert(r)
	}

	var selected []int
	for !remaining.Empty() && !pq.empty() {
		r := pq.min()
		pq.remove(r)
		c := cov[r].Clone()
		c.Intersect(remaining)
		if c.Empty() {
			continue
		}
		selected = append(selected, r)
		for _, ci := range c.Elems() {
			remaining.Clear(ci)
		}
		for _, other := range append([]int(nil), pq.content...) {
			oc := s.ch.piCols[other].Clone()
			oc.Intersect(remaining)
			cov[other] = oc
			score[other] = scoreRow(oc.PopCount(), cube.LiteralCount(s.ch.pis[other].c, s.nVars))
			pq.update(other)
		}
	}
	return selected
}

// scoreRow turns "covers covered columns, fewer literals" into an
// ascending score for the min-ordered pqueue: more coverage and fewer
// literals both lower the score.
func scoreRow(coverage, literals int) int {
	return literals - coverage*1000
}

// pickBranchColumn selects the active column with the fewest covering
// active rows (most-constrained-variable branching, §4.4), breaking ties
// by column index for determinism.
func (s *coverState) pickBranchColumn() int {
	best, bestN := -1, -1
	for _, ci := range s.activeCols.Elems() {
		n := len(s.coveringRows(ci))
		if best == -1 || n < bestN {
			best, bestN = ci, n
		}
	}
	return best
}

// solveBB performs the branch-and-bound search of §4.4 over s's
// subproblem, updating best whenever a strictly better (or tied but
// lexicographically smaller) complete cover is found. chosen is the set
// of rows already committed by the caller (ancestors' essentials and
// branching decisions).
func (s *coverState) solveBB(ctx context.Context, chosen []int, best *[]int, nodes *int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	*nodes++

	ess := s.reduce()
	chosen = append(append([]int(nil), chosen...), ess...)

	if s.activeCols.Empty() {
		if *best == nil || lessSelection(s.ch, s.nVars, chosen, *best) {
			*best = append([]int(nil), chosen...)
		}
		return nil
	}

	lb := s.lowerBound()
	if *best != nil && len(chosen)+lb > len(*best) {
		return nil
	}

	col := s.pickBranchColumn()
	rows := s.coveringRows(col)
	rowScore := make(map[int]int, len(rows))
	for _, r := range rows {
		c := s.ch.piCols[r].Clone()
		c.Intersect(s.activeCols)
		rowScore[r] = scoreRow(c.PopCount(), cube.LiteralCount(s.ch.pis[r].c, s.nVars))
	}
	sort.Slice(rows, func(i, j int) bool {
		si, sj := rowScore[rows[i]], rowScore[rows[j]]
		if si != sj {
			return si < sj
		}
		return rows[i] < rows[j]
	})

	for _, r := range rows {
		child := s.clone()
		child.deactivateRow(r)
		branchChosen := append(append([]int(nil), chosen...), r)
		if err := child.solveBB(ctx, branchChosen, best, nodes); err != nil {
			return err
		}
	}
	return nil
}

// lessSelection reports whether a is a better cover than b under the
// lexicographic (count, total literals, sorted (mask,value) list) order
// of §4.4.
func lessSelection(ch *chart, nVars int, a, b []int) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	la, lb := totalLiterals(ch, nVars, a), totalLiterals(ch, nVars, b)
	if la != lb {
		return la < lb
	}
	return compareSortedCubes(ch, a, b) < 0
}

func totalLiterals(ch *chart, nVars int, sel []int) int {
	n := 0
	for _, r := range sel {
		n += cube.LiteralCount(ch.pis[r].c, nVars)
	}
	return n
}

// compareSortedCubes orders two equally-sized, equal-literal-cost
// selections by their sorted (mask,value) lists, guaranteeing a single
// deterministic winner across runs.
func compareSortedCubes(ch *chart, a, b []int) int {
	ac := sortedCubes(ch, a)
	bc := sortedCubes(ch, b)
	for i := range ac {
		if ac[i].Mask != bc[i].Mask {
			if ac[i].Mask < bc[i].Mask {
				return -1
			}
			return 1
		}
		if ac[i].Value != bc[i].Value {
			if ac[i].Value < bc[i].Value {
				return -1
			}
			return 1
		}
	}
	return 0
}

func sortedCubes(ch *chart, sel []int) []cube.Cube {
	cubes := make([]cube.Cube, len(sel))
	for i, r := range sel {
		cubes[i] = ch.pis[r].c
	}
	sort.Slice(cubes, func(i, j int) bool {
		if cubes[i].Mask != cubes[j].Mask {
			return cubes[i].Mask < cubes[j].Mask
		}
		return cubes[i].Value < cubes[j].Value
	})
	return cubes
}

// solveCover runs the full cover pipeline of §4.4 over ch: essential
// extraction, row/column dominance reduction to a fixed point, and, if a
// cyclic core remains, branch-and-bound (or, for pathologically large
// cores, a greedy cover) over it.
func solveCover(ctx context.Context, ch *chart, nVars int, level OptimizationLevel, timer telemetry.StageTimer) (selected, essential []int, steps []string, partial bool, err error) {
	root := newCoverState(ch, nVars)

	stopEss := timer.Start(telemetry.StageEssentials)
	essential = root.extractEssentials()
	stopEss()
	selected = append(selected, essential...)
	timer.AddCount("essential", len(essential))
	steps = append(steps, fmt.Sprintf("identified %d essential prime implicant(s)", len(essential)))

	stopRed := timer.Start(telemetry.StageReduction)
	for {
		rowCh := root.reduceRowDominance()
		colCh := root.reduceColumnDominance()
		more := root.extractEssentials()
		selected = append(selected, more...)
		if len(more) == 0 && !rowCh && !colCh {
			break
		}
	}
	stopRed()

	if root.activeCols.Empty() {
		steps = append(steps, "chart fully reduced by essentials and dominance; no search needed")
		timer.AddCount("selected", len(selected))
		return selected, essential, steps, false, nil
	}

	maxPIs, maxCols := level.greedyThreshold()
	nRows, nCols := root.activeRows.PopCount(), root.activeCols.PopCount()

	stopBB := timer.Start(telemetry.StageBranchAndBound)
	defer stopBB()

	if nRows > maxPIs || nCols > maxCols {
		steps = append(steps, "cyclic core too large for exact search; using greedy heuristic")
		selected = append(selected, root.greedyCover()...)
		timer.AddCount("selected", len(selected))
		return selected, essential, steps, false, nil
	}

	best := root.greedyCover()
	nodes := 0
	if err := root.solveBB(ctx, nil, &best, &nodes); err != nil {
		timer.AddCount("bb_nodes", nodes)
		selected = append(selected, best...)
		timer.AddCount("selected", len(selected))
		return selected, essential, steps, true, err
	}
	timer.AddCount("bb_nodes", nodes)
	steps = append(steps, fmt.Sprintf("branch-and-bound explored %d node(s), selected %d additional prime implicant(s)", nodes, len(best)))
	selected = append(selected, best...)
	timer.AddCount("selected", len(selected))
	return selected, essential, steps, false, nil
}
