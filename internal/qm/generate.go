package qm

import (
	"context"
	"math/bits"
	"runtime"
	"sort"
	"sync"

	"github.com/boolmin/kmapmin/internal/cube"
	"github.com/boolmin/kmapmin/internal/telemetry"
)

// genCube is a cube carried through prime-implicant generation, together
// with the on-minterms (never don't-cares) it covers.
type genCube struct {
	c      cube.Cube
	covers cube.Bitset
}

// bucketResult is what one same-mask bucket produces in a merge round:
// the deduplicated cubes of the next generation it contributed, and the
// canonical keys of this generation's cubes it consumed.
type bucketResult struct {
	produced map[uint32]genCube
	consumed map[uint32]bool
}

// generatePIs runs the bit-slice iterated-merging prime-implicant
// generator described in SPEC_FULL.md §4.2: seed cubes are built from
// ones ∪ dcs, then repeatedly bucketed by (mask, popcount(value)) and
// merged across adjacent popcount classes within the same mask bucket
// until no generation produces anything new. Any cube never consumed by a
// merge is a prime implicant.
//
// universe is 2^nVars, the size of the covers bitset every genCube
// carries.
func generatePIs(ctx context.Context, nVars int, ones, dcs []int, universe int, timer telemetry.StageTimer) ([]genCube, error) {
	stop := timer.Start(telemetry.StagePIGeneration)
	defer stop()

	current := bucketByMask(seedCubes(ones, dcs, universe))
	var pis []genCube

	for len(current) > 0 {
		select {
		case <-ctx.Done():
			return pis, ctx.Err()
		default:
		}

		next, consumed := mergeGeneration(current)

		for _, group := range current {
			for _, gc := range group {
				if !consumed[cube.Key(gc.c)] {
					pis = append(pis, gc)
				}
			}
		}

		current = bucketByMask(flatten(next))
	}

	// Map iteration above leaves pis in no particular order; sort by
	// (mask, value) so row indices, and every tie broken by them, are
	// deterministic.
	sort.Slice(pis, func(i, j int) bool {
		if pis[i].c.Mask != pis[j].c.Mask {
			return pis[i].c.Mask < pis[j].c.Mask
		}
		return pis[i].c.Value < pis[j].c.Value
	})

	timer.AddCount("prime_implicants", len(pis))
	return pis, nil
}

// seedCubes builds the 1-cubes PI generation starts from: one per minterm
// in ones ∪ dcs, each covering itself iff it is a required one.
func seedCubes(ones, dcs []int, universe int) []genCube {
	onesSet := make(map[int]bool, len(ones))
	for _, m := range ones {
		onesSet[m] = true
	}
	seen := make(map[int]bool, len(ones)+len(dcs))
	var seeds []genCube
	for _, m := range ones {
		seen[m] = true
		bs := cube.NewBitset(universe)
		bs.Set(m)
		seeds = append(seeds, genCube{c: cube.New(m), covers: bs})
	}
	for _, m := range dcs {
		if seen[m] {
			continue
		}
		seen[m] = true
		seeds = append(seeds, genCube{c: cube.New(m), covers: cube.NewBitset(universe)})
	}
	return seeds
}

// bucketByMask groups cubes by their Mask word, the outer level of §4.2's
// two-level bucketing. Each mask bucket can be merged independently of
// the others, which is the unit of parallelism mergeGeneration exploits.
func bucketByMask(gcs []genCube) map[uint16][]genCube {
	out := make(map[uint16][]genCube)
	for _, gc := range gcs {
		out[gc.c.Mask] = append(out[gc.c.Mask], gc)
	}
	return out
}

// flatten collects a merge round's per-key results back into a plain
// slice. The covers of any canonical cube that two different mask
// buckets' pairs both produced were already unioned by mergeGeneration.
func flatten(produced map[uint32]genCube) []genCube {
	out := make([]genCube, 0, len(produced))
	for _, gc := range produced {
		out = append(out, gc)
	}
	return out
}

// mergeGeneration merges one generation's mask buckets, fanned out across
// a bounded worker pool since buckets are independent: disjoint masks can
// never merge with one another. It returns the deduplicated union of
// every bucket's produced cubes, keyed by canonical identity, and the set
// of this generation's canonical keys consumed by at least one merge.
func mergeGeneration(current map[uint16][]genCube) (produced map[uint32]genCube, consumed map[uint32]bool) {
	masks := make([]uint16, 0, len(current))
	for mask := range current {
		masks = append(masks, mask)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(masks) {
		workers = len(masks)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]bucketResult, len(masks))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = mergeMaskBucket(current[masks[i]])
			}
		}()
	}
	for i := range masks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	produced = make(map[uint32]genCube)
	consumed = make(map[uint32]bool)
	for _, r := range results {
		for key, gc := range r.produced {
			if existing, ok := produced[key]; ok {
				existing.covers.Union(gc.covers)
				produced[key] = existing
			} else {
				produced[key] = gc
			}
		}
		for key := range r.consumed {
			consumed[key] = true
		}
	}
	return produced, consumed
}

// mergeMaskBucket merges one same-mask bucket: cubes are grouped by
// popcount(value), and every pair in adjacent popcount classes is tried.
func mergeMaskBucket(gcs []genCube) bucketResult {
	byPop := make(map[int][]genCube)
	for _, gc := range gcs {
		pop := bits.OnesCount16(gc.c.Value)
		byPop[pop] = append(byPop[pop], gc)
	}
	pops := make([]int, 0, len(byPop))
	for p := range byPop {
		pops = append(pops, p)
	}
	sort.Ints(pops)

	r := bucketResult{produced: make(map[uint32]genCube), consumed: make(map[uint32]bool)}

	for i := 0; i+1 < len(pops); i++ {
		if pops[i+1] != pops[i]+1 {
			continue
		}
		for _, a := range byPop[pops[i]] {
			for _, b := range byPop[pops[i+1]] {
				merged, ok := cube.Merge(a.c, b.c)
				if !ok {
					continue
				}
				covers := a.covers.Clone()
				covers.Union(b.covers)

				key := cube.Key(merged)
				if existing, ok := r.produced[key]; ok {
					existing.covers.Union(covers)
					r.produced[key] = existing
				} else {
					r.produced[key] = genCube{c: merged, covers: covers}
				}
				r.consumed[cube.Key(a.c)] = true
				r.consumed[cube.Key(b.c)] = true
			}
		}
	}
	return r
}
